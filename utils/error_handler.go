package utils

import "errors"

// 核心服务的类型化错误，由HTTP边界转换为响应码
// "未找到"与"结果为空"是不同的信号：前者是查找失败，后者是合法的空列表
var (
	// ErrProductNotFound 指定产品ID在目录中不存在
	ErrProductNotFound = errors.New("未找到指定产品")

	// ErrProfileNotFound 指定用户ID没有已保存的画像
	ErrProfileNotFound = errors.New("未找到用户画像")

	// ErrInvalidTopN top_n为负数
	ErrInvalidTopN = errors.New("top_n不能为负数")
)
