package models

// 响应码定义
const (
	// 成功
	CodeSuccess = 0

	// 客户端错误 (1000-1999)
	CodeInvalidParams   = 1000 // 无效的参数
	CodeMissingParams   = 1001 // 缺少必要参数
	CodeProductNotFound = 1002 // 产品不存在
	CodeProfileNotFound = 1003 // 用户画像不存在

	// 服务端错误 (2000-2999)
	CodeServerError      = 2000 // 服务器内部错误
	CodeCatalogLoadError = 2001 // 产品目录加载错误
)

// 错误码对应的默认消息
var CodeMessages = map[int]string{
	CodeSuccess:          "success",
	CodeInvalidParams:    "无效的参数",
	CodeMissingParams:    "缺少必要参数",
	CodeProductNotFound:  "产品不存在",
	CodeProfileNotFound:  "用户画像不存在",
	CodeServerError:      "服务器内部错误",
	CodeCatalogLoadError: "产品目录加载错误",
}

// ErrorResponse 统一错误响应，error字段为面向调用方的消息
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Code    int    `json:"code" example:"1000"`
	Error   string `json:"error" example:"无效的参数"`
}

// NewErrorResponse 创建错误响应，message为空时使用错误码默认消息
func NewErrorResponse(code int, message string) ErrorResponse {
	if message == "" {
		if m, ok := CodeMessages[code]; ok {
			message = m
		} else {
			message = "未知错误"
		}
	}
	return ErrorResponse{
		Success: false,
		Code:    code,
		Error:   message,
	}
}
