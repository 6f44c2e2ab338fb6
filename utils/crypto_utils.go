package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// CalculateMD5 计算字符串的MD5哈希值，返回32位小写十六进制字符串
func CalculateMD5(input string) string {
	hasher := md5.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// UserIDLength 用户ID长度，取MD5前12位
const UserIDLength = 12

// GenerateUserID 基于输入串生成短用户ID
func GenerateUserID(input string) string {
	return CalculateMD5(input)[:UserIDLength]
}
