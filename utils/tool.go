package utils

import (
	gonanoid "github.com/matoous/go-nanoid"
)

const recordIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// RecordIDLength 预测记录公开编号的长度
const RecordIDLength = 16

// NewRecordID 生成预测记录的公开编号
func NewRecordID() (string, error) {
	return gonanoid.Generate(recordIDAlphabet, RecordIDLength)
}

// ValidateRecordID 校验公开编号格式
func ValidateRecordID(id string) bool {
	if len(id) != RecordIDLength {
		return false
	}
	for _, ch := range id {
		if !isBase62(ch) {
			return false
		}
	}
	return true
}

func isBase62(ch rune) bool {
	return ch >= '0' && ch <= '9' || ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z'
}
