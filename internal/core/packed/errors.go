// Package packed 把偏移表和定长/变长字段拼接成确定性的紧凑字节布局
//
// 所有整数为大端，没有填充也没有对齐；变长字段前缀 4 字节的字节数。
package packed

import (
	"errors"
	"fmt"
)

var (
	// ErrBlobTooLarge 变长字段超过 4 字节长度前缀能表示的范围
	ErrBlobTooLarge = errors.New("blob too large for u32 length prefix")

	// ErrInvalidHex 输入不是 0x 前缀的十六进制
	ErrInvalidHex = errors.New("invalid 0x hex")
)

// WrapBlobTooLargeError 包装变长字段超长错误
func WrapBlobTooLargeError(index int, size int) error {
	return fmt.Errorf("%w: field=%d, size=%d", ErrBlobTooLarge, index, size)
}

// WrapInvalidHexError 包装十六进制解码错误
func WrapInvalidHexError(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidHex, err)
}
