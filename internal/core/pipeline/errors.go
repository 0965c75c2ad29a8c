// Package pipeline 实现每个 CLI 命令的编排：读取输入、调用解码/编码/引擎、原子写出结果
package pipeline

import (
	"errors"
	"fmt"
)

// ErrIO 输入输出文件读写失败
var ErrIO = errors.New("io error")

// WrapIOError 包装文件读写错误
func WrapIOError(op, path string, err error) error {
	return fmt.Errorf("%w: op=%s, path=%s, cause=%v", ErrIO, op, path, err)
}
