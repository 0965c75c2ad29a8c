package packed

import (
	"math"
)

// Encode 按顺序拼接字段
//
// 输出只依赖字段值；任何 Blob 超过 math.MaxUint32 字节时返回 ErrBlobTooLarge，不输出部分结果。
func Encode(fields []Field) ([]byte, error) {
	size := 0
	for i, f := range fields {
		if b, ok := f.(Blob); ok && uint64(len(b)) > math.MaxUint32 {
			return nil, WrapBlobTooLargeError(i, len(b))
		}
		size += f.Size()
	}

	out := make([]byte, 0, size)
	for _, f := range fields {
		out = f.AppendTo(out)
	}
	return out, nil
}

// EncodeHex Encode 后转为 0x 十六进制
func EncodeHex(fields []Field) (string, error) {
	data, err := Encode(fields)
	if err != nil {
		return "", err
	}
	return ToHex(data), nil
}
