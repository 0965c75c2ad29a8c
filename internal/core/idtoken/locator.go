package idtoken

import (
	"bytes"
)

var (
	// fieldTerminator 值之后还有字段
	fieldTerminator = []byte(`","`)
	// objectTerminator 值是对象的最后一个字段
	objectTerminator = []byte(`"}`)
)

// ClaimSpan 声明值在所属段中的字节区间 [Left, Right)
type ClaimSpan struct {
	Left  int
	Right int
}

// Len 返回值的字节长度
func (s ClaimSpan) Len() int {
	return s.Right - s.Left
}

// Value 返回 data 中对应的值字节（不复制）
func (s ClaimSpan) Value(data []byte) []byte {
	return data[s.Left:s.Right]
}

// IndexFrom 从 start 开始查找 pattern 第一次出现的位置（绝对偏移），未找到返回 -1
func IndexFrom(data, pattern []byte, start int) int {
	if len(pattern) == 0 || start < 0 || start > len(data) {
		return -1
	}
	i := bytes.Index(data[start:], pattern)
	if i < 0 {
		return -1
	}
	return start + i
}

func stringKeyPattern(key string) []byte {
	return []byte(`"` + key + `":"`)
}

func numericKeyPattern(key string) []byte {
	return []byte(`"` + key + `":`)
}

// LocateStringStart 返回字符串声明值第一个字节的偏移，不查找终止符
func LocateStringStart(data []byte, key string) (int, error) {
	return LocateStringStartFrom(data, key, 0)
}

// LocateStringStartFrom 同 LocateStringStart，从 start 开始搜索
func LocateStringStartFrom(data []byte, key string, start int) (int, error) {
	pattern := stringKeyPattern(key)
	i := IndexFrom(data, pattern, start)
	if i < 0 {
		return 0, claimKeyNotFound(key)
	}
	return i + len(pattern), nil
}

// LocateStringClaim 定位字符串声明值的区间
//
// 值在 left 之后最近的 `","` 或 `"}` 处结束，取两者中较近的一个：
// 嵌套对象里的最后一个字段在 `"}` 处结束，而不是跨到外层对象的 `","`。
// 两者都不存在时返回 ErrClaimNotFound。
// 重复的键只取第一次出现。
func LocateStringClaim(data []byte, key string) (ClaimSpan, error) {
	return LocateStringClaimFrom(data, key, 0)
}

// LocateStringClaimFrom 同 LocateStringClaim，从 start 开始搜索
func LocateStringClaimFrom(data []byte, key string, start int) (ClaimSpan, error) {
	left, err := LocateStringStartFrom(data, key, start)
	if err != nil {
		return ClaimSpan{}, err
	}

	right := IndexFrom(data, fieldTerminator, left)
	if right >= 0 {
		// 值内没有转义引号，因此较近的终止符才是真正的结尾，
		// 否则嵌套对象里的最后一个字段会跨过 "} 命中外层的 ","
		if end := IndexFrom(data[:right+1], objectTerminator, left); end >= 0 {
			right = end
		}
	} else {
		right = IndexFrom(data, objectTerminator, left)
	}
	if right < 0 {
		return ClaimSpan{}, claimTerminatorNotFound(key)
	}

	return ClaimSpan{Left: left, Right: right}, nil
}

// LocateNumericClaim 返回数值声明值第一个字节的偏移
//
// 数值声明没有右边界，外部电路按定长读取。
func LocateNumericClaim(data []byte, key string) (int, error) {
	return LocateNumericClaimFrom(data, key, 0)
}

// LocateNumericClaimFrom 同 LocateNumericClaim，从 start 开始搜索
func LocateNumericClaimFrom(data []byte, key string, start int) (int, error) {
	pattern := numericKeyPattern(key)
	i := IndexFrom(data, pattern, start)
	if i < 0 {
		return 0, claimKeyNotFound(key)
	}
	return i + len(pattern), nil
}
