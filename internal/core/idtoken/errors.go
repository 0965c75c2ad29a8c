// Package idtoken 拆分并解码 OpenID ID token，定位声明（claim）在解码字节中的偏移
package idtoken

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken token 不是恰好三段的紧凑格式
	ErrInvalidToken = errors.New("invalid id token")

	// ErrInvalidEncoding 某一段不是合法的无填充 base64url
	ErrInvalidEncoding = errors.New("invalid base64url encoding")

	// ErrClaimNotFound 声明键或其值的终止符不存在
	ErrClaimNotFound = errors.New("claim not found")
)

// ClaimError 描述具体缺失的声明，errors.Is(err, ErrClaimNotFound) 为 true
type ClaimError struct {
	Key    string
	Reason string
}

func (e *ClaimError) Error() string {
	return fmt.Sprintf("%s: key=%s, reason=%s", ErrClaimNotFound, e.Key, e.Reason)
}

func (e *ClaimError) Unwrap() error {
	return ErrClaimNotFound
}

// WrapInvalidTokenError 包装token格式错误
func WrapInvalidTokenError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidToken, reason)
}

// WrapInvalidEncodingError 包装解码错误，segment 标明失败的段
func WrapInvalidEncodingError(segment Segment, err error) error {
	return fmt.Errorf("%w: segment=%s, cause=%v", ErrInvalidEncoding, segment, err)
}

func claimKeyNotFound(key string) error {
	return &ClaimError{Key: key, Reason: "key not present"}
}

func claimTerminatorNotFound(key string) error {
	return &ClaimError{Key: key, Reason: "value terminator not found"}
}
