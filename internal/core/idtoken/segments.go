package idtoken

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Segment 标识 token 的三段
type Segment int

const (
	SegmentHeader Segment = iota
	SegmentPayload
	SegmentSignature
)

// segmentCount 紧凑 JWT 的段数
const segmentCount = 3

func (s Segment) String() string {
	switch s {
	case SegmentHeader:
		return "header"
	case SegmentPayload:
		return "payload"
	case SegmentSignature:
		return "signature"
	default:
		return fmt.Sprintf("segment(%d)", int(s))
	}
}

// rawURL 无填充 URL 安全字母表，拒绝非零尾部比特
var rawURL = base64.RawURLEncoding.Strict()

// Segments 解码后的三段以及原始 base64url 文本
type Segments struct {
	Header    []byte
	Payload   []byte
	Signature []byte

	// Encoded 三段的原始 base64url 文本，按 header/payload/signature 顺序
	Encoded [segmentCount]string
}

// Decode 拆分并解码 token
//
// 不做任何规范化，也不校验 UTF-8；失败时不返回部分结果。
func Decode(token string) (*Segments, error) {
	parts := strings.Split(token, ".")
	if len(parts) != segmentCount {
		return nil, WrapInvalidTokenError(fmt.Sprintf("expected %d segments, got %d", segmentCount, len(parts)))
	}

	var decoded [segmentCount][]byte
	for i, part := range parts {
		seg := Segment(i)
		if part == "" {
			return nil, WrapInvalidTokenError(fmt.Sprintf("%s segment is empty", seg))
		}
		// encoding/base64 会静默跳过换行符，这里必须拒绝
		if strings.ContainsAny(part, "\r\n") {
			return nil, WrapInvalidEncodingError(seg, errors.New("line break in segment"))
		}
		b, err := rawURL.DecodeString(part)
		if err != nil {
			return nil, WrapInvalidEncodingError(seg, err)
		}
		if uint64(len(b)) > math.MaxUint32 {
			return nil, WrapInvalidTokenError(fmt.Sprintf("%s segment exceeds %d bytes", seg, uint64(math.MaxUint32)))
		}
		decoded[i] = b
	}

	return &Segments{
		Header:    decoded[SegmentHeader],
		Payload:   decoded[SegmentPayload],
		Signature: decoded[SegmentSignature],
		Encoded:   [segmentCount]string{parts[0], parts[1], parts[2]},
	}, nil
}
