package testutil

import (
	"encoding/base64"
	"strings"
)

// ==================== token Fixtures ====================

const (
	// SampleHeader 带 kid 的最小 header
	SampleHeader = `{"alg":"RS256","kid":"k1","typ":"JWT"}`

	// SamplePayload nonce 为最后一个字段
	SamplePayload = `{"iss":"https://ex.com","sub":"u1","aud":"c1","iat":100,"exp":200,"nonce":"n1"}`

	// SamplePepper 32 字节 pepper 的十六进制
	SamplePepper = "0x000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
)

// SampleSignature 固定的签名字节
func SampleSignature() []byte {
	sig := make([]byte, 256)
	for i := range sig {
		sig[i] = byte(i)
	}
	return sig
}

// EncodeSegment 无填充 base64url
func EncodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// BuildToken 拼接三段 token
func BuildToken(header, payload string, signature []byte) string {
	return strings.Join([]string{
		EncodeSegment([]byte(header)),
		EncodeSegment([]byte(payload)),
		EncodeSegment(signature),
	}, ".")
}

// SampleToken 由 SampleHeader、SamplePayload、SampleSignature 组成的 token
func SampleToken() string {
	return BuildToken(SampleHeader, SamplePayload, SampleSignature())
}

// SamplePepperBytes SamplePepper 的字节形式
func SamplePepperBytes() []byte {
	out := make([]byte, 32)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}
