package idtoken

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func b64(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func buildToken(header, payload string, sig []byte) string {
	return b64(header) + "." + b64(payload) + "." + base64.RawURLEncoding.EncodeToString(sig)
}

func TestDecode_ThreeSegments(t *testing.T) {
	sig := []byte{0x00, 0xff, 0x10, 0x7f, 0x80}
	token := buildToken(`{"kid":"k1"}`, `{"sub":"u1"}`, sig)

	seg, err := Decode(token)
	require.NoError(t, err)
	require.Equal(t, []byte(`{"kid":"k1"}`), seg.Header)
	require.Equal(t, []byte(`{"sub":"u1"}`), seg.Payload)
	require.Equal(t, sig, seg.Signature)
	require.Equal(t, strings.Split(token, "."), seg.Encoded[:])
}

func TestDecode_SegmentCount(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"one segment", b64("{}")},
		{"two segments", b64("{}") + "." + b64("{}")},
		{"four segments", b64("{}") + "." + b64("{}") + "." + b64("x") + "." + b64("y")},
		{"empty string", ""},
		{"empty middle", b64("{}") + ".." + b64("x")},
		{"empty signature", b64("{}") + "." + b64("{}") + "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, err := Decode(tt.token)
			require.Nil(t, seg)
			require.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}

func TestDecode_InvalidEncoding(t *testing.T) {
	good := b64(`{"a":"b"}`)
	tests := []struct {
		name    string
		token   string
		segment string
	}{
		{"padding in header", b64("ab") + "==." + good + "." + good, "header"},
		{"std alphabet in payload", good + ".a+b/." + good, "payload"},
		{"bad length in signature", good + "." + good + ".a", "signature"},
		{"line break", good + "." + good + ".ab\ncd", "signature"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token)
			require.True(t, errors.Is(err, ErrInvalidEncoding), "got %v", err)
			require.Contains(t, err.Error(), "segment="+tt.segment)
		})
	}
}

func TestDecode_RejectsNonCanonicalTrailingBits(t *testing.T) {
	// "QR" 的尾部比特非零，严格模式下必须失败
	good := b64("{}")
	_, err := Decode(good + "." + good + ".QR")
	require.True(t, errors.Is(err, ErrInvalidEncoding))
}

func TestSegment_String(t *testing.T) {
	require.Equal(t, "header", SegmentHeader.String())
	require.Equal(t, "payload", SegmentPayload.String())
	require.Equal(t, "signature", SegmentSignature.String())
	require.Equal(t, "segment(5)", Segment(5).String())
}
