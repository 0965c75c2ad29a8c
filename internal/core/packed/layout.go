package packed

import (
	"github.com/zkopenid/oidczk/internal/core/idtoken"
)

// OffsetFields 11 个声明偏移，两种布局共用的前缀
func OffsetFields(claims *idtoken.ClaimOffsets) []Field {
	offsets := claims.Offsets()
	fields := make([]Field, 0, len(offsets))
	for _, off := range offsets {
		fields = append(fields, U32(off))
	}
	return fields
}

// PlainLayout 偏移表 + header/payload/signature 原始字节
func PlainLayout(seg *idtoken.Segments, claims *idtoken.ClaimOffsets) []Field {
	return append(OffsetFields(claims),
		Blob(seg.Header),
		Blob(seg.Payload),
		Blob(seg.Signature),
	)
}

// ZKInputs ZK 布局中偏移表之后的字段
type ZKInputs struct {
	HeaderBase64Len  uint32
	PayloadLeftIndex uint32
	PayloadBase64Len uint32

	IDTokenHash   [32]byte
	SubPepperHash [32]byte
	DomainSize    U128

	Header          []byte
	PayloadPubMatch []byte
	Signature       []byte

	// VKData 打包的验证密钥字（不含长度前缀）
	VKData []byte
	// PublicInputs 依次拼接的 32 字节大端公开输入
	PublicInputs []byte
	Proof        []byte
}

// ZKLayout 偏移表 + 电路索引 + 哈希 + 域大小 + 六个变长字段
func ZKLayout(claims *idtoken.ClaimOffsets, in *ZKInputs) []Field {
	return append(OffsetFields(claims),
		U32(in.HeaderBase64Len),
		U32(in.PayloadLeftIndex),
		U32(in.PayloadBase64Len),
		B32(in.IDTokenHash),
		B32(in.SubPepperHash),
		in.DomainSize,
		Blob(in.Header),
		Blob(in.PayloadPubMatch),
		Blob(in.Signature),
		Blob(in.VKData),
		Blob(in.PublicInputs),
		Blob(in.Proof),
	)
}
