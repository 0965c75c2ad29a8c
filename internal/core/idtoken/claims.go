package idtoken

import (
	"fmt"
)

// 声明键
const (
	ClaimIss   = "iss"
	ClaimKid   = "kid"
	ClaimSub   = "sub"
	ClaimAud   = "aud"
	ClaimNonce = "nonce"
	ClaimIat   = "iat"
	ClaimExp   = "exp"
)

// OffsetCount 偏移表中的偏移数量
const OffsetCount = 11

// ClaimOffsets 外部验证方需要的全部声明偏移
//
// Kid 相对 header，其余相对 payload。
type ClaimOffsets struct {
	Iss   ClaimSpan
	Kid   ClaimSpan
	Sub   ClaimSpan
	Aud   ClaimSpan
	Nonce int // 只有起始偏移
	Iat   int
	Exp   int
}

// LocateClaims 在解码后的段中定位全部声明
func LocateClaims(seg *Segments) (*ClaimOffsets, error) {
	var (
		out ClaimOffsets
		err error
	)

	if out.Iss, err = LocateStringClaim(seg.Payload, ClaimIss); err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	if out.Kid, err = LocateStringClaim(seg.Header, ClaimKid); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if out.Sub, err = LocateStringClaim(seg.Payload, ClaimSub); err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	if out.Aud, err = LocateStringClaim(seg.Payload, ClaimAud); err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	if out.Nonce, err = LocateStringStart(seg.Payload, ClaimNonce); err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	if out.Iat, err = LocateNumericClaim(seg.Payload, ClaimIat); err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	if out.Exp, err = LocateNumericClaim(seg.Payload, ClaimExp); err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	return &out, nil
}

// Offsets 按输出布局顺序返回 11 个偏移：
// iss.left, iss.right, kid.left, kid.right, sub.left, sub.right,
// aud.left, aud.right, nonce.left, iat.left, exp.left
func (o *ClaimOffsets) Offsets() [OffsetCount]uint32 {
	return [OffsetCount]uint32{
		toUint32(o.Iss.Left), toUint32(o.Iss.Right),
		toUint32(o.Kid.Left), toUint32(o.Kid.Right),
		toUint32(o.Sub.Left), toUint32(o.Sub.Right),
		toUint32(o.Aud.Left), toUint32(o.Aud.Right),
		toUint32(o.Nonce),
		toUint32(o.Iat),
		toUint32(o.Exp),
	}
}

// toUint32 偏移不超过段长度，Decode 已保证段长度在 uint32 范围内
func toUint32(v int) uint32 {
	return uint32(v)
}

// Parse 解码 token 并定位声明
//
// 段数错误时在任何定位之前返回 ErrInvalidToken。
func Parse(token string) (*Segments, *ClaimOffsets, error) {
	seg, err := Decode(token)
	if err != nil {
		return nil, nil, err
	}
	claims, err := LocateClaims(seg)
	if err != nil {
		return nil, nil, err
	}
	return seg, claims, nil
}
