package packed

import (
	"encoding/binary"
	"math"
	"math/big"
	"strings"
)

// Field 布局中的一个字段
type Field interface {
	// Size 字段编码后的字节数
	Size() int
	// AppendTo 追加字段编码，dst 必须已有足够容量或允许扩容
	AppendTo(dst []byte) []byte
}

// U32 4 字节大端整数
type U32 uint32

func (U32) Size() int { return 4 }

func (v U32) AppendTo(dst []byte) []byte {
	return binary.BigEndian.AppendUint32(dst, uint32(v))
}

// U128 16 字节大端整数
type U128 struct {
	Hi uint64
	Lo uint64
}

// NewU128 从 uint64 构造
func NewU128(v uint64) U128 {
	return U128{Lo: v}
}

func (U128) Size() int { return 16 }

func (v U128) AppendTo(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint64(dst, v.Hi)
	return binary.BigEndian.AppendUint64(dst, v.Lo)
}

// BigInt 转为 big.Int
func (v U128) BigInt() *big.Int {
	b := new(big.Int).SetUint64(v.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(v.Lo))
}

// String 十进制表示
func (v U128) String() string {
	return v.BigInt().String()
}

// MarshalJSON 输出无引号的十进制数字
func (v U128) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalJSON 接受十进制数字（带或不带引号）
func (v *U128) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	b, ok := new(big.Int).SetString(s, 10)
	if !ok || b.Sign() < 0 || b.BitLen() > 128 {
		return &u128Error{input: s}
	}
	lo := new(big.Int).And(b, new(big.Int).SetUint64(math.MaxUint64))
	v.Lo = lo.Uint64()
	v.Hi = new(big.Int).Rsh(b, 64).Uint64()
	return nil
}

type u128Error struct {
	input string
}

func (e *u128Error) Error() string {
	return "invalid u128: " + e.input
}

// B32 32 字节定长值（哈希、域元素）
type B32 [32]byte

func (B32) Size() int { return 32 }

func (v B32) AppendTo(dst []byte) []byte {
	return append(dst, v[:]...)
}

// Blob 带 4 字节长度前缀的变长字节
type Blob []byte

func (v Blob) Size() int { return 4 + len(v) }

func (v Blob) AppendTo(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(v)))
	return append(dst, v...)
}
