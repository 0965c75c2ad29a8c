package packed

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode_ExactBytes(t *testing.T) {
	fields := []Field{
		U32(1),
		U32(0xdeadbeef),
		B32{0: 0xaa, 31: 0xbb},
		U128{Hi: 1, Lo: 2},
		Blob("ab"),
		Blob(nil),
	}

	out, err := Encode(fields)
	require.NoError(t, err)

	want := []byte{0, 0, 0, 1, 0xde, 0xad, 0xbe, 0xef}
	b32 := make([]byte, 32)
	b32[0], b32[31] = 0xaa, 0xbb
	want = append(want, b32...)
	want = append(want, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 2)
	want = append(want, 0, 0, 0, 2, 'a', 'b')
	want = append(want, 0, 0, 0, 0)
	require.Equal(t, want, out)

	size := 0
	for _, f := range fields {
		size += f.Size()
	}
	require.Len(t, out, size)
}

func TestEncode_Empty(t *testing.T) {
	out, err := Encode(nil)
	require.NoError(t, err)
	require.Empty(t, out)

	s, err := EncodeHex(nil)
	require.NoError(t, err)
	require.Equal(t, "0x", s)
}

func TestEncode_Deterministic(t *testing.T) {
	fields := []Field{U32(7), Blob("payload"), U128{Lo: 1 << 20}}
	a, err := EncodeHex(fields)
	require.NoError(t, err)
	b, err := EncodeHex(fields)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestHex_RoundTrip(t *testing.T) {
	data := []byte{0x00, 0x01, 0xab, 0xff}
	s := ToHex(data)
	require.Equal(t, "0x0001abff", s)

	back, err := FromHex(s)
	require.NoError(t, err)
	require.Equal(t, data, back)

	back, err = FromHex("  0x0001ABFF\n")
	require.NoError(t, err)
	require.Equal(t, data, back)
}

func TestFromHex_Invalid(t *testing.T) {
	for _, s := range []string{"", "0001", "0x0", "0xzz"} {
		_, err := FromHex(s)
		require.True(t, errors.Is(err, ErrInvalidHex), "input %q", s)
	}
}

func TestU128_JSON(t *testing.T) {
	v := U128{Hi: 1, Lo: 0}
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, "18446744073709551616", string(data))

	var back U128
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, v, back)

	require.NoError(t, json.Unmarshal([]byte(`"8192"`), &back))
	require.Equal(t, NewU128(8192), back)

	require.Error(t, json.Unmarshal([]byte(`-1`), &back))
	require.Error(t, json.Unmarshal([]byte(`340282366920938463463374607431768211456`), &back))
}
