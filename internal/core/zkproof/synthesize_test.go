package zkproof

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkopenid/oidczk/internal/core/idtoken"
)

const (
	testHeader  = `{"alg":"RS256","kid":"k1","typ":"JWT"}`
	testPayload = `{"iss":"https://ex.com","sub":"u1","aud":"c1","iat":100,"exp":200,"nonce":"n1"}`
)

func testToken(header, payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(header)) + "." +
		enc.EncodeToString([]byte(payload)) + "." +
		enc.EncodeToString([]byte("signature"))
}

func testPepper() []byte {
	return bytes.Repeat([]byte{0x5a}, PepperSize)
}

func TestSynthesize_Indices(t *testing.T) {
	token := testToken(testHeader, testPayload)
	parts := strings.Split(token, ".")

	a, err := Synthesize(token, testPepper())
	require.NoError(t, err)

	require.Equal(t, []byte(parts[0]+"."+parts[1]), a.IDTokenBytes)
	require.Equal(t, uint32(0), a.HeaderLeftIndex)
	require.Equal(t, uint32(len(parts[0])), a.HeaderBase64Len)
	require.Equal(t, a.HeaderBase64Len+1, a.PayloadLeftIndex)
	require.Equal(t, uint32(len(parts[1])), a.PayloadBase64Len)
	require.Equal(t, parts[1], string(a.IDTokenBytes[a.PayloadLeftIndex:a.PayloadLeftIndex+a.PayloadBase64Len]))

	require.Equal(t, []byte(testHeader), a.HeaderRawBytes)
	require.Equal(t, []byte(testPayload), a.PayloadRawBytes)
	require.Equal(t, []byte("signature"), a.SignatureBytes)

	require.Equal(t, uint32(strings.Index(testPayload, "u1")), a.SubLeftIndex)
	require.Equal(t, uint32(2), a.SubLen)
}

func TestSynthesize_PayloadPubMatch(t *testing.T) {
	a, err := Synthesize(testToken(testHeader, testPayload), testPepper())
	require.NoError(t, err)

	require.Len(t, a.PayloadPubMatch, len(testPayload))
	left, right := int(a.SubLeftIndex), int(a.SubLeftIndex+a.SubLen)
	require.Equal(t, []byte{0, 0}, a.PayloadPubMatch[left:right])
	require.Equal(t, []byte(testPayload[:left]), a.PayloadPubMatch[:left])
	require.Equal(t, []byte(testPayload[right:]), a.PayloadPubMatch[right:])

	// 原始 payload 不受影响
	require.Equal(t, []byte(testPayload), a.PayloadRawBytes)
}

func TestSynthesize_Hashes(t *testing.T) {
	pepper := testPepper()
	a, err := Synthesize(testToken(testHeader, testPayload), pepper)
	require.NoError(t, err)

	require.Equal(t, append([]byte("u1"), pepper...), a.SubPepperBytes)
	require.Equal(t, sha256.Sum256(a.IDTokenBytes), a.IDTokenHash)
	require.Equal(t, sha256.Sum256(a.SubPepperBytes), a.SubPepperHash)

	inputs := a.PublicInputs()
	require.Len(t, inputs, PublicInputCount)
	require.Equal(t, a.IDTokenHash[:16], inputs[0][16:])
	require.Equal(t, make([]byte, 16), inputs[0][:16])
	require.Equal(t, a.IDTokenHash[16:], inputs[1][16:])
	require.Equal(t, a.SubPepperCommitment[:], inputs[2])

	require.Equal(t, new(big.Int).SetBytes(a.SubPepperCommitment[:]), a.Assignment.SubPepperCommitment)
}

func TestSynthesize_CommitmentDependsOnPepper(t *testing.T) {
	token := testToken(testHeader, testPayload)
	a, err := Synthesize(token, testPepper())
	require.NoError(t, err)

	other := testPepper()
	other[31] ^= 1
	b, err := Synthesize(token, other)
	require.NoError(t, err)

	require.Equal(t, a.IDTokenHash, b.IDTokenHash)
	require.NotEqual(t, a.SubPepperCommitment, b.SubPepperCommitment)
	require.NotEqual(t, a.SubPepperHash, b.SubPepperHash)

	again, err := Synthesize(token, testPepper())
	require.NoError(t, err)
	require.Equal(t, a.SubPepperCommitment, again.SubPepperCommitment)
}

func TestSynthesize_Errors(t *testing.T) {
	t.Run("short pepper", func(t *testing.T) {
		_, err := Synthesize(testToken(testHeader, testPayload), make([]byte, 31))
		require.True(t, errors.Is(err, ErrInvalidPepper))
		require.True(t, errors.Is(err, ErrExternalEngine))
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := Synthesize("a.b", testPepper())
		require.True(t, errors.Is(err, idtoken.ErrInvalidToken))
	})

	t.Run("missing sub", func(t *testing.T) {
		_, err := Synthesize(testToken(testHeader, `{"iss":"x"}`), testPepper())
		require.True(t, errors.Is(err, idtoken.ErrClaimNotFound))
	})

	t.Run("sub too long", func(t *testing.T) {
		payload := `{"sub":"` + strings.Repeat("x", MaxSubLen+1) + `"}`
		_, err := Synthesize(testToken(testHeader, payload), testPepper())
		require.True(t, errors.Is(err, ErrInvalidWitness))
	})

	t.Run("max sub", func(t *testing.T) {
		payload := `{"sub":"` + strings.Repeat("x", MaxSubLen) + `"}`
		a, err := Synthesize(testToken(testHeader, payload), testPepper())
		require.NoError(t, err)
		require.Equal(t, uint32(MaxSubLen), a.SubLen)
	})
}

func TestParsePepper(t *testing.T) {
	hex64 := strings.Repeat("ab", PepperSize)

	b, err := ParsePepper(hex64)
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{0xab}, PepperSize), b)

	b2, err := ParsePepper(" 0x" + hex64 + "\n")
	require.NoError(t, err)
	require.Equal(t, b, b2)

	for _, bad := range []string{"", "0x", "abcd", hex64 + "00", strings.Repeat("zz", PepperSize)} {
		_, err := ParsePepper(bad)
		require.True(t, errors.Is(err, ErrInvalidPepper), "input %q", bad)
	}
}
