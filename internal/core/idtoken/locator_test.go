package idtoken

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePayload = `{"iss":"https://ex.com","sub":"u1","aud":"c1","iat":100,"exp":200,"nonce":"n1"}`

func TestLocateStringClaim_Iss(t *testing.T) {
	data := []byte(samplePayload)

	span, err := LocateStringClaim(data, "iss")
	require.NoError(t, err)
	require.Equal(t, 8, span.Left)
	require.Equal(t, byte('h'), data[span.Left])
	require.Equal(t, strings.Index(samplePayload, `","sub"`), span.Right)
	require.Equal(t, byte('"'), data[span.Right])
	require.Equal(t, "https://ex.com", string(span.Value(data)))
	require.Equal(t, len("https://ex.com"), span.Len())
}

func TestLocateNumericClaim_Iat(t *testing.T) {
	data := []byte(samplePayload)

	left, err := LocateNumericClaim(data, "iat")
	require.NoError(t, err)
	require.Equal(t, strings.Index(samplePayload, "100"), left)
	require.Equal(t, byte('1'), data[left])

	left, err = LocateNumericClaim(data, "exp")
	require.NoError(t, err)
	require.Equal(t, "200", string(data[left:left+3]))
}

func TestLocateStringClaim_LastKeyUsesObjectTerminator(t *testing.T) {
	data := []byte(samplePayload)

	// 靠前的字段仍然使用 "," 终止符
	for _, key := range []string{"sub", "aud"} {
		span, err := LocateStringClaim(data, key)
		require.NoError(t, err)
		require.Equal(t, `","`, string(data[span.Right:span.Right+3]), key)
	}

	// nonce 是最后一个字段，回退到 "}
	span, err := LocateStringClaim(data, "nonce")
	require.NoError(t, err)
	require.Equal(t, "n1", string(span.Value(data)))
	require.Equal(t, len(data)-2, span.Right)
}

func TestLocateStringClaim_NestedObjectDoesNotMisfire(t *testing.T) {
	// sub 是嵌套对象的最后一个字段，后面的 "," 属于外层对象
	payload := `{"ext":{"sub":"u1"},"aud":"c1","x":"y"}`
	data := []byte(payload)

	span, err := LocateStringClaim(data, "sub")
	require.NoError(t, err)
	require.Equal(t, "u1", string(span.Value(data)))

	span, err = LocateStringClaim(data, "aud")
	require.NoError(t, err)
	require.Equal(t, "c1", string(span.Value(data)))
}

func TestLocateStringClaim_LastKeyAfterNestedObject(t *testing.T) {
	payload := `{"iat":1,"ext":{"a":"b"},"sub":"u1"}`
	data := []byte(payload)

	span, err := LocateStringClaim(data, "sub")
	require.NoError(t, err)
	require.Equal(t, "u1", string(span.Value(data)))
	require.Equal(t, len(data)-2, span.Right)
}

func TestLocateStringClaim_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := LocateStringClaim([]byte(samplePayload), "email")
		require.True(t, errors.Is(err, ErrClaimNotFound))

		var claimErr *ClaimError
		require.True(t, errors.As(err, &claimErr))
		require.Equal(t, "email", claimErr.Key)
	})

	t.Run("numeric claim is not a string claim", func(t *testing.T) {
		_, err := LocateStringClaim([]byte(samplePayload), "iat")
		require.True(t, errors.Is(err, ErrClaimNotFound))
	})

	t.Run("no terminator", func(t *testing.T) {
		_, err := LocateStringClaim([]byte(`{"sub":"u1`), "sub")
		require.True(t, errors.Is(err, ErrClaimNotFound))
		require.Contains(t, err.Error(), "terminator")
	})

	t.Run("missing numeric", func(t *testing.T) {
		_, err := LocateNumericClaim([]byte(`{"sub":"u1"}`), "exp")
		require.True(t, errors.Is(err, ErrClaimNotFound))
	})
}

func TestLocateStringClaim_Idempotent(t *testing.T) {
	data := []byte(samplePayload)
	for _, key := range []string{"iss", "sub", "aud", "nonce"} {
		first, err := LocateStringClaim(data, key)
		require.NoError(t, err)
		second, err := LocateStringClaim(data, key)
		require.NoError(t, err)
		require.Equal(t, first, second)
	}
}

func TestLocate_FirstOccurrenceWins(t *testing.T) {
	data := []byte(`{"sub":"first","sub":"second"}`)

	span, err := LocateStringClaim(data, "sub")
	require.NoError(t, err)
	require.Equal(t, "first", string(span.Value(data)))

	span, err = LocateStringClaimFrom(data, "sub", span.Right)
	require.NoError(t, err)
	require.Equal(t, "second", string(span.Value(data)))
}

func TestLocateStringStart(t *testing.T) {
	data := []byte(samplePayload)
	left, err := LocateStringStart(data, "nonce")
	require.NoError(t, err)
	require.Equal(t, strings.Index(samplePayload, "n1"), left)

	_, err = LocateStringStartFrom(data, "nonce", left)
	require.True(t, errors.Is(err, ErrClaimNotFound))
}

func TestIndexFrom(t *testing.T) {
	data := []byte("abcabc")
	require.Equal(t, 0, IndexFrom(data, []byte("abc"), 0))
	require.Equal(t, 3, IndexFrom(data, []byte("abc"), 1))
	require.Equal(t, -1, IndexFrom(data, []byte("abc"), 4))
	require.Equal(t, -1, IndexFrom(data, []byte("abc"), 6))
	require.Equal(t, -1, IndexFrom(data, []byte("abc"), 7))
	require.Equal(t, -1, IndexFrom(data, []byte("abc"), -1))
	require.Equal(t, -1, IndexFrom(data, nil, 0))
}
