package packed

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ToHex 小写十六进制，带 0x 前缀
func ToHex(data []byte) string {
	return hexutil.Encode(data)
}

// FromHex 解析 ToHex 的输出，两侧空白会被忽略
func FromHex(s string) ([]byte, error) {
	b, err := hexutil.Decode(strings.TrimSpace(s))
	if err != nil {
		return nil, WrapInvalidHexError(err)
	}
	return b, nil
}
