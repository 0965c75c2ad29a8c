package zkproof

import (
	"crypto/sha256"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/zkopenid/oidczk/internal/core/idtoken"
)

// CircuitArtifacts 从 token 和 pepper 合成的电路输入及合约侧索引
type CircuitArtifacts struct {
	// IDTokenBytes 签名输入 "header.payload"（base64url 文本）
	IDTokenBytes    []byte
	HeaderRawBytes  []byte
	PayloadRawBytes []byte
	SignatureBytes  []byte
	PayloadPubMatch []byte // payload，sub 值字节置零

	// 以下索引相对 IDTokenBytes
	HeaderLeftIndex  uint32
	HeaderBase64Len  uint32
	PayloadLeftIndex uint32
	PayloadBase64Len uint32

	// 相对解码后的 payload
	SubLeftIndex uint32
	SubLen       uint32

	SubPepperBytes []byte

	IDTokenHash         [32]byte // SHA-256(IDTokenBytes)
	SubPepperHash       [32]byte // SHA-256(SubPepperBytes)
	SubPepperCommitment [32]byte // 电路内 MiMC 承诺

	Assignment *OpenIDCircuit
}

// ParsePepper 解析 32 字节十六进制 pepper，0x 前缀可选
func ParsePepper(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, WrapInvalidPepperError("pepper is required")
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, WrapInvalidPepperError(err.Error())
	}
	if len(b) != PepperSize {
		return nil, WrapInvalidPepperError(fmt.Sprintf("expected %d bytes, got %d", PepperSize, len(b)))
	}
	return b, nil
}

// Synthesize 合成电路见证
//
// token 解码失败时返回 idtoken 的错误；pepper 必须恰好 32 字节。
func Synthesize(token string, pepper []byte) (*CircuitArtifacts, error) {
	if len(pepper) != PepperSize {
		return nil, WrapInvalidPepperError(fmt.Sprintf("expected %d bytes, got %d", PepperSize, len(pepper)))
	}

	seg, err := idtoken.Decode(token)
	if err != nil {
		return nil, err
	}
	sub, err := idtoken.LocateStringClaim(seg.Payload, idtoken.ClaimSub)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	if sub.Len() > MaxSubLen {
		return nil, WrapInvalidWitnessError(fmt.Sprintf("sub is %d bytes, max %d", sub.Len(), MaxSubLen))
	}

	header64, payload64 := seg.Encoded[idtoken.SegmentHeader], seg.Encoded[idtoken.SegmentPayload]
	idTokenBytes := []byte(header64 + "." + payload64)

	pubMatch := make([]byte, len(seg.Payload))
	copy(pubMatch, seg.Payload)
	for i := sub.Left; i < sub.Right; i++ {
		pubMatch[i] = 0
	}

	subBytes := sub.Value(seg.Payload)
	subPepper := make([]byte, 0, len(subBytes)+len(pepper))
	subPepper = append(subPepper, subBytes...)
	subPepper = append(subPepper, pepper...)

	a := &CircuitArtifacts{
		IDTokenBytes:     idTokenBytes,
		HeaderRawBytes:   seg.Header,
		PayloadRawBytes:  seg.Payload,
		SignatureBytes:   seg.Signature,
		PayloadPubMatch:  pubMatch,
		HeaderLeftIndex:  0,
		HeaderBase64Len:  uint32(len(header64)),
		PayloadLeftIndex: uint32(len(header64) + 1),
		PayloadBase64Len: uint32(len(payload64)),
		SubLeftIndex:     uint32(sub.Left),
		SubLen:           uint32(sub.Len()),
		SubPepperBytes:   subPepper,
		IDTokenHash:      sha256.Sum256(idTokenBytes),
		SubPepperHash:    sha256.Sum256(subPepper),
	}

	chunks := subChunks(subBytes)
	pepperHi, pepperLo := pepper[:PepperSize/2], pepper[PepperSize/2:]
	commitment, err := subPepperCommitment(len(subBytes), chunks, pepperHi, pepperLo)
	if err != nil {
		return nil, WrapInvalidWitnessError(err.Error())
	}
	a.SubPepperCommitment = commitment

	assignment := &OpenIDCircuit{
		IDTokenHashHi:       new(big.Int).SetBytes(a.IDTokenHash[:16]),
		IDTokenHashLo:       new(big.Int).SetBytes(a.IDTokenHash[16:]),
		SubPepperCommitment: new(big.Int).SetBytes(commitment[:]),
		SubLen:              len(subBytes),
		PepperHi:            new(big.Int).SetBytes(pepperHi),
		PepperLo:            new(big.Int).SetBytes(pepperLo),
	}
	for i, c := range chunks {
		assignment.SubChunks[i] = new(big.Int).SetBytes(c)
	}
	a.Assignment = assignment

	return a, nil
}

// PublicInputs 电路公开输入，每个 32 字节大端，顺序与 OpenIDCircuit 字段一致
func (a *CircuitArtifacts) PublicInputs() [][]byte {
	return [][]byte{
		leftPad(a.IDTokenHash[:16]),
		leftPad(a.IDTokenHash[16:]),
		leftPad(a.SubPepperCommitment[:]),
	}
}

// subChunks sub 右侧补零到 MaxSubLen 后按 31 字节切分
func subChunks(sub []byte) [SubChunkCount][]byte {
	padded := make([]byte, MaxSubLen)
	copy(padded, sub)
	var out [SubChunkCount][]byte
	for i := range out {
		out[i] = padded[i*SubChunkBytes : (i+1)*SubChunkBytes]
	}
	return out
}

// subPepperCommitment 与电路内相同顺序的原生 MiMC
func subPepperCommitment(subLen int, chunks [SubChunkCount][]byte, pepperHi, pepperLo []byte) ([32]byte, error) {
	var out [32]byte
	h := mimc.NewMiMC()

	blocks := make([][]byte, 0, SubChunkCount+3)
	blocks = append(blocks, leftPad(big.NewInt(int64(subLen)).Bytes()))
	for _, c := range chunks {
		blocks = append(blocks, leftPad(c))
	}
	blocks = append(blocks, leftPad(pepperHi), leftPad(pepperLo))

	for _, b := range blocks {
		if _, err := h.Write(b); err != nil {
			return out, err
		}
	}
	copy(out[:], h.Sum(nil))
	return out, nil
}

// leftPad 左侧补零到 32 字节
func leftPad(b []byte) []byte {
	out := make([]byte, FieldElementSize)
	copy(out[FieldElementSize-len(b):], b)
	return out
}
