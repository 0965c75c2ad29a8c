package zkproof

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	kzg_bn254 "github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/consensys/gnark/constraint"
)

// Params 规范形式的 KZG 参考串以及文件哈希
type Params struct {
	SRS  *kzg_bn254.SRS
	Hash [32]byte
}

// NewParams 生成 2^k+3 个 G1 点的参考串
//
// tau 来自本地随机数且生成后即丢弃，只适合开发和测试。
func NewParams(k uint32) (*kzg_bn254.SRS, error) {
	if k == 0 || k > 30 {
		return nil, WrapInvalidParamsError("", fmt.Errorf("k=%d out of range", k))
	}
	tau, err := rand.Int(rand.Reader, ecc.BN254.ScalarField())
	if err != nil {
		return nil, WrapInvalidParamsError("", err)
	}
	srs, err := kzg_bn254.NewSRS(uint64(1)<<k+3, tau)
	if err != nil {
		return nil, WrapInvalidParamsError("", err)
	}
	return srs, nil
}

// MarshalParams 序列化参考串
func MarshalParams(srs *kzg_bn254.SRS) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := srs.WriteTo(&buf); err != nil {
		return nil, WrapInvalidParamsError("", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalParams 反序列化参考串，Hash 为输入字节的 SHA-256
func UnmarshalParams(data []byte) (*Params, error) {
	if err := checkSRSLayout(data); err != nil {
		return nil, err
	}
	srs := new(kzg_bn254.SRS)
	if _, err := srs.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return &Params{SRS: srs, Hash: sha256.Sum256(data)}, nil
}

// DomainSize 电路评估域大小
func DomainSize(ccs constraint.ConstraintSystem) uint64 {
	return ecc.NextPowerOfTwo(uint64(ccs.GetNbConstraints() + ccs.GetNbPublicVariables()))
}

// SRSFor 从规范参考串截取电路需要的部分并转换出拉格朗日形式
func (p *Params) SRSFor(ccs constraint.ConstraintSystem) (*kzg_bn254.SRS, *kzg_bn254.SRS, error) {
	size := DomainSize(ccs)
	if int(size)+3 > len(p.SRS.Pk.G1) {
		return nil, nil, WrapParamsTooSmallError(int(size)+3, len(p.SRS.Pk.G1))
	}

	canonical := &kzg_bn254.SRS{Vk: p.SRS.Vk}
	canonical.Pk.G1 = p.SRS.Pk.G1[:size+3]

	lagrange := &kzg_bn254.SRS{Vk: p.SRS.Vk}
	g1, err := kzg_bn254.ToLagrangeG1(p.SRS.Pk.G1[:size])
	if err != nil {
		return nil, nil, WrapSetupFailedError(err)
	}
	lagrange.Pk.G1 = g1

	return canonical, lagrange, nil
}
