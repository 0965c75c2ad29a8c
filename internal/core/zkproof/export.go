package zkproof

import (
	"encoding/binary"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/plonk"
	plonk_bn254 "github.com/consensys/gnark/backend/plonk/bn254"
	"github.com/consensys/gnark/backend/witness"
)

// VKData 把验证密钥打包成 32 字节字序列
//
// 顺序：size, size_inv, generator, nb_public, coset_shift,
// S[0..2], Ql, Qr, Qm, Qo, Qk, Qcp..., kzg.G1, kzg.G2[0], kzg.G2[1]。
// G1 点为 x‖y，G2 点为 gnark-crypto 的原始编码；整数左侧补零。
func VKData(vk plonk.VerifyingKey) ([]byte, error) {
	v, ok := vk.(*plonk_bn254.VerifyingKey)
	if !ok {
		return nil, WrapInvalidKeyError("", fmt.Errorf("unexpected verifying key type %T", vk))
	}

	out := make([]byte, 0, 32*(5+2*(8+len(v.Qcp)+1)+8))
	out = appendUint64Word(out, v.Size)
	out = appendElement(out, &v.SizeInv)
	out = appendElement(out, &v.Generator)
	out = appendUint64Word(out, v.NbPublicVariables)
	out = appendElement(out, &v.CosetShift)
	for i := range v.S {
		out = appendG1(out, &v.S[i])
	}
	for _, d := range []*bn254.G1Affine{&v.Ql, &v.Qr, &v.Qm, &v.Qo, &v.Qk} {
		out = appendG1(out, d)
	}
	for i := range v.Qcp {
		out = appendG1(out, &v.Qcp[i])
	}
	out = appendG1(out, &v.Kzg.G1)
	for i := range v.Kzg.G2 {
		b := v.Kzg.G2[i].RawBytes()
		out = append(out, b[:]...)
	}
	return out, nil
}

// ProofData 合约校验格式的证明
func ProofData(proof plonk.Proof) ([]byte, error) {
	p, ok := proof.(*plonk_bn254.Proof)
	if !ok {
		return nil, WrapInvalidProofError(fmt.Sprintf("unexpected proof type %T", proof))
	}
	return p.MarshalSolidity(), nil
}

// DomainSizeOf 验证密钥记录的评估域大小
func DomainSizeOf(vk plonk.VerifyingKey) (uint64, error) {
	v, ok := vk.(*plonk_bn254.VerifyingKey)
	if !ok {
		return 0, WrapInvalidKeyError("", fmt.Errorf("unexpected verifying key type %T", vk))
	}
	return v.Size, nil
}

// sameSRS 验证密钥是否由该参考串派生
func sameSRS(vk plonk.VerifyingKey, p *Params) bool {
	v, ok := vk.(*plonk_bn254.VerifyingKey)
	if !ok {
		return false
	}
	return v.Kzg.G1.Equal(&p.SRS.Vk.G1) &&
		v.Kzg.G2[0].Equal(&p.SRS.Vk.G2[0]) &&
		v.Kzg.G2[1].Equal(&p.SRS.Vk.G2[1])
}

// publicInputsOf 从完整见证中取出公开部分，每个 32 字节大端
func publicInputsOf(w witness.Witness) ([][]byte, error) {
	pw, err := w.Public()
	if err != nil {
		return nil, WrapInvalidWitnessError(err.Error())
	}
	vec, ok := pw.Vector().(fr.Vector)
	if !ok {
		return nil, WrapInvalidWitnessError(fmt.Sprintf("unexpected witness vector %T", pw.Vector()))
	}
	out := make([][]byte, len(vec))
	for i := range vec {
		b := vec[i].Bytes()
		out[i] = b[:]
	}
	return out, nil
}

func appendUint64Word(dst []byte, v uint64) []byte {
	var w [FieldElementSize]byte
	binary.BigEndian.PutUint64(w[FieldElementSize-8:], v)
	return append(dst, w[:]...)
}

func appendElement(dst []byte, e *fr.Element) []byte {
	b := e.Bytes()
	return append(dst, b[:]...)
}

func appendG1(dst []byte, p *bn254.G1Affine) []byte {
	b := p.RawBytes()
	return append(dst, b[:]...)
}
