package zkproof

import (
	"bytes"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/kzg"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
	gnarklogger "github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"

	"github.com/zkopenid/oidczk/pkg/interfaces/infrastructure/log"
)

// PlonKScheme BN254 上的 PlonK 证明方案
type PlonKScheme struct {
	logger  log.Logger
	curveID ecc.ID
}

// NewPlonKScheme 创建PlonK证明方案
func NewPlonKScheme(logger log.Logger) *PlonKScheme {
	return &PlonKScheme{
		logger:  logger,
		curveID: ecc.BN254,
	}
}

// SchemeName 返回方案名称
func (s *PlonKScheme) SchemeName() string {
	return "plonk"
}

// GetBuilder 获取电路构建器
func (s *PlonKScheme) GetBuilder() frontend.NewBuilder {
	return scs.NewBuilder
}

// Compile 编译 OpenID 电路
func (s *PlonKScheme) Compile() (constraint.ConstraintSystem, error) {
	ccs, err := frontend.Compile(s.curveID.ScalarField(), s.GetBuilder(), newCircuitShape())
	if err != nil {
		return nil, WrapCircuitCompilationFailedError(err)
	}
	if s.logger != nil {
		s.logger.Debugf("电路编译完成: constraints=%d, public=%d", ccs.GetNbConstraints(), ccs.GetNbPublicVariables())
	}
	return ccs, nil
}

// Setup 用给定参考串生成证明密钥和验证密钥
func (s *PlonKScheme) Setup(ccs constraint.ConstraintSystem, srs, srsLagrange kzg.SRS) (plonk.ProvingKey, plonk.VerifyingKey, error) {
	pk, vk, err := plonk.Setup(ccs, srs, srsLagrange)
	if err != nil {
		return nil, nil, WrapSetupFailedError(err)
	}
	return pk, vk, nil
}

// Prove 生成证明
func (s *PlonKScheme) Prove(ccs constraint.ConstraintSystem, pk plonk.ProvingKey, fullWitness witness.Witness) (plonk.Proof, error) {
	proof, err := plonk.Prove(ccs, pk, fullWitness)
	if err != nil {
		return nil, WrapProofGenerationFailedError(err)
	}
	return proof, nil
}

// Verify 验证证明
func (s *PlonKScheme) Verify(proof plonk.Proof, vk plonk.VerifyingKey, publicWitness witness.Witness) error {
	return plonk.Verify(proof, vk, publicWitness)
}

// NewWitness 从赋值构建完整见证
func (s *PlonKScheme) NewWitness(assignment *OpenIDCircuit) (witness.Witness, error) {
	w, err := frontend.NewWitness(assignment, s.curveID.ScalarField())
	if err != nil {
		return nil, WrapInvalidWitnessError(err.Error())
	}
	return w, nil
}

// NewPublicWitness 从 32 字节大端公开输入构建公开见证
func (s *PlonKScheme) NewPublicWitness(publicInputs [][]byte) (witness.Witness, error) {
	if len(publicInputs) != PublicInputCount {
		return nil, WrapInvalidPublicInputsError(PublicInputCount, len(publicInputs))
	}
	modulus := s.curveID.ScalarField()
	values := make([]*big.Int, len(publicInputs))
	for i, in := range publicInputs {
		if len(in) != FieldElementSize {
			return nil, fmt.Errorf("%w: input %d is %d bytes", ErrInvalidPublicInputs, i, len(in))
		}
		values[i] = new(big.Int).SetBytes(in)
		if values[i].Cmp(modulus) >= 0 {
			return nil, fmt.Errorf("%w: input %d is not a field element", ErrInvalidPublicInputs, i)
		}
	}
	assignment := &OpenIDCircuit{
		IDTokenHashHi:       values[0],
		IDTokenHashLo:       values[1],
		SubPepperCommitment: values[2],
	}
	w, err := frontend.NewWitness(assignment, s.curveID.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicInputs, err)
	}
	return w, nil
}

// SerializeProof 序列化证明
func (s *PlonKScheme) SerializeProof(proof plonk.Proof) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, WrapProofGenerationFailedError(fmt.Errorf("serialize proof: %w", err))
	}
	return buf.Bytes(), nil
}

// DeserializeProof 反序列化证明
func (s *PlonKScheme) DeserializeProof(data []byte) (plonk.Proof, error) {
	proof := plonk.NewProof(s.curveID)
	if _, err := proof.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, WrapInvalidProofError(err.Error())
	}
	return proof, nil
}

// silenceGnark 在引擎调用期间屏蔽 gnark 的 zerolog 输出，返回恢复函数
func silenceGnark() func() {
	old := gnarklogger.Logger()
	gnarklogger.Set(zerolog.New(io.Discard).Level(zerolog.Disabled))
	return func() {
		gnarklogger.Set(old)
	}
}
