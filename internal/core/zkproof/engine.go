package zkproof

import (
	"bytes"
	"context"
	"time"

	"github.com/zkopenid/oidczk/pkg/interfaces/infrastructure/log"
)

// PlonkEngine 基于文件的 PlonK 引擎，实现 Engine
type PlonkEngine struct {
	logger       log.Logger
	scheme       *PlonKScheme
	compressKeys bool
}

var _ Engine = (*PlonkEngine)(nil)

// NewPlonkEngine 创建引擎；compressKeys 控制证明密钥是否使用 snappy 压缩
func NewPlonkEngine(logger log.Logger, compressKeys bool) *PlonkEngine {
	logger = logger.With("module", "zkproof")
	return &PlonkEngine{
		logger:       logger,
		scheme:       NewPlonKScheme(logger),
		compressKeys: compressKeys,
	}
}

// GenerateParams 生成参考串并写入 path
func (e *PlonkEngine) GenerateParams(ctx context.Context, k uint32, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	e.logger.Infof("开始生成参考串: k=%d, path=%s", k, path)

	srs, err := NewParams(k)
	if err != nil {
		return err
	}
	data, err := MarshalParams(srs)
	if err != nil {
		return err
	}
	if err := writeParams(path, data); err != nil {
		return err
	}

	e.logger.Infof("参考串生成完成: points=%d, size=%d字节, 耗时=%v", len(srs.Pk.G1), len(data), time.Since(start))
	return nil
}

// ParamsHash 参考串文件的 SHA-256
func (e *PlonkEngine) ParamsHash(ctx context.Context, path string) ([32]byte, error) {
	if err := ctx.Err(); err != nil {
		return [32]byte{}, err
	}
	p, err := readParams(path)
	if err != nil {
		return [32]byte{}, err
	}
	return p.Hash, nil
}

// GenerateKeys 编译电路并生成密钥
//
// 密钥只依赖电路形状，artifacts 只用于检查见证可以被构建。
func (e *PlonkEngine) GenerateKeys(ctx context.Context, paramsPath string, keys KeyPaths, artifacts *CircuitArtifacts) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer silenceGnark()()
	start := time.Now()

	if _, err := e.scheme.NewWitness(artifacts.Assignment); err != nil {
		return err
	}

	params, err := readParams(paramsPath)
	if err != nil {
		return err
	}
	ccs, err := e.scheme.Compile()
	if err != nil {
		return err
	}
	srs, lagrange, err := params.SRSFor(ccs)
	if err != nil {
		return err
	}
	pk, vk, err := e.scheme.Setup(ccs, srs, lagrange)
	if err != nil {
		return err
	}

	if err := writeProvingKey(keys.ProvingKey, pk, e.compressKeys); err != nil {
		return err
	}
	if err := writeVerifyingKey(keys.VerifyingKey, vk); err != nil {
		return err
	}

	e.logger.Infof("密钥生成完成: domain=%d, compressed=%t, 耗时=%v", DomainSize(ccs), e.compressKeys, time.Since(start))
	return nil
}

// Prove 生成证明并在本地自检
func (e *PlonkEngine) Prove(ctx context.Context, paramsPath string, keys KeyPaths, artifacts *CircuitArtifacts) (*ProofResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer silenceGnark()()
	start := time.Now()

	params, err := readParams(paramsPath)
	if err != nil {
		return nil, err
	}
	pk, err := readProvingKey(keys.ProvingKey)
	if err != nil {
		return nil, err
	}
	vk, err := readVerifyingKey(keys.VerifyingKey)
	if err != nil {
		return nil, err
	}
	if !sameSRS(vk, params) {
		return nil, WrapInvalidKeyError(keys.VerifyingKey, errSRSMismatch)
	}

	ccs, err := e.scheme.Compile()
	if err != nil {
		return nil, err
	}
	fullWitness, err := e.scheme.NewWitness(artifacts.Assignment)
	if err != nil {
		return nil, err
	}
	publicInputs, err := publicInputsOf(fullWitness)
	if err != nil {
		return nil, err
	}
	if len(publicInputs) != PublicInputCount {
		return nil, WrapInvalidPublicInputsError(PublicInputCount, len(publicInputs))
	}
	for i, want := range artifacts.PublicInputs() {
		if !bytes.Equal(publicInputs[i], want) {
			return nil, WrapInvalidWitnessError("public inputs do not match artifacts")
		}
	}

	proof, err := e.scheme.Prove(ccs, pk, fullWitness)
	if err != nil {
		return nil, err
	}
	publicWitness, err := fullWitness.Public()
	if err != nil {
		return nil, WrapInvalidWitnessError(err.Error())
	}
	if err := e.scheme.Verify(proof, vk, publicWitness); err != nil {
		return nil, WrapProofVerificationFailedError(err)
	}

	proofBytes, err := e.scheme.SerializeProof(proof)
	if err != nil {
		return nil, err
	}
	proofData, err := ProofData(proof)
	if err != nil {
		return nil, err
	}
	vkData, err := VKData(vk)
	if err != nil {
		return nil, err
	}
	domainSize, err := DomainSizeOf(vk)
	if err != nil {
		return nil, err
	}

	e.logger.Infof("证明生成完成: 大小=%d字节, domain=%d, 耗时=%v", len(proofBytes), domainSize, time.Since(start))

	return &ProofResult{
		Proof:        proofBytes,
		ProofData:    proofData,
		PublicInputs: publicInputs,
		VKData:       vkData,
		DomainSize:   domainSize,
		SRSHash:      params.Hash,
	}, nil
}

// Verify 验证证明
//
// 验证密钥不是由该参考串派生，或证明不成立时返回 false。
func (e *PlonkEngine) Verify(ctx context.Context, paramsPath string, keys KeyPaths, proof []byte, publicInputs [][]byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	defer silenceGnark()()

	params, err := readParams(paramsPath)
	if err != nil {
		return false, err
	}
	vk, err := readVerifyingKey(keys.VerifyingKey)
	if err != nil {
		return false, err
	}
	p, err := e.scheme.DeserializeProof(proof)
	if err != nil {
		return false, err
	}
	publicWitness, err := e.scheme.NewPublicWitness(publicInputs)
	if err != nil {
		return false, err
	}

	if !sameSRS(vk, params) {
		e.logger.Warnf("验证密钥与参考串不匹配: vk=%s, params=%s", keys.VerifyingKey, paramsPath)
		return false, nil
	}
	if err := e.scheme.Verify(p, vk, publicWitness); err != nil {
		e.logger.Debugf("证明验证失败: %v", err)
		return false, nil
	}
	return true, nil
}
