package zkproof

import (
	"context"
)

// KeyPaths 证明密钥与验证密钥文件路径
type KeyPaths struct {
	ProvingKey   string
	VerifyingKey string
}

// ParamStore 参考串（KZG SRS）的生成与持久化
type ParamStore interface {
	// GenerateParams 生成 2^k+3 个点的参考串并写入 path
	GenerateParams(ctx context.Context, k uint32, path string) error

	// ParamsHash 参考串文件字节的 SHA-256
	ParamsHash(ctx context.Context, path string) ([32]byte, error)
}

// VerifierStore 密钥生成与证明验证
type VerifierStore interface {
	// GenerateKeys 用 artifacts 的电路形状生成证明密钥与验证密钥
	GenerateKeys(ctx context.Context, paramsPath string, keys KeyPaths, artifacts *CircuitArtifacts) error

	// Verify 验证证明；验证不通过返回 (false, nil)，只有读取或反序列化失败才返回错误
	Verify(ctx context.Context, paramsPath string, keys KeyPaths, proof []byte, publicInputs [][]byte) (bool, error)
}

// Prover 证明生成
type Prover interface {
	// Prove 为 artifacts 生成证明
	Prove(ctx context.Context, paramsPath string, keys KeyPaths, artifacts *CircuitArtifacts) (*ProofResult, error)
}

// Engine 完整的证明引擎
type Engine interface {
	ParamStore
	VerifierStore
	Prover
}

// ProofResult 证明以及外部验证方需要的元数据
type ProofResult struct {
	// Proof gnark 原生序列化的证明，verify 命令读取它
	Proof []byte
	// ProofData 打包的证明字（合约校验格式）
	ProofData []byte
	// PublicInputs 每个 32 字节大端
	PublicInputs [][]byte
	// VKData 打包的验证密钥字，不含长度前缀
	VKData []byte
	// DomainSize 评估域大小
	DomainSize uint64
	// SRSHash 参考串文件的 SHA-256
	SRSHash [32]byte
}

// NumInputs 公开输入个数
func (r *ProofResult) NumInputs() uint64 {
	return uint64(len(r.PublicInputs))
}

// PublicInputBytes 依次拼接的公开输入
func (r *ProofResult) PublicInputBytes() []byte {
	out := make([]byte, 0, len(r.PublicInputs)*FieldElementSize)
	for _, in := range r.PublicInputs {
		out = append(out, in...)
	}
	return out
}
