package testutil

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zkopenid/oidczk/internal/core/zkproof"
)

// ==================== 桩引擎 ====================

// 桩引擎输出的固定值
const (
	StubDomainSize = 8192
	StubProofSize  = 768
	StubVKSize     = 1024
)

// StubProof 桩引擎生成的证明
func StubProof() []byte {
	return bytes.Repeat([]byte{0x11}, StubProofSize)
}

// StubProofData 桩引擎生成的打包证明
func StubProofData() []byte {
	return bytes.Repeat([]byte{0x22}, StubProofSize)
}

// StubVKData 桩引擎生成的验证密钥字
func StubVKData() []byte {
	return bytes.Repeat([]byte{0x33}, StubVKSize)
}

// StubEngine 返回确定性定长数据的 zkproof.Engine
//
// 参数和密钥文件照常读写，因此路径错误仍然会暴露出来。
type StubEngine struct {
	mu    sync.Mutex
	calls []string
}

var _ zkproof.Engine = (*StubEngine)(nil)

// NewStubEngine 创建桩引擎
func NewStubEngine() *StubEngine {
	return &StubEngine{}
}

// Calls 按顺序返回被调用的方法名
func (s *StubEngine) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.calls...)
}

func (s *StubEngine) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *StubEngine) GenerateParams(ctx context.Context, k uint32, path string) error {
	s.record("GenerateParams")
	return writeStubFile(path, []byte(fmt.Sprintf("stub-params k=%d", k)))
}

func (s *StubEngine) ParamsHash(ctx context.Context, path string) ([32]byte, error) {
	s.record("ParamsHash")
	data, err := os.ReadFile(path)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}

func (s *StubEngine) GenerateKeys(ctx context.Context, paramsPath string, keys zkproof.KeyPaths, artifacts *zkproof.CircuitArtifacts) error {
	s.record("GenerateKeys")
	if _, err := os.Stat(paramsPath); err != nil {
		return err
	}
	if err := writeStubFile(keys.ProvingKey, []byte("stub-pk")); err != nil {
		return err
	}
	return writeStubFile(keys.VerifyingKey, []byte("stub-vk"))
}

func (s *StubEngine) Prove(ctx context.Context, paramsPath string, keys zkproof.KeyPaths, artifacts *zkproof.CircuitArtifacts) (*zkproof.ProofResult, error) {
	s.record("Prove")
	hash, err := s.ParamsHash(ctx, paramsPath)
	if err != nil {
		return nil, err
	}
	for _, p := range []string{keys.ProvingKey, keys.VerifyingKey} {
		if _, err := os.Stat(p); err != nil {
			return nil, err
		}
	}
	return &zkproof.ProofResult{
		Proof:        StubProof(),
		ProofData:    StubProofData(),
		PublicInputs: artifacts.PublicInputs(),
		VKData:       StubVKData(),
		DomainSize:   StubDomainSize,
		SRSHash:      hash,
	}, nil
}

// Verify 证明等于 StubProof 且公开输入个数正确时返回 true
func (s *StubEngine) Verify(ctx context.Context, paramsPath string, keys zkproof.KeyPaths, proof []byte, publicInputs [][]byte) (bool, error) {
	s.record("Verify")
	if _, err := os.Stat(paramsPath); err != nil {
		return false, err
	}
	if _, err := os.Stat(keys.VerifyingKey); err != nil {
		return false, err
	}
	return bytes.Equal(proof, StubProof()) && len(publicInputs) == zkproof.PublicInputCount, nil
}

func writeStubFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
