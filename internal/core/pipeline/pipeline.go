package pipeline

import (
	"context"
	"fmt"

	"github.com/zkopenid/oidczk/internal/core/idtoken"
	"github.com/zkopenid/oidczk/internal/core/packed"
	"github.com/zkopenid/oidczk/internal/core/zkconfig"
	"github.com/zkopenid/oidczk/internal/core/zkproof"
	"github.com/zkopenid/oidczk/pkg/interfaces/infrastructure/log"
)

// Pipeline 命令编排器
type Pipeline struct {
	logger log.Logger
	engine zkproof.Engine
}

// New 创建编排器
func New(logger log.Logger, engine zkproof.Engine) *Pipeline {
	return &Pipeline{
		logger: logger.With("module", "pipeline"),
		engine: engine,
	}
}

// GenParamsRequest generate-parameters 的输入
type GenParamsRequest struct {
	K          uint32
	ParamsPath string
}

// GenParams 生成参考串，返回写入文件的 srs_hash
func (p *Pipeline) GenParams(ctx context.Context, req GenParamsRequest) ([32]byte, error) {
	if err := p.engine.GenerateParams(ctx, req.K, req.ParamsPath); err != nil {
		return [32]byte{}, err
	}
	hash, err := p.engine.ParamsHash(ctx, req.ParamsPath)
	if err != nil {
		return [32]byte{}, err
	}
	p.logger.Infof("参考串已写入: %s, srs_hash=%s", req.ParamsPath, packed.ToHex(hash[:]))
	return hash, nil
}

// GenKeysRequest generate-keys 的输入
type GenKeysRequest struct {
	ParamsPath  string
	IDTokenPath string
	Keys        zkproof.KeyPaths
}

// GenKeys 用样例 token 合成电路并生成密钥
//
// 密钥只依赖电路形状，这里使用全零 pepper。
func (p *Pipeline) GenKeys(ctx context.Context, req GenKeysRequest) error {
	token, err := readToken(req.IDTokenPath)
	if err != nil {
		return err
	}
	artifacts, err := zkproof.Synthesize(token, make([]byte, zkproof.PepperSize))
	if err != nil {
		return err
	}
	if err := p.engine.GenerateKeys(ctx, req.ParamsPath, req.Keys, artifacts); err != nil {
		return err
	}
	p.logger.Infof("密钥已写入: pk=%s, vc=%s", req.Keys.ProvingKey, req.Keys.VerifyingKey)
	return nil
}

// ProveRequest prove 的输入
type ProveRequest struct {
	ParamsPath        string
	Keys              zkproof.KeyPaths
	Pepper            []byte
	IDTokenPath       string
	ProofPath         string
	PublicInputPath   string
	ContractInputPath string
}

// Prove 生成证明，写出证明、公开输入和合约输入三个文件
func (p *Pipeline) Prove(ctx context.Context, req ProveRequest) (*zkproof.ProofResult, error) {
	token, err := readToken(req.IDTokenPath)
	if err != nil {
		return nil, err
	}
	artifacts, err := zkproof.Synthesize(token, req.Pepper)
	if err != nil {
		return nil, err
	}
	result, err := p.engine.Prove(ctx, req.ParamsPath, req.Keys, artifacts)
	if err != nil {
		return nil, err
	}

	if err := writeJSON(req.ContractInputPath, NewContractInput(artifacts, result)); err != nil {
		return nil, err
	}
	if err := writeFile(req.ProofPath, result.Proof); err != nil {
		return nil, err
	}
	if err := writeJSON(req.PublicInputPath, encodePublicInputs(result.PublicInputs)); err != nil {
		return nil, err
	}

	p.logger.Infof("证明已写入: proof=%s, public_input=%s, contract_input=%s",
		req.ProofPath, req.PublicInputPath, req.ContractInputPath)
	return result, nil
}

// VerifyRequest verify 的输入
type VerifyRequest struct {
	ParamsPath      string
	Keys            zkproof.KeyPaths
	ProofPath       string
	PublicInputPath string
}

// Verify 读取证明和公开输入并验证
//
// 验证不通过返回 (false, nil)；只有读取或反序列化失败才返回错误。
func (p *Pipeline) Verify(ctx context.Context, req VerifyRequest) (bool, error) {
	proof, err := readFile(req.ProofPath)
	if err != nil {
		return false, err
	}
	inputs, err := readPublicInputs(req.PublicInputPath)
	if err != nil {
		return false, err
	}
	ok, err := p.engine.Verify(ctx, req.ParamsPath, req.Keys, proof, inputs)
	if err != nil {
		return false, err
	}
	p.logger.Infof("验证结果: %t", ok)
	return ok, nil
}

// PlainArgsRequest emit-plain-args 的输入
type PlainArgsRequest struct {
	IDTokenPath string
	OutputPath  string
}

// BuildPlainArgs 偏移表 + 三段原始字节，0x 十六进制
func BuildPlainArgs(token string) (string, error) {
	seg, claims, err := idtoken.Parse(token)
	if err != nil {
		return "", err
	}
	return packed.EncodeHex(packed.PlainLayout(seg, claims))
}

// EmitPlainArgs 写出普通参数
func (p *Pipeline) EmitPlainArgs(ctx context.Context, req PlainArgsRequest) error {
	token, err := readToken(req.IDTokenPath)
	if err != nil {
		return err
	}
	out, err := BuildPlainArgs(token)
	if err != nil {
		return err
	}
	if err := writeFile(req.OutputPath, []byte(out)); err != nil {
		return err
	}
	p.logger.Infof("参数已写入: %s (%d 字节)", req.OutputPath, (len(out)-2)/2)
	return nil
}

// ZKArgsRequest emit-zk-args 的输入
type ZKArgsRequest struct {
	ParamsPath    string
	Keys          zkproof.KeyPaths
	Pepper        []byte
	IDTokenPath   string
	OutputPath    string
	ZKConfigsPath string
}

// BuildZKArgs 按 ZK 布局编码，并导出对应的验证方配置
func BuildZKArgs(token string, artifacts *zkproof.CircuitArtifacts, result *zkproof.ProofResult) (string, *zkconfig.ZkConfigs, error) {
	seg, claims, err := idtoken.Parse(token)
	if err != nil {
		return "", nil, err
	}

	out, err := packed.EncodeHex(packed.ZKLayout(claims, &packed.ZKInputs{
		HeaderBase64Len:  artifacts.HeaderBase64Len,
		PayloadLeftIndex: artifacts.PayloadLeftIndex,
		PayloadBase64Len: artifacts.PayloadBase64Len,
		IDTokenHash:      artifacts.IDTokenHash,
		SubPepperHash:    artifacts.SubPepperHash,
		DomainSize:       packed.NewU128(result.DomainSize),
		Header:           seg.Header,
		PayloadPubMatch:  artifacts.PayloadPubMatch,
		Signature:        seg.Signature,
		VKData:           result.VKData,
		PublicInputs:     result.PublicInputBytes(),
		Proof:            result.ProofData,
	}))
	if err != nil {
		return "", nil, err
	}

	cfg, err := zkconfig.Export(result.SRSHash, result.NumInputs(), result.DomainSize, result.VKData)
	if err != nil {
		return "", nil, err
	}
	return out, cfg, nil
}

// EmitZKArgs 生成证明并写出 ZK 参数与 zkConfigs.json
func (p *Pipeline) EmitZKArgs(ctx context.Context, req ZKArgsRequest) error {
	token, err := readToken(req.IDTokenPath)
	if err != nil {
		return err
	}
	// 先定位声明，token 缺少声明时不运行证明
	if _, _, err := idtoken.Parse(token); err != nil {
		return err
	}
	artifacts, err := zkproof.Synthesize(token, req.Pepper)
	if err != nil {
		return err
	}
	result, err := p.engine.Prove(ctx, req.ParamsPath, req.Keys, artifacts)
	if err != nil {
		return err
	}

	out, cfg, err := BuildZKArgs(token, artifacts, result)
	if err != nil {
		return err
	}
	cfgData, err := cfg.MarshalPretty()
	if err != nil {
		return fmt.Errorf("encode zk configs: %w", err)
	}

	if err := writeFile(req.ZKConfigsPath, cfgData); err != nil {
		return err
	}
	if err := writeFile(req.OutputPath, []byte(out)); err != nil {
		return err
	}
	p.logger.Infof("ZK 参数已写入: output=%s, zk_configs=%s", req.OutputPath, req.ZKConfigsPath)
	return nil
}
