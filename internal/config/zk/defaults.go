package zk

// 证明引擎配置默认值，与命令行默认参数保持一致
const (
	defaultBuildDir     = "./build"
	defaultK            = uint32(21)
	defaultCompressKeys = true
	defaultCurve        = "bn254"
	defaultScheme       = "plonk"

	// 产物文件名
	paramsFile        = "params.bin"
	provingKeyFile    = "app.pk"
	verifyingKeyFile  = "app.vc"
	proofFile         = "app.proof"
	publicInputFile   = "public_input.json"
	contractInputFile = "contract_input.json"
	idTokenFile       = "id_token.txt"
	plainOutputFile   = "id_token.output"
	zkOutputFile      = "id_token_zk.output"
	zkConfigsFile     = "zkConfigs.json"
)

// 允许的 k 范围：下界保证电路可以放下，上界避免生成不可用的超大 SRS
const (
	MinK = uint32(10)
	MaxK = uint32(26)
)
