package types

// AppConfig 应用配置
// 对应 --config 指定的 JSON 配置文件，所有字段都是可选的
type AppConfig struct {
	// 日志配置 - 对应配置文件中的 log 字段
	Log *UserLogConfig `json:"log,omitempty"`

	// 证明引擎配置 - 对应配置文件中的 zk 字段
	ZK *UserZKConfig `json:"zk,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径（stdout/stderr 表示控制台）
}

// UserZKConfig 用户证明引擎配置
type UserZKConfig struct {
	BuildDir     *string `json:"build_dir,omitempty"`     // 产物目录，默认 ./build
	K            *uint32 `json:"k,omitempty"`             // SRS 规模参数，域大小为 2^k
	CompressKeys *bool   `json:"compress_keys,omitempty"` // 是否以 snappy 帧格式压缩 proving key
}
