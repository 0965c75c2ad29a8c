// Package zkconfig 导出外部验证方需要的 ZK 配置（zkConfigs.json）
package zkconfig

import (
	"encoding/json"
	"fmt"

	"github.com/zkopenid/oidczk/internal/core/packed"
)

// ZkConfigs 验证方配置
type ZkConfigs struct {
	// SRSHash 参考串序列化字节的 SHA-256，0x 十六进制
	SRSHash string `json:"srs_hash"`
	// NumInputs 公开输入个数
	NumInputs uint64 `json:"num_inputs"`
	// DomainSize 评估域大小
	DomainSize packed.U128 `json:"domain_size"`
	// VKData 4 字节大端长度前缀 ‖ 打包的验证密钥字，0x 十六进制
	//
	// 长度前缀是后续字节数，不是 32 字节字的个数；按字数读取的验证方需要除以 32。
	VKData string `json:"vkdata"`
}

// Export 组装配置，只做结构转换
func Export(srsHash [32]byte, numInputs uint64, domainSize uint64, vkData []byte) (*ZkConfigs, error) {
	blob, err := packed.Encode([]packed.Field{packed.Blob(vkData)})
	if err != nil {
		return nil, fmt.Errorf("encode vkdata: %w", err)
	}
	return &ZkConfigs{
		SRSHash:    packed.ToHex(srsHash[:]),
		NumInputs:  numInputs,
		DomainSize: packed.NewU128(domainSize),
		VKData:     packed.ToHex(blob),
	}, nil
}

// MarshalPretty 两空格缩进的 JSON
func (c *ZkConfigs) MarshalPretty() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Parse 解析 MarshalPretty 的输出
func Parse(data []byte) (*ZkConfigs, error) {
	var c ZkConfigs
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse zk configs: %w", err)
	}
	return &c, nil
}

// VKDataBytes 去掉长度前缀后的验证密钥字
func (c *ZkConfigs) VKDataBytes() ([]byte, error) {
	raw, err := packed.FromHex(c.VKData)
	if err != nil {
		return nil, err
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("vkdata shorter than length prefix: %d bytes", len(raw))
	}
	n := uint64(raw[0])<<24 | uint64(raw[1])<<16 | uint64(raw[2])<<8 | uint64(raw[3])
	if n != uint64(len(raw)-4) {
		return nil, fmt.Errorf("vkdata length prefix %d does not match %d bytes", n, len(raw)-4)
	}
	return raw[4:], nil
}
