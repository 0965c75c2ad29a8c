package pipeline

import (
	"github.com/zkopenid/oidczk/internal/core/packed"
	"github.com/zkopenid/oidczk/internal/core/zkproof"
)

// ContractInput 合约调用测试输入（contract_input.json）
type ContractInput struct {
	HeaderRawBytes   string      `json:"header_raw_bytes"`
	PayloadPubMatch  string      `json:"payload_pub_match"`
	IDTokenHash      string      `json:"id_token_hash"`
	SubPepperHash    string      `json:"sub_pepper_hash"`
	HeaderLeftIndex  uint32      `json:"header_left_index"`
	HeaderBase64Len  uint32      `json:"header_base64_len"`
	PayloadLeftIndex uint32      `json:"payload_left_index"`
	PayloadBase64Len uint32      `json:"payload_base64_len"`
	SubLeftIndex     uint32      `json:"sub_left_index"`
	SubLen           uint32      `json:"sub_len"`
	PublicInputs     []string    `json:"public_inputs"`
	DomainSize       packed.U128 `json:"domain_size"`
	VKData           string      `json:"vk_data"`
	ProofData        string      `json:"proof"`
	SRSHash          string      `json:"srs_hash"`
}

// NewContractInput 组装合约输入
func NewContractInput(a *zkproof.CircuitArtifacts, r *zkproof.ProofResult) *ContractInput {
	return &ContractInput{
		HeaderRawBytes:   packed.ToHex(a.HeaderRawBytes),
		PayloadPubMatch:  packed.ToHex(a.PayloadPubMatch),
		IDTokenHash:      packed.ToHex(a.IDTokenHash[:]),
		SubPepperHash:    packed.ToHex(a.SubPepperHash[:]),
		HeaderLeftIndex:  a.HeaderLeftIndex,
		HeaderBase64Len:  a.HeaderBase64Len,
		PayloadLeftIndex: a.PayloadLeftIndex,
		PayloadBase64Len: a.PayloadBase64Len,
		SubLeftIndex:     a.SubLeftIndex,
		SubLen:           a.SubLen,
		PublicInputs:     encodePublicInputs(r.PublicInputs),
		DomainSize:       packed.NewU128(r.DomainSize),
		VKData:           packed.ToHex(r.VKData),
		ProofData:        packed.ToHex(r.ProofData),
		SRSHash:          packed.ToHex(r.SRSHash[:]),
	}
}
