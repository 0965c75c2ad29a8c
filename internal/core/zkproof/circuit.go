package zkproof

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// CircuitID 电路标识，出现在错误和日志中
const CircuitID = "openid"

const (
	// SubChunkBytes 每个 sub 分块的字节数，31 字节保证小于域模数
	SubChunkBytes = 31
	// SubChunkCount sub 分块数
	SubChunkCount = 4
	// MaxSubLen sub 最大字节数
	MaxSubLen = SubChunkBytes * SubChunkCount

	// PepperSize pepper 字节数
	PepperSize = 32
	// PublicInputCount 电路公开输入个数
	PublicInputCount = 3
	// FieldElementSize 域元素的字节数
	FieldElementSize = 32
)

// OpenIDCircuit 把 ID token 哈希与 sub‖pepper 承诺绑定的电路
//
// 公开输入：token 的 SHA-256 高低 128 位、sub‖pepper 的 MiMC 承诺。
// 私有输入：sub 长度、按 31 字节大端分块的 sub、pepper 高低 16 字节。
type OpenIDCircuit struct {
	IDTokenHashHi       frontend.Variable `gnark:",public"`
	IDTokenHashLo       frontend.Variable `gnark:",public"`
	SubPepperCommitment frontend.Variable `gnark:",public"`

	SubLen    frontend.Variable
	SubChunks [SubChunkCount]frontend.Variable
	PepperHi  frontend.Variable
	PepperLo  frontend.Variable
}

// Define 定义电路约束
func (c *OpenIDCircuit) Define(api frontend.API) error {
	// 哈希两半各 128 位
	api.ToBinary(c.IDTokenHashHi, 128)
	api.ToBinary(c.IDTokenHashLo, 128)

	api.ToBinary(c.SubLen, 8)
	api.AssertIsLessOrEqual(c.SubLen, MaxSubLen)
	for i := range c.SubChunks {
		api.ToBinary(c.SubChunks[i], SubChunkBytes*8)
	}
	api.ToBinary(c.PepperHi, 128)
	api.ToBinary(c.PepperLo, 128)

	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.SubLen)
	for i := range c.SubChunks {
		h.Write(c.SubChunks[i])
	}
	h.Write(c.PepperHi, c.PepperLo)
	api.AssertIsEqual(h.Sum(), c.SubPepperCommitment)

	return nil
}

// newCircuitShape 编译用的空电路
func newCircuitShape() *OpenIDCircuit {
	return &OpenIDCircuit{}
}
