package zkproof

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// 配对预计算线的编码长度：[2][2][len(LoopCounter)] 个 (R0, R1)，每个 E2 为两个 fp 元素
const (
	pairingLines    = len(bn254.LoopCounter)
	pairingLineSize = 2 * 2 * pairingLines * 2 * 2 * fp.Bytes
)

// errTruncated 编码中的长度前缀超出了文件剩余字节
var errTruncated = errors.New("encoded length exceeds remaining bytes")

// layoutScanner 按 gnark 的二进制布局预先走一遍输入
//
// gnark 解码切片时先按长度前缀分配内存再读取元素，损坏的文件会触发超大分配。
// 解码前用它确认每个长度前缀都能由剩余字节满足。
type layoutScanner struct {
	data []byte
	off  int
}

func (s *layoutScanner) remaining() int {
	return len(s.data) - s.off
}

func (s *layoutScanner) skip(n int) error {
	if n < 0 || n > s.remaining() {
		return fmt.Errorf("%w: need %d at offset %d, have %d", errTruncated, n, s.off, s.remaining())
	}
	s.off += n
	return nil
}

func (s *layoutScanner) uint32() (uint32, error) {
	if err := s.skip(4); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(s.data[s.off-4:]), nil
}

// point 跳过一个点，首字节最高两位为 0 时是未压缩编码
func (s *layoutScanner) point(compressedSize int) error {
	if s.remaining() < 1 {
		return s.skip(compressedSize)
	}
	if s.data[s.off]>>6 == 0 {
		return s.skip(2 * compressedSize)
	}
	return s.skip(compressedSize)
}

func (s *layoutScanner) g1() error {
	return s.point(bn254.SizeOfG1AffineCompressed)
}

func (s *layoutScanner) g2() error {
	return s.point(bn254.SizeOfG2AffineCompressed)
}

// g1Slice 长度前缀加点序列，每个点至少占压缩编码长度
func (s *layoutScanner) g1Slice() error {
	n, err := s.uint32()
	if err != nil {
		return err
	}
	if uint64(n)*bn254.SizeOfG1AffineCompressed > uint64(s.remaining()) {
		return fmt.Errorf("%w: %d points at offset %d, have %d bytes", errTruncated, n, s.off-4, s.remaining())
	}
	for i := uint32(0); i < n; i++ {
		if err := s.g1(); err != nil {
			return err
		}
	}
	return nil
}

func (s *layoutScanner) uint64Slice() error {
	n, err := s.uint32()
	if err != nil {
		return err
	}
	return s.skip(int(n) * 8)
}

// kzgVerifyingKey G2[0], G2[1], G1 以及配对预计算线
func (s *layoutScanner) kzgVerifyingKey() error {
	for _, step := range []func() error{s.g2, s.g2, s.g1} {
		if err := step(); err != nil {
			return err
		}
	}
	return s.skip(pairingLineSize)
}

// plonkVerifyingKey 与 plonk bn254 VerifyingKey 的编码顺序一致
func (s *layoutScanner) plonkVerifyingKey() error {
	// Size, SizeInv, Generator, NbPublicVariables, CosetShift
	if err := s.skip(8 + fr.Bytes + fr.Bytes + 8 + fr.Bytes); err != nil {
		return err
	}
	// S[0..2], Ql, Qr, Qm, Qo, Qk
	for i := 0; i < 8; i++ {
		if err := s.g1(); err != nil {
			return err
		}
	}
	if err := s.g1Slice(); err != nil {
		return err
	}
	// Kzg.G1, Kzg.G2[0], Kzg.G2[1], Kzg.Lines
	if err := s.g1(); err != nil {
		return err
	}
	if err := s.g2(); err != nil {
		return err
	}
	if err := s.g2(); err != nil {
		return err
	}
	if err := s.skip(pairingLineSize); err != nil {
		return err
	}
	return s.uint64Slice()
}

// checkSRSLayout 校验 kzg SRS 编码：Pk.G1 切片后接 Vk
func checkSRSLayout(data []byte) error {
	s := &layoutScanner{data: data}
	if err := s.g1Slice(); err != nil {
		return err
	}
	return s.kzgVerifyingKey()
}

// checkVerifyingKeyLayout 校验 PlonK 验证密钥编码
func checkVerifyingKeyLayout(data []byte) error {
	s := &layoutScanner{data: data}
	return s.plonkVerifyingKey()
}

// checkProvingKeyLayout 校验 PlonK 证明密钥编码：验证密钥后接规范形式与拉格朗日形式的 G1 切片
func checkProvingKeyLayout(data []byte) error {
	s := &layoutScanner{data: data}
	if err := s.plonkVerifyingKey(); err != nil {
		return err
	}
	if err := s.g1Slice(); err != nil {
		return err
	}
	return s.g1Slice()
}
