package zkproof

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/golang/snappy"
)

// snappyMagic snappy 分帧格式的流标识块
const snappyMagic = "\xff\x06\x00\x00sNaPpY"

// writeFileAtomic 先写临时文件再重命名
func writeFileAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return WrapKeyIOError("mkdir", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return WrapKeyIOError("create", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return WrapKeyIOError("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		return WrapKeyIOError("close", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return WrapKeyIOError("rename", path, err)
	}
	return nil
}

// writeParams 写入参考串
func writeParams(path string, data []byte) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		if _, err := w.Write(data); err != nil {
			return WrapKeyIOError("write", path, err)
		}
		return nil
	})
}

// readParams 读取并解析参考串
func readParams(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapKeyIOError("read", path, err)
	}
	p, err := UnmarshalParams(data)
	if err != nil {
		return nil, WrapInvalidParamsError(path, err)
	}
	return p, nil
}

// writeProvingKey 写入证明密钥，compress 时使用 snappy 分帧格式
func writeProvingKey(path string, pk plonk.ProvingKey, compress bool) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		if !compress {
			if _, err := pk.WriteTo(w); err != nil {
				return WrapKeyIOError("write", path, err)
			}
			return nil
		}
		sw := snappy.NewBufferedWriter(w)
		if _, err := pk.WriteTo(sw); err != nil {
			return WrapKeyIOError("write", path, err)
		}
		if err := sw.Close(); err != nil {
			return WrapKeyIOError("write", path, err)
		}
		return nil
	})
}

// readProvingKey 读取证明密钥，自动识别 snappy 压缩
func readProvingKey(path string) (plonk.ProvingKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapKeyIOError("read", path, err)
	}
	if bytes.HasPrefix(data, []byte(snappyMagic)) {
		if data, err = io.ReadAll(snappy.NewReader(bytes.NewReader(data))); err != nil {
			return nil, WrapInvalidKeyError(path, err)
		}
	}
	if err := checkProvingKeyLayout(data); err != nil {
		return nil, WrapInvalidKeyError(path, err)
	}

	pk := plonk.NewProvingKey(ecc.BN254)
	if _, err := pk.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, WrapInvalidKeyError(path, err)
	}
	return pk, nil
}

// writeVerifyingKey 写入验证密钥（不压缩）
func writeVerifyingKey(path string, vk plonk.VerifyingKey) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		if _, err := vk.WriteTo(w); err != nil {
			return WrapKeyIOError("write", path, err)
		}
		return nil
	})
}

// readVerifyingKey 读取验证密钥
func readVerifyingKey(path string) (plonk.VerifyingKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapKeyIOError("read", path, err)
	}
	if err := checkVerifyingKeyLayout(data); err != nil {
		return nil, WrapInvalidKeyError(path, err)
	}
	vk := plonk.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, WrapInvalidKeyError(path, err)
	}
	return vk, nil
}
