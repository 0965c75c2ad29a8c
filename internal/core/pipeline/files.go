package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/zkopenid/oidczk/internal/core/packed"
)

// readToken 读取 token 文件并去掉两侧空白
func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", WrapIOError("read", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapIOError("read", path, err)
	}
	return data, nil
}

// writeFile 原子写入：同目录临时文件 + rename，失败时目标文件保持原样
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return WrapIOError("mkdir", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return WrapIOError("create", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return WrapIOError("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		return WrapIOError("close", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return WrapIOError("chmod", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return WrapIOError("rename", path, err)
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// readPublicInputs 读取 public_input.json：0x 十六进制字符串数组
func readPublicInputs(path string) ([][]byte, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var encoded []string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, WrapIOError("decode", path, err)
	}
	out := make([][]byte, len(encoded))
	for i, s := range encoded {
		if out[i], err = packed.FromHex(s); err != nil {
			return nil, WrapIOError("decode", path, err)
		}
	}
	return out, nil
}

func encodePublicInputs(inputs [][]byte) []string {
	out := make([]string, len(inputs))
	for i, in := range inputs {
		out[i] = packed.ToHex(in)
	}
	return out
}
