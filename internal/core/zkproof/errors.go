// Package zkproof 基于 gnark PlonK（BN254）实现 OpenID 电路的参数生成、密钥生成、证明与验证
package zkproof

import (
	"errors"
	"fmt"
)

// ============================================================================
//                            零知识证明错误定义
// ============================================================================

// ErrExternalEngine 证明引擎错误的根，其余引擎错误都包装它
var ErrExternalEngine = errors.New("external engine error")

var (
	// ErrCircuitCompilationFailed 电路编译失败错误
	ErrCircuitCompilationFailed = fmt.Errorf("%w: circuit compilation failed", ErrExternalEngine)

	// ErrSetupFailed 密钥生成失败错误
	ErrSetupFailed = fmt.Errorf("%w: setup failed", ErrExternalEngine)

	// ErrProofGenerationFailed 证明生成失败错误
	ErrProofGenerationFailed = fmt.Errorf("%w: proof generation failed", ErrExternalEngine)

	// ErrProofVerificationFailed 证明生成后本地自检失败错误
	ErrProofVerificationFailed = fmt.Errorf("%w: proof verification failed", ErrExternalEngine)

	// ErrInvalidWitness 无效见证错误
	ErrInvalidWitness = fmt.Errorf("%w: invalid witness", ErrExternalEngine)

	// ErrInvalidPublicInputs 无效公共输入错误
	ErrInvalidPublicInputs = fmt.Errorf("%w: invalid public inputs", ErrExternalEngine)

	// ErrInvalidProof 无效证明错误（无法反序列化）
	ErrInvalidProof = fmt.Errorf("%w: invalid proof", ErrExternalEngine)

	// ErrInvalidPepper pepper 不是 32 字节十六进制
	ErrInvalidPepper = fmt.Errorf("%w: invalid pepper", ErrExternalEngine)

	// ErrParamsTooSmall 参考串不足以容纳电路
	ErrParamsTooSmall = fmt.Errorf("%w: params too small for circuit", ErrExternalEngine)

	// ErrInvalidParams 参考串参数或文件无效
	ErrInvalidParams = fmt.Errorf("%w: invalid params", ErrExternalEngine)

	// ErrInvalidKey 密钥文件无效
	ErrInvalidKey = fmt.Errorf("%w: invalid key", ErrExternalEngine)

	// ErrKeyIO 参数或密钥文件读写失败
	ErrKeyIO = fmt.Errorf("%w: key file io", ErrExternalEngine)
)

// ============================================================================
//                               错误包装函数
// ============================================================================

// WrapCircuitCompilationFailedError 包装电路编译失败错误
func WrapCircuitCompilationFailedError(err error) error {
	return fmt.Errorf("%w: circuit=%s, cause=%v", ErrCircuitCompilationFailed, CircuitID, err)
}

// WrapSetupFailedError 包装密钥生成失败错误
func WrapSetupFailedError(err error) error {
	return fmt.Errorf("%w: circuit=%s, cause=%v", ErrSetupFailed, CircuitID, err)
}

// WrapProofGenerationFailedError 包装证明生成失败错误
func WrapProofGenerationFailedError(err error) error {
	return fmt.Errorf("%w: circuit=%s, cause=%v", ErrProofGenerationFailed, CircuitID, err)
}

// WrapProofVerificationFailedError 包装证明自检失败错误
func WrapProofVerificationFailedError(err error) error {
	return fmt.Errorf("%w: circuit=%s, cause=%v", ErrProofVerificationFailed, CircuitID, err)
}

// WrapInvalidWitnessError 包装无效见证错误
func WrapInvalidWitnessError(reason string) error {
	return fmt.Errorf("%w: circuit=%s, reason=%s", ErrInvalidWitness, CircuitID, reason)
}

// WrapInvalidPublicInputsError 包装无效公共输入错误
func WrapInvalidPublicInputsError(expected, actual int) error {
	return fmt.Errorf("%w: circuit=%s, expected=%d, actual=%d", ErrInvalidPublicInputs, CircuitID, expected, actual)
}

// WrapInvalidProofError 包装无效证明错误
func WrapInvalidProofError(reason string) error {
	return fmt.Errorf("%w: circuit=%s, reason=%s", ErrInvalidProof, CircuitID, reason)
}

// WrapInvalidPepperError 包装 pepper 错误
func WrapInvalidPepperError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPepper, reason)
}

// WrapParamsTooSmallError 包装参考串过小错误
func WrapParamsTooSmallError(required, actual int) error {
	return fmt.Errorf("%w: required=%d, actual=%d", ErrParamsTooSmall, required, actual)
}

// WrapInvalidParamsError 包装参考串无效错误
func WrapInvalidParamsError(path string, err error) error {
	return fmt.Errorf("%w: path=%s, cause=%v", ErrInvalidParams, path, err)
}

// WrapInvalidKeyError 包装密钥文件无效错误
func WrapInvalidKeyError(path string, err error) error {
	return fmt.Errorf("%w: path=%s, cause=%v", ErrInvalidKey, path, err)
}

// WrapKeyIOError 包装文件读写错误
func WrapKeyIOError(op, path string, err error) error {
	return fmt.Errorf("%w: op=%s, path=%s, cause=%v", ErrKeyIO, op, path, err)
}

var errSRSMismatch = errors.New("verifying key was not derived from params")
