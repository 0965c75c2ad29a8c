package metrics

import (
	"context"
	"time"

	"github.com/zkopenid/oidczk/internal/core/zkproof"
)

// instrumentedEngine 为每个引擎操作记录耗时与结果
type instrumentedEngine struct {
	next     zkproof.Engine
	recorder *Recorder
}

// Instrument 用 recorder 包装 engine
func Instrument(engine zkproof.Engine, recorder *Recorder) zkproof.Engine {
	return &instrumentedEngine{next: engine, recorder: recorder}
}

func (e *instrumentedEngine) GenerateParams(ctx context.Context, k uint32, path string) error {
	start := time.Now()
	err := e.next.GenerateParams(ctx, k, path)
	e.recorder.Observe("generate_params", resultOf(err), time.Since(start))
	return err
}

func (e *instrumentedEngine) ParamsHash(ctx context.Context, path string) ([32]byte, error) {
	start := time.Now()
	hash, err := e.next.ParamsHash(ctx, path)
	e.recorder.Observe("params_hash", resultOf(err), time.Since(start))
	return hash, err
}

func (e *instrumentedEngine) GenerateKeys(ctx context.Context, paramsPath string, keys zkproof.KeyPaths, artifacts *zkproof.CircuitArtifacts) error {
	start := time.Now()
	err := e.next.GenerateKeys(ctx, paramsPath, keys, artifacts)
	e.recorder.Observe("generate_keys", resultOf(err), time.Since(start))
	return err
}

func (e *instrumentedEngine) Prove(ctx context.Context, paramsPath string, keys zkproof.KeyPaths, artifacts *zkproof.CircuitArtifacts) (*zkproof.ProofResult, error) {
	start := time.Now()
	res, err := e.next.Prove(ctx, paramsPath, keys, artifacts)
	e.recorder.Observe("prove", resultOf(err), time.Since(start))
	return res, err
}

func (e *instrumentedEngine) Verify(ctx context.Context, paramsPath string, keys zkproof.KeyPaths, proof []byte, publicInputs [][]byte) (bool, error) {
	start := time.Now()
	ok, err := e.next.Verify(ctx, paramsPath, keys, proof, publicInputs)
	result := resultOf(err)
	if err == nil && !ok {
		result = ResultRejected
	}
	e.recorder.Observe("verify", result, time.Since(start))
	return ok, err
}
