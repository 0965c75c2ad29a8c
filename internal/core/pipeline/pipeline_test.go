package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkopenid/oidczk/internal/core/idtoken"
	"github.com/zkopenid/oidczk/internal/core/packed"
	"github.com/zkopenid/oidczk/internal/core/testutil"
	"github.com/zkopenid/oidczk/internal/core/zkconfig"
	"github.com/zkopenid/oidczk/internal/core/zkproof"
)

type fixture struct {
	dir      string
	engine   *testutil.StubEngine
	pipeline *Pipeline
	token    string
	params   string
	keys     zkproof.KeyPaths
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	engine := testutil.NewStubEngine()
	f := &fixture{
		dir:      dir,
		engine:   engine,
		pipeline: New(testutil.NewTestLogger(), engine),
		token:    filepath.Join(dir, "id_token.txt"),
		params:   filepath.Join(dir, "params.bin"),
		keys: zkproof.KeyPaths{
			ProvingKey:   filepath.Join(dir, "app.pk"),
			VerifyingKey: filepath.Join(dir, "app.vc"),
		},
	}
	// 末尾换行会被去掉
	require.NoError(t, os.WriteFile(f.token, []byte(testutil.SampleToken()+"\n"), 0o644))
	return f
}

func (f *fixture) setup(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.pipeline.GenParams(ctx, GenParamsRequest{K: 10, ParamsPath: f.params})
	require.NoError(t, err)
	require.NoError(t, f.pipeline.GenKeys(ctx, GenKeysRequest{
		ParamsPath:  f.params,
		IDTokenPath: f.token,
		Keys:        f.keys,
	}))
}

func (f *fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

func TestBuildPlainArgs_Layout(t *testing.T) {
	out, err := BuildPlainArgs(testutil.SampleToken())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "0x"))

	data, err := packed.FromHex(out)
	require.NoError(t, err)

	payload := testutil.SamplePayload
	header := testutil.SampleHeader
	want := []uint32{
		8, uint32(strings.Index(payload, `","sub"`)),
		uint32(strings.Index(header, "k1")), uint32(strings.Index(header, `","typ"`)),
		uint32(strings.Index(payload, "u1")), uint32(strings.Index(payload, `","aud"`)),
		uint32(strings.Index(payload, "c1")), uint32(strings.Index(payload, `","iat"`)),
		uint32(strings.Index(payload, "n1")),
		uint32(strings.Index(payload, "100")),
		uint32(strings.Index(payload, "200")),
	}
	for i, w := range want {
		require.Equal(t, w, binary.BigEndian.Uint32(data[i*4:]), "offset %d", i)
	}

	pos := len(want) * 4
	for _, seg := range [][]byte{[]byte(header), []byte(payload), testutil.SampleSignature()} {
		n := int(binary.BigEndian.Uint32(data[pos:]))
		require.Equal(t, len(seg), n)
		require.Equal(t, seg, data[pos+4:pos+4+n])
		pos += 4 + n
	}
	require.Equal(t, len(data), pos)
}

func TestBuildPlainArgs_Deterministic(t *testing.T) {
	a, err := BuildPlainArgs(testutil.SampleToken())
	require.NoError(t, err)
	b, err := BuildPlainArgs(testutil.SampleToken())
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestBuildPlainArgs_Errors(t *testing.T) {
	_, err := BuildPlainArgs("only.two")
	require.True(t, errors.Is(err, idtoken.ErrInvalidToken))

	token := testutil.BuildToken(`{"alg":"RS256"}`, testutil.SamplePayload, []byte("s"))
	_, err = BuildPlainArgs(token)
	require.True(t, errors.Is(err, idtoken.ErrClaimNotFound))
}

func TestEmitPlainArgs(t *testing.T) {
	f := newFixture(t)
	out := f.path("out/id_token.output")

	require.NoError(t, f.pipeline.EmitPlainArgs(context.Background(), PlainArgsRequest{
		IDTokenPath: f.token,
		OutputPath:  out,
	}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	want, err := BuildPlainArgs(testutil.SampleToken())
	require.NoError(t, err)
	require.Equal(t, want, string(data))
}

func TestEmitPlainArgs_NoPartialOutput(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.token, []byte("a.b"), 0o644))
	out := f.path("id_token.output")

	err := f.pipeline.EmitPlainArgs(context.Background(), PlainArgsRequest{IDTokenPath: f.token, OutputPath: out})
	require.True(t, errors.Is(err, idtoken.ErrInvalidToken))
	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

func TestEmitPlainArgs_MissingToken(t *testing.T) {
	f := newFixture(t)
	err := f.pipeline.EmitPlainArgs(context.Background(), PlainArgsRequest{
		IDTokenPath: f.path("missing.txt"),
		OutputPath:  f.path("out"),
	})
	require.True(t, errors.Is(err, ErrIO))
}

func TestProveAndVerify(t *testing.T) {
	f := newFixture(t)
	f.setup(t)
	ctx := context.Background()

	req := ProveRequest{
		ParamsPath:        f.params,
		Keys:              f.keys,
		Pepper:            testutil.SamplePepperBytes(),
		IDTokenPath:       f.token,
		ProofPath:         f.path("app.proof"),
		PublicInputPath:   f.path("public_input.json"),
		ContractInputPath: f.path("contract_input.json"),
	}
	result, err := f.pipeline.Prove(ctx, req)
	require.NoError(t, err)

	proof, err := os.ReadFile(req.ProofPath)
	require.NoError(t, err)
	require.Equal(t, testutil.StubProof(), proof)

	inputs, err := readPublicInputs(req.PublicInputPath)
	require.NoError(t, err)
	require.Equal(t, result.PublicInputs, inputs)

	var contract ContractInput
	data, err := os.ReadFile(req.ContractInputPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &contract))
	require.Equal(t, packed.ToHex([]byte(testutil.SampleHeader)), contract.HeaderRawBytes)
	require.Equal(t, uint32(0), contract.HeaderLeftIndex)
	require.Equal(t, contract.HeaderBase64Len+1, contract.PayloadLeftIndex)
	require.Equal(t, uint32(2), contract.SubLen)
	require.Equal(t, packed.NewU128(testutil.StubDomainSize), contract.DomainSize)
	require.Equal(t, packed.ToHex(testutil.StubProofData()), contract.ProofData)
	require.Len(t, contract.PublicInputs, zkproof.PublicInputCount)

	verify := VerifyRequest{
		ParamsPath:      f.params,
		Keys:            f.keys,
		ProofPath:       req.ProofPath,
		PublicInputPath: req.PublicInputPath,
	}
	ok, err := f.pipeline.Verify(ctx, verify)
	require.NoError(t, err)
	require.True(t, ok)

	// 错误的证明不是错误，只是验证失败
	require.NoError(t, os.WriteFile(req.ProofPath, []byte("bad"), 0o644))
	ok, err = f.pipeline.Verify(ctx, verify)
	require.NoError(t, err)
	require.False(t, ok)

	// 公开输入文件损坏是错误
	require.NoError(t, os.WriteFile(req.PublicInputPath, []byte("{"), 0o644))
	_, err = f.pipeline.Verify(ctx, verify)
	require.True(t, errors.Is(err, ErrIO))

	require.Equal(t, []string{"GenerateParams", "ParamsHash", "GenerateKeys", "Prove", "ParamsHash", "Verify", "Verify"}, f.engine.Calls())
}

func TestGenParams_ReturnsSRSHash(t *testing.T) {
	f := newFixture(t)
	hash, err := f.pipeline.GenParams(context.Background(), GenParamsRequest{K: 10, ParamsPath: f.params})
	require.NoError(t, err)

	data, err := os.ReadFile(f.params)
	require.NoError(t, err)
	require.Equal(t, sha256.Sum256(data), hash)
	require.Equal(t, []string{"GenerateParams", "ParamsHash"}, f.engine.Calls())
}

func TestProve_InvalidPepper(t *testing.T) {
	f := newFixture(t)
	f.setup(t)

	_, err := f.pipeline.Prove(context.Background(), ProveRequest{
		ParamsPath:  f.params,
		Keys:        f.keys,
		Pepper:      []byte{1, 2, 3},
		IDTokenPath: f.token,
	})
	require.True(t, errors.Is(err, zkproof.ErrInvalidPepper))
}

func TestEmitZKArgs(t *testing.T) {
	f := newFixture(t)
	f.setup(t)

	req := ZKArgsRequest{
		ParamsPath:    f.params,
		Keys:          f.keys,
		Pepper:        testutil.SamplePepperBytes(),
		IDTokenPath:   f.token,
		OutputPath:    f.path("id_token_zk.output"),
		ZKConfigsPath: f.path("zkConfigs.json"),
	}
	require.NoError(t, f.pipeline.EmitZKArgs(context.Background(), req))

	hexOut, err := os.ReadFile(req.OutputPath)
	require.NoError(t, err)
	data, err := packed.FromHex(string(hexOut))
	require.NoError(t, err)

	artifacts, err := zkproof.Synthesize(testutil.SampleToken(), testutil.SamplePepperBytes())
	require.NoError(t, err)

	plain, err := BuildPlainArgs(testutil.SampleToken())
	require.NoError(t, err)
	plainData, err := packed.FromHex(plain)
	require.NoError(t, err)
	require.Equal(t, plainData[:44], data[:44])

	pos := 44
	u32 := func() uint32 {
		v := binary.BigEndian.Uint32(data[pos:])
		pos += 4
		return v
	}
	blob := func() []byte {
		n := int(u32())
		b := data[pos : pos+n]
		pos += n
		return b
	}
	require.Equal(t, artifacts.HeaderBase64Len, u32())
	require.Equal(t, artifacts.PayloadLeftIndex, u32())
	require.Equal(t, artifacts.PayloadBase64Len, u32())
	require.Equal(t, artifacts.IDTokenHash[:], data[pos:pos+32])
	pos += 32
	require.Equal(t, artifacts.SubPepperHash[:], data[pos:pos+32])
	pos += 32
	require.Equal(t, uint64(0), binary.BigEndian.Uint64(data[pos:]))
	require.Equal(t, uint64(testutil.StubDomainSize), binary.BigEndian.Uint64(data[pos+8:]))
	pos += 16
	require.Equal(t, []byte(testutil.SampleHeader), blob())
	require.Equal(t, artifacts.PayloadPubMatch, blob())
	require.Equal(t, testutil.SampleSignature(), blob())
	require.Equal(t, testutil.StubVKData(), blob())
	require.Len(t, blob(), zkproof.PublicInputCount*zkproof.FieldElementSize)
	require.Equal(t, testutil.StubProofData(), blob())
	require.Equal(t, len(data), pos)

	cfgData, err := os.ReadFile(req.ZKConfigsPath)
	require.NoError(t, err)
	cfg, err := zkconfig.Parse(cfgData)
	require.NoError(t, err)
	require.Equal(t, uint64(zkproof.PublicInputCount), cfg.NumInputs)
	require.Equal(t, "8192", cfg.DomainSize.String())
	vk, err := cfg.VKDataBytes()
	require.NoError(t, err)
	require.Equal(t, testutil.StubVKData(), vk)
}

func TestEmitZKArgs_MissingClaimSkipsEngine(t *testing.T) {
	f := newFixture(t)
	f.setup(t)
	token := testutil.BuildToken(testutil.SampleHeader, `{"sub":"u1"}`, []byte("s"))
	require.NoError(t, os.WriteFile(f.token, []byte(token), 0o644))

	err := f.pipeline.EmitZKArgs(context.Background(), ZKArgsRequest{
		ParamsPath:    f.params,
		Keys:          f.keys,
		Pepper:        testutil.SamplePepperBytes(),
		IDTokenPath:   f.token,
		OutputPath:    f.path("id_token_zk.output"),
		ZKConfigsPath: f.path("zkConfigs.json"),
	})
	require.True(t, errors.Is(err, idtoken.ErrClaimNotFound))
	require.NotContains(t, f.engine.Calls(), "Prove")
}

func TestWriteFile_Atomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b.txt")
	require.NoError(t, writeFile(path, []byte("one")))
	require.NoError(t, writeFile(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
