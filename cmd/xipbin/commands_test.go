package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xipbin/pkg/util/xipbin"
	"github.com/omeyang/xipbin/pkg/util/xnet"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"xipbin"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"address default precision", []string{"encode", "66.96.160.133"}, "66.96.160.133\ta0ce0ac0c1\n"},
		{"precision 5", []string{"encode", "-p", "5", "66.96.160.133", "1113628805"},
			"66.96.160.133\ta0ce0\n1113628805\ta0ce0\n"},
		{"clamped precision", []string{"encode", "--precision", "12", "10.86.41.92"}, "10.86.41.92\t0acdb0d1af\n"},
		{"cidr", []string{"encode", "--range", "66.96.0.0/15"}, "66.96.0.0/15\ta0ce0\n"},
		{"wide range", []string{"encode", "-r", "10.0.0.0-10.255.255.255"}, "10.0.0.0-10.255.255.255\t0a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, "", tt.args...)
			require.Equal(t, 0, r.code, r.stderr)
			assert.Equal(t, tt.want, r.stdout)
		})
	}
}

func TestEncode_PartialFailure(t *testing.T) {
	r := runCLI(t, "", "encode", "-p", "1", "66.96.160.133", "300.1.1.1", "::1")

	assert.Equal(t, 1, r.code)
	assert.Equal(t, "66.96.160.133\ta\n", r.stdout)
	assert.Equal(t, 2, strings.Count(r.stderr, "encode failed"))
	assert.Contains(t, r.stderr, "300.1.1.1")
}

func TestDecode(t *testing.T) {
	r := runCLI(t, "", "decode", "a0ce0")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "a0ce0\t1113653247.7407074\n", r.stdout)

	r = runCLI(t, "", "decode", "--exact", "a0ce0", "ffffffffff")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "a0ce0\t1113653247.7407074\t65535.99998474121\n"+
		"ffffffffff\t4294967293\t1.9999999995343387\n", r.stdout)
}

func TestDecode_InvalidToken(t *testing.T) {
	r := runCLI(t, "", "decode", "a0g")
	assert.Equal(t, 1, r.code)
	assert.Empty(t, strings.TrimSpace(r.stdout))
	assert.Contains(t, r.stderr, "decode failed")
}

func TestDecode_JSON(t *testing.T) {
	r := runCLI(t, "", "-o", "json", "decode", "-x", "a0ce0")
	require.Equal(t, 0, r.code, r.stderr)

	var got []decodeResult
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "a0ce0", got[0].Token)
	assert.InDelta(t, 1113653247.7407074, got[0].Value, 1e-6)
	require.NotNil(t, got[0].Margin)
	assert.InDelta(t, 65535.99998474121, *got[0].Margin, 1e-9)
}

func TestSpan(t *testing.T) {
	r := runCLI(t, "", "span", "a0ce0ac0c1")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "token:     a0ce0ac0c1\n")
	assert.Contains(t, r.stdout, "precision: 10\n")
	assert.Contains(t, r.stdout, "range:     66.96.160.132-66.96.160.135 (4)\n")
	assert.Contains(t, r.stdout, "prefix:    66.96.160.132/30\n")

	r = runCLI(t, "", "span", "a0ce0ac0c11")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "range:     (empty)\n")
}

type failWriter struct{ n int }

func (w *failWriter) Write([]byte) (int, error) {
	w.n++
	return 0, errors.New("write failed")
}

func TestSpan_MultipleText(t *testing.T) {
	r := runCLI(t, "", "span", "a0ce0", "0acdb")
	require.Equal(t, 0, r.code, r.stderr)
	parts := strings.Split(r.stdout, "\n\n")
	require.Len(t, parts, 2)
	assert.True(t, strings.HasPrefix(parts[0], "a0ce0"))
	assert.True(t, strings.HasPrefix(parts[1], "0acdb"))
}

func TestSpan_WriteError(t *testing.T) {
	w := &failWriter{}
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"xipbin", "span", "a0ce0", "0acdb"}, strings.NewReader(""), w, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "write failed")
	assert.Positive(t, w.n)
}

func TestSpan_JSON(t *testing.T) {
	r := runCLI(t, "", "--output", "json", "span", "a0ce0", "a")
	require.Equal(t, 0, r.code, r.stderr)

	var got []xipbin.Span
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	require.Len(t, got, 2)
	assert.Equal(t, xnet.WireRange{Start: "66.96.0.0", End: "66.97.255.255"}, got[0].Range)
	assert.Equal(t, uint64(131072), got[0].Size)
	assert.Equal(t, 1, got[1].Precision)
	assert.Equal(t, "64.0.0.0/3", got[1].Prefixes[0].String())
}

func TestSpan_YAML(t *testing.T) {
	r := runCLI(t, "", "-o", "yaml", "span", "a0ce0")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "token: a0ce0\n")
	assert.Contains(t, r.stdout, "start: 66.96.0.0\n")
	assert.Contains(t, r.stdout, "- 66.96.0.0/15\n")
}

const bucketInput = `# access log sample
66.96.160.133

66.96.160.133
bad
 10.86.41.92
`

func TestBucket_Stdin(t *testing.T) {
	r := runCLI(t, bucketInput, "bucket", "-p", "5")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "0acdb\t1\t1\t10.86.0.0-10.87.255.255\n"+
		"a0ce0\t2\t1\t66.96.0.0-66.97.255.255\n", r.stdout)
	assert.Contains(t, r.stderr, "skip invalid line")
	assert.Contains(t, r.stderr, "line=5")
}

func TestBucket_FileJSON(t *testing.T) {
	path := writeTemp(t, "addrs.txt", bucketInput)

	r := runCLI(t, "", "-o", "json", "bucket", "--precision", "1", "--dedup-size", "16", path)
	require.Equal(t, 0, r.code, r.stderr)

	var got bucketReport
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, 1, got.Precision)
	assert.Equal(t, uint64(3), got.Total)
	assert.Equal(t, int64(1), got.Invalid)
	require.Len(t, got.Buckets, 2)
	assert.Equal(t, "0", got.Buckets[0].Token)
	assert.Equal(t, "a", got.Buckets[1].Token)
	assert.Equal(t, uint64(2), got.Buckets[1].Hits)
}

func TestBucket_MultipleFiles(t *testing.T) {
	a := writeTemp(t, "a.txt", "66.96.160.133\n66.97.1.1\n")
	b := writeTemp(t, "b.txt", "66.96.160.133\nnot-an-ip\n10.86.41.92\n")

	r := runCLI(t, "", "-o", "json", "bucket", "-p", "5", "-w", "2", a, b)
	require.Equal(t, 0, r.code, r.stderr)

	var got bucketReport
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, uint64(4), got.Total)
	assert.Equal(t, int64(1), got.Invalid)
	require.Len(t, got.Buckets, 2)
	assert.Equal(t, "a0ce0", got.Buckets[1].Token)
	assert.Equal(t, uint64(3), got.Buckets[1].Hits)
	assert.Equal(t, uint64(2), got.Buckets[1].Unique)
	assert.Contains(t, r.stderr, "not-an-ip")
}

func TestBucket_StdinDashAndSampling(t *testing.T) {
	var in strings.Builder
	for i := range 200 {
		fmt.Fprintf(&in, "10.0.%d.%d\n", i/250, i%250)
	}

	r := runCLI(t, in.String(), "-o", "json", "bucket", "-p", "2", "--sample-rate", "0.5", "-")
	require.Equal(t, 0, r.code, r.stderr)

	var got bucketReport
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, uint64(200), got.Total+got.Skipped)
	assert.Positive(t, got.Skipped)
	assert.Positive(t, got.Total)
}

func TestBucket_Errors(t *testing.T) {
	r := runCLI(t, "", "bucket", "-p", "0")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "参数错误")

	r = runCLI(t, "", "bucket", "--workers", "0")
	assert.Equal(t, 2, r.code)

	r = runCLI(t, "", "bucket", "--sample-rate", "2")
	assert.Equal(t, 2, r.code)

	r = runCLI(t, "", "bucket", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "错误")
}

func TestBucket_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := run(ctx, []string{"xipbin", "bucket", "-p", "3"}, strings.NewReader("1.2.3.4\n5.6.7.8\n"), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), context.Canceled.Error())
}

func TestBucket_StdinTwice(t *testing.T) {
	r := runCLI(t, "1.2.3.4\n", "bucket", "-p", "3", "-", "-")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "stdin")
	assert.Empty(t, r.stdout)
}

func TestDemo(t *testing.T) {
	r := runCLI(t, "", "demo", "--random", "5", "--seed", "7")
	require.Equal(t, 0, r.code, r.stderr)
	assert.True(t, strings.HasPrefix(r.stdout, "66.96.160.133 = 1113628805\n 1  a  "), r.stdout)
	assert.Contains(t, r.stdout, "10  a0ce0ac0c1  ")
	assert.Contains(t, r.stdout, "random addresses sorted by token (5)\n")
	assert.Contains(t, r.stdout, "10.86.41.92 = 173418844 -> 0acdb0d1af\n")

	again := runCLI(t, "", "demo", "--random", "5", "--seed", "7")
	assert.Equal(t, r.stdout, again.stdout)
}

func TestDemo_JSON(t *testing.T) {
	r := runCLI(t, "", "-o", "json", "demo", "--random", "20", "--seed", "1")
	require.Equal(t, 0, r.code, r.stderr)

	var got demoReport
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))

	tokens := make([]string, 0, len(got.Steps))
	for _, s := range got.Steps {
		tokens = append(tokens, s.Token)
	}
	assert.Equal(t, []string{
		"a", "a0", "a0c", "a0ce", "a0ce0", "a0ce0a", "a0ce0ac", "a0ce0ac0", "a0ce0ac0c", "a0ce0ac0c1",
	}, tokens)

	require.Len(t, got.Random, 20)
	assert.True(t, slices.IsSortedFunc(got.Random, func(a, b demoEntry) int {
		return strings.Compare(a.Token, b.Token)
	}))
	// token 顺序与地址数值顺序一致
	assert.True(t, slices.IsSortedFunc(got.Random, func(a, b demoEntry) int {
		return int(int64(a.Value) - int64(b.Value))
	}))
	assert.Equal(t, "0acdb0d1af", got.Sample.Token)
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"encode without args", []string{"encode"}},
		{"decode without args", []string{"decode"}},
		{"span without args", []string{"span"}},
		{"unknown flag", []string{"encode", "--nope", "1.2.3.4"}},
		{"bad output", []string{"-o", "xml", "encode", "1.2.3.4"}},
		{"bad log level", []string{"--log-level", "loud", "encode", "1.2.3.4"}},
		{"negative random", []string{"demo", "--random=-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, "", tt.args...)
			assert.Equal(t, 2, r.code, r.stderr)
		})
	}
}

func TestConfigFile(t *testing.T) {
	path := writeTemp(t, "xipbin.yaml", "precision: 5\noutput: json\nlog:\n  level: error\n")

	r := runCLI(t, "", "--config", path, "encode", "66.96.160.133")
	require.Equal(t, 0, r.code, r.stderr)
	var got []encodeResult
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, []encodeResult{{Input: "66.96.160.133", Token: "a0ce0"}}, got)

	// 显式 flag 优先于配置文件
	r = runCLI(t, "", "-c", path, "-o", "text", "encode", "-p", "2", "66.96.160.133")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "66.96.160.133\ta0\n", r.stdout)
}

func TestConfigFile_Errors(t *testing.T) {
	r := runCLI(t, "", "-c", filepath.Join(t.TempDir(), "missing.yaml"), "encode", "1.2.3.4")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "参数错误")

	garbled := writeTemp(t, "garbled.yaml", "precision: [1, 2\n")
	r = runCLI(t, "", "-c", garbled, "encode", "1.2.3.4")
	assert.Equal(t, 2, r.code)

	bad := writeTemp(t, "bad.json", `{"precision": 42}`)
	r = runCLI(t, "", "-c", bad, "encode", "1.2.3.4")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "precision 42")
}

func TestLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "xipbin.log")

	r := runCLI(t, "", "--log-file", logFile, "--log-level", "debug", "--log-format", "json",
		"encode", "66.96.160.133")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Empty(t, r.stderr)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"encoded"`)
	assert.Contains(t, string(data), `"token":"a0ce0ac0c1"`)
}
