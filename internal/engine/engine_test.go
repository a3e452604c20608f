package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/pqradar/pqradar/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func sortFindings(fs []types.Finding) {
	sort.Slice(fs, func(i, j int) bool {
		if fs[i].Path != fs[j].Path {
			return fs[i].Path < fs[j].Path
		}
		if fs[i].Line != fs[j].Line {
			return fs[i].Line < fs[j].Line
		}
		return fs[i].Algorithm < fs[j].Algorithm
	})
}

func TestScanFindsCryptoUsage(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app/crypto.py": "key = RSA.generate(2048)\n",
		"app/hash.py":   "digest = hashlib.sha1(data)\n",
		"README.md":     "RSA.generate(2048) in docs is not scanned\n",
	})
	res, err := Scan(context.Background(), Config{Root: root, DefaultExcludes: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.FilesScanned)
	require.Len(t, res.Findings, 2)
}

func TestScanEmptyTree(t *testing.T) {
	res, err := Scan(context.Background(), Config{Root: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, res.Findings)
	assert.Zero(t, res.FilesScanned)
}

func TestScanBadRoot(t *testing.T) {
	_, err := Scan(context.Background(), Config{Root: filepath.Join(t.TempDir(), "missing")})
	assert.ErrorIs(t, err, ErrBadRoot)
}

func TestScanSkipsBinaryAndOversized(t *testing.T) {
	root := writeTree(t, map[string]string{
		"bin.py": "RSA\x00binary\n",
		"big.py": "RSA-2048 RSA-2048 RSA-2048 RSA-2048\n",
		"ok.py":  "RSA-2048\n",
	})
	res, err := Scan(context.Background(), Config{Root: root, MaxBytes: 20})
	require.NoError(t, err)
	reasons := map[string]string{}
	for _, s := range res.Skips {
		reasons[s.Path] = s.Reason
	}
	assert.Equal(t, "binary", reasons["bin.py"])
	assert.Equal(t, "oversized", reasons["big.py"])
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "ok.py", res.Findings[0].Path)
}

func TestScanGlobFilters(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/a.py":  "RSA-2048\n",
		"test/b.py": "RSA-2048\n",
	})
	res, err := Scan(context.Background(), Config{Root: root, ExcludeGlobs: "test/**"})
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, filepath.Join("src", "a.py"), res.Findings[0].Path)
}

func TestScanFileLimit(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "x\n", "b.py": "x\n", "c.py": "x\n",
	})
	_, err := Scan(context.Background(), Config{Root: root, MaxFiles: 2})
	assert.ErrorIs(t, err, ErrTooManyFiles)
}

func TestScanCancellation(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 50; i++ {
		files[filepath.Join("src", string(rune('a'+i%26))+"x", "f.py")] = "RSA-1024\n"
	}
	root := writeTree(t, files)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Scan(ctx, Config{Root: root})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanTimeoutReturnsDeadline(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "RSA-2048\n"})
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)
	_, err := Scan(ctx, Config{Root: root})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestScanDeterministicAcrossRuns(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/one.py":   "RSA.generate(4096)\n",
		"b/two.go":   "h := sha1.New()\n",
		"c/three.rb": "OpenSSL::PKey::EC P-384\n",
	})
	first, err := Scan(context.Background(), Config{Root: root, Threads: 4})
	require.NoError(t, err)
	second, err := Scan(context.Background(), Config{Root: root, Threads: 4})
	require.NoError(t, err)
	sortFindings(first.Findings)
	sortFindings(second.Findings)
	assert.Equal(t, first.Findings, second.Findings)
}
