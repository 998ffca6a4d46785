package pathguard

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRoot = "/allowed/directory"

func newTestGuard(t *testing.T) (*Guard, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0o755))
	require.NoError(t, afero.WriteFile(fs, testRoot+"/ok.txt", []byte("hello from the allowed dir\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/etc/passwd", []byte("root:x:0:0\n"), 0o644))

	g, err := New(testRoot, WithFs(fs))
	require.NoError(t, err)
	return g, fs
}

func TestNew(t *testing.T) {
	t.Run("empty root rejected", func(t *testing.T) {
		_, err := New("", WithFs(afero.NewMemMapFs()))
		assert.Error(t, err)
	})

	t.Run("root is canonicalized", func(t *testing.T) {
		g, err := New("/allowed//directory/", WithFs(afero.NewMemMapFs()))
		require.NoError(t, err)
		assert.Equal(t, testRoot, g.Root())
	})
}

func TestSafeRead(t *testing.T) {
	g, _ := newTestGuard(t)

	t.Run("read inside root", func(t *testing.T) {
		got, err := g.SafeRead(testRoot + "/ok.txt")
		require.NoError(t, err)
		assert.Equal(t, "hello from the allowed dir\n", got)
	})

	t.Run("traversal out of root", func(t *testing.T) {
		_, err := g.SafeRead(testRoot + "/../../etc/passwd")
		assert.ErrorIs(t, err, ErrPathRejected)
	})

	t.Run("outside root", func(t *testing.T) {
		_, err := g.SafeRead("/etc/passwd")
		assert.ErrorIs(t, err, ErrPathRejected)
	})

	t.Run("sibling directory with root as string prefix", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, testRoot+"-evil/leak.txt", []byte("nope"), 0o644))

		g, err := New(testRoot, WithFs(fs))
		require.NoError(t, err)

		_, err = g.SafeRead(testRoot + "-evil/leak.txt")
		assert.ErrorIs(t, err, ErrPathRejected)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := g.SafeRead(testRoot + "/missing.txt")
		assert.ErrorIs(t, err, ErrPathRejected)
	})

	t.Run("non-utf8 content", func(t *testing.T) {
		g, fs := newTestGuard(t)
		require.NoError(t, afero.WriteFile(fs, testRoot+"/blob.bin", []byte{0xff, 0xfe, 0xfd}, 0o644))

		_, err := g.SafeRead(testRoot + "/blob.bin")
		assert.ErrorIs(t, err, ErrPathRejected)
	})

	t.Run("deterministic across repeated calls", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			got, err := g.SafeRead(testRoot + "/ok.txt")
			require.NoError(t, err)
			assert.Equal(t, "hello from the allowed dir\n", got)
		}
	})
}

func TestSafeOpWrite(t *testing.T) {
	g, fs := newTestGuard(t)

	_, err := g.SafeOp(testRoot+"/new.txt", OpWrite)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	// The write must not have happened.
	exists, err := afero.Exists(fs, testRoot+"/new.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRejectionsAreLogged(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0o755))

	var buf bytes.Buffer
	log := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Debug})

	g, err := New(testRoot, WithFs(fs), WithLogger(log))
	require.NoError(t, err)

	_, err = g.SafeRead("/other/dir/file.txt")
	assert.ErrorIs(t, err, ErrPathRejected)
	assert.Contains(t, buf.String(), "outside allowed directory")
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "read", OpRead.String())
	assert.Equal(t, "write", OpWrite.String())
	assert.Equal(t, "op(7)", Op(7).String())
}
