package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modcache/cmd/modcache/commands"
	"go.trai.ch/modcache/internal/app"
	"go.trai.ch/modcache/internal/build"
	"go.trai.ch/modcache/internal/core/domain"
)

var testChecksum = domain.GenerateChecksum([]byte("func main 0\n\tpush 1\n\tret\n"))

type mockApp struct {
	configured app.ConfigureOptions
	runArgs    []int64
	runOpts    app.RunOptions

	runFunc   func() (app.RunResult, error)
	loadFunc  func() (app.LoadResult, error)
	pruneFunc func() ([]string, error)
}

func (m *mockApp) Configure(opts app.ConfigureOptions) error {
	m.configured = opts
	return nil
}

func (m *mockApp) Checksum(_ string) (domain.Checksum, error) {
	return testChecksum, nil
}

func (m *mockApp) Store(_ context.Context, path string) (app.StoreResult, error) {
	return app.StoreResult{Path: path, Checksum: testChecksum, Size: 2048}, nil
}

func (m *mockApp) Load(_ context.Context, _ string) (app.LoadResult, error) {
	if m.loadFunc != nil {
		return m.loadFunc()
	}
	return app.LoadResult{Checksum: testChecksum, Exports: []string{"answer", "main"}, Size: 100}, nil
}

func (m *mockApp) Run(_ context.Context, _, _ string, args []int64, opts app.RunOptions) (app.RunResult, error) {
	m.runArgs = args
	m.runOpts = opts
	if m.runFunc != nil {
		return m.runFunc()
	}
	return app.RunResult{Checksum: testChecksum, Value: 42, GasUsed: 3, CacheHit: true}, nil
}

func (m *mockApp) Remove(_ context.Context, checksum string) (bool, error) {
	return checksum == testChecksum.Hex(), nil
}

func (m *mockApp) Warm(_ context.Context, paths []string) ([]app.WarmResult, error) {
	results := make([]app.WarmResult, 0, len(paths))
	for _, p := range paths {
		results = append(results, app.WarmResult{Path: p, Checksum: testChecksum, Size: 10})
	}
	return results, nil
}

func (m *mockApp) Stat(_ context.Context) (app.Stats, error) {
	return app.Stats{
		BasePath:  "/tmp/cache",
		Version:   domain.NewVersionTag(7),
		Entries:   3,
		TotalSize: 3 * 1024,
		Stale:     []string{"v0-engine1"},
	}, nil
}

func (m *mockApp) Prune(_ context.Context) ([]string, error) {
	if m.pruneFunc != nil {
		return m.pruneFunc()
	}
	return nil, nil
}

func execute(t *testing.T, mock *mockApp, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	cli := commands.New(mock)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cli.SetOutput(stdout, stderr)
	cli.SetArgs(args)

	err := cli.Execute(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCommands_PersistentFlags(t *testing.T) {
	mock := &mockApp{}
	_, _, err := execute(t, mock, "stat", "-c", "other.yaml", "--cache-dir", "/c", "--log-format", "json", "--trace")
	require.NoError(t, err)

	assert.Equal(t, "other.yaml", mock.configured.ConfigPath)
	assert.Equal(t, "/c", mock.configured.CacheDir)
	assert.Equal(t, "json", mock.configured.LogFormat)
	assert.True(t, mock.configured.Trace)
	assert.NotNil(t, mock.configured.TraceOutput)
}

func TestCommands_DefaultConfigPath(t *testing.T) {
	mock := &mockApp{}
	_, _, err := execute(t, mock, "stat")
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigFileName, mock.configured.ConfigPath)
	assert.False(t, mock.configured.Trace)
}

func TestCommands_Checksum(t *testing.T) {
	out, _, err := execute(t, &mockApp{}, "checksum", "prog.mca")
	require.NoError(t, err)
	assert.Equal(t, testChecksum.Hex()+"\n", out)
}

func TestCommands_Store(t *testing.T) {
	out, _, err := execute(t, &mockApp{}, "store", "prog.mca")
	require.NoError(t, err)
	assert.Equal(t, "✓ stored "+testChecksum.Hex()+" (2.0 KiB)\n", out)
}

func TestCommands_Load(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		out, _, err := execute(t, &mockApp{}, "load", testChecksum.Hex())
		require.NoError(t, err)
		assert.Contains(t, out, "checksum: "+testChecksum.Hex()+"\n")
		assert.Contains(t, out, "size:     100 B\n")
		assert.Contains(t, out, "exports:  answer, main\n")
	})

	t.Run("miss", func(t *testing.T) {
		mock := &mockApp{
			loadFunc: func() (app.LoadResult, error) {
				return app.LoadResult{}, domain.ErrModuleNotCached
			},
		}
		_, _, err := execute(t, mock, "load", testChecksum.Hex())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrModuleNotCached))
	})
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags and arguments", func(t *testing.T) {
		mock := &mockApp{}
		out, errOut, err := execute(t, mock, "run", "prog.mca", "main", "1", "0x10", "--no-cache", "--stats")
		require.NoError(t, err)

		assert.Equal(t, "42\n", out)
		assert.Equal(t, []int64{1, 16}, mock.runArgs)
		assert.True(t, mock.runOpts.NoCache)
		assert.Equal(t, "module: cache\ngas:    3\n", errOut)
	})

	t.Run("negative arguments after separator", func(t *testing.T) {
		mock := &mockApp{}
		_, _, err := execute(t, mock, "run", "prog.mca", "main", "--", "-5")
		require.NoError(t, err)
		assert.Equal(t, []int64{-5}, mock.runArgs)
	})

	t.Run("rejects non-integer arguments", func(t *testing.T) {
		_, _, err := execute(t, &mockApp{}, "run", "prog.mca", "main", "abc")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func() (app.RunResult, error) {
				return app.RunResult{}, errors.New("simulated error")
			},
		}
		_, _, err := execute(t, mock, "run", "prog.mca", "main")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("requires program and export", func(t *testing.T) {
		_, _, err := execute(t, &mockApp{}, "run", "prog.mca")
		require.Error(t, err)
	})
}

func TestCommands_Remove(t *testing.T) {
	out, _, err := execute(t, &mockApp{}, "rm", testChecksum.Hex())
	require.NoError(t, err)
	assert.Equal(t, "✓ removed "+testChecksum.Hex()+"\n", out)

	other := domain.GenerateChecksum([]byte("other")).Hex()
	out, _, err = execute(t, &mockApp{}, "remove", other)
	require.NoError(t, err)
	assert.Equal(t, "not cached "+other+"\n", out)
}

func TestCommands_Warm(t *testing.T) {
	out, _, err := execute(t, &mockApp{}, "warm", "a.mca", "b.mca")
	require.NoError(t, err)
	assert.Equal(t,
		"✓ "+testChecksum.Hex()+"  a.mca (10 B)\n"+
			"✓ "+testChecksum.Hex()+"  b.mca (10 B)\n",
		out)

	_, _, err = execute(t, &mockApp{}, "warm")
	require.Error(t, err)
}

func TestCommands_Stat(t *testing.T) {
	out, _, err := execute(t, &mockApp{}, "stat")
	require.NoError(t, err)
	assert.Equal(t, "path:    /tmp/cache\n"+
		"version: v1-engine7\n"+
		"entries: 3\n"+
		"size:    3.0 KiB\n"+
		"stale:   v0-engine1\n", out)
}

func TestCommands_Prune(t *testing.T) {
	out, _, err := execute(t, &mockApp{}, "prune")
	require.NoError(t, err)
	assert.Equal(t, "nothing to prune\n", out)

	mock := &mockApp{
		pruneFunc: func() ([]string, error) {
			return []string{"v0-engine1"}, domain.ErrPruneFailed
		},
	}
	out, _, err = execute(t, mock, "prune")
	require.Error(t, err)
	assert.Equal(t, "✓ removed v0-engine1\n", out)
}

func TestCommands_Version(t *testing.T) {
	out, _, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "modcache version "+build.Version)
}
