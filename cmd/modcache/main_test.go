package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/modcache/internal/adapters/cas"
	"go.trai.ch/modcache/internal/adapters/detector"
	"go.trai.ch/modcache/internal/adapters/fs"
	"go.trai.ch/modcache/internal/adapters/telemetry"
	"go.trai.ch/modcache/internal/app"
	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports/mocks"
	"go.trai.ch/modcache/internal/engine/vm"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"modcache": main,
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   filepath.Join("testdata", "script"),
		Setup: setupScript,
	})
}

func setupScript(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	return nil
}

func newComponents(t *testing.T, loader *mocks.MockConfigLoader, log *mocks.MockLogger) *app.Components {
	t.Helper()
	engine := vm.New()
	tracer := telemetry.NewNoOpTracer()
	application := app.New(loader, cas.NewOpener(engine), engine, fs.NewWalker(), log, tracer)
	return app.NewComponents(application, log, tracer)
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	components := newComponents(t, mockLoader, mockLogger)

	mockLoader.EXPECT().Load(domain.ConfigFileName).Return(domain.DefaultConfig(), nil)
	mockLogger.EXPECT().SetJSON(true).Times(2)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version", "--log-format", "json"}, stdout, stderr, provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "modcache version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	components := newComponents(t, mockLoader, mockLogger)

	mockLoader.EXPECT().Load("broken.yaml").Return(domain.Config{}, domain.ErrConfigParseFailed)
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.True(t, errors.Is(err, domain.ErrConfigParseFailed))
	})

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"stat", "-c", "broken.yaml"},
		new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 1, exitCode)
}

// TestRun_Options verifies that options are applied to the app before execution.
func TestRun_Options(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	components := newComponents(t, mockLoader, mockLogger)

	mockLoader.EXPECT().Load(domain.ConfigFileName).Return(domain.DefaultConfig(), nil)
	mockLogger.EXPECT().SetJSON(false)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	applied := false
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), new(bytes.Buffer), provider,
		func(a *app.App) {
			a.WithDetector(func() detector.OutputMode { return detector.ModePretty })
			applied = true
		})

	assert.Equal(t, 0, exitCode)
	assert.True(t, applied)
}
