package app

import (
	"context"
	"fmt"

	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// RunOptions configuration for the Run method.
type RunOptions struct {
	// NoCache compiles the program without reading or writing the cache.
	NoCache bool
}

// RunResult is the outcome of Run.
type RunResult struct {
	Checksum domain.Checksum
	Value    int64
	GasUsed  uint64
	// CacheHit reports whether the module was loaded from the cache.
	CacheHit bool
}

// Run calls export in the program at path, loading the compiled module from
// the cache when possible. On a miss the program is compiled and stored.
// An unusable cache entry is reported as a warning and replaced.
func (a *App) Run(ctx context.Context, path, export string, args []int64, opts RunOptions) (RunResult, error) {
	code, checksum, err := readProgram(path)
	if err != nil {
		return RunResult{}, err
	}

	var (
		m   *domain.Module
		hit bool
	)
	if opts.NoCache {
		m, err = a.compile(ctx, checksum, code)
	} else {
		m, hit, err = a.loadOrCompile(ctx, checksum, code)
	}
	if err != nil {
		return RunResult{}, err
	}

	res, err := a.execute(ctx, checksum, m, export, args)
	if err != nil {
		return RunResult{}, err
	}

	return RunResult{
		Checksum: checksum,
		Value:    res.Value,
		GasUsed:  res.GasUsed,
		CacheHit: hit,
	}, nil
}

type loadedModule struct {
	module *domain.Module
	hit    bool
}

func (a *App) loadOrCompile(ctx context.Context, checksum domain.Checksum, code []byte) (*domain.Module, bool, error) {
	v, err, _ := a.group.Do("load:"+checksum.Hex(), func() (any, error) {
		cache, err := a.moduleCache()
		if err != nil {
			return loadedModule{}, err
		}

		cached, err := a.loadModule(ctx, cache, checksum)
		switch {
		case err != nil:
			a.logger.Warn(fmt.Sprintf("cache entry %s unusable, recompiling: %v", checksum, err))
		case cached != nil:
			return loadedModule{module: cached.Module, hit: true}, nil
		}

		m, err := a.compile(ctx, checksum, code)
		if err != nil {
			return loadedModule{}, err
		}
		if _, err := a.storeModule(ctx, cache, checksum, m); err != nil {
			a.logger.Warn(fmt.Sprintf("could not cache module %s: %v", checksum, err))
		}
		return loadedModule{module: m}, nil
	})
	if err != nil {
		return nil, false, err
	}

	loaded := v.(loadedModule)
	return loaded.module, loaded.hit, nil
}

// WarmResult describes one program written to the cache by Warm.
type WarmResult = StoreResult

// Warm compiles and stores every program in paths concurrently. Directories
// are searched for program files. Results are returned in the order the
// programs were found. The first failure cancels the remaining work.
func (a *App) Warm(ctx context.Context, paths []string) ([]WarmResult, error) {
	paths, err := a.finder.FindPrograms(paths)
	if err != nil {
		return nil, err
	}
	results := make([]WarmResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := a.Store(ctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *App) compile(ctx context.Context, checksum domain.Checksum, code []byte) (*domain.Module, error) {
	_, span := a.tracer.Start(ctx, "engine.compile",
		ports.WithAttribute("checksum", checksum.Hex()),
		ports.WithAttribute("code_size", len(code)),
	)
	defer span.End()

	m, err := a.engine.Compile(code, a.Config().Limits)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("instructions", len(m.Code))
	return m, nil
}

func (a *App) execute(
	ctx context.Context,
	checksum domain.Checksum,
	m *domain.Module,
	export string,
	args []int64,
) (domain.ExecResult, error) {
	ctx, span := a.tracer.Start(ctx, "engine.execute",
		ports.WithAttribute("checksum", checksum.Hex()),
		ports.WithAttribute("export", export),
	)
	defer span.End()

	res, err := a.engine.Execute(ctx, m, export, args)
	if err != nil {
		span.RecordError(err)
		return domain.ExecResult{}, err
	}
	span.SetAttribute("gas_used", res.GasUsed)
	return res, nil
}
