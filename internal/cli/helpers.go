package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"

	"github.com/taleakit/talea/pkg/cache"
	"github.com/taleakit/talea/pkg/cost"
	"github.com/taleakit/talea/pkg/pipeline"
)

// loadWeights reads cost weights from a TOML file, or returns the defaults
// when no path was given.
func loadWeights(path string) (cost.Linear, error) {
	if path == "" {
		return cost.Default(), nil
	}
	return cost.LoadWeights(path)
}

// openOutput returns a writer for path, or stdout when path is empty.
// The returned closer is a no-op for stdout.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

// defaultCacheDir returns the per-user matrix cache directory.
func defaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(base, "talea"), nil
}

// openCache builds the cache backend selected by the flags: the null cache
// when caching is disabled, a Redis cache when addr is set, otherwise a
// file cache in dir (or the default directory). The result is never nil, so
// commands close and pass it uniformly.
func openCache(ctx context.Context, disabled bool, dir, addr string) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	if addr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr})
	}
	if dir == "" {
		var err error
		dir, err = defaultCacheDir()
		if err != nil {
			return nil, err
		}
	}
	return cache.NewFileCache(dir)
}

// newPipeline wires the CLI logger into pipeline options. Pipeline progress
// goes to debug, so it only surfaces with --verbose.
func newPipeline(logger *charmlog.Logger, weights cost.Linear, c cache.Cache) *pipeline.Pipeline {
	return pipeline.New(pipeline.Options{
		Weights: weights,
		Cache:   c,
		Logger:  func(msg string, args ...any) { logger.Debugf(msg, args...) },
	})
}
