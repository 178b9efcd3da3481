package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ProcessUnits processes several unit manifests concurrently. Each unit
// owns its registry, file set, and bag, so no cross-unit locking is needed;
// results come back in input order. The first hard error cancels the rest.
func ProcessUnits(ctx context.Context, paths []string, maxDiagnostics, jobs int) ([]*UnitResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*UnitResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := ProcessUnit(path, maxDiagnostics)
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
