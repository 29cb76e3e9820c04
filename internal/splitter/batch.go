package splitter

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/tokensplit/pkg/types"
)

// defaultWorkers bounds concurrent file operations in a batch split.
const defaultWorkers = 4

// SplitFiles runs one independent split operation per path, up to
// defaultWorkers at a time, with error propagation: the first failing
// operation cancels the rest. Results are ordered like paths. Each
// operation keeps its own counter, so counting inside an operation stays
// strictly sequential.
func SplitFiles(ctx context.Context, paths []string, opts Options) ([]*types.Result, error) {
	results := make([]*types.Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultWorkers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := SplitFile(gctx, path, opts)
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
