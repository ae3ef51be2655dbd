package extraction

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ExtractAll runs one extraction per file concurrently and waits for all of
// them to settle. Any single failure fails the whole batch (the first error
// cancels the group and propagates); a partial batch is never returned.
// Results come back in input order.
func (e *Extractor) ExtractAll(ctx context.Context, files []UploadedFile) ([]*Result, error) {
	if len(files) < 2 {
		return nil, fmt.Errorf("at least 2 files are required, got %d", len(files))
	}

	results := make([]*Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			res, err := e.Extract(gctx, file)
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

// DuplicateGroups reports display names of byte-identical uploads, one group
// per digest that appears more than once. Purely advisory; duplicates are
// not an error.
func DuplicateGroups(results []*Result) [][]string {
	byDigest := make(map[string][]string)
	order := make([]string, 0, len(results))
	for _, r := range results {
		if _, seen := byDigest[r.ContentDigest]; !seen {
			order = append(order, r.ContentDigest)
		}
		byDigest[r.ContentDigest] = append(byDigest[r.ContentDigest], r.DisplayName)
	}

	var groups [][]string
	for _, digest := range order {
		if names := byDigest[digest]; len(names) > 1 {
			groups = append(groups, names)
		}
	}
	return groups
}
