package calc

import (
	"context"
	"runtime"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// Points returns n evenly spaced values from lo to hi inclusive. If n is 1,
// the result is just lo.
func Points(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = lo
		return xs
	}
	d := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + d*float64(i)
	}
	xs[n-1] = hi
	return xs
}

// Table evaluates e with the variable v bound to each of xs, returning the
// results in the same order. Other variables are resolved through c, which
// may be nil. Points are evaluated concurrently; e and c must not be modified
// until Table returns. The first error encountered stops the evaluation of
// points not yet started and is returned annotated with its point.
func (e *Expr) Table(ctx context.Context, c *Context, v string, xs []float64) ([]float64, error) {
	var s scope = noVars{}
	h := DefaultStep
	if c != nil {
		s, h = c, c.step
	}
	ys := make([]float64, len(xs))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, x := range xs {
		i, x := i, x
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			y, err := e.eval(&rebind{Binding{v, x}, s}, h)
			if err != nil {
				return errors.Wrapf(err, "at %s = %g", v, x)
			}
			ys[i] = y
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	// Cancellation between points leaves no group error.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ys, nil
}
