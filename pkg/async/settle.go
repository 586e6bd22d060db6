package async

import "context"

// Outcome is the settled result of one item passed to Settle.
type Outcome[T, U any] struct {
	Input  T
	Result U
	Err    error
}

// Settle runs fn for every item with at most limit calls in flight and waits
// for all of them. Unlike WaitAll it never stops early: each item gets its own
// Outcome, in input order. Items not yet started when ctx ends settle with ctx.Err().
func Settle[T, U any](ctx context.Context, items []T, limit int, fn func(context.Context, T) (U, error)) []Outcome[T, U] {
	if limit <= 0 {
		limit = 1
	}

	sem := make(chan struct{}, limit)
	futures := make([]*Future[U], len(items))
	for i, item := range items {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			// No slot taken; Async settles it with ctx.Err().
			futures[i] = Async(ctx, item, fn)
			continue
		}
		f := Async(ctx, item, fn)
		futures[i] = f
		// The slot is freed once the future settles, whether or not fn ran.
		go func() {
			<-f.done
			<-sem
		}()
	}

	out := make([]Outcome[T, U], len(items))
	for i, f := range futures {
		res, err := f.Await()
		out[i] = Outcome[T, U]{Input: items[i], Result: res, Err: err}
	}
	return out
}
