package sim

// span is a half-open range of population slots owned by one worker.
type span struct{ lo, hi int }

// partition splits n slots into at most workers contiguous spans of
// near-equal size.
func partition(n, workers int) []span {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	spans := make([]span, 0, workers)
	size, rem := n/workers, n%workers
	lo := 0
	for w := 0; w < workers; w++ {
		hi := lo + size
		if w < rem {
			hi++
		}
		spans = append(spans, span{lo, hi})
		lo = hi
	}
	return spans
}
