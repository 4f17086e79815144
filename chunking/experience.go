package chunking

// Experience counts, per advocate, the earlier cases in which they had at
// least one surviving chunk. It is threaded through one chronological pass
// over the configured years and has a single writer.
type Experience struct {
	counts map[string]int
}

// NewExperience returns an empty accumulator.
func NewExperience() *Experience {
	return &Experience{counts: make(map[string]int)}
}

// Lookup returns the number of prior cases of advocate and whether there
// were any.
func (e *Experience) Lookup(advocate string) (int, bool) {
	n, ok := e.counts[advocate]
	return n, ok
}

// Commit records one finished case: every distinct advocate in advocates
// gains exactly one case, however often they are listed.
func (e *Experience) Commit(advocates []string) {
	seen := make(map[string]bool, len(advocates))
	for _, a := range advocates {
		if seen[a] {
			continue
		}
		seen[a] = true
		e.counts[a]++
	}
}

// Len returns the number of advocates seen so far.
func (e *Experience) Len() int { return len(e.counts) }
