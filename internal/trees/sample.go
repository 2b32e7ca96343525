package trees

import "math/rand/v2"

// SampleSet is the fixed, shuffled subset of valid records drawn at load time.
// All filtering works on this set; it is never re-drawn.
type SampleSet []Record

// sampler draws a uniform random subset of at most n records from a stream,
// in random order (reservoir sampling).
type sampler struct {
	n    int
	seen int
	rng  *rand.Rand
	res  []Record
}

func newSampler(n int, rng *rand.Rand) *sampler {
	return &sampler{n: n, rng: rng, res: make([]Record, 0, min(n, 4096))}
}

func (s *sampler) offer(r Record) {
	s.seen++
	if len(s.res) < s.n {
		s.res = append(s.res, r)
		return
	}
	if j := s.rng.IntN(s.seen); j < s.n {
		s.res[j] = r
	}
}

// result shuffles the reservoir so its order is uniform too.
func (s *sampler) result() SampleSet {
	s.rng.Shuffle(len(s.res), func(i, j int) { s.res[i], s.res[j] = s.res[j], s.res[i] })
	return SampleSet(s.res)
}
