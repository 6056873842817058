package irbis

import "math/rand"

// IdentitySource produces a fresh clientId in [100000, 999999] on each
// call, used to regenerate identity on every connect attempt and on
// each -3337 ("client already registered") retry. Abstracted as an
// interface so tests can supply a deterministic sequence instead of
// real randomness.
type IdentitySource interface {
	NextClientID() int
}

// randomIdentitySource is the default IdentitySource, backed by
// math/rand.
type randomIdentitySource struct {
	rnd *rand.Rand
}

// NewIdentitySource returns the default random-backed IdentitySource.
func NewIdentitySource() IdentitySource {
	return &randomIdentitySource{rnd: rand.New(rand.NewSource(rand.Int63()))}
}

func (s *randomIdentitySource) NextClientID() int {
	return 100000 + s.rnd.Intn(900000)
}

// sequenceIdentitySource returns a fixed sequence of client IDs, one per
// call, repeating the last value once exhausted. Used by tests that
// must assert on a specific clientId value per connect attempt.
type sequenceIdentitySource struct {
	ids []int
	pos int
}

// NewSequenceIdentitySource returns an IdentitySource that yields ids in
// order, repeating the final value for any call beyond len(ids).
func NewSequenceIdentitySource(ids ...int) IdentitySource {
	return &sequenceIdentitySource{ids: ids}
}

func (s *sequenceIdentitySource) NextClientID() int {
	if len(s.ids) == 0 {
		return 100000
	}
	id := s.ids[s.pos]
	if s.pos < len(s.ids)-1 {
		s.pos++
	}
	return id
}
