package services

import (
	"math/rand/v2"
	"sync"
)

// LockedRand is a goroutine-safe rewards.Random.
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewLockedRand(src rand.Source) *LockedRand {
	return &LockedRand{r: rand.New(src)}
}

// NewRandom seeds from the runtime source.
func NewRandom() *LockedRand {
	return NewLockedRand(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (l *LockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// Perm returns a permutation of [0, n).
func (l *LockedRand) Perm(n int) []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Perm(n)
}
