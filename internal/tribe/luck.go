package tribe

import (
	"math/rand"
	"sync"
)

// Luck decides whether an unforced hunt succeeds.
type Luck interface {
	Hunt(slot, day int) bool
}

type LuckFunc func(slot, day int) bool

func (f LuckFunc) Hunt(slot, day int) bool { return f(slot, day) }

// Always makes every unforced hunt end the same way.
func Always(success bool) Luck {
	return LuckFunc(func(int, int) bool { return success })
}

// RandomLuck flips a biased coin per hunt. Each slot draws from its own
// source seeded with seed+slot, so a slot's sequence of outcomes does not
// depend on how the hunters are scheduled.
type RandomLuck struct {
	seed   int64
	chance float64

	mu      sync.Mutex
	sources map[int]*rand.Rand
}

func NewRandomLuck(seed int64, chance float64) *RandomLuck {
	return &RandomLuck{
		seed:    seed,
		chance:  chance,
		sources: make(map[int]*rand.Rand),
	}
}

func (l *RandomLuck) Hunt(slot, _ int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	src, ok := l.sources[slot]
	if !ok {
		src = rand.New(rand.NewSource(l.seed + int64(slot)))
		l.sources[slot] = src
	}
	return src.Float64() < l.chance
}
