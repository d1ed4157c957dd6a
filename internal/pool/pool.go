package pool

import (
	"context"
	"log/slog"
	"math/rand/v2"
)

// Source produces one string on demand. Pools, resolvers and AI
// generators all satisfy it, so any of them can back a placeholder.
type Source interface {
	Draw(ctx context.Context) string
}

// Rand is the integer generator used for every random choice.
type Rand interface {
	// IntN returns a uniform integer in [0, n). n is always > 0.
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// GlobalRand draws from math/rand/v2's top-level source, which is safe for
// concurrent use.
var GlobalRand Rand = globalRand{}

// Pool is an immutable list of candidate strings with uniform selection.
type Pool struct {
	name  string
	items []string
	rnd   Rand
}

// New returns a pool over a copy of items. A nil rnd uses GlobalRand.
func New(name string, items []string, rnd Rand) *Pool {
	if rnd == nil {
		rnd = GlobalRand
	}
	cp := make([]string, len(items))
	copy(cp, items)
	return &Pool{name: name, items: cp, rnd: rnd}
}

// Name identifies the pool in logs.
func (p *Pool) Name() string { return p.name }

// Len reports the number of candidates.
func (p *Pool) Len() int { return len(p.items) }

// Items returns a copy of the candidates.
func (p *Pool) Items() []string {
	out := make([]string, len(p.items))
	copy(out, p.items)
	return out
}

// Draw returns a random item, or "" when the pool is empty.
func (p *Pool) Draw(ctx context.Context) string {
	if len(p.items) == 0 {
		slog.Warn("pool: draw from empty pool", "pool", p.name)
		return ""
	}
	return p.items[p.rnd.IntN(len(p.items))]
}
