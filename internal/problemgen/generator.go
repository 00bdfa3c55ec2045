package problemgen

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/fracmole/internal/fraction"
)

// Generator produces randomized fraction questions.
// It is safe for concurrent use; the random source is guarded by a mutex.
type Generator struct {
	cfg    Config
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source. Tests pass a seeded source for
// reproducible questions.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithSeed seeds a PCG source with seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a Generator. cfg is assumed valid; see Config.Validate.
func New(cfg Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		now := uint64(time.Now().UnixNano())
		g.rng = rand.New(rand.NewPCG(now, now>>1))
	}
	return g
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// Generate produces one question satisfying the option invariants:
// exactly one option equals the answer and the distractors are pairwise
// distinct in value.
func (g *Generator) Generate() *Question {
	g.mu.Lock()
	defer g.mu.Unlock()

	op := g.cfg.Operations[g.rng.IntN(len(g.cfg.Operations))]

	q := &Question{Operation: op}
	switch op {
	case OpSimplify:
		base := g.operand()
		factor := g.between(g.cfg.SimplifyFactorMin, g.cfg.SimplifyFactorMax)
		display := fraction.MustNew(base.Num()*factor, base.Den()*factor)
		q.Operand1 = display
		q.CorrectAnswer = fraction.Simplify(display)
		q.Text = fmt.Sprintf("Simplify: %s = ?", display)
	default:
		a, b := g.operand(), g.operand()
		q.Operand1 = a
		q.Operand2 = &b
		if op == OpAdd {
			q.CorrectAnswer = fraction.Add(a, b)
		} else {
			q.CorrectAnswer = fraction.Subtract(a, b)
		}
		q.Text = fmt.Sprintf("%s %s %s = ?", a, op.Symbol(), b)
	}

	options := make([]fraction.Fraction, 0, 4)
	options = append(options, q.CorrectAnswer)
	options = append(options, g.distractors(q.CorrectAnswer)...)
	g.shuffle(options)
	q.Options = options

	return q
}

// operand draws a fraction from the candidate sets.
func (g *Generator) operand() fraction.Fraction {
	num := g.cfg.Numerators[g.rng.IntN(len(g.cfg.Numerators))]
	den := g.cfg.Denominators[g.rng.IntN(len(g.cfg.Denominators))]
	return fraction.MustNew(num, den)
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int64) int64 {
	return lo + g.rng.Int64N(hi-lo+1)
}

// shuffle is a Fisher–Yates shuffle driven by the injected source.
func (g *Generator) shuffle(opts []fraction.Fraction) {
	for i := len(opts) - 1; i > 0; i-- {
		j := g.rng.IntN(i + 1)
		opts[i], opts[j] = opts[j], opts[i]
	}
}
