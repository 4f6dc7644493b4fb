package generator

import (
	"math"
	"math/rand"
	"time"
)

// Generator produces the synthetic dataset from a single random source.
// All entity generators share the sequential counters so identifiers stay
// unique across the whole run.
type Generator struct {
	rand       *rand.Rand
	now        time.Time
	accountSeq int
	txnSeq     int
}

func New(seed int64) *Generator {
	return &Generator{
		rand: rand.New(rand.NewSource(seed)),
		now:  time.Now(),
	}
}

// NewWithTime pins the reference "now" used for date windows, for tests.
func NewWithTime(seed int64, now time.Time) *Generator {
	g := New(seed)
	g.now = now
	return g
}

type weightedChoice struct {
	Value  string
	Weight float64
}

// pickWeighted samples one value from a weighted categorical distribution.
func (g *Generator) pickWeighted(choices []weightedChoice) string {
	total := 0.0
	for _, c := range choices {
		total += c.Weight
	}

	r := g.rand.Float64() * total
	for _, c := range choices {
		r -= c.Weight
		if r < 0 {
			return c.Value
		}
	}
	return choices[len(choices)-1].Value
}

// normal draws from a normal distribution with the given mean and stddev.
func (g *Generator) normal(mean, stddev float64) float64 {
	return mean + stddev*g.rand.NormFloat64()
}

// logNormal draws from a log-normal distribution parameterized on the
// underlying normal's mean and sigma.
func (g *Generator) logNormal(mean, sigma float64) float64 {
	return math.Exp(g.normal(mean, sigma))
}

// timeBetween draws a timestamp uniformly at random from [start, end).
func (g *Generator) timeBetween(start, end time.Time) time.Time {
	window := end.Sub(start)
	if window <= 0 {
		return start
	}
	return start.Add(time.Duration(g.rand.Int63n(int64(window))))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
