package dist

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func almostEq(x, y, eps float64) bool {
	return math.Abs(x-y) <= eps*math.Max(1, math.Max(math.Abs(x), math.Abs(y)))
}

func TestUniform(t *testing.T) {
	assert.InDelta(t, -math.Log(3.5), UniformLogPDF(3.5, 3.1, 6.6), 1e-12)
	assert.Equal(t, math.Inf(-1), UniformLogPDF(3.0, 3.1, 6.6))
	assert.Equal(t, math.Inf(-1), UniformLogPDF(6.7, 3.1, 6.6))
	assert.True(t, math.IsNaN(UniformLogPDF(1, 2, 2)))
	assert.True(t, math.IsNaN(UniformLogPDF(math.NaN(), 0, 1)))

	assert.Equal(t, 1.0, UniformPPF(0.25, 0, 4))
	assert.Equal(t, -2.0, UniformPPF(0, -2, 5))
	assert.Equal(t, 5.0, UniformPPF(1, -2, 5))
	assert.True(t, math.IsNaN(UniformPPF(1.1, -2, 5)))
	assert.True(t, math.IsNaN(UniformPPF(0.5, 5, -2)))
}

func TestNormal(t *testing.T) {
	table := []struct{ mu, sigma float64 }{
		{1, 0.5}, {-10.1, 2.5}, {1e3, 1e2},
	}
	rng := rand.New(rand.NewSource(1))
	for i, test := range table {
		for n := 0; n < 100; n++ {
			x := 8*rng.Float64() - 4
			z := (x - test.mu) / test.sigma
			exp := -0.5*math.Log(2*math.Pi) - math.Log(test.sigma) - z*z/2
			res := NormalLogPDF(x, test.mu, test.sigma)
			if !almostEq(exp, res, 1e-12) {
				t.Errorf("%d) Expected %g for x = %g. Got %g.", i, exp, x, res)
			}
		}
	}
	assert.True(t, math.IsNaN(NormalLogPDF(5, 2, -1.5)))
	assert.True(t, math.IsNaN(NormalLogPDF(5, 2, 0)))

	assert.InDelta(t, 1.3e4, NormalPPF(0.5, 1.3e4, 5.2e3), 1e-9)
	assert.InDelta(t, 1.959963984540054, NormalPPF(0.975, 0, 1), 1e-9)
	assert.InDelta(t, -1.2e-3-5.2e-3*1.959963984540054, NormalPPF(0.025, -1.2e-3, 5.2e-3), 1e-12)
	assert.Equal(t, math.Inf(-1), NormalPPF(0, 0, 1))
	assert.True(t, math.IsNaN(NormalPPF(-0.1, 0, 1)))
	assert.True(t, math.IsNaN(NormalPPF(math.NaN(), 0, 1)))
}

func TestBeta(t *testing.T) {
	table := []struct{ a, b float64 }{
		{15, 20}, {500, 300}, {53.2, 48.5},
	}
	rng := rand.New(rand.NewSource(2))
	for i, test := range table {
		lab, _ := math.Lgamma(test.a + test.b)
		la, _ := math.Lgamma(test.a)
		lb, _ := math.Lgamma(test.b)
		for n := 0; n < 100; n++ {
			x := 0.01 + 0.98*rng.Float64()
			exp := lab - la - lb + (test.a-1)*math.Log(x) + (test.b-1)*math.Log(1-x)
			res := BetaLogPDF(x, test.a, test.b)
			if !almostEq(exp, res, 1e-9) {
				t.Errorf("%d) Expected %g for x = %g. Got %g.", i, exp, x, res)
			}
		}
	}

	assert.Equal(t, math.Inf(-1), BetaLogPDF(0, 5, 2))
	assert.Equal(t, math.Inf(-1), BetaLogPDF(1, 15, 2.3))
	assert.True(t, math.IsNaN(BetaLogPDF(1.01, 23, 15.3)))
	assert.True(t, math.IsNaN(BetaLogPDF(-3, 23, 15.3)))
	assert.True(t, math.IsNaN(BetaLogPDF(0.5, 0, 15.3)))

	for _, q := range []float64{0, 0.1, 0.5, 0.93, 1} {
		assert.InDelta(t, q, BetaPPF(q, 1, 1), 1e-9)
		assert.InDelta(t, math.Pow(q, 1/2.5), BetaPPF(q, 2.5, 1), 1e-9)
	}
	assert.True(t, math.IsNaN(BetaPPF(0.5, -1, 1)))
	assert.True(t, math.IsNaN(BetaPPF(2, 1, 1)))
}

func TestGamma(t *testing.T) {
	table := []struct{ alpha, rate float64 }{
		{15, 20}, {500, 300}, {53.2, 48.5},
	}
	rng := rand.New(rand.NewSource(3))
	for i, test := range table {
		lg, _ := math.Lgamma(test.alpha)
		for n := 0; n < 100; n++ {
			x := 0.01 + 10*rng.Float64()
			exp := test.alpha*math.Log(test.rate) - lg +
				(test.alpha-1)*math.Log(x) - test.rate*x
			res := GammaLogPDF(x, test.alpha, test.rate)
			if !almostEq(exp, res, 1e-9) {
				t.Errorf("%d) Expected %g for x = %g. Got %g.", i, exp, x, res)
			}
		}
	}
	assert.Equal(t, math.Inf(-1), GammaLogPDF(-1, 2, 3))
	assert.True(t, math.IsNaN(GammaLogPDF(1, 2, 0)))
	assert.True(t, math.IsNaN(GammaLogPDF(1, -2, 1)))

	// With alpha = 1 the gamma distribution is exponential.
	for _, q := range []float64{0.05, 0.3, 0.5, 0.99} {
		exp := -math.Log(1-q) / 12.2
		res := GammaPPF(q, 1, 12.2)
		if !almostEq(exp, res, 1e-9) {
			t.Errorf("Expected %g for q = %g. Got %g.", exp, q, res)
		}
	}
	assert.True(t, math.IsNaN(GammaPPF(0.5, 1, -12.2)))
	assert.True(t, math.IsNaN(GammaPPF(-0.5, 1, 12.2)))
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		f, ok := Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, f.Name)
	}
	_, ok := Lookup("cauchy")
	assert.False(t, ok)

	f, _ := Lookup("normal")
	assert.Equal(t, NormalLogPDF(0.3, 1, 2), f.LogPDF(0.3, 1, 2))
}

func BenchmarkNormalLogPDF(b *testing.B) {
	for i := 0; i < b.N; i++ {
		NormalLogPDF(0.3, 1, 2)
	}
}
