/*package dist contains the log-density and quantile functions used when
evaluating likelihoods and prior transforms.

Every function is pure and follows the same convention as package interpolate:
invalid parameters or NaN inputs give NaN instead of panicking, so impossible
points propagate through a chain of calls to a non-finite log-likelihood.
*/
package dist

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var nan = math.NaN()

// UniformLogPDF returns the log-density of x under the uniform distribution on
// [lo, hi]. It is -Inf outside that range.
func UniformLogPDF(x, lo, hi float64) float64 {
	if !(hi > lo) || math.IsNaN(x) || !finite(lo, hi) {
		return nan
	}
	return distuv.Uniform{Min: lo, Max: hi}.LogProb(x)
}

// UniformPPF returns the q-quantile of the uniform distribution on [lo, hi].
func UniformPPF(q, lo, hi float64) float64 {
	if !(hi > lo) || !validQuantile(q) || !finite(lo, hi) {
		return nan
	}
	return distuv.Uniform{Min: lo, Max: hi}.Quantile(q)
}

// NormalLogPDF returns the log-density of x under a normal distribution with
// mean mu and standard deviation sigma.
func NormalLogPDF(x, mu, sigma float64) float64 {
	if !(sigma > 0) || math.IsNaN(x) || !finite(mu, sigma) {
		return nan
	}
	return distuv.Normal{Mu: mu, Sigma: sigma}.LogProb(x)
}

// NormalPPF returns the q-quantile of a normal distribution with mean mu and
// standard deviation sigma.
func NormalPPF(q, mu, sigma float64) float64 {
	if !(sigma > 0) || !validQuantile(q) || !finite(mu, sigma) {
		return nan
	}
	return distuv.Normal{Mu: mu, Sigma: sigma}.Quantile(q)
}

// BetaLogPDF returns the log-density of x under a beta distribution with
// shape parameters a and b. x must lie in [0, 1]; at the endpoints the
// result is -Inf or +Inf depending on the shape of the density.
func BetaLogPDF(x, a, b float64) float64 {
	if !(a > 0 && b > 0) || !(x >= 0 && x <= 1) || !finite(a, b) {
		return nan
	}
	return distuv.Beta{Alpha: a, Beta: b}.LogProb(x)
}

// BetaPPF returns the q-quantile of a beta distribution with shape
// parameters a and b.
func BetaPPF(q, a, b float64) float64 {
	if !(a > 0 && b > 0) || !validQuantile(q) || !finite(a, b) {
		return nan
	}
	return distuv.Beta{Alpha: a, Beta: b}.Quantile(q)
}

// GammaLogPDF returns the log-density of x under a gamma distribution with
// shape alpha and rate (inverse scale) rate. It is -Inf for x <= 0.
func GammaLogPDF(x, alpha, rate float64) float64 {
	if !(alpha > 0 && rate > 0) || math.IsNaN(x) || !finite(alpha, rate) {
		return nan
	}
	return distuv.Gamma{Alpha: alpha, Beta: rate}.LogProb(x)
}

// GammaPPF returns the q-quantile of a gamma distribution with shape alpha
// and rate rate.
func GammaPPF(q, alpha, rate float64) float64 {
	if !(alpha > 0 && rate > 0) || !validQuantile(q) || !finite(alpha, rate) {
		return nan
	}
	return distuv.Gamma{Alpha: alpha, Beta: rate}.Quantile(q)
}

func validQuantile(q float64) bool { return q >= 0 && q <= 1 }

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Family groups the log-density and quantile functions of a two-parameter
// distribution.
type Family struct {
	Name   string
	LogPDF func(x, p1, p2 float64) float64
	PPF    func(q, p1, p2 float64) float64
}

var families = map[string]Family{
	"uniform": {"uniform", UniformLogPDF, UniformPPF},
	"normal":  {"normal", NormalLogPDF, NormalPPF},
	"beta":    {"beta", BetaLogPDF, BetaPPF},
	"gamma":   {"gamma", GammaLogPDF, GammaPPF},
}

// Lookup returns the Family with the given name.
func Lookup(name string) (Family, bool) {
	f, ok := families[name]
	return f, ok
}

// Names returns the names of every supported Family in alphabetical order.
func Names() []string {
	return []string{"beta", "gamma", "normal", "uniform"}
}
