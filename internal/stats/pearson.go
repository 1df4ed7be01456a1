// Package stats provides the correlation statistic reported in the run
// summary.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/agrisight/agristat-cli/internal/model"
)

// Pearson computes the Pearson correlation coefficient between xs and ys
// with a two-tailed significance value from the Student's t distribution
// on n-2 degrees of freedom.
//
// The result is undefined (Defined=false) when fewer than two pairs exist
// or either vector has zero variance; callers surface the sentinel instead
// of failing. With exactly two pairs r is ±1 and the p-value is 1.
func Pearson(xs, ys []float64) model.Correlation {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return model.Correlation{N: n}
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return model.Correlation{N: n}
	}
	// Guard rounding drift outside [-1, 1].
	r = math.Max(-1, math.Min(1, r))

	if n == 2 {
		return model.Correlation{R: r, PValue: 1, N: n, Defined: true}
	}

	p := 0.0
	if r2 := r * r; r2 < 1 {
		t := r * math.Sqrt(float64(n-2)/(1-r2))
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
		p = 2 * dist.CDF(-math.Abs(t))
	}

	return model.Correlation{R: r, PValue: p, N: n, Defined: true}
}
