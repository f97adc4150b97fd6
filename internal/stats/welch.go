package stats

import (
	"fmt"
	"math"
)

// InsufficientSampleError signals a significance test attempted with fewer
// than 2 trials on either side.
type InsufficientSampleError struct {
	Name string
	N    int
}

func (e *InsufficientSampleError) Error() string {
	return fmt.Sprintf("sample %q has %d trials, significance testing needs at least 2", e.Name, e.N)
}

// TTestResult holds an independent two-sample Welch t-test.
type TTestResult struct {
	TStatistic       float64 `json:"t_statistic"`
	PValue           float64 `json:"p_value"` // two-tailed
	DegreesOfFreedom float64 `json:"degrees_of_freedom"`
}

// WelchTTest runs Welch's unequal-variance t-test on two score samples. The
// p-value depends only on |t|, so swapping the samples flips the sign of the
// t-statistic but never the p-value.
//
// Two identical constant samples have no observable difference and report
// p = 1; constant samples with different means differ deterministically and
// report p = 0.
func WelchTTest(a, b []float64, nameA, nameB string) (TTestResult, error) {
	if len(a) < 2 {
		return TTestResult{}, &InsufficientSampleError{Name: nameA, N: len(a)}
	}
	if len(b) < 2 {
		return TTestResult{}, &InsufficientSampleError{Name: nameB, N: len(b)}
	}

	meanA := Mean(a)
	meanB := Mean(b)
	varA := Variance(a, meanA)
	varB := Variance(b, meanB)

	nA := float64(len(a))
	nB := float64(len(b))

	se := math.Sqrt(varA/nA + varB/nB)
	if se == 0 {
		if meanA == meanB {
			return TTestResult{TStatistic: 0, PValue: 1}, nil
		}
		t := math.Inf(1)
		if meanA < meanB {
			t = math.Inf(-1)
		}
		return TTestResult{TStatistic: t, PValue: 0}, nil
	}

	tStat := (meanA - meanB) / se

	// Welch-Satterthwaite degrees of freedom
	num := math.Pow(varA/nA+varB/nB, 2)
	denom := math.Pow(varA/nA, 2)/(nA-1) + math.Pow(varB/nB, 2)/(nB-1)
	df := num / denom

	return TTestResult{
		TStatistic:       tStat,
		PValue:           tDistributionPValue(math.Abs(tStat), df),
		DegreesOfFreedom: df,
	}, nil
}

// normalCDF approximates the standard normal CDF.
func normalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt(2)))
}

// tDistributionPValue approximates the two-tailed p-value for |t| at df.
func tDistributionPValue(t, df float64) float64 {
	if df <= 0 {
		return 1
	}

	// For large df the t distribution is effectively normal.
	if df >= 30 {
		return clampUnit(2 * (1 - normalCDF(t)))
	}

	// For smaller df, shrink t by the distribution's standard deviation
	// sqrt(df/(df-2)) so the heavier tails yield larger p-values. Below 2
	// degrees of freedom the variance is undefined; floor df there so the
	// adjustment stays real and the p-value stays conservative (near 1).
	if df < 2 {
		df = 2
	}
	adjustedT := t * math.Sqrt((df-2+0.001)/df)
	return clampUnit(2 * (1 - normalCDF(adjustedT)))
}

func clampUnit(p float64) float64 {
	if math.IsNaN(p) {
		return 1
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
