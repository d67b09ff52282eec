// Package analysis characterizes algorithm behavior empirically.
//
// The package measures instrumented runs across input sizes and fits
// the observed operation counts against candidate growth models:
//
//   - [Measure]: run one algorithm over a size sweep, averaging trials
//   - [FitGrowth]: least-squares fit of a metric against n, n log n, n^2
//   - [CompareAlgorithms]: side-by-side measurement of several sorters
//
// # Growth Fitting
//
// The best-fitting model is the one with the lowest normalized
// residual:
//
//	fit := analysis.FitGrowth(samples, analysis.MetricComparisons)
//	if fit.Model == analysis.ModelLinearithmic {
//	    // Observed cost tracks n log n
//	}
package analysis
