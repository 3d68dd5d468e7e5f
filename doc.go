// Package memfit simulates placing a sequence of allocation requests into the
// free regions of a memory pool under competing policies (first-fit,
// best-fit and worst-fit) and measures how well each policy packs them.
//
// The root package exposes a Service façade over the sub-packages:
//
//   - service/generator – random pools and request lists
//   - service/fitter    – the fitting engine
//   - service/harness   – repeated trials and per-policy statistics
//   - service/dao       – archived trial reports
//
// Typical use:
//
//	srv, _ := memfit.New()
//	placement, _ := srv.Fit(ctx, []int{10, 20, 15}, []int{12, 8, 5}, policy.BestFit)
//	report, _ := srv.RunTrials(ctx)
//	for _, series := range report.Ranking() {
//		fmt.Println(series.Policy, series.Mean)
//	}
package memfit
