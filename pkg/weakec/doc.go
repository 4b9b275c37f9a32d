// Package weakec generates deliberately weak elliptic-curve keys and runs
// the classical small-group attacks against them: naive point-order
// discovery, linear discrete-log search, and baby-step/giant-step.
//
// Every search is bounded by explicit step and wall-clock budgets, and
// every entry point enforces the shared safety ceilings before doing any
// work. A search that exhausts its budget reports a structured not-found
// result with its step and timing diagnostics; only ceiling violations and
// malformed inputs surface as errors.
//
// # Quick start
//
//	key, err := weakec.GenerateWeakKey(weakec.DefaultToyCurve(), weakec.DefaultGenConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := weakec.NewAnalyzer().Analyze(key.Curve, key.G, key.Q, 5000, 100000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, msg := range report.Messages {
//	    fmt.Println(msg)
//	}
//
// The generated key carries an attack hint naming the cheapest applicable
// method for its order structure, for side-by-side teaching comparisons.
package weakec
