// Package harness provides conformance testing for inventory aging rules.
//
// A scenario names a starting inventory, a number of days to simulate, and
// expectations about individual items on given days. The harness runs the
// simulation with a fresh logical clock and checks every expectation.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: backstage_passes
//	description: "Passes gain value toward the concert"
//	days: 2
//	items:
//	  - name: "Backstage passes to a TAFKAL80ETC concert"
//	    sell_in: 6
//	    quality: 20
//	expect:
//	  - index: 0
//	    day: 1
//	    sell_in: 5
//	    quality: 22
//	  - index: 0
//	    quality: 25
//
// or CUE files with the same fields, validated against an embedded closed
// #Scenario schema. Unknown fields are rejected in both formats.
//
// An expectation without a day applies to the final day. Name, when set,
// must equal the item's name; it guards against index typos.
//
// # Golden Reports
//
// RunWithGolden renders the daily text report and compares it against
// testdata/golden/{scenario.Name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
