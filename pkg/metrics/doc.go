// Package metrics models the raw business metrics behind a dashboard and the
// pure derivations that turn them into panel-ready values.
//
// # Values
//
// A series point is a [Value]: either Present(x) or Absent(). Absent points
// come from periods with no data yet (future months of a projection) and are
// carried through to the renderer, which breaks the line instead of
// interpolating.
//
// # Derivations
//
// [Stickiness], [Complement], [Share], [Delta] and [TargetLine] are the only
// places arithmetic happens; panels receive finished numbers. Every function
// is deterministic so two runs over the same inputs render byte-identical
// documents.
//
// Named derivation [Rule] values let a report descriptor declare derived
// metrics next to raw ones:
//
//	set, err := metrics.Derive(raw, []metrics.Rule{
//	    {Name: "stickiness", Kind: metrics.RuleStickiness, Inputs: []string{"dau", "mau"}},
//	    {Name: "search_share", Kind: metrics.RuleComplement, Inputs: []string{"ai_share"}},
//	})
package metrics
