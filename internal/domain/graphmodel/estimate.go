package graphmodel

// DimensionBreakdown maps a filterable field to per-value node counts. The
// estimate query produces it; the performance gate ranks refinement
// suggestions from it.
type DimensionBreakdown map[string]map[string]int

// Estimate is the cheap pre-fetch sizing of a query.
type Estimate struct {
	NodeCount int                `json:"nodeCount"`
	Breakdown DimensionBreakdown `json:"breakdown,omitempty"`
}
