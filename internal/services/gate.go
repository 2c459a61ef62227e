package services

import (
	"fmt"
	"sort"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
)

// Render thresholds. These are part of the interface contract with the
// dashboard and are deliberately not configurable.
const (
	// OptimalNodeCeiling is the largest result the renderer draws directly.
	OptimalNodeCeiling = 50
	// HardNodeLimit is never exceeded regardless of filters; estimates above
	// it skip the snapshot fetch entirely.
	HardNodeLimit = 500
	// MaxSuggestions caps the ranked refinement list.
	MaxSuggestions = 4
)

// GateMode is the performance gate state tag.
type GateMode string

const (
	GateFiltersOnly  GateMode = "filters_only"
	GateGraphReady   GateMode = "graph_ready"
	GateTooManyNodes GateMode = "too_many_nodes"
)

// Suggestion names one filter refinement and the reduction it is estimated to
// buy, as a percentage of the current result.
type Suggestion struct {
	FilterField        string  `json:"filter_field"`
	FilterValue        string  `json:"filter_value"`
	EstimatedReduction float64 `json:"estimated_reduction"`
	Description        string  `json:"description"`
}

// GateState is the tagged union the gate exposes. Suggestions is populated
// only in too_many_nodes mode.
type GateState struct {
	Mode        GateMode     `json:"mode"`
	NodeCount   int          `json:"node_count,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// InitialGateState is the state before any query has been applied.
func InitialGateState() GateState {
	return GateState{Mode: GateFiltersOnly}
}

// EvaluateGate re-enters the gate with a fresh node count. Pure function of
// its inputs: counts at or under the ceiling are graph_ready, anything above
// becomes too_many_nodes with ranked suggestions. There is no other
// transition; a failed fetch simply never calls this and the gate stays
// where it was.
func EvaluateGate(nodeCount int, breakdown graphmodel.DimensionBreakdown) GateState {
	if nodeCount <= OptimalNodeCeiling {
		return GateState{Mode: GateGraphReady, NodeCount: nodeCount}
	}
	return GateState{
		Mode:        GateTooManyNodes,
		NodeCount:   nodeCount,
		Suggestions: RankSuggestions(nodeCount, breakdown),
	}
}

// RankSuggestions turns a per-dimension value breakdown into at most
// MaxSuggestions refinements, ordered by estimated reduction descending.
// Narrowing to a value keeps only that value's nodes, so the reduction for
// (field, value) is (total - count) / total.
func RankSuggestions(total int, breakdown graphmodel.DimensionBreakdown) []Suggestion {
	if total <= 0 || len(breakdown) == 0 {
		return nil
	}
	out := make([]Suggestion, 0, 16)
	for field, values := range breakdown {
		for value, count := range values {
			if count <= 0 || count >= total {
				continue
			}
			reduction := float64(total-count) / float64(total) * 100
			out = append(out, Suggestion{
				FilterField:        field,
				FilterValue:        value,
				EstimatedReduction: reduction,
				Description: fmt.Sprintf("Narrow %s to %q (~%d nodes, -%.0f%%)",
					field, value, count, reduction),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EstimatedReduction != out[j].EstimatedReduction {
			return out[i].EstimatedReduction > out[j].EstimatedReduction
		}
		if out[i].FilterField != out[j].FilterField {
			return out[i].FilterField < out[j].FilterField
		}
		return out[i].FilterValue < out[j].FilterValue
	})
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

// BreakdownFromSnapshot computes a dimension breakdown from an actual
// normalized node set, for the case where the estimate undercounted and the
// fetched result still blew past the ceiling.
func BreakdownFromSnapshot(nodes []graphmodel.Node) graphmodel.DimensionBreakdown {
	bd := graphmodel.DimensionBreakdown{}
	add := func(field, value string) {
		if value == "" {
			return
		}
		if bd[field] == nil {
			bd[field] = map[string]int{}
		}
		bd[field][value]++
	}
	for _, n := range nodes {
		switch {
		case n.Consultant != nil:
			add("markets", n.Consultant.Market)
			add("channels", n.Consultant.Channel)
		case n.FieldConsultant != nil:
			add("markets", n.FieldConsultant.Market)
		case n.Company != nil:
			add("channels", n.Company.Channel)
		case n.Product != nil:
			add("assetClasses", n.Product.AssetClass)
		}
	}
	return bd
}
