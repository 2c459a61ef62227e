// Package integrity cross-checks a normalized snapshot before it is handed to
// the renderer. Validation collects human-readable issues and never fails the
// render; Repair is a separate, explicitly-invoked operation that fixes the
// repairable subset of those issues.
package integrity

import (
	"fmt"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
	"github.com/yungbote/advisorgraph-backend/internal/graph/hierarchy"
	"github.com/yungbote/advisorgraph-backend/internal/graph/normalize"
)

// Stats summarizes what validation saw.
type Stats struct {
	Nodes                  int `json:"nodes"`
	Edges                  int `json:"edges"`
	FieldConsultants       int `json:"fieldConsultants"`
	UnresolvedParents      int `json:"unresolvedParents"`
	ProductsMissingRatings int `json:"productsMissingRatings"`
	CoversMissingInfluence int `json:"coversMissingInfluence"`
	OwnsMissingMandate     int `json:"ownsMissingMandate"`
	DanglingEdges          int `json:"danglingEdges"`
}

// Report is the validation result. Valid is false only when a structural
// check failed; repairable defects are counted but do not flip it.
type Report struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
	Stats  Stats    `json:"stats"`
}

// Validate checks hierarchy resolution, ratings presence and edge attribute
// completeness over one snapshot. It never returns an error and never mutates
// its input.
func Validate(nodes []graphmodel.Node, edges []graphmodel.Edge) Report {
	rep := Report{Valid: true, Issues: []string{}}
	rep.Stats.Nodes = len(nodes)
	rep.Stats.Edges = len(edges)

	nodeByID := make(map[string]graphmodel.Node, len(nodes))
	consultants := map[string]bool{}
	for _, n := range nodes {
		nodeByID[n.ID] = n
		if n.Kind == graphmodel.KindConsultant {
			consultants[n.ID] = true
		}
	}

	for _, n := range nodes {
		switch n.Kind {
		case graphmodel.KindFieldConsultant:
			rep.Stats.FieldConsultants++
			link := hierarchy.ResolveParent(n)
			if !consultants[link.ParentID] {
				rep.Stats.UnresolvedParents++
				rep.Valid = false
				rep.Issues = append(rep.Issues, fmt.Sprintf(
					"field consultant %s: resolved parent %q (via %s) matches no consultant node",
					n.ID, link.ParentID, link.Method))
			}
		case graphmodel.KindProduct, graphmodel.KindIncumbentProduct:
			if n.Product == nil || n.Product.Ratings == nil {
				rep.Stats.ProductsMissingRatings++
				rep.Issues = append(rep.Issues, fmt.Sprintf(
					"product %s: ratings collection absent (repairable)", n.ID))
			}
		}
	}

	for _, e := range edges {
		if _, ok := nodeByID[e.SourceID]; !ok {
			rep.Stats.DanglingEdges++
			rep.Valid = false
			rep.Issues = append(rep.Issues, fmt.Sprintf(
				"edge %s: source %q not present in snapshot", e.ID, e.SourceID))
		}
		if _, ok := nodeByID[e.TargetID]; !ok {
			rep.Stats.DanglingEdges++
			rep.Valid = false
			rep.Issues = append(rep.Issues, fmt.Sprintf(
				"edge %s: target %q not present in snapshot", e.ID, e.TargetID))
		}
		switch e.Kind {
		case graphmodel.EdgeCovers:
			if e.Covers == nil || e.Covers.LevelOfInfluence == "" {
				rep.Stats.CoversMissingInfluence++
				rep.Issues = append(rep.Issues, fmt.Sprintf(
					"covers edge %s: level of influence missing", e.ID))
			}
		case graphmodel.EdgeOwns:
			if e.Owns == nil || e.Owns.MandateStatus == "" {
				rep.Stats.OwnsMissingMandate++
				rep.Issues = append(rep.Issues, fmt.Sprintf(
					"owns edge %s: mandate status missing", e.ID))
			}
		}
	}

	return rep
}

// Repair returns a repaired copy of the snapshot. It fills missing ratings
// collections on product-like nodes, re-applies field normalization to edges,
// and backfills a field consultant's explicit parent reference from the
// resolver. Idempotent: Repair(Repair(x)) == Repair(x). The input is never
// mutated.
func Repair(nodes []graphmodel.Node, edges []graphmodel.Edge) ([]graphmodel.Node, []graphmodel.Edge) {
	outNodes := make([]graphmodel.Node, 0, len(nodes))
	for _, n := range nodes {
		c := n.Clone()
		switch c.Kind {
		case graphmodel.KindProduct, graphmodel.KindIncumbentProduct:
			if c.Product == nil {
				c.Product = &graphmodel.ProductAttrs{}
			}
			if c.Product.Ratings == nil {
				c.Product.Ratings = []graphmodel.Rating{}
			}
		case graphmodel.KindFieldConsultant:
			if c.FieldConsultant == nil {
				c.FieldConsultant = &graphmodel.FieldConsultantAttrs{}
			}
			if c.FieldConsultant.ParentConsultantID == "" {
				c.FieldConsultant.ParentConsultantID = hierarchy.ResolveParent(c).ParentID
			}
		}
		outNodes = append(outNodes, c)
	}

	outEdges := make([]graphmodel.Edge, 0, len(edges))
	for _, e := range edges {
		outEdges = append(outEdges, renormalizeEdge(e))
	}
	return outNodes, outEdges
}

// renormalizeEdge rebuilds a raw attribute view of the edge (canonical keys
// win over leftovers) and pushes it back through the normalizer, so an alias
// value stranded in Extra is promoted into the typed record.
func renormalizeEdge(e graphmodel.Edge) graphmodel.Edge {
	attrs := map[string]any{}
	for k, v := range e.Extra {
		attrs[k] = v
	}
	if e.Covers != nil {
		setIfNonEmpty(attrs, "levelOfInfluence", e.Covers.LevelOfInfluence)
		setIfNonEmpty(attrs, "coverageName", e.Covers.CoverageName)
	}
	if e.Owns != nil {
		setIfNonEmpty(attrs, "mandateStatus", e.Owns.MandateStatus)
		setIfNonEmpty(attrs, "commitment", e.Owns.Commitment)
	}
	if e.Rates != nil {
		setIfNonEmpty(attrs, "rating", e.Rates.Rating)
	}
	return normalize.Edge(graphmodel.RawEdge{
		ID:         e.ID,
		SourceID:   e.SourceID,
		TargetID:   e.TargetID,
		Kind:       string(e.Kind),
		Attributes: attrs,
	})
}

func setIfNonEmpty(m map[string]any, key, val string) {
	if val != "" {
		m[key] = val
	}
}
