// Package normalize is the single translation boundary from the loosely-typed
// graph payload into the canonical typed model. Different producers emit the
// same semantic value under different property names (mandate_status vs
// mandateStatus, rankgroup vs rating); this package repairs that drift.
//
// Rules: a canonical key already present always wins. When the canonical key
// is absent and exactly one known alias carries a value, the alias value is
// promoted. When several aliases disagree on presence the field stays absent
// and the integrity validator reports it. Inputs are never mutated.
package normalize

import (
	"fmt"
	"strings"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
)

// nodeKindAliases maps producer kind labels to the canonical taxonomy.
var nodeKindAliases = map[string]graphmodel.NodeKind{
	"CONSULTANT":        graphmodel.KindConsultant,
	"FIELD_CONSULTANT":  graphmodel.KindFieldConsultant,
	"FIELDCONSULTANT":   graphmodel.KindFieldConsultant,
	"COMPANY":           graphmodel.KindCompany,
	"CLIENT":            graphmodel.KindCompany,
	"PRODUCT":           graphmodel.KindProduct,
	"INCUMBENT_PRODUCT": graphmodel.KindIncumbentProduct,
	"INCUMBENTPRODUCT":  graphmodel.KindIncumbentProduct,
}

var edgeKindAliases = map[string]graphmodel.EdgeKind{
	"EMPLOYS":       graphmodel.EdgeEmploys,
	"COVERS":        graphmodel.EdgeCovers,
	"OWNS":          graphmodel.EdgeOwns,
	"RATES":         graphmodel.EdgeRates,
	"BI_RECOMMENDS": graphmodel.EdgeBiRecommends,
	"BIRECOMMENDS":  graphmodel.EdgeBiRecommends,
	"RECOMMENDS":    graphmodel.EdgeBiRecommends,
}

// NodeKind resolves a producer kind label. Falls back to the raw label
// uppercased with spaces/dashes collapsed to underscores.
func NodeKind(raw string) graphmodel.NodeKind {
	key := canonicalKindKey(raw)
	if k, ok := nodeKindAliases[key]; ok {
		return k
	}
	return graphmodel.NodeKind(key)
}

// EdgeKind resolves a producer relationship label.
func EdgeKind(raw string) graphmodel.EdgeKind {
	key := canonicalKindKey(raw)
	if k, ok := edgeKindAliases[key]; ok {
		return k
	}
	return graphmodel.EdgeKind(key)
}

func canonicalKindKey(raw string) string {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}

// Pick implements the alias promotion rule over a property bag. It returns
// the value for the canonical key if present; otherwise, if exactly one of
// the aliases carries a value, that value. The bool reports whether a value
// was found.
func Pick(props map[string]any, canonical string, aliases ...string) (string, bool) {
	if v, ok := stringProp(props, canonical); ok {
		return v, true
	}
	var (
		found string
		hits  int
	)
	for _, alias := range aliases {
		if v, ok := stringProp(props, alias); ok {
			hits++
			found = v
		}
	}
	if hits == 1 {
		return found, true
	}
	return "", false
}

func stringProp(props map[string]any, key string) (string, bool) {
	raw, ok := props[key]
	if !ok || raw == nil {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return "", false
		}
		return v, true
	case fmt.Stringer:
		s := strings.TrimSpace(v.String())
		if s == "" {
			return "", false
		}
		return s, true
	default:
		return "", false
	}
}

// Node normalizes one raw node into the canonical typed shape. The input map
// is read, never written; consumed keys do not appear in Extra.
func Node(raw graphmodel.RawNode) graphmodel.Node {
	kind := NodeKind(raw.Kind)
	out := graphmodel.Node{
		ID:   strings.TrimSpace(raw.ID),
		Kind: kind,
		Name: strings.TrimSpace(raw.Name),
	}
	if out.Name == "" {
		if name, ok := Pick(raw.Properties, "name", "label", "display_name"); ok {
			out.Name = name
		}
	}

	consumed := map[string]bool{"name": true, "label": true, "display_name": true}
	pick := func(canonical string, aliases ...string) string {
		consumed[canonical] = true
		for _, a := range aliases {
			consumed[a] = true
		}
		v, _ := Pick(raw.Properties, canonical, aliases...)
		return v
	}

	switch kind {
	case graphmodel.KindConsultant:
		out.Consultant = &graphmodel.ConsultantAttrs{
			Region:      pick("region"),
			Channel:     pick("channel"),
			Market:      pick("market"),
			SalesRegion: pick("salesRegion", "sales_region"),
			PCA:         pick("pca", "primary_consultant_advisor"),
		}
	case graphmodel.KindFieldConsultant:
		out.FieldConsultant = &graphmodel.FieldConsultantAttrs{
			ParentConsultantID: pick("parentConsultantId", "parent_consultant_id"),
			ConsultantID:       pick("consultantId", "consultant_id"),
			LegacyConsultant:   pick("consultant"),
			Advisor:            pick("advisor"),
			Region:             pick("region"),
			Market:             pick("market"),
		}
	case graphmodel.KindCompany:
		out.Company = &graphmodel.CompanyAttrs{
			Region:      pick("region"),
			Channel:     pick("channel"),
			SalesRegion: pick("salesRegion", "sales_region"),
			Privacy:     pick("privacy"),
			PCA:         pick("pca", "primary_consultant_advisor"),
			ACA:         pick("aca", "alternate_client_advisor"),
		}
	case graphmodel.KindProduct, graphmodel.KindIncumbentProduct:
		out.Product = &graphmodel.ProductAttrs{
			AssetClass: pick("assetClass", "asset_class"),
			Universe:   pick("universe", "universe_name"),
			Ratings:    ratingsProp(raw.Properties),
		}
		consumed["ratings"] = true
		consumed["rankgroups"] = true
	}

	out.Extra = leftover(raw.Properties, consumed)
	return out
}

// Edge normalizes one raw relationship.
func Edge(raw graphmodel.RawEdge) graphmodel.Edge {
	kind := EdgeKind(raw.Kind)
	out := graphmodel.Edge{
		ID:       strings.TrimSpace(raw.ID),
		SourceID: strings.TrimSpace(raw.SourceID),
		TargetID: strings.TrimSpace(raw.TargetID),
		Kind:     kind,
	}

	consumed := map[string]bool{}
	pick := func(canonical string, aliases ...string) string {
		consumed[canonical] = true
		for _, a := range aliases {
			consumed[a] = true
		}
		v, _ := Pick(raw.Attributes, canonical, aliases...)
		return v
	}

	switch kind {
	case graphmodel.EdgeCovers:
		out.Covers = &graphmodel.CoversAttrs{
			LevelOfInfluence: pick("levelOfInfluence", "level_of_influence", "influence_level"),
			CoverageName:     pick("coverageName", "coverage_name"),
		}
	case graphmodel.EdgeOwns:
		out.Owns = &graphmodel.OwnsAttrs{
			MandateStatus: pick("mandateStatus", "mandate_status"),
			Commitment:    pick("commitment", "commitment_market_value"),
		}
	case graphmodel.EdgeRates:
		out.Rates = &graphmodel.RatesAttrs{
			Rating: pick("rating", "rankgroup", "rank_group"),
		}
	}

	out.Extra = leftover(raw.Attributes, consumed)
	return out
}

// Snapshot normalizes a full raw payload.
func Snapshot(raw graphmodel.RawSnapshot) graphmodel.Snapshot {
	out := graphmodel.Snapshot{
		Nodes: make([]graphmodel.Node, 0, len(raw.Nodes)),
		Edges: make([]graphmodel.Edge, 0, len(raw.Relationships)),
	}
	for _, n := range raw.Nodes {
		out.Nodes = append(out.Nodes, Node(n))
	}
	for _, e := range raw.Relationships {
		out.Edges = append(out.Edges, Edge(e))
	}
	return out
}

func ratingsProp(props map[string]any) []graphmodel.Rating {
	raw, ok := props["ratings"]
	if !ok {
		raw, ok = props["rankgroups"]
	}
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]graphmodel.Rating, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		consultant, _ := Pick(m, "consultant", "consultant_id")
		rating, _ := Pick(m, "rating", "rankgroup", "rank_group")
		if consultant == "" && rating == "" {
			continue
		}
		out = append(out, graphmodel.Rating{Consultant: consultant, Rating: rating})
	}
	return out
}

func leftover(props map[string]any, consumed map[string]bool) map[string]any {
	if len(props) == 0 {
		return nil
	}
	out := map[string]any{}
	for k, v := range props {
		if consumed[k] {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
