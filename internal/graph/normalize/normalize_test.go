package normalize

import (
	"testing"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
)

func TestPick_CanonicalWins(t *testing.T) {
	props := map[string]any{
		"mandateStatus":  "Active",
		"mandate_status": "Conversion in Progress",
	}
	got, ok := Pick(props, "mandateStatus", "mandate_status")
	if !ok || got != "Active" {
		t.Fatalf("want Active, got %q ok=%v", got, ok)
	}
}

func TestPick_SingleAliasPromoted(t *testing.T) {
	props := map[string]any{"mandate_status": "At Risk"}
	got, ok := Pick(props, "mandateStatus", "mandate_status")
	if !ok || got != "At Risk" {
		t.Fatalf("want At Risk, got %q ok=%v", got, ok)
	}
}

func TestPick_ConflictingAliasesStayAbsent(t *testing.T) {
	props := map[string]any{
		"level_of_influence": "High",
		"influence_level":    "Low",
	}
	got, ok := Pick(props, "levelOfInfluence", "level_of_influence", "influence_level")
	if ok {
		t.Fatalf("two disagreeing aliases must stay absent, got %q", got)
	}
}

func TestPick_EmptyStringsIgnored(t *testing.T) {
	props := map[string]any{
		"rating":    "  ",
		"rankgroup": "Positive",
	}
	got, ok := Pick(props, "rating", "rankgroup", "rank_group")
	if !ok || got != "Positive" {
		t.Fatalf("blank canonical should fall through to alias, got %q ok=%v", got, ok)
	}
}

func TestNodeKind_Aliases(t *testing.T) {
	cases := []struct {
		raw  string
		want graphmodel.NodeKind
	}{
		{"CONSULTANT", graphmodel.KindConsultant},
		{"field_consultant", graphmodel.KindFieldConsultant},
		{"FieldConsultant", graphmodel.KindFieldConsultant},
		{"CLIENT", graphmodel.KindCompany},
		{"incumbent product", graphmodel.KindIncumbentProduct},
		{"SOMETHING_ELSE", graphmodel.NodeKind("SOMETHING_ELSE")},
	}
	for _, tc := range cases {
		if got := NodeKind(tc.raw); got != tc.want {
			t.Fatalf("NodeKind(%q): want=%s got=%s", tc.raw, tc.want, got)
		}
	}
}

func TestNode_FieldConsultantAliasRepair(t *testing.T) {
	raw := graphmodel.RawNode{
		ID:   "NAI_F1",
		Kind: "FIELD_CONSULTANT",
		Name: "Jane Doe",
		Properties: map[string]any{
			"parent_consultant_id": "NAI_C1",
			"market":               "US East",
			"custom_flag":          "x",
		},
	}
	n := Node(raw)
	if n.FieldConsultant == nil {
		t.Fatalf("field consultant attrs missing")
	}
	if n.FieldConsultant.ParentConsultantID != "NAI_C1" {
		t.Fatalf("parent alias not promoted: %q", n.FieldConsultant.ParentConsultantID)
	}
	if n.FieldConsultant.Market != "US East" {
		t.Fatalf("market: %q", n.FieldConsultant.Market)
	}
	if _, ok := n.Extra["parent_consultant_id"]; ok {
		t.Fatalf("consumed alias must not appear in Extra")
	}
	if n.Extra["custom_flag"] != "x" {
		t.Fatalf("unconsumed property should survive in Extra")
	}
}

func TestNode_DoesNotMutateInput(t *testing.T) {
	props := map[string]any{"asset_class": "Equities"}
	raw := graphmodel.RawNode{ID: "P1", Kind: "PRODUCT", Name: "Fund A", Properties: props}
	_ = Node(raw)
	if len(props) != 1 || props["asset_class"] != "Equities" {
		t.Fatalf("input property bag was mutated: %#v", props)
	}
}

func TestNode_ProductRatingsAbsentVsEmpty(t *testing.T) {
	absent := Node(graphmodel.RawNode{ID: "P1", Kind: "PRODUCT", Name: "A"})
	if absent.Product == nil || absent.Product.Ratings != nil {
		t.Fatalf("missing ratings must normalize to nil, got %#v", absent.Product)
	}

	present := Node(graphmodel.RawNode{
		ID:   "P2",
		Kind: "PRODUCT",
		Name: "B",
		Properties: map[string]any{
			"ratings": []any{
				map[string]any{"consultant": "NAI_C1", "rankgroup": "Positive"},
			},
		},
	})
	if len(present.Product.Ratings) != 1 {
		t.Fatalf("want 1 rating, got %#v", present.Product.Ratings)
	}
	r := present.Product.Ratings[0]
	if r.Consultant != "NAI_C1" || r.Rating != "Positive" {
		t.Fatalf("rating not normalized: %#v", r)
	}
}

func TestEdge_OwnsAliasRepair(t *testing.T) {
	e := Edge(graphmodel.RawEdge{
		ID:       "e1",
		SourceID: "COMP_1",
		TargetID: "P1",
		Kind:     "OWNS",
		Attributes: map[string]any{
			"mandate_status": "Active",
			"commitment":     "12M",
		},
	})
	if e.Owns == nil {
		t.Fatalf("owns attrs missing")
	}
	if e.Owns.MandateStatus != "Active" || e.Owns.Commitment != "12M" {
		t.Fatalf("owns attrs: %#v", e.Owns)
	}
}

func TestEdge_RatesRankgroupAlias(t *testing.T) {
	e := Edge(graphmodel.RawEdge{
		ID: "e2", SourceID: "NAI_C1", TargetID: "P1", Kind: "RATES",
		Attributes: map[string]any{"rankgroup": "Negative"},
	})
	if e.Rates == nil || e.Rates.Rating != "Negative" {
		t.Fatalf("rates: %#v", e.Rates)
	}
}

func TestSnapshot_CountsPreserved(t *testing.T) {
	raw := graphmodel.RawSnapshot{
		Nodes: []graphmodel.RawNode{
			{ID: "NAI_C1", Kind: "CONSULTANT", Name: "C"},
			{ID: "NAI_F1", Kind: "FIELD_CONSULTANT", Name: "F"},
		},
		Relationships: []graphmodel.RawEdge{
			{ID: "e1", SourceID: "NAI_C1", TargetID: "NAI_F1", Kind: "EMPLOYS"},
		},
	}
	snap := Snapshot(raw)
	if len(snap.Nodes) != 2 || len(snap.Edges) != 1 {
		t.Fatalf("counts: nodes=%d edges=%d", len(snap.Nodes), len(snap.Edges))
	}
	if snap.Nodes[1].Kind != graphmodel.KindFieldConsultant {
		t.Fatalf("kind: %s", snap.Nodes[1].Kind)
	}
}
