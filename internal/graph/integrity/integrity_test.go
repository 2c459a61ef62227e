package integrity

import (
	"reflect"
	"testing"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
)

func consultant(id string) graphmodel.Node {
	return graphmodel.Node{ID: id, Kind: graphmodel.KindConsultant, Name: id, Consultant: &graphmodel.ConsultantAttrs{}}
}

func fieldConsultant(id, parent string) graphmodel.Node {
	return graphmodel.Node{
		ID:   id,
		Kind: graphmodel.KindFieldConsultant,
		Name: id,
		FieldConsultant: &graphmodel.FieldConsultantAttrs{
			ParentConsultantID: parent,
		},
	}
}

func product(id string, ratings []graphmodel.Rating) graphmodel.Node {
	return graphmodel.Node{
		ID:      id,
		Kind:    graphmodel.KindProduct,
		Name:    id,
		Product: &graphmodel.ProductAttrs{Ratings: ratings},
	}
}

func TestValidate_CleanSnapshot(t *testing.T) {
	nodes := []graphmodel.Node{
		consultant("NAI_C1"),
		fieldConsultant("NAI_F1", "NAI_C1"),
		product("P1", []graphmodel.Rating{}),
	}
	edges := []graphmodel.Edge{
		{ID: "e1", SourceID: "NAI_C1", TargetID: "NAI_F1", Kind: graphmodel.EdgeEmploys},
	}
	rep := Validate(nodes, edges)
	if !rep.Valid {
		t.Fatalf("clean snapshot should be valid, issues: %v", rep.Issues)
	}
	if len(rep.Issues) != 0 {
		t.Fatalf("unexpected issues: %v", rep.Issues)
	}
	if rep.Stats.FieldConsultants != 1 || rep.Stats.Nodes != 3 || rep.Stats.Edges != 1 {
		t.Fatalf("stats: %+v", rep.Stats)
	}
}

func TestValidate_UnresolvedParentFlipsValid(t *testing.T) {
	nodes := []graphmodel.Node{
		fieldConsultant("NAI_F1", "NAI_C1"),
	}
	rep := Validate(nodes, nil)
	if rep.Valid {
		t.Fatalf("parent pointing at no consultant node must invalidate")
	}
	if rep.Stats.UnresolvedParents != 1 {
		t.Fatalf("stats: %+v", rep.Stats)
	}
}

func TestValidate_MissingRatingsCountedNotFatal(t *testing.T) {
	nodes := []graphmodel.Node{product("P1", nil)}
	rep := Validate(nodes, nil)
	if !rep.Valid {
		t.Fatalf("missing ratings is repairable, must not invalidate")
	}
	if rep.Stats.ProductsMissingRatings != 1 || len(rep.Issues) != 1 {
		t.Fatalf("stats=%+v issues=%v", rep.Stats, rep.Issues)
	}
}

func TestValidate_EdgeAttributeGapsCounted(t *testing.T) {
	nodes := []graphmodel.Node{
		consultant("NAI_C1"),
		{ID: "COMP_1", Kind: graphmodel.KindCompany, Name: "Co", Company: &graphmodel.CompanyAttrs{}},
		product("P1", []graphmodel.Rating{}),
	}
	edges := []graphmodel.Edge{
		{ID: "e1", SourceID: "NAI_C1", TargetID: "COMP_1", Kind: graphmodel.EdgeCovers, Covers: &graphmodel.CoversAttrs{}},
		{ID: "e2", SourceID: "COMP_1", TargetID: "P1", Kind: graphmodel.EdgeOwns},
	}
	rep := Validate(nodes, edges)
	if !rep.Valid {
		t.Fatalf("attribute gaps are repairable, must not invalidate: %v", rep.Issues)
	}
	if rep.Stats.CoversMissingInfluence != 1 || rep.Stats.OwnsMissingMandate != 1 {
		t.Fatalf("stats: %+v", rep.Stats)
	}
}

func TestValidate_DanglingEdgeFlipsValid(t *testing.T) {
	nodes := []graphmodel.Node{consultant("NAI_C1")}
	edges := []graphmodel.Edge{
		{ID: "e1", SourceID: "NAI_C1", TargetID: "GHOST", Kind: graphmodel.EdgeEmploys},
	}
	rep := Validate(nodes, edges)
	if rep.Valid || rep.Stats.DanglingEdges != 1 {
		t.Fatalf("valid=%v stats=%+v", rep.Valid, rep.Stats)
	}
}

func TestRepair_FillsRatingsAndParent(t *testing.T) {
	nodes := []graphmodel.Node{
		consultant("NAI_C2"),
		{ID: "NAI_F2", Kind: graphmodel.KindFieldConsultant, Name: "F", FieldConsultant: &graphmodel.FieldConsultantAttrs{}},
		product("P1", nil),
	}
	outNodes, _ := Repair(nodes, nil)

	if outNodes[1].FieldConsultant.ParentConsultantID != "NAI_C2" {
		t.Fatalf("parent not backfilled: %q", outNodes[1].FieldConsultant.ParentConsultantID)
	}
	if outNodes[2].Product.Ratings == nil || len(outNodes[2].Product.Ratings) != 0 {
		t.Fatalf("ratings not filled: %#v", outNodes[2].Product.Ratings)
	}
	// Input untouched.
	if nodes[1].FieldConsultant.ParentConsultantID != "" || nodes[2].Product.Ratings != nil {
		t.Fatalf("Repair mutated its input")
	}
}

func TestRepair_PromotesStrandedEdgeAlias(t *testing.T) {
	edges := []graphmodel.Edge{
		{
			ID: "e1", SourceID: "COMP_1", TargetID: "P1",
			Kind:  graphmodel.EdgeOwns,
			Owns:  &graphmodel.OwnsAttrs{},
			Extra: map[string]any{"mandate_status": "Active"},
		},
	}
	_, outEdges := Repair(nil, edges)
	if outEdges[0].Owns == nil || outEdges[0].Owns.MandateStatus != "Active" {
		t.Fatalf("stranded alias not promoted: %#v", outEdges[0].Owns)
	}
	if _, ok := outEdges[0].Extra["mandate_status"]; ok {
		t.Fatalf("promoted alias must leave Extra")
	}
}

func TestRepair_Idempotent(t *testing.T) {
	nodes := []graphmodel.Node{
		consultant("NAI_C1"),
		fieldConsultant("NAI_F1", ""),
		product("P1", nil),
	}
	edges := []graphmodel.Edge{
		{
			ID: "e1", SourceID: "COMP_1", TargetID: "P1",
			Kind:  graphmodel.EdgeOwns,
			Extra: map[string]any{"mandate_status": "Active"},
		},
	}
	n1, e1 := Repair(nodes, edges)
	n2, e2 := Repair(n1, e1)
	if !reflect.DeepEqual(n1, n2) {
		t.Fatalf("node repair not idempotent:\nfirst:  %#v\nsecond: %#v", n1, n2)
	}
	if !reflect.DeepEqual(e1, e2) {
		t.Fatalf("edge repair not idempotent:\nfirst:  %#v\nsecond: %#v", e1, e2)
	}
}

func TestRepairThenValidate_RepairableIssuesClear(t *testing.T) {
	nodes := []graphmodel.Node{
		consultant("NAI_C1"),
		fieldConsultant("NAI_F1", ""),
		product("P1", nil),
	}
	before := Validate(nodes, nil)
	if before.Stats.ProductsMissingRatings != 1 {
		t.Fatalf("precondition: %+v", before.Stats)
	}
	outNodes, outEdges := Repair(nodes, nil)
	after := Validate(outNodes, outEdges)
	if after.Stats.ProductsMissingRatings != 0 {
		t.Fatalf("ratings issue should clear after repair: %+v", after.Stats)
	}
	if !after.Valid {
		t.Fatalf("repaired snapshot should validate, issues: %v", after.Issues)
	}
}
