package hierarchy

import (
	"testing"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
)

func fieldConsultant(id, name string, attrs graphmodel.FieldConsultantAttrs) graphmodel.Node {
	return graphmodel.Node{
		ID:              id,
		Kind:            graphmodel.KindFieldConsultant,
		Name:            name,
		FieldConsultant: &attrs,
	}
}

func TestResolveParent_ExplicitParentWinsOverEverything(t *testing.T) {
	child := fieldConsultant("NAI_F1", "Jane (EMEA)", graphmodel.FieldConsultantAttrs{
		ParentConsultantID: "NAI_C9",
		ConsultantID:       "NAI_C2",
		LegacyConsultant:   "NAI_C3",
		Advisor:            "NAI_C4",
	})
	link := ResolveParent(child)
	if link.ParentID != "NAI_C9" || link.Method != MethodExplicitParent {
		t.Fatalf("want NAI_C9/explicit_parent, got %s/%s", link.ParentID, link.Method)
	}
}

func TestResolveParent_PrecedenceChain(t *testing.T) {
	cases := []struct {
		name       string
		child      graphmodel.Node
		wantParent string
		wantMethod Method
	}{
		{
			name: "consultant id before legacy",
			child: fieldConsultant("FC-001", "x", graphmodel.FieldConsultantAttrs{
				ConsultantID:     "NAI_C2",
				LegacyConsultant: "NAI_C3",
			}),
			wantParent: "NAI_C2",
			wantMethod: MethodConsultantID,
		},
		{
			name: "legacy before id pattern",
			child: fieldConsultant("NAI_F7", "x", graphmodel.FieldConsultantAttrs{
				LegacyConsultant: "NAI_C3",
			}),
			wantParent: "NAI_C3",
			wantMethod: MethodLegacyField,
		},
		{
			name:       "id pattern child marker",
			child:      fieldConsultant("NAI_F12", "x", graphmodel.FieldConsultantAttrs{}),
			wantParent: "NAI_C12",
			wantMethod: MethodIDPattern,
		},
		{
			name:       "id pattern field marker",
			child:      fieldConsultant("FIELD_CONSULTANT_7", "x", graphmodel.FieldConsultantAttrs{}),
			wantParent: "CONSULTANT_7",
			wantMethod: MethodIDPattern,
		},
		{
			name:       "id pattern trailing number",
			child:      fieldConsultant("EMEA_42", "x", graphmodel.FieldConsultantAttrs{}),
			wantParent: "EMEA_C42",
			wantMethod: MethodIDPattern,
		},
		{
			name: "advisor when id carries no pattern",
			child: fieldConsultant("FC-007", "x", graphmodel.FieldConsultantAttrs{
				Advisor: "NAI_C4",
			}),
			wantParent: "NAI_C4",
			wantMethod: MethodAdvisor,
		},
		{
			name:       "name region with trailing id digits",
			child:      fieldConsultant("FC-007", "Jane Doe (EMEA)", graphmodel.FieldConsultantAttrs{}),
			wantParent: "EMEA_C7",
			wantMethod: MethodNameRegion,
		},
		{
			name:       "name region defaults digits to 1",
			child:      fieldConsultant("FC-X", "Jane Doe (APAC)", graphmodel.FieldConsultantAttrs{}),
			wantParent: "APAC_C1",
			wantMethod: MethodNameRegion,
		},
		{
			name:       "self fallback is total",
			child:      fieldConsultant("FC-X", "Jane Doe", graphmodel.FieldConsultantAttrs{}),
			wantParent: "FC-X",
			wantMethod: MethodSelf,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			link := ResolveParent(tc.child)
			if link.ParentID != tc.wantParent || link.Method != tc.wantMethod {
				t.Fatalf("want %s/%s, got %s/%s", tc.wantParent, tc.wantMethod, link.ParentID, link.Method)
			}
			if link.ChildID != tc.child.ID {
				t.Fatalf("child id: want=%s got=%s", tc.child.ID, link.ChildID)
			}
		})
	}
}

func TestResolveParent_Deterministic(t *testing.T) {
	child := fieldConsultant("NAI_F3", "Jane (NAI)", graphmodel.FieldConsultantAttrs{})
	first := ResolveParent(child)
	for i := 0; i < 50; i++ {
		if got := ResolveParent(child); got != first {
			t.Fatalf("run %d diverged: %+v vs %+v", i, got, first)
		}
	}
}

func TestResolveAll_SkipsNonFieldConsultants(t *testing.T) {
	nodes := []graphmodel.Node{
		{ID: "NAI_C1", Kind: graphmodel.KindConsultant, Name: "C"},
		fieldConsultant("NAI_F1", "F", graphmodel.FieldConsultantAttrs{}),
		{ID: "COMP_1", Kind: graphmodel.KindCompany, Name: "Co"},
	}
	links := ResolveAll(nodes)
	if len(links) != 1 {
		t.Fatalf("want 1 link, got %d", len(links))
	}
	link, ok := links["NAI_F1"]
	if !ok || link.ParentID != "NAI_C1" {
		t.Fatalf("link: %+v ok=%v", link, ok)
	}
}
