package services

import (
	"testing"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
)

func TestFilterService_DefaultsNeverEmpty(t *testing.T) {
	svc := NewFilterService(mustTestLogger(t), graphmodel.FilterCriteria{})
	cur := svc.Current()
	if len(cur.Regions) == 0 {
		t.Fatalf("default regions must be non-empty")
	}
	if cur.Regions[0] != graphmodel.DefaultRegion {
		t.Fatalf("want default region %s, got %v", graphmodel.DefaultRegion, cur.Regions)
	}
	if len(cur.NodeKinds) != len(graphmodel.AllNodeKinds()) {
		t.Fatalf("default node kinds: %v", cur.NodeKinds)
	}
}

func TestFilterService_CurrentAndAppliedIndependent(t *testing.T) {
	svc := NewFilterService(mustTestLogger(t), graphmodel.DefaultFilterCriteria())

	svc.Update(graphmodel.FilterPatch{Markets: []string{"US East"}})
	if got := svc.Applied().Markets; len(got) != 0 {
		t.Fatalf("update must not touch applied: %v", got)
	}
	if got := svc.Current().Markets; len(got) != 1 || got[0] != "US East" {
		t.Fatalf("current: %v", got)
	}

	svc.Apply()
	if got := svc.Applied().Markets; len(got) != 1 || got[0] != "US East" {
		t.Fatalf("applied after commit: %v", got)
	}
}

func TestFilterService_ReturnedCopiesDoNotAlias(t *testing.T) {
	svc := NewFilterService(mustTestLogger(t), graphmodel.DefaultFilterCriteria())
	svc.Update(graphmodel.FilterPatch{Markets: []string{"US East"}})

	cur := svc.Current()
	cur.Markets[0] = "MUTATED"
	if got := svc.Current().Markets[0]; got != "US East" {
		t.Fatalf("internal state aliased through accessor: %q", got)
	}
}

func TestFilterService_UpdateRejectsEmptyRegions(t *testing.T) {
	svc := NewFilterService(mustTestLogger(t), graphmodel.DefaultFilterCriteria())
	svc.Update(graphmodel.FilterPatch{Regions: []string{}})
	if got := svc.Current().Regions; len(got) == 0 {
		t.Fatalf("empty region selection must fall back to defaults")
	}
}

func TestFilterService_ClearRestoresDefaults(t *testing.T) {
	svc := NewFilterService(mustTestLogger(t), graphmodel.DefaultFilterCriteria())
	svc.Update(graphmodel.FilterPatch{
		Markets:  []string{"US East"},
		Channels: []string{"Institutional"},
	})
	svc.Apply()

	cleared := svc.Clear()
	if len(cleared.Markets) != 0 || len(cleared.Channels) != 0 {
		t.Fatalf("clear left selections behind: %+v", cleared)
	}
	if len(cleared.Regions) == 0 || len(cleared.NodeKinds) == 0 {
		t.Fatalf("clear must keep non-empty regions and kinds: %+v", cleared)
	}
	if got := svc.Applied(); len(got.Markets) != 0 {
		t.Fatalf("applied not reset: %+v", got)
	}
}

func TestFilterService_ChangeRegionsResetsSubordinateSelections(t *testing.T) {
	svc := NewFilterService(mustTestLogger(t), graphmodel.DefaultFilterCriteria())
	svc.Update(graphmodel.FilterPatch{
		Markets:      []string{"US East"},
		Channels:     []string{"Institutional"},
		AssetClasses: []string{"Equities"},
		Consultants:  []string{"NAI_C1"},
	})

	svc.ChangeRegions([]string{"EMEA"})
	cur := svc.Current()
	if len(cur.Regions) != 1 || cur.Regions[0] != "EMEA" {
		t.Fatalf("regions: %v", cur.Regions)
	}
	if len(cur.Markets) != 0 || len(cur.Channels) != 0 || len(cur.AssetClasses) != 0 {
		t.Fatalf("region-scoped selections must reset: %+v", cur)
	}
	if len(cur.Consultants) != 1 {
		t.Fatalf("entity selections must survive a region change: %+v", cur)
	}
}

func TestFilterService_ApplyNotifiesSubscribers(t *testing.T) {
	svc := NewFilterService(mustTestLogger(t), graphmodel.DefaultFilterCriteria())

	var seen []graphmodel.FilterCriteria
	svc.Subscribe(func(f graphmodel.FilterCriteria) {
		seen = append(seen, f)
	})

	svc.Update(graphmodel.FilterPatch{Markets: []string{"US East"}})
	svc.Apply()
	if len(seen) != 1 {
		t.Fatalf("want 1 notification, got %d", len(seen))
	}
	if len(seen[0].Markets) != 1 || seen[0].Markets[0] != "US East" {
		t.Fatalf("notification payload: %+v", seen[0])
	}
}
