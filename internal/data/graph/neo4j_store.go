// Package graph fetches raw relationship-graph snapshots and filter option
// enumerations from Neo4j. Everything returned here is the loose producer
// shape; normalization happens downstream in the reconciliation core.
package graph

import (
	"fmt"
	"strings"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
	"github.com/yungbote/advisorgraph-backend/internal/platform/neo4jdb"
)

// Store is the Neo4j-backed graph source.
type Store struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewStore(client *neo4jdb.Client, log *logger.Logger) *Store {
	return &Store{client: client, log: log.With("store", "Neo4jGraphStore")}
}

func (s *Store) available() error {
	if s == nil || s.client == nil || s.client.Driver == nil {
		return fmt.Errorf("graph store: neo4j not configured")
	}
	return nil
}

// labelForKind maps the canonical taxonomy onto the store's node labels.
var labelForKind = map[graphmodel.NodeKind]string{
	graphmodel.KindConsultant:       "Consultant",
	graphmodel.KindFieldConsultant:  "FieldConsultant",
	graphmodel.KindCompany:          "Company",
	graphmodel.KindProduct:          "Product",
	graphmodel.KindIncumbentProduct: "IncumbentProduct",
}

// nodePredicate builds the WHERE fragment scoping nodes to the criteria. The
// alias parameterizes the node variable so the same predicate can constrain
// both endpoints of a relationship match. Values travel as query parameters;
// only the alias is interpolated.
func nodePredicate(alias string, f graphmodel.FilterCriteria) (string, map[string]any) {
	params := map[string]any{
		"kinds":        selectedLabels(f),
		"regions":      f.Regions,
		"markets":      emptyIfNil(f.Markets),
		"channels":     emptyIfNil(f.Channels),
		"assetClasses": emptyIfNil(f.AssetClasses),
		"consultants":  emptyIfNil(f.Consultants),
		"fieldCons":    emptyIfNil(f.FieldConsultants),
		"products":     emptyIfNil(f.Products),
		"clients":      emptyIfNil(f.Clients),
		"showInactive": f.ShowInactiveNodes,
	}
	var b strings.Builder
	fmt.Fprintf(&b, "any(lbl IN labels(%s) WHERE lbl IN $kinds)", alias)
	fmt.Fprintf(&b, " AND (%s.region IS NULL OR %s.region IN $regions)", alias, alias)
	fmt.Fprintf(&b, " AND (size($markets) = 0 OR %s.market IS NULL OR %s.market IN $markets)", alias, alias)
	fmt.Fprintf(&b, " AND (size($channels) = 0 OR %s.channel IS NULL OR %s.channel IN $channels)", alias, alias)
	fmt.Fprintf(&b, " AND (size($assetClasses) = 0 OR %s.asset_class IS NULL OR %s.asset_class IN $assetClasses)", alias, alias)
	fmt.Fprintf(&b, " AND (size($consultants) = 0 OR NOT %s:Consultant OR %s.name IN $consultants)", alias, alias)
	fmt.Fprintf(&b, " AND (size($fieldCons) = 0 OR NOT %s:FieldConsultant OR %s.name IN $fieldCons)", alias, alias)
	fmt.Fprintf(&b, " AND (size($products) = 0 OR NOT %s:Product OR %s.name IN $products)", alias, alias)
	fmt.Fprintf(&b, " AND (size($clients) = 0 OR NOT %s:Company OR %s.name IN $clients)", alias, alias)
	fmt.Fprintf(&b, " AND ($showInactive OR coalesce(%s.inactive, false) = false)", alias)
	return b.String(), params
}

func selectedLabels(f graphmodel.FilterCriteria) []string {
	kinds := f.NodeKinds
	if len(kinds) == 0 {
		kinds = graphmodel.AllNodeKinds()
	}
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		if lbl, ok := labelForKind[k]; ok {
			out = append(out, lbl)
		}
	}
	return out
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func asPropMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}
