package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
)

// optionQueries enumerate the selectable values per filter dimension, scoped
// to the region selection where the dimension is region-dependent.
var optionQueries = []struct {
	dimension string
	query     string
}{
	{"regions", `MATCH (n) WHERE n.region IS NOT NULL RETURN DISTINCT n.region AS v`},
	{"markets", `MATCH (n) WHERE n.region IN $regions AND n.market IS NOT NULL RETURN DISTINCT n.market AS v`},
	{"channels", `MATCH (n) WHERE n.region IN $regions AND n.channel IS NOT NULL RETURN DISTINCT n.channel AS v`},
	{"assetClasses", `MATCH (n:Product|IncumbentProduct) WHERE n.asset_class IS NOT NULL RETURN DISTINCT n.asset_class AS v`},
	{"consultants", `MATCH (n:Consultant) WHERE n.region IN $regions RETURN DISTINCT n.name AS v`},
	{"fieldConsultants", `MATCH (n:FieldConsultant) WHERE n.region IS NULL OR n.region IN $regions RETURN DISTINCT n.name AS v`},
	{"products", `MATCH (n:Product) RETURN DISTINCT n.name AS v`},
	{"clients", `MATCH (n:Company) WHERE n.region IN $regions RETURN DISTINCT n.name AS v`},
	{"clientAdvisors", `MATCH (n:Company) WHERE n.aca IS NOT NULL RETURN DISTINCT n.aca AS v`},
	{"consultantAdvisors", `MATCH (n) WHERE n.pca IS NOT NULL RETURN DISTINCT n.pca AS v`},
	{"ratings", `MATCH ()-[r:RATES]->() WHERE r.rankgroup IS NOT NULL RETURN DISTINCT r.rankgroup AS v`},
	{"mandateStatuses", `MATCH ()-[r:OWNS]->() WHERE r.mandate_status IS NOT NULL RETURN DISTINCT r.mandate_status AS v`},
}

// FetchFilterOptions enumerates selectable filter values for the given region
// scope.
func (s *Store) FetchFilterOptions(ctx context.Context, regions []string) (graphmodel.FilterOptions, error) {
	var opts graphmodel.FilterOptions
	if err := s.available(); err != nil {
		return opts, err
	}
	if len(regions) == 0 {
		regions = []string{graphmodel.DefaultRegion}
	}
	params := map[string]any{"regions": regions}

	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	values := map[string][]string{}
	for _, oq := range optionQueries {
		res, err := session.Run(ctx, oq.query, params)
		if err != nil {
			return opts, fmt.Errorf("filter options (%s): %w", oq.dimension, err)
		}
		var list []string
		for res.Next(ctx) {
			if v, ok := res.Record().Get("v"); ok {
				if str := asString(v); str != "" {
					list = append(list, str)
				}
			}
		}
		if err := res.Err(); err != nil {
			return opts, fmt.Errorf("filter options (%s): %w", oq.dimension, err)
		}
		sort.Strings(list)
		values[oq.dimension] = list
	}

	opts = graphmodel.FilterOptions{
		Regions:            values["regions"],
		Markets:            values["markets"],
		Channels:           values["channels"],
		AssetClasses:       values["assetClasses"],
		Consultants:        values["consultants"],
		FieldConsultants:   values["fieldConsultants"],
		Products:           values["products"],
		Clients:            values["clients"],
		ClientAdvisors:     values["clientAdvisors"],
		ConsultantAdvisors: values["consultantAdvisors"],
		Ratings:            values["ratings"],
		MandateStatuses:    values["mandateStatuses"],
	}
	return opts, nil
}
