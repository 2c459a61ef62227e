package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
)

// EstimateNodeCount sizes the criteria's result before the full snapshot
// fetch, and returns a per-dimension value breakdown for suggestion ranking.
func (s *Store) EstimateNodeCount(ctx context.Context, f graphmodel.FilterCriteria) (graphmodel.Estimate, error) {
	var est graphmodel.Estimate
	if err := s.available(); err != nil {
		return est, err
	}

	pred, params := nodePredicate("n", f)
	query := fmt.Sprintf(`
MATCH (n) WHERE %s
RETURN 'total' AS field, '' AS value, count(n) AS cnt
UNION ALL
MATCH (n) WHERE %s AND n.market IS NOT NULL
RETURN 'markets' AS field, n.market AS value, count(n) AS cnt
UNION ALL
MATCH (n) WHERE %s AND n.channel IS NOT NULL
RETURN 'channels' AS field, n.channel AS value, count(n) AS cnt
UNION ALL
MATCH (n) WHERE %s AND n.asset_class IS NOT NULL
RETURN 'assetClasses' AS field, n.asset_class AS value, count(n) AS cnt
`, pred, pred, pred, pred)

	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		est := graphmodel.Estimate{Breakdown: graphmodel.DimensionBreakdown{}}
		for res.Next(ctx) {
			rec := res.Record()
			fieldAny, _ := rec.Get("field")
			valueAny, _ := rec.Get("value")
			cntAny, _ := rec.Get("cnt")
			field := asString(fieldAny)
			value := asString(valueAny)
			cnt := asInt(cntAny)
			if field == "total" {
				est.NodeCount = cnt
				continue
			}
			if value == "" || cnt <= 0 {
				continue
			}
			if est.Breakdown[field] == nil {
				est.Breakdown[field] = map[string]int{}
			}
			est.Breakdown[field][value] = cnt
		}
		return est, res.Err()
	})
	if err != nil {
		return graphmodel.Estimate{}, fmt.Errorf("estimate query: %w", err)
	}
	return out.(graphmodel.Estimate), nil
}

func asInt(v any) int {
	switch t := v.(type) {
	case int64:
		return int(t)
	case int:
		return t
	case float64:
		return int(t)
	default:
		return 0
	}
}
