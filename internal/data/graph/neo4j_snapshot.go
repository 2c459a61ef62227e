package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
)

// FetchSnapshot pulls the node and relationship sets for the criteria in
// parallel and returns them as a raw snapshot.
func (s *Store) FetchSnapshot(ctx context.Context, f graphmodel.FilterCriteria) (graphmodel.RawSnapshot, error) {
	var snap graphmodel.RawSnapshot
	if err := s.available(); err != nil {
		return snap, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		nodes, err := s.fetchNodes(gctx, f)
		if err != nil {
			return fmt.Errorf("fetch nodes: %w", err)
		}
		snap.Nodes = nodes
		return nil
	})
	g.Go(func() error {
		rels, err := s.fetchRelationships(gctx, f)
		if err != nil {
			return fmt.Errorf("fetch relationships: %w", err)
		}
		snap.Relationships = rels
		return nil
	})
	if err := g.Wait(); err != nil {
		return graphmodel.RawSnapshot{}, err
	}

	s.log.Debug("snapshot fetched", "nodes", len(snap.Nodes), "relationships", len(snap.Relationships))
	return snap, nil
}

func (s *Store) fetchNodes(ctx context.Context, f graphmodel.FilterCriteria) ([]graphmodel.RawNode, error) {
	pred, params := nodePredicate("n", f)
	query := fmt.Sprintf(`
MATCH (n)
WHERE %s
RETURN coalesce(n.id, toString(elementId(n))) AS id,
       head(labels(n)) AS kind,
       coalesce(n.name, '') AS name,
       properties(n) AS props
`, pred)

	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	rows, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		var out []graphmodel.RawNode
		for res.Next(ctx) {
			rec := res.Record()
			id, _ := rec.Get("id")
			kind, _ := rec.Get("kind")
			name, _ := rec.Get("name")
			props, _ := rec.Get("props")
			out = append(out, graphmodel.RawNode{
				ID:         asString(id),
				Kind:       asString(kind),
				Name:       asString(name),
				Properties: asPropMap(props),
			})
		}
		return out, res.Err()
	})
	if err != nil {
		return nil, err
	}
	return rows.([]graphmodel.RawNode), nil
}

func (s *Store) fetchRelationships(ctx context.Context, f graphmodel.FilterCriteria) ([]graphmodel.RawEdge, error) {
	predA, params := nodePredicate("a", f)
	predB, _ := nodePredicate("b", f)
	query := fmt.Sprintf(`
MATCH (a)-[r]->(b)
WHERE %s AND %s
RETURN coalesce(r.id, toString(elementId(r))) AS id,
       coalesce(a.id, toString(elementId(a))) AS source,
       coalesce(b.id, toString(elementId(b))) AS target,
       type(r) AS kind,
       properties(r) AS attrs
`, predA, predB)

	session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.client.Database,
	})
	defer session.Close(ctx)

	rows, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		var out []graphmodel.RawEdge
		for res.Next(ctx) {
			rec := res.Record()
			id, _ := rec.Get("id")
			source, _ := rec.Get("source")
			target, _ := rec.Get("target")
			kind, _ := rec.Get("kind")
			attrs, _ := rec.Get("attrs")
			out = append(out, graphmodel.RawEdge{
				ID:         asString(id),
				SourceID:   asString(source),
				TargetID:   asString(target),
				Kind:       asString(kind),
				Attributes: asPropMap(attrs),
			})
		}
		return out, res.Err()
	})
	if err != nil {
		return nil, err
	}
	return rows.([]graphmodel.RawEdge), nil
}
