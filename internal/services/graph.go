package services

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/advisorgraph-backend/internal/data/repos/querylog"
	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
	qltypes "github.com/yungbote/advisorgraph-backend/internal/domain/querylog"
	"github.com/yungbote/advisorgraph-backend/internal/graph/hierarchy"
	"github.com/yungbote/advisorgraph-backend/internal/graph/integrity"
	"github.com/yungbote/advisorgraph-backend/internal/graph/normalize"
	"github.com/yungbote/advisorgraph-backend/internal/graph/palette"
	"github.com/yungbote/advisorgraph-backend/internal/platform/apierr"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
)

// GraphSource supplies raw snapshots and pre-fetch estimates. Implemented by
// the Neo4j store; tests substitute a fake.
type GraphSource interface {
	EstimateNodeCount(ctx context.Context, f graphmodel.FilterCriteria) (graphmodel.Estimate, error)
	FetchSnapshot(ctx context.Context, f graphmodel.FilterCriteria) (graphmodel.RawSnapshot, error)
}

// ViewNode is a canonical node decorated for rendering: its resolved group
// and the palette entry the group hashes to. Color is set only for hierarchy
// members (consultants and field consultants).
type ViewNode struct {
	graphmodel.Node
	ParentID    string           `json:"parentId,omitempty"`
	GroupMethod hierarchy.Method `json:"groupMethod,omitempty"`
	Color       *palette.Entry   `json:"color,omitempty"`
}

// ViewGraph is the render-ready graph handed to the dashboard.
type ViewGraph struct {
	Nodes []ViewNode        `json:"nodes"`
	Edges []graphmodel.Edge `json:"relationships"`
}

// GraphResult is the gated outcome of one applied query. Graph and Report
// are non-nil only in graph_ready mode.
type GraphResult struct {
	Gate   GateState         `json:"gate"`
	Graph  *ViewGraph        `json:"graph,omitempty"`
	Report *integrity.Report `json:"report,omitempty"`
}

// GraphService runs the reconciliation pipeline: estimate, fetch, normalize,
// resolve hierarchy, validate, colorize, gate.
type GraphService struct {
	source GraphSource
	audit  querylog.QueryLogRepo
	log    *logger.Logger
}

func NewGraphService(log *logger.Logger, source GraphSource, audit querylog.QueryLogRepo) *GraphService {
	return &GraphService{
		source: source,
		audit:  audit,
		log:    log.With("service", "GraphService"),
	}
}

// ApplyFilters merges the patch into the session's current selection, commits
// it, and runs the query pipeline against the committed criteria.
func (g *GraphService) ApplyFilters(ctx context.Context, sess *Session, patch graphmodel.FilterPatch) (GraphResult, error) {
	sess.Filters.Update(patch)
	applied := sess.Filters.Apply()
	return g.runQuery(ctx, sess, applied)
}

// ChangeRegions swaps the region scope (resetting region-dependent
// sub-selections) and re-runs the query.
func (g *GraphService) ChangeRegions(ctx context.Context, sess *Session, regions []string) (GraphResult, error) {
	sess.Filters.ChangeRegions(regions)
	applied := sess.Filters.Apply()
	return g.runQuery(ctx, sess, applied)
}

// ResetFilters clears the session back to defaults without running a query;
// the gate returns to filters_only.
func (g *GraphService) ResetFilters(sess *Session) graphmodel.FilterCriteria {
	cleared := sess.Filters.Clear()
	reqID := sess.beginRequest()
	sess.commit(reqID, GraphResult{Gate: InitialGateState()}, nil)
	sess.setSnapshot(nil)
	return cleared
}

// ValidateLast re-runs the integrity validator over the session's last
// normalized snapshot.
func (g *GraphService) ValidateLast(sess *Session) (integrity.Report, error) {
	snap := sess.LatestSnapshot()
	if snap == nil {
		return integrity.Report{}, apierr.New(http.StatusConflict, "no_snapshot", nil)
	}
	return integrity.Validate(snap.Nodes, snap.Edges), nil
}

// RepairLast runs the explicit repair operation over the session's last
// snapshot, stores the repaired snapshot, and returns it with a fresh
// validation report.
func (g *GraphService) RepairLast(sess *Session) (graphmodel.Snapshot, integrity.Report, error) {
	snap := sess.LatestSnapshot()
	if snap == nil {
		return graphmodel.Snapshot{}, integrity.Report{}, apierr.New(http.StatusConflict, "no_snapshot", nil)
	}
	nodes, edges := integrity.Repair(snap.Nodes, snap.Edges)
	repaired := graphmodel.Snapshot{Nodes: nodes, Edges: edges}
	sess.setSnapshot(&repaired)
	return repaired, integrity.Validate(nodes, edges), nil
}

func (g *GraphService) runQuery(ctx context.Context, sess *Session, applied graphmodel.FilterCriteria) (GraphResult, error) {
	reqID := sess.beginRequest()
	start := time.Now()

	if g.source == nil {
		return sess.LatestResult(), apierr.New(http.StatusServiceUnavailable, "graph_source_unavailable", nil)
	}

	est, err := g.source.EstimateNodeCount(ctx, applied)
	if err != nil {
		// Failed fetch: the gate stays where it was (filters_only for a
		// fresh session), never an inconsistent graph_ready.
		g.log.Warn("estimate failed", "session_id", sess.ID.String(), "error", err)
		return sess.LatestResult(), apierr.New(http.StatusBadGateway, "graph_fetch_failed", err)
	}

	if est.NodeCount > OptimalNodeCeiling {
		count := est.NodeCount
		if count > HardNodeLimit {
			count = HardNodeLimit
		}
		res := GraphResult{Gate: EvaluateGate(count, est.Breakdown)}
		if !sess.commit(reqID, res, nil) {
			g.log.Debug("apply superseded, result dropped", "session_id", sess.ID.String())
			return sess.LatestResult(), nil
		}
		g.writeAudit(ctx, sess, applied, res.Gate, 0, true, time.Since(start))
		return res, nil
	}

	raw, err := g.source.FetchSnapshot(ctx, applied)
	if err != nil {
		g.log.Warn("snapshot fetch failed", "session_id", sess.ID.String(), "error", err)
		return sess.LatestResult(), apierr.New(http.StatusBadGateway, "graph_fetch_failed", err)
	}

	snap := normalize.Snapshot(raw)
	report := integrity.Validate(snap.Nodes, snap.Edges)
	gate := EvaluateGate(len(snap.Nodes), BreakdownFromSnapshot(snap.Nodes))

	res := GraphResult{Gate: gate}
	if gate.Mode == GateGraphReady {
		view := buildViewGraph(snap)
		res.Graph = &view
		res.Report = &report
	}

	if !sess.commit(reqID, res, &snap) {
		g.log.Debug("apply superseded, result dropped", "session_id", sess.ID.String())
		return sess.LatestResult(), nil
	}
	if len(report.Issues) > 0 {
		g.log.Info("snapshot validated with issues",
			"session_id", sess.ID.String(),
			"issues", len(report.Issues),
			"unresolved_parents", report.Stats.UnresolvedParents)
	}
	g.writeAudit(ctx, sess, applied, gate, len(snap.Edges), false, time.Since(start))
	return res, nil
}

// buildViewGraph resolves every field consultant's group and colors hierarchy
// members by their group key. Consultants group on their own id so parent and
// children always share a palette entry.
func buildViewGraph(snap graphmodel.Snapshot) ViewGraph {
	links := hierarchy.ResolveAll(snap.Nodes)
	view := ViewGraph{
		Nodes: make([]ViewNode, 0, len(snap.Nodes)),
		Edges: snap.Edges,
	}
	for _, n := range snap.Nodes {
		vn := ViewNode{Node: n}
		switch n.Kind {
		case graphmodel.KindConsultant:
			c := palette.ColorFor(n.ID)
			vn.Color = &c
		case graphmodel.KindFieldConsultant:
			link := links[n.ID]
			vn.ParentID = link.ParentID
			vn.GroupMethod = link.Method
			c := palette.ColorFor(link.ParentID)
			vn.Color = &c
		}
		view.Nodes = append(view.Nodes, vn)
	}
	return view
}

func (g *GraphService) writeAudit(ctx context.Context, sess *Session, applied graphmodel.FilterCriteria, gate GateState, edgeCount int, estimated bool, took time.Duration) {
	if g.audit == nil {
		return
	}
	criteria, err := json.Marshal(applied)
	if err != nil {
		g.log.Warn("audit criteria marshal failed", "error", err)
		return
	}
	row := &qltypes.QueryLog{
		SessionID:  sess.ID,
		Criteria:   datatypes.JSON(criteria),
		NodeCount:  gate.NodeCount,
		EdgeCount:  edgeCount,
		GateMode:   string(gate.Mode),
		Estimated:  estimated,
		DurationMS: took.Milliseconds(),
	}
	if err := g.audit.Create(ctx, row); err != nil {
		g.log.Warn("query audit write failed", "error", err)
	}
}
