package graphmodel

// EdgeKind is the relationship taxonomy of the graph.
type EdgeKind string

const (
	EdgeEmploys      EdgeKind = "EMPLOYS"
	EdgeCovers       EdgeKind = "COVERS"
	EdgeOwns         EdgeKind = "OWNS"
	EdgeRates        EdgeKind = "RATES"
	EdgeBiRecommends EdgeKind = "BI_RECOMMENDS"
)

func (k EdgeKind) Valid() bool {
	switch k {
	case EdgeEmploys, EdgeCovers, EdgeOwns, EdgeRates, EdgeBiRecommends:
		return true
	}
	return false
}

// CoversAttrs is the canonical attribute record for COVERS edges.
type CoversAttrs struct {
	LevelOfInfluence string `json:"levelOfInfluence,omitempty"`
	CoverageName     string `json:"coverageName,omitempty"`
}

// OwnsAttrs is the canonical attribute record for OWNS edges.
type OwnsAttrs struct {
	MandateStatus string `json:"mandateStatus,omitempty"`
	Commitment    string `json:"commitment,omitempty"`
}

// RatesAttrs is the canonical attribute record for RATES edges. Rating is the
// canonical name for what older producers call rankgroup.
type RatesAttrs struct {
	Rating string `json:"rating,omitempty"`
}

// Edge is the canonical, typed edge shape produced by the normalizer. The
// kind-specific record is non-nil only for kinds that carry attributes.
type Edge struct {
	ID       string   `json:"id"`
	SourceID string   `json:"sourceId"`
	TargetID string   `json:"targetId"`
	Kind     EdgeKind `json:"kind"`

	Covers *CoversAttrs `json:"covers,omitempty"`
	Owns   *OwnsAttrs   `json:"owns,omitempty"`
	Rates  *RatesAttrs  `json:"rates,omitempty"`

	Extra map[string]any `json:"extra,omitempty"`
}

// Clone returns a deep copy.
func (e Edge) Clone() Edge {
	out := e
	if e.Covers != nil {
		c := *e.Covers
		out.Covers = &c
	}
	if e.Owns != nil {
		o := *e.Owns
		out.Owns = &o
	}
	if e.Rates != nil {
		r := *e.Rates
		out.Rates = &r
	}
	if e.Extra != nil {
		ex := make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			ex[k] = v
		}
		out.Extra = ex
	}
	return out
}

// RawEdge is the loose inbound relationship shape.
type RawEdge struct {
	ID         string         `json:"id"`
	SourceID   string         `json:"source"`
	TargetID   string         `json:"target"`
	Kind       string         `json:"kind"`
	Attributes map[string]any `json:"attributes"`
}

// RawSnapshot is the inbound graph payload: nodes plus relationships, exactly
// as the producer shaped them.
type RawSnapshot struct {
	Nodes         []RawNode `json:"nodes"`
	Relationships []RawEdge `json:"relationships"`
}

// Snapshot is a canonical in-memory graph snapshot.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"relationships"`
}
