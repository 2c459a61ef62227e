package graphmodel

// NodeKind is the entity taxonomy of the relationship graph.
type NodeKind string

const (
	KindConsultant       NodeKind = "CONSULTANT"
	KindFieldConsultant  NodeKind = "FIELD_CONSULTANT"
	KindCompany          NodeKind = "COMPANY"
	KindProduct          NodeKind = "PRODUCT"
	KindIncumbentProduct NodeKind = "INCUMBENT_PRODUCT"
)

// AllNodeKinds in stable display order.
func AllNodeKinds() []NodeKind {
	return []NodeKind{
		KindConsultant,
		KindFieldConsultant,
		KindCompany,
		KindProduct,
		KindIncumbentProduct,
	}
}

func (k NodeKind) Valid() bool {
	switch k {
	case KindConsultant, KindFieldConsultant, KindCompany, KindProduct, KindIncumbentProduct:
		return true
	}
	return false
}

// IsProductLike reports whether the kind carries a ratings collection.
func (k NodeKind) IsProductLike() bool {
	return k == KindProduct || k == KindIncumbentProduct
}

// Rating is one consultant's rank group for a product.
type Rating struct {
	Consultant string `json:"consultant"`
	Rating     string `json:"rating"`
}

// ConsultantAttrs is the canonical attribute record for CONSULTANT nodes.
type ConsultantAttrs struct {
	Region      string `json:"region,omitempty"`
	Channel     string `json:"channel,omitempty"`
	Market      string `json:"market,omitempty"`
	SalesRegion string `json:"salesRegion,omitempty"`
	PCA         string `json:"pca,omitempty"`
}

// FieldConsultantAttrs is the canonical attribute record for FIELD_CONSULTANT
// nodes. ParentConsultantID is the explicit hierarchy link; ConsultantID and
// LegacyConsultant are alternate explicit references still emitted by older
// producers. Advisor is a free-form owner hint used by the resolver.
type FieldConsultantAttrs struct {
	ParentConsultantID string `json:"parentConsultantId,omitempty"`
	ConsultantID       string `json:"consultantId,omitempty"`
	LegacyConsultant   string `json:"consultant,omitempty"`
	Advisor            string `json:"advisor,omitempty"`
	Region             string `json:"region,omitempty"`
	Market             string `json:"market,omitempty"`
}

// CompanyAttrs is the canonical attribute record for COMPANY nodes.
type CompanyAttrs struct {
	Region      string `json:"region,omitempty"`
	Channel     string `json:"channel,omitempty"`
	SalesRegion string `json:"salesRegion,omitempty"`
	Privacy     string `json:"privacy,omitempty"`
	PCA         string `json:"pca,omitempty"`
	ACA         string `json:"aca,omitempty"`
}

// ProductAttrs is the canonical attribute record for PRODUCT and
// INCUMBENT_PRODUCT nodes. A nil Ratings slice means the producer omitted the
// collection entirely; Repair backfills it with an empty one.
type ProductAttrs struct {
	AssetClass string   `json:"assetClass,omitempty"`
	Universe   string   `json:"universe,omitempty"`
	Ratings    []Rating `json:"ratings"`
}

// Node is the canonical, typed node shape produced by the normalizer. Exactly
// one kind-specific record is non-nil, matching Kind. Extra holds producer
// properties that have no canonical slot.
type Node struct {
	ID   string   `json:"id"`
	Kind NodeKind `json:"kind"`
	Name string   `json:"name"`

	Consultant      *ConsultantAttrs      `json:"consultant,omitempty"`
	FieldConsultant *FieldConsultantAttrs `json:"fieldConsultant,omitempty"`
	Company         *CompanyAttrs         `json:"company,omitempty"`
	Product         *ProductAttrs         `json:"product,omitempty"`

	Extra map[string]any `json:"extra,omitempty"`
}

// Clone returns a deep copy; the reconciliation core never mutates its input.
func (n Node) Clone() Node {
	out := n
	if n.Consultant != nil {
		c := *n.Consultant
		out.Consultant = &c
	}
	if n.FieldConsultant != nil {
		fc := *n.FieldConsultant
		out.FieldConsultant = &fc
	}
	if n.Company != nil {
		co := *n.Company
		out.Company = &co
	}
	if n.Product != nil {
		p := *n.Product
		if n.Product.Ratings != nil {
			p.Ratings = make([]Rating, len(n.Product.Ratings))
			copy(p.Ratings, n.Product.Ratings)
		}
		out.Product = &p
	}
	if n.Extra != nil {
		ex := make(map[string]any, len(n.Extra))
		for k, v := range n.Extra {
			ex[k] = v
		}
		out.Extra = ex
	}
	return out
}

// RawNode is the loose inbound shape from the graph payload. Kind may arrive
// under producer-specific casing and properties under legacy aliases; the
// normalizer is the single translation boundary into Node.
type RawNode struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties"`
}
