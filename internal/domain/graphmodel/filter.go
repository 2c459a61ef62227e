package graphmodel

// DefaultRegion is the region a fresh session starts scoped to. The backend
// contract requires at least one region on every query.
const DefaultRegion = "NAI"

// FilterCriteria is the hierarchical filter selection for a graph query.
// Regions is the top level and must stay non-empty; markets, channels and
// asset classes are scoped beneath the region selection.
type FilterCriteria struct {
	Regions      []string `json:"regions"`
	Markets      []string `json:"markets,omitempty"`
	Channels     []string `json:"channels,omitempty"`
	AssetClasses []string `json:"assetClasses,omitempty"`

	Consultants        []string `json:"consultants,omitempty"`
	FieldConsultants   []string `json:"fieldConsultants,omitempty"`
	Products           []string `json:"products,omitempty"`
	Clients            []string `json:"clients,omitempty"`
	ClientAdvisors     []string `json:"clientAdvisors,omitempty"`
	ConsultantAdvisors []string `json:"consultantAdvisors,omitempty"`
	Ratings            []string `json:"ratings,omitempty"`
	MandateStatuses    []string `json:"mandateStatuses,omitempty"`

	NodeKinds []NodeKind `json:"nodeKinds,omitempty"`

	ShowInactiveNodes bool `json:"showInactiveNodes"`
}

// DefaultFilterCriteria returns the reset state: a single default region and
// every node kind selected.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Regions:   []string{DefaultRegion},
		NodeKinds: AllNodeKinds(),
	}
}

// Clone returns an independent deep copy. FilterService hands out clones so a
// caller can never mutate current/applied state through a returned value.
func (f FilterCriteria) Clone() FilterCriteria {
	out := f
	out.Regions = cloneStrings(f.Regions)
	out.Markets = cloneStrings(f.Markets)
	out.Channels = cloneStrings(f.Channels)
	out.AssetClasses = cloneStrings(f.AssetClasses)
	out.Consultants = cloneStrings(f.Consultants)
	out.FieldConsultants = cloneStrings(f.FieldConsultants)
	out.Products = cloneStrings(f.Products)
	out.Clients = cloneStrings(f.Clients)
	out.ClientAdvisors = cloneStrings(f.ClientAdvisors)
	out.ConsultantAdvisors = cloneStrings(f.ConsultantAdvisors)
	out.Ratings = cloneStrings(f.Ratings)
	out.MandateStatuses = cloneStrings(f.MandateStatuses)
	if f.NodeKinds != nil {
		out.NodeKinds = make([]NodeKind, len(f.NodeKinds))
		copy(out.NodeKinds, f.NodeKinds)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// FilterPatch is a partial update to FilterCriteria. Nil slices mean "leave
// unchanged"; an empty non-nil slice clears the selection.
type FilterPatch struct {
	Regions      []string `json:"regions,omitempty"`
	Markets      []string `json:"markets,omitempty"`
	Channels     []string `json:"channels,omitempty"`
	AssetClasses []string `json:"assetClasses,omitempty"`

	Consultants        []string `json:"consultants,omitempty"`
	FieldConsultants   []string `json:"fieldConsultants,omitempty"`
	Products           []string `json:"products,omitempty"`
	Clients            []string `json:"clients,omitempty"`
	ClientAdvisors     []string `json:"clientAdvisors,omitempty"`
	ConsultantAdvisors []string `json:"consultantAdvisors,omitempty"`
	Ratings            []string `json:"ratings,omitempty"`
	MandateStatuses    []string `json:"mandateStatuses,omitempty"`

	NodeKinds []NodeKind `json:"nodeKinds,omitempty"`

	ShowInactiveNodes *bool `json:"showInactiveNodes,omitempty"`
}

// FilterOptions enumerates the selectable values per filter dimension, as
// served to the UI pickers.
type FilterOptions struct {
	Regions            []string `json:"regions"`
	Markets            []string `json:"markets"`
	Channels           []string `json:"channels"`
	AssetClasses       []string `json:"assetClasses"`
	Consultants        []string `json:"consultants"`
	FieldConsultants   []string `json:"fieldConsultants"`
	Products           []string `json:"products"`
	Clients            []string `json:"clients"`
	ClientAdvisors     []string `json:"clientAdvisors"`
	ConsultantAdvisors []string `json:"consultantAdvisors"`
	Ratings            []string `json:"ratings"`
	MandateStatuses    []string `json:"mandateStatuses"`
}
