package services

import (
	"sync"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
)

// FilterService owns one session's filter state: the in-progress selection
// (current) and the last committed one (applied). The two are always
// independent copies; Apply copies current over applied, and accessors hand
// out clones, so no caller can mutate internal state through a return value.
type FilterService struct {
	mu       sync.Mutex
	defaults graphmodel.FilterCriteria
	current  graphmodel.FilterCriteria
	applied  graphmodel.FilterCriteria
	subs     []func(graphmodel.FilterCriteria)
	log      *logger.Logger
}

func NewFilterService(log *logger.Logger, defaults graphmodel.FilterCriteria) *FilterService {
	if len(defaults.Regions) == 0 {
		defaults.Regions = []string{graphmodel.DefaultRegion}
	}
	if len(defaults.NodeKinds) == 0 {
		defaults.NodeKinds = graphmodel.AllNodeKinds()
	}
	return &FilterService{
		defaults: defaults.Clone(),
		current:  defaults.Clone(),
		applied:  defaults.Clone(),
		log:      log.With("service", "FilterService"),
	}
}

// Current returns a copy of the in-progress selection.
func (s *FilterService) Current() graphmodel.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Applied returns a copy of the last committed selection.
func (s *FilterService) Applied() graphmodel.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied.Clone()
}

// Update merges a partial patch into current. Applied is untouched.
func (s *FilterService) Update(patch graphmodel.FilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mergePatch(&s.current, patch)
	if len(s.current.Regions) == 0 {
		// An empty region selection is meaningless to the backend contract.
		s.current.Regions = cloneOf(s.defaults.Regions)
	}
}

// Apply commits current into applied, notifies subscribers, and returns a
// copy of the committed criteria.
func (s *FilterService) Apply() graphmodel.FilterCriteria {
	s.mu.Lock()
	s.applied = s.current.Clone()
	committed := s.applied.Clone()
	subs := make([]func(graphmodel.FilterCriteria), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(committed.Clone())
	}
	return committed
}

// Clear resets current and applied to defaults. Regions and node-kind
// selections come back as their non-empty defaults, never empty.
func (s *FilterService) Clear() graphmodel.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.defaults.Clone()
	s.applied = s.defaults.Clone()
	return s.applied.Clone()
}

// ChangeRegions swaps the region scope and reinitializes the selections
// scoped beneath a region (markets, channels, asset classes). Other entity
// selections survive a region change.
func (s *FilterService) ChangeRegions(regions []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(regions) == 0 {
		regions = cloneOf(s.defaults.Regions)
	}
	s.current.Regions = cloneOf(regions)
	s.current.Markets = nil
	s.current.Channels = nil
	s.current.AssetClasses = nil
}

// Subscribe registers a callback invoked with every committed selection.
func (s *FilterService) Subscribe(fn func(graphmodel.FilterCriteria)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func mergePatch(dst *graphmodel.FilterCriteria, p graphmodel.FilterPatch) {
	if p.Regions != nil {
		dst.Regions = cloneOf(p.Regions)
	}
	if p.Markets != nil {
		dst.Markets = cloneOf(p.Markets)
	}
	if p.Channels != nil {
		dst.Channels = cloneOf(p.Channels)
	}
	if p.AssetClasses != nil {
		dst.AssetClasses = cloneOf(p.AssetClasses)
	}
	if p.Consultants != nil {
		dst.Consultants = cloneOf(p.Consultants)
	}
	if p.FieldConsultants != nil {
		dst.FieldConsultants = cloneOf(p.FieldConsultants)
	}
	if p.Products != nil {
		dst.Products = cloneOf(p.Products)
	}
	if p.Clients != nil {
		dst.Clients = cloneOf(p.Clients)
	}
	if p.ClientAdvisors != nil {
		dst.ClientAdvisors = cloneOf(p.ClientAdvisors)
	}
	if p.ConsultantAdvisors != nil {
		dst.ConsultantAdvisors = cloneOf(p.ConsultantAdvisors)
	}
	if p.Ratings != nil {
		dst.Ratings = cloneOf(p.Ratings)
	}
	if p.MandateStatuses != nil {
		dst.MandateStatuses = cloneOf(p.MandateStatuses)
	}
	if p.NodeKinds != nil {
		kinds := make([]graphmodel.NodeKind, len(p.NodeKinds))
		copy(kinds, p.NodeKinds)
		dst.NodeKinds = kinds
	}
	if p.ShowInactiveNodes != nil {
		dst.ShowInactiveNodes = *p.ShowInactiveNodes
	}
}

func cloneOf(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
