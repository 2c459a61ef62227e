// Package hierarchy infers the owning consultant for a field consultant when
// the explicit link is missing or inconsistently named. Resolution is an
// ordered list of pure string rules; the first rule that yields an identifier
// wins. Whether the identifier points at a real consultant node is checked by
// the integrity validator, not here.
package hierarchy

import (
	"regexp"
	"strings"

	"github.com/yungbote/advisorgraph-backend/internal/domain/graphmodel"
)

// Method identifies which rule produced a parent id.
type Method string

const (
	MethodExplicitParent Method = "explicit_parent"
	MethodConsultantID   Method = "consultant_id"
	MethodLegacyField    Method = "legacy_field"
	MethodIDPattern      Method = "id_pattern"
	MethodAdvisor        Method = "advisor"
	MethodNameRegion     Method = "name_region"
	MethodSelf           Method = "self"
)

// Link is the derived parent/child relation for one field consultant. It is
// recomputed per snapshot and never persisted.
type Link struct {
	ChildID  string `json:"childId"`
	ParentID string `json:"parentId"`
	Method   Method `json:"method"`
}

type rule struct {
	method Method
	apply  func(child graphmodel.Node) string
}

// rules in precedence order. Each either yields a candidate id or returns ""
// to pass to the next rule.
var rules = []rule{
	{MethodExplicitParent, fromExplicitParent},
	{MethodConsultantID, fromConsultantID},
	{MethodLegacyField, fromLegacyField},
	{MethodIDPattern, fromIDPattern},
	{MethodAdvisor, fromAdvisor},
	{MethodNameRegion, fromNameRegion},
}

// ResolveParent resolves the owning consultant id for a field consultant
// node. Total: always returns a non-empty ParentID for a child with an id,
// degrading to the child's own id when every rule passes (the validator
// reports that case as unresolved).
func ResolveParent(child graphmodel.Node) Link {
	for _, r := range rules {
		if id := r.apply(child); id != "" {
			return Link{ChildID: child.ID, ParentID: id, Method: r.method}
		}
	}
	return Link{ChildID: child.ID, ParentID: child.ID, Method: MethodSelf}
}

// ResolveAll resolves every field consultant in the node list, keyed by child
// id. Deterministic for a fixed input.
func ResolveAll(nodes []graphmodel.Node) map[string]Link {
	out := map[string]Link{}
	for _, n := range nodes {
		if n.Kind != graphmodel.KindFieldConsultant {
			continue
		}
		out[n.ID] = ResolveParent(n)
	}
	return out
}

func fromExplicitParent(child graphmodel.Node) string {
	if child.FieldConsultant == nil {
		return ""
	}
	return strings.TrimSpace(child.FieldConsultant.ParentConsultantID)
}

func fromConsultantID(child graphmodel.Node) string {
	if child.FieldConsultant == nil {
		return ""
	}
	return strings.TrimSpace(child.FieldConsultant.ConsultantID)
}

func fromLegacyField(child graphmodel.Node) string {
	if child.FieldConsultant == nil {
		return ""
	}
	return strings.TrimSpace(child.FieldConsultant.LegacyConsultant)
}

// markerRewrites maps child-marker substrings to their consultant-side
// counterparts, in match-precedence order ("_F" before the broader "FIELD").
var markerRewrites = []struct{ from, to string }{
	{"_F", "_C"},
	{"FIELD_CONSULTANT", "CONSULTANT"},
	{"FIELD", "CONSULTANT"},
}

var trailingNumberSuffix = regexp.MustCompile(`^(.*)_(\d+)$`)

func fromIDPattern(child graphmodel.Node) string {
	id := strings.TrimSpace(child.ID)
	if id == "" {
		return ""
	}
	for _, m := range markerRewrites {
		if strings.Contains(id, m.from) {
			return strings.Replace(id, m.from, m.to, 1)
		}
	}
	if m := trailingNumberSuffix.FindStringSubmatch(id); m != nil {
		return m[1] + "_C" + m[2]
	}
	return ""
}

func fromAdvisor(child graphmodel.Node) string {
	if child.FieldConsultant == nil {
		return ""
	}
	return strings.TrimSpace(child.FieldConsultant.Advisor)
}

var (
	nameRegionPattern = regexp.MustCompile(`\(([A-Za-z0-9_]+)\)\s*$`)
	trailingDigits    = regexp.MustCompile(`(\d+)\s*$`)
)

// fromNameRegion synthesizes <REGION>_C<digits> from a display name like
// "Jane Doe (EMEA)" plus any trailing digits of the child id, defaulting the
// digits to 1.
func fromNameRegion(child graphmodel.Node) string {
	m := nameRegionPattern.FindStringSubmatch(child.Name)
	if m == nil {
		return ""
	}
	digits := "1"
	if d := trailingDigits.FindStringSubmatch(child.ID); d != nil {
		digits = d[1]
	}
	return m[1] + "_C" + digits
}
