// Package idmap maintains the canonical-id to generated-id relation built
// after validation and rewrites document references against it.
package idmap

import (
	"fmt"
	"regexp"
	"strings"
)

// itemRefPattern matches a self-closing XML element carrying an
// identifier attribute, e.g. <assessmentItemRef identifier="q1"
// href="q1.xml"/>. Rewriting works on the matched element text, so the
// href and any other attribute embedding the canonical id are remapped
// together with the identifier.
//
// TODO: parse the document tree and rewrite attribute nodes directly;
// text-level matching mishandles escaped quotes inside attribute values.
var itemRefPattern = regexp.MustCompile(`<[A-Za-z][\w.-]*\b[^>]*\bidentifier="([^"]+)"[^>]*/>`)

// Mapper is the one-to-many canonical-id to generated-id relation. It is
// populated from validated candidates only, then frozen before assembly;
// a frozen mapper rejects further records.
type Mapper struct {
	order  []string
	lists  map[string][]string
	frozen bool
}

// New creates an empty Mapper.
func New() *Mapper {
	return &Mapper{lists: make(map[string][]string)}
}

// Record appends generatedID to the ordered list for canonicalID.
func (m *Mapper) Record(canonicalID, generatedID string) error {
	if m.frozen {
		return fmt.Errorf("idmap: record %s after freeze", canonicalID)
	}
	if _, ok := m.lists[canonicalID]; !ok {
		m.order = append(m.order, canonicalID)
	}
	m.lists[canonicalID] = append(m.lists[canonicalID], generatedID)
	return nil
}

// Freeze makes the mapper read-only.
func (m *Mapper) Freeze() {
	m.frozen = true
}

// Resolve returns the ordered generated ids for canonicalID, or nil.
func (m *Mapper) Resolve(canonicalID string) []string {
	return m.lists[canonicalID]
}

// Len returns the number of canonical ids recorded.
func (m *Mapper) Len() int {
	return len(m.lists)
}

// CanonicalIDs returns the canonical ids in first-recorded order.
func (m *Mapper) CanonicalIDs() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// RewriteReferences expands every mapped reference element in doc into
// the full list of generated-id reference elements, preserving the
// original relative order. Elements whose identifier is not in the map
// are left untouched. A canonical id referenced twice expands twice.
func (m *Mapper) RewriteReferences(doc string) string {
	return itemRefPattern.ReplaceAllStringFunc(doc, func(ref string) string {
		sub := itemRefPattern.FindStringSubmatch(ref)
		canonical := sub[1]

		generated := m.lists[canonical]
		if len(generated) == 0 {
			return ref
		}

		expanded := make([]string, len(generated))
		for i, gid := range generated {
			expanded[i] = strings.ReplaceAll(ref, canonical, gid)
		}
		return strings.Join(expanded, "")
	})
}
