package render

import (
	"fmt"
	"strings"
)

// Canonical kernel section names, in emission order.
const (
	SectionSignature   = "signature"
	SectionConstants   = "constants"
	SectionUnpack      = "unpack"
	SectionCoupling    = "coupling"
	SectionDerivatives = "derivatives"
	SectionUpdate      = "update"
	SectionTrace       = "trace"
)

// SectionOrder lists every section in the order the full kernel emits them.
var SectionOrder = []string{
	SectionSignature,
	SectionConstants,
	SectionUnpack,
	SectionCoupling,
	SectionDerivatives,
	SectionUpdate,
	SectionTrace,
}

// SectionSet resolves a requested subset of kernel sections. The zero value
// includes everything.
type SectionSet struct {
	include map[string]struct{}
}

// NewSectionSet validates the requested names against the canonical list.
// An empty request yields the all-inclusive set.
func NewSectionSet(names []string) (SectionSet, error) {
	if len(names) == 0 {
		return SectionSet{}, nil
	}

	known := make(map[string]struct{}, len(SectionOrder))
	for _, name := range SectionOrder {
		known[name] = struct{}{}
	}

	include := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(strings.ToLower(raw))
		if name == "" {
			continue
		}
		if _, ok := known[name]; !ok {
			return SectionSet{}, fmt.Errorf("render: unknown kernel section %q", raw)
		}
		include[name] = struct{}{}
	}
	if len(include) == 0 {
		return SectionSet{}, nil
	}
	return SectionSet{include: include}, nil
}

// All reports whether every section is included.
func (s SectionSet) All() bool {
	return len(s.include) == 0
}

// Has reports whether the named section is included.
func (s SectionSet) Has(name string) bool {
	if s.All() {
		return true
	}
	_, ok := s.include[name]
	return ok
}
