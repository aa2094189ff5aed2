package identity

import (
	"slices"
	"strings"
)

// CrateSet is an ordered, de-duplicated set of crate names. The zero value is
// the empty set.
type CrateSet struct {
	names []CrateName
}

// NewCrateSet builds a set from the supplied names.
func NewCrateSet(names ...CrateName) CrateSet {
	ret := CrateSet{}
	for _, name := range names {
		ret = ret.With(name)
	}
	return ret
}

// With returns a copy of the set including name.
func (s CrateSet) With(name CrateName) CrateSet {
	idx, found := slices.BinarySearch(s.names, name)
	if found {
		return s
	}
	names := make([]CrateName, 0, len(s.names)+1)
	names = append(names, s.names[:idx]...)
	names = append(names, name)
	names = append(names, s.names[idx:]...)
	return CrateSet{names: names}
}

// Contains reports set membership.
func (s CrateSet) Contains(name CrateName) bool {
	_, found := slices.BinarySearch(s.names, name)
	return found
}

// Len returns the number of crates in the set.
func (s CrateSet) Len() int {
	return len(s.names)
}

// Names returns the crates in ascending order.
func (s CrateSet) Names() []CrateName {
	return slices.Clone(s.names)
}

func (s CrateSet) String() string {
	parts := make([]string, len(s.names))
	for i, name := range s.names {
		parts[i] = string(name)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
