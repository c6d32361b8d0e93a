package domain

import "strings"

type CategoryKind string

const (
	KindMaintenance CategoryKind = "maintenance"
	KindGeneral     CategoryKind = "general"
	KindTrip        CategoryKind = "trip"
)

// Requirement is the set of foreign keys an expense of a given kind must carry.
type Requirement struct {
	VehicleRequired bool
	TripRequired    bool
	// VehicleFromTrip copies the trip's vehicle onto the expense at write time.
	VehicleFromTrip bool
}

var kindRequirements = map[CategoryKind]Requirement{
	KindMaintenance: {VehicleRequired: true},
	KindTrip:        {TripRequired: true, VehicleFromTrip: true},
	KindGeneral:     {},
}

// RequirementFor returns the rule for a known kind.
func RequirementFor(kind CategoryKind) (Requirement, bool) {
	r, ok := kindRequirements[kind]
	return r, ok
}

// KindSet is the configured subset of category kinds accepted on write.
type KindSet map[CategoryKind]bool

// NewKindSet keeps only known kinds. An empty result falls back to all of them.
func NewKindSet(raw []string) KindSet {
	set := KindSet{}
	for _, k := range raw {
		kind := CategoryKind(strings.ToLower(strings.TrimSpace(k)))
		if _, ok := kindRequirements[kind]; ok {
			set[kind] = true
		}
	}
	if len(set) == 0 {
		return DefaultKinds()
	}
	return set
}

func DefaultKinds() KindSet {
	return KindSet{KindMaintenance: true, KindGeneral: true, KindTrip: true}
}

func (s KindSet) Enabled(kind CategoryKind) bool {
	if s == nil {
		_, ok := kindRequirements[kind]
		return ok
	}
	return s[kind]
}

// ParseKind validates against the enabled set.
func (s KindSet) ParseKind(raw string) (CategoryKind, bool) {
	kind := CategoryKind(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Enabled(kind) {
		return "", false
	}
	return kind, true
}

// Names lists enabled kinds in a stable order.
func (s KindSet) Names() []string {
	out := []string{}
	for _, k := range []CategoryKind{KindMaintenance, KindGeneral, KindTrip} {
		if s.Enabled(k) {
			out = append(out, string(k))
		}
	}
	return out
}
