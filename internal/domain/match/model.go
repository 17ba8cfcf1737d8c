// Package match holds the scheduling metadata for a playing session.
package match

import (
	"context"
	"time"
)

// Type selects how teams are formed over the life of a match.
type Type string

const (
	// TypeRoundRobin rebuilds opponents every round from fixed teams.
	TypeRoundRobin Type = "round_robin"
	// TypeSetPartners plays with organizer-chosen fixed partnerships.
	TypeSetPartners Type = "set_partners"
)

// SubType selects the team composition policy.
type SubType string

const (
	SubTypeMixedGender SubType = "mixed_gender"
	SubTypeSameGender  SubType = "same_gender"
	SubTypeRandom      SubType = "random"
	SubTypeSelect      SubType = "select"
)

// Status tracks the match through its lifecycle.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
)

// Match is an organized playing session.
type Match struct {
	ID          string
	ScheduledAt time.Time
	Location    string
	CourtCount  int
	Type        Type
	SubType     SubType
	CreatedBy   string
	Status      Status
	CreatedAt   time.Time
}

// ValidType reports whether t is a known match type.
func ValidType(t Type) bool {
	return t == TypeRoundRobin || t == TypeSetPartners
}

// ValidSubType reports whether s is a known composition policy.
func ValidSubType(s SubType) bool {
	switch s {
	case SubTypeMixedGender, SubTypeSameGender, SubTypeRandom, SubTypeSelect:
		return true
	}
	return false
}

// AllowedPairing reports whether the type/subType combination can be
// scheduled. Hand-picked partnerships only make sense when partners
// stay fixed.
func AllowedPairing(t Type, s SubType) bool {
	if !ValidType(t) || !ValidSubType(s) {
		return false
	}
	if s == SubTypeSelect {
		return t == TypeSetPartners
	}
	return true
}

// Repository provides access to match records.
type Repository interface {
	Create(ctx context.Context, m Match) error
	GetByID(ctx context.Context, id string) (Match, bool, error)
	List(ctx context.Context) ([]Match, error)
	ListByCreator(ctx context.Context, creatorID string) ([]Match, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
