// Package roster holds player profiles eligible to join a match.
package roster

import "context"

// Gender values accepted on a player profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Player is a registered profile. A profile is created at signup with
// the identity fields only; PIN and gender arrive later through
// profile completion, and both are required before the player can be
// placed on a roster.
type Player struct {
	ID     string
	AuthID string
	Name   string
	Email  string
	Gender Gender
	PIN    string
}

// Eligible reports whether the profile is complete enough to play.
func (p Player) Eligible() bool {
	return p.PIN != "" && p.Gender.Valid()
}

// Repository provides access to player profiles.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	ListByIDs(ctx context.Context, ids []string) ([]Player, error)
	GetByAuthID(ctx context.Context, authID string) (Player, bool, error)
	Upsert(ctx context.Context, player Player) error
}
