package memory

import (
	"time"

	"github.com/aryasetia/dropshot/internal/domain/match"
	"github.com/aryasetia/dropshot/internal/domain/roster"
)

const MatchIDSaturdaySocial = "match-sat-social"

func SeedPlayers() []roster.Player {
	return []roster.Player{
		{ID: "ply-01", AuthID: "auth-01", Name: "Adi Nugroho", Email: "adi@example.com", Gender: roster.GenderMale, PIN: "4821"},
		{ID: "ply-02", AuthID: "auth-02", Name: "Bima Prasetyo", Email: "bima@example.com", Gender: roster.GenderMale, PIN: "1930"},
		{ID: "ply-03", AuthID: "auth-03", Name: "Citra Lestari", Email: "citra@example.com", Gender: roster.GenderFemale, PIN: "7754"},
		{ID: "ply-04", AuthID: "auth-04", Name: "Dewi Anggraini", Email: "dewi@example.com", Gender: roster.GenderFemale, PIN: "3406"},
		{ID: "ply-05", AuthID: "auth-05", Name: "Eko Saputra", Email: "eko@example.com", Gender: roster.GenderMale, PIN: "9012"},
		{ID: "ply-06", AuthID: "auth-06", Name: "Fitri Handayani", Email: "fitri@example.com", Gender: roster.GenderFemale, PIN: "5567"},
		{ID: "ply-07", AuthID: "auth-07", Name: "Gilang Ramadhan", Email: "gilang@example.com", Gender: roster.GenderMale, PIN: "2248"},
		{ID: "ply-08", AuthID: "auth-08", Name: "Hana Wijaya", Email: "hana@example.com", Gender: roster.GenderFemale, PIN: "8183"},
		// Signed up but never completed the profile form.
		{ID: "ply-09", AuthID: "auth-09", Name: "Indra Kurnia", Email: "indra@example.com"},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:          MatchIDSaturdaySocial,
			ScheduledAt: time.Date(2026, time.September, 5, 9, 0, 0, 0, time.UTC),
			Location:    "GOR Candra Wijaya, Court Block A",
			CourtCount:  2,
			Type:        match.TypeRoundRobin,
			SubType:     match.SubTypeMixedGender,
			CreatedBy:   "auth-01",
			Status:      match.StatusScheduled,
			CreatedAt:   time.Date(2026, time.August, 30, 20, 15, 0, 0, time.UTC),
		},
	}
}
