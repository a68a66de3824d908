package repository

import (
	"context"
	"fmt"
	"testing"

	"CricketSync/internal/model"
	"CricketSync/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.NewDB(t)
	require.NoError(t, NewSchemaManager(db, testutil.NewLogger()).EnsureSchema(context.Background()))
	return db
}

func rawMatch(n int, teamA, teamB, venue string) model.RawMatch {
	return model.RawMatch{
		Title:       fmt.Sprintf("%s vs %s", teamA, teamB),
		ShortTitle:  "M" + fmt.Sprint(n),
		Subtitle:    fmt.Sprintf("Match %d", n),
		MatchNumber: model.FlexString(fmt.Sprint(n)),
		DateStart:   "2024-01-15 09:30:00",
		DateEnd:     "2024-01-15 18:00:00",
		TeamA:       model.RawTeam{Name: teamA, ShortName: teamA[:3], LogoURL: "https://img/" + teamA},
		TeamB:       model.RawTeam{Name: teamB, ShortName: teamB[:3], LogoURL: "https://img/" + teamB},
		Venue:       model.RawVenue{Name: venue, Location: venue + " city", Country: "X", Timezone: "+00:00"},
	}
}

func count(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}
