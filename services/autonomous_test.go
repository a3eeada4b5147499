package services

import (
	"context"
	"math/rand"
	"testing"

	"github.com/openleague/footsim/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTacticAutoPickerStoresAKnownFormation(t *testing.T) {
	valid := make(map[string]bool)
	for _, c := range formationChoices {
		valid[c.Formation] = true
	}

	var updates []string
	teamRepo := &fakeTeamRepo{
		UpdateFormationFunc: func(ctx context.Context, exec repositories.SQLExecutor, teamID int, formation string) error {
			assert.Equal(t, 42, teamID)
			updates = append(updates, formation)
			return nil
		},
	}
	picker := NewTacticAutoPicker(teamRepo, rand.New(rand.NewSource(6)))

	for i := 0; i < 50; i++ {
		err := picker.Run(context.Background(), ActionContext{TeamID: 42, Event: "match_day"})
		require.NoError(t, err)
	}

	require.Len(t, updates, 50)
	distinct := make(map[string]bool)
	for _, f := range updates {
		require.Truef(t, valid[f], "unknown formation %q", f)
		distinct[f] = true
	}
	// Weighted pick over fifty rolls should not collapse to one shape.
	assert.Greater(t, len(distinct), 1)
}

func TestNoopActionDoesNothing(t *testing.T) {
	a := NewNoopAction("transfer_review")
	assert.Equal(t, "transfer_review", a.Name())
	assert.NoError(t, a.Run(context.Background(), ActionContext{TeamID: 1}))
}
