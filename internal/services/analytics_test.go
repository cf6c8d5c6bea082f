package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammedPathariya/NoteNest/internal/model"
)

func TestAnalytics_ActiveOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustCategory(t, "u1", "Alpha")
	b := env.mustCategory(t, "u1", "Beta")
	env.mustCategory(t, "u1", "Gamma")

	a1 := env.mustNote(t, "u1", a.ID, "a one")
	env.mustNote(t, "u1", a.ID, "a two")
	env.mustNote(t, "u1", a.ID, "a three")
	b1 := env.mustNote(t, "u1", b.ID, "b one")

	counts, err := env.analytics.ActiveCountsByCategory(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []model.CategoryCount{
		{CategoryID: a.ID, CategoryName: "Alpha", ColorCode: a.ColorCode, NoteCount: 3},
		{CategoryID: b.ID, CategoryName: "Beta", ColorCode: b.ColorCode, NoteCount: 1},
	}, counts)

	_, err = env.notes.Archive(ctx, a1.ID, "u1")
	require.NoError(t, err)
	_, err = env.notes.Archive(ctx, b1.ID, "u1")
	require.NoError(t, err)

	counts, err = env.analytics.ActiveCountsByCategory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, "Alpha", counts[0].CategoryName)
	assert.EqualValues(t, 2, counts[0].NoteCount)
}

func TestAnalytics_TiesSortedByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	z := env.mustCategory(t, "u1", "Zeta")
	m := env.mustCategory(t, "u1", "Mu")
	env.mustNote(t, "u1", z.ID, "z")
	env.mustNote(t, "u1", m.ID, "m")

	counts, err := env.analytics.ActiveCountsByCategory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "Mu", counts[0].CategoryName)
	assert.Equal(t, "Zeta", counts[1].CategoryName)
}

func TestAnalytics_EmptyUser(t *testing.T) {
	env := newTestEnv(t)
	counts, err := env.analytics.ActiveCountsByCategory(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, counts)

	_, err = env.analytics.ActiveCountsByCategory(context.Background(), "")
	assert.ErrorIs(t, err, model.ErrValidation)
}
