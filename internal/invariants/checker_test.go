package invariants

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
	"github.com/MohammedPathariya/NoteNest/internal/store/sqlite"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "inv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewWithDB(db)
}

// hidingStore drops one category from listings to simulate a dangling reference.
type hidingStore struct {
	store.Store
	hide string
}

func (h hidingStore) Categories() store.Categories { return hidingCategories{h.Store.Categories(), h.hide} }

type hidingCategories struct {
	store.Categories
	hide string
}

func (h hidingCategories) List(ctx context.Context, userID string) ([]*model.Category, error) {
	all, err := h.Categories.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, c := range all {
		if c.ID != h.hide {
			out = append(out, c)
		}
	}
	return out, nil
}

func seed(t *testing.T, st store.Store, userID string, withUncategorized bool) (*model.Category, *model.Note) {
	t.Helper()
	ctx := context.Background()
	if withUncategorized {
		_, err := st.Categories().Create(ctx, &model.Category{UserID: userID, Name: model.UncategorizedName, ColorCode: model.UncategorizedColor})
		require.NoError(t, err)
	}
	work, err := st.Categories().Create(ctx, &model.Category{UserID: userID, Name: "Work", ColorCode: model.DefaultCategoryColor})
	require.NoError(t, err)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	n, err := st.Notes().Create(ctx, &model.Note{UserID: userID, CategoryID: work.ID, Content: "plan", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	return work, n
}

func TestCheck_Consistent(t *testing.T) {
	st := newStore(t)
	seed(t, st, "u1", true)

	v, err := Check(context.Background(), st, "u1")
	require.NoError(t, err)
	assert.Empty(t, v)

	v, err = Check(context.Background(), st, "nobody")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestCheck_MissingUncategorized(t *testing.T) {
	st := newStore(t)
	seed(t, st, "u1", false)

	v, err := Check(context.Background(), st, "u1")
	require.NoError(t, err)
	require.Len(t, v, 1)
	assert.Equal(t, RuleUncategorizedPresent, v[0].Rule)
}

func TestCheck_DanglingNote(t *testing.T) {
	st := newStore(t)
	work, n := seed(t, st, "u1", true)

	v, err := Check(context.Background(), hidingStore{Store: st, hide: work.ID}, "u1")
	require.NoError(t, err)
	require.Len(t, v, 1)
	assert.Equal(t, RuleNoteCategoryExists, v[0].Rule)
	assert.Contains(t, v[0].String(), n.ID)
}
