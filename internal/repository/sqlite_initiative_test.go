package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitiativeRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteInitiativeRepo(db)
	ctx := context.Background()

	ini := testutil.NewTestInitiative("Checkout", testutil.WithStage("discovery"))
	require.NoError(t, repo.Create(ctx, ini))

	fetched, err := repo.GetByID(ctx, ini.ID)
	require.NoError(t, err)
	assert.Equal(t, ini.ID, fetched.ID)
	assert.Equal(t, "Checkout", fetched.Name)
	assert.Equal(t, "discovery", fetched.Stage)
	assert.Equal(t, domain.InitiativeActive, fetched.Status)
	assert.Nil(t, fetched.ArchivedAt)
	assert.True(t, ini.CreatedAt.Equal(fetched.CreatedAt))
}

func TestInitiativeRepo_GetByShortID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteInitiativeRepo(db)
	ctx := context.Background()

	ini := testutil.NewTestInitiative("Payments", testutil.WithShortID("PAY01"))
	require.NoError(t, repo.Create(ctx, ini))

	// Case-insensitive lookup.
	fetched, err := repo.GetByShortID(ctx, "pay01")
	require.NoError(t, err)
	assert.Equal(t, ini.ID, fetched.ID)
	assert.Equal(t, "PAY01", fetched.ShortID)
}

func TestInitiativeRepo_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteInitiativeRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "initiative not found")

	assert.ErrorIs(t, repo.Archive(ctx, "nonexistent"), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "nonexistent"), ErrNotFound)
}

func TestInitiativeRepo_ShortIDUnique(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteInitiativeRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestInitiative("A", testutil.WithShortID("CRM01"))))
	assert.Error(t, repo.Create(ctx, testutil.NewTestInitiative("B", testutil.WithShortID("CRM01"))))
}

func TestInitiativeRepo_ArchiveUnarchiveList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteInitiativeRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	first := testutil.NewTestInitiative("First", testutil.WithCreatedAt(base))
	second := testutil.NewTestInitiative("Second", testutil.WithCreatedAt(base.Add(time.Hour)))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	require.NoError(t, repo.Archive(ctx, first.ID))

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, domain.InitiativeArchived, all[0].Status)
	assert.NotNil(t, all[0].ArchivedAt)

	require.NoError(t, repo.Unarchive(ctx, first.ID))
	fetched, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InitiativeActive, fetched.Status)
	assert.Nil(t, fetched.ArchivedAt)
}

func TestInitiativeRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteInitiativeRepo(db)
	ctx := context.Background()

	ini := testutil.NewTestInitiative("Old")
	require.NoError(t, repo.Create(ctx, ini))

	ini.Name = "New"
	ini.Stage = "delivery"
	ini.Status = domain.InitiativePaused
	require.NoError(t, repo.Update(ctx, ini))

	fetched, err := repo.GetByID(ctx, ini.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", fetched.Name)
	assert.Equal(t, "delivery", fetched.Stage)
	assert.Equal(t, domain.InitiativePaused, fetched.Status)
}
