package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazypower/petd/internal/pet"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)

func TestGetProfileEmpty(t *testing.T) {
	db := openTestDB(t)

	p, err := db.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestLoadOrCreateProfile(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p, err := db.LoadOrCreateProfile(ctx, "Kit", t0)
	require.NoError(t, err)
	assert.Equal(t, "Kit", p.Name)
	assert.Equal(t, pet.DefaultCoins, p.Coins)
	assert.Equal(t, t0, p.LastUpdated)

	// Second call loads the stored row instead of creating a new one.
	again, err := db.LoadOrCreateProfile(ctx, "Other", t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestSaveProfileRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p := pet.NewProfile("Tom", t0)
	p.Coins = 33
	p.XP = 250
	p.Level = pet.LevelForXP(p.XP)
	p.Hunger = 12.345
	p.OwnedItems = []string{"hat_top", "bg_sunset"}
	p.EquippedItems = map[string]string{"hat": "hat_top", "background": "bg_sunset"}
	p.Mood = pet.ComputeMood(p)

	require.NoError(t, db.SaveProfile(ctx, p))

	got, err := db.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSaveProfileReplaces(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p, err := db.LoadOrCreateProfile(ctx, "Tom", t0)
	require.NoError(t, err)

	p.Coins = 7
	require.NoError(t, db.SaveProfile(ctx, p))

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM profile"))
	assert.Equal(t, 1, count)

	got, err := db.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Coins)
}

func TestLastUpdatedKeepsNanoseconds(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p, err := db.LoadOrCreateProfile(ctx, "Tom", t0)
	require.NoError(t, err)

	got, err := db.GetProfile(ctx)
	require.NoError(t, err)
	assert.True(t, got.LastUpdated.Equal(p.LastUpdated))
	assert.False(t, pet.ApplyDecay(got, t0), "reloaded profile should not decay at its own timestamp")
}

func TestProfilePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petd.db")
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)
	p, err := db.LoadOrCreateProfile(ctx, "Tom", t0)
	require.NoError(t, err)
	require.NoError(t, pet.BuyItem(p, pet.DefaultCatalog(), "hat_cap"))
	require.NoError(t, db.SaveProfile(ctx, p))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.GetProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"hat_cap"}, got.OwnedItems)
	assert.Equal(t, "hat_cap", got.EquippedItems["hat"])
}

func TestDecodeRejectsCorruptInventory(t *testing.T) {
	row := profileRow{ID: 1, LastUpdated: t0.Format(time.RFC3339Nano), OwnedItems: "not json", EquippedItems: "{}"}
	_, err := row.decode()
	assert.Error(t, err)

	row = profileRow{ID: 1, LastUpdated: "yesterday", OwnedItems: "[]", EquippedItems: "{}"}
	_, err = row.decode()
	assert.Error(t, err)
}
