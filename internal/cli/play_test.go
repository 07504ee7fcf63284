package cli

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazypower/petd/internal/game"
	"github.com/lazypower/petd/internal/pet"
	"github.com/lazypower/petd/internal/server"
	"github.com/lazypower/petd/internal/store"
)

// startServer runs a real server on an in-memory database and points the
// client commands at it.
func startServer(t *testing.T) {
	t.Helper()
	db, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ts := httptest.NewServer(server.New(db, game.New(db, pet.DefaultCatalog(), "Tom"), "test"))
	t.Cleanup(ts.Close)
	t.Setenv("PETD_URL", ts.URL)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestStatusCommand(t *testing.T) {
	startServer(t)

	out, err := run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Tom (level 1, 0 xp) - 120 coins")
	assert.Contains(t, out, "hygiene   80.0")
}

func TestActCommand(t *testing.T) {
	startServer(t)

	out, err := run(t, "act", "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "Action clean applied.")
	assert.Contains(t, out, "126 coins")
}

func TestActCommandUnknown(t *testing.T) {
	startServer(t)

	_, err := run(t, "act", "dance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestShopBuyEquipCommands(t *testing.T) {
	startServer(t)

	out, err := run(t, "shop")
	require.NoError(t, err)
	assert.Contains(t, out, "hat_cap")
	assert.Contains(t, out, "bg_sunset")

	out, err = run(t, "buy", "hat_cap")
	require.NoError(t, err)
	assert.Contains(t, out, "Item purchased.")
	assert.Contains(t, out, "wearing  hat=hat_cap")

	out, err = run(t, "equip", "hat_cap")
	require.NoError(t, err)
	assert.Contains(t, out, "Item equipped.")
}

func TestMinigameCommand(t *testing.T) {
	startServer(t)

	out, err := run(t, "minigame", "90", "--duration", "20000")
	require.NoError(t, err)
	assert.Contains(t, out, "Mini-game rewards applied.")
	assert.Contains(t, out, "155 coins")

	_, err = run(t, "minigame", "-3")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "petd dev")
}

func TestVersionStringIncludesCommit(t *testing.T) {
	assert.Equal(t, "dev", VersionString())

	Commit = "abc123"
	t.Cleanup(func() { Commit = "unknown" })
	assert.Equal(t, "dev+abc123", VersionString())
}
