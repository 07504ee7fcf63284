package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	t.Setenv("PETD_URL", srv.URL+"/")
	return NewClient()
}

func TestNewClientDefaultURL(t *testing.T) {
	t.Setenv("PETD_URL", "")
	assert.Equal(t, "http://127.0.0.1:8000", NewClient().URL())
}

func TestProfile(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/profile", r.URL.Path)
		w.Write([]byte(`{"id":1,"name":"Tom","coins":120,"hunger":75,"last_updated":"2026-03-01T12:00:00Z"}`))
	})

	p, err := c.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Tom", p.Name)
	assert.Equal(t, 120, p.Coins)
	assert.Equal(t, 75.0, p.Hunger)
}

func TestShop(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"id":"hat_cap","name":"Sky Cap","type":"hat","price":50}]}`))
	})

	items, err := c.Shop()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "hat_cap", items[0].ID)
}

func TestAct(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/actions/feed", r.URL.Path)
		w.Write([]byte(`{"profile":{"hunger":100},"message":"Action feed applied."}`))
	})

	res, err := c.Act("feed")
	require.NoError(t, err)
	assert.Equal(t, "Action feed applied.", res.Message)
	assert.Equal(t, 100.0, res.Profile.Hunger)
}

func TestBuySendsItemID(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shop/buy", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hat_cap", body["item_id"])
		w.Write([]byte(`{"profile":{"coins":70},"message":"Item purchased."}`))
	})

	res, err := c.Buy("hat_cap")
	require.NoError(t, err)
	assert.Equal(t, 70, res.Profile.Coins)
}

func TestMinigameNilDuration(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 42.0, body["score"])
		assert.Nil(t, body["duration_ms"])
		w.Write([]byte(`{"profile":{},"message":"Mini-game rewards applied."}`))
	})

	_, err := c.Minigame(42, nil)
	require.NoError(t, err)
}

func TestErrorBodyIsSurfaced(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"insufficient funds: bg_sunset costs 120, have 70"}`))
	})

	_, err := c.Equip("bg_sunset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestHealthy(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	assert.True(t, c.Healthy())

	t.Setenv("PETD_URL", "http://127.0.0.1:1")
	assert.False(t, NewClient().Healthy())
}
