package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megahubnet/portal/internal/api"
	"github.com/megahubnet/portal/internal/api/response"
	"github.com/megahubnet/portal/internal/factory"
	"github.com/megahubnet/portal/internal/model"
	"github.com/megahubnet/portal/internal/testutil"
)

// testServer wires the router against a factory.TestApp
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(app.Runner.Stop)

	router := api.NewRouter(api.RouterConfig{
		Logger:       testutil.NopLogger(),
		Engine:       app.Engine,
		Catalog:      app.Catalog,
		ArenaService: app.ArenaService,
		Runner:       app.Runner,
		GameDeps:     app.GameDeps(),
		Hub:          app.Hub,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestGetProfileDefaults(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/profile", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Profile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "Guest_Player", resp.Nickname)
	assert.Equal(t, 1500, resp.Currency)
	assert.Equal(t, 1, resp.Level)
	assert.Empty(t, resp.Inventory)
	assert.Equal(t, "dark", resp.Settings.Theme)
	assert.Equal(t, 50, resp.Settings.Volume)
}

func TestSetNickname(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/v1/profile/nickname", map[string]string{"nickname": "NeonRider"})
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Profile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "NeonRider", resp.Nickname)
}

func TestSetNicknameRejectsEmpty(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/v1/profile/nickname", map[string]string{"nickname": "   "})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "EMPTY_NICKNAME")
}

func TestUpdateSetting(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/v1/profile/settings/volume", map[string]any{"value": 30})
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Settings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.Volume)
}

func TestUpdateSettingRejectsBadValue(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/v1/profile/settings/theme", map[string]any{"value": "neon"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_SETTING_VALUE")
}

func TestUpdateSettingUnknownKey(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/v1/profile/settings/bloom", map[string]any{"value": true})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "UNKNOWN_SETTING")
}

func TestDailyBonus(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/profile/daily-bonus", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.DailyBonus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Granted)
	assert.Equal(t, 1, resp.Streak)

	// Second claim the same day grants nothing
	rr = ts.request(http.MethodPost, "/api/v1/profile/daily-bonus", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Granted)
	assert.Equal(t, 1, resp.Streak)
}

func TestProfileReset(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/v1/profile/nickname", map[string]string{"nickname": "Gone"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/profile/reset", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Profile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Guest_Player", resp.Nickname)
	assert.Equal(t, 1500, resp.Currency)
}

func TestListShopItems(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/shop/items", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var items []response.ShopItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	require.Len(t, items, 5)

	assert.Equal(t, "frame-neon", items[0].ID)
	assert.Equal(t, 500, items[0].Price)
	assert.False(t, items[0].Owned)
}

func TestPurchaseAndEquipAnnotations(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/shop/purchase", map[string]string{"item_id": "glow-blue"})
	assert.Equal(t, http.StatusOK, rr.Code)

	var profile response.Profile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profile))
	assert.Equal(t, 700, profile.Currency)
	assert.Contains(t, profile.Inventory, "glow-blue")
	assert.Equal(t, "glow-blue", profile.Equipped["glow"])

	rr = ts.request(http.MethodGet, "/api/v1/shop/items", nil)
	var items []response.ShopItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	for _, item := range items {
		if item.ID == "glow-blue" {
			assert.True(t, item.Owned)
			assert.True(t, item.Equipped)
		}
	}
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/shop/purchase", map[string]string{"item_id": "frame-gold"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "INSUFFICIENT_FUNDS")
}

func TestPurchaseUnknownItem(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/shop/purchase", map[string]string{"item_id": "hat-of-wonder"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "UNKNOWN_ITEM")
}

func TestEquipNotOwned(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/shop/equip", map[string]string{"item_id": "frame-neon"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_OWNED")
}

func TestListGames(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/games", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var games []response.GameInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
	require.Len(t, games, 4)

	assert.Equal(t, "snake", games[0].ID)
	assert.Equal(t, 100, games[0].TickMs)
	assert.Equal(t, "typing", games[1].ID)
	assert.Equal(t, "WPM", games[1].ScoreLabel)
}

func TestStartInputStopGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games/start", map[string]string{"game_id": "typing"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	var started response.StartedGame
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &started))
	assert.NotEmpty(t, started.RunID)
	assert.Equal(t, 60, started.Width)

	rr = ts.request(http.MethodPost, "/api/v1/games/input", map[string]any{"kind": "rune", "rune": "T"})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/games/stop", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestStartedGameOutlivesRequest(t *testing.T) {
	ts := newTestServer(t)

	// A real server cancels the request context the moment the handler
	// returns; the run must keep ticking regardless.
	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/games/start", "application/json",
		strings.NewReader(`{"game_id":"snake"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The snake starts at (10,10) heading right and hits the wall after
	// roughly a second of 100ms ticks; the finish hand-off then grants
	// the flat experience reward.
	require.Eventually(t, func() bool {
		return ts.app.Engine.Profile().Experience == 100
	}, 5*time.Second, 50*time.Millisecond)

	assert.False(t, ts.app.Runner.Active())
	assert.Equal(t, "", ts.app.Runner.ActiveID())
}

func TestStartUnknownGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games/start", map[string]string{"game_id": "pinball"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "UNKNOWN_GAME")
}

func TestInputWithoutActiveGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games/input", map[string]any{"kind": "direction", "dir": "up"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "NO_ACTIVE_GAME")
}

func TestListArenaRooms(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/arena/rooms", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var rooms []response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rooms))
	require.Len(t, rooms, 3)
	assert.Equal(t, "MH-402", rooms[0].Code)
	assert.Equal(t, "Neural Typers", rooms[0].Name)
}

func TestJoinRoomAndChat(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/arena/join", map[string]string{"code": "MH-402"})
	assert.Equal(t, http.StatusOK, rr.Code)

	var joined response.JoinedRoom
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joined))
	assert.Equal(t, "MH-402", joined.Room.Code)
	assert.Equal(t, []string{"You", "Stranger_42", "NetBot_Beta"}, joined.Roster)

	rr = ts.request(http.MethodPost, "/api/v1/arena/chat", map[string]string{"text": "hello grid"})
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestBotRepliesAfterChatRequest(t *testing.T) {
	ts := newTestServer(t)

	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	lines := make(chan model.ChatLine, 8)
	ts.app.ArenaService.Subscribe(func(ev model.Event) {
		if payload, ok := ev.Payload.(model.ChatPayload); ok {
			lines <- payload.Line
		}
	})

	resp, err := http.Post(srv.URL+"/api/v1/arena/join", "application/json",
		strings.NewReader(`{"code":"MH-402"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/v1/arena/chat", "application/json",
		strings.NewReader(`{"text":"anyone here?"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The reply timer must not die with the request context
	deadline := time.After(5 * time.Second)
	for {
		select {
		case line := <-lines:
			if line.Author == "NetBot_Beta" {
				assert.Equal(t, "Data packet received.", line.Text)
				return
			}
		case <-deadline:
			t.Fatal("bot reply never arrived")
		}
	}
}

func TestCreateRoom(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueString("WX9P")

	rr := ts.request(http.MethodPost, "/api/v1/arena/rooms", nil)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var joined response.JoinedRoom
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joined))
	assert.Equal(t, "MH-WX9P", joined.Room.Code)
	assert.Equal(t, "Private Node", joined.Room.Name)
}

func TestQuickPlay(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueIntn(0)

	// The mock clock resolves the matchmaking delay immediately
	rr := ts.request(http.MethodPost, "/api/v1/arena/quickplay", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var joined response.JoinedRoom
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joined))
	assert.Equal(t, "MH-402", joined.Room.Code)
}

func TestChatWithoutRoom(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/arena/chat", map[string]string{"text": "hello"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_IN_ROOM")
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/arena/join", map[string]string{"code": "MH-402"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/arena/chat", map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "EMPTY_MESSAGE")
}

func TestLeaveRoom(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/arena/join", map[string]string{"code": "MH-402"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/arena/leave", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/arena/chat", map[string]string{"text": "anyone?"})
	assert.Equal(t, http.StatusConflict, rr.Code)
}
