package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mauv0809/urban-bracket/internal/admission"
	"github.com/mauv0809/urban-bracket/internal/arena"
	"github.com/mauv0809/urban-bracket/internal/bracket"
	"github.com/mauv0809/urban-bracket/internal/config"
	"github.com/mauv0809/urban-bracket/internal/database"
	"github.com/mauv0809/urban-bracket/internal/metrics"
	"github.com/mauv0809/urban-bracket/internal/notifier"
	"github.com/mauv0809/urban-bracket/internal/pubsub"
	"github.com/mauv0809/urban-bracket/internal/queue"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, notifierMock notifier.Notifier) (*Server, arena.ArenaStore, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := arena.New(db)
	brackets := bracket.New(db)
	require.NoError(t, brackets.Upsert(&bracket.Bracket{
		ID:    "B1",
		Specs: bracket.Specs{StartRating: 1000, TeamSize: 5},
	}))
	require.NoError(t, brackets.Upsert(&bracket.Bracket{
		ID:        "B2",
		Whitelist: bracket.Gate{Active: true, Users: []string{"vip"}},
		Specs:     bracket.Specs{StartRating: 1200, TeamSize: 2},
	}))

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	pubsubMock := pubsub.NewMock("TEST")
	queueSvc := queue.New(store, admission.New(brackets, store), metricsSvc, pubsubMock, false)
	cfg := config.Config{}

	server := NewServer(store, brackets, queueSvc, metricsSvc, metricsHandler, cfg, notifierMock, pubsubMock)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
	}
	return server, store, teardown
}

func postJSON(t *testing.T, server *Server, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", target, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestUsersHandler_UpsertAndList(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := postJSON(t, server, "/users", map[string]string{"userID": "u1", "name": "User One"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = postJSON(t, server, "/users", map[string]string{"userID": "u1", "name": "Renamed One"})
	assert.Equal(t, http.StatusOK, rr.Code)

	req, err := http.NewRequest("GET", "/users", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var users []arena.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "Renamed One", users[0].Name)
}

func TestUsersHandler_MissingFields(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := postJSON(t, server, "/users", map[string]string{"userID": "u1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetUserHandler(t *testing.T) {
	server, store, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	_, err := store.UpsertUser("u1", "User One")
	require.NoError(t, err)
	rr := postJSON(t, server, "/queue/join", map[string]string{"userID": "u1", "bracketID": "B1"})
	require.Equal(t, http.StatusCreated, rr.Code)

	req, err := http.NewRequest("GET", "/user?userID=u1", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var profile arena.UserProfile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profile))
	assert.Equal(t, "u1", profile.ID)
	require.Len(t, profile.Players, 1)
	assert.Equal(t, []float64{1000}, profile.Players[0].Ratings)
	require.Len(t, profile.Queues, 1)
	assert.True(t, profile.Queues[0].Active)
}

func TestGetUserHandler_Missing(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/user?userID=ghost", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestJoinQueueHandler_StatusMapping(t *testing.T) {
	server, store, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	_, err := store.UpsertUser("u1", "User One")
	require.NoError(t, err)

	// Unknown bracket.
	rr := postJSON(t, server, "/queue/join", map[string]string{"userID": "u1", "bracketID": "B9"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Whitelisted bracket, user not on the list.
	rr = postJSON(t, server, "/queue/join", map[string]string{"userID": "u1", "bracketID": "B2"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// First join works, second conflicts.
	rr = postJSON(t, server, "/queue/join", map[string]string{"userID": "u1", "bracketID": "B1"})
	assert.Equal(t, http.StatusCreated, rr.Code)
	var result queue.JoinResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.NotEmpty(t, result.EntryID)

	rr = postJSON(t, server, "/queue/join", map[string]string{"userID": "u1", "bracketID": "B1"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Missing fields.
	rr = postJSON(t, server, "/queue/join", map[string]string{"userID": "u1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLeaveQueueHandler(t *testing.T) {
	server, store, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	_, err := store.UpsertUser("u1", "User One")
	require.NoError(t, err)

	rr := postJSON(t, server, "/queue/leave", map[string]string{"userID": "u1", "bracketID": "B1"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = postJSON(t, server, "/queue/join", map[string]string{"userID": "u1", "bracketID": "B1"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = postJSON(t, server, "/queue/leave", map[string]string{"userID": "u1", "bracketID": "B1"})
	assert.Equal(t, http.StatusOK, rr.Code)
	var result queue.LeaveResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, int64(1), result.Deactivated)
}

func TestListBracketsHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/brackets", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var brackets []bracket.Bracket
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &brackets))
	assert.Len(t, brackets, 2)
}

func TestClearStoreHandler_SingleUser(t *testing.T) {
	server, store, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	_, err := store.UpsertUser("u1", "User One")
	require.NoError(t, err)
	_, err = store.UpsertUser("u2", "User Two")
	require.NoError(t, err)
	rr := postJSON(t, server, "/queue/join", map[string]string{"userID": "u1", "bracketID": "B1"})
	require.Equal(t, http.StatusCreated, rr.Code)

	req, err := http.NewRequest("GET", "/clear?userID=u1", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Cleared user u1 from store!", rr.Body.String())

	user, err := store.GetUser("u1")
	require.NoError(t, err)
	assert.Nil(t, user)
	other, err := store.GetUser("u2")
	require.NoError(t, err)
	assert.NotNil(t, other)
}

// pushRequestBody wraps an event the way a Pub/Sub push subscription
// delivers it: msgpack payload, base64, outer JSON envelope.
func pushRequestBody(t *testing.T, event pubsub.QueueEvent) *strings.Reader {
	t.Helper()

	raw, err := msgpack.Marshal(event)
	require.NoError(t, err)
	wrapper := fmt.Sprintf(`{"subscription":"test-sub","message":{"data":"%s"}}`, base64.StdEncoding.EncodeToString(raw))
	return strings.NewReader(wrapper)
}

func TestNotifyQueueJoinedHandler(t *testing.T) {
	notifierMock := notifier.NewMock()
	server, _, teardown := setupTestServer(t, notifierMock)
	defer teardown()

	event := pubsub.QueueEvent{UserID: "u1", UserName: "User One", BracketID: "B1", EntryID: "e1", PlayerID: "p1"}
	req, err := http.NewRequest("POST", "/notify-queue-joined", pushRequestBody(t, event))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, notifierMock.QueueJoinedCalls, 1)
	assert.Equal(t, "User One", notifierMock.QueueJoinedCalls[0].UserName)
}

func TestNotifyQueueLeftHandler_InvalidJSON(t *testing.T) {
	server, _, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("POST", "/notify-queue-left", strings.NewReader("not json"))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
