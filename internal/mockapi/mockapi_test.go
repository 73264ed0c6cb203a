package mockapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/evlive/admin-console/internal/models"
	"github.com/evlive/admin-console/pkg/config"
)

func testRouter(t *testing.T) (*gin.Engine, *Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := NewSeededStore(42)
	cfg := &config.Config{}
	router := Router(store, cfg, zap.NewNop())
	return router, store
}

func signIn(t *testing.T, router *gin.Engine) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": seedAdminEmail, "password": seedAdminPassword})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/auth/login", bytes.NewReader(body))
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var decoded struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	require.NotEmpty(t, decoded.Token)
	return decoded.Token
}

func do(router *gin.Engine, token, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequiresBearerToken(t *testing.T) {
	router, _ := testRouter(t)
	w := do(router, "", http.MethodGet, "/admin/events", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, "not-a-token", http.MethodGet, "/admin/events", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := testRouter(t)
	w := do(router, "", http.MethodPost, "/admin/auth/login", map[string]string{"email": seedAdminEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListEventsEnvelope(t *testing.T) {
	router, _ := testRouter(t)
	token := signIn(t, router)

	w := do(router, token, http.MethodGet, "/admin/events?page=1&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Message     string         `json:"message"`
		Docs        []models.Event `json:"docs"`
		TotalDocs   int            `json:"totalDocs"`
		TotalPages  int            `json:"totalPages"`
		CurrentPage int            `json:"currentPage"`
		Limit       int            `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Docs, 5)
	assert.Equal(t, 30, envelope.TotalDocs)
	assert.Equal(t, 6, envelope.TotalPages)
	assert.Equal(t, 1, envelope.CurrentPage)
	assert.Equal(t, 5, envelope.Limit)
}

func TestListEventsFilterByAdminStatus(t *testing.T) {
	router, _ := testRouter(t)
	token := signIn(t, router)

	w := do(router, token, http.MethodGet, "/admin/events?adminStatus=Pending&limit=50", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Docs []models.Event `json:"docs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Docs)
	for _, event := range envelope.Docs {
		assert.Equal(t, models.AdminPending, event.AdminStatus)
	}
}

func TestEmptyResultStillReportsOnePage(t *testing.T) {
	router, _ := testRouter(t)
	token := signIn(t, router)

	w := do(router, token, http.MethodGet, "/admin/events?search=no-such-event-anywhere", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Docs        []models.Event `json:"docs"`
		TotalDocs   int            `json:"totalDocs"`
		TotalPages  int            `json:"totalPages"`
		CurrentPage int            `json:"currentPage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Docs)
	assert.Equal(t, 0, envelope.TotalDocs)
	assert.Equal(t, 1, envelope.TotalPages)
	assert.Equal(t, 1, envelope.CurrentPage)
}

func pendingEventID(t *testing.T, store *Store) string {
	t.Helper()
	docs, _ := store.ListEvents(query{page: 1, limit: 100, filters: map[string]string{"adminStatus": "Pending"}})
	require.NotEmpty(t, docs)
	return docs[0].ID
}

func TestRejectRequiresReason(t *testing.T) {
	router, store := testRouter(t)
	token := signIn(t, router)
	id := pendingEventID(t, store)

	w := do(router, token, http.MethodPost, "/admin/events/"+id+"/reject", map[string]string{"reason": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var decoded struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.Equal(t, "a rejection reason is required", decoded.Message)
}

func TestApproveThenRejectConflicts(t *testing.T) {
	router, store := testRouter(t)
	token := signIn(t, router)
	id := pendingEventID(t, store)

	w := do(router, token, http.MethodPost, "/admin/events/"+id+"/approve", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// A second approve conflicts, and a reject of a non-pending event
	// conflicts too.
	w = do(router, token, http.MethodPost, "/admin/events/"+id+"/approve", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(router, token, http.MethodPost, "/admin/events/"+id+"/reject", map[string]string{"reason": "spam"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStreamLifecycle(t *testing.T) {
	router, store := testRouter(t)
	token := signIn(t, router)
	id := pendingEventID(t, store)

	// Streams require approval first.
	w := do(router, token, http.MethodPost, "/admin/events/"+id+"/stream/start", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Equal(t, http.StatusOK, do(router, token, http.MethodPost, "/admin/events/"+id+"/approve", nil).Code)
	require.Equal(t, http.StatusOK, do(router, token, http.MethodPost, "/admin/events/"+id+"/stream/start", nil).Code)

	event, err := store.GetEvent(id)
	require.NoError(t, err)
	assert.True(t, event.StreamLive)
	assert.Equal(t, models.EventLive, event.Status)

	require.Equal(t, http.StatusOK, do(router, token, http.MethodPost, "/admin/events/"+id+"/stream/end", nil).Code)
	w = do(router, token, http.MethodPost, "/admin/events/"+id+"/stream/end", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRefundOnlyCompletedTransactions(t *testing.T) {
	router, store := testRouter(t)
	token := signIn(t, router)

	completed, _ := store.ListTransactions(query{page: 1, limit: 100, filters: map[string]string{"status": "Completed"}})
	require.NotEmpty(t, completed)
	failed, _ := store.ListTransactions(query{page: 1, limit: 100, filters: map[string]string{"status": "Failed"}})
	require.NotEmpty(t, failed)

	w := do(router, token, http.MethodPost, "/admin/transactions/"+completed[0].ID+"/refund", map[string]string{"reason": "duplicate charge"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, token, http.MethodPost, "/admin/transactions/"+failed[0].ID+"/refund", map[string]string{"reason": "duplicate charge"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateLocationValidatesCoordinates(t *testing.T) {
	router, _ := testRouter(t)
	token := signIn(t, router)

	bad := map[string]any{
		"name": "Test Hall", "address": "1 Road", "city": "Lagos", "country": "Nigeria",
		"latitude": 123.0, "longitude": 10.0,
	}
	w := do(router, token, http.MethodPost, "/admin/locations", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	good := map[string]any{
		"name": "Test Hall", "address": "1 Road", "city": "Lagos", "country": "Nigeria",
		"latitude": 6.5, "longitude": 3.3,
	}
	w = do(router, token, http.MethodPost, "/admin/locations", good)
	require.Equal(t, http.StatusCreated, w.Code)

	var decoded struct {
		Location models.Location `json:"location"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.NotEmpty(t, decoded.Location.ID)
}

func TestSupportWorkflowOrder(t *testing.T) {
	router, store := testRouter(t)
	token := signIn(t, router)

	open, _ := store.ListTickets(query{page: 1, limit: 100, filters: map[string]string{"status": "Open"}})
	require.NotEmpty(t, open)
	id := open[0].ID

	// Close before resolve is rejected.
	w := do(router, token, http.MethodPost, "/admin/support/"+id+"/close", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(router, token, http.MethodPost, "/admin/support/"+id+"/resolve", map[string]string{"resolution": "refund issued"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, token, http.MethodPost, "/admin/support/"+id+"/close", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	ticket, err := store.GetTicket(id)
	require.NoError(t, err)
	assert.Equal(t, models.TicketClosed, ticket.Status)
	assert.Equal(t, "refund issued", ticket.Resolution)
}

func TestMutationsAppendAuditEntries(t *testing.T) {
	router, store := testRouter(t)
	token := signIn(t, router)
	id := pendingEventID(t, store)

	_, beforeTotal := store.ListActivities(query{page: 1, limit: 1})

	require.Equal(t, http.StatusOK, do(router, token, http.MethodPost, "/admin/events/"+id+"/approve", nil).Code)

	entries, afterTotal := store.ListActivities(query{page: 1, limit: 1})
	require.Equal(t, beforeTotal+1, afterTotal)
	require.Len(t, entries, 1)
	assert.Equal(t, "approve", entries[0].Action)
	assert.Equal(t, id, entries[0].TargetID)
	assert.Equal(t, seedAdminEmail, entries[0].ActorName)
}

func TestStatsEndpoint(t *testing.T) {
	router, _ := testRouter(t)
	token := signIn(t, router)

	w := do(router, token, http.MethodGet, "/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var decoded struct {
		Stats Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.Equal(t, 30, decoded.Stats.TotalEvents)
	assert.Equal(t, 40, decoded.Stats.TotalUsers)
}

func TestSeedIsDeterministic(t *testing.T) {
	a := NewSeededStore(7)
	b := NewSeededStore(7)

	eventsA, _ := a.ListEvents(query{page: 1, limit: 5, sortBy: "title", sortOrder: "asc"})
	eventsB, _ := b.ListEvents(query{page: 1, limit: 5, sortBy: "title", sortOrder: "asc"})
	require.Len(t, eventsB, len(eventsA))
	for i := range eventsA {
		assert.Equal(t, eventsA[i].ID, eventsB[i].ID, fmt.Sprintf("event %d", i))
		assert.Equal(t, eventsA[i].Title, eventsB[i].Title)
	}
}
