package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evlive/admin-console/internal/models"
	appErrors "github.com/evlive/admin-console/pkg/errors"
)

func TestQueryValuesShaping(t *testing.T) {
	start := time.Date(2025, time.March, 1, 10, 30, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 9, 23, 0, 0, 0, time.UTC)

	q := models.NewListQuery(25)
	q.Page = 3
	q.Filters = map[string]string{
		"status":      "Live",
		"adminStatus": models.FilterAll,
		"category":    "",
	}
	q.DateRange = models.DateRange{Start: &start, End: &end}
	q.SortBy = "date"
	q.SortOrder = models.SortAsc
	q.Search = "jazz"

	values := queryValues(q)

	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "25", values.Get("limit"))
	assert.Equal(t, "Live", values.Get("status"))
	assert.Equal(t, "2025-03-01", values.Get("startDate"))
	assert.Equal(t, "2025-03-09", values.Get("endDate"))
	assert.Equal(t, "date", values.Get("sortBy"))
	assert.Equal(t, "asc", values.Get("sortOrder"))
	assert.Equal(t, "jazz", values.Get("search"))

	// The sentinel and empty filters never reach the wire.
	assert.False(t, values.Has("adminStatus"))
	assert.False(t, values.Has("category"))
}

func TestQueryValuesOmitsSortWhenUnset(t *testing.T) {
	values := queryValues(models.NewListQuery(10))
	assert.False(t, values.Has("sortBy"))
	assert.False(t, values.Has("sortOrder"))
	assert.False(t, values.Has("search"))
}

func TestRequestCarriesAuthAndRequestID(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`{"message":"ok","docs":[],"totalDocs":0,"totalPages":0,"currentPage":1,"limit":10}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithToken("secret-token"))
	_, err := NewEventsClient(client).List(context.Background(), models.NewListQuery(10))
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "Bearer secret-token", got.Header.Get("Authorization"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
}

func TestServerMessageSurfacesVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"only pending events can be rejected"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := NewEventsClient(client).Reject(context.Background(), "ev-1", "spam")
	require.Error(t, err)
	assert.Equal(t, "only pending events can be rejected", appErrors.UserMessage(err))
}

func TestErrorWithoutBodyFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := NewEventsClient(client).Approve(context.Background(), "ev-1")
	require.Error(t, err)
	assert.Equal(t, "request failed with status 502", appErrors.UserMessage(err))
}

func TestTimeoutMapsToTypedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTimeouts(20*time.Millisecond, 20*time.Millisecond))
	_, err := NewEventsClient(client).List(context.Background(), models.NewListQuery(10))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTimeout.Message, appErrors.UserMessage(err))
}

func TestUnreachableServerMapsToUnavailable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", WithTimeouts(time.Second, time.Second))
	_, err := NewEventsClient(client).List(context.Background(), models.NewListQuery(10))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnavailable.Message, appErrors.UserMessage(err))
}

func TestListEnvelopeDecodesIntoPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"message": "events fetched",
			"docs": [{"_id": "ev-1", "title": "Jazz Night"}],
			"totalDocs": 41,
			"totalPages": 5,
			"currentPage": 2,
			"limit": 10
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	page, err := NewEventsClient(client).List(context.Background(), models.NewListQuery(10))
	require.NoError(t, err)

	require.Len(t, page.Docs, 1)
	assert.Equal(t, "ev-1", page.Docs[0].ID)
	assert.Equal(t, "Jazz Night", page.Docs[0].Title)
	assert.Equal(t, 41, page.TotalDocs)
	assert.Equal(t, 5, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
}
