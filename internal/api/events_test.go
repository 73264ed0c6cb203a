package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evlive/admin-console/internal/models"
)

func TestCreateEventSendsMultipart(t *testing.T) {
	var (
		gotFields map[string]string
		gotFile   string
		gotName   string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFields = map[string]string{}
		for key, values := range r.MultipartForm.Value {
			gotFields[key] = values[0]
		}
		file, header, err := r.FormFile("banner")
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		gotFile = string(content)
		gotName = header.Filename

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"event created","event":{"_id":"ev-9","title":"Jazz Night"}}`))
	}))
	defer server.Close()

	date := time.Date(2025, time.July, 4, 20, 0, 0, 0, time.UTC)
	payload := EventPayload{
		Title:       "Jazz Night",
		Description: "Smooth evening",
		Category:    "Music",
		Date:        date,
		LocationID:  "loc-1",
		Prices:      []models.Price{{Currency: "USD", Amount: 25}},
	}
	uploads := []Upload{{Field: "banner", Name: "banner.png", Reader: strings.NewReader("png-bytes")}}

	client := NewClient(server.URL)
	event, err := NewEventsClient(client).Create(context.Background(), payload, uploads)
	require.NoError(t, err)
	assert.Equal(t, "ev-9", event.ID)

	assert.Equal(t, "Jazz Night", gotFields["title"])
	assert.Equal(t, "Music", gotFields["category"])
	assert.Equal(t, date.Format(time.RFC3339), gotFields["date"])
	assert.Equal(t, "loc-1", gotFields["locationId"])
	assert.JSONEq(t, `[{"currency":"USD","amount":25}]`, gotFields["prices"])
	// No testDate was set, so the field is absent rather than empty.
	_, present := gotFields["testDate"]
	assert.False(t, present)

	assert.Equal(t, "banner.png", gotName)
	assert.Equal(t, "png-bytes", gotFile)
}

func TestUpdateEventHitsResourcePath(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"message":"event updated","event":{"_id":"ev-3"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := NewEventsClient(client).Update(context.Background(), "ev-3", EventPayload{
		Title: "Renamed", Description: "d", Category: "Music", Date: time.Now(),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/admin/events/ev-3", gotPath)
}
