package tracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditor-srv/pkg/log"
)

func testLogger() log.Logger {
	return log.Init(log.ZapConfig{
		Level:    log.LevelFatal,
		Mode:     log.ModeProduction,
		Encoding: log.EncodingJSON,
	})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) ITracker {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(testLogger(), Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		ListID:  "list-7",
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNew_Validation(t *testing.T) {
	_, err := New(testLogger(), Config{APIKey: "k"})
	assert.ErrorIs(t, err, errBaseURLRequired)

	_, err = New(testLogger(), Config{BaseURL: "https://tracker.test"})
	assert.ErrorIs(t, err, errAPIKeyRequired)
}

func TestCreateTask(t *testing.T) {
	due := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/tasks", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Follow up hot lead: Acme Roofing", body["title"])
		assert.Equal(t, "list-7", body["list_id"])
		assert.Equal(t, "lead-1", body["lead_id"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Task{ID: "task-9", Title: body["title"].(string), Status: "open"})
	})

	task, err := client.CreateTask(context.Background(), CreateTaskInput{
		Title:       "Follow up hot lead: Acme Roofing",
		Description: "Score 85, status new. Reach out within 24h.",
		DueDate:     &due,
		LeadID:      "lead-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "task-9", task.ID)
}

func TestCreateTask_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := client.CreateTask(context.Background(), CreateTaskInput{Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestListOpenTasks(t *testing.T) {
	due := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "open", r.URL.Query().Get("status"))
		assert.Equal(t, "list-7", r.URL.Query().Get("list_id"))

		json.NewEncoder(w).Encode(map[string]any{
			"tasks": []Task{
				{ID: "t1", Title: "Call Acme", Status: "open", DueDate: &due, LeadID: "lead-1"},
				{ID: "t2", Title: "Send quote", Status: "open"},
			},
		})
	})

	tasks, err := client.ListOpenTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Call Acme", tasks[0].Title)
	require.NotNil(t, tasks[0].DueDate)
	assert.True(t, tasks[0].DueDate.Equal(due))
}
