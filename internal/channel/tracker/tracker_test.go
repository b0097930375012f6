package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditor-srv/internal/channel"
	pkgLog "auditor-srv/pkg/log"
	"auditor-srv/pkg/tracker"
)

type fakeClient struct {
	created []tracker.CreateTaskInput
	err     error
}

func (f *fakeClient) CreateTask(_ context.Context, input tracker.CreateTaskInput) (tracker.Task, error) {
	if f.err != nil {
		return tracker.Task{}, f.err
	}
	f.created = append(f.created, input)
	return tracker.Task{ID: "task-1", Title: input.Title, Status: "open"}, nil
}

func (f *fakeClient) ListOpenTasks(_ context.Context) ([]tracker.Task, error) { return nil, nil }
func (f *fakeClient) Close() error                                            { return nil }

func testLogger() pkgLog.Logger {
	return pkgLog.Init(pkgLog.ZapConfig{
		Level:    pkgLog.LevelFatal,
		Mode:     pkgLog.ModeProduction,
		Encoding: pkgLog.EncodingJSON,
	})
}

func TestDeliver_CreatesTask(t *testing.T) {
	client := &fakeClient{}
	ch := New(testLogger(), client)
	due := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

	res := ch.Deliver(context.Background(), channel.Message{
		Title: "🔥 Hot Lead: Acme Roofing",
		Task: &channel.TaskSpec{
			Title:       "Follow up hot lead: Acme Roofing",
			Description: "Score 85, status new. Reach out within 24h.",
			DueDate:     &due,
			LeadID:      "lead-1",
		},
	})

	assert.True(t, res.OK)
	assert.Equal(t, channel.NameTracker, ch.Name())
	require.Len(t, client.created, 1)
	assert.Equal(t, "Follow up hot lead: Acme Roofing", client.created[0].Title)
	assert.Equal(t, "lead-1", client.created[0].LeadID)
}

func TestDeliver_RejectsMessageWithoutTask(t *testing.T) {
	client := &fakeClient{}
	ch := New(testLogger(), client)

	res := ch.Deliver(context.Background(), channel.Message{Title: "Daily Lead Digest"})

	assert.False(t, res.OK)
	assert.Equal(t, "no task payload", res.Reason)
	assert.Empty(t, client.created)
}

func TestDeliver_APIFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("tracker returned status 502")}
	ch := New(testLogger(), client)

	res := ch.Deliver(context.Background(), channel.Message{
		Task: &channel.TaskSpec{Title: "x"},
	})

	assert.False(t, res.OK)
	assert.Contains(t, res.Reason, "502")
}
