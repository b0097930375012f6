package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"auditor-srv/pkg/log"
)

var (
	errBaseURLRequired = errors.New("tracker: base URL is required")
	errAPIKeyRequired  = errors.New("tracker: API key is required")
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "LeadAuditor/1.0"

	tasksPath = "/api/v1/tasks"
)

// Task is a task record on the tracker.
type Task struct {
	ID          string     `json:"id"`
	ListID      string     `json:"list_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	URL         string     `json:"url,omitempty"`
	LeadID      string     `json:"lead_id,omitempty"`
}

// CreateTaskInput is the payload for creating a task.
type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	LeadID      string     `json:"lead_id,omitempty"`
}

// ITracker is the task-tracker API client.
type ITracker interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (Task, error)
	ListOpenTasks(ctx context.Context) ([]Task, error)
	Close() error
}

// Config holds tracker client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	ListID  string
	Timeout time.Duration
}

type trackerImpl struct {
	l      log.Logger
	cfg    Config
	client *http.Client
}

// New builds a tracker client. BaseURL and APIKey are required.
func New(l log.Logger, cfg Config) (ITracker, error) {
	if cfg.BaseURL == "" {
		return nil, errBaseURLRequired
	}
	if cfg.APIKey == "" {
		return nil, errAPIKeyRequired
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &trackerImpl{
		l:   l,
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}, nil
}

func (t *trackerImpl) Close() error {
	if t.client != nil {
		t.client.CloseIdleConnections()
	}
	return nil
}

func (t *trackerImpl) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.cfg.APIKey)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("tracker returned status %d: %s", resp.StatusCode, string(respBody))
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (t *trackerImpl) CreateTask(ctx context.Context, input CreateTaskInput) (Task, error) {
	payload := struct {
		CreateTaskInput
		ListID string `json:"list_id,omitempty"`
	}{CreateTaskInput: input, ListID: t.cfg.ListID}

	var task Task
	if err := t.do(ctx, http.MethodPost, tasksPath, payload, &task); err != nil {
		if t.l != nil {
			t.l.Errorf(ctx, "pkg.tracker.CreateTask: %v", err)
		}
		return Task{}, err
	}
	return task, nil
}

func (t *trackerImpl) ListOpenTasks(ctx context.Context) ([]Task, error) {
	var out struct {
		Tasks []Task `json:"tasks"`
	}
	path := tasksPath + "?status=open"
	if t.cfg.ListID != "" {
		path += "&list_id=" + t.cfg.ListID
	}
	if err := t.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if t.l != nil {
			t.l.Errorf(ctx, "pkg.tracker.ListOpenTasks: %v", err)
		}
		return nil, err
	}
	return out.Tasks, nil
}
