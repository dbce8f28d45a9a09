package taskapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestFetchTasksFillsDefaults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/GetTasks", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"Id":1,"Title":"Buy milk","Description":"","DueDate":"2024-01-01T00:00:00Z"}]`))
	}))

	tasks, err := client.FetchTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	task := tasks[0]
	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "", task.Description)
	assert.Equal(t, StatusNotStarted, task.Status)
	assert.Equal(t, 0, task.Priority)
	assert.Equal(t, "2024-01-01T00:00:00Z", task.DueDate)
}

func TestFetchTasksKeepsExplicitValues(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"Id":7,"Title":"Review","Priority":3,"Status":2,"DueDate":"2024-06-01T12:00:00Z"}]`))
	}))

	tasks, err := client.FetchTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 3, tasks[0].Priority)
	assert.Equal(t, 2, tasks[0].Status)
}

func TestFetchTasksPreservesOrder(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"Id":3,"Title":"c"},{"Id":1,"Title":"a"},{"Id":2,"Title":"b"}]`))
	}))

	tasks, err := client.FetchTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestFetchTasksEmptyList(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	tasks, err := client.FetchTasks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestFetchTasksRemoteError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "db down", http.StatusInternalServerError)
	}))

	_, err := client.FetchTasks(context.Background())
	require.Error(t, err)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)
	assert.Equal(t, "GetTasks", remoteErr.Op)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "db down")
}

func TestFetchTasksRemoteErrorWithoutBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.FetchTasks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCreateTaskSendsEnvelope(t *testing.T) {
	var received map[string]map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/CreateTask", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"Id":42,"Title":"Test","Description":"","Priority":1,"DueDate":"2024-02-02T00:00:00Z","Status":0}`))
	}))

	created, err := client.CreateTask(context.Background(), Task{
		Title:    "Test",
		Priority: 1,
		DueDate:  "2024-02-02T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)

	wrapped, ok := received["Task"]
	require.True(t, ok, "request body must wrap the task under a Task key")
	assert.Equal(t, "Test", wrapped["Title"])
	assert.Equal(t, float64(1), wrapped["Priority"])
	assert.NotContains(t, wrapped, "Id")
}

func TestCreateTaskRemoteError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))

	_, err := client.CreateTask(context.Background(), Task{Title: "Test"})
	require.Error(t, err)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "CreateTask", remoteErr.Op)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNewClientBaseURLResolution(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		client, err := NewClient(context.Background(), Config{})
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.BaseURL())
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvBaseURL, "https://tasks.internal.example.com/v2/")
		client, err := NewClient(context.Background(), Config{})
		require.NoError(t, err)
		assert.Equal(t, "https://tasks.internal.example.com/v2", client.BaseURL())
	})

	t.Run("config wins over env", func(t *testing.T) {
		t.Setenv(EnvBaseURL, "https://ignored.example.com")
		client, err := NewClient(context.Background(), Config{BaseURL: "https://explicit.example.com"})
		require.NoError(t, err)
		assert.Equal(t, "https://explicit.example.com", client.BaseURL())
	})
}

func TestNewClientClientCredentialsSendsBearer(t *testing.T) {
	var tokenClientID string

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		if id, _, ok := r.BasicAuth(); ok {
			tokenClientID = id
		} else {
			require.NoError(t, r.ParseForm())
			tokenClientID = r.FormValue("client_id")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/GetTasks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/CreateTask", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"Id":1,"Title":"Test"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), Config{
		BaseURL:      srv.URL,
		TokenURL:     srv.URL + "/oauth/token",
		ClientID:     "taskboard-client",
		ClientSecret: "s3cret",
	})
	require.NoError(t, err)

	_, err = client.FetchTasks(context.Background())
	require.NoError(t, err)

	_, err = client.CreateTask(context.Background(), Task{Title: "Test"})
	require.NoError(t, err)

	assert.Equal(t, "taskboard-client", tokenClientID)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://tasks.internal.example.com")
	t.Setenv(EnvTokenURL, "https://auth.internal.example.com/token")
	t.Setenv(EnvClientID, "taskboard")
	t.Setenv(EnvClientSecret, "s3cret")

	cfg := ConfigFromEnv()
	assert.Equal(t, "https://tasks.internal.example.com", cfg.BaseURL)
	assert.Equal(t, "https://auth.internal.example.com/token", cfg.TokenURL)
	assert.Equal(t, "taskboard", cfg.ClientID)
	assert.Equal(t, "s3cret", cfg.ClientSecret)
}

func TestToolResultHelpers(t *testing.T) {
	success := NewTaskResult(nil)
	assert.NotNil(t, success.Tasks)
	assert.Empty(t, success.Tasks)
	assert.Nil(t, success.Error)

	failure := NewErrorResult("boom")
	assert.NotNil(t, failure.Tasks)
	assert.Empty(t, failure.Tasks)
	require.NotNil(t, failure.Error)
	assert.Equal(t, "boom", *failure.Error)

	data, err := json.Marshal(success)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[],"error":null}`, string(data))
}

func TestRemoteErrorIsError(t *testing.T) {
	err := error(&RemoteError{Op: "GetTasks", StatusCode: 500, Status: "500 Internal Server Error"})
	var target *RemoteError
	assert.True(t, errors.As(err, &target))
}
