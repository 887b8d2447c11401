// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/statescope/internal/logging"
	"github.com/jeranaias/statescope/internal/model"
)

// recorder is a fake API that remembers the requests it saw.
type recorder struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []string
}

func (r *recorder) last() *http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		return nil
	}
	return r.requests[len(r.requests)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func newServer(t *testing.T, handler http.HandlerFunc) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		rec.mu.Lock()
		rec.requests = append(rec.requests, r)
		rec.bodies = append(rec.bodies, string(body))
		rec.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL + "/api/", AskPerMinute: 0})
	return client, rec
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// =============================================================================
// CONFIGURATION
// =============================================================================

func TestNewClientWithConfig_FillsDefaults(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{})
	assert.Equal(t, "http://localhost:5001/api", c.BaseURL())
	assert.Equal(t, 30*time.Second, c.config.Timeout)
	assert.Equal(t, 60*time.Second, c.config.AskTimeout)
	assert.Nil(t, c.limiter, "AskPerMinute 0 disables the limiter")

	c = NewClient()
	assert.NotNil(t, c.limiter)
}

// =============================================================================
// READ ENDPOINTS
// =============================================================================

func TestStates(t *testing.T) {
	client, rec := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []model.State{
			{Code: "CA", Name: "California", FIPS: "06", PolicyStatus: "enacted", PolicyCount: 4},
			{Code: "TX", Name: "Texas", FIPS: "48", PolicyStatus: "pending", PolicyCount: 2},
		})
	})

	states, err := client.States(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, "/api/states", rec.last().URL.Path)
	assert.Equal(t, http.MethodGet, rec.last().Method)
	assert.Equal(t, model.StatePending, states[1].Status())
	assert.NotEmpty(t, rec.last().Header.Get("X-Request-ID"))
}

func TestStatePolicies(t *testing.T) {
	client, rec := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []model.Policy{{ID: 1, Title: "AI Literacy Act", StatusRaw: "enacted", PolicyType: "bill"}})
	})

	policies, err := client.StatePolicies(context.Background(), "ca")
	require.NoError(t, err)
	require.Len(t, policies, 1)
	assert.Equal(t, "/api/states/CA/policies", rec.last().URL.Path)

	_, err = client.StatePolicies(context.Background(), " ")
	assert.Equal(t, ErrTypeInvalidRequest, TypeOf(err))
	assert.Equal(t, 1, rec.count(), "empty code must not issue a request")
}

func TestTopicsAndHealth(t *testing.T) {
	client, rec := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/topics":
			writeJSON(w, []model.Topic{{ID: 3, Name: "AI literacy"}})
		case "/api/health":
			writeJSON(w, model.Health{Status: "ok", PolicyCount: 120})
		case "/api/policies/7":
			writeJSON(w, model.Policy{ID: 7, Title: "Guidance"})
		default:
			http.NotFound(w, r)
		}
	})

	topics, err := client.Topics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AI literacy", topics[0].Name)

	h, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, h.PolicyCount)

	p, err := client.Policy(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Guidance", p.Title)
	assert.Equal(t, "/api/policies/7", rec.last().URL.Path)
}

// =============================================================================
// TRENDS
// =============================================================================

func TestTrendPath_OmitsEmptyFilters(t *testing.T) {
	f := TrendFilters{State: "CA", TopicID: "3"}
	assert.Equal(t, "/trends/timeline?state=CA&topic_id=3", TrendPath(TrendTimeline, f))

	f.TopicID = ""
	assert.Equal(t, "/trends/timeline?state=CA", TrendPath(TrendTimeline, f))

	assert.Equal(t, "/trends/topics", TrendPath(TrendTopics, TrendFilters{}))
	assert.True(t, TrendFilters{}.IsZero())
}

func TestTimeline_SendsOnlySetFilters(t *testing.T) {
	client, rec := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []model.TimelineRow{{Year: "2023", Count: 4}, {Year: "2024", Count: 9}})
	})

	rows, err := client.Timeline(context.Background(), TrendFilters{State: "CA", TopicID: "3"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "/api/trends/timeline", rec.last().URL.Path)
	assert.Equal(t, "state=CA&topic_id=3", rec.last().URL.RawQuery)

	_, err = client.Timeline(context.Background(), TrendFilters{State: "CA"})
	require.NoError(t, err)
	assert.Equal(t, "state=CA", rec.last().URL.RawQuery)
	_, present := rec.last().URL.Query()["topic_id"]
	assert.False(t, present, "cleared filter must not be sent as an empty value")
}

func TestOtherTrends(t *testing.T) {
	client, rec := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/trends/topics":
			writeJSON(w, []model.TopicCount{{Name: "Data privacy", Count: 5}})
		case "/api/trends/status":
			writeJSON(w, []model.StatusCount{{Status: "enacted", Count: 12}})
		case "/api/trends/level":
			writeJSON(w, []model.LevelCount{{Level: "state", Count: 40}})
		}
	})

	topics, err := client.TopicTrends(context.Background(), TrendFilters{PolicyType: "bill"})
	require.NoError(t, err)
	assert.Equal(t, 5, topics[0].Count)
	assert.Equal(t, "policy_type=bill", rec.last().URL.RawQuery)

	status, err := client.StatusTrends(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "enacted", status[0].Status)

	level, err := client.LevelTrends(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, level[0].Count)
}

// =============================================================================
// ASK
// =============================================================================

func TestAsk(t *testing.T) {
	client, rec := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req model.AskRequest
		json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, model.AskResponse{
			Answer:  "**California** enacted AB 2876.",
			Sources: []model.Source{{Title: "AB 2876", State: "CA", Status: "enacted"}},
		})
	})

	resp, err := client.Ask(context.Background(), "What is California doing?")
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "AB 2876")
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "", resp.Sources[0].URL)

	req := rec.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/ask", req.URL.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"question":"What is California doing?"}`, rec.bodies[len(rec.bodies)-1])
}

func TestAsk_EmptyQuestionIssuesNoRequest(t *testing.T) {
	client, rec := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.AskResponse{Answer: "x"})
	})

	_, err := client.Ask(context.Background(), "   \n\t")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Equal(t, 0, rec.count())
}

func TestAsk_ClientSideLimiter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.AskResponse{Answer: "ok"})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, AskPerMinute: 2})
	for i := 0; i < 2; i++ {
		_, err := client.Ask(context.Background(), "q")
		require.NoError(t, err)
	}
	_, err := client.Ask(context.Background(), "q")
	assert.ErrorIs(t, err, ErrRateLimited)
}

// =============================================================================
// FAILURES
// =============================================================================

func TestNon2xx_CarriesStatusCode(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "database is locked"}`))
	})

	_, err := client.States(context.Background())
	require.Error(t, err)

	code, ok := StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, 500, code)
	assert.Equal(t, ErrTypeStatus, TypeOf(err))
	assert.Contains(t, err.Error(), "API error: 500")
	assert.NotContains(t, err.Error(), "database is locked", "error bodies are not parsed")
}

func TestAsk_TooManyRequests(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Ask(context.Background(), "q")
	assert.ErrorIs(t, err, ErrRateLimited)
	code, _ := StatusCode(err)
	assert.Equal(t, 429, code)
}

func TestDecodeError(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.Topics(context.Background())
	assert.Equal(t, ErrTypeDecode, TypeOf(err))
}

func TestTimeoutAndCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := client.States(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Topics(ctx)
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestPostJSON_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(150 * time.Millisecond):
			w.Write([]byte(`{"answer":"late","sources":[]}`))
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	var resp model.AskResponse
	err := client.PostJSON(context.Background(), "/ask", model.AskRequest{Question: "q"}, &resp)
	assert.ErrorIs(t, err, ErrTimeout)

	// A caller deadline replaces the default.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.PostJSON(ctx, "/ask", model.AskRequest{Question: "q"}, &resp))
	assert.Equal(t, "late", resp.Answer)
}

func TestConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: url})
	_, err := client.States(context.Background())
	require.Error(t, err)
	assert.Equal(t, ErrTypeConnection, TypeOf(err))
	_, hasCode := StatusCode(err)
	assert.False(t, hasCode)
}

func TestRequestsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, []model.Topic{})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, Logger: logging.FromZap(zap.New(core))})
	_, err := client.Topics(context.Background())
	require.NoError(t, err)
	err = client.GetJSON(context.Background(), "/missing", nil, nil)
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterMessage("request complete").Len())
	warn := logs.FilterMessage("unexpected status").All()
	require.Len(t, warn, 1)
	assert.Equal(t, int64(404), warn[0].ContextMap()["status"])
}

func TestClientError_Is(t *testing.T) {
	err := &ClientError{Type: ErrTypeTimeout, Message: "GET /states: request timed out"}
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.False(t, errors.Is(err, ErrRateLimited))
}
