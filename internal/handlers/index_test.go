package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type fakeRunner struct {
	mu       sync.Mutex
	calls    []string
	clearErr error
	block    chan struct{}
}

func (f *fakeRunner) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRunner) ClearAll(context.Context) error {
	f.record("clear")
	return f.clearErr
}

func (f *fakeRunner) IndexAll(context.Context) error {
	f.record("index")
	if f.block != nil {
		<-f.block
	}
	return nil
}

func (f *fakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestIndexHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		url        string
		clearErr   error
		wantStatus int
		wantCalls  []string
	}{
		{
			name:       "index",
			method:     http.MethodPost,
			url:        "/api/index",
			wantStatus: http.StatusAccepted,
			wantCalls:  []string{"index"},
		},
		{
			name:       "force clears first",
			method:     http.MethodPost,
			url:        "/api/index?force=true",
			wantStatus: http.StatusAccepted,
			wantCalls:  []string{"clear", "index"},
		},
		{
			name:       "clear failure stops the run",
			method:     http.MethodPost,
			url:        "/api/index?force=true",
			clearErr:   errors.New("db down"),
			wantStatus: http.StatusAccepted,
			wantCalls:  []string{"clear"},
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			url:        "/api/index",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{clearErr: tt.clearErr}
			handler := NewIndexHandler(runner)
			finished := make(chan struct{}, 1)
			handler.done = func() { finished <- struct{}{} }

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.url, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("ServeHTTP() status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantCalls == nil {
				return
			}

			select {
			case <-finished:
			case <-time.After(2 * time.Second):
				t.Fatal("background indexing never finished")
			}

			calls := runner.Calls()
			if len(calls) != len(tt.wantCalls) {
				t.Fatalf("calls = %v, want %v", calls, tt.wantCalls)
			}
			for i := range calls {
				if calls[i] != tt.wantCalls[i] {
					t.Errorf("calls = %v, want %v", calls, tt.wantCalls)
				}
			}
		})
	}
}

func TestIndexHandler_RejectsConcurrentRuns(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{})}
	handler := NewIndexHandler(runner)
	finished := make(chan struct{}, 1)
	handler.done = func() { finished <- struct{}{} }

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/index", nil))
	if first.Code != http.StatusAccepted {
		t.Fatalf("first status = %d, want 202", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/index", nil))
	if second.Code != http.StatusConflict {
		t.Errorf("second status = %d, want 409", second.Code)
	}

	close(runner.block)
	<-finished

	third := httptest.NewRecorder()
	handler.ServeHTTP(third, httptest.NewRequest(http.MethodPost, "/api/index", nil))
	if third.Code != http.StatusAccepted {
		t.Errorf("status after run = %d, want 202", third.Code)
	}
	<-finished
}
