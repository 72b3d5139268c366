package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devsynchub/contactmail/internal/config"
	"github.com/devsynchub/contactmail/internal/contact"
	"github.com/devsynchub/contactmail/internal/logger"
)

// fakeDispatcher records submissions and answers with result
type fakeDispatcher struct {
	mu     sync.Mutex
	calls  []contact.Submission
	result contact.Result
}

func (f *fakeDispatcher) Dispatch(_ context.Context, sub contact.Submission) contact.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sub)
	return f.result
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, HealthEnabled: true, MaxBodyBytes: 100 << 10},
	}
}

func newTestHandler(d Dispatcher) *Handler {
	return New(logger.Nop(), testConfig(), d, time.Now())
}

func postJSON(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/send-email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSendEmail(t *testing.T) {
	t.Parallel()

	sent := contact.Result{Success: true, Message: contact.MessageSent}
	failed := contact.Result{Success: false, Message: contact.MessageFailed}

	tests := []struct {
		name      string
		req       *http.Request
		result    contact.Result
		wantCode  int
		wantBody  string
		wantCalls []contact.Submission
	}{
		{
			name:      "valid submission",
			req:       postJSON(`{"fullname":"Alice","email":"a@x.com","message":"Hi"}`),
			result:    sent,
			wantCode:  http.StatusOK,
			wantBody:  `{"success":true,"message":"Email sent successfully!"}`,
			wantCalls: []contact.Submission{{FullName: "Alice", Email: "a@x.com", Message: "Hi"}},
		},
		{
			name:      "dispatch failure",
			req:       postJSON(`{"fullname":"Alice","email":"a@x.com","message":"Hi"}`),
			result:    failed,
			wantCode:  http.StatusInternalServerError,
			wantBody:  `{"success":false,"message":"Failed to send email."}`,
			wantCalls: []contact.Submission{{FullName: "Alice", Email: "a@x.com", Message: "Hi"}},
		},
		{
			name:     "empty fullname",
			req:      postJSON(`{"fullname":"","email":"a@x.com","message":"Hi"}`),
			result:   sent,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"All fields are required."}`,
		},
		{
			name:     "missing email",
			req:      postJSON(`{"fullname":"Alice","message":"Hi"}`),
			result:   sent,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"All fields are required."}`,
		},
		{
			name:     "null message",
			req:      postJSON(`{"fullname":"Alice","email":"a@x.com","message":null}`),
			result:   sent,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"All fields are required."}`,
		},
		{
			name:     "falsy scalars count as missing",
			req:      postJSON(`{"fullname":0,"email":false,"message":"Hi"}`),
			result:   sent,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"All fields are required."}`,
		},
		{
			name:      "truthy scalars are kept as text",
			req:       postJSON(`{"fullname":42,"email":"a@x.com","message":true}`),
			result:    sent,
			wantCode:  http.StatusOK,
			wantBody:  `{"success":true,"message":"Email sent successfully!"}`,
			wantCalls: []contact.Submission{{FullName: "42", Email: "a@x.com", Message: "true"}},
		},
		{
			name:     "empty body",
			req:      postJSON(``),
			result:   sent,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"All fields are required."}`,
		},
		{
			name:     "malformed json",
			req:      postJSON(`{"fullname":"Alice",`),
			result:   sent,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"Invalid JSON body."}`,
		},
		{
			name:     "trailing garbage",
			req:      postJSON(`{"fullname":"Alice","email":"a@x.com","message":"Hi"} x`),
			result:   sent,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"Invalid JSON body."}`,
		},
		{
			name: "non-json body is not parsed",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/api/send-email", strings.NewReader("fullname=Alice&email=a@x.com&message=Hi"))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return req
			}(),
			result:   sent,
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"message":"All fields are required."}`,
		},
		{
			name:     "oversized body",
			req:      postJSON(`{"fullname":"Alice","email":"a@x.com","message":"` + strings.Repeat("x", 200<<10) + `"}`),
			result:   sent,
			wantCode: http.StatusRequestEntityTooLarge,
			wantBody: `{"success":false,"message":"Request body too large."}`,
		},
		{
			name:     "oversized trailing data",
			req:      postJSON(`{"fullname":"Alice","email":"a@x.com","message":"Hi"}` + strings.Repeat(" ", 200<<10) + `x`),
			result:   sent,
			wantCode: http.StatusRequestEntityTooLarge,
			wantBody: `{"success":false,"message":"Request body too large."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := &fakeDispatcher{result: tt.result}
			h := newTestHandler(d)
			rec := httptest.NewRecorder()

			h.SendEmail(rec, tt.req)

			require.Equal(t, tt.wantCode, rec.Code)
			require.JSONEq(t, tt.wantBody, rec.Body.String())
			require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			require.Equal(t, tt.wantCalls, d.calls)
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("reports uptime", func(t *testing.T) {
		t.Parallel()

		started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		h := New(logger.Nop(), testConfig(), &fakeDispatcher{}, started)
		h.now = func() time.Time { return started.Add(90*time.Second + 500*time.Millisecond) }

		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"uptime":90.5,"message":"OK","timestamp":"2024-05-01T12:01:30.500Z"}`, rec.Body.String())
	})

	t.Run("live clock", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(&fakeDispatcher{})
		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.GreaterOrEqual(t, resp.Uptime, 0.0)
		require.Equal(t, "OK", resp.Message)
		_, err := time.Parse(time.RFC3339Nano, resp.Timestamp)
		require.NoError(t, err)
	})

	t.Run("internal fault", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(&fakeDispatcher{})
		h.now = func() time.Time { panic("clock unavailable") }

		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t, `{"message":"Health check failed","error":"clock unavailable"}`, rec.Body.String())
	})
}
