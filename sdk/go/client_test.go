package contactmail_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	contactmail "github.com/devsynchub/contactmail/sdk/go"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *contactmail.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return contactmail.NewClient(contactmail.Config{BaseURL: srv.URL + "/", Origin: "http://localhost:3000", HTTPClient: srv.Client()})
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestClient_SendEmail(t *testing.T) {
	t.Parallel()

	req := contactmail.SendEmailRequest{FullName: "Alice", Email: "a@x.com", Message: "Hi"}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/send-email", r.URL.Path)
			require.Equal(t, "http://localhost:3000", r.Header.Get("Origin"))
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var got contactmail.SendEmailRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			require.Equal(t, req, got)

			respond(w, http.StatusOK, `{"success":true,"message":"Email sent successfully!"}`)
		})

		res, err := c.SendEmail(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, &contactmail.Result{Success: true, Message: "Email sent successfully!"}, res)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusBadRequest, `{"success":false,"message":"All fields are required."}`)
		})

		_, err := c.SendEmail(context.Background(), contactmail.SendEmailRequest{})
		require.ErrorIs(t, err, contactmail.ErrFieldsRequired)

		apiErr, ok := contactmail.IsAPIError(err)
		require.True(t, ok)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, "All fields are required.", apiErr.Message)
	})

	t.Run("invalid body", func(t *testing.T) {
		t.Parallel()

		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusBadRequest, `{"success":false,"message":"Invalid JSON body."}`)
		})

		_, err := c.SendEmail(context.Background(), req)
		require.ErrorIs(t, err, contactmail.ErrInvalidBody)
		require.NotErrorIs(t, err, contactmail.ErrFieldsRequired)
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()

		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusRequestEntityTooLarge, `{"success":false,"message":"Request body too large."}`)
		})

		_, err := c.SendEmail(context.Background(), req)
		require.ErrorIs(t, err, contactmail.ErrBodyTooLarge)

		apiErr, ok := contactmail.IsAPIError(err)
		require.True(t, ok)
		require.Equal(t, http.StatusRequestEntityTooLarge, apiErr.StatusCode)
	})

	t.Run("send failure", func(t *testing.T) {
		t.Parallel()

		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusInternalServerError, `{"success":false,"message":"Failed to send email."}`)
		})

		_, err := c.SendEmail(context.Background(), req)
		require.ErrorIs(t, err, contactmail.ErrSendFailed)
	})

	t.Run("origin rejected", func(t *testing.T) {
		t.Parallel()

		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Not allowed by CORS", http.StatusForbidden)
		})

		_, err := c.SendEmail(context.Background(), req)
		require.ErrorIs(t, err, contactmail.ErrOriginRejected)
	})
}

func TestClient_Health(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/health", r.URL.Path)
			respond(w, http.StatusOK, `{"uptime":12.5,"message":"OK","timestamp":"2024-05-01T12:00:00.000Z"}`)
		})

		h, err := c.Health(context.Background())
		require.NoError(t, err)
		require.Equal(t, 12.5, h.Uptime)
		require.Equal(t, "OK", h.Message)
		require.Equal(t, 2024, h.Timestamp.Year())
	})

	t.Run("not exposed", func(t *testing.T) {
		t.Parallel()

		c := newTestServer(t, http.NotFound)

		_, err := c.Health(context.Background())
		require.ErrorIs(t, err, contactmail.ErrHealthUnavailable)
	})

	t.Run("failed", func(t *testing.T) {
		t.Parallel()

		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusInternalServerError, `{"message":"Health check failed","error":"boom"}`)
		})

		_, err := c.Health(context.Background())
		apiErr, ok := contactmail.IsAPIError(err)
		require.True(t, ok)
		require.Equal(t, "Health check failed: boom", apiErr.Message)
	})
}
