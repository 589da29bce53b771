package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"request_id": "test",
		"error":      map[string]string{"code": code, "message": message},
	})
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "user@example.com", body["email"])
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok-123",
				"token_type":   "bearer",
				"user":         map[string]any{"id": "u1", "email": "user@example.com"},
			})
		case "/api/auth/me":
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]any{"id": "u1", "email": "user@example.com"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Login(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", res.AccessToken)

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestUploadFileEncodesContent(t *testing.T) {
	payload := []byte("hello world")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/files", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, base64.StdEncoding.EncodeToString(payload), body["content"])
		assert.Equal(t, true, body["is_public"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": "f1", "filename": "hello.txt"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok")
	f, err := c.UploadFile(context.Background(), "hello.txt", "text/plain", "", payload, true)
	require.NoError(t, err)
	assert.Equal(t, "f1", f.ID)
}

func TestDownloadRoundTrip(t *testing.T) {
	content := []byte("%PDF-1.4 body")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/eulogies/e1", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(content)
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.DownloadEulogy(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		code    string
		wantErr error
	}{
		{"unauthenticated", http.StatusUnauthorized, "UNAUTHENTICATED", ErrUnauthenticated},
		{"forbidden", http.StatusForbidden, "FORBIDDEN", ErrForbidden},
		{"not found", http.StatusNotFound, "NOT_FOUND", ErrNotFound},
		{"gone", http.StatusGone, "GONE", ErrGone},
		{"too large", http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", ErrPayloadTooLarge},
		{"bad content type", http.StatusBadRequest, "INVALID_CONTENT_TYPE", ErrInvalidContentType},
		{"other bad request", http.StatusBadRequest, "INVALID_LIMIT", ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeAPIError(w, tt.status, tt.code, "nope")
			}))
			defer srv.Close()

			c := New(srv.URL)
			_, err := c.DownloadFile(context.Background(), "f1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestCleanupExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/cleanup-expired", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"deleted": 4, "message": "cleanup complete"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("admin-tok")
	deleted, err := c.CleanupExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, deleted)
}
