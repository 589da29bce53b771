// Package client is a small Go driver for the TWOEM HTTP API. It wraps
// login, uploads, listings and downloads, translating API error codes
// into sentinel errors callers can test with errors.Is.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"twoem/internal/model"
)

// Sentinel errors mirroring the server's error taxonomy.
var (
	ErrUnauthenticated    = errors.New("client: authentication required")
	ErrForbidden          = errors.New("client: access denied")
	ErrNotFound           = errors.New("client: resource not found")
	ErrGone               = errors.New("client: resource has expired")
	ErrPayloadTooLarge    = errors.New("client: payload exceeds size limit")
	ErrInvalidContentType = errors.New("client: content type not allowed")
	ErrBadRequest         = errors.New("client: bad request")
)

// APIError carries the machine-readable code and message from the
// server's error envelope. It wraps the matching sentinel.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusGone:
		return ErrGone
	case http.StatusRequestEntityTooLarge:
		return ErrPayloadTooLarge
	case http.StatusBadRequest:
		if e.Code == "INVALID_CONTENT_TYPE" {
			return ErrInvalidContentType
		}
		return ErrBadRequest
	}
	return nil
}

// Client talks to a TWOEM API server. Safe for concurrent use after
// Login; the token field is only written before requests are issued.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New returns a Client for the given base URL, e.g. "http://localhost:8080".
// Requests are traced via otelhttp when a tracer provider is configured.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// SetToken installs a bearer token obtained out of band.
func (c *Client) SetToken(token string) { c.token = token }

// LoginResponse is the /api/auth/login payload.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        model.User `json:"user"`
}

// Login authenticates and stores the returned bearer token for
// subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.AccessToken
	return &out, nil
}

// Register creates a new account. It does not log in.
func (c *Client) Register(ctx context.Context, email, fullName, password string) (*model.User, error) {
	var out model.User
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"email":     email,
		"full_name": fullName,
		"password":  password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the account behind the stored token.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadFile sends content as a base64-encoded JSON upload.
func (c *Client) UploadFile(ctx context.Context, filename, fileType, description string, content []byte, public bool) (*model.File, error) {
	var out model.File
	err := c.doJSON(ctx, http.MethodPost, "/api/files", map[string]any{
		"filename":    filename,
		"file_type":   fileType,
		"description": description,
		"content":     base64.StdEncoding.EncodeToString(content),
		"is_public":   public,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadEulogy sends a PDF eulogy. The server derives the stored
// filename from the deceased's name and sets the 72-hour expiry.
func (c *Client) UploadEulogy(ctx context.Context, title, deceasedName, description string, content []byte) (*model.Eulogy, error) {
	var out model.Eulogy
	err := c.doJSON(ctx, http.MethodPost, "/api/eulogies", map[string]any{
		"title":         title,
		"deceased_name": deceasedName,
		"description":   description,
		"content":       base64.StdEncoding.EncodeToString(content),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FileList is a page of file records.
type FileList struct {
	Items []model.File `json:"data"`
	Total int          `json:"total"`
}

// ListFiles returns files visible to the caller.
func (c *Client) ListFiles(ctx context.Context, publicOnly bool, limit, offset int) (*FileList, error) {
	path := "/api/files?limit=" + strconv.Itoa(limit) + "&offset=" + strconv.Itoa(offset)
	if publicOnly {
		path += "&public_only=true"
	}
	var out FileList
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EulogyList is a page of eulogy records.
type EulogyList struct {
	Items []model.Eulogy `json:"data"`
	Total int            `json:"total"`
}

// ListEulogies returns eulogies that have not yet expired.
func (c *Client) ListEulogies(ctx context.Context, limit, offset int) (*EulogyList, error) {
	path := "/api/eulogies?limit=" + strconv.Itoa(limit) + "&offset=" + strconv.Itoa(offset)
	var out EulogyList
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadFile fetches a file's raw content.
func (c *Client) DownloadFile(ctx context.Context, id string) ([]byte, error) {
	return c.download(ctx, "/api/files/"+id)
}

// DownloadEulogy fetches a eulogy's PDF content.
func (c *Client) DownloadEulogy(ctx context.Context, id string) ([]byte, error) {
	return c.download(ctx, "/api/eulogies/"+id)
}

// DeleteFile removes a file. Admin token required.
func (c *Client) DeleteFile(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/files/"+id, nil, nil)
}

// DeleteEulogy removes a eulogy. Admin token required.
func (c *Client) DeleteEulogy(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/eulogies/"+id, nil, nil)
}

// CleanupExpired triggers a sweep and returns how many records it
// removed. Admin token required.
func (c *Client) CleanupExpired(ctx context.Context) (int, error) {
	var out struct {
		Deleted int `json:"deleted"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/cleanup-expired", nil, &out); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}

func (c *Client) download(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.http.Do(req)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
