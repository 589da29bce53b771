package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"twoem/internal/http/middleware"
	"twoem/internal/model"
	"twoem/internal/service"
	serviceMocks "twoem/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// withPrincipal simulates an authenticated request without a real token.
func withPrincipal(p model.Principal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.PrincipalLocalKey, p)
		return c.Next()
	}
}

var testUser = model.Principal{ID: uuid.NewString(), Email: "user@example.com"}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListFiles(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := fiber.New()
	app.Get("/api/files", withPrincipal(testUser), ListFiles(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.FileListResult{
			Items: []model.File{{Record: model.Record{ID: uuid.NewString(), Filename: "notes.pdf"}}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, testUser, false, 10, 0).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.FileListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("public only", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, testUser, true, 10, 0).
			Return(&service.FileListResult{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/files?public_only=true", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/files?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_LIMIT", body.Error.Code)
	})

	t.Run("no principal", func(t *testing.T) {
		bare := fiber.New()
		bare.Get("/api/files", ListFiles(mockSvc))

		req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
		resp, _ := bare.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUploadFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := fiber.New()
	app.Post("/api/files", withPrincipal(testUser), UploadFile(mockSvc))

	payload := []byte("hello world")
	body, _ := json.Marshal(map[string]any{
		"filename":  "hello.txt",
		"file_type": "text/plain",
		"content":   base64.StdEncoding.EncodeToString(payload),
		"is_public": true,
	})

	newReq := func(b []byte) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/files", bytes.NewReader(b))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return req
	}

	t.Run("success decodes content", func(t *testing.T) {
		expected := &model.File{Record: model.Record{ID: uuid.NewString(), Filename: "hello.txt"}}
		mockSvc.On("Upload", mock.Anything, testUser, mock.MatchedBy(func(in service.UploadFileInput) bool {
			return bytes.Equal(in.Content, payload) && in.Public && in.Filename == "hello.txt"
		})).Return(expected, nil).Once()

		resp, _ := app.Test(newReq(body))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.File
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expected.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("too large", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, testUser, mock.Anything).
			Return(nil, service.ErrPayloadTooLarge).Once()

		resp, _ := app.Test(newReq(body))

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "PAYLOAD_TOO_LARGE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("bad extension", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, testUser, mock.Anything).
			Return(nil, service.ErrInvalidContentType).Once()

		resp, _ := app.Test(newReq(body))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_CONTENT_TYPE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("content not base64", func(t *testing.T) {
		bad, _ := json.Marshal(map[string]any{"filename": "x.txt", "content": "%%%"})
		resp, _ := app.Test(newReq(bad))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_CONTENT", res.Error.Code)
	})

	t.Run("missing filename", func(t *testing.T) {
		bad, _ := json.Marshal(map[string]any{"content": ""})
		resp, _ := app.Test(newReq(bad))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDownloadFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := fiber.New()
	app.Get("/api/files/:id", withPrincipal(testUser), DownloadFile(mockSvc))

	id := uuid.NewString()

	t.Run("streams content", func(t *testing.T) {
		content := []byte("file body")
		f := &model.File{Record: model.Record{
			ID: id, Filename: "report.pdf", ContentType: "application/pdf", Size: int64(len(content)),
		}}
		mockSvc.On("Download", mock.Anything, testUser, id).
			Return(io.NopCloser(bytes.NewReader(content)), f, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/files/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "report.pdf")

		got, _ := io.ReadAll(resp.Body)
		assert.Equal(t, content, got)
		mockSvc.AssertExpectations(t)
	})

	t.Run("forbidden", func(t *testing.T) {
		mockSvc.On("Download", mock.Anything, testUser, id).
			Return(nil, nil, service.ErrForbidden).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/files/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Download", mock.Anything, testUser, id).
			Return(nil, nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/files/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/files/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})
}

func TestDeleteFile(t *testing.T) {
	adminUser := model.Principal{ID: uuid.NewString(), Email: "admin@example.com", IsAdmin: true}
	mockSvc := new(serviceMocks.MockFileService)
	app := fiber.New()
	app.Delete("/api/admin/files/:id", withPrincipal(adminUser), DeleteFile(mockSvc))

	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, adminUser, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/files/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, adminUser, id).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/files/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestAdminStats(t *testing.T) {
	mockFiles := new(serviceMocks.MockFileService)
	mockEulogies := new(serviceMocks.MockEulogyService)
	app := fiber.New()
	app.Get("/api/admin/stats", AdminStats(mockFiles, mockEulogies))

	mockFiles.On("Count", mock.Anything).Return(7, nil).Once()
	mockEulogies.On("Count", mock.Anything).Return(2, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, 7, body["total_files"])
	assert.Equal(t, 2, body["valid_eulogies"])
	mockFiles.AssertExpectations(t)
	mockEulogies.AssertExpectations(t)
}
