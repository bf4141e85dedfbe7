package httpd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
	"github.com/BlackPool25/AI-Detector-Web/internal/service/extract"
)

const testSecret = "test-secret"

type mockDetectionService struct {
	mock.Mock
}

func (m *mockDetectionService) Detect(ctx context.Context, req *models.DetectRequest) (*models.DetectionResult, models.Modality, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(models.Modality), args.Error(2)
	}
	return args.Get(0).(*models.DetectionResult), args.Get(1).(models.Modality), args.Error(2)
}

type mockUploadService struct {
	mock.Mock
}

func (m *mockUploadService) HandleUpload(ctx context.Context, filename, mimeType string, data []byte, modality models.Modality) (*models.UploadResponse, error) {
	args := m.Called(ctx, filename, mimeType, data, modality)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UploadResponse), args.Error(1)
}

type mockHistoryService struct {
	mock.Mock
}

func (m *mockHistoryService) Record(ctx context.Context, userID string, result *models.DetectionResult, upload models.UploadMetadata) (string, error) {
	args := m.Called(ctx, userID, result, upload)
	return args.String(0), args.Error(1)
}

func (m *mockHistoryService) List(ctx context.Context, userID string, limit, offset int) (*models.HistoryListResponse, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HistoryListResponse), args.Error(1)
}

func (m *mockHistoryService) Delete(ctx context.Context, userID, id string) (*models.DeleteHistoryResponse, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeleteHistoryResponse), args.Error(1)
}

type handlerFixture struct {
	detection *mockDetectionService
	upload    *mockUploadService
	history   *mockHistoryService
	router    chi.Router
}

func newHandlerFixture() *handlerFixture {
	detection := new(mockDetectionService)
	upload := new(mockUploadService)
	history := new(mockHistoryService)

	h := NewHandler(
		detection,
		upload,
		history,
		extract.NewExtractor(zerolog.Nop()),
		testSecret,
		"https://detector.example.com",
		zerolog.Nop(),
	)

	router := chi.NewRouter()
	h.RegisterRoutes(router)

	return &handlerFixture{
		detection: detection,
		upload:    upload,
		history:   history,
		router:    router,
	}
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func postJSON(router chi.Router, path string, body any, token string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestDetect_EmptyPayload(t *testing.T) {
	f := newHandlerFixture()

	rec := postJSON(f.router, "/api/v1/detect", models.DetectRequest{}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No video_url, image, or text provided", body["error"])
}

func TestDetect_InvalidBody(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/detect", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDetect_ShortText(t *testing.T) {
	f := newHandlerFixture()

	f.detection.On("Detect", mock.Anything, mock.Anything).
		Return(nil, models.ModalityText, models.ErrTextTooShort)

	rec := postJSON(f.router, "/api/v1/detect", models.DetectRequest{Text: "too short"}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Text too short. Minimum 20 characters required.", body["error"])
}

func TestDetect_ServiceNotConfigured(t *testing.T) {
	f := newHandlerFixture()

	f.detection.On("Detect", mock.Anything, mock.Anything).
		Return(nil, models.ModalityImage, models.ErrServiceNotConfigured)

	rec := postJSON(f.router, "/api/v1/detect", models.DetectRequest{Image: "aGVsbG8="}, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "AI detection service is not configured", body["error"])
}

func TestDetect_AnonymousSuccessSkipsHistory(t *testing.T) {
	f := newHandlerFixture()

	result := &models.DetectionResult{
		Confidence: 91,
		IsAI:       true,
		Label:      models.LabelAIText,
		Model:      models.TextEnsembleModel,
	}
	f.detection.On("Detect", mock.Anything, mock.Anything).
		Return(result, models.ModalityText, nil)

	rec := postJSON(f.router, "/api/v1/detect", models.DetectRequest{
		Text: "a piece of text comfortably over the length floor",
	}, "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body models.DetectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 91, body.Confidence)
	assert.True(t, body.IsAI)
	assert.Equal(t, models.LabelAIText, body.Label)

	f.history.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDetect_AuthenticatedRequestRecordsHistory(t *testing.T) {
	f := newHandlerFixture()

	result := &models.DetectionResult{Confidence: 42, Label: models.LabelAuthenticText, Model: models.TextEnsembleModel}
	f.detection.On("Detect", mock.Anything, mock.Anything).
		Return(result, models.ModalityText, nil)
	f.history.On("Record", mock.Anything, "user-42", result, mock.MatchedBy(func(u models.UploadMetadata) bool {
		return u.FileType == models.ModalityText && u.FileExtension == "txt"
	})).Return("rec-1", nil)

	rec := postJSON(f.router, "/api/v1/detect", models.DetectRequest{
		Text: "a piece of text comfortably over the length floor",
	}, signToken(t, "user-42"))

	assert.Equal(t, http.StatusOK, rec.Code)
	f.history.AssertExpectations(t)
}

func TestDetect_HistoryFailureDoesNotWithholdResult(t *testing.T) {
	f := newHandlerFixture()

	result := &models.DetectionResult{Confidence: 42, Label: models.LabelAuthenticText, Model: models.TextEnsembleModel}
	f.detection.On("Detect", mock.Anything, mock.Anything).
		Return(result, models.ModalityText, nil)
	f.history.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", models.ErrPersistence)

	rec := postJSON(f.router, "/api/v1/detect", models.DetectRequest{
		Text: "a piece of text comfortably over the length floor",
	}, signToken(t, "user-42"))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body models.DetectionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 42, body.Confidence)
}

func TestDetect_CORSPreflight(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/detect", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestHistoryEndpoints_RequireAuth(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/history/rec-1", nil)
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListHistory_PassesPagination(t *testing.T) {
	f := newHandlerFixture()

	f.history.On("List", mock.Anything, "user-42", 5, 10).
		Return(&models.HistoryListResponse{
			Records: []*models.DetectionHistory{},
			Total:   0,
			Limit:   5,
			Offset:  10,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=5&offset=10", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-42"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	f.history.AssertExpectations(t)
}

func TestDeleteHistory_NotFound(t *testing.T) {
	f := newHandlerFixture()

	f.history.On("Delete", mock.Anything, "user-42", "rec-404").
		Return(nil, models.ErrNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/history/rec-404", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-42"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Record not found", body["error"])
}

func TestRobots_DisallowsAPISurfaces(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "Disallow: /api/")
	assert.Contains(t, rec.Body.String(), "Sitemap: https://detector.example.com/sitemap.xml")
}
