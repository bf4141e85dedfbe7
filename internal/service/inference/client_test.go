package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BlackPool25/AI-Detector-Web/internal/config"
	"github.com/BlackPool25/AI-Detector-Web/internal/models"
)

func newTestClient(cfg config.InferenceConfig) Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = 0.33
	}
	return NewClient(cfg, zerolog.Nop())
}

func TestDetectVideo_SendsQueryParamsAndBearer(t *testing.T) {
	var gotQuery map[string]string
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotQuery = map[string]string{
			"video_url": r.URL.Query().Get("video_url"),
			"threshold": r.URL.Query().Get("threshold"),
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(VideoResponse{FinalVerdict: "REAL", Confidence: 0.2})
	}))
	defer srv.Close()

	c := newTestClient(config.InferenceConfig{VideoURL: srv.URL, APIKey: "secret-key"})

	result, err := c.DetectVideo(context.Background(), "https://cdn.example.com/clip.mp4", nil)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/clip.mp4", gotQuery["video_url"])
	assert.Equal(t, "0.33", gotQuery["threshold"])
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.False(t, result.IsAI)
}

func TestDetectVideo_CallerThresholdOverridesDefault(t *testing.T) {
	var gotThreshold string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotThreshold = r.URL.Query().Get("threshold")
		json.NewEncoder(w).Encode(VideoResponse{FinalVerdict: "REAL"})
	}))
	defer srv.Close()

	c := newTestClient(config.InferenceConfig{VideoURL: srv.URL})
	threshold := 0.7

	_, err := c.DetectVideo(context.Background(), "https://cdn.example.com/clip.mp4", &threshold)

	require.NoError(t, err)
	assert.Equal(t, "0.7", gotThreshold)
}

func TestDetectVideo_NoBearerWithoutAPIKey(t *testing.T) {
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(VideoResponse{FinalVerdict: "REAL"})
	}))
	defer srv.Close()

	c := newTestClient(config.InferenceConfig{VideoURL: srv.URL})

	_, err := c.DetectVideo(context.Background(), "https://cdn.example.com/clip.mp4", nil)

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestDetectVideo_LegacyURLFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(VideoResponse{FinalVerdict: "FAKE", Confidence: 0.8})
	}))
	defer srv.Close()

	c := newTestClient(config.InferenceConfig{LegacyURL: srv.URL})

	result, err := c.DetectVideo(context.Background(), "https://cdn.example.com/clip.mp4", nil)

	require.NoError(t, err)
	assert.True(t, result.IsAI)
}

func TestDetectImage_PostsJSONBody(t *testing.T) {
	var gotPath string
	var gotBody imageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		label := "human"
		conf := 0.9
		json.NewEncoder(w).Encode(ImageResponse{TopPrediction: &label, Confidence: &conf})
	}))
	defer srv.Close()

	c := newTestClient(config.InferenceConfig{ImageURL: srv.URL})

	result, err := c.DetectImage(context.Background(), "aGVsbG8=")

	require.NoError(t, err)
	assert.Equal(t, "/predict", gotPath)
	assert.Equal(t, "aGVsbG8=", gotBody.Image)
	assert.True(t, gotBody.ReturnAllScores)
	assert.Equal(t, 90, result.Confidence)
}

func TestDetectText_PostsJSONBody(t *testing.T) {
	var gotBody textRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		conf := 0.77
		json.NewEncoder(w).Encode(TextResponse{
			Success: true,
			Result:  &TextResult{IsAI: true, Confidence: &conf},
		})
	}))
	defer srv.Close()

	c := newTestClient(config.InferenceConfig{TextURL: srv.URL})

	result, err := c.DetectText(context.Background(), "this text was definitely written by a machine")

	require.NoError(t, err)
	assert.Equal(t, "this text was definitely written by a machine", gotBody.Text)
	assert.Equal(t, "web", gotBody.Format)
	assert.True(t, gotBody.IncludeBreakdown)
	assert.False(t, gotBody.EnableProvenance)
	assert.True(t, result.IsAI)
	assert.Equal(t, 77, result.Confidence)
}

func TestDetect_MissingEndpointFailsFast(t *testing.T) {
	c := newTestClient(config.InferenceConfig{})

	_, err := c.DetectVideo(context.Background(), "https://cdn.example.com/clip.mp4", nil)
	assert.True(t, errors.Is(err, models.ErrServiceNotConfigured))

	_, err = c.DetectImage(context.Background(), "aGVsbG8=")
	assert.True(t, errors.Is(err, models.ErrServiceNotConfigured))

	_, err = c.DetectText(context.Background(), "some text long enough to pass validation")
	assert.True(t, errors.Is(err, models.ErrServiceNotConfigured))
}

func TestDetect_Non2xxIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(config.InferenceConfig{TextURL: srv.URL})

	_, err := c.DetectText(context.Background(), "some text long enough to pass validation")

	assert.True(t, errors.Is(err, models.ErrUpstream))
	assert.Contains(t, err.Error(), "503")
}

func TestDetect_UndecodableBodyIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer srv.Close()

	c := newTestClient(config.InferenceConfig{TextURL: srv.URL})

	_, err := c.DetectText(context.Background(), "some text long enough to pass validation")

	assert.True(t, errors.Is(err, models.ErrMalformedResponse))
}

func TestDetect_TransportErrorIsUpstream(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(config.InferenceConfig{TextURL: srv.URL})

	_, err := c.DetectText(context.Background(), "some text long enough to pass validation")

	assert.True(t, errors.Is(err, models.ErrUpstream))
}
