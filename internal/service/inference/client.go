package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/BlackPool25/AI-Detector-Web/internal/config"
	"github.com/BlackPool25/AI-Detector-Web/internal/models"
	"github.com/rs/zerolog"
)

// Client talks to the external inference service. One inbound detection maps
// to exactly one upstream call; there are no retries at this layer, and any
// transport or shape failure surfaces to the caller as an upstream or
// malformed-response error.
type Client interface {
	DetectVideo(ctx context.Context, videoURL string, threshold *float64) (*models.DetectionResult, error)
	DetectImage(ctx context.Context, imageBase64 string) (*models.DetectionResult, error)
	DetectText(ctx context.Context, text string) (*models.DetectionResult, error)
}

type client struct {
	cfg    config.InferenceConfig
	client *http.Client
	logger zerolog.Logger
}

func NewClient(cfg config.InferenceConfig, logger zerolog.Logger) Client {
	return &client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

func (c *client) DetectVideo(ctx context.Context, videoURL string, threshold *float64) (*models.DetectionResult, error) {
	endpoint := c.cfg.VideoEndpoint()
	if endpoint == "" {
		return nil, fmt.Errorf("%w: no video endpoint", models.ErrServiceNotConfigured)
	}

	t := c.cfg.Threshold
	if threshold != nil {
		t = *threshold
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid video endpoint: %v", models.ErrServiceNotConfigured, err)
	}
	q := u.Query()
	q.Set("video_url", videoURL)
	q.Set("threshold", strconv.FormatFloat(t, 'f', -1, 64))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	c.logger.Info().Str("video_url", videoURL).Float64("threshold", t).Msg("Processing video")

	var raw VideoResponse
	if err := c.do(req, &raw); err != nil {
		return nil, err
	}

	result, err := mapVideoResponse(&raw)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("label", result.Label).
		Int("confidence", result.Confidence).
		Int("layers", len(result.Layers)).
		Str("stopped_at", result.StoppedAt).
		Msg("Video detection completed")

	return result, nil
}

func (c *client) DetectImage(ctx context.Context, imageBase64 string) (*models.DetectionResult, error) {
	if c.cfg.ImageURL == "" {
		return nil, fmt.Errorf("%w: no image endpoint", models.ErrServiceNotConfigured)
	}

	body, err := json.Marshal(imageRequest{
		Image:           imageBase64,
		ReturnAllScores: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ImageURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	c.logger.Info().Msg("Processing image")

	var raw ImageResponse
	if err := c.do(req, &raw); err != nil {
		return nil, err
	}

	result, err := mapImageResponse(&raw)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("label", result.Label).
		Int("confidence", result.Confidence).
		Msg("Image detection completed")

	return result, nil
}

func (c *client) DetectText(ctx context.Context, text string) (*models.DetectionResult, error) {
	if c.cfg.TextURL == "" {
		return nil, fmt.Errorf("%w: no text endpoint", models.ErrServiceNotConfigured)
	}

	body, err := json.Marshal(textRequest{
		Text:             text,
		Format:           "web",
		IncludeBreakdown: true,
		EnableProvenance: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TextURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	c.logger.Info().Int("text_length", len(text)).Msg("Processing text")

	var raw TextResponse
	if err := c.do(req, &raw); err != nil {
		return nil, err
	}

	result, err := mapTextResponse(&raw)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("label", result.Label).
		Int("confidence", result.Confidence).
		Msg("Text detection completed")

	return result, nil
}

// authorize attaches the bearer token only when one is configured.
func (c *client) authorize(req *http.Request) {
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
}

// do executes a single upstream call and decodes the success body into dst.
func (c *client) do(req *http.Request, dst any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("Inference service error")
		return fmt.Errorf("%w: status %d", models.ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", models.ErrMalformedResponse, err)
	}

	return nil
}
