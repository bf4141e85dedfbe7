package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
)

type mockInferenceClient struct {
	mock.Mock
}

func (m *mockInferenceClient) DetectVideo(ctx context.Context, videoURL string, threshold *float64) (*models.DetectionResult, error) {
	args := m.Called(ctx, videoURL, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DetectionResult), args.Error(1)
}

func (m *mockInferenceClient) DetectImage(ctx context.Context, imageBase64 string) (*models.DetectionResult, error) {
	args := m.Called(ctx, imageBase64)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DetectionResult), args.Error(1)
}

func (m *mockInferenceClient) DetectText(ctx context.Context, text string) (*models.DetectionResult, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DetectionResult), args.Error(1)
}

func TestDetect_VideoWinsOverImageAndText(t *testing.T) {
	client := new(mockInferenceClient)
	svc := NewDetectionService(client, zerolog.Nop())

	client.On("DetectVideo", mock.Anything, "https://cdn.example.com/clip.mp4", (*float64)(nil)).
		Return(&models.DetectionResult{Label: models.LabelDeepfakeVideo}, nil)

	_, modality, err := svc.Detect(context.Background(), &models.DetectRequest{
		VideoURL: "https://cdn.example.com/clip.mp4",
		Image:    "aGVsbG8=",
		Text:     "some text that is long enough either way",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ModalityVideo, modality)
	client.AssertNotCalled(t, "DetectImage", mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "DetectText", mock.Anything, mock.Anything)
}

func TestDetect_ImageWinsOverText(t *testing.T) {
	client := new(mockInferenceClient)
	svc := NewDetectionService(client, zerolog.Nop())

	client.On("DetectImage", mock.Anything, "aGVsbG8=").
		Return(&models.DetectionResult{Label: models.LabelAuthenticImage}, nil)

	_, modality, err := svc.Detect(context.Background(), &models.DetectRequest{
		Image: "aGVsbG8=",
		Text:  "some text that is long enough either way",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ModalityImage, modality)
	client.AssertNotCalled(t, "DetectText", mock.Anything, mock.Anything)
}

func TestDetect_ShortTextRejectedBeforeUpstreamCall(t *testing.T) {
	client := new(mockInferenceClient)
	svc := NewDetectionService(client, zerolog.Nop())

	_, modality, err := svc.Detect(context.Background(), &models.DetectRequest{Text: "too short"})

	assert.True(t, errors.Is(err, models.ErrTextTooShort))
	assert.Equal(t, models.ModalityText, modality)
	client.AssertNotCalled(t, "DetectText", mock.Anything, mock.Anything)
}

func TestDetect_WhitespacePaddingDoesNotCount(t *testing.T) {
	client := new(mockInferenceClient)
	svc := NewDetectionService(client, zerolog.Nop())

	// 10 visible characters padded to 30 with whitespace.
	_, _, err := svc.Detect(context.Background(), &models.DetectRequest{
		Text: "          short text          ",
	})

	assert.True(t, errors.Is(err, models.ErrTextTooShort))
}

func TestDetect_EmptyRequest(t *testing.T) {
	client := new(mockInferenceClient)
	svc := NewDetectionService(client, zerolog.Nop())

	_, _, err := svc.Detect(context.Background(), &models.DetectRequest{})

	assert.True(t, errors.Is(err, models.ErrInvalidType))
}
