package inference

import (
	"fmt"
	"math"
	"strings"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
)

// defaultConfidence is used when the upstream image or text payload carries no
// confidence field at all: missing confidence maps to "uncertain" rather than
// a failure. Flagged for product confirmation in DESIGN.md.
const defaultConfidence = 0.5

// roundPercent converts a 0-1 probability to an integer percentage with
// half-up rounding.
func roundPercent(p float64) int {
	return int(math.Round(p * 100))
}

// mapVideoResponse maps the layered video verdict onto the canonical shape,
// preserving upstream layer order.
func mapVideoResponse(raw *VideoResponse) (*models.DetectionResult, error) {
	if raw.Error != "" {
		return nil, fmt.Errorf("%w: %s", models.ErrUpstream, raw.Error)
	}

	isAI := raw.FinalVerdict == "FAKE"

	label := models.LabelAuthenticVideo
	if isAI {
		label = models.LabelDeepfakeVideo
	}

	layers := make([]models.LayerResult, 0, len(raw.LayerResults))
	for _, lr := range raw.LayerResults {
		verdict := "REAL"
		if lr.IsFake {
			verdict = "FAKE"
		}
		layers = append(layers, models.LayerResult{
			Name:       lr.LayerName,
			Verdict:    verdict,
			Confidence: roundPercent(lr.Confidence),
			Time:       lr.ProcessingTime,
		})
	}

	totalTime := raw.TotalTime
	return &models.DetectionResult{
		Confidence:     roundPercent(raw.Confidence),
		IsAI:           isAI,
		Label:          label,
		Model:          models.VideoPipelineModel,
		ProcessingTime: &totalTime,
		TotalTime:      &totalTime,
		StoppedAt:      raw.StoppedAtLayer,
		Layers:         layers,
	}, nil
}

// mapImageResponse maps the label/score guess of the legacy image path.
// Fallback chains, in order: top_prediction then label for the verdict
// string; confidence then score then 0.5 for the probability.
func mapImageResponse(raw *ImageResponse) (*models.DetectionResult, error) {
	if raw.Error != "" {
		return nil, fmt.Errorf("%w: %s", models.ErrUpstream, raw.Error)
	}

	topPrediction := strings.ToUpper(firstString(raw.TopPrediction, raw.Label))
	isAI := strings.Contains(topPrediction, "AI") ||
		strings.Contains(topPrediction, "FAKE") ||
		strings.Contains(topPrediction, "GENERATED")

	label := models.LabelAuthenticImage
	if isAI {
		label = models.LabelAIImage
	}

	result := &models.DetectionResult{
		Confidence:    roundPercent(firstFloat(defaultConfidence, raw.Confidence, raw.Score)),
		IsAI:          isAI,
		Label:         label,
		Model:         models.ImageModel,
		TopPrediction: topPrediction,
	}

	for _, p := range raw.Predictions {
		result.Predictions = append(result.Predictions, models.ImagePrediction{
			Label: p.Label,
			Score: p.Score,
		})
	}

	return result, nil
}

// mapTextResponse maps the ensemble text verdict. The upstream success flag
// is authoritative: success=false is an upstream error regardless of any
// other fields present.
func mapTextResponse(raw *TextResponse) (*models.DetectionResult, error) {
	if raw.Error != "" {
		return nil, fmt.Errorf("%w: %s", models.ErrUpstream, raw.Error)
	}
	if !raw.Success {
		return nil, fmt.Errorf("%w: text detection failed", models.ErrUpstream)
	}
	if raw.Result == nil {
		return nil, fmt.Errorf("%w: missing result body", models.ErrMalformedResponse)
	}

	isAI := raw.Result.IsAI

	label := models.LabelAuthenticText
	if isAI {
		label = models.LabelAIText
	}

	return &models.DetectionResult{
		Confidence:    roundPercent(firstFloat(defaultConfidence, raw.Result.Confidence)),
		IsAI:          isAI,
		Label:         label,
		Model:         models.TextEnsembleModel,
		Prediction:    raw.Result.Prediction,
		Agreement:     raw.Result.Agreement,
		EnsembleScore: raw.Result.EnsembleScore,
		Breakdown:     raw.Result.Breakdown,
	}, nil
}

// firstString returns the first non-nil candidate, or "" when all are nil.
func firstString(candidates ...*string) string {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return ""
}

// firstFloat returns the first non-nil candidate, or the fallback when all
// are nil.
func firstFloat(fallback float64, candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return fallback
}
