package inference

import "encoding/json"

// Upstream wire shapes, one per modality. The contract is externally
// controlled and weakly schematized: optional values are pointers so field
// presence stays observable, and concepts with multiple possible field names
// (top_prediction vs label, confidence vs score) keep one field per name with
// an explicit fallback chain in the mapper.

// VideoLayerResult is one stage of the upstream layered video pipeline.
type VideoLayerResult struct {
	LayerName      string          `json:"layer_name"`
	IsFake         bool            `json:"is_fake"`
	Confidence     float64         `json:"confidence"`
	ProcessingTime float64         `json:"processing_time"`
	Details        json.RawMessage `json:"details,omitempty"`
}

// VideoResponse is the layered verdict returned by the video endpoint.
type VideoResponse struct {
	VideoPath      string             `json:"video_path"`
	FinalVerdict   string             `json:"final_verdict"`
	Confidence     float64            `json:"confidence"`
	StoppedAtLayer string             `json:"stopped_at_layer"`
	LayerResults   []VideoLayerResult `json:"layer_results"`
	TotalTime      float64            `json:"total_time"`
	Error          string             `json:"error,omitempty"`
	ErrorType      string             `json:"error_type,omitempty"`
}

// ImagePredictionScore is a per-class score present when all scores were
// requested.
type ImagePredictionScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ImageResponse is the label/score guess returned by the image endpoint.
type ImageResponse struct {
	TopPrediction *string                `json:"top_prediction"`
	Label         *string                `json:"label"`
	Confidence    *float64               `json:"confidence"`
	Score         *float64               `json:"score"`
	Predictions   []ImagePredictionScore `json:"predictions,omitempty"`
	Error         string                 `json:"error,omitempty"`
}

// TextResult is the ensemble verdict body of a successful text response.
type TextResult struct {
	IsAI          bool            `json:"is_ai"`
	Confidence    *float64        `json:"confidence"`
	Prediction    string          `json:"prediction,omitempty"`
	Agreement     string          `json:"agreement,omitempty"`
	EnsembleScore *float64        `json:"ensemble_score,omitempty"`
	Breakdown     json.RawMessage `json:"breakdown,omitempty"`
}

// TextResponse is the envelope returned by the text endpoint.
type TextResponse struct {
	Success bool        `json:"success"`
	Result  *TextResult `json:"result"`
	Error   string      `json:"error,omitempty"`
}

// Outbound body shapes.

type imageRequest struct {
	Image           string `json:"image"`
	ReturnAllScores bool   `json:"return_all_scores"`
}

type textRequest struct {
	Text             string `json:"text"`
	Format           string `json:"format"`
	IncludeBreakdown bool   `json:"include_breakdown"`
	EnableProvenance bool   `json:"enable_provenance"`
}
