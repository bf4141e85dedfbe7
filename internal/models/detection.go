package models

import "encoding/json"

// Modality is the kind of content being analyzed.
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityImage Modality = "image"
	ModalityVideo Modality = "video"
)

func (m Modality) String() string {
	return string(m)
}

// ParseModality maps a request value to a known modality.
func ParseModality(s string) (Modality, bool) {
	switch Modality(s) {
	case ModalityText, ModalityImage, ModalityVideo:
		return Modality(s), true
	}
	return "", false
}

// Fixed model identifiers and verdict labels reported to callers.
const (
	VideoPipelineModel = "Balanced-3Layer-Pipeline-v1"
	ImageModel         = "EfficientFormer-S2V1"
	TextEnsembleModel  = "Ensemble-AI-Detector-v3"

	LabelDeepfakeVideo  = "Deepfake Video Detected"
	LabelAuthenticVideo = "Authentic Video"
	LabelAIImage        = "AI-Generated Content Detected"
	LabelAuthenticImage = "Authentic Human Content"
	LabelAIText         = "AI-Generated Text Detected"
	LabelAuthenticText  = "Authentic Human Text"
)

// LayerResult is one stage of the multi-layer video pipeline, mapped to the
// canonical shape (confidence as an integer percentage).
type LayerResult struct {
	Name       string  `json:"name"`
	Verdict    string  `json:"verdict"`
	Confidence int     `json:"confidence"`
	Time       float64 `json:"time"`
}

// ImagePrediction is a single per-class score from the image classifier.
type ImagePrediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// DetectionResult is the canonical response shape guaranteed to all callers
// regardless of modality. Confidence is always an integer percentage in
// [0,100]; IsAI is always derived, never left ambiguous. Instances are
// constructed fresh per request and never mutated afterwards.
type DetectionResult struct {
	Confidence int    `json:"confidence"`
	IsAI       bool   `json:"isAI"`
	Label      string `json:"label"`
	Model      string `json:"model"`

	// Video-specific fields.
	ProcessingTime *float64      `json:"processing_time,omitempty"`
	Layers         []LayerResult `json:"layers,omitempty"`
	StoppedAt      string        `json:"stopped_at,omitempty"`
	TotalTime      *float64      `json:"total_time,omitempty"`

	// Image-specific fields.
	Predictions   []ImagePrediction `json:"predictions,omitempty"`
	TopPrediction string            `json:"top_prediction,omitempty"`

	// Text-specific fields.
	Prediction    string          `json:"prediction,omitempty"`
	Agreement     string          `json:"agreement,omitempty"`
	EnsembleScore *float64        `json:"ensemble_score,omitempty"`
	Breakdown     json.RawMessage `json:"breakdown,omitempty"`
}
