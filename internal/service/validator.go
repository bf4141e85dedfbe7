package service

import (
	"fmt"
	"strings"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
)

// ValidationPolicy is the per-modality upload policy. The table below is
// immutable and shared by all requests.
type ValidationPolicy struct {
	AllowedExtensions []string
	AllowedMimeTypes  []string
	MaxSizeBytes      int64
}

var uploadPolicies = map[models.Modality]ValidationPolicy{
	models.ModalityText: {
		AllowedExtensions: []string{"txt", "pdf", "docx"},
		AllowedMimeTypes: []string{
			"text/plain",
			"application/pdf",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
		MaxSizeBytes: 10 << 20,
	},
	models.ModalityImage: {
		AllowedExtensions: []string{"jpg", "jpeg", "png", "webp"},
		AllowedMimeTypes:  []string{"image/jpeg", "image/png", "image/webp"},
		MaxSizeBytes:      10 << 20,
	},
	models.ModalityVideo: {
		AllowedExtensions: []string{"mp4"},
		AllowedMimeTypes:  []string{"video/mp4"},
		MaxSizeBytes:      100 << 20,
	},
}

// PolicyFor returns the upload policy for a modality.
func PolicyFor(modality models.Modality) (ValidationPolicy, bool) {
	p, ok := uploadPolicies[modality]
	return p, ok
}

// ValidateUpload checks a candidate upload against the modality's policy.
// Checks run in order extension, MIME type, size; the first failing check
// returns immediately. The MIME type is the client declaration and is not
// sniffed from content.
func ValidateUpload(filename, mimeType string, size int64, modality models.Modality) error {
	policy, ok := uploadPolicies[modality]
	if !ok {
		return fmt.Errorf("%w: unknown modality %q", models.ErrInvalidType, modality)
	}

	ext := models.FileExtension(filename)
	if !containsString(policy.AllowedExtensions, ext) {
		return fmt.Errorf("%w: accepted: .%s", models.ErrInvalidFormat,
			strings.Join(policy.AllowedExtensions, ", ."))
	}

	if !containsString(policy.AllowedMimeTypes, mimeType) {
		return fmt.Errorf("%w: please upload a valid %s file", models.ErrInvalidType, modality)
	}

	if size > policy.MaxSizeBytes {
		return fmt.Errorf("%w: max size: %dMB", models.ErrFileTooLarge,
			policy.MaxSizeBytes/(1<<20))
	}

	return nil
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
