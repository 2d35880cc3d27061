package service

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"github.com/campuscard/portal-gateway/internal/core/domain"
)

// MaxUploadBytes bounds identity documents and profile photos.
const MaxUploadBytes = 10 << 20

var allowedImageTypes = []string{"image/jpeg", "image/png"}

// CheckImage sniffs the upload content and accepts only JPEG and PNG files up
// to MaxUploadBytes. The declared content type is replaced by the detected one.
func CheckImage(label string, u domain.Upload) (domain.Upload, error) {
	if len(u.Data) == 0 {
		return u, fmt.Errorf("%w: %s is required", domain.ErrValidation, label)
	}
	if len(u.Data) > MaxUploadBytes {
		return u, fmt.Errorf("%w: %s must be <= 10MB", domain.ErrValidation, label)
	}

	mt := mimetype.Detect(u.Data)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		return u, fmt.Errorf("%w: %s: only JPEG/PNG allowed", domain.ErrValidation, label)
	}
	u.ContentType = mt.String()
	return u, nil
}
