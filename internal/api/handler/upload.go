package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/service"
)

// formUpload reads one multipart file. A missing file yields an empty Upload
// so the service can report which document is required.
func formUpload(c echo.Context, field string) (domain.Upload, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return domain.Upload{Field: field}, nil
	}
	if err != nil {
		return domain.Upload{}, fmt.Errorf("%w: %s: unreadable upload", domain.ErrValidation, field)
	}
	if fh.Size > service.MaxUploadBytes {
		return domain.Upload{}, fmt.Errorf("%w: %s must be <= 10MB", domain.ErrValidation, field)
	}

	f, err := fh.Open()
	if err != nil {
		return domain.Upload{}, fmt.Errorf("%w: %s: unreadable upload", domain.ErrValidation, field)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxUploadBytes+1))
	if err != nil {
		return domain.Upload{}, fmt.Errorf("%w: %s: unreadable upload", domain.ErrValidation, field)
	}
	return domain.Upload{
		Field:       field,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
