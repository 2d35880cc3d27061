// Package remote is the HTTP client of the campus card registration backend.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuscard/portal-gateway/internal/api/metrics"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 8 << 20
)

// Config captures the backend location.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client issues requests against the backend REST API.
type Client struct {
	base *url.URL
	http *http.Client
	log  zerolog.Logger
}

// New validates cfg and returns a Client.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("remote: invalid base url %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}, nil
}

// Form is a multipart body.
type Form struct {
	Fields [][2]string
	Files  []File
}

// File is one multipart attachment.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// Request describes one backend call. Auth requests carry Token as a bearer
// credential; Endpoint labels metrics and errors.
type Request struct {
	Endpoint string
	Method   string
	Path     string
	JSON     any
	Form     *Form
	Auth     bool
	Token    string
}

// Do sends req and decodes a JSON response into out (when non-nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if req.Auth && req.Token == "" {
		return &Error{Endpoint: req.Endpoint, Status: http.StatusUnauthorized, Message: "missing credential", Unauthorized: true}
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return &Error{Endpoint: req.Endpoint, Message: "build request", Cause: err}
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	metrics.RemoteRequestDuration.WithLabelValues(req.Endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RemoteRequestsTotal.WithLabelValues(req.Endpoint, "error").Inc()
		return &Error{Endpoint: req.Endpoint, Message: "backend unreachable", Cause: err}
	}
	defer resp.Body.Close()
	metrics.RemoteRequestsTotal.WithLabelValues(req.Endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Endpoint: req.Endpoint, Status: resp.StatusCode, Message: "read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &Error{
			Endpoint:     req.Endpoint,
			Status:       resp.StatusCode,
			Message:      messageFrom(resp.StatusCode, body),
			Unauthorized: req.Auth && resp.StatusCode == http.StatusUnauthorized,
		}
		c.log.Debug().
			Str("endpoint", req.Endpoint).
			Int("status", resp.StatusCode).
			Str("message", e.Message).
			Msg("backend call failed")
		return e
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Endpoint: req.Endpoint, Status: resp.StatusCode, Message: "invalid response body", Cause: err}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := c.base.String() + req.Path

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Form != nil:
		buf, ct, err := encodeForm(req.Form)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case req.JSON != nil:
		b, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body, contentType = bytes.NewReader(b), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Auth {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	return httpReq, nil
}

func encodeForm(f *Form) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, kv := range f.Fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", fmt.Errorf("encode field %s: %w", kv[0], err)
		}
	}
	for _, file := range f.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("encode file %s: %w", file.Field, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("encode file %s: %w", file.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// Ping reports whether the backend answers at all; any HTTP status counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base.String()+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			return ue.Err
		}
		return err
	}
	resp.Body.Close()
	return nil
}
