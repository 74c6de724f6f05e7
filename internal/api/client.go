package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"PairTalk/client/internal/models"
)

// TokenFunc supplies the bearer token for authenticated calls.
type TokenFunc func() string

// Client talks to the messaging API. Every call returns either a decoded
// payload or a single-message error; any error means the operation did not
// happen.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
}

func NewClient(baseURL string, token TokenFunc) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/api/v1",
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   token,
	}
}

// FileUpload is one multipart file part.
type FileUpload struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, payload interface{}, withAuth bool, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "encoding request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, withAuth, out)
}

func (c *Client) doMultipart(ctx context.Context, method, endpoint string, build func(w *multipart.Writer) error, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := build(w); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "closing multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, &buf)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, true, out)
}

func (c *Client) do(req *http.Request, withAuth bool, out interface{}) error {
	req.Header.Set("X-Request-ID", uuid.NewString())
	if withAuth {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &models.APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}

// errorMessage extracts the single message an error response carries, trying
// the detail key before the message key.
func errorMessage(r io.Reader) string {
	var body struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r).Decode(&body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return "unexpected error"
}

func writeFilePart(w *multipart.Writer, field string, upload *FileUpload) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+upload.Name+`"`)
	if upload.ContentType != "" {
		h.Set("Content-Type", upload.ContentType)
	} else {
		h.Set("Content-Type", "application/octet-stream")
	}

	part, err := w.CreatePart(h)
	if err != nil {
		return errors.Wrapf(err, "creating %s part", field)
	}
	if _, err := io.Copy(part, upload.Reader); err != nil {
		return errors.Wrapf(err, "writing %s part", field)
	}
	return nil
}
