// Package backend implements the HTTP client for the watermark backend. The
// backend performs the actual embedding, detection scoring, and image edits;
// this package only drives its four endpoints and parses their responses.
//
// The backend's response schema is not authoritative: result filenames may
// arrive under several keys depending on the stage, and error responses may
// carry an error field at top level. Parsing is tolerant, with an ordered
// fallback chain per endpoint (see extract.go).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wmlab/robustwm/internal/config"
	"github.com/wmlab/robustwm/internal/constants"
	"github.com/wmlab/robustwm/internal/models"
	"github.com/wmlab/robustwm/internal/utils"
)

// Client is an HTTP client for the watermark backend.
type Client struct {
	baseURL       string
	uploadsPrefix string
	httpClient    *http.Client
}

// FilePart is a file carried in a multipart request body.
type FilePart struct {
	Field  string
	Name   string
	Reader io.Reader
}

// Body is a parsed backend response. Raw preserves the response bytes so
// document-order extraction rules can be applied; Obj is the decoded object.
type Body struct {
	Status int
	Raw    []byte
	Obj    map[string]interface{}
}

// NewClient creates a backend client from the backend settings. A zero
// request timeout disables client-side timeouts entirely; watermark runs
// on large images can be slow.
func NewClient(cfg *config.BackendSettings) *Client {
	return &Client{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		uploadsPrefix: "/" + strings.Trim(cfg.UploadsPrefix, "/"),
		httpClient:    &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// UploadURL composes the static file-serving URL for a produced filename.
func (c *Client) UploadURL(filename string) string {
	return c.baseURL + c.uploadsPrefix + "/" + filename
}

// postMultipart sends a multipart POST to the given backend path.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, files ...FilePart) (*http.Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, utils.NewInternalError(err)
		}
	}

	for _, fp := range files {
		part, err := mw.CreateFormFile(fp.Field, fp.Name)
		if err != nil {
			return nil, utils.NewInternalError(err)
		}
		if _, err := io.Copy(part, fp.Reader); err != nil {
			return nil, utils.NewInternalError(err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, utils.NewInternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	req.Header.Set(constants.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(constants.HeaderRequestID, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", utils.ErrTransport, http.MethodPost, path, err)
	}

	log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("Backend request completed")

	return resp, nil
}

// safeJSON reads and decodes a response body. A body that is not parseable
// JSON does not fail; it degrades to an object carrying a structured error
// field, which callers treat as a failure.
func safeJSON(resp *http.Response) Body {
	defer resp.Body.Close()

	body := Body{Status: resp.StatusCode}

	raw, err := io.ReadAll(resp.Body)
	if err == nil {
		body.Raw = raw
		var obj map[string]interface{}
		if json.Unmarshal(raw, &obj) == nil && obj != nil {
			body.Obj = obj
			return body
		}
	}

	body.Obj = map[string]interface{}{
		constants.KeyError: fmt.Sprintf("Invalid JSON response (status %d)", resp.StatusCode),
	}
	return body
}

// ok reports whether a status code is a success status.
func ok(status int) bool {
	return status >= 200 && status < 300
}

// Upload sends a file to the upload endpoint and returns the server-side
// filename. A response without a filename field is success with an empty
// name; that quirk is deliberate and callers must not paper over it.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	resp, err := c.postMultipart(ctx, constants.UploadPath, nil, FilePart{
		Field:  constants.FieldFile,
		Name:   name,
		Reader: r,
	})
	if err != nil {
		return "", err
	}

	if !ok(resp.StatusCode) {
		resp.Body.Close()
		return "", utils.NewTransportError(resp.StatusCode)
	}

	body := safeJSON(resp)
	if msg, found := ErrorField(body.Obj); found {
		return "", utils.NewBackendError(msg)
	}

	filename, _ := body.Obj[constants.KeyFilename].(string)
	return filename, nil
}

// AddTextWatermark requests a text watermark on the named server file. Only
// the text-mode field set is sent.
func (c *Client) AddTextWatermark(ctx context.Context, filename, text string, opacity float64, fontSize int) (Body, error) {
	fields := map[string]string{
		constants.FieldFilename: filename,
		constants.FieldText:     text,
		constants.FieldOpacity:  formatFloat(opacity),
		constants.FieldFontSize: fmt.Sprintf("%d", fontSize),
	}

	resp, err := c.postMultipart(ctx, constants.AddWatermarkPath, fields)
	if err != nil {
		return Body{}, err
	}
	if !ok(resp.StatusCode) {
		resp.Body.Close()
		return Body{}, utils.NewTransportError(resp.StatusCode)
	}
	return safeJSON(resp), nil
}

// AddImageWatermark requests an image watermark on the named server file.
// Only the image-mode field set is sent; the watermark image travels in the
// request body and is not part of the pipeline chain.
func (c *Client) AddImageWatermark(ctx context.Context, filename, wmName string, wm io.Reader, scale, opacity float64) (Body, error) {
	fields := map[string]string{
		constants.FieldFilename: filename,
		constants.FieldScale:    formatFloat(scale),
		constants.FieldOpacity:  formatFloat(opacity),
	}

	resp, err := c.postMultipart(ctx, constants.AddWatermarkPath, fields, FilePart{
		Field:  constants.FieldWatermark,
		Name:   wmName,
		Reader: wm,
	})
	if err != nil {
		return Body{}, err
	}
	if !ok(resp.StatusCode) {
		resp.Body.Close()
		return Body{}, utils.NewTransportError(resp.StatusCode)
	}
	return safeJSON(resp), nil
}

// Edit requests a resize or crop of the named server file. The operation's
// defaults must already be applied by the caller.
func (c *Client) Edit(ctx context.Context, filename string, op models.EditOp) (Body, error) {
	fields := map[string]string{
		constants.FieldFilename: filename,
		constants.FieldOp:       op.Op,
	}

	switch op.Op {
	case constants.OpResize:
		fields[constants.FieldWidth] = fmt.Sprintf("%d", op.Width)
		fields[constants.FieldHeight] = fmt.Sprintf("%d", op.Height)
	case constants.OpCrop:
		fields[constants.FieldX] = fmt.Sprintf("%d", op.X)
		fields[constants.FieldY] = fmt.Sprintf("%d", op.Y)
		fields[constants.FieldCropWidth] = fmt.Sprintf("%d", op.CropWidth)
		fields[constants.FieldCropHeight] = fmt.Sprintf("%d", op.CropHeight)
	default:
		return Body{}, utils.NewValidationError(constants.FieldOp, fmt.Sprintf("Unknown op %q", op.Op))
	}

	resp, err := c.postMultipart(ctx, constants.EditPath, fields)
	if err != nil {
		return Body{}, err
	}
	if !ok(resp.StatusCode) {
		resp.Body.Close()
		return Body{}, utils.NewTransportError(resp.StatusCode)
	}
	return safeJSON(resp), nil
}

// Check runs the detection endpoint against a target and a backend-side
// template. Unlike the other stages, a non-success status is not turned into
// an error here: the detection stage counts every response that arrives and
// parses, including backend errors, so the body is always parsed and
// returned. Only network-level failures propagate as errors.
func (c *Client) Check(ctx context.Context, filename, template string) (Body, error) {
	fields := map[string]string{
		constants.FieldFilename:         filename,
		constants.FieldTemplateFilename: template,
	}

	resp, err := c.postMultipart(ctx, constants.CheckPath, fields)
	if err != nil {
		return Body{}, err
	}
	return safeJSON(resp), nil
}

// FetchUpload retrieves a produced file from the backend's static path.
func (c *Client) FetchUpload(ctx context.Context, filename string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.UploadURL(filename), nil)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", utils.ErrTransport, filename, err)
	}
	defer resp.Body.Close()

	if !ok(resp.StatusCode) {
		return nil, utils.NewTransportError(resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// formatFloat renders a float form value the way the backend parses it.
func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}
