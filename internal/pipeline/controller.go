// Package pipeline orchestrates the watermarking demo pipeline: file intake,
// upload, watermark, edit, and detection check, plus the quick demonstration
// flow chaining them. Each user action is one self-contained operation; a
// failed stage leaves the prior pipeline state untouched, except where a
// stage deliberately falls back to its input filename.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/wmlab/robustwm/internal/backend"
	"github.com/wmlab/robustwm/internal/config"
	"github.com/wmlab/robustwm/internal/constants"
	"github.com/wmlab/robustwm/internal/models"
	"github.com/wmlab/robustwm/internal/session"
	"github.com/wmlab/robustwm/internal/utils"
)

// Controller drives the pipeline against one session. It owns the session
// state exclusively; handlers read the latest persisted values on every
// invocation rather than values captured earlier.
type Controller struct {
	client *backend.Client
	cfg    *config.AppConfig
	store  *session.Store
	sess   *session.Session
}

// NewController creates a controller over a loaded session.
func NewController(client *backend.Client, cfg *config.AppConfig, store *session.Store, sess *session.Session) *Controller {
	return &Controller{
		client: client,
		cfg:    cfg,
		store:  store,
		sess:   sess,
	}
}

// Session exposes the controller's session state.
func (c *Controller) Session() *session.Session {
	return c.sess
}

// DisplayURL returns the backend URL of the currently displayed server-side
// image, or empty while the local preview is shown.
func (c *Controller) DisplayURL() string {
	if c.sess.Displayed == "" {
		return ""
	}
	return c.cfg.Backend.UploadURL(c.sess.Displayed)
}

// save persists the session after a state mutation.
func (c *Controller) save() error {
	if err := c.store.Save(c.sess); err != nil {
		return utils.NewInternalError(err)
	}
	return nil
}

// SelectFile makes a local file the active selection, invalidating the whole
// downstream chain. No file-type or size validation is performed; the
// backend accepts whatever it is given and that behavior is preserved here.
func (c *Controller) SelectFile(path string) (*session.LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, utils.NewNotFoundError("File", path)
	}

	f := session.LocalFile{
		Name: filepath.Base(path),
		Size: info.Size(),
		Path: path,
	}
	c.sess.SetLocal(f)

	if err := c.save(); err != nil {
		return nil, err
	}

	stageLog := utils.StageLogger("load", uuid.NewString())
	stageLog.Info().
		Str("file", f.Name).
		Str("size", utils.FormatByteSize(f.Size)).
		Msg("Local file selected")

	return &f, nil
}

// EnsureUploaded returns the cached server-side filename of the active local
// file, uploading it first if no upload has happened yet. The cached result
// is reused by later stages.
func (c *Controller) EnsureUploaded(ctx context.Context) (string, error) {
	if c.sess.Uploaded != "" {
		return c.sess.Uploaded, nil
	}

	if !c.sess.HasLocal() {
		return "", utils.NewMissingInputError("Choose an image first")
	}

	file, err := os.Open(c.sess.Local.Path)
	if err != nil {
		return "", utils.NewInternalError(err)
	}
	defer file.Close()

	filename, err := c.client.Upload(ctx, c.sess.Local.Name, file)
	if err != nil {
		return "", err
	}

	// The backend may omit the filename field; an empty name is recorded
	// as-is and a later stage will upload again.
	c.sess.Uploaded = filename
	if err := c.save(); err != nil {
		return "", err
	}

	stageLog := utils.StageLogger("upload", uuid.NewString())
	stageLog.Info().
		Str("filename", filename).
		Msg("Upload completed")
	return filename, nil
}

// Watermark embeds a watermark into the uploaded image, uploading lazily if
// needed. Exactly one variant's field set is sent, determined by the config
// mode. The result filename becomes the displayed image and the chain's
// watermarked entry; when the response yields no recognizable filename the
// stage assumes the backend overwrote the input in place and reuses the
// input filename.
func (c *Controller) Watermark(ctx context.Context, cfg models.WatermarkConfig) (string, error) {
	input, err := c.EnsureUploaded(ctx)
	if err != nil {
		return "", err
	}

	cfg.ApplyDefaults()

	var body backend.Body
	switch cfg.Mode {
	case models.WatermarkImage:
		if cfg.ImagePath == "" {
			return "", utils.NewMissingInputError("Choose a watermark image first")
		}
		wm, err := os.Open(cfg.ImagePath)
		if err != nil {
			return "", utils.NewNotFoundError("Watermark image", cfg.ImagePath)
		}
		defer wm.Close()

		body, err = c.client.AddImageWatermark(ctx, input, filepath.Base(cfg.ImagePath), wm, cfg.Scale, cfg.Opacity)
		if err != nil {
			return "", err
		}
	default:
		body, err = c.client.AddTextWatermark(ctx, input, cfg.Text, cfg.Opacity, cfg.FontSize)
		if err != nil {
			return "", err
		}
	}

	if msg, found := backend.ErrorField(body.Obj); found {
		return "", utils.NewBackendError(msg)
	}

	result, found := backend.ExtractWatermarked(body)
	if !found {
		result = input
	}
	result = utils.SanitizeFilename(result)

	c.sess.Watermarked = result
	c.sess.Displayed = result
	if err := c.save(); err != nil {
		return "", err
	}

	stageLog := utils.StageLogger("watermark", uuid.NewString())
	stageLog.Info().
		Str("filename", result).
		Str("mode", string(cfg.Mode)).
		Msg("Watermark applied")
	return result, nil
}

// Edit resizes or crops the most recently produced pipeline filename. A
// resize with a missing width or height never reaches the network and
// mutates nothing; crop fields left empty are defaulted instead. When the
// response yields no recognizable filename the input filename is redisplayed
// and reported as the result.
func (c *Controller) Edit(ctx context.Context, op models.EditOp) (string, error) {
	input := c.sess.Latest()
	if input == "" {
		return "", utils.NewMissingInputError("Upload an image first")
	}

	switch op.Op {
	case constants.OpResize:
		if err := utils.ValidateStruct(models.ResizeParams{Width: op.Width, Height: op.Height}); err != nil {
			return "", utils.NewMissingInputError("Width and height are required for resize")
		}
	case constants.OpCrop:
		op.ApplyDefaults()
	}

	body, err := c.client.Edit(ctx, input, op)
	if err != nil {
		return "", err
	}

	if msg, found := backend.ErrorField(body.Obj); found {
		return "", utils.NewBackendError(msg)
	}

	result, found := backend.ExtractEdited(body)
	if !found {
		result = input
	}
	result = utils.SanitizeFilename(result)

	c.sess.Edited = result
	c.sess.Displayed = result
	if err := c.save(); err != nil {
		return "", err
	}

	stageLog := utils.StageLogger("edit", uuid.NewString())
	stageLog.Info().
		Str("filename", result).
		Str("op", op.Op).
		Msg("Edit applied")
	return result, nil
}

// CheckResult is the outcome of one detection check.
type CheckResult struct {
	// Report is the backend's JSON response, pretty-printed verbatim. Its
	// schema is opaque; only found and max_val are interpreted.
	Report string

	// Found reports whether the backend claimed a positive match.
	Found bool

	// Score is the formatted detection score.
	Score string

	// Stats are the session statistics after this check.
	Stats session.Stats
}

// Check runs watermark detection of a backend-side template against the
// latest pipeline image. The tests-run counter increments for every response
// that arrives and parses, backend errors included; only a network-level
// failure leaves the counters untouched.
func (c *Controller) Check(ctx context.Context, template string) (*CheckResult, error) {
	template = strings.TrimSpace(template)
	if template == "" {
		return nil, utils.NewMissingInputError("Enter a template filename")
	}

	target := c.sess.Latest()
	if target == "" {
		return nil, utils.NewMissingInputError("Upload an image first")
	}

	body, err := c.client.Check(ctx, target, template)
	if err != nil {
		return nil, err
	}

	// Counters update after parsing, never before.
	c.sess.Stats.Tests++
	found := backend.Truthy(body.Obj[constants.KeyFound])
	if found {
		c.sess.Stats.Found++
	}
	score := backend.FormatScore(body.Obj[constants.KeyMaxVal])
	c.sess.Stats.LastScore = score

	if err := c.save(); err != nil {
		return nil, err
	}

	stageLog := utils.StageLogger("check", uuid.NewString())
	stageLog.Info().
		Str("target", target).
		Str("template", template).
		Bool("found", found).
		Str("score", score).
		Msg("Detection check completed")

	return &CheckResult{
		Report: prettyReport(body),
		Found:  found,
		Score:  score,
		Stats:  c.sess.Stats,
	}, nil
}
