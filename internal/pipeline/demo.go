package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"math"

	// Decoders for measuring the watermarked image's natural dimensions.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog/log"

	"github.com/wmlab/robustwm/internal/backend"
	"github.com/wmlab/robustwm/internal/constants"
	"github.com/wmlab/robustwm/internal/models"
	"github.com/wmlab/robustwm/internal/utils"
)

// DemoResult describes the pipeline state after a quick demonstration run.
type DemoResult struct {
	Uploaded    string
	Watermarked string
	Edited      string
	DisplayURL  string
}

// QuickDemo chains upload, text watermark, and a resize to 75% of the
// watermarked image's natural pixel dimensions, measured by fetching and
// decoding the produced image. It stops short of detection. Any stage
// failure aborts the remaining chain; completed stages stay in the session
// for manual continuation.
func (c *Controller) QuickDemo(ctx context.Context, cfg models.WatermarkConfig) (*DemoResult, error) {
	cfg.Mode = models.WatermarkText

	if _, err := c.EnsureUploaded(ctx); err != nil {
		return nil, err
	}

	watermarked, err := c.Watermark(ctx, cfg)
	if err != nil {
		return nil, err
	}

	data, err := c.client.FetchUpload(ctx, watermarked)
	if err != nil {
		return nil, err
	}

	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, utils.NewBackendError("Could not decode the watermarked image")
	}

	width := int(math.Round(float64(imgCfg.Width) * constants.DemoResizeFactor))
	height := int(math.Round(float64(imgCfg.Height) * constants.DemoResizeFactor))

	log.Debug().
		Int("natural_width", imgCfg.Width).
		Int("natural_height", imgCfg.Height).
		Int("width", width).
		Int("height", height).
		Msg("Demo resize dimensions computed")

	if _, err := c.Edit(ctx, models.Resize(width, height)); err != nil {
		return nil, err
	}

	return &DemoResult{
		Uploaded:    c.sess.Uploaded,
		Watermarked: c.sess.Watermarked,
		Edited:      c.sess.Edited,
		DisplayURL:  c.DisplayURL(),
	}, nil
}

// prettyReport renders a backend response for display. When the raw bytes
// are valid JSON they are re-indented unchanged, preserving field order;
// otherwise the sentinel error object is rendered in their place.
func prettyReport(body backend.Body) string {
	if json.Valid(body.Raw) {
		var out bytes.Buffer
		if err := json.Indent(&out, body.Raw, "", "  "); err == nil {
			return out.String()
		}
	}

	data, err := json.MarshalIndent(body.Obj, "", "  ")
	if err != nil {
		return string(body.Raw)
	}
	return string(data)
}
