// Package models defines the domain entities of the watermarking client:
// watermark configurations, edit operations, and detection statistics. All
// entities are transient, held for one session, and mutated only by the
// pipeline controller in response to user actions.
package models

import (
	"github.com/wmlab/robustwm/internal/constants"
)

// WatermarkMode selects which watermark variant is active. Only one variant
// is active and submitted at a time.
type WatermarkMode string

const (
	// WatermarkText embeds a text overlay.
	WatermarkText WatermarkMode = "text"

	// WatermarkImage embeds an image overlay.
	WatermarkImage WatermarkMode = "image"
)

// WatermarkConfig describes the watermark to embed. Depending on Mode either
// the text fields or the image fields are submitted, never both.
type WatermarkConfig struct {
	Mode WatermarkMode `json:"mode"`

	// Text variant
	Text     string  `json:"text,omitempty"`
	Opacity  float64 `json:"opacity,omitempty"`
	FontSize int     `json:"fontsize,omitempty"`

	// Image variant
	ImagePath string  `json:"image_path,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// ApplyDefaults fills empty fields with the defaults the backend would use,
// so the request carries explicit values for every submitted field.
func (c *WatermarkConfig) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = WatermarkText
	}

	switch c.Mode {
	case WatermarkText:
		if c.Text == "" {
			c.Text = constants.DefaultWatermarkText
		}
		if c.Opacity == 0 {
			c.Opacity = constants.DefaultTextOpacity
		}
		if c.FontSize == 0 {
			c.FontSize = constants.DefaultFontSize
		}
	case WatermarkImage:
		if c.Scale == 0 {
			c.Scale = constants.DefaultImageScale
		}
		if c.Opacity == 0 {
			c.Opacity = constants.DefaultImageOpacity
		}
	}
}
