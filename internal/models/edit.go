package models

import (
	"github.com/wmlab/robustwm/internal/constants"
)

// EditOp describes a single edit operation, either a resize or a crop.
type EditOp struct {
	Op string `json:"op" validate:"required,oneof=resize crop"`

	// Resize variant. Width and height are both required; the stage does
	// not send a request when either is missing.
	Width  int `json:"w,omitempty"`
	Height int `json:"h,omitempty"`

	// Crop variant. Fields left at zero are defaulted, not rejected.
	X          int `json:"x,omitempty"`
	Y          int `json:"y,omitempty"`
	CropWidth  int `json:"crop_w,omitempty"`
	CropHeight int `json:"crop_h,omitempty"`
}

// ResizeParams is the validation shape for the resize variant.
type ResizeParams struct {
	Width  int `json:"w" validate:"required"`
	Height int `json:"h" validate:"required"`
}

// Resize constructs a resize operation.
func Resize(width, height int) EditOp {
	return EditOp{Op: constants.OpResize, Width: width, Height: height}
}

// Crop constructs a crop operation.
func Crop(x, y, width, height int) EditOp {
	return EditOp{Op: constants.OpCrop, X: x, Y: y, CropWidth: width, CropHeight: height}
}

// ApplyDefaults fills empty crop fields with the documented defaults. A zero
// crop width or height is replaced rather than rejected, the same way an
// empty form field would be.
func (op *EditOp) ApplyDefaults() {
	if op.Op != constants.OpCrop {
		return
	}
	if op.X == 0 {
		op.X = constants.DefaultCropX
	}
	if op.Y == 0 {
		op.Y = constants.DefaultCropY
	}
	if op.CropWidth == 0 {
		op.CropWidth = constants.DefaultCropWidth
	}
	if op.CropHeight == 0 {
		op.CropHeight = constants.DefaultCropHeight
	}
}
