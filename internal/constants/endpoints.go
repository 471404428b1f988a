package constants

// Backend Endpoints are the fixed relative paths of the watermark backend.
// All four are POST with multipart form bodies.
const (
	UploadPath       = "/upload/"
	AddWatermarkPath = "/add-watermark/"
	EditPath         = "/edit/"
	CheckPath        = "/check/"
)

// Form Field Names sent to the backend.
const (
	FieldFile             = "file"
	FieldFilename         = "filename"
	FieldText             = "text"
	FieldOpacity          = "opacity"
	FieldFontSize         = "fontsize"
	FieldWatermark        = "watermark"
	FieldScale            = "scale"
	FieldOp               = "op"
	FieldWidth            = "w"
	FieldHeight           = "h"
	FieldX                = "x"
	FieldY                = "y"
	FieldCropWidth        = "crop_w"
	FieldCropHeight       = "crop_h"
	FieldTemplateFilename = "template_filename"
)

// Edit Operations accepted by the backend.
const (
	OpResize = "resize"
	OpCrop   = "crop"
)

// Response Keys the backend may use. The backend's schema is not
// authoritative, so result filenames are extracted through an ordered
// fallback chain over these keys.
const (
	KeyFilename            = "filename"
	KeyWatermarked         = "watermarked"
	KeyWatermarkedFilename = "watermarked_filename"
	KeyEdited              = "edited"
	KeyError               = "error"
	KeyFound               = "found"
	KeyMaxVal              = "max_val"
)

// HTTP Headers used by the client and the local web UI.
const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"

	ContentTypeJSON = "application/json"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// Local Web UI Routes.
const (
	HealthPath  = "/health"
	VersionPath = "/version"
)
