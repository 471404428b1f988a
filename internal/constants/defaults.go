// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the
// application. These constants provide sensible defaults for configuration
// settings and for the watermark and edit parameters the backend expects when
// the user leaves a field empty.
package constants

import "time"

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultBackendURL is the default base URL of the watermark backend.
	DefaultBackendURL = "http://localhost:8000"

	// DefaultUploadsPrefix is the static path prefix under which the backend
	// serves produced files.
	DefaultUploadsPrefix = "/uploads"

	// DefaultRequestTimeout is the default timeout for backend requests.
	// Zero means the transport default is used; the backend applies no
	// timeout of its own to long-running detection calls.
	DefaultRequestTimeout = time.Duration(0)

	// DefaultStateFile is the default path of the session state file.
	DefaultStateFile = ".robustwm/session.json"

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "console"
)

// Web UI Defaults define fallback settings for the local web UI server.
const (
	// DefaultWebUIHost is the default bind host for the local web UI.
	DefaultWebUIHost = "127.0.0.1"

	// DefaultWebUIPort is the default bind port for the local web UI.
	DefaultWebUIPort = 8080

	// DefaultReadTimeout is the default HTTP server read timeout.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the default HTTP server write timeout.
	// Detection calls can be slow, so this is generous.
	DefaultWriteTimeout = 120 * time.Second

	// DefaultIdleTimeout is the default HTTP server idle timeout.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultShutdownTimeout is the default graceful shutdown timeout.
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultProxyRate is the per-client request rate for proxied stage
	// endpoints, in requests per second.
	DefaultProxyRate = 5.0

	// DefaultProxyBurst is the per-client burst size for proxied stage
	// endpoints.
	DefaultProxyBurst = 10
)

// Watermark Parameter Defaults are applied when the user leaves a field
// empty, matching the values the backend itself would fall back to.
const (
	// DefaultWatermarkText is the text used when no watermark text is given.
	DefaultWatermarkText = "SAMPLE"

	// DefaultTextOpacity is the default opacity for text watermarks.
	DefaultTextOpacity = 0.25

	// DefaultFontSize is the default font size for text watermarks.
	DefaultFontSize = 48

	// DefaultImageScale is the default scale for image watermarks.
	DefaultImageScale = 0.18

	// DefaultImageOpacity is the default opacity for image watermarks.
	DefaultImageOpacity = 0.5
)

// Edit Parameter Defaults are applied to crop fields left empty.
const (
	// DefaultCropX is the default crop origin X.
	DefaultCropX = 0

	// DefaultCropY is the default crop origin Y.
	DefaultCropY = 0

	// DefaultCropWidth is the default crop width.
	DefaultCropWidth = 100

	// DefaultCropHeight is the default crop height.
	DefaultCropHeight = 100
)

// Demo Parameters configure the quick demonstration flow.
const (
	// DemoResizeFactor is the fraction of the watermarked image's natural
	// dimensions the quick demo resizes to.
	DemoResizeFactor = 0.75
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)
