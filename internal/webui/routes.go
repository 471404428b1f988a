package webui

import (
	"embed"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/wmlab/robustwm/internal/constants"
	"github.com/wmlab/robustwm/internal/utils"
)

//go:embed assets/index.html
var assetsFS embed.FS

// setupRoutes configures the routes for the web UI: the embedded page,
// health and version endpoints, and reverse proxies for the four backend
// endpoints plus the static uploads path.
func (s *Server) setupRoutes() error {
	target, err := url.Parse(s.cfg.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid backend base URL: %w", err)
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("Backend proxy failed")
		utils.Error(w, http.StatusBadGateway, "backend_unreachable", "The watermark backend could not be reached")
	}

	r := chi.NewRouter()

	// Base middleware
	r.Use(chimiddleware.RequestID)
	r.Use(Recovery())
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger())

	// Page and status routes
	r.Get("/", s.handleIndex)
	r.Get(constants.HealthPath, s.handleHealth)
	r.Get(constants.VersionPath, s.handleVersion)
	r.Get("/download", s.handleDownload)

	// Backend endpoints, proxied with bodies streamed through unchanged.
	// The stage endpoints trigger image processing on the backend, so they
	// are throttled per client; the static uploads path is not.
	th := newThrottle(constants.DefaultProxyRate, constants.DefaultProxyBurst)
	r.Group(func(r chi.Router) {
		r.Use(th.middleware)
		r.Post(constants.UploadPath, proxy.ServeHTTP)
		r.Post(constants.AddWatermarkPath, proxy.ServeHTTP)
		r.Post(constants.EditPath, proxy.ServeHTTP)
		r.Post(constants.CheckPath, proxy.ServeHTTP)
	})
	r.Get("/uploads/*", proxy.ServeHTTP)

	s.router = r
	return nil
}

// handleIndex serves the embedded single-page UI.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := assetsFS.ReadFile("assets/index.html")
	if err != nil {
		http.Error(w, "Missing index.html", http.StatusNotFound)
		return
	}
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeHTML)
	if _, err := w.Write(data); err != nil {
		log.Error().Err(err).Msg("Failed to write index page")
	}
}

// handleDownload streams the pipeline's currently displayed image as an
// attachment named after its server-side filename.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := s.ctl.Session().Displayed
	if name == "" {
		utils.Error(w, http.StatusBadRequest, "nothing_displayed", "No image is displayed yet")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := s.ctl.CopyTo(r.Context(), w); err != nil {
		log.Error().Err(err).Str("filename", name).Msg("Download failed")
		utils.Error(w, utils.StatusCode(err), "download_failed", utils.ParseError(err).Message)
	}
}

// handleHealth reports server health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.cfg.App.Version,
	})
}

// handleVersion reports the application version, environment, and the
// effective log level.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"version":     s.cfg.App.Version,
		"environment": s.cfg.App.Environment,
		"log_level":   utils.GetLogLevel(),
	})
}
