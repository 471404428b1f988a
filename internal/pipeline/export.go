package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wmlab/robustwm/internal/utils"
)

// Download saves the currently displayed image into destDir and returns the
// written path. The file is named after the latest server-side filename, or
// the local file's name while the local preview is displayed, or a generated
// default when neither carries a usable name.
func (c *Controller) Download(ctx context.Context, destDir string) (string, error) {
	var (
		data []byte
		name string
		err  error
	)

	switch {
	case c.sess.Displayed != "":
		data, err = c.client.FetchUpload(ctx, c.sess.Displayed)
		if err != nil {
			return "", err
		}
		name = c.sess.Latest()
		if name == "" {
			name = c.sess.Displayed
		}

	case c.sess.HasLocal():
		data, err = os.ReadFile(c.sess.Local.Path)
		if err != nil {
			return "", utils.NewInternalError(err)
		}
		name = c.sess.Local.Name

	default:
		return "", utils.NewMissingInputError("No image is displayed yet")
	}

	if name == "" {
		name = fmt.Sprintf("image-%s.png", uuid.NewString()[:8])
	}
	name = utils.SanitizeFilename(name)

	dest := filepath.Join(destDir, name)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", utils.NewInternalError(err)
	}

	log.Info().Str("path", dest).Msg("Image downloaded")
	return dest, nil
}

// CopyTo streams the currently displayed server-side image to a writer.
// Backs the web UI's download route.
func (c *Controller) CopyTo(ctx context.Context, w io.Writer) error {
	if c.sess.Displayed == "" {
		return utils.NewMissingInputError("No image is displayed yet")
	}
	data, err := c.client.FetchUpload(ctx, c.sess.Displayed)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ExportAll is a placeholder for a future bulk-export feature.
func (c *Controller) ExportAll() string {
	return "Bulk export is not implemented yet. Use the download command to save the current image."
}

// BatchTransforms is a placeholder for a future multi-transform batch
// runner. Until it exists, stages are run one at a time.
func (c *Controller) BatchTransforms() string {
	return "Batch transforms are not implemented yet. Run watermark and edit individually, then check after each step."
}
