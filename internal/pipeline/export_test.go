package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmlab/robustwm/internal/utils"
)

func TestDownload(t *testing.T) {
	t.Run("Saves the displayed server-side image", func(t *testing.T) {
		sb := newStub(t)
		sb.respondRaw("/uploads/cat_1_wm.png", []byte("wm-bytes"))
		c := newTestController(t, sb)
		c.Session().Uploaded = "cat_1.png"
		c.Session().Watermarked = "cat_1_wm.png"
		c.Session().Displayed = "cat_1_wm.png"

		dest := t.TempDir()
		path, err := c.Download(context.Background(), dest)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dest, "cat_1_wm.png"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("wm-bytes"), data)
	})

	t.Run("Falls back to the local file while no stage ran", func(t *testing.T) {
		sb := newStub(t)
		c := newTestController(t, sb)

		dest := t.TempDir()
		path, err := c.Download(context.Background(), dest)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dest, "cat.png"), path)
	})

	t.Run("Nothing selected at all", func(t *testing.T) {
		sb := newStub(t)
		c := newTestController(t, sb)
		c.Session().Clear()

		_, err := c.Download(context.Background(), t.TempDir())

		require.Error(t, err)
		assert.True(t, utils.IsMissingInputError(err))
	})
}

func TestCopyTo(t *testing.T) {
	t.Run("Streams the displayed image", func(t *testing.T) {
		sb := newStub(t)
		sb.respondRaw("/uploads/cat_1_wm.png", []byte("wm-bytes"))
		c := newTestController(t, sb)
		c.Session().Displayed = "cat_1_wm.png"

		var buf bytes.Buffer
		require.NoError(t, c.CopyTo(context.Background(), &buf))
		assert.Equal(t, "wm-bytes", buf.String())
	})

	t.Run("Nothing displayed", func(t *testing.T) {
		sb := newStub(t)
		c := newTestController(t, sb)

		err := c.CopyTo(context.Background(), &bytes.Buffer{})

		require.Error(t, err)
		assert.True(t, utils.IsMissingInputError(err))
	})
}
