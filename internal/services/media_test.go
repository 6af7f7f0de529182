package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"yatube/internal/testutil"
	"yatube/pkg/config"
)

func newMediaStore(t *testing.T, max int64) *MediaStore {
	return NewMediaStore(&config.MediaConfig{Root: t.TempDir(), URL: "/media/", MaxUploadBytes: max})
}

func TestSaveImage(t *testing.T) {
	media := newMediaStore(t, 1024)

	name, err := media.SaveImage(testutil.FileHeader(t, "image", "small.gif", testutil.SmallGIF))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(name, "posts/"))
	require.True(t, strings.HasSuffix(name, ".gif"))
	require.Equal(t, "/media/"+name, media.URL(name))
	require.Empty(t, media.URL(""))

	data, err := os.ReadFile(filepath.Join(media.Root(), name))
	require.NoError(t, err)
	require.Equal(t, testutil.SmallGIF, data)

	require.NoError(t, media.Remove(name))
	_, err = os.Stat(filepath.Join(media.Root(), name))
	require.True(t, os.IsNotExist(err))
	require.NoError(t, media.Remove(name))
}

func TestSaveImageRejects(t *testing.T) {
	media := newMediaStore(t, 16)

	_, err := media.SaveImage(testutil.FileHeader(t, "image", "small.gif", testutil.SmallGIF))
	require.ErrorIs(t, err, ErrImageTooLarge)

	_, err = media.SaveImage(testutil.FileHeader(t, "image", "fake.gif", []byte("plain text")))
	require.ErrorIs(t, err, ErrNotImage)
}

func TestRemoveIgnoresForeignPaths(t *testing.T) {
	media := newMediaStore(t, 1024)

	outside := filepath.Join(media.Root(), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	require.NoError(t, media.Remove("keep.txt"))
	require.NoError(t, media.Remove("posts/../keep.txt"))

	_, err := os.Stat(outside)
	require.NoError(t, err)
}
