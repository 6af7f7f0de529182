package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"yatube/internal/services"
	"yatube/internal/testutil"
	"yatube/pkg/config"
)

func TestRemoveImageLogsFailure(t *testing.T) {
	root := t.TempDir()
	media := services.NewMediaStore(&config.MediaConfig{Root: root, URL: "/media", MaxUploadBytes: 1024})
	core, logs := observer.New(zapcore.WarnLevel)
	h := NewPostHandler(services.New(testutil.NewDB(t), media), zap.New(core))

	// a non-empty directory cannot be removed like a file
	stuck := filepath.Join(root, "posts", "stuck")
	require.NoError(t, os.MkdirAll(stuck, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(stuck, "keep.gif"), testutil.SmallGIF, 0o644))

	h.removeImage("posts/stuck")
	require.Equal(t, 1, logs.FilterMessage("Failed to remove image").Len())

	h.removeImage("posts/missing.gif")
	h.removeImage("")
	require.Equal(t, 1, logs.Len())
}
