package web_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"yatube/internal/handlers"
	"yatube/internal/services"
	"yatube/pkg/config"
	"yatube/web"
)

func TestRendererParsesEveryView(t *testing.T) {
	media := services.NewMediaStore(&config.MediaConfig{Root: t.TempDir(), URL: "/media", MaxUploadBytes: 1024})

	r, err := web.Renderer(handlers.TemplateFuncs(media))
	require.NoError(t, err)
	for _, view := range web.Views {
		require.NotNil(t, r.Instance(view, nil), view)
	}
}
