package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"yatube/internal/utils"
	"yatube/pkg/config"
)

var (
	ErrNotImage      = errors.New("upload a valid image: the file is either not an image or a corrupted image")
	ErrImageTooLarge = errors.New("the image is too large")
)

// imageTypes maps accepted image mime types to file extensions
var imageTypes = map[string]string{
	"image/gif":  ".gif",
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

const imageDir = "posts"

// MediaStore keeps uploaded post images on the local filesystem
type MediaStore struct {
	root     string
	url      string
	maxBytes int64
}

func NewMediaStore(cfg *config.MediaConfig) *MediaStore {
	return &MediaStore{
		root:     cfg.Root,
		url:      strings.TrimRight(cfg.URL, "/"),
		maxBytes: cfg.MaxUploadBytes,
	}
}

// Root is the directory served under URLPrefix
func (m *MediaStore) Root() string {
	return m.root
}

func (m *MediaStore) URLPrefix() string {
	return m.url
}

// SaveImage checks that the upload is an image by sniffing its content and
// stores it under a random name. It returns the path relative to the root.
func (m *MediaStore) SaveImage(header *multipart.FileHeader) (string, error) {
	if header.Size > m.maxBytes {
		return "", ErrImageTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, m.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > m.maxBytes {
		return "", ErrImageTooLarge
	}

	ext, ok := imageTypes[mimetype.Detect(data).String()]
	if !ok {
		return "", ErrNotImage
	}

	name := path.Join(imageDir, utils.RandomString(16)+ext)
	dst := filepath.Join(m.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return name, nil
}

// URL returns where name is served from, or "" for no image
func (m *MediaStore) URL(name string) string {
	if name == "" {
		return ""
	}
	return m.url + "/" + name
}

// Remove deletes a stored image. Missing files and names outside the image
// directory are ignored.
func (m *MediaStore) Remove(name string) error {
	clean := path.Clean(name)
	if name == "" || !strings.HasPrefix(clean, imageDir+"/") {
		return nil
	}
	err := os.Remove(filepath.Join(m.root, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image %s: %w", name, err)
	}
	return nil
}
