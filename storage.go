package nanobanana

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// OutputFilePrefix starts every generated output filename.
const OutputFilePrefix = "nano_banana_"

// Storage is an interface for persisting generated images.
// The default LocalStorage writes to the filesystem; implementations can
// wrap cloud storage clients (GCS, S3, etc.) with this interface.
type Storage interface {
	// SaveFile saves image data and returns the location it can be read from.
	// The contentType is typically the image's MIME type (e.g., "image/png").
	SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error)
}

// StorageResult contains information about a saved image.
type StorageResult struct {
	// URL is where the image can be accessed (a file path for LocalStorage)
	URL string

	// Path is the storage path/key where the image was saved
	Path string

	// Size is the number of bytes saved
	Size int
}

// OutputOptions selects where a generated image is written.
type OutputOptions struct {
	// Path is an explicit output file; it wins over Dir
	Path string

	// Dir receives a timestamped filename when Path is empty
	Dir string

	// Now overrides the clock used for the timestamped filename
	Now func() time.Time
}

// LocalStorage writes images to the local filesystem, creating parent directories.
type LocalStorage struct {
	// FileMode for written files; 0644 when zero
	FileMode os.FileMode
}

var _ Storage = (*LocalStorage)(nil)

// SaveFile writes data to path unchanged and returns the path.
func (s *LocalStorage) SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}

	mode := s.FileMode
	if mode == 0 {
		mode = 0o644
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ResolveOutputPath determines the output file: the explicit path when set,
// otherwise nano_banana_<YYYYMMDD_HHMMSS>.<ext> inside dir, or in the current
// directory when dir is empty.
func ResolveOutputPath(explicit, dir string, now time.Time, mimeType string) string {
	if explicit != "" {
		return explicit
	}
	filename := OutputFilePrefix + now.Format("20060102_150405") + "." + extensionFromMIME(mimeType)
	if dir != "" {
		return filepath.Join(dir, filename)
	}
	return filename
}

// SaveToStorage saves the image of a GenerateResult to storage.
// It returns ErrNoImage when the result carries no image.
func SaveToStorage(
	ctx context.Context,
	storage Storage,
	result *GenerateResult,
	opts OutputOptions) (*StorageResult, error) {

	if storage == nil {
		return nil, ErrStorageNotConfigured
	}
	if !result.HasImage() {
		return nil, ErrNoImage
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	img := result.Image
	path := ResolveOutputPath(opts.Path, opts.Dir, now(), img.MIMEType)

	url, err := storage.SaveFile(ctx, img.Data, path, img.MIMEType)
	if err != nil {
		return nil, err
	}

	return &StorageResult{
		URL:  url,
		Path: path,
		Size: len(img.Data),
	}, nil
}

// extensionFromMIME returns a file extension for common image MIME types.
func extensionFromMIME(mime string) string {
	// Strip parameters such as "; charset=binary".
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
