package nanobanana

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, x, color.RGBA{R: 200, B: 100, A: 255})
	}
	return img
}

func writeEncoded(t *testing.T, name string, encode func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, encode(&buf))
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestEncodeImageFile(t *testing.T) {
	t.Run("format comes from the content not the extension", func(t *testing.T) {
		path := writeEncoded(t, "actually-png.jpg", func(b *bytes.Buffer) error { return png.Encode(b, testImage()) })

		img, err := EncodeImageFile(path)

		require.NoError(t, err)
		assert.Equal(t, "image/png", img.MIMEType)
		assert.Equal(t, path, img.Path)
		_, format, err := image.Decode(bytes.NewReader(img.Data))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
	})

	t.Run("jpeg", func(t *testing.T) {
		path := writeEncoded(t, "photo.jpeg", func(b *bytes.Buffer) error { return jpeg.Encode(b, testImage(), nil) })

		img, err := EncodeImageFile(path)

		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", img.MIMEType)
		_, format, err := image.Decode(bytes.NewReader(img.Data))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("gif", func(t *testing.T) {
		path := writeEncoded(t, "anim.gif", func(b *bytes.Buffer) error { return gif.Encode(b, testImage(), nil) })

		img, err := EncodeImageFile(path)

		require.NoError(t, err)
		assert.Equal(t, "image/gif", img.MIMEType)
	})

	t.Run("not an image", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.png")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

		_, err := EncodeImageFile(path)

		assert.ErrorContains(t, err, "decode image")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := EncodeImageFile(filepath.Join(t.TempDir(), "nope.png"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestEncodeReferences(t *testing.T) {
	good := writeEncoded(t, "good.png", func(b *bytes.Buffer) error { return png.Encode(b, testImage()) })
	missing := filepath.Join(t.TempDir(), "missing.png")

	images, warnings := EncodeReferences([]string{missing, good})

	require.Len(t, images, 1)
	assert.Equal(t, good, images[0].Path)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarningReference, warnings[0].Kind)
	assert.Equal(t, missing, warnings[0].Path)

	images, warnings = EncodeReferences(nil)
	assert.Empty(t, images)
	assert.Empty(t, warnings)
}

func TestEncodedImage_DataURI(t *testing.T) {
	img := EncodedImage{Data: []byte{0, 0, 0}, MIMEType: "image/png"}

	assert.Equal(t, "AAAA", img.Base64())
	assert.Equal(t, "data:image/png;base64,AAAA", img.DataURI())
	assert.True(t, strings.HasPrefix(EncodedImage{Data: []byte("x"), MIMEType: "image/jpeg"}.DataURI(), "data:image/jpeg;base64,"))
}

func TestMIMETypeForFormat(t *testing.T) {
	assert.Equal(t, "image/jpeg", MIMETypeForFormat("jpeg"))
	assert.Equal(t, "image/webp", MIMETypeForFormat("webp"))
	assert.Equal(t, "image/png", MIMETypeForFormat("bmp"))
	assert.Equal(t, "image/png", MIMETypeForFormat(""))
}
