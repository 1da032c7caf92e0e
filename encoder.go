package nanobanana

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/webp"
)

// JPEGQuality is the quality used when re-encoding JPEG reference images.
const JPEGQuality = 95

// formatMIMETypes maps image.Decode format names to media types.
var formatMIMETypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// MIMETypeForFormat returns the media type for a decoded image format name.
// Unknown or empty formats map to image/png.
func MIMETypeForFormat(format string) string {
	if mime, ok := formatMIMETypes[format]; ok {
		return mime
	}
	return "image/png"
}

// EncodeImageFile loads the image at path, decodes it and re-encodes it in its
// own format so that the returned MIME type always matches the bytes.
//
// WEBP images are decoded to verify them and then passed through unchanged,
// since no WEBP encoder is available.
func EncodeImageFile(path string) (EncodedImage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("read image: %w", err)
	}
	return EncodeImageBytes(path, raw)
}

// EncodeImageBytes is EncodeImageFile for data already in memory.
func EncodeImageBytes(path string, raw []byte) (EncodedImage, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return EncodedImage{}, fmt.Errorf("decode image: %w", err)
	}

	mime := MIMETypeForFormat(format)

	var buf bytes.Buffer
	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality})
	case "image/gif":
		err = gif.Encode(&buf, img, nil)
	case "image/webp":
		_, err = buf.Write(raw)
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return EncodedImage{}, fmt.Errorf("encode %s: %w", mime, err)
	}

	return EncodedImage{
		Data:     buf.Bytes(),
		MIMEType: mime,
		Path:     path,
	}, nil
}

// EncodeReferences encodes each path in order. A path that cannot be loaded
// is skipped and reported as a warning; the remaining images are still returned.
func EncodeReferences(paths []string) ([]EncodedImage, []Warning) {
	images := make([]EncodedImage, 0, len(paths))
	var warnings []Warning

	for _, path := range paths {
		img, err := EncodeImageFile(path)
		if err != nil {
			warnings = append(warnings, Warning{
				Kind:    WarningReference,
				Message: fmt.Sprintf("could not load reference %s: %v", path, err),
				Path:    path,
			})
			continue
		}
		images = append(images, img)
	}

	return images, warnings
}
