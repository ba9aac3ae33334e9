// Package imaging handles decode/encode at the library boundary: PNG, JPEG,
// and WEBP input, PNG and PNG-data-URI output.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

// Load reads an image file from disk. Supports PNG, JPEG, and WEBP.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return png.Decode(f)
	case ".jpg", ".jpeg":
		return jpeg.Decode(f)
	case ".webp":
		// Decoded via the blank import of golang.org/x/image/webp
		img, _, err := image.Decode(f)
		return img, err
	default:
		return nil, fmt.Errorf("unsupported image format %q (supported: png, jpg, jpeg, webp)", ext)
	}
}

// SavePNG writes an image to disk as PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// EncodePNG returns the image as a PNG byte buffer.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNGDataURI returns the image as a base64 PNG data URI for transport
// to the downstream rendering collaborator.
func EncodePNGDataURI(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURI decodes a base64 image data URI into an image.
func DecodeDataURI(uri string) (image.Image, error) {
	_, b64, ok := strings.Cut(uri, ";base64,")
	if !ok {
		return nil, fmt.Errorf("not a base64 data URI")
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decoding data URI: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding embedded image: %w", err)
	}
	return img, nil
}
