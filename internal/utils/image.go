package utils

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

// ResizeImageBytes decodes an uploaded partner image and scales it down so the
// longest edge is at most maxEdge pixels. Smaller images pass through unchanged.
func ResizeImageBytes(data []byte, filename string, maxEdge uint) ([]byte, error) {
	img, err := decodeImage(bytes.NewReader(data), filename)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if uint(bounds.Dx()) <= maxEdge && uint(bounds.Dy()) <= maxEdge {
		return data, nil
	}

	var resized image.Image
	if bounds.Dx() >= bounds.Dy() {
		resized = resize.Resize(maxEdge, 0, img, resize.Lanczos3)
	} else {
		resized = resize.Resize(0, maxEdge, img, resize.Lanczos3)
	}

	return encodeImage(resized, filename)
}

func decodeImage(r io.Reader, filename string) (image.Image, error) {
	switch imageExt(filename) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".png":
		return png.Decode(r)
	}

	img, _, err := image.Decode(r)
	return img, err
}

func encodeImage(img image.Image, filename string) ([]byte, error) {
	var buf bytes.Buffer
	switch imageExt(filename) {
	case ".png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case ".jpg", ".jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unsupported image format")
	}
	return buf.Bytes(), nil
}

func imageExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func IsAllowedImage(filename string) bool {
	switch imageExt(filename) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
