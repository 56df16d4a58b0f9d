package service

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

const (
	maxPhotoDimension = 1200
	photoJPEGQuality  = 80
)

// NormalizePhoto re-encodes an uploaded photo: EXIF orientation applied,
// longest side capped at 1200px, JPEG at quality 80. On any decode or encode
// failure the original bytes pass through with the caller-supplied MIME type,
// so a compression problem never blocks a submission.
func NormalizePhoto(data []byte, fallbackMIME string) ([]byte, string) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data, fallbackMIME
	}

	img = applyOrientation(img, data)

	bounds := img.Bounds()
	if bounds.Dx() > maxPhotoDimension || bounds.Dy() > maxPhotoDimension {
		img = imaging.Fit(img, maxPhotoDimension, maxPhotoDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(photoJPEGQuality)); err != nil {
		return data, fallbackMIME
	}
	return buf.Bytes(), "image/jpeg"
}

// applyOrientation bakes the EXIF orientation into the pixels. Phone cameras
// commonly store sideways pixels plus an orientation tag, and the generative
// model ignores the tag.
func applyOrientation(img image.Image, original []byte) image.Image {
	meta, err := exif.Decode(bytes.NewReader(original))
	if err != nil {
		return img
	}
	tag, err := meta.Get(exif.Orientation)
	if err != nil {
		return img
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return img
	}

	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
