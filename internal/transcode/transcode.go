package transcode

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const DefaultJPEGQuality = 90

// Result reports the stored file as written: pixel dimensions after
// orientation correction and the encoded byte size.
type Result struct {
	Width  int
	Height int
	Size   int64
}

// Encoder re-encodes uploaded images to JPEG at a fixed quality,
// baking the EXIF orientation into the pixels so the stored file
// displays upright without viewer-side tag interpretation.
type Encoder struct {
	quality int
}

func NewEncoder(quality int) *Encoder {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Encoder{quality: quality}
}

// Transcode decodes the raw bytes, applies the orientation correction
// and writes the JPEG to dst. The write goes through a temp path and a
// rename, so a failed or interrupted transcode never leaves a
// truncated file visible at dst.
func (e *Encoder) Transcode(data []byte, orientation int, dst string) (Result, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("decode image: %w", err)
	}

	img = applyOrientation(img, orientation)

	tmp := dst + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return Result{}, fmt.Errorf("create temp file: %w", err)
	}

	if err := imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(e.quality)); err != nil {
		f.Close()
		os.Remove(tmp)
		return Result{}, fmt.Errorf("encode jpeg: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return Result{}, fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return Result{}, fmt.Errorf("rename temp file: %w", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		os.Remove(dst)
		return Result{}, fmt.Errorf("stat stored file: %w", err)
	}

	bounds := img.Bounds()
	return Result{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Size:   info.Size(),
	}, nil
}

// applyOrientation undoes the capture rotation recorded in the EXIF
// orientation tag (1–8). Unknown or absent values are a no-op.
// imaging's Rotate* functions turn counterclockwise.
func applyOrientation(img image.Image, orientation int) image.Image {
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
