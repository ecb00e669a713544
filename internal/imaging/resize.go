package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/gift"
)

// TargetSize computes the output dimensions that bring the longer edge of a
// width x height image to longSide while keeping the aspect ratio.
// Square images take the height branch. The short side never drops below 1.
func TargetSize(width, height, longSide int) (int, int) {
	if height < width {
		h := int(math.RoundToEven(float64(height) * float64(longSide) / float64(width)))
		return longSide, max(h, 1)
	}
	w := int(math.RoundToEven(float64(width) * float64(longSide) / float64(height)))
	return max(w, 1), longSide
}

// Resize scales img so that its longer edge equals longSide. Smaller images
// are scaled up.
func Resize(img image.Image, longSide int) image.Image {
	b := img.Bounds()
	w, h := TargetSize(b.Dx(), b.Dy(), longSide)

	g := gift.New(gift.Resize(w, h, gift.CubicResampling))
	dst := image.NewRGBA(g.Bounds(b))
	g.Draw(dst, img)
	return dst
}

// ResizeBytes decodes data and resizes it to longSide.
func ResizeBytes(data []byte, longSide int) (image.Image, error) {
	if longSide <= 0 {
		return nil, fmt.Errorf("imaging: long side must be positive, got %d", longSide)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Resize(img, longSide), nil
}
