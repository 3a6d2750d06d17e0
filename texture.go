package raymaze

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

var (
	ErrTextureSize   = errors.New("raymaze: texture dimensions must be between 1 and 65535")
	ErrTexturePixels = errors.New("raymaze: texture pixel count does not match width * height")
)

// Texture2D is an immutable, row-major grid of RGB texels. Textures are shared by pointer between every material
// (and so every triangle) that samples them; nothing ever writes to one after it's created.
type Texture2D struct {
	width, height uint16
	pixels        []RGB
}

// NewTexture2D creates a Texture2D from the given row-major pixels. len(pixels) must equal width * height.
// The pixel slice is copied.
func NewTexture2D(width, height uint16, pixels []RGB) (*Texture2D, error) {

	if width == 0 || height == 0 {
		return nil, ErrTextureSize
	}

	if len(pixels) != int(width)*int(height) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrTexturePixels, len(pixels), int(width)*int(height))
	}

	tex := &Texture2D{
		width:  width,
		height: height,
		pixels: make([]RGB, len(pixels)),
	}
	copy(tex.pixels, pixels)
	return tex, nil

}

// NewTextureFromImage creates a Texture2D from any image.Image. Alpha is discarded.
func NewTextureFromImage(img image.Image) (*Texture2D, error) {

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= 0 || h <= 0 || w > math.MaxUint16 || h > math.MaxUint16 {
		return nil, ErrTextureSize
	}

	tex := &Texture2D{
		width:  uint16(w),
		height: uint16(h),
		pixels: make([]RGB, 0, w*h),
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			tex.pixels = append(tex.pixels, RGB{c.R, c.G, c.B})
		}
	}

	return tex, nil

}

// LoadTexture decodes an image (PNG, JPEG, GIF, or BMP) from the reader given and turns it into a Texture2D.
// If width and height are both greater than zero, the image is resampled to that size first using bilinear filtering;
// this is handy to keep large source images from eating memory when they're only used for small tiles.
func LoadTexture(r io.Reader, width, height int) (*Texture2D, error) {

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("raymaze: decoding texture: %w", err)
	}

	if width > 0 && height > 0 {
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = scaled
	}

	return NewTextureFromImage(img)

}

// Width returns the width of the texture in texels.
func (tex *Texture2D) Width() uint16 { return tex.width }

// Height returns the height of the texture in texels.
func (tex *Texture2D) Height() uint16 { return tex.height }

// At returns the texel at the given column and row. Coordinates must be within the texture.
func (tex *Texture2D) At(x, y int) RGB {
	return tex.pixels[y*int(tex.width)+x]
}
