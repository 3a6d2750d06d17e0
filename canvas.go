package raymaze

import (
	"context"
	"image"
	"image/png"
	"io"

	"golang.org/x/sync/errgroup"
)

// superSampleJitter holds the sub-pixel offsets of the four rays traced per pixel when super-sampling.
var superSampleJitter = [4][2]float64{
	{-0.25, -0.25},
	{0.25, -0.25},
	{-0.25, 0.25},
	{0.25, 0.25},
}

// Canvas is a framebuffer that a World is ray traced into.
// The camera is fixed: it sits at (width / 2, height / 2, -1), one unit behind the image plane at z = 0, and looks along +Z,
// with the ray for pixel (x, y) passing through (x, y, 0). Rows grow downwards, so +Y points down the screen.
type Canvas struct {
	Options RenderOptions // Options controls how frames are traced; it defaults to DefaultRenderOptions().

	width, height uint16
	pixels        [][]RGB
	rayCount      uint64
}

// NewCanvas creates a new, black Canvas of the given size.
func NewCanvas(width, height uint16) *Canvas {

	canvas := &Canvas{
		Options: DefaultRenderOptions(),
		width:   width,
		height:  height,
		pixels:  make([][]RGB, height),
	}

	for y := range canvas.pixels {
		canvas.pixels[y] = make([]RGB, width)
	}

	return canvas

}

// Width returns the width of the Canvas in pixels. A Canvas can't be resized; create a new one instead.
func (canvas *Canvas) Width() uint16 {
	return canvas.width
}

// Height returns the height of the Canvas in pixels.
func (canvas *Canvas) Height() uint16 {
	return canvas.height
}

// Pixels returns the framebuffer as rows of pixels (indexed [y][x]). The returned grid is owned by the Canvas and is
// overwritten by the next Render.
func (canvas *Canvas) Pixels() [][]RGB {
	return canvas.pixels
}

// At returns the pixel at the given column and row.
func (canvas *Canvas) At(x, y int) RGB {
	return canvas.pixels[y][x]
}

// RayCount returns the number of rays traced during the last Render.
func (canvas *Canvas) RayCount() uint64 {
	return canvas.rayCount
}

// Render ray traces the World into the Canvas, replacing every pixel. The whole frame is always rendered; see RenderContext
// for a version that can be stopped early.
func (canvas *Canvas) Render(world *World) {
	_ = canvas.RenderContext(context.Background(), world)
}

// RenderScene renders the World produced by the Worldly given.
func (canvas *Canvas) RenderScene(source Worldly) {
	world := source.Scene()
	canvas.Render(&world)
}

// RenderContext ray traces the World into the Canvas, spreading rows across Options.Workers goroutines.
// The World is tessellated (and its Accelerator built) once, up front; after that, every worker only reads shared data and
// writes its own rows, so no locking is needed.
// The context is checked before each row is started; if it's cancelled, rendering stops and the context's error is returned,
// leaving the rows not yet rendered as they were.
func (canvas *Canvas) RenderContext(ctx context.Context, world *World) error {

	tracer := NewTracer(world, canvas.Options)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(canvas.Options.workerCount())

	for y := 0; y < int(canvas.height); y++ {
		y := y
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			canvas.renderRow(tracer, y)
			return nil
		})
	}

	err := group.Wait()
	canvas.rayCount = tracer.RayCount()
	return err

}

func (canvas *Canvas) renderRow(tracer *Tracer, y int) {

	row := canvas.pixels[y]
	halfW := float64(canvas.width) / 2
	halfH := float64(canvas.height) / 2

	for x := range row {

		dx := float64(x) - halfW
		dy := float64(y) - halfH

		if !canvas.Options.SuperSample {
			row[x] = tracer.Trace(Vector3{halfW, halfH, -1}, Vector3{dx, dy, 1})
			continue
		}

		var samples [4]RGB
		for i, j := range superSampleJitter {
			origin := Vector3{halfW + j[0], halfH + j[1], -1}
			samples[i] = tracer.Trace(origin, Vector3{dx + j[0], dy + j[1], 1})
		}
		row[x] = averageRGB(samples[:]...)

	}

}

// Image returns a copy of the framebuffer as an *image.RGBA, ready to be drawn or encoded.
func (canvas *Canvas) Image() *image.RGBA {

	img := image.NewRGBA(image.Rect(0, 0, int(canvas.width), int(canvas.height)))

	for y, row := range canvas.pixels {
		o := y * img.Stride
		for x, c := range row {
			img.Pix[o+x*4] = c.R
			img.Pix[o+x*4+1] = c.G
			img.Pix[o+x*4+2] = c.B
			img.Pix[o+x*4+3] = 0xff
		}
	}

	return img

}

// WritePNG encodes the framebuffer as a PNG into the writer given.
func (canvas *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, canvas.Image())
}
