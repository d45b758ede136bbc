package colorglyph

import (
	"image"
	"image/color"

	"glyphforge.dev/f32"
	"glyphforge.dev/rasterize"
)

// ClipMask is a 1-bit (stored as one byte per pixel for simplicity)
// coverage mask used by the clip stack.
type ClipMask struct {
	Bounds image.Rectangle
	Alpha  []byte // row-major, len == Bounds.Dx()*Bounds.Dy()
}

func (m ClipMask) at(x, y int) byte {
	if x < m.Bounds.Min.X || x >= m.Bounds.Max.X || y < m.Bounds.Min.Y || y >= m.Bounds.Max.Y {
		return 0
	}
	return m.Alpha[(y-m.Bounds.Min.Y)*m.Bounds.Dx()+(x-m.Bounds.Min.X)]
}

// layer is an offscreen render target pushed by PushLayer, composited back
// onto its parent by PopLayer using the recorded blend mode.
type layer struct {
	mode   BlendMode
	pixels *image.NRGBA
}

// Compositor interprets paint-graph operations against a target canvas,
// maintaining the transform, clip, and layer stacks spec.md §4.4
// describes.
type Compositor struct {
	target  *image.NRGBA
	current *image.NRGBA // top of the layer stack, or target if no layer pushed

	transforms []f32.Affine2D
	transform  f32.Affine2D

	clips []ClipMask

	layers  []layer
	Palette []color.NRGBA
}

// NewCompositor constructs a compositor painting onto target.
func NewCompositor(target *image.NRGBA) *Compositor {
	return &Compositor{target: target, current: target}
}

// PushTransform multiplies the current transform by t.
func (c *Compositor) PushTransform(t f32.Affine2D) {
	c.transforms = append(c.transforms, c.transform)
	c.transform = c.transform.Mul(t)
}

// PopTransform restores the transform active before the matching push.
func (c *Compositor) PopTransform() {
	if len(c.transforms) == 0 {
		return
	}
	c.transform = c.transforms[len(c.transforms)-1]
	c.transforms = c.transforms[:len(c.transforms)-1]
}

// PushClipBox intersects the clip stack with an axis-aligned rectangle,
// mapped from brush space into device pixels by the current transform
// (spec.md §4.4 "Push clip-box"), so a box clip pushed under a rotation or
// scale lands where the paint graph actually expects it rather than always
// in raw device pixels.
func (c *Compositor) PushClipBox(r image.Rectangle) {
	box := f32.Rectangle{
		Min: f32.Point{X: float32(r.Min.X), Y: float32(r.Min.Y)},
		Max: f32.Point{X: float32(r.Max.X), Y: float32(r.Max.Y)},
	}.Transform(c.transform)
	dev := image.Rect(int(box.Min.X), int(box.Min.Y), int(box.Max.X), int(box.Max.Y)).Canon()
	mask := ClipMask{Bounds: dev, Alpha: make([]byte, dev.Dx()*dev.Dy())}
	for i := range mask.Alpha {
		mask.Alpha[i] = 255
	}
	c.pushClip(mask)
}

// PushClipGlyph rasterizes outline at ppem into a 1-bit mask (coverage of
// at least half counts as inside) and intersects it with the clip stack
// (spec.md §4.4 "Push clip-glyph"). The current transform is not applied
// to the outline: the mask is placed by the bitmap's own Left/Top offsets.
func (c *Compositor) PushClipGlyph(outline rasterize.Outline, ppem float64) {
	bmp, err := rasterize.RasterizeOutline(outline, ppem, rasterize.NonZero)
	if err != nil || bmp.Empty() {
		c.pushClip(ClipMask{})
		return
	}
	r := image.Rect(bmp.Left, bmp.Top, bmp.Left+bmp.Width, bmp.Top+bmp.Height)
	alpha := make([]byte, len(bmp.Pix))
	for i, v := range bmp.Pix {
		if v >= 128 {
			alpha[i] = 255
		}
	}
	c.pushClip(ClipMask{Bounds: r, Alpha: alpha})
}

func (c *Compositor) pushClip(mask ClipMask) {
	if len(c.clips) > 0 {
		mask = intersectClip(c.clips[len(c.clips)-1], mask)
	}
	c.clips = append(c.clips, mask)
}

// PopClip removes the most recently pushed clip mask.
func (c *Compositor) PopClip() {
	if len(c.clips) == 0 {
		return
	}
	c.clips = c.clips[:len(c.clips)-1]
}

func intersectClip(a, b ClipMask) ClipMask {
	bounds := a.Bounds.Intersect(b.Bounds)
	out := ClipMask{Bounds: bounds, Alpha: make([]byte, bounds.Dx()*bounds.Dy())}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			av, bv := a.at(x, y), b.at(x, y)
			out.Alpha[(y-bounds.Min.Y)*bounds.Dx()+(x-bounds.Min.X)] = byte(uint16(av) * uint16(bv) / 255)
		}
	}
	return out
}

func (c *Compositor) clipCoverage(x, y int) byte {
	if len(c.clips) == 0 {
		return 255
	}
	return c.clips[len(c.clips)-1].at(x, y)
}

// PushLayer allocates an offscreen pixmap the size of the target and
// redirects subsequent drawing there.
func (c *Compositor) PushLayer(mode BlendMode) {
	bounds := c.target.Bounds()
	pix := image.NewNRGBA(bounds)
	c.layers = append(c.layers, layer{mode: mode, pixels: c.current})
	c.current = pix
}

// PopLayer composites the most recently pushed layer onto its parent using
// its recorded blend mode.
func (c *Compositor) PopLayer() {
	if len(c.layers) == 0 {
		return
	}
	top := c.layers[len(c.layers)-1]
	c.layers = c.layers[:len(c.layers)-1]
	src := c.current
	parent := top.pixels
	bounds := src.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			srcC := src.NRGBAAt(x, y)
			if srcC.A == 0 && top.mode != BlendDst {
				continue
			}
			dstC := parent.NRGBAAt(x, y)
			parent.SetNRGBA(x, y, top.mode.Composite(dstC, srcC))
		}
	}
	c.current = parent
}

// Fill paints region (in device pixels) with brush, respecting the current
// clip stack, using source-over compositing (spec.md §4.4 "Fill with
// brush").
func (c *Compositor) Fill(region image.Rectangle, brush Brush) {
	bounds := region.Intersect(c.current.Bounds())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cov := c.clipCoverage(x, y)
			if cov == 0 {
				continue
			}
			src := brush.SampleAt(f32.Point{X: float32(x), Y: float32(y)})
			src.A = byte(uint16(src.A) * uint16(cov) / 255)
			dst := c.current.NRGBAAt(x, y)
			c.current.SetNRGBA(x, y, BlendSrcOver.Composite(dst, src))
		}
	}
}

// FillMaskBrush paints a rasterized glyph bitmap's coverage with brush
// sampled per pixel, rather than a single flat color — the gradient
// counterpart to FillMask, used when a color-glyph layer's paint is a
// gradient rather than a solid (spec.md §4.4).
func (c *Compositor) FillMaskBrush(bmp rasterize.Bitmap, originX, originY int, brush Brush) {
	for row := 0; row < bmp.Height; row++ {
		for col := 0; col < bmp.Width; col++ {
			a := bmp.Pix[row*bmp.Width+col]
			if a == 0 {
				continue
			}
			x, y := originX+bmp.Left+col, originY+bmp.Top+row
			cov := c.clipCoverage(x, y)
			combined := uint16(a) * uint16(cov) / 255
			if combined == 0 {
				continue
			}
			if !image.Pt(x, y).In(c.current.Bounds()) {
				continue
			}
			src := brush.SampleAt(f32.Point{X: float32(x), Y: float32(y)})
			src.A = byte(uint16(src.A) * combined / 255)
			dst := c.current.NRGBAAt(x, y)
			c.current.SetNRGBA(x, y, BlendSrcOver.Composite(dst, src))
		}
	}
}

// FillMask paints a rasterized glyph bitmap with a solid color at (originX,
// originY), the common case of filling the final monochrome outline with
// the foreground color.
func (c *Compositor) FillMask(bmp rasterize.Bitmap, originX, originY int, fg color.NRGBA) {
	for row := 0; row < bmp.Height; row++ {
		for col := 0; col < bmp.Width; col++ {
			a := bmp.Pix[row*bmp.Width+col]
			if a == 0 {
				continue
			}
			x, y := originX+bmp.Left+col, originY+bmp.Top+row
			cov := c.clipCoverage(x, y)
			combined := uint16(a) * uint16(cov) / 255
			if combined == 0 {
				continue
			}
			src := color.NRGBA{R: fg.R, G: fg.G, B: fg.B, A: byte(uint16(fg.A) * combined / 255)}
			if !image.Pt(x, y).In(c.current.Bounds()) {
				continue
			}
			dst := c.current.NRGBAAt(x, y)
			c.current.SetNRGBA(x, y, BlendSrcOver.Composite(dst, src))
		}
	}
}
