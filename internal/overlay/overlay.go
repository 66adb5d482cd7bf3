// Package overlay renders the geometry of a window's menu items to an image,
// so the rectangles reported by the menu tree can be checked by eye.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/mj1618/winctl/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LabelMode controls what text is drawn inside each item box.
type LabelMode int

const (
	// LabelTitles draws the item title.
	LabelTitles LabelMode = iota
	// LabelIDs draws "[id]" command IDs.
	LabelIDs
)

// glyphAscent is the height above the baseline of basicfont.Face7x13.
const glyphAscent = 11

var (
	background   = color.RGBA{R: 32, G: 32, B: 32, A: 255}
	boxColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	subMenuColor = color.RGBA{R: 0, G: 160, B: 255, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Render draws the window-relative rectangles of items on a canvas the size
// of window. Items without a rectangle are skipped. When window is empty the
// canvas is sized to fit the items.
func Render(window model.Rect, items []model.FlatMenuItem, mode LabelMode) *image.RGBA {
	w, h := window.Width(), window.Height()
	if w <= 0 || h <= 0 {
		w, h = extent(items)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for _, it := range items {
		if it.Rect == nil {
			continue
		}
		r := *it.Rect
		c := boxColor
		if it.SubMenu != 0 {
			c = subMenuColor
		}
		drawRectangle(img, r.Left, r.Top, r.Right, r.Bottom, c)

		label := it.Title
		if mode == LabelIDs {
			label = fmt.Sprintf("[%d]", it.CommandID)
		}
		drawTextWithOutline(img, label, r.Left+2, r.Top+(r.Height()+glyphAscent)/2)
	}
	return img
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

// extent returns the smallest canvas that holds every item, at least 1x1.
func extent(items []model.FlatMenuItem) (int, int) {
	w, h := 1, 1
	for _, it := range items {
		if it.Rect == nil {
			continue
		}
		if it.Rect.Right > w {
			w = it.Rect.Right
		}
		if it.Rect.Bottom > h {
			h = it.Rect.Bottom
		}
	}
	return w, h
}

// drawRectangle draws a rectangle outline clipped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	r := image.Rect(x1, y1, x2, y2).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawTextWithOutline draws text with its baseline at y and a one-pixel outline.
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawText(img, text, x+dx, y+dy, outlineColor)
		}
	}
	drawText(img, text, x, y, textColor)
}

func drawText(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
