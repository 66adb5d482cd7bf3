package overlay

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/mj1618/winctl/internal/model"
)

func rect(l, t, r, b int) *model.Rect {
	return &model.Rect{Left: l, Top: t, Right: r, Bottom: b}
}

func TestRender_CanvasAndBoxes(t *testing.T) {
	items := []model.FlatMenuItem{
		{Path: "File", Title: "File", SubMenu: 10, Rect: rect(10, 30, 50, 50)},
		{Path: "File > Save", Title: "Save", CommandID: 2, Rect: rect(10, 50, 200, 70)},
		{Path: "File > Lost", Title: "Lost", CommandID: 3},
	}
	img := Render(model.Rect{Left: 100, Top: 200, Right: 500, Bottom: 500}, items, LabelTitles)

	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("canvas = %v, want 400x300", b)
	}
	if got := img.RGBAAt(10, 30); got != subMenuColor {
		t.Errorf("submenu corner = %v, want %v", got, subMenuColor)
	}
	if got := img.RGBAAt(199, 69); got != boxColor {
		t.Errorf("item corner = %v, want %v", got, boxColor)
	}
	if got := img.RGBAAt(350, 250); got != background {
		t.Errorf("untouched pixel = %v, want background", got)
	}
}

func TestRender_FitsItemsWithoutWindow(t *testing.T) {
	items := []model.FlatMenuItem{{Title: "A", Rect: rect(0, 0, 120, 40)}}
	img := Render(model.Rect{}, items, LabelIDs)
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 40 {
		t.Errorf("canvas = %v, want 120x40", b)
	}

	empty := Render(model.Rect{}, nil, LabelIDs)
	if b := empty.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("empty canvas = %v, want 1x1", b)
	}
}

func TestRender_ClipsOutOfBounds(t *testing.T) {
	items := []model.FlatMenuItem{{Title: "Far", Rect: rect(-50, -50, 5000, 5000)}}
	img := Render(model.Rect{Right: 100, Bottom: 100}, items, LabelTitles)
	if got := img.RGBAAt(0, 0); got != boxColor {
		t.Errorf("clipped corner = %v, want %v", got, boxColor)
	}
}

func TestWritePNG_RoundTrip(t *testing.T) {
	img := Render(model.Rect{Right: 64, Bottom: 32}, nil, LabelTitles)
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
}
