package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/mirbrowse/server/internal/view"
)

func TestRenderRepeatChart(t *testing.T) {
	t.Parallel()

	r := NewChartRenderer(Config{Width: 320, Height: 240})
	bars := []view.RepeatCount{
		{Label: "LINE", Count: 3, Percent: 60, Color: "#009ADE"},
		{Label: "no repeat", Count: 2, Percent: 40, Color: "not-a-color"},
	}
	data, err := r.RenderRepeatChart(bars)
	if err != nil {
		t.Fatalf("RenderRepeatChart: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Fatalf("unexpected size %v", b)
	}
}

func TestRenderRepeatChartEmpty(t *testing.T) {
	t.Parallel()

	r := NewChartRenderer(Config{})
	data, err := r.RenderRepeatChart(nil)
	if err != nil {
		t.Fatalf("RenderRepeatChart: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w, h := r.Size(); img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
}
