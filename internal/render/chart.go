// Package render provides chart rendering using fogleman/gg.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"sync"

	"github.com/fogleman/gg"

	"github.com/mirbrowse/server/internal/view"
	"github.com/mirbrowse/server/pkg/colormap"
)

// Config contains renderer configuration.
type Config struct {
	Width  int
	Height int
}

// ChartRenderer renders repeat-class bar charts as PNG.
type ChartRenderer struct {
	config      Config
	contextPool sync.Pool
	bufferPool  sync.Pool
}

const (
	marginLeft   = 56.0
	marginRight  = 16.0
	marginTop    = 24.0
	marginBottom = 96.0
	yTicks       = 5
)

// NewChartRenderer creates a new chart renderer.
func NewChartRenderer(cfg Config) *ChartRenderer {
	if cfg.Width <= 0 {
		cfg.Width = 700
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	return &ChartRenderer{
		config: cfg,
		contextPool: sync.Pool{
			New: func() interface{} {
				return gg.NewContext(cfg.Width, cfg.Height)
			},
		},
		bufferPool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 32*1024))
			},
		},
	}
}

// Size returns the chart dimensions in pixels.
func (r *ChartRenderer) Size() (int, int) { return r.config.Width, r.config.Height }

// RenderRepeatChart draws one bar per repeat class, in the given order and
// colors. An empty distribution yields a blank chart with a notice.
func (r *ChartRenderer) RenderRepeatChart(bars []view.RepeatCount) ([]byte, error) {
	dc := r.contextPool.Get().(*gg.Context)
	defer r.contextPool.Put(dc)

	dc.SetColor(color.White)
	dc.Clear()

	w, h := float64(r.config.Width), float64(r.config.Height)
	if len(bars) == 0 {
		dc.SetColor(color.Black)
		dc.DrawStringAnchored("Repeat_Class is missing or empty", w/2, h/2, 0.5, 0.5)
		return r.encodeContext(dc)
	}

	maxCount := 0
	for _, b := range bars {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	plotW := w - marginLeft - marginRight
	plotH := h - marginTop - marginBottom
	baseY := marginTop + plotH

	// Axes and y ticks.
	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawLine(marginLeft, marginTop, marginLeft, baseY)
	dc.DrawLine(marginLeft, baseY, marginLeft+plotW, baseY)
	dc.Stroke()
	for i := 0; i <= yTicks; i++ {
		v := float64(maxCount) * float64(i) / yTicks
		y := baseY - plotH*float64(i)/yTicks
		dc.DrawLine(marginLeft-4, y, marginLeft, y)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", v), marginLeft-6, y, 1, 0.5)
	}

	slot := plotW / float64(len(bars))
	for i, b := range bars {
		bh := plotH * float64(b.Count) / float64(maxCount)
		x := marginLeft + slot*float64(i)

		fill, err := colormap.ParseHex(b.Color)
		if err != nil {
			fill = colormap.UCSC.AtIndex(i).(color.RGBA)
		}
		dc.SetColor(fill)
		dc.DrawRectangle(x, baseY-bh, slot, bh)
		dc.FillPreserve()
		dc.SetColor(color.White)
		dc.SetLineWidth(1.5)
		dc.Stroke()

		dc.SetColor(color.Black)
		dc.DrawStringAnchored(fmt.Sprintf("%d", b.Count), x+slot/2, baseY-bh-4, 0.5, 0)

		// Rotated category label below the axis.
		dc.Push()
		dc.RotateAbout(gg.Radians(45), x+slot/2, baseY+8)
		dc.DrawString(b.Label, x+slot/2, baseY+8)
		dc.Pop()
	}

	dc.DrawStringAnchored("Repeat class", marginLeft+plotW/2, h-8, 0.5, 0)
	return r.encodeContext(dc)
}

func (r *ChartRenderer) encodeContext(dc *gg.Context) ([]byte, error) {
	buf := r.bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		r.bufferPool.Put(buf)
	}()

	encoder := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := encoder.Encode(buf, dc.Image()); err != nil {
		return nil, err
	}

	// Copy buffer contents (buffer will be reused)
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}
