package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestCanvas_FillRectScales(t *testing.T) {
	// 10 columns x 5 rows -> 10 x 10 sub-pixels over a 100 x 100 logical field.
	c := NewScaledCanvas(10, 5, 100, 100)
	c.FillRect(0, 0, 20, 20, ColorRed)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := c.At(x, y); got != ColorRed {
				t.Errorf("pixel (%d,%d) = %d, want red", x, y, got)
			}
		}
	}
	if got := c.At(2, 0); got != ColorNone {
		t.Errorf("pixel (2,0) = %d, want none", got)
	}
}

func TestCanvas_FillRectMinimumPixel(t *testing.T) {
	c := NewScaledCanvas(10, 5, 1000, 1000)
	c.FillRect(500, 500, 1, 1, ColorWhite)
	if got := c.At(5, 5); got != ColorWhite {
		t.Errorf("tiny rect should cover one pixel, got %d", got)
	}
}

func TestCanvas_FillCircle(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.FillCircle(10, 10, 5, ColorBlue)

	if got := c.At(10, 10); got != ColorBlue {
		t.Errorf("center pixel = %d, want blue", got)
	}
	if got := c.At(0, 0); got != ColorNone {
		t.Errorf("corner pixel = %d, want none", got)
	}
}

func TestCanvas_OutOfBoundsIgnored(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(-10, -10, ColorRed)
	c.SetFloat(100, 100, ColorRed)
	for i, p := range c.pixels {
		if p != ColorNone {
			t.Fatalf("pixel %d set by out of bounds draw", i)
		}
	}
}

func TestCanvas_RenderHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(3, 1, 3, 2)
	c.setPixel(0, 0, ColorRed)   // top only
	c.setPixel(1, 1, ColorGreen) // bottom only
	c.setPixel(2, 0, ColorBlue)
	c.setPixel(2, 1, ColorBlue)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()

	for _, want := range []string{string(BlockUpperHalf), string(BlockLowerHalf), string(BlockFull)} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
	if !strings.HasSuffix(out, ansiReset) {
		t.Error("render output should end with a colour reset")
	}
}

func TestFitAspect(t *testing.T) {
	// Portrait field in a wide terminal: height-limited.
	w, h, offCol, offRow := FitAspect(200, 50, 560, 900)
	if h != 50 {
		t.Errorf("height = %d, want 50", h)
	}
	if w != 62 {
		t.Errorf("width = %d, want 62", w)
	}
	if offCol != 69 || offRow != 0 {
		t.Errorf("offset = (%d,%d), want (69,0)", offCol, offRow)
	}

	// Narrow terminal: width-limited.
	w, h, _, _ = FitAspect(30, 50, 560, 900)
	if w != 30 {
		t.Errorf("width = %d, want 30", w)
	}
	if h != 24 {
		t.Errorf("height = %d, want 24", h)
	}
}
