package opengl

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/google/go-cmp/cmp"

	"github.com/aethyra/gui"
)

type recordedCalls struct {
	log []string
}

func (r *recordedCalls) Enable(capability uint32) {
	r.log = append(r.log, "enable")
}

func (r *recordedCalls) Disable(capability uint32) {
	r.log = append(r.log, "disable")
}

func (r *recordedCalls) BindTexture(target, texture uint32) {
	r.log = append(r.log, "bind")
}

func TestGLStateElidesRedundantCalls(t *testing.T) {
	calls := &recordedCalls{}
	s := newGLState(calls)

	s.enable(gl.BLEND)
	s.enable(gl.BLEND)
	s.disable(gl.CULL_FACE)
	s.disable(gl.CULL_FACE)
	s.bindTexture(3)
	s.bindTexture(3)
	s.bindTexture(0)
	s.disable(gl.BLEND)

	want := []string{"enable", "disable", "bind", "bind", "disable"}
	if diff := cmp.Diff(want, calls.log); diff != "" {
		t.Errorf("driver calls mismatch (-want +got):\n%s", diff)
	}
}

func TestGLStateReset(t *testing.T) {
	calls := &recordedCalls{}
	s := newGLState(calls)
	s.enable(gl.SCISSOR_TEST)
	s.bindTexture(0)

	s.reset()
	s.enable(gl.SCISSOR_TEST)
	s.bindTexture(0)

	if len(calls.log) != 4 {
		t.Errorf("after reset every call should reach the driver: %v", calls.log)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	for v, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 17: 32, 64: 64, 1000: 1024} {
		if got := nextPowerOfTwo(v); got != want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestPadPixels(t *testing.T) {
	s := gui.NewSurface(3, 2, gui.FormatRGBA8888)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			s.SetPixel(x, y, color.NRGBA{R: uint8(x + 1), G: uint8(y + 1), A: 255})
		}
	}
	data := padPixels(s, 4, 2)
	if len(data) != 4*2*4 {
		t.Fatalf("len = %d", len(data))
	}
	for y := 0; y < 2; y++ {
		row := data[y*16 : y*16+16]
		if !bytes.Equal(row[:12], s.Pix[y*s.Stride:y*s.Stride+12]) {
			t.Errorf("row %d pixels = %v", y, row[:12])
		}
		if !bytes.Equal(row[12:], make([]byte, 4)) {
			t.Errorf("row %d padding = %v, want zero", y, row[12:])
		}
	}

	if exact := padPixels(s, 3, 2); &exact[0] != &s.Pix[0] {
		t.Error("unpadded surface should be uploaded in place")
	}
}

func TestScissorBox(t *testing.T) {
	tests := []struct {
		name       string
		clip       gui.Rect
		x, y, w, h int32
		ok         bool
	}{
		{"inside", gui.Rect{X: 10, Y: 20, W: 30, H: 40}, 10, 40, 30, 40, true},
		{"over bottom left", gui.Rect{X: -5, Y: 90, W: 20, H: 20}, 0, 0, 15, 10, true},
		{"off screen", gui.Rect{X: -30, Y: 0, W: 20, H: 10}, 0, 90, -10, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h, ok := scissorBox(tt.clip, 100)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (x != tt.x || y != tt.y || w != tt.w || h != tt.h) {
				t.Errorf("box = %d,%d %dx%d, want %d,%d %dx%d", x, y, w, h, tt.x, tt.y, tt.w, tt.h)
			}
		})
	}
}
