package view

import (
	"errors"
	"math"
	"testing"
)

func identityParams() Params {
	return Params{
		WidgetWidth:   800,
		WidgetHeight:  600,
		DisplayWidth:  800,
		DisplayHeight: 600,
		Zoom:          1,
		ImageScale:    1,
	}
}

func TestNewRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Params)
		field string
	}{
		{"zero widget width", func(p *Params) { p.WidgetWidth = 0 }, "widget_width"},
		{"negative display height", func(p *Params) { p.DisplayHeight = -5 }, "display_height"},
		{"negative zoom", func(p *Params) { p.Zoom = -1 }, "zoom_factor"},
		{"zero zoom", func(p *Params) { p.Zoom = 0 }, "zoom_factor"},
		{"NaN pan", func(p *Params) { p.PanOffsetX = math.NaN() }, "pan_offset_x"},
		{"Inf manual", func(p *Params) { p.ManualOffsetY = math.Inf(-1) }, "manual_offset_y"},
		{"Inf zoom", func(p *Params) { p.Zoom = math.Inf(1) }, "zoom_factor"},
		{"zero image scale", func(p *Params) { p.ImageScale = 0 }, "image_scale_adjustment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := identityParams()
			tt.mod(&p)
			vs, err := New(p)
			if err == nil {
				t.Fatalf("expected error, got %+v", vs)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error %v is not a ConfigurationError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
			if !vs.IsZero() {
				t.Errorf("failed New returned a non-zero ViewState")
			}
		})
	}
}

func TestEqualityAndMapKey(t *testing.T) {
	a := MustNew(identityParams())
	b := MustNew(identityParams())
	if a != b {
		t.Fatalf("identical params produced unequal states")
	}

	p := identityParams()
	p.PanOffsetX = math.Copysign(0, -1)
	neg := MustNew(p)
	if neg != a {
		t.Fatalf("-0 pan offset not canonicalised")
	}
	if math.Signbit(neg.Params().PanOffsetX) {
		t.Fatalf("stored pan offset keeps the sign bit")
	}

	m := map[ViewState]int{a: 1}
	if m[b] != 1 {
		t.Fatalf("equal ViewState did not hit map key")
	}
}

func TestWithUpdatesDoesNotMutate(t *testing.T) {
	orig := MustNew(identityParams())
	next, err := orig.WithUpdates(Zoom(2), PanOffset(10, -4), FlipY(true))
	if err != nil {
		t.Fatalf("WithUpdates failed: %v", err)
	}
	if orig.Zoom() != 1 || orig.FlipY() {
		t.Fatalf("original mutated: %+v", orig.Params())
	}
	if next.Zoom() != 2 || !next.FlipY() {
		t.Fatalf("update not applied: %+v", next.Params())
	}
	if x, y := next.PanOffset(); x != 10 || y != -4 {
		t.Errorf("pan = %v,%v", x, y)
	}
	if w, h := next.WidgetSize(); w != 800 || h != 600 {
		t.Errorf("untouched widget size changed: %dx%d", w, h)
	}

	if _, err := orig.WithUpdates(Zoom(-1)); err == nil {
		t.Fatalf("expected ConfigurationError from invalid update")
	}
}

func TestOptionsReachEveryAccessor(t *testing.T) {
	vs, err := MustNew(identityParams()).WithUpdates(
		WidgetSize(1024, 768),
		DisplaySize(640, 480),
		Zoom(1.5),
		CenterOffset(3, 4),
		PanOffset(5, 6),
		ManualOffset(7, 8),
		FlipY(true),
		ScaleToImage(true, 2),
	)
	if err != nil {
		t.Fatalf("WithUpdates failed: %v", err)
	}

	pairs := []struct {
		name       string
		gotX, gotY float64
		wantX      float64
		wantY      float64
	}{
		{"widget", float64(first(vs.WidgetSize())), float64(second(vs.WidgetSize())), 1024, 768},
		{"display", float64(first(vs.DisplaySize())), float64(second(vs.DisplaySize())), 640, 480},
		{"center", first(vs.CenterOffset()), second(vs.CenterOffset()), 3, 4},
		{"pan", first(vs.PanOffset()), second(vs.PanOffset()), 5, 6},
		{"manual", first(vs.ManualOffset()), second(vs.ManualOffset()), 7, 8},
	}
	for _, p := range pairs {
		if p.gotX != p.wantX || p.gotY != p.wantY {
			t.Errorf("%s = %v,%v, want %v,%v", p.name, p.gotX, p.gotY, p.wantX, p.wantY)
		}
	}
	if vs.Zoom() != 1.5 || !vs.FlipY() || !vs.ScaleToImage() || vs.ImageScale() != 2 {
		t.Errorf("scalar accessors = zoom %v flip %v scaleToImage %v imageScale %v",
			vs.Zoom(), vs.FlipY(), vs.ScaleToImage(), vs.ImageScale())
	}
}

func first[T any](a, _ T) T  { return a }
func second[T any](_, b T) T { return b }

func TestCenterFor(t *testing.T) {
	// 1920x1080 content in an 960x960 widget: fit ratio 0.5.
	cx, cy := CenterFor(960, 960, 1920, 1080, 1, false)
	if cx != 0 || cy != (960-540)/2.0 {
		t.Errorf("CenterFor = %v,%v", cx, cy)
	}
	_, fy := CenterFor(960, 960, 1920, 1080, 1, true)
	if fy != cy+540 {
		t.Errorf("flipped center y = %v, want %v", fy, cy+540)
	}

	vs := MustNew(identityParams())
	re, err := vs.WithUpdates(WidgetSize(1600, 600), Recenter())
	if err != nil {
		t.Fatalf("WithUpdates failed: %v", err)
	}
	if x, y := re.CenterOffset(); x != 400 || y != 0 {
		t.Errorf("recentered offset = %v,%v, want 400,0", x, y)
	}
}

func TestDefault(t *testing.T) {
	vs := Default(0, 480)
	if w, h := vs.WidgetSize(); w != 1 || h != 480 {
		t.Errorf("Default size = %dx%d", w, h)
	}
	if vs.FitRatio() != 1 {
		t.Errorf("Default fit ratio = %v", vs.FitRatio())
	}
}
