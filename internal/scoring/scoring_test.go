package scoring

import (
	"image"
	"image/color"
	"math"
	"testing"
)

const epsilon = 1e-12

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon*math.Max(1, math.Abs(b))
}

func TestChop(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.1, 1.0},
		{-1.1, -1.0},
		{0, 0},
		{0.9, 0},
		{-0.9, 0},
		{42, 42},
		{-42, -42},
		{255.999, 255},
	}

	for _, tt := range tests {
		got := Chop(tt.in)
		if got != tt.want {
			t.Errorf("Chop(%v): got %v, want %v", tt.in, got, tt.want)
		}
		if math.Abs(got) > math.Abs(tt.in) {
			t.Errorf("Chop(%v): |%v| exceeds |input|", tt.in, got)
		}
		if tt.in < 0 && got > 0 || tt.in > 0 && got < 0 {
			t.Errorf("Chop(%v): sign flipped to %v", tt.in, got)
		}
	}
}

func TestChop_NaN(t *testing.T) {
	if !math.IsNaN(Chop(math.NaN())) {
		t.Error("Chop(NaN) should be NaN")
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-1.0, 0},
		{0.0, 0},
		{10.0, 10},
		{255.0, 255},
		{255.1, 255},
		{1e9, 255},
		{-1e9, 0},
		{10.4, 10},
		{10.5, 11},
		{254.5, 255},
	}

	for _, tt := range tests {
		if got := Bounds(tt.in); got != tt.want {
			t.Errorf("Bounds(%v): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestThirds(t *testing.T) {
	if got := thirds(0.0); got != 0.0 {
		t.Errorf("thirds(0): got %v, want 0", got)
	}
	if got := thirds(1.0 / 3.0); !approxEqual(got, 1.0) {
		t.Errorf("thirds(1/3): got %v, want 1", got)
	}
	if got := thirds(1.0); got != 0.0 {
		t.Errorf("thirds(1): got %v, want 0", got)
	}
	for v := 0.0; v <= 1.0; v += 0.01 {
		got := thirds(v)
		if got < 0 || got > 1 {
			t.Errorf("thirds(%v) = %v outside [0,1]", v, got)
		}
	}
}

func TestCie(t *testing.T) {
	if got := Cie(Gray(0)); got != 0.0 {
		t.Errorf("Cie(gray 0): got %v, want 0", got)
	}
	if got := Cie(Gray(255)); got != 331.49999999999994 {
		t.Errorf("Cie(gray 255): got %v, want 331.49999999999994", got)
	}

	// Monochrome gray scales linearly
	base := Cie(Gray(50))
	for _, k := range []uint8{2, 3, 5} {
		got := Cie(Gray(50 * k))
		if !approxEqual(got, base*float64(k)) {
			t.Errorf("Cie(gray %d): got %v, want %v", 50*k, got, base*float64(k))
		}
	}
}

func TestSkinCol(t *testing.T) {
	if got := SkinCol(Gray(0)); !math.IsNaN(got) {
		t.Errorf("SkinCol(black): got %v, want NaN", got)
	}
	if got := SkinCol(Gray(255)); got != 0.7550795306611965 {
		t.Errorf("SkinCol(white): got %v, want 0.7550795306611965", got)
	}

	// Direction only: any gray has the same likelihood as white
	if got := SkinCol(Gray(17)); !approxEqual(got, SkinCol(Gray(255))) {
		t.Errorf("SkinCol(gray 17): got %v, want %v", got, SkinCol(Gray(255)))
	}

	skin := RGB{R: 199, G: 145, B: 112}
	blue := RGB{R: 0, G: 0, B: 255}
	if SkinCol(skin) <= SkinCol(blue) {
		t.Errorf("skin tone (%v) should score above blue (%v)", SkinCol(skin), SkinCol(blue))
	}
	// The reference vector is not exactly unit length, so even a perfect
	// match stays a little below 1.
	if SkinCol(skin) < 0.9 {
		t.Errorf("reference skin tone: got %v, want above 0.9", SkinCol(skin))
	}
}

func TestHeuristics_SkinColCustomReference(t *testing.T) {
	h := DefaultHeuristics()
	h.SkinColor = [3]float64{0, 0, 1}

	if got := h.SkinCol(RGB{B: 200}); !approxEqual(got, 1.0) {
		t.Errorf("SkinCol with blue reference: got %v, want 1", got)
	}
	// Package-level function is unaffected
	if got := SkinCol(RGB{B: 200}); approxEqual(got, 1.0) {
		t.Error("package-level SkinCol should use the default reference")
	}
}

func TestSaturation(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want float64
	}{
		{"black", Gray(0), 0},
		{"white", Gray(255), 0},
		{"mid gray", Gray(128), 0},
		{"red", RGB{255, 0, 0}, 1},
		{"green", RGB{0, 255, 0}, 1},
		{"blue", RGB{0, 0, 255}, 1},
		{"cyan", RGB{0, 255, 255}, 1},
		{"dark half", RGB{100, 50, 50}, 1.0 / 3.0},
		{"light half", RGB{255, 191, 191}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Saturation(tt.c)
			if !approxEqual(got, tt.want) {
				t.Errorf("Saturation(%v): got %v, want %v", tt.c, got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("Saturation(%v) = %v outside [0,1]", tt.c, got)
			}
		})
	}
}

func TestImportance_UnitCrop(t *testing.T) {
	got := Importance(Crop{X: 0, Y: 0, Width: 1, Height: 1}, 0, 0)
	if got != -6.404213562373096 {
		t.Errorf("Importance(1x1, 0, 0): got %v, want -6.404213562373096", got)
	}
}

func TestImportance_Outside(t *testing.T) {
	crops := []Crop{
		{X: 0, Y: 0, Width: 1, Height: 1},
		{X: 10, Y: 20, Width: 30, Height: 40},
		{X: 100, Y: 0, Width: 5, Height: 500},
	}

	for _, c := range crops {
		points := [][2]int{
			{c.X - 1, c.Y},
			{c.X, c.Y - 1},
			{c.X + c.Width, c.Y},
			{c.X, c.Y + c.Height},
			{c.X + c.Width + 10, c.Y + c.Height + 10},
		}
		for _, p := range points {
			if got := Importance(c, p[0], p[1]); got != -0.5 {
				t.Errorf("Importance(%v, %d, %d): got %v, want -0.5", c, p[0], p[1], got)
			}
		}
	}
}

func TestImportance_CenterWithoutThirds(t *testing.T) {
	h := DefaultHeuristics()
	h.RuleOfThirds = false
	crop := Crop{Width: 100, Height: 100}

	best, bx, by := math.Inf(-1), -1, -1
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if v := h.Importance(crop, x, y); v > best {
				best, bx, by = v, x, y
			}
		}
	}

	if bx != 50 || by != 50 {
		t.Errorf("maximum at (%d,%d), want (50,50)", bx, by)
	}
	if !approxEqual(best, 1.41) {
		t.Errorf("center importance: got %v, want 1.41", best)
	}
}

func TestImportance_ThirdsBoost(t *testing.T) {
	crop := Crop{Width: 100, Height: 100}
	plain := DefaultHeuristics()
	plain.RuleOfThirds = false

	center := Importance(crop, 50, 50)
	for _, p := range [][2]int{{33, 33}, {67, 33}, {33, 67}, {67, 67}} {
		boosted := Importance(crop, p[0], p[1])
		if boosted <= center {
			t.Errorf("thirds point %v: got %v, want above center %v", p, boosted, center)
		}
		if boosted <= plain.Importance(crop, p[0], p[1]) {
			t.Errorf("thirds point %v: boost did not increase importance", p)
		}
		// Local maximum: moving toward the center loses the boost
		if inner := Importance(crop, p[0]+sign(50-p[0])*8, p[1]); inner >= boosted {
			t.Errorf("thirds point %v: neighbor %v is not lower than %v", p, inner, boosted)
		}
	}
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

func TestImportance_EdgePenalty(t *testing.T) {
	h := DefaultHeuristics()
	h.RuleOfThirds = false
	crop := Crop{Width: 100, Height: 100}

	// Outside the edge band the weight is exactly the radial falloff.
	if got, want := h.Importance(crop, 50, 30), 1.41-0.4; !approxEqual(got, want) {
		t.Errorf("inner point: got %v, want %v", got, want)
	}
	// Inside the band it drops below zero.
	if got := h.Importance(crop, 0, 50); got >= 0 {
		t.Errorf("edge point: got %v, want negative", got)
	}

	h.EdgeWeight = 0
	if got, want := h.Importance(crop, 0, 50), 1.41-1.0; !approxEqual(got, want) {
		t.Errorf("edge point without penalty: got %v, want %v", got, want)
	}
}

func TestImportance_ZeroAreaCrop(t *testing.T) {
	crop := Crop{X: 5, Y: 5, Width: 0, Height: 10}
	// Zero width contains no pixels.
	if got := Importance(crop, 5, 5); got != -0.5 {
		t.Errorf("zero-width crop: got %v, want -0.5", got)
	}
	if !crop.Empty() {
		t.Error("zero-width crop should report Empty")
	}

	for _, c := range []Crop{
		{X: 0, Y: 0, Width: 5, Height: 0},
		{X: 3, Y: 3, Width: -4, Height: 6},
	} {
		for _, p := range [][2]int{{0, 0}, {c.X, c.Y}, {c.X + 1, c.Y + 1}} {
			if got := Importance(c, p[0], p[1]); got != DefaultHeuristics().OutsideImportance {
				t.Errorf("Importance(%v, %d, %d): got %v, want %v", c, p[0], p[1], got, DefaultHeuristics().OutsideImportance)
			}
		}
	}
}

func TestCrop_Scale(t *testing.T) {
	crop := Crop{X: 2, Y: 4, Width: 8, Height: 16}
	got := crop.Scale(0.5)
	want := Crop{X: 1, Y: 2, Width: 4, Height: 8}
	if got != want {
		t.Errorf("Scale(0.5): got %+v, want %+v", got, want)
	}
	if crop != (Crop{X: 2, Y: 4, Width: 8, Height: 16}) {
		t.Error("Scale mutated the receiver")
	}
}

func TestCrop_ScaleTruncates(t *testing.T) {
	crop := Crop{X: 3, Y: 5, Width: 7, Height: 9}
	got := crop.Scale(0.5).Scale(2)
	if got == crop {
		t.Errorf("round trip unexpectedly preserved %+v", crop)
	}
	if want := (Crop{X: 2, Y: 4, Width: 6, Height: 8}); got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}

func TestCrop_Rect(t *testing.T) {
	crop := Crop{X: 10, Y: 20, Width: 30, Height: 40}
	if got, want := crop.Rect(), image.Rect(10, 20, 40, 60); got != want {
		t.Errorf("Rect: got %v, want %v", got, want)
	}
	if got := crop.String(); got != "30x40+10+20" {
		t.Errorf("String: got %q", got)
	}
}

func anyScore() Score {
	return Score{Detail: 1.0, Saturation: 2.0, Skin: 3.0, Total: 6.0}
}

func TestScoredCrop_Scale(t *testing.T) {
	sc := ScoredCrop{Crop: Crop{X: 2, Y: 4, Width: 8, Height: 16}, Score: anyScore()}
	got := sc.Scale(2)

	if want := (Crop{X: 4, Y: 8, Width: 16, Height: 32}); got.Crop != want {
		t.Errorf("crop: got %+v, want %+v", got.Crop, want)
	}
	if got.Score != anyScore() {
		t.Errorf("score: got %+v, want %+v", got.Score, anyScore())
	}
	if sc.Crop.Width != 8 {
		t.Error("Scale mutated the receiver")
	}
}

func TestScore_Add(t *testing.T) {
	got := anyScore().Add(anyScore())
	want := Score{Detail: 2, Saturation: 4, Skin: 6, Total: 12}
	if got != want {
		t.Errorf("Add: got %+v, want %+v", got, want)
	}
}

func TestRGBFromColor(t *testing.T) {
	got := RGBFromColor(color.RGBA{R: 255, G: 128, B: 64, A: 255})
	if want := (RGB{R: 255, G: 128, B: 64}); got != want {
		t.Errorf("RGBFromColor: got %+v, want %+v", got, want)
	}
	if !Degenerate(RGBFromColor(color.Black)) {
		t.Error("black should be degenerate")
	}
	if Degenerate(RGB{R: 1}) {
		t.Error("non-black should not be degenerate")
	}
}
