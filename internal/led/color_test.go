package led

import "testing"

func TestNewColor_RejectsOutOfRange(t *testing.T) {
	cases := [][3]int{
		{-1, 0, 0},
		{0, -1, 0},
		{0, 0, -1},
		{256, 0, 0},
		{0, 256, 0},
		{0, 0, 256},
	}
	for _, c := range cases {
		if _, err := NewColor(c[0], c[1], c[2]); err == nil {
			t.Errorf("NewColor(%d, %d, %d): expected error", c[0], c[1], c[2])
		}
	}
	if _, err := NewColor(0, 128, 255); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestColor_HexRoundTrip(t *testing.T) {
	cases := []Color{Off, Red, Green, Blue, White, WarmWhite, {R: 18, G: 52, B: 86}}
	for _, want := range cases {
		got, err := ParseHex(want.Hex())
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", want.Hex(), err)
		}
		if got != want {
			t.Errorf("round trip %v -> %q -> %v", want, want.Hex(), got)
		}
	}
}

func TestParseHex_AcceptsOptionalHash(t *testing.T) {
	for _, s := range []string{"#FF0000", "FF0000", "ff0000"} {
		c, err := ParseHex(s)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", s, err)
		}
		if c != Red {
			t.Errorf("ParseHex(%q) = %v, want %v", s, c, Red)
		}
	}
	for _, s := range []string{"", "#FFF", "nothex"} {
		if _, err := ParseHex(s); err == nil {
			t.Errorf("ParseHex(%q): expected error", s)
		}
	}
}

func TestLerp_Endpoints(t *testing.T) {
	c1, c2 := Color{10, 20, 30}, Color{200, 100, 0}
	if got := Lerp(c1, c2, 0); got != c1 {
		t.Errorf("Lerp(t=0) = %v, want %v", got, c1)
	}
	if got := Lerp(c1, c2, 1); got != c2 {
		t.Errorf("Lerp(t=1) = %v, want %v", got, c2)
	}
	// t is clamped to [0, 1]
	if got := Lerp(c1, c2, -0.5); got != c1 {
		t.Errorf("Lerp(t=-0.5) = %v, want %v", got, c1)
	}
	if got := Lerp(c1, c2, 1.5); got != c2 {
		t.Errorf("Lerp(t=1.5) = %v, want %v", got, c2)
	}
}

func TestLerp_MonotonicPerChannel(t *testing.T) {
	c1, c2 := Color{0, 255, 40}, Color{255, 0, 200}
	prev := Lerp(c1, c2, 0)
	for i := 1; i <= 100; i++ {
		cur := Lerp(c1, c2, float64(i)/100)
		if cur.R < prev.R || cur.G > prev.G || cur.B < prev.B {
			t.Fatalf("lerp not monotonic at t=%.2f: prev=%v cur=%v", float64(i)/100, prev, cur)
		}
		prev = cur
	}
}

func TestColor_Packed(t *testing.T) {
	if got := (Color{R: 0x12, G: 0x34, B: 0x56}).Packed(); got != 0x123456 {
		t.Fatalf("Packed() = %#x, want 0x123456", got)
	}
}

func TestWheel_StaysInRange(t *testing.T) {
	for pos := 0; pos < 256; pos++ {
		c := Wheel(pos)
		for _, v := range []int{c.R, c.G, c.B} {
			if v < 0 || v > 255 {
				t.Fatalf("Wheel(%d) = %v: channel out of range", pos, c)
			}
		}
	}
}
