package wakeword

import (
	"math"
	"testing"
)

func TestNewResampler_ReducesRatio(t *testing.T) {
	r, err := NewResampler(44100, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	up, down := r.Ratio()
	if up != 160 || down != 441 {
		t.Fatalf("ratio = %d/%d, want 160/441", up, down)
	}

	if _, err := NewResampler(0, 16000); err == nil {
		t.Fatal("expected error for zero rate")
	}
}

func TestResampler_OutputLenPreservesDuration(t *testing.T) {
	r, err := NewResampler(44100, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1280 samples at 44.1 kHz ≈ 29 ms ≈ 464 samples at 16 kHz.
	got := r.OutputLen(1280)
	if got < 464 || got > 465 {
		t.Fatalf("OutputLen(1280) = %d, want 464-465", got)
	}

	out := r.Resample(make([]int16, 1280))
	if len(out) != got {
		t.Fatalf("Resample produced %d samples, OutputLen promised %d", len(out), got)
	}
}

func TestResampler_SameRatePassthrough(t *testing.T) {
	r, err := NewResampler(16000, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := []int16{1, -2, 3, -4, 32767, -32768}
	out := r.Resample(in)
	if len(out) != len(in) {
		t.Fatalf("length = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d = %d, want %d", i, out[i], in[i])
		}
	}
}

func TestResampler_PreservesDCLevel(t *testing.T) {
	r, err := NewResampler(44100, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := make([]int16, 4410) // 100 ms of a constant signal
	for i := range in {
		in[i] = 1000
	}
	out := r.Resample(in)

	// Edge samples see the zero padding; check the middle half.
	lo, hi := len(out)/4, 3*len(out)/4
	for i := lo; i < hi; i++ {
		if math.Abs(float64(out[i])-1000) > 20 {
			t.Fatalf("sample %d = %d, want ~1000", i, out[i])
		}
	}
}

func TestResampler_Upsample(t *testing.T) {
	r, err := NewResampler(8000, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	up, down := r.Ratio()
	if up != 2 || down != 1 {
		t.Fatalf("ratio = %d/%d, want 2/1", up, down)
	}
	if got := r.OutputLen(640); got != 1280 {
		t.Fatalf("OutputLen(640) = %d, want 1280", got)
	}

	in := make([]int16, 640)
	for i := range in {
		in[i] = -500
	}
	out := r.Resample(in)
	lo, hi := len(out)/4, 3*len(out)/4
	for i := lo; i < hi; i++ {
		if math.Abs(float64(out[i])+500) > 20 {
			t.Fatalf("sample %d = %d, want ~-500", i, out[i])
		}
	}
}
