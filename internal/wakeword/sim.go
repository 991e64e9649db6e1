package wakeword

import (
	"path/filepath"
	"strings"
	"time"
)

// SimSource is an AudioSource used when no capture hardware is wired in. It
// exposes a single fake USB microphone and streams silence in real time, so
// the full capture/scoring loop runs without a device.
type SimSource struct{}

func NewSimSource() *SimSource { return &SimSource{} }

func (s *SimSource) Devices() ([]DeviceInfo, error) {
	return []DeviceInfo{
		{Index: 0, Name: "Simulated USB Microphone", MaxInputChannels: 1, DefaultSampleRate: 16000},
	}, nil
}

func (s *SimSource) Open(cfg StreamConfig) (AudioStream, error) {
	return &simStream{rate: cfg.SampleRate}, nil
}

type simStream struct {
	rate int
}

// Read paces itself like a real capture would: one chunk per chunk duration.
func (st *simStream) Read(frames int) ([]int16, error) {
	time.Sleep(time.Duration(frames) * time.Second / time.Duration(st.rate))
	return make([]int16, frames), nil
}

func (st *simStream) Close() error { return nil }

// LoadSimScorer is a ScorerLoader returning a scorer that never fires. The
// model name is taken from the model file name so status output and event
// metadata stay meaningful in simulation mode.
func LoadSimScorer(modelPath string) (Scorer, error) {
	name := strings.TrimSuffix(filepath.Base(modelPath), filepath.Ext(modelPath))
	if name == "" || name == "." {
		name = "wakeword"
	}
	return &simScorer{model: name}, nil
}

type simScorer struct {
	model string
}

func (s *simScorer) Predict(samples []int16) (map[string]float64, error) {
	return map[string]float64{s.model: 0}, nil
}

func (s *simScorer) Close() error { return nil }
