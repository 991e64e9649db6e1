package wakeword

import (
	"errors"
	"strings"
)

// Errors returned while opening the capture path.
var (
	ErrNoInputDevice    = errors.New("no audio input device found")
	ErrRateNotSupported = errors.New("sample rate not supported by device")
)

// DeviceInfo describes one audio capture device.
type DeviceInfo struct {
	Index             int
	Name              string
	MaxInputChannels  int
	DefaultSampleRate int
}

// StreamConfig are the parameters for opening a capture stream.
type StreamConfig struct {
	DeviceIndex int
	SampleRate  int
	Channels    int
	ChunkFrames int
}

// AudioSource abstracts the audio backend (PortAudio, ALSA, a test fake).
// Open must return ErrRateNotSupported when the device cannot capture at the
// requested rate, so the caller can fall back to the device's native rate.
type AudioSource interface {
	Devices() ([]DeviceInfo, error)
	Open(cfg StreamConfig) (AudioStream, error)
}

// AudioStream is one open capture handle delivering mono PCM16 samples.
type AudioStream interface {
	// Read blocks until frames samples are captured.
	Read(frames int) ([]int16, error)
	Close() error
}

// Scorer turns a PCM16 window into per-model wake-word scores in [0,1].
type Scorer interface {
	Predict(samples []int16) (map[string]float64, error)
	Close() error
}

// ScorerLoader constructs a Scorer from a model path. It runs inside the
// listener goroutine because scorer handles are not safely shared across
// the start boundary.
type ScorerLoader func(modelPath string) (Scorer, error)

// usbKeywords mark likely microphone devices in enumeration output.
var usbKeywords = []string{"usb", "microphone", "mic", "audio"}

// pickInputDevice chooses a capture device: a USB-microphone looking name
// first, otherwise the first device with input channels.
func pickInputDevice(devices []DeviceInfo) (DeviceInfo, error) {
	var inputs []DeviceInfo
	for _, d := range devices {
		if d.MaxInputChannels > 0 {
			inputs = append(inputs, d)
		}
	}
	if len(inputs) == 0 {
		return DeviceInfo{}, ErrNoInputDevice
	}

	for _, d := range inputs {
		name := strings.ToLower(d.Name)
		for _, kw := range usbKeywords {
			if strings.Contains(name, kw) {
				return d, nil
			}
		}
	}
	return inputs[0], nil
}

// deviceByIndex finds an explicitly configured device.
func deviceByIndex(devices []DeviceInfo, index int) (DeviceInfo, error) {
	for _, d := range devices {
		if d.Index == index && d.MaxInputChannels > 0 {
			return d, nil
		}
	}
	return DeviceInfo{}, ErrNoInputDevice
}
