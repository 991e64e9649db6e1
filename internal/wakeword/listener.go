package wakeword

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"lightbulb/internal/logger"
)

const (
	// startTimeout bounds how long Start waits for the loop goroutine to
	// finish loading the scorer and opening the audio device.
	startTimeout = 10 * time.Second
	// stopTimeout bounds how long Stop waits for the loop to exit.
	stopTimeout = 2 * time.Second
	// transientPause is the backoff after a failed read or predict.
	transientPause = 100 * time.Millisecond
)

// ErrAlreadyRunning is returned by Start when the listener is active.
var ErrAlreadyRunning = errors.New("wake word listener already running")

// Config carries the pipeline parameters consumed at construction.
type Config struct {
	ModelPath string
	Threshold float64
	Cooldown  time.Duration
	// SampleRate is the target rate the scorer expects.
	SampleRate int
	// ChunkFrames is the window size in samples at the target rate.
	ChunkFrames int
	// DeviceIndex selects the capture device; negative means auto-pick.
	DeviceIndex int
}

// Detection is a transient wake-word event handed to the callback.
type Detection struct {
	Model string    `json:"model"`
	Score float64   `json:"score"`
	At    time.Time `json:"at"`
}

// Callback receives debounced detections. It runs on the listener goroutine
// without any listener lock held, so it may freely call back into the rest
// of the application.
type Callback func(Detection)

// Listener captures audio in a background goroutine, adapts its sample rate,
// scores fixed-size windows, and fires debounced detection callbacks.
type Listener struct {
	cfg        Config
	source     AudioSource
	loadScorer ScorerLoader
	log        *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	cbMu     sync.RWMutex
	callback Callback

	// now is stubbed in tests to drive cooldown timing.
	now func() time.Time
	// setupTimeout is shortened in tests; defaults to startTimeout.
	setupTimeout time.Duration
}

// NewListener wires the pipeline. The scorer and audio stream are not opened
// until Start.
func NewListener(cfg Config, source AudioSource, loadScorer ScorerLoader, log *logger.Logger) *Listener {
	return &Listener{
		cfg:          cfg,
		source:       source,
		loadScorer:   loadScorer,
		log:          log,
		now:          time.Now,
		setupTimeout: startTimeout,
	}
}

// SetCallback atomically replaces the detection callback used by subsequent
// detections. May be called at any time, including while running.
func (l *Listener) SetCallback(cb Callback) {
	l.cbMu.Lock()
	l.callback = cb
	l.cbMu.Unlock()
}

// Config returns a copy of the listener configuration.
func (l *Listener) Config() Config {
	return l.cfg
}

// Start spawns the capture loop. The scorer model and audio device are
// opened inside the goroutine; Start waits (bounded) for that setup and
// returns its error, leaving no goroutine behind on failure.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done != nil {
		select {
		case <-l.done:
			// previous loop exited on its own; allow restart
		default:
			return ErrAlreadyRunning
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	ready := make(chan error, 1)

	go func() {
		defer close(done)
		l.run(ctx, ready)
	}()

	select {
	case err := <-ready:
		if err != nil {
			cancel()
			<-done
			return err
		}
	case <-time.After(l.setupTimeout):
		// Setup is hung in the loader or the device open, neither of which
		// takes a context. Do not join: the goroutine sees the cancel right
		// after it signals ready (the channel is buffered) and cleans up
		// its own scorer and stream handles on the way out.
		cancel()
		return fmt.Errorf("wake word listener start timed out after %s", l.setupTimeout)
	}

	l.cancel = cancel
	l.done = done
	l.log.Infow("wake word listener started", "model", l.cfg.ModelPath)
	return nil
}

// Stop signals the loop and waits (bounded) for it to exit. Idempotent and
// safe when the loop already exited; resources are released by the loop
// itself on every exit path.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel == nil {
		return
	}
	l.cancel()

	select {
	case <-l.done:
	case <-time.After(stopTimeout):
		l.log.Warnw("wake word listener did not stop in time")
	}

	l.cancel = nil
	l.done = nil
	l.log.Infow("wake word listener stopped")
}

// IsRunning is a non-blocking liveness check.
func (l *Listener) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
		return true
	}
}

// run owns the scorer and stream handles for the lifetime of the loop.
func (l *Listener) run(ctx context.Context, ready chan<- error) {
	scorer, err := l.loadScorer(l.cfg.ModelPath)
	if err != nil {
		ready <- fmt.Errorf("load wake word model %q: %w", l.cfg.ModelPath, err)
		return
	}
	defer func() {
		if cerr := scorer.Close(); cerr != nil {
			l.log.Errorw("close scorer failed", "err", cerr)
		}
	}()

	stream, chunkFrames, resampler, err := l.openAudio()
	if err != nil {
		ready <- err
		return
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil {
			l.log.Errorw("close audio stream failed", "err", cerr)
		}
	}()

	ready <- nil

	// Start may have already timed out and walked away; exit before the
	// first read so the deferred closes release the handles.
	if ctx.Err() != nil {
		return
	}

	var lastDetection time.Time // shared across model names
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		samples, err := stream.Read(chunkFrames)
		if err != nil {
			l.log.Errorw("audio read failed", "err", err)
			if !l.pause(ctx) {
				return
			}
			continue
		}

		if resampler != nil {
			samples = resampler.Resample(samples)
		}

		scores, err := scorer.Predict(samples)
		if err != nil {
			l.log.Errorw("wake word predict failed", "err", err)
			if !l.pause(ctx) {
				return
			}
			continue
		}

		for model, score := range scores {
			if score < l.cfg.Threshold {
				continue
			}
			now := l.now()
			if now.Sub(lastDetection) < l.cfg.Cooldown {
				l.log.Debugw("wake word suppressed by cooldown", "model", model, "score", score)
				continue
			}
			lastDetection = now
			l.log.Infow("wake word detected", "model", model, "score", score)
			l.dispatch(Detection{Model: model, Score: score, At: now})
		}
	}
}

// openAudio picks a device, opens it at the target rate, and falls back to
// the device's native rate with a resampler when the target is unsupported.
// The chunk size is pre-scaled so each read yields the same duration of
// audio regardless of the capture rate.
func (l *Listener) openAudio() (AudioStream, int, *Resampler, error) {
	devices, err := l.source.Devices()
	if err != nil {
		return nil, 0, nil, fmt.Errorf("list audio devices: %w", err)
	}

	var device DeviceInfo
	if l.cfg.DeviceIndex >= 0 {
		device, err = deviceByIndex(devices, l.cfg.DeviceIndex)
	} else {
		device, err = pickInputDevice(devices)
	}
	if err != nil {
		return nil, 0, nil, err
	}

	stream, err := l.source.Open(StreamConfig{
		DeviceIndex: device.Index,
		SampleRate:  l.cfg.SampleRate,
		Channels:    1,
		ChunkFrames: l.cfg.ChunkFrames,
	})
	if err == nil {
		l.log.Infow("audio stream opened",
			"device", device.Name, "rate", l.cfg.SampleRate, "chunk", l.cfg.ChunkFrames)
		return stream, l.cfg.ChunkFrames, nil, nil
	}
	if !errors.Is(err, ErrRateNotSupported) {
		return nil, 0, nil, fmt.Errorf("open audio device %q: %w", device.Name, err)
	}

	deviceRate := device.DefaultSampleRate
	deviceChunk := l.cfg.ChunkFrames * deviceRate / l.cfg.SampleRate
	l.log.Infow("device does not support target rate, recording at native rate and resampling",
		"device", device.Name, "target_rate", l.cfg.SampleRate,
		"device_rate", deviceRate, "device_chunk", deviceChunk)

	stream, err = l.source.Open(StreamConfig{
		DeviceIndex: device.Index,
		SampleRate:  deviceRate,
		Channels:    1,
		ChunkFrames: deviceChunk,
	})
	if err != nil {
		return nil, 0, nil, fmt.Errorf("open audio device %q at native rate %d: %w", device.Name, deviceRate, err)
	}

	resampler, err := NewResampler(deviceRate, l.cfg.SampleRate)
	if err != nil {
		_ = stream.Close()
		return nil, 0, nil, err
	}
	return stream, deviceChunk, resampler, nil
}

// pause sleeps the transient backoff; returns false if cancelled meanwhile.
func (l *Listener) pause(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(transientPause):
		return true
	}
}

// dispatch invokes the callback without holding the listener lock, so a
// handler may call back into the controller. A panicking callback is logged
// and never stops the loop.
func (l *Listener) dispatch(d Detection) {
	l.cbMu.RLock()
	cb := l.callback
	l.cbMu.RUnlock()
	if cb == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			l.log.Errorw("detection callback panicked", "err", r)
		}
	}()
	cb(d)
}
