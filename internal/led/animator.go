package led

import (
	"context"
	"math"
	"sync"
	"time"
)

// stopJoinTimeout bounds how long Stop waits for the frame loop to exit.
const stopJoinTimeout = 2 * time.Second

// frameWriter is the controller's internal write path: a full frame goes to
// state and hardware without stopping the animation or clearing the scene.
type frameWriter interface {
	writeFrame(colors []Color)
	ledCount() int
}

// Animator runs one animated scene in a background goroutine, producing a
// traveling color wave until cancelled.
type Animator struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	scene  string
}

func NewAnimator() *Animator {
	return &Animator{}
}

// Start begins rendering the scene onto w. Any running animation is stopped
// and joined under the same lock acquisition that arms the new loop, so two
// racing Start calls cannot both arm and at most one frame loop is alive
// after Start returns.
func (a *Animator) Start(scene AnimatedScene, w frameWriter) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	a.cancel = cancel
	a.done = done
	a.scene = scene.Name

	go func() {
		defer close(done)
		a.run(ctx, scene, w)
	}()
}

// Stop cancels the frame loop and waits for it to exit, bounded by
// stopJoinTimeout. Safe to call multiple times and when nothing is running.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

// stopLocked cancels and joins the frame loop. Callers must hold a.mu; the
// loop's frame writes never take a.mu, so joining under it cannot deadlock.
func (a *Animator) stopLocked() {
	if a.cancel == nil {
		return
	}
	a.cancel()

	select {
	case <-a.done:
	case <-time.After(stopJoinTimeout):
	}

	a.cancel = nil
	a.done = nil
	a.scene = ""
}

// IsRunning reports whether a frame loop is currently alive.
func (a *Animator) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.done == nil {
		return false
	}
	select {
	case <-a.done:
		return false
	default:
		return true
	}
}

// Scene returns the name of the running animated scene, or "".
func (a *Animator) Scene() string {
	if !a.IsRunning() {
		return ""
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scene
}

// run renders frames at the scene's frame rate until ctx is cancelled.
// Cancellation is observed within one frame period.
func (a *Animator) run(ctx context.Context, scene AnimatedScene, w frameWriter) {
	framePeriod := time.Second / time.Duration(scene.FPS)
	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.writeFrame(frameColors(scene, w.ledCount(), time.Since(start)))
		}
	}
}

// frameColors computes one frame of the traveling wave. The strip shows a
// WaveSpread fraction of the color cycle at once; each LED interpolates
// between the two palette colors adjacent to its position in the cycle.
func frameColors(scene AnimatedScene, ledCount int, elapsed time.Duration) []Color {
	k := float64(len(scene.Colors))
	basePosition := math.Mod(elapsed.Seconds(), scene.CycleDuration.Seconds()) /
		scene.CycleDuration.Seconds() * k

	colors := make([]Color, ledCount)
	for i := range colors {
		offset := float64(i) / float64(ledCount) * scene.WaveSpread * k
		position := math.Mod(basePosition+offset, k)

		idx := int(position)
		next := (idx + 1) % len(scene.Colors)
		frac := position - float64(idx)
		colors[i] = Lerp(scene.Colors[idx], scene.Colors[next], frac)
	}
	return colors
}
