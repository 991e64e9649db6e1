package led

import (
	"errors"
	"fmt"
	"sync"

	"lightbulb/internal/logger"
)

// Domain errors surfaced to callers. None of them mutate state.
var (
	ErrIndexOutOfRange      = errors.New("led index out of range")
	ErrBrightnessOutOfRange = errors.New("brightness must be between 0 and 255")
	ErrSceneNotFound        = errors.New("scene not found")
)

// Config carries the strip parameters consumed at construction.
type Config struct {
	LEDCount   int
	Brightness int // initial global brightness, 0-255
}

// LEDState is one pixel in a state snapshot.
type LEDState struct {
	Index int `json:"index"`
	R     int `json:"r"`
	G     int `json:"g"`
	B     int `json:"b"`
}

// StripState is an atomic snapshot of the strip; colors never mix two frames.
type StripState struct {
	LEDCount    int        `json:"led_count"`
	Brightness  int        `json:"brightness"`
	ActiveScene string     `json:"active_scene,omitempty"`
	Animating   bool       `json:"animating"`
	LEDs        []LEDState `json:"leds"`
}

// Controller is the sole authority over strip state and the hardware sink.
// It arbitrates between manual commands and the Animator: every manual write
// stops a running animation first; only the animator's writeFrame path may
// write while an animation is active.
type Controller struct {
	cfg  Config
	sink HardwareSink // nil in simulation mode
	log  *logger.Logger

	animator *Animator

	mu          sync.Mutex
	colors      []Color
	brightness  int
	activeScene string // "" when no scene is active
}

// NewController builds an all-off strip with the configured brightness.
// A nil sink means simulation mode.
func NewController(cfg Config, sink HardwareSink, log *logger.Logger) *Controller {
	c := &Controller{
		cfg:        cfg,
		sink:       sink,
		log:        log,
		animator:   NewAnimator(),
		colors:     make([]Color, cfg.LEDCount),
		brightness: cfg.Brightness,
	}
	log.Infow("led controller initialized",
		"led_count", cfg.LEDCount, "brightness", cfg.Brightness, "simulate", sink == nil)
	return c
}

// SetPixel writes one pixel. Stops any running animation and clears the
// active scene.
func (c *Controller) SetPixel(index int, color Color) error {
	if index < 0 || index >= c.cfg.LEDCount {
		return fmt.Errorf("%w: index %d not in [0, %d)", ErrIndexOutOfRange, index, c.cfg.LEDCount)
	}

	// Stop before taking the state lock: the animator's frame writes need it.
	c.animator.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.colors[index] = color
	c.activeScene = ""
	c.push()
	return nil
}

// SetAll writes every pixel atomically. Stops any running animation and
// clears the active scene.
func (c *Controller) SetAll(color Color) error {
	c.animator.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.colors {
		c.colors[i] = color
	}
	c.activeScene = ""
	c.push()
	return nil
}

// ApplyScene activates a scene by name: static catalog first, then the
// animated registry. Returns ErrSceneNotFound if neither knows the name.
func (c *Controller) ApplyScene(name string) error {
	if fn := GetScene(name); fn != nil {
		c.animator.Stop()

		c.mu.Lock()
		defer c.mu.Unlock()

		c.colors = fn(c.cfg.LEDCount)
		c.activeScene = name
		c.push()
		c.log.Infow("applied scene", "scene", name)
		return nil
	}

	if scene, ok := GetAnimatedScene(name); ok {
		c.mu.Lock()
		c.activeScene = name
		c.mu.Unlock()

		c.animator.Start(scene, c)
		c.log.Infow("started animated scene", "scene", name)
		return nil
	}

	return fmt.Errorf("%w: %q", ErrSceneNotFound, name)
}

// Clear turns the whole strip off.
func (c *Controller) Clear() error {
	return c.ApplyScene("off")
}

// GetPixel returns the color of a single pixel.
func (c *Controller) GetPixel(index int) (Color, error) {
	if index < 0 || index >= c.cfg.LEDCount {
		return Color{}, fmt.Errorf("%w: index %d not in [0, %d)", ErrIndexOutOfRange, index, c.cfg.LEDCount)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.colors[index], nil
}

// SetBrightness updates the global brightness and, if present, the sink's
// brightness register.
func (c *Controller) SetBrightness(level int) error {
	if level < 0 || level > 255 {
		return fmt.Errorf("%w: got %d", ErrBrightnessOutOfRange, level)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.brightness = level
	if c.sink != nil {
		if err := c.sink.SetBrightness(level); err != nil {
			c.log.Errorw("sink set brightness failed", "err", err)
		}
		if err := c.sink.Show(); err != nil {
			c.log.Errorw("sink show failed", "err", err)
		}
	}
	return nil
}

// GetState returns a snapshot taken under the state lock; callers never see
// colors from two different frames or commands.
func (c *Controller) GetState() StripState {
	// Probe the animator before taking the state lock: Stop holds the
	// animator lock while joining a frame write that needs c.mu.
	animating := c.animator.IsRunning()

	c.mu.Lock()
	defer c.mu.Unlock()

	leds := make([]LEDState, len(c.colors))
	for i, col := range c.colors {
		leds[i] = LEDState{Index: i, R: col.R, G: col.G, B: col.B}
	}
	return StripState{
		LEDCount:    c.cfg.LEDCount,
		Brightness:  c.brightness,
		ActiveScene: c.activeScene,
		Animating:   animating,
		LEDs:        leds,
	}
}

// SceneNames lists every scene the controller can apply.
func (c *Controller) SceneNames() []string {
	return ListScenes()
}

// Shutdown stops any animation and drives the strip to all-off.
func (c *Controller) Shutdown() {
	c.animator.Stop()
	if err := c.Clear(); err != nil {
		c.log.Errorw("clear on shutdown failed", "err", err)
	}
}

// writeFrame is the animator's write path: a full frame per call, no
// animation stop, no scene change. Implements frameWriter.
func (c *Controller) writeFrame(colors []Color) {
	c.mu.Lock()
	defer c.mu.Unlock()

	copy(c.colors, colors)
	c.push()
}

// ledCount implements frameWriter.
func (c *Controller) ledCount() int {
	return c.cfg.LEDCount
}

// push mirrors the in-memory colors to the hardware sink. Callers must hold
// c.mu so the strip never shows a torn frame.
func (c *Controller) push() {
	if c.sink == nil {
		return
	}
	for i, col := range c.colors {
		if err := c.sink.SetPixel(i, col.Packed()); err != nil {
			c.log.Errorw("sink set pixel failed", "index", i, "err", err)
			return
		}
	}
	if err := c.sink.Show(); err != nil {
		c.log.Errorw("sink show failed", "err", err)
	}
}
