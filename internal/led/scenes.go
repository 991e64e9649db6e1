package led

import (
	"sort"
	"time"
)

// SceneFunc maps an LED count to a full-strip color assignment.
type SceneFunc func(ledCount int) []Color

// AnimatedScene describes a traveling color wave rendered by the Animator.
type AnimatedScene struct {
	Name          string
	Colors        []Color       // cycle palette, at least one entry
	CycleDuration time.Duration // time for a full color cycle
	WaveSpread    float64       // fraction of the cycle visible across the strip at once
	FPS           int
}

func solid(c Color) SceneFunc {
	return func(ledCount int) []Color {
		colors := make([]Color, ledCount)
		for i := range colors {
			colors[i] = c
		}
		return colors
	}
}

func sceneRainbow(ledCount int) []Color {
	colors := make([]Color, ledCount)
	for i := range colors {
		colors[i] = Wheel(i * 256 / ledCount)
	}
	return colors
}

// scenes is the static scene registry.
var scenes = map[string]SceneFunc{
	"off":        solid(Off),
	"all_red":    solid(Red),
	"all_green":  solid(Green),
	"all_blue":   solid(Blue),
	"all_yellow": solid(Yellow),
	"all_white":  solid(White),
	"warm_white": solid(WarmWhite),
	"cool_white": solid(CoolWhite),
	"rainbow":    sceneRainbow,
	// Triggered by the wake word.
	"idea": solid(Yellow),
}

// animatedScenes is the animated scene registry.
var animatedScenes = map[string]AnimatedScene{
	"dreamy": {
		Name: "dreamy",
		Colors: []Color{
			{70, 130, 230},  // blue
			{138, 43, 226},  // purple
			{255, 105, 180}, // pink
			{186, 85, 211},  // medium orchid
		},
		CycleDuration: 12 * time.Second,
		WaveSpread:    0.5,
		FPS:           30,
	},
}

// GetScene returns the static scene function registered under name, or nil.
func GetScene(name string) SceneFunc {
	return scenes[name]
}

// GetAnimatedScene looks up an animated scene by name.
func GetAnimatedScene(name string) (AnimatedScene, bool) {
	s, ok := animatedScenes[name]
	return s, ok
}

// ListScenes returns all scene names, static first, then animated, each
// group sorted.
func ListScenes() []string {
	static := make([]string, 0, len(scenes))
	for name := range scenes {
		static = append(static, name)
	}
	sort.Strings(static)

	animated := make([]string, 0, len(animatedScenes))
	for name := range animatedScenes {
		animated = append(animated, name)
	}
	sort.Strings(animated)

	return append(static, animated...)
}
