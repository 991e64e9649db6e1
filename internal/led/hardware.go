package led

// HardwareSink is the narrow surface of a WS281x-style strip driver. A nil
// sink puts the controller in simulation mode: all state logic still runs,
// there is just no flush side effect.
type HardwareSink interface {
	// SetPixel stages one pixel as a packed 24-bit color (see Color.Packed).
	SetPixel(index int, color uint32) error
	// Show flushes staged pixels to the strip.
	Show() error
	// SetBrightness updates the driver's global brightness register (0-255).
	SetBrightness(level int) error
}
