package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Validate checks values that would otherwise fail deep inside startup.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Scene.FOV <= 0 || c.Scene.FOV >= 180 {
		return fmt.Errorf("scene fov must be in (0, 180), got %v", c.Scene.FOV)
	}
	if c.Asset.Filename == "" {
		return fmt.Errorf("asset filename is empty")
	}
	for name, hex := range map[string]string{
		"background":   c.Scene.Background,
		"floor_color":  c.Scene.FloorColor,
		"stripe_dark":  c.Scene.StripeDark,
		"stripe_light": c.Scene.StripeLight,
	} {
		if _, err := ParseHexColor(hex); err != nil {
			return fmt.Errorf("scene %s: %w", name, err)
		}
	}
	return nil
}

// ParseHexColor parses "#rrggbb" (the leading '#' is optional) into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustColor is ParseHexColor for values already checked by Validate.
func MustColor(s string) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
