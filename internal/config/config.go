// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Asset   AssetConfig   `yaml:"asset"`
	Overlay OverlayConfig `yaml:"overlay"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings for the viewer window.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// SceneConfig holds the look of the 3D scene. Colors are "#rrggbb" strings.
type SceneConfig struct {
	Background    string  `yaml:"background"`
	FloorColor    string  `yaml:"floor_color"`
	StripeDark    string  `yaml:"stripe_dark"`
	StripeLight   string  `yaml:"stripe_light"`
	FOV           float32 `yaml:"fov"`
	Shadows       bool    `yaml:"shadows"`
	ShadowMapSize int32   `yaml:"shadow_map_size"`
}

// AssetConfig holds where the model is fetched from.
// BaseURL is either a directory or an http(s) URL.
type AssetConfig struct {
	BaseURL  string `yaml:"base_url"`
	Filename string `yaml:"filename"`
}

// OverlayConfig holds the static overlay content.
type OverlayConfig struct {
	CardLines []string `yaml:"card_lines"`
	LinkLabel string   `yaml:"link_label"`
	LinkURL   string   `yaml:"link_url"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Watermelon",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneConfig{
			Background:    "#f2efe6",
			FloorColor:    "#d9d4c5",
			StripeDark:    "#2e6b1f",
			StripeLight:   "#5aa83c",
			FOV:           45,
			Shadows:       true,
			ShadowMapSize: 2048,
		},
		Asset: AssetConfig{
			BaseURL:  "assets",
			Filename: "watermelon.obj",
		},
		Overlay: OverlayConfig{
			CardLines: []string{
				"37°46'39\"N 122°24'59\"W",
				"2024-08-03",
				"17:42 PDT",
			},
			LinkLabel: "Visit project page",
			LinkURL:   "https://github.com/Faultbox/melonview",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
