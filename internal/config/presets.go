package config

// Presets are ready-made configurations keyed by name. Each starts
// from the defaults so omitted fields keep sensible values.
var Presets = map[string]*Config{
	"classroom": preset(func(c *Config) {
		c.Algorithm = "insertion"
		c.DataSize = 24
		c.DataType = "nearly-sorted"
		c.AnimationSpeed = 0.5
		c.ColorScheme = "viridis"
	}),
	"stress": preset(func(c *Config) {
		c.Algorithm = "quick"
		c.DataSize = 2048
		c.DataType = "random"
		c.AnimationSpeed = 8.0
		c.RenderMode = "gl"
	}),
	"tiny": preset(func(c *Config) {
		c.Algorithm = "bubble"
		c.DataSize = 10
		c.DataType = "reversed"
		c.AnimationSpeed = 0.25
	}),
	"chaos": preset(func(c *Config) {
		c.Algorithm = "bogo"
		c.DataSize = 6
		c.DataType = "random"
		c.AnimationSpeed = 16.0
		c.Tuning.MaxIterations = 100000
	}),
	"showcase": preset(func(c *Config) {
		c.Algorithm = "merge"
		c.DataSize = 128
		c.DataType = "sawtooth"
		c.RenderMode = "scene3d"
		c.ColorScheme = "ocean"
		c.Theme = "ocean"
	}),
}

func preset(mutate func(*Config)) *Config {
	c := DefaultConfig()
	mutate(c)
	return c
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
