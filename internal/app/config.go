package app

import (
	"flag"
	"strings"
)

// Config represents the command-line parameters for the viewer application.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	HUDWidth int

	overrides kvList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "infection", Scale: 8, TPS: 10, Seed: 42, HUDWidth: 180}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels, 0 to disable")
	fs.Var(&c.overrides, "set", "simulation parameter override in key=value form (repeatable)")
}

// SimConfig returns the accumulated key=value overrides as a map for the
// simulation factory.
func (c *Config) SimConfig() map[string]string {
	if len(c.overrides) == 0 {
		return nil
	}
	m := make(map[string]string, len(c.overrides))
	for _, kv := range c.overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		m[parts[0]] = parts[1]
	}
	return m
}

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}
