package infection

import "strconv"

// Config controls the Game of Infection dimensions and run parameters.
type Config struct {
	Rows int
	Cols int

	// Threads is the fixed worker count for parallel runs.
	Threads int
	// Generations is the number of generations a Run simulates.
	Generations int

	// Factions bounds the live faction ids used when seeding random worlds:
	// ids are drawn from [1, Factions). Never above MaxFactions.
	Factions int
	// Density is the probability that a seeded cell starts occupied.
	Density float64

	Seed int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Rows:        64,
		Cols:        64,
		Threads:     4,
		Generations: 100,
		Factions:    4,
		Density:     0.25,
		Seed:        1337,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rows = parsed
		}
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Cols = parsed
		}
	}
	if v, ok := cfg["threads"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Threads = parsed
		}
	}
	if v, ok := cfg["generations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Generations = parsed
		}
	}
	if v, ok := cfg["factions"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 2 && parsed <= MaxFactions {
			c.Factions = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}
