package main

import (
	"github.com/BurntSushi/toml"
)

// Config is the optional urm.toml configuration.
type Config struct {
	SieveLimit int    `toml:"sieve_limit"` // Largest prime the decoder may sieve.
	MaxSteps   int    `toml:"max_steps"`   // Stop execution after this many steps; 0 runs until halt.
	Verbose    bool   `toml:"verbose"`
	Format     string `toml:"format"`   // Number output notation: dec, hex or b58.
	Language   string `toml:"language"` // Message locale, e.g. "en-US"; empty uses the system locale.
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (cfg Config, err error) {
	_, err = toml.DecodeFile(path, &cfg)
	return
}
