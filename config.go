package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"tanuki/emu/log"
)

type AudioConfig struct {
	SampleRate int `toml:"sample_rate"`
}

type EmulationConfig struct {
	// PaceFrames throttles the run loop to the NTSC frame rate; turned off
	// for batch runs.
	PaceFrames bool `toml:"pace_frames"`
}

type Config struct {
	Audio     AudioConfig     `toml:"audio"`
	Emulation EmulationConfig `toml:"emulation"`
}

const DefaultFileMode = os.FileMode(0755)

var ConfigDir = sync.OnceValue(func() string {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.Fatalf("failed to get user config directory: %v", err)
	}

	dir := filepath.Join(cfgdir, "tanuki")
	if err := os.MkdirAll(dir, DefaultFileMode); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

var defaultConfig = Config{
	Audio: AudioConfig{
		SampleRate: 44100,
	},
	Emulation: EmulationConfig{
		PaceFrames: true,
	},
}

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the tanuki config
// directory, or provides the default one.
func LoadConfigOrDefault() Config {
	var cfg Config
	_, err := toml.DecodeFile(filepath.Join(ConfigDir(), cfgFilename), &cfg)
	if err != nil {
		return defaultConfig
	}
	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = defaultConfig.Audio.SampleRate
	}
	return cfg
}

// SaveConfig writes cfg into the tanuki config directory.
func SaveConfig(cfg Config) error {
	f, err := os.Create(filepath.Join(ConfigDir(), cfgFilename))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
