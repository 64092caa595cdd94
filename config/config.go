package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/d2r2/go-logger"
	"github.com/joho/godotenv"
)

var lg = logger.NewPackageLogger("config", logger.InfoLevel)

type Config struct {
	Debug        bool
	I2CAddress   byte
	I2CBus       int
	Rotation     int
	Width        int
	Height       int
	Brightness   float64
	DBPath       string
	PreviewPath  string
	IndicatorPin string
	Use24Hour    bool
	Location     *time.Location
}

// Env files, most specific first. The first one found wins; variables already
// set in the process environment are never overridden.
var EnvFiles = []string{".env.local", ".env"}

// DefaultDebug is the debug setting used when CLOCK_DEBUG is unset. The
// binary sets it from its build flags before loading.
var DefaultDebug = false

func Default() Config {
	return Config{
		Debug:       DefaultDebug,
		I2CAddress:  0x3c,
		I2CBus:      0,
		Rotation:    2,
		Width:       128,
		Height:      128,
		Brightness:  1.0,
		DBPath:      "/root/transfont/kvstore.db",
		PreviewPath: "preview.png",
		Location:    time.Local,
	}
}

// LoadEnvFiles loads the first env file that exists.
func LoadEnvFiles(files ...string) {
	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lg.Errorf("⚠️ Failed to load %s: %v", path, err)
			continue
		}
		lg.Infof("✅ Loaded %s", path)
		return
	}
}

// Load reads the env files and then the environment on top of the defaults.
func Load() (Config, error) {
	LoadEnvFiles(EnvFiles...)
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Default()
	var err error

	if cfg.Debug, err = envBool("CLOCK_DEBUG", cfg.Debug); err != nil {
		return cfg, err
	}
	if cfg.Use24Hour, err = envBool("CLOCK_24H", cfg.Use24Hour); err != nil {
		return cfg, err
	}

	if v, ok := os.LookupEnv("CLOCK_I2C_ADDRESS"); ok {
		addr, err := strconv.ParseUint(v, 0, 8)
		if err != nil {
			return cfg, fmt.Errorf("CLOCK_I2C_ADDRESS: %w", err)
		}
		cfg.I2CAddress = byte(addr)
	}
	if cfg.I2CBus, err = envInt("CLOCK_I2C_BUS", cfg.I2CBus); err != nil {
		return cfg, err
	}
	if cfg.Rotation, err = envInt("CLOCK_ROTATION", cfg.Rotation); err != nil {
		return cfg, err
	}
	if cfg.Width, err = envInt("CLOCK_WIDTH", cfg.Width); err != nil {
		return cfg, err
	}
	if cfg.Height, err = envInt("CLOCK_HEIGHT", cfg.Height); err != nil {
		return cfg, err
	}

	if v, ok := os.LookupEnv("CLOCK_BRIGHTNESS"); ok {
		if cfg.Brightness, err = strconv.ParseFloat(v, 64); err != nil {
			return cfg, fmt.Errorf("CLOCK_BRIGHTNESS: %w", err)
		}
	}
	if v, ok := os.LookupEnv("CLOCK_TIMEZONE"); ok && v != "" {
		if cfg.Location, err = time.LoadLocation(v); err != nil {
			return cfg, fmt.Errorf("CLOCK_TIMEZONE: %w", err)
		}
	}

	if v, ok := os.LookupEnv("CLOCK_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv("CLOCK_PREVIEW_PATH"); ok {
		cfg.PreviewPath = v
	}
	if v, ok := os.LookupEnv("CLOCK_INDICATOR_PIN"); ok {
		cfg.IndicatorPin = v
	}

	return cfg, nil
}

func envBool(name string, def bool) (bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}

func envInt(name string, def int) (int, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}
