package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type SPI struct {
	Port    string `yaml:"port"`     // e.g. /dev/spidev0.0; empty picks the first
	FreqKHz int    `yaml:"freq_khz"` // e.g. 2500
}

type Preview struct {
	Addr  string `yaml:"addr"`  // e.g. :8080; empty disables the server
	Scale int    `yaml:"scale"` // snapshot pixel size
}

// Power bounds the strip's draw. Zero fields disable their stage.
type Power struct {
	BudgetmA  int `yaml:"budget_ma"`
	ChannelmA int `yaml:"channel_ma"` // per color channel at full scale; WS2812 is about 20
	WhiteCap  int `yaml:"white_cap"`  // max R+G+B per pixel, 0..765
}

type Config struct {
	Driver     string `yaml:"driver"` // "spi" | "screen" | "sim"
	Count      int    `yaml:"count"`
	Channel    uint8  `yaml:"channel"`
	FrameMs    int    `yaml:"frame_ms"`
	Brightness int    `yaml:"brightness"` // 0..255
	Gamma      bool   `yaml:"gamma"`

	Effect   string `yaml:"effect"`            // played when no program is set
	Program  string `yaml:"program,omitempty"` // path to a show program
	OnExpire string `yaml:"on_expire"`         // "restart" | "hold" | "blank"

	Power   Power   `yaml:"power"`
	SPI     SPI     `yaml:"spi,omitempty"`
	Preview Preview `yaml:"preview"`
}

// Default matches the stock firmware: one 60 pixel strip refreshed every
// 25ms playing the pulse effect.
func Default() *Config {
	return &Config{
		Driver:     "sim",
		Count:      60,
		FrameMs:    25,
		Brightness: 255,
		Effect:     "pulse",
		OnExpire:   "restart",
		SPI:        SPI{FreqKHz: 2500},
		Preview:    Preview{Addr: ":8080", Scale: 8},
	}
}

// FrameInterval is FrameMs as a duration.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameMs) * time.Millisecond
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Driver {
	case "spi", "screen", "sim":
	default:
		errs = append(errs, fmt.Errorf("driver %q: want spi, screen or sim", c.Driver))
	}
	if c.Count <= 0 || c.Count > 0xFFFF {
		errs = append(errs, fmt.Errorf("count %d out of range", c.Count))
	}
	if c.FrameMs <= 0 {
		errs = append(errs, fmt.Errorf("frame_ms %d must be positive", c.FrameMs))
	}
	if c.Brightness < 0 || c.Brightness > 255 {
		errs = append(errs, fmt.Errorf("brightness %d out of range 0..255", c.Brightness))
	}
	if c.Effect == "" && c.Program == "" {
		errs = append(errs, errors.New("one of effect or program is required"))
	}
	if c.Power.BudgetmA < 0 || c.Power.ChannelmA < 0 || c.Power.ChannelmA > 0xFFFF {
		errs = append(errs, fmt.Errorf("power budget %dmA / channel %dmA out of range", c.Power.BudgetmA, c.Power.ChannelmA))
	}
	if c.Power.WhiteCap < 0 || c.Power.WhiteCap > 765 {
		errs = append(errs, fmt.Errorf("power.white_cap %d out of range 0..765", c.Power.WhiteCap))
	}
	if c.SPI.FreqKHz < 0 {
		errs = append(errs, fmt.Errorf("spi.freq_khz %d is negative", c.SPI.FreqKHz))
	}
	return errors.Join(errs...)
}

// Load reads path over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	c := Default()
	if err := LoadInto(path, c); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadInto reads path over base, typically a Config built from flags. Keys
// the file leaves out keep base's values. base is untouched on error.
func LoadInto(path string, base *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c := *base
	if err := yaml.Unmarshal(b, &c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	*base = c
	return nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
