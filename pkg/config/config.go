package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"

	"geocache-firmware/pkg/globals"
)

// Blob backends
const (
	BlobFile = "file"
	BlobI2C  = "i2c"
)

// Config holds the board settings. The box's own state (targets, tries,
// alerts) lives in the EEPROM image, not here.
type Config struct {
	ID              string  `json:"id"`
	FirmwareVersion string  `json:"firmware_version"`
	Blob            string  `json:"blob"`
	BlobPath        string  `json:"blob_path"`
	EEPROMAddr      uint16  `json:"eeprom_addr"`
	LCDAddr         uint16  `json:"lcd_addr"`
	PowerAddr       uint16  `json:"power_addr"`
	I2CBus          string  `json:"i2c_bus"`
	ServoPin        string  `json:"servo_pin"`
	ServoOpen       int     `json:"servo_open"`
	ServoClose      int     `json:"servo_close"`
	NextButtonPin   string  `json:"next_button_pin"`
	SelectButtonPin string  `json:"select_button_pin"`
	UnlockRadius    float64 `json:"unlock_radius_m"`
	DefaultTries    uint8   `json:"default_tries"`
	GMTOffset       int     `json:"gmt_offset"`
	DeveloperMode   bool    `json:"developer_mode"`
}

// Validate checks ranges and required fields
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Blob, validation.Required, validation.In(BlobFile, BlobI2C)),
		validation.Field(&c.BlobPath, validation.When(c.Blob == BlobFile, validation.Required)),
		validation.Field(&c.EEPROMAddr, validation.When(c.Blob == BlobI2C, validation.Required, validation.Max(uint16(0x7F)))),
		validation.Field(&c.LCDAddr, validation.Required, validation.Max(uint16(0x7F))),
		validation.Field(&c.PowerAddr, validation.Max(uint16(0x7F))),
		validation.Field(&c.ServoPin, validation.Required),
		validation.Field(&c.ServoOpen, validation.Min(0), validation.Max(180)),
		validation.Field(&c.ServoClose, validation.Min(0), validation.Max(180)),
		validation.Field(&c.UnlockRadius, validation.Required, validation.Min(1.0)),
		validation.Field(&c.DefaultTries, validation.Required),
		validation.Field(&c.GMTOffset, validation.Min(-12), validation.Max(14)),
	)
}

// Default returns the settings written on first boot
func Default() *Config {
	return &Config{
		FirmwareVersion: globals.FirmwareVersion,
		Blob:            BlobFile,
		BlobPath:        globals.BlobPath,
		EEPROMAddr:      0x50,
		LCDAddr:         0x27,
		PowerAddr:       0x43,
		ServoPin:        "GPIO18",
		ServoOpen:       110,
		ServoClose:      60,
		NextButtonPin:   "GPIO23",
		SelectButtonPin: "GPIO24",
		UnlockRadius:    100,
		DefaultTries:    globals.DefaultTries,
		GMTOffset:       -6,
	}
}

var (
	instance *Config
	once     sync.Once
)

// Init loads the config at path, creating it with defaults and a new device
// ID if it does not exist
func Init(path string) error {
	var err error
	once.Do(func() {
		instance, err = Load(path)
	})
	return err
}

// Get returns the config loaded by Init
func Get() *Config {
	if instance == nil {
		panic("config not initialized - call Init() first")
	}
	return instance
}

// Load reads and validates the config file at path
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createInitialConfig(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func createInitialConfig(path string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate device ID: %w", err)
	}

	cfg := Default()
	cfg.ID = id.String()

	if err := Save(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
