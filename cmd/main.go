package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	periphhost "periph.io/x/host/v3"

	"geocache-firmware/pkg/box"
	"geocache-firmware/pkg/buttons"
	"geocache-firmware/pkg/config"
	"geocache-firmware/pkg/datetime"
	"geocache-firmware/pkg/eeprom"
	"geocache-firmware/pkg/globals"
	"geocache-firmware/pkg/history"
	"geocache-firmware/pkg/lcd"
	"geocache-firmware/pkg/logger"
	"geocache-firmware/pkg/nvram"
	"geocache-firmware/pkg/power"
	"geocache-firmware/pkg/sensors"
	"geocache-firmware/pkg/servo"
)

const setupIdle = 30 * time.Second

func main() {
	cmd := &cli.Command{
		Name:   "geocache-box",
		Usage:  "Reverse geocache box: opens only at the right place",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   globals.ConfigPath,
				Sources: cli.EnvVars("BOX_CONFIG_FILE"),
			},
			&cli.FloatFlag{
				Name:  "lat",
				Usage: "Latitude of the current GPS fix",
			},
			&cli.FloatFlag{
				Name:  "lon",
				Usage: "Longitude of the current GPS fix",
			},
			&cli.BoolFlag{
				Name:  "setup",
				Usage: "Run the owner's setup menu instead of an attempt",
			},
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Open the box and restore the tries (secret contact closed)",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("Box error: %v", err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if err := os.MkdirAll(globals.FirmwareDataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Initialize logger first to capture all logs
	logger.Init(globals.LogsPath)
	log.Printf("Starting %s", globals.FirmwareVersion)

	if err := config.Init(cmd.String("config")); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.Get()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := periphhost.Init(); err != nil {
		log.Printf("Failed to initialize periph host: %v", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		log.Printf("Failed to open I2C bus: %v", err)
	} else {
		defer bus.Close()
	}

	dev, err := openBlob(cfg, bus)
	if err != nil {
		return err
	}

	store := eeprom.New(dev, eeprom.WithDefaultTries(cfg.DefaultTries))
	if _, err := store.Load(); err != nil {
		return fmt.Errorf("failed to load box state: %w", err)
	}

	display := openDisplay(cfg, bus)
	defer display.Off()

	latch, err := servo.Open(cfg.ServoPin, cfg.ServoOpen, cfg.ServoClose)
	if err != nil {
		return fmt.Errorf("failed to open latch: %w", err)
	}

	b := box.New(store, display, latch,
		box.WithRadius(cfg.UnlockRadius),
		box.WithDeveloperMode(cfg.DeveloperMode))

	switch {
	case cmd.Bool("reset"):
		return b.Reset()
	case cmd.Bool("setup"):
		return runSetup(ctx, cfg, b)
	}

	attemptOnce(cmd, cfg, b, display, bus)
	return nil
}

// attemptOnce is one power cycle: alerts, status, the location check, then
// a pause so the result can be read before the box powers down
func attemptOnce(cmd *cli.Command, cfg *config.Config, b *box.Box, display *screen, bus i2c.Bus) {
	hold := globals.DisplayTime * time.Second

	now := datetime.FromTime(time.Now().UTC().Add(time.Duration(cfg.GMTOffset) * time.Hour))
	b.ShowAlerts(now, hold)

	showStatus(display, bus, cfg)

	if !cmd.IsSet("lat") || !cmd.IsSet("lon") {
		display.Show("Waiting for GPS", "")
		log.Println("No GPS fix supplied")
		return
	}

	lat, lon := cmd.Float("lat"), cmd.Float("lon")
	out, err := b.Attempt(lat, lon)
	record(lat, lon, out, err)

	switch {
	case errors.Is(err, box.ErrLockedOut), errors.Is(err, box.ErrNoTargets):
		log.Printf("Attempt refused: %v", err)
	case err != nil:
		log.Printf("Attempt failed: %v", err)
	default:
		log.Printf("Attempt: unlocked=%v distance=%s tries=%d",
			out.Unlocked, box.FormatDistance(out.Distance), out.TriesLeft)
	}

	time.Sleep(hold)
}

func record(lat, lon float64, out box.Outcome, attemptErr error) {
	h, err := history.Open(globals.HistoryPath)
	if err != nil {
		log.Printf("Failed to open history: %v", err)
		return
	}

	ev := history.Event{
		Latitude:  lat,
		Longitude: lon,
		Distance:  out.Distance,
		Unlocked:  out.Unlocked,
		TriesLeft: out.TriesLeft,
	}
	if attemptErr != nil {
		ev.Error = attemptErr.Error()
	}
	if err := h.Record(ev); err != nil {
		log.Printf("Failed to record attempt: %v", err)
	}
}

func runSetup(ctx context.Context, cfg *config.Config, b *box.Box) error {
	pair, err := buttons.Open(cfg.NextButtonPin, cfg.SelectButtonPin)
	if err != nil {
		return fmt.Errorf("failed to open buttons: %w", err)
	}

	m := box.NewSetup(b)
	for {
		m.Render()

		btn, err := pair.Wait(ctx, setupIdle)
		if err != nil {
			log.Printf("Leaving setup: %v", err)
			if cfg.DeveloperMode {
				return nil
			}
			// default tries do not dirty the image, so write unconditionally
			return b.Store().Save()
		}

		switch btn {
		case buttons.Next:
			m.Next()
		case buttons.Select:
			m.Select()
		}
	}
}

func showStatus(display *screen, bus i2c.Bus, cfg *config.Config) {
	temp, err := sensors.Temperature()
	if err != nil {
		log.Printf("Failed to read temperature: %v", err)
	}

	var mon *power.Monitor
	if bus != nil {
		mon = power.Open(bus, cfg.PowerAddr)
	}

	display.Show(fmt.Sprintf("Temp: %.1f C", temp), fmt.Sprintf("Batt: %.2f V", mon.Voltage()))
	if mon.IsLowPower() {
		display.Show("Battery low!", fmt.Sprintf("%d%%", mon.BatteryPercent()))
	}
	time.Sleep(2 * time.Second)
}

func openBlob(cfg *config.Config, bus i2c.Bus) (nvram.Device, error) {
	if cfg.Blob == config.BlobI2C {
		if bus == nil {
			return nil, fmt.Errorf("EEPROM configured but no I2C bus")
		}
		return nvram.OpenAT24(bus, cfg.EEPROMAddr)
	}
	return nvram.OpenFile(cfg.BlobPath, eeprom.Size)
}

// screen falls back to the log when no LCD answers
type screen struct {
	lcd *lcd.Display
}

func openDisplay(cfg *config.Config, bus i2c.Bus) *screen {
	if bus == nil {
		return &screen{}
	}
	d, err := lcd.Open(bus, cfg.LCDAddr)
	if err != nil {
		log.Printf("No LCD - display output goes to log: %v", err)
		return &screen{}
	}
	return &screen{lcd: d}
}

func (s *screen) Show(line1, line2 string) error {
	if s.lcd == nil {
		log.Printf("[%-16s|%-16s]", line1, line2)
		return nil
	}
	return s.lcd.Show(line1, line2)
}

func (s *screen) Off() error {
	if s.lcd == nil {
		return nil
	}
	return s.lcd.Off()
}
