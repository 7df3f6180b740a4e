package sensors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

var ErrNoSensor = errors.New("no temperature sensor found")

// Temperature returns the board temperature in °C, preferring the CPU
// thermal zone
func Temperature() (float64, error) {
	temps, err := host.SensorsTemperatures()
	if len(temps) == 0 {
		if err != nil {
			return 0, fmt.Errorf("failed to read sensors: %w", err)
		}
		return 0, ErrNoSensor
	}
	return pick(temps)
}

func pick(temps []host.TemperatureStat) (float64, error) {
	for _, t := range temps {
		if strings.Contains(strings.ToLower(t.SensorKey), "cpu") {
			return t.Temperature, nil
		}
	}
	if len(temps) == 0 {
		return 0, ErrNoSensor
	}
	return temps[0].Temperature, nil
}
