package nvram

import "errors"

var (
	ErrOutOfRange = errors.New("access outside device region")
	ErrNoDevice   = errors.New("no EEPROM detected")
)
