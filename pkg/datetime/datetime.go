package datetime

import (
	"encoding/binary"
	"fmt"
	"time"
)

// PackedSize is the number of bytes a DateTime occupies in the EEPROM image.
// Layout: three little-endian words
//
//	w0 = year(12) | month(4)<<12
//	w1 = day(5) | hour(5)<<5 | minute(6)<<10
//	w2 = second(6)
const PackedSize = 6

const (
	maxYear   = 4095
	maxMonth  = 12
	maxDay    = 31
	maxHour   = 23
	maxMinute = 59
	maxSecond = 59
)

// DateTime is a calendar date and time of day stored in the minimum bit width
// per field. The zero value is the "unset" sentinel (Year() == 0).
// No calendar normalization is done: 31 February is representable.
type DateTime struct {
	year   uint16
	month  uint8
	day    uint8
	hour   uint8
	minute uint8
	second uint8
}

// New builds a DateTime through the field setters, so any out-of-range
// field is left at zero.
func New(year, month, day, hour, minute, second int) DateTime {
	var dt DateTime
	dt.SetYear(year)
	dt.SetMonth(month)
	dt.SetDay(day)
	dt.SetHour(hour)
	dt.SetMinute(minute)
	dt.SetSecond(second)
	return dt
}

// FromTime converts a time.Time in its own location.
func FromTime(t time.Time) DateTime {
	return New(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// SetYear stores y if it is in 0..4095 and ignores it otherwise
func (d *DateTime) SetYear(y int) {
	if y >= 0 && y <= maxYear {
		d.year = uint16(y)
	}
}

// SetMonth stores m if it is in 1..12 and ignores it otherwise
func (d *DateTime) SetMonth(m int) {
	if m >= 1 && m <= maxMonth {
		d.month = uint8(m)
	}
}

// SetDay stores v if it is in 1..31 and ignores it otherwise
func (d *DateTime) SetDay(v int) {
	if v >= 1 && v <= maxDay {
		d.day = uint8(v)
	}
}

// SetHour stores h if it is in 0..23 and ignores it otherwise
func (d *DateTime) SetHour(h int) {
	if h >= 0 && h <= maxHour {
		d.hour = uint8(h)
	}
}

// SetMinute stores m if it is in 0..59 and ignores it otherwise
func (d *DateTime) SetMinute(m int) {
	if m >= 0 && m <= maxMinute {
		d.minute = uint8(m)
	}
}

// SetSecond stores s if it is in 0..59 and ignores it otherwise
func (d *DateTime) SetSecond(s int) {
	if s >= 0 && s <= maxSecond {
		d.second = uint8(s)
	}
}

func (d DateTime) Year() int   { return int(d.year) }
func (d DateTime) Month() int  { return int(d.month) }
func (d DateTime) Day() int    { return int(d.day) }
func (d DateTime) Hour() int   { return int(d.hour) }
func (d DateTime) Minute() int { return int(d.minute) }
func (d DateTime) Second() int { return int(d.second) }

// IsSet reports whether d is anything other than the unset sentinel
func (d DateTime) IsSet() bool {
	return d.year != 0
}

// Equal compares all six fields exactly
func (d DateTime) Equal(o DateTime) bool {
	return d == o
}

// SameDate reports whether d and o fall on the same year, month and day
func (d DateTime) SameDate(o DateTime) bool {
	return d.year == o.year && d.month == o.month && d.day == o.day
}

// SecondsOfDay returns the time of day as seconds since midnight
func (d DateTime) SecondsOfDay() int {
	return ToSeconds(d.Hour(), d.Minute(), d.Second())
}

// ToSeconds converts a time of day to seconds since midnight.
// Used for same-day comparisons only, not calendar arithmetic.
func ToSeconds(hour, minute, second int) int {
	return hour*60*60 + minute*60 + second
}

// Pack encodes d into its fixed 6-byte form
func (d DateTime) Pack() [PackedSize]byte {
	var b [PackedSize]byte
	w0 := d.year&0x0FFF | uint16(d.month&0x0F)<<12
	w1 := uint16(d.day&0x1F) | uint16(d.hour&0x1F)<<5 | uint16(d.minute&0x3F)<<10
	w2 := uint16(d.second & 0x3F)
	binary.LittleEndian.PutUint16(b[0:2], w0)
	binary.LittleEndian.PutUint16(b[2:4], w1)
	binary.LittleEndian.PutUint16(b[4:6], w2)
	return b
}

// Unpack decodes the 6-byte form. Field values are taken as stored, so a
// corrupted image may yield e.g. month 15; nothing is corrected.
func Unpack(b [PackedSize]byte) DateTime {
	w0 := binary.LittleEndian.Uint16(b[0:2])
	w1 := binary.LittleEndian.Uint16(b[2:4])
	w2 := binary.LittleEndian.Uint16(b[4:6])
	return DateTime{
		year:   w0 & 0x0FFF,
		month:  uint8(w0 >> 12),
		day:    uint8(w1 & 0x1F),
		hour:   uint8(w1 >> 5 & 0x1F),
		minute: uint8(w1 >> 10 & 0x3F),
		second: uint8(w2 & 0x3F),
	}
}

func (d DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", d.year, d.month, d.day, d.hour, d.minute, d.second)
}
