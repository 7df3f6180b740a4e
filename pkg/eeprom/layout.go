package eeprom

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"

	"geocache-firmware/pkg/datetime"
)

// Persisted image, little endian, no padding:
//
//	0      signature
//	1      dirty
//	2      tries
//	3      locked
//	4      default tries
//	5      MaxTargets x (lat float64, lon float64)
//	133    MaxAlerts x (packed datetime, line 1 [16], line 2 [16])
//	437    end
const (
	MaxTargets = 8
	MaxAlerts  = 8
	LineWidth  = 16

	offSignature    = 0
	offDirty        = 1
	offTries        = 2
	offLocked       = 3
	offDefaultTries = 4
	offTargets      = 5
	targetSize      = 16
	offAlerts       = offTargets + MaxTargets*targetSize
	alertSize       = datetime.PackedSize + 2*LineWidth

	// Size is the byte length of the persisted image
	Size = offAlerts + MaxAlerts*alertSize
)

type image struct {
	signature    uint8
	dirty        bool
	tries        uint8
	locked       bool
	defaultTries uint8
	targets      [MaxTargets]Target
	alerts       [MaxAlerts]Alert
}

func (im *image) encode() []byte {
	b := make([]byte, Size)
	b[offSignature] = im.signature
	b[offDirty] = boolByte(im.dirty)
	b[offTries] = im.tries
	b[offLocked] = boolByte(im.locked)
	b[offDefaultTries] = im.defaultTries

	for i, t := range im.targets {
		p := offTargets + i*targetSize
		binary.LittleEndian.PutUint64(b[p:], math.Float64bits(t.Lat))
		binary.LittleEndian.PutUint64(b[p+8:], math.Float64bits(t.Lon))
	}

	for i, a := range im.alerts {
		p := offAlerts + i*alertSize
		packed := a.When.Pack()
		copy(b[p:], packed[:])
		p += datetime.PackedSize
		copy(b[p:p+LineWidth], a.Line1)
		copy(b[p+LineWidth:p+2*LineWidth], a.Line2)
	}

	return b
}

func decode(b []byte) image {
	var im image
	im.signature = b[offSignature]
	im.dirty = b[offDirty] != 0
	im.tries = b[offTries]
	im.locked = b[offLocked] != 0
	im.defaultTries = b[offDefaultTries]

	for i := range im.targets {
		p := offTargets + i*targetSize
		im.targets[i].Lat = math.Float64frombits(binary.LittleEndian.Uint64(b[p:]))
		im.targets[i].Lon = math.Float64frombits(binary.LittleEndian.Uint64(b[p+8:]))
	}

	for i := range im.alerts {
		p := offAlerts + i*alertSize
		var packed [datetime.PackedSize]byte
		copy(packed[:], b[p:])
		p += datetime.PackedSize
		im.alerts[i] = Alert{
			When:  datetime.Unpack(packed),
			Line1: decodeLine(b[p : p+LineWidth]),
			Line2: decodeLine(b[p+LineWidth : p+2*LineWidth]),
		}
	}

	return im
}

// fitLine truncates s to what survives a save: the display width in bytes,
// cut at the first NUL
func fitLine(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	if len(s) > LineWidth {
		return s[:LineWidth]
	}
	return s
}

func decodeLine(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
