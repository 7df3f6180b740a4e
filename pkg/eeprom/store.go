// Package eeprom holds the box's persistent configuration: lockout counter,
// lock state, GPS targets and dated alerts, mirrored to a non-volatile
// device as one fixed-layout image.
//
// A Store has a single owner and is not safe for concurrent use.
package eeprom

import (
	"fmt"
	"log"
	"math"

	"geocache-firmware/pkg/datetime"
	"geocache-firmware/pkg/nvram"
)

// Signature marks a valid image
const Signature = 0xA5

// FactoryTries is the default-tries value of a new store
const FactoryTries = 50

// Target is a GPS coordinate in degrees. (0, 0) marks an empty slot.
type Target struct {
	Lat float64
	Lon float64
}

func (t Target) empty() bool {
	return t.Lat == 0 && t.Lon == 0
}

// Alert is a message shown on a given date. A zero year marks an empty slot.
type Alert struct {
	When  datetime.DateTime
	Line1 string
	Line2 string
}

type Store struct {
	dev    nvram.Device
	offset int
	image
}

// Option configures a Store
type Option func(*Store)

// WithDefaultTries sets the tries restored by Init
func WithDefaultTries(n uint8) Option {
	return func(s *Store) {
		s.defaultTries = n
	}
}

// WithOffset places the image at offset within the device
func WithOffset(off int) Option {
	return func(s *Store) {
		s.offset = off
	}
}

// New returns an empty, invalid store bound to dev. Call Load before use.
func New(dev nvram.Device, opts ...Option) *Store {
	s := &Store{dev: dev}
	s.defaultTries = FactoryTries
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init marks the image valid and restores the tries counter to the default
func (s *Store) Init() {
	s.signature = Signature
	s.tries = s.defaultTries
	s.dirty = true
}

func (s *Store) IsValid() bool { return s.signature == Signature }
func (s *Store) IsDirty() bool { return s.dirty }
func (s *Store) IsLocked() bool { return s.locked }

// SetLocked and SetUnlocked only mark the store dirty on an actual change
func (s *Store) SetLocked() {
	if !s.locked {
		s.locked = true
		s.dirty = true
	}
}

func (s *Store) SetUnlocked() {
	if s.locked {
		s.locked = false
		s.dirty = true
	}
}

// ----------------------------------------------------------------------
// Targets

// TargetCount is the index of the first empty slot
func (s *Store) TargetCount() int {
	n := 0
	for n < MaxTargets && !s.targets[n].empty() {
		n++
	}
	return n
}

// Targets returns the live targets in order
func (s *Store) Targets() []Target {
	return append([]Target{}, s.targets[:s.TargetCount()]...)
}

// AddTarget appends at the first empty slot. It fails on a full list or on
// the (0, 0) empty-slot marker.
func (s *Store) AddTarget(lat, lon float64) bool {
	n := s.TargetCount()
	if n >= MaxTargets || (Target{lat, lon}).empty() {
		return false
	}
	s.SetTargetLat(lat, n)
	s.SetTargetLon(lon, n)
	return true
}

// RemoveTarget deletes target i, shifting later targets down one slot
func (s *Store) RemoveTarget(i int) bool {
	n := s.TargetCount()
	if i < 0 || i >= n {
		return false
	}

	copy(s.targets[i:], s.targets[i+1:n])
	for j := n - 1; j < MaxTargets; j++ {
		s.targets[j] = Target{}
	}
	s.dirty = true
	return true
}

// TargetLat and the other target accessors require i < MaxTargets
func (s *Store) TargetLat(i int) float64 { return s.targets[i].Lat }
func (s *Store) TargetLon(i int) float64 { return s.targets[i].Lon }

func (s *Store) SetTargetLat(lat float64, i int) {
	if math.Float64bits(s.targets[i].Lat) != math.Float64bits(lat) {
		s.targets[i].Lat = lat
		s.dirty = true
	}
}

func (s *Store) SetTargetLon(lon float64, i int) {
	if math.Float64bits(s.targets[i].Lon) != math.Float64bits(lon) {
		s.targets[i].Lon = lon
		s.dirty = true
	}
}

// ----------------------------------------------------------------------
// Tries

// DefaultTries is a runtime tunable; setting it does not mark the store
// dirty, it is persisted only along with some other change.
func (s *Store) DefaultTries() uint8     { return s.defaultTries }
func (s *Store) SetDefaultTries(n uint8) { s.defaultTries = n }

func (s *Store) Tries() uint8 { return s.tries }

func (s *Store) SetTries(n uint8) {
	if s.tries != n {
		s.tries = n
		s.dirty = true
	}
}

// ReduceTries decrements the counter and returns the new value. At zero it
// returns zero and changes nothing.
func (s *Store) ReduceTries() uint8 {
	if s.tries == 0 {
		return 0
	}
	s.tries--
	s.dirty = true
	return s.tries
}

// ----------------------------------------------------------------------
// Alerts

// AlertCount is the index of the first slot with an unset date
func (s *Store) AlertCount() int {
	n := 0
	for n < MaxAlerts && s.alerts[n].When.IsSet() {
		n++
	}
	return n
}

// Alert returns slot i. The bound is the capacity, not AlertCount, so an
// empty slot comes back with ok == true and an unset date.
func (s *Store) Alert(i int) (Alert, bool) {
	if i < 0 || i >= MaxAlerts {
		return Alert{}, false
	}
	return s.alerts[i], true
}

// Alerts returns the live alerts in order
func (s *Store) Alerts() []Alert {
	return append([]Alert{}, s.alerts[:s.AlertCount()]...)
}

// AddAlert appends an alert. Adding an exact duplicate succeeds without a
// change; a full list fails. Lines are cut to LineWidth bytes first.
func (s *Store) AddAlert(when datetime.DateTime, line1, line2 string) bool {
	if !when.IsSet() {
		return false
	}

	a := Alert{When: when, Line1: fitLine(line1), Line2: fitLine(line2)}

	n := s.AlertCount()
	for i := 0; i < n; i++ {
		if s.alerts[i] == a {
			return true
		}
	}

	if n >= MaxAlerts {
		return false
	}

	s.alerts[n] = a
	s.dirty = true
	return true
}

// ----------------------------------------------------------------------
// Loading and saving

// Load reads the image from the device. An image without the signature is
// replaced by factory defaults and written back at once. Returns the
// validity after loading.
func (s *Store) Load() (bool, error) {
	data, err := s.dev.ReadBlob(s.offset, Size)
	if err != nil {
		return false, fmt.Errorf("failed to read config image: %w", err)
	}

	im := decode(data)
	if im.signature != Signature {
		log.Printf("Config image signature %#02x invalid, restoring defaults", im.signature)
		s.image = image{defaultTries: s.defaultTries}
		s.Init()
		if err := s.Save(); err != nil {
			return false, err
		}
	} else {
		s.image = im
	}

	s.dirty = false
	return s.IsValid(), nil
}

// Save writes the whole image, whether or not anything changed
func (s *Store) Save() error {
	was := s.dirty
	s.dirty = false
	if err := s.dev.WriteBlob(s.offset, s.encode()); err != nil {
		s.dirty = was
		return fmt.Errorf("failed to write config image: %w", err)
	}
	return nil
}

// SaveIfDirty writes the image only when it has unsaved changes
func (s *Store) SaveIfDirty() error {
	if !s.dirty {
		return nil
	}
	return s.Save()
}
