// Package box is the puzzle logic the control loop drives: one location
// check per power-up, counted against the tries left in the EEPROM image.
package box

import (
	"fmt"
	"log"
	"time"

	"geocache-firmware/pkg/datetime"
	"geocache-firmware/pkg/eeprom"
	"geocache-firmware/pkg/geo"
)

const defaultRadius = 100.0

// Display shows two lines of text
type Display interface {
	Show(line1, line2 string) error
}

// Latch throws and releases the lid bolt
type Latch interface {
	Lock() error
	Unlock() error
}

type Box struct {
	store     *eeprom.Store
	display   Display
	latch     Latch
	radius    float64
	developer bool
}

type Option func(*Box)

// WithRadius sets how close, in metres, counts as arrived
func WithRadius(m float64) Option {
	return func(b *Box) {
		b.radius = m
	}
}

// WithDeveloperMode keeps every change in memory only
func WithDeveloperMode(on bool) Option {
	return func(b *Box) {
		b.developer = on
	}
}

// New wraps a loaded store
func New(store *eeprom.Store, display Display, latch Latch, opts ...Option) *Box {
	b := &Box{store: store, display: display, latch: latch, radius: defaultRadius}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Outcome describes one location check
type Outcome struct {
	Unlocked  bool
	Target    int
	Distance  float64
	TriesLeft uint8
}

// Attempt checks a fix against the stored targets. An unlocked box just
// reports open. Arriving within the radius of any target opens the box;
// anything else costs one try.
func (b *Box) Attempt(lat, lon float64) (Outcome, error) {
	s := b.store

	if !s.IsLocked() {
		b.show("Welcome back!", "Box is open.")
		return Outcome{Unlocked: true, Target: -1, TriesLeft: s.Tries()}, nil
	}

	if s.Tries() == 0 {
		b.show("No tries left.", "Box is sealed.")
		return Outcome{Target: -1}, ErrLockedOut
	}

	targets := s.Targets()
	if len(targets) == 0 {
		b.show("No targets set.", "")
		return Outcome{Target: -1, TriesLeft: s.Tries()}, ErrNoTargets
	}

	points := make([]geo.Point, len(targets))
	for i, t := range targets {
		points[i] = geo.Point{Lat: t.Lat, Lon: t.Lon}
	}
	idx, dist := geo.Nearest(lat, lon, points)
	out := Outcome{Target: idx, Distance: dist}

	if dist <= b.radius {
		if err := b.latch.Unlock(); err != nil {
			return out, err
		}
		s.SetUnlocked()
		out.Unlocked = true
		out.TriesLeft = s.Tries()
		log.Printf("Arrived at target %d (%.0f m), unlocked", idx, dist)
		b.show("You made it!", "Box is open.")
	} else {
		out.TriesLeft = s.ReduceTries()
		log.Printf("Attempt %.0f m from target %d, %d tries left", dist, idx, out.TriesLeft)
		b.show("Dist: "+FormatDistance(dist), fmt.Sprintf("Tries left: %d", out.TriesLeft))
	}

	return out, b.persist()
}

// Arm restores the tries counter to the default and locks the box
func (b *Box) Arm() error {
	b.store.SetTries(b.store.DefaultTries())
	if err := b.latch.Lock(); err != nil {
		return err
	}
	b.store.SetLocked()
	log.Printf("Armed with %d tries", b.store.Tries())
	return b.persist()
}

// Reset is the owner's way in through the hidden hinge contact: the box is
// opened and the tries counter restored
func (b *Box) Reset() error {
	b.store.SetTries(b.store.DefaultTries())
	if err := b.latch.Unlock(); err != nil {
		return err
	}
	b.store.SetUnlocked()
	log.Println("Reset through secret contact")
	b.show("Reset.", "Box is open.")
	return b.persist()
}

// DueAlerts returns the alerts dated today whose time of day has passed
func (b *Box) DueAlerts(now datetime.DateTime) []eeprom.Alert {
	var due []eeprom.Alert
	for _, a := range b.store.Alerts() {
		if a.When.SameDate(now) && now.SecondsOfDay() >= a.When.SecondsOfDay() {
			due = append(due, a)
		}
	}
	return due
}

// ShowAlerts shows each due alert for hold and returns how many were shown
func (b *Box) ShowAlerts(now datetime.DateTime, hold time.Duration) int {
	due := b.DueAlerts(now)
	for _, a := range due {
		b.show(a.Line1, a.Line2)
		time.Sleep(hold)
	}
	return len(due)
}

// SetDefaultTries changes the tries Arm restores. It is saved with the next
// change that dirties the image.
func (b *Box) SetDefaultTries(n uint8) {
	b.store.SetDefaultTries(n)
}

func (b *Box) Store() *eeprom.Store { return b.store }

func (b *Box) persist() error {
	if b.developer {
		return nil
	}
	return b.store.SaveIfDirty()
}

func (b *Box) show(line1, line2 string) {
	if err := b.display.Show(line1, line2); err != nil {
		log.Printf("Display update failed: %v", err)
	}
}

// FormatDistance renders metres as "850 m" or "12.3 km"
func FormatDistance(m float64) string {
	if m < 1000 {
		return fmt.Sprintf("%.0f m", m)
	}
	return fmt.Sprintf("%.1f km", m/1000)
}
