// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sim provides the simulation clock the chat directives act on.
//
// The clock is a stand-in for the traffic engine's own time control: it
// tracks a time of day advanced once per frame, scaled by the current speed
// setting. Pause and resume directives from the chat land here.
package sim

import (
	"fmt"
	"time"

	"github.com/jeranaias/simchat-tui/internal/commands"
)

// SpeedSetting is the simulation speed selected on the clock.
type SpeedSetting int

const (
	// Paused stops simulation time.
	Paused SpeedSetting = iota

	// Realtime advances one simulated second per wall second.
	Realtime

	// Fast advances five simulated seconds per wall second.
	Fast

	// Fastest advances thirty simulated seconds per wall second.
	Fastest
)

// String returns the label shown in the status line.
func (s SpeedSetting) String() string {
	switch s {
	case Paused:
		return "paused"
	case Realtime:
		return "1x"
	case Fast:
		return "5x"
	case Fastest:
		return "30x"
	default:
		return "unknown"
	}
}

// Multiplier returns simulated seconds per wall second for the setting.
func (s SpeedSetting) Multiplier() float64 {
	switch s {
	case Realtime:
		return 1
	case Fast:
		return 5
	case Fastest:
		return 30
	default:
		return 0
	}
}

// Clock tracks simulated time of day under a speed setting. It is stepped
// by the frame loop goroutine only and needs no locking.
type Clock struct {
	speed    SpeedSetting
	elapsed  time.Duration
	lastStep time.Time
}

// NewClock returns a clock at midnight running in realtime.
func NewClock() *Clock {
	return &Clock{speed: Realtime}
}

// Step advances the clock by the wall time since the previous Step, scaled
// by the current speed. The first call only records the baseline.
func (c *Clock) Step() {
	now := time.Now()
	if !c.lastStep.IsZero() {
		c.Advance(now.Sub(c.lastStep))
	}
	c.lastStep = now
}

// Advance adds wall-clock delta to the simulation, scaled by the current
// speed. Paused time adds nothing.
func (c *Clock) Advance(delta time.Duration) {
	if delta <= 0 {
		return
	}
	c.elapsed += time.Duration(float64(delta) * c.speed.Multiplier())
}

// Pause stops the clock. It returns true when the clock was running.
func (c *Clock) Pause() bool {
	if c.speed == Paused {
		return false
	}
	c.speed = Paused
	return true
}

// Resume restarts a paused clock at realtime, the same speed the host
// applies on its resume control. A running clock is left at its current
// speed.
func (c *Clock) Resume() bool {
	if c.speed != Paused {
		return false
	}
	c.speed = Realtime
	return true
}

// SetSpeed selects a speed directly. It returns true when the setting
// changed.
func (c *Clock) SetSpeed(s SpeedSetting) bool {
	if s == c.speed {
		return false
	}
	c.speed = s
	return true
}

// Apply actuates a chat directive on the clock. It returns true when the
// speed changed.
func (c *Clock) Apply(d commands.Directive) bool {
	switch d {
	case commands.DirectivePause:
		return c.Pause()
	case commands.DirectiveResume:
		return c.Resume()
	default:
		return false
	}
}

// IsPaused reports whether the clock is stopped.
func (c *Clock) IsPaused() bool {
	return c.speed == Paused
}

// Speed returns the current speed setting.
func (c *Clock) Speed() SpeedSetting {
	return c.speed
}

// Elapsed returns total simulated time since the scenario start.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// TimeOfDay formats the simulated clock as HH:MM:SS, wrapping at midnight.
func (c *Clock) TimeOfDay() string {
	day := c.elapsed % (24 * time.Hour)
	h := int(day / time.Hour)
	m := int(day / time.Minute % 60)
	s := int(day / time.Second % 60)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// StatusLine renders the header fragment showing sim time and speed.
func (c *Clock) StatusLine() string {
	return fmt.Sprintf("sim %s · %s", c.TimeOfDay(), c.speed)
}
