// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sim provides the simulation clock the chat directives act on.
//
// The clock is a stand-in for the traffic engine's own time control: it
// tracks a time of day advanced once per frame, scaled by the current
// speed setting. Pause and resume directives extracted from assistant
// replies land here.
//
// # Key Types
//
//   - Clock: frame-stepped simulation time with a speed setting
//   - SpeedSetting: Paused, Realtime, Fast, or Fastest
//
// # Usage
//
// Step the clock from the frame loop and apply chat directives:
//
//	clock := sim.NewClock()
//	clock.Step() // once per frame
//	if d, ok := ctrl.TakeDirective(); ok {
//	    clock.Apply(d)
//	}
//	statusbar := clock.StatusLine()
//
// The clock is owned by the frame loop. Nothing in this package locks;
// callers must not share a Clock between goroutines.
package sim
