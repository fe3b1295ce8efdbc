package gameserver

import (
	"fmt"

	"github.com/cory-johannsen/sosaria/internal/game/party"
)

// TimePeriod is a named phase of the game day.
type TimePeriod string

const (
	PeriodMidnight  TimePeriod = "Midnight"
	PeriodLateNight TimePeriod = "Late Night"
	PeriodDawn      TimePeriod = "Dawn"
	PeriodMorning   TimePeriod = "Morning"
	PeriodAfternoon TimePeriod = "Afternoon"
	PeriodDusk      TimePeriod = "Dusk"
	PeriodEvening   TimePeriod = "Evening"
	PeriodNight     TimePeriod = "Night"
)

// dawnHour is the hour at turn 0 of every day. Daylight covers the first
// half of the day's turns, so dusk falls at dawnHour+12.
const dawnHour = 6

// GameHour is a game-clock hour in [0, 23].
type GameHour int32

// HourOf maps a turn counter onto the 24-hour clock.
//
// Postcondition: the result is in [0, 23] and is at or after 18:00 or before
// 06:00 exactly when the party calendar reports night.
func HourOf(turn int) GameHour {
	t := turn % party.TurnsPerDay
	if t < 0 {
		t += party.TurnsPerDay
	}
	return GameHour((dawnHour + t*24/party.TurnsPerDay) % 24)
}

// Period returns the named time period for this hour.
//
// Precondition: h is in [0, 23].
// Postcondition: Returns one of the eight TimePeriod constants.
func (h GameHour) Period() TimePeriod {
	switch {
	case h == 0:
		return PeriodMidnight
	case h >= 1 && h <= 4:
		return PeriodLateNight
	case h >= 5 && h <= 6:
		return PeriodDawn
	case h >= 7 && h <= 11:
		return PeriodMorning
	case h >= 12 && h <= 16:
		return PeriodAfternoon
	case h == 17:
		return PeriodDusk
	case h >= 18 && h <= 21:
		return PeriodEvening
	default: // 22-23
		return PeriodNight
	}
}

// IsNight reports whether the hour falls in the dark half of the day.
func (h GameHour) IsNight() bool {
	return h >= dawnHour+12 || h < dawnHour
}

// String returns the hour in "HH:00" format.
func (h GameHour) String() string {
	return fmt.Sprintf("%02d:00", int(h))
}
