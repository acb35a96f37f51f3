package hours

import (
	"fmt"
	"time"
)

const (
	StatusOpen   = "Aberto agora"
	StatusClosed = "Fechado"
)

// Window is an opening interval in minutes since midnight, [Open, Close).
type Window struct {
	Open  int `json:"open"`
	Close int `json:"close"`
}

func (w Window) String() string {
	return fmt.Sprintf("%02d:%02d - %02d:%02d", w.Open/60, w.Open%60, w.Close/60, w.Close%60)
}

type Schedule struct {
	Location *time.Location
	Days     map[time.Weekday]Window
}

// DefaultSchedule is the restaurant's weekly timetable.
func DefaultSchedule(loc *time.Location) Schedule {
	weekday := Window{Open: 11 * 60, Close: 22 * 60}
	return Schedule{
		Location: loc,
		Days: map[time.Weekday]Window{
			time.Monday:    weekday,
			time.Tuesday:   weekday,
			time.Wednesday: weekday,
			time.Thursday:  weekday,
			time.Friday:    weekday,
			time.Saturday:  {Open: 10 * 60, Close: 23 * 60},
			time.Sunday:    {Open: 10 * 60, Close: 21 * 60},
		},
	}
}

func (s Schedule) IsOpen(t time.Time) bool {
	if s.Location != nil {
		t = t.In(s.Location)
	}
	window, ok := s.Days[t.Weekday()]
	if !ok {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return minute >= window.Open && minute < window.Close
}

func (s Schedule) Status(t time.Time) string {
	if s.IsOpen(t) {
		return StatusOpen
	}
	return StatusClosed
}

var dayNames = map[time.Weekday]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
}

// Timetable lists the schedule by Portuguese day name, e.g. "11:00 - 22:00".
func (s Schedule) Timetable() map[string]string {
	out := make(map[string]string, len(s.Days))
	for day, window := range s.Days {
		out[dayNames[day]] = window.String()
	}
	return out
}
