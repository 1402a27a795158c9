package types

import (
	"fmt"
	"time"
)

// DaysPerWeek is the fixed length of a Week.
const DaysPerWeek = 7

// Day is one day of the weekly price sheet. Nil prices were not entered.
type Day struct {
	DayName          string `json:"dayName"`
	IsFirstDayOfWeek bool   `json:"isFirstDayOfWeek"`
	MorningPrice     *int   `json:"morningPrice,omitempty"`
	EveningPrice     *int   `json:"eveningPrice,omitempty"`
	BuyPrice         *int   `json:"buyPrice,omitempty"`
}

// Week is indexed by time.Weekday: Sunday first.
type Week []Day

// WeekTemplate returns the empty sheet shown before any price is saved for the week.
func WeekTemplate() Week {
	w := make(Week, 0, DaysPerWeek)
	for d := time.Sunday; d <= time.Saturday; d++ {
		w = append(w, Day{DayName: d.String(), IsFirstDayOfWeek: d == time.Sunday})
	}
	return w
}

func (w Week) Validate() error {
	if len(w) != DaysPerWeek {
		return &ValidationError{
			Fields: []string{"days"},
			Msg:    fmt.Sprintf("a week has %d days, got %d", DaysPerWeek, len(w)),
		}
	}
	return nil
}

// TurnipUpdate is the UpdateTurnipPrices payload. Missing prices are sent as 0.
type TurnipUpdate struct {
	PublicKey          string    `json:"publicKey"`
	MorningPrice       int       `json:"morningPrice"`
	EveningPrice       int       `json:"eveningPrice"`
	BuyPrice           int       `json:"buyPrice"`
	Year               int       `json:"year"`
	DayOfYear          int       `json:"dayOfYear"`
	UpdateTimestampUTC time.Time `json:"updateTimestampUTC"`
}

// NewTurnipUpdate stamps a day's prices with the local calendar date of now.
func NewTurnipUpdate(publicKey string, d Day, now time.Time) TurnipUpdate {
	return TurnipUpdate{
		PublicKey:          publicKey,
		MorningPrice:       valueOrZero(d.MorningPrice),
		EveningPrice:       valueOrZero(d.EveningPrice),
		BuyPrice:           valueOrZero(d.BuyPrice),
		Year:               now.Year(),
		DayOfYear:          now.YearDay(),
		UpdateTimestampUTC: now.UTC(),
	}
}

func valueOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
