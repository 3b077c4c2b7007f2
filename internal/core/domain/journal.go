package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

const (
	MinEntryTextLen = 1
	MaxEntryTextLen = 5000
	MinMood         = 1
	MaxMood         = 10
)

// CalendarDateLayout is the format of MoodCalendarDay.Date.
const CalendarDateLayout = "2006-01-02"

// JournalEntry is a single immutable diary record owned by one user.
type JournalEntry struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Mood          int       `json:"mood"`
	EntryDatetime time.Time `json:"entry_datetime"`
}

// MoodCalendarDay aggregates the moods recorded on one calendar date.
type MoodCalendarDay struct {
	Date        string  `json:"date"`
	AverageMood float64 `json:"average_mood"`
	Entries     int     `json:"entries"`
}

// ValidateEntry checks text length (in characters) and mood range.
func ValidateEntry(text string, mood int) error {
	n := utf8.RuneCountInString(text)
	if n < MinEntryTextLen || n > MaxEntryTextLen {
		return fmt.Errorf("%w: text must be %d..%d characters, got %d", ErrInvalidEntry, MinEntryTextLen, MaxEntryTextLen, n)
	}
	if mood < MinMood || mood > MaxMood {
		return fmt.Errorf("%w: mood must be %d..%d, got %d", ErrInvalidEntry, MinMood, MaxMood, mood)
	}
	return nil
}
