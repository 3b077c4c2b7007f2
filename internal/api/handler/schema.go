package handler

import (
	"time"

	"github.com/moodjournal/journal-api/internal/core/domain"
)

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        domain.User `json:"user"`
}

type createEntryRequest struct {
	Text          string     `json:"text"           validate:"required,max=5000"`
	Mood          int        `json:"mood"           validate:"gte=1,lte=10"`
	EntryDatetime *time.Time `json:"entry_datetime"`
}

type entryListResponse struct {
	Items []domain.JournalEntry `json:"items"`
}

type entryResponse struct {
	Item domain.JournalEntry `json:"item"`
}

type moodCalendarResponse struct {
	Days []domain.MoodCalendarDay `json:"days"`
}

type settingsRequest struct {
	DisplayName  string `json:"display_name"  validate:"required,max=100"`
	ReminderTime string `json:"reminder_time" validate:"required,datetime=15:04"`
	Theme        string `json:"theme"         validate:"required,max=50"`
}

type userListResponse struct {
	Items []domain.User `json:"items"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error   string   `json:"error"`
	Allowed []string `json:"allowed,omitempty"`
}
