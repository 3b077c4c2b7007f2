package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/moodjournal/journal-api/internal/core/domain"
	"github.com/moodjournal/journal-api/internal/core/ports"
	"github.com/moodjournal/journal-api/internal/pkg/metrics"
)

type JournalService struct {
	repo ports.JournalRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewJournalService(repo ports.JournalRepository, log zerolog.Logger) *JournalService {
	return &JournalService{repo: repo, log: log, now: time.Now}
}

// List returns the user's entries, newest insert first. Unknown users get an
// empty slice.
func (s *JournalService) List(ctx context.Context, userID string) []domain.JournalEntry {
	return s.repo.List(ctx, userID)
}

// Create validates the input, builds the complete entry and only then hands
// it to the repository. Nothing is stored when validation fails.
func (s *JournalService) Create(ctx context.Context, userID string, in ports.CreateEntryInput) (domain.JournalEntry, error) {
	if err := domain.ValidateEntry(in.Text, in.Mood); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("create entry: %w", err)
	}

	entryTime := s.now().UTC()
	if in.EntryDatetime != nil {
		entryTime = *in.EntryDatetime
	}

	entry := domain.JournalEntry{
		ID:            uuid.NewString(),
		Text:          in.Text,
		Mood:          in.Mood,
		EntryDatetime: entryTime,
	}
	s.repo.Prepend(ctx, userID, entry)

	metrics.EntriesCreatedTotal.WithLabelValues(moodBucket(entry.Mood)).Inc()
	s.log.Debug().Str("user_id", userID).Str("entry_id", entry.ID).Int("mood", entry.Mood).Msg("journal entry created")

	return entry, nil
}

// MoodCalendar groups entries by the calendar date of entry_datetime and
// averages the moods of each day. Days are ordered most recent first.
func (s *JournalService) MoodCalendar(ctx context.Context, userID string) []domain.MoodCalendarDay {
	type bucket struct {
		sum   int
		count int
	}

	grouped := make(map[string]*bucket)
	for _, e := range s.repo.List(ctx, userID) {
		key := e.EntryDatetime.Format(domain.CalendarDateLayout)
		b, ok := grouped[key]
		if !ok {
			b = &bucket{}
			grouped[key] = b
		}
		b.sum += e.Mood
		b.count++
	}

	days := make([]domain.MoodCalendarDay, 0, len(grouped))
	for date, b := range grouped {
		days = append(days, domain.MoodCalendarDay{
			Date:        date,
			AverageMood: float64(b.sum) / float64(b.count),
			Entries:     b.count,
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })
	return days
}

// moodBucket keeps the metric label set small.
func moodBucket(mood int) string {
	switch {
	case mood <= 3:
		return "low"
	case mood <= 7:
		return "mid"
	default:
		return "high"
	}
}
