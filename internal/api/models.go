package api

import (
	"time"

	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/service"
)

// Common request/response structures

// dateLayout is the wire format for day-granular dates.
const dateLayout = "2006-01-02"

// CardResponse represents a scheduling card, optionally paired with the
// catalog item it tracks.
type CardResponse struct {
	ID           string      `json:"id"`
	ItemType     string      `json:"item_type"`
	ItemID       int64       `json:"item_id"`
	Item         interface{} `json:"item,omitempty"`
	EaseFactor   float64     `json:"ease_factor"`
	IntervalDays int         `json:"interval_days"`
	Reps         int         `json:"reps"`
	DueDate      string      `json:"due_date"`
	LastReviewed *time.Time  `json:"last_reviewed_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ReviewRequest defines the payload for submitting a graded review.
// Grade is a pointer so an explicit 0 ("complete blackout") survives the
// required check.
type ReviewRequest struct {
	CardID    string `json:"card_id"              validate:"required,uuid"`
	Grade     *int   `json:"grade"                validate:"required,gte=0,lte=5"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,uuid"`
}

// SessionResponse represents a study session.
type SessionResponse struct {
	ID            string     `json:"id"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	CardsReviewed int        `json:"cards_reviewed"`
	Correct       int        `json:"correct"`
	Incorrect     int        `json:"incorrect"`
}

// CloseSessionResponse acknowledges a close request. Session is omitted
// when the session never existed; the close is still reported as ok.
type CloseSessionResponse struct {
	OK      bool             `json:"ok"`
	Session *SessionResponse `json:"session,omitempty"`
}

// LevelStatsResponse is the per-level breakdown inside the progress report.
type LevelStatsResponse struct {
	Level    string `json:"level"`
	Total    int    `json:"total"`
	New      int    `json:"new"`
	Young    int    `json:"young"`
	Mature   int    `json:"mature"`
	DueToday int    `json:"due_today"`
}

// ForecastEntryResponse is one day of the weekly forecast.
type ForecastEntryResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ProgressResponse is the full statistics snapshot.
type ProgressResponse struct {
	StreakDays      int                     `json:"streak_days"`
	TotalReviews    int                     `json:"total_reviews"`
	AllTimeAccuracy float64                 `json:"all_time_accuracy"`
	Levels          []LevelStatsResponse    `json:"levels"`
	WeeklyForecast  []ForecastEntryResponse `json:"weekly_forecast"`
}

// SettingRequest defines the payload for writing one settings key.
type SettingRequest struct {
	Value string `json:"value" validate:"required"`
}

// SettingResponse represents one settings key with its raw JSON value.
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// cardToResponse converts a domain card, with item optionally nil.
func cardToResponse(card *domain.Card, item domain.CatalogItem) CardResponse {
	resp := CardResponse{
		ID:           card.ID.String(),
		ItemType:     string(card.ItemType),
		ItemID:       card.ItemID,
		EaseFactor:   card.EaseFactor,
		IntervalDays: card.IntervalDays,
		Reps:         card.Reps,
		DueDate:      card.DueDate.Format(dateLayout),
		CreatedAt:    card.CreatedAt,
	}
	if item != nil {
		resp.Item = item
	}
	if !card.LastReviewedAt.IsZero() {
		t := card.LastReviewedAt
		resp.LastReviewed = &t
	}
	return resp
}

// cardsToResponse converts selection results, carrying the items along.
func cardsToResponse(pairs []service.CardWithItem) []CardResponse {
	out := make([]CardResponse, 0, len(pairs))
	for _, pair := range pairs {
		out = append(out, cardToResponse(pair.Card, pair.Item))
	}
	return out
}

// sessionToResponse converts a domain study session.
func sessionToResponse(session *domain.StudySession) SessionResponse {
	resp := SessionResponse{
		ID:            session.ID.String(),
		StartedAt:     session.StartedAt,
		CardsReviewed: session.CardsReviewed,
		Correct:       session.Correct,
		Incorrect:     session.Incorrect,
	}
	if !session.EndedAt.IsZero() {
		t := session.EndedAt
		resp.EndedAt = &t
	}
	return resp
}

// progressToResponse converts the statistics snapshot.
func progressToResponse(progress *service.Progress) ProgressResponse {
	levels := make([]LevelStatsResponse, 0, len(progress.Levels))
	for _, l := range progress.Levels {
		levels = append(levels, LevelStatsResponse{
			Level:    string(l.Level),
			Total:    l.Total,
			New:      l.New,
			Young:    l.Young,
			Mature:   l.Mature,
			DueToday: l.DueToday,
		})
	}
	forecast := make([]ForecastEntryResponse, 0, len(progress.WeeklyForecast))
	for _, f := range progress.WeeklyForecast {
		forecast = append(forecast, ForecastEntryResponse{
			Date:  f.Date.Format(dateLayout),
			Count: f.Count,
		})
	}
	return ProgressResponse{
		StreakDays:      progress.StreakDays,
		TotalReviews:    progress.TotalReviews,
		AllTimeAccuracy: progress.AllTimeAccuracy,
		Levels:          levels,
		WeeklyForecast:  forecast,
	}
}
