package orm

import (
	"context"
	"fmt"
	"strings"
	"time"

	logcontext "github.com/va6996/travelscout/context"
	"github.com/va6996/travelscout/places"
	"gorm.io/gorm"
)

// Lookup status values
const (
	StatusAnswered = "answered"
	StatusFallback = "fallback"
	StatusFailed   = "failed"
)

// Lookup is one journaled place lookup
type Lookup struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RequestID      string    `gorm:"index" json:"request_id,omitempty"`
	Category       string    `gorm:"index" json:"category"`
	Place          string    `gorm:"index" json:"place"`
	Source         string    `json:"source,omitempty"`
	Status         string    `json:"status"`
	FallbackReason string    `json:"fallback_reason,omitempty"`
	Report         string    `json:"report"`
	CreatedAt      time.Time `json:"created_at"`
}

// LookupFromOutcome copies an outcome into a journal row
func LookupFromOutcome(requestID string, o places.Outcome) *Lookup {
	row := &Lookup{
		RequestID: requestID,
		Category:  o.Category.String(),
		Place:     o.Place,
		Source:    o.Source,
		Report:    o.Text(),
	}

	switch {
	case !o.OK():
		row.Status = StatusFailed
	case o.FellBack():
		row.Status = StatusFallback
	default:
		row.Status = StatusAnswered
	}
	if o.PrimaryFailure != nil {
		row.FallbackReason = o.PrimaryFailure.Error()
	}
	return row
}

// Journal persists place lookups. It is only ever written by the tool
// façade and read by operators.
type Journal struct {
	db *gorm.DB
}

// NewJournal wraps an open database
func NewJournal(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

// Record stores an outcome, tagged with the request id carried by ctx
func (j *Journal) Record(ctx context.Context, o places.Outcome) error {
	row := LookupFromOutcome(logcontext.RequestIDFromContext(ctx), o)
	if err := j.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to record lookup: %w", err)
	}
	return nil
}

// Recent returns the newest lookups first
func (j *Journal) Recent(ctx context.Context, limit int) ([]Lookup, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []Lookup
	err := j.db.WithContext(ctx).Order("created_at desc").Order("id desc").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list lookups: %w", err)
	}
	return rows, nil
}

// ForPlace returns every lookup for a place, case-insensitively, newest first
func (j *Journal) ForPlace(ctx context.Context, place string) ([]Lookup, error) {
	var rows []Lookup
	err := j.db.WithContext(ctx).
		Where("LOWER(place) = ?", strings.ToLower(strings.TrimSpace(place))).
		Order("created_at desc").Order("id desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list lookups for %s: %w", place, err)
	}
	return rows, nil
}
