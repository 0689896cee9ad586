package model

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// CreatorApplicationStatus is the review state of a creator application.
type CreatorApplicationStatus string

const (
	CreatorApplicationPending  CreatorApplicationStatus = "pending"
	CreatorApplicationApproved CreatorApplicationStatus = "approved"
	CreatorApplicationRejected CreatorApplicationStatus = "rejected"
)

// Valid reports whether the status is supported.
func (s CreatorApplicationStatus) Valid() bool {
	switch s {
	case CreatorApplicationPending, CreatorApplicationApproved, CreatorApplicationRejected:
		return true
	default:
		return false
	}
}

// CreatorApplication is a user's request to join the creator program.
// Submissions start pending; only admins move them to a terminal status.
type CreatorApplication struct {
	ID           string                   `json:"id"                      db:"id"`
	UserID       string                   `json:"user_id"                 db:"user_id"`
	PortfolioURL *string                  `json:"portfolio_url,omitempty" db:"portfolio_url"`
	Specialties  []string                 `json:"specialties,omitempty"   db:"specialties"`
	Status       CreatorApplicationStatus `json:"status"                  db:"status"`
	CreatedAt    time.Time                `json:"created_at"              db:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"              db:"updated_at"`
}

// SubmitCreatorApplicationRequest represents a creator program submission.
// UserID is filled from the session.
type SubmitCreatorApplicationRequest struct {
	UserID       string   `json:"-"`
	PortfolioURL *string  `json:"portfolio_url,omitempty"`
	Specialties  []string `json:"specialties,omitempty"`
}

// Validate validates SubmitCreatorApplicationRequest.
func (r *SubmitCreatorApplicationRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	if r.PortfolioURL != nil {
		u, err := url.Parse(*r.PortfolioURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New("portfolio_url must be an absolute URL")
		}
	}
	if len(r.Specialties) > 5 {
		return errors.New("at most 5 specialties are allowed")
	}
	return nil
}

// CreatorStats aggregates a creator's marketplace performance for the
// creator dashboard.
type CreatorStats struct {
	CreatorID      string  `json:"creator_id"`
	TemplateCount  int     `json:"template_count"`
	TotalDownloads int     `json:"total_downloads"`
	TotalEarnings  float64 `json:"total_earnings"`
	AverageRating  float64 `json:"average_rating"`
}
