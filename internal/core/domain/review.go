package domain

import (
	"errors"
	"strings"
	"time"
)

const maxCommentLen = 500

var (
	ErrNotFound         = errors.New("not found")
	ErrNotOwner         = errors.New("review belongs to another user")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong   = errors.New("comment cannot exceed 500 characters")
	ErrMissingContact   = errors.New("name and contact are required")
)

type Review struct {
	ReviewID  string
	ToyID     string
	UserID    string
	UserEmail string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrRatingOutOfRange
	}
	if len(strings.TrimSpace(r.Comment)) > maxCommentLen {
		return ErrCommentTooLong
	}
	return nil
}

// DemoRequest is a contact-me intake for a product demo.
type DemoRequest struct {
	RequestID string
	ToyID     string
	Name      string
	Contact   string
	CreatedAt time.Time
}

func (d DemoRequest) Validate() error {
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Contact) == "" {
		return ErrMissingContact
	}
	return nil
}
