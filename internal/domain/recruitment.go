package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrInvalidID  = errors.New("invalid recruitment id")
)

type PayoutStatus string

const (
	PayoutStatusPending PayoutStatus = "Pending"
	PayoutStatusPaid    PayoutStatus = "Paid"
)

func (s PayoutStatus) Valid() bool {
	return s == PayoutStatusPending || s == PayoutStatusPaid
}

// ParsePayoutStatus accepts either status name regardless of case and returns
// the canonical spelling.
func ParsePayoutStatus(s string) (PayoutStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return PayoutStatusPending, nil
	case "paid":
		return PayoutStatusPaid, nil
	}
	return "", fmt.Errorf("%w: paidOut must be one of %s, %s", ErrValidation, PayoutStatusPending, PayoutStatusPaid)
}

type Recruitment struct {
	ID              string       `json:"id"`
	HSTLMember      string       `json:"hstlMember"`
	RecruitedMember string       `json:"recruitedMember"`
	PaidOut         PayoutStatus `json:"paidOut"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// Matches reports whether query is a case-insensitive substring of either member.
// An empty query matches everything.
func (r Recruitment) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.HSTLMember), q) ||
		strings.Contains(strings.ToLower(r.RecruitedMember), q)
}

// NewRecruitment is the caller-supplied part of a Recruitment.
type NewRecruitment struct {
	HSTLMember      string `json:"hstlMember"`
	RecruitedMember string `json:"recruitedMember"`
	PaidOut         string `json:"paidOut,omitempty"`
}

// Validate normalises the input and returns the record to insert. ID and
// CreatedAt are left for the store and the caller.
func (n NewRecruitment) Validate() (*Recruitment, error) {
	hstl := strings.TrimSpace(n.HSTLMember)
	recruited := strings.TrimSpace(n.RecruitedMember)

	var missing []string
	if hstl == "" {
		missing = append(missing, "hstlMember")
	}
	if recruited == "" {
		missing = append(missing, "recruitedMember")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	status := PayoutStatusPending
	if strings.TrimSpace(n.PaidOut) != "" {
		parsed, err := ParsePayoutStatus(n.PaidOut)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	return &Recruitment{
		HSTLMember:      hstl,
		RecruitedMember: recruited,
		PaidOut:         status,
	}, nil
}

type PayoutSummary struct {
	Total         int          `json:"total"`
	Pending       int          `json:"pending"`
	Paid          int          `json:"paid"`
	OldestPending *Recruitment `json:"oldestPending,omitempty"`
}

// Summarize counts records by status. records may be in any order.
func Summarize(records []Recruitment) PayoutSummary {
	var s PayoutSummary
	for i := range records {
		r := records[i]
		s.Total++
		switch r.PaidOut {
		case PayoutStatusPaid:
			s.Paid++
		default:
			s.Pending++
			if s.OldestPending == nil || r.CreatedAt.Before(s.OldestPending.CreatedAt) {
				s.OldestPending = &r
			}
		}
	}
	return s
}
