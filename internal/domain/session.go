package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionState represents the state of a booking session
type SessionState string

const (
	SessionNoSelection SessionState = "no_selection"
	SessionSelected    SessionState = "selected"
	SessionConfirmed   SessionState = "confirmed"
	SessionCancelled   SessionState = "cancelled"
)

// ErrInvalidTransition is returned when a session cannot move to the requested state
var ErrInvalidTransition = errors.New("invalid booking session transition")

// BookingSession is one donor's walk through the booking flow
type BookingSession struct {
	ID         uuid.UUID
	LocationID string
	State      SessionState
	WeekAnchor time.Time // Sunday, local midnight
	Selection  *Selection
	Details    BookingDetails
	LastError  *string // last submission failure, server message verbatim
	BookingRef *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBookingSession starts a session with no selection on the week of anchor
func NewBookingSession(locationID string, anchor time.Time) *BookingSession {
	return &BookingSession{
		ID:         uuid.New(),
		LocationID: locationID,
		State:      SessionNoSelection,
		WeekAnchor: BuildWeek(anchor).Start,
	}
}

// IsTerminal returns true if the session is confirmed or cancelled
func (s *BookingSession) IsTerminal() bool {
	return s.State == SessionConfirmed || s.State == SessionCancelled
}

// HasSelection returns true if a slot is currently selected
func (s *BookingSession) HasSelection() bool {
	return s.State == SessionSelected && s.Selection != nil
}

// Select sets or replaces the active selection
func (s *BookingSession) Select(sel Selection) error {
	if s.IsTerminal() {
		return s.transitionError(SessionSelected)
	}
	s.Selection = &sel
	s.State = SessionSelected
	s.LastError = nil
	return nil
}

// Confirm completes the session after a successful submission
func (s *BookingSession) Confirm(bookingRef string) error {
	if !s.HasSelection() {
		return s.transitionError(SessionConfirmed)
	}
	s.State = SessionConfirmed
	s.Selection = nil
	s.LastError = nil
	if bookingRef != "" {
		s.BookingRef = &bookingRef
	}
	return nil
}

// Fail records a submission failure and keeps the selection for a retry
func (s *BookingSession) Fail(message string) error {
	if !s.HasSelection() {
		return s.transitionError(SessionSelected)
	}
	if r := []rune(message); len(r) > MaxErrorMsgLength {
		message = string(r[:MaxErrorMsgLength])
	}
	s.LastError = &message
	return nil
}

// Cancel abandons the session and drops the selection
func (s *BookingSession) Cancel() error {
	if s.IsTerminal() {
		return s.transitionError(SessionCancelled)
	}
	s.State = SessionCancelled
	s.Selection = nil
	return nil
}

// SetDetails replaces the donor details
func (s *BookingSession) SetDetails(details BookingDetails) error {
	if s.IsTerminal() {
		return fmt.Errorf("%w: session is %s", ErrInvalidTransition, s.State)
	}
	s.Details = details
	return nil
}

// MoveTo points the session at the week containing anchor. The selection is kept.
func (s *BookingSession) MoveTo(anchor time.Time) error {
	if s.IsTerminal() {
		return fmt.Errorf("%w: session is %s", ErrInvalidTransition, s.State)
	}
	s.WeekAnchor = BuildWeek(anchor).Start
	return nil
}

// Week returns the week the session is displaying
func (s *BookingSession) Week() Week {
	return BuildWeek(s.WeekAnchor)
}

func (s *BookingSession) transitionError(to SessionState) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, to)
}
