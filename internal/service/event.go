package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/feierapp/feierapp-api/internal/model"
	"github.com/feierapp/feierapp-api/internal/repository"
	"github.com/feierapp/feierapp-api/internal/utils"
)

// codeRetries bounds how often event creation retries on a short-code
// collision before giving up.
const codeRetries = 5

// EventService owns the event directory: listing, creation with code
// generation, lookup by public code, updates and deletion.
type EventService struct {
	events *repository.EventRepo
	guests *repository.GuestRepo
}

// NewEventService wires an EventService to its repositories.
func NewEventService(events *repository.EventRepo, guests *repository.GuestRepo) *EventService {
	return &EventService{events: events, guests: guests}
}

// EventInput carries client-supplied fields for creating an event.
type EventInput struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	EventDate    string  `json:"event_date"`
	Location     string  `json:"location"`
	PlannerName  string  `json:"planner_name"`
	PlannerEmail string  `json:"planner_email"`
	PlannerPhone *string `json:"planner_phone"`
}

// EventUpdateInput carries partial updates; nil fields are untouched.
type EventUpdateInput struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	EventDate    *string `json:"event_date"`
	Location     *string `json:"location"`
	PlannerName  *string `json:"planner_name"`
	PlannerEmail *string `json:"planner_email"`
	PlannerPhone *string `json:"planner_phone"`
}

// EventDetail is the single-event view: the event itself plus its guest
// list and RSVP statistics.
type EventDetail struct {
	model.Event
	Guests     []model.Guest   `json:"guests"`
	Statistics GuestStatistics `json:"statistics"`
}

// List returns all events ordered by event date.
func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}

// Create validates the input, generates a unique public code and stores
// the event. A code collision triggers regeneration.
func (s *EventService) Create(ctx context.Context, in EventInput) (*model.Event, error) {
	e := &model.Event{
		Title:        strings.TrimSpace(in.Title),
		Description:  trimPtr(in.Description),
		Location:     strings.TrimSpace(in.Location),
		PlannerName:  strings.TrimSpace(in.PlannerName),
		PlannerEmail: strings.TrimSpace(in.PlannerEmail),
		PlannerPhone: trimPtr(in.PlannerPhone),
	}

	ve := ValidationErrors{}
	if e.Title == "" {
		ve.Add("title", "Title cannot be blank.")
	}
	if e.Location == "" {
		ve.Add("location", "Location cannot be blank.")
	}
	if e.PlannerName == "" {
		ve.Add("planner_name", "Planner Name cannot be blank.")
	}
	validateEmailField(ve, "planner_email", "Planner Email", e.PlannerEmail, true)
	if strings.TrimSpace(in.EventDate) == "" {
		ve.Add("event_date", "Event Date cannot be blank.")
	} else if t, err := parseDateTime(strings.TrimSpace(in.EventDate)); err != nil {
		ve.Add("event_date", "Event Date is not a valid datetime.")
	} else {
		e.EventDate = t
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < codeRetries; attempt++ {
		code, err := utils.NewEventCode()
		if err != nil {
			return nil, err
		}
		e.UniqueCode = code
		created, err := s.events.Create(ctx, e)
		if err == nil {
			return created, nil
		}
		if !repository.IsDuplicateKey(err) {
			return nil, err
		}
	}
	return nil, errors.New("could not generate a unique event code")
}

// GetByCode returns the event together with its guests and guest
// statistics.
func (s *EventService) GetByCode(ctx context.Context, code string) (*EventDetail, error) {
	e, err := s.events.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	guests, err := s.guests.ListByEvent(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	return &EventDetail{
		Event:      *e,
		Guests:     guests,
		Statistics: ComputeGuestStatistics(guests),
	}, nil
}

// Update applies the non-nil fields to the event addressed by code and
// re-validates the result. The public code itself is immutable.
func (s *EventService) Update(ctx context.Context, code string, in EventUpdateInput) (*model.Event, error) {
	e, err := s.events.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	ve := ValidationErrors{}
	if in.Title != nil {
		e.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		e.Description = trimPtr(in.Description)
	}
	if in.Location != nil {
		e.Location = strings.TrimSpace(*in.Location)
	}
	if in.PlannerName != nil {
		e.PlannerName = strings.TrimSpace(*in.PlannerName)
	}
	if in.PlannerEmail != nil {
		e.PlannerEmail = strings.TrimSpace(*in.PlannerEmail)
	}
	if in.PlannerPhone != nil {
		e.PlannerPhone = trimPtr(in.PlannerPhone)
	}
	if in.EventDate != nil {
		if t, err := parseDateTime(strings.TrimSpace(*in.EventDate)); err != nil {
			ve.Add("event_date", "Event Date is not a valid datetime.")
		} else {
			e.EventDate = t
		}
	}
	if e.Title == "" {
		ve.Add("title", "Title cannot be blank.")
	}
	if e.Location == "" {
		ve.Add("location", "Location cannot be blank.")
	}
	if e.PlannerName == "" {
		ve.Add("planner_name", "Planner Name cannot be blank.")
	}
	validateEmailField(ve, "planner_email", "Planner Email", e.PlannerEmail, true)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	return s.events.Update(ctx, e)
}

// Delete removes the event addressed by code; guests, contributions,
// invitations and ride records cascade at the storage level.
func (s *EventService) Delete(ctx context.Context, code string) error {
	e, err := s.events.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	return s.events.Delete(ctx, e.ID)
}

func validateEmailField(ve ValidationErrors, field, label, value string, required bool) {
	if value == "" {
		if required {
			ve.Add(field, label+" cannot be blank.")
		}
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		ve.Add(field, label+" is not a valid email address.")
	}
}
