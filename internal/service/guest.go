package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/feierapp/feierapp-api/internal/model"
	"github.com/feierapp/feierapp-api/internal/repository"
	"github.com/feierapp/feierapp-api/internal/utils"
)

const tokenRetries = 5

// GuestService owns the guest directory: listing per event, creation
// with token issuance, the tokenized guest view and RSVP updates.
type GuestService struct {
	guests      *repository.GuestRepo
	events      *repository.EventRepo
	invitations *repository.InvitationRepo
	contribs    *repository.ContributionRepo
	log         zerolog.Logger
}

// NewGuestService wires a GuestService to its repositories.
func NewGuestService(guests *repository.GuestRepo, events *repository.EventRepo, invitations *repository.InvitationRepo, contribs *repository.ContributionRepo, log zerolog.Logger) *GuestService {
	return &GuestService{guests: guests, events: events, invitations: invitations, contribs: contribs, log: log}
}

// GuestInput carries client-supplied fields for creating a guest.
type GuestInput struct {
	Name                string  `json:"name"`
	Email               *string `json:"email"`
	Phone               *string `json:"phone"`
	Status              string  `json:"status"`
	ChildrenCount       *int    `json:"children_count"`
	DietaryRestrictions *string `json:"dietary_restrictions"`
	SpecialNotes        *string `json:"special_notes"`
}

// GuestUpdateInput carries partial updates; nil fields are untouched.
// The token and event binding are immutable.
type GuestUpdateInput struct {
	Name                *string `json:"name"`
	Email               *string `json:"email"`
	Phone               *string `json:"phone"`
	Status              *string `json:"status"`
	ChildrenCount       *int    `json:"children_count"`
	DietaryRestrictions *string `json:"dietary_restrictions"`
	SpecialNotes        *string `json:"special_notes"`
}

// GuestDetail is the tokenized guest view: the guest plus the event it
// belongs to, the guest's contributions and the invitation lifecycle.
type GuestDetail struct {
	model.Guest
	Event         *model.Event         `json:"event"`
	Contributions []model.Contribution `json:"contributions"`
	Invitation    *model.Invitation    `json:"invitation,omitempty"`
}

// ListByEventCode returns the guest list of the event addressed by code.
func (s *GuestService) ListByEventCode(ctx context.Context, code string) ([]model.Guest, error) {
	e, err := s.events.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.guests.ListByEvent(ctx, e.ID)
}

// Create validates the input, issues a fresh secret token and stores
// the guest under the event addressed by code. A token collision
// triggers regeneration; an invitation row is created alongside.
func (s *GuestService) Create(ctx context.Context, code string, in GuestInput) (*model.Guest, error) {
	e, err := s.events.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	g := &model.Guest{
		EventID:             e.ID,
		Name:                strings.TrimSpace(in.Name),
		Email:               trimPtr(in.Email),
		Phone:               trimPtr(in.Phone),
		Status:              strings.TrimSpace(in.Status),
		DietaryRestrictions: trimPtr(in.DietaryRestrictions),
		SpecialNotes:        trimPtr(in.SpecialNotes),
	}
	if g.Status == "" {
		g.Status = model.GuestStatusPending
	}
	if in.ChildrenCount != nil {
		g.ChildrenCount = *in.ChildrenCount
	}

	ve := ValidationErrors{}
	if g.Name == "" {
		ve.Add("name", "Name cannot be blank.")
	}
	if g.Email != nil {
		validateEmailField(ve, "email", "Email", *g.Email, false)
	}
	validateGuestStatus(ve, g.Status)
	if g.ChildrenCount < 0 {
		ve.Add("children_count", "Children Count must be no less than 0.")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	created, err := s.createWithToken(ctx, g)
	if err != nil {
		return nil, err
	}
	if err := s.invitations.Create(ctx, e.ID, created.ID); err != nil {
		// The guest exists either way; the lifecycle row is best effort.
		s.log.Error().Err(err).Uint64("guest_id", created.ID).Msg("create invitation failed")
	}
	return created, nil
}

func (s *GuestService) createWithToken(ctx context.Context, g *model.Guest) (*model.Guest, error) {
	for attempt := 0; attempt < tokenRetries; attempt++ {
		token, err := utils.NewGuestToken()
		if err != nil {
			return nil, err
		}
		g.UniqueToken = token
		created, err := s.guests.Create(ctx, g)
		if err == nil {
			return created, nil
		}
		if !repository.IsDuplicateKey(err) {
			return nil, err
		}
	}
	return nil, errors.New("could not generate a unique guest token")
}

// GetByToken returns the guest view for a presented token and stamps
// the invitation as opened on first sight.
func (s *GuestService) GetByToken(ctx context.Context, token string) (*GuestDetail, error) {
	g, err := s.guests.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.invitations.MarkOpened(ctx, g.ID); err != nil {
		s.log.Error().Err(err).Uint64("guest_id", g.ID).Msg("mark invitation opened failed")
	}
	return s.detail(ctx, g)
}

func (s *GuestService) detail(ctx context.Context, g *model.Guest) (*GuestDetail, error) {
	e, err := s.events.GetByID(ctx, g.EventID)
	if err != nil {
		return nil, err
	}
	contribs, err := s.contribs.ListByGuest(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	inv, err := s.invitations.GetByGuest(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	return &GuestDetail{
		Guest:         *g,
		Event:         e,
		Contributions: contribs,
		Invitation:    inv,
	}, nil
}

// Update applies the non-nil fields to the guest addressed by token and
// stamps the invitation as responded.
func (s *GuestService) Update(ctx context.Context, token string, in GuestUpdateInput) (*model.Guest, error) {
	g, err := s.guests.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		g.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		g.Email = trimPtr(in.Email)
	}
	if in.Phone != nil {
		g.Phone = trimPtr(in.Phone)
	}
	if in.Status != nil {
		g.Status = strings.TrimSpace(*in.Status)
	}
	if in.ChildrenCount != nil {
		g.ChildrenCount = *in.ChildrenCount
	}
	if in.DietaryRestrictions != nil {
		g.DietaryRestrictions = trimPtr(in.DietaryRestrictions)
	}
	if in.SpecialNotes != nil {
		g.SpecialNotes = trimPtr(in.SpecialNotes)
	}

	ve := ValidationErrors{}
	if g.Name == "" {
		ve.Add("name", "Name cannot be blank.")
	}
	if g.Email != nil {
		validateEmailField(ve, "email", "Email", *g.Email, false)
	}
	validateGuestStatus(ve, g.Status)
	if g.ChildrenCount < 0 {
		ve.Add("children_count", "Children Count must be no less than 0.")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	updated, err := s.guests.Update(ctx, g)
	if err != nil {
		return nil, err
	}
	if err := s.invitations.MarkResponded(ctx, g.ID); err != nil {
		s.log.Error().Err(err).Uint64("guest_id", g.ID).Msg("mark invitation responded failed")
	}
	return updated, nil
}

func validateGuestStatus(ve ValidationErrors, status string) {
	switch status {
	case model.GuestStatusPending, model.GuestStatusAccepted, model.GuestStatusDeclined:
	default:
		ve.Add("status", "Status is invalid.")
	}
}
