package service

import (
	"context"
	"strings"

	"github.com/feierapp/feierapp-api/internal/model"
	"github.com/feierapp/feierapp-api/internal/repository"
)

// ContributionService owns the potluck list: contributions are created
// and listed through the owning guest's token and addressed by id for
// updates and deletion.
type ContributionService struct {
	contribs *repository.ContributionRepo
	guests   *repository.GuestRepo
}

// NewContributionService wires a ContributionService to its repositories.
func NewContributionService(contribs *repository.ContributionRepo, guests *repository.GuestRepo) *ContributionService {
	return &ContributionService{contribs: contribs, guests: guests}
}

// ContributionInput carries client-supplied fields for creating a
// contribution.
type ContributionInput struct {
	Type     string  `json:"type"`
	Item     string  `json:"item"`
	Quantity *string `json:"quantity"`
	Notes    *string `json:"notes"`
}

// ContributionUpdateInput carries partial updates; nil fields are
// untouched.
type ContributionUpdateInput struct {
	Type     *string `json:"type"`
	Item     *string `json:"item"`
	Quantity *string `json:"quantity"`
	Notes    *string `json:"notes"`
}

// ListByToken returns the contributions of the guest presenting token,
// newest first.
func (s *ContributionService) ListByToken(ctx context.Context, token string) ([]model.Contribution, error) {
	g, err := s.guests.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.contribs.ListByGuest(ctx, g.ID)
}

// Create validates the input and stores a contribution for the guest
// presenting token.
func (s *ContributionService) Create(ctx context.Context, token string, in ContributionInput) (*model.Contribution, error) {
	g, err := s.guests.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	c := &model.Contribution{
		GuestID:  g.ID,
		EventID:  g.EventID,
		Type:     strings.TrimSpace(in.Type),
		Item:     strings.TrimSpace(in.Item),
		Quantity: trimPtr(in.Quantity),
		Notes:    trimPtr(in.Notes),
	}
	if c.Type == "" {
		c.Type = model.ContributionTypeOther
	}

	ve := ValidationErrors{}
	validateContributionType(ve, c.Type)
	if c.Item == "" {
		ve.Add("item", "Item cannot be blank.")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	return s.contribs.Create(ctx, c)
}

// Update applies the non-nil fields to the contribution addressed by id
// and re-validates the result. The guest and event bindings are
// immutable.
func (s *ContributionService) Update(ctx context.Context, id uint64, in ContributionUpdateInput) (*model.Contribution, error) {
	c, err := s.contribs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Type != nil {
		c.Type = strings.TrimSpace(*in.Type)
	}
	if in.Item != nil {
		c.Item = strings.TrimSpace(*in.Item)
	}
	if in.Quantity != nil {
		c.Quantity = trimPtr(in.Quantity)
	}
	if in.Notes != nil {
		c.Notes = trimPtr(in.Notes)
	}

	ve := ValidationErrors{}
	validateContributionType(ve, c.Type)
	if c.Item == "" {
		ve.Add("item", "Item cannot be blank.")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	return s.contribs.Update(ctx, c)
}

// Delete removes the contribution addressed by id.
func (s *ContributionService) Delete(ctx context.Context, id uint64) error {
	return s.contribs.Delete(ctx, id)
}

func validateContributionType(ve ValidationErrors, typ string) {
	switch typ {
	case model.ContributionTypeFood, model.ContributionTypeDrink, model.ContributionTypeOther:
	default:
		ve.Add("type", "Type is invalid.")
	}
}
