package repository

import (
	"context"
	"database/sql"

	"github.com/feierapp/feierapp-api/internal/model"
)

// InvitationRepo tracks the delivery lifecycle of invite links.  The
// table is append-mostly: rows are created alongside guests and only
// the opened_at/responded_at columns are ever written afterwards.
type InvitationRepo struct {
	db *sql.DB
}

// NewInvitationRepo returns a new InvitationRepo bound to the given database.
func NewInvitationRepo(db *sql.DB) *InvitationRepo { return &InvitationRepo{db: db} }

// Create inserts an invitation row for a freshly added guest.
func (r *InvitationRepo) Create(ctx context.Context, eventID, guestID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invitations (event_id, guest_id) VALUES (?, ?)`, eventID, guestID)
	return err
}

// GetByGuest returns the invitation for a guest, or nil when the
// guest predates invitation tracking.
func (r *InvitationRepo) GetByGuest(ctx context.Context, guestID uint64) (*model.Invitation, error) {
	var inv model.Invitation
	var opened, responded sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, event_id, guest_id, sent_at, opened_at, responded_at FROM invitations WHERE guest_id = ?`,
		guestID,
	).Scan(&inv.ID, &inv.EventID, &inv.GuestID, &inv.SentAt, &opened, &responded)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if opened.Valid {
		inv.OpenedAt = &opened.Time
	}
	if responded.Valid {
		inv.RespondedAt = &responded.Time
	}
	return &inv, nil
}

// MarkOpened stamps opened_at the first time a guest views their
// invite.  Subsequent views are no-ops.
func (r *InvitationRepo) MarkOpened(ctx context.Context, guestID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET opened_at = UTC_TIMESTAMP() WHERE guest_id = ? AND opened_at IS NULL`, guestID)
	return err
}

// MarkResponded stamps responded_at the first time a guest updates
// their RSVP.  Subsequent updates are no-ops.
func (r *InvitationRepo) MarkResponded(ctx context.Context, guestID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET responded_at = UTC_TIMESTAMP() WHERE guest_id = ? AND responded_at IS NULL`, guestID)
	return err
}
