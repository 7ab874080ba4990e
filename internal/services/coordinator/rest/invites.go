package rest

import (
	"context"
	"net/url"

	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

// CreateInvite records a new pending invitation.
func (c *Client) CreateInvite(ctx context.Context, input domain.CreateInvitationInput) (domain.Invitation, error) {
	body := struct {
		ProjectID    string `json:"projectId"`
		InviterEmail string `json:"inviterEmail"`
		InviteeEmail string `json:"inviteeEmail"`
	}{
		ProjectID:    input.ProjectID,
		InviterEmail: input.InviterEmail,
		InviteeEmail: input.InviteeEmail,
	}

	var invite domain.Invitation
	if err := c.postJSON(ctx, "/invites/invite", body, &invite); err != nil {
		return domain.Invitation{}, err
	}
	return invite, nil
}

// InvitesByInvitee lists every invitation addressed to email, any status.
func (c *Client) InvitesByInvitee(ctx context.Context, email string) ([]domain.Invitation, error) {
	query := url.Values{"inviteeEmail": {domain.NormalizeEmail(email)}}
	var invites []domain.Invitation
	if err := c.getJSON(ctx, "/invites/invitee", query, &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

// SetInviteStatus resolves an invitation. The backend enforces the
// transition check atomically and answers 409 when the invitation is no
// longer pending, which surfaces here as INVITE_INVALID_TRANSITION.
func (c *Client) SetInviteStatus(ctx context.Context, id string, status domain.InviteStatus) (domain.Invitation, error) {
	body := struct {
		Status domain.InviteStatus `json:"status"`
	}{Status: status}

	var invite domain.Invitation
	if err := c.putJSON(ctx, "/invites/"+url.PathEscape(id)+"/status", body, &invite); err != nil {
		return domain.Invitation{}, err
	}
	return invite, nil
}
