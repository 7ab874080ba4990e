package domain

import (
	"encoding/json"
	"strings"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
)

// InviteStatus represents the lifecycle status of an invitation.
type InviteStatus int

const (
	// InviteStatusUnspecified represents an invalid invitation status.
	InviteStatusUnspecified InviteStatus = iota
	// InviteStatusPending indicates an invitation awaiting a response.
	InviteStatusPending
	// InviteStatusAccepted indicates the invitee joined the project.
	InviteStatusAccepted
	// InviteStatusDeclined indicates the invitee turned the invitation down.
	InviteStatusDeclined
)

// Label returns the wire label for an invitation status.
func (s InviteStatus) Label() string {
	switch s {
	case InviteStatusPending:
		return "pending"
	case InviteStatusAccepted:
		return "accepted"
	case InviteStatusDeclined:
		return "declined"
	default:
		return "unspecified"
	}
}

// InviteStatusFromLabel converts a wire label to an InviteStatus value.
func InviteStatusFromLabel(label string) InviteStatus {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "pending":
		return InviteStatusPending
	case "accepted":
		return InviteStatusAccepted
	case "declined":
		return InviteStatusDeclined
	default:
		return InviteStatusUnspecified
	}
}

// MarshalJSON encodes the status as its wire label.
func (s InviteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Label())
}

// UnmarshalJSON decodes a status from its wire label.
func (s *InviteStatus) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*s = InviteStatusFromLabel(label)
	return nil
}

// Terminal reports whether the status admits no further transition.
func (s InviteStatus) Terminal() bool {
	return s == InviteStatusAccepted || s == InviteStatusDeclined
}

// CanTransitionTo reports whether the status may move to target. The only
// valid transitions are pending to accepted and pending to declined.
func (s InviteStatus) CanTransitionTo(target InviteStatus) bool {
	if s != InviteStatusPending {
		return false
	}
	return target == InviteStatusAccepted || target == InviteStatusDeclined
}

// Invitation is a proposal for inviteeEmail to join the referenced project.
// Project and users are referenced by lookup key, not owned.
type Invitation struct {
	ID           string       `json:"id"`
	ProjectID    string       `json:"projectId"`
	InviterEmail string       `json:"inviterEmail"`
	InviteeEmail string       `json:"inviteeEmail"`
	Status       InviteStatus `json:"status"`
}

// CreateInvitationInput describes the metadata needed to create an invitation.
type CreateInvitationInput struct {
	ProjectID    string
	InviterEmail string
	InviteeEmail string
}

// NormalizeCreateInvitationInput trims and validates invitation input.
func NormalizeCreateInvitationInput(input CreateInvitationInput) (CreateInvitationInput, error) {
	input.ProjectID = strings.TrimSpace(input.ProjectID)
	if input.ProjectID == "" {
		return CreateInvitationInput{}, apperrors.New(apperrors.CodeInviteEmptyProjectID, "project id is required")
	}
	input.InviterEmail = NormalizeEmail(input.InviterEmail)
	if input.InviterEmail == "" {
		return CreateInvitationInput{}, apperrors.New(apperrors.CodeInviteEmptyInviterEmail, "inviter email is required")
	}
	input.InviteeEmail = NormalizeEmail(input.InviteeEmail)
	if input.InviteeEmail == "" {
		return CreateInvitationInput{}, apperrors.New(apperrors.CodeInviteEmptyInviteeEmail, "invitee email is required")
	}
	if input.InviterEmail == input.InviteeEmail {
		return CreateInvitationInput{}, apperrors.New(apperrors.CodeInviteSelfInvite, "inviter and invitee must differ")
	}
	return input, nil
}
