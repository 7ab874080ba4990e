package domain

import (
	"errors"
	"testing"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
)

func TestInviteStatusTransitions(t *testing.T) {
	cases := []struct {
		from    InviteStatus
		to      InviteStatus
		allowed bool
	}{
		{InviteStatusPending, InviteStatusAccepted, true},
		{InviteStatusPending, InviteStatusDeclined, true},
		{InviteStatusPending, InviteStatusPending, false},
		{InviteStatusAccepted, InviteStatusDeclined, false},
		{InviteStatusAccepted, InviteStatusAccepted, false},
		{InviteStatusDeclined, InviteStatusAccepted, false},
		{InviteStatusUnspecified, InviteStatusAccepted, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from.Label(), tc.to.Label(), tc.allowed, got)
		}
	}
}

func TestInviteStatusTerminal(t *testing.T) {
	if InviteStatusPending.Terminal() {
		t.Fatal("pending must not be terminal")
	}
	if !InviteStatusAccepted.Terminal() || !InviteStatusDeclined.Terminal() {
		t.Fatal("accepted and declined must be terminal")
	}
}

func TestInviteStatusLabelsRoundTrip(t *testing.T) {
	for _, status := range []InviteStatus{InviteStatusPending, InviteStatusAccepted, InviteStatusDeclined} {
		if InviteStatusFromLabel(status.Label()) != status {
			t.Fatalf("round trip failed for %s", status.Label())
		}
	}
	if InviteStatusFromLabel(" PENDING ") != InviteStatusPending {
		t.Fatal("expected case-insensitive trimmed parsing")
	}
}

func TestNormalizeCreateInvitationInput(t *testing.T) {
	input, err := NormalizeCreateInvitationInput(CreateInvitationInput{
		ProjectID:    " proj-1 ",
		InviterEmail: " Owner@X.com ",
		InviteeEmail: "Bob@x.com",
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if input.ProjectID != "proj-1" || input.InviterEmail != "owner@x.com" || input.InviteeEmail != "bob@x.com" {
		t.Fatalf("unexpected normalized input: %+v", input)
	}
}

func TestNormalizeCreateInvitationInputErrors(t *testing.T) {
	cases := []struct {
		name  string
		input CreateInvitationInput
		code  apperrors.Code
	}{
		{"missing project", CreateInvitationInput{InviterEmail: "a@x.com", InviteeEmail: "b@x.com"}, apperrors.CodeInviteEmptyProjectID},
		{"missing inviter", CreateInvitationInput{ProjectID: "p", InviteeEmail: "b@x.com"}, apperrors.CodeInviteEmptyInviterEmail},
		{"missing invitee", CreateInvitationInput{ProjectID: "p", InviterEmail: "a@x.com"}, apperrors.CodeInviteEmptyInviteeEmail},
		{"self invite", CreateInvitationInput{ProjectID: "p", InviterEmail: "a@x.com", InviteeEmail: "A@x.com"}, apperrors.CodeInviteSelfInvite},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeCreateInvitationInput(tc.input)
			if !errors.Is(err, apperrors.New(tc.code, "")) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}
