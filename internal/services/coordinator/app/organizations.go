package app

import (
	"context"
	"strings"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
	"github.com/collabhub/coordinator/internal/services/coordinator/storage"
)

// Organizations lists the organizations email belongs to, snapshot-backed.
func (c *Coordinator) Organizations(ctx context.Context, email string) ([]domain.Organization, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.New(apperrors.CodeUserEmptyEmail, "email is required")
	}
	return readThroughCache(ctx, c, storage.KindOrganizations, email, func(ctx context.Context) ([]domain.Organization, error) {
		return c.backend.OrganizationsByMember(ctx, email)
	})
}

// CreateOrganization creates an organization with email as its first member.
func (c *Coordinator) CreateOrganization(ctx context.Context, name, email string) (domain.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Organization{}, apperrors.New(apperrors.CodeOrganizationEmptyName, "organization name is required")
	}
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Organization{}, apperrors.New(apperrors.CodeUserEmptyEmail, "email is required")
	}
	return c.backend.CreateOrganization(ctx, name, email)
}

// JoinOrganization adds email to the organization matching inviteCode.
func (c *Coordinator) JoinOrganization(ctx context.Context, inviteCode, email string) (domain.Organization, error) {
	inviteCode = strings.TrimSpace(inviteCode)
	if inviteCode == "" {
		return domain.Organization{}, apperrors.New(apperrors.CodeOrganizationEmptyInviteCode, "invite code is required")
	}
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Organization{}, apperrors.New(apperrors.CodeUserEmptyEmail, "email is required")
	}
	return c.backend.JoinOrganization(ctx, inviteCode, email)
}
