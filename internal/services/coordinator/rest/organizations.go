package rest

import (
	"context"
	"net/url"

	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

// OrganizationsByMember lists the organizations email belongs to.
func (c *Client) OrganizationsByMember(ctx context.Context, email string) ([]domain.Organization, error) {
	query := url.Values{"email": {domain.NormalizeEmail(email)}}
	var payload struct {
		Organizations []domain.Organization `json:"organizations"`
	}
	if err := c.getJSON(ctx, "/organizations/user", query, &payload); err != nil {
		return nil, err
	}
	return payload.Organizations, nil
}

// Organization fetches a single organization by id.
func (c *Client) Organization(ctx context.Context, id string) (domain.Organization, error) {
	var payload struct {
		Organization domain.Organization `json:"organization"`
	}
	if err := c.getJSON(ctx, "/organizations/"+url.PathEscape(id), nil, &payload); err != nil {
		return domain.Organization{}, err
	}
	return payload.Organization, nil
}

// CreateOrganization creates an organization with email as its first member.
func (c *Client) CreateOrganization(ctx context.Context, name, email string) (domain.Organization, error) {
	body := struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}{Name: name, Email: domain.NormalizeEmail(email)}

	var payload struct {
		Organization domain.Organization `json:"organization"`
	}
	if err := c.postJSON(ctx, "/organizations", body, &payload); err != nil {
		return domain.Organization{}, err
	}
	return payload.Organization, nil
}

// JoinOrganization adds email to the organization matching inviteCode.
func (c *Client) JoinOrganization(ctx context.Context, inviteCode, email string) (domain.Organization, error) {
	body := struct {
		InviteCode string `json:"inviteCode"`
		Email      string `json:"email"`
	}{InviteCode: inviteCode, Email: domain.NormalizeEmail(email)}

	var payload struct {
		Organization domain.Organization `json:"organization"`
	}
	if err := c.postJSON(ctx, "/organizations", body, &payload); err != nil {
		return domain.Organization{}, err
	}
	return payload.Organization, nil
}
