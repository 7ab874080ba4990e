package rest

import (
	"context"
	"net/url"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

// UserByEmail looks up a user by email. Missing users surface as
// api.ErrNotFound.
func (c *Client) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	query := url.Values{"email": {domain.NormalizeEmail(email)}}
	var user domain.User
	if err := c.getJSON(ctx, "/user/getUserByEmail", query, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// UpdateUser applies a partial profile update and returns the stored user.
func (c *Client) UpdateUser(ctx context.Context, email string, update domain.UserUpdate) (domain.User, error) {
	body := struct {
		Email string `json:"email"`
		domain.UserUpdate
	}{Email: domain.NormalizeEmail(email), UserUpdate: update}

	var user domain.User
	if err := c.putJSON(ctx, "/user/update", body, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Match ranks users by relevance to the query. The backend's ranking order
// is preserved as-is. Any failure is reported as a match service outage so
// callers can degrade suggestions instead of failing the dashboard.
func (c *Client) Match(ctx context.Context, query string) ([]domain.User, error) {
	if query == "" {
		return nil, apperrors.New(apperrors.CodeMatchEmptyQuery, "match query is empty")
	}
	body := struct {
		Query string `json:"query"`
	}{Query: query}

	var users []domain.User
	if err := c.postJSON(ctx, "/user/match", body, &users); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMatchServiceUnavailable, "match service call failed", err)
	}
	return users, nil
}
