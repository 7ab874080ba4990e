package app

import (
	"context"
	"errors"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/services/coordinator/api"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
	"github.com/collabhub/coordinator/internal/services/coordinator/storage"
)

// SearchByEmail looks up a user by email. A missing user is a valid outcome
// and returns nil without error.
func (c *Coordinator) SearchByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.New(apperrors.CodeUserEmptyEmail, "email is required")
	}
	user, err := c.backend.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update and returns the stored user.
func (c *Coordinator) UpdateProfile(ctx context.Context, email string, update domain.UserUpdate) (domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.User{}, apperrors.New(apperrors.CodeUserEmptyEmail, "email is required")
	}
	return c.backend.UpdateUser(ctx, email, update)
}

// InternalCandidates returns the project's own roster in insertion order.
// No network call: the roster travels with the project.
func (c *Coordinator) InternalCandidates(project domain.Project) []domain.Collaborator {
	return project.Collaborators
}

// OrganizationMembers returns organization teammates of email in roster
// order, deduplicated, never including email itself. Reads degrade to the
// last snapshot when the backend is unreachable.
func (c *Coordinator) OrganizationMembers(ctx context.Context, email string) ([]string, error) {
	organizations, err := c.Organizations(ctx, email)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var candidates []string
	for _, org := range organizations {
		for _, member := range org.MembersExcluding(email) {
			key := domain.NormalizeEmail(member)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			candidates = append(candidates, member)
		}
	}
	return candidates, nil
}

// ExternalCandidates ranks open collaborators for query, excluding email
// itself and every known email. Exclusion applies after ranking, so stale
// remote results can never leak a known collaborator back in.
func (c *Coordinator) ExternalCandidates(ctx context.Context, email, query string, known []string) ([]domain.User, error) {
	matches, err := c.backend.Match(ctx, query)
	if err != nil {
		return nil, err
	}
	excluded := append([]string{email}, known...)
	return TopN(ExcludeKnown(matches, excluded), SuggestionLimit), nil
}

// SuggestCollaborators builds the dashboard suggestion list for email: the
// profile description (or joined skills) is the match query, the user and
// their existing project collaborators are excluded, and the top ranked
// candidates win. Every failure degrades to an empty list with a logged
// warning; the dashboard renders without suggestions rather than erroring.
func (c *Coordinator) SuggestCollaborators(ctx context.Context, email string) []domain.User {
	ctx, span := c.tracer.Start(ctx, "coordinator.SuggestCollaborators")
	defer span.End()

	user, err := c.SearchByEmail(ctx, email)
	if err != nil {
		c.logger.Printf("[coordinator] suggestion lookup for %s failed: %v", email, err)
		return nil
	}
	if user == nil {
		c.logger.Printf("[coordinator] suggestion lookup for %s: no such user", email)
		return nil
	}

	query := domain.MatchQueryForUser(*user)
	if query == "" {
		return nil
	}

	known := c.knownCollaborators(ctx, email)
	suggestions, err := c.ExternalCandidates(ctx, email, query, known)
	if err != nil {
		c.logger.Printf("[coordinator] match for %s failed: %v", email, err)
		return nil
	}
	return suggestions
}

// knownCollaborators collects every email already collaborating with the
// user across their projects. A listing failure returns what was gathered
// so far; the exclusion set shrinks but suggestions still render.
func (c *Coordinator) knownCollaborators(ctx context.Context, email string) []string {
	projects, err := c.Projects(ctx, email)
	if err != nil {
		c.logger.Printf("[coordinator] project listing for %s failed: %v", email, err)
		return nil
	}
	seen := make(map[string]struct{})
	var known []string
	for _, project := range projects {
		for _, collaborator := range project.CollaboratorEmails() {
			key := domain.NormalizeEmail(collaborator)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			known = append(known, collaborator)
		}
	}
	return known
}

// Projects lists the projects email belongs to, snapshot-backed.
func (c *Coordinator) Projects(ctx context.Context, email string) ([]domain.Project, error) {
	email = domain.NormalizeEmail(email)
	return readThroughCache(ctx, c, storage.KindProjects, email, func(ctx context.Context) ([]domain.Project, error) {
		return c.backend.ProjectsByMember(ctx, email)
	})
}

// Project fetches a single project by id.
func (c *Coordinator) Project(ctx context.Context, id string) (domain.Project, error) {
	return c.backend.Project(ctx, id)
}
