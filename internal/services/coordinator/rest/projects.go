package rest

import (
	"context"
	"net/url"

	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

// ProjectsByMember lists every project where email is on the roster.
func (c *Client) ProjectsByMember(ctx context.Context, email string) ([]domain.Project, error) {
	query := url.Values{"email": {domain.NormalizeEmail(email)}}
	var payload struct {
		Projects []domain.Project `json:"projects"`
	}
	if err := c.getJSON(ctx, "/projects/list", query, &payload); err != nil {
		return nil, err
	}
	return payload.Projects, nil
}

// Project fetches a single project by id.
func (c *Client) Project(ctx context.Context, id string) (domain.Project, error) {
	var project domain.Project
	if err := c.getJSON(ctx, "/projects/"+url.PathEscape(id), nil, &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// UpdateProject replaces the project's mutable fields and returns the stored
// version. The edit body carries the roster as a flat email list; the
// backend owns role assignment and treats the payload as the new state.
func (c *Client) UpdateProject(ctx context.Context, project domain.Project) (domain.Project, error) {
	body := struct {
		Name               string        `json:"projectName"`
		Description        string        `json:"description"`
		Goals              []domain.Goal `json:"goals"`
		CollaboratorEmails []string      `json:"collaboratorEmails"`
	}{
		Name:               project.Name,
		Description:        project.Description,
		Goals:              project.Goals,
		CollaboratorEmails: project.CollaboratorEmails(),
	}

	var updated domain.Project
	if err := c.putJSON(ctx, "/projects/"+url.PathEscape(project.ID), body, &updated); err != nil {
		return domain.Project{}, err
	}
	return updated, nil
}
