package app

import (
	"context"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

// AssignGoal assigns the goal at index to email and persists the project.
// Assigning someone outside the roster is allowed; the invitation may still
// be in flight. It is logged so the soft state is visible.
func (c *Coordinator) AssignGoal(ctx context.Context, projectID string, index int, email string) (domain.Project, error) {
	project, err := c.backend.Project(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	if !project.HasCollaborator(email) {
		c.logger.Printf("[coordinator] assigning goal %d of %s to %s, who is not on the roster yet", index, projectID, email)
	}
	updated, err := domain.AssignGoal(project, index, email)
	if err != nil {
		return domain.Project{}, err
	}
	return c.backend.UpdateProject(ctx, updated)
}

// UnassignGoal clears the assignee of the goal at index and persists the
// project.
func (c *Coordinator) UnassignGoal(ctx context.Context, projectID string, index int) (domain.Project, error) {
	project, err := c.backend.Project(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	updated, err := domain.UnassignGoal(project, index)
	if err != nil {
		return domain.Project{}, err
	}
	return c.backend.UpdateProject(ctx, updated)
}

// SetGoalStatus moves the goal at index to status and persists the project.
func (c *Coordinator) SetGoalStatus(ctx context.Context, projectID string, index int, status domain.GoalStatus) (domain.Project, error) {
	project, err := c.backend.Project(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	updated, err := domain.SetGoalStatus(project, index, status)
	if err != nil {
		return domain.Project{}, err
	}
	return c.backend.UpdateProject(ctx, updated)
}

// SuggestForGoal ranks candidates for one goal's text, excluding the
// current roster. Used when the owner looks for help on a specific goal.
func (c *Coordinator) SuggestForGoal(ctx context.Context, projectID string, index int, requester string) ([]domain.User, error) {
	project, err := c.backend.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(project.Goals) {
		return nil, apperrors.New(apperrors.CodeProjectGoalIndexOutOfRange, "goal index out of range")
	}
	query := domain.MatchQueryForGoal(project.Goals[index])
	if query == "" {
		return nil, nil
	}
	return c.ExternalCandidates(ctx, requester, query, project.CollaboratorEmails())
}
