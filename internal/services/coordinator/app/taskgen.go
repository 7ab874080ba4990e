package app

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

// PlanTask decomposes a free-text task into unassigned goals without
// persisting anything. The generated step order is preserved.
func (c *Coordinator) PlanTask(ctx context.Context, task string) ([]domain.Goal, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return nil, apperrors.New(apperrors.CodeTaskGenEmptyTask, "task description is required")
	}
	subtasks, err := c.backend.GenerateSubtasks(ctx, task)
	if err != nil {
		return nil, err
	}
	return domain.GoalsFromSubtasks(subtasks), nil
}

// GenerateGoals decomposes task and appends the resulting goals to the
// project. An AI chat notice announces the new goals; a failed notice is
// logged but does not fail the flow, since the goals are already persisted.
func (c *Coordinator) GenerateGoals(ctx context.Context, projectID, task string) (domain.Project, error) {
	ctx, span := c.tracer.Start(ctx, "coordinator.GenerateGoals")
	defer span.End()

	goals, err := c.PlanTask(ctx, task)
	if err != nil {
		return domain.Project{}, err
	}

	project, err := c.backend.Project(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	project.Goals = append(append([]domain.Goal(nil), project.Goals...), goals...)

	updated, err := c.backend.UpdateProject(ctx, project)
	if err != nil {
		return domain.Project{}, err
	}

	notice := fmt.Sprintf("Added %d generated goals for: %s", len(goals), task)
	if _, err := c.backend.Post(ctx, projectID, domain.AISender, notice); err != nil {
		c.logger.Printf("[coordinator] chat notice for %s failed: %v", projectID, err)
	}
	return updated, nil
}
