package rest

import (
	"context"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

// GenerateSubtasks asks the backend's AI endpoint to break a free-text task
// into ordered subtasks.
func (c *Client) GenerateSubtasks(ctx context.Context, task string) ([]domain.Subtask, error) {
	if task == "" {
		return nil, apperrors.New(apperrors.CodeTaskGenEmptyTask, "task description is empty")
	}
	body := struct {
		Task string `json:"task"`
	}{Task: task}

	var payload struct {
		Subtasks []domain.Subtask `json:"subtasks"`
	}
	if err := c.postJSON(ctx, "/openai/TaskGen", body, &payload); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTaskGenUnavailable, "task generation call failed", err)
	}
	return payload.Subtasks, nil
}
