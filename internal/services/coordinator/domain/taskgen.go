package domain

// Subtask is one step of an AI-generated task breakdown.
type Subtask struct {
	StepTitle     string `json:"stepTitle"`
	Description   string `json:"description"`
	EstimatedTime string `json:"estimatedTime"`
}

// GoalsFromSubtasks converts a task breakdown into unassigned project goals,
// preserving the generated step order.
func GoalsFromSubtasks(subtasks []Subtask) []Goal {
	goals := make([]Goal, 0, len(subtasks))
	for _, st := range subtasks {
		goals = append(goals, Goal{
			Title:         st.StepTitle,
			Description:   st.Description,
			Status:        GoalStatusNotStarted,
			AssignedTo:    nil,
			EstimatedTime: st.EstimatedTime,
		})
	}
	return goals
}
