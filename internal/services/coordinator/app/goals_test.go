package app

import (
	"context"
	"testing"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
	"github.com/collabhub/coordinator/internal/testkit/coordfakes"
)

func seedProjectWithGoals(backend *coordfakes.Backend) domain.Project {
	project := domain.Project{
		ID:          "proj-1",
		Name:        "Study Group App",
		Description: "Match students into study groups",
		Collaborators: []domain.Collaborator{
			{Email: "owner@x.com", Role: domain.RoleOwner},
			{Email: "dev@x.com", Role: domain.RoleCollaborator},
		},
		Goals: []domain.Goal{
			{Title: "Design schema", Description: "Model users", Status: domain.GoalStatusNotStarted},
			{Title: "Build API", Description: "REST endpoints", Status: domain.GoalStatusInProgress},
		},
	}
	backend.AddProject(project)
	return project
}

func TestAssignGoalPersists(t *testing.T) {
	backend := coordfakes.NewBackend()
	seedProjectWithGoals(backend)
	coordinator := newTestCoordinator(t, backend)

	updated, err := coordinator.AssignGoal(context.Background(), "proj-1", 0, "dev@x.com")
	if err != nil {
		t.Fatalf("assign goal: %v", err)
	}
	if updated.Goals[0].AssignedTo == nil || *updated.Goals[0].AssignedTo != "dev@x.com" {
		t.Fatalf("unexpected assignee: %+v", updated.Goals[0])
	}

	stored, _ := backend.Project(context.Background(), "proj-1")
	if stored.Goals[0].AssignedTo == nil {
		t.Fatal("expected assignment persisted")
	}
}

func TestAssignGoalAllowsNonRosterEmail(t *testing.T) {
	backend := coordfakes.NewBackend()
	seedProjectWithGoals(backend)
	coordinator := newTestCoordinator(t, backend)

	// Invitation may still be pending; assignment is soft.
	updated, err := coordinator.AssignGoal(context.Background(), "proj-1", 1, "invited@x.com")
	if err != nil {
		t.Fatalf("assign goal: %v", err)
	}
	if *updated.Goals[1].AssignedTo != "invited@x.com" {
		t.Fatalf("unexpected assignee: %+v", updated.Goals[1])
	}
}

func TestUnassignGoalPersists(t *testing.T) {
	backend := coordfakes.NewBackend()
	project := seedProjectWithGoals(backend)
	assignee := "dev@x.com"
	project.Goals[0].AssignedTo = &assignee
	backend.AddProject(project)
	coordinator := newTestCoordinator(t, backend)

	updated, err := coordinator.UnassignGoal(context.Background(), "proj-1", 0)
	if err != nil {
		t.Fatalf("unassign goal: %v", err)
	}
	if updated.Goals[0].AssignedTo != nil {
		t.Fatalf("expected assignee cleared, got %+v", updated.Goals[0])
	}
}

func TestSetGoalStatusPersists(t *testing.T) {
	backend := coordfakes.NewBackend()
	seedProjectWithGoals(backend)
	coordinator := newTestCoordinator(t, backend)

	updated, err := coordinator.SetGoalStatus(context.Background(), "proj-1", 1, domain.GoalStatusCompleted)
	if err != nil {
		t.Fatalf("set goal status: %v", err)
	}
	if updated.Goals[1].Status != domain.GoalStatusCompleted {
		t.Fatalf("expected completed, got %v", updated.Goals[1].Status)
	}
}

func TestSetGoalStatusBadIndexWritesNothing(t *testing.T) {
	backend := coordfakes.NewBackend()
	seedProjectWithGoals(backend)
	coordinator := newTestCoordinator(t, backend)

	_, err := coordinator.SetGoalStatus(context.Background(), "proj-1", 9, domain.GoalStatusCompleted)
	if apperrors.CodeOf(err) != apperrors.CodeProjectGoalIndexOutOfRange {
		t.Fatalf("expected PROJECT_GOAL_INDEX_OUT_OF_RANGE, got %v", err)
	}
	if backend.UpdateProjectCalls != 0 {
		t.Fatalf("expected no project writes, got %d", backend.UpdateProjectCalls)
	}
}

func TestSuggestForGoal(t *testing.T) {
	backend := coordfakes.NewBackend()
	seedProjectWithGoals(backend)
	backend.MatchResults = []domain.User{
		{Email: "dev@x.com"},
		{Email: "fresh@x.com"},
	}
	coordinator := newTestCoordinator(t, backend)

	candidates, err := coordinator.SuggestForGoal(context.Background(), "proj-1", 0, "owner@x.com")
	if err != nil {
		t.Fatalf("suggest for goal: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Email != "fresh@x.com" {
		t.Fatalf("expected roster excluded, got %+v", candidates)
	}
}
