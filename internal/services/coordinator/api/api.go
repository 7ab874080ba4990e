// Package api defines the contracts the coordinator consumes from the
// remote CollabHub backend. The rest package provides the HTTP
// implementation; testkit/coordfakes provides an in-memory one.
package api

import (
	"context"
	"errors"

	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

// ErrNotFound indicates a requested record is missing. Lookup helpers that
// treat a miss as a valid outcome translate it to a nil result instead of
// propagating it.
var ErrNotFound = errors.New("record not found")

// UserDirectory exposes user lookup and profile mutation.
type UserDirectory interface {
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateUser(ctx context.Context, email string, update domain.UserUpdate) (domain.User, error)
}

// Matchmaker ranks candidate users by textual relevance to a query. The
// ranking order of the returned slice is meaningful and must be preserved
// by callers.
type Matchmaker interface {
	Match(ctx context.Context, query string) ([]domain.User, error)
}

// ProjectDirectory exposes project listing and mutation.
type ProjectDirectory interface {
	ProjectsByMember(ctx context.Context, email string) ([]domain.Project, error)
	Project(ctx context.Context, id string) (domain.Project, error)
	UpdateProject(ctx context.Context, project domain.Project) (domain.Project, error)
}

// InviteService exposes the invitation lifecycle. SetInviteStatus is a
// single remote check-and-set: the backend rejects transitions out of a
// terminal status atomically, so two racing accepts resolve to exactly one
// winner without a client-side race window.
type InviteService interface {
	CreateInvite(ctx context.Context, input domain.CreateInvitationInput) (domain.Invitation, error)
	InvitesByInvitee(ctx context.Context, email string) ([]domain.Invitation, error)
	SetInviteStatus(ctx context.Context, id string, status domain.InviteStatus) (domain.Invitation, error)
}

// OrganizationDirectory exposes organization rosters and membership.
type OrganizationDirectory interface {
	OrganizationsByMember(ctx context.Context, email string) ([]domain.Organization, error)
	Organization(ctx context.Context, id string) (domain.Organization, error)
	CreateOrganization(ctx context.Context, name, email string) (domain.Organization, error)
	JoinOrganization(ctx context.Context, inviteCode, email string) (domain.Organization, error)
}

// TaskGenerator decomposes a free-text task into ordered subtasks.
type TaskGenerator interface {
	GenerateSubtasks(ctx context.Context, task string) ([]domain.Subtask, error)
}

// ChatService exposes project chat history and posting.
type ChatService interface {
	Messages(ctx context.Context, projectID string, limit int) ([]domain.Message, error)
	Post(ctx context.Context, projectID, sender, content string) (domain.Message, error)
}

// Backend aggregates every contract the coordinator needs. Implementations
// may embed partial fakes in tests; production wiring uses the rest client
// for all of them.
type Backend interface {
	UserDirectory
	Matchmaker
	ProjectDirectory
	InviteService
	OrganizationDirectory
	TaskGenerator
	ChatService
}
