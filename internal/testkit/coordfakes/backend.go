// Package coordfakes provides an in-memory backend for coordinator tests.
package coordfakes

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/services/coordinator/api"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

// Backend is a scriptable in-memory implementation of api.Backend. All state
// mutation is mutex-serialized, so the invite status change behaves as the
// same atomic check-and-set the real backend provides.
type Backend struct {
	mu sync.Mutex

	Users         map[string]domain.User
	Projects      map[string]domain.Project
	Invites       map[string]domain.Invitation
	Organizations map[string]domain.Organization
	Chat          map[string][]domain.Message

	// MatchResults is returned by Match in order. MatchFunc, when set,
	// overrides it entirely.
	MatchResults []domain.User
	MatchFunc    func(ctx context.Context, query string) ([]domain.User, error)

	// Subtasks is returned by GenerateSubtasks.
	Subtasks []domain.Subtask

	// Failure toggles. A set error is returned by the matching operation.
	// FailNextUpdateProjects fails that many upcoming UpdateProject calls
	// with UpdateProjectErr, then lets the rest through.
	UserErr                error
	UpdateUserErr          error
	MatchErr               error
	ProjectsErr            error
	ProjectErr             error
	UpdateProjectErr       error
	FailNextUpdateProjects int
	InvitesErr             error
	CreateInviteErr        error
	SetInviteStatusErr     error
	OrganizationsErr       error
	TaskGenErr             error
	MessagesErr            error
	PostErr                error

	// Call counters for assertions.
	UpdateProjectCalls int
	MatchCalls         int

	// Now drives message timestamps.
	Now func() time.Time

	nextID int
}

var _ api.Backend = (*Backend)(nil)

// NewBackend creates an empty fake backend.
func NewBackend() *Backend {
	return &Backend{
		Users:         make(map[string]domain.User),
		Projects:      make(map[string]domain.Project),
		Invites:       make(map[string]domain.Invitation),
		Organizations: make(map[string]domain.Organization),
		Chat:          make(map[string][]domain.Message),
		Now:           time.Now,
	}
}

// SetMessagesErr toggles the Messages failure under the lock, safe to call
// while a poller is running.
func (b *Backend) SetMessagesErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.MessagesErr = err
}

func (b *Backend) newID(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s-%d", prefix, b.nextID)
}

// AddUser stores a user keyed by normalized email.
func (b *Backend) AddUser(user domain.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Users[domain.NormalizeEmail(user.Email)] = user
}

// AddProject stores a project keyed by id.
func (b *Backend) AddProject(project domain.Project) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Projects[project.ID] = project
}

// AddInvite stores an invitation keyed by id.
func (b *Backend) AddInvite(invite domain.Invitation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Invites[invite.ID] = invite
}

// AddOrganization stores an organization keyed by id.
func (b *Backend) AddOrganization(org domain.Organization) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Organizations[org.ID] = org
}

func (b *Backend) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.UserErr != nil {
		return domain.User{}, b.UserErr
	}
	user, ok := b.Users[domain.NormalizeEmail(email)]
	if !ok {
		return domain.User{}, api.ErrNotFound
	}
	return user, nil
}

func (b *Backend) UpdateUser(ctx context.Context, email string, update domain.UserUpdate) (domain.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.UpdateUserErr != nil {
		return domain.User{}, b.UpdateUserErr
	}
	key := domain.NormalizeEmail(email)
	user, ok := b.Users[key]
	if !ok {
		return domain.User{}, api.ErrNotFound
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Description != nil {
		user.Description = *update.Description
	}
	if update.Skills != nil {
		user.Skills = update.Skills
	}
	if update.OpenToCollaboration != nil {
		user.OpenToCollaboration = *update.OpenToCollaboration
	}
	b.Users[key] = user
	return user, nil
}

func (b *Backend) Match(ctx context.Context, query string) ([]domain.User, error) {
	b.mu.Lock()
	b.MatchCalls++
	matchFunc := b.MatchFunc
	matchErr := b.MatchErr
	results := append([]domain.User(nil), b.MatchResults...)
	b.mu.Unlock()

	if matchFunc != nil {
		return matchFunc(ctx, query)
	}
	if matchErr != nil {
		return nil, matchErr
	}
	return results, nil
}

func (b *Backend) ProjectsByMember(ctx context.Context, email string) ([]domain.Project, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ProjectsErr != nil {
		return nil, b.ProjectsErr
	}
	var projects []domain.Project
	for _, project := range b.Projects {
		if project.HasCollaborator(email) {
			projects = append(projects, project)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

func (b *Backend) Project(ctx context.Context, id string) (domain.Project, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ProjectErr != nil {
		return domain.Project{}, b.ProjectErr
	}
	project, ok := b.Projects[id]
	if !ok {
		return domain.Project{}, api.ErrNotFound
	}
	return project, nil
}

func (b *Backend) UpdateProject(ctx context.Context, project domain.Project) (domain.Project, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.UpdateProjectCalls++
	if b.FailNextUpdateProjects > 0 {
		b.FailNextUpdateProjects--
		if b.UpdateProjectErr != nil {
			return domain.Project{}, b.UpdateProjectErr
		}
		return domain.Project{}, apperrors.New(apperrors.CodeNetworkUnavailable, "update failed")
	}
	if b.UpdateProjectErr != nil {
		return domain.Project{}, b.UpdateProjectErr
	}
	if _, ok := b.Projects[project.ID]; !ok {
		return domain.Project{}, api.ErrNotFound
	}
	b.Projects[project.ID] = project
	return project, nil
}

func (b *Backend) CreateInvite(ctx context.Context, input domain.CreateInvitationInput) (domain.Invitation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.CreateInviteErr != nil {
		return domain.Invitation{}, b.CreateInviteErr
	}
	invite := domain.Invitation{
		ID:           b.newID("inv"),
		ProjectID:    input.ProjectID,
		InviterEmail: input.InviterEmail,
		InviteeEmail: input.InviteeEmail,
		Status:       domain.InviteStatusPending,
	}
	b.Invites[invite.ID] = invite
	return invite, nil
}

func (b *Backend) InvitesByInvitee(ctx context.Context, email string) ([]domain.Invitation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.InvitesErr != nil {
		return nil, b.InvitesErr
	}
	var invites []domain.Invitation
	for _, invite := range b.Invites {
		if domain.SameEmail(invite.InviteeEmail, email) {
			invites = append(invites, invite)
		}
	}
	sort.Slice(invites, func(i, j int) bool { return invites[i].ID < invites[j].ID })
	return invites, nil
}

// SetInviteStatus is the atomic check-and-set: the transition check and the
// write happen under one lock, so concurrent resolutions of the same invite
// serialize and at most one succeeds.
func (b *Backend) SetInviteStatus(ctx context.Context, id string, status domain.InviteStatus) (domain.Invitation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SetInviteStatusErr != nil {
		return domain.Invitation{}, b.SetInviteStatusErr
	}
	invite, ok := b.Invites[id]
	if !ok {
		return domain.Invitation{}, api.ErrNotFound
	}
	if !invite.Status.CanTransitionTo(status) {
		return domain.Invitation{}, apperrors.WithMetadata(apperrors.CodeInviteInvalidTransition,
			"invitation is not pending", map[string]string{"inviteId": id, "status": invite.Status.Label()})
	}
	invite.Status = status
	b.Invites[id] = invite
	return invite, nil
}

func (b *Backend) OrganizationsByMember(ctx context.Context, email string) ([]domain.Organization, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.OrganizationsErr != nil {
		return nil, b.OrganizationsErr
	}
	var orgs []domain.Organization
	for _, org := range b.Organizations {
		for _, member := range org.Members {
			if domain.SameEmail(member, email) {
				orgs = append(orgs, org)
				break
			}
		}
	}
	sort.Slice(orgs, func(i, j int) bool { return orgs[i].ID < orgs[j].ID })
	return orgs, nil
}

func (b *Backend) Organization(ctx context.Context, id string) (domain.Organization, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.OrganizationsErr != nil {
		return domain.Organization{}, b.OrganizationsErr
	}
	org, ok := b.Organizations[id]
	if !ok {
		return domain.Organization{}, api.ErrNotFound
	}
	return org, nil
}

func (b *Backend) CreateOrganization(ctx context.Context, name, email string) (domain.Organization, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.OrganizationsErr != nil {
		return domain.Organization{}, b.OrganizationsErr
	}
	org := domain.Organization{
		ID:         b.newID("org"),
		Name:       name,
		InviteCode: b.newID("code"),
		Members:    []string{domain.NormalizeEmail(email)},
	}
	b.Organizations[org.ID] = org
	return org, nil
}

func (b *Backend) JoinOrganization(ctx context.Context, inviteCode, email string) (domain.Organization, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.OrganizationsErr != nil {
		return domain.Organization{}, b.OrganizationsErr
	}
	for id, org := range b.Organizations {
		if org.InviteCode != inviteCode {
			continue
		}
		joined := false
		for _, member := range org.Members {
			if domain.SameEmail(member, email) {
				joined = true
				break
			}
		}
		if !joined {
			org.Members = append(org.Members, domain.NormalizeEmail(email))
			b.Organizations[id] = org
		}
		return org, nil
	}
	return domain.Organization{}, api.ErrNotFound
}

func (b *Backend) GenerateSubtasks(ctx context.Context, task string) ([]domain.Subtask, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.TaskGenErr != nil {
		return nil, b.TaskGenErr
	}
	return append([]domain.Subtask(nil), b.Subtasks...), nil
}

func (b *Backend) Messages(ctx context.Context, projectID string, limit int) ([]domain.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.MessagesErr != nil {
		return nil, b.MessagesErr
	}
	messages := b.Chat[projectID]
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return append([]domain.Message(nil), messages...), nil
}

func (b *Backend) Post(ctx context.Context, projectID, sender, content string) (domain.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.PostErr != nil {
		return domain.Message{}, b.PostErr
	}
	message := domain.Message{
		Sender:  sender,
		Content: content,
		SentAt:  b.Now().UTC(),
	}
	b.Chat[projectID] = append(b.Chat[projectID], message)
	return message, nil
}
