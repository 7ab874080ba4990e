package domain

import (
	"encoding/json"
	"strings"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
)

// Role identifies a collaborator's role on a project.
type Role int

const (
	// RoleUnspecified represents an invalid role value.
	RoleUnspecified Role = iota
	// RoleOwner marks the single owning collaborator of a project.
	RoleOwner
	// RoleCollaborator marks a regular confirmed project member.
	RoleCollaborator
)

// Label returns the wire label for a role.
func (r Role) Label() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleCollaborator:
		return "collaborator"
	default:
		return "unspecified"
	}
}

// RoleFromLabel converts a wire label to a Role value.
func RoleFromLabel(label string) Role {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "owner":
		return RoleOwner
	case "collaborator":
		return RoleCollaborator
	default:
		return RoleUnspecified
	}
}

// MarshalJSON encodes the role as its wire label.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Label())
}

// UnmarshalJSON decodes a role from its wire label.
func (r *Role) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*r = RoleFromLabel(label)
	return nil
}

// Collaborator is a confirmed project member, embedded in Project.
type Collaborator struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// GoalStatus describes the progress of a project goal.
type GoalStatus int

const (
	// GoalStatusUnspecified represents an invalid goal status value.
	GoalStatusUnspecified GoalStatus = iota
	// GoalStatusNotStarted indicates work on the goal has not begun.
	GoalStatusNotStarted
	// GoalStatusInProgress indicates the goal is being worked on.
	GoalStatusInProgress
	// GoalStatusCompleted indicates the goal is finished.
	GoalStatusCompleted
)

// Label returns the wire label for a goal status.
func (s GoalStatus) Label() string {
	switch s {
	case GoalStatusNotStarted:
		return "not started"
	case GoalStatusInProgress:
		return "in progress"
	case GoalStatusCompleted:
		return "completed"
	default:
		return "unspecified"
	}
}

// GoalStatusFromLabel converts a wire label to a GoalStatus value.
func GoalStatusFromLabel(label string) GoalStatus {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "not started":
		return GoalStatusNotStarted
	case "in progress":
		return GoalStatusInProgress
	case "completed":
		return GoalStatusCompleted
	default:
		return GoalStatusUnspecified
	}
}

// MarshalJSON encodes the status as its wire label.
func (s GoalStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Label())
}

// UnmarshalJSON decodes a status from its wire label.
func (s *GoalStatus) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*s = GoalStatusFromLabel(label)
	return nil
}

// Goal is a project sub-task, embedded in Project. AssignedTo is nil when
// the goal has no assignee.
type Goal struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        GoalStatus `json:"status"`
	AssignedTo    *string    `json:"assignedTo"`
	EstimatedTime string     `json:"estimatedTime"`
}

// Project is the unit of collaboration. It owns its goals and collaborator
// roster; both have no identity outside the project.
type Project struct {
	ID            string         `json:"id"`
	Name          string         `json:"projectName"`
	Description   string         `json:"description"`
	Collaborators []Collaborator `json:"collaborators"`
	Goals         []Goal         `json:"goals"`
}

// Owner returns the owning collaborator when present.
func (p Project) Owner() (Collaborator, bool) {
	for _, c := range p.Collaborators {
		if c.Role == RoleOwner {
			return c, true
		}
	}
	return Collaborator{}, false
}

// HasCollaborator reports whether email is already on the roster.
func (p Project) HasCollaborator(email string) bool {
	for _, c := range p.Collaborators {
		if SameEmail(c.Email, email) {
			return true
		}
	}
	return false
}

// CollaboratorEmails returns roster emails in insertion order.
func (p Project) CollaboratorEmails() []string {
	emails := make([]string, 0, len(p.Collaborators))
	for _, c := range p.Collaborators {
		emails = append(emails, c.Email)
	}
	return emails
}

// DedupCollaborators removes duplicate roster entries, keeping the first
// occurrence of each email. Order is otherwise preserved.
func DedupCollaborators(collaborators []Collaborator) []Collaborator {
	seen := make(map[string]struct{}, len(collaborators))
	result := make([]Collaborator, 0, len(collaborators))
	for _, c := range collaborators {
		key := NormalizeEmail(c.Email)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, c)
	}
	return result
}

// MergeCollaborator returns the deduplicated union of the roster and the
// given email as a regular collaborator. Applying it repeatedly with the
// same email yields the same roster, which is what makes invitation-accept
// retries safe.
func MergeCollaborator(collaborators []Collaborator, email string) []Collaborator {
	merged := DedupCollaborators(collaborators)
	for _, c := range merged {
		if SameEmail(c.Email, email) {
			return merged
		}
	}
	return append(merged, Collaborator{Email: NormalizeEmail(email), Role: RoleCollaborator})
}

// Validate checks project roster invariants: a non-empty id, exactly one
// owner, and no duplicate collaborator emails.
func (p Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return apperrors.New(apperrors.CodeProjectEmptyID, "project id is required")
	}
	owners := 0
	seen := make(map[string]struct{}, len(p.Collaborators))
	for _, c := range p.Collaborators {
		key := NormalizeEmail(c.Email)
		if _, ok := seen[key]; ok {
			return apperrors.WithMetadata(apperrors.CodeProjectDuplicateCollab,
				"duplicate collaborator email", map[string]string{"email": key})
		}
		seen[key] = struct{}{}
		if c.Role == RoleOwner {
			owners++
		}
	}
	if owners != 1 {
		return apperrors.New(apperrors.CodeProjectOwnerMissing, "project must have exactly one owner")
	}
	return nil
}

// AssignGoal returns a copy of the project with the goal at index assigned
// to email. The caller persists the result through the backend.
func AssignGoal(p Project, index int, email string) (Project, error) {
	if index < 0 || index >= len(p.Goals) {
		return Project{}, apperrors.New(apperrors.CodeProjectGoalIndexOutOfRange, "goal index out of range")
	}
	email = NormalizeEmail(email)
	if email == "" {
		return Project{}, apperrors.New(apperrors.CodeUserEmptyEmail, "assignee email is required")
	}
	updated := p
	updated.Goals = append([]Goal(nil), p.Goals...)
	updated.Goals[index].AssignedTo = &email
	return updated, nil
}

// UnassignGoal returns a copy of the project with the goal at index cleared.
func UnassignGoal(p Project, index int) (Project, error) {
	if index < 0 || index >= len(p.Goals) {
		return Project{}, apperrors.New(apperrors.CodeProjectGoalIndexOutOfRange, "goal index out of range")
	}
	updated := p
	updated.Goals = append([]Goal(nil), p.Goals...)
	updated.Goals[index].AssignedTo = nil
	return updated, nil
}

// SetGoalStatus returns a copy of the project with the goal at index moved
// to the given status.
func SetGoalStatus(p Project, index int, status GoalStatus) (Project, error) {
	if index < 0 || index >= len(p.Goals) {
		return Project{}, apperrors.New(apperrors.CodeProjectGoalIndexOutOfRange, "goal index out of range")
	}
	if status == GoalStatusUnspecified {
		return Project{}, apperrors.New(apperrors.CodeGoalInvalidStatus, "goal status is invalid")
	}
	updated := p
	updated.Goals = append([]Goal(nil), p.Goals...)
	updated.Goals[index].Status = status
	return updated, nil
}

// MatchQueryForProject builds a matchmaking query from the project's
// description and goal text, used when suggesting candidates at project
// scope.
func MatchQueryForProject(p Project) string {
	parts := make([]string, 0, 1+2*len(p.Goals))
	if s := strings.TrimSpace(p.Description); s != "" {
		parts = append(parts, s)
	}
	for _, g := range p.Goals {
		if s := strings.TrimSpace(g.Title); s != "" {
			parts = append(parts, s)
		}
		if s := strings.TrimSpace(g.Description); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// MatchQueryForGoal builds a matchmaking query from one goal's text, used
// when suggesting candidates for a specific goal.
func MatchQueryForGoal(g Goal) string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(g.Title); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(g.Description); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
