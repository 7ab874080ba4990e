package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/services/coordinator/api"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL:    server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 3,
	}, func() string { return "test-token" })
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestUserByEmailNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "User not found"})
	}))

	_, err := client.UserByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserByEmailSendsBearerToken(t *testing.T) {
	var gotAuth, gotRequestID atomic.Value
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		gotRequestID.Store(r.Header.Get("X-Request-Id"))
		_ = json.NewEncoder(w).Encode(domain.User{Email: "dev@x.com"})
	}))

	if _, err := client.UserByEmail(context.Background(), "Dev@X.com"); err != nil {
		t.Fatalf("user by email: %v", err)
	}
	if gotAuth.Load() != "Bearer test-token" {
		t.Fatalf("expected bearer token header, got %v", gotAuth.Load())
	}
	if requestID, _ := gotRequestID.Load().(string); len(requestID) != 26 {
		t.Fatalf("expected a 26-char request id, got %q", gotRequestID.Load())
	}
}

func TestGetRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.User{Email: "dev@x.com"})
	}))

	user, err := client.UserByEmail(context.Background(), "dev@x.com")
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if user.Email != "dev@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestMutationsAreNeverRetried(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.CreateInvite(context.Background(), domain.CreateInvitationInput{
		ProjectID:    "proj-1",
		InviterEmail: "owner@x.com",
		InviteeEmail: "dev@x.com",
	})
	if apperrors.CodeOf(err) != apperrors.CodeNetworkUnavailable {
		t.Fatalf("expected NETWORK_UNAVAILABLE, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt for a mutation, got %d", calls.Load())
	}
}

func TestSetInviteStatusConflict(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invite already accepted"})
	}))

	_, err := client.SetInviteStatus(context.Background(), "inv-1", domain.InviteStatusAccepted)
	if apperrors.CodeOf(err) != apperrors.CodeInviteInvalidTransition {
		t.Fatalf("expected INVITE_INVALID_TRANSITION, got %v", err)
	}
}

func TestSetInviteStatusSendsWireLabel(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode status body: %v", err)
		}
		if body.Status != "accepted" {
			t.Errorf("expected status label accepted, got %q", body.Status)
		}
		_ = json.NewEncoder(w).Encode(domain.Invitation{ID: "inv-1", Status: domain.InviteStatusAccepted})
	}))

	invite, err := client.SetInviteStatus(context.Background(), "inv-1", domain.InviteStatusAccepted)
	if err != nil {
		t.Fatalf("set invite status: %v", err)
	}
	if invite.Status != domain.InviteStatusAccepted {
		t.Fatalf("expected accepted, got %v", invite.Status)
	}
}

func TestMatchWrapsFailures(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.Match(context.Background(), "golang backend")
	if apperrors.CodeOf(err) != apperrors.CodeMatchServiceUnavailable {
		t.Fatalf("expected MATCH_SERVICE_UNAVAILABLE, got %v", err)
	}
}

func TestMatchRejectsEmptyQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty query")
	}))

	if _, err := client.Match(context.Background(), ""); apperrors.CodeOf(err) != apperrors.CodeMatchEmptyQuery {
		t.Fatalf("expected MATCH_EMPTY_QUERY, got %v", err)
	}
}

func TestProjectsByMemberDecodesEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/list" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("email") != "dev@x.com" {
			t.Errorf("unexpected email query %q", r.URL.Query().Get("email"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"projects": []domain.Project{
				{ID: "proj-1", Name: "Study Group App"},
			},
		})
	}))

	projects, err := client.ProjectsByMember(context.Background(), "Dev@X.com")
	if err != nil {
		t.Fatalf("projects by member: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "proj-1" {
		t.Fatalf("unexpected projects: %+v", projects)
	}
}

func TestUpdateProjectSendsRosterAsEmailList(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/projects/proj-1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		// The edit contract carries collaboratorEmails, never a structured
		// roster; a backend reading the fixed body must see the new member.
		if _, ok := body["collaborators"]; ok {
			t.Error("unexpected collaborators field in edit body")
		}
		var emails []string
		if err := json.Unmarshal(body["collaboratorEmails"], &emails); err != nil {
			t.Errorf("decode collaboratorEmails: %v", err)
		}
		if len(emails) != 2 || emails[0] != "owner@x.com" || emails[1] != "dev@x.com" {
			t.Errorf("unexpected roster emails: %v", emails)
		}
		_ = json.NewEncoder(w).Encode(domain.Project{ID: "proj-1", Name: "Study Group App"})
	}))

	project := domain.Project{
		ID:   "proj-1",
		Name: "Study Group App",
		Collaborators: []domain.Collaborator{
			{Email: "owner@x.com", Role: domain.RoleOwner},
			{Email: "dev@x.com", Role: domain.RoleCollaborator},
		},
	}
	if _, err := client.UpdateProject(context.Background(), project); err != nil {
		t.Fatalf("update project: %v", err)
	}
}

func TestOrganizationMutationsShareOneEndpoint(t *testing.T) {
	var mu sync.Mutex
	var bodies []map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/organizations" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"organization": domain.Organization{ID: "org-1", Name: "Acme"},
		})
	}))

	if _, err := client.CreateOrganization(context.Background(), "Acme", "Dev@X.com"); err != nil {
		t.Fatalf("create organization: %v", err)
	}
	if _, err := client.JoinOrganization(context.Background(), "code-1", "dev@x.com"); err != nil {
		t.Fatalf("join organization: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(bodies) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(bodies))
	}
	// The backend tells create from join by body shape alone.
	if bodies[0]["name"] != "Acme" || bodies[0]["email"] != "dev@x.com" || bodies[0]["inviteCode"] != "" {
		t.Errorf("unexpected create body: %v", bodies[0])
	}
	if bodies[1]["inviteCode"] != "code-1" || bodies[1]["email"] != "dev@x.com" || bodies[1]["name"] != "" {
		t.Errorf("unexpected join body: %v", bodies[1])
	}
}

func TestGenerateSubtasks(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/TaskGen" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"subtasks": []domain.Subtask{
				{StepTitle: "Design schema", Description: "Model users", EstimatedTime: "2 days"},
				{StepTitle: "Build API", Description: "REST endpoints", EstimatedTime: "1 week"},
			},
		})
	}))

	subtasks, err := client.GenerateSubtasks(context.Background(), "Build a study group app")
	if err != nil {
		t.Fatalf("generate subtasks: %v", err)
	}
	if len(subtasks) != 2 || subtasks[0].StepTitle != "Design schema" {
		t.Fatalf("unexpected subtasks: %+v", subtasks)
	}
}

func TestChatMessagesPassesLimit(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/proj-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "50" {
			t.Errorf("unexpected limit %q", r.URL.Query().Get("limit"))
		}
		_ = json.NewEncoder(w).Encode([]domain.Message{
			{Sender: "AI", Content: "welcome"},
		})
	}))

	messages, err := client.Messages(context.Background(), "proj-1", 50)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(messages) != 1 || !messages[0].FromAI() {
		t.Fatalf("unexpected messages: %+v", messages)
	}
}

func TestTransportErrorMapsToNetworkUnavailable(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := client.Post(context.Background(), "proj-1", "dev@x.com", "hi")
	if apperrors.CodeOf(err) != apperrors.CodeNetworkUnavailable {
		t.Fatalf("expected NETWORK_UNAVAILABLE, got %v", err)
	}
}
