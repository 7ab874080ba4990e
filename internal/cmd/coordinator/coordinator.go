// Package coordinator parses coordinator flags and launches the demo CLI.
package coordinator

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	entrypoint "github.com/collabhub/coordinator/internal/platform/cmd"
	"github.com/collabhub/coordinator/internal/services/coordinator/app"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
	"github.com/collabhub/coordinator/internal/services/coordinator/rest"
	"github.com/collabhub/coordinator/internal/services/coordinator/storage/sqlite"
)

// Config holds coordinator command configuration.
type Config struct {
	Email        string        `env:"COLLABHUB_EMAIL"`
	SessionToken string        `env:"COLLABHUB_SESSION_TOKEN"`
	CachePath    string        `env:"COLLABHUB_CACHE_PATH" envDefault:"coordinator.db"`
	ProjectID    string        `env:"COLLABHUB_WATCH_PROJECT"`
	PollInterval time.Duration `env:"COLLABHUB_CHAT_POLL_INTERVAL" envDefault:"10s"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Email, "email", cfg.Email, "The signed-in user email")
	fs.StringVar(&cfg.SessionToken, "token", cfg.SessionToken, "The backend-issued session token")
	fs.StringVar(&cfg.CachePath, "cache", cfg.CachePath, "The offline snapshot database path")
	fs.StringVar(&cfg.ProjectID, "watch", cfg.ProjectID, "A project id to watch chat for")
	fs.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "The chat poll interval")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the coordinator demo CLI: it signs in, prints the dashboard
// state, and optionally watches one project's chat until interrupted.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCoordinator, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	var sessions app.SessionStore
	email := cfg.Email

	if cfg.SessionToken != "" {
		sessionCfg, err := app.LoadSessionConfigFromEnv(nil)
		if err != nil {
			return fmt.Errorf("load session config: %w", err)
		}
		session, err := app.VerifySessionToken(cfg.SessionToken, sessionCfg)
		if err != nil {
			return err
		}
		sessions.Set(session)
		if email == "" {
			email = session.Email
		}
	}
	if email == "" {
		return fmt.Errorf("an email is required, set COLLABHUB_EMAIL or pass -email")
	}

	restCfg, err := rest.LoadConfigFromEnv()
	if err != nil {
		return err
	}
	backend, err := rest.NewClient(restCfg, sessions.Token)
	if err != nil {
		return err
	}

	appCfg := app.Config{Backend: backend}
	if cfg.CachePath != "" {
		cache, err := sqlite.Open(cfg.CachePath)
		if err != nil {
			return fmt.Errorf("open snapshot cache: %w", err)
		}
		defer func() { _ = cache.Close() }()
		appCfg.Cache = cache
	}
	coordinator, err := app.New(appCfg)
	if err != nil {
		return err
	}

	if err := printDashboard(ctx, coordinator, email); err != nil {
		return err
	}
	if cfg.ProjectID == "" {
		return nil
	}
	return watchChat(ctx, backend, cfg.ProjectID, cfg.PollInterval)
}

func printDashboard(ctx context.Context, coordinator *app.Coordinator, email string) error {
	projects, err := coordinator.Projects(ctx, email)
	if err != nil {
		return err
	}
	log.Printf("%d projects for %s", len(projects), email)
	for _, project := range projects {
		log.Printf("  %s %s (%d collaborators, %d goals)",
			project.ID, project.Name, len(project.Collaborators), len(project.Goals))
	}

	invites, err := coordinator.ListForInvitee(ctx, email)
	if err != nil {
		return err
	}
	for _, invite := range invites {
		log.Printf("invite %s to %s from %s: %s",
			invite.ID, invite.ProjectID, invite.InviterEmail, invite.Status.Label())
	}

	for _, suggestion := range coordinator.SuggestCollaborators(ctx, email) {
		log.Printf("suggested collaborator: %s (%s)", suggestion.Name, suggestion.Email)
	}
	return nil
}

func watchChat(ctx context.Context, backend *rest.Client, projectID string, interval time.Duration) error {
	seen := 0
	poller := app.NewChatPoller(backend, projectID, interval, log.Default(), func(messages []domain.Message) {
		if len(messages) < seen {
			seen = 0
		}
		for _, message := range messages[seen:] {
			log.Printf("[%s] %s: %s", projectID, message.Sender, message.Content)
		}
		seen = len(messages)
	})
	poller.Start(ctx)
	defer poller.Stop()

	<-ctx.Done()
	return nil
}
