package app

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	apperrors "github.com/collabhub/coordinator/internal/platform/errors"
	"github.com/collabhub/coordinator/internal/services/coordinator/api"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

const (
	// DefaultChatPollInterval is how often an open chat refreshes.
	DefaultChatPollInterval = 10 * time.Second
	// ChatHistoryLimit caps how many messages each refresh fetches.
	ChatHistoryLimit = 50
)

// Messages returns up to ChatHistoryLimit recent messages for the project.
func (c *Coordinator) Messages(ctx context.Context, projectID string) ([]domain.Message, error) {
	return c.backend.Messages(ctx, projectID, ChatHistoryLimit)
}

// PostMessage appends a message to the project chat. The sender "AI" is
// reserved for assistant-authored messages and rejected here; those are
// posted internally by the task generation flow.
func (c *Coordinator) PostMessage(ctx context.Context, projectID, sender, content string) (domain.Message, error) {
	sender = strings.TrimSpace(sender)
	if sender == "" || sender == domain.AISender {
		return domain.Message{}, apperrors.New(apperrors.CodeChatEmptySender, "sender is required and must not be the reserved AI name")
	}
	if strings.TrimSpace(content) == "" {
		return domain.Message{}, apperrors.New(apperrors.CodeChatEmptyContent, "message content is required")
	}
	return c.backend.Post(ctx, projectID, sender, content)
}

// ChatPoller periodically refreshes one project's chat history and hands
// each fetched batch to a callback. Poll failures are logged and the next
// tick retries; the poller never stops on its own.
type ChatPoller struct {
	chat      api.ChatService
	projectID string
	interval  time.Duration
	logger    *log.Logger
	onBatch   func([]domain.Message)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewChatPoller creates a poller for projectID. onBatch receives every
// successfully fetched history, newest fetch last. A non-positive interval
// falls back to DefaultChatPollInterval.
func NewChatPoller(chat api.ChatService, projectID string, interval time.Duration, logger *log.Logger, onBatch func([]domain.Message)) *ChatPoller {
	if interval <= 0 {
		interval = DefaultChatPollInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ChatPoller{
		chat:      chat,
		projectID: projectID,
		interval:  interval,
		logger:    logger,
		onBatch:   onBatch,
	}
}

// Start begins polling until Stop is called or ctx is cancelled. An initial
// fetch runs immediately so the chat is not blank for a full interval.
// Starting an already running poller is a no-op.
func (p *ChatPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx)
}

func (p *ChatPoller) run(ctx context.Context) {
	defer close(p.done)

	p.poll(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *ChatPoller) poll(ctx context.Context) {
	messages, err := p.chat.Messages(ctx, p.projectID, ChatHistoryLimit)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Printf("[chat] poll for %s failed: %v", p.projectID, err)
		}
		return
	}
	if p.onBatch != nil {
		p.onBatch(messages)
	}
}

// Stop halts polling and waits for the in-flight poll to finish. It is safe
// to call multiple times and before Start.
func (p *ChatPoller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
