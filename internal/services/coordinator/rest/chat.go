package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

// Messages returns up to limit most recent chat messages for the project.
func (c *Client) Messages(ctx context.Context, projectID string, limit int) ([]domain.Message, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var messages []domain.Message
	if err := c.getJSON(ctx, "/chat/"+url.PathEscape(projectID), query, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Post appends a message to the project chat and returns the stored entry.
func (c *Client) Post(ctx context.Context, projectID, sender, content string) (domain.Message, error) {
	body := struct {
		Sender  string `json:"sender"`
		Content string `json:"content"`
	}{Sender: sender, Content: content}

	var message domain.Message
	if err := c.postJSON(ctx, "/chat/"+url.PathEscape(projectID), body, &message); err != nil {
		return domain.Message{}, err
	}
	return message, nil
}
