// Package linechat implements the chat-push channel: flex-style cards
// delivered through a bot push API, with an optional webhook mirror.
package linechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"helpdesk-system/pkg/config"

	"go.uber.org/zap"
)

const defaultAPIBase = "https://api.line.me"

// CardLine is one label/value row inside a card body.
type CardLine struct {
	Label string
	Value string
}

// Card is the channel-neutral payload composed for chat delivery.
type Card struct {
	AltText     string
	Title       string
	AccentColor string
	Lines       []CardLine
	ButtonLabel string
	ButtonURL   string
}

type ClientInterface interface {
	PushCard(ctx context.Context, card Card) error
}

type Client struct {
	cfg        config.ChatConfig
	apiBase    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.ChatConfig, logger *zap.Logger) *Client {
	return newClientWithBase(cfg, defaultAPIBase, logger)
}

func newClientWithBase(cfg config.ChatConfig, apiBase string, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		apiBase:    apiBase,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// PushCard sends the card once to the configured recipient, or broadcasts
// to all subscribers when no recipient is configured. The webhook mirror is
// attempted independently of the push result; either succeeding counts as
// notified. Without an access token the whole call is a no-op.
func (c *Client) PushCard(ctx context.Context, card Card) error {
	if c.cfg.AccessToken == "" {
		c.logger.Debug("chat access token not configured, skipping push", zap.String("altText", card.AltText))
		return nil
	}

	pushErr := c.push(ctx, card)
	if pushErr != nil {
		c.logger.Warn("chat push failed", zap.String("altText", card.AltText), zap.Error(pushErr))
	}

	var mirrorErr error
	if c.cfg.WebhookURL != "" {
		mirrorErr = c.mirror(ctx, card)
		if mirrorErr != nil {
			c.logger.Warn("chat webhook mirror failed", zap.String("altText", card.AltText), zap.Error(mirrorErr))
		}
	}

	if pushErr == nil {
		return nil
	}
	if c.cfg.WebhookURL != "" && mirrorErr == nil {
		return nil
	}
	return pushErr
}

type pushRequest struct {
	To       string        `json:"to,omitempty"`
	Messages []flexMessage `json:"messages"`
}

type flexMessage struct {
	Type     string      `json:"type"`
	AltText  string      `json:"altText"`
	Contents interface{} `json:"contents"`
}

func (c *Client) push(ctx context.Context, card Card) error {
	endpoint := c.apiBase + "/v2/bot/message/broadcast"
	payload := pushRequest{
		Messages: []flexMessage{{
			Type:     "flex",
			AltText:  card.AltText,
			Contents: buildBubble(card),
		}},
	}
	if c.cfg.RecipientID != "" {
		endpoint = c.apiBase + "/v2/bot/message/push"
		payload.To = c.cfg.RecipientID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to serialize push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chat push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chat push API returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func (c *Client) mirror(ctx context.Context, card Card) error {
	body, err := json.Marshal(map[string]interface{}{
		"altText": card.AltText,
		"title":   card.Title,
		"lines":   cardLinesToMap(card.Lines),
		"url":     card.ButtonURL,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.WebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook mirror request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook mirror returned %d", resp.StatusCode)
	}
	return nil
}

func cardLinesToMap(lines []CardLine) []map[string]string {
	out := make([]map[string]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, map[string]string{"label": l.Label, "value": l.Value})
	}
	return out
}

// buildBubble renders the card as a flex bubble: accent-colored header,
// label/value body rows and an optional link button footer.
func buildBubble(card Card) map[string]interface{} {
	bodyRows := make([]interface{}, 0, len(card.Lines))
	for _, line := range card.Lines {
		bodyRows = append(bodyRows, map[string]interface{}{
			"type":   "box",
			"layout": "baseline",
			"contents": []interface{}{
				map[string]interface{}{"type": "text", "text": line.Label, "size": "sm", "color": "#aaaaaa", "flex": 2},
				map[string]interface{}{"type": "text", "text": line.Value, "size": "sm", "flex": 5, "wrap": true},
			},
		})
	}

	bubble := map[string]interface{}{
		"type": "bubble",
		"header": map[string]interface{}{
			"type":            "box",
			"layout":          "vertical",
			"backgroundColor": card.AccentColor,
			"contents": []interface{}{
				map[string]interface{}{"type": "text", "text": card.Title, "weight": "bold", "color": "#ffffff", "size": "md"},
			},
		},
		"body": map[string]interface{}{
			"type":     "box",
			"layout":   "vertical",
			"spacing":  "sm",
			"contents": bodyRows,
		},
	}

	if card.ButtonURL != "" {
		bubble["footer"] = map[string]interface{}{
			"type":   "box",
			"layout": "vertical",
			"contents": []interface{}{
				map[string]interface{}{
					"type":   "button",
					"style":  "link",
					"height": "sm",
					"action": map[string]interface{}{
						"type":  "uri",
						"label": card.ButtonLabel,
						"uri":   card.ButtonURL,
					},
				},
			},
		}
	}

	return bubble
}
