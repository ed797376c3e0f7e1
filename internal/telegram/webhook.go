package telegram

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// RegisterWebhook points the bot's webhook at targetURL. It first reads the
// current registration and skips the set call when the recorded URL already
// matches, so repeated calls are safe. Returns whether a set call was made.
func (c *Client) RegisterWebhook(targetURL string) (bool, error) {
	info, err := c.api.GetWebhookInfo()
	if err != nil {
		return false, fmt.Errorf("get webhook info: %w", err)
	}
	if info.URL == targetURL {
		log.Printf("webhook already registered at %s", targetURL)
		return false, nil
	}

	wh, err := tgbotapi.NewWebhook(targetURL)
	if err != nil {
		return false, fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := c.api.Request(wh); err != nil {
		return false, fmt.Errorf("set webhook to %s: %w", targetURL, err)
	}
	log.Printf("webhook registered at %s", targetURL)
	return true, nil
}
