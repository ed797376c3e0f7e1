package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client wraps the Bot API for the calls the relay needs: sending replies,
// resolving and downloading voice files, and webhook registration.
type Client struct {
	api   api
	token string
	http  *http.Client
}

func New(botToken string) (*Client, error) {
	botAPI, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init bot api: %w", err)
	}
	return &Client{api: botAPI, token: botToken, http: http.DefaultClient}, nil
}

func (c *Client) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send message to chat %d: %w", chatID, err)
	}
	return nil
}

func (c *Client) SendVoice(chatID int64, audio []byte, filename string) error {
	voice := tgbotapi.NewVoice(chatID, tgbotapi.FileBytes{Name: filename, Bytes: audio})
	if _, err := c.api.Send(voice); err != nil {
		return fmt.Errorf("send voice to chat %d: %w", chatID, err)
	}
	return nil
}

// DownloadVoice resolves a file id to its download link and fetches the raw
// bytes, typically opus-in-ogg for voice notes.
func (c *Client) DownloadVoice(ctx context.Context, fileID string) ([]byte, error) {
	file, err := c.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("resolve file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(c.token), nil)
	if err != nil {
		return nil, fmt.Errorf("build file request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch file %s: unexpected status %d", fileID, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", fileID, err)
	}
	return data, nil
}
