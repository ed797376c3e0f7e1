package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
	GetWebhookInfo() (tgbotapi.WebhookInfo, error)
}
