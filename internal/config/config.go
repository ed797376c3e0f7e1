package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`
	WebhookURL       string `env:"WEBHOOK_URL,required"`
	ListenAddr       string `env:"LISTEN_ADDR" envDefault:":8080"`

	// LLM settings
	LLMProvider      string `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL"`
	OpenAIModel      string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken string `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string `env:"YANDEX_FOLDER_ID"`

	// Speech settings
	STTModel string `env:"STT_MODEL" envDefault:"whisper-1"`
	TTSModel string `env:"TTS_MODEL" envDefault:"tts-1"`
	TTSVoice string `env:"TTS_VOICE" envDefault:"alloy"`

	// Prompts
	PersonaPromptPath string `env:"PERSONA_PROMPT_PATH"`

	// Storage; history lives in memory when no Redis is configured
	RedisURL string `env:"REDIS_URL"`

	// Optional cron spec for periodic webhook re-registration
	WebhookCheckSpec string `env:"WEBHOOK_CHECK_SPEC"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
