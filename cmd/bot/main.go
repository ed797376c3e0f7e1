package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"voice-chatter/internal/config"
	"voice-chatter/internal/history"
	"voice-chatter/internal/kv"
	"voice-chatter/internal/llm"
	"voice-chatter/internal/pipeline"
	"voice-chatter/internal/scheduler"
	"voice-chatter/internal/server"
	"voice-chatter/internal/speech"
	"voice-chatter/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	tg, err := telegram.New(cfg.TelegramBotToken)
	if err != nil {
		log.Fatalf("failed to create telegram client: %v", err)
	}

	store, err := newKVStore(cfg)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	factory := &llm.Factory{
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		YandexOAuthToken: cfg.YandexOAuthToken,
		YandexFolderID:   cfg.YandexFolderID,
	}
	llmClient, err := factory.CreateClient(cfg.LLMProvider, cfg.OpenAIModel)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	pipe := pipeline.New(
		tg,
		history.NewStore(store),
		speech.NewWhisperTranscriber(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.STTModel),
		llm.NewGenerator(llmClient, readPersona(cfg.PersonaPromptPath)),
		speech.NewTTSSynthesizer(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.TTSModel, cfg.TTSVoice),
	)

	if cfg.WebhookCheckSpec != "" {
		sched := scheduler.New(cfg.WebhookCheckSpec, func() (bool, error) {
			return tg.RegisterWebhook(cfg.WebhookURL)
		})
		if err := sched.Start(); err != nil {
			log.Printf("failed to start webhook self-heal: %v", err)
		} else {
			defer sched.Stop()
		}
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.New(pipe, tg, cfg.WebhookURL).Router(),
	}

	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func newKVStore(cfg *config.Config) (kv.Store, error) {
	if cfg.RedisURL == "" {
		log.Printf("no REDIS_URL configured, conversation history kept in memory")
		return kv.NewMemory(), nil
	}
	rs, err := kv.NewRedis(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rs.Ping(ctx); err != nil {
		return nil, err
	}
	return rs, nil
}

func readPersona(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("persona prompt file not found or unreadable at %s: %v", path, err)
		return ""
	}
	return string(data)
}
