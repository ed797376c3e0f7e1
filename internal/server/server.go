package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"voice-chatter/internal/pipeline"
)

// Processor runs one inbound update through the relay pipeline.
type Processor interface {
	Process(ctx context.Context, u pipeline.Update) error
}

// Registrar performs idempotent webhook registration.
type Registrar interface {
	RegisterWebhook(targetURL string) (bool, error)
}

// Server exposes the webhook receiver and the registration control endpoint.
type Server struct {
	pipe       Processor
	registrar  Registrar
	webhookURL string
}

func New(pipe Processor, registrar Registrar, webhookURL string) *Server {
	return &Server{pipe: pipe, registrar: registrar, webhookURL: webhookURL}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/webhook", s.handleWebhook)
	router.GET("/init", s.handleInit)
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

// handleWebhook always answers success for parseable updates: Telegram
// redelivers anything that does not get a 2xx, and a failed turn must not
// turn into a redelivery storm.
func (s *Server) handleWebhook(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.String(http.StatusBadRequest, "invalid update")
		return
	}

	u, ok := inboundFromUpdate(update)
	if !ok {
		c.String(http.StatusOK, "ignored")
		return
	}

	if err := s.pipe.Process(c.Request.Context(), u); err != nil {
		log.Printf("update for chat %d dropped: %v", u.ChatID, err)
	}
	c.String(http.StatusOK, "OK")
}

func (s *Server) handleInit(c *gin.Context) {
	changed, err := s.registrar.RegisterWebhook(s.webhookURL)
	if err != nil {
		log.Printf("webhook registration failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	result := "webhook already registered"
	if changed {
		result = "webhook registered"
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "result": result})
}

func inboundFromUpdate(update tgbotapi.Update) (pipeline.Update, bool) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return pipeline.Update{}, false
	}
	if msg.Voice != nil {
		return pipeline.Update{ChatID: msg.Chat.ID, VoiceFileID: msg.Voice.FileID}, true
	}
	if msg.Text != "" {
		return pipeline.Update{ChatID: msg.Chat.ID, Text: msg.Text}, true
	}
	return pipeline.Update{}, false
}
