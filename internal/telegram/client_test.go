package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeAPI struct {
	sent        []tgbotapi.Chattable
	requests    []tgbotapi.Chattable
	file        tgbotapi.File
	fileErr     error
	webhookInfo tgbotapi.WebhookInfo
	infoErr     error
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error) {
	return f.file, f.fileErr
}

func (f *fakeAPI) GetWebhookInfo() (tgbotapi.WebhookInfo, error) {
	return f.webhookInfo, f.infoErr
}

func TestSendMessage(t *testing.T) {
	fa := &fakeAPI{}
	c := &Client{api: fa}

	if err := c.SendMessage(42, "hello"); err != nil {
		t.Fatalf("send message: %v", err)
	}
	if len(fa.sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(fa.sent))
	}
	msg, ok := fa.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected MessageConfig, got %T", fa.sent[0])
	}
	if msg.ChatID != 42 || msg.Text != "hello" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestSendVoiceCarriesBytes(t *testing.T) {
	fa := &fakeAPI{}
	c := &Client{api: fa}

	if err := c.SendVoice(7, []byte{1, 2, 3}, "reply.mp3"); err != nil {
		t.Fatalf("send voice: %v", err)
	}
	voice, ok := fa.sent[0].(tgbotapi.VoiceConfig)
	if !ok {
		t.Fatalf("expected VoiceConfig, got %T", fa.sent[0])
	}
	fb, ok := voice.File.(tgbotapi.FileBytes)
	if !ok {
		t.Fatalf("expected FileBytes, got %T", voice.File)
	}
	if fb.Name != "reply.mp3" || len(fb.Bytes) != 3 {
		t.Fatalf("unexpected voice payload: %+v", fb)
	}
}

func TestDownloadVoiceFetchesResolvedLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("audio-bytes"))
	}))
	defer srv.Close()

	fa := &fakeAPI{file: tgbotapi.File{FileID: "f1", FilePath: "voice/file_1.oga"}}
	// File.Link builds an api.telegram.org URL; redirect it to the test server.
	c := &Client{api: fa, token: "t", http: &http.Client{Transport: rewriteHost(srv.URL)}}

	data, err := c.DownloadVoice(context.Background(), "f1")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Fatalf("unexpected payload: %q", data)
	}
}

func TestDownloadVoiceFailsOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	fa := &fakeAPI{file: tgbotapi.File{FileID: "f1", FilePath: "voice/missing.oga"}}
	c := &Client{api: fa, token: "t", http: &http.Client{Transport: rewriteHost(srv.URL)}}

	if _, err := c.DownloadVoice(context.Background(), "f1"); err == nil {
		t.Fatalf("expected error on 404 download")
	}
}

func TestRegisterWebhookSkipsWhenURLMatches(t *testing.T) {
	fa := &fakeAPI{webhookInfo: tgbotapi.WebhookInfo{URL: "https://relay.example/webhook"}}
	c := &Client{api: fa}

	changed, err := c.RegisterWebhook("https://relay.example/webhook")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if changed {
		t.Fatalf("expected no-op registration")
	}
	if len(fa.requests) != 0 {
		t.Fatalf("setWebhook should not be called, got %d requests", len(fa.requests))
	}
}

func TestRegisterWebhookSetsWhenURLDiffers(t *testing.T) {
	fa := &fakeAPI{webhookInfo: tgbotapi.WebhookInfo{URL: "https://old.example/webhook"}}
	c := &Client{api: fa}

	changed, err := c.RegisterWebhook("https://relay.example/webhook")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !changed {
		t.Fatalf("expected registration to happen")
	}
	if len(fa.requests) != 1 {
		t.Fatalf("expected exactly one setWebhook call, got %d", len(fa.requests))
	}
}

func TestRegisterWebhookIdempotentAcrossCalls(t *testing.T) {
	fa := &fakeAPI{}
	c := &Client{api: fa}

	if _, err := c.RegisterWebhook("https://relay.example/webhook"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	// Second call observes the now-current URL.
	fa.webhookInfo = tgbotapi.WebhookInfo{URL: "https://relay.example/webhook"}
	if _, err := c.RegisterWebhook("https://relay.example/webhook"); err != nil {
		t.Fatalf("second register: %v", err)
	}
	if len(fa.requests) != 1 {
		t.Fatalf("expected exactly one setWebhook across two calls, got %d", len(fa.requests))
	}
}

// rewriteHost redirects every request to the given test server base URL,
// keeping the original path.
type rewriteHost string

func (h rewriteHost) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = "http"
	req.URL.Host = string(h)[len("http://"):]
	return http.DefaultTransport.RoundTrip(req)
}
