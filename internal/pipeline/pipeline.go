package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"voice-chatter/internal/history"
)

// Messenger is the outbound messaging surface the pipeline delivers through.
type Messenger interface {
	SendMessage(chatID int64, text string) error
	SendVoice(chatID int64, audio []byte, filename string) error
	DownloadVoice(ctx context.Context, fileID string) ([]byte, error)
}

// HistoryStore is the bounded per-chat conversation log.
type HistoryStore interface {
	Read(ctx context.Context, chatID int64) ([]history.Turn, error)
	Append(ctx context.Context, chatID int64, turns ...history.Turn) error
}

// Generator produces a reply from the current input and recent history.
type Generator interface {
	Reply(ctx context.Context, input string, turns []history.Turn) (string, error)
}

// Transcriber converts voice note audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Synthesizer renders the reply into voice audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Update is one inbound message, either text or a voice note.
type Update struct {
	ChatID      int64
	Text        string
	VoiceFileID string
}

func (u Update) IsVoice() bool { return u.VoiceFileID != "" }

// Pipeline runs one update through transcription, generation, history
// bookkeeping, synthesis, and delivery. Each webhook delivery gets its own
// invocation; nothing orders concurrent invocations for the same chat.
type Pipeline struct {
	messenger   Messenger
	store       HistoryStore
	transcriber Transcriber
	generator   Generator
	synthesizer Synthesizer
}

func New(m Messenger, store HistoryStore, t Transcriber, g Generator, s Synthesizer) *Pipeline {
	return &Pipeline{
		messenger:   m,
		store:       store,
		transcriber: t,
		generator:   g,
		synthesizer: s,
	}
}

// Process handles a single update. A returned error means the turn was
// aborted before any reply went out (transcription or generation failed);
// every later failure is tolerated and only narrows what gets delivered.
func (p *Pipeline) Process(ctx context.Context, u Update) error {
	turns, err := p.store.Read(ctx, u.ChatID)
	if err != nil {
		// Deliberate absorption: the conversation continues without
		// memory rather than aborting the turn.
		log.Printf("history unavailable for chat %d, continuing without context: %v", u.ChatID, err)
		turns = nil
	}

	input, err := p.resolveInput(ctx, u)
	if err != nil {
		return failure(TranscriptionFailed, err)
	}

	reply, err := p.generator.Reply(ctx, input, turns)
	if err != nil {
		return failure(GenerationFailed, err)
	}

	if err := p.store.Append(ctx, u.ChatID,
		history.Turn{Role: history.RoleUser, Text: input},
		history.Turn{Role: history.RoleBot, Text: reply},
	); err != nil {
		log.Printf("failed to record turns for chat %d: %v", u.ChatID, err)
	}

	audio, synthErr := p.synthesizer.Synthesize(ctx, reply)
	if synthErr != nil {
		log.Printf("%v", failure(SynthesisFailed, synthErr))
	}

	if err := p.messenger.SendMessage(u.ChatID, reply); err != nil {
		// The voice reply is still attempted below, matching the
		// original delivery order.
		log.Printf("%v", failure(DeliveryFailed, err))
	}

	if synthErr == nil {
		filename := fmt.Sprintf("reply-%s.mp3", uuid.NewString())
		if err := p.messenger.SendVoice(u.ChatID, audio, filename); err != nil {
			log.Printf("%v", failure(DeliveryFailed, err))
		}
	}

	return nil
}

func (p *Pipeline) resolveInput(ctx context.Context, u Update) (string, error) {
	if !u.IsVoice() {
		return u.Text, nil
	}
	audio, err := p.messenger.DownloadVoice(ctx, u.VoiceFileID)
	if err != nil {
		return "", err
	}
	transcript, err := p.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return "", err
	}
	return transcript, nil
}
