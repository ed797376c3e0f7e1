package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"voice-chatter/internal/kv"
)

const (
	RoleUser = "user"
	RoleBot  = "bot"

	// MaxTurns is the per-chat retention bound. Oldest turns are
	// dropped first once a chat exceeds it.
	MaxTurns = 50

	keyPrefix = "chat_"
)

// Turn is a single recorded utterance. Immutable once appended.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Store keeps a bounded per-chat conversation log in a key-value substrate.
// A chat's log is created implicitly on first append and never deleted.
type Store struct {
	kv       kv.Store
	maxTurns int
}

func NewStore(store kv.Store) *Store {
	return &Store{kv: store, maxTurns: MaxTurns}
}

func chatKey(chatID int64) string {
	return keyPrefix + strconv.FormatInt(chatID, 10)
}

// Read returns the recorded turns for a chat in arrival order, or an empty
// slice when the chat has no history yet. Storage errors propagate; the caller
// decides whether missing memory is fatal.
func (s *Store) Read(ctx context.Context, chatID int64) ([]Turn, error) {
	raw, ok, err := s.kv.Get(ctx, chatKey(chatID))
	if err != nil {
		return nil, fmt.Errorf("read history for chat %d: %w", chatID, err)
	}
	if !ok {
		return nil, nil
	}
	var turns []Turn
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		return nil, fmt.Errorf("decode history for chat %d: %w", chatID, err)
	}
	return turns, nil
}

// Append concatenates new turns onto the chat's log and truncates to the most
// recent MaxTurns before writing back in a single put. There is no cross-call
// locking: concurrent appends for the same chat are last-writer-wins.
func (s *Store) Append(ctx context.Context, chatID int64, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}
	current, err := s.Read(ctx, chatID)
	if err != nil {
		return err
	}
	current = append(current, turns...)
	if len(current) > s.maxTurns {
		current = current[len(current)-s.maxTurns:]
	}
	raw, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("encode history for chat %d: %w", chatID, err)
	}
	if err := s.kv.Put(ctx, chatKey(chatID), string(raw)); err != nil {
		return fmt.Errorf("write history for chat %d: %w", chatID, err)
	}
	return nil
}
