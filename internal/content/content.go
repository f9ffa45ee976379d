package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"themeclash/internal/models"
	"themeclash/internal/store"
)

func contentKey(contentID string) string {
	return "content:" + contentID
}

// Store hands out puzzle content. Daily puzzles are created once per date
// and shared by every session that day; bonus puzzles are generated fresh
// with a random id. Provider failures are absorbed by the fallback table
// and never surface to callers.
type Store struct {
	kv       store.Store
	provider Provider
	log      zerolog.Logger

	// Serializes daily generation so concurrent first requests of a new day
	// call the provider once; cross-instance races are settled by the
	// store's create-if-absent.
	genMu sync.Mutex
}

// NewStore creates a content store over the given key-value store and provider.
func NewStore(kv store.Store, provider Provider, log zerolog.Logger) *Store {
	return &Store{kv: kv, provider: provider, log: log}
}

// Get loads previously created content by id.
func (s *Store) Get(ctx context.Context, contentID string) (*models.PuzzleContent, error) {
	raw, err := s.kv.Get(ctx, contentKey(contentID))
	if err != nil {
		return nil, err
	}
	var puzzle models.PuzzleContent
	if err := json.Unmarshal(raw, &puzzle); err != nil {
		return nil, fmt.Errorf("failed to decode content %s: %w", contentID, err)
	}
	return &puzzle, nil
}

// Daily returns the puzzle for the given date (YYYY-MM-DD), generating and
// caching it on the first request of the day.
func (s *Store) Daily(ctx context.Context, date string) (*models.PuzzleContent, error) {
	if puzzle, err := s.Get(ctx, date); err == nil {
		return puzzle, nil
	} else if err != store.ErrNotFound {
		return nil, err
	}

	s.genMu.Lock()
	defer s.genMu.Unlock()

	// Another request may have generated it while we waited on the lock.
	if puzzle, err := s.Get(ctx, date); err == nil {
		return puzzle, nil
	}

	puzzle := s.generate(ctx)
	puzzle.ContentID = date
	puzzle.IsDaily = true
	puzzle.CreatedAt = time.Now().UTC()

	value, err := json.Marshal(puzzle)
	if err != nil {
		return nil, fmt.Errorf("failed to encode daily content: %w", err)
	}
	stored, created, err := s.kv.CreateIfAbsent(ctx, contentKey(date), value)
	if err != nil {
		return nil, err
	}
	if !created {
		// Lost the race to another instance; use the winner's puzzle.
		var winner models.PuzzleContent
		if err := json.Unmarshal(stored, &winner); err != nil {
			return nil, fmt.Errorf("failed to decode daily content: %w", err)
		}
		return &winner, nil
	}

	s.log.Info().Str("date", date).Str("theme", puzzle.Theme).Msg("created daily puzzle")
	return puzzle, nil
}

// Bonus generates a fresh puzzle under a random id.
func (s *Store) Bonus(ctx context.Context) (*models.PuzzleContent, error) {
	puzzle := s.generate(ctx)
	puzzle.ContentID = "bonus-" + uuid.NewString()
	puzzle.IsDaily = false
	puzzle.CreatedAt = time.Now().UTC()

	value, err := json.Marshal(puzzle)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bonus content: %w", err)
	}
	if err := s.kv.Put(ctx, contentKey(puzzle.ContentID), value); err != nil {
		return nil, err
	}

	s.log.Info().Str("content_id", puzzle.ContentID).Str("theme", puzzle.Theme).Msg("created bonus puzzle")
	return puzzle, nil
}

// generate asks the provider for a puzzle, substituting a fallback on any
// failure.
func (s *Store) generate(ctx context.Context) *models.PuzzleContent {
	puzzle, err := s.provider.GeneratePuzzle(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("puzzle generation failed, using fallback")
		return fallbackPuzzle()
	}
	return puzzle
}
