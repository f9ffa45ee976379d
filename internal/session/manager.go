// Package session coordinates game sessions: it loads and persists state,
// applies the rule engine, composes the player-facing messages, and keeps
// per-player statistics.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"themeclash/internal/content"
	"themeclash/internal/engine"
	"themeclash/internal/models"
	"themeclash/internal/store"
)

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func statsKey(playerID string) string {
	return "stats:" + playerID
}

// activeKey indexes a player's current session for a game kind. Daily games
// are scoped to a date so each new day starts fresh.
func activeKey(playerID string, kind models.GameKind, date string) string {
	if kind == models.KindDaily {
		return fmt.Sprintf("active:%s:daily:%s", playerID, date)
	}
	return fmt.Sprintf("active:%s:bonus", playerID)
}

// Manager is the session orchestrator. All mutating operations serialize on a
// per-session lock, so concurrent requests against the same game apply one at
// a time; the underlying store's create-if-absent settles creation races.
type Manager struct {
	kv      store.Store
	content *content.Store
	engine  *engine.Engine
	log     zerolog.Logger
	now     func() time.Time

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewManager wires a session manager over the given stores.
func NewManager(kv store.Store, cs *content.Store, log zerolog.Logger) *Manager {
	return &Manager{
		kv:      kv,
		content: cs,
		engine:  engine.New(),
		log:     log,
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
}

// lock acquires the named lock, creating it on first use. The returned
// function releases it.
func (m *Manager) lock(name string) func() {
	m.locksMu.Lock()
	mu, ok := m.locks[name]
	if !ok {
		mu = &sync.Mutex{}
		m.locks[name] = mu
	}
	m.locksMu.Unlock()
	mu.Lock()
	return mu.Unlock
}

// StartGame begins or resumes the player's game of the given kind. Starting
// while a session is already active resumes it unchanged; daily games are
// keyed per UTC date, so every player shares the day's puzzle but plays their
// own session.
func (m *Manager) StartGame(ctx context.Context, playerID string, kind models.GameKind) (*models.Snapshot, error) {
	date := m.now().UTC().Format("2006-01-02")
	indexKey := activeKey(playerID, kind, date)
	unlock := m.lock(indexKey)
	defer unlock()

	if raw, err := m.kv.Get(ctx, indexKey); err == nil {
		existing, c, err := m.loadPair(ctx, string(raw))
		if err != nil {
			return nil, err
		}
		// Bonus rounds can be replayed once finished; daily cannot.
		if existing.IsActive || kind == models.KindDaily {
			resumed := existing.IsActive
			if resumed {
				existing.LastMessage = startMessage(existing, c, true)
				existing.UpdatedAt = m.now().UTC()
				if err := m.saveSession(ctx, existing); err != nil {
					return nil, err
				}
			}
			return m.snapshot(existing, c), nil
		}
	} else if err != store.ErrNotFound {
		return nil, err
	}

	var (
		c   *models.PuzzleContent
		err error
	)
	if kind == models.KindDaily {
		c, err = m.content.Daily(ctx, date)
	} else {
		c, err = m.content.Bonus(ctx)
	}
	if err != nil {
		return nil, err
	}

	s := m.newSession(playerID, c, kind)
	s.LastMessage = startMessage(s, c, false)
	if err := m.saveSession(ctx, s); err != nil {
		return nil, err
	}

	stored, created, err := m.kv.CreateIfAbsent(ctx, indexKey, []byte(s.SessionID))
	if err != nil {
		return nil, err
	}
	if !created && string(stored) != s.SessionID {
		if kind == models.KindBonus {
			// A finished bonus session holds the index; replace it.
			if err := m.kv.Put(ctx, indexKey, []byte(s.SessionID)); err != nil {
				return nil, err
			}
		} else {
			// Lost a cross-instance race; the winner's session is the game.
			winner, wc, err := m.loadPair(ctx, string(stored))
			if err != nil {
				return nil, err
			}
			return m.snapshot(winner, wc), nil
		}
	}

	m.log.Info().
		Str("player_id", playerID).
		Str("session_id", s.SessionID).
		Str("kind", string(kind)).
		Str("content_id", c.ContentID).
		Msg("started game")
	return m.snapshot(s, c), nil
}

func (m *Manager) newSession(playerID string, c *models.PuzzleContent, kind models.GameKind) *models.PuzzleSession {
	now := m.now().UTC()
	order := make([]int, models.WordCount)
	for i := range order {
		order[i] = i
	}
	return &models.PuzzleSession{
		SessionID: uuid.NewString(),
		PlayerID:  playerID,
		ContentID: c.ContentID,
		Kind:      kind,
		Phase:     models.PhaseSolving,
		Order:     order,
		Revealed:  make(map[int][]int),
		IsActive:  true,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// GetState returns the current snapshot without mutating the session.
func (m *Manager) GetState(ctx context.Context, sessionID string) (*models.Snapshot, error) {
	s, c, err := m.loadPair(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return m.snapshot(s, c), nil
}

// Answer submits a guess for the current word, or for the theme in the final
// phase.
func (m *Manager) Answer(ctx context.Context, sessionID, guess string) (*models.Snapshot, error) {
	return m.mutate(ctx, sessionID, func(s *models.PuzzleSession, c *models.PuzzleContent) error {
		res, err := m.engine.SubmitAnswer(s, c, guess)
		if err != nil {
			return err
		}
		switch {
		case res.Completed:
			s.LastMessage = completeMessage(s, c)
			m.finishSession(ctx, s, c)
		case res.Correct:
			s.LastMessage = correctWordMessage(s, c, res)
		default:
			s.LastMessage = wrongAnswerMessage(s, c)
		}
		return nil
	})
}

// Reveal uncovers one letter of the current word, or of the theme in the
// final phase.
func (m *Manager) Reveal(ctx context.Context, sessionID string) (*models.Snapshot, error) {
	return m.mutate(ctx, sessionID, func(s *models.PuzzleSession, c *models.PuzzleContent) error {
		res, err := m.engine.RevealLetter(s, c)
		if err != nil {
			return err
		}
		s.LastMessage = revealMessage(s, c, res)
		return nil
	})
}

// Skip defers the current word to the back of the queue.
func (m *Manager) Skip(ctx context.Context, sessionID string) (*models.Snapshot, error) {
	return m.mutate(ctx, sessionID, func(s *models.PuzzleSession, c *models.PuzzleContent) error {
		if _, err := m.engine.SkipWord(s); err != nil {
			return err
		}
		s.LastMessage = skipMessage(s, c)
		return nil
	})
}

// Repeat re-states the current clue. It counts as a session touch but changes
// no game state.
func (m *Manager) Repeat(ctx context.Context, sessionID string) (*models.Snapshot, error) {
	return m.mutate(ctx, sessionID, func(s *models.PuzzleSession, c *models.PuzzleContent) error {
		if _, err := engine.RepeatClue(s, c); err != nil {
			return err
		}
		s.LastMessage = cluePrompt(s, c)
		return nil
	})
}

// GiveUp ends the game, revealing all answers.
func (m *Manager) GiveUp(ctx context.Context, sessionID string) (*models.Snapshot, error) {
	return m.mutate(ctx, sessionID, func(s *models.PuzzleSession, c *models.PuzzleContent) error {
		if err := m.engine.GiveUp(s, c); err != nil {
			return err
		}
		s.LastMessage = giveUpMessage(s, c)
		m.finishSession(ctx, s, c)
		return nil
	})
}

// mutate runs op against the locked, freshly loaded session and persists the
// result. The operation's error aborts the save.
func (m *Manager) mutate(ctx context.Context, sessionID string, op func(*models.PuzzleSession, *models.PuzzleContent) error) (*models.Snapshot, error) {
	unlock := m.lock(sessionKey(sessionID))
	defer unlock()

	s, c, err := m.loadPair(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := op(s, c); err != nil {
		return nil, err
	}
	s.UpdatedAt = m.now().UTC()
	if err := m.saveSession(ctx, s); err != nil {
		return nil, err
	}
	return m.snapshot(s, c), nil
}

// finishSession stamps completion and folds the result into the player's
// stats. Stats are best-effort; a stats failure never fails the game move.
func (m *Manager) finishSession(ctx context.Context, s *models.PuzzleSession, c *models.PuzzleContent) {
	done := m.now().UTC()
	s.CompletedAt = &done

	unlock := m.lock(statsKey(s.PlayerID))
	defer unlock()

	stats := &models.PlayerStats{PlayerID: s.PlayerID}
	if raw, err := m.kv.Get(ctx, statsKey(s.PlayerID)); err == nil {
		if err := json.Unmarshal(raw, stats); err != nil {
			m.log.Warn().Err(err).Str("player_id", s.PlayerID).Msg("discarding corrupt stats record")
			stats = &models.PlayerStats{PlayerID: s.PlayerID}
		}
	} else if err != store.ErrNotFound {
		m.log.Warn().Err(err).Str("player_id", s.PlayerID).Msg("failed to load stats")
		return
	}

	stats.TotalGames++
	stats.TotalScore += s.Score
	if s.GaveUp {
		stats.CurrentStreak = 0
	} else {
		stats.GamesCompleted++
		stats.CurrentStreak++
		if s.Score == models.MaxScore {
			stats.PerfectGames++
		}
	}
	stats.UpdatedAt = m.now().UTC()

	raw, err := json.Marshal(stats)
	if err != nil {
		m.log.Warn().Err(err).Str("player_id", s.PlayerID).Msg("failed to encode stats")
		return
	}
	if err := m.kv.Put(ctx, statsKey(s.PlayerID), raw); err != nil {
		m.log.Warn().Err(err).Str("player_id", s.PlayerID).Msg("failed to save stats")
	}
}

// Stats returns the player's aggregate results. Players with no finished
// games get a zeroed record.
func (m *Manager) Stats(ctx context.Context, playerID string) (*models.PlayerStats, error) {
	raw, err := m.kv.Get(ctx, statsKey(playerID))
	if err == store.ErrNotFound {
		return &models.PlayerStats{PlayerID: playerID}, nil
	}
	if err != nil {
		return nil, err
	}
	var stats models.PlayerStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats for %s: %w", playerID, err)
	}
	return &stats, nil
}

func (m *Manager) loadPair(ctx context.Context, sessionID string) (*models.PuzzleSession, *models.PuzzleContent, error) {
	raw, err := m.kv.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, nil, err
	}
	var s models.PuzzleSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	c, err := m.content.Get(ctx, s.ContentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load content for session %s: %w", sessionID, err)
	}
	return &s, c, nil
}

func (m *Manager) saveSession(ctx context.Context, s *models.PuzzleSession) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", s.SessionID, err)
	}
	return m.kv.Put(ctx, sessionKey(s.SessionID), raw)
}

// snapshot projects the session into the stable shape returned to callers.
func (m *Manager) snapshot(s *models.PuzzleSession, c *models.PuzzleContent) *models.Snapshot {
	snap := &models.Snapshot{
		GameID:        s.SessionID,
		Phase:         s.Phase,
		Score:         s.Score,
		Reveals:       s.RevealCredits,
		Blanks:        engine.CurrentBlanks(s, c),
		IsActive:      s.IsActive,
		ThemeRevealed: s.ThemeRevealed,
		LastMessage:   s.LastMessage,
	}

	if s.Phase == models.PhaseSolving {
		snap.WordNumber = strconv.Itoa(len(s.Solved) + 1)
		if w, ok := s.CurrentWord(); ok {
			snap.Clue = c.Words[w].Clue
		}
	} else {
		snap.WordNumber = "final"
	}

	indices := append([]int(nil), s.Solved...)
	sort.Ints(indices)
	snap.SolvedWordIndices = indices
	snap.SolvedWords = make([]string, len(indices))
	for i, w := range indices {
		snap.SolvedWords[i] = c.Words[w].Answer
	}
	return snap
}
