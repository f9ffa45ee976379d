package models

import "time"

// Phase identifies where a session is in its lifecycle.
type Phase string

const (
	// PhaseSolving is phase one: the player works through the five clue words.
	PhaseSolving Phase = "solving"
	// PhaseFinalAnswer is phase two: all words solved, the player guesses the theme.
	PhaseFinalAnswer Phase = "final_answer"
	// PhaseComplete is terminal; no further mutation is accepted.
	PhaseComplete Phase = "complete"
)

// GameKind distinguishes the shared daily puzzle from on-demand bonus rounds.
type GameKind string

const (
	KindDaily GameKind = "daily"
	KindBonus GameKind = "bonus"
)

// PuzzleSession is one play-through of a puzzle. It is mutated by every
// operation except repeat and becomes read-only once Phase is complete.
type PuzzleSession struct {
	SessionID string   `json:"session_id"`
	PlayerID  string   `json:"player_id"`
	ContentID string   `json:"content_id"`
	Kind      GameKind `json:"kind"`
	Phase     Phase    `json:"phase"`

	// Order holds the not-yet-solved word indices in attempt order; Cursor
	// points at the word currently being asked. Skipping moves the current
	// index to the back of Order. Solving removes it, so
	// len(Solved) + len(Order) == WordCount at all times during solving.
	Order  []int `json:"order"`
	Cursor int   `json:"cursor"`

	Solved  []int `json:"solved"`
	Skipped []int `json:"skipped"`

	// Revealed maps word index to revealed letter positions in the raw answer.
	Revealed map[int][]int `json:"revealed"`

	// FinalRevealed holds revealed theme letter positions. The automatic hint
	// granted on entering the final phase lands here too; FinalRevealUsed
	// tracks only the single manual reveal the final phase allows.
	FinalRevealed   []int `json:"final_revealed"`
	FinalRevealUsed bool  `json:"final_reveal_used"`

	Score         int `json:"score"`
	RevealCredits int `json:"reveal_credits"`

	IsActive      bool   `json:"is_active"`
	GaveUp        bool   `json:"gave_up"`
	ThemeRevealed string `json:"theme_revealed,omitempty"`
	LastMessage   string `json:"last_message,omitempty"`

	StartedAt   time.Time  `json:"started_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CurrentWord returns the index of the word currently being asked.
// The second return is false outside the solving phase.
func (s *PuzzleSession) CurrentWord() (int, bool) {
	if s.Phase != PhaseSolving || len(s.Order) == 0 {
		return 0, false
	}
	if s.Cursor < 0 || s.Cursor >= len(s.Order) {
		return s.Order[0], true
	}
	return s.Order[s.Cursor], true
}

// HasSolved reports whether the given word index has been solved.
func (s *PuzzleSession) HasSolved(wordIndex int) bool {
	for _, i := range s.Solved {
		if i == wordIndex {
			return true
		}
	}
	return false
}

// Snapshot is the stable state shape returned to callers after every
// operation; transports render or speak from it directly.
type Snapshot struct {
	GameID            string   `json:"game_id"`
	Phase             Phase    `json:"phase"`
	WordNumber        string   `json:"word_number"` // "1".."5", or "final"
	Score             int      `json:"score"`
	Reveals           int      `json:"reveals"`
	Blanks            string   `json:"blanks"`
	Clue              string   `json:"clue"`
	SolvedWords       []string `json:"solved_words"`
	SolvedWordIndices []int    `json:"solved_word_indices"`
	IsActive          bool     `json:"is_active"`
	ThemeRevealed     string   `json:"theme_revealed,omitempty"`
	LastMessage       string   `json:"last_message,omitempty"`
}

// PlayerStats aggregates a player's results across completed sessions.
type PlayerStats struct {
	PlayerID       string    `json:"player_id"`
	TotalGames     int       `json:"total_games"`
	GamesCompleted int       `json:"games_completed"`
	TotalScore     int       `json:"total_score"`
	PerfectGames   int       `json:"perfect_games"`
	CurrentStreak  int       `json:"current_streak"`
	UpdatedAt      time.Time `json:"updated_at"`
}
