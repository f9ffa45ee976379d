package models

import (
	"fmt"
	"time"
)

// WordCount is the number of clue words in every puzzle.
const WordCount = 5

// Scoring constants: five words at PointsPerWord plus the final answer bonus.
const (
	PointsPerWord    = 10
	FinalAnswerBonus = 20
	MaxScore         = WordCount*PointsPerWord + FinalAnswerBonus
)

// WordEntry is one clue word of a puzzle
type WordEntry struct {
	Answer string `json:"answer"`
	Clue   string `json:"clue"`
}

// PuzzleContent is an immutable puzzle: a theme and five clue words.
// Daily puzzles are keyed by date (YYYY-MM-DD); bonus puzzles get a random ID.
// Many sessions may reference the same daily content.
type PuzzleContent struct {
	ContentID string      `json:"content_id"`
	Theme     string      `json:"theme"`
	Words     []WordEntry `json:"words"`
	IsDaily   bool        `json:"is_daily"`
	CreatedAt time.Time   `json:"created_at"`
}

// Validate checks the puzzle invariants: exactly five words, non-empty
// theme and answers, answers containing only letters and spaces.
func (p *PuzzleContent) Validate() error {
	if p.Theme == "" {
		return fmt.Errorf("puzzle has empty theme")
	}
	if len(p.Words) != WordCount {
		return fmt.Errorf("puzzle has %d words, want %d", len(p.Words), WordCount)
	}
	for i, w := range p.Words {
		if w.Answer == "" {
			return fmt.Errorf("word %d has empty answer", i+1)
		}
		for _, r := range w.Answer {
			if r != ' ' && !(r >= 'A' && r <= 'Z') && !(r >= 'a' && r <= 'z') {
				return fmt.Errorf("word %d answer %q contains invalid character %q", i+1, w.Answer, r)
			}
		}
	}
	return nil
}
