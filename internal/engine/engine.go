// Package engine holds the pure rule logic of the word puzzle: answer
// matching, letter reveals, scoring, skip ordering, and phase transitions.
// It performs no I/O and composes no player-facing text; the session
// manager owns both.
package engine

import (
	"math/rand"
	"strings"

	"themeclash/internal/models"
)

// Engine applies game rules to a session. The only non-determinism is the
// choice of which letter to reveal; tests pin it by replacing pick.
type Engine struct {
	pick func(n int) int
}

// New constructs an Engine with random letter selection.
func New() *Engine {
	return &Engine{pick: rand.Intn}
}

// Normalize uppercases text and strips all whitespace. Every answer
// comparison goes through it.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToUpper(text)), "")
}

// AnswerResult describes the outcome of an answer submission.
type AnswerResult struct {
	Correct       bool
	CorrectAnswer string // the answer compared against (word or theme)
	WordIndex     int    // word attempted, -1 when guessing the theme
	PhaseChanged  bool   // all five words solved by this answer
	Completed     bool   // theme guessed, session now complete
	HintPos       int    // theme position revealed on phase change, -1 if none
}

// SubmitAnswer evaluates raw against the current word (solving) or the
// theme (final phase), mutating the session on a correct answer.
func (e *Engine) SubmitAnswer(s *models.PuzzleSession, c *models.PuzzleContent, raw string) (*AnswerResult, error) {
	switch s.Phase {
	case models.PhaseSolving:
		return e.submitWordAnswer(s, c, raw)
	case models.PhaseFinalAnswer:
		return submitThemeAnswer(s, c, raw)
	default:
		return nil, ErrInvalidPhase
	}
}

func (e *Engine) submitWordAnswer(s *models.PuzzleSession, c *models.PuzzleContent, raw string) (*AnswerResult, error) {
	w, ok := s.CurrentWord()
	if !ok {
		return nil, ErrInvalidPhase
	}
	answer := c.Words[w].Answer
	guess := Normalize(raw)

	res := &AnswerResult{CorrectAnswer: answer, WordIndex: w, HintPos: -1}

	// Revealed letters are ground truth: a guess that contradicts one is
	// wrong before the whole-string comparison is even considered.
	if !matchesRevealed(answer, guess, s.Revealed[w]) || guess != Normalize(answer) {
		return res, nil
	}

	res.Correct = true
	s.Score += models.PointsPerWord
	s.RevealCredits++
	s.Solved = append(s.Solved, w)
	s.Skipped = removeIndex(s.Skipped, w)
	s.Order = append(s.Order[:s.Cursor], s.Order[s.Cursor+1:]...)

	if len(s.Solved) == models.WordCount {
		s.Phase = models.PhaseFinalAnswer
		s.Order = nil
		s.Cursor = 0
		res.PhaseChanged = true

		// Entry hint: one theme letter for free. It does not count as the
		// final phase's single manual reveal.
		if positions := letterPositions(c.Theme); len(positions) > 0 {
			pos := positions[e.pick(len(positions))]
			s.FinalRevealed = append(s.FinalRevealed, pos)
			res.HintPos = pos
		}
		return res, nil
	}

	if s.Cursor >= len(s.Order) {
		s.Cursor = 0
	}
	return res, nil
}

func submitThemeAnswer(s *models.PuzzleSession, c *models.PuzzleContent, raw string) (*AnswerResult, error) {
	res := &AnswerResult{CorrectAnswer: c.Theme, WordIndex: -1, HintPos: -1}
	if Normalize(raw) != Normalize(c.Theme) {
		// No move limit: a wrong theme guess leaves the session untouched.
		return res, nil
	}

	res.Correct = true
	res.Completed = true
	s.Score += models.FinalAnswerBonus
	s.Phase = models.PhaseComplete
	s.IsActive = false
	s.ThemeRevealed = c.Theme
	return res, nil
}

// RevealResult describes a successful letter reveal.
type RevealResult struct {
	WordIndex   int // -1 when the theme letter was revealed
	Position    int // position in the raw word
	Letter      string
	CreditsLeft int
}

// RevealLetter uncovers one random unrevealed letter of the current focus.
// In the solving phase it costs a credit; the final phase allows exactly one
// manual reveal per session regardless of credits.
func (e *Engine) RevealLetter(s *models.PuzzleSession, c *models.PuzzleContent) (*RevealResult, error) {
	switch s.Phase {
	case models.PhaseSolving:
		if s.RevealCredits == 0 {
			return nil, ErrNoRevealsLeft
		}
		w, ok := s.CurrentWord()
		if !ok {
			return nil, ErrInvalidPhase
		}
		answer := c.Words[w].Answer
		unrevealed := unrevealedPositions(answer, s.Revealed[w])
		if len(unrevealed) == 0 {
			return nil, ErrAllLettersRevealed
		}
		pos := unrevealed[e.pick(len(unrevealed))]
		if s.Revealed == nil {
			s.Revealed = make(map[int][]int)
		}
		s.Revealed[w] = append(s.Revealed[w], pos)
		s.RevealCredits--
		return &RevealResult{
			WordIndex:   w,
			Position:    pos,
			Letter:      string(answer[pos]),
			CreditsLeft: s.RevealCredits,
		}, nil

	case models.PhaseFinalAnswer:
		if s.FinalRevealUsed {
			return nil, ErrRevealExhausted
		}
		unrevealed := unrevealedPositions(c.Theme, s.FinalRevealed)
		if len(unrevealed) == 0 {
			return nil, ErrAllLettersRevealed
		}
		pos := unrevealed[e.pick(len(unrevealed))]
		s.FinalRevealed = append(s.FinalRevealed, pos)
		s.FinalRevealUsed = true
		return &RevealResult{
			WordIndex:   -1,
			Position:    pos,
			Letter:      string(c.Theme[pos]),
			CreditsLeft: s.RevealCredits,
		}, nil

	default:
		return nil, ErrInvalidPhase
	}
}

// SkipResult describes a skip: which word was deferred and which is next.
type SkipResult struct {
	Skipped int
	Next    int
}

// SkipWord defers the current word to the back of the order. The word stays
// in play; skipping never re-presents the same word immediately unless it is
// the only unsolved word left.
func (e *Engine) SkipWord(s *models.PuzzleSession) (*SkipResult, error) {
	if s.Phase != models.PhaseSolving {
		return nil, ErrInvalidPhase
	}
	w, ok := s.CurrentWord()
	if !ok {
		return nil, ErrInvalidPhase
	}

	s.Order = append(s.Order[:s.Cursor], s.Order[s.Cursor+1:]...)
	s.Order = append(s.Order, w)
	s.Skipped = removeIndex(s.Skipped, w)
	s.Skipped = append(s.Skipped, w)

	if s.Cursor >= len(s.Order) {
		s.Cursor = 0
	}
	if len(s.Order) > 1 && s.Order[s.Cursor] == w {
		s.Cursor = 0
	}
	return &SkipResult{Skipped: w, Next: s.Order[s.Cursor]}, nil
}

// RepeatClue returns the clue for the current word. It never mutates the
// session. In the final phase there is no word clue; the caller renders the
// theme prompt instead.
func RepeatClue(s *models.PuzzleSession, c *models.PuzzleContent) (string, error) {
	switch s.Phase {
	case models.PhaseSolving:
		w, ok := s.CurrentWord()
		if !ok {
			return "", ErrInvalidPhase
		}
		return c.Words[w].Clue, nil
	case models.PhaseFinalAnswer:
		return "", nil
	default:
		return "", ErrInvalidPhase
	}
}

// GiveUp ends the session, revealing the theme.
func (e *Engine) GiveUp(s *models.PuzzleSession, c *models.PuzzleContent) error {
	if s.Phase == models.PhaseComplete {
		return ErrInvalidPhase
	}
	s.Phase = models.PhaseComplete
	s.IsActive = false
	s.GaveUp = true
	s.ThemeRevealed = c.Theme
	return nil
}

// BlanksFor renders word as underscore blanks with revealed letters shown in
// place. Word boundaries in multi-word answers become a wide gap.
func BlanksFor(word string, revealed []int) string {
	revealedSet := make(map[int]bool, len(revealed))
	for _, p := range revealed {
		revealedSet[p] = true
	}

	var parts []string
	for i, r := range word {
		if r == ' ' {
			if len(parts) > 0 && parts[len(parts)-1] == " " {
				parts = parts[:len(parts)-1]
			}
			parts = append(parts, "   ")
			continue
		}
		if revealedSet[i] {
			parts = append(parts, string(r))
		} else {
			parts = append(parts, "_")
		}
		parts = append(parts, " ")
	}
	if len(parts) > 0 && parts[len(parts)-1] == " " {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, "")
}

// CurrentBlanks renders the blanks for the session's current focus: the
// current word while solving, the theme afterwards. Completed sessions show
// the theme fully spelled out.
func CurrentBlanks(s *models.PuzzleSession, c *models.PuzzleContent) string {
	switch s.Phase {
	case models.PhaseSolving:
		w, ok := s.CurrentWord()
		if !ok {
			return ""
		}
		return BlanksFor(c.Words[w].Answer, s.Revealed[w])
	case models.PhaseFinalAnswer:
		return BlanksFor(c.Theme, s.FinalRevealed)
	default:
		return BlanksFor(c.Theme, letterPositions(c.Theme))
	}
}

// matchesRevealed checks the guess against every already-revealed letter of
// answer. Positions index the raw answer; they are mapped to the normalized
// guess by discounting spaces.
func matchesRevealed(answer, guess string, revealed []int) bool {
	want := Normalize(answer)
	for _, pos := range revealed {
		if pos < 0 || pos >= len(answer) {
			continue
		}
		ni := 0
		for _, r := range answer[:pos] {
			if r != ' ' {
				ni++
			}
		}
		if ni >= len(guess) || ni >= len(want) || guess[ni] != want[ni] {
			return false
		}
	}
	return true
}

// letterPositions returns every non-space position of word.
func letterPositions(word string) []int {
	var positions []int
	for i, r := range word {
		if r != ' ' {
			positions = append(positions, i)
		}
	}
	return positions
}

// unrevealedPositions returns the non-space positions of word not yet revealed.
func unrevealedPositions(word string, revealed []int) []int {
	revealedSet := make(map[int]bool, len(revealed))
	for _, p := range revealed {
		revealedSet[p] = true
	}
	var positions []int
	for i, r := range word {
		if r != ' ' && !revealedSet[i] {
			positions = append(positions, i)
		}
	}
	return positions
}

func removeIndex(indices []int, target int) []int {
	out := indices[:0]
	for _, i := range indices {
		if i != target {
			out = append(out, i)
		}
	}
	return out
}
