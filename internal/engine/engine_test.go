package engine

import (
	"errors"
	"testing"

	"themeclash/internal/models"
)

func testContent() *models.PuzzleContent {
	return &models.PuzzleContent{
		ContentID: "2026-01-02",
		Theme:     "CAROUSEL",
		IsDaily:   true,
		Words: []models.WordEntry{
			{Answer: "HORSES", Clue: "Animals you ride in circles"},
			{Answer: "POLES", Clue: "Vertical metal bars to hold onto"},
			{Answer: "ROTATE", Clue: "Spin around in circles"},
			{Answer: "MUSIC", Clue: "Sound played from the organ"},
			{Answer: "CARNIVAL", Clue: "Event where you find this ride"},
		},
	}
}

func testSession() *models.PuzzleSession {
	return &models.PuzzleSession{
		SessionID: "s1",
		ContentID: "2026-01-02",
		Kind:      models.KindDaily,
		Phase:     models.PhaseSolving,
		Order:     []int{0, 1, 2, 3, 4},
		Revealed:  make(map[int][]int),
		IsActive:  true,
	}
}

// fixedEngine always reveals the first eligible position.
func fixedEngine() *Engine {
	return &Engine{pick: func(n int) int { return 0 }}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase", in: "dog", want: "DOG"},
		{name: "surrounding whitespace", in: "  dog \n", want: "DOG"},
		{name: "internal spaces stripped", in: "ferris wheel", want: "FERRISWHEEL"},
		{name: "mixed case multi word", in: "Ice  Cream", want: "ICECREAM"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBlanksFor(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		revealed []int
		want     string
	}{
		{name: "nothing revealed", word: "DOG", want: "_ _ _"},
		{name: "first letter", word: "DOG", revealed: []int{0}, want: "D _ _"},
		{name: "all letters", word: "DOG", revealed: []int{0, 1, 2}, want: "D O G"},
		{name: "multi word gap", word: "ICE CREAM", want: "_ _ _   _ _ _ _ _"},
		{name: "multi word with reveals", word: "ICE CREAM", revealed: []int{0, 4}, want: "I _ _   C _ _ _ _"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BlanksFor(tt.word, tt.revealed); got != tt.want {
				t.Errorf("BlanksFor(%q, %v) = %q, want %q", tt.word, tt.revealed, got, tt.want)
			}
		})
	}
}

func TestSubmitAnswerCorrectWord(t *testing.T) {
	e := fixedEngine()
	s := testSession()
	c := testContent()

	res, err := e.SubmitAnswer(s, c, "horses")
	if err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}
	if !res.Correct {
		t.Fatal("answer should be correct")
	}
	if s.Score != 10 {
		t.Errorf("Score = %d, want 10", s.Score)
	}
	if s.RevealCredits != 1 {
		t.Errorf("RevealCredits = %d, want 1", s.RevealCredits)
	}
	if !s.HasSolved(0) {
		t.Error("word 0 should be solved")
	}
	if len(s.Solved)+len(s.Order) != models.WordCount {
		t.Errorf("solved+remaining = %d, want %d", len(s.Solved)+len(s.Order), models.WordCount)
	}
	if w, _ := s.CurrentWord(); w != 1 {
		t.Errorf("current word = %d, want 1", w)
	}
}

func TestSubmitAnswerWrongWord(t *testing.T) {
	e := fixedEngine()
	s := testSession()
	c := testContent()

	res, err := e.SubmitAnswer(s, c, "donkeys")
	if err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}
	if res.Correct {
		t.Fatal("answer should be wrong")
	}
	if res.CorrectAnswer != "HORSES" {
		t.Errorf("CorrectAnswer = %s, want HORSES", res.CorrectAnswer)
	}
	if s.Score != 0 || s.RevealCredits != 0 || len(s.Solved) != 0 {
		t.Error("wrong answer must not mutate score, credits, or solved set")
	}
	if w, _ := s.CurrentWord(); w != 0 {
		t.Errorf("current word = %d, want to stay on 0", w)
	}
}

func TestSubmitAnswerIgnoresCaseAndSpaces(t *testing.T) {
	e := fixedEngine()
	s := testSession()
	c := testContent()
	c.Words[0].Answer = "ICE CREAM"

	res, err := e.SubmitAnswer(s, c, "  icecream ")
	if err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}
	if !res.Correct {
		t.Error("case and spacing must not matter")
	}
}

func TestSubmitAnswerRevealedLetterMismatch(t *testing.T) {
	e := fixedEngine()
	s := testSession()
	c := testContent()

	// Letter 0 of HORSES is revealed; a guess whose letter 0 contradicts it
	// is wrong even before the full comparison.
	s.Revealed[0] = []int{0}

	res, err := e.SubmitAnswer(s, c, "borses")
	if err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}
	if res.Correct {
		t.Error("guess contradicting a revealed letter must be wrong")
	}

	res, err = e.SubmitAnswer(s, c, "horses")
	if err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}
	if !res.Correct {
		t.Error("guess agreeing with the revealed letter should succeed")
	}
}

func TestSubmitAnswerPhaseTransition(t *testing.T) {
	e := fixedEngine()
	s := testSession()
	c := testContent()

	answers := []string{"horses", "poles", "rotate", "music", "carnival"}
	for i, a := range answers {
		res, err := e.SubmitAnswer(s, c, a)
		if err != nil {
			t.Fatalf("answer %d: SubmitAnswer() error = %v", i, err)
		}
		if !res.Correct {
			t.Fatalf("answer %d should be correct", i)
		}
		if i < len(answers)-1 && res.PhaseChanged {
			t.Fatalf("answer %d: phase changed too early", i)
		}
	}

	if s.Phase != models.PhaseFinalAnswer {
		t.Fatalf("Phase = %v, want final_answer", s.Phase)
	}
	if s.Score != 50 {
		t.Errorf("Score = %d, want 50", s.Score)
	}
	if s.RevealCredits != 5 {
		t.Errorf("RevealCredits = %d, want 5", s.RevealCredits)
	}
	if len(s.Order) != 0 {
		t.Errorf("Order should be cleared, got %v", s.Order)
	}
	if len(s.FinalRevealed) != 1 {
		t.Errorf("entry hint should reveal exactly one theme letter, got %v", s.FinalRevealed)
	}
}

func TestSubmitAnswerTheme(t *testing.T) {
	e := fixedEngine()
	c := testContent()

	t.Run("wrong theme leaves session untouched", func(t *testing.T) {
		s := solvedSession(t, e, c)
		before := s.Score

		res, err := e.SubmitAnswer(s, c, "merry go round")
		if err != nil {
			t.Fatalf("SubmitAnswer() error = %v", err)
		}
		if res.Correct {
			t.Fatal("theme guess should be wrong")
		}
		if s.Phase != models.PhaseFinalAnswer || s.Score != before || !s.IsActive {
			t.Error("wrong theme guess must not mutate the session")
		}
	})

	t.Run("correct theme completes the game", func(t *testing.T) {
		s := solvedSession(t, e, c)

		res, err := e.SubmitAnswer(s, c, "carousel")
		if err != nil {
			t.Fatalf("SubmitAnswer() error = %v", err)
		}
		if !res.Correct || !res.Completed {
			t.Fatal("correct theme should complete the game")
		}
		if s.Score != models.MaxScore {
			t.Errorf("Score = %d, want %d", s.Score, models.MaxScore)
		}
		if s.Phase != models.PhaseComplete || s.IsActive {
			t.Error("session should be complete and inactive")
		}
		if s.ThemeRevealed != "CAROUSEL" {
			t.Errorf("ThemeRevealed = %s, want CAROUSEL", s.ThemeRevealed)
		}
	})

	t.Run("complete session rejects answers", func(t *testing.T) {
		s := solvedSession(t, e, c)
		if _, err := e.SubmitAnswer(s, c, "carousel"); err != nil {
			t.Fatalf("SubmitAnswer() error = %v", err)
		}
		if _, err := e.SubmitAnswer(s, c, "carousel"); !errors.Is(err, ErrInvalidPhase) {
			t.Errorf("error = %v, want ErrInvalidPhase", err)
		}
	})
}

// solvedSession plays all five words to reach the final phase.
func solvedSession(t *testing.T, e *Engine, c *models.PuzzleContent) *models.PuzzleSession {
	t.Helper()
	s := testSession()
	for _, a := range []string{"horses", "poles", "rotate", "music", "carnival"} {
		res, err := e.SubmitAnswer(s, c, a)
		if err != nil || !res.Correct {
			t.Fatalf("setup answer %q failed: res=%+v err=%v", a, res, err)
		}
	}
	return s
}

func TestRevealLetterSolving(t *testing.T) {
	e := fixedEngine()
	c := testContent()

	t.Run("no credits", func(t *testing.T) {
		s := testSession()
		_, err := e.RevealLetter(s, c)
		if !errors.Is(err, ErrNoRevealsLeft) {
			t.Errorf("error = %v, want ErrNoRevealsLeft", err)
		}
		if len(s.Revealed) != 0 {
			t.Error("failed reveal must not mutate state")
		}
	})

	t.Run("spends a credit and never repeats a position", func(t *testing.T) {
		s := testSession()
		s.RevealCredits = 10

		// POLES has 5 letters; move to word 1 by solving word 0 first.
		if _, err := e.SubmitAnswer(s, c, "horses"); err != nil {
			t.Fatal(err)
		}

		seen := make(map[int]bool)
		for i := 0; i < 5; i++ {
			res, err := e.RevealLetter(s, c)
			if err != nil {
				t.Fatalf("reveal %d: error = %v", i, err)
			}
			if seen[res.Position] {
				t.Fatalf("position %d revealed twice", res.Position)
			}
			seen[res.Position] = true
		}

		if _, err := e.RevealLetter(s, c); !errors.Is(err, ErrAllLettersRevealed) {
			t.Errorf("sixth reveal error = %v, want ErrAllLettersRevealed", err)
		}
	})
}

func TestRevealLetterFinalPhase(t *testing.T) {
	e := fixedEngine()
	c := testContent()
	s := solvedSession(t, e, c)

	res, err := e.RevealLetter(s, c)
	if err != nil {
		t.Fatalf("RevealLetter() error = %v", err)
	}
	if res.WordIndex != -1 {
		t.Errorf("WordIndex = %d, want -1 for theme", res.WordIndex)
	}
	if !s.FinalRevealUsed {
		t.Error("FinalRevealUsed should be set")
	}
	if s.RevealCredits != 5 {
		t.Errorf("final reveal must not consume credits, got %d", s.RevealCredits)
	}

	// One manual reveal per session, credits notwithstanding.
	if _, err := e.RevealLetter(s, c); !errors.Is(err, ErrRevealExhausted) {
		t.Errorf("second final reveal error = %v, want ErrRevealExhausted", err)
	}
}

func TestSkipWord(t *testing.T) {
	e := fixedEngine()

	t.Run("moves current word to the back", func(t *testing.T) {
		s := testSession()
		res, err := e.SkipWord(s)
		if err != nil {
			t.Fatalf("SkipWord() error = %v", err)
		}
		if res.Skipped != 0 || res.Next != 1 {
			t.Errorf("skip = %+v, want skipped 0 next 1", res)
		}
		want := []int{1, 2, 3, 4, 0}
		for i, w := range want {
			if s.Order[i] != w {
				t.Fatalf("Order = %v, want %v", s.Order, want)
			}
		}
		if len(s.Skipped) != 1 || s.Skipped[0] != 0 {
			t.Errorf("Skipped = %v, want [0]", s.Skipped)
		}
	})

	t.Run("skipped word stays solvable", func(t *testing.T) {
		s := testSession()
		c := testContent()
		if _, err := e.SkipWord(s); err != nil {
			t.Fatal(err)
		}
		for _, a := range []string{"poles", "rotate", "music", "carnival"} {
			if res, err := e.SubmitAnswer(s, c, a); err != nil || !res.Correct {
				t.Fatalf("answer %q failed", a)
			}
		}
		// Back to the skipped word.
		if w, _ := s.CurrentWord(); w != 0 {
			t.Fatalf("current word = %d, want skipped word 0", w)
		}
		res, err := e.SubmitAnswer(s, c, "horses")
		if err != nil || !res.Correct {
			t.Fatal("skipped word should still be solvable")
		}
		if s.Phase != models.PhaseFinalAnswer {
			t.Errorf("Phase = %v, want final_answer", s.Phase)
		}
	})

	t.Run("sole remaining word round-robins to itself", func(t *testing.T) {
		s := testSession()
		c := testContent()
		for _, a := range []string{"horses", "poles", "rotate", "music"} {
			if _, err := e.SubmitAnswer(s, c, a); err != nil {
				t.Fatal(err)
			}
		}
		res, err := e.SkipWord(s)
		if err != nil {
			t.Fatalf("SkipWord() error = %v", err)
		}
		if res.Next != 4 {
			t.Errorf("Next = %d, want 4 (only word left)", res.Next)
		}
	})

	t.Run("rejected outside solving", func(t *testing.T) {
		c := testContent()
		s := solvedSession(t, e, c)
		if _, err := e.SkipWord(s); !errors.Is(err, ErrInvalidPhase) {
			t.Errorf("error = %v, want ErrInvalidPhase", err)
		}
	})
}

func TestRepeatClue(t *testing.T) {
	e := fixedEngine()
	c := testContent()

	t.Run("idempotent", func(t *testing.T) {
		s := testSession()
		first, err := RepeatClue(s, c)
		if err != nil {
			t.Fatalf("RepeatClue() error = %v", err)
		}
		second, err := RepeatClue(s, c)
		if err != nil {
			t.Fatalf("RepeatClue() error = %v", err)
		}
		if first != second || first != c.Words[0].Clue {
			t.Errorf("clues differ or wrong: %q vs %q", first, second)
		}
		if s.Score != 0 || len(s.Solved) != 0 {
			t.Error("RepeatClue must not mutate the session")
		}
	})

	t.Run("rejected when complete", func(t *testing.T) {
		s := solvedSession(t, e, c)
		if _, err := e.SubmitAnswer(s, c, "carousel"); err != nil {
			t.Fatal(err)
		}
		if _, err := RepeatClue(s, c); !errors.Is(err, ErrInvalidPhase) {
			t.Errorf("error = %v, want ErrInvalidPhase", err)
		}
	})
}

func TestGiveUp(t *testing.T) {
	e := fixedEngine()
	c := testContent()

	t.Run("mid-game", func(t *testing.T) {
		s := testSession()
		if _, err := e.SubmitAnswer(s, c, "horses"); err != nil {
			t.Fatal(err)
		}
		if _, err := e.SubmitAnswer(s, c, "poles"); err != nil {
			t.Fatal(err)
		}

		if err := e.GiveUp(s, c); err != nil {
			t.Fatalf("GiveUp() error = %v", err)
		}
		if s.Phase != models.PhaseComplete || s.IsActive {
			t.Error("session should be complete and inactive")
		}
		if !s.GaveUp {
			t.Error("GaveUp flag should be set")
		}
		if s.ThemeRevealed != "CAROUSEL" {
			t.Errorf("ThemeRevealed = %s, want CAROUSEL", s.ThemeRevealed)
		}
		if s.Score != 20 {
			t.Errorf("Score = %d, want 20 (earned points kept)", s.Score)
		}
	})

	t.Run("rejected when already complete", func(t *testing.T) {
		s := testSession()
		if err := e.GiveUp(s, c); err != nil {
			t.Fatal(err)
		}
		if err := e.GiveUp(s, c); !errors.Is(err, ErrInvalidPhase) {
			t.Errorf("error = %v, want ErrInvalidPhase", err)
		}
	})
}

func TestCurrentBlanks(t *testing.T) {
	e := fixedEngine()
	c := testContent()

	s := testSession()
	if got := CurrentBlanks(s, c); got != "_ _ _ _ _ _" {
		t.Errorf("solving blanks = %q", got)
	}

	s = solvedSession(t, e, c)
	// fixedEngine reveals position 0 as the entry hint.
	if got := CurrentBlanks(s, c); got != "C _ _ _ _ _ _ _" {
		t.Errorf("final blanks = %q", got)
	}

	if _, err := e.SubmitAnswer(s, c, "carousel"); err != nil {
		t.Fatal(err)
	}
	if got := CurrentBlanks(s, c); got != "C A R O U S E L" {
		t.Errorf("complete blanks = %q", got)
	}
}
