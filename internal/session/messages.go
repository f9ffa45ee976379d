package session

import (
	"fmt"
	"strings"

	"themeclash/internal/engine"
	"themeclash/internal/models"
)

// ordinal renders 1-based positions as "first", "second" and so on, falling
// back to "3rd"-style suffixes past ten.
func ordinal(n int) string {
	words := []string{"first", "second", "third", "fourth", "fifth",
		"sixth", "seventh", "eighth", "ninth", "tenth"}
	if n >= 1 && n <= len(words) {
		return words[n-1]
	}
	if m := n % 100; m >= 11 && m <= 13 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}

// wordDescription describes the shape of an answer without revealing it,
// like "6 letters" or "2 words, 12 letters".
func wordDescription(answer string) string {
	parts := strings.Fields(answer)
	letters := 0
	for _, p := range parts {
		letters += len(p)
	}
	if len(parts) > 1 {
		return fmt.Sprintf("%d words, %d letters", len(parts), letters)
	}
	return fmt.Sprintf("%d letters", letters)
}

// cluePrompt is the standard "here is what to solve next" line.
func cluePrompt(s *models.PuzzleSession, c *models.PuzzleContent) string {
	switch s.Phase {
	case models.PhaseSolving:
		w, ok := s.CurrentWord()
		if !ok {
			return ""
		}
		return fmt.Sprintf("Word %d, %s: %s",
			len(s.Solved)+1, wordDescription(c.Words[w].Answer), c.Words[w].Clue)
	case models.PhaseFinalAnswer:
		return fmt.Sprintf("What is the theme? It has %s.", wordDescription(c.Theme))
	default:
		return ""
	}
}

func startMessage(s *models.PuzzleSession, c *models.PuzzleContent, resumed bool) string {
	if resumed {
		return fmt.Sprintf("Welcome back! Score: %d. %s", s.Score, cluePrompt(s, c))
	}
	return fmt.Sprintf("Let's play! Solve five words, then guess what connects them. %s", cluePrompt(s, c))
}

func correctWordMessage(s *models.PuzzleSession, c *models.PuzzleContent, res *engine.AnswerResult) string {
	if res.PhaseChanged {
		msg := fmt.Sprintf("Correct, %s! All five words solved! Score: %d. Now, what is the theme connecting them? It has %s.",
			res.CorrectAnswer, s.Score, wordDescription(c.Theme))
		if res.HintPos >= 0 {
			letterIdx := 0
			for _, r := range c.Theme[:res.HintPos] {
				if r != ' ' {
					letterIdx++
				}
			}
			msg += fmt.Sprintf(" Here's a hint: the %s letter is %s.",
				ordinal(letterIdx+1), string(c.Theme[res.HintPos]))
		}
		return msg
	}
	return fmt.Sprintf("Correct, %s! Score: %d. %s", res.CorrectAnswer, s.Score, cluePrompt(s, c))
}

func wrongAnswerMessage(s *models.PuzzleSession, c *models.PuzzleContent) string {
	return fmt.Sprintf("Not quite, try again. %s", cluePrompt(s, c))
}

func completeMessage(s *models.PuzzleSession, c *models.PuzzleContent) string {
	msg := fmt.Sprintf("That's it, the theme was %s! Final score: %d out of %d.",
		c.Theme, s.Score, models.MaxScore)
	if s.Score == models.MaxScore {
		msg += " A perfect game!"
	}
	return msg
}

func revealMessage(s *models.PuzzleSession, c *models.PuzzleContent, res *engine.RevealResult) string {
	var answer string
	if res.WordIndex >= 0 {
		answer = c.Words[res.WordIndex].Answer
	} else {
		answer = c.Theme
	}
	letterIdx := 0
	for _, r := range answer[:res.Position] {
		if r != ' ' {
			letterIdx++
		}
	}
	msg := fmt.Sprintf("Here's a letter: the %s letter is %s.", ordinal(letterIdx+1), res.Letter)
	if res.WordIndex >= 0 {
		msg += fmt.Sprintf(" %d reveals left.", res.CreditsLeft)
	}
	return msg
}

func skipMessage(s *models.PuzzleSession, c *models.PuzzleContent) string {
	return fmt.Sprintf("Skipped, we'll come back to that one. %s", cluePrompt(s, c))
}

func giveUpMessage(s *models.PuzzleSession, c *models.PuzzleContent) string {
	answers := make([]string, len(c.Words))
	for i, w := range c.Words {
		answers[i] = w.Answer
	}
	return fmt.Sprintf("Game over. The words were: %s. The theme was %s. Final score: %d.",
		strings.Join(answers, ", "), c.Theme, s.Score)
}
