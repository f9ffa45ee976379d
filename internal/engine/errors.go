package engine

import "errors"

// Rule violations surfaced to callers. Everything else the engine can
// signal is a programming error and is wrapped at the call site.
var (
	// ErrInvalidPhase means the operation is not legal in the session's
	// current phase, including any mutating call on a completed session.
	ErrInvalidPhase = errors.New("not allowed in the current phase")

	// ErrNoRevealsLeft means a reveal was requested with zero credits.
	ErrNoRevealsLeft = errors.New("no reveals left")

	// ErrRevealExhausted means the single final-phase reveal was already spent.
	ErrRevealExhausted = errors.New("final reveal already used")

	// ErrAllLettersRevealed means nothing is left to reveal on the current word.
	ErrAllLettersRevealed = errors.New("all letters already revealed")
)
