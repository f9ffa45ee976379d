// Package content owns puzzle material: it asks the generator for new
// puzzles, caches the shared daily puzzle, and falls back to a built-in
// table when generation fails.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"themeclash/internal/models"
)

// Provider generates puzzle material: a theme and five clue words. The
// content store assigns identity (date or random id) afterwards.
type Provider interface {
	GeneratePuzzle(ctx context.Context) (*models.PuzzleContent, error)
}

// OllamaProvider generates puzzles from an Ollama-compatible completion API.
type OllamaProvider struct {
	url    string
	model  string
	client *http.Client
}

// NewOllamaProvider creates a provider for the given base URL and model.
func NewOllamaProvider(url, model string) *OllamaProvider {
	return &OllamaProvider{
		url:    strings.TrimRight(url, "/"),
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

const puzzlePrompt = `You are a creative puzzle generator. Create a word puzzle with:

1. A THEME (final answer): any interesting noun or concept, 4-15 letters,
   uppercase, one or two words.
2. FIVE CLUE WORDS (4-10 letters each, uppercase) that all strongly relate
   to the theme but are not synonyms of it.
3. FIVE DESCRIPTIVE CLUES, one short sentence each, that describe the word
   without revealing it. No letters, rhymes, or phonetic hints.

Format your response EXACTLY like this:
THEME: CAROUSEL
WORD1: HORSES | Animals you ride in circles
WORD2: POLES | Vertical metal bars to hold onto
WORD3: ROTATE | Spin around in circles
WORD4: MUSIC | Sound played from the organ
WORD5: CARNIVAL | Event where you find this ride

Now generate a completely unique and creative puzzle:`

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// GeneratePuzzle asks the model for a puzzle and parses the response.
func (p *OllamaProvider) GeneratePuzzle(ctx context.Context) (*models.PuzzleContent, error) {
	reqBody := generateRequest{
		Model:  p.model,
		Prompt: puzzlePrompt,
		Stream: false,
		Options: map[string]any{
			"temperature": 0.95,
			"seed":        time.Now().UnixNano() + int64(rand.Intn(100000)),
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generate request returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generate response: %w", err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(raw, &genResp); err != nil {
		return nil, fmt.Errorf("failed to decode generate response: %w", err)
	}

	return parsePuzzleResponse(genResp.Response)
}

// parsePuzzleResponse extracts a puzzle from the model's THEME/WORDn lines.
func parsePuzzleResponse(text string) (*models.PuzzleContent, error) {
	puzzle := &models.PuzzleContent{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "THEME:"):
			puzzle.Theme = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(line, "THEME:")))
		case strings.HasPrefix(line, "WORD"):
			rest := line[len("WORD"):]
			colon := strings.Index(rest, ":")
			if colon < 0 {
				continue
			}
			parts := strings.SplitN(rest[colon+1:], "|", 2)
			if len(parts) != 2 {
				continue
			}
			puzzle.Words = append(puzzle.Words, models.WordEntry{
				Answer: strings.ToUpper(strings.TrimSpace(parts[0])),
				Clue:   strings.TrimSpace(parts[1]),
			})
		}
	}

	if err := puzzle.Validate(); err != nil {
		return nil, fmt.Errorf("generated puzzle is invalid: %w", err)
	}
	return puzzle, nil
}
