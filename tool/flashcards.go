package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/internal/util"
)

const (
	flashcardDefaultCount = 10
	flashcardFrontMax     = 80
	flashcardBackMax      = 200
)

// flashcardsTool splits free text into line-like chunks and heuristically
// derives front/back pairs from each.
type flashcardsTool struct{}

type flashcardsArgs struct {
	Content string `json:"content" description:"Text to turn into flashcards"`
	Count   *int   `json:"count,omitempty" description:"Maximum number of cards"`
}

// Flashcard is one generated practice card. Difficulty is assigned by
// position: early cards easy, late cards hard.
type Flashcard struct {
	Front      string `json:"front"`
	Back       string `json:"back"`
	Difficulty string `json:"difficulty"`
}

func (t *flashcardsTool) Name() string { return core.ToolGenerateFlashcards }

func (t *flashcardsTool) Description() string {
	return "Turn study text into front/back flashcards for practice."
}

func (t *flashcardsTool) Parameters() map[string]any {
	return util.SchemaFromStruct(flashcardsArgs{})
}

func (t *flashcardsTool) Call(_ context.Context, _ *Scope, args map[string]any) (any, error) {
	var a flashcardsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	max := flashcardDefaultCount
	if a.Count != nil && *a.Count > 0 {
		max = *a.Count
	}

	var cards []Flashcard
	for _, line := range strings.Split(a.Content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•0123456789. "))
		if len(line) < 8 {
			continue
		}
		front, back := splitCard(line)
		if front == "" || back == "" {
			continue
		}
		cards = append(cards, Flashcard{Front: truncate(front, flashcardFrontMax), Back: truncate(back, flashcardBackMax)})
		if len(cards) == max {
			break
		}
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("content yielded no usable flashcards")
	}

	// Difficulty by position: first third easy, middle medium, rest hard.
	for i := range cards {
		switch {
		case i < len(cards)/3+1:
			cards[i].Difficulty = "easy"
		case i < 2*len(cards)/3+1:
			cards[i].Difficulty = "medium"
		default:
			cards[i].Difficulty = "hard"
		}
	}
	return cards, nil
}

// splitCard breaks a line into a question-ish front and answer-ish back on
// the first separating punctuation.
func splitCard(line string) (string, string) {
	for _, sep := range []string{":", " - ", "—", ";"} {
		if idx := strings.Index(line, sep); idx > 0 && idx < len(line)-len(sep) {
			return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+len(sep):])
		}
	}
	// Fall back to the first sentence break.
	if idx := strings.Index(line, ". "); idx > 0 && idx < len(line)-2 {
		return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+2:])
	}
	return "", ""
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
