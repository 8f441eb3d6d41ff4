package tool

import (
	"context"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/internal/util"
)

const (
	searchDefaultLimit = 3
	snippetLength      = 160
)

// SearchResult is one scored hit against the request's context arrays. The
// JSON field names are stable because the citation extractor parses step
// output of this shape.
type SearchResult struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

type searchArgs struct {
	Query string `json:"query" description:"What to look for"`
	Limit *int   `json:"limit,omitempty" description:"Maximum number of results"`
}

// relevance scores a document against a query: an exact substring match of
// the whole query scores highest, shared terms score partially.
func relevance(query, text string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(text)
	if q == "" {
		return 0
	}
	if strings.Contains(t, q) {
		return 1.0
	}
	terms := strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(terms) == 0 {
		return 0
	}
	matched := 0
	for _, term := range terms {
		if len(term) < 3 {
			continue
		}
		if strings.Contains(t, term) {
			matched++
		}
	}
	return 0.5 * float64(matched) / float64(len(terms))
}

// snippet extracts a short excerpt centred on the first query hit, or the
// head of the text when the query does not appear verbatim. Offsets are
// computed in runes so multi-byte content never gets cut mid-character.
func snippet(query, text string) string {
	t := []rune(strings.TrimSpace(text))
	lower := strings.ToLower(string(t))

	idx := 0
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		if i := strings.Index(lower, q); i > 0 {
			idx = utf8.RuneCountInString(lower[:i])
		}
	}

	start := idx - snippetLength/4
	if start < 0 {
		start = 0
	}
	end := start + snippetLength
	if end > len(t) {
		end = len(t)
	}

	out := strings.TrimSpace(string(t[start:end]))
	if start > 0 {
		out = "…" + out
	}
	if end < len(t) {
		out += "…"
	}
	return out
}

type document struct {
	id, title, content string
}

// rankDocuments scores and orders candidates, dropping zero-score entries.
func rankDocuments(query string, docs []document, limit int) []SearchResult {
	if limit <= 0 {
		limit = searchDefaultLimit
	}
	results := make([]SearchResult, 0, len(docs))
	for _, d := range docs {
		score := relevance(query, d.title+" "+d.content)
		if score <= 0 {
			continue
		}
		results = append(results, SearchResult{
			ID:      d.id,
			Title:   d.title,
			Snippet: snippet(query, d.content),
			Score:   score,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

type searchMaterialsTool struct{}

func (t *searchMaterialsTool) Name() string { return core.ToolSearchMaterials }

func (t *searchMaterialsTool) Description() string {
	return "Search the student's course materials for passages relevant to a query."
}

func (t *searchMaterialsTool) Parameters() map[string]any {
	return util.SchemaFromStruct(searchArgs{})
}

func (t *searchMaterialsTool) Call(_ context.Context, sc *Scope, args map[string]any) (any, error) {
	var a searchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	docs := make([]document, 0, len(sc.Request.Materials))
	for _, m := range sc.Request.Materials {
		docs = append(docs, document{id: m.ID, title: m.Title, content: m.Content})
	}
	limit := searchDefaultLimit
	if a.Limit != nil {
		limit = *a.Limit
	}
	return rankDocuments(a.Query, docs, limit), nil
}

type searchNotesTool struct{}

func (t *searchNotesTool) Name() string { return core.ToolSearchNotes }

func (t *searchNotesTool) Description() string {
	return "Search the student's own notes for passages relevant to a query."
}

func (t *searchNotesTool) Parameters() map[string]any {
	return util.SchemaFromStruct(searchArgs{})
}

func (t *searchNotesTool) Call(_ context.Context, sc *Scope, args map[string]any) (any, error) {
	var a searchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	docs := make([]document, 0, len(sc.Request.Notes))
	for _, n := range sc.Request.Notes {
		docs = append(docs, document{id: n.ID, title: n.Title, content: n.Content})
	}
	limit := searchDefaultLimit
	if a.Limit != nil {
		limit = *a.Limit
	}
	return rankDocuments(a.Query, docs, limit), nil
}
