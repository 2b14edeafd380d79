// Package chunker splits extracted document pages into bounded,
// ordered chunks. Chunking is deterministic: identical pages with the
// same configuration always produce the same sequence, so re-ingesting
// unchanged content is a byte-for-byte no-op.
package chunker

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driven"
	"github.com/verity-labs/claimlens-cli/internal/normalisers"
)

// DefaultMaxTokens is the default chunk size ceiling.
const DefaultMaxTokens = 200

// maxHeadingTokens bounds how long a single line can be and still
// count as a section heading.
const maxHeadingTokens = 8

// Chunker packs page text into chunks of at most maxTokens tokens.
// Pages are hard boundaries; within a page, breaks prefer paragraph
// boundaries, then sentence boundaries, then word boundaries. A break
// never lands mid-token.
type Chunker struct {
	maxTokens int
	counter   TokenCounter
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxTokens sets the chunk size ceiling in tokens.
func WithMaxTokens(max int) Option {
	return func(c *Chunker) {
		if max > 0 {
			c.maxTokens = max
		}
	}
}

// WithTokenCounter sets the token counter.
func WithTokenCounter(counter TokenCounter) Option {
	return func(c *Chunker) {
		if counter != nil {
			c.counter = counter
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxTokens: DefaultMaxTokens,
		counter:   HeuristicCounter{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// unit is an indivisible span of text fed to the packer. Raw carries
// the pre-normalisation form when paragraph alignment is known,
// otherwise it equals Text.
type unit struct {
	text    string
	raw     string
	tokens  int
	heading bool
}

// Chunk splits the pages into ordered chunks for the document.
// Chunk IDs are left empty; the caller assigns them before storage.
// Empty pages produce no chunks.
func (c *Chunker) Chunk(documentID string, pages []driven.Page) []domain.Chunk {
	var chunks []domain.Chunk
	index := 0
	sectionTitle := ""

	for _, page := range pages {
		units := c.pageUnits(page.Text)
		if len(units) == 0 {
			continue
		}

		var (
			curText   []string
			curRaw    []string
			curTokens int
		)
		flush := func() {
			if len(curText) == 0 {
				return
			}
			text := strings.Join(curText, "\n\n")
			chunks = append(chunks, domain.Chunk{
				DocumentID:   documentID,
				Index:        index,
				PageNumber:   page.Number,
				SectionTitle: sectionTitle,
				Text:         text,
				TextRaw:      strings.Join(curRaw, "\n\n"),
				TokenCount:   c.counter.Count(text),
			})
			index++
			curText = nil
			curRaw = nil
			curTokens = 0
		}

		for _, u := range units {
			if u.heading {
				// A heading closes the running chunk and titles
				// everything up to the next heading.
				flush()
				sectionTitle = u.text
			}
			if curTokens > 0 && curTokens+u.tokens > c.maxTokens {
				flush()
			}
			curText = append(curText, u.text)
			curRaw = append(curRaw, u.raw)
			curTokens += u.tokens
		}
		flush()
	}

	return chunks
}

// pageUnits breaks a page into packable units: paragraphs where they
// fit, sentences where a paragraph is oversized, word windows where a
// sentence still is. An oversized single token becomes its own unit.
func (c *Chunker) pageUnits(pageText string) []unit {
	var units []unit
	for _, para := range splitParagraphs(pageText) {
		text := normalisers.NormalizeText(para)
		if text == "" {
			continue
		}
		tokens := c.counter.Count(text)
		if tokens <= c.maxTokens {
			units = append(units, unit{
				text:    text,
				raw:     strings.TrimSpace(para),
				tokens:  tokens,
				heading: isHeading(text, tokens),
			})
			continue
		}

		for _, sentence := range splitSentences(text) {
			sentTokens := c.counter.Count(sentence)
			if sentTokens <= c.maxTokens {
				units = append(units, unit{text: sentence, raw: sentence, tokens: sentTokens})
				continue
			}
			for _, window := range c.wordWindows(sentence) {
				units = append(units, unit{
					text:   window,
					raw:    window,
					tokens: c.counter.Count(window),
				})
			}
		}
	}
	return units
}

// wordWindows packs whitespace-separated words into runs of at most
// maxTokens counted tokens. A single word that alone exceeds the
// ceiling still gets its own window; words are never split.
func (c *Chunker) wordWindows(text string) []string {
	words := strings.Fields(text)
	var windows []string
	var cur []string
	curTokens := 0
	for _, word := range words {
		wordTokens := c.counter.Count(word)
		if curTokens > 0 && curTokens+wordTokens > c.maxTokens {
			windows = append(windows, strings.Join(cur, " "))
			cur = nil
			curTokens = 0
		}
		cur = append(cur, word)
		curTokens += wordTokens
	}
	if len(cur) > 0 {
		windows = append(windows, strings.Join(cur, " "))
	}
	return windows
}

var paragraphRe = regexp.MustCompile(`\n[ \t]*\n`)

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return paragraphRe.Split(text, -1)
}

// splitSentences breaks text after terminal punctuation followed by
// whitespace. Good enough for prose; abbreviations may over-split,
// which only moves a boundary, never loses text.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		// Consume a run of terminal punctuation.
		for i+1 < len(runes) && (runes[i+1] == '.' || runes[i+1] == '!' || runes[i+1] == '?') {
			i++
		}
		if i+1 < len(runes) && !isSpaceRune(runes[i+1]) {
			continue
		}
		sentence := strings.TrimSpace(string(runes[start : i+1]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = i + 1
	}
	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// isHeading reports whether a paragraph looks like a section heading:
// a single short line starting with an upper-case letter or digit and
// carrying no terminal sentence punctuation.
func isHeading(text string, tokens int) bool {
	if tokens == 0 || tokens > maxHeadingTokens {
		return false
	}
	if strings.Contains(text, "\n") {
		return false
	}
	first := []rune(text)[0]
	if !unicode.IsUpper(first) && !unicode.IsDigit(first) {
		return false
	}
	switch text[len(text)-1] {
	case '.', '!', '?', ',', ';':
		return false
	}
	return true
}
