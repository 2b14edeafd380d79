package chunker

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter measures text length in tokens. The chunker is
// deterministic for a fixed counter, so implementations must be
// pure functions of their input.
type TokenCounter interface {
	Count(text string) int
}

// Ensure counters implement the interface.
var (
	_ TokenCounter = (*HeuristicCounter)(nil)
	_ TokenCounter = (*TiktokenCounter)(nil)
)

// HeuristicCounter counts whitespace-separated words. It needs no
// model data and is the default counter.
type HeuristicCounter struct{}

// Count returns the number of whitespace-separated fields.
func (HeuristicCounter) Count(text string) int {
	return len(strings.Fields(text))
}

// TiktokenCounter counts tokens with the cl100k_base BPE encoding,
// matching what embedding models actually see. Loading the encoding
// may fetch vocabulary data on first use.
type TiktokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktokenCounter loads the cl100k_base encoding.
func NewTiktokenCounter() (*TiktokenCounter, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding: %w", err)
	}
	return &TiktokenCounter{encoding: encoding}, nil
}

// Count returns the BPE token count of the text.
func (c *TiktokenCounter) Count(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}
