// Package segment splits raw text into bounded sentence chunks and
// language-aware word tokens.
//
// Both operations are pure functions of their input: training and
// classification rely on them producing identical output for identical text.
package segment

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/unicode/norm"
)

// Sentence is one bounded chunk of the source text: its starting byte offset
// and the word tokens it contains. Offsets are monotonically non-decreasing
// across a document.
type Sentence struct {
	Offset uint32
	Tokens []string
}

// Split partitions text into sentences of at most maxLen code points,
// preferring natural boundaries (paragraph break, sentence terminator, line
// break, word boundary) over hard cuts. Chunks that contain no word tokens
// are dropped. Empty input yields an empty result; Split never fails.
func Split(text string, maxLen int) []Sentence {
	if maxLen < 1 {
		maxLen = 1
	}
	var sentences []Sentence
	pos := 0
	for pos < len(text) {
		// Skip inter-chunk whitespace so offsets land on content.
		for pos < len(text) {
			r, size := utf8.DecodeRuneInString(text[pos:])
			if !unicode.IsSpace(r) {
				break
			}
			pos += size
		}
		if pos >= len(text) {
			break
		}

		end := chunkEnd(text, pos, maxLen)
		chunk := text[pos:end]
		tokens := Tokenize(chunk)
		if len(tokens) > 0 {
			off, err := safecast.Conv[uint32](pos)
			if err != nil {
				panic(fmt.Errorf("chunk offset overflow: %w", err))
			}
			sentences = append(sentences, Sentence{Offset: off, Tokens: tokens})
		}
		pos = end
	}
	return sentences
}

// Tokenize splits a sentence chunk into NFC-normalized word tokens using
// Unicode (UAX #29) word segmentation. Segments without a letter or digit
// (whitespace, bare punctuation) are discarded.
func Tokenize(chunk string) []string {
	var tokens []string
	segs := words.FromString(chunk)
	for segs.Next() {
		tok := segs.Value()
		if !wordLike(tok) {
			continue
		}
		tokens = append(tokens, norm.NFC.String(tok))
	}
	return tokens
}

// chunkEnd returns the byte index ending the chunk that starts at pos,
// holding at most maxLen code points.
func chunkEnd(text string, pos, maxLen int) int {
	limit := pos
	runes := 0
	for limit < len(text) && runes < maxLen {
		_, size := utf8.DecodeRuneInString(text[limit:])
		limit += size
		runes++
	}
	if limit >= len(text) {
		return len(text)
	}

	window := text[pos:limit]
	if cut := strings.LastIndex(window, "\n\n"); cut >= 0 {
		return pos + cut + 2
	}
	if cut := lastTerminator(window); cut >= 0 {
		return pos + cut
	}
	if cut := strings.LastIndexByte(window, '\n'); cut >= 0 {
		return pos + cut + 1
	}
	if cut := lastSpace(window); cut >= 0 {
		return pos + cut
	}
	// No natural boundary in the window; hard cut at the rune boundary.
	return limit
}

// lastTerminator finds the byte index just past the last sentence-ending
// punctuation in s, or -1.
func lastTerminator(s string) int {
	end := -1
	for i, r := range s {
		switch r {
		case '.', '!', '?', '…', '。', '！', '？':
			end = i + utf8.RuneLen(r)
		}
	}
	return end
}

// lastSpace finds the byte index of the last whitespace rune in s, or -1.
func lastSpace(s string) int {
	idx := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			idx = i
		}
	}
	return idx
}

// wordLike reports whether a segment carries at least one letter or digit.
func wordLike(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
