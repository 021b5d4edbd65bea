package summarize

import (
	"strings"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/utils/text"
)

// Chunker splits a document into ordered chunks that each fit within
// MaxRunes. Splitting prefers sentence boundaries and only falls back
// to a hard rune split when a single sentence exceeds the budget.
// Split is deterministic: the same input and budget always produce the
// same chunks.
type Chunker struct {
	MaxRunes int
}

// sentenceTerminators end a sentence when followed by a space or the
// end of the text. Covers Latin and CJK punctuation.
var sentenceTerminators = map[rune]bool{
	'.': true, '!': true, '?': true,
	'。': true, '！': true, '？': true,
}

// Split divides input into chunks of at most MaxRunes runes each. The
// input is whitespace-normalized first; the concatenation of the
// returned chunk texts covers the normalized input completely, in
// order, with no overlap. A document that already fits the budget comes
// back as a single chunk without any boundary scanning.
func (c Chunker) Split(input string) ([]entity.Chunk, error) {
	if c.MaxRunes <= 0 {
		return nil, &entity.ChunkingError{Reason: "chunk budget must be positive"}
	}

	normalized := text.NormalizeSpace(input)
	if normalized == "" {
		return nil, &entity.ChunkingError{Reason: "document is empty after normalization"}
	}

	// Fast path: the whole document fits in one chunk.
	if text.CountRunes(normalized) <= c.MaxRunes {
		return []entity.Chunk{{Index: 0, Text: normalized}}, nil
	}

	var (
		parts   []string
		current []string
		curLen  int
	)
	flush := func() {
		if len(current) > 0 {
			parts = append(parts, strings.Join(current, " "))
			current = current[:0]
			curLen = 0
		}
	}

	for _, sentence := range splitSentences(normalized) {
		sentLen := text.CountRunes(sentence)

		// A single sentence over budget cannot honor sentence
		// boundaries; hard-split it into rune windows.
		if sentLen > c.MaxRunes {
			flush()
			parts = append(parts, hardSplit(sentence, c.MaxRunes)...)
			continue
		}

		joined := curLen + sentLen
		if len(current) > 0 {
			joined++ // separating space
		}
		if joined > c.MaxRunes {
			flush()
			joined = sentLen
		}
		current = append(current, sentence)
		curLen = joined
	}
	flush()

	chunks := make([]entity.Chunk, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			return nil, &entity.ChunkingError{Reason: "empty chunk produced"}
		}
		if n := text.CountRunes(part); n > c.MaxRunes {
			return nil, &entity.ChunkingError{Reason: "chunk exceeds budget", Runes: n}
		}
		chunks = append(chunks, entity.Chunk{Index: i, Text: part})
	}
	return chunks, nil
}

// splitSentences cuts normalized text into sentences, keeping the
// terminating punctuation with each sentence. A run of terminators
// ("?!", "...") stays together. Text after the last terminator forms a
// final sentence of its own.
func splitSentences(normalized string) []string {
	runes := []rune(normalized)

	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !sentenceTerminators[runes[i]] {
			continue
		}

		end := i
		for end+1 < len(runes) && sentenceTerminators[runes[end+1]] {
			end++
		}

		if end+1 == len(runes) {
			sentences = append(sentences, string(runes[start:end+1]))
			start = end + 1
		} else if runes[end+1] == ' ' {
			sentences = append(sentences, string(runes[start:end+1]))
			start = end + 2 // skip the separating space
		}
		i = end
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

// hardSplit cuts s into consecutive windows of at most maxRunes runes.
func hardSplit(s string, maxRunes int) []string {
	runes := []rune(s)

	pieces := make([]string, 0, (len(runes)+maxRunes-1)/maxRunes)
	for start := 0; start < len(runes); start += maxRunes {
		end := start + maxRunes
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}
