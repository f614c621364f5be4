package classifier

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WordPieceTokenizer implements a minimal DistilBERT-compatible tokenizer.
type WordPieceTokenizer struct {
	vocab        map[string]int64
	lowerCase    bool
	clsID        int64
	sepID        int64
	padID        int64
	unkID        int64
	continuation string
}

// LoadWordPieceTokenizer builds the tokenizer from vocab.txt.
func LoadWordPieceTokenizer(path string) (*WordPieceTokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocab: %w", err)
	}
	defer f.Close()

	vocab := make(map[string]int64)
	sc := bufio.NewScanner(f)
	var idx int64
	for sc.Scan() {
		token := strings.TrimSpace(sc.Text())
		if token == "" {
			continue
		}
		vocab[token] = idx
		idx++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan vocab: %w", err)
	}

	return newTokenizerFromVocab(vocab), nil
}

func newTokenizerFromVocab(vocab map[string]int64) *WordPieceTokenizer {
	return &WordPieceTokenizer{
		vocab:        vocab,
		lowerCase:    true,
		continuation: "##",
		clsID:        vocab["[CLS]"],
		sepID:        vocab["[SEP]"],
		padID:        vocab["[PAD]"],
		unkID:        vocab["[UNK]"],
	}
}

// Tokenize splits text into WordPiece string tokens, subword fragments
// carrying the "##" continuation prefix. This is the token sequence that
// importance scores align with.
func (t *WordPieceTokenizer) Tokenize(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		if t.lowerCase {
			w = strings.ToLower(w)
		}
		out = append(out, t.wordPiece(w)...)
	}
	return out
}

// Encode converts pre-tokenized pieces into token IDs and an attention
// mask of length seqLen. Input longer than seqLen-2 is head-truncated:
// the leading pieces are kept, the rest dropped.
func (t *WordPieceTokenizer) Encode(pieces []string, seqLen int) ([]int64, []int64) {
	if seqLen <= 0 {
		return nil, nil
	}

	if len(pieces) > seqLen-2 {
		pieces = pieces[:seqLen-2]
	}

	ids := make([]int64, 0, seqLen)
	ids = append(ids, t.clsID)
	for _, p := range pieces {
		id, ok := t.vocab[p]
		if !ok {
			id = t.unkID
		}
		ids = append(ids, id)
	}
	ids = append(ids, t.sepID)

	attn := make([]int64, seqLen)
	for i := 0; i < len(ids) && i < seqLen; i++ {
		attn[i] = 1
	}

	for len(ids) < seqLen {
		ids = append(ids, t.padID)
	}

	return ids, attn
}

func (t *WordPieceTokenizer) wordPiece(token string) []string {
	if _, ok := t.vocab[token]; ok {
		return []string{token}
	}

	var pieces []string
	start := 0
	for start < len(token) {
		end := len(token)
		var cur string
		for end > start {
			sub := token[start:end]
			if start > 0 {
				sub = t.continuation + sub
			}
			if _, ok := t.vocab[sub]; ok {
				cur = sub
				pieces = append(pieces, sub)
				start = end
				break
			}
			end--
		}
		if cur == "" {
			return []string{"[UNK]"}
		}
	}
	if len(pieces) == 0 {
		return []string{"[UNK]"}
	}
	return pieces
}
