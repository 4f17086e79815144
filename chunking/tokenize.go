package chunking

import (
	"strings"

	"github.com/jdkato/prose/tokenize"
)

// Tokenizer splits text into word tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// ProseTokenizer splits text into sentences with Punkt and each sentence
// into Penn Treebank tokens. Honorifics such as "Mr." stay whole and dash
// or ellipsis markers become tokens of their own.
type ProseTokenizer struct {
	sentences Tokenizer
	words     Tokenizer
}

// NewProseTokenizer loads the English Punkt model.
func NewProseTokenizer() *ProseTokenizer {
	return &ProseTokenizer{
		sentences: tokenize.NewPunktSentenceTokenizer(),
		words:     tokenize.NewTreebankWordTokenizer(),
	}
}

var symbolPadding = strings.NewReplacer("--", " -- ", "...", " ... ")

// honorifics lose their period to the Treebank sentence-final split when
// Punkt ends a sentence on them.
var honorifics = map[string]bool{"Mr": true, "Ms": true, "Mrs": true}

func (p *ProseTokenizer) Tokenize(text string) []string {
	var out []string
	for _, s := range p.sentences.Tokenize(text) {
		for _, tok := range p.words.Tokenize(symbolPadding.Replace(s)) {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
	}
	return joinHonorifics(out)
}

// joinHonorifics merges an honorific followed by a lone "." into one token.
func joinHonorifics(toks []string) []string {
	out := toks[:0]
	for i := 0; i < len(toks); i++ {
		if honorifics[toks[i]] && i+1 < len(toks) && toks[i+1] == "." {
			out = append(out, toks[i]+".")
			i++
			continue
		}
		out = append(out, toks[i])
	}
	return out
}
