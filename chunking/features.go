package chunking

import (
	"regexp"
	"strings"
)

// DisfluencySymbols mark a restart inside an utterance. Transcripts before
// 2008 tend to use "..." where later ones use "--".
var DisfluencySymbols = []string{"--", "..."}

// InterruptionSymbols mark an utterance cut off by the next speaker when
// they end the utterance.
var InterruptionSymbols = []string{"--", "..."}

var trailingPunct = regexp.MustCompile(`[^\p{L}\p{N}_\s]+$`)

// ClassifyInterruption reports whether text ends in an interruption marker.
func ClassifyInterruption(text string) bool {
	text = strings.TrimSpace(text)
	for _, sym := range InterruptionSymbols {
		if strings.HasSuffix(text, sym) {
			return true
		}
	}
	return false
}

func isDisfluencySymbol(tok string) bool {
	for _, sym := range DisfluencySymbols {
		if tok == sym {
			return true
		}
	}
	return false
}

// CountDisfluencies counts disfluency symbols among toks, ignoring the
// final token (a trailing symbol is an interruption, not a restart). With
// singleDash, tokens cut off mid-word such as "pu-" count as well.
func CountDisfluencies(toks []string, singleDash bool) int {
	if len(toks) == 0 {
		return 0
	}
	n := 0
	for _, tok := range toks[:len(toks)-1] {
		switch {
		case isDisfluencySymbol(tok):
			n++
		case singleDash && strings.HasSuffix(tok, "-"):
			n++
		}
	}
	return n
}

// BackchannelMatch reports whether the whole utterance, lowercased and with
// trailing punctuation removed, equals one of cues.
func BackchannelMatch(text string, cues []string) bool {
	norm := strings.ToLower(trailingPunct.ReplaceAllString(strings.TrimSpace(text), ""))
	for _, c := range cues {
		if c == norm {
			return true
		}
	}
	return false
}
