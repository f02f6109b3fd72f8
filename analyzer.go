package accord

import (
	"regexp"
	"strings"
)

// Analyzer turns raw text into tagged token sequences. It is an opaque,
// potentially expensive collaborator: constructing one may fail (missing
// models, unreachable service), but Analyze on well-formed input is
// expected to succeed. AnalyzeBatch must return one Sequence per input
// text, in input order; callers in this package always prefer it over
// repeated single calls.
type Analyzer interface {
	Analyze(text string) (Sequence, error)
	AnalyzeBatch(texts []string) ([]Sequence, error)
}

// reToken matches one word token, accentued Latin letters included.
var reToken = regexp.MustCompile(`[a-zA-ZÀ-ÿ\x{0152}\x{0153}'-]+`)

// DictAnalyzer is a self-contained Analyzer backed by a Dictionary. It
// tokenizes on word boundaries, looks every form up and takes the first
// reading. Tokens are attached to the root, except that each verb gets the
// nearest preceding noun or pronoun as its nsubj; a dictionary cannot
// parse dependencies, and this heuristic is what makes subject–verb
// checks work without an external parser.
type DictAnalyzer struct {
	dict *Dictionary
}

// NewDictAnalyzer builds a dictionary-backed analyzer. The dictionary may
// keep loading resources before the first Analyze call, but not after.
func NewDictAnalyzer(dict *Dictionary) *DictAnalyzer {
	return &DictAnalyzer{dict: dict}
}

// Analyze analyzes a single text.
func (a *DictAnalyzer) Analyze(text string) (Sequence, error) {
	seqs, err := a.AnalyzeBatch([]string{text})
	if err != nil || len(seqs) == 0 {
		return nil, err
	}
	return seqs[0], nil
}

// AnalyzeBatch analyzes each text independently, preserving input order.
func (a *DictAnalyzer) AnalyzeBatch(texts []string) ([]Sequence, error) {
	out := make([]Sequence, len(texts))
	for i, text := range texts {
		out[i] = a.analyzeOne(text)
	}
	return out, nil
}

func (a *DictAnalyzer) analyzeOne(text string) Sequence {
	words := reToken.FindAllString(text, -1)
	seq := make(Sequence, 0, len(words))
	for _, word := range words {
		seq = append(seq, a.tokenFor(word))
	}
	attachSubjects(seq)
	return seq
}

// tokenFor builds the token for one surface form from its first dictionary
// reading. Unknown forms keep an empty lemma and part-of-speech so that
// they never trigger an agreement rule.
func (a *DictAnalyzer) tokenFor(word string) Token {
	t := Token{Text: word, Head: HeadRoot, Features: Features{}}
	entries := a.dict.Lookup(word)
	if len(entries) == 0 {
		return t
	}
	e := entries[0]
	t.Lemma = e.Lemma
	t.POS = e.POS
	for k, v := range e.Features {
		t.Features[k] = v
	}
	return t
}

// attachSubjects links each verb to the nearest preceding nominal token,
// marking it nsubj with the verb as its head. Each nominal is used for at
// most one verb.
func attachSubjects(seq Sequence) {
	for vi := range seq {
		if seq[vi].POS != POSVerb {
			continue
		}
		for si := vi - 1; si >= 0; si-- {
			t := &seq[si]
			if (t.POS == POSNoun || t.POS == POSPron) && t.Dep == "" {
				t.Dep = DepNsubj
				t.Head = vi
				break
			}
		}
	}
}

// Tokenize exposes the analyzer's word segmentation, mostly for callers
// that want to pre-check input before a remote round trip.
func Tokenize(text string) []string {
	return reToken.FindAllString(text, -1)
}

// joinWords renders a candidate word buffer as analyzable text.
func joinWords(words []string) string {
	return strings.Join(words, " ")
}
