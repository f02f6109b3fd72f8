// Package accord validates and generates French noun/verb phrases under
// morphosyntactic agreement constraints: gender and number agreement across
// a noun phrase, subject–verb person/number agreement, a syntactic slot
// template and adjective anti-repetition rules. On top of the rule engine it
// provides a backtracking candidate generator with incremental pruning and a
// constraint-filtered beam search decoder. Morphological analysis itself is
// delegated to an Analyzer collaborator.
package accord

import "strings"

// posGender is the set of tags that participate in gender agreement.
var posGender = map[string]bool{POSDet: true, POSAdj: true, POSNoun: true}

// posNumber is the set of tags that participate in number agreement.
var posNumber = map[string]bool{POSDet: true, POSAdj: true, POSNoun: true, POSVerb: true}

// depSubj is the set of dependency labels marking a nominal subject.
var depSubj = map[string]bool{DepNsubj: true, DepNsubjPass: true}

// CheckerConfig holds the rule parameters. The zero value is not usable;
// build one with DefaultCheckerConfig and override fields as needed.
type CheckerConfig struct {
	// PreAdjMax and PostAdjMax bound the adjective runs immediately
	// before and after the noun in the syntactic template.
	PreAdjMax  int
	PostAdjMax int

	// MaxTotalAdjs bounds the total number of adjectives in a sequence.
	MaxTotalAdjs int
	// MaxConsecutiveSameAdj bounds a run of adjacent adjectives sharing
	// one lemma. The default of 1 forbids any direct repetition.
	MaxConsecutiveSameAdj int
	// MaxSameAdjPerSentence bounds how often one adjective lemma may
	// occur across the whole sequence.
	MaxSameAdjPerSentence int

	// RequireDet and RequireNoun make the DET and NOUN slots of the
	// template mandatory rather than optional.
	RequireDet  bool
	RequireNoun bool

	// DefaultSubjPerson is assumed for subjects that carry no person
	// feature when checking subject–verb agreement.
	DefaultSubjPerson string
}

// DefaultCheckerConfig returns the standard rule parameters:
// DET (ADJ){<=1} NOUN (ADJ){<=2}, at most 3 adjectives, no directly
// repeated adjective, each adjective lemma at most once, DET and NOUN
// required, third person assumed for bare subjects.
func DefaultCheckerConfig() CheckerConfig {
	return CheckerConfig{
		PreAdjMax:             1,
		PostAdjMax:            2,
		MaxTotalAdjs:          3,
		MaxConsecutiveSameAdj: 1,
		MaxSameAdjPerSentence: 1,
		RequireDet:            true,
		RequireNoun:           true,
		DefaultSubjPerson:     "3",
	}
}

// Checker is the agreement rule engine. All check methods are pure
// predicates over a Sequence: they never mutate it and a non-matching
// sequence is a false result, not an error. A Checker is immutable after
// construction and safe to share across calls.
type Checker struct {
	cfg CheckerConfig
}

// NewChecker builds a Checker with the given configuration.
func NewChecker(cfg CheckerConfig) *Checker {
	return &Checker{cfg: cfg}
}

// NewDefaultChecker builds a Checker with DefaultCheckerConfig.
func NewDefaultChecker() *Checker {
	return NewChecker(DefaultCheckerConfig())
}

// Config returns a copy of the checker's configuration.
func (c *Checker) Config() CheckerConfig {
	return c.cfg
}

// CheckSyntaxTemplate matches the sequence's part-of-speech tags against
// [DET]? ADJ{0..PreAdjMax} NOUN ADJ{0..PostAdjMax}, greedily and in order.
// When RequireDet or RequireNoun is unset the corresponding slot becomes
// optional rather than forbidden. Any tag left unconsumed after the
// trailing adjective run fails. An empty sequence always fails.
func (c *Checker) CheckSyntaxTemplate(seq Sequence) bool {
	if len(seq) == 0 {
		return false
	}
	i := 0
	if c.cfg.RequireDet {
		if seq[i].POS != POSDet {
			return false
		}
		i++
	} else if seq[i].POS == POSDet {
		i++
	}
	pre := 0
	for i < len(seq) && seq[i].POS == POSAdj && pre < c.cfg.PreAdjMax {
		i++
		pre++
	}
	// The run is capped but the next tag is still an adjective: the
	// sequence would need more pre-noun adjectives than allowed.
	if i < len(seq) && seq[i].POS == POSAdj && pre >= c.cfg.PreAdjMax {
		return false
	}
	if c.cfg.RequireNoun {
		if i >= len(seq) || seq[i].POS != POSNoun {
			return false
		}
		i++
	} else if i < len(seq) && seq[i].POS == POSNoun {
		i++
	}
	post := 0
	for i < len(seq) && seq[i].POS == POSAdj && post < c.cfg.PostAdjMax {
		i++
		post++
	}
	return i == len(seq)
}

// adjKey returns the normalized repetition key for an adjective token:
// the lemma, falling back to the surface text, trimmed and lowercased.
func adjKey(t Token) string {
	key := t.Lemma
	if key == "" {
		key = t.Text
	}
	return strings.ToLower(strings.TrimSpace(key))
}

// CheckAntiRepetition rejects sequences with more than MaxTotalAdjs
// adjectives, with a run of adjacent same-lemma adjectives longer than
// MaxConsecutiveSameAdj, or with any adjective lemma occurring more than
// MaxSameAdjPerSentence times overall. Run tracking resets whenever a
// non-adjective token is seen.
func (c *Checker) CheckAntiRepetition(seq Sequence) bool {
	total := 0
	for _, t := range seq {
		if t.POS == POSAdj {
			total++
		}
	}
	if total > c.cfg.MaxTotalAdjs {
		return false
	}

	runKey := ""
	runLen := 0
	counts := make(map[string]int)
	for _, t := range seq {
		if t.POS != POSAdj {
			runKey, runLen = "", 0
			continue
		}
		key := adjKey(t)
		if key != "" && key == runKey {
			runLen++
		} else {
			runKey, runLen = key, 1
		}
		if runLen > c.cfg.MaxConsecutiveSameAdj {
			return false
		}
		if key != "" {
			counts[key]++
			if counts[key] > c.cfg.MaxSameAdjPerSentence {
				return false
			}
		}
	}
	return true
}

// CheckGenderAgreement scans DET/ADJ/NOUN tokens; the first one carrying a
// gender feature fixes the canonical value and any later conflicting value
// fails. First token wins: there is no majority vote.
func (c *Checker) CheckGenderAgreement(seq Sequence) bool {
	canonical := ""
	for _, t := range seq {
		if !posGender[t.POS] {
			continue
		}
		g := t.Features.Get(FeatGender)
		if g == "" {
			continue
		}
		if canonical == "" {
			canonical = g
		} else if canonical != g {
			return false
		}
	}
	return true
}

// subjectsByHead maps a governor position to the positions of its nominal
// subjects (tokens whose Dep is nsubj or nsubj:pass).
func subjectsByHead(seq Sequence) map[int][]int {
	m := make(map[int][]int)
	for i, t := range seq {
		if depSubj[t.Dep] && t.Head != HeadRoot {
			m[t.Head] = append(m[t.Head], i)
		}
	}
	return m
}

// CheckNumberAgreement scans DET/ADJ/NOUN/VERB tokens. Non-verb tokens use
// the first-token-wins rule as for gender. A verb's number is compared only
// against its mapped subjects, never against the canonical value.
func (c *Checker) CheckNumberAgreement(seq Sequence) bool {
	subjects := subjectsByHead(seq)
	canonical := ""
	for i, t := range seq {
		if !posNumber[t.POS] {
			continue
		}
		n := t.Features.Get(FeatNumber)
		if n == "" {
			continue
		}
		if t.POS == POSVerb {
			for _, si := range subjects[i] {
				sn := seq[si].Features.Get(FeatNumber)
				if sn != "" && sn != n {
					return false
				}
			}
			continue
		}
		if canonical == "" {
			canonical = n
		} else if canonical != n {
			return false
		}
	}
	return true
}

// CheckSubjectVerbAgreement verifies, for every verb with mapped subjects,
// that subject and verb numbers match when both are declared, and that the
// verb's declared person matches the subject's person, a subject without an
// explicit person falling back to DefaultSubjPerson.
func (c *Checker) CheckSubjectVerbAgreement(seq Sequence) bool {
	subjects := subjectsByHead(seq)
	for vi, v := range seq {
		if v.POS != POSVerb {
			continue
		}
		vn := v.Features.Get(FeatNumber)
		vp := v.Features.Get(FeatPerson)
		for _, si := range subjects[vi] {
			sf := seq[si].Features
			sn := sf.Get(FeatNumber)
			if sn != "" && vn != "" && sn != vn {
				return false
			}
			sp := sf.Get(FeatPerson)
			if sp == "" {
				sp = c.cfg.DefaultSubjPerson
			}
			if vp != "" && sp != vp {
				return false
			}
		}
	}
	return true
}

// Validate is the conjunction of all five checks, evaluated as template,
// anti-repetition, gender, number, subject–verb. The order only matters
// for early exit; the boolean result does not depend on it.
func (c *Checker) Validate(seq Sequence) bool {
	return c.CheckSyntaxTemplate(seq) &&
		c.CheckAntiRepetition(seq) &&
		c.CheckGenderAgreement(seq) &&
		c.CheckNumberAgreement(seq) &&
		c.CheckSubjectVerbAgreement(seq)
}
