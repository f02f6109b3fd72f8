package accord

import "fmt"

// SentenceResult is the verdict for one evaluated sentence. FailedRule
// names the first rule that rejected it, empty when grammatical.
type SentenceResult struct {
	Sentence    string
	Grammatical bool
	FailedRule  Constraint
}

// Report aggregates an evaluation run.
type Report struct {
	Total       int
	Grammatical int
	Rate        float64
	// Errors counts failing sentences per first-failing rule.
	Errors  map[Constraint]int
	Results []SentenceResult
}

// Evaluator checks whole sentences for grammaticality and reports which
// rule rejected the failing ones.
type Evaluator struct {
	analyzer Analyzer
	checker  *Checker
}

// NewEvaluator builds an Evaluator around an analyzer and a rule engine.
func NewEvaluator(analyzer Analyzer, checker *Checker) *Evaluator {
	return &Evaluator{analyzer: analyzer, checker: checker}
}

// evaluationOrder is the order rules are tried, matching Validate.
var evaluationOrder = []Constraint{
	ConstraintSyntaxTemplate,
	ConstraintAntiRepetition,
	ConstraintGenderAgreement,
	ConstraintNumberAgreement,
	ConstraintSubjectVerb,
}

// Evaluate analyzes every sentence in one batch and classifies each one.
func (e *Evaluator) Evaluate(sentences []string) (*Report, error) {
	report := &Report{Errors: make(map[Constraint]int)}
	if len(sentences) == 0 {
		return report, nil
	}
	seqs, err := e.analyzer.AnalyzeBatch(sentences)
	if err != nil {
		return nil, fmt.Errorf("analyze sentences: %w", err)
	}

	for i, sentence := range sentences {
		res := SentenceResult{Sentence: sentence, Grammatical: true}
		var seq Sequence
		if i < len(seqs) {
			seq = seqs[i]
		}
		for _, rule := range evaluationOrder {
			if !e.checker.Check(rule, seq) {
				res.Grammatical = false
				res.FailedRule = rule
				report.Errors[rule]++
				break
			}
		}
		if res.Grammatical {
			report.Grammatical++
		}
		report.Results = append(report.Results, res)
	}
	report.Total = len(sentences)
	if report.Total > 0 {
		report.Rate = float64(report.Grammatical) / float64(report.Total)
	}
	return report, nil
}

// VerificationConfig returns the rule parameters used for single-sentence
// verification: a single post-nominal adjective, an effectively unbounded
// total adjective count, and no direct adjective repetition.
func VerificationConfig() CheckerConfig {
	cfg := DefaultCheckerConfig()
	cfg.PostAdjMax = 1
	cfg.MaxTotalAdjs = 1 << 30
	cfg.MaxConsecutiveSameAdj = 1
	return cfg
}

// VerifySentence checks one sentence against the agreement rules only:
// anti-repetition, gender, number and subject–verb. The syntactic template
// is deliberately not applied, so full sentences beyond a noun phrase can
// be verified.
func VerifySentence(analyzer Analyzer, checker *Checker, sentence string) (bool, error) {
	seq, err := analyzer.Analyze(sentence)
	if err != nil {
		return false, fmt.Errorf("analyze sentence: %w", err)
	}
	return checker.CheckAntiRepetition(seq) &&
		checker.CheckGenderAgreement(seq) &&
		checker.CheckNumberAgreement(seq) &&
		checker.CheckSubjectVerbAgreement(seq), nil
}
