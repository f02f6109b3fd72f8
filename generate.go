package accord

import (
	"fmt"

	"go.uber.org/zap"
)

// Generation defaults.
const (
	DefaultChunkSize      = 512
	DefaultMaxRepetitions = 3
)

// LexicalCatalog maps each part-of-speech tag to its ordered candidate
// surface forms, each pre-resolved to its one-token analysis. It is built
// once per generation call and read-only afterwards.
type LexicalCatalog struct {
	forms    map[string][]string
	analyses map[string]map[string]Sequence
}

// BuildCatalog pre-analyzes the lexicon through the analyzer, one batched
// call per part-of-speech. Duplicate forms are analyzed once; input order
// is preserved.
func BuildCatalog(analyzer Analyzer, lexicon map[string][]string) (*LexicalCatalog, error) {
	cat := &LexicalCatalog{
		forms:    make(map[string][]string),
		analyses: make(map[string]map[string]Sequence),
	}
	for pos, words := range lexicon {
		if len(words) == 0 {
			continue
		}
		seen := make(map[string]bool, len(words))
		unique := make([]string, 0, len(words))
		for _, w := range words {
			if !seen[w] {
				seen[w] = true
				unique = append(unique, w)
			}
		}
		seqs, err := analyzer.AnalyzeBatch(unique)
		if err != nil {
			return nil, fmt.Errorf("pre-analyze %s lexicon: %w", pos, err)
		}
		byForm := make(map[string]Sequence, len(unique))
		for i, w := range unique {
			if i < len(seqs) {
				byForm[w] = seqs[i]
			}
		}
		cat.forms[pos] = unique
		cat.analyses[pos] = byForm
	}
	return cat, nil
}

// FormsFor returns the catalog's candidate forms for a tag.
func (c *LexicalCatalog) FormsFor(pos string) []string {
	return c.forms[pos]
}

// analysisFor returns the pre-analysis of one form, or nil when the form
// could not be analyzed.
func (c *LexicalCatalog) analysisFor(pos, form string) Sequence {
	return c.analyses[pos][form]
}

// Generator expands a slot template against a lexicon by depth-first
// search, pruning subtrees with the incremental gender/number checks, then
// post-filters completed candidates against the template's full constraint
// set over a fresh batched analysis.
type Generator struct {
	analyzer  Analyzer
	checker   *Checker
	chunkSize int
	maxReps   int
	log       *zap.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithChunkSize sets how many completed candidates are re-analyzed per
// batched analyzer call during post-filtering.
func WithChunkSize(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.chunkSize = n
		}
	}
}

// WithMaxRepetitions bounds how often a zero-or-more slot may repeat.
func WithMaxRepetitions(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.maxReps = n
		}
	}
}

// WithGeneratorLogger attaches a logger for progress reporting.
func WithGeneratorLogger(log *zap.Logger) GeneratorOption {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// NewGenerator builds a Generator around an analyzer and a rule engine.
func NewGenerator(analyzer Analyzer, checker *Checker, opts ...GeneratorOption) *Generator {
	g := &Generator{
		analyzer:  analyzer,
		checker:   checker,
		chunkSize: DefaultChunkSize,
		maxReps:   DefaultMaxRepetitions,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate expands the named template against the lexicon and returns every
// surviving phrase in discovery order. Identical surface sequences reached
// via different expansion paths are all kept. An unknown template name is a
// configuration error.
func (g *Generator) Generate(templateName string, lexicon map[string][]string) ([]string, error) {
	tmpl, err := LookupTemplate(templateName)
	if err != nil {
		return nil, err
	}
	return g.GenerateTemplate(tmpl, lexicon)
}

// GenerateTemplate is Generate for a caller-supplied template.
func (g *Generator) GenerateTemplate(tmpl Template, lexicon map[string][]string) ([]string, error) {
	catalog, err := BuildCatalog(g.analyzer, lexicon)
	if err != nil {
		return nil, err
	}

	st := &searchState{
		slots:   tmpl.Slots,
		catalog: catalog,
		checker: g.checker,
		maxReps: g.maxReps,
	}
	for _, name := range tmpl.Constraints {
		if incremental(name) {
			st.pruneWith = append(st.pruneWith, name)
		}
	}
	st.expand(0, 0)

	g.log.Info("generated candidate sequences",
		zap.String("template", tmpl.Name),
		zap.Int("candidates", len(st.out)))

	return g.postFilter(tmpl, st.out)
}

// searchState is the working state of one depth-first expansion. The three
// parallel buffers are owned exclusively by the active recursion: every
// push is undone before the frame returns, so one allocation serves every
// branch of the search.
type searchState struct {
	slots     []Slot
	catalog   *LexicalCatalog
	checker   *Checker
	pruneWith []Constraint
	maxReps   int

	words  []string
	tokens Sequence
	pos    []string

	out [][]string
}

// expand tries every catalog form for the slot at index si. repeat counts
// how many tokens the current zero-or-more slot has already consumed.
func (s *searchState) expand(si, repeat int) {
	if si == len(s.slots) {
		if len(s.words) > 0 {
			s.out = append(s.out, append([]string(nil), s.words...))
		}
		return
	}
	slot := s.slots[si]

	for _, form := range s.catalog.FormsFor(slot.POS) {
		analysis := s.catalog.analysisFor(slot.POS, form)
		if len(analysis) == 0 {
			continue
		}
		if slot.POS == POSAdj && s.rejectAdjective(form) {
			continue
		}

		nWords, nTokens := len(s.words), len(s.tokens)
		s.words = append(s.words, form)
		s.tokens = append(s.tokens, analysis...)
		s.pos = append(s.pos, slot.POS)

		if s.checker.CheckAll(s.pruneWith, s.tokens) {
			if slot.Multiplicity == ZeroOrMore && repeat+1 <= s.maxReps {
				s.expand(si, repeat+1)
			}
			s.expand(si+1, 0)
		}

		s.words = s.words[:nWords]
		s.tokens = s.tokens[:nTokens]
		s.pos = s.pos[:nWords]
	}

	if slot.Multiplicity == Optional || slot.Multiplicity == ZeroOrMore {
		s.expand(si+1, 0)
	}
}

// rejectAdjective applies the two adjective-specific caps: a form chosen
// twice anywhere in the candidate is out, and so is a choice that would
// make three identical adjectives in a row.
func (s *searchState) rejectAdjective(form string) bool {
	uses := 0
	for i, w := range s.words {
		if w == form && s.pos[i] == POSAdj {
			uses++
		}
	}
	if uses >= 2 {
		return true
	}
	consecutive := 0
	for i := len(s.words) - 1; i >= 0 && s.pos[i] == POSAdj && s.words[i] == form; i-- {
		consecutive++
	}
	return consecutive >= 2
}

// postFilter re-analyzes completed candidates in chunks and keeps those
// passing every template constraint plus anti-repetition, in discovery
// order. Output phrases are rebuilt from the analyzed token texts.
func (g *Generator) postFilter(tmpl Template, candidates [][]string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	totalChunks := (len(candidates) + g.chunkSize - 1) / g.chunkSize

	var kept []string
	for start := 0; start < len(candidates); start += g.chunkSize {
		end := start + g.chunkSize
		if end > len(candidates) {
			end = len(candidates)
		}
		chunk := candidates[start:end]
		g.log.Debug("analyzing candidate chunk",
			zap.String("template", tmpl.Name),
			zap.Int("chunk", start/g.chunkSize+1),
			zap.Int("chunks", totalChunks),
			zap.Int("size", len(chunk)))

		texts := make([]string, len(chunk))
		for i, words := range chunk {
			texts[i] = joinWords(words)
		}
		seqs, err := g.analyzer.AnalyzeBatch(texts)
		if err != nil {
			return nil, fmt.Errorf("analyze candidates: %w", err)
		}

		for i, words := range chunk {
			if i >= len(seqs) {
				break
			}
			seq := seqs[i]
			if len(seq) == 0 || len(words) == 0 {
				continue
			}
			if !g.checker.CheckAll(tmpl.Constraints, seq) {
				continue
			}
			if !g.checker.CheckAntiRepetition(seq) {
				continue
			}
			surface := make([]string, len(seq))
			for j, t := range seq {
				surface[j] = t.Text
			}
			kept = append(kept, joinWords(surface))
		}
	}
	return kept, nil
}
