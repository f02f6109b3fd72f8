package accord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(pos string, feats Features) Token {
	return Token{Text: "x", POS: pos, Head: HeadRoot, Features: feats}
}

func adj(text, lemma string) Token {
	return Token{Text: text, Lemma: lemma, POS: POSAdj, Head: HeadRoot}
}

func tags(pos ...string) Sequence {
	seq := make(Sequence, len(pos))
	for i, p := range pos {
		seq[i] = tok(p, nil)
	}
	return seq
}

func TestCheckSyntaxTemplate(t *testing.T) {
	cfg := DefaultCheckerConfig() // PreAdjMax=1, PostAdjMax=2, DET+NOUN required
	tests := []struct {
		name       string
		seq        Sequence
		requireDet bool
		want       bool
	}{
		{"empty always fails", nil, true, false},
		{"canonical NP", tags(POSDet, POSAdj, POSNoun), true, true},
		{"two pre-adjectives exceed cap", tags(POSDet, POSAdj, POSAdj, POSNoun), true, false},
		{"two post-adjectives allowed", tags(POSDet, POSNoun, POSAdj, POSAdj), true, true},
		{"three post-adjectives exceed cap", tags(POSDet, POSNoun, POSAdj, POSAdj, POSAdj), true, false},
		{"bare noun needs optional det", tags(POSNoun), false, true},
		{"bare noun fails with required det", tags(POSNoun), true, false},
		{"missing noun", tags(POSDet, POSAdj), true, false},
		{"trailing token unconsumed", tags(POSDet, POSNoun, POSVerb), true, false},
		{"det still consumed when optional", tags(POSDet, POSNoun), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := cfg
			cfg.RequireDet = tt.requireDet
			got := NewChecker(cfg).CheckSyntaxTemplate(tt.seq)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckGenderAgreement(t *testing.T) {
	c := NewDefaultChecker()

	mismatch := Sequence{
		tok(POSDet, Features{FeatGender: "fem"}),
		tok(POSNoun, Features{FeatGender: "masc"}),
	}
	assert.False(t, c.CheckGenderAgreement(mismatch))

	match := Sequence{
		tok(POSDet, Features{FeatGender: "fem"}),
		tok(POSNoun, Features{FeatGender: "fem"}),
	}
	assert.True(t, c.CheckGenderAgreement(match))

	// Tokens outside DET/ADJ/NOUN never participate.
	withVerb := append(Sequence{}, match...)
	withVerb = append(withVerb, tok(POSVerb, Features{FeatGender: "masc"}))
	assert.True(t, c.CheckGenderAgreement(withVerb))

	// Unknown features are skipped, not defaulted.
	assert.True(t, c.CheckGenderAgreement(tags(POSDet, POSNoun)))
	assert.True(t, c.CheckGenderAgreement(nil))
}

func TestCheckNumberAgreement(t *testing.T) {
	c := NewDefaultChecker()

	assert.False(t, c.CheckNumberAgreement(Sequence{
		tok(POSDet, Features{FeatNumber: "sing"}),
		tok(POSNoun, Features{FeatNumber: "plur"}),
	}))

	// A verb's number is compared against its subject, not the canonical
	// value established by preceding tokens.
	subjVerb := Sequence{
		{Text: "chats", POS: POSNoun, Dep: DepNsubj, Head: 1, Features: Features{FeatNumber: "plur"}},
		{Text: "mange", POS: POSVerb, Head: HeadRoot, Features: Features{FeatNumber: "sing"}},
	}
	assert.False(t, c.CheckNumberAgreement(subjVerb))

	// Without a mapped subject the verb's number is unconstrained.
	noSubj := Sequence{
		{Text: "chat", POS: POSNoun, Head: HeadRoot, Features: Features{FeatNumber: "sing"}},
		{Text: "mangent", POS: POSVerb, Head: HeadRoot, Features: Features{FeatNumber: "plur"}},
	}
	assert.True(t, c.CheckNumberAgreement(noSubj))
}

func TestCheckSubjectVerbAgreement(t *testing.T) {
	c := NewDefaultChecker()

	numberClash := Sequence{
		{Text: "chats", POS: POSNoun, Dep: DepNsubj, Head: 1, Features: Features{FeatNumber: "plur"}},
		{Text: "mange", POS: POSVerb, Head: HeadRoot, Features: Features{FeatNumber: "sing"}},
	}
	assert.False(t, c.CheckSubjectVerbAgreement(numberClash))

	// Subject without an explicit person falls back to the default "3".
	personClash := Sequence{
		{Text: "chat", POS: POSNoun, Dep: DepNsubj, Head: 1, Features: Features{FeatNumber: "sing"}},
		{Text: "manges", POS: POSVerb, Head: HeadRoot, Features: Features{FeatNumber: "sing", FeatPerson: "2"}},
	}
	assert.False(t, c.CheckSubjectVerbAgreement(personClash))

	ok := Sequence{
		{Text: "chat", POS: POSNoun, Dep: DepNsubj, Head: 1, Features: Features{FeatNumber: "sing"}},
		{Text: "mange", POS: POSVerb, Head: HeadRoot, Features: Features{FeatNumber: "sing", FeatPerson: "3"}},
	}
	assert.True(t, c.CheckSubjectVerbAgreement(ok))

	// Passive subjects count too.
	passive := Sequence{
		{Text: "chats", POS: POSNoun, Dep: DepNsubjPass, Head: 1, Features: Features{FeatNumber: "plur"}},
		{Text: "mange", POS: POSVerb, Head: HeadRoot, Features: Features{FeatNumber: "sing"}},
	}
	assert.False(t, c.CheckSubjectVerbAgreement(passive))
}

func TestCheckAntiRepetition(t *testing.T) {
	c := NewDefaultChecker() // MaxConsecutiveSameAdj=1, MaxSameAdjPerSentence=1, MaxTotalAdjs=3

	assert.False(t, c.CheckAntiRepetition(Sequence{adj("petit", "petit"), adj("petit", "petit")}),
		"direct repetition of one lemma must fail")
	assert.True(t, c.CheckAntiRepetition(Sequence{adj("petit", "petit"), adj("grand", "grand")}))

	// Lemma comparison falls back to the surface text and normalizes case.
	assert.False(t, c.CheckAntiRepetition(Sequence{adj("Petit", ""), adj("petit", "")}))

	// A non-adjective resets the run but not the per-sentence count.
	separated := Sequence{
		adj("petit", "petit"),
		tok(POSNoun, nil),
		adj("petit", "petit"),
	}
	assert.False(t, c.CheckAntiRepetition(separated))

	cfg := DefaultCheckerConfig()
	cfg.MaxSameAdjPerSentence = 2
	assert.True(t, NewChecker(cfg).CheckAntiRepetition(separated))

	// Total adjective cap, distinct lemmas.
	many := Sequence{adj("a", "a"), adj("b", "b"), adj("c", "c"), adj("d", "d")}
	assert.False(t, c.CheckAntiRepetition(many))

	assert.True(t, c.CheckAntiRepetition(nil))
}

func TestValidate(t *testing.T) {
	c := NewDefaultChecker()
	seq := Sequence{
		{Text: "Le", Lemma: "le", POS: POSDet, Head: HeadRoot, Features: Features{FeatGender: "masc", FeatNumber: "sing"}},
		{Text: "petit", Lemma: "petit", POS: POSAdj, Head: HeadRoot, Features: Features{FeatGender: "masc", FeatNumber: "sing"}},
		{Text: "chat", Lemma: "chat", POS: POSNoun, Head: HeadRoot, Features: Features{FeatGender: "masc", FeatNumber: "sing"}},
	}
	require.True(t, c.Validate(seq))

	// Idempotence: no hidden state between calls.
	assert.Equal(t, c.Validate(seq), c.Validate(seq))

	assert.False(t, c.Validate(nil), "empty sequence fails the template")
}

func TestUnknownConstraintIsVacuous(t *testing.T) {
	c := NewDefaultChecker()
	assert.True(t, c.Check(Constraint("object_agreement"), nil))
	assert.True(t, c.CheckAll([]Constraint{"no_such_rule", ConstraintGenderAgreement}, Sequence{
		tok(POSNoun, Features{FeatGender: "masc"}),
	}))
}
