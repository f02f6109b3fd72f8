package accord

// Universal part-of-speech tags used by the agreement rules. The analyzer
// may emit any tag; the rules only ever look at these.
const (
	POSDet  = "DET"
	POSAdj  = "ADJ"
	POSNoun = "NOUN"
	POSVerb = "VERB"
	POSPron = "PRON"
)

// Feature keys recognized in Token.Features. Values are lowercase strings
// (e.g. "masc", "fem", "sing", "plur", "3"). A missing key means the
// feature is unknown, never a default.
const (
	FeatGender = "gender"
	FeatNumber = "number"
	FeatPerson = "person"
)

// Dependency relation labels that mark a nominal subject.
const (
	DepNsubj     = "nsubj"
	DepNsubjPass = "nsubj:pass"
)

// HeadRoot is the Head value of a token governed by the sentence root.
const HeadRoot = -1

// Features maps feature names to lowercase values.
type Features map[string]string

// Get returns the value for key, or "" when the feature is absent.
// Safe on a nil map.
func (f Features) Get(key string) string {
	if f == nil {
		return ""
	}
	return f[key]
}

// Token is one analyzed word: surface form, lemma, coarse part-of-speech,
// dependency relation, governor position and morphological features.
// Head, when not HeadRoot, is a 0-based index into the same Sequence.
type Token struct {
	Text     string   `json:"text"`
	Lemma    string   `json:"lemma"`
	POS      string   `json:"pos"`
	Dep      string   `json:"dep"`
	Head     int      `json:"head"`
	Features Features `json:"features"`
}

// Sequence is one analyzed sentence or candidate phrase. Sequences coming
// out of an Analyzer are treated as read-only by every consumer in this
// package.
type Sequence []Token
