package accord

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTemplateNotFound is returned when a generation request names a
// template that is not in the registry.
var ErrTemplateNotFound = errors.New("template not found")

// Multiplicity says how many tokens a slot may consume.
type Multiplicity int

const (
	// One consumes exactly one token.
	One Multiplicity = iota
	// Optional consumes zero or one token ("DET?").
	Optional
	// ZeroOrMore consumes any number of tokens ("ADJ*").
	ZeroOrMore
)

// Slot is one position of a pattern: a required part-of-speech tag and a
// multiplicity marker.
type Slot struct {
	POS          string
	Multiplicity Multiplicity
}

// Template is a named slot pattern together with the agreement constraints
// that generated candidates must satisfy.
type Template struct {
	Name        string
	Slots       []Slot
	Constraints []Constraint
}

// ParsePattern parses a pattern like "DET? ADJ* NOUN ADJ*" into slots.
// Each whitespace-separated item is a tag, optionally suffixed with "?"
// (zero or one) or "*" (zero or more).
func ParsePattern(pattern string) []Slot {
	var slots []Slot
	for _, part := range strings.Fields(pattern) {
		slot := Slot{POS: part, Multiplicity: One}
		switch {
		case strings.HasSuffix(part, "?"):
			slot.POS = strings.TrimSuffix(part, "?")
			slot.Multiplicity = Optional
		case strings.HasSuffix(part, "*"):
			slot.POS = strings.TrimSuffix(part, "*")
			slot.Multiplicity = ZeroOrMore
		}
		slots = append(slots, slot)
	}
	return slots
}

// templates is the built-in registry. SVO keeps "object_agreement" from the
// historical configuration; the name is outside the closed constraint set
// and therefore vacuous.
var templates = map[string]Template{
	"SN": {
		Name:        "SN",
		Slots:       ParsePattern("DET? ADJ* NOUN ADJ*"),
		Constraints: []Constraint{ConstraintGenderAgreement, ConstraintNumberAgreement},
	},
	"SV": {
		Name:        "SV",
		Slots:       ParsePattern("NOUN VERB"),
		Constraints: []Constraint{ConstraintSubjectVerb},
	},
	"SVO": {
		Name:        "SVO",
		Slots:       ParsePattern("NOUN VERB DET? NOUN"),
		Constraints: []Constraint{ConstraintSubjectVerb, Constraint("object_agreement")},
	},
}

// LookupTemplate returns the registered template with the given name.
func LookupTemplate(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return t, nil
}

// TemplateNames lists the registered template names in no particular order.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	return names
}
