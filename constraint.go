package accord

// Constraint names a predicate over a Sequence. The set is closed; names
// outside it are vacuously satisfied so that new template configurations
// degrade gracefully instead of failing every sequence.
type Constraint string

const (
	ConstraintSyntaxTemplate  Constraint = "syntax_template"
	ConstraintAntiRepetition  Constraint = "anti_repetition"
	ConstraintGenderAgreement Constraint = "gender_agreement"
	ConstraintNumberAgreement Constraint = "number_agreement"
	ConstraintSubjectVerb     Constraint = "subject_verb_agreement"
)

// Check applies one named constraint to seq. Unknown constraint names
// return true.
func (c *Checker) Check(name Constraint, seq Sequence) bool {
	switch name {
	case ConstraintSyntaxTemplate:
		return c.CheckSyntaxTemplate(seq)
	case ConstraintAntiRepetition:
		return c.CheckAntiRepetition(seq)
	case ConstraintGenderAgreement:
		return c.CheckGenderAgreement(seq)
	case ConstraintNumberAgreement:
		return c.CheckNumberAgreement(seq)
	case ConstraintSubjectVerb:
		return c.CheckSubjectVerbAgreement(seq)
	default:
		return true
	}
}

// CheckAll applies every named constraint to seq and reports whether all
// of them hold.
func (c *Checker) CheckAll(names []Constraint, seq Sequence) bool {
	for _, name := range names {
		if !c.Check(name, seq) {
			return false
		}
	}
	return true
}

// incremental reports whether a constraint is cheap enough to evaluate on
// a partial candidate during generation. Only gender and number agreement
// qualify; the other rules need the completed sequence.
func incremental(name Constraint) bool {
	return name == ConstraintGenderAgreement || name == ConstraintNumberAgreement
}
