package accord

// BuiltinLexicon is a tiny French demonstration lexicon for generation
// runs without a configured one.
func BuiltinLexicon() map[string][]string {
	return map[string][]string{
		POSDet:  {"Le", "La", "Les"},
		POSAdj:  {"petit", "petite", "grand", "grande"},
		POSNoun: {"chat", "chatte", "chien", "chienne"},
	}
}

// BuiltinDictionary covers the builtin lexicon plus a few verbs, enough
// for the dictionary analyzer to run the demos and tests offline.
func BuiltinDictionary() *Dictionary {
	d := NewDictionary()
	add := func(form, lemma, pos string, feats Features) {
		d.Add(DictEntry{Form: form, Lemma: lemma, POS: pos, Features: feats})
	}

	add("le", "le", POSDet, Features{FeatGender: "masc", FeatNumber: "sing"})
	add("la", "le", POSDet, Features{FeatGender: "fem", FeatNumber: "sing"})
	add("les", "le", POSDet, Features{FeatNumber: "plur"})

	add("petit", "petit", POSAdj, Features{FeatGender: "masc", FeatNumber: "sing"})
	add("petite", "petit", POSAdj, Features{FeatGender: "fem", FeatNumber: "sing"})
	add("petits", "petit", POSAdj, Features{FeatGender: "masc", FeatNumber: "plur"})
	add("petites", "petit", POSAdj, Features{FeatGender: "fem", FeatNumber: "plur"})
	add("grand", "grand", POSAdj, Features{FeatGender: "masc", FeatNumber: "sing"})
	add("grande", "grand", POSAdj, Features{FeatGender: "fem", FeatNumber: "sing"})
	add("noir", "noir", POSAdj, Features{FeatGender: "masc", FeatNumber: "sing"})
	add("noire", "noir", POSAdj, Features{FeatGender: "fem", FeatNumber: "sing"})

	add("chat", "chat", POSNoun, Features{FeatGender: "masc", FeatNumber: "sing"})
	add("chats", "chat", POSNoun, Features{FeatGender: "masc", FeatNumber: "plur"})
	add("chatte", "chat", POSNoun, Features{FeatGender: "fem", FeatNumber: "sing"})
	add("chien", "chien", POSNoun, Features{FeatGender: "masc", FeatNumber: "sing"})
	add("chienne", "chien", POSNoun, Features{FeatGender: "fem", FeatNumber: "sing"})
	add("souris", "souris", POSNoun, Features{FeatGender: "fem", FeatNumber: "sing"})

	add("mange", "manger", POSVerb, Features{FeatNumber: "sing", FeatPerson: "3"})
	add("mangent", "manger", POSVerb, Features{FeatNumber: "plur", FeatPerson: "3"})

	return d
}
