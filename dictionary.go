package accord

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// DictEntry is one inflected form from a lexical resource.
type DictEntry struct {
	Form     string
	Lemma    string
	POS      string
	Features Features
}

// Dictionary is a lookup table of inflected forms built from external
// lexical resources (Morphalou XML and/or Lefff tabular files). It is
// read-only once loaded; the rule engine and searches never see the raw
// resource formats.
type Dictionary struct {
	// entries maps a lowercased surface form to its readings.
	entries map[string][]DictEntry
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{entries: make(map[string][]DictEntry)}
}

// Add inserts one entry under the lowercased form key. It is also how
// callers register in-memory lexicons without a resource file.
func (d *Dictionary) Add(e DictEntry) {
	if e.Form == "" {
		return
	}
	key := strings.ToLower(e.Form)
	d.entries[key] = append(d.entries[key], e)
}

// Lookup returns the readings for a surface form, matched case-insensitively.
func (d *Dictionary) Lookup(form string) []DictEntry {
	return d.entries[strings.ToLower(form)]
}

// Len returns the number of distinct forms loaded.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Forms returns every loaded surface form with the given part-of-speech,
// in no particular order.
func (d *Dictionary) Forms(pos string) []string {
	var out []string
	for _, list := range d.entries {
		for _, e := range list {
			if e.POS == pos {
				out = append(out, e.Form)
				break
			}
		}
	}
	return out
}

// morphalouDict mirrors the Morphalou XML layout:
//
//	<dictionary>
//	  <entry lemma="chat" pos="NOUN">
//	    <inflected_form form="chats" gender="masc" number="plur"/>
//	  </entry>
//	</dictionary>
type morphalouDict struct {
	Entries []struct {
		Lemma string `xml:"lemma,attr"`
		POS   string `xml:"pos,attr"`
		Forms []struct {
			Form   string `xml:"form,attr"`
			Gender string `xml:"gender,attr"`
			Number string `xml:"number,attr"`
			Tense  string `xml:"tense,attr"`
			Person string `xml:"person,attr"`
		} `xml:"inflected_form"`
	} `xml:"entry"`
}

// LoadMorphalou loads a Morphalou-style XML lemma/inflected-form resource
// into the dictionary.
func (d *Dictionary) LoadMorphalou(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open morphalou: %w", err)
	}
	defer f.Close()

	var doc morphalouDict
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return fmt.Errorf("parse morphalou %s: %w", path, err)
	}

	for _, entry := range doc.Entries {
		for _, inf := range entry.Forms {
			feats := make(Features)
			if inf.Gender != "" {
				feats[FeatGender] = strings.ToLower(inf.Gender)
			}
			if inf.Number != "" {
				feats[FeatNumber] = strings.ToLower(inf.Number)
			}
			if inf.Person != "" {
				feats[FeatPerson] = strings.ToLower(inf.Person)
			}
			d.Add(DictEntry{
				Form:     inf.Form,
				Lemma:    entry.Lemma,
				POS:      entry.POS,
				Features: feats,
			})
		}
	}
	return nil
}

// LoadLefff loads a Lefff-style tabular resource: one entry per line,
// "form<TAB>lemma<TAB>pos<TAB>features" where features is a
// "Key=Value|Key=Value" list. Blank lines and lines starting with '#'
// are skipped; a missing features column means no features.
func (d *Dictionary) LoadLefff(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open lefff: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}
		e := DictEntry{
			Form:     fields[0],
			Lemma:    fields[1],
			POS:      fields[2],
			Features: make(Features),
		}
		if len(fields) > 3 {
			e.Features = ParseFeatures(fields[3])
		}
		d.Add(e)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read lefff %s: %w", path, err)
	}
	return nil
}

// ParseFeatures parses a "Key=Value|Key=Value" morphological feature list
// into a Features map with lowercased keys and values. Items without '='
// are ignored.
func ParseFeatures(s string) Features {
	feats := make(Features)
	for _, item := range strings.Split(s, "|") {
		key, value, ok := strings.Cut(item, "=")
		if !ok {
			continue
		}
		feats[strings.ToLower(key)] = strings.ToLower(value)
	}
	return feats
}
