// Command server exposes the agreement engine as a JSON REST API.
//
// Endpoints:
//
//	POST /api/validate   body: {"text":"..."} or {"tokens":[...]}
//	POST /api/generate   body: {"template":"SN","lexicon":{"NOUN":[...]}}
//	POST /api/decode     body: {"vocabulary":[...],"scores":[...]}
//	GET  /api/templates
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"path/filepath"
	"sort"

	"github.com/rs/cors"

	accord "github.com/morphosyntaxe/accord"
)

// ---- JSON request/response types ----------------------------------------

type validateRequest struct {
	Text   string          `json:"text"`
	Tokens accord.Sequence `json:"tokens"`
}

type validateResponse struct {
	Valid      bool   `json:"valid"`
	FailedRule string `json:"failed_rule,omitempty"`
}

type generateRequest struct {
	Template string              `json:"template"`
	Lexicon  map[string][]string `json:"lexicon"`
}

type generateResponse struct {
	Template string   `json:"template"`
	Phrases  []string `json:"phrases"`
}

type decodeRequest struct {
	Vocabulary  []string            `json:"vocabulary"`
	Scores      []float64           `json:"scores"`
	BeamWidth   int                 `json:"beam_width"`
	MaxLength   int                 `json:"max_length"`
	Constraints []accord.Constraint `json:"constraints"`
}

type hypothesisJSON struct {
	Words []string `json:"words"`
	Text  string   `json:"text"`
	Score float64  `json:"score"`
}

type decodeResponse struct {
	Hypotheses []hypothesisJSON `json:"hypotheses"`
}

type templatesResponse struct {
	Templates []string `json:"templates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// firstFailure runs the rules in validation order and names the first one
// that rejects the sequence.
func firstFailure(checker *accord.Checker, seq accord.Sequence) string {
	order := []accord.Constraint{
		accord.ConstraintSyntaxTemplate,
		accord.ConstraintAntiRepetition,
		accord.ConstraintGenderAgreement,
		accord.ConstraintNumberAgreement,
		accord.ConstraintSubjectVerb,
	}
	for _, rule := range order {
		if !checker.Check(rule, seq) {
			return string(rule)
		}
	}
	return ""
}

// ---- handlers -----------------------------------------------------------

func handleValidate(analyzer accord.Analyzer, checker *accord.Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var req validateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "body must be JSON with 'text' or 'tokens'")
			return
		}
		seq := req.Tokens
		if len(seq) == 0 && req.Text != "" {
			var err error
			seq, err = analyzer.Analyze(req.Text)
			if err != nil {
				writeError(w, http.StatusBadGateway, err.Error())
				return
			}
		}
		failed := firstFailure(checker, seq)
		writeJSON(w, http.StatusOK, validateResponse{Valid: failed == "", FailedRule: failed})
	}
}

func handleGenerate(gen *accord.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Template == "" {
			writeError(w, http.StatusBadRequest, "body must be JSON with a 'template' field")
			return
		}
		lexicon := req.Lexicon
		if len(lexicon) == 0 {
			lexicon = accord.BuiltinLexicon()
		}
		phrases, err := gen.Generate(req.Template, lexicon)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, generateResponse{Template: req.Template, Phrases: phrases})
	}
}

func handleDecode(dec *accord.Decoder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var req decodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Vocabulary) == 0 {
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'vocabulary'")
			return
		}
		beam, err := dec.Decode(accord.DecodeInput{
			Vocabulary:  req.Vocabulary,
			Scores:      req.Scores,
			BeamWidth:   req.BeamWidth,
			MaxLength:   req.MaxLength,
			Constraints: req.Constraints,
		})
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		out := make([]hypothesisJSON, 0, len(beam))
		for _, hyp := range beam {
			out = append(out, hypothesisJSON{Words: hyp.Words, Text: hyp.Text(), Score: hyp.Score})
		}
		writeJSON(w, http.StatusOK, decodeResponse{Hypotheses: out})
	}
}

func handleTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		names := accord.TemplateNames()
		sort.Strings(names)
		writeJSON(w, http.StatusOK, templatesResponse{Templates: names})
	}
}

// ---- main ---------------------------------------------------------------

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dictPath := flag.String("dict-path", "", "directory holding morphalou.xml and lefff.txt")
	flag.Parse()

	var analyzer accord.Analyzer
	if *dictPath == "" {
		log.Println("no dictionary path given, using the builtin demo lexicon")
		analyzer = accord.NewDictAnalyzer(accord.BuiltinDictionary())
	} else {
		dict := accord.NewDictionary()
		if err := dict.LoadMorphalou(filepath.Join(*dictPath, "morphalou.xml")); err != nil {
			log.Fatalf("failed to load dictionaries: %v", err)
		}
		if err := dict.LoadLefff(filepath.Join(*dictPath, "lefff.txt")); err != nil {
			log.Fatalf("failed to load dictionaries: %v", err)
		}
		log.Printf("loaded %d forms from %s", dict.Len(), *dictPath)
		analyzer = accord.NewDictAnalyzer(dict)
	}

	checker := accord.NewDefaultChecker()
	gen := accord.NewGenerator(analyzer, checker)
	dec := accord.NewDecoder(analyzer, checker)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/validate", handleValidate(analyzer, checker))
	mux.HandleFunc("/api/generate", handleGenerate(gen))
	mux.HandleFunc("/api/decode", handleDecode(dec))
	mux.HandleFunc("/api/templates", handleTemplates())

	handler := cors.Default().Handler(mux)

	log.Printf("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
