package accord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteAnalyzer calls an external tagging service over HTTP. The service
// is expected to expose POST <base>/api/analyze accepting
// {"texts": ["..."]} and answering {"sequences": [[token, ...], ...]} with
// one token array per input text, in input order, each token following the
// wire schema of Token.
type RemoteAnalyzer struct {
	base   string
	client *http.Client
}

// NewRemoteAnalyzer validates the base URL and builds the client. An
// unusable URL is a configuration error, reported here rather than on the
// first Analyze call.
func NewRemoteAnalyzer(baseURL string) (*RemoteAnalyzer, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid analyzer base URL %q", baseURL)
	}
	return &RemoteAnalyzer{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type analyzeRequest struct {
	Texts []string `json:"texts"`
}

type analyzeResponse struct {
	Sequences []Sequence `json:"sequences"`
	Error     string     `json:"error,omitempty"`
}

// Analyze analyzes a single text.
func (a *RemoteAnalyzer) Analyze(text string) (Sequence, error) {
	seqs, err := a.AnalyzeBatch([]string{text})
	if err != nil {
		return nil, err
	}
	if len(seqs) == 0 {
		return nil, nil
	}
	return seqs[0], nil
}

// AnalyzeBatch sends all texts in one request and returns one sequence per
// text, in input order.
func (a *RemoteAnalyzer) AnalyzeBatch(texts []string) ([]Sequence, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	body, err := json.Marshal(analyzeRequest{Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("encode analyze request: %w", err)
	}
	resp, err := a.client.Post(a.base+"/api/analyze", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("analyzer request: %w", err)
	}
	defer resp.Body.Close()

	var out analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode analyzer response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := out.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("analyzer: %s", msg)
	}
	if len(out.Sequences) != len(texts) {
		return nil, fmt.Errorf("analyzer returned %d sequences for %d texts", len(out.Sequences), len(texts))
	}
	return out.Sequences, nil
}
