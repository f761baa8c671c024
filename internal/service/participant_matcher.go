package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/kairos-api/internal/models"
)

// noMatchToken is the oracle's answer when no candidate is close enough.
const noMatchToken = "NO_MATCH"

// ParticipantMatcher picks the participant a submitted name refers to.
type ParticipantMatcher interface {
	MatchCandidate(ctx context.Context, query string, pool []models.MatchCandidate) (string, bool)
}

// completionClient is the language model endpoint used by OracleMatcher.
type completionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OracleMatcher asks a language model to pick the best match from the open candidate pool.
// Any failure of the model call degrades to "no match".
type OracleMatcher struct {
	client  completionClient
	metrics *MetricsService
	logger  *zap.Logger
}

// NewOracleMatcher constructs an OracleMatcher.
func NewOracleMatcher(client completionClient, metrics *MetricsService, logger *zap.Logger) *OracleMatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OracleMatcher{client: client, metrics: metrics, logger: logger}
}

// MatchCandidate returns the id of the matched candidate. The id is always a member of pool.
func (m *OracleMatcher) MatchCandidate(ctx context.Context, query string, pool []models.MatchCandidate) (string, bool) {
	if len(pool) == 0 {
		m.metrics.RecordMatcherCall(MatcherResultSkipped, 0)
		return "", false
	}

	start := time.Now()
	reply, err := m.client.Complete(ctx, buildMatchPrompt(query, pool))
	elapsed := time.Since(start)
	if err != nil {
		m.metrics.RecordMatcherCall(MatcherResultError, elapsed)
		m.logger.Warn("matcher call failed", zap.String("query", query), zap.Int("pool_size", len(pool)), zap.Error(err))
		return "", false
	}

	answer := strings.TrimSpace(reply)
	if answer == "" || answer == noMatchToken {
		m.metrics.RecordMatcherCall(MatcherResultNoMatch, elapsed)
		return "", false
	}

	for _, candidate := range pool {
		if candidate.ID == answer {
			m.metrics.RecordMatcherCall(MatcherResultMatch, elapsed)
			return candidate.ID, true
		}
	}

	m.metrics.RecordMatcherCall(MatcherResultUnknown, elapsed)
	m.logger.Warn("matcher returned unknown id", zap.String("answer", answer), zap.Int("pool_size", len(pool)))
	return "", false
}

func buildMatchPrompt(query string, pool []models.MatchCandidate) string {
	var b strings.Builder
	b.WriteString("You are a name matching assistant. Given a name from a form submission and a list of existing participants, find the best match.\n\n")
	fmt.Fprintf(&b, "Form submission name: %q\n\n", query)
	b.WriteString("Existing participants:\n")
	for i, candidate := range pool {
		fmt.Fprintf(&b, "%d. %q (ID: %s)\n", i+1, candidate.Name, candidate.ID)
	}
	b.WriteString(`
Instructions:
- Compare the names accounting for different orderings (first name/last name swap)
- Account for minor spelling variations, typos, or diacritics differences
- Romanian names may have diacritics (ă, â, î, ș, ț) that might be missing in one version
- Return ONLY the ID of the best matching participant, or "NO_MATCH" if no reasonable match exists
- A match should have at least 70% similarity in the names

Response format: Just the ID or "NO_MATCH", nothing else.`)
	return b.String()
}
