// Package classify maps a panel's PromQL expressions and title text to a
// short descriptor of the quantity the panel displays. Rules are evaluated
// in declaration order and the first match wins.
package classify

import (
	"regexp"
	"strings"
)

// Descriptor labels. The vocabulary is fixed: the classifier only ever
// returns one of these.
const (
	P95Latency      = "p95 latency"
	TimeSinceLast   = "time since last"
	FinalizationGap = "finalization gap"
	EventsPerSec    = "events/sec"
	TxPerSec        = "tx/sec"
	ErrorRate       = "error rate"
	PeerCount       = "peer count"
	ConnCount       = "conn count"
	QueueDepth      = "queue depth"
	Height          = "height"
	Slot            = "slot"
	Epoch           = "epoch"
	Current         = "current"
)

// metricRE matches PromQL identifier-shaped tokens. The underscore-or-colon
// filter in metricTokens is what separates likely metric names from bare
// keywords and numbers.
var metricRE = regexp.MustCompile(`\b[a-zA-Z_:][a-zA-Z0-9_:]*\b`)

// input carries everything a rule predicate may inspect.
type input struct {
	title    string   // panel title, lowercased
	exprs    []string // individual expressions, trimmed
	combined string   // all expressions joined with newlines
	metrics  []string // identifier tokens containing "_" or ":", deduplicated
}

type rule struct {
	match      func(in *input) bool
	descriptor string
}

// rules is the cascade. Order encodes specificity: structural query-shape
// signals beat title keywords, which beat metric-name suffix guessing, which
// beats the generic fallback. Reordering changes classification results.
var rules = []rule{
	{combinedContains("histogram_quantile"), P95Latency},
	{combinedContains("time() - on() ("), TimeSinceLast},
	{combinedContains("consensus_tip_height - consensus_finalized_height"), FinalizationGap},
	{anyExprContains("rate(", "irate("), EventsPerSec},
	{titleContains("throughput", "tps"), TxPerSec},
	{titleContains("errors", "fail"), ErrorRate},
	{titleContains("peers"), PeerCount},
	{titleContains("connections"), ConnCount},
	{titleContains("queue", "pending"), QueueDepth},
	{anyMetricHasSuffix("_pending"), QueueDepth},
	{anyMetricHasSuffix("_height"), Height},
	{anyMetricHasSuffix("_slot"), Slot},
	{anyMetricHasSuffix("_epoch"), Epoch},
	{anyMetricContains("connections"), ConnCount},
	{func(*input) bool { return true }, Current},
}

// Descriptor returns the label for a panel with the given title and collected
// expressions. ok is false when there is nothing to classify, which happens
// exactly when the expression list is empty.
func Descriptor(title string, exprs []string) (string, bool) {
	if len(exprs) == 0 {
		return "", false
	}

	in := &input{
		title:    strings.ToLower(title),
		exprs:    exprs,
		combined: strings.Join(exprs, "\n"),
	}
	in.metrics = metricTokens(in.combined)

	for _, r := range rules {
		if r.match(in) {
			return r.descriptor, true
		}
	}

	// unreachable: the last rule always matches
	return "", false
}

func combinedContains(sub string) func(*input) bool {
	return func(in *input) bool { return strings.Contains(in.combined, sub) }
}

func anyExprContains(subs ...string) func(*input) bool {
	return func(in *input) bool {
		for _, e := range in.exprs {
			for _, sub := range subs {
				if strings.Contains(e, sub) {
					return true
				}
			}
		}
		return false
	}
}

func titleContains(subs ...string) func(*input) bool {
	return func(in *input) bool {
		for _, sub := range subs {
			if strings.Contains(in.title, sub) {
				return true
			}
		}
		return false
	}
}

func anyMetricHasSuffix(suffix string) func(*input) bool {
	return func(in *input) bool {
		for _, m := range in.metrics {
			if strings.HasSuffix(m, suffix) {
				return true
			}
		}
		return false
	}
}

func anyMetricContains(sub string) func(*input) bool {
	return func(in *input) bool {
		for _, m := range in.metrics {
			if strings.Contains(m, sub) {
				return true
			}
		}
		return false
	}
}

// metricTokens extracts identifier tokens that contain an underscore or a
// colon, deduplicated in first-appearance order.
func metricTokens(s string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, tok := range metricRE.FindAllString(s, -1) {
		if !strings.ContainsAny(tok, "_:") {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}
