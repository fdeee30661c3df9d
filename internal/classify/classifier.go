// Package classify provides the content-classification oracle consumed by
// the publication gate. The engine treats it as opaque: given post text it
// returns a disallowed flag and per-topic truth ratings in a stable order.
package classify

import (
	"context"
	"strings"
)

// Result is one (expertise area, truth rating) verdict for a post.
// A nil TruthRating means the area matched but the classifier has no
// confidence either way; the moderation cascade ignores such entries.
type Result struct {
	Area        string `json:"area"`
	TruthRating *int   `json:"truth_rating,omitempty"`
}

// Classifier classifies post content. Implementations must return results in
// a deterministic order for identical input; the moderation cascade relies
// on that order to make the ban short-circuit reproducible.
type Classifier interface {
	Classify(ctx context.Context, content string) (disallowed bool, results []Result, err error)
}

// Topic describes one expertise area the keyword classifier knows about.
type Topic struct {
	Area     string
	Keywords []string
}

// KeywordClassifier is a deterministic, dictionary-based Classifier used in
// development and seeding. Topics are evaluated in registration order, so
// identical content always yields identically ordered results.
type KeywordClassifier struct {
	topics     []Topic
	falsehoods []string
	blocked    []string
	strict     bool
}

// Option configures a KeywordClassifier.
type Option func(*KeywordClassifier)

// WithStrictMode makes falsehood markers count double, so a single marker is
// enough to push a topic to the misinformation side even in borderline text.
func WithStrictMode() Option {
	return func(k *KeywordClassifier) { k.strict = true }
}

// WithBlockedTerms overrides the disallowed-content dictionary.
func WithBlockedTerms(terms ...string) Option {
	return func(k *KeywordClassifier) { k.blocked = terms }
}

// DefaultTopics is the built-in topic dictionary used by development setups.
var DefaultTopics = []Topic{
	{Area: "science", Keywords: []string{"experiment", "physics", "vaccine", "climate", "research"}},
	{Area: "health", Keywords: []string{"vaccine", "diet", "medicine", "cancer", "nutrition"}},
	{Area: "finance", Keywords: []string{"stocks", "crypto", "inflation", "market", "invest"}},
	{Area: "history", Keywords: []string{"ancient", "war", "empire", "revolution", "medieval"}},
	{Area: "technology", Keywords: []string{"software", "hardware", "internet", "encryption", "robot"}},
}

var defaultFalsehoods = []string{"hoax", "fake", "debunked", "conspiracy", "miracle cure", "they don't want you to know"}

var defaultBlocked = []string{"buy followers", "free money scam", "pyramid scheme"}

// NewKeywordClassifier builds a classifier over the given topics. Passing no
// topics uses DefaultTopics.
func NewKeywordClassifier(topics []Topic, opts ...Option) *KeywordClassifier {
	if len(topics) == 0 {
		topics = DefaultTopics
	}
	k := &KeywordClassifier{
		topics:     topics,
		falsehoods: defaultFalsehoods,
		blocked:    defaultBlocked,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Classify implements Classifier.
func (k *KeywordClassifier) Classify(_ context.Context, content string) (bool, []Result, error) {
	text := strings.ToLower(content)

	disallowed := false
	for _, term := range k.blocked {
		if strings.Contains(text, term) {
			disallowed = true
			break
		}
	}

	markerHits := 0
	for _, marker := range k.falsehoods {
		markerHits += strings.Count(text, marker)
	}
	if k.strict {
		markerHits *= 2
	}

	var results []Result
	for _, topic := range k.topics {
		matched := false
		for _, kw := range topic.Keywords {
			if strings.Contains(text, kw) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		r := Result{Area: topic.Area}
		if markerHits > 0 {
			rating := -markerHits
			r.TruthRating = &rating
		}
		results = append(results, r)
	}

	return disallowed, results, nil
}
