// Package rulepack loads the embedded intents.json keyword pack.
// It holds the ordered intent keyword sets the classifier compiles and the
// secondary study buckets the reply generator consults
package rulepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed intents.json
var embedded []byte

// SupportedVersion is the only intents.json schema version Load accepts
const SupportedVersion = 1

type rawIntent struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

type rawBucket struct {
	ID       string   `json:"id"`
	Triggers []string `json:"triggers"`
}

type rawPack struct {
	Version      int               `json:"version"`
	Meta         map[string]string `json:"meta"`
	Intents      []rawIntent       `json:"intents"`
	StudyBuckets []rawBucket       `json:"study_buckets"`
}

// Rule is one intent and its keyword set. Keywords are lowercased and deduped,
// first occurrence order is kept
type Rule struct {
	Name     string
	Keywords []string
}

// Bucket is a secondary keyword group used inside the study reply
type Bucket struct {
	ID       string
	Triggers []string
}

// Pack is the compiled keyword pack. Rules are in priority order, highest first
type Pack struct {
	Version      int
	Name         string
	Rules        []Rule
	StudyBuckets []Bucket
}

// Load returns the pack compiled from the embedded intents.json
func Load() (*Pack, error) { return Parse(embedded) }

// Raw returns a copy of the embedded intents.json bytes
func Raw() []byte { return append([]byte(nil), embedded...) }

// Parse compiles a pack from raw json. Exposed so tests and tools can feed
// alternate packs through the same validation
func Parse(data []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, fmt.Errorf("rulepack: parse intents.json: %w", err)
	}
	if rp.Version != SupportedVersion {
		return nil, fmt.Errorf("rulepack: unsupported intents.json version %d (want %d)", rp.Version, SupportedVersion)
	}
	if len(rp.Intents) == 0 {
		return nil, fmt.Errorf("rulepack: no intents defined")
	}

	p := &Pack{Version: rp.Version, Name: rp.Meta["name"]}

	seenRule := make(map[string]struct{}, len(rp.Intents))
	for i, ri := range rp.Intents {
		name := strings.ToLower(strings.TrimSpace(ri.Name))
		if name == "" {
			return nil, fmt.Errorf("rulepack: intent #%d has no name", i)
		}
		if _, dup := seenRule[name]; dup {
			return nil, fmt.Errorf("rulepack: intent %q defined twice", name)
		}
		seenRule[name] = struct{}{}

		kws := dedupeLower(ri.Keywords)
		if len(kws) == 0 {
			return nil, fmt.Errorf("rulepack: intent %q has no keywords", name)
		}
		p.Rules = append(p.Rules, Rule{Name: name, Keywords: kws})
	}

	for i, rb := range rp.StudyBuckets {
		id := strings.TrimSpace(rb.ID)
		if id == "" {
			return nil, fmt.Errorf("rulepack: study bucket #%d has no id", i)
		}
		var triggers []string
		for _, t := range rb.Triggers {
			// triggers are matched verbatim, so no case folding here
			if t = strings.TrimSpace(t); t != "" {
				triggers = append(triggers, t)
			}
		}
		if len(triggers) == 0 {
			return nil, fmt.Errorf("rulepack: study bucket %q has no triggers", id)
		}
		p.StudyBuckets = append(p.StudyBuckets, Bucket{ID: id, Triggers: triggers})
	}

	return p, nil
}

// Rule returns the rule with the given name
func (p *Pack) Rule(name string) (Rule, bool) {
	for _, r := range p.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// KeywordCount is the total number of keywords across all rules
func (p *Pack) KeywordCount() int {
	n := 0
	for _, r := range p.Rules {
		n += len(r.Keywords)
	}
	return n
}

func dedupeLower(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
