package intent

import (
	"fmt"
	"sort"
	"sync"

	"pbl/internal/core/normalize"
	"pbl/internal/core/rulepack"
)

// Hit is one keyword occurrence in the folded command text.
// Start and End are byte offsets into the folded text, End exclusive
type Hit struct {
	Keyword string `json:"keyword"`
	Intent  Intent `json:"intent"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

type pattern struct {
	keyword string
	intent  Intent
	rank    int
}

// Classifier is safe for concurrent use once built
type Classifier struct {
	order    []Intent
	patterns []pattern
	ac       *automaton
	pack     *rulepack.Pack
}

// New compiles every keyword of the pack into one automaton, tagging each
// pattern with its intent's rank in pack order
func New(p *rulepack.Pack) (*Classifier, error) {
	if p == nil {
		return nil, fmt.Errorf("intent: nil rule pack")
	}
	c := &Classifier{ac: newAutomaton(), pack: p}
	for rank, r := range p.Rules {
		in, err := Parse(r.Name)
		if err != nil {
			return nil, err
		}
		if in == Unknown {
			return nil, fmt.Errorf("intent: %q cannot own keywords", r.Name)
		}
		c.order = append(c.order, in)
		for _, kw := range r.Keywords {
			c.ac.add(kw, len(c.patterns))
			c.patterns = append(c.patterns, pattern{keyword: kw, intent: in, rank: rank})
		}
	}
	c.ac.build()
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultC    *Classifier
	defaultErr  error
)

// Default returns the classifier built from the embedded rule pack
func Default() (*Classifier, error) {
	defaultOnce.Do(func() {
		p, err := rulepack.Load()
		if err != nil {
			defaultErr = err
			return
		}
		defaultC, defaultErr = New(p)
	})
	return defaultC, defaultErr
}

// MustDefault is Default for callers that treat a broken embedded pack as fatal
func MustDefault() *Classifier {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Classify returns the highest priority intent with a keyword in text.
// The scan stops as soon as a rank 0 keyword is seen
func (c *Classifier) Classify(text string) Intent {
	folded := normalize.Fold(text)
	best := -1
	c.ac.scan(folded, func(_, id int) bool {
		r := c.patterns[id].rank
		if best == -1 || r < best {
			best = r
		}
		return best != 0
	})
	if best == -1 {
		return Unknown
	}
	return c.order[best]
}

// Explain lists every keyword hit in text, ordered by position then by rank
func (c *Classifier) Explain(text string) []Hit {
	type ranked struct {
		Hit
		rank int
	}
	folded := normalize.Fold(text)
	var found []ranked
	c.ac.scan(folded, func(end, id int) bool {
		p := c.patterns[id]
		found = append(found, ranked{
			Hit:  Hit{Keyword: p.keyword, Intent: p.intent, Start: end - len(p.keyword), End: end},
			rank: p.rank,
		})
		return true
	})
	sort.SliceStable(found, func(a, b int) bool {
		if found[a].Start != found[b].Start {
			return found[a].Start < found[b].Start
		}
		return found[a].rank < found[b].rank
	})
	out := make([]Hit, len(found))
	for i, f := range found {
		out[i] = f.Hit
	}
	return out
}

// Order returns the priority order this classifier was compiled with
func (c *Classifier) Order() []Intent { return append([]Intent(nil), c.order...) }

// Pack returns the rule pack the classifier was built from
func (c *Classifier) Pack() *rulepack.Pack { return c.pack }
