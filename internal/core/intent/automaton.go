package intent

// automaton is a byte-level Aho-Corasick matcher. Every node carries a full
// 256-way transition row so scanning never hits a map
type automaton struct {
	nodes []node
}

type node struct {
	next [256]int32 // -1 when absent
	fail int32
	out  []int // pattern ids ending here, including those reached by fail links
}

func newNode() node {
	var n node
	for i := range n.next {
		n.next[i] = -1
	}
	return n
}

func newAutomaton() *automaton {
	return &automaton{nodes: []node{newNode()}}
}

func (a *automaton) add(pat string, id int) {
	if pat == "" {
		return
	}
	s := int32(0)
	for i := 0; i < len(pat); i++ {
		b := pat[i]
		nxt := a.nodes[s].next[b]
		if nxt == -1 {
			nxt = int32(len(a.nodes))
			a.nodes[s].next[b] = nxt
			a.nodes = append(a.nodes, newNode())
		}
		s = nxt
	}
	a.nodes[s].out = append(a.nodes[s].out, id)
}

// build wires failure links breadth first and folds suffix outputs in
func (a *automaton) build() {
	q := make([]int32, 0, len(a.nodes))
	for b := 0; b < 256; b++ {
		if s := a.nodes[0].next[b]; s != -1 {
			a.nodes[s].fail = 0
			q = append(q, s)
		}
	}
	for qi := 0; qi < len(q); qi++ {
		r := q[qi]
		for b := 0; b < 256; b++ {
			s := a.nodes[r].next[b]
			if s == -1 {
				continue
			}
			q = append(q, s)

			f := a.nodes[r].fail
			for f != 0 && a.nodes[f].next[b] == -1 {
				f = a.nodes[f].fail
			}
			if nxt := a.nodes[f].next[b]; nxt != -1 && nxt != s {
				a.nodes[s].fail = nxt
			} else {
				a.nodes[s].fail = 0
			}
			a.nodes[s].out = append(a.nodes[s].out, a.nodes[a.nodes[s].fail].out...)
		}
	}
}

// scan calls fn(end, id) for every match, end exclusive. Returning false stops
// the scan
func (a *automaton) scan(text string, fn func(end, id int) bool) {
	s := int32(0)
	for i := 0; i < len(text); i++ {
		b := text[i]
		for s != 0 && a.nodes[s].next[b] == -1 {
			s = a.nodes[s].fail
		}
		if nxt := a.nodes[s].next[b]; nxt != -1 {
			s = nxt
		}
		for _, id := range a.nodes[s].out {
			if !fn(i+1, id) {
				return
			}
		}
	}
}
