package names

const none = -1

// Matcher maps member names to their position in the list it was built
// from. It is immutable and safe for concurrent use.
type Matcher struct {
	exact  automaton
	folded automaton
}

// New builds a Matcher for names. Position i of names is reported for an
// exact match of names[i]. When no name matches exactly, an ASCII
// case-insensitive match is accepted if it is unambiguous.
func New(names []string) *Matcher {
	m := &Matcher{
		exact:  newAutomaton(len(names)),
		folded: newAutomaton(len(names)),
	}
	for i, name := range names {
		m.exact.insert(name, i, false)
	}
	for i, name := range names {
		m.folded.insert(name, i, true)
	}
	m.exact.compile()
	m.folded.compile()
	return m
}

// Match returns the position of name, or false when it is unknown.
func (m *Matcher) Match(name string) (int, bool) {
	if i := m.exact.find(name, false); i >= 0 {
		return i, true
	}
	if i := m.folded.find(name, true); i >= 0 {
		return i, true
	}
	return 0, false
}

// States returns the number of automaton states; used by tests and stats.
func (m *Matcher) States() int {
	return len(m.exact.accept) + len(m.folded.accept)
}

// ambiguous marks a folded state reached by more than one name.
const ambiguous = -2

type automaton struct {
	// trie holds sparse edges while building; compile replaces it with the
	// dense table.
	trie []map[byte]int32

	columns [256]uint16 // byte -> column, 0 means "no edge"
	width   int         // number of columns, including the dead column 0
	next    []int32     // state*width + column -> state, none for no edge
	accept  []int       // state -> name position, none, or ambiguous
}

func newAutomaton(hint int) automaton {
	a := automaton{
		trie:   make([]map[byte]int32, 1, hint*4+1),
		accept: make([]int, 1, hint*4+1),
	}
	a.accept[0] = none
	return a
}

func (a *automaton) insert(name string, pos int, fold bool) {
	state := int32(0)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if fold {
			c = lower(c)
		}
		if a.trie[state] == nil {
			a.trie[state] = make(map[byte]int32, 2)
		}
		next, ok := a.trie[state][c]
		if !ok {
			next = int32(len(a.trie))
			a.trie = append(a.trie, nil)
			a.accept = append(a.accept, none)
			a.trie[state][c] = next
		}
		state = next
	}
	switch cur := a.accept[state]; {
	case cur == none:
		a.accept[state] = pos
	case fold && cur != pos:
		a.accept[state] = ambiguous
	}
}

func (a *automaton) compile() {
	a.width = 1
	for _, edges := range a.trie {
		for c := range edges {
			if a.columns[c] == 0 {
				a.columns[c] = uint16(a.width)
				a.width++
			}
		}
	}
	a.next = make([]int32, len(a.trie)*a.width)
	for i := range a.next {
		a.next[i] = none
	}
	for state, edges := range a.trie {
		for c, to := range edges {
			a.next[state*a.width+int(a.columns[c])] = to
		}
	}
	a.trie = nil
}

func (a *automaton) find(name string, fold bool) int {
	state := int32(0)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if fold {
			c = lower(c)
		}
		col := a.columns[c]
		if col == 0 {
			return none
		}
		state = a.next[int(state)*a.width+int(col)]
		if state == none {
			return none
		}
	}
	if p := a.accept[state]; p >= 0 {
		return p
	}
	return none
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
