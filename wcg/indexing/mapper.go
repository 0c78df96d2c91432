package indexing

// Symbols interns string keys (page ids, titles, category labels) to dense Handles.
// Handles are assigned in first-seen order and never reused.
type Symbols struct {
	toHandle map[string]Handle
	names    []string
}

func NewSymbols() *Symbols {
	return &Symbols{toHandle: make(map[string]Handle)}
}

// Intern returns the handle for s, assigning a new one if needed.
func (s *Symbols) Intern(key string) Handle {
	if h, ok := s.toHandle[key]; ok {
		return h
	}
	h := Handle(len(s.names))
	s.toHandle[key] = h
	s.names = append(s.names, key)
	return h
}

// Lookup never assigns.
func (s *Symbols) Lookup(key string) (Handle, bool) {
	h, ok := s.toHandle[key]
	return h, ok
}

// Name returns the string for h, or "" if h was never assigned.
func (s *Symbols) Name(h Handle) string {
	if int(h) >= len(s.names) {
		return ""
	}
	return s.names[h]
}

func (s *Symbols) Size() int { return len(s.names) }

// Clone returns an independent copy.
func (s *Symbols) Clone() *Symbols {
	c := &Symbols{
		toHandle: make(map[string]Handle, len(s.toHandle)),
		names:    make([]string, len(s.names)),
	}
	copy(c.names, s.names)
	for k, v := range s.toHandle {
		c.toHandle[k] = v
	}
	return c
}
