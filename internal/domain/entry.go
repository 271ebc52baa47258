package domain

// ContractEntry represents one contract line the agent is calculating commission for.
// Product, Type and PayYear identify a rate triple in the product master; Premium
// is the monthly first-premium amount in won.
type ContractEntry struct {
	ID      int    `yaml:"-" json:"id"`
	Product string `yaml:"product" json:"product"`
	Type    string `yaml:"type" json:"type"`
	PayYear string `yaml:"pay_year" json:"pay_year"`
	Premium int64  `yaml:"premium" json:"premium"`
}

// Session owns the working entry list for one calculation session. IDs come from
// a monotonic sequence and are never reused, so a delete followed by an add never
// resurrects a stale row. The session is owned by the front end; the engine only
// reads it.
type Session struct {
	entries []ContractEntry
	seq     int
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// NewSessionFromEntries seeds a session from pre-built entries, assigning fresh IDs.
func NewSessionFromEntries(entries []ContractEntry) *Session {
	s := &Session{}
	for _, e := range entries {
		s.seq++
		e.ID = s.seq
		s.entries = append(s.entries, e)
	}
	return s
}

// Add appends a new entry with the next sequence ID and returns a pointer to it
// so the caller can fill in defaults.
func (s *Session) Add(product, typ, payYear string) *ContractEntry {
	s.seq++
	s.entries = append(s.entries, ContractEntry{
		ID:      s.seq,
		Product: product,
		Type:    typ,
		PayYear: payYear,
	})
	return &s.entries[len(s.entries)-1]
}

// Remove deletes the entry with the given ID. Returns false if no such entry exists.
func (s *Session) Remove(id int) bool {
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a pointer to the entry with the given ID, or nil.
func (s *Session) Get(id int) *ContractEntry {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return &s.entries[i]
		}
	}
	return nil
}

// Entries returns the entries in insertion order. The slice is shared; callers
// that mutate rows do so deliberately (the TUI edits premiums in place).
func (s *Session) Entries() []ContractEntry {
	return s.entries
}

// Len returns the number of entries.
func (s *Session) Len() int {
	return len(s.entries)
}
