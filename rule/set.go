package rule

import (
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Set is an always-sorted collection of rules.
//
// Order is (priority ascending, NFC-normalized name ascending) and is
// maintained on every Add and Remove. Rules is the snapshot the engine
// iterates; the threshold short-circuit is only correct because the
// snapshot is non-decreasing in priority.
//
// Set is not safe for concurrent use. The engine owns its Set
// exclusively; callers must not mutate it while a firing pass runs.
type Set struct {
	rules []Rule
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{}
}

// Normalize returns the NFC form of a rule name, the form used for
// identity comparison and tie-break ordering.
func Normalize(name string) string {
	return norm.NFC.String(name)
}

// Add inserts a rule, keeping the set sorted. A rule whose normalized
// name is already present is replaced (identity is the name, and a Set
// holds at most one rule per name).
func (s *Set) Add(r Rule) {
	name := Normalize(r.Name())
	if i, ok := s.index(name); ok {
		s.rules = append(s.rules[:i], s.rules[i+1:]...)
	}

	at := sort.Search(len(s.rules), func(i int) bool {
		return !s.less(s.rules[i], r.Priority(), name)
	})
	s.rules = append(s.rules, nil)
	copy(s.rules[at+1:], s.rules[at:])
	s.rules[at] = r
}

// Remove deletes the rule with the given name. Returns false if no
// such rule is registered.
func (s *Set) Remove(name string) bool {
	i, ok := s.index(Normalize(name))
	if !ok {
		return false
	}
	s.rules = append(s.rules[:i], s.rules[i+1:]...)
	return true
}

// Get returns the rule with the given name.
func (s *Set) Get(name string) (Rule, bool) {
	i, ok := s.index(Normalize(name))
	if !ok {
		return nil, false
	}
	return s.rules[i], true
}

// Len returns the number of registered rules.
func (s *Set) Len() int {
	return len(s.rules)
}

// Rules returns a copy of the rules in firing order.
func (s *Set) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// less reports whether existing sorts strictly before a rule with the
// given priority and normalized name.
func (s *Set) less(existing Rule, priority int, name string) bool {
	if existing.Priority() != priority {
		return existing.Priority() < priority
	}
	return Normalize(existing.Name()) < name
}

// index locates a rule by normalized name. Linear scan: sets are small
// and the sort key is (priority, name), so a name alone cannot be
// binary-searched.
func (s *Set) index(name string) (int, bool) {
	for i, r := range s.rules {
		if Normalize(r.Name()) == name {
			return i, true
		}
	}
	return 0, false
}
