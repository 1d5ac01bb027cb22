package game

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Schedule maps an offset in ms to every entry that should be hit at that
// offset. It is immutable once built.
type Schedule struct {
	groups  map[int][]Entry
	keys    []int // ascending snapshot of the groups keys
	entries int
}

type Builder struct {
	groups  map[int][]Entry
	entries int
}

func NewBuilder() *Builder {
	return &Builder{groups: map[int][]Entry{}}
}

// Add appends to the group at offset, creating it when needed
func (b *Builder) Add(offset int, e Entry) {
	b.groups[offset] = append(b.groups[offset], e)
	b.entries++
}

func (b *Builder) Build() *Schedule {
	keys := maps.Keys(b.groups)
	slices.Sort(keys)
	s := &Schedule{
		groups:  b.groups,
		keys:    keys,
		entries: b.entries,
	}
	// The builder must not be able to mutate a built schedule
	b.groups = map[int][]Entry{}
	b.entries = 0
	return s
}

// Len is the number of distinct offsets
func (s *Schedule) Len() int {
	return len(s.keys)
}

// Entries is the number of entries across all groups
func (s *Schedule) Entries() int {
	return s.entries
}

func (s *Schedule) Keys() []int {
	return slices.Clone(s.keys)
}

func (s *Schedule) Group(offset int) []Entry {
	return s.groups[offset]
}

// Last is the latest time any entry in the schedule ends at
func (s *Schedule) Last() float64 {
	if len(s.keys) == 0 {
		return 0
	}
	last := float64(s.keys[len(s.keys)-1])
	// A hold that started earlier can still end after the last group
	for _, k := range s.keys {
		for _, e := range s.groups[k] {
			if e.End() > last {
				last = e.End()
			}
		}
	}
	return last
}

func (s *Schedule) Cursor() *Cursor {
	return &Cursor{schedule: s}
}
