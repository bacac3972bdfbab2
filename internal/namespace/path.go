// Package namespace implements the hierarchical names that key every declared
// resource of a Fire project, e.g. game::Player::hit.
package namespace

import (
	"slices"
	"strings"
)

// Separator joins segments in the user-visible form.
const Separator = "::"

// keySep never occurs inside a segment: segments come from identifiers and
// file names, neither of which may contain NUL.
const keySep = "\x00"

// Path is an immutable ordered sequence of segments.
// Every derivation returns a new value; the backing array is never shared
// with a path that may still be extended.
type Path struct {
	segs []string
}

// Root returns the empty path of a project.
func Root() Path { return Path{} }

// Of builds a path from segments (copied).
func Of(segs ...string) Path {
	if len(segs) == 0 {
		return Path{}
	}
	return Path{segs: slices.Clone(segs)}
}

// Parse splits "a::b::c"; the empty string is the root.
func Parse(s string) Path {
	if s == "" {
		return Path{}
	}
	return Path{segs: strings.Split(s, Separator)}
}

// Child returns a new path with seg appended.
func (p Path) Child(seg string) Path {
	segs := make([]string, len(p.segs)+1)
	copy(segs, p.segs)
	segs[len(p.segs)] = seg
	return Path{segs: segs}
}

// Join appends all segments of q to p.
func (p Path) Join(q Path) Path {
	if q.IsRoot() {
		return p
	}
	segs := make([]string, 0, len(p.segs)+len(q.segs))
	segs = append(segs, p.segs...)
	segs = append(segs, q.segs...)
	return Path{segs: segs}
}

// Parent drops the last segment; the parent of the root is the root.
func (p Path) Parent() Path {
	if len(p.segs) <= 1 {
		return Path{}
	}
	return Path{segs: p.segs[:len(p.segs)-1:len(p.segs)-1]}
}

func (p Path) IsRoot() bool { return len(p.segs) == 0 }

func (p Path) Len() int { return len(p.segs) }

// Last returns the final segment or "" for the root.
func (p Path) Last() string {
	if len(p.segs) == 0 {
		return ""
	}
	return p.segs[len(p.segs)-1]
}

// Segments returns a copy of the segments.
func (p Path) Segments() []string { return slices.Clone(p.segs) }

func (p Path) Equal(q Path) bool { return slices.Equal(p.segs, q.segs) }

// HasPrefix reports whether q is an ancestor of p or p itself.
func (p Path) HasPrefix(q Path) bool {
	return len(q.segs) <= len(p.segs) && slices.Equal(p.segs[:len(q.segs)], q.segs)
}

func (p Path) String() string { return strings.Join(p.segs, Separator) }

// Key is a comparable form for map keys: equal keys iff equal segment sequences.
// Every segment is terminated by keySep, so Root() and Of("") differ.
func (p Path) Key() string {
	var b strings.Builder
	for _, s := range p.segs {
		b.WriteString(s)
		b.WriteString(keySep)
	}
	return b.String()
}

// Compare orders paths segment by segment; a prefix sorts first.
func Compare(a, b Path) int {
	return slices.Compare(a.segs, b.segs)
}

// MarshalText renders the "::" form, so paths print naturally in JSON and YAML.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(b []byte) error {
	*p = Parse(string(b))
	return nil
}
