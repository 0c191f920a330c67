package matching

import "strings"

// SkillSet is a deduplicated collection of skill names. Entries are trimmed at
// construction and compared exactly afterwards (matching is case-sensitive).
// Insertion order is preserved so that "first required skill" semantics in the
// team builder are stable.
type SkillSet struct {
	order []string
	index map[string]struct{}
}

// NewSkillSet builds a SkillSet from raw skill names. Whitespace is trimmed,
// empty entries are dropped and duplicates collapse to the first occurrence.
func NewSkillSet(raw ...string) SkillSet {
	s := SkillSet{index: make(map[string]struct{}, len(raw))}
	for _, r := range raw {
		skill := strings.TrimSpace(r)
		if skill == "" {
			continue
		}
		if _, ok := s.index[skill]; ok {
			continue
		}
		s.index[skill] = struct{}{}
		s.order = append(s.order, skill)
	}
	return s
}

// Len returns the number of skills in the set.
func (s SkillSet) Len() int { return len(s.order) }

// IsEmpty reports whether the set has no skills.
func (s SkillSet) IsEmpty() bool { return len(s.order) == 0 }

// Contains reports whether the set holds the given skill (exact match).
func (s SkillSet) Contains(skill string) bool {
	_, ok := s.index[skill]
	return ok
}

// ContainsAll reports whether every skill in other is present in s.
func (s SkillSet) ContainsAll(other SkillSet) bool {
	for _, skill := range other.order {
		if !s.Contains(skill) {
			return false
		}
	}
	return true
}

// Slice returns the skills in insertion order. The returned slice is a copy.
func (s SkillSet) Slice() []string {
	if len(s.order) == 0 {
		return []string{}
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Intersect returns the skills present in both sets, in s's order.
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	out := SkillSet{index: make(map[string]struct{})}
	for _, skill := range s.order {
		if other.Contains(skill) {
			out.index[skill] = struct{}{}
			out.order = append(out.order, skill)
		}
	}
	return out
}

// Union returns all skills of s followed by skills only in other.
func (s SkillSet) Union(other SkillSet) SkillSet {
	out := SkillSet{index: make(map[string]struct{}, len(s.order)+len(other.order))}
	for _, skill := range s.order {
		out.index[skill] = struct{}{}
		out.order = append(out.order, skill)
	}
	for _, skill := range other.order {
		if _, ok := out.index[skill]; ok {
			continue
		}
		out.index[skill] = struct{}{}
		out.order = append(out.order, skill)
	}
	return out
}

// Difference returns the skills of s that are absent from other.
func (s SkillSet) Difference(other SkillSet) SkillSet {
	out := SkillSet{index: make(map[string]struct{})}
	for _, skill := range s.order {
		if other.Contains(skill) {
			continue
		}
		out.index[skill] = struct{}{}
		out.order = append(out.order, skill)
	}
	return out
}
