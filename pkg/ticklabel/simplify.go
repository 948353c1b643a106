package ticklabel

import "strings"

// numericChars are the characters that may be dropped from the front of a
// label when they repeat the previous label.
const numericChars = "-0123456789."

// SimplifyTexts drops the leading part a label shares with the reference
// label before it. texts must already be in axis order; the result has the
// same length.
//
// The reference starts as the first label. For each following label of the
// same length, the shared prefix ends at the first differing character and
// only counts up to its last numeric character. When a prefix is dropped the
// reference is kept, so a run of labels is compared with the label that
// started it. Otherwise (no droppable prefix, or a different length) the
// label becomes the new reference unchanged.
func SimplifyTexts(texts []string) []string {
	out := make([]string, len(texts))
	copy(out, texts)
	if len(out) < 2 {
		return out
	}

	ref := []rune(out[0])
	for i := 1; i < len(out); i++ {
		cur := []rune(out[i])
		if len(cur) != len(ref) {
			ref = cur
			continue
		}

		start := 0
		for j := range ref {
			if ref[j] != cur[j] {
				break
			}
			if strings.ContainsRune(numericChars, ref[j]) {
				start = j + 1
			}
		}

		if start == 0 {
			ref = cur
			continue
		}
		out[i] = string(cur[start:])
	}
	return out
}

// Simplify rewrites the label texts of one axis in place. Call Sort first.
func (s *Store) Simplify(axis AxisID) {
	ticks := s.ticks[axis]
	if len(ticks) < 2 {
		return
	}
	texts := SimplifyTexts(s.Texts(axis))
	for i := range ticks {
		ticks[i].Text = texts[i]
	}
}

// SimplifyLabels sorts the store and simplifies every axis.
func (s *Store) SimplifyLabels() {
	s.Sort()
	for _, axis := range s.order {
		s.Simplify(axis)
	}
}
