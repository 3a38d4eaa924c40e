package typegen

import "sort"

// Normalize collapses a collection of tokens into a canonical union:
// structural duplicates removed, null second-to-last, undefined last, and
// everything else ordered lexicographically by rendered form. The same set
// of input tokens always yields the same union regardless of input order.
func Normalize(tokens []Token) Union {
	if len(tokens) == 0 {
		return nil
	}

	type entry struct {
		token    Token
		rendered string
	}
	entries := make([]entry, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		r := t.Render()
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		entries = append(entries, entry{token: t, rendered: r})
	}

	sort.Slice(entries, func(i, j int) bool {
		ti, tj := sortTier(entries[i].token.Kind), sortTier(entries[j].token.Kind)
		if ti != tj {
			return ti < tj
		}
		return entries[i].rendered < entries[j].rendered
	})

	out := make(Union, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.token)
	}
	return out
}

// sortTier fixes the precedence: concrete types sort before null, which
// sorts before undefined. This is what keeps "string | null | undefined"
// from ever varying.
func sortTier(k TokenKind) int {
	switch k {
	case KindNull:
		return 1
	case KindUndefined:
		return 2
	default:
		return 0
	}
}
