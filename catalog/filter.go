package catalog

import "strings"

// Filter selects the visible subset of the catalog. All three stages are
// conjunctive and the result keeps catalog order.
type Filter struct {
	// Categories is the active primary category set. A spot passes only if
	// its category is a member.
	Categories []string
	// SubCategories further constrains spots; empty means no constraint.
	SubCategories []string
	// Query is a case-insensitive substring match over name, category and
	// sub-category. Empty matches everything.
	Query string
}

// Match reports whether a single spot passes the filter.
func (f Filter) Match(s *Spot) bool {
	if !contains(f.Categories, s.Category) {
		return false
	}

	if len(f.SubCategories) > 0 && !contains(f.SubCategories, s.SubCategory) {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.Category), q) &&
			!strings.Contains(strings.ToLower(s.SubCategory), q) {
			return false
		}
	}

	return true
}

// Apply filters spots, preserving order.
func Apply(spots []*Spot, f Filter) []*Spot {
	var out []*Spot
	for _, s := range spots {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// Categories returns every distinct non-empty primary category, in order of
// first appearance.
func Categories(spots []*Spot) []string {
	return distinct(spots, func(s *Spot) string { return s.Category })
}

// SubCategories returns every distinct non-empty sub-category within the
// given primary category. An empty category returns sub-categories across the
// whole catalog.
func SubCategories(spots []*Spot, category string) []string {
	return distinct(spots, func(s *Spot) string {
		if category != "" && s.Category != category {
			return ""
		}
		return s.SubCategory
	})
}

func distinct(spots []*Spot, key func(*Spot) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range spots {
		k := key(s)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func contains(list []string, v string) bool {
	if v == "" {
		return false
	}
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
