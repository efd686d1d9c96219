package selector

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// SortMode selects the presentation order of a result list.
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortDuty      SortMode = "duty"
	SortIP        SortMode = "ip"
)

// ParseSortMode maps a token to a SortMode, falling back to relevance.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortDuty:
		return SortDuty
	case SortIP:
		return SortIP
	default:
		return SortRelevance
	}
}

var dutyRanks = map[string]int{
	DutyHeavy:  0,
	DutyMedium: 1,
	DutyLight:  2,
}

// DutyRank orders duty classes heavy first. Unknown classes sort last.
func DutyRank(duty string) int {
	if r, ok := dutyRanks[duty]; ok {
		return r
	}
	return len(dutyRanks)
}

// IPRank is the number formed by the digits of an IP rating ("IP68" = 68).
// Ratings without digits rank 0.
func IPRank(ip string) int {
	var digits strings.Builder
	for _, r := range ip {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

// Sort returns a sorted copy of products; the input is not modified and equal
// items keep their relative order. When pinnedEnv is set, products whose IP
// rating satisfies that environment come first in every mode.
func Sort(products []Product, mode SortMode, pinnedEnv string) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	envFirst := func(a, b Product) (less, decided bool) {
		if pinnedEnv == "" {
			return false, false
		}
		am, bm := MatchEnvironment(a, pinnedEnv), MatchEnvironment(b, pinnedEnv)
		if am != bm {
			return am, true
		}
		return false, false
	}

	var byMode func(a, b Product) bool
	switch ParseSortMode(string(mode)) {
	case SortDuty:
		byMode = func(a, b Product) bool { return DutyRank(a.Duty) < DutyRank(b.Duty) }
	case SortIP:
		byMode = func(a, b Product) bool { return IPRank(a.IP) > IPRank(b.IP) }
	default:
		byMode = func(a, b Product) bool { return a.Flagship && !b.Flagship }
	}

	sort.SliceStable(out, func(i, j int) bool {
		if less, ok := envFirst(out[i], out[j]); ok {
			return less
		}
		return byMode(out[i], out[j])
	})
	return out
}

// TopPick picks the highlighted result: flagship first, then a product whose
// duty equals selectedDuty, then list order. ok is false for an empty list.
func TopPick(products []Product, selectedDuty string) (Product, bool) {
	if len(products) == 0 {
		return Product{}, false
	}
	score := func(p Product) int {
		s := 0
		if p.Flagship {
			s += 2
		}
		if selectedDuty != "" && p.Duty == selectedDuty {
			s++
		}
		return s
	}
	best := 0
	for i := 1; i < len(products); i++ {
		if score(products[i]) > score(products[best]) {
			best = i
		}
	}
	return products[best], true
}
