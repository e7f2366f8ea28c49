package services

import (
	"sort"
	"strings"

	"fliptips/backend-go/internal/models"
)

// Filter is the closed set of named row filters. Each variant carries its
// predicate and descending sort key; unknown names fall back to FilterAll.
type Filter int

const (
	FilterAll Filter = iota
	FilterHighValue
	FilterHighVolume
	FilterHighMargin
	FilterFlipTips
)

const highValueFloor = 500000

func ParseFilter(s string) Filter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high value":
		return FilterHighValue
	case "high volume":
		return FilterHighVolume
	case "high margin":
		return FilterHighMargin
	case "flip tips":
		return FilterFlipTips
	default:
		return FilterAll
	}
}

func (f Filter) String() string {
	switch f {
	case FilterHighValue:
		return "high value"
	case FilterHighVolume:
		return "high volume"
	case FilterHighMargin:
		return "high margin"
	case FilterFlipTips:
		return "flip tips"
	default:
		return "all"
	}
}

type filterSpec struct {
	keep func(models.Row) bool
	more func(a, b models.Row) bool
}

var filterSpecs = map[Filter]filterSpec{
	FilterAll: {
		keep: nil,
		more: func(a, b models.Row) bool { return a.YieldAfterTax > b.YieldAfterTax },
	},
	FilterHighValue: {
		keep: func(r models.Row) bool { return r.InstaSell >= highValueFloor },
		more: func(a, b models.Row) bool { return a.InstaSell > b.InstaSell },
	},
	FilterHighVolume: {
		keep: func(r models.Row) bool { return r.Vol1h > 0 },
		more: func(a, b models.Row) bool { return a.Vol1h > b.Vol1h },
	},
	FilterHighMargin: {
		keep: func(r models.Row) bool { return r.RoiPct > 0 },
		more: func(a, b models.Row) bool { return a.RoiPct > b.RoiPct },
	},
	FilterFlipTips: {
		keep: func(r models.Row) bool { return r.YieldAfterTax > 0 },
		more: func(a, b models.Row) bool { return a.YieldAfterTax > b.YieldAfterTax },
	},
}

// Apply filters and sorts a copy of rows; the input slice is left intact.
func (f Filter) Apply(rows []models.Row) []models.Row {
	spec, ok := filterSpecs[f]
	if !ok {
		spec = filterSpecs[FilterAll]
	}

	out := make([]models.Row, 0, len(rows))
	for _, r := range rows {
		if spec.keep == nil || spec.keep(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return spec.more(out[i], out[j]) })
	return out
}

// Paginate slices the filtered set. page and pageSize are clamped to at
// least 1 so the window is always well-formed; it is silently empty when it
// starts past the end, and total counts rows before slicing.
func Paginate(rows []models.Row, page, pageSize int) ([]models.Row, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	total := len(rows)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	items := []models.Row{}
	if start < end {
		items = rows[start:end]
	}
	return items, total
}
