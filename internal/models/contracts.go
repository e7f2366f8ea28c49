package models

// MappingItem is one catalog record from GET /mapping. The set is replaced
// wholesale on every catalog refresh; records are never mutated in place.
type MappingItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	HighAlch int    `json:"highalch,omitempty"`
}

// LatestEntry carries the instantaneous quote pair for one item.
// Upstream sends null for sides with no recent trade; those decode to 0.
type LatestEntry struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

type LatestFeed struct {
	Data map[string]LatestEntry `json:"data"`
}

type HourEntry struct {
	Volume float64 `json:"volume"`
}

type HourFeed struct {
	Data map[string]HourEntry `json:"data"`
}

type DayEntry struct {
	AvgLowPrice  float64 `json:"avgLowPrice"`
	AvgHighPrice float64 `json:"avgHighPrice"`
}

type DayFeed struct {
	Data map[string]DayEntry `json:"data"`
}

// Row is one joined, derived metrics row. Field names are part of the
// client contract and match the original /api/data payload.
type Row struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Icon          string  `json:"icon"`
	GELimit       int     `json:"geLimit"`
	InstaBuy      int64   `json:"instaBuy"`
	InstaSell     int64   `json:"instaSell"`
	YieldAfterTax int64   `json:"yieldAfterTax"`
	RoiPct        float64 `json:"roiPct"`
	AvgMid24      int64   `json:"avgMid24"`
	Vol1h         int64   `json:"vol1h"`
	HighAlch      int     `json:"highAlch"`
}

type DataResponse struct {
	Ok           bool  `json:"ok"`
	Total        int   `json:"total"`
	Page         int   `json:"page"`
	PageSize     int   `json:"pageSize"`
	Items        []Row `json:"items"`
	PulledAt     int64 `json:"pulledAt"`
	AgeMs        int64 `json:"ageMs"`
	StaleAfterMs int64 `json:"staleAfterMs"`
}

// ItemDetail is the single-item view served by /api/v1/item.
type ItemDetail struct {
	Row
	PriceLink string `json:"priceLink"`
	WikiLink  string `json:"wikiLink"`
}

// DiagResponse reports each upstream feed individually. Ok is the AND of
// the probed feeds; a single feed outage never fails the probe as a whole.
type DiagResponse struct {
	Ok             bool   `json:"ok"`
	Mapping        string `json:"mapping"`
	Latest         string `json:"latest"`
	OneHour        string `json:"oneHour"`
	CacheSec       int    `json:"cacheSec"`
	StaleBannerSec int    `json:"staleBannerSec"`
}

type DepStatus struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type HealthResponse struct {
	Ok         bool                 `json:"ok"`
	TsISO      string               `json:"tsISO"`
	Service    string               `json:"service"`
	Version    string               `json:"version"`
	DepsStatus map[string]DepStatus `json:"deps_status"`
	Env        map[string]bool      `json:"env"`
}
