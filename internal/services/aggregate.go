package services

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"fliptips/backend-go/internal/models"
)

const (
	wikiImagesBase = "https://oldschool.runescape.wiki/images/"
	wikiLookupBase = "https://oldschool.runescape.wiki/w/Special:Lookup?type=item&id="
	priceGraphBase = "https://prices.osrs.cloud/item/"

	// Flat 1% sell-side transaction tax. Rounded down so yield is never
	// over-stated.
	sellTaxRate = 0.99
)

// Aggregator joins the catalog and the three bulk price feeds into derived
// metric rows. All four sources are fetched in one fan-out; any feed
// failure fails the whole build, there is no per-item error path.
type Aggregator struct {
	feeds   *FeedClient
	catalog *CatalogCache
}

func NewAggregator(feeds *FeedClient, catalog *CatalogCache) *Aggregator {
	return &Aggregator{feeds: feeds, catalog: catalog}
}

// Build produces one row per item that has a catalog entry and at least one
// non-zero quote, optionally narrowed by a case-insensitive name search.
// pulledAt is the epoch-ms join timestamp recorded after the fan-in; it is
// the reference point for the client-facing ageMs freshness signal.
func (a *Aggregator) Build(ctx context.Context, searchText string) ([]models.Row, int64, error) {
	byID, latest, hour, day, err := a.fetchAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	pulledAt := time.Now().UnixMilli()

	q := strings.ToLower(strings.TrimSpace(searchText))
	rows := make([]models.Row, 0, len(latest.Data))
	for _, idStr := range sortedIDs(latest.Data) {
		id, convErr := strconv.Atoi(idStr)
		if convErr != nil {
			continue
		}
		m, ok := byID[id]
		if !ok {
			// Live quote with no catalog entry: dropped, not an error.
			continue
		}
		row, ok := deriveRow(id, m, latest.Data[idStr], hour.Data[idStr], day.Data[idStr])
		if !ok {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(row.Name), q) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, pulledAt, nil
}

// BuildItem joins the same four sources for a single item id. Returns nil
// when the id has no catalog entry or no tradable quote.
func (a *Aggregator) BuildItem(ctx context.Context, id int) (*models.ItemDetail, error) {
	byID, latest, hour, day, err := a.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	m, ok := byID[id]
	if !ok {
		return nil, nil
	}
	idStr := strconv.Itoa(id)
	lm, ok := latest.Data[idStr]
	if !ok {
		return nil, nil
	}
	row, ok := deriveRow(id, m, lm, hour.Data[idStr], day.Data[idStr])
	if !ok {
		return nil, nil
	}
	return &models.ItemDetail{
		Row:       row,
		PriceLink: priceGraphBase + idStr,
		WikiLink:  wikiLookupBase + idStr,
	}, nil
}

func (a *Aggregator) fetchAll(ctx context.Context) (map[int]models.MappingItem, models.LatestFeed, models.HourFeed, models.DayFeed, error) {
	var (
		byID   map[int]models.MappingItem
		latest models.LatestFeed
		hour   models.HourFeed
		day    models.DayFeed
	)

	errs := make([]error, 4)
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		byID, errs[0] = a.catalog.Get(ctx)
	}()
	go func() {
		defer wg.Done()
		errs[1] = a.feeds.FetchJSON(ctx, "/latest", &latest)
	}()
	go func() {
		defer wg.Done()
		errs[2] = a.feeds.FetchJSON(ctx, "/1h", &hour)
	}()
	go func() {
		defer wg.Done()
		errs[3] = a.feeds.FetchJSON(ctx, "/24h", &day)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, latest, hour, day, err
		}
	}
	return byID, latest, hour, day, nil
}

func deriveRow(id int, m models.MappingItem, lm models.LatestEntry, h models.HourEntry, d models.DayEntry) (models.Row, bool) {
	instaSell := int64(coerceFinite(lm.High))
	instaBuy := int64(coerceFinite(lm.Low))
	if instaSell == 0 && instaBuy == 0 {
		return models.Row{}, false
	}

	vol1h := int64(coerceFinite(h.Volume))
	avgLow24 := coerceFinite(d.AvgLowPrice)
	avgHigh24 := coerceFinite(d.AvgHighPrice)
	// A one-sided 24h average is treated as absent, not approximated.
	var avgMid24 int64
	if avgLow24 != 0 && avgHigh24 != 0 {
		avgMid24 = int64(math.Round((avgLow24 + avgHigh24) / 2))
	}

	sellAfterTax := int64(math.Floor(float64(instaSell) * sellTaxRate))
	yieldAfterTax := sellAfterTax - instaBuy
	roiPct := 0.0
	if instaBuy > 0 {
		roiPct = float64(yieldAfterTax) / float64(instaBuy) * 100
	}

	icon := ""
	if m.Icon != "" {
		icon = wikiImagesBase + url.PathEscape(m.Icon)
	}
	name := m.Name
	if name == "" {
		name = fmt.Sprintf("Item %d", id)
	}

	return models.Row{
		ID:            id,
		Name:          name,
		Icon:          icon,
		GELimit:       m.Limit,
		InstaBuy:      instaBuy,
		InstaSell:     instaSell,
		YieldAfterTax: yieldAfterTax,
		RoiPct:        roiPct,
		AvgMid24:      avgMid24,
		Vol1h:         vol1h,
		HighAlch:      m.HighAlch,
	}, true
}

// coerceFinite is the uniform normalization applied at feed-parsing
// boundaries: missing and non-finite numerics become 0 rather than errors.
func coerceFinite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// sortedIDs gives the quote feed a deterministic iteration order; Go maps
// do not preserve the upstream JSON key order.
func sortedIDs(data map[string]models.LatestEntry) []string {
	ids := make([]string, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		return a < b
	})
	return ids
}
