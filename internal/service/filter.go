package service

import (
	"sort"
	"strings"

	"donly-service/internal/models"
)

// SortMode selects marketplace ordering. Price sorts operate on the decimal
// display price, not the integer on-chain price.
type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortOldest    SortMode = "oldest"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
)

// MarketplaceQuery is the user-facing search/filter/sort state.
type MarketplaceQuery struct {
	Search   string
	Campaign string
	Sort     SortMode
}

// ApplyQuery filters and sorts marketplace records. Input must already be in
// ascending-id order; the sorts are stable, so equal prices keep the
// ascending-id tie-break.
func ApplyQuery(records []models.ProductRecord, q MarketplaceQuery) []models.ProductRecord {
	out := make([]models.ProductRecord, 0, len(records))
	search := strings.ToLower(q.Search)
	for _, rec := range records {
		if search != "" && !matchesSearch(&rec, search) {
			continue
		}
		if q.Campaign != "" && q.Campaign != "all" && rec.CampaignName != q.Campaign {
			continue
		}
		out = append(out, rec)
	}

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayPrice < out[j].DisplayPrice })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayPrice > out[j].DisplayPrice })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	default: // newest
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	}
	return out
}

// matchesSearch does a case-insensitive substring match against name,
// description and the resolved campaign display name.
func matchesSearch(rec *models.ProductRecord, lowered string) bool {
	return strings.Contains(strings.ToLower(rec.Name), lowered) ||
		strings.Contains(strings.ToLower(rec.Description), lowered) ||
		strings.Contains(strings.ToLower(rec.CampaignName), lowered)
}
