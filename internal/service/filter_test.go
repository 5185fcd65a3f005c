package service

import (
	"testing"

	"donly-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func marketplaceFixture() []models.ProductRecord {
	// Ascending-id order, as the reconciler produces.
	return []models.ProductRecord{
		{ID: 1, Name: "Wool Scarf", Description: "Hand-knitted", CampaignName: "Winter Drive", DisplayPrice: 0.05},
		{ID: 2, Name: "Mug", Description: "Ceramic mug", CampaignName: "Art Fund", DisplayPrice: 0.02},
		{ID: 3, Name: "Poster", Description: "Signed print", CampaignName: "Art Fund", DisplayPrice: 0.02},
	}
}

func TestApplyQueryPriceAscendingStableTieBreak(t *testing.T) {
	// Equal prices keep ascending-id order: [0.05, 0.02, 0.02] -> ids 2,3,1.
	out := ApplyQuery(marketplaceFixture(), MarketplaceQuery{Sort: SortPriceLow})

	ids := []int64{out[0].ID, out[1].ID, out[2].ID}
	assert.Equal(t, []int64{2, 3, 1}, ids)
}

func TestApplyQueryPriceDescending(t *testing.T) {
	out := ApplyQuery(marketplaceFixture(), MarketplaceQuery{Sort: SortPriceHigh})

	ids := []int64{out[0].ID, out[1].ID, out[2].ID}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestApplyQuerySortById(t *testing.T) {
	newest := ApplyQuery(marketplaceFixture(), MarketplaceQuery{Sort: SortNewest})
	assert.Equal(t, int64(3), newest[0].ID)
	assert.Equal(t, int64(1), newest[2].ID)

	oldest := ApplyQuery(marketplaceFixture(), MarketplaceQuery{Sort: SortOldest})
	assert.Equal(t, int64(1), oldest[0].ID)

	// Unknown sort falls back to newest.
	fallback := ApplyQuery(marketplaceFixture(), MarketplaceQuery{Sort: "nonsense"})
	assert.Equal(t, int64(3), fallback[0].ID)
}

func TestApplyQuerySearch(t *testing.T) {
	// Substring, case-insensitive, over name, description and campaign name.
	byName := ApplyQuery(marketplaceFixture(), MarketplaceQuery{Search: "SCARF"})
	assert.Len(t, byName, 1)
	assert.Equal(t, int64(1), byName[0].ID)

	byDescription := ApplyQuery(marketplaceFixture(), MarketplaceQuery{Search: "ceramic"})
	assert.Len(t, byDescription, 1)
	assert.Equal(t, int64(2), byDescription[0].ID)

	byCampaign := ApplyQuery(marketplaceFixture(), MarketplaceQuery{Search: "art"})
	assert.Len(t, byCampaign, 2)

	none := ApplyQuery(marketplaceFixture(), MarketplaceQuery{Search: "violin"})
	assert.Empty(t, none)
}

func TestApplyQueryCampaignFilter(t *testing.T) {
	// Exact match against the resolved campaign display name.
	out := ApplyQuery(marketplaceFixture(), MarketplaceQuery{Campaign: "Art Fund"})
	assert.Len(t, out, 2)

	partial := ApplyQuery(marketplaceFixture(), MarketplaceQuery{Campaign: "Art"})
	assert.Empty(t, partial)

	all := ApplyQuery(marketplaceFixture(), MarketplaceQuery{Campaign: "all"})
	assert.Len(t, all, 3)
}
