package store

import (
	"testing"

	"donly-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotLookupFirstMatchWins(t *testing.T) {
	// No uniqueness constraint on blockchain_id: duplicates are tolerated
	// and the first document wins.
	snap := &Snapshot{
		Categories: []models.CategoryDoc{
			{ID: "a", Name: "Art", BlockchainID: 1},
			{ID: "b", Name: "Art (duplicate)", BlockchainID: 1},
		},
	}

	doc, ok := snap.CategoryByBlockchainID(1)
	assert.True(t, ok)
	assert.Equal(t, "a", doc.ID)
	assert.Equal(t, "Art", snap.CategoryName(1))
}

func TestSnapshotFallbackLabels(t *testing.T) {
	snap := &Snapshot{}

	assert.Equal(t, "Category 7", snap.CategoryName(7))
	assert.Equal(t, "Campaign 7", snap.CampaignName(7))
	assert.Equal(t, "Product 7", snap.ProductName(7))
	assert.Equal(t, "Description for Campaign 7", snap.CampaignDescription(7))
	assert.Equal(t, "Description for Product 7", snap.ProductDescription(7))
	assert.Zero(t, snap.ProductDisplayPrice(7))
	assert.Empty(t, snap.ProductImageURL(7))
}

func TestSnapshotResolvesDocuments(t *testing.T) {
	snap := &Snapshot{
		Campaigns: []models.CampaignDoc{
			{ID: "c", Name: "Winter Drive", Description: "Warm clothes", BlockchainID: 3},
		},
		Products: []models.ProductDoc{
			{ID: "p", Name: "Scarf", Description: "Hand-knitted", PriceInEth: 0.05, ImageURL: "https://img/scarf.png", BlockchainID: 7},
		},
	}

	assert.Equal(t, "Winter Drive", snap.CampaignName(3))
	assert.Equal(t, "Warm clothes", snap.CampaignDescription(3))
	assert.Equal(t, "Scarf", snap.ProductName(7))
	assert.Equal(t, 0.05, snap.ProductDisplayPrice(7))
	assert.Equal(t, "https://img/scarf.png", snap.ProductImageURL(7))

	_, ok := snap.ProductByBlockchainID(8)
	assert.False(t, ok)
}
