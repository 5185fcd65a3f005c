package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"donly-service/internal/models"
	"donly-service/internal/util"
)

// Snapshot is an in-memory view of the metadata lists, fetched once per
// reconciliation pass. All blockchainId lookups are linear scans over the
// fetched slices; with no uniqueness constraint on blockchain_id the first
// match wins. A missing document degrades to a synthetic label instead of
// failing the pass.
type Snapshot struct {
	Categories []models.CategoryDoc
	Campaigns  []models.CampaignDoc
	Products   []models.ProductDoc
}

// LoadSnapshot fetches all three metadata lists. A failed list leaves that
// slice empty rather than failing the snapshot; display names then fall back
// to synthetic labels.
func (s *Store) LoadSnapshot(ctx context.Context) *Snapshot {
	logger := util.GetLogger()
	snap := &Snapshot{}

	var err error
	if snap.Categories, err = s.ListCategories(ctx); err != nil {
		logger.Warn("category metadata unavailable, using fallbacks", zap.Error(err))
	}
	if snap.Campaigns, err = s.ListCampaigns(ctx); err != nil {
		logger.Warn("campaign metadata unavailable, using fallbacks", zap.Error(err))
	}
	if snap.Products, err = s.ListProducts(ctx); err != nil {
		logger.Warn("product metadata unavailable, using fallbacks", zap.Error(err))
	}
	return snap
}

// CategoryByBlockchainID returns the first matching category document.
func (snap *Snapshot) CategoryByBlockchainID(id int64) (*models.CategoryDoc, bool) {
	for i := range snap.Categories {
		if snap.Categories[i].BlockchainID == id {
			return &snap.Categories[i], true
		}
	}
	return nil, false
}

// CampaignByBlockchainID returns the first matching campaign document.
func (snap *Snapshot) CampaignByBlockchainID(id int64) (*models.CampaignDoc, bool) {
	for i := range snap.Campaigns {
		if snap.Campaigns[i].BlockchainID == id {
			return &snap.Campaigns[i], true
		}
	}
	return nil, false
}

// ProductByBlockchainID returns the first matching product document.
func (snap *Snapshot) ProductByBlockchainID(id int64) (*models.ProductDoc, bool) {
	for i := range snap.Products {
		if snap.Products[i].BlockchainID == id {
			return &snap.Products[i], true
		}
	}
	return nil, false
}

// CategoryName resolves a display name or the synthetic fallback.
func (snap *Snapshot) CategoryName(id int64) string {
	if doc, ok := snap.CategoryByBlockchainID(id); ok {
		return doc.Name
	}
	util.MetadataFallbacksTotal.WithLabelValues("category").Inc()
	return fmt.Sprintf("Category %d", id)
}

// CampaignName resolves a display name or the synthetic fallback.
func (snap *Snapshot) CampaignName(id int64) string {
	if doc, ok := snap.CampaignByBlockchainID(id); ok {
		return doc.Name
	}
	util.MetadataFallbacksTotal.WithLabelValues("campaign").Inc()
	return fmt.Sprintf("Campaign %d", id)
}

// CampaignDescription resolves a description or the synthetic fallback.
func (snap *Snapshot) CampaignDescription(id int64) string {
	if doc, ok := snap.CampaignByBlockchainID(id); ok {
		return doc.Description
	}
	return fmt.Sprintf("Description for Campaign %d", id)
}

// ProductName resolves a display name or the synthetic fallback.
func (snap *Snapshot) ProductName(id int64) string {
	if doc, ok := snap.ProductByBlockchainID(id); ok {
		return doc.Name
	}
	util.MetadataFallbacksTotal.WithLabelValues("product").Inc()
	return fmt.Sprintf("Product %d", id)
}

// ProductDescription resolves a description or the synthetic fallback.
func (snap *Snapshot) ProductDescription(id int64) string {
	if doc, ok := snap.ProductByBlockchainID(id); ok {
		return doc.Description
	}
	return fmt.Sprintf("Description for Product %d", id)
}

// ProductDisplayPrice resolves the decimal display price, zero when absent.
// The authoritative price is always the on-chain integer.
func (snap *Snapshot) ProductDisplayPrice(id int64) float64 {
	if doc, ok := snap.ProductByBlockchainID(id); ok {
		return doc.PriceInEth
	}
	return 0
}

// ProductImageURL resolves the image URL, empty when absent.
func (snap *Snapshot) ProductImageURL(id int64) string {
	if doc, ok := snap.ProductByBlockchainID(id); ok {
		return doc.ImageURL
	}
	return ""
}
