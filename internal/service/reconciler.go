package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"donly-service/internal/chain"
	"donly-service/internal/models"
	"donly-service/internal/store"
	"donly-service/internal/util"
)

// ViewMode controls how a reconciliation pass degrades on per-id read
// failures. Marketplace views exclude unreadable ids outright so nothing
// unverified is shown as purchasable; administrative list views keep an
// error-tagged placeholder row so operators can see the id exists.
type ViewMode int

const (
	ViewMarketplace ViewMode = iota
	ViewAdmin
)

// MetadataLoader provides the per-pass metadata snapshot.
type MetadataLoader interface {
	LoadSnapshot(ctx context.Context) *store.Snapshot
}

// Reconciler joins on-chain entity state with off-chain metadata into
// display-ready records. The chain is the source of truth for existence,
// ownership and sale status; the metadata store for display content.
type Reconciler struct {
	reader  chain.Reader
	meta    MetadataLoader
	workers int
	logger  *zap.Logger
}

// NewReconciler creates a reconciler fanning out at most workers concurrent
// per-id chain reads.
func NewReconciler(reader chain.Reader, meta MetadataLoader, workers int) *Reconciler {
	if workers < 1 {
		workers = 1
	}
	return &Reconciler{
		reader:  reader,
		meta:    meta,
		workers: workers,
		logger:  util.GetLogger(),
	}
}

// Categories produces one merged record per on-chain category id. List
// views are administrative: unreadable ids yield error-tagged placeholders.
func (r *Reconciler) Categories(ctx context.Context) ([]models.CategoryRecord, error) {
	ctx, span := util.StartSpan(ctx, "Reconciler.Categories")
	defer span.End()
	defer observePass("category", time.Now())

	count, err := r.reader.CategoryCount(ctx)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return []models.CategoryRecord{}, nil
	}

	snap := r.meta.LoadSnapshot(ctx)
	results := make([]models.CategoryRecord, count)
	r.forEachID(ctx, count, func(id int64) {
		oc, err := r.reader.Category(ctx, id)
		if err != nil {
			util.ReconcileRecordsDegraded.WithLabelValues("category").Inc()
			r.logger.Warn("category read failed", zap.Int64("id", id), zap.Error(err))
			results[id-1] = models.CategoryRecord{
				ID:     id,
				Name:   snap.CategoryName(id),
				Status: models.RecordError,
				Error:  err.Error(),
			}
			return
		}
		results[id-1] = models.CategoryRecord{
			ID:       id,
			Name:     snap.CategoryName(id),
			Creator:  oc.Creator,
			IsActive: oc.IsActive,
			Status:   models.RecordOK,
		}
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Campaigns produces one merged record per on-chain campaign id.
func (r *Reconciler) Campaigns(ctx context.Context) ([]models.CampaignRecord, error) {
	ctx, span := util.StartSpan(ctx, "Reconciler.Campaigns")
	defer span.End()
	defer observePass("campaign", time.Now())

	count, err := r.reader.CampaignCount(ctx)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return []models.CampaignRecord{}, nil
	}

	snap := r.meta.LoadSnapshot(ctx)
	results := make([]models.CampaignRecord, count)
	r.forEachID(ctx, count, func(id int64) {
		oc, err := r.reader.Campaign(ctx, id)
		if err != nil {
			util.ReconcileRecordsDegraded.WithLabelValues("campaign").Inc()
			r.logger.Warn("campaign read failed", zap.Int64("id", id), zap.Error(err))
			results[id-1] = models.CampaignRecord{
				ID:     id,
				Name:   snap.CampaignName(id),
				Status: models.RecordError,
				Error:  err.Error(),
			}
			return
		}
		categoryID := parseID(oc.CategoryID)
		results[id-1] = models.CampaignRecord{
			ID:                id,
			CategoryID:        categoryID,
			CategoryName:      snap.CategoryName(categoryID),
			Name:              snap.CampaignName(id),
			Description:       snap.CampaignDescription(id),
			Admin:             oc.Admin,
			DestinationWallet: oc.DestinationWallet,
			IsActive:          oc.IsActive,
			SoldProductsCount: parseID(oc.SoldProductsCount),
			MaxSoldProducts:   parseID(oc.MaxSoldProducts),
			Progress:          oc.Progress,
			Status:            models.RecordOK,
		}
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Products produces one merged record per on-chain product id. Each id
// takes exactly one primary product read plus one secondary read of the
// parent campaign: the contract does not store a product's categoryId, and
// classification needs the campaign admin as creation ownership. mode
// decides whether unreadable ids are excluded or error-tagged.
func (r *Reconciler) Products(ctx context.Context, mode ViewMode) ([]models.ProductRecord, error) {
	ctx, span := util.StartSpan(ctx, "Reconciler.Products")
	defer span.End()
	defer observePass("product", time.Now())

	count, err := r.reader.ProductCount(ctx)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return []models.ProductRecord{}, nil
	}

	snap := r.meta.LoadSnapshot(ctx)
	results := make([]*models.ProductRecord, count)
	r.forEachID(ctx, count, func(id int64) {
		results[id-1] = r.mergeProduct(ctx, id, snap, mode)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Reassemble in ascending-id order; excluded ids leave gaps.
	out := make([]models.ProductRecord, 0, count)
	for _, rec := range results {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *Reconciler) mergeProduct(ctx context.Context, id int64, snap *store.Snapshot, mode ViewMode) *models.ProductRecord {
	oc, err := r.reader.Product(ctx, id)
	if err != nil {
		return r.degradeProduct(id, snap, mode, err)
	}

	campaignID := parseID(oc.CampaignID)
	campaign, err := r.reader.Campaign(ctx, campaignID)
	if err != nil {
		return r.degradeProduct(id, snap, mode, fmt.Errorf("campaign lookup for product %d: %w", id, err))
	}
	categoryID := parseID(campaign.CategoryID)

	return &models.ProductRecord{
		ID:           id,
		Name:         snap.ProductName(id),
		Description:  snap.ProductDescription(id),
		ImageURL:     snap.ProductImageURL(id),
		PriceWei:     oc.Price,
		DisplayPrice: snap.ProductDisplayPrice(id),
		CampaignID:   campaignID,
		CampaignName: snap.CampaignName(campaignID),
		CategoryID:   categoryID,
		CategoryName: snap.CategoryName(categoryID),
		IsActive:     oc.IsActive,
		IsSold:       oc.IsSold,
		Owner:        oc.Owner,
		Seller:       campaign.Admin,
		Status:       models.RecordOK,
	}
}

func (r *Reconciler) degradeProduct(id int64, snap *store.Snapshot, mode ViewMode, err error) *models.ProductRecord {
	util.ReconcileRecordsDegraded.WithLabelValues("product").Inc()
	r.logger.Warn("product read failed", zap.Int64("id", id), zap.Error(err))
	if mode == ViewMarketplace {
		return nil
	}
	return &models.ProductRecord{
		ID:     id,
		Name:   snap.ProductName(id),
		Status: models.RecordError,
		Error:  err.Error(),
	}
}

// CategoryByID reconciles a single category. Unlike the list passes a
// failed chain read surfaces as an error; the caller decides the response.
func (r *Reconciler) CategoryByID(ctx context.Context, id int64) (*models.CategoryRecord, error) {
	oc, err := r.reader.Category(ctx, id)
	if err != nil {
		return nil, err
	}
	snap := r.meta.LoadSnapshot(ctx)
	return &models.CategoryRecord{
		ID:       id,
		Name:     snap.CategoryName(id),
		Creator:  oc.Creator,
		IsActive: oc.IsActive,
		Status:   models.RecordOK,
	}, nil
}

// CampaignByID reconciles a single campaign.
func (r *Reconciler) CampaignByID(ctx context.Context, id int64) (*models.CampaignRecord, error) {
	oc, err := r.reader.Campaign(ctx, id)
	if err != nil {
		return nil, err
	}
	snap := r.meta.LoadSnapshot(ctx)
	categoryID := parseID(oc.CategoryID)
	return &models.CampaignRecord{
		ID:                id,
		CategoryID:        categoryID,
		CategoryName:      snap.CategoryName(categoryID),
		Name:              snap.CampaignName(id),
		Description:       snap.CampaignDescription(id),
		Admin:             oc.Admin,
		DestinationWallet: oc.DestinationWallet,
		IsActive:          oc.IsActive,
		SoldProductsCount: parseID(oc.SoldProductsCount),
		MaxSoldProducts:   parseID(oc.MaxSoldProducts),
		Progress:          oc.Progress,
		Status:            models.RecordOK,
	}, nil
}

// ProductByID reconciles a single product, including the secondary campaign
// read that resolves its category and seller.
func (r *Reconciler) ProductByID(ctx context.Context, id int64) (*models.ProductRecord, error) {
	snap := r.meta.LoadSnapshot(ctx)
	rec := r.mergeProduct(ctx, id, snap, ViewAdmin)
	if rec == nil || rec.Status == models.RecordError {
		return nil, fmt.Errorf("failed to read product %d", id)
	}
	return rec, nil
}

// forEachID runs fn for ids 1..count with bounded concurrency. Each slot in
// the caller's result slice is owned by exactly one goroutine, so no
// locking is needed. A cancelled context stops dispatching new ids.
func (r *Reconciler) forEachID(ctx context.Context, count int64, fn func(id int64)) {
	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup
	for id := int64(1); id <= count; id++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(id int64) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(id)
		}(id)
	}
	wg.Wait()
}

func observePass(entity string, start time.Time) {
	util.ReconcilePassLatency.WithLabelValues(entity).Observe(time.Since(start).Seconds())
}

func parseID(s string) int64 {
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}
