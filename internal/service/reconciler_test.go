package service

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"

	"donly-service/internal/models"
	"donly-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader serves canned on-chain state and counts every call, so tests
// can assert the exact read pattern of a pass.
type fakeReader struct {
	categories map[int64]*models.OnChainCategory
	campaigns  map[int64]*models.OnChainCampaign
	products   map[int64]*models.OnChainProduct

	failCategories map[int64]bool
	failProducts   map[int64]bool

	categoryReads int64
	campaignReads int64
	productReads  int64
}

func (f *fakeReader) CategoryCount(ctx context.Context) (int64, error) {
	return int64(len(f.categories)), nil
}

func (f *fakeReader) CampaignCount(ctx context.Context) (int64, error) {
	return int64(len(f.campaigns)), nil
}

func (f *fakeReader) ProductCount(ctx context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeReader) Category(ctx context.Context, id int64) (*models.OnChainCategory, error) {
	atomic.AddInt64(&f.categoryReads, 1)
	if f.failCategories[id] {
		return nil, fmt.Errorf("execution reverted")
	}
	oc, ok := f.categories[id]
	if !ok {
		return nil, fmt.Errorf("no category %d", id)
	}
	return oc, nil
}

func (f *fakeReader) Campaign(ctx context.Context, id int64) (*models.OnChainCampaign, error) {
	atomic.AddInt64(&f.campaignReads, 1)
	oc, ok := f.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("no campaign %d", id)
	}
	return oc, nil
}

func (f *fakeReader) Product(ctx context.Context, id int64) (*models.OnChainProduct, error) {
	atomic.AddInt64(&f.productReads, 1)
	if f.failProducts[id] {
		return nil, fmt.Errorf("execution reverted")
	}
	oc, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("no product %d", id)
	}
	return oc, nil
}

type fakeMeta struct {
	snap *store.Snapshot
}

func (f *fakeMeta) LoadSnapshot(ctx context.Context) *store.Snapshot {
	if f.snap == nil {
		return &store.Snapshot{}
	}
	return f.snap
}

// denseFixture builds count products ids 1..count, all in campaign 1,
// campaign 1 belonging to category 9 with admin 0xSELLER.
func denseFixture(count int64) *fakeReader {
	f := &fakeReader{
		campaigns: map[int64]*models.OnChainCampaign{
			1: {
				ID:                "1",
				CategoryID:        "9",
				Admin:             "0xSELLER",
				IsActive:          true,
				SoldProductsCount: "0",
				MaxSoldProducts:   "10",
				DestinationWallet: "0xDEST",
			},
		},
		categories:     map[int64]*models.OnChainCategory{},
		products:       map[int64]*models.OnChainProduct{},
		failCategories: map[int64]bool{},
		failProducts:   map[int64]bool{},
	}
	for id := int64(1); id <= count; id++ {
		f.products[id] = &models.OnChainProduct{
			ID:         strconv.FormatInt(id, 10),
			CampaignID: "1",
			Price:      "1000000000000000000",
			IsActive:   true,
		}
	}
	return f
}

func TestProductsReadPattern(t *testing.T) {
	// Exactly count primary reads, plus exactly one secondary campaign read
	// per product. No memoization, no retries.
	reader := denseFixture(5)
	r := NewReconciler(reader, &fakeMeta{}, 3)

	records, err := r.Products(context.Background(), ViewMarketplace)
	require.NoError(t, err)

	assert.Len(t, records, 5)
	assert.Equal(t, int64(5), atomic.LoadInt64(&reader.productReads))
	assert.Equal(t, int64(5), atomic.LoadInt64(&reader.campaignReads))
}

func TestProductsAscendingIDOrder(t *testing.T) {
	reader := denseFixture(20)
	r := NewReconciler(reader, &fakeMeta{}, 8)

	records, err := r.Products(context.Background(), ViewMarketplace)
	require.NoError(t, err)
	require.Len(t, records, 20)

	for i, rec := range records {
		assert.Equal(t, int64(i+1), rec.ID)
	}
}

func TestProductsDegradation(t *testing.T) {
	reader := denseFixture(4)
	reader.failProducts[2] = true

	r := NewReconciler(reader, &fakeMeta{}, 2)

	// Marketplace: the unreadable id is excluded outright.
	marketplace, err := r.Products(context.Background(), ViewMarketplace)
	require.NoError(t, err)
	require.Len(t, marketplace, 3)
	for _, rec := range marketplace {
		assert.NotEqual(t, int64(2), rec.ID)
		assert.Equal(t, models.RecordOK, rec.Status)
	}

	// Admin: the id is present as an error-tagged placeholder.
	admin, err := r.Products(context.Background(), ViewAdmin)
	require.NoError(t, err)
	require.Len(t, admin, 4)
	assert.Equal(t, int64(2), admin[1].ID)
	assert.Equal(t, models.RecordError, admin[1].Status)
	assert.NotEmpty(t, admin[1].Error)
}

func TestProductsSecondaryReadFailureDegrades(t *testing.T) {
	// A product pointing at an unreadable campaign cannot resolve its
	// category or seller, so the record degrades like a primary failure.
	reader := denseFixture(2)
	reader.products[2].CampaignID = "666"

	r := NewReconciler(reader, &fakeMeta{}, 2)

	marketplace, err := r.Products(context.Background(), ViewMarketplace)
	require.NoError(t, err)
	require.Len(t, marketplace, 1)
	assert.Equal(t, int64(1), marketplace[0].ID)
}

func TestProductsMetadataRoundTrip(t *testing.T) {
	reader := denseFixture(7)
	meta := &fakeMeta{snap: &store.Snapshot{
		Products: []models.ProductDoc{
			{ID: "doc-1", Name: "Scarf", BlockchainID: 7, PriceInEth: 0.05},
		},
	}}

	r := NewReconciler(reader, meta, 4)
	records, err := r.Products(context.Background(), ViewMarketplace)
	require.NoError(t, err)
	require.Len(t, records, 7)

	assert.Equal(t, "Scarf", records[6].Name)
	assert.Equal(t, 0.05, records[6].DisplayPrice)
	// No document: synthetic fallback, never a failure.
	assert.Equal(t, "Product 1", records[0].Name)
}

func TestProductsTwoHopCategoryAndSeller(t *testing.T) {
	reader := denseFixture(1)

	r := NewReconciler(reader, &fakeMeta{}, 1)
	records, err := r.Products(context.Background(), ViewMarketplace)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// categoryId comes from the parent campaign, never the product read;
	// the seller is the campaign admin.
	assert.Equal(t, int64(9), records[0].CategoryID)
	assert.Equal(t, "0xSELLER", records[0].Seller)
	assert.Equal(t, "Campaign 1", records[0].CampaignName)
	assert.Equal(t, "Category 9", records[0].CategoryName)
}

func TestProductsZeroCount(t *testing.T) {
	reader := denseFixture(0)
	r := NewReconciler(reader, &fakeMeta{}, 4)

	records, err := r.Products(context.Background(), ViewMarketplace)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, atomic.LoadInt64(&reader.productReads))
}

func TestCategoriesAdminDegradation(t *testing.T) {
	reader := denseFixture(0)
	reader.categories[1] = &models.OnChainCategory{ID: "1", Creator: "0xC", IsActive: true}
	reader.categories[2] = &models.OnChainCategory{ID: "2", Creator: "0xC", IsActive: true}
	reader.failCategories[2] = true

	r := NewReconciler(reader, &fakeMeta{}, 2)
	records, err := r.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, models.RecordOK, records[0].Status)
	assert.Equal(t, models.RecordError, records[1].Status)
	assert.Equal(t, "Category 2", records[1].Name)
}

func TestProductByID(t *testing.T) {
	reader := denseFixture(3)
	r := NewReconciler(reader, &fakeMeta{}, 2)

	rec, err := r.ProductByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.ID)
	assert.Equal(t, "1000000000000000000", rec.PriceWei)

	reader.failProducts[3] = true
	_, err = r.ProductByID(context.Background(), 3)
	assert.Error(t, err)
}
