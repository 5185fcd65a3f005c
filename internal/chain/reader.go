package chain

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"time"

	"donly-service/internal/contract"
	"donly-service/internal/models"
	"donly-service/internal/util"
)

// Reader issues read-only calls against the Donly contract. Implementations
// must be safe for concurrent use; the reconciler fans out across ids.
type Reader interface {
	CategoryCount(ctx context.Context) (int64, error)
	CampaignCount(ctx context.Context) (int64, error)
	ProductCount(ctx context.Context) (int64, error)
	Category(ctx context.Context, id int64) (*models.OnChainCategory, error)
	Campaign(ctx context.Context, id int64) (*models.OnChainCampaign, error)
	Product(ctx context.Context, id int64) (*models.OnChainProduct, error)
}

// ContractReader reads entity state from the deployed contract. Every call
// is bounded by the configured timeout so a hung RPC node cannot stall a
// reconciliation pass.
type ContractReader struct {
	donly   *contract.Donly
	timeout time.Duration
}

// NewContractReader creates a reader over an attached contract binding.
func NewContractReader(donly *contract.Donly, timeout time.Duration) *ContractReader {
	return &ContractReader{donly: donly, timeout: timeout}
}

func (r *ContractReader) CategoryCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	count, err := r.donly.CategoryCount(ctx)
	if err != nil {
		util.ChainReadsFailed.WithLabelValues("categoryCount").Inc()
		return 0, fmt.Errorf("category count: %w", err)
	}
	return countToInt64(count), nil
}

func (r *ContractReader) CampaignCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	count, err := r.donly.CampaignCount(ctx)
	if err != nil {
		util.ChainReadsFailed.WithLabelValues("campaignCount").Inc()
		return 0, fmt.Errorf("campaign count: %w", err)
	}
	return countToInt64(count), nil
}

func (r *ContractReader) ProductCount(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	count, err := r.donly.ProductCount(ctx)
	if err != nil {
		util.ChainReadsFailed.WithLabelValues("productCount").Inc()
		return 0, fmt.Errorf("product count: %w", err)
	}
	return countToInt64(count), nil
}

// Category reads one category's fields. The contract exposes categories as
// separate per-field getters, mirroring the deployed ABI.
func (r *ContractReader) Category(ctx context.Context, id int64) (*models.OnChainCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	util.ChainReadsTotal.WithLabelValues("category").Inc()

	cid := big.NewInt(id)
	nameHash, err := r.donly.GetCategoryNameHash(ctx, cid)
	if err != nil {
		util.ChainReadsFailed.WithLabelValues("category").Inc()
		return nil, fmt.Errorf("category %d: %w", id, err)
	}
	creator, err := r.donly.GetCategoryCreator(ctx, cid)
	if err != nil {
		util.ChainReadsFailed.WithLabelValues("category").Inc()
		return nil, fmt.Errorf("category %d: %w", id, err)
	}
	isActive, err := r.donly.GetCategoryIsActive(ctx, cid)
	if err != nil {
		util.ChainReadsFailed.WithLabelValues("category").Inc()
		return nil, fmt.Errorf("category %d: %w", id, err)
	}

	return &models.OnChainCategory{
		ID:       cid.String(),
		NameHash: nameHash.Hex(),
		Creator:  creator.Hex(),
		IsActive: isActive,
	}, nil
}

// Campaign reads one campaign as a single fixed-order tuple call.
func (r *ContractReader) Campaign(ctx context.Context, id int64) (*models.OnChainCampaign, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	util.ChainReadsTotal.WithLabelValues("campaign").Inc()

	data, err := r.donly.GetCampaignData(ctx, big.NewInt(id))
	if err != nil {
		util.ChainReadsFailed.WithLabelValues("campaign").Inc()
		return nil, fmt.Errorf("campaign %d: %w", id, err)
	}

	return &models.OnChainCampaign{
		ID:                big.NewInt(id).String(),
		CategoryID:        data.CategoryID.String(),
		Admin:             data.Admin.Hex(),
		IsActive:          data.IsActive,
		SoldProductsCount: data.SoldProductsCount.String(),
		MaxSoldProducts:   data.MaxSoldProducts.String(),
		DestinationWallet: data.DestinationWallet.Hex(),
		Progress:          campaignProgress(data.SoldProductsCount, data.MaxSoldProducts),
	}, nil
}

// Product reads one product's fields. The contract does not expose a
// product's categoryId; callers resolve it through the parent campaign.
func (r *ContractReader) Product(ctx context.Context, id int64) (*models.OnChainProduct, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	util.ChainReadsTotal.WithLabelValues("product").Inc()

	pid := big.NewInt(id)
	campaignID, err := r.donly.GetProductCampaignID(ctx, pid)
	if err != nil {
		util.ChainReadsFailed.WithLabelValues("product").Inc()
		return nil, fmt.Errorf("product %d: %w", id, err)
	}
	price, err := r.donly.GetProductPrice(ctx, pid)
	if err != nil {
		util.ChainReadsFailed.WithLabelValues("product").Inc()
		return nil, fmt.Errorf("product %d: %w", id, err)
	}
	isActive, err := r.donly.GetProductIsActive(ctx, pid)
	if err != nil {
		util.ChainReadsFailed.WithLabelValues("product").Inc()
		return nil, fmt.Errorf("product %d: %w", id, err)
	}
	isSold, err := r.donly.GetProductIsSold(ctx, pid)
	if err != nil {
		util.ChainReadsFailed.WithLabelValues("product").Inc()
		return nil, fmt.Errorf("product %d: %w", id, err)
	}
	owner, err := r.donly.GetProductOwner(ctx, pid)
	if err != nil {
		util.ChainReadsFailed.WithLabelValues("product").Inc()
		return nil, fmt.Errorf("product %d: %w", id, err)
	}

	return &models.OnChainProduct{
		ID:         pid.String(),
		CampaignID: campaignID.String(),
		Price:      price.String(),
		IsActive:   isActive,
		IsSold:     isSold,
		Owner:      owner.Hex(),
		PriceInEth: WeiToDisplay(price),
	}, nil
}

// countToInt64 treats a missing count as zero.
func countToInt64(count *big.Int) int64 {
	if count == nil || !count.IsInt64() {
		if count != nil && count.Sign() > 0 {
			return math.MaxInt64
		}
		return 0
	}
	return count.Int64()
}

func campaignProgress(sold, max *big.Int) int {
	if max == nil || max.Sign() == 0 || sold == nil {
		return 0
	}
	soldF, _ := new(big.Float).SetInt(sold).Float64()
	maxF, _ := new(big.Float).SetInt(max).Float64()
	return int(math.Round(soldF / maxF * 100))
}
