package chain

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"donly-service/internal/contract"
	"donly-service/internal/util"
)

// Writer submits state-changing transactions to the Donly contract. A write
// returns once the transaction is accepted by the node, not once it is
// mined; callers re-run a reconciliation pass to observe the new state.
//
// Writes are serialized with a mutex because the shared TransactOpts carries
// the account nonce and the attached value.
type Writer struct {
	mu      sync.Mutex
	donly   *contract.Donly
	opts    *bind.TransactOpts
	timeout time.Duration
}

// NewWriter creates a writer transacting as the account behind opts.
func NewWriter(donly *contract.Donly, opts *bind.TransactOpts, timeout time.Duration) *Writer {
	return &Writer{donly: donly, opts: opts, timeout: timeout}
}

// CreateCategory submits a createCategory transaction.
func (w *Writer) CreateCategory(ctx context.Context, name string) (string, error) {
	return w.transact(ctx, "createCategory", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return w.donly.CreateCategory(opts, name)
	})
}

// CreateCampaign submits a createCampaign transaction.
func (w *Writer) CreateCampaign(ctx context.Context, categoryID int64, destinationWallet string, maxSoldProducts int64) (string, error) {
	if !common.IsHexAddress(destinationWallet) {
		return "", fmt.Errorf("invalid destination wallet: %s", destinationWallet)
	}
	return w.transact(ctx, "createCampaign", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return w.donly.CreateCampaign(opts, big.NewInt(categoryID), common.HexToAddress(destinationWallet), big.NewInt(maxSoldProducts))
	})
}

// AddProduct submits an addProduct transaction with the price in wei.
func (w *Writer) AddProduct(ctx context.Context, campaignID, categoryID int64, priceWei *big.Int) (string, error) {
	if priceWei == nil || priceWei.Sign() < 0 {
		return "", fmt.Errorf("price must be a non-negative wei amount")
	}
	return w.transact(ctx, "addProduct", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return w.donly.AddProduct(opts, big.NewInt(campaignID), big.NewInt(categoryID), priceWei)
	})
}

// PurchaseProduct submits a purchase attaching exactly priceWei as payment.
// The caller must pass the authoritative on-chain price read at call time,
// never a cached display estimate.
func (w *Writer) PurchaseProduct(ctx context.Context, productID int64, priceWei *big.Int) (string, error) {
	if priceWei == nil || priceWei.Sign() < 0 {
		return "", fmt.Errorf("payment must be a non-negative wei amount")
	}
	return w.transact(ctx, "purchaseProduct", priceWei, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return w.donly.PurchaseProduct(opts, big.NewInt(productID))
	})
}

// WithdrawCampaignFunds submits a withdraw for the campaign's accumulated
// funds. Authorization is enforced by the contract, not here.
func (w *Writer) WithdrawCampaignFunds(ctx context.Context, campaignID int64) (string, error) {
	return w.transact(ctx, "withdrawCampaignFunds", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return w.donly.WithdrawCampaignFunds(opts, big.NewInt(campaignID))
	})
}

// DeactivateCategory flips a category inactive on-chain.
func (w *Writer) DeactivateCategory(ctx context.Context, categoryID int64) (string, error) {
	return w.transact(ctx, "deactivateCategory", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return w.donly.DeactivateCategory(opts, big.NewInt(categoryID))
	})
}

// DeactivateProduct flips a product inactive on-chain.
func (w *Writer) DeactivateProduct(ctx context.Context, productID int64) (string, error) {
	return w.transact(ctx, "deactivateProduct", nil, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return w.donly.DeactivateProduct(opts, big.NewInt(productID))
	})
}

func (w *Writer) transact(ctx context.Context, method string, value *big.Int, fn func(*bind.TransactOpts) (*types.Transaction, error)) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	oldValue, oldCtx := w.opts.Value, w.opts.Context
	w.opts.Value = value
	w.opts.Context = ctx
	tx, err := fn(w.opts)
	w.opts.Value = oldValue
	w.opts.Context = oldCtx

	if err != nil {
		util.ChainWritesFailed.WithLabelValues(method).Inc()
		return "", fmt.Errorf("%s: %w", method, err)
	}
	util.ChainWritesTotal.WithLabelValues(method).Inc()
	return tx.Hash().Hex(), nil
}
