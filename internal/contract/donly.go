package contract

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Donly is a high-level wrapper around the deployed Donly contract.
type Donly struct {
	abi      abi.ABI
	address  common.Address
	contract *bind.BoundContract
	backend  bind.ContractBackend
}

// NewDonly connects to an already-deployed Donly contract.
func NewDonly(addr common.Address, backend bind.ContractBackend) (*Donly, error) {
	parsed, err := abi.JSON(strings.NewReader(DonlyABI))
	if err != nil {
		return nil, err
	}
	bound := bind.NewBoundContract(addr, parsed, backend, backend, backend)
	return &Donly{
		abi:      parsed,
		address:  addr,
		contract: bound,
		backend:  backend,
	}, nil
}

// Address returns the contract address.
func (d *Donly) Address() common.Address {
	return d.address
}

// CreateCategory registers a new category. The contract stores only the
// keccak hash of the name; display names live off-chain.
func (d *Donly) CreateCategory(opts *bind.TransactOpts, name string) (*types.Transaction, error) {
	return d.contract.Transact(opts, "createCategory", name)
}

// CreateCampaign registers a new campaign under a category.
func (d *Donly) CreateCampaign(opts *bind.TransactOpts, categoryID *big.Int, destinationWallet common.Address, maxSoldProducts *big.Int) (*types.Transaction, error) {
	return d.contract.Transact(opts, "createCampaign", categoryID, destinationWallet, maxSoldProducts)
}

// AddProduct lists a product under a campaign with a price in wei.
func (d *Donly) AddProduct(opts *bind.TransactOpts, campaignID, categoryID, price *big.Int) (*types.Transaction, error) {
	return d.contract.Transact(opts, "addProduct", campaignID, categoryID, price)
}

// PurchaseProduct buys a product. The caller must attach exactly the
// product's current on-chain price via opts.Value.
func (d *Donly) PurchaseProduct(opts *bind.TransactOpts, productID *big.Int) (*types.Transaction, error) {
	return d.contract.Transact(opts, "purchaseProduct", productID)
}

// WithdrawCampaignFunds releases accumulated funds to the campaign's
// destination wallet. Restricted to the campaign admin contract-side.
func (d *Donly) WithdrawCampaignFunds(opts *bind.TransactOpts, campaignID *big.Int) (*types.Transaction, error) {
	return d.contract.Transact(opts, "withdrawCampaignFunds", campaignID)
}

// DeactivateCategory flips a category inactive. Entities are never deleted.
func (d *Donly) DeactivateCategory(opts *bind.TransactOpts, categoryID *big.Int) (*types.Transaction, error) {
	return d.contract.Transact(opts, "deactivateCategory", categoryID)
}

// DeactivateProduct flips a product inactive.
func (d *Donly) DeactivateProduct(opts *bind.TransactOpts, productID *big.Int) (*types.Transaction, error) {
	return d.contract.Transact(opts, "deactivateProduct", productID)
}

// CampaignData is the fixed-order tuple returned by getCampaignData.
type CampaignData struct {
	CategoryID        *big.Int
	Admin             common.Address
	IsActive          bool
	SoldProductsCount *big.Int
	MaxSoldProducts   *big.Int
	DestinationWallet common.Address
}

func (d *Donly) CategoryCount(ctx context.Context) (*big.Int, error) {
	return d.callUint(ctx, "categoryCount")
}

func (d *Donly) CampaignCount(ctx context.Context) (*big.Int, error) {
	return d.callUint(ctx, "campaignCount")
}

func (d *Donly) ProductCount(ctx context.Context) (*big.Int, error) {
	return d.callUint(ctx, "productCount")
}

func (d *Donly) GetCategoryNameHash(ctx context.Context, categoryID *big.Int) (common.Hash, error) {
	var out []interface{}
	err := d.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getCategoryNameHash", categoryID)
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(out[0].([32]byte)), nil
}

func (d *Donly) GetCategoryCreator(ctx context.Context, categoryID *big.Int) (common.Address, error) {
	return d.callAddress(ctx, "getCategoryCreator", categoryID)
}

func (d *Donly) GetCategoryIsActive(ctx context.Context, categoryID *big.Int) (bool, error) {
	return d.callBool(ctx, "getCategoryIsActive", categoryID)
}

// GetCampaignData reads the full campaign tuple in one call.
func (d *Donly) GetCampaignData(ctx context.Context, campaignID *big.Int) (*CampaignData, error) {
	var out []interface{}
	err := d.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getCampaignData", campaignID)
	if err != nil {
		return nil, err
	}
	return &CampaignData{
		CategoryID:        out[0].(*big.Int),
		Admin:             out[1].(common.Address),
		IsActive:          out[2].(bool),
		SoldProductsCount: out[3].(*big.Int),
		MaxSoldProducts:   out[4].(*big.Int),
		DestinationWallet: out[5].(common.Address),
	}, nil
}

func (d *Donly) GetProductCampaignID(ctx context.Context, productID *big.Int) (*big.Int, error) {
	return d.callUint(ctx, "getProductCampaignId", productID)
}

func (d *Donly) GetProductPrice(ctx context.Context, productID *big.Int) (*big.Int, error) {
	return d.callUint(ctx, "getProductPrice", productID)
}

func (d *Donly) GetProductIsActive(ctx context.Context, productID *big.Int) (bool, error) {
	return d.callBool(ctx, "getProductIsActive", productID)
}

func (d *Donly) GetProductIsSold(ctx context.Context, productID *big.Int) (bool, error) {
	return d.callBool(ctx, "getProductIsSold", productID)
}

func (d *Donly) GetProductOwner(ctx context.Context, productID *big.Int) (common.Address, error) {
	return d.callAddress(ctx, "getProductOwner", productID)
}

func (d *Donly) callUint(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	var out []interface{}
	err := d.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...)
	if err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}

func (d *Donly) callAddress(ctx context.Context, method string, args ...interface{}) (common.Address, error) {
	var out []interface{}
	err := d.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...)
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}

func (d *Donly) callBool(ctx context.Context, method string, args ...interface{}) (bool, error) {
	var out []interface{}
	err := d.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...)
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}
