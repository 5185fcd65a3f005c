package models

import "time"

// OnChainCategory holds the authoritative contract fields for one category.
type OnChainCategory struct {
	ID       string `json:"id"`
	NameHash string `json:"nameHash,omitempty"`
	Creator  string `json:"creator"`
	IsActive bool   `json:"isActive"`
}

// OnChainCampaign holds the authoritative contract fields for one campaign.
// Progress is a derived percent: round(100*sold/max), 0 when max is zero.
type OnChainCampaign struct {
	ID                string `json:"id"`
	CategoryID        string `json:"categoryId"`
	Admin             string `json:"admin"`
	IsActive          bool   `json:"isActive"`
	SoldProductsCount string `json:"soldProductsCount"`
	MaxSoldProducts   string `json:"maxSoldProducts"`
	DestinationWallet string `json:"destinationWallet"`
	Progress          int    `json:"progress"`
}

// OnChainProduct holds the authoritative contract fields for one product.
// Price is the integer amount in wei; PriceInEth is a display mirror only.
// The contract does not expose a product's categoryId; it must be resolved
// through the parent campaign.
type OnChainProduct struct {
	ID         string  `json:"id"`
	CampaignID string  `json:"campaignId"`
	Price      string  `json:"price"`
	IsActive   bool    `json:"isActive"`
	IsSold     bool    `json:"isSold"`
	Owner      string  `json:"owner,omitempty"`
	PriceInEth float64 `json:"priceInEth"`
}

// CategoryDoc is the off-chain metadata document for a category.
type CategoryDoc struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	BlockchainID int64     `db:"blockchain_id" json:"blockchainId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// CampaignDoc is the off-chain metadata document for a campaign.
type CampaignDoc struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	BlockchainID int64     `db:"blockchain_id" json:"blockchainId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// ProductDoc is the off-chain metadata document for a product. PriceInEth,
// CampaignID and CategoryID are display/query conveniences; the contract
// remains the source of truth for price and relationships.
type ProductDoc struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	PriceInEth   float64   `db:"price_in_eth" json:"priceInEth"`
	ImageURL     string    `db:"image_url" json:"imageUrl"`
	BlockchainID int64     `db:"blockchain_id" json:"blockchainId"`
	CampaignID   int64     `db:"campaign_id" json:"campaignId"`
	CategoryID   int64     `db:"category_id" json:"categoryId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// RecordStatus marks whether a merged record was fully read from the chain.
type RecordStatus string

const (
	RecordOK    RecordStatus = "ok"
	RecordError RecordStatus = "error"
)

// CategoryRecord is one category joined with its metadata for display.
type CategoryRecord struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Creator  string       `json:"creator"`
	IsActive bool         `json:"isActive"`
	Status   RecordStatus `json:"status"`
	Error    string       `json:"error,omitempty"`
}

// CampaignRecord is one campaign joined with its metadata for display.
type CampaignRecord struct {
	ID                int64        `json:"id"`
	CategoryID        int64        `json:"categoryId"`
	CategoryName      string       `json:"categoryName"`
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	Admin             string       `json:"admin"`
	DestinationWallet string       `json:"destinationWallet"`
	IsActive          bool         `json:"isActive"`
	SoldProductsCount int64        `json:"soldProductsCount"`
	MaxSoldProducts   int64        `json:"maxSoldProducts"`
	Progress          int          `json:"progress"`
	Status            RecordStatus `json:"status"`
	Error             string       `json:"error,omitempty"`
}

// ProductRecord is one product joined with its metadata, its parent campaign
// and the resolved category. PriceWei is the authoritative integer amount;
// DisplayPrice is the decimal metadata mirror used for view sorting only.
// Owner is the on-chain owner field (the buyer once sold); Seller is the
// parent campaign's admin and stands for creation ownership.
type ProductRecord struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	ImageURL     string       `json:"imageUrl"`
	PriceWei     string       `json:"priceInWei"`
	DisplayPrice float64      `json:"price"`
	CampaignID   int64        `json:"campaignId"`
	CampaignName string       `json:"campaign"`
	CategoryID   int64        `json:"categoryId"`
	CategoryName string       `json:"categoryName"`
	IsActive     bool         `json:"isActive"`
	IsSold       bool         `json:"isSold"`
	Owner        string       `json:"owner,omitempty"`
	Seller       string       `json:"seller,omitempty"`
	Status       RecordStatus `json:"status"`
	Error        string       `json:"error,omitempty"`
}

// Bucket is a view-specific classification of a product record relative to
// the connected account. Buckets are per view, not globally exclusive.
type Bucket string

const (
	BucketAvailable   Bucket = "available"
	BucketOwnedActive Bucket = "active"
	BucketPurchased   Bucket = "purchased"
	BucketInactive    Bucket = "inactive"
)
