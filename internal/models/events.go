package models

import "time"

// Event types
const (
	EventTypeCategoryCreated  = "CATEGORY_CREATED"
	EventTypeCampaignCreated  = "CAMPAIGN_CREATED"
	EventTypeProductListed    = "PRODUCT_LISTED"
	EventTypeProductPurchased = "PRODUCT_PURCHASED"
	EventTypeFundsWithdrawn   = "FUNDS_WITHDRAWN"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// CategoryCreatedEvent published when a category write is accepted
type CategoryCreatedEvent struct {
	BaseEvent
	BlockchainID int64  `json:"blockchain_id"`
	Name         string `json:"name"`
	TxHash       string `json:"tx_hash"`
}

// CampaignCreatedEvent published when a campaign write is accepted
type CampaignCreatedEvent struct {
	BaseEvent
	BlockchainID      int64  `json:"blockchain_id"`
	CategoryID        int64  `json:"category_id"`
	Name              string `json:"name"`
	DestinationWallet string `json:"destination_wallet"`
	MaxSoldProducts   int64  `json:"max_sold_products"`
	TxHash            string `json:"tx_hash"`
}

// ProductListedEvent published when an add-product write is accepted
type ProductListedEvent struct {
	BaseEvent
	BlockchainID int64  `json:"blockchain_id"`
	CampaignID   int64  `json:"campaign_id"`
	CategoryID   int64  `json:"category_id"`
	PriceWei     string `json:"price_wei"`
	TxHash       string `json:"tx_hash"`
}

// ProductPurchasedEvent published when a purchase write is accepted
type ProductPurchasedEvent struct {
	BaseEvent
	BlockchainID int64  `json:"blockchain_id"`
	Buyer        string `json:"buyer"`
	PriceWei     string `json:"price_wei"`
	TxHash       string `json:"tx_hash"`
}

// FundsWithdrawnEvent published when a withdraw write is accepted
type FundsWithdrawnEvent struct {
	BaseEvent
	CampaignID int64  `json:"campaign_id"`
	TxHash     string `json:"tx_hash"`
}
