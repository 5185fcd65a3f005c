package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"

	"donly-service/internal/broker"
	"donly-service/internal/chain"
	"donly-service/internal/models"
	"donly-service/internal/redisclient"
	"donly-service/internal/store"
	"donly-service/internal/util"

	"github.com/google/uuid"
)

// ValidationError rejects a request before any network call, naming the
// offending fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// ErrDuplicateRequest is returned when an idempotency key was already used.
var ErrDuplicateRequest = fmt.Errorf("duplicate request")

// WriteService orchestrates state changes: validate, submit the chain
// transaction, then write the metadata document, then publish the domain
// event. The chain write comes first; a metadata write failing afterwards
// leaves an on-chain entity without a display name. That gap is accepted
// and reported, not auto-repaired.
type WriteService struct {
	writer *chain.Writer
	reader chain.Reader
	store  *store.Store
	events *broker.EventPublisher
	cache  *redisclient.Client
	logger *zap.Logger
}

// NewWriteService creates a new write service.
func NewWriteService(
	writer *chain.Writer,
	reader chain.Reader,
	metaStore *store.Store,
	events *broker.EventPublisher,
	cache *redisclient.Client,
) *WriteService {
	return &WriteService{
		writer: writer,
		reader: reader,
		store:  metaStore,
		events: events,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// CreateCategoryRequest creates a category on-chain plus its metadata.
type CreateCategoryRequest struct {
	Name           string `json:"name" binding:"required"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// WriteResult reports an accepted write. MetadataError is set when the
// chain write succeeded but the metadata document could not be stored.
type WriteResult struct {
	TxHash        string `json:"tx_hash"`
	BlockchainID  int64  `json:"blockchain_id"`
	DocumentID    string `json:"document_id,omitempty"`
	MetadataError string `json:"metadata_error,omitempty"`
}

// CreateCategory submits a createCategory transaction and stores the name
// document keyed to the next dense category id.
func (s *WriteService) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*WriteResult, error) {
	if req.Name == "" {
		return nil, &ValidationError{Fields: []string{"name"}}
	}
	if err := s.checkIdempotency(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	count, err := s.reader.CategoryCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read category count: %w", err)
	}
	blockchainID := count + 1

	txHash, err := s.writer.CreateCategory(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	result := &WriteResult{TxHash: txHash, BlockchainID: blockchainID}
	if doc, err := s.store.AddCategory(ctx, req.Name, blockchainID); err != nil {
		s.logger.Error("metadata write failed after chain write; category stays unnamed",
			zap.Int64("blockchain_id", blockchainID), zap.Error(err))
		result.MetadataError = err.Error()
	} else {
		result.DocumentID = doc.ID
	}

	s.publish(ctx, models.EventTypeCategoryCreated, &models.CategoryCreatedEvent{
		BaseEvent:    s.baseEvent(models.EventTypeCategoryCreated),
		BlockchainID: blockchainID,
		Name:         req.Name,
		TxHash:       txHash,
	})
	s.invalidate(ctx, "categories")
	return result, nil
}

// UpdateCategoryMetadata renames a category document. Metadata only; the
// chain record is untouched.
func (s *WriteService) UpdateCategoryMetadata(ctx context.Context, docID, name string) error {
	var missing []string
	if docID == "" {
		missing = append(missing, "id")
	}
	if name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if err := s.store.UpdateCategory(ctx, docID, name); err != nil {
		return err
	}
	s.invalidate(ctx, "categories")
	return nil
}

// DeleteCategoryMetadata removes a category document. The on-chain entity
// keeps existing and degrades to its fallback label.
func (s *WriteService) DeleteCategoryMetadata(ctx context.Context, docID string) error {
	if docID == "" {
		return &ValidationError{Fields: []string{"id"}}
	}
	if err := s.store.DeleteCategory(ctx, docID); err != nil {
		return err
	}
	s.invalidate(ctx, "categories")
	return nil
}

// DeactivateCategory flips a category inactive on-chain.
func (s *WriteService) DeactivateCategory(ctx context.Context, categoryID int64) (*WriteResult, error) {
	if categoryID < 1 {
		return nil, &ValidationError{Fields: []string{"categoryId"}}
	}
	txHash, err := s.writer.DeactivateCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, "categories")
	return &WriteResult{TxHash: txHash, BlockchainID: categoryID}, nil
}

// CreateCampaignRequest creates a campaign on-chain plus its metadata.
type CreateCampaignRequest struct {
	CategoryID        int64  `json:"category_id" binding:"required"`
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	DestinationWallet string `json:"destination_wallet" binding:"required"`
	MaxSoldProducts   int64  `json:"max_sold_products" binding:"required,min=1"`
	IdempotencyKey    string `json:"idempotency_key,omitempty"`
}

// CreateCampaign submits a createCampaign transaction and stores the
// name/description document keyed to the next dense campaign id.
func (s *WriteService) CreateCampaign(ctx context.Context, req *CreateCampaignRequest) (*WriteResult, error) {
	var missing []string
	if req.CategoryID < 1 {
		missing = append(missing, "category_id")
	}
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.DestinationWallet == "" {
		missing = append(missing, "destination_wallet")
	}
	if req.MaxSoldProducts < 1 {
		missing = append(missing, "max_sold_products")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}
	if err := s.checkIdempotency(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	count, err := s.reader.CampaignCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign count: %w", err)
	}
	blockchainID := count + 1

	txHash, err := s.writer.CreateCampaign(ctx, req.CategoryID, req.DestinationWallet, req.MaxSoldProducts)
	if err != nil {
		return nil, err
	}

	result := &WriteResult{TxHash: txHash, BlockchainID: blockchainID}
	if doc, err := s.store.AddCampaign(ctx, req.Name, req.Description, blockchainID); err != nil {
		s.logger.Error("metadata write failed after chain write; campaign stays unnamed",
			zap.Int64("blockchain_id", blockchainID), zap.Error(err))
		result.MetadataError = err.Error()
	} else {
		result.DocumentID = doc.ID
	}

	s.publish(ctx, models.EventTypeCampaignCreated, &models.CampaignCreatedEvent{
		BaseEvent:         s.baseEvent(models.EventTypeCampaignCreated),
		BlockchainID:      blockchainID,
		CategoryID:        req.CategoryID,
		Name:              req.Name,
		DestinationWallet: req.DestinationWallet,
		MaxSoldProducts:   req.MaxSoldProducts,
		TxHash:            txHash,
	})
	s.invalidate(ctx, "campaigns")
	return result, nil
}

// AddProductRequest lists a product on-chain plus its metadata. PriceEth is
// the decimal user input; it is converted to wei with exact integer
// arithmetic before touching the chain boundary.
type AddProductRequest struct {
	CampaignID     int64  `json:"campaign_id" binding:"required"`
	CategoryID     int64  `json:"category_id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	ImageURL       string `json:"image_url"`
	PriceEth       string `json:"price_eth" binding:"required"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// AddProduct submits an addProduct transaction and stores the display
// document keyed to the next dense product id.
func (s *WriteService) AddProduct(ctx context.Context, req *AddProductRequest) (*WriteResult, error) {
	var missing []string
	if req.CampaignID < 1 {
		missing = append(missing, "campaign_id")
	}
	if req.CategoryID < 1 {
		missing = append(missing, "category_id")
	}
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.PriceEth == "" {
		missing = append(missing, "price_eth")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	priceWei, err := chain.ParseEth(req.PriceEth)
	if err != nil {
		return nil, &ValidationError{Fields: []string{"price_eth"}}
	}
	if err := s.checkIdempotency(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	count, err := s.reader.ProductCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read product count: %w", err)
	}
	blockchainID := count + 1

	txHash, err := s.writer.AddProduct(ctx, req.CampaignID, req.CategoryID, priceWei)
	if err != nil {
		return nil, err
	}

	result := &WriteResult{TxHash: txHash, BlockchainID: blockchainID}
	doc := models.ProductDoc{
		Name:         req.Name,
		Description:  req.Description,
		PriceInEth:   chain.WeiToDisplay(priceWei),
		ImageURL:     req.ImageURL,
		BlockchainID: blockchainID,
		CampaignID:   req.CampaignID,
		CategoryID:   req.CategoryID,
	}
	if stored, err := s.store.AddProduct(ctx, doc); err != nil {
		s.logger.Error("metadata write failed after chain write; product stays unnamed",
			zap.Int64("blockchain_id", blockchainID), zap.Error(err))
		result.MetadataError = err.Error()
	} else {
		result.DocumentID = stored.ID
	}

	s.publish(ctx, models.EventTypeProductListed, &models.ProductListedEvent{
		BaseEvent:    s.baseEvent(models.EventTypeProductListed),
		BlockchainID: blockchainID,
		CampaignID:   req.CampaignID,
		CategoryID:   req.CategoryID,
		PriceWei:     priceWei.String(),
		TxHash:       txHash,
	})
	s.invalidate(ctx, "products")
	return result, nil
}

// PurchaseProduct buys a product, attaching exactly the authoritative
// on-chain price read at call time. Cached display prices are never used
// for payment.
func (s *WriteService) PurchaseProduct(ctx context.Context, productID int64, session Session) (*WriteResult, error) {
	if productID < 1 {
		return nil, &ValidationError{Fields: []string{"productId"}}
	}

	oc, err := s.reader.Product(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to read product %d: %w", productID, err)
	}
	if !oc.IsActive || oc.IsSold {
		return nil, fmt.Errorf("product %d is not available for purchase", productID)
	}

	priceWei, ok := new(big.Int).SetString(oc.Price, 10)
	if !ok {
		return nil, fmt.Errorf("malformed on-chain price for product %d: %q", productID, oc.Price)
	}

	txHash, err := s.writer.PurchaseProduct(ctx, productID, priceWei)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, models.EventTypeProductPurchased, &models.ProductPurchasedEvent{
		BaseEvent:    s.baseEvent(models.EventTypeProductPurchased),
		BlockchainID: productID,
		Buyer:        session.Account,
		PriceWei:     priceWei.String(),
		TxHash:       txHash,
	})
	s.invalidate(ctx, "products")
	return &WriteResult{TxHash: txHash, BlockchainID: productID}, nil
}

// WithdrawCampaignFunds releases a campaign's accumulated funds to its
// destination wallet. The contract enforces that only the campaign admin
// may withdraw.
func (s *WriteService) WithdrawCampaignFunds(ctx context.Context, campaignID int64) (*WriteResult, error) {
	if campaignID < 1 {
		return nil, &ValidationError{Fields: []string{"campaignId"}}
	}
	txHash, err := s.writer.WithdrawCampaignFunds(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, models.EventTypeFundsWithdrawn, &models.FundsWithdrawnEvent{
		BaseEvent:  s.baseEvent(models.EventTypeFundsWithdrawn),
		CampaignID: campaignID,
		TxHash:     txHash,
	})
	s.invalidate(ctx, "campaigns")
	return &WriteResult{TxHash: txHash, BlockchainID: campaignID}, nil
}

// DeactivateProduct flips a product inactive on-chain.
func (s *WriteService) DeactivateProduct(ctx context.Context, productID int64) (*WriteResult, error) {
	if productID < 1 {
		return nil, &ValidationError{Fields: []string{"productId"}}
	}
	txHash, err := s.writer.DeactivateProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, "products")
	return &WriteResult{TxHash: txHash, BlockchainID: productID}, nil
}

func (s *WriteService) baseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

func (s *WriteService) checkIdempotency(ctx context.Context, key string) error {
	if key == "" || s.cache == nil {
		return nil
	}
	seen, err := s.cache.CheckIdempotencyKey(ctx, key)
	if err != nil {
		s.logger.Warn("idempotency check failed", zap.Error(err))
		return nil
	}
	if seen {
		return ErrDuplicateRequest
	}
	if err := s.cache.SetIdempotencyKey(ctx, key, "1", 24*time.Hour); err != nil {
		s.logger.Warn("idempotency key store failed", zap.Error(err))
	}
	return nil
}

func (s *WriteService) publish(ctx context.Context, eventType string, event interface{}) {
	if s.events == nil {
		return
	}
	var err error
	switch e := event.(type) {
	case *models.CategoryCreatedEvent:
		err = s.events.PublishCategoryCreated(ctx, e)
	case *models.CampaignCreatedEvent:
		err = s.events.PublishCampaignCreated(ctx, e)
	case *models.ProductListedEvent:
		err = s.events.PublishProductListed(ctx, e)
	case *models.ProductPurchasedEvent:
		err = s.events.PublishProductPurchased(ctx, e)
	case *models.FundsWithdrawnEvent:
		err = s.events.PublishFundsWithdrawn(ctx, e)
	}
	if err != nil {
		s.logger.Error("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

func (s *WriteService) invalidate(ctx context.Context, entity string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSnapshot(ctx, entity); err != nil {
		s.logger.Warn("snapshot invalidation failed", zap.String("entity", entity), zap.Error(err))
	}
}
