package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"donly-service/internal/models"
	"donly-service/internal/util"
)

// Store is the off-chain metadata document store, one table per entity type.
// Documents are keyed by an internal uuid and carry a blockchain_id foreign
// key back to the numeric on-chain id. The store enforces no uniqueness on
// blockchain_id; lookups take the first match.
type Store struct {
	db *sqlx.DB
}

// NewStore connects to the metadata database.
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddCategory creates a category metadata document and returns it.
func (s *Store) AddCategory(ctx context.Context, name string, blockchainID int64) (*models.CategoryDoc, error) {
	doc := &models.CategoryDoc{
		ID:           uuid.New().String(),
		Name:         name,
		BlockchainID: blockchainID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	query := `
		INSERT INTO category_docs (id, name, blockchain_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := s.db.ExecContext(ctx, query, doc.ID, doc.Name, doc.BlockchainID, doc.CreatedAt, doc.UpdatedAt); err != nil {
		util.MetadataOpsFailed.WithLabelValues("add_category").Inc()
		return nil, fmt.Errorf("failed to add category doc: %w", err)
	}
	return doc, nil
}

// ListCategories returns all category documents, newest first.
func (s *Store) ListCategories(ctx context.Context) ([]models.CategoryDoc, error) {
	var docs []models.CategoryDoc
	err := s.db.SelectContext(ctx, &docs, "SELECT * FROM category_docs ORDER BY created_at DESC")
	if err != nil {
		util.MetadataOpsFailed.WithLabelValues("list_categories").Inc()
		return nil, fmt.Errorf("failed to list category docs: %w", err)
	}
	return docs, nil
}

// UpdateCategory renames a category document. Categories are the only
// entity type with editable metadata.
func (s *Store) UpdateCategory(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE category_docs SET name = $1, updated_at = $2 WHERE id = $3",
		name, time.Now(), id)
	if err != nil {
		util.MetadataOpsFailed.WithLabelValues("update_category").Inc()
		return fmt.Errorf("failed to update category doc: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("category doc not found: %s", id)
	}
	return nil
}

// DeleteCategory removes a category document. The on-chain entity is
// untouched; its display name degrades to the synthetic fallback.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM category_docs WHERE id = $1", id)
	if err != nil {
		util.MetadataOpsFailed.WithLabelValues("delete_category").Inc()
		return fmt.Errorf("failed to delete category doc: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("category doc not found: %s", id)
	}
	return nil
}

// AddCampaign creates a campaign metadata document and returns it.
func (s *Store) AddCampaign(ctx context.Context, name, description string, blockchainID int64) (*models.CampaignDoc, error) {
	doc := &models.CampaignDoc{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  description,
		BlockchainID: blockchainID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	query := `
		INSERT INTO campaign_docs (id, name, description, blockchain_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := s.db.ExecContext(ctx, query, doc.ID, doc.Name, doc.Description, doc.BlockchainID, doc.CreatedAt, doc.UpdatedAt); err != nil {
		util.MetadataOpsFailed.WithLabelValues("add_campaign").Inc()
		return nil, fmt.Errorf("failed to add campaign doc: %w", err)
	}
	return doc, nil
}

// ListCampaigns returns all campaign documents, newest first.
func (s *Store) ListCampaigns(ctx context.Context) ([]models.CampaignDoc, error) {
	var docs []models.CampaignDoc
	err := s.db.SelectContext(ctx, &docs, "SELECT * FROM campaign_docs ORDER BY created_at DESC")
	if err != nil {
		util.MetadataOpsFailed.WithLabelValues("list_campaigns").Inc()
		return nil, fmt.Errorf("failed to list campaign docs: %w", err)
	}
	return docs, nil
}

// AddProduct creates a product metadata document and returns it.
func (s *Store) AddProduct(ctx context.Context, doc models.ProductDoc) (*models.ProductDoc, error) {
	doc.ID = uuid.New().String()
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()

	query := `
		INSERT INTO product_docs (id, name, description, price_in_eth, image_url, blockchain_id, campaign_id, category_id, created_at, updated_at)
		VALUES (:id, :name, :description, :price_in_eth, :image_url, :blockchain_id, :campaign_id, :category_id, :created_at, :updated_at)`

	if _, err := s.db.NamedExecContext(ctx, query, doc); err != nil {
		util.MetadataOpsFailed.WithLabelValues("add_product").Inc()
		return nil, fmt.Errorf("failed to add product doc: %w", err)
	}
	return &doc, nil
}

// ListProducts returns all product documents, newest first.
func (s *Store) ListProducts(ctx context.Context) ([]models.ProductDoc, error) {
	var docs []models.ProductDoc
	err := s.db.SelectContext(ctx, &docs, "SELECT * FROM product_docs ORDER BY created_at DESC")
	if err != nil {
		util.MetadataOpsFailed.WithLabelValues("list_products").Inc()
		return nil, fmt.Errorf("failed to list product docs: %w", err)
	}
	return docs, nil
}
