package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"donly-service/internal/chain"
	"donly-service/internal/models"
	"donly-service/internal/redisclient"
	"donly-service/internal/service"
	"donly-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler contains HTTP handlers
type Handler struct {
	reader       chain.Reader
	reconciler   *service.Reconciler
	writeService *service.WriteService
	cache        *redisclient.Client
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	reader chain.Reader,
	reconciler *service.Reconciler,
	writeService *service.WriteService,
	cache *redisclient.Client,
	cacheTTL time.Duration,
) *Handler {
	return &Handler{
		reader:       reader,
		reconciler:   reconciler,
		writeService: writeService,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Raw on-chain entity reads, singular paths.
		v1.GET("/category/:id", h.getCategory)
		v1.GET("/campaign/:id", h.getCampaign)
		v1.GET("/product/:id", h.getProduct)
		v1.GET("/counts", h.getCounts)

		// Merged detail records, plural paths.
		v1.GET("/categories/:id", h.getCategoryDetail)
		v1.GET("/campaigns/:id", h.getCampaignDetail)
		v1.GET("/products/:id", h.getProductDetail)

		v1.GET("/marketplace", h.getMarketplace)
		v1.GET("/profile/products", h.getProfileProducts)

		v1.GET("/admin/categories", h.listCategoriesAdmin)
		v1.GET("/admin/campaigns", h.listCampaignsAdmin)
		v1.GET("/admin/products", h.listProductsAdmin)

		v1.POST("/categories", h.createCategory)
		v1.PUT("/categories/:id", h.updateCategoryMetadata)
		v1.DELETE("/categories/:id", h.deleteCategoryMetadata)
		v1.POST("/categories/:id/deactivate", h.deactivateCategory)

		v1.POST("/campaigns", h.createCampaign)
		v1.POST("/campaigns/:id/withdraw", h.withdrawCampaignFunds)

		v1.POST("/products", h.addProduct)
		v1.POST("/products/:id/purchase", h.purchaseProduct)
		v1.POST("/products/:id/deactivate", h.deactivateProduct)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// session extracts the connected wallet account from the request. The
// account is an explicit parameter; there is no ambient wallet context.
func session(c *gin.Context) service.Session {
	account := c.Query("account")
	if account == "" {
		account = c.GetHeader("X-Wallet-Address")
	}
	return service.Session{Account: account}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// getCategory returns the raw on-chain category fields
func (h *Handler) getCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	oc, err := h.reader.Category(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, oc)
}

// getCampaign returns the raw on-chain campaign fields
func (h *Handler) getCampaign(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	oc, err := h.reader.Campaign(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, oc)
}

// getProduct returns the raw on-chain product fields
func (h *Handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	oc, err := h.reader.Product(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, oc)
}

// getCounts returns all three entity counts
func (h *Handler) getCounts(c *gin.Context) {
	ctx := c.Request.Context()
	categories, err := h.reader.CategoryCount(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	campaigns, err := h.reader.CampaignCount(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	products, err := h.reader.ProductCount(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"campaigns":  campaigns,
		"products":   products,
	})
}

// getCategoryDetail returns one merged category record
func (h *Handler) getCategoryDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rec, err := h.reconciler.CategoryByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// getCampaignDetail returns one merged campaign record
func (h *Handler) getCampaignDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rec, err := h.reconciler.CampaignByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// getProductDetail returns one merged product record
func (h *Handler) getProductDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rec, err := h.reconciler.ProductByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// marketplaceRecords returns the reconciled product set for consumer views,
// serving from the short-TTL snapshot cache when possible. The cached set
// is session-independent; buckets and query filters apply per request.
func (h *Handler) marketplaceRecords(c *gin.Context) ([]models.ProductRecord, error) {
	ctx := c.Request.Context()

	if h.cache != nil {
		if payload, err := h.cache.GetSnapshot(ctx, "products"); err == nil && payload != nil {
			var records []models.ProductRecord
			if err := json.Unmarshal(payload, &records); err == nil {
				util.SnapshotCacheHits.Inc()
				return records, nil
			}
		}
		util.SnapshotCacheMisses.Inc()
	}

	var gen int64
	if h.cache != nil {
		g, err := h.cache.BeginPass(ctx, "products")
		if err != nil {
			h.logger.Warn("failed to begin cache pass", zap.Error(err))
		} else {
			gen = g
		}
	}

	records, err := h.reconciler.Products(ctx, service.ViewMarketplace)
	if err != nil {
		return nil, err
	}

	if h.cache != nil && gen > 0 {
		if payload, err := json.Marshal(records); err == nil {
			if _, err := h.cache.StoreSnapshot(ctx, "products", gen, payload, h.cacheTTL); err != nil {
				h.logger.Warn("failed to store snapshot", zap.Error(err))
			}
		}
	}
	return records, nil
}

// getMarketplace returns the available-product listing with search, campaign
// filter, sort, and aggregate stats. A failed pass is a gateway error, never
// an empty listing.
func (h *Handler) getMarketplace(c *gin.Context) {
	records, err := h.marketplaceRecords(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	available := service.FilterBucket(records, models.BucketAvailable, session(c))
	soldCount := 0
	for i := range records {
		if records[i].IsSold {
			soldCount++
		}
	}

	query := service.MarketplaceQuery{
		Search:   c.Query("search"),
		Campaign: c.Query("campaign"),
		Sort:     service.SortMode(c.Query("sort")),
	}
	listed := service.ApplyQuery(available, query)

	c.JSON(http.StatusOK, gin.H{
		"products": listed,
		"stats": gin.H{
			"available": len(available),
			"sold":      soldCount,
		},
	})
}

// getProfileProducts returns the connected account's products for one of
// the profile views: active (own unsold listings), purchased, inactive.
func (h *Handler) getProfileProducts(c *gin.Context) {
	sess := session(c)
	if !sess.Connected() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No connected account"})
		return
	}

	var bucket models.Bucket
	switch c.DefaultQuery("view", "active") {
	case "active":
		bucket = models.BucketOwnedActive
	case "purchased":
		bucket = models.BucketPurchased
	case "inactive":
		bucket = models.BucketInactive
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view"})
		return
	}

	records, err := h.marketplaceRecords(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": service.FilterBucket(records, bucket, sess),
	})
}

// listCategoriesAdmin lists all categories, degraded rows included
func (h *Handler) listCategoriesAdmin(c *gin.Context) {
	records, err := h.reconciler.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": records})
}

// listCampaignsAdmin lists all campaigns, degraded rows included
func (h *Handler) listCampaignsAdmin(c *gin.Context) {
	records, err := h.reconciler.Campaigns(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": records})
}

// listProductsAdmin lists all products, degraded rows included
func (h *Handler) listProductsAdmin(c *gin.Context) {
	records, err := h.reconciler.Products(c.Request.Context(), service.ViewAdmin)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": records})
}

// createCategory handles category creation
func (h *Handler) createCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.GetHeader("Idempotency-Key")
	}

	result, err := h.writeService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		writeError(c, "Failed to create category", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// updateCategoryMetadata renames a category document
func (h *Handler) updateCategoryMetadata(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	if err := h.writeService.UpdateCategoryMetadata(c.Request.Context(), c.Param("id"), req.Name); err != nil {
		writeError(c, "Failed to update category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// deleteCategoryMetadata removes a category document
func (h *Handler) deleteCategoryMetadata(c *gin.Context) {
	if err := h.writeService.DeleteCategoryMetadata(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, "Failed to delete category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// deactivateCategory flips a category inactive on-chain
func (h *Handler) deactivateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.writeService.DeactivateCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, "Failed to deactivate category", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// createCampaign handles campaign creation
func (h *Handler) createCampaign(c *gin.Context) {
	var req service.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.GetHeader("Idempotency-Key")
	}

	result, err := h.writeService.CreateCampaign(c.Request.Context(), &req)
	if err != nil {
		writeError(c, "Failed to create campaign", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// withdrawCampaignFunds releases a campaign's funds
func (h *Handler) withdrawCampaignFunds(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.writeService.WithdrawCampaignFunds(c.Request.Context(), id)
	if err != nil {
		writeError(c, "Failed to withdraw campaign funds", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// addProduct handles product listing
func (h *Handler) addProduct(c *gin.Context) {
	var req service.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.GetHeader("Idempotency-Key")
	}

	result, err := h.writeService.AddProduct(c.Request.Context(), &req)
	if err != nil {
		writeError(c, "Failed to add product", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// purchaseProduct handles a product purchase
func (h *Handler) purchaseProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.writeService.PurchaseProduct(c.Request.Context(), id, session(c))
	if err != nil {
		writeError(c, "Failed to purchase product", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// deactivateProduct flips a product inactive on-chain
func (h *Handler) deactivateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.writeService.DeactivateProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, "Failed to deactivate product", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// writeError maps service errors to HTTP statuses. Validation failures are
// the caller's fault; duplicates conflict; everything else surfaces the
// underlying message with no retry.
func writeError(c *gin.Context, msg string, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": msg, "details": vErr.Error()})
	case errors.Is(err, service.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{"error": msg, "details": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "details": err.Error()})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
