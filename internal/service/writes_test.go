package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritesRejectInvalidInputBeforeAnyCall(t *testing.T) {
	// Validation happens before any network call, so a service with no
	// clients behind it must still reject cleanly.
	s := &WriteService{}
	ctx := context.Background()

	_, err := s.CreateCategory(ctx, &CreateCategoryRequest{Name: ""})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "name")

	_, err = s.CreateCampaign(ctx, &CreateCampaignRequest{})
	assert.ErrorAs(t, err, &vErr)
	assert.ElementsMatch(t, []string{"category_id", "name", "destination_wallet", "max_sold_products"}, vErr.Fields)

	_, err = s.AddProduct(ctx, &AddProductRequest{CampaignID: 1, CategoryID: 1, Name: "Scarf", PriceEth: "not-a-number"})
	assert.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "price_eth")

	_, err = s.PurchaseProduct(ctx, 0, Session{})
	assert.ErrorAs(t, err, &vErr)

	_, err = s.WithdrawCampaignFunds(ctx, -1)
	assert.ErrorAs(t, err, &vErr)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: []string{"name", "price_eth"}}
	assert.Equal(t, "missing or invalid fields: name, price_eth", err.Error())
}
