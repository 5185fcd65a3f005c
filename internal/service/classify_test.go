package service

import (
	"testing"

	"donly-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPurchasedProduct(t *testing.T) {
	// Sold to A, viewed by A: purchased, nothing else.
	p := &models.ProductRecord{
		ID:       1,
		IsActive: true,
		IsSold:   true,
		Owner:    "0xAAAA",
		Seller:   "0xBBBB",
		Status:   models.RecordOK,
	}
	sess := Session{Account: "0xaaaa"}

	assert.True(t, InBucket(p, models.BucketPurchased, sess))
	assert.False(t, InBucket(p, models.BucketAvailable, sess))
	assert.False(t, InBucket(p, models.BucketOwnedActive, sess))
}

func TestClassifySellerListing(t *testing.T) {
	// B's own unsold active listing: shows up in B's active view AND the
	// marketplace. Buckets are per-view, not mutually exclusive.
	p := &models.ProductRecord{
		ID:       2,
		IsActive: true,
		IsSold:   false,
		Seller:   "0xBBBB",
		Status:   models.RecordOK,
	}
	sess := Session{Account: "0xbbbb"}

	assert.True(t, InBucket(p, models.BucketOwnedActive, sess))
	assert.True(t, InBucket(p, models.BucketAvailable, sess))
	assert.False(t, InBucket(p, models.BucketPurchased, sess))
	assert.False(t, InBucket(p, models.BucketInactive, sess))
}

func TestClassifyInactive(t *testing.T) {
	deactivated := &models.ProductRecord{
		ID:       3,
		IsActive: false,
		IsSold:   false,
		Seller:   "0xBBBB",
		Status:   models.RecordOK,
	}
	soldAway := &models.ProductRecord{
		ID:       4,
		IsActive: true,
		IsSold:   true,
		Owner:    "0xAAAA",
		Seller:   "0xBBBB",
		Status:   models.RecordOK,
	}
	seller := Session{Account: "0xBBBB"}
	stranger := Session{Account: "0xCCCC"}

	assert.True(t, InBucket(deactivated, models.BucketInactive, seller))
	assert.True(t, InBucket(soldAway, models.BucketInactive, seller))
	assert.False(t, InBucket(deactivated, models.BucketInactive, stranger))
	assert.False(t, InBucket(deactivated, models.BucketAvailable, seller))
}

func TestClassifyAddressCaseInsensitive(t *testing.T) {
	p := &models.ProductRecord{
		ID:     5,
		IsSold: true,
		Owner:  "0xAbCd00000000000000000000000000000000Ef12",
		Status: models.RecordOK,
	}
	sess := Session{Account: "0xABCD00000000000000000000000000000000EF12"}

	assert.True(t, InBucket(p, models.BucketPurchased, sess))
}

func TestClassifyDisconnectedSession(t *testing.T) {
	// No account, no ownership: an empty address never matches even when
	// the record's owner is also empty.
	p := &models.ProductRecord{
		ID:     6,
		IsSold: true,
		Owner:  "",
		Status: models.RecordOK,
	}
	sess := Session{}

	assert.False(t, sess.Connected())
	assert.False(t, InBucket(p, models.BucketPurchased, sess))
}

func TestFilterBucketSkipsDegradedRecords(t *testing.T) {
	records := []models.ProductRecord{
		{ID: 1, IsActive: true, Status: models.RecordOK},
		{ID: 2, Status: models.RecordError, Error: "read failed"},
		{ID: 3, IsActive: true, Status: models.RecordOK},
	}

	out := FilterBucket(records, models.BucketAvailable, Session{})
	assert.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(3), out[1].ID)
}
