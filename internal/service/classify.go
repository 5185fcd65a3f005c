package service

import (
	"strings"

	"donly-service/internal/models"
)

// Session carries the connected wallet account a view is rendered for. It is
// threaded explicitly through classification so the logic stays testable
// with any account value.
type Session struct {
	Account string
}

// Connected reports whether a wallet is attached to the session.
func (s Session) Connected() bool {
	return s.Account != ""
}

// InBucket reports whether a merged product record belongs to the given
// view bucket relative to the session account. Buckets are per view and not
// globally exclusive: an unsold listing of the connected account is both
// available (marketplace) and owned-active (profile).
//
// The on-chain owner field is the creator until the product sells, then the
// buyer; creation ownership is therefore the parent campaign's admin.
func InBucket(p *models.ProductRecord, bucket models.Bucket, session Session) bool {
	switch bucket {
	case models.BucketAvailable:
		return p.IsActive && !p.IsSold
	case models.BucketOwnedActive:
		return equalAddr(p.Seller, session.Account) && p.IsActive && !p.IsSold
	case models.BucketPurchased:
		return p.IsSold && equalAddr(p.Owner, session.Account)
	case models.BucketInactive:
		return equalAddr(p.Seller, session.Account) &&
			(!p.IsActive || (p.IsSold && !equalAddr(p.Owner, session.Account)))
	}
	return false
}

// FilterBucket returns the records matching a bucket, preserving input
// order. Error-tagged placeholders never reach consumer-facing buckets.
func FilterBucket(records []models.ProductRecord, bucket models.Bucket, session Session) []models.ProductRecord {
	out := make([]models.ProductRecord, 0, len(records))
	for i := range records {
		if records[i].Status == models.RecordError {
			continue
		}
		if InBucket(&records[i], bucket, session) {
			out = append(out, records[i])
		}
	}
	return out
}

// equalAddr compares wallet addresses case-insensitively. Empty addresses
// never match anything.
func equalAddr(a, b string) bool {
	return a != "" && b != "" && strings.EqualFold(a, b)
}
