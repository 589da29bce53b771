package policy

// Package policy holds the pure access and expiry rules for stored
// records. Functions here take the clock as an argument and have no side
// effects, so the same inputs always produce the same answer.

import (
	"time"

	"twoem/internal/model"
)

// EulogyTTL is the validity window of a time-boxed record, fixed at
// creation and never recomputed.
const EulogyTTL = 72 * time.Hour

// ComputeExpiry returns the expiry timestamp for a time-boxed record
// created at the given instant.
func ComputeExpiry(createdAt time.Time) time.Time {
	return createdAt.Add(EulogyTTL)
}

// IsExpired reports whether the record's validity window has closed.
// Records without an expiry never expire.
func IsExpired(r *model.Record, now time.Time) bool {
	if r.ExpiresAt == nil {
		return false
	}
	return !now.Before(*r.ExpiresAt)
}

// CanRead decides whether the principal may retrieve the record's
// content at the given instant. An expired record is unreadable for
// everyone, including its owner and admins. Otherwise public records are
// open to any authenticated principal, and private records only to their
// owner or an admin.
func CanRead(p model.Principal, r *model.Record, now time.Time) bool {
	if IsExpired(r, now) {
		return false
	}
	if r.Visibility == model.VisibilityPublic {
		return true
	}
	return p.ID == r.OwnerID || p.IsAdmin
}

// CanDelete decides whether the principal may remove the record. Expiry
// does not protect a record from deletion.
func CanDelete(p model.Principal, r *model.Record) bool {
	return p.IsAdmin || p.ID == r.OwnerID
}
