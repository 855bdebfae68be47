package services

import "strings"

// OwnershipGuard decides whether caller may act on a resource owned by resourceUserID.
type OwnershipGuard interface {
	IsOwner(caller string, resourceUserID string) bool
}

type IdentityOwnershipGuard struct{}

func (IdentityOwnershipGuard) IsOwner(caller string, resourceUserID string) bool {
	return caller != "" && caller == resourceUserID
}

func authorize(guard OwnershipGuard, caller string, resourceUserID string) error {
	if strings.TrimSpace(caller) == "" {
		return ErrIdentityMissing
	}
	if !guard.IsOwner(caller, resourceUserID) {
		return ErrNotOwner
	}
	return nil
}
