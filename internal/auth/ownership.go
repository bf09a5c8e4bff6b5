package auth

import "github.com/juliencrn/twitter-clone/internal/apierror"

// RequireOwner checks that identity owns the resource. Callers must
// load the resource first so that a missing resource yields 404 before
// ownership is ever evaluated.
func RequireOwner(resourceOwnerID string, identity Identity) error {
	if resourceOwnerID == identity.ID {
		return nil
	}
	return apierror.Forbidden("Only the owner can modify this resource")
}
