package service

// Listing kinds used in ownership errors.
const (
	kindRequests = "requests"
	kindWalkers  = "walker profiles"
)

// authorizeOwner returns a ForbiddenError unless requesterID owns the listing.
// Listings without an owner cannot be mutated by anyone.
func authorizeOwner(kind, verb, ownerID, requesterID string) error {
	if ownerID == "" || requesterID == "" || ownerID != requesterID {
		return &ForbiddenError{Kind: kind, Verb: verb}
	}
	return nil
}
