package points

import "pasarKarya/domain"

// Pure point-delta tables. Callers apply the returned delta inside the
// same transaction as the triggering state change, never here.

// SellerAction is what happened to a seller's product.
type SellerAction string

const (
	ActionSubmit   SellerAction = "submit"
	ActionApproved SellerAction = "approved"
	ActionRejected SellerAction = "rejected"
)

// DefaultCuratorGrant is the curator's initial point balance on approval.
const DefaultCuratorGrant = 100

var sellerPointTable = map[SellerAction]int{
	ActionSubmit:   2,
	ActionApproved: 10,
	ActionRejected: 5,
}

// Fixed business constants, carried over as-is. Unmapped categories fall
// back to defaultCategoryPoints.
var curatorPointTable = map[string]int{
	domain.CategoryEbook:       300,
	domain.CategoryEcourse:     300,
	domain.CategoryResepMasaka: 200,
	domain.CategoryJasaDesign:  200,
	domain.CategorySoftware:    200,
}

const defaultCategoryPoints = 200

// SellerPointsFor returns the seller credit for an action, 0 for unknown
// actions.
func SellerPointsFor(action SellerAction) int {
	return sellerPointTable[action]
}

// CuratorPointsFor returns the curator credit for reviewing a product of
// the given category.
func CuratorPointsFor(category string) int {
	if pts, ok := curatorPointTable[category]; ok {
		return pts
	}
	return defaultCategoryPoints
}

// CuratorOnboardingGrant returns the initial balance for a newly approved
// curator.
func CuratorOnboardingGrant() int {
	return DefaultCuratorGrant
}
