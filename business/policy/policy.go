package policy

import "pasarKarya/domain"

// Action is a protected operation a caller may request.
type Action string

const (
	ActionSubmitProduct   Action = "submit_product"
	ActionEditProduct     Action = "edit_product"
	ActionDeleteProduct   Action = "delete_product"
	ActionReviewProduct   Action = "review_product"
	ActionListPending     Action = "list_pending_products"
	ActionApproveCurator  Action = "approve_curator"
	ActionRejectCurator   Action = "reject_curator"
	ActionListCurators    Action = "list_pending_curators"
	ActionManageUsers     Action = "manage_users"
	ActionDeleteUser      Action = "delete_user"
	ActionPurchaseProduct Action = "purchase_product"
	ActionRedeemPoints    Action = "redeem_points"
	ActionManageRedeem    Action = "manage_redeem_products"
)

// Role table per action. Admin is never listed here: Authorize allows it
// for every action as a single superuser rule instead of repeating the
// check per route.
var actionRoles = map[Action][]domain.Role{
	ActionSubmitProduct:   {domain.RoleSeller},
	ActionEditProduct:     {domain.RoleSeller},
	ActionDeleteProduct:   {domain.RoleSeller},
	ActionReviewProduct:   {domain.RoleCurator},
	ActionListPending:     {domain.RoleCurator},
	ActionApproveCurator:  {},
	ActionRejectCurator:   {},
	ActionListCurators:    {},
	ActionManageUsers:     {},
	ActionDeleteUser:      {},
	ActionPurchaseProduct: {domain.RoleClient, domain.RoleSeller, domain.RoleCurator},
	ActionRedeemPoints:    {domain.RoleCurator},
	ActionManageRedeem:    {},
}

// Authorize reports whether the role may perform the action. Ownership
// rules are evaluated separately after a role-level allow, see the
// predicates below.
func Authorize(role domain.Role, action Action) bool {
	if role == domain.RoleAdmin {
		return true
	}

	for _, allowed := range actionRoles[action] {
		if allowed == role {
			return true
		}
	}

	return false
}

// CanModifyProduct allows only the owning seller (or admin) to touch a
// product.
func CanModifyProduct(actorID uint, actorRole domain.Role, product domain.Product) bool {
	if actorRole == domain.RoleAdmin {
		return true
	}
	return product.SellerID == actorID
}

// CanDeleteUser forbids self-deletion even for admins.
func CanDeleteUser(actorID uint, targetID uint) bool {
	return actorID != targetID
}

// CanViewProduct hides unreviewed products from everyone except the owner,
// curators and admin.
func CanViewProduct(actorID uint, actorRole domain.Role, product domain.Product) bool {
	if product.Status == domain.ProductApproved {
		return true
	}
	if actorRole == domain.RoleAdmin || actorRole == domain.RoleCurator {
		return true
	}
	return product.SellerID == actorID
}
