package policy

import (
	"storerating/internal/apperrors"
	"storerating/internal/models"
)

// Operation names an API operation.
type Operation string

const (
	OpRegister       Operation = "auth.register"
	OpLogin          Operation = "auth.login"
	OpRefreshToken   Operation = "auth.refresh"
	OpChangePassword Operation = "auth.change_password"
	OpProfile        Operation = "auth.profile"
	OpLogout         Operation = "auth.logout"

	OpListUsers      Operation = "users.list"
	OpCreateUser     Operation = "users.create"
	OpGetUser        Operation = "users.get"
	OpSetPassword    Operation = "users.set_password"
	OpListMyRatings  Operation = "users.my_ratings"
	OpListStores     Operation = "stores.list"
	OpSearchStores   Operation = "stores.search"
	OpGetStore       Operation = "stores.get"
	OpCreateStore    Operation = "stores.create"
	OpStoreRatings   Operation = "stores.ratings"
	OpCreateRating   Operation = "ratings.create"
	OpUpdateRating   Operation = "ratings.update"
	OpAdminDashboard Operation = "dashboard.admin"
	OpOwnerDashboard Operation = "dashboard.owner"
)

var table = map[Operation]Rule{
	OpRegister:       PublicRule(),
	OpLogin:          PublicRule(),
	OpRefreshToken:   PublicRule(),
	OpChangePassword: Authenticated(),
	OpProfile:        Authenticated(),
	OpLogout:         Authenticated(),

	OpListUsers:     RolesOnly(models.RoleSystemAdmin),
	OpCreateUser:    RolesOnly(models.RoleSystemAdmin),
	OpGetUser:       Authenticated(),
	OpSetPassword:   RolesOnly(models.RoleSystemAdmin),
	OpListMyRatings: Authenticated(),

	OpListStores:   OptionalAuth(),
	OpSearchStores: OptionalAuth(),
	OpGetStore:     OptionalAuth(),
	OpCreateStore:  RolesOnly(models.RoleSystemAdmin),
	OpStoreRatings: OptionalAuth(),

	// Authorship of the rating is checked by the rating ledger.
	OpCreateRating: Authenticated(),
	OpUpdateRating: Authenticated(),

	OpAdminDashboard: RolesOnly(models.RoleSystemAdmin),
	OpOwnerDashboard: RolesOnly(models.RoleStoreOwner),
}

// RuleFor returns the rule declared for op.
func RuleFor(op Operation) (Rule, bool) {
	r, ok := table[op]
	return r, ok
}

// Operations lists every declared operation.
func Operations() []Operation {
	ops := make([]Operation, 0, len(table))
	for op := range table {
		ops = append(ops, op)
	}
	return ops
}

// Authorize decides whether id may run op. Undeclared operations are denied.
func Authorize(op Operation, id *Identity) error {
	rule, ok := RuleFor(op)
	if !ok {
		return apperrors.Forbidden("Operation is not permitted")
	}
	return rule.Check(id)
}
