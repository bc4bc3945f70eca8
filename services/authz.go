package services

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chandrashekar-chandu/nature-market/models"
)

// Subject is the authenticated caller, as resolved by the auth middleware.
type Subject struct {
	UserID primitive.ObjectID
	Role   models.Role
}

type Action string

const (
	ActionReadOrder     Action = "order:read"
	ActionUpdateStatus  Action = "order:update-status"
	ActionListAllOrders Action = "order:list-all"
	ActionManageCatalog Action = "catalog:manage"
)

// Authorize is the single authorization policy. Admins may do anything;
// regular users may only read resources they own.
func Authorize(subject Subject, owner primitive.ObjectID, action Action) error {
	if subject.Role == models.RoleAdmin {
		return nil
	}
	if action == ActionReadOrder && subject.UserID == owner {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrForbidden, action)
}
