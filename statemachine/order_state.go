package statemachine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"table-ordering-api/models"
)

// ErrInvalidTransition is returned when a role may not move an order
// from one state to another.
var ErrInvalidTransition = errors.New("invalid transition")

// Transition defines a status change a dashboard offers and who offers it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor models.UserRole    `json:"actor"`
}

// PaymentTransition is the billing axis counterpart of Transition
type PaymentTransition struct {
	From  models.PaymentStatus `json:"from"`
	To    models.PaymentStatus `json:"to"`
	Actor models.UserRole      `json:"actor"`
}

// validTransitions is the per-role table the dashboards render buttons
// from. Admin is unrestricted and is not listed here.
var validTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusPreparing, Actor: models.RoleKitchen},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: models.RoleKitchen},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: models.RoleKitchen},
}

var paymentTransitions = []PaymentTransition{
	{From: models.PaymentPending, To: models.PaymentPaid, Actor: models.RoleBilling},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

var visible = map[models.UserRole][]models.OrderStatus{
	models.RoleKitchen: {models.StatusPending, models.StatusConfirmed, models.StatusPreparing},
	models.RoleBilling: {models.StatusReady, models.StatusDelivered},
	models.RoleAdmin:   models.OrderStatuses,
}

var refreshIntervals = map[models.UserRole]time.Duration{
	models.RoleKitchen: 5 * time.Second,
	models.RoleBilling: 10 * time.Second,
	models.RoleAdmin:   10 * time.Second,
}

// VisibleStatuses returns the order statuses a role's dashboard lists
func VisibleStatuses(role models.UserRole) []models.OrderStatus {
	return visible[role]
}

// Visible reports whether an order in status shows on the role's dashboard
func Visible(role models.UserRole, status models.OrderStatus) bool {
	for _, s := range visible[role] {
		if s == status {
			return true
		}
	}
	return false
}

// RefreshInterval is how often a role's dashboard polls for orders
func RefreshInterval(role models.UserRole) time.Duration {
	if d, ok := refreshIntervals[role]; ok {
		return d
	}
	return 10 * time.Second
}

// ValidTransitionsFrom returns the statuses a role may move an order to
func ValidTransitionsFrom(status models.OrderStatus, role models.UserRole) []models.OrderStatus {
	if role == models.RoleAdmin {
		var nexts []models.OrderStatus
		for _, s := range models.OrderStatuses {
			if s != status {
				nexts = append(nexts, s)
			}
		}
		return nexts
	}
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status && t.Actor == role {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks if role may move an order from one status to another.
// Setting the current status again is a no-op and always allowed.
func CanTransition(from, to models.OrderStatus, role models.UserRole) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if from == to || role == models.RoleAdmin {
		return nil
	}
	if transitionMap[transitionKey{From: from, To: to, Actor: role}] {
		return nil
	}
	return fmt.Errorf("%w: %s → %s is not allowed for %s; valid transitions from %s are: %s",
		ErrInvalidTransition, from, to, role, from, describeValidFrom(from, role))
}

// CanSettle checks if role may move an order's payment status
func CanSettle(from, to models.PaymentStatus, role models.UserRole) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidTransition, to)
	}
	if from == to || role == models.RoleAdmin {
		return nil
	}
	for _, t := range paymentTransitions {
		if t.From == from && t.To == to && t.Actor == role {
			return nil
		}
	}
	return fmt.Errorf("%w: payment %s → %s is not allowed for %s", ErrInvalidTransition, from, to, role)
}

func describeValidFrom(status models.OrderStatus, role models.UserRole) string {
	nexts := ValidTransitionsFrom(status, role)
	if len(nexts) == 0 {
		return "none"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Action is a button a dashboard offers for one order
type Action struct {
	Field string `json:"field"` // "status" or "paymentStatus"
	To    string `json:"to"`
}

// Actions lists what role's dashboard offers for an order in its current state
func Actions(role models.UserRole, order *models.Order) []Action {
	actions := []Action{}
	if role == models.RoleAdmin {
		for _, s := range ValidTransitionsFrom(order.Status, role) {
			actions = append(actions, Action{Field: "status", To: string(s)})
		}
		if order.PaymentStatus != models.PaymentPaid {
			actions = append(actions, Action{Field: "paymentStatus", To: string(models.PaymentPaid)})
		}
		return actions
	}
	if !Visible(role, order.Status) {
		return actions
	}
	for _, s := range ValidTransitionsFrom(order.Status, role) {
		actions = append(actions, Action{Field: "status", To: string(s)})
	}
	for _, t := range paymentTransitions {
		if t.Actor == role && t.From == order.PaymentStatus {
			actions = append(actions, Action{Field: "paymentStatus", To: string(t.To)})
		}
	}
	return actions
}

// GetAllTransitions returns the role-scoped table for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

// GetPaymentTransitions returns the payment axis table for documentation
func GetPaymentTransitions() []PaymentTransition {
	return paymentTransitions
}
