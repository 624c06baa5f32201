// Package order holds the order lifecycle rules.
package order

import (
	"coffee-kart/internal/model"
)

// transitions lists every allowed status change.
var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusAwaitingConfirmation: {model.OrderStatusPending},
	model.OrderStatusPending:              {model.OrderStatusCompleted, model.OrderStatusCancelled},
}

// InitialStatus returns the status a new order starts in for the given payment method.
// Bank transfers wait for the customer to confirm the transfer; cash on delivery starts pending.
func InitialStatus(method model.PaymentMethod) (model.OrderStatus, error) {
	switch method {
	case model.PaymentMethodCOD:
		return model.OrderStatusPending, nil
	case model.PaymentMethodBankTransfer:
		return model.OrderStatusAwaitingConfirmation, nil
	default:
		return "", model.ErrInvalidPaymentMethod
	}
}

// IsTerminal reports whether no further transitions are possible from s.
func IsTerminal(s model.OrderStatus) bool {
	return s == model.OrderStatusCompleted || s == model.OrderStatusCancelled
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to model.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates a status change and returns the new status.
func Transition(from, to model.OrderStatus) (model.OrderStatus, error) {
	if !CanTransition(from, to) {
		return from, model.ErrInvalidStatusTransition
	}
	return to, nil
}
