package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON             = "INVALID_JSON"
	ErrCodeMissingField            = "MISSING_FIELD"
	ErrCodeValidationFailed        = "VALIDATION_FAILED"
	ErrCodeInvalidSelection        = "INVALID_SELECTION"
	ErrCodeInvalidQuantity         = "INVALID_QUANTITY"
	ErrCodeInvalidShippingFee      = "INVALID_SHIPPING_FEE"
	ErrCodeProductNotFound         = "PRODUCT_NOT_FOUND"
	ErrCodeCartEmpty               = "CART_EMPTY"
	ErrCodeCartItemNotFound        = "CART_ITEM_NOT_FOUND"
	ErrCodeOrderNotFound           = "ORDER_NOT_FOUND"
	ErrCodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeInvalidPaymentMethod    = "INVALID_PAYMENT_METHOD"
	ErrCodeMissingAddress          = "MISSING_ADDRESS"
	ErrCodeNotificationNotFound    = "NOTIFICATION_NOT_FOUND"
	ErrCodeUnauthorised            = "UNAUTHORIZED"
	ErrCodeForbidden               = "FORBIDDEN"
	ErrCodeNotFound                = "NOT_FOUND"
	ErrCodeInternalError           = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidSelection        = NewDomainError(ErrCodeInvalidSelection, "Selected size or topping does not exist")
	ErrInvalidQuantity         = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidShippingFee      = NewDomainError(ErrCodeInvalidShippingFee, "Shipping fee must not be negative")
	ErrProductNotFound         = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCartEmpty               = NewDomainError(ErrCodeCartEmpty, "Cart is empty")
	ErrCartItemNotFound        = NewDomainError(ErrCodeCartItemNotFound, "Cart item not found")
	ErrOrderNotFound           = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidStatusTransition = NewDomainError(ErrCodeInvalidStatusTransition, "Order status transition is not allowed")
	ErrInvalidPaymentMethod    = NewDomainError(ErrCodeInvalidPaymentMethod, "Payment method must be cod or bank_transfer")
	ErrMissingAddress          = NewDomainError(ErrCodeMissingAddress, "A shipping address is required before checkout")
	ErrNotificationNotFound    = NewDomainError(ErrCodeNotificationNotFound, "Notification not found")
)
