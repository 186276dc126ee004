package domain

import "errors"

// Common domain errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrUserInactive        = errors.New("user account is inactive")
	ErrInvalidPassword     = errors.New("password does not meet requirements")
	ErrInvalidRole         = errors.New("invalid role")
	ErrOldPasswordWrong    = errors.New("old password is incorrect")
	ErrCannotDeleteSelf    = errors.New("cannot deactivate your own account")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
)

// Table errors
var (
	ErrTableNotFound     = errors.New("table not found")
	ErrTableNumberTaken  = errors.New("table number already in use")
	ErrTableNotAvailable = errors.New("table is not available")
	ErrTableOccupied     = errors.New("table has an active session")
)

// Menu errors
var (
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuItemUnavailable = errors.New("menu item is unavailable")
)

// Order errors
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderItemNotFound  = errors.New("order item not found")
	ErrInvalidOrderStatus = errors.New("invalid order status for this operation")
	ErrOrderAlreadyPaid   = errors.New("order is already paid")
	ErrEmptyOrder         = errors.New("order has no items")
)

// Session errors
var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidSessionStatus = errors.New("invalid session status for this operation")
	ErrSessionAlreadyPaid   = errors.New("session is already paid")
)

// Reservation errors
var (
	ErrReservationNotFound      = errors.New("reservation not found")
	ErrInvalidReservationStatus = errors.New("invalid reservation status for this operation")
	ErrNoTablesAvailable        = errors.New("no tables available for the requested slot")
)

// Billing errors
var (
	ErrDiscountNotAllowed = errors.New("discount not permitted for this user")
	ErrDiscountTooLarge   = errors.New("discount exceeds permitted maximum")
)

// Device and printer errors
var (
	ErrDeviceNotFound  = errors.New("device not found")
	ErrDeviceIDTaken   = errors.New("device id already registered")
	ErrPrinterNotFound = errors.New("printer not found")
)
