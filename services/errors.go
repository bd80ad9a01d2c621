package services

import "errors"

// Sentinel errors returned by the service layer. Handlers match them with
// errors.Is and translate to HTTP statuses; services never format UI text.
var (
	// validation
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrWeakSecret   = errors.New("password must be at least 6 characters")

	// lookup
	ErrNotFound             = errors.New("not found")
	ErrResetRequestNotFound = errors.New("reset request not found")

	// authorization
	ErrForbidden        = errors.New("insufficient role")
	ErrNotOwner         = errors.New("resource belongs to another account")
	ErrCannotDeleteSelf = errors.New("cannot delete own account")

	// state conflicts
	ErrItemUnavailable    = errors.New("menu item is not offered")
	ErrCancelWindowClosed = errors.New("cancellation window has passed")
	ErrNotSettleable      = errors.New("only delivered orders can be settled")

	// duplicates
	ErrDuplicateEmail = errors.New("email already registered")

	// credentials
	ErrInvalidCredentials = errors.New("invalid email or password")
)
