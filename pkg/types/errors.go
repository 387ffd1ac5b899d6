package types

import "errors"

// Domain errors for type validation
var (
	// Catalog item errors
	ErrEmptyItemID          = errors.New("item ID cannot be empty")
	ErrEmptyItemName        = errors.New("item name cannot be empty")
	ErrInvalidItemType      = errors.New("item type is not in the accepted set")
	ErrInvalidSource        = errors.New("invalid provenance source")
	ErrInvalidSecurityScore = errors.New("security score must be between 0 and 100")

	// Scored result errors
	ErrInvalidScore = errors.New("score must be >= 1")
)
