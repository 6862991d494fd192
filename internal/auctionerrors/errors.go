package auctionerrors

import "errors"

// Client-side validation errors. These are raised before any request is sent
// and never reach the auction service.
var (
	ErrInvalidAmount    = errors.New("invalid bid amount")
	ErrBidTooLow        = errors.New("bid amount too low")
	ErrAuctionNotActive = errors.New("auction is not active")
	ErrInvalidForm      = errors.New("invalid form input")
)

// Remote service errors
var (
	ErrNotFound = errors.New("not found")
	ErrUpstream = errors.New("auction service request failed")
)
