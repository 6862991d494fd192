package helpers

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"auction-web/internal/apiclient"
	"auction-web/internal/auctionerrors"
	"auction-web/internal/models"
	"auction-web/utils"
)

// BidErrorMessage maps a failed bid attempt to the inline message shown next
// to the bid form. highest is the reference price the check compared against.
func BidErrorMessage(err error, highest float64) string {
	switch {
	case errors.Is(err, auctionerrors.ErrInvalidAmount):
		return "Please enter a valid bid amount"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return fmt.Sprintf("Bid must be higher than $%.2f", highest)
	case errors.Is(err, auctionerrors.ErrAuctionNotActive):
		return "This auction is not active"
	}
	return UpstreamOr(err, "Failed to place bid. Please try again.")
}

// UpstreamOr returns the auction service's own message when the error carries
// one, otherwise the generic fallback for the action.
func UpstreamOr(err error, fallback string) string {
	if msg := apiclient.UpstreamMessage(err); msg != "" {
		return msg
	}
	return fallback
}

// FormErrorMessage strips the sentinel prefix off a form validation error,
// leaving only the user-facing part.
func FormErrorMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// TemplateFuncs returns the helper functions available inside the page templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string {
			return fmt.Sprintf("$%.2f", v)
		},
		// reltime renders "ends in ..." / "ended ... ago" style times,
		// e.g. "3 days from now".
		"reltime": func(t time.Time) string {
			return humanize.Time(t)
		},
		"datetime": func(t time.Time) string {
			return t.Local().Format("Jan 2, 2006 3:04 PM")
		},
		"statusLabel": func(s models.AuctionStatus) string {
			switch s {
			case models.StatusActive:
				return "Active"
			case models.StatusClosed:
				return "Closed"
			default:
				return "Draft"
			}
		},
		"shortID": func(id string) string {
			if len(id) <= 8 {
				return id
			}
			return id[:8] + "..."
		},
	}
}
