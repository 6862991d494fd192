package helpers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"auction-web/internal/auctionerrors"
	"auction-web/internal/models"
)

// Form payloads bound from the HTML pages
type PlaceBidForm struct {
	Amount string `form:"amount"`
}

type CreateAuctionForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	StartPrice  string `form:"start_price"`
	EndsAt      string `form:"ends_at"`
}

type LoginForm struct {
	Username string `form:"username"`
}

type SignupForm struct {
	Username    string `form:"username"`
	DisplayName string `form:"display_name"`
}

// datetime-local inputs submit without a zone or seconds
const htmlDateTimeLayout = "2006-01-02T15:04"

// Validate checks the create-auction form and converts it into the service
// payload. No request is sent when it fails; the returned error message is
// shown inline.
func (f CreateAuctionForm) Validate(now time.Time) (models.CreateAuction, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return models.CreateAuction{}, fmt.Errorf("%w: Title is required", auctionerrors.ErrInvalidForm)
	}

	startPrice, err := strconv.ParseFloat(strings.TrimSpace(f.StartPrice), 64)
	if err != nil || math.IsNaN(startPrice) || math.IsInf(startPrice, 0) || startPrice < 0 {
		return models.CreateAuction{}, fmt.Errorf("%w: Starting price must be a non-negative number", auctionerrors.ErrInvalidForm)
	}

	rawEndsAt := strings.TrimSpace(f.EndsAt)
	if rawEndsAt == "" {
		return models.CreateAuction{}, fmt.Errorf("%w: End date is required", auctionerrors.ErrInvalidForm)
	}
	endsAt, err := parseEndsAt(rawEndsAt)
	if err != nil {
		return models.CreateAuction{}, fmt.Errorf("%w: End date is invalid", auctionerrors.ErrInvalidForm)
	}
	if !endsAt.After(now) {
		return models.CreateAuction{}, fmt.Errorf("%w: End date must be in the future", auctionerrors.ErrInvalidForm)
	}

	return models.CreateAuction{
		Title:       title,
		Description: strings.TrimSpace(f.Description),
		StartPrice:  startPrice,
		EndsAt:      endsAt,
	}, nil
}

func parseEndsAt(raw string) (time.Time, error) {
	if t, err := time.ParseInLocation(htmlDateTimeLayout, raw, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
