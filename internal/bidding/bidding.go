// Package bidding holds the client-side bid admissibility check. The auction
// service performs the authoritative validation on its own copy of the data;
// the check here runs against the bid snapshot fetched for the page render and
// exists to give immediate feedback before a request is sent.
package bidding

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"auction-web/internal/auctionerrors"
	"auction-web/internal/models"
)

// HighestBid returns the current reference price for an auction: the maximum
// amount among the fetched bids, or the starting price when no bids exist.
func HighestBid(bids []models.Bid, startPrice float64) float64 {
	if len(bids) == 0 {
		return startPrice
	}
	highest := bids[0].Amount
	for _, b := range bids[1:] {
		if b.Amount > highest {
			highest = b.Amount
		}
	}
	return highest
}

// CheckBid validates a user-entered bid amount against an auction and its
// fetched bid snapshot. On success it returns the parsed amount ready for
// submission. The snapshot may be stale relative to the service, so a bid
// admitted here can still be rejected remotely.
func CheckBid(rawAmount string, auction models.Auction, bids []models.Bid) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(rawAmount), 64)
	if err != nil {
		return 0, fmt.Errorf("bidding: %w - %q is not a number", auctionerrors.ErrInvalidAmount, rawAmount)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, fmt.Errorf("bidding: %w - amount must be a positive finite number", auctionerrors.ErrInvalidAmount)
	}

	highest := HighestBid(bids, auction.StartPrice)
	if amount <= highest {
		return 0, fmt.Errorf("bidding: %w - current highest bid is %.2f", auctionerrors.ErrBidTooLow, highest)
	}

	if auction.Status != models.StatusActive {
		return 0, fmt.Errorf("bidding: %w - status is %q", auctionerrors.ErrAuctionNotActive, auction.Status)
	}

	return amount, nil
}
