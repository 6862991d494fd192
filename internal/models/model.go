package models

import "time"

// AuctionStatus is the lifecycle state of an auction as reported by the
// auction service. Transitions (draft -> active -> closed) happen remotely;
// this app only reads the current value.
type AuctionStatus string

const (
	StatusDraft  AuctionStatus = "draft"
	StatusActive AuctionStatus = "active"
	StatusClosed AuctionStatus = "closed"
)

// Auction represents a listing owned by the remote auction service
type Auction struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	StartPrice  float64       `json:"startPrice"`
	EndsAt      time.Time     `json:"endsAt"`
	Status      AuctionStatus `json:"status"`
	OwnerID     string        `json:"ownerId,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Bid represents a user's offer against an auction
type Bid struct {
	ID        string    `json:"id"`
	AuctionID string    `json:"auctionId"`
	BidderID  string    `json:"bidderId"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// User represents a marketplace participant
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Name returns the display name when set, otherwise the username.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// CreateAuction is the payload for creating a new auction
type CreateAuction struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartPrice  float64   `json:"startPrice"`
	EndsAt      time.Time `json:"endsAt"`
	OwnerID     string    `json:"ownerId,omitempty"`
}

// CreateBid is the payload for placing a bid
type CreateBid struct {
	AuctionID string  `json:"auctionId"`
	BidderID  string  `json:"bidderId"`
	Amount    float64 `json:"amount"`
}

// CreateUser is the payload for signing up a new user
type CreateUser struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName,omitempty"`
}
