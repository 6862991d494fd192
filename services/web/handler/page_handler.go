package handler

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"auction-web/internal/auctionerrors"
	"auction-web/internal/bidding"
	model "auction-web/internal/models"
	"auction-web/internal/session"
	"auction-web/services/web/helpers"
	"auction-web/utils"
)

// AuctionAPI is the slice of the remote auction service this frontend consumes.
type AuctionAPI interface {
	ListAuctions(ctx context.Context) ([]model.Auction, error)
	GetAuction(ctx context.Context, id string) (model.Auction, error)
	CreateAuction(ctx context.Context, payload model.CreateAuction) (model.Auction, error)
	ListBids(ctx context.Context, auctionID string) ([]model.Bid, error)
	PlaceBid(ctx context.Context, payload model.CreateBid) (model.Bid, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	CreateUser(ctx context.Context, payload model.CreateUser) (model.User, error)
	SearchAuctions(ctx context.Context, query string) ([]model.Auction, error)
}

type PageHandler struct {
	api      AuctionAPI
	sessions session.Store
}

func NewPageHandler(api AuctionAPI, sessions session.Store) *PageHandler {
	return &PageHandler{api: api, sessions: sessions}
}

// currentUser returns the session user, or nil for anonymous visitors.
func (h *PageHandler) currentUser(c *gin.Context) *model.User {
	if user, ok := h.sessions.Current(c); ok {
		return &user
	}
	return nil
}

// pageData merges the fields every page needs into handler-specific data.
func (h *PageHandler) pageData(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = h.currentUser(c)
	return data
}

// HomeHandler handles GET / and renders the auction list with status filter tabs
func (h *PageHandler) HomeHandler(c *gin.Context) {
	filter := c.DefaultQuery("filter", "all")

	auctions, err := h.api.ListAuctions(c.Request.Context())
	if err != nil {
		utils.Error("HomeHandler: failed to load auctions", map[string]any{"error": err.Error()})
		utils.RenderPage(c, http.StatusBadGateway, "home.tmpl", "Live Auctions", h.pageData(c, gin.H{
			"Error": "Failed to load auctions. Please try again later.",
		}))
		return
	}

	var active, closed int
	for _, a := range auctions {
		switch a.Status {
		case model.StatusActive:
			active++
		case model.StatusClosed:
			closed++
		}
	}

	filtered := auctions
	switch filter {
	case "active":
		filtered = filterByStatus(auctions, model.StatusActive)
	case "closed":
		filtered = filterByStatus(auctions, model.StatusClosed)
	default:
		filter = "all"
	}

	utils.RenderPage(c, http.StatusOK, "home.tmpl", "Live Auctions", h.pageData(c, gin.H{
		"Auctions":    filtered,
		"Filter":      filter,
		"CountAll":    len(auctions),
		"CountActive": active,
		"CountClosed": closed,
	}))
	helpers.LogSuccess("HomeHandler", "auctions rendered", map[string]any{
		"filter": filter,
		"count":  len(filtered),
	})
}

// AuctionDetailHandler handles GET /auctions/:auction_id. The auction and its
// bids are fetched concurrently; a failed bid fetch degrades that region only.
func (h *PageHandler) AuctionDetailHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	ctx := c.Request.Context()

	var (
		auction    model.Auction
		bids       []model.Bid
		auctionErr error
		bidsErr    error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		auction, auctionErr = h.api.GetAuction(ctx, auctionID)
	}()
	go func() {
		defer wg.Done()
		bids, bidsErr = h.api.ListBids(ctx, auctionID)
	}()
	wg.Wait()

	if auctionErr != nil {
		if errors.Is(auctionErr, auctionerrors.ErrNotFound) {
			utils.Info("AuctionDetailHandler: auction not found", map[string]any{"auction_id": auctionID})
			utils.RenderError(c, http.StatusNotFound, "Auction not found")
			return
		}
		utils.Error("AuctionDetailHandler: failed to load auction", map[string]any{
			"auction_id": auctionID,
			"error":      auctionErr.Error(),
		})
		utils.RenderError(c, http.StatusBadGateway, "Failed to load auction. Please try again.")
		return
	}

	bidsMessage := ""
	if bidsErr != nil {
		utils.Warn("AuctionDetailHandler: failed to load bids", map[string]any{
			"auction_id": auctionID,
			"error":      bidsErr.Error(),
		})
		bids = nil
		bidsMessage = "Failed to load bids for this auction."
	}

	h.renderDetail(c, http.StatusOK, auction, bids, bidsMessage, "")
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids. It re-fetches the
// auction and bid snapshot, runs the advisory admissibility check, and only
// then submits to the auction service, which stays authoritative.
func (h *PageHandler) PlaceBidHandler(c *gin.Context) {
	user, ok := h.sessions.Current(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	auctionID := c.Param("auction_id")
	ctx := c.Request.Context()

	auction, err := h.api.GetAuction(ctx, auctionID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNotFound) {
			utils.RenderError(c, http.StatusNotFound, "Auction not found")
			return
		}
		utils.Error("PlaceBidHandler: failed to load auction", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		utils.RenderError(c, http.StatusBadGateway, "Failed to load auction. Please try again.")
		return
	}

	bids, err := h.api.ListBids(ctx, auctionID)
	if err != nil {
		utils.Error("PlaceBidHandler: failed to load bids", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		h.renderDetail(c, http.StatusBadGateway, auction, nil,
			"Failed to load bids for this auction.",
			"Failed to place bid. Please try again.")
		return
	}

	var form helpers.PlaceBidForm
	if err := c.ShouldBind(&form); err != nil {
		utils.Info("PlaceBidHandler: failed to bind form", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		h.renderDetail(c, http.StatusUnprocessableEntity, auction, bids, "", "Please enter a valid bid amount")
		return
	}

	amount, err := bidding.CheckBid(form.Amount, auction, bids)
	if err != nil {
		highest := bidding.HighestBid(bids, auction.StartPrice)
		utils.Info("PlaceBidHandler: bid rejected by pre-check", map[string]any{
			"auction_id": auctionID,
			"user_id":    user.ID,
			"amount":     form.Amount,
			"error":      err.Error(),
		})
		h.renderDetail(c, http.StatusUnprocessableEntity, auction, bids, "", helpers.BidErrorMessage(err, highest))
		return
	}

	bid, err := h.api.PlaceBid(ctx, model.CreateBid{
		AuctionID: auction.ID,
		BidderID:  user.ID,
		Amount:    amount,
	})
	if err != nil {
		// The snapshot may have gone stale between check and submission; the
		// service's rejection message wins when it sends one.
		highest := bidding.HighestBid(bids, auction.StartPrice)
		utils.Warn("PlaceBidHandler: bid rejected by auction service", map[string]any{
			"auction_id": auctionID,
			"user_id":    user.ID,
			"amount":     amount,
			"error":      err.Error(),
		})
		h.renderDetail(c, http.StatusUnprocessableEntity, auction, bids, "", helpers.BidErrorMessage(err, highest))
		return
	}

	helpers.LogSuccess("PlaceBidHandler", "bid placed", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": auction.ID,
		"user_id":    user.ID,
		"amount":     bid.Amount,
	})
	c.Redirect(http.StatusSeeOther, "/auctions/"+auction.ID)
}

// NewAuctionFormHandler handles GET /auctions/new
func (h *PageHandler) NewAuctionFormHandler(c *gin.Context) {
	if _, ok := h.sessions.Current(c); !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	h.renderCreate(c, http.StatusOK, helpers.CreateAuctionForm{}, "")
}

// CreateAuctionHandler handles POST /auctions
func (h *PageHandler) CreateAuctionHandler(c *gin.Context) {
	user, ok := h.sessions.Current(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form helpers.CreateAuctionForm
	if err := c.ShouldBind(&form); err != nil {
		utils.Info("CreateAuctionHandler: failed to bind form", map[string]any{"error": err.Error()})
		h.renderCreate(c, http.StatusUnprocessableEntity, form, "Invalid form submission. Please try again.")
		return
	}

	payload, err := form.Validate(time.Now())
	if err != nil {
		h.renderCreate(c, http.StatusUnprocessableEntity, form, helpers.FormErrorMessage(err))
		return
	}
	payload.OwnerID = user.ID

	auction, err := h.api.CreateAuction(c.Request.Context(), payload)
	if err != nil {
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"user_id": user.ID,
			"title":   payload.Title,
			"error":   err.Error(),
		})
		h.renderCreate(c, http.StatusUnprocessableEntity, form,
			helpers.UpstreamOr(err, "Failed to create auction. Please try again."))
		return
	}

	helpers.LogSuccess("CreateAuctionHandler", "auction created", map[string]any{
		"auction_id": auction.ID,
		"user_id":    user.ID,
		"title":      auction.Title,
	})
	c.Redirect(http.StatusSeeOther, "/auctions/"+auction.ID)
}

// SearchHandler handles GET /search
func (h *PageHandler) SearchHandler(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		utils.RenderPage(c, http.StatusOK, "search.tmpl", "Search Auctions", h.pageData(c, gin.H{
			"Searched": false,
		}))
		return
	}

	results, err := h.api.SearchAuctions(c.Request.Context(), query)
	if err != nil {
		utils.Error("SearchHandler: search failed", map[string]any{"query": query, "error": err.Error()})
		utils.RenderPage(c, http.StatusBadGateway, "search.tmpl", "Search Auctions", h.pageData(c, gin.H{
			"Query": query,
			"Error": "Search failed. Please try again.",
		}))
		return
	}

	utils.RenderPage(c, http.StatusOK, "search.tmpl", "Search Auctions", h.pageData(c, gin.H{
		"Searched": true,
		"Query":    query,
		"Results":  results,
	}))
	helpers.LogSuccess("SearchHandler", "search rendered", map[string]any{
		"query": query,
		"count": len(results),
	})
}

// renderDetail renders the auction detail page. bidError is the inline message
// for a failed bid attempt; bidsMessage replaces the bid list region when the
// bid fetch failed.
func (h *PageHandler) renderDetail(c *gin.Context, status int, auction model.Auction, bids []model.Bid, bidsMessage, bidError string) {
	highest := bidding.HighestBid(bids, auction.StartPrice)

	// Bid list is shown highest first
	sorted := append([]model.Bid(nil), bids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Amount > sorted[j].Amount })

	utils.RenderPage(c, status, "detail.tmpl", auction.Title, h.pageData(c, gin.H{
		"Auction":     auction,
		"Bids":        sorted,
		"Highest":     highest,
		"MinBid":      highest + 0.01,
		"IsActive":    auction.Status == model.StatusActive,
		"BidsMessage": bidsMessage,
		"BidError":    bidError,
	}))
}

func (h *PageHandler) renderCreate(c *gin.Context, status int, form helpers.CreateAuctionForm, errMessage string) {
	// Earliest selectable end date offered by the form widget
	minDate := time.Now().Add(24 * time.Hour).Format("2006-01-02T15:04")

	utils.RenderPage(c, status, "create.tmpl", "Create New Auction", h.pageData(c, gin.H{
		"Form":    form,
		"MinDate": minDate,
		"Error":   errMessage,
	}))
}

func filterByStatus(auctions []model.Auction, status model.AuctionStatus) []model.Auction {
	filtered := make([]model.Auction, 0, len(auctions))
	for _, a := range auctions {
		if a.Status == status {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
