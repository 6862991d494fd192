package integrationtests

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	model "auction-web/internal/models"
	"auction-web/utils"
)

// stubAuctionService is an in-memory stand-in for the remote auction service.
// It enforces the same authoritative rules the real service would: bids must
// strictly exceed the highest bid (or the starting price) and the auction
// must be active.
type stubAuctionService struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction
	bids     map[string][]model.Bid // key: auctionID
	users    map[string]model.User
}

func newStubAuctionService() *stubAuctionService {
	return &stubAuctionService{
		auctions: make(map[string]model.Auction),
		bids:     make(map[string][]model.Bid),
		users:    make(map[string]model.User),
	}
}

func (s *stubAuctionService) addAuction(a model.Auction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auctions[a.ID] = a
}

func (s *stubAuctionService) addBid(b model.Bid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bids[b.AuctionID] = append(s.bids[b.AuctionID], b)
}

func (s *stubAuctionService) addUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *stubAuctionService) bidCount(auctionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bids[auctionID])
}

func (s *stubAuctionService) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/auctions", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		list := make([]model.Auction, 0, len(s.auctions))
		for _, a := range s.auctions {
			list = append(list, a)
		}
		writeJSON(w, http.StatusOK, list)
	})

	mux.HandleFunc("GET /api/auctions/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		a, ok := s.auctions[r.PathValue("id")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "auction not found"})
			return
		}
		writeJSON(w, http.StatusOK, a)
	})

	mux.HandleFunc("POST /api/auctions", func(w http.ResponseWriter, r *http.Request) {
		var payload model.CreateAuction
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid payload"})
			return
		}
		a := model.Auction{
			ID:          utils.GenerateID(),
			Title:       payload.Title,
			Description: payload.Description,
			StartPrice:  payload.StartPrice,
			EndsAt:      payload.EndsAt,
			Status:      model.StatusActive,
			OwnerID:     payload.OwnerID,
			CreatedAt:   time.Now().UTC(),
		}
		s.mu.Lock()
		s.auctions[a.ID] = a
		s.mu.Unlock()
		writeJSON(w, http.StatusCreated, a)
	})

	mux.HandleFunc("GET /api/bids/auction/{auctionId}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		bids := s.bids[r.PathValue("auctionId")]
		if bids == nil {
			bids = []model.Bid{}
		}
		writeJSON(w, http.StatusOK, bids)
	})

	mux.HandleFunc("POST /api/bids", func(w http.ResponseWriter, r *http.Request) {
		var payload model.CreateBid
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid payload"})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		auction, ok := s.auctions[payload.AuctionID]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "auction not found"})
			return
		}
		if auction.Status != model.StatusActive {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "auction is not active"})
			return
		}
		highest := auction.StartPrice
		for _, b := range s.bids[auction.ID] {
			if b.Amount > highest {
				highest = b.Amount
			}
		}
		if payload.Amount <= highest {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "bid amount too low"})
			return
		}

		bid := model.Bid{
			ID:        utils.GenerateID(),
			AuctionID: payload.AuctionID,
			BidderID:  payload.BidderID,
			Amount:    payload.Amount,
			CreatedAt: time.Now().UTC(),
		}
		s.bids[bid.AuctionID] = append(s.bids[bid.AuctionID], bid)
		writeJSON(w, http.StatusCreated, bid)
	})

	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		list := make([]model.User, 0, len(s.users))
		for _, u := range s.users {
			list = append(list, u)
		}
		writeJSON(w, http.StatusOK, list)
	})

	mux.HandleFunc("GET /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		u, ok := s.users[r.PathValue("id")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "user not found"})
			return
		}
		writeJSON(w, http.StatusOK, u)
	})

	mux.HandleFunc("POST /api/users", func(w http.ResponseWriter, r *http.Request) {
		var payload model.CreateUser
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid payload"})
			return
		}
		u := model.User{
			ID:          utils.GenerateID(),
			Username:    payload.Username,
			DisplayName: payload.DisplayName,
			CreatedAt:   time.Now().UTC(),
		}
		s.mu.Lock()
		s.users[u.ID] = u
		s.mu.Unlock()
		writeJSON(w, http.StatusCreated, u)
	})

	mux.HandleFunc("GET /api/search/auctions", func(w http.ResponseWriter, r *http.Request) {
		query := strings.ToLower(r.URL.Query().Get("q"))
		s.mu.RLock()
		defer s.mu.RUnlock()
		results := make([]model.Auction, 0)
		for _, a := range s.auctions {
			if strings.Contains(strings.ToLower(a.Title), query) {
				results = append(results, a)
			}
		}
		writeJSON(w, http.StatusOK, results)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
