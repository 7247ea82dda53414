// Package bidding keeps the ranked bid list of one auction approximately
// fresh by polling, and submits bids without ever editing that list locally.
package bidding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ev-marketplace/internal/httpclient"
	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/internal/models"
	"ev-marketplace/internal/notify"
	"ev-marketplace/internal/query"
	"ev-marketplace/utils"
)

// BidSource is the slice of the bid endpoints the live view needs.
type BidSource interface {
	List(ctx context.Context, auctionID string) ([]models.Bid, error)
	Place(ctx context.Context, auctionID string, amount float64) (models.Bid, error)
}

// View is what an auction detail screen renders.
type View struct {
	AuctionID string
	Ranked    []RankedBid
	Highest   *RankedBid
	// Err is the failure of the latest poll. The snapshot above is still
	// the last successful one.
	Err       error
	Fetching  bool
	UpdatedAt time.Time
}

// Loaded reports whether at least one poll has succeeded.
func (v View) Loaded() bool { return !v.UpdatedAt.IsZero() }

// ErrNotMounted is returned when submitting without a mounted auction.
var ErrNotMounted = errors.New("bidding: no auction mounted")

// Live drives the bid list of at most one mounted auction.
type Live struct {
	bids     BidSource
	cache    *query.Cache
	notices  *notify.Center
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	auctionID string
	auction   *models.Auction
	view      View
	poller    *query.Poller
	gen       uint64
	listeners map[int]func(View)
	nextID    int
}

// NewLive returns an unmounted live view. notices may be nil.
func NewLive(bids BidSource, cache *query.Cache, notices *notify.Center, interval time.Duration) *Live {
	return &Live{
		bids:      bids,
		cache:     cache,
		notices:   notices,
		interval:  interval,
		now:       time.Now,
		listeners: make(map[int]func(View)),
	}
}

// Mount starts polling the bid list of auctionID. Mounting another auction
// unmounts the current one first.
func (l *Live) Mount(ctx context.Context, auctionID string) error {
	if auctionID == "" {
		return &marketerrors.ValidationError{Fields: []string{"auctionId"}}
	}
	l.Unmount()

	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.auctionID = auctionID
	l.view = View{AuctionID: auctionID}
	if st := l.cache.Peek(query.BidsKey(auctionID)); st.HasData() {
		if bids, ok := st.Data.([]models.Bid); ok {
			l.view = l.snapshotView(auctionID, bids, st.UpdatedAt)
		}
	}
	l.poller = query.NewPoller(l.interval, func(pctx context.Context) {
		l.poll(pctx, gen, auctionID)
	})
	poller := l.poller
	l.mu.Unlock()

	utils.Info("watching auction bids", map[string]any{"auction_id": auctionID, "interval": l.interval.String()})
	poller.Start(ctx)
	return nil
}

// Unmount stops polling. Responses that arrive afterwards are discarded.
func (l *Live) Unmount() {
	l.mu.Lock()
	poller := l.poller
	auctionID := l.auctionID
	l.poller = nil
	l.auctionID = ""
	l.auction = nil
	l.gen++
	l.mu.Unlock()

	if poller != nil {
		poller.Stop()
		// A fetch still in flight must not land in the shared cache either.
		l.cache.Invalidate(query.BidsKey(auctionID))
		utils.Info("stopped watching auction bids", map[string]any{"auction_id": auctionID})
	}
}

// SetActive pauses polling while the view is hidden and resumes it when
// shown again.
func (l *Live) SetActive(active bool) {
	l.mu.Lock()
	poller := l.poller
	l.mu.Unlock()
	if poller == nil {
		return
	}
	if active {
		poller.Resume()
	} else {
		poller.Pause()
	}
}

// SetAuction records auction details used for client-side bid checks.
func (l *Live) SetAuction(a models.Auction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a.ID == l.auctionID {
		l.auction = &a
	}
}

// View returns the current display state.
func (l *Live) View() View {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.view
}

// Subscribe registers fn for every change of the view.
func (l *Live) Subscribe(fn func(View)) (unsubscribe func()) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		delete(l.listeners, id)
		l.mu.Unlock()
	}
}

// Refresh asks for an immediate re-fetch.
func (l *Live) Refresh() {
	l.mu.Lock()
	poller := l.poller
	l.mu.Unlock()
	if poller != nil {
		poller.Trigger()
	}
}

func (l *Live) poll(ctx context.Context, gen uint64, auctionID string) {
	l.apply(gen, func(v *View) { v.Fetching = true })

	key := query.BidsKey(auctionID)
	bids, err := query.Fetch(ctx, l.cache, key, func(ctx context.Context) ([]models.Bid, error) {
		return l.bids.List(ctx, auctionID)
	})

	switch {
	case err != nil && httpclient.IsCanceled(err):
		// A shared fetch can be canceled by another view; this one stays mounted.
		l.apply(gen, func(v *View) { v.Fetching = false })
	case err != nil:
		utils.Warn("bid poll failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
		l.apply(gen, func(v *View) {
			v.Fetching = false
			v.Err = err
		})
	default:
		updated := l.cache.Peek(key).UpdatedAt
		if updated.IsZero() {
			updated = l.now()
		}
		l.apply(gen, func(v *View) {
			*v = l.snapshotView(auctionID, bids, updated)
		})
	}
}

// snapshotView replaces the whole known bid set with bids.
func (l *Live) snapshotView(auctionID string, bids []models.Bid, at time.Time) View {
	ranked := Rank(bids)
	v := View{AuctionID: auctionID, Ranked: ranked, UpdatedAt: at}
	if len(ranked) > 0 {
		top := ranked[0]
		v.Highest = &top
	}
	return v
}

// apply mutates the view only if gen is still the mounted generation.
func (l *Live) apply(gen uint64, mutate func(v *View)) {
	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		return
	}
	mutate(&l.view)
	v := l.view
	listeners := make([]func(View), 0, len(l.listeners))
	for _, fn := range l.listeners {
		listeners = append(listeners, fn)
	}
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}

// Submit places a bid on the mounted auction. The displayed list is not
// touched: on success the bid cache entry is invalidated and an immediate
// re-fetch is requested, so the bid only appears once the backend lists it.
func (l *Live) Submit(ctx context.Context, amount float64) (models.Bid, error) {
	l.mu.Lock()
	auctionID := l.auctionID
	auction := l.auction
	view := l.view
	poller := l.poller
	l.mu.Unlock()

	if auctionID == "" {
		return models.Bid{}, ErrNotMounted
	}
	if err := validateBid(amount, auction, view, l.now()); err != nil {
		l.report("submit bid", err)
		return models.Bid{}, err
	}

	bid, err := query.Mutate(ctx, l.cache, func(ctx context.Context) (models.Bid, error) {
		return l.bids.Place(ctx, auctionID, amount)
	}, query.BidsKey(auctionID), query.AuctionKey(auctionID))
	if err != nil {
		err = fmt.Errorf("bidding: place bid on auction %s: %w", auctionID, err)
		l.report("submit bid", err)
		return models.Bid{}, err
	}

	utils.Info("bid submitted", map[string]any{"auction_id": auctionID, "amount": amount, "bid_id": bid.ID})
	if poller != nil {
		poller.Trigger()
	}
	return bid, nil
}

func (l *Live) report(action string, err error) {
	if l.notices != nil {
		l.notices.Error(action, err)
	}
}

// validateBid rejects bids the backend would certainly refuse. The backend
// still has the final word.
func validateBid(amount float64, auction *models.Auction, view View, now time.Time) error {
	if amount <= 0 {
		return &marketerrors.ValidationError{Fields: []string{"amount"}, Reason: "amount must be positive"}
	}
	if auction != nil {
		if st := auction.StatusAt(now); st != models.AuctionActive {
			return &marketerrors.ValidationError{Fields: []string{"auction"}, Reason: fmt.Sprintf("auction is %s", st)}
		}
		if amount < auction.StartingPrice {
			return &marketerrors.ValidationError{Fields: []string{"amount"}, Reason: fmt.Sprintf("bid is below the starting price %.0f", auction.StartingPrice)}
		}
	}
	if view.Highest != nil && amount <= view.Highest.Amount {
		return &marketerrors.ValidationError{Fields: []string{"amount"}, Reason: fmt.Sprintf("bid must exceed the current highest bid %.0f", view.Highest.Amount)}
	}
	return nil
}
