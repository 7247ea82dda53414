package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"ev-marketplace/internal/bidding"
	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/internal/models"
	"ev-marketplace/internal/query"
	"ev-marketplace/internal/render"
)

func (a *App) newLive(interval time.Duration) *bidding.Live {
	if interval <= 0 {
		interval = a.cfg.BidPollInterval
	}
	return bidding.NewLive(a.apis.Bids, a.cache, a.notices, interval)
}

// loadAuction fetches the details the live view checks bids against.
// Without them only the backend checks the bid.
func (a *App) loadAuction(ctx context.Context, auctionID string) (models.Auction, bool) {
	auction, err := query.Fetch(ctx, a.cache, query.AuctionKey(auctionID), func(ctx context.Context) (models.Auction, error) {
		return a.apis.Auctions.Get(ctx, auctionID)
	})
	return auction, err == nil
}

// waitView blocks until pred holds for the live view or ctx ends, and
// returns the last view seen.
func waitView(ctx context.Context, live *bidding.Live, pred func(bidding.View) bool) (bidding.View, error) {
	changed := make(chan struct{}, 1)
	unsubscribe := live.Subscribe(func(bidding.View) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	for {
		v := live.View()
		if pred(v) {
			return v, nil
		}
		select {
		case <-ctx.Done():
			return v, ctx.Err()
		case <-changed:
		}
	}
}

func settled(v bidding.View) bool { return v.Loaded() || v.Err != nil }

func (a *App) cmdWatch(ctx context.Context, args []string) error {
	fs := a.newFlags("watch")
	interval := fs.Duration("interval", 0, "poll interval (default from config)")
	limit := fs.Duration("for", 0, "stop after this long (default until interrupted)")
	if err := parse(fs, args); err != nil {
		return err
	}
	auctionID, err := oneArg("watch", fs.Args())
	if err != nil {
		return err
	}
	if *limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *limit)
		defer cancel()
	}

	live := a.newLive(*interval)
	auction, known := a.loadAuction(ctx, auctionID)
	if known {
		_ = a.print(func(w io.Writer) error { return render.Auction(w, auction, a.now()) })
	}

	var last bidding.View
	unsubscribe := live.Subscribe(func(v bidding.View) {
		// Fetching toggles alone are not worth a redraw.
		if v.UpdatedAt.Equal(last.UpdatedAt) && errors.Is(v.Err, last.Err) && v.Loaded() == last.Loaded() {
			return
		}
		last = v
		_ = a.print(func(w io.Writer) error { return render.BidView(w, v) })
	})
	defer unsubscribe()

	if err := live.Mount(ctx, auctionID); err != nil {
		return err
	}
	defer live.Unmount()
	if known {
		live.SetAuction(auction)
	}

	<-ctx.Done()
	return nil
}

func (a *App) cmdBid(ctx context.Context, args []string) error {
	fs := a.newFlags("bid")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: bid takes <auctionID> <amount>", ErrUsage)
	}
	auctionID := fs.Arg(0)
	amount, err := strconv.ParseFloat(fs.Arg(1), 64)
	if err != nil {
		return &marketerrors.ValidationError{Fields: []string{"amount"}, Reason: "amount must be a number"}
	}
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	live := a.newLive(0)
	auction, known := a.loadAuction(ctx, auctionID)
	if err := live.Mount(ctx, auctionID); err != nil {
		return err
	}
	defer live.Unmount()
	if known {
		live.SetAuction(auction)
	}

	waitCtx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
	defer cancel()
	_, _ = waitView(waitCtx, live, settled)

	submittedAt := time.Now()
	bid, err := live.Submit(ctx, amount)
	if err != nil {
		return err
	}
	_ = a.print(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Bid %s of %s placed.\n", bid.ID, render.Money(bid.Amount))
		return err
	})

	// The list only shows the bid once the backend returns it.
	view, err := waitView(waitCtx, live, func(v bidding.View) bool {
		return v.UpdatedAt.After(submittedAt) && containsBid(v, bid.ID)
	})
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return a.print(func(w io.Writer) error { return render.BidView(w, view) })
}

func containsBid(v bidding.View, id string) bool {
	for _, r := range v.Ranked {
		if r.ID == id {
			return true
		}
	}
	return false
}
