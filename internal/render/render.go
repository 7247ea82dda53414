// Package render prints marketplace data as aligned text tables.
package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"ev-marketplace/internal/bidding"
	"ev-marketplace/internal/listing"
	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/internal/models"
	"ev-marketplace/internal/notify"
	"ev-marketplace/internal/pricing"
	"ev-marketplace/internal/session"
)

const timeLayout = "2006-01-02 15:04"

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Money formats a VND amount with thousands separators.
func Money(v float64) string {
	neg := v < 0
	s := strconv.FormatInt(int64(math.Round(math.Abs(v))), 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(" VND")
	return b.String()
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Bids prints a ranked bid list, marking the highest bid.
func Bids(w io.Writer, ranked []bidding.RankedBid) error {
	if len(ranked) == 0 {
		_, err := fmt.Fprintln(w, "No bids yet.")
		return err
	}
	tw := table(w)
	fmt.Fprintln(tw, "RANK\tBIDDER\tAMOUNT\tPLACED\t")
	for _, b := range ranked {
		mark := ""
		if b.Highest {
			mark = "* highest"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", b.Rank, orDash(b.BidderName), Money(b.Amount), stamp(b.CreatedAt), mark)
	}
	return tw.Flush()
}

// BidView prints the live state of an auction's bids. A failed refresh is
// shown as a status line above the last good list.
func BidView(w io.Writer, v bidding.View) error {
	fmt.Fprintf(w, "Auction %s", v.AuctionID)
	if v.Loaded() {
		fmt.Fprintf(w, "  (updated %s)", v.UpdatedAt.Local().Format("15:04:05"))
	}
	if v.Fetching {
		fmt.Fprint(w, "  refreshing...")
	}
	fmt.Fprintln(w)
	if v.Err != nil {
		fmt.Fprintf(w, "! refresh failed: %s\n", marketerrors.UserMessage(v.Err))
	}
	if !v.Loaded() {
		_, err := fmt.Fprintln(w, "Loading bids...")
		return err
	}
	return Bids(w, v.Ranked)
}

// Auctions prints a page of auctions with their derived status.
func Auctions(w io.Writer, page models.Paged[models.Auction], now time.Time) error {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tLISTING\tSTATUS\tSTARTING\tCURRENT\tBIDS\tENDS")
	for _, a := range page.Items {
		current, bids := "-", "-"
		if a.CurrentPrice != nil {
			current = Money(*a.CurrentPrice)
		}
		if a.TotalBids != nil {
			bids = strconv.Itoa(*a.TotalBids)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, listingTitle(a), a.StatusAt(now), Money(a.StartingPrice), current, bids, stamp(a.EndTime))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return pageFooter(w, page.Page, page.TotalPages, page.TotalItems)
}

func listingTitle(a models.Auction) string {
	if a.Listing != nil && a.Listing.Title != "" {
		return a.Listing.Title
	}
	return a.ListingID
}

// Auction prints one auction.
func Auction(w io.Writer, a models.Auction, now time.Time) error {
	tw := table(w)
	fmt.Fprintf(tw, "Auction:\t%s\n", a.ID)
	fmt.Fprintf(tw, "Listing:\t%s\n", listingTitle(a))
	fmt.Fprintf(tw, "Status:\t%s\n", a.StatusAt(now))
	fmt.Fprintf(tw, "Starting price:\t%s\n", Money(a.StartingPrice))
	if a.CurrentPrice != nil {
		fmt.Fprintf(tw, "Current price:\t%s\n", Money(*a.CurrentPrice))
	}
	fmt.Fprintf(tw, "Window:\t%s to %s\n", stamp(a.StartTime), stamp(a.EndTime))
	return tw.Flush()
}

func pageFooter(w io.Writer, page, pages, total int) error {
	if pages == 0 {
		pages = 1
	}
	_, err := fmt.Fprintf(w, "page %d/%d (%d total)\n", page, pages, total)
	return err
}

// Favorites prints a page of saved listings.
func Favorites(w io.Writer, page models.Paged[models.Favorite]) error {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tLISTING\tTITLE\tSAVED")
	for _, f := range page.Items {
		title := "-"
		if f.Listing != nil {
			title = orDash(f.Listing.Title)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.ListingID, title, stamp(f.CreatedAt))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return pageFooter(w, page.Page, page.TotalPages, page.TotalItems)
}

// FavoriteCheck prints whether a listing is saved.
func FavoriteCheck(w io.Writer, listingID string, c models.FavoriteCheck) error {
	if !c.IsFavorite {
		_, err := fmt.Fprintf(w, "Listing %s is not in your favorites.\n", listingID)
		return err
	}
	_, err := fmt.Fprintf(w, "Listing %s is in your favorites (favorite %s).\n", listingID, c.FavoriteID)
	return err
}

// Orders prints orders.
func Orders(w io.Writer, orders []models.Order) error {
	tw := table(w)
	fmt.Fprintln(tw, "ORDER\tLISTING\tAMOUNT\tMETHOD\tSTATUS\tCREATED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.ListingID, Money(o.Amount), o.PaymentMethod, o.Status, stamp(o.CreatedAt))
	}
	return tw.Flush()
}

// PaymentLink prints a hosted checkout link.
func PaymentLink(w io.Writer, l models.PaymentLink) error {
	tw := table(w)
	fmt.Fprintf(tw, "Order code:\t%d\n", l.OrderCode)
	fmt.Fprintf(tw, "Status:\t%s\n", orDash(l.Status))
	fmt.Fprintf(tw, "Checkout:\t%s\n", l.CheckoutURL)
	return tw.Flush()
}

// Users prints a page of member accounts.
func Users(w io.Writer, page models.Paged[models.User]) error {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tACTIVE\tJOINED")
	for _, u := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n", u.ID, u.FullName, u.Email, orDash(u.Role), u.IsActive, stamp(u.CreatedAt))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return pageFooter(w, page.Page, page.TotalPages, page.TotalItems)
}

// Listing prints a created listing.
func Listing(w io.Writer, l models.Listing) error {
	tw := table(w)
	fmt.Fprintf(tw, "Listing:\t%s\n", l.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", l.Title)
	fmt.Fprintf(tw, "Category:\t%s\n", l.Category)
	fmt.Fprintf(tw, "Price:\t%s\n", Money(l.Price))
	fmt.Fprintf(tw, "Images:\t%d\n", len(l.Images))
	return tw.Flush()
}

// Draft prints a listing draft at review, including what still blocks it.
func Draft(w io.Writer, d models.CreateListingRequest, missing []string) error {
	tw := table(w)
	fmt.Fprintf(tw, "Category:\t%s\n", orDash(string(d.Category)))
	fmt.Fprintf(tw, "Title:\t%s\n", orDash(d.Title))
	fmt.Fprintf(tw, "Price:\t%s\n", Money(d.Price))
	if d.Battery != nil {
		fmt.Fprintf(tw, "Battery:\t%gV %gAh\n", d.Battery.VoltageV, d.Battery.CapacityAh)
	}
	if d.EBike != nil {
		fmt.Fprintf(tw, "E-bike:\t%gW %gkm\n", d.EBike.MotorPowerW, d.EBike.RangeKm)
	}
	primary := "-"
	for _, img := range d.Images {
		if img.IsPrimary {
			primary = img.ID
		}
	}
	fmt.Fprintf(tw, "Images:\t%d (primary %s)\n", len(d.Images), primary)
	if len(missing) > 0 {
		fmt.Fprintf(tw, "Missing:\t%s\n", strings.Join(missing, ", "))
	}
	return tw.Flush()
}

// Step prints the wizard position.
func Step(w io.Writer, s listing.Step) error {
	_, err := fmt.Fprintf(w, "[%d/%d] %s\n", int(s)+1, int(listing.StepReview)+1, s)
	return err
}

// Suggestion prints an AI price range.
func Suggestion(w io.Writer, s pricing.Suggestion) error {
	tw := table(w)
	fmt.Fprintf(tw, "Suggested:\t%s\n", Money(s.SuggestedPrice))
	fmt.Fprintf(tw, "Range:\t%s to %s\n", Money(s.MinPrice), Money(s.MaxPrice))
	return tw.Flush()
}

// Session prints who is signed in.
func Session(w io.Writer, s session.Snapshot) error {
	if !s.SignedIn() || s.Profile == nil {
		_, err := fmt.Fprintln(w, "Not signed in.")
		return err
	}
	tw := table(w)
	fmt.Fprintf(tw, "Name:\t%s\n", s.Profile.FullName)
	fmt.Fprintf(tw, "Email:\t%s\n", s.Profile.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", orDash(s.Profile.Role))
	fmt.Fprintf(tw, "Session:\t%s\n", s.State)
	return tw.Flush()
}

// Notifications prints pending notifications, oldest first.
func Notifications(w io.Writer, ns []notify.Notification) error {
	for _, n := range ns {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", n.Level, n.Message); err != nil {
			return err
		}
	}
	return nil
}
