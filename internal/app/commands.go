package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"ev-marketplace/internal/listing"
	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/internal/models"
	"ev-marketplace/internal/pricing"
	"ev-marketplace/internal/query"
	"ev-marketplace/internal/render"
)

func (a *App) cmdRegister(ctx context.Context, args []string) error {
	fs := a.newFlags("register")
	var req models.RegisterRequest
	fs.StringVar(&req.FullName, "name", "", "full name")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	fs.StringVar(&req.Password, "password", "", "password")
	if err := parse(fs, args); err != nil {
		return err
	}

	snap, err := a.session.Register(ctx, req)
	if err != nil {
		return err
	}
	return a.print(func(w io.Writer) error { return render.Session(w, snap) })
}

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	fs := a.newFlags("login")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fields := blank("email", *email, "password", *password); len(fields) > 0 {
		return &marketerrors.ValidationError{Fields: fields}
	}

	snap, err := a.session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	return a.print(func(w io.Writer) error { return render.Session(w, snap) })
}

// blank takes name/value pairs and returns the names whose value is empty.
func blank(pairs ...string) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			out = append(out, pairs[i])
		}
	}
	return out
}

func (a *App) cmdLogout(ctx context.Context, args []string) error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	return a.print(func(w io.Writer) error {
		_, err := fmt.Fprintln(w, "Signed out.")
		return err
	})
}

func (a *App) cmdWhoami(ctx context.Context, args []string) error {
	snap := a.session.Snapshot()
	if snap.SignedIn() {
		var err error
		if snap, err = a.requireSession(ctx); err != nil {
			return err
		}
	}
	return a.print(func(w io.Writer) error { return render.Session(w, snap) })
}

func pageFlags(fs *flag.FlagSet) *models.PageQuery {
	q := &models.PageQuery{}
	fs.IntVar(&q.Page, "page", models.DefaultPage, "page number")
	fs.IntVar(&q.PageSize, "size", models.DefaultPageSize, "page size")
	return q
}

func (a *App) cmdAuctions(ctx context.Context, args []string) error {
	fs := a.newFlags("auctions")
	mine := fs.Bool("mine", false, "only auctions you created")
	q := pageFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	page := q.WithDefaults()

	var (
		result models.Paged[models.Auction]
		err    error
	)
	if *mine {
		if _, err := a.requireSession(ctx); err != nil {
			return err
		}
		result, err = query.Fetch(ctx, a.cache, query.MyAuctionsKey(page.Page, page.PageSize), func(ctx context.Context) (models.Paged[models.Auction], error) {
			return a.apis.Auctions.Mine(ctx, page)
		})
	} else {
		result, err = query.Fetch(ctx, a.cache, query.AuctionsKey(page.Page, page.PageSize), func(ctx context.Context) (models.Paged[models.Auction], error) {
			return a.apis.Auctions.List(ctx, page)
		})
	}
	if err != nil {
		return fmt.Errorf("app: list auctions: %w", err)
	}
	return a.print(func(w io.Writer) error { return render.Auctions(w, result, a.now()) })
}

func (a *App) cmdAuctionCreate(ctx context.Context, args []string) error {
	fs := a.newFlags("auction-create")
	listingID := fs.String("listing", "", "listing id")
	startPrice := fs.Float64("start-price", 0, "starting price in VND")
	start := fs.String("start", "now", "start time (RFC3339 or \"now\")")
	duration := fs.Duration("duration", 24*time.Hour, "auction length")
	if err := parse(fs, args); err != nil {
		return err
	}

	startAt := a.now()
	if *start != "now" {
		t, err := time.Parse(time.RFC3339, *start)
		if err != nil {
			return &marketerrors.ValidationError{Fields: []string{"start"}, Reason: "start must be RFC3339 or now"}
		}
		startAt = t
	}
	var fields []string
	if *listingID == "" {
		fields = append(fields, "listing")
	}
	if *startPrice <= 0 {
		fields = append(fields, "start-price")
	}
	if *duration <= 0 {
		fields = append(fields, "duration")
	}
	if len(fields) > 0 {
		return &marketerrors.ValidationError{Fields: fields}
	}
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	req := models.CreateAuctionRequest{
		ListingID:     *listingID,
		StartingPrice: *startPrice,
		StartTime:     startAt,
		EndTime:       startAt.Add(*duration),
	}
	auction, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (models.Auction, error) {
		return a.apis.Auctions.Create(ctx, req)
	}, query.NewKey("auction"))
	if err != nil {
		return fmt.Errorf("app: create auction: %w", err)
	}
	return a.print(func(w io.Writer) error { return render.Auction(w, auction, a.now()) })
}

func (a *App) cmdFavorites(ctx context.Context, args []string) error {
	fs := a.newFlags("favorites")
	q := pageFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}
	page := q.WithDefaults()

	result, err := query.Fetch(ctx, a.cache, query.FavoritesKey(page.Page, page.PageSize), func(ctx context.Context) (models.Paged[models.Favorite], error) {
		return a.apis.Favorites.Mine(ctx, page)
	})
	if err != nil {
		return fmt.Errorf("app: list favorites: %w", err)
	}
	return a.print(func(w io.Writer) error { return render.Favorites(w, result) })
}

func oneArg(name string, args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("%w: %s takes exactly one id", ErrUsage, name)
	}
	return args[0], nil
}

func (a *App) cmdFavoriteAdd(ctx context.Context, args []string) error {
	listingID, err := oneArg("favorite-add", args)
	if err != nil {
		return err
	}
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	fav, err := query.Mutate(ctx, a.cache, func(ctx context.Context) (models.Favorite, error) {
		return a.apis.Favorites.Add(ctx, listingID)
	}, query.NewKey("favorites"))
	if err != nil {
		return fmt.Errorf("app: add favorite: %w", err)
	}
	return a.print(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Saved listing %s (favorite %s).\n", fav.ListingID, fav.ID)
		return err
	})
}

func (a *App) cmdFavoriteRemove(ctx context.Context, args []string) error {
	favoriteID, err := oneArg("favorite-remove", args)
	if err != nil {
		return err
	}
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	_, err = query.Mutate(ctx, a.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.apis.Favorites.Remove(ctx, favoriteID)
	}, query.NewKey("favorites"))
	if err != nil {
		return fmt.Errorf("app: remove favorite: %w", err)
	}
	return a.print(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Removed favorite %s.\n", favoriteID)
		return err
	})
}

func (a *App) cmdFavoriteCheck(ctx context.Context, args []string) error {
	listingID, err := oneArg("favorite-check", args)
	if err != nil {
		return err
	}
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	check, err := query.Fetch(ctx, a.cache, query.FavoriteCheckKey(listingID), func(ctx context.Context) (models.FavoriteCheck, error) {
		return a.apis.Favorites.Check(ctx, listingID)
	})
	if err != nil {
		return fmt.Errorf("app: check favorite: %w", err)
	}
	return a.print(func(w io.Writer) error { return render.FavoriteCheck(w, listingID, check) })
}

// listingFlags binds the attributes shared by listing-create and price.
type listingFlags struct {
	category string
	info     listing.BasicInfo
	battery  models.BatterySpec
	ebike    models.EBikeSpec
}

func (lf *listingFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&lf.category, "category", "", "battery, ebike, car or motorbike")
	fs.StringVar(&lf.info.Title, "title", "", "listing title")
	fs.StringVar(&lf.info.Description, "description", "", "description")
	fs.Float64Var(&lf.info.Price, "price", 0, "asking price in VND")
	fs.StringVar(&lf.info.Brand, "brand", "", "brand")
	fs.StringVar(&lf.info.Model, "model", "", "model")
	fs.IntVar(&lf.info.Year, "year", 0, "year of manufacture")
	fs.StringVar(&lf.info.Condition, "condition", "", "condition")
	fs.Float64Var(&lf.battery.VoltageV, "voltage", 0, "battery voltage (V)")
	fs.Float64Var(&lf.battery.CapacityAh, "capacity", 0, "battery capacity (Ah)")
	fs.Float64Var(&lf.battery.HealthPercent, "health", 0, "battery health (%)")
	fs.Float64Var(&lf.ebike.MotorPowerW, "motor", 0, "e-bike motor power (W)")
	fs.Float64Var(&lf.ebike.RangeKm, "range", 0, "e-bike range (km)")
	fs.Float64Var(&lf.ebike.MileageKm, "mileage", 0, "e-bike mileage (km)")
}

func (a *App) cmdListingCreate(ctx context.Context, args []string) error {
	fs := a.newFlags("listing-create")
	var lf listingFlags
	lf.bind(fs)
	var images stringList
	fs.Var(&images, "image", "image file (repeatable)")
	primary := fs.Int("primary", 0, "index of the primary image")
	suggest := fs.Bool("suggest", false, "print an AI price suggestion before submitting")
	if err := parse(fs, args); err != nil {
		return err
	}
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	w := listing.NewWizard(a.compressor, a.notices)
	// No-op once submitted.
	defer w.Discard()

	steps := []func() error{
		func() error { return w.SetBasicInfo(lf.basicInfo()) },
		func() error { return lf.applyDetails(w) },
		func() error { return a.addImages(w, images, *primary) },
	}
	for _, step := range steps {
		if err := a.print(func(out io.Writer) error { return render.Step(out, w.Step()) }); err != nil {
			return err
		}
		if err := step(); err != nil {
			return err
		}
		w.Next()
	}

	draft := w.Draft()
	if err := a.print(func(out io.Writer) error {
		if err := render.Step(out, w.Step()); err != nil {
			return err
		}
		return render.Draft(out, draft, w.Missing())
	}); err != nil {
		return err
	}

	if *suggest {
		if sug, err := a.suggester.Suggest(ctx, pricing.InputFromDraft(draft)); err == nil {
			_ = a.print(func(out io.Writer) error { return render.Suggestion(out, sug) })
		}
	}

	created, err := w.Submit(ctx, listingCreator{a})
	if err != nil {
		return err
	}
	return a.print(func(out io.Writer) error { return render.Listing(out, created) })
}

// listingCreator publishes through the cache so the seller's auction pages
// are refetched.
type listingCreator struct{ a *App }

func (c listingCreator) Create(ctx context.Context, req models.CreateListingRequest) (models.Listing, error) {
	return query.Mutate(ctx, c.a.cache, func(ctx context.Context) (models.Listing, error) {
		return c.a.apis.Listings.Create(ctx, req)
	}, query.NewKey("auction", "my"))
}

func (lf *listingFlags) basicInfo() listing.BasicInfo {
	info := lf.info
	info.Category = models.Category(strings.ToLower(strings.TrimSpace(lf.category)))
	return info
}

func (lf *listingFlags) applyDetails(w *listing.Wizard) error {
	switch lf.basicInfo().Category {
	case models.CategoryBattery:
		return w.SetBatterySpec(lf.battery)
	case models.CategoryEBike:
		return w.SetEBikeSpec(lf.ebike)
	}
	return nil
}

func (a *App) addImages(w *listing.Wizard, paths []string, primary int) error {
	var ids []string
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return &marketerrors.ValidationError{Fields: []string{"images"}, Reason: fmt.Sprintf("cannot open %s", path)}
		}
		img, err := w.AddImage(f)
		f.Close()
		if err != nil {
			return err
		}
		ids = append(ids, img.ID)
	}
	if primary > 0 {
		if primary >= len(ids) {
			return &marketerrors.ValidationError{Fields: []string{"primary"}, Reason: "primary index is out of range"}
		}
		return w.SetPrimary(ids[primary])
	}
	return nil
}

func (a *App) cmdPrice(ctx context.Context, args []string) error {
	fs := a.newFlags("price")
	var lf listingFlags
	lf.bind(fs)
	if err := parse(fs, args); err != nil {
		return err
	}

	info := lf.basicInfo()
	in := pricing.PriceInput{
		Category:  info.Category,
		Title:     info.Title,
		Brand:     info.Brand,
		Model:     info.Model,
		Year:      info.Year,
		Condition: info.Condition,
	}
	switch info.Category {
	case models.CategoryBattery:
		in.Battery = &lf.battery
	case models.CategoryEBike:
		in.EBike = &lf.ebike
	}

	sug, err := a.suggester.Suggest(ctx, in)
	if err != nil {
		return err
	}
	return a.print(func(w io.Writer) error { return render.Suggestion(w, sug) })
}

func (a *App) cmdPay(ctx context.Context, args []string) error {
	fs := a.newFlags("pay")
	var req models.CreatePaymentRequest
	fs.StringVar(&req.ListingID, "listing", "", "listing id")
	fs.Float64Var(&req.Amount, "amount", 0, "amount in VND")
	fs.StringVar(&req.PaymentMethod, "method", "payos", "payment method")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fields := blank("listing", req.ListingID); len(fields) > 0 || req.Amount <= 0 {
		if req.Amount <= 0 {
			fields = append(fields, "amount")
		}
		return &marketerrors.ValidationError{Fields: fields}
	}
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	order, err := a.apis.Payments.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("app: create order: %w", err)
	}
	return a.print(func(w io.Writer) error { return render.Orders(w, []models.Order{order}) })
}

func (a *App) cmdPayLink(ctx context.Context, args []string) error {
	fs := a.newFlags("pay-link")
	var req models.PaymentLinkRequest
	fs.StringVar(&req.OrderID, "order", "", "order id")
	fs.Float64Var(&req.Amount, "amount", 0, "amount in VND")
	fs.StringVar(&req.Description, "description", "", "payment description")
	fs.StringVar(&req.ReturnURL, "return-url", "", "redirect after payment")
	fs.StringVar(&req.CancelURL, "cancel-url", "", "redirect after cancel")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fields := blank("order", req.OrderID); len(fields) > 0 || req.Amount <= 0 {
		if req.Amount <= 0 {
			fields = append(fields, "amount")
		}
		return &marketerrors.ValidationError{Fields: fields}
	}
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	link, err := a.apis.Payments.CreateLink(ctx, req)
	if err != nil {
		return fmt.Errorf("app: create payment link: %w", err)
	}
	return a.print(func(w io.Writer) error { return render.PaymentLink(w, link) })
}

func (a *App) cmdUsers(ctx context.Context, args []string) error {
	fs := a.newFlags("users")
	q := pageFlags(fs)
	search := fs.String("search", "", "name or email contains")
	active := fs.String("active", "", "filter by status: true or false")
	if err := parse(fs, args); err != nil {
		return err
	}

	filter := models.UserFilter{PageQuery: q.WithDefaults(), Search: *search}
	if *active != "" {
		b, err := strconv.ParseBool(*active)
		if err != nil {
			return &marketerrors.ValidationError{Fields: []string{"active"}, Reason: "active must be true or false"}
		}
		filter.IsActive = &b
	}
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	page, err := query.Fetch(ctx, a.cache, query.UsersKey(filter.Page, filter.PageSize, filter.Search, filter.IsActive), func(ctx context.Context) (models.Paged[models.User], error) {
		return a.apis.Admin.Users(ctx, filter)
	})
	if err != nil {
		return fmt.Errorf("app: list users: %w", err)
	}
	return a.print(func(w io.Writer) error { return render.Users(w, page) })
}
