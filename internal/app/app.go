// Package app implements the marketplace command line client.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"ev-marketplace/internal/api"
	"ev-marketplace/internal/config"
	"ev-marketplace/internal/httpclient"
	"ev-marketplace/internal/listing"
	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/internal/notify"
	"ev-marketplace/internal/pricing"
	"ev-marketplace/internal/query"
	"ev-marketplace/internal/render"
	"ev-marketplace/internal/session"
	"ev-marketplace/internal/storage"
	"ev-marketplace/utils"
)

// ErrUsage is returned for unknown commands and bad arguments.
var ErrUsage = errors.New("usage error")

// App wires the client layers together for one process.
type App struct {
	cfg        *config.Config
	out        io.Writer
	errOut     io.Writer
	outMu      sync.Mutex
	store      storage.ProfileStore
	apis       *api.Set
	cache      *query.Cache
	session    *session.Manager
	notices    *notify.Center
	suggester  *pricing.Suggester
	compressor *listing.Compressor
	now        func() time.Time
	closers    []func() error
}

// Option customizes New.
type Option func(*options)

type options struct {
	store     storage.ProfileStore
	out       io.Writer
	errOut    io.Writer
	transport *http.Client
	now       func() time.Time
}

// WithStore replaces the configured profile store.
func WithStore(s storage.ProfileStore) Option {
	return func(o *options) { o.store = s }
}

// WithOutput redirects command output and notifications.
func WithOutput(out, errOut io.Writer) Option {
	return func(o *options) { o.out, o.errOut = out, errOut }
}

// WithHTTPClient sets the transport of both the marketplace and AI clients.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.transport = c }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds the client. The stored session is restored as pending.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	o := options{out: os.Stdout, errOut: os.Stderr, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		cfg:        cfg,
		out:        o.out,
		errOut:     o.errOut,
		cache:      query.NewCache(),
		notices:    notify.NewCenter(notify.DefaultCapacity),
		compressor: listing.NewCompressor(cfg.ImageMaxBytes, cfg.ImageMaxDimension),
		now:        o.now,
	}

	store, err := a.openStore(o.store)
	if err != nil {
		return nil, err
	}
	a.store = store

	client, err := httpclient.New(httpclient.Options{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.RequestTimeout,
		Tokens:     store,
		HTTPClient: o.transport,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.apis = api.NewSet(client)
	a.session = session.New(store, a.apis.Auth)
	a.session.Subscribe(func(s session.Snapshot) {
		// Cached pages belong to the previous member.
		if !s.SignedIn() {
			a.cache.Reset()
		}
	})

	// The completion API gets its own client so the marketplace token never leaks to it.
	aiClient, err := httpclient.New(httpclient.Options{
		BaseURL:    cfg.AIBaseURL,
		Timeout:    cfg.RequestTimeout,
		HTTPClient: o.transport,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.suggester = pricing.NewSuggester(aiClient, cfg.AIModel, cfg.AIAPIKey, a.notices)
	return a, nil
}

func (a *App) openStore(override storage.ProfileStore) (storage.ProfileStore, error) {
	if override != nil {
		return override, nil
	}
	if a.cfg.ProfileStore == config.StoreRedis {
		client, err := storage.NewRedisClient(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("app: open profile store: %w", err)
		}
		rs := storage.NewRedisStore(client, a.cfg.RedisSlot)
		a.closers = append(a.closers, rs.Close)
		return rs, nil
	}
	return storage.NewFileStore(a.cfg.ProfilePath), nil
}

// Close releases the profile store.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Session exposes the session manager.
func (a *App) Session() *session.Manager { return a.session }

// Notices exposes the notification queue.
func (a *App) Notices() *notify.Center { return a.notices }

type command struct {
	summary string
	run     func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"register":        {"create an account and sign in", (*App).cmdRegister},
	"login":           {"sign in", (*App).cmdLogin},
	"logout":          {"sign out", (*App).cmdLogout},
	"whoami":          {"show the signed-in member", (*App).cmdWhoami},
	"auctions":        {"list auctions (--mine for your own)", (*App).cmdAuctions},
	"auction-create":  {"open an auction on one of your listings", (*App).cmdAuctionCreate},
	"watch":           {"follow the ranked bids of an auction", (*App).cmdWatch},
	"bid":             {"place a bid: bid <auctionID> <amount>", (*App).cmdBid},
	"favorites":       {"list saved listings", (*App).cmdFavorites},
	"favorite-add":    {"save a listing", (*App).cmdFavoriteAdd},
	"favorite-remove": {"remove a saved listing by favorite id", (*App).cmdFavoriteRemove},
	"favorite-check":  {"check whether a listing is saved", (*App).cmdFavoriteCheck},
	"listing-create":  {"create a listing with images", (*App).cmdListingCreate},
	"price":           {"ask the AI assistant for a price range", (*App).cmdPrice},
	"pay":             {"create an order for a listing", (*App).cmdPay},
	"pay-link":        {"create a checkout link for an order", (*App).cmdPayLink},
	"users":           {"list member accounts (admin)", (*App).cmdUsers},
}

// Run executes one command. Notifications raised by it are printed to the
// error stream afterwards.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}

	utils.Debug("running command", map[string]any{"command": args[0]})
	err := cmd.run(a, ctx, args[1:])
	if a.flushNotices() > 0 && err != nil {
		return &reportedError{err: err}
	}
	return err
}

// reportedError marks a failure the user already saw as a notification.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already shown as a notification.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

func (a *App) usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: evmarket <command> [flags]\n\ncommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-16s %s\n", name, commands[name].summary)
	}
	fmt.Fprint(a.errOut, b.String())
}

func (a *App) flushNotices() int {
	ns := a.notices.Drain()
	if len(ns) > 0 {
		a.outMu.Lock()
		defer a.outMu.Unlock()
		_ = render.Notifications(a.errOut, ns)
	}
	return len(ns)
}

// requireSession verifies a restored session before a command that needs
// the member's identity.
func (a *App) requireSession(ctx context.Context) (session.Snapshot, error) {
	snap := a.session.Snapshot()
	switch snap.State {
	case session.Authenticated:
		return snap, nil
	case session.Unauthenticated:
		return snap, fmt.Errorf("app: %w: run login first", marketerrors.ErrUnauthorized)
	}

	snap, err := a.session.Verify(ctx)
	if err != nil {
		return snap, fmt.Errorf("app: verify session: %w", err)
	}
	return snap, nil
}

func (a *App) newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// print serializes writes from watch listeners and commands.
func (a *App) print(fn func(w io.Writer) error) error {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	return fn(a.out)
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
