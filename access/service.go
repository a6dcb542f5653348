// Package access ties the session store, route guard, scope resolver and
// upstream client together into the operations the dashboard pages actually
// perform: log in, log out, decide a navigation, and load role-scoped record
// lists.
package access

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dealerdash/dashboard-gateway/api"
	"github.com/dealerdash/dashboard-gateway/guard"
	errs "github.com/dealerdash/dashboard-gateway/internal/errors"
	"github.com/dealerdash/dashboard-gateway/scope"
	"github.com/dealerdash/dashboard-gateway/session"
)

// Service orchestrates the access layer.
type Service struct {
	store   *session.Store
	client  *api.Client
	nowTime func() time.Time // nowTime function (injectable for testing)
	log     zerolog.Logger
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func WithLogger(log zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// NewService initializes the access service with its required dependencies.
func NewService(store *session.Store, client *api.Client, options ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("[NewService] session store is required")
	}
	if client == nil {
		return nil, errors.New("[NewService] API client is required")
	}

	s := &Service{
		store:   store,
		client:  client,
		nowTime: time.Now,
		log:     zerolog.Nop(),
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Session returns a snapshot of the current session.
func (s *Service) Session() session.Session {
	return s.store.Get()
}

// Login authenticates against the upstream API and persists the session.
// It returns the landing path for the user's role.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Login] upstream login")
	}
	if resp.Token == "" {
		return "", errors.New("[Service.Login] upstream returned no token")
	}

	role := session.RoleType(resp.User.Role)
	if err := s.store.Set(resp.Token, role, resp.User.CountryName()); err != nil {
		return "", errors.Wrap(err, "[Service.Login] persist session")
	}

	s.log.Info().Str("role", string(role)).Msg("logged in")
	return role.HomePath(), nil
}

// Logout invalidates the token upstream and clears the local session. The
// local session is cleared even when the upstream call fails: a logout that
// leaves credentials behind is worse than an orphaned server-side token.
func (s *Service) Logout(ctx context.Context) error {
	upstreamErr := s.client.Logout(ctx)

	if err := s.store.Clear(); err != nil {
		return errors.Wrap(err, "[Service.Logout] clear session")
	}

	if upstreamErr != nil && !errs.Is(upstreamErr, errs.ErrUnauthorized) {
		s.log.Warn().Err(upstreamErr).Msg("upstream logout failed, session cleared locally")
	}
	return nil
}

// Guard resolves the navigation decision for a path against the current
// session. A session whose token carries a lapsed JWT exp claim is cleared
// first, so the decision for it is the unauthenticated one.
func (s *Service) Guard(path string) guard.Decision {
	sess := s.store.Get()
	if sess.Authenticated() && session.TokenExpired(sess.Token, s.nowTime()) {
		if err := s.store.Clear(); err != nil {
			s.log.Warn().Err(err).Msg("failed clearing expired session")
		}
		sess = s.store.Get()
	}
	return guard.Evaluate(path, sess)
}

// LoadScope fetches the country list and resolves the current session's
// visibility scope against it.
func (s *Service) LoadScope(ctx context.Context) (scope.Scope, error) {
	sess := s.store.Get()

	countries, err := s.client.Countries(ctx)
	if err != nil {
		return scope.Scope{}, s.classify(errors.Wrap(err, "[Service.LoadScope] countries"))
	}
	if err := ctx.Err(); err != nil {
		return scope.Scope{}, err
	}

	return scope.Resolve(sess.Role, sess.HomeCountry, scopeCountries(countries)), nil
}

// ScopedCars returns the car profiles the current role may see.
func (s *Service) ScopedCars(ctx context.Context) ([]api.Car, error) {
	return scopedList(ctx, s, s.client.Cars)
}

// ScopedExpenses returns the expense entries the current role may see.
func (s *Service) ScopedExpenses(ctx context.Context) ([]api.Expense, error) {
	return scopedList(ctx, s, s.client.Expenses)
}

// ScopedInventory returns the inventory records the current role may see.
func (s *Service) ScopedInventory(ctx context.Context) ([]api.InventoryItem, error) {
	return scopedList(ctx, s, s.client.Inventory)
}

// scopedList fetches the country list and a record list concurrently, waits
// for both to settle, and only then resolves the scope and filters. Running
// the predicate against a not-yet-loaded country list is the bug class this
// ordering exists to prevent.
func scopedList[T scope.Record](ctx context.Context, s *Service, fetch func(context.Context) ([]T, error)) ([]T, error) {
	sess := s.store.Get()

	var (
		countries []api.Country
		records   []T
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.client.Countries(gctx)
		if err != nil {
			return err
		}
		countries = list
		return nil
	})
	g.Go(func() error {
		list, err := fetch(gctx)
		if err != nil {
			return err
		}
		records = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, s.classify(errors.Wrap(err, "[Service.scopedList] fetch"))
	}

	// A canceled page must never apply a late-arriving response to a stale
	// scope; discard the results instead.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved := scope.Resolve(sess.Role, sess.HomeCountry, scopeCountries(countries))
	if resolved.Unresolved() {
		s.log.Debug().Str("home_country", sess.HomeCountry).Msg("home country not in fetched list, scope is empty")
	}
	return scope.Filter(resolved, records), nil
}

// classify applies the session-clearing side effect of an unauthorized
// upstream response before handing the error back.
func (s *Service) classify(err error) error {
	if errs.Is(err, errs.ErrUnauthorized) {
		if clearErr := s.store.Clear(); clearErr != nil {
			s.log.Warn().Err(clearErr).Msg("failed clearing session after 401")
		}
	}
	return err
}

func scopeCountries(list []api.Country) []scope.Country {
	out := make([]scope.Country, 0, len(list))
	for _, c := range list {
		out = append(out, c.Scoped())
	}
	return out
}
