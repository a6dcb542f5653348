package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dealerdash/dashboard-gateway/api"
	errs "github.com/dealerdash/dashboard-gateway/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*api.Client, *httptest.Server) {
	t.Helper()

	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	client, err := api.New(upstream.URL, func() string { return token })
	require.NoError(t, err)
	return client, upstream
}

func TestNoAuthorizationHeaderWhenTokenAbsent(t *testing.T) {
	var seen []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Values("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}, "")

	_, err := client.Countries(context.Background())
	require.NoError(t, err)

	// No header at all: never a literal "Bearer undefined" placeholder.
	require.Empty(t, seen)
}

func TestBearerHeaderAttachedWhenTokenPresent(t *testing.T) {
	var seen string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}, "tok-123")

	_, err := client.Cars(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", seen)
}

func TestNilTokenSourceSendsNoHeader(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Values("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(upstream.Close)

	client, err := api.New(upstream.URL, nil)
	require.NoError(t, err)

	_, err = client.Countries(context.Background())
	require.NoError(t, err)
}

func TestUnauthorizedClassification(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}, "stale-token")

		_, err := client.Expenses(context.Background())
		require.ErrorIs(t, err, errs.ErrUnauthorized)
	}
}

func TestRejectedClassificationCarriesStatusAndBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}, "tok")

	_, err := client.Inventory(context.Background())
	require.ErrorIs(t, err, errs.ErrRejected)

	var rejected *api.RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, http.StatusInternalServerError, rejected.Status)
	require.Contains(t, rejected.Body, "boom")
}

func TestUnreachableClassification(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // nothing listening anymore

	client, err := api.New(upstream.URL, nil)
	require.NoError(t, err)

	_, err = client.Countries(context.Background())
	require.ErrorIs(t, err, errs.ErrUnreachable)
}

func TestNoAutomaticRetry(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}, "tok")

	_, err := client.Cars(context.Background())
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestLoginSendsCredentialsAndDecodesUser(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"token":"tok-1","user":{"role":"manager","country":{"name":"Japan"}}}`))
	}, "")

	resp, err := client.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.Equal(t, "tok-1", resp.Token)
	require.Equal(t, "manager", resp.User.Role)
	require.Equal(t, "Japan", resp.User.CountryName())
}

func TestLoginWithoutCountry(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"tok-1","user":{"role":"admin"}}`))
	}, "")

	resp, err := client.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.Empty(t, resp.User.CountryName())
}

func TestListAcceptsBareArrayAndDataEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cars":
			_, _ = w.Write([]byte(`[{"id":1,"country_id":"3"}]`))
		case "/api/inventory":
			_, _ = w.Write([]byte(`{"data":[{"id":"5","car_id":1,"country_id":3}]}`))
		}
	}, "tok")

	cars, err := client.Cars(context.Background())
	require.NoError(t, err)
	require.Len(t, cars, 1)
	require.Equal(t, "3", cars[0].CountryRef())

	inventory, err := client.Inventory(context.Background())
	require.NoError(t, err)
	require.Len(t, inventory, 1)
	require.Equal(t, "3", inventory[0].CountryRef())
	require.Equal(t, api.FlexID("1"), inventory[0].CarID)
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := api.New("  ", nil)
	require.Error(t, err)
}
