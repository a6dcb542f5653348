package api_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dealerdash/dashboard-gateway/api"
)

func TestFlexIDDecodesNumbersAndStrings(t *testing.T) {
	var car api.Car
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"country_id":"3"}`), &car))
	require.Equal(t, api.FlexID("3"), car.ID)
	require.Equal(t, "3", car.CountryRef())

	var expense api.Expense
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x-9","country_id":7}`), &expense))
	require.Equal(t, api.FlexID("x-9"), expense.ID)
	require.Equal(t, "7", expense.CountryRef())
}

func TestFlexIDMarshalPreservesNumericForm(t *testing.T) {
	data, err := json.Marshal(api.FlexID("3"))
	require.NoError(t, err)
	require.Equal(t, "3", string(data))

	data, err = json.Marshal(api.FlexID("x-9"))
	require.NoError(t, err)
	require.Equal(t, `"x-9"`, string(data))
}

func TestFlexIDMarshalQuotesNonCanonicalNumericForms(t *testing.T) {
	// "007" parses as 7 but its bare bytes are not valid JSON; such ids
	// must round-trip quoted, not break record encoding.
	for _, id := range []string{"007", "-0", "+3", "0x1f"} {
		data, err := json.Marshal(api.FlexID(id))
		require.NoError(t, err, id)
		require.Equal(t, `"`+id+`"`, string(data), id)
	}
}

func TestCarWithLeadingZeroIDRoundTrips(t *testing.T) {
	var car api.Car
	require.NoError(t, json.Unmarshal([]byte(`{"id":"007","country_id":3}`), &car))

	data, err := json.Marshal(car)
	require.NoError(t, err)

	var decoded api.Car
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, api.FlexID("007"), decoded.ID)
	require.Equal(t, "3", decoded.CountryRef())
}

func TestCountryScopedNormalizesID(t *testing.T) {
	var country api.Country
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"Japan"}`), &country))

	scoped := country.Scoped()
	require.Equal(t, "3", scoped.ID)
	require.Equal(t, "Japan", scoped.Name)
}
