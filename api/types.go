package api

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/dealerdash/dashboard-gateway/scope"
)

// FlexID is an identifier that travels upstream inconsistently as a JSON
// number or string. It always decodes to its string form so comparisons
// never false-negative on 3 vs "3".
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

func (id FlexID) MarshalJSON() ([]byte, error) {
	// Re-emit numeric ids as numbers, everything else as strings. Forms
	// that parse but don't round-trip canonically ("007", "-0") must stay
	// quoted: their bare bytes are not valid JSON.
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Country as served by GET /api/countries.
type Country struct {
	ID   FlexID `json:"id"`
	Name string `json:"name"`
}

// Scoped converts to the resolver's country representation.
func (c Country) Scoped() scope.Country {
	return scope.Country{ID: string(c.ID), Name: c.Name}
}

// Car is a vehicle profile record.
type Car struct {
	ID        FlexID `json:"id"`
	RecNo     string `json:"rec_no,omitempty"`
	Make      string `json:"make,omitempty"`
	Model     string `json:"model,omitempty"`
	Price     string `json:"price,omitempty"`
	CountryID FlexID `json:"country_id"`
}

func (c Car) CountryRef() string { return string(c.CountryID) }

// Expense is a financial entry charged against a branch country.
type Expense struct {
	ID        FlexID `json:"id"`
	Category  string `json:"category,omitempty"`
	Details   string `json:"details,omitempty"`
	Amount    string `json:"amount,omitempty"`
	CountryID FlexID `json:"country_id"`
}

func (e Expense) CountryRef() string { return string(e.CountryID) }

// InventoryItem is a stocked vehicle with its pricing details.
type InventoryItem struct {
	ID              FlexID `json:"id"`
	CarID           FlexID `json:"car_id"`
	Price           string `json:"price,omitempty"`
	Details         string `json:"details,omitempty"`
	CurrentCurrency string `json:"current_currency,omitempty"`
	ExchangeRate    string `json:"exchange_rate,omitempty"`
	CountryID       FlexID `json:"country_id"`
}

func (i InventoryItem) CountryRef() string { return string(i.CountryID) }

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the upstream's successful login payload. Country may be
// absent for users with no branch assignment.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type LoginUser struct {
	Role    string        `json:"role"`
	Country *LoginCountry `json:"country,omitempty"`
}

type LoginCountry struct {
	Name string `json:"name"`
}

// CountryName returns the user's home-country display name, or "" when the
// upstream sent none.
func (u LoginUser) CountryName() string {
	if u.Country == nil {
		return ""
	}
	return u.Country.Name
}

// listPayload tolerates both a bare JSON array and the {"data": [...]}
// envelope some upstream endpoints use.
type listPayload[T any] struct {
	Items []T
}

func (l *listPayload[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &l.Items)
	}
	var envelope struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	l.Items = envelope.Data
	return nil
}
