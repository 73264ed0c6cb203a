package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/evlive/admin-console/internal/models"
)

// SupportedCurrencies is the fixed set an event can price tickets in.
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "NGN", "KES"}

// PriceEntry is one row of the repeatable price sub-form.
type PriceEntry struct {
	Currency string
	Amount   string
}

// PriceList is the repeatable sub-form. Each entry must use a distinct
// currency: adding an entry auto-picks the first currency no other
// entry uses, and a currency held by another entry is unselectable.
type PriceList struct {
	Entries []PriceEntry
	// Free marks the event as intentionally unpriced. All-zero
	// amounts are only accepted when this is set; without it at
	// least one entry must carry a positive amount.
	Free bool
}

// Add appends an entry on the first unused currency. Returns false
// when every supported currency is already taken.
func (l *PriceList) Add() bool {
	for _, currency := range SupportedCurrencies {
		if !l.used(currency, -1) {
			l.Entries = append(l.Entries, PriceEntry{Currency: currency, Amount: "0"})
			return true
		}
	}
	return false
}

// Remove deletes the entry at index.
func (l *PriceList) Remove(index int) {
	if index < 0 || index >= len(l.Entries) {
		return
	}
	l.Entries = append(l.Entries[:index], l.Entries[index+1:]...)
}

// Available returns the currencies the entry at index may select:
// its own current currency plus every unused one, in the supported
// order.
func (l *PriceList) Available(index int) []string {
	var choices []string
	for _, currency := range SupportedCurrencies {
		if !l.used(currency, index) {
			choices = append(choices, currency)
		}
	}
	return choices
}

func (l *PriceList) used(currency string, exceptIndex int) bool {
	for i, entry := range l.Entries {
		if i == exceptIndex {
			continue
		}
		if entry.Currency == currency {
			return true
		}
	}
	return false
}

// Validate checks amounts, currency uniqueness, and the free-event
// rule: a draft not marked free needs at least one positive amount,
// and a draft marked free must be all zeros.
func (l *PriceList) Validate() Errors {
	errs := Errors{}
	if len(l.Entries) == 0 {
		errs["prices"] = "Add at least one price"
		return errs
	}

	hasPositive := false
	for i, entry := range l.Entries {
		field := fmt.Sprintf("prices[%d]", i)
		amount, err := strconv.ParseFloat(strings.TrimSpace(entry.Amount), 64)
		if err != nil {
			errs[field] = "Enter a valid amount"
			continue
		}
		if amount < 0 {
			errs[field] = "Amount cannot be negative"
		}
		if amount > 0 {
			hasPositive = true
		}
		if l.used(entry.Currency, i) {
			errs[field] = "Currency already used by another entry"
		}
	}

	if l.Free && hasPositive {
		errs["prices"] = "A free event cannot carry a positive price"
	}
	if !l.Free && !hasPositive {
		errs["prices"] = "At least one price must be greater than zero, or mark the event as free"
	}

	return errs
}

// IsFree reports whether every entry parses to zero.
func (l *PriceList) IsFree() bool {
	for _, entry := range l.Entries {
		amount, err := strconv.ParseFloat(strings.TrimSpace(entry.Amount), 64)
		if err != nil || amount > 0 {
			return false
		}
	}
	return true
}

// Models converts the entries to the wire shape.
func (l *PriceList) Models() []models.Price {
	prices := make([]models.Price, 0, len(l.Entries))
	for _, entry := range l.Entries {
		amount, _ := strconv.ParseFloat(strings.TrimSpace(entry.Amount), 64)
		prices = append(prices, models.Price{Currency: entry.Currency, Amount: amount})
	}
	return prices
}
