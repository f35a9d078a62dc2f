package parse

import (
	"testing"
	"time"
)

var saleDate = time.Date(2025, 1, 13, 3, 13, 19, 0, time.UTC)

func TestSale(t *testing.T) {
	text := "Gift Sold\n\nMagic Potion #42 (url)\n\nPrice: 7.25 TON"

	obs, ok := Sale(text, 1001, saleDate)
	if !ok {
		t.Fatal("Sale() rejected a valid sale notice")
	}
	if obs.ItemName != "Magic Potion #42" {
		t.Errorf("ItemName = %q, want %q", obs.ItemName, "Magic Potion #42")
	}
	if obs.PriceTON != 7.25 {
		t.Errorf("PriceTON = %v, want 7.25", obs.PriceTON)
	}
	if obs.MessageID != 1001 {
		t.Errorf("MessageID = %d, want 1001", obs.MessageID)
	}
	if !obs.Date.Equal(saleDate) {
		t.Errorf("Date = %v, want %v", obs.Date, saleDate)
	}
}

func TestSale_NoParenthesis(t *testing.T) {
	text := "Gift Sold\nVintage Cigar #17369\nPrice: 5,5 TON"

	obs, ok := Sale(text, 7, saleDate)
	if !ok {
		t.Fatal("Sale() rejected a valid sale notice")
	}
	if obs.ItemName != "Vintage Cigar #17369" {
		t.Errorf("ItemName = %q, want full line", obs.ItemName)
	}
	if obs.PriceTON != 5.5 {
		t.Errorf("PriceTON = %v, want 5.5 (comma decimal)", obs.PriceTON)
	}
}

func TestSale_Reject(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no marker", "Something Sold\nItem\nPrice: 1 TON"},
		{"marker not on first line", "Hello\nGift Sold\nItem\nPrice: 1 TON"},
		{"too few lines", "Gift Sold\nItem"},
		{"no price", "Gift Sold\nItem (url)\nCost: 5 TON"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := Sale(tc.text, 1, saleDate); ok {
				t.Errorf("Sale(%q) accepted, want rejection", tc.text)
			}
		})
	}
}

func TestSale_FirstPriceWins(t *testing.T) {
	text := "Gift Sold\nItem A\nPrice: 3.5 TON\nPrice: 9.9 TON"

	obs, ok := Sale(text, 1, saleDate)
	if !ok {
		t.Fatal("Sale() rejected")
	}
	if obs.PriceTON != 3.5 {
		t.Errorf("PriceTON = %v, want first match 3.5", obs.PriceTON)
	}
}
