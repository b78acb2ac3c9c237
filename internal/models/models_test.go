package models

import (
	"errors"
	"testing"
)

func TestDecodeItems(t *testing.T) {
	tx := Transaction{Items: []byte(`[{"menuItem":{"id":"1","name":"Nasi Putih","price":5000,"category":"makanan"},"quantity":2}]`)}

	lines, err := tx.DecodeItems()
	if err != nil {
		t.Fatalf("DecodeItems: %v", err)
	}
	if len(lines) != 1 || lines[0].MenuItem.ID != "1" || lines[0].Quantity != 2 {
		t.Errorf("lines = %+v", lines)
	}
}

func TestDecodeItemsFailsClosed(t *testing.T) {
	cases := map[string]string{
		"not json":          `{"oops"`,
		"wrong shape":       `{"menuItem":{}}`,
		"missing id":        `[{"menuItem":{"name":"x","price":100},"quantity":1}]`,
		"zero quantity":     `[{"menuItem":{"id":"1","price":100},"quantity":0}]`,
		"negative price":    `[{"menuItem":{"id":"1","price":-1},"quantity":1}]`,
		"negative quantity": `[{"menuItem":{"id":"1","price":100},"quantity":-3}]`,
	}

	for name, raw := range cases {
		tx := Transaction{Items: []byte(raw)}
		if _, err := tx.DecodeItems(); !errors.Is(err, ErrMalformedItems) {
			t.Errorf("%s: expected ErrMalformedItems, got %v", name, err)
		}
	}
}

func TestPaymentMethodValid(t *testing.T) {
	if !PaymentTunai.Valid() || !PaymentTransfer.Valid() {
		t.Error("known methods rejected")
	}
	if PaymentMethod("kartu").Valid() || PaymentMethod("").Valid() {
		t.Error("unknown method accepted")
	}
}
