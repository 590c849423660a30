package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKey(t *testing.T) {
	assert.Equal(t, Key{Locale: "en-GB", Currency: "GBP"}, NewKey(" en-GB ", "gbp "))
}

func TestFormatter_KnownCurrency(t *testing.T) {
	out := NewFormatter(NewKey("en", "EUR")).Format(12.5)
	assert.Contains(t, out, "€")
	assert.Contains(t, out, "12")
}

func TestFormatter_UnknownCurrency(t *testing.T) {
	assert.Equal(t, "3.50 ZZ", NewFormatter(NewKey("en", "ZZ")).Format(3.5))
	assert.Equal(t, "3.50", NewFormatter(NewKey("en", "")).Format(3.5))
}

func TestFormatter_BadLocaleFallsBack(t *testing.T) {
	out := NewFormatter(NewKey("not a locale!", "USD")).Format(1)
	assert.Contains(t, out, "1")
}

func TestCache_ReusesAndEvicts(t *testing.T) {
	c := NewCache(2)
	a := c.Get(NewKey("en", "EUR"))
	assert.Same(t, a, c.Get(NewKey("en", "eur")))

	c.Get(NewKey("en", "USD"))
	c.Get(NewKey("en", "EUR")) // touch
	c.Get(NewKey("de", "EUR")) // evicts en/USD
	assert.Equal(t, 2, c.Len())
	assert.Same(t, a, c.Get(NewKey("en", "EUR")))

	assert.Equal(t, DefaultCacheSize, NewCache(0).size)
}

func TestCache_Format(t *testing.T) {
	c := NewCache(4)
	assert.Equal(t, c.Get(NewKey("en", "USD")).Format(2), c.Format("en", "usd", 2))
	assert.Equal(t, 1, c.Len())
}
