// Package money formats budgets and prices for display.
//
// Formatters are keyed by locale and ISO currency code and kept in a small
// least-recently-used cache owned by whoever needs formatting; there is no
// package level state.
package money

import (
	"container/list"
	"strings"
	"sync"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCacheSize is used when NewCache is given a non-positive size.
const DefaultCacheSize = 16

// Key identifies a formatter.
type Key struct {
	Locale   string
	Currency string
}

// NewKey normalises a locale and currency pair.
func NewKey(locale, cur string) Key {
	return Key{
		Locale:   strings.TrimSpace(locale),
		Currency: strings.ToUpper(strings.TrimSpace(cur)),
	}
}

// Formatter renders amounts in one currency for one locale.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
	valid   bool
	code    string
}

// NewFormatter builds a formatter. Unparseable locales fall back to English;
// unknown currency codes are printed verbatim after the number.
func NewFormatter(k Key) *Formatter {
	tag, err := language.Parse(k.Locale)
	if err != nil {
		tag = language.English
	}
	f := &Formatter{printer: message.NewPrinter(tag), code: k.Currency}
	if unit, err := currency.ParseISO(k.Currency); err == nil {
		f.unit, f.valid = unit, true
	}
	return f
}

// Format renders amount with the currency symbol.
func (f *Formatter) Format(amount float64) string {
	if !f.valid {
		if f.code == "" {
			return f.printer.Sprintf("%.2f", amount)
		}
		return f.printer.Sprintf("%.2f %s", amount, f.code)
	}
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(amount)))
}

type entry struct {
	key Key
	f   *Formatter
}

// Cache is a bounded LRU of formatters.
type Cache struct {
	mu    sync.Mutex
	size  int
	order *list.List
	items map[Key]*list.Element
}

func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{size: size, order: list.New(), items: make(map[Key]*list.Element, size)}
}

// Get returns the formatter for k, building it on a miss and evicting the
// least recently used one when the cache is full.
func (c *Cache) Get(k Key) *Formatter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[k]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry).f
	}
	f := NewFormatter(k)
	c.items[k] = c.order.PushFront(&entry{key: k, f: f})
	if c.order.Len() > c.size {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
	return f
}

// Format is shorthand for Get(NewKey(locale, cur)).Format(amount).
func (c *Cache) Format(locale, cur string, amount float64) string {
	return c.Get(NewKey(locale, cur)).Format(amount)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
