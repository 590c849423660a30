package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/listkeeper/internal/models"
)

// codec converts payloads to and from the one-line text form used by "add",
// "edit" and "rewrite".
type codec[P models.Payload[P]] struct {
	parse  func(line string) P
	encode func(p P) string
	render func(p P, money func(float64) string) string
	// price is nil for payloads without a price.
	price func(p P, price float64) P
	// total sums the list for the footer; nil hides it.
	total func(items []models.ItemSnapshot[P]) float64
}

var taskCodec = codec[models.TaskPayload]{
	parse: func(line string) models.TaskPayload {
		return models.TaskPayload{Text: strings.TrimSpace(line)}
	},
	encode: func(p models.TaskPayload) string { return p.Text },
	render: func(p models.TaskPayload, _ func(float64) string) string { return p.Text },
}

// shoppingCodec reads "name [xQTY[UNIT]] [@PRICE] [#CATEGORY]", e.g.
// "Olive oil x2bottle @7.5 #pantry". Tokens that do not parse become part of
// the name.
var shoppingCodec = codec[models.ShoppingPayload]{
	parse:  parseShopping,
	encode: encodeShopping,
	render: func(p models.ShoppingPayload, money func(float64) string) string {
		var b strings.Builder
		b.WriteString(p.Name)
		if p.Quantity > 0 {
			fmt.Fprintf(&b, " x%s%s", formatNumber(p.Quantity), p.Unit)
		}
		if p.Price > 0 {
			fmt.Fprintf(&b, " @ %s", money(p.Price))
			if p.Quantity > 0 {
				fmt.Fprintf(&b, " = %s", money(p.Total()))
			}
		}
		if p.Category != "" {
			fmt.Fprintf(&b, " [%s]", p.Category)
		}
		if p.ActualQuantity > 0 {
			fmt.Fprintf(&b, " (bought %s)", formatNumber(p.ActualQuantity))
		}
		return b.String()
	},
	price: func(p models.ShoppingPayload, price float64) models.ShoppingPayload {
		p.Price = price
		return p
	},
	total: func(items []models.ItemSnapshot[models.ShoppingPayload]) float64 {
		var sum float64
		for _, it := range items {
			sum += it.Payload.Total()
		}
		return sum
	},
}

func parseShopping(line string) models.ShoppingPayload {
	var (
		p    models.ShoppingPayload
		name []string
	)
	for _, tok := range strings.Fields(line) {
		switch {
		case len(tok) > 1 && tok[0] == '@':
			if v, err := strconv.ParseFloat(tok[1:], 64); err == nil && models.ValidAmount(v) {
				p.Price = v
				continue
			}
		case len(tok) > 1 && tok[0] == '#':
			p.Category = tok[1:]
			continue
		case len(tok) > 1 && tok[0] == 'x':
			if qty, unit, ok := splitQuantity(tok[1:]); ok {
				p.Quantity, p.Unit = qty, unit
				continue
			}
		}
		name = append(name, tok)
	}
	p.Name = strings.Join(name, " ")
	return p
}

// splitQuantity splits "1.5kg" into 1.5 and "kg".
func splitQuantity(s string) (float64, string, bool) {
	end := 0
	for end < len(s) && (s[end] == '.' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	if end == 0 {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || !models.ValidAmount(v) {
		return 0, "", false
	}
	return v, s[end:], true
}

func encodeShopping(p models.ShoppingPayload) string {
	parts := []string{p.Name}
	if p.Quantity > 0 {
		parts = append(parts, "x"+formatNumber(p.Quantity)+p.Unit)
	}
	if p.Price > 0 {
		parts = append(parts, "@"+formatNumber(p.Price))
	}
	if p.Category != "" {
		parts = append(parts, "#"+p.Category)
	}
	return strings.Join(parts, " ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// splitMarker strips a leading "[x]" or "[ ]" from a rewrite line.
func splitMarker(line string) (done bool, rest string) {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "[x]"), strings.HasPrefix(line, "[X]"):
		return true, strings.TrimSpace(line[3:])
	case strings.HasPrefix(line, "[ ]"):
		return false, strings.TrimSpace(line[3:])
	}
	return false, line
}

func marker(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
