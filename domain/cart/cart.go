// Package cart is the product cart of an order draft: one line per product
// code, merged on add, decremented on remove.
package cart

import (
	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

// Line one product in the cart. Quantity is always at least 1.
type Line struct {
	ProductCode string
	Description string
	UnitPrice   shared.Money
	Quantity    int
}

// Subtotal returns Quantity x UnitPrice
func (l Line) Subtotal() shared.Money {
	return l.UnitPrice.Mul(l.Quantity)
}

// Cart ordered list of lines. The zero value is an empty cart. Not safe for
// concurrent use; the screen object owning it serializes access.
type Cart struct {
	lines []Line
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// Add puts one unit of p in the cart. An existing line for the same code is
// incremented in place; otherwise a new line is appended.
func (c *Cart) Add(p catalog.Product) {
	for i := range c.lines {
		if c.lines[i].ProductCode == p.Code {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductCode: p.Code,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		Quantity:    1,
	})
}

// Remove takes one unit of code out of the cart, dropping the line when it
// reaches zero. Unknown codes are ignored.
func (c *Cart) Remove(code string) {
	for i := range c.lines {
		if c.lines[i].ProductCode != code {
			continue
		}
		if c.lines[i].Quantity > 1 {
			c.lines[i].Quantity--
			return
		}
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
}

// Total sums quantity x unit price over all lines.
func (c *Cart) Total() shared.Money {
	var total shared.Money
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Quantity returns the quantity of code, 0 when absent
func (c *Cart) Quantity(code string) int {
	for _, l := range c.lines {
		if l.ProductCode == code {
			return l.Quantity
		}
	}
	return 0
}

// Reset empties the cart
func (c *Cart) Reset() {
	c.lines = nil
}

// Restore replaces the contents with lines, typically rebuilt from an order
// being edited. Lines with a non-positive quantity are skipped, negative
// prices are clamped to zero and repeated codes are merged.
func (c *Cart) Restore(lines []Line) {
	c.lines = nil
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if l.UnitPrice.IsNegative() {
			l.UnitPrice = shared.Money{}
		}
		merged := false
		for i := range c.lines {
			if c.lines[i].ProductCode == l.ProductCode {
				c.lines[i].Quantity += l.Quantity
				merged = true
				break
			}
		}
		if !merged {
			c.lines = append(c.lines, l)
		}
	}
}
