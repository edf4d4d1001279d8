package order

import (
	"strings"
	"time"

	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

// FilterCriteria order search fields. Empty strings and nil dates are
// absent.
type FilterCriteria struct {
	CustomerName string
	Phone        string
	ProductKey   string
	DateFrom     *time.Time
	DateTo       *time.Time
}

// IsEmpty reports whether no field is set
func (c FilterCriteria) IsEmpty() bool {
	return strings.TrimSpace(c.CustomerName) == "" &&
		strings.TrimSpace(c.Phone) == "" &&
		strings.TrimSpace(c.ProductKey) == "" &&
		c.DateFrom == nil && c.DateTo == nil
}

// Normalized trims text fields, upper-cases the product key and widens the
// dates to whole days: DateFrom to the start of its day, DateTo to the end
// of its day.
func (c FilterCriteria) Normalized() FilterCriteria {
	out := FilterCriteria{
		CustomerName: strings.TrimSpace(c.CustomerName),
		Phone:        strings.TrimSpace(c.Phone),
		ProductKey:   catalog.NormalizeKey(c.ProductKey),
	}
	if c.DateFrom != nil {
		from := shared.StartOfDay(*c.DateFrom)
		out.DateFrom = &from
	}
	if c.DateTo != nil {
		to := shared.EndOfDay(*c.DateTo)
		out.DateTo = &to
	}
	return out
}
