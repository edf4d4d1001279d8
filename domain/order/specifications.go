package order

import (
	"strings"
	"time"

	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

// ByCustomerNameSpecification matches a case-insensitive substring of the
// customer name
type ByCustomerNameSpecification struct {
	Name string
}

func (spec ByCustomerNameSpecification) IsSatisfiedBy(o *Order) bool {
	return strings.Contains(strings.ToLower(o.CustomerName), strings.ToLower(spec.Name))
}

// ByPhoneSpecification matches a substring of the phone
type ByPhoneSpecification struct {
	Phone string
}

func (spec ByPhoneSpecification) IsSatisfiedBy(o *Order) bool {
	return o.Phone != "" && strings.Contains(o.Phone, spec.Phone)
}

// ByProductSpecification matches orders with a positive quantity of a
// product code
type ByProductSpecification struct {
	Code string
}

func (spec ByProductSpecification) IsSatisfiedBy(o *Order) bool {
	for _, it := range o.Items {
		if it.ProductCode == spec.Code && it.Quantity > 0 {
			return true
		}
	}
	return false
}

// ByDeliveryRangeSpecification matches delivery times within [Start, End].
// Either bound may be zero, meaning unbounded. Orders without a delivery
// time never match a bounded range.
type ByDeliveryRangeSpecification struct {
	Start time.Time
	End   time.Time
}

func (spec ByDeliveryRangeSpecification) IsSatisfiedBy(o *Order) bool {
	if o.DeliveryAt.IsZero() {
		return spec.Start.IsZero() && spec.End.IsZero()
	}
	if !spec.Start.IsZero() && o.DeliveryAt.Before(spec.Start) {
		return false
	}
	if !spec.End.IsZero() && o.DeliveryAt.After(spec.End) {
		return false
	}
	return true
}

// NewSearchSpecification combines the specifications for every present
// criteria field. Bounds are used exactly as given.
func NewSearchSpecification(c FilterCriteria) shared.Specification[*Order] {
	var specs []shared.Specification[*Order]
	if name := strings.TrimSpace(c.CustomerName); name != "" {
		specs = append(specs, ByCustomerNameSpecification{Name: name})
	}
	if phone := strings.TrimSpace(c.Phone); phone != "" {
		specs = append(specs, ByPhoneSpecification{Phone: phone})
	}
	if code := strings.TrimSpace(c.ProductKey); code != "" {
		specs = append(specs, ByProductSpecification{Code: strings.ToUpper(code)})
	}
	if c.DateFrom != nil || c.DateTo != nil {
		r := ByDeliveryRangeSpecification{}
		if c.DateFrom != nil {
			r.Start = *c.DateFrom
		}
		if c.DateTo != nil {
			r.End = *c.DateTo
		}
		specs = append(specs, r)
	}
	return shared.And(specs...)
}
