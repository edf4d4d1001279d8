package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

var (
	file    = catalog.Product{Code: "FILE", Description: "Filé de Tilápia - 1kg", UnitPrice: shared.MustParseMoney("53.90")}
	tiras   = catalog.Product{Code: "TIRAS", Description: "Filé de Tilápia em tiras", UnitPrice: shared.MustParseMoney("24.90")}
	tempero = catalog.Product{Code: "TEMPERO", Description: "Tempero Supreme", UnitPrice: shared.MustParseMoney("3.00")}
)

func TestAddMergesByCode(t *testing.T) {
	c := New()
	c.Add(file)
	c.Add(tiras)
	c.Add(file)

	lines := c.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, "FILE", lines[0].ProductCode)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "TIRAS", lines[1].ProductCode)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(file)
	c.Add(file)
	c.Add(tiras)

	c.Remove("FILE")
	assert.Equal(t, 1, c.Quantity("FILE"))

	c.Remove("FILE")
	assert.Equal(t, 0, c.Quantity("FILE"))
	assert.Equal(t, 1, c.Len())

	before := c.Lines()
	c.Remove("COMBO")
	assert.Equal(t, before, c.Lines())
}

func TestTotal(t *testing.T) {
	c := New()
	assert.True(t, c.Total().IsZero())

	c.Add(file)
	c.Add(file)
	c.Add(tempero)
	// 2 x 53.90 + 3.00
	assert.True(t, c.Total().Equals(shared.MustParseMoney("110.80")))

	var sum shared.Money
	for _, l := range c.Lines() {
		sum = sum.Add(l.UnitPrice.Mul(l.Quantity))
	}
	assert.True(t, sum.Equals(c.Total()))
	assert.False(t, c.Total().IsNegative())
}

func TestAddThenRemoveRestoresCart(t *testing.T) {
	cases := map[string][]catalog.Product{
		"empty":        nil,
		"new product":  {tiras},
		"merged line":  {file, tiras},
		"repeated add": {file, file, tempero},
	}
	for name, start := range cases {
		t.Run(name, func(t *testing.T) {
			c := New()
			for _, p := range start {
				c.Add(p)
			}
			before := c.Lines()

			c.Add(file)
			c.Remove(file.Code)

			assert.Equal(t, before, c.Lines())
		})
	}
}

func TestRestore(t *testing.T) {
	c := New()
	c.Add(tempero)
	c.Restore([]Line{
		{ProductCode: "FILE", Description: "Filé", UnitPrice: shared.MustParseMoney("53.90"), Quantity: 2},
		{ProductCode: "TIRAS", Description: "Tiras", UnitPrice: shared.MustParseMoney("24.90"), Quantity: 0},
		{ProductCode: "FILE", Description: "Filé", UnitPrice: shared.MustParseMoney("53.90"), Quantity: 1},
		{ProductCode: "X", Description: "Item Desconhecido", UnitPrice: shared.MustParseMoney("-1"), Quantity: 1},
	})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, c.Quantity("FILE"))
	assert.Equal(t, 0, c.Quantity("TEMPERO"))
	assert.True(t, c.Lines()[1].UnitPrice.IsZero())

	c.Reset()
	assert.True(t, c.IsEmpty())
}
