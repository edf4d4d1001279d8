package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/keilahoriye/tilapiasuprememobile/domain/catalog"
	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
	"github.com/keilahoriye/tilapiasuprememobile/domain/user"
)

// flexID an identifier the server may send as a JSON number or string.
// It marshals as a number when numeric, null when empty.
type flexID string

func (id flexID) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = flexID(n.String())
	}
	return nil
}

// feeDTO a delivery fee read leniently: a string goes through
// shared.ParseFee and anything unparseable is zero.
type feeDTO shared.Money

func (f *feeDTO) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = feeDTO{}
			return nil
		}
		*f = feeDTO(shared.ParseFee(s))
		return nil
	}
	var m shared.Money
	if err := m.UnmarshalJSON(data); err != nil || m.IsNegative() {
		*f = feeDTO{}
		return nil
	}
	*f = feeDTO(m)
	return nil
}

// flexTime a timestamp sent either as a string or as a [y, m, d, h, mi, s]
// array. It keeps the string form for order.Normalize.
type flexTime string

func (t *flexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = ""
	case data[0] == '[':
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("dataEntrega: %w", err)
		}
		for len(parts) < 6 {
			parts = append(parts, 0)
		}
		*t = flexTime(fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d",
			parts[0], parts[1], parts[2], parts[3], parts[4], parts[5]))
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("dataEntrega: %w", err)
		}
		*t = flexTime(s)
	}
	return nil
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type userDTO struct {
	ID    flexID `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

func (d userDTO) toDomain() *user.User {
	return &user.User{ID: string(d.ID), Name: d.Nome, Email: d.Email}
}

type productDTO struct {
	Codigo    string       `json:"codigo"`
	Descricao string       `json:"descricao"`
	Preco     shared.Money `json:"preco"`
}

type customerDTO struct {
	ID       flexID `json:"id"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`
}

type itemDTO struct {
	Produto       string       `json:"produto"`
	Quantidade    int          `json:"quantidade"`
	PrecoUnitario shared.Money `json:"precoUnitario"`
	Subtotal      shared.Money `json:"subtotal"`
	Descricao     string       `json:"descricao"`
}

func (d itemDTO) toDomain() order.LineItem {
	return order.LineItem{
		ProductCode: strings.TrimSpace(d.Produto),
		Description: d.Descricao,
		Quantity:    d.Quantidade,
		UnitPrice:   d.PrecoUnitario,
		Subtotal:    d.Subtotal,
	}
}

// orderDTO every field any order endpoint has been seen to return
type orderDTO struct {
	ID          flexID       `json:"id"`
	ClienteID   flexID       `json:"clienteId"`
	NomeCliente string       `json:"nomeCliente"`
	Nome        string       `json:"nome"`
	Cliente     *customerDTO `json:"cliente"`
	Telefone    string       `json:"telefone"`
	Endereco    string       `json:"endereco"`
	DataEntrega flexTime     `json:"dataEntrega"`
	TaxaEntrega feeDTO       `json:"taxaEntrega"`
	Itens       []itemDTO    `json:"itens"`
}

func (d orderDTO) toRecord() order.Record {
	r := order.Record{
		ID:           string(d.ID),
		CustomerID:   string(d.ClienteID),
		CustomerName: d.NomeCliente,
		Name:         d.Nome,
		Phone:        d.Telefone,
		Address:      d.Endereco,
		DeliveryAt:   string(d.DataEntrega),
		DeliveryFee:  shared.Money(d.TaxaEntrega),
	}
	if d.Cliente != nil {
		r.Customer = &order.Customer{
			ID:      string(d.Cliente.ID),
			Name:    d.Cliente.Nome,
			Phone:   d.Cliente.Telefone,
			Address: d.Cliente.Endereco,
		}
	}
	if d.Itens != nil {
		r.Items = make([]order.LineItem, 0, len(d.Itens))
		for _, it := range d.Itens {
			r.Items = append(r.Items, it.toDomain())
		}
	}
	return r
}

type itemPayload struct {
	Produto       string       `json:"produto"`
	Quantidade    int          `json:"quantidade"`
	PrecoUnitario shared.Money `json:"precoUnitario"`
}

// createPayload the body of POST /pedidos/mobile: customer fields at the top
// level, no id
type createPayload struct {
	Nome        string        `json:"nome"`
	Telefone    string        `json:"telefone"`
	Endereco    string        `json:"endereco"`
	DataEntrega string        `json:"dataEntrega"`
	TaxaEntrega shared.Money  `json:"taxaEntrega"`
	Itens       []itemPayload `json:"itens"`
}

// updatePayload the body of PUT /pedidos/{id}: id plus a nested cliente
type updatePayload struct {
	ID          flexID        `json:"id"`
	Cliente     customerDTO   `json:"cliente"`
	DataEntrega string        `json:"dataEntrega"`
	TaxaEntrega shared.Money  `json:"taxaEntrega"`
	Itens       []itemPayload `json:"itens"`
}

func itemsPayload(d order.Draft) []itemPayload {
	items := make([]itemPayload, 0, len(d.Lines))
	for _, l := range d.Lines {
		items = append(items, itemPayload{
			Produto:       l.ProductCode,
			Quantidade:    l.Quantity,
			PrecoUnitario: l.UnitPrice,
		})
	}
	return items
}

func newCreatePayload(d order.Draft) createPayload {
	return createPayload{
		Nome:        strings.TrimSpace(d.CustomerName),
		Telefone:    strings.TrimSpace(d.Phone),
		Endereco:    strings.TrimSpace(d.Address),
		DataEntrega: shared.FormatWireTime(d.DeliveryAt),
		TaxaEntrega: d.DeliveryFee,
		Itens:       itemsPayload(d),
	}
}

func newUpdatePayload(id string, d order.Draft) updatePayload {
	return updatePayload{
		ID: flexID(id),
		Cliente: customerDTO{
			ID:       flexID(d.CustomerID),
			Nome:     strings.TrimSpace(d.CustomerName),
			Telefone: strings.TrimSpace(d.Phone),
			Endereco: strings.TrimSpace(d.Address),
		},
		DataEntrega: shared.FormatWireTime(d.DeliveryAt),
		TaxaEntrega: d.DeliveryFee,
		Itens:       itemsPayload(d),
	}
}

func productsToDomain(in []productDTO) []catalog.Product {
	out := make([]catalog.Product, 0, len(in))
	for _, p := range in {
		out = append(out, catalog.Product{
			Code:        strings.TrimSpace(p.Codigo),
			Description: p.Descricao,
			UnitPrice:   p.Preco,
		})
	}
	return out
}
