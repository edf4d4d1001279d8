package backend

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
)

// ============================================================================
// Request DTOs
// ============================================================================

// LoginRequest body of POST /auth/login
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// ItemRequest one order line as sent by the client. precoUnitario is
// optional; the catalog price is used when it is absent or zero.
type ItemRequest struct {
	Produto       string       `json:"produto" binding:"required"`
	Quantidade    int          `json:"quantidade"`
	PrecoUnitario shared.Money `json:"precoUnitario"`
}

// CreateOrderRequest body of POST /pedidos/mobile: customer fields at the
// top level
type CreateOrderRequest struct {
	Nome        string        `json:"nome"`
	Telefone    string        `json:"telefone"`
	Endereco    string        `json:"endereco"`
	DataEntrega string        `json:"dataEntrega"`
	TaxaEntrega shared.Money  `json:"taxaEntrega"`
	Itens       []ItemRequest `json:"itens" binding:"dive"`
}

// CustomerRequest the nested cliente of an update
type CustomerRequest struct {
	ID       ID     `json:"id"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`
}

// UpdateOrderRequest body of PUT /pedidos/{id}
type UpdateOrderRequest struct {
	ID          ID               `json:"id"`
	Cliente     *CustomerRequest `json:"cliente" binding:"required"`
	DataEntrega string           `json:"dataEntrega"`
	TaxaEntrega shared.Money     `json:"taxaEntrega"`
	Itens       []ItemRequest    `json:"itens" binding:"dive"`
}

// SearchRequest query of GET /pedidos/buscar
type SearchRequest struct {
	Cliente  string `form:"cliente"`
	Telefone string `form:"telefone"`
	Produto  string `form:"produto"`
	Inicio   string `form:"inicio"`
	Fim      string `form:"fim"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// ProductResponse one entry of GET /produtos
type ProductResponse struct {
	Codigo    string       `json:"codigo"`
	Descricao string       `json:"descricao"`
	Preco     shared.Money `json:"preco"`
}

// UserResponse the user returned by a successful login
type UserResponse struct {
	ID    ID     `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

// CustomerResponse the cliente nested in a full order
type CustomerResponse struct {
	ID       ID     `json:"id"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`
}

// ItemResponse one order line
type ItemResponse struct {
	Produto       string       `json:"produto"`
	Descricao     string       `json:"descricao"`
	Quantidade    int          `json:"quantidade"`
	PrecoUnitario shared.Money `json:"precoUnitario"`
	Subtotal      shared.Money `json:"subtotal"`
}

// OrderResponse a full order with its nested customer, returned by get,
// create and update
type OrderResponse struct {
	ID          ID               `json:"id"`
	Cliente     CustomerResponse `json:"cliente"`
	DataEntrega *string          `json:"dataEntrega"`
	TaxaEntrega shared.Money     `json:"taxaEntrega"`
	Itens       []ItemResponse   `json:"itens"`
}

// OrderSummaryResponse the flat order shape of the list and search endpoints
type OrderSummaryResponse struct {
	ID          ID             `json:"id"`
	NomeCliente string         `json:"nomeCliente"`
	Telefone    string         `json:"telefone"`
	Endereco    string         `json:"endereco"`
	DataEntrega *string        `json:"dataEntrega"`
	TaxaEntrega shared.Money   `json:"taxaEntrega"`
	Itens       []ItemResponse `json:"itens"`
}

// ============================================================================
// ID
// ============================================================================

// ID an entity id. Numeric ids travel as JSON numbers, the empty id as null;
// both numbers and strings are accepted on input.
type ID string

func (id ID) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}
