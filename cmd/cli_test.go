package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliRun struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, baseURL, stdin string, args ...string) cliRun {
	t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--base-url", baseURL, "--timezone", "UTC", "--log-level", "error"}, args...)
	code := NewCLI(strings.NewReader(stdin), &out, &errOut).Execute(context.Background(), full)
	return cliRun{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestCLI_Login(t *testing.T) {
	srv := startFake(t, testConfig(t), false)
	base := srv.URL + "/api"

	r := runCLI(t, base, "", "login", "--email", "admin@tilapiasupreme.com.br", "--senha", "123456")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "Olá, Keila!\n", r.stdout)

	r = runCLI(t, base, "", "login", "--email", "admin@tilapiasupreme.com.br", "--senha", "x")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "E-mail ou senha inválidos!")
}

func TestCLI_OrderFlow(t *testing.T) {
	srv := startFake(t, testConfig(t), false)
	base := srv.URL + "/api"

	r := runCLI(t, base, "", "total", "--taxa", "R$ 5,50", "--item", "FILE", "--item", "TEMPERO")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "Itens: R$ 56,90\nTaxa: R$ 5,50\n\nTOTAL: R$ 62,40\n", r.stdout)

	r = runCLI(t, base, "", "novo",
		"--nome", "Ana", "--telefone", "11987654321", "--endereco", "Rua A, 1",
		"--entrega", "2025-03-10 09:30", "--taxa", "5,50",
		"--item", "FILE", "--item", "FILE", "--item", "TEMPERO")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Pedido cadastrado com sucesso!")
	assert.Contains(t, r.stdout, "Pedido #1, total R$ 116,30")

	r = runCLI(t, base, "", "pedidos", "--cliente", "ana")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "#1")
	assert.Contains(t, r.stdout, "(11) 98765-4321")
	assert.Contains(t, r.stdout, "Entregue")

	r = runCLI(t, base, "", "pedidos", "--cliente", "bruno")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Nenhum pedido encontrado.")

	r = runCLI(t, base, "", "itens", "1")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "2x FILE")
	assert.Contains(t, r.stdout, "Total dos itens: R$ 110,80")

	r = runCLI(t, base, "", "editar", "1", "--endereco", "Rua B, 2", "--remove", "TEMPERO")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Pedido atualizado com sucesso!")
	assert.Contains(t, r.stdout, "total R$ 113,30")

	r = runCLI(t, base, "n\n", "excluir", "1")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Exclusão cancelada.")

	r = runCLI(t, base, "s\n", "excluir", "1")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Pedido deletado com sucesso!")

	r = runCLI(t, base, "", "itens", "1")
	assert.Equal(t, 1, r.code)
}

func TestCLI_JSONOutput(t *testing.T) {
	srv := startFake(t, testConfig(t), false)
	base := srv.URL + "/api"

	r := runCLI(t, base, "", "--json", "produtos")
	require.Equal(t, 0, r.code, r.stderr)
	var ok struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &ok))
	assert.True(t, ok.Success)
	assert.Len(t, ok.Data, 8)

	r = runCLI(t, base, "", "--json", "novo", "--nome", "Ana")
	assert.Equal(t, 1, r.code)
	var failed struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &failed))
	assert.False(t, failed.Success)
	assert.Equal(t, "Preencha todos os dados e adicione itens ao pedido.", failed.Message)
	assert.Equal(t, "VALIDATION_ERROR", failed.Code)

	r = runCLI(t, base, "n\n", "--json", "excluir", "7")
	require.Equal(t, 0, r.code, r.stderr)
	var canceled struct {
		Success bool `json:"success"`
		Data    struct {
			ID      string `json:"id"`
			Deleted bool   `json:"deleted"`
			Message string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &canceled))
	assert.False(t, canceled.Data.Deleted)
	assert.Equal(t, "7", canceled.Data.ID)
	assert.Equal(t, "Exclusão cancelada.", canceled.Data.Message)
}

func TestCLI_Usage(t *testing.T) {
	testChdir(t, t.TempDir())

	var out, errOut bytes.Buffer
	code := NewCLI(strings.NewReader(""), &out, &errOut).Execute(context.Background(), nil)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "uso: pedidos")

	errOut.Reset()
	code = NewCLI(strings.NewReader(""), &out, &errOut).Execute(context.Background(), []string{"voar"})
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "comando desconhecido: voar")
}

func TestCLI_ConnectionFailure(t *testing.T) {
	testChdir(t, t.TempDir())

	r := runCLI(t, "http://127.0.0.1:1/api", "", "pedidos")
	assert.Equal(t, 1, r.code)
	assert.NotEmpty(t, r.stderr)

	// no request is needed to reject a missing id
	r = runCLI(t, "http://127.0.0.1:1/api", "", "excluir", "--sim")
	assert.Equal(t, 1, r.code)
}
