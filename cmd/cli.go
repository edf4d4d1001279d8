package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/keilahoriye/tilapiasuprememobile/application/auth"
	orderapp "github.com/keilahoriye/tilapiasuprememobile/application/order"
	"github.com/keilahoriye/tilapiasuprememobile/config"
	"github.com/keilahoriye/tilapiasuprememobile/domain/order"
	"github.com/keilahoriye/tilapiasuprememobile/domain/shared"
	"github.com/keilahoriye/tilapiasuprememobile/infrastructure/remote"
	apperrors "github.com/keilahoriye/tilapiasuprememobile/pkg/errors"
	"github.com/keilahoriye/tilapiasuprememobile/pkg/logger"
)

const (
	msgUnexpected     = "Erro inesperado."
	msgDeleteCanceled = "Exclusão cancelada."
)

// CLI the pedidos command line. Each command drives the client core the way
// one screen of the app does.
type CLI struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewCLI creates a CLI reading confirmations from stdin
func NewCLI(stdin io.Reader, stdout, stderr io.Writer) *CLI {
	return &CLI{stdin: stdin, stdout: stdout, stderr: stderr}
}

// cliEnv what every command runs with
type cliEnv struct {
	cfg    *config.Config
	client *remote.Client
	json   bool
	out    io.Writer
	errOut io.Writer
	in     *bufio.Reader
}

func (e *cliEnv) printf(format string, args ...any) {
	if !e.json {
		fmt.Fprintf(e.out, format, args...)
	}
}

type command struct {
	name    string
	usage   string
	summary string
	run     func(ctx context.Context, env *cliEnv, args []string) (any, error)
}

var commands = []command{
	{"login", "login --email E --senha S", "entra e mostra a saudação", runLogin},
	{"produtos", "produtos", "lista o catálogo", runProducts},
	{"pedidos", "pedidos [--cliente --telefone --produto --de --ate] [--resumo]", "lista e filtra pedidos", runOrders},
	{"itens", "itens <id>", "mostra os itens de um pedido", runItems},
	{"novo", "novo --nome --telefone --endereco --entrega --taxa --item CODIGO...", "cadastra um pedido", runCreate},
	{"editar", "editar <id> [--nome ... --add CODIGO --remove CODIGO]", "altera um pedido", runEdit},
	{"excluir", "excluir <id> [--sim]", "exclui um pedido", runDelete},
	{"total", "total --taxa --item CODIGO...", "calcula o total de um pedido", runTotal},
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// Execute runs one command and returns the process exit code: 0 on
// success, 1 on any failure.
func (c *CLI) Execute(ctx context.Context, args []string) int {
	fs := pflag.NewFlagSet("pedidos", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(c.stderr)
	configPath := fs.String("config", "", "arquivo de configuração")
	asJSON := fs.Bool("json", false, "imprime o resultado como {success, data | message}")
	fs.String("base-url", "", "URL base da API, ex. http://host:8080/api")
	fs.Duration("timeout", 0, "timeout por requisição")
	fs.String("log-level", "", "nível de log (debug, info, warn, error)")
	fs.String("timezone", "", "fuso IANA dos horários de entrega")
	fs.Usage = func() { c.usage(fs) }

	if err := fs.Parse(args); err != nil {
		if stdErrors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() == 0 {
		c.usage(fs)
		return 1
	}

	cmd, ok := findCommand(fs.Arg(0))
	if !ok {
		fmt.Fprintf(c.stderr, "comando desconhecido: %s\n", fs.Arg(0))
		c.usage(fs)
		return 1
	}

	cfg, err := config.LoadWithFlags(*configPath, fs)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	client, err := remote.NewFromConfig(cfg)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}

	env := &cliEnv{
		cfg:    cfg,
		client: client,
		json:   *asJSON,
		out:    c.stdout,
		errOut: c.stderr,
		in:     bufio.NewReader(c.stdin),
	}

	data, err := cmd.run(ctx, env, fs.Args()[1:])
	if env.json {
		c.writeJSON(remote.ResultOf(data, err))
	} else if err != nil {
		fmt.Fprintln(c.stderr, apperrors.MessageOf(err, msgUnexpected))
	}
	if err != nil {
		return 1
	}
	return 0
}

func (c *CLI) writeJSON(v any) {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func (c *CLI) usage(fs *pflag.FlagSet) {
	fmt.Fprintln(c.stderr, "uso: pedidos [opções] <comando> [argumentos]")
	fmt.Fprintln(c.stderr, "\ncomandos:")
	w := tabwriter.NewWriter(c.stderr, 0, 4, 2, ' ', 0)
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %s\t%s\n", cmd.usage, cmd.summary)
	}
	_ = w.Flush()
	fmt.Fprintln(c.stderr, "\nopções:")
	fmt.Fprint(c.stderr, fs.FlagUsages())
}

// newCommandFlags a flag set for one command; parse errors are reported as
// validation failures
func newCommandFlags(env *cliEnv, name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(env.errOut)
	return fs
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return apperrors.Wrap(err, apperrors.CodeValidation, err.Error())
	}
	return nil
}

// orderIDArg returns the single positional order id. A missing id is left
// empty so the client's own guard rejects it without a request.
func orderIDArg(fs *pflag.FlagSet) string {
	if fs.NArg() == 0 {
		return ""
	}
	return strings.TrimPrefix(strings.TrimSpace(fs.Arg(0)), "#")
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := shared.ParseWireTime(value, loc)
	if err != nil {
		return time.Time{}, apperrors.Wrap(err, apperrors.CodeValidation, "Data inválida: "+value+" (use AAAA-MM-DD ou AAAA-MM-DD HH:MM)")
	}
	return t, nil
}

// ============================================================================
// Views
// ============================================================================

type userView struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Saudacao string `json:"saudacao"`
}

type productView struct {
	Codigo    string       `json:"codigo"`
	Descricao string       `json:"descricao"`
	Preco     shared.Money `json:"preco"`
}

type itemView struct {
	Produto       string       `json:"produto"`
	Descricao     string       `json:"descricao"`
	Quantidade    int          `json:"quantidade"`
	PrecoUnitario shared.Money `json:"precoUnitario"`
	Subtotal      shared.Money `json:"subtotal"`
}

type orderView struct {
	ID          string       `json:"id"`
	Cliente     string       `json:"cliente"`
	Telefone    string       `json:"telefone"`
	Endereco    string       `json:"endereco"`
	DataEntrega string       `json:"dataEntrega,omitempty"`
	TaxaEntrega shared.Money `json:"taxaEntrega"`
	Status      string       `json:"status"`
	Total       shared.Money `json:"total"`
	Itens       []itemView   `json:"itens,omitempty"`
}

type summaryView struct {
	Itens shared.Money `json:"itens"`
	Taxa  shared.Money `json:"taxa"`
	Total shared.Money `json:"total"`
}

func toItemViews(items []order.LineItem) []itemView {
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, itemView{
			Produto:       it.ProductCode,
			Descricao:     it.Description,
			Quantidade:    it.Quantity,
			PrecoUnitario: it.UnitPrice,
			Subtotal:      it.Total(),
		})
	}
	return out
}

func toOrderView(row orderapp.Row) orderView {
	o := row.Order
	v := orderView{
		ID:          o.ID,
		Cliente:     row.CustomerLabel,
		Telefone:    o.Phone,
		Endereco:    o.Address,
		TaxaEntrega: o.DeliveryFee,
		Status:      string(row.Status),
		Total:       row.Total,
	}
	if !o.DeliveryAt.IsZero() {
		v.DataEntrega = shared.FormatWireTime(o.DeliveryAt)
	}
	if o.HasItems() {
		v.Itens = toItemViews(o.Items)
	}
	return v
}

// ============================================================================
// Commands
// ============================================================================

func runLogin(ctx context.Context, env *cliEnv, args []string) (any, error) {
	fs := newCommandFlags(env, "login")
	email := fs.String("email", "", "e-mail")
	senha := fs.String("senha", "", "senha")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	session := auth.NewSession(env.client)
	u, err := session.Login(ctx, strings.TrimSpace(*email), *senha)
	if err != nil {
		return nil, err
	}
	env.printf("%s\n", session.Greeting())
	return userView{ID: u.ID, Nome: u.Name, Email: u.Email, Saudacao: session.Greeting()}, nil
}

func runProducts(ctx context.Context, env *cliEnv, args []string) (any, error) {
	products, err := env.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]productView, 0, len(products))
	w := tabwriter.NewWriter(env.out, 0, 4, 2, ' ', 0)
	for _, p := range products {
		views = append(views, productView{Codigo: p.Code, Descricao: p.Description, Preco: p.UnitPrice})
		if !env.json {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Code, p.Description, p.UnitPrice.FormatBRL())
		}
	}
	_ = w.Flush()
	return views, nil
}

func runOrders(ctx context.Context, env *cliEnv, args []string) (any, error) {
	fs := newCommandFlags(env, "pedidos")
	cliente := fs.String("cliente", "", "nome do cliente (contém)")
	telefone := fs.String("telefone", "", "telefone (contém)")
	produto := fs.String("produto", "", "código do produto, ex. FILE")
	de := fs.String("de", "", "entrega a partir de AAAA-MM-DD")
	ate := fs.String("ate", "", "entrega até AAAA-MM-DD")
	resumo := fs.Bool("resumo", false, "usa a listagem resumida, sem filtros")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	var rows []orderapp.Row
	if *resumo {
		orders, err := env.client.ListOrderSummaries(ctx)
		if err != nil {
			return nil, err
		}
		order.SortByDeliveryDesc(orders)
		now := time.Now()
		for _, o := range orders {
			rows = append(rows, orderapp.NewRow(o, now))
		}
	} else {
		list := orderapp.NewOrderList(env.client,
			orderapp.WithDiscardStaleResponses(env.cfg.Orders.DiscardStaleResponses))
		defer list.Close()

		list.SetCustomerName(*cliente)
		list.SetPhone(*telefone)
		list.SetProductKey(*produto)
		if *de != "" {
			t, err := parseDate(*de, env.cfg.Location())
			if err != nil {
				return nil, err
			}
			list.SetDateFrom(&t)
		}
		if *ate != "" {
			t, err := parseDate(*ate, env.cfg.Location())
			if err != nil {
				return nil, err
			}
			list.SetDateTo(&t)
		}

		if err := list.Search(ctx); err != nil {
			return nil, apperrors.Wrap(err, apperrors.AsAppError(err).Code, list.Message())
		}
		rows = list.Rows()
	}

	views := make([]orderView, 0, len(rows))
	for _, r := range rows {
		views = append(views, toOrderView(r))
	}
	if len(rows) == 0 {
		env.printf("Nenhum pedido encontrado.\n")
		return views, nil
	}

	w := tabwriter.NewWriter(env.out, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		if !env.json {
			fmt.Fprintf(w, "#%s\t%s\t%s\t%s\t%s\t%s\n",
				r.Order.ID, r.Status.Label(), r.CustomerLabel, r.PhoneLabel, r.DeliveryLabel, r.Total.FormatBRL())
		}
	}
	_ = w.Flush()
	return views, nil
}

func runItems(ctx context.Context, env *cliEnv, args []string) (any, error) {
	fs := newCommandFlags(env, "itens")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	list := orderapp.NewOrderList(env.client)
	items, err := list.Details(ctx, orderIDArg(fs))
	if err != nil {
		return nil, err
	}

	var total shared.Money
	for _, it := range items {
		total = total.Add(it.Total())
		env.printf("%dx %s %s  %s = %s\n",
			it.Quantity, it.ProductCode, it.Description, it.UnitPrice.FormatBRL(), it.Total().FormatBRL())
	}
	env.printf("Total dos itens: %s\n", total.FormatBRL())
	return toItemViews(items), nil
}

// formFlags the fields shared by novo and editar
type formFlags struct {
	nome, telefone, endereco, entrega, taxa *string
}

func addFormFlags(fs *pflag.FlagSet) formFlags {
	return formFlags{
		nome:     fs.String("nome", "", "nome do cliente"),
		telefone: fs.String("telefone", "", "telefone do cliente"),
		endereco: fs.String("endereco", "", "endereço de entrega"),
		entrega:  fs.String("entrega", "", "data e hora da entrega, AAAA-MM-DD HH:MM"),
		taxa:     fs.String("taxa", "", "taxa de entrega, ex. R$ 5,50"),
	}
}

// apply copies the flags that were set onto the form
func (f formFlags) apply(fs *pflag.FlagSet, c *orderapp.Composer, loc *time.Location) error {
	if fs.Changed("nome") {
		c.SetCustomerName(*f.nome)
	}
	if fs.Changed("telefone") {
		c.SetPhone(*f.telefone)
	}
	if fs.Changed("endereco") {
		c.SetAddress(*f.endereco)
	}
	if fs.Changed("taxa") {
		c.SetDeliveryFee(*f.taxa)
	}
	if fs.Changed("entrega") {
		t, err := parseDate(*f.entrega, loc)
		if err != nil {
			return err
		}
		c.SetDeliveryAt(t)
	}
	return nil
}

func addItems(c *orderapp.Composer, codes []string) error {
	for _, code := range codes {
		if err := c.AddItem(code); err != nil {
			return apperrors.Wrap(err, apperrors.CodeValidation, apperrors.MessageOf(err, msgUnexpected)+" ("+code+")")
		}
	}
	return nil
}

func submit(ctx context.Context, env *cliEnv, c *orderapp.Composer) (any, error) {
	res, err := c.Submit(ctx)
	if err != nil {
		return nil, err
	}
	env.printf("%s\n", res.Message)
	if res.Order != nil && res.Order.ID != "" {
		env.printf("Pedido #%s, total %s\n", res.Order.ID, res.Order.Total().FormatBRL())
	}
	if res.Order == nil {
		return nil, nil
	}
	return toOrderView(orderapp.NewRow(res.Order, time.Now())), nil
}

func runCreate(ctx context.Context, env *cliEnv, args []string) (any, error) {
	fs := newCommandFlags(env, "novo")
	form := addFormFlags(fs)
	items := fs.StringArray("item", nil, "código de produto, uma unidade por ocorrência")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	c := orderapp.NewComposer(env.client)
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	if err := form.apply(fs, c, env.cfg.Location()); err != nil {
		return nil, err
	}
	if err := addItems(c, *items); err != nil {
		return nil, err
	}
	return submit(ctx, env, c)
}

func runEdit(ctx context.Context, env *cliEnv, args []string) (any, error) {
	fs := newCommandFlags(env, "editar")
	form := addFormFlags(fs)
	add := fs.StringArray("add", nil, "adiciona uma unidade do produto")
	remove := fs.StringArray("remove", nil, "remove uma unidade do produto")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	id := orderIDArg(fs)
	o, err := env.client.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.HasItems() {
		list := orderapp.NewOrderList(env.client)
		if o, err = list.PrepareEdit(ctx, o); err != nil {
			return nil, err
		}
	}

	c := orderapp.NewEditComposer(env.client, o)
	if err := c.Load(ctx); err != nil {
		// the form is hydrated anyway; only catalog lookups are missing
		if !env.json {
			fmt.Fprintln(env.errOut, apperrors.MessageOf(err, msgUnexpected))
		}
	}
	if err := form.apply(fs, c, env.cfg.Location()); err != nil {
		return nil, err
	}
	if err := addItems(c, *add); err != nil {
		return nil, err
	}
	for _, code := range *remove {
		c.RemoveItem(code)
	}
	return submit(ctx, env, c)
}

func runDelete(ctx context.Context, env *cliEnv, args []string) (any, error) {
	fs := newCommandFlags(env, "excluir")
	yes := fs.Bool("sim", false, "não pede confirmação")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	id := orderIDArg(fs)
	if !*yes && id != "" {
		fmt.Fprintf(env.errOut, "Deseja realmente excluir o pedido #%s? (s/N): ", id)
		answer, _ := env.in.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "s", "sim", "y", "yes":
		default:
			env.printf("%s\n", msgDeleteCanceled)
			return deleteView{ID: id, Deleted: false, Message: msgDeleteCanceled}, nil
		}
	}

	list := orderapp.NewOrderList(env.client)
	msg, err := list.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	env.printf("%s\n", msg)
	return deleteView{ID: id, Deleted: true, Message: msg}, nil
}

// deleteView the outcome of excluir; a declined confirmation is not a deletion
type deleteView struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
	Message string `json:"message"`
}

func runTotal(ctx context.Context, env *cliEnv, args []string) (any, error) {
	fs := newCommandFlags(env, "total")
	taxa := fs.String("taxa", "", "taxa de entrega")
	items := fs.StringArray("item", nil, "código de produto, uma unidade por ocorrência")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}

	c := orderapp.NewComposer(env.client)
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	if err := addItems(c, *items); err != nil {
		return nil, err
	}
	c.SetDeliveryFee(*taxa)

	s := c.Summary()
	env.printf("%s\n", s.String())
	return summaryView{Itens: s.ItemsTotal, Taxa: s.Fee, Total: s.Total}, nil
}
