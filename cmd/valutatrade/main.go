package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/valutatrade/valutatrade-hub/infra/initializer"
	"github.com/valutatrade/valutatrade-hub/pkg/app"
	"github.com/valutatrade/valutatrade-hub/pkg/config"
	"github.com/valutatrade/valutatrade-hub/pkg/domain"
	"github.com/valutatrade/valutatrade-hub/pkg/provider"
)

const usage = `Usage: valutatrade <command> [arguments]

Commands:
  register <username> <password>
  login <username> <password>
  logout
  buy <currency> <amount>
  sell <currency> <amount>
  get-rate <from> <to>
  list-currencies
  update-rates [--source crypto|fiat]
  show-rates [--currency CODE] [--base CODE] [--top N]
  show-portfolio [--base CODE]`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	a, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		log.Fatal("Failed to initialize application", "error", err)
	}

	if err := run(a, os.Args[1], os.Args[2:]); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func run(a *app.App, cmd string, args []string) error {
	ctx := context.Background()
	switch cmd {
	case "register":
		return register(a, args)
	case "login":
		return login(a, args)
	case "logout":
		return logout(a)
	case "buy":
		return trade(ctx, a, args, true)
	case "sell":
		return trade(ctx, a, args, false)
	case "get-rate":
		return getRate(ctx, a, args)
	case "list-currencies":
		return listCurrencies(a)
	case "update-rates":
		return updateRates(ctx, a, args)
	case "show-rates":
		return showRates(a, args)
	case "show-portfolio":
		return showPortfolio(ctx, a, args)
	default:
		fmt.Println(usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func register(a *app.App, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: register <username> <password>")
	}
	u, err := a.UserService.Register(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s (id %s). You can now log in.\n", u.Username, u.ID)
	return nil
}

func login(a *app.App, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: login <username> <password>")
	}
	u, err := a.UserService.Login(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Welcome back, %s!\n", u.Username)
	return nil
}

func logout(a *app.App) error {
	if err := a.UserService.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func trade(ctx context.Context, a *app.App, args []string, buy bool) error {
	name := "sell"
	if buy {
		name = "buy"
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: %s <currency> <amount>", name)
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}

	u, err := a.UserService.Current()
	if err != nil {
		return err
	}

	op := a.PortfolioService.Sell
	if buy {
		op = a.PortfolioService.Buy
	}
	res, err := op(ctx, u.ID, args[0], amount)
	if err != nil {
		return err
	}

	verb := "Sold"
	if buy {
		verb = "Bought"
	}
	fmt.Printf("%s %s %s. New balance: %s %s.\n",
		verb, formatAmount(res.Amount), res.Currency, formatAmount(res.Balance), res.Currency)
	if res.Estimate != nil {
		fmt.Printf("Estimated value: %s %s.\n", formatAmount(*res.Estimate), res.Base)
	}
	return nil
}

func getRate(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: get-rate <from> <to>")
	}
	rate, updatedAt, err := a.Resolver.Resolve(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s (updated %s)\n",
		domain.PairKey(args[0], args[1]), formatAmount(rate),
		updatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func listCurrencies(a *app.App) error {
	for _, cur := range a.Registry.List() {
		fmt.Println(cur.DisplayInfo())
	}
	return nil
}

func updateRates(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("update-rates", flag.ExitOnError)
	source := fs.String("source", "", "restrict refresh to one provider kind: crypto or fiat")
	if err := fs.Parse(args); err != nil {
		return err
	}
	kind := provider.Kind(*source)
	if kind != "" && kind != provider.KindCrypto && kind != provider.KindFiat {
		return fmt.Errorf("unknown source %q (want crypto or fiat)", *source)
	}

	merged, err := a.Updater.Refresh(ctx, kind)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %d rate(s).\n", len(merged))
	return nil
}

func showRates(a *app.App, args []string) error {
	fs := flag.NewFlagSet("show-rates", flag.ExitOnError)
	code := fs.String("currency", "", "show only pairs involving this currency")
	base := fs.String("base", "", "show only pairs quoted in this currency")
	top := fs.Int("top", 0, "show only the N highest rates")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snapshot, err := a.Store.LoadSnapshot()
	if err != nil {
		return err
	}

	type row struct {
		pair   string
		cached domain.CachedRate
	}
	rows := make([]row, 0, len(snapshot.Pairs))
	for pair, cached := range snapshot.Pairs {
		from, to, ok := domain.SplitPairKey(pair)
		if !ok {
			continue
		}
		if *code != "" && !strings.EqualFold(*code, from) && !strings.EqualFold(*code, to) {
			continue
		}
		if *base != "" && !strings.EqualFold(*base, to) {
			continue
		}
		rows = append(rows, row{pair: pair, cached: cached})
	}

	if *top > 0 {
		sort.Slice(rows, func(i, j int) bool { return rows[i].cached.Rate > rows[j].cached.Rate })
		if len(rows) > *top {
			rows = rows[:*top]
		}
	} else {
		sort.Slice(rows, func(i, j int) bool { return rows[i].pair < rows[j].pair })
	}

	if len(rows) == 0 {
		fmt.Println("No cached rates. Run update-rates first.")
		return nil
	}
	for _, r := range rows {
		fmt.Printf("%-12s %16s  %s  (%s)\n",
			r.pair, formatAmount(r.cached.Rate),
			r.cached.UpdatedAt.Format("2006-01-02 15:04:05"), r.cached.Source)
	}
	if snapshot.LastRefresh != nil {
		fmt.Printf("Last refresh: %s\n", snapshot.LastRefresh.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func showPortfolio(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("show-portfolio", flag.ExitOnError)
	base := fs.String("base", a.Config.Rates.BaseCurrency, "currency to value the portfolio in")
	if err := fs.Parse(args); err != nil {
		return err
	}

	u, err := a.UserService.Current()
	if err != nil {
		return err
	}
	p, err := a.PortfolioService.Get(u.ID)
	if err != nil {
		return err
	}
	if len(p.Wallets) == 0 {
		fmt.Println("Portfolio is empty.")
		return nil
	}

	codes := make([]string, 0, len(p.Wallets))
	for code := range p.Wallets {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Printf("%-6s %s\n", code, formatAmount(p.Wallets[code].Balance))
	}

	total, err := a.PortfolioService.TotalValue(ctx, u.ID, *base)
	if err != nil {
		return err
	}
	fmt.Printf("Total: %s %s\n", formatAmount(total), strings.ToUpper(*base))
	return nil
}

// formatAmount trims trailing zeros so crypto amounts stay readable.
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
