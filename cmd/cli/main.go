package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/amirasaad/accounts/infra"
	"github.com/amirasaad/accounts/infra/initializer"
	"github.com/amirasaad/accounts/infra/migrations"
	"github.com/amirasaad/accounts/pkg/app"
	"github.com/amirasaad/accounts/pkg/config"
	"github.com/amirasaad/accounts/pkg/domain/account"
	"github.com/amirasaad/accounts/pkg/middleware"
	"github.com/fatih/color"
	"github.com/golang-sql/civil"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]

Commands:
  migrate                          apply schema migrations
  migrate-down                     roll back every schema migration
  token [subject]                  print a bearer token for the protected endpoints
  types                            list account types
  type-create <file.json|->        store an account type
  type-delete <name>               remove an account type
  accounts [account_type]          list accounts
  account-create <file.json|->     create an account
  account-delete <id>              remove an account
  solve <id>                       solve the instalment of an account
  value <id> <YYYY-MM-DD>          forecast an account up to a date`

var (
	errUsage = errors.New("invalid usage")

	okColor   = color.New(color.FgGreen, color.Bold)
	errColor  = color.New(color.FgRed, color.Bold)
	headColor = color.New(color.FgCyan)
)

func main() {
	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))

	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		}
		errColor.Fprintln(os.Stderr, "Error:", err) //nolint: errcheck
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}
	cmd, args := args[0], args[1:]

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	switch cmd {
	case "migrate", "migrate-down":
		return migrate(cfg, cmd == "migrate-down", out)
	case "token":
		return token(cfg.Auth, args, out)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a := app.New(deps, cfg)
	defer a.Close() //nolint: errcheck

	return dispatch(ctx, a, cmd, args, in, out)
}

func migrate(cfg *config.App, down bool, out io.Writer) error {
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close() //nolint: errcheck
	}
	if down {
		if err := migrations.Down(db); err != nil {
			return err
		}
		okColor.Fprintln(out, "Schema rolled back") //nolint: errcheck
		return nil
	}
	if err := migrations.Up(db, initializer.SetupLogger(cfg.Log)); err != nil {
		return err
	}
	okColor.Fprintln(out, "Schema up to date") //nolint: errcheck
	return nil
}

func token(cfg *config.Auth, args []string, out io.Writer) error {
	subject := "admin"
	if len(args) > 0 {
		subject = args[0]
	}
	signed, err := middleware.NewToken(cfg, subject)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, signed)
	return nil
}

func dispatch(ctx context.Context, a *app.App, cmd string, args []string, in io.Reader, out io.Writer) error {
	switch cmd {
	case "types":
		types, err := a.AccountTypeService.GetAccountTypes(ctx)
		if err != nil {
			return err
		}
		headColor.Fprintf(out, "%-24s %s\n", "NAME", "LABEL") //nolint: errcheck
		for _, at := range types {
			fmt.Fprintf(out, "%-24s %s\n", at.Name, at.Label)
		}
		return nil

	case "type-create":
		if len(args) < 1 {
			return errUsage
		}
		var at account.AccountType
		if err := readJSON(args[0], in, &at); err != nil {
			return err
		}
		if err := a.AccountTypeService.CreateAccountType(ctx, &at); err != nil {
			return err
		}
		okColor.Fprintf(out, "Account type %q created\n", at.Name) //nolint: errcheck
		return nil

	case "type-delete":
		if len(args) < 1 {
			return errUsage
		}
		if err := a.AccountTypeService.DeleteAccountType(ctx, args[0]); err != nil {
			return err
		}
		okColor.Fprintf(out, "Account type %q deleted\n", args[0]) //nolint: errcheck
		return nil

	case "accounts":
		var filter account.Filter
		if len(args) > 0 {
			filter.AccountTypeName = &args[0]
		}
		accounts, err := a.AccountService.GetAccounts(ctx, filter)
		if err != nil {
			return err
		}
		headColor.Fprintf(out, "%-8s %-24s %-8s %s\n", "ID", "TYPE", "ACTIVE", "START") //nolint: errcheck
		for _, acc := range accounts {
			fmt.Fprintf(out, "%-8d %-24s %-8t %s\n", acc.ID, acc.AccountTypeName, acc.Active, acc.StartDate)
		}
		return nil

	case "account-create":
		if len(args) < 1 {
			return errUsage
		}
		var prototype account.Account
		if err := readJSON(args[0], in, &prototype); err != nil {
			return err
		}
		acc, err := a.AccountService.CreateAccount(ctx, &prototype)
		if err != nil {
			return err
		}
		okColor.Fprintf(out, "Account %d created\n", acc.ID) //nolint: errcheck
		return nil

	case "account-delete":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		if err := a.AccountService.DeleteAccount(ctx, id); err != nil {
			return err
		}
		okColor.Fprintf(out, "Account %d deleted\n", id) //nolint: errcheck
		return nil

	case "solve":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		result, err := a.AccountService.Solve(ctx, id)
		if err != nil {
			return err
		}
		return writeJSON(out, result)

	case "value":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		if len(args) < 2 {
			return errUsage
		}
		actionDate, err := civil.ParseDate(args[1])
		if err != nil {
			return fmt.Errorf("invalid action date %q: %w", args[1], err)
		}
		result, err := a.AccountService.Value(ctx, id, actionDate)
		if err != nil {
			return err
		}
		return writeJSON(out, result)

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func parseID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid account id %q: %w", args[0], err)
	}
	return id, nil
}

// readJSON decodes path into v. A path of "-" reads from in.
func readJSON(path string, in io.Reader, v any) error {
	r := in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close() //nolint: errcheck
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
