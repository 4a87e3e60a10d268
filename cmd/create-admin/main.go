// Command create-admin creates an admin account, or promotes an existing
// account with the same username, in the configured store.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	accountUseCase "github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/idgen"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/metrics"
	timeProvider "github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/app"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/config"
)

type options struct {
	username string
	password string
	quiet    bool
	timeout  time.Duration
}

func parseFlags(args []string) (options, error) {
	fs := pflag.NewFlagSet("create-admin", pflag.ContinueOnError)
	var opts options
	fs.StringVarP(&opts.username, "username", "u", "admin", "admin username")
	fs.StringVarP(&opts.password, "password", "p", "", "password for a new account (ignored when promoting)")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress service logs")
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall timeout")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	// create-admin [username [password]]
	rest := fs.Args()
	if len(rest) > 0 && !fs.Changed("username") {
		opts.username = rest[0]
	}
	if len(rest) > 1 && !fs.Changed("password") {
		opts.password = rest[1]
	}
	if opts.password == "" {
		opts.password = os.Getenv("BP_ADMIN_PASSWORD")
	}

	if opts.username == "" {
		return opts, errors.New("username is required")
	}
	if opts.password == "" {
		return opts, errors.New("password is required (flag, second argument or BP_ADMIN_PASSWORD)")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Database.Driver == "memory" {
		return errors.New("create-admin needs a persistent store; database.driver is memory")
	}

	var appLogger coreport.Logger = logger.NewNoopLogger()
	if !opts.quiet {
		if appLogger, err = app.NewLogger(cfg, "create-admin"); err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
	}
	defer func() { _ = appLogger.Flush() }()

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	tp := timeProvider.NewRealTimeProvider()
	noop := metrics.NewNoopMetrics()

	store, err := app.OpenStore(ctx, cfg, appLogger, tp, noop)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txManager := transaction.NewTransactionManager(store.UoW, appLogger, tp, noop, app.RetryPolicy(cfg.Transaction))
	accounts := accountUseCase.NewAccountUseCase(
		txManager,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		idgen.NewUUIDGenerator(),
		tp,
		appLogger,
		cfg.Wager.MinPasswordLength,
	)

	fmt.Printf("Creating admin user: %s\n", opts.username)
	account, created, err := accounts.EnsureAdmin(ctx, opts.username, opts.password)
	if err != nil {
		return err
	}

	if created {
		fmt.Println("Admin user created successfully")
	} else {
		fmt.Println("User already exists, promoted to admin")
	}
	fmt.Printf("  ID:       %s\n  Username: %s\n", account.ID, account.Username)
	return nil
}
