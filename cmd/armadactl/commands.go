package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	intconfig "armada/internal/config"
	intdb "armada/internal/db"
	"armada/internal/services"
	"armada/internal/utils"

	"github.com/google/subcommands"
)

var commands = []subcommands.Command{
	&migrateCmd{},
	&seedCmd{},
	&reconcileCmd{},
}

// connect loads configuration, sets up logging and opens the shared pool.
func connect() (*sql.DB, error) {
	env := intconfig.LoadEnv()
	if _, err := utils.InitLogger(env.LogLevel); err != nil {
		return nil, err
	}
	return intconfig.ConnectDB(env.DBDSN)
}

type migrateCmd struct {
	down int
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply the embedded schema migrations" }
func (*migrateCmd) Usage() string {
	return `armadactl migrate [-down N]

  Applies all pending migrations. With -down, rolls back N steps instead.
`
}

func (m *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&m.down, "down", 0, "Number of migrations to roll back.")
}

func (m *migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer intconfig.CloseDB()

	if m.down > 0 {
		err = intdb.MigrateDown(db, m.down)
	} else {
		err = intdb.Migrate(db)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type seedCmd struct {
	email    string
	password string
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "insert the owner account and starter master data" }
func (*seedCmd) Usage() string {
	return `armadactl seed [-email <email>] [-password <password>]

  Inserts the owner user, sample vehicles, cities and expense categories.
  Existing rows are left as they are.
`
}

func (s *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.email, "email", "owner@tan.com", "Owner login email.")
	f.StringVar(&s.password, "password", "12345678", "Owner login password.")
}

func (s *seedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer intconfig.CloseDB()

	res, err := services.SeedService{DB: db, OwnerEmail: s.email, OwnerPassword: s.password}.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("seeded %d vehicles, %d locations, %d categories\n", res.Vehicles, res.Locations, res.Categories)
	return subcommands.ExitSuccess
}

type reconcileCmd struct{}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "recompute expense totals and balances for every trip" }
func (*reconcileCmd) Usage() string {
	return `armadactl reconcile

  Recomputes total_expense and remaining_balance of every live trip from its
  live expenses, one transaction per trip.
`
}

func (*reconcileCmd) SetFlags(*flag.FlagSet) {}

func (*reconcileCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer intconfig.CloseDB()

	n, err := services.ExpenseService{DB: db}.ReconcileAll(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reconcile stopped after %d trips: %v\n", n, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("reconciled %d trips\n", n)
	return subcommands.ExitSuccess
}
