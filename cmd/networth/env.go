package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dafibh/fortuna/networth/internal/config"
	"github.com/dafibh/fortuna/networth/internal/domain"
	"github.com/dafibh/fortuna/networth/internal/repository"
	"github.com/dafibh/fortuna/networth/internal/service"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// out receives command output
var out io.Writer = os.Stdout

// Commands lists every subcommand of the tool
var Commands = []subcommands.Command{
	&summaryCmd{},
	&dueCmd{},
	&confirmCmd{},
	&historyCmd{},
	&exportCmd{},
	&importCmd{},
	&backupCmd{},
}

// env is the wired set of services a command works with
type env struct {
	cfg          *config.Config
	store        *service.Store
	transactions *service.TransactionService
	dashboard    *service.DashboardService
	history      *service.HistoryService
	data         *service.DataService
	close        func()
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	repo, closeRepo, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := service.NewStore(repo, domain.SystemClock{Location: cfg.Location}, log.Logger)
	if err := store.Load(ctx); err != nil {
		closeRepo()
		return nil, err
	}

	return &env{
		cfg:          cfg,
		store:        store,
		transactions: service.NewTransactionService(store),
		dashboard:    service.NewDashboardService(store),
		history:      service.NewHistoryService(store),
		data:         service.NewDataService(store),
		close:        closeRepo,
	}, nil
}

// fail reports err on stderr and returns the failure status
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
