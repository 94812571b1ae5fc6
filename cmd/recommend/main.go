// Command recommend prints a student's scholarship recommendations in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/yigit/scholarmatch/internal/bootstrap"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
)

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", bootstrap.DefaultConfigPath, "path to the YAML configuration file")
	flag.Int64Var(&opts.accountID, "account", 0, "account ID of the student")
	flag.StringVar(&opts.email, "email", "", "email of the student (instead of -account)")
	flag.BoolVar(&opts.refresh, "refresh", false, "recompute and store recommendations before listing")
	flag.BoolVar(&opts.preview, "preview", false, "compute recommendations without storing them")
	flag.IntVar(&opts.limit, "limit", 0, "maximum number of recommendations to list (0 uses the configured default)")
	flag.Parse()

	if err := run(context.Background(), opts); err != nil {
		color.Red("recommend: %v", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	accountID  int64
	email      string
	refresh    bool
	preview    bool
	limit      int
}

func run(ctx context.Context, opts options) error {
	if opts.accountID <= 0 && opts.email == "" {
		return errors.New("one of -account or -email is required")
	}
	if opts.refresh && opts.preview {
		return errors.New("-refresh and -preview cannot be combined")
	}

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(opts.configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, bootstrap.StartupTimeout)
	defer cancel()

	storage, err := bootstrap.SetupStorage(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer storage.Close()

	account, err := findAccount(ctx, storage, opts)
	if err != nil {
		return err
	}

	service := bootstrap.NewRecommendationService(cfg, storage.Repos, lgr)
	out := newReport(os.Stdout)
	out.header(account)

	if opts.preview {
		matches, err := service.PreviewForAccount(ctx, account.ID)
		if err != nil {
			return err
		}
		catalog, err := storage.Repos.Scholarships.ListActiveScholarships(ctx)
		if err != nil {
			return err
		}
		out.preview(matches, catalog)
		return nil
	}

	if opts.refresh {
		count, err := service.RefreshForAccount(ctx, account.ID)
		if err != nil {
			return err
		}
		out.refreshed(count)
	}

	recs, err := service.ListForAccount(ctx, account.ID, opts.limit)
	if err != nil {
		return err
	}
	out.recommendations(recs)
	return nil
}

func findAccount(ctx context.Context, storage *bootstrap.Storage, opts options) (*accountRef, error) {
	if opts.accountID > 0 {
		account, err := storage.Repos.Accounts.GetAccountByID(ctx, opts.accountID)
		if err != nil {
			return nil, describeLookupError(err, fmt.Sprintf("account %d", opts.accountID))
		}
		return &accountRef{ID: account.ID, Name: account.Name, Email: account.Email}, nil
	}
	account, err := storage.Repos.Accounts.GetAccountByEmail(ctx, opts.email)
	if err != nil {
		return nil, describeLookupError(err, opts.email)
	}
	return &accountRef{ID: account.ID, Name: account.Name, Email: account.Email}, nil
}

func describeLookupError(err error, who string) error {
	if apperrors.IsNotFound(err) {
		return fmt.Errorf("no account found for %s", who)
	}
	return err
}
