package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/contactbook/internal/adapters/fs"
	"github.com/bft-labs/contactbook/internal/app"
	"github.com/bft-labs/contactbook/internal/cli"
	"github.com/bft-labs/contactbook/internal/cliconfig"
	"github.com/bft-labs/contactbook/internal/domain"
	"github.com/bft-labs/contactbook/pkg/log"
)

var longHelp = strings.TrimSpace(`
Keep a small address book of names, mobile numbers and mail IDs in a flat file.

Run without a subcommand for the interactive menu. Contacts are kept sorted by
name; mobile numbers and mail IDs must be unique. Changes made in the menu are
written back only on "Save and Exit".

Configure via $HOME/.contactbook/config.toml, CONTACTBOOK_* environment
variables (a .env file is read too), or flags.
`)

var exampleUsage = strings.TrimSpace(`
  contactbook init
  contactbook
  contactbook add --name "Bob Smith" --phone 9876543210 --email bobsmith@mail.com
  contactbook search --name "bob smith"
  contactbook --data-file ~/contacts.txt list
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// command carries the resolved configuration and logger to every subcommand.
type command struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  log.Logger
}

func (c *command) repo() *fs.ContactsFile {
	return fs.NewContactsFile(c.cfg.DataFile)
}

func (c *command) openBook(ctx context.Context) (*app.Book, error) {
	book, err := app.Open(ctx, c.repo(), c.logger, app.Options{
		Capacity:          c.cfg.Capacity,
		Verify:            c.cfg.Verify,
		ExcludeSelfOnEdit: c.cfg.ExcludeSelfOnEdit,
	})
	if errors.Is(err, domain.ErrDataFileMissing) {
		return nil, fmt.Errorf("could not open %s (run \"contactbook init\" to create it): %w", c.cfg.DataFile, err)
	}
	return book, err
}

func newRootCommand() (*cobra.Command, *command) {
	c := &command{
		cfg:    cliconfig.DefaultConfig(),
		logger: log.NewZerologAdapter(log.LevelWarn),
	}

	root := &cobra.Command{
		Use:           "contactbook",
		Short:         "Menu-driven contact directory backed by a flat file",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Build set of changed flags so file and env never override them
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if err := cliconfig.Resolve(&c.cfg, c.cfgPath, changed); err != nil {
				return err
			}
			c.logger = log.NewZerologAdapter(c.cfg.Level())
			c.logger.Debug("configuration", log.Any("config", c.cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := c.openBook(cmd.Context())
			if err != nil {
				return err
			}
			session := cli.NewSession(book, cmd.InOrStdin(), cmd.OutOrStdout(), c.logger)
			return session.Run(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.contactbook/config.toml)")
	pf.StringVar(&c.cfg.DataFile, "data-file", c.cfg.DataFile, "contact data file")
	pf.IntVar(&c.cfg.Capacity, "capacity", c.cfg.Capacity, "maximum number of contacts")
	pf.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.BoolVar(&c.cfg.Verify, "verify", c.cfg.Verify, "re-validate records while loading and log failures")
	pf.BoolVar(&c.cfg.ExcludeSelfOnEdit, "exclude-self-on-edit", c.cfg.ExcludeSelfOnEdit, "allow an edited contact to keep its own mobile or mail")
	pf.DurationVar(&c.cfg.Debounce, "debounce", c.cfg.Debounce, "delay before watch redraws after a change")

	root.AddCommand(
		newInitCommand(c),
		newListCommand(c),
		newAddCommand(c),
		newSearchCommand(c),
		newDeleteCommand(c),
		newWatchCommand(c),
	)

	return root, c
}

func main() {
	root, c := newRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		c.logger.Error("contactbook failed", log.Err(err))
		os.Exit(1)
	}
}
