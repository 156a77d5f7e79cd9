package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bft-labs/contactbook/internal/app"
	"github.com/bft-labs/contactbook/internal/cli"
	"github.com/bft-labs/contactbook/internal/domain"
	"github.com/bft-labs/contactbook/internal/watch"
	"github.com/bft-labs/contactbook/pkg/log"
)

var errNotConfirmed = errors.New("refusing to delete without --yes")

func newInitCommand(c *command) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := c.repo()
			if err := repo.Init(force); err != nil {
				return err
			}
			c.logger.Info("data file initialised", log.String("path", repo.Path()))
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", repo.Path())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing data file")
	return cmd
}

func newListCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Display all contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := c.openBook(cmd.Context())
			if err != nil {
				return err
			}
			cli.Table(cmd.OutOrStdout(), book.Contacts())
			return nil
		},
	}
}

// fieldFlags binds --name, --phone and --email.
type fieldFlags struct {
	name, phone, email string
}

func (f *fieldFlags) bind(cmd *cobra.Command, verb string) {
	cmd.Flags().StringVar(&f.name, "name", "", "name to "+verb)
	cmd.Flags().StringVar(&f.phone, "phone", "", "mobile number to "+verb)
	cmd.Flags().StringVar(&f.email, "email", "", "mail ID to "+verb)
}

// query returns the single field that was set.
func (f *fieldFlags) query(cmd *cobra.Command) (domain.Field, string, error) {
	var (
		field domain.Field
		value string
		set   int
	)
	for _, q := range []struct {
		flag  string
		field domain.Field
		value string
	}{
		{"name", domain.FieldName, f.name},
		{"phone", domain.FieldPhone, f.phone},
		{"email", domain.FieldEmail, f.email},
	} {
		if cmd.Flags().Changed(q.flag) {
			field, value = q.field, q.value
			set++
		}
	}
	if set != 1 {
		return 0, "", errors.New("exactly one of --name, --phone or --email is required")
	}
	return field, value, nil
}

func newAddCommand(c *command) *cobra.Command {
	var flags fieldFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Validate and add one contact, then save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := c.openBook(cmd.Context())
			if err != nil {
				return err
			}
			contact := domain.Contact{Name: flags.name, Phone: flags.phone, Email: flags.email}
			if err := book.Add(contact); err != nil {
				return explain(err)
			}
			book.Sort()
			if err := book.Save(cmd.Context()); err != nil {
				return err
			}
			cli.ContactBox(cmd.OutOrStdout(), "CONTACT ADDED SUCCESSFULLY", contact)
			return book.Close()
		},
	}
	flags.bind(cmd, "add")
	for _, name := range []string{"name", "phone", "email"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newSearchCommand(c *command) *cobra.Command {
	var flags fieldFlags
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find contacts by name, mobile number or mail ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, value, err := flags.query(cmd)
			if err != nil {
				return err
			}
			book, err := c.openBook(cmd.Context())
			if err != nil {
				return err
			}
			found, err := lookup(book, field, value)
			if err != nil {
				return err
			}
			if field == domain.FieldName {
				cli.Table(cmd.OutOrStdout(), found)
				return nil
			}
			cli.ContactBox(cmd.OutOrStdout(), "CONTACT FOUND", found[0])
			return nil
		},
	}
	flags.bind(cmd, "search for")
	return cmd
}

func newDeleteCommand(c *command) *cobra.Command {
	var (
		flags fieldFlags
		pick  int
		yes   bool
	)
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete one contact, then save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, value, err := flags.query(cmd)
			if err != nil {
				return err
			}
			book, err := c.openBook(cmd.Context())
			if err != nil {
				return err
			}
			i, err := selectOne(book, field, value, pick)
			if errors.Is(err, domain.ErrInvalidSelection) && field == domain.FieldName {
				found, _ := lookup(book, field, value)
				cli.Table(cmd.OutOrStdout(), found)
				return fmt.Errorf("%w: %d contacts match, choose one with --pick", err, len(found))
			}
			if err != nil {
				return err
			}
			if !yes {
				target, _ := book.At(i)
				cli.ContactBox(cmd.OutOrStdout(), "CONTACT FOUND", target)
				return errNotConfirmed
			}

			removed, err := book.Remove(i)
			if err != nil {
				return err
			}
			if err := book.Save(cmd.Context()); err != nil {
				return err
			}
			cli.ContactBox(cmd.OutOrStdout(), "CONTACT DELETED SUCCESSFULLY", removed)
			return book.Close()
		},
	}
	flags.bind(cmd, "delete")
	cmd.Flags().IntVar(&pick, "pick", 0, "which of several name matches to delete (1-based)")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}

func newWatchCommand(c *command) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Redisplay the contact table whenever the data file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			render := func() {
				if err := c.render(ctx, out); err != nil {
					c.logger.Warn("reload failed", log.Err(err))
				}
			}
			render()

			w := watch.New(c.cfg.DataFile, c.cfg.Debounce, c.logger, render)
			err := w.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func (c *command) render(ctx context.Context, out io.Writer) error {
	book, err := c.openBook(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s  %s (%d/%d)\n", time.Now().Format(time.TimeOnly), c.cfg.DataFile, book.Len(), book.Capacity())
	cli.Table(out, book.Contacts())
	return nil
}

// lookup returns the contacts matching value in field f.
func lookup(book *app.Book, f domain.Field, value string) ([]domain.Contact, error) {
	var idx []int
	switch f {
	case domain.FieldName:
		m, err := book.FindByName(value)
		if err != nil {
			return nil, err
		}
		idx = m
	case domain.FieldPhone:
		i, err := book.FindByPhone(value)
		if err != nil {
			return nil, err
		}
		idx = []int{i}
	default:
		i, err := book.FindByEmail(value)
		if err != nil {
			return nil, err
		}
		idx = []int{i}
	}

	found := make([]domain.Contact, 0, len(idx))
	for _, i := range idx {
		c, err := book.At(i)
		if err != nil {
			return nil, err
		}
		found = append(found, c)
	}
	return found, nil
}

// selectOne resolves a query to one position. A name matching several
// contacts needs a 1-based pick; zero means no pick was given.
func selectOne(book *app.Book, f domain.Field, value string, pick int) (int, error) {
	switch f {
	case domain.FieldName:
		m, err := book.FindByName(value)
		if err != nil {
			return -1, err
		}
		if pick == 0 {
			if i, ok := m.Single(); ok {
				return i, nil
			}
		}
		return m.Pick(pick)
	case domain.FieldPhone:
		return book.FindByPhone(value)
	default:
		return book.FindByEmail(value)
	}
}

// explain turns validation failures into the menu's wording.
func explain(err error) error {
	if errors.Is(err, domain.ErrValidation) {
		return fmt.Errorf("%s: %w", cli.Explain(err), err)
	}
	return err
}
