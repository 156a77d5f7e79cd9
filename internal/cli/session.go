// Package cli is the interactive presentation layer: menus, prompts and
// re-prompting on rejected input. All rules live in the app, store and
// validator packages; this package only reads lines and renders results.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bft-labs/contactbook/internal/domain"
	"github.com/bft-labs/contactbook/internal/ports"
	"github.com/bft-labs/contactbook/internal/store"
	"github.com/bft-labs/contactbook/pkg/log"
)

// ErrInputClosed is returned when input ends before the user saves and exits.
var ErrInputClosed = errors.New("contactbook: input closed before save")

// Book is the session API the menus drive.
type Book interface {
	Len() int
	Capacity() int
	Contacts() []domain.Contact
	At(i int) (domain.Contact, error)
	Reserve(n int) error
	Check(f domain.Field, raw string) (string, error)
	CheckEdit(i int, f domain.Field, raw string) (string, error)
	Add(c domain.Contact) error
	Sort()
	FindByName(query string) (store.Matches, error)
	FindByPhone(phone string) (int, error)
	FindByEmail(email string) (int, error)
	Edit(i int, f domain.Field, raw string) error
	Remove(i int) (domain.Contact, error)
	Save(ctx context.Context) error
	Close() error
}

// Session runs the numbered menu until the user saves and exits.
type Session struct {
	book   Book
	in     *bufio.Scanner
	out    io.Writer
	logger ports.Logger
}

// NewSession creates a menu session reading lines from in and writing to out.
func NewSession(book Book, in io.Reader, out io.Writer, logger ports.Logger) *Session {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Session{
		book:   book,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run shows the main menu in a loop. It returns nil after a successful save
// and exit, and ErrInputClosed if input runs out first.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		Menu(s.out, "ADDRESS BOOK MENU",
			"Add contact",
			"Edit contact",
			"Delete contact",
			"Search contact",
			"Display all contacts",
			"Save and Exit",
		)
		option, err := s.readInt("Enter your option: ")
		if err != nil {
			return err
		}

		switch option {
		case 1:
			err = s.add()
		case 2:
			err = s.edit()
		case 3:
			err = s.remove()
		case 4:
			err = s.search()
		case 5:
			fmt.Fprintln(s.out, "\nList of contacts:")
			Table(s.out, s.book.Contacts())
		case 6:
			fmt.Fprintln(s.out, "\nSaving contacts and exiting...")
			if err := s.book.Save(ctx); err != nil {
				fmt.Fprintf(s.out, "Save failed: %v\n", err)
				continue
			}
			return s.book.Close()
		default:
			fmt.Fprintln(s.out, "\nInvalid option! Try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) add() error {
	for {
		n, err := s.readInt("How many contacts do you want to add? ")
		if err != nil {
			return err
		}
		if n < 0 {
			fmt.Fprintln(s.out, "Invalid number of contacts.")
			return nil
		}
		if err := s.book.Reserve(n); err != nil {
			fmt.Fprintf(s.out, "Cannot add %d contacts. Limit exceeded (max %d).\n", n, s.book.Capacity())
			return nil
		}

		for i := 0; i < n; i++ {
			Box(s.out, "ADD CONTACT", fmt.Sprintf("Contact Number: %d", s.book.Len()+1))
			c, err := s.readContact(func(f domain.Field, raw string) (string, error) {
				return s.book.Check(f, raw)
			})
			if err != nil {
				return err
			}
			if err := s.book.Add(c); err != nil {
				fmt.Fprintf(s.out, "Contact not added: %s\n", Explain(err))
				continue
			}
			Box(s.out, "CONTACT ADDED SUCCESSFULLY")
		}
		s.book.Sort()

		more, err := s.readInt("Do you want to add more contacts? (1 = Yes, 0 = No): ")
		if err != nil {
			return err
		}
		if more != 1 {
			return nil
		}
	}
}

func (s *Session) readContact(check func(domain.Field, string) (string, error)) (domain.Contact, error) {
	var c domain.Contact
	for _, f := range []domain.Field{domain.FieldName, domain.FieldPhone, domain.FieldEmail} {
		v, err := s.readField(f, func(raw string) (string, error) { return check(f, raw) })
		if err != nil {
			return domain.Contact{}, err
		}
		c = c.With(f, v)
	}
	return c, nil
}

var fieldPrompts = map[domain.Field]string{
	domain.FieldName:  "Enter Name: ",
	domain.FieldPhone: "Enter Mobile Number: ",
	domain.FieldEmail: "Enter Mail ID: ",
}

var fieldLabels = map[domain.Field]string{
	domain.FieldName:  "Name   : ",
	domain.FieldPhone: "Mobile : ",
	domain.FieldEmail: "Mail   : ",
}

// readField prompts until check accepts the input.
func (s *Session) readField(f domain.Field, check func(string) (string, error)) (string, error) {
	for {
		raw, err := s.readLine(fieldPrompts[f])
		if err != nil {
			return "", err
		}
		v, err := check(raw)
		if err == nil {
			Box(s.out, "VALIDATION SUCCESS", fieldLabels[f]+v)
			return v, nil
		}
		if !errors.Is(err, domain.ErrValidation) {
			return "", err
		}
		fmt.Fprintf(s.out, "%s Try again.\n", Explain(err))
	}
}

// locate runs the search sub-menu once. back reports the Back option; i is -1
// when nothing was selected.
func (s *Session) locate(title string) (i int, back bool, err error) {
	Menu(s.out, title, "Search by Name", "Search by Mobile", "Search by Mail", "Back")
	choice, err := s.readInt("Enter your choice: ")
	if err != nil {
		return -1, false, err
	}

	switch choice {
	case 1:
		i, err = s.findByName()
	case 2:
		i, err = s.findUnique("Enter Mobile Number to search: ", "NUMBER", s.book.FindByPhone)
	case 3:
		i, err = s.findUnique("Enter Mail ID to search: ", "MAIL ID", s.book.FindByEmail)
	case 4:
		return -1, true, nil
	default:
		fmt.Fprintln(s.out, "Invalid choice! Try again.")
		return -1, false, nil
	}

	switch {
	case err == nil:
		return i, false, nil
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidSelection):
		return -1, false, nil
	default:
		return -1, false, err
	}
}

func (s *Session) findByName() (int, error) {
	query, err := s.readLine("Enter Name to search: ")
	if err != nil {
		return -1, err
	}
	m, err := s.book.FindByName(query)
	if err != nil {
		Box(s.out, "NO CONTACT FOUND WITH THIS NAME")
		return -1, err
	}

	found := make([]domain.Contact, len(m))
	for k, i := range m {
		found[k], _ = s.book.At(i)
	}
	Table(s.out, found)

	if i, ok := m.Single(); ok {
		return i, nil
	}
	pick, err := s.readInt(fmt.Sprintf("\nMultiple contacts found. Select a contact (1-%d): ", len(m)))
	if err != nil {
		return -1, err
	}
	i, err := m.Pick(pick)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid choice!")
		return -1, err
	}
	return i, nil
}

func (s *Session) findUnique(prompt, what string, find func(string) (int, error)) (int, error) {
	query, err := s.readLine(prompt)
	if err != nil {
		return -1, err
	}
	i, err := find(query)
	if err != nil {
		Box(s.out, "NO CONTACT FOUND WITH THIS "+what)
		return -1, err
	}
	c, _ := s.book.At(i)
	ContactBox(s.out, "CONTACT FOUND", c)
	return i, nil
}

func (s *Session) search() error {
	for {
		_, back, err := s.locate("SEARCH CONTACT")
		if err != nil || back {
			return err
		}
	}
}

func (s *Session) edit() error {
	for {
		i, err := s.locateUntilFound("EDIT CONTACT")
		if err != nil || i < 0 {
			return err
		}

		if err := s.editFields(i); err != nil {
			return err
		}
		s.book.Sort()

		again, err := s.readInt("Do you want to edit another contact? (1 = Yes, 0 = No): ")
		if err != nil {
			return err
		}
		if again != 1 {
			return nil
		}
	}
}

// locateUntilFound repeats the search sub-menu until a contact is chosen.
// It returns -1 when the user goes back.
func (s *Session) locateUntilFound(title string) (int, error) {
	for {
		i, back, err := s.locate(title)
		if err != nil {
			return -1, err
		}
		if back {
			return -1, nil
		}
		if i >= 0 {
			return i, nil
		}
		fmt.Fprintln(s.out, "Contact not found. Please try again.")
	}
}

func (s *Session) editFields(i int) error {
	for {
		Menu(s.out, "EDIT OPTIONS", "Edit Name", "Edit Mobile", "Edit Mail", "Edit All", "Done")
		choice, err := s.readInt("Enter your choice: ")
		if err != nil {
			return err
		}

		var fields []domain.Field
		switch choice {
		case 1:
			fields = []domain.Field{domain.FieldName}
		case 2:
			fields = []domain.Field{domain.FieldPhone}
		case 3:
			fields = []domain.Field{domain.FieldEmail}
		case 4:
			fields = []domain.Field{domain.FieldName, domain.FieldPhone, domain.FieldEmail}
		case 5:
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice! Try again.")
			continue
		}

		for _, f := range fields {
			v, err := s.readField(f, func(raw string) (string, error) { return s.book.CheckEdit(i, f, raw) })
			if err != nil {
				return err
			}
			if err := s.book.Edit(i, f, v); err != nil {
				fmt.Fprintf(s.out, "Edit failed: %s\n", Explain(err))
				continue
			}
		}
		c, _ := s.book.At(i)
		ContactBox(s.out, "CONTACT UPDATED", c)
	}
}

func (s *Session) remove() error {
	for {
		if s.book.Len() == 0 {
			fmt.Fprintln(s.out, "\nNo contacts available to delete.")
			return nil
		}
		i, err := s.locateUntilFound("DELETE CONTACT")
		if err != nil || i < 0 {
			return err
		}

		answer, err := s.readLine("Are you sure you want to delete this contact? (y/n): ")
		if err != nil {
			return err
		}
		if answer == "y" || answer == "Y" {
			c, err := s.book.Remove(i)
			if err != nil {
				return err
			}
			s.logger.Info("contact deleted", log.String("name", c.Name))
			Box(s.out, "CONTACT DELETED SUCCESSFULLY")
		} else {
			fmt.Fprintln(s.out, "Deletion cancelled.")
		}

		again, err := s.readInt("Do you want to delete another contact? (1 = Yes, 0 = No): ")
		if err != nil {
			return err
		}
		if again != 1 {
			return nil
		}
	}
}

func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// readInt reads one line as an integer; anything unparsable yields -1,
// which every menu treats as an invalid choice.
func (s *Session) readInt(prompt string) (int, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return -1, nil
	}
	return n, nil
}
