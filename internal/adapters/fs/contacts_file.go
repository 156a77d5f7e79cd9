package fs

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bft-labs/contactbook/internal/domain"
)

// ContactsFile implements ports.Repository on the line-oriented data file:
//
//	#<count>
//	<name>,<phone>,<email>
//
// Fields are not escaped; a comma inside a name or phone shifts the split.
type ContactsFile struct {
	path string
}

// NewContactsFile creates a repository backed by the file at path.
func NewContactsFile(path string) *ContactsFile {
	return &ContactsFile{path: path}
}

// Path returns the data file path.
func (r *ContactsFile) Path() string {
	return r.path
}

// Load reads every record in file order.
func (r *ContactsFile) Load(ctx context.Context) ([]domain.Contact, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataFileMissing, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", r.path, err)
		}
		return nil, malformed(r.path, 1, "missing count header")
	}
	count, err := parseHeader(sc.Text())
	if err != nil {
		return nil, malformed(r.path, 1, err.Error())
	}

	contacts := make([]domain.Contact, 0, min(count, 1024))
	for line := 2; len(contacts) < count; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("read %s: %w", r.path, err)
			}
			return nil, malformed(r.path, line, fmt.Sprintf("expected %d records, found %d", count, len(contacts)))
		}
		c, err := parseRecord(sc.Text())
		if err != nil {
			return nil, malformed(r.path, line, err.Error())
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// Save overwrites the file with contacts, count first.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func (r *ContactsFile) Save(ctx context.Context, contacts []domain.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "#%d\n", len(contacts))
	for _, c := range contacts {
		buf.WriteString(c.String())
		buf.WriteByte('\n')
	}
	return r.write(buf.Bytes())
}

// Init writes an empty list. An existing file is kept unless force is set.
func (r *ContactsFile) Init(force bool) error {
	if !force {
		if _, err := os.Stat(r.path); err == nil {
			return fmt.Errorf("%s already exists", r.path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return r.write([]byte("#0\n"))
}

func (r *ContactsFile) write(data []byte) error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

func parseHeader(s string) (int, error) {
	s = strings.TrimRight(s, "\r")
	if !strings.HasPrefix(s, "#") {
		return 0, fmt.Errorf("header %q does not start with '#'", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s[1:]))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("header %q is not a record count", s)
	}
	return n, nil
}

// parseRecord splits at the first two commas; the email keeps the rest of the line.
func parseRecord(s string) (domain.Contact, error) {
	parts := strings.SplitN(strings.TrimRight(s, "\r"), ",", 3)
	if len(parts) != 3 {
		return domain.Contact{}, fmt.Errorf("record %q needs name,phone,email", s)
	}
	return domain.Contact{Name: parts[0], Phone: parts[1], Email: parts[2]}, nil
}

func malformed(path string, line int, msg string) error {
	return fmt.Errorf("%s:%d: %w: %s", path, line, domain.ErrMalformedRecord, msg)
}
