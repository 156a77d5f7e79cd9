package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bft-labs/contactbook/internal/domain"
)

const boxWidth = 44

// Box writes a framed block: a centred title, then one padded line per entry.
func Box(w io.Writer, title string, lines ...string) {
	bar := strings.Repeat("═", boxWidth)
	fmt.Fprintf(w, "\n╔%s╗\n", bar)
	fmt.Fprintf(w, "║%s║\n", center(title, boxWidth))
	if len(lines) > 0 {
		fmt.Fprintf(w, "╠%s╣\n", bar)
		for _, l := range lines {
			fmt.Fprintf(w, "║ %-*.*s ║\n", boxWidth-2, boxWidth-2, l)
		}
	}
	fmt.Fprintf(w, "╚%s╝\n\n", bar)
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

// ContactBox writes one contact as a labelled block.
func ContactBox(w io.Writer, title string, c domain.Contact) {
	Box(w, title,
		"Name   : "+c.Name,
		"Mail   : "+c.Email,
		"Mobile : "+c.Phone,
	)
}

// Table writes contacts as a numbered grid. Columns are truncated to fit.
func Table(w io.Writer, contacts []domain.Contact) {
	if len(contacts) == 0 {
		fmt.Fprintln(w, "\nNo contacts available to display.")
		return
	}

	widths := [4]int{4, 18, 12, 41}
	rule := func(l, m, r string) {
		parts := make([]string, len(widths))
		for i, n := range widths {
			parts[i] = strings.Repeat("═", n+2)
		}
		fmt.Fprintf(w, "%s%s%s\n", l, strings.Join(parts, m), r)
	}
	row := func(cells ...string) {
		fmt.Fprint(w, "║")
		for i, c := range cells {
			fmt.Fprintf(w, " %-*.*s ║", widths[i], widths[i], c)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	rule("╔", "╦", "╗")
	row("No.", "Name", "Mobile", "Mail ID")
	rule("╠", "╬", "╣")
	for i, c := range contacts {
		row(fmt.Sprint(i+1), c.Name, c.Phone, c.Email)
	}
	rule("╚", "╩", "╝")
}

// Menu writes a titled list of numbered options.
func Menu(w io.Writer, title string, options ...string) {
	lines := make([]string, len(options))
	for i, o := range options {
		lines[i] = fmt.Sprintf("%d. %s", i+1, o)
	}
	Box(w, title, lines...)
}

var reasonText = map[domain.Field]map[domain.Reason]string{
	domain.FieldName: {
		domain.ReasonEmptyInput:       "Name cannot be empty.",
		domain.ReasonInvalidFirstChar: "First letter must be an alphabet.",
		domain.ReasonInvalidChar:      "Name can contain only alphabets and spaces.",
	},
	domain.FieldPhone: {
		domain.ReasonWrongLength: "Mobile number must be exactly 10 digits.",
		domain.ReasonNonDigit:    "Mobile number must contain only digits.",
		domain.ReasonDuplicate:   "Mobile number already exists.",
	},
	domain.FieldEmail: {
		domain.ReasonNotExactlyOneAt:       "Mail must contain exactly one '@'.",
		domain.ReasonLocalPartTooShort:     "At least 5 characters required before '@'.",
		domain.ReasonFirstCharNotLowercase: "First letter must be lowercase.",
		domain.ReasonInvalidLocalChar:      "Local part can have only lowercase letters or digits.",
		domain.ReasonInvalidDomainChar:     "Domain can have only letters, digits, '.' or '-'.",
		domain.ReasonDomainMissingLetter:   "Domain must have at least one letter.",
		domain.ReasonDomainMissingDot:      "Domain must contain '.'.",
		domain.ReasonDuplicate:             "Mail ID already exists.",
	},
}

// Explain turns an error into the message shown to the user.
func Explain(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		if msg, ok := reasonText[ve.Field][ve.Reason]; ok {
			return msg
		}
	}
	return err.Error()
}
