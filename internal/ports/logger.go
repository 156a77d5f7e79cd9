package ports

import "github.com/bft-labs/contactbook/pkg/log"

// Logger is the structured logging interface used by the application layer.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field
