// Package errors defines the error taxonomy for the IRBIS64 client (C11).
//
// It defines three error shapes: TransportError (the socket layer failed
// before any protocol exchange happened), ProtocolError (the server
// answered with a negative return code), and FormatError (a connection
// string could not be parsed). Other packages of this module also return
// plain errors of their own (ISO-2709 and on-disk file readers,
// resources.ErrBadIndent for TRE files, wrapped socket errors from the
// transport). TransportError supports errors.Is/As on its cause via
// Unwrap; ProtocolError and FormatError wrap no other error.
package errors

import "fmt"

// TransportError represents a failure in the socket transport itself:
// dial, write, or read-to-EOF. Per the protocol's convention this maps
// to the synthetic return code -100000 (see ProtocolError).
type TransportError struct {
	// Operation names the transport step that failed ("dial", "send", "receive").
	Operation string

	// Err is the underlying error from the network stack.
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("irbis: transport error during %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error, enabling error chain inspection with errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError represents a negative return code from the server that
// was not on the calling command's accepted-code whitelist.
type ProtocolError struct {
	// Command is the one-letter (or short) command that produced the code.
	Command string

	// Code is the signed return code reported by the server.
	Code int
}

func (e *ProtocolError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("irbis: operation failed with code %d: %s", e.Code, Describe(e.Code))
	}
	return fmt.Sprintf("irbis: command %q failed with code %d: %s", e.Command, e.Code, Describe(e.Code))
}

// FormatError represents connection-string input that could not be
// parsed: a chunk without "=", an unknown key, a bad port, or an empty
// workstation code. A TRE file's invalid indent jump is reported as
// resources.ErrBadIndent, not as a FormatError.
type FormatError struct {
	// Field names what was being parsed ("connection string key", "tree indent").
	Field string

	// Value is the offending input, if safe to include.
	Value string

	// Message explains why the value is invalid.
	Message string
}

func (e *FormatError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("irbis: invalid %s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("irbis: invalid %s: %s", e.Field, e.Message)
}

// TransportFailureCode is the synthetic return code this library assigns
// to a session's lastError field when the transport itself fails (no
// response was ever received to check a real code against).
const TransportFailureCode = -100000

// descriptions maps known IRBIS64 return codes to a short human
// description. Codes not present here render as "Unknown error N".
var descriptions = map[int]string{
	-100000: "Network failure: the transport could not complete the request",
	-3337:   "Client is already registered with this identity",
	-3334:   "Unknown client identifier",
	-3333:   "Client has not logged in",
	-8:      "Given MFN does not exist in the current database",
	-100:    "Illegal MFN specified",
	-101:    "Client has no access to requested database",
	-102:    "Database is locked for writing",
	-140:    "MFN outside database bounds",
	-141:    "Error while reading or writing a record",
	-200:    "Given field does not exist",
	-201:    "Previous record version does not exist",
	-202:    "Term not found in dictionary",
	-203:    "Last term in dictionary reached",
	-204:    "First term in dictionary reached",
	-300:    "Database is locked",
	-301:    "Database is locked for current user",
	-600:    "Record is logically deleted",
	-601:    "Record is physically deleted",
	-602:    "Record is locked, cannot be modified",
	-603:    "Record is locked by another user",
	-605:    "Record has been changed by another user, reload it",
	-607:    "Record is an unsupported version",
	-608:    "Error saving the record",
	-700:    "Error during global correction",
	-701:    "ACC/PFT format error",
	-702:    "Confirmation required",
	-703:    "Operation unsupported by this server version",
	-800:    "Error loading term list",
	-4141:   "Autoin.gbl error",
}

// Describe returns a human-readable description for a server return
// code, falling back to a generic message for codes this table does not
// carry (the taxonomy table is intentionally not exhaustive: IRBIS64
// servers add codes across versions).
func Describe(code int) string {
	if msg, ok := descriptions[code]; ok {
		return msg
	}
	return fmt.Sprintf("Unknown error %d", code)
}

// ThrowOnError converts a negative lastError code into an error callers
// can choose to check. It returns nil for codes >= 0 (success or
// positive payload).
func ThrowOnError(command string, code int) error {
	if code >= 0 {
		return nil
	}
	return &ProtocolError{Command: command, Code: code}
}
