package hexfile

import "fmt"

// DecodeError reports a malformed record line: truncated fixed-width
// fields, non-hexadecimal characters, or a declared payload length that
// would read past the end of the line.
type DecodeError struct {
	Reason string
	Line   string // original line, for diagnostics
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s", e.Reason)
}

// SyntaxError reports a file-level syntax failure: an empty non-comment
// line, a line without a record start code, or a decode failure. Pos is
// the 1-based position of the failing line among decoded (non-comment)
// lines.
type SyntaxError struct {
	Pos int
	Err error // underlying DecodeError, nil for missing start code / empty line
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("syntax error at line %d: %v", e.Pos, e.Err)
	}
	return fmt.Sprintf("syntax error at line %d: no record start code", e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// ChecksumError reports a record whose trailing checksum byte does not
// match the computed record sum. Only raised when checksum verification
// is enabled in Options.
type ChecksumError struct {
	Pos  int
	Want byte
	Got  byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum error at line %d: computed %02X, record carries %02X", e.Pos, e.Want, e.Got)
}

// MissingTerminatorError reports that input was exhausted without an
// end-of-file record.
type MissingTerminatorError struct{}

func (e *MissingTerminatorError) Error() string {
	return "missing terminator: no end of file record"
}

// UnsupportedRecordError reports a record whose type is outside the
// supported set. Pos is the 1-based position among decoded lines and
// Code the raw record-type byte.
type UnsupportedRecordError struct {
	Pos  int
	Code byte
}

func (e *UnsupportedRecordError) Error() string {
	return fmt.Sprintf("unsupported record type %02X at line %d", e.Code, e.Pos)
}

// ExtendedAddressPresentError reports that a 32-bit image (one carrying
// extended linear address records) was handed to the 16-bit linear view
// builder. Pos is the 1-based position of the first such record.
type ExtendedAddressPresentError struct {
	Pos int
}

func (e *ExtendedAddressPresentError) Error() string {
	return fmt.Sprintf("extended linear address record present at line %d: image is not linear", e.Pos)
}

// InvalidRangeError reports an inclusive address range whose end is less
// than its start.
type InvalidRangeError struct {
	Start uint32
	End   uint32
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid address range: end %08X is less than start %08X", e.End, e.Start)
}
