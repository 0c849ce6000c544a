package hexfile

import "strings"

// Comment markers recognized at the start of a line. Comment lines are
// skipped before decoding and do not count toward line positions.
var commentMarkers = []string{";", "//"}

// Options control the file-level behaviors that vary across HEX dialects.
// The zero value is the permissive superset behavior.
type Options struct {
	// Strict disables comment tolerance and the leading-garbage rule:
	// every line must begin with the record start code.
	Strict bool

	// VerifyChecksums recomputes each record's checksum and fails
	// assembly on a mismatch. Off by default: the format's trailing
	// checksum byte is decoded but not verified.
	VerifyChecksums bool
}

// Sequence is an assembled, validated sequence of records in original
// file order, terminated by exactly one end-of-file record. It is the
// sole input to the view builders, which treat it as read-only.
type Sequence []Record

// Assemble consumes raw text lines with the default Options.
func Assemble(lines []string) (Sequence, error) {
	return AssembleWithOptions(lines, Options{})
}

// AssembleWithOptions applies file-level syntax rules over a sequence of
// raw text lines, decodes each record line, and returns the validated
// record sequence. Consumption stops at the first end-of-file record;
// trailing lines are ignored. Unsupported record types are rejected only
// after the full pass, so any earlier structural error is reported first.
func AssembleWithOptions(lines []string, opts Options) (Sequence, error) {
	var seq Sequence
	pos := 0
	terminated := false

	for _, line := range lines {
		if !opts.Strict && isComment(line) {
			continue
		}
		pos++

		content, serr := recordContent(line, opts)
		if serr != nil {
			serr.Pos = pos
			return nil, serr
		}

		record, err := DecodeRecord(content)
		if err != nil {
			return nil, &SyntaxError{Pos: pos, Err: err}
		}

		if opts.VerifyChecksums {
			if sum := recordSum(record); sum != record.Checksum {
				return nil, &ChecksumError{Pos: pos, Want: sum, Got: record.Checksum}
			}
		}

		seq = append(seq, record)
		if record.Type == TypeEndOfFile {
			terminated = true
			break
		}
	}

	if !terminated {
		return nil, &MissingTerminatorError{}
	}

	for i, record := range seq {
		if record.Type == TypeUnsupported {
			return nil, &UnsupportedRecordError{Pos: i + 1, Code: record.Code}
		}
	}

	return seq, nil
}

// recordContent extracts the decodable portion of a non-comment line.
// In permissive mode the content starts at the first start code and any
// text before it is discarded; in strict mode the line must begin with
// the start code.
func recordContent(line string, opts Options) (string, *SyntaxError) {
	if line == "" {
		return "", &SyntaxError{}
	}
	if opts.Strict {
		if line[0] != startCode {
			return "", &SyntaxError{}
		}
		return line, nil
	}
	idx := strings.IndexByte(line, startCode)
	if idx < 0 {
		return "", &SyntaxError{}
	}
	return line[idx:], nil
}

func isComment(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, marker := range commentMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}
