package hexfile

import (
	"errors"
	"testing"
)

func TestAssembleBasicImage(t *testing.T) {
	seq, err := Assemble([]string{":0300300002337A1E", ":00000001FF"})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if len(seq) != 2 {
		t.Fatalf("sequence length = %d, want 2", len(seq))
	}
	if seq[0].Type != TypeData {
		t.Errorf("first record type = %v, want data", seq[0].Type)
	}
	if seq[1].Type != TypeEndOfFile {
		t.Errorf("second record type = %v, want end of file", seq[1].Type)
	}
}

func TestAssembleSkipsComments(t *testing.T) {
	seq, err := Assemble([]string{
		"; generated by build",
		"// second marker style",
		"  ; indented comment",
		":0300300002337A1E",
		":00000001FF",
	})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(seq) != 2 {
		t.Errorf("sequence length = %d, want 2", len(seq))
	}
}

func TestAssembleDiscardsTextBeforeStartCode(t *testing.T) {
	seq, err := Assemble([]string{"   :0300300002337A1E", "x:00000001FF"})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if seq[0].Raw != ":0300300002337A1E" {
		t.Errorf("Raw = %q, want content from first start code", seq[0].Raw)
	}
}

func TestAssembleIgnoresLinesAfterTerminator(t *testing.T) {
	seq, err := Assemble([]string{
		":0300300002337A1E",
		":00000001FF",
		"not a record at all",
	})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(seq) != 2 {
		t.Errorf("sequence length = %d, want 2", len(seq))
	}
}

func TestAssembleEmptyLine(t *testing.T) {
	_, err := Assemble([]string{"; comment", ":0300300002337A1E", "", ":00000001FF"})

	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error is %T, want *SyntaxError", err)
	}
	// Comment lines do not count toward positions.
	if syntaxErr.Pos != 2 {
		t.Errorf("Pos = %d, want 2", syntaxErr.Pos)
	}
}

func TestAssembleMissingStartCode(t *testing.T) {
	_, err := Assemble([]string{"0300300002337A1E", ":00000001FF"})

	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error is %T, want *SyntaxError", err)
	}
	if syntaxErr.Pos != 1 {
		t.Errorf("Pos = %d, want 1", syntaxErr.Pos)
	}
}

func TestAssembleWrapsDecodeError(t *testing.T) {
	// Declared byte count of 05 with fewer than 10 payload characters
	// remaining.
	_, err := Assemble([]string{":0300300002337A1E", ":0500300002337A1E", ":00000001FF"})

	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error is %T, want *SyntaxError", err)
	}
	if syntaxErr.Pos != 2 {
		t.Errorf("Pos = %d, want 2", syntaxErr.Pos)
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("SyntaxError does not wrap a *DecodeError: %v", err)
	}
}

func TestAssembleMissingTerminator(t *testing.T) {
	_, err := Assemble([]string{":0300300002337A1E"})

	var missingErr *MissingTerminatorError
	if !errors.As(err, &missingErr) {
		t.Fatalf("error is %T, want *MissingTerminatorError", err)
	}
}

func TestAssembleUnsupportedRecord(t *testing.T) {
	_, err := Assemble([]string{":0400000501000000F6", ":00000001FF"})

	var unsupportedErr *UnsupportedRecordError
	if !errors.As(err, &unsupportedErr) {
		t.Fatalf("error is %T, want *UnsupportedRecordError", err)
	}
	if unsupportedErr.Pos != 1 {
		t.Errorf("Pos = %d, want 1", unsupportedErr.Pos)
	}
	if unsupportedErr.Code != 0x05 {
		t.Errorf("Code = %02X, want 05", unsupportedErr.Code)
	}
}

func TestAssembleSyntaxErrorBeatsUnsupported(t *testing.T) {
	// An unsupported record earlier in the file must not mask a
	// structural failure later in the same pass.
	_, err := Assemble([]string{":0400000501000000F6", "garbage", ":00000001FF"})

	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error is %T, want *SyntaxError", err)
	}
	if syntaxErr.Pos != 2 {
		t.Errorf("Pos = %d, want 2", syntaxErr.Pos)
	}
}

func TestAssembleStrictMode(t *testing.T) {
	strict := Options{Strict: true}

	if _, err := AssembleWithOptions([]string{"; comment", ":00000001FF"}, strict); err == nil {
		t.Errorf("strict mode accepted a comment line")
	}
	if _, err := AssembleWithOptions([]string{"  :00000001FF"}, strict); err == nil {
		t.Errorf("strict mode accepted leading text before the start code")
	}
	if _, err := AssembleWithOptions([]string{":00000001FF"}, strict); err != nil {
		t.Errorf("strict mode rejected a well-formed image: %v", err)
	}
}

func TestAssembleVerifyChecksums(t *testing.T) {
	verify := Options{VerifyChecksums: true}

	if _, err := AssembleWithOptions([]string{":0300300002337A1E", ":00000001FF"}, verify); err != nil {
		t.Errorf("verification rejected correct checksums: %v", err)
	}

	_, err := AssembleWithOptions([]string{":0300300002337A1E", ":00000001FE"}, verify)
	var checksumErr *ChecksumError
	if !errors.As(err, &checksumErr) {
		t.Fatalf("error is %T, want *ChecksumError", err)
	}
	if checksumErr.Pos != 2 {
		t.Errorf("Pos = %d, want 2", checksumErr.Pos)
	}
	if checksumErr.Want != 0xFF || checksumErr.Got != 0xFE {
		t.Errorf("Want/Got = %02X/%02X, want FF/FE", checksumErr.Want, checksumErr.Got)
	}
}
