package hexfile

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeDataRecord(t *testing.T) {
	record, err := DecodeRecord(":0300300002337A1E")
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}

	if record.Type != TypeData {
		t.Errorf("Type = %v, want data", record.Type)
	}
	if record.Address != 0x0030 {
		t.Errorf("Address = %04X, want 0030", record.Address)
	}
	if record.ByteCount != 3 {
		t.Errorf("ByteCount = %d, want 3", record.ByteCount)
	}
	if !bytes.Equal(record.Payload, []byte{0x02, 0x33, 0x7A}) {
		t.Errorf("Payload = % X, want 02 33 7A", record.Payload)
	}
	if record.Checksum != 0x1E {
		t.Errorf("Checksum = %02X, want 1E", record.Checksum)
	}
	if record.Raw != ":0300300002337A1E" {
		t.Errorf("Raw = %q, want original line", record.Raw)
	}
}

func TestDecodeEndOfFileRecord(t *testing.T) {
	record, err := DecodeRecord(":00000001FF")
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}
	if record.Type != TypeEndOfFile {
		t.Errorf("Type = %v, want end of file", record.Type)
	}
	if len(record.Payload) != 0 {
		t.Errorf("Payload length = %d, want 0", len(record.Payload))
	}
}

func TestDecodeExtendedAddressRecord(t *testing.T) {
	record, err := DecodeRecord(":020000040012E8")
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}
	if record.Type != TypeExtendedLinearAddress {
		t.Errorf("Type = %v, want extended linear address", record.Type)
	}
	if !bytes.Equal(record.Payload, []byte{0x00, 0x12}) {
		t.Errorf("Payload = % X, want 00 12", record.Payload)
	}
}

func TestDecodeUnsupportedRecord(t *testing.T) {
	// Start linear address records (type 05) are outside the supported
	// set but must still decode structurally.
	record, err := DecodeRecord(":0400000501000000F6")
	if err != nil {
		t.Fatalf("DecodeRecord failed: %v", err)
	}
	if record.Type != TypeUnsupported {
		t.Errorf("Type = %v, want unsupported", record.Type)
	}
	if record.Code != 0x05 {
		t.Errorf("Code = %02X, want 05", record.Code)
	}
	if int(record.ByteCount) != len(record.Payload) {
		t.Errorf("ByteCount = %d but payload has %d bytes", record.ByteCount, len(record.Payload))
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"empty line", ""},
		{"missing start code", "00000001FF"},
		{"too short", ":0000001FF"},
		{"non-hex byte count", ":qw00000001FF"},
		{"non-hex address", ":03zz300002337A1E"},
		{"non-hex record type", ":030030xx02337A1E"},
		{"payload past end of line", ":0500300002337A1E"},
		{"extended address with wrong length", ":03000004000102F6"},
	}

	for _, c := range cases {
		_, err := DecodeRecord(c.line)
		if err == nil {
			t.Errorf("%s: DecodeRecord(%q) succeeded, want DecodeError", c.name, c.line)
			continue
		}
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Errorf("%s: error is %T, want *DecodeError", c.name, err)
		}
	}
}

func TestRecordSum(t *testing.T) {
	cases := []string{
		":0300300002337A1E",
		":00000001FF",
		":020000040012E8",
		":0400000501000000F6",
	}

	for _, line := range cases {
		record, err := DecodeRecord(line)
		if err != nil {
			t.Fatalf("DecodeRecord(%q) failed: %v", line, err)
		}
		if sum := recordSum(record); sum != record.Checksum {
			t.Errorf("recordSum(%q) = %02X, want %02X", line, sum, record.Checksum)
		}
	}
}
