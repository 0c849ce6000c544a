// Package hexfile decodes the Intel HEX firmware-image text format into
// structured records, validates record and file level integrity, and
// reorganizes decoded records into address-indexed views for downstream
// tooling such as firmware flashers.
package hexfile

import (
	"encoding/hex"
	"fmt"
)

// RecordType is the closed set of record kinds this engine understands.
type RecordType int

const (
	// TypeData is a record carrying payload bytes at a local address.
	TypeData RecordType = iota

	// TypeEndOfFile terminates the image.
	TypeEndOfFile

	// TypeExtendedLinearAddress announces the upper 16 bits of the
	// segment base for subsequent data records.
	TypeExtendedLinearAddress

	// TypeUnsupported covers every record-type code outside the
	// supported set. Decoding still succeeds so a single pass can
	// report all structural information; rejection is deferred to
	// Assemble.
	TypeUnsupported
)

// Raw record-type codes as they appear on the wire.
const (
	codeData            byte = 0x00
	codeEndOfFile       byte = 0x01
	codeExtendedAddress byte = 0x04
)

func (t RecordType) String() string {
	switch t {
	case TypeData:
		return "data"
	case TypeEndOfFile:
		return "end of file"
	case TypeExtendedLinearAddress:
		return "extended linear address"
	default:
		return "unsupported"
	}
}

// Record is one decoded line of a HEX file. Records are values created
// once by DecodeRecord and never mutated.
type Record struct {
	Type      RecordType
	Code      byte   // raw record-type byte, kept for diagnostics
	Address   uint16 // local (linear) address field
	ByteCount byte   // payload length declared by the record header
	Payload   []byte // exactly ByteCount bytes
	Checksum  byte   // trailing byte, decoded but not verified here
	Raw       string // original line, kept for diagnostics
}

// Fixed character offsets of the record fields, counted from the start
// code: byte count (2 hex digits), address (4), record type (2),
// payload (2 per byte), checksum (2).
const (
	startCode        = ':'
	countOffset      = 1
	addressOffset    = 3
	typeOffset       = 7
	payloadOffset    = 9
	minimumRecordLen = 11
)

// DecodeRecord decodes a single record line into a Record. The line must
// begin with the record start code and carry the fixed-width hexadecimal
// fields of the format. It is a pure function of the input line and
// performs no file-level validation.
func DecodeRecord(line string) (Record, error) {
	if len(line) == 0 || line[0] != startCode {
		return Record{}, &DecodeError{Reason: "missing record start code", Line: line}
	}
	if len(line) < minimumRecordLen {
		return Record{}, &DecodeError{Reason: "line shorter than minimum record length", Line: line}
	}

	count, err := hexByte(line[countOffset:addressOffset])
	if err != nil {
		return Record{}, &DecodeError{Reason: "invalid byte count field", Line: line}
	}

	address, err := hexUint16(line[addressOffset:typeOffset])
	if err != nil {
		return Record{}, &DecodeError{Reason: "invalid address field", Line: line}
	}

	code, err := hexByte(line[typeOffset:payloadOffset])
	if err != nil {
		return Record{}, &DecodeError{Reason: "invalid record type field", Line: line}
	}

	payloadEnd := payloadOffset + 2*int(count)
	if payloadEnd+2 > len(line) {
		return Record{}, &DecodeError{
			Reason: fmt.Sprintf("declared payload of %d bytes reads past end of line", count),
			Line:   line,
		}
	}

	payload, err := hex.DecodeString(line[payloadOffset:payloadEnd])
	if err != nil {
		return Record{}, &DecodeError{Reason: "invalid payload field", Line: line}
	}

	checksum, err := hexByte(line[payloadEnd : payloadEnd+2])
	if err != nil {
		return Record{}, &DecodeError{Reason: "invalid checksum field", Line: line}
	}

	recordType := typeFromCode(code)
	if recordType == TypeExtendedLinearAddress && count != 2 {
		return Record{}, &DecodeError{
			Reason: "extended linear address record must carry exactly 2 payload bytes",
			Line:   line,
		}
	}

	return Record{
		Type:      recordType,
		Code:      code,
		Address:   address,
		ByteCount: count,
		Payload:   payload,
		Checksum:  checksum,
		Raw:       line,
	}, nil
}

func typeFromCode(code byte) RecordType {
	switch code {
	case codeData:
		return TypeData
	case codeEndOfFile:
		return TypeEndOfFile
	case codeExtendedAddress:
		return TypeExtendedLinearAddress
	default:
		return TypeUnsupported
	}
}

// recordSum computes the two's-complement record checksum over the byte
// count, address, record type and payload fields.
func recordSum(r Record) byte {
	sum := int(r.ByteCount) + int(r.Address>>8) + int(r.Address&0xFF) + int(r.Code)
	for _, b := range r.Payload {
		sum += int(b)
	}
	sum %= 256
	return byte(256 - sum)
}

func hexByte(s string) (byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func hexUint16(s string) (uint16, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}
