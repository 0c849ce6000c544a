package hexfile

import "sort"

// Range16 is an inclusive interval over the 16-bit local address space.
type Range16 struct {
	Start uint16
	End   uint16
}

// Range32 is an inclusive interval over the 32-bit absolute address
// space.
type Range32 struct {
	Start uint32
	End   uint32
}

// BuildLinearView orders the data records of an assembled sequence by
// ascending local address. It refuses images containing extended linear
// address records: a 16-bit caller must not silently ignore a 32-bit
// image. When rng is non-nil the result is restricted to data records
// whose local address falls in the inclusive range. The end-of-file
// record carries no address-relevant payload and is dropped.
func BuildLinearView(seq Sequence, rng *Range16) ([]Record, error) {
	for i, record := range seq {
		if record.Type == TypeExtendedLinearAddress {
			return nil, &ExtendedAddressPresentError{Pos: i + 1}
		}
	}

	if rng != nil && rng.End < rng.Start {
		return nil, &InvalidRangeError{Start: uint32(rng.Start), End: uint32(rng.End)}
	}

	var records []Record
	for _, record := range seq {
		if record.Type != TypeData {
			continue
		}
		if rng != nil && (record.Address < rng.Start || record.Address > rng.End) {
			continue
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Address < records[j].Address })
	return records, nil
}
