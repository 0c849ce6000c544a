package hexfile

import (
	"encoding/binary"
	"sort"
)

// SegmentedView is an ordered mapping from segment key (segment base,
// upper 16 address bits shifted into position) to that segment's
// address-ordered data records. Built once per assembled sequence and
// immutable thereafter; concurrent read-only queries are safe.
type SegmentedView struct {
	keys   []uint32
	groups map[uint32][]Record
}

// Keys returns the segment keys in ascending order.
func (v *SegmentedView) Keys() []uint32 {
	keys := make([]uint32, len(v.keys))
	copy(keys, v.keys)
	return keys
}

// Records returns the data records of one segment in ascending local
// address order, and whether the segment exists in the view. The
// returned slice is a copy.
func (v *SegmentedView) Records(key uint32) ([]Record, bool) {
	group, ok := v.groups[key]
	if !ok {
		return nil, false
	}
	records := make([]Record, len(group))
	copy(records, group)
	return records, true
}

// Segments returns the total number of segments, including announced
// but empty ones.
func (v *SegmentedView) Segments() int {
	return len(v.keys)
}

// RecordCount returns the total number of data records across all
// segments.
func (v *SegmentedView) RecordCount() int {
	n := 0
	for _, group := range v.groups {
		n += len(group)
	}
	return n
}

// segmentFold is the accumulator carried by value through the single
// pass over the assembled sequence.
type segmentFold struct {
	current uint32
	groups  map[uint32][]Record
}

func (f segmentFold) ensure(key uint32) segmentFold {
	if _, ok := f.groups[key]; !ok {
		f.groups[key] = []Record{}
	}
	return f
}

// BuildSegmentedView partitions an assembled sequence into per-segment,
// address-ordered groups. The walk starts in segment 0, so data records
// preceding any extended linear address record land there; a segment
// that is announced but never populated still appears as an empty group,
// so range queries can recognize its boundary.
func BuildSegmentedView(seq Sequence) *SegmentedView {
	fold := segmentFold{current: 0, groups: map[uint32][]Record{}}
	fold = fold.ensure(0)

walk:
	for _, record := range seq {
		switch record.Type {
		case TypeData:
			fold = fold.ensure(fold.current)
			fold.groups[fold.current] = append(fold.groups[fold.current], record)
		case TypeExtendedLinearAddress:
			key := uint32(binary.BigEndian.Uint16(record.Payload)) << 16
			fold = fold.ensure(key)
			fold.current = key
		case TypeEndOfFile:
			break walk
		case TypeUnsupported:
			// Assemble never emits these.
		}
	}

	keys := make([]uint32, 0, len(fold.groups))
	for key := range fold.groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	// Source files may emit data out of address order within a segment.
	for _, group := range fold.groups {
		sort.SliceStable(group, func(i, j int) bool { return group[i].Address < group[j].Address })
	}

	return &SegmentedView{keys: keys, groups: fold.groups}
}
