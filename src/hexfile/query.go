package hexfile

// QueryRange computes the subset of a segmented view whose absolute
// addresses (segment key + local address) fall inside the inclusive
// range. The result is a new view preserving ascending segment key order
// and per-segment address order; segments with no matching records are
// omitted. The underlying view is not mutated, so repeated and
// concurrent queries against one built view are safe.
func QueryRange(view *SegmentedView, rng Range32) (*SegmentedView, error) {
	if rng.End < rng.Start {
		return nil, &InvalidRangeError{Start: rng.Start, End: rng.End}
	}

	startSegment := rng.Start & 0xFFFF0000
	startLocal := uint16(rng.Start)
	endSegment := rng.End & 0xFFFF0000
	endLocal := uint16(rng.End)

	result := &SegmentedView{groups: map[uint32][]Record{}}

	for _, key := range view.keys {
		if key < startSegment || key > endSegment {
			continue
		}

		var low, high uint16 = 0, 0xFFFF
		if key == startSegment {
			low = startLocal
		}
		if key == endSegment {
			high = endLocal
		}

		var matched []Record
		for _, record := range view.groups[key] {
			if record.Address >= low && record.Address <= high {
				matched = append(matched, record)
			}
		}
		if len(matched) == 0 {
			continue
		}

		result.keys = append(result.keys, key)
		result.groups[key] = matched
	}

	return result, nil
}
