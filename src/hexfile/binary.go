package hexfile

// Flatten renders the data records of a segmented view into a
// contiguous byte image of the given size starting at the given
// absolute address. Addresses not covered by any record are filled with
// the padding byte. Records outside the window are ignored.
func Flatten(view *SegmentedView, start uint32, size uint32, padding byte) []byte {
	image := make([]byte, size)
	for i := range image {
		image[i] = padding
	}
	end := uint64(start) + uint64(size)

	for _, key := range view.keys {
		for _, record := range view.groups[key] {
			absolute := uint64(key) + uint64(record.Address)
			for i, b := range record.Payload {
				address := absolute + uint64(i)
				if address < uint64(start) || address >= end {
					continue
				}
				image[address-uint64(start)] = b
			}
		}
	}

	return image
}
