package negs

import "fmt"

// Layout selects one of the two NEGS field tables.
type Layout int

const (
	// LayoutStandard is used when client accounts fit in 7 digits.
	LayoutStandard Layout = iota
	// LayoutExtended is used when client accounts exceed 7 digits; it moves
	// the client code to the tail of the trade record.
	LayoutExtended
)

const (
	// layoutMarkerOffset is the header byte that selects the layout.
	layoutMarkerOffset = 39
	layoutMarker       = 'S'
)

// DetectLayout inspects the header line and returns LayoutExtended when the
// marker byte is 'S'. Any other byte, or a line too short to hold it, means
// LayoutStandard.
func DetectLayout(headerLine string) Layout {
	r := newRecord(headerLine)
	if r.len() > layoutMarkerOffset && r.at(layoutMarkerOffset) == layoutMarker {
		return LayoutExtended
	}
	return LayoutStandard
}

func (l Layout) String() string {
	switch l {
	case LayoutStandard:
		return "standard"
	case LayoutExtended:
		return "extended"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

// MarshalText renders the layout name in JSON payloads.
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
