package negs

// Document is a decoded NEGS file. It is built once by ReadDocument and
// never modified afterwards.
type Document struct {
	Layout  Layout  `json:"layout"`
	Header  Header  `json:"header"`
	Trades  []Trade `json:"trades"`
	Trailer Trailer `json:"trailer"`
}

// ReadDocument decodes the lines of a NEGS file.
//
// Behavior:
//   - Line 0 is the header, the last line is the trailer, every line in
//     between is a trade.
//   - The layout is detected once from the header and passed to the header
//     and trade parsers.
//   - Fails fast with *FormatError (fewer than 2 lines, short line) or
//     *DecodeError (non-numeric quantity/price/settlement days). Errors carry
//     the 1-based line number.
func ReadDocument(lines []string) (*Document, error) {
	if len(lines) < 2 {
		return nil, &FormatError{Record: "document", Err: ErrTooFewLines}
	}

	layout := DetectLayout(lines[0])

	header, err := ParseHeader(lines[0], layout)
	if err != nil {
		return nil, atLine(err, 1)
	}

	last := len(lines) - 1
	trades := make([]Trade, 0, last-1)
	for i := 1; i < last; i++ {
		t, err := ParseTrade(lines[i], layout)
		if err != nil {
			return nil, atLine(err, i+1)
		}
		trades = append(trades, t)
	}

	trailer, err := ParseTrailer(lines[last])
	if err != nil {
		return nil, atLine(err, last+1)
	}

	return &Document{
		Layout:  layout,
		Header:  header,
		Trades:  trades,
		Trailer: trailer,
	}, nil
}

// Tables returns the header, trades and trailer tables, in that order.
func (d *Document) Tables() []Table {
	trades := Table{Name: "trades", Columns: TradeColumns(d.Layout), Rows: make([][]any, 0, len(d.Trades))}
	for _, t := range d.Trades {
		trades.Rows = append(trades.Rows, t.Row(d.Layout))
	}
	return []Table{
		{Name: "header", Columns: HeaderColumns(), Rows: [][]any{d.Header.Row()}},
		trades,
		{Name: "trailer", Columns: TrailerColumns(), Rows: [][]any{d.Trailer.Row()}},
	}
}
