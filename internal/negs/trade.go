package negs

import "github.com/shopspring/decimal"

// tradeWidth is the last offset read from a trade line under either layout.
const tradeWidth = 201

// Trade is one trade record (registro de negócio) of a NEGS document.
//
// ClientCode and Reserved3 are read from different spans depending on the
// layout. The extended-only fields stay empty under LayoutStandard.
type Trade struct {
	RecordType           string          `json:"tipo_registro"`
	TradeNumber          string          `json:"numero_negocio_por_codigo_negociacao"`
	Side                 string          `json:"natureza_operacao"`
	Ticker               string          `json:"codigo_negociacao"`
	MarketType           string          `json:"tipo_mercado"`
	TransactionType      string          `json:"tipo_transacao"`
	IssuerName           string          `json:"nome_sociedade_emissora"`
	Specification        string          `json:"especificacao"`
	Quantity             int64           `json:"quantidade_negocio"`
	Price                decimal.Decimal `json:"preco_negocio"`
	CounterpartyUserCode string          `json:"codigo_usuario_contraparte"`
	MaturityTerm         string          `json:"prazo_vencimento"`
	SettlementType       string          `json:"tipo_liquidacao"`
	TradeTime            string          `json:"hora_minuto_negocio"`
	Status               string          `json:"situacao_negocio"`
	UnderlyingCode       string          `json:"codigo_objeto_papel"`
	ClientCode           string          `json:"codigo_cliente"`
	ClientDigit          string          `json:"digito_cliente"`
	ISIN                 string          `json:"codigo_isin"`
	ISINDistribution     string          `json:"distribuicao_isin"`
	QuoteFactor          string          `json:"fator_cotacao_negocio"`
	StrikePrice          string          `json:"preco_exercicio_serie"`
	AfterMarket          string          `json:"indicador_after_market"`
	Reserved1            string          `json:"reserva1"`
	ForwardTerm          string          `json:"prazo_vencimento_termo"`
	Reserved2            string          `json:"reserva2"`
	Exchange             string          `json:"bolsa_movimento"`
	SettlementDays       int64           `json:"prazo_liquidacao"`
	Reserved3            string          `json:"reserva3"`
	RepurchaseType       string          `json:"tipo_operacao_recompra"`

	InstrumentGroupPhase string `json:"fase_grupo_instrumento,omitempty"`
	SessionPhase         string `json:"fase_sessao_negociacao,omitempty"`
	InstrumentState      string `json:"estado_instrumento,omitempty"`
	BDICode              string `json:"codigo_bdi,omitempty"`
}

var (
	trRecordType           = span{0, 2}
	trTradeNumber          = span{2, 9}
	trSide                 = span{9, 10}
	trTicker               = span{10, 22}
	trMarketType           = span{22, 25}
	trTransactionType      = span{25, 28}
	trIssuerName           = span{28, 40}
	trSpecification        = span{40, 50}
	trQuantity             = span{50, 61}
	trPrice                = span{61, 72}
	trCounterpartyUserCode = span{72, 77}
	trMaturityTerm         = span{77, 80}
	trTradeTime            = span{81, 86}
	trStatus               = span{86, 87}
	trUnderlyingCode       = span{87, 99}
	trClientCode           = span{99, 106}
	trClientDigit          = span{106, 107}
	trISIN                 = span{107, 119}
	trISINDistribution     = span{119, 122}
	trQuoteFactor          = span{122, 129}
	trStrikePrice          = span{129, 140}
	trAfterMarket          = span{140, 141}
	trReserved1            = span{141, 149}
	trForwardTerm          = span{149, 154}
	trReserved2            = span{154, 167}
	trExchange             = span{167, 168}
	trSettlementType       = span{168, 169}
	trSettlementDays       = span{169, 172}
	trReserved3            = span{172, 198}
	trRepurchaseType       = span{200, 201}

	// Extended layout; [172,200) is remapped.
	trInstrumentGroupPhase = span{172, 175}
	trSessionPhase         = span{175, 176}
	trInstrumentState      = span{176, 180}
	trBDICode              = span{180, 184}
	trClientCodeExtended   = span{184, 193}
	trReserved3Extended    = span{193, 200}
)

var tradeColumns = []column[Trade]{
	{"tipo_registro", func(t Trade) any { return t.RecordType }},
	{"numero_negocio_por_codigo_negociacao", func(t Trade) any { return t.TradeNumber }},
	{"natureza_operacao", func(t Trade) any { return t.Side }},
	{"codigo_negociacao", func(t Trade) any { return t.Ticker }},
	{"tipo_mercado", func(t Trade) any { return t.MarketType }},
	{"tipo_transacao", func(t Trade) any { return t.TransactionType }},
	{"nome_sociedade_emissora", func(t Trade) any { return t.IssuerName }},
	{"especificacao", func(t Trade) any { return t.Specification }},
	{"quantidade_negocio", func(t Trade) any { return t.Quantity }},
	{"preco_negocio", func(t Trade) any { return t.Price }},
	{"codigo_usuario_contraparte", func(t Trade) any { return t.CounterpartyUserCode }},
	{"prazo_vencimento", func(t Trade) any { return t.MaturityTerm }},
	{"tipo_liquidacao", func(t Trade) any { return t.SettlementType }},
	{"hora_minuto_negocio", func(t Trade) any { return t.TradeTime }},
	{"situacao_negocio", func(t Trade) any { return t.Status }},
	{"codigo_objeto_papel", func(t Trade) any { return t.UnderlyingCode }},
	{"codigo_cliente", func(t Trade) any { return t.ClientCode }},
	{"digito_cliente", func(t Trade) any { return t.ClientDigit }},
	{"codigo_isin", func(t Trade) any { return t.ISIN }},
	{"distribuicao_isin", func(t Trade) any { return t.ISINDistribution }},
	{"fator_cotacao_negocio", func(t Trade) any { return t.QuoteFactor }},
	{"preco_exercicio_serie", func(t Trade) any { return t.StrikePrice }},
	{"indicador_after_market", func(t Trade) any { return t.AfterMarket }},
	{"reserva1", func(t Trade) any { return t.Reserved1 }},
	{"prazo_vencimento_termo", func(t Trade) any { return t.ForwardTerm }},
	{"reserva2", func(t Trade) any { return t.Reserved2 }},
	{"bolsa_movimento", func(t Trade) any { return t.Exchange }},
	{"prazo_liquidacao", func(t Trade) any { return t.SettlementDays }},
	{"reserva3", func(t Trade) any { return t.Reserved3 }},
	{"tipo_operacao_recompra", func(t Trade) any { return t.RepurchaseType }},
}

var extendedTradeColumns = []column[Trade]{
	{"fase_grupo_instrumento", func(t Trade) any { return t.InstrumentGroupPhase }},
	{"fase_sessao_negociacao", func(t Trade) any { return t.SessionPhase }},
	{"estado_instrumento", func(t Trade) any { return t.InstrumentState }},
	{"codigo_bdi", func(t Trade) any { return t.BDICode }},
}

func tradeColumnSets(layout Layout) [][]column[Trade] {
	if layout == LayoutExtended {
		return [][]column[Trade]{tradeColumns, extendedTradeColumns}
	}
	return [][]column[Trade]{tradeColumns}
}

// TradeColumns returns the trade column names for layout. The extended
// layout appends its four extra columns.
func TradeColumns(layout Layout) []string {
	return columnNames(tradeColumnSets(layout)...)
}

// Row returns the trade values in TradeColumns(layout) order.
func (t Trade) Row(layout Layout) []any {
	return columnValues(t, tradeColumnSets(layout)...)
}

// ParseTrade decodes one trade line under the given layout.
func ParseTrade(line string, layout Layout) (Trade, error) {
	rec := newRecord(line)
	if rec.len() < tradeWidth {
		return Trade{}, shortLine("trade", rec.len(), tradeWidth)
	}
	f := &fieldReader{rec: rec}

	clientCode, reserved3 := trClientCode, trReserved3
	if layout == LayoutExtended {
		clientCode, reserved3 = trClientCodeExtended, trReserved3Extended
	}

	t := Trade{
		RecordType:           f.text(trRecordType),
		TradeNumber:          f.text(trTradeNumber),
		Side:                 f.text(trSide),
		Ticker:               f.text(trTicker),
		MarketType:           f.text(trMarketType),
		TransactionType:      f.text(trTransactionType),
		IssuerName:           f.text(trIssuerName),
		Specification:        f.text(trSpecification),
		Quantity:             f.integer("quantidade_negocio", trQuantity),
		Price:                f.scaled("preco_negocio", trPrice, PriceDivisor),
		CounterpartyUserCode: f.text(trCounterpartyUserCode),
		MaturityTerm:         f.text(trMaturityTerm),
		SettlementType:       f.text(trSettlementType),
		TradeTime:            f.text(trTradeTime),
		Status:               f.text(trStatus),
		UnderlyingCode:       f.text(trUnderlyingCode),
		ClientCode:           f.text(clientCode),
		ClientDigit:          f.text(trClientDigit),
		ISIN:                 f.text(trISIN),
		ISINDistribution:     f.text(trISINDistribution),
		QuoteFactor:          f.text(trQuoteFactor),
		StrikePrice:          f.text(trStrikePrice),
		AfterMarket:          f.text(trAfterMarket),
		Reserved1:            f.text(trReserved1),
		ForwardTerm:          f.text(trForwardTerm),
		Reserved2:            f.text(trReserved2),
		Exchange:             f.text(trExchange),
		SettlementDays:       f.integer("prazo_liquidacao", trSettlementDays),
		Reserved3:            f.text(reserved3),
		RepurchaseType:       f.text(trRepurchaseType),
	}
	if layout == LayoutExtended {
		t.InstrumentGroupPhase = f.text(trInstrumentGroupPhase)
		t.SessionPhase = f.text(trSessionPhase)
		t.InstrumentState = f.text(trInstrumentState)
		t.BDICode = f.text(trBDICode)
	}
	if f.err != nil {
		return Trade{}, f.err
	}
	return t, nil
}
