package feedbus

// DefaultTypeDefs returns the standard catalog of inbound message types for
// the trading-data feed: market ticks, order and execution reports, account
// and portfolio updates, market depth, news, historical and realtime bars,
// and the error event. The field order of each definition matches the
// positional order the feed delivers.
//
// The catalog is plain data. Receivers never depend on it implicitly; pass
// DefaultRegistry (or a trimmed-down registry of your own) at construction.
func DefaultTypeDefs() []TypeDef {
	return []TypeDef{
		{Name: "tickPrice", Fields: []string{"tickerId", "field", "price", "canAutoExecute"}},
		{Name: "tickSize", Fields: []string{"tickerId", "field", "size"}},
		{Name: "tickGeneric", Fields: []string{"tickerId", "tickType", "value"}},
		{Name: "tickString", Fields: []string{"tickerId", "tickType", "value"}},
		{Name: "tickSnapshotEnd", Fields: []string{"reqId"}},
		{Name: "orderStatus", Fields: []string{"orderId", "status", "filled", "remaining", "avgFillPrice", "permId", "parentId", "lastFillPrice", "clientId", "whyHeld"}},
		{Name: "openOrder", Fields: []string{"orderId", "symbol", "action", "quantity", "limitPrice", "status"}},
		{Name: "openOrderEnd", Fields: nil},
		{Name: "nextValidId", Fields: []string{"orderId"}},
		{Name: "updateAccountValue", Fields: []string{"key", "value", "currency", "accountName"}},
		{Name: "updatePortfolio", Fields: []string{"symbol", "position", "marketPrice", "marketValue", "averageCost", "unrealizedPNL", "realizedPNL", "accountName"}},
		{Name: "updateAccountTime", Fields: []string{"timestamp"}},
		{Name: "accountDownloadEnd", Fields: []string{"accountName"}},
		{Name: "managedAccounts", Fields: []string{"accountsList"}},
		{Name: "contractDetails", Fields: []string{"reqId", "symbol", "exchange", "currency", "longName"}},
		{Name: "contractDetailsEnd", Fields: []string{"reqId"}},
		{Name: "execDetails", Fields: []string{"reqId", "symbol", "side", "shares", "price", "execId", "time"}},
		{Name: "execDetailsEnd", Fields: []string{"reqId"}},
		{Name: "updateMktDepth", Fields: []string{"tickerId", "position", "operation", "side", "price", "size"}},
		{Name: "updateNewsBulletin", Fields: []string{"msgId", "msgType", "message", "origExchange"}},
		{Name: "historicalData", Fields: []string{"reqId", "date", "open", "high", "low", "close", "volume", "count", "wap", "hasGaps"}},
		{Name: "realtimeBar", Fields: []string{"reqId", "time", "open", "high", "low", "close", "volume", "wap", "count"}},
		{Name: "currentTime", Fields: []string{"time"}},
		{Name: "connectionClosed", Fields: nil},
		{Name: "error", Fields: []string{"id", "errorCode", "errorMsg"}},
	}
}

// DefaultRegistry builds a registry over the full default catalog.
func DefaultRegistry() *Registry {
	return MustRegistry(DefaultTypeDefs()...)
}
