package domain

// Canonical column names used after the load-time schema mapping.
const (
	ColDate                = "Date"
	ColSymbol              = "Symbol"
	ColInstrument          = "Instrument"
	ColDay                 = "Day"
	ColBtFrwdLongQty       = "BtFrwdLongQty"
	ColBtFrwdShortQty      = "BtFrwdShortQty"
	ColNetQtyCarryFwd      = "NetQtyCarryFwd"
	ColNetValue            = "NetValue_in_Cr"
	ColNewTotal            = "NewTotal"
	ColTotalBuyClients     = "TotalBuyClients"
	ColTotalSellClients    = "TotalSellClients"
	ColBuyPercent          = "BuyPercent"
	ColSellPercent         = "SellPercent"
	ColMarketCap           = "MarketCap"
	ColMarketCapPercentage = "MarketCap_Percentage"
	ColNSEIClose           = "NSEI_Close"
	ColID                  = "id"
	ColCreatedAt           = "created_at"
	ColUpdatedAt           = "updated_at"
)
