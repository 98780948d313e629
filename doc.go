// Package divtax converts brokerage dividend and interest transactions
// into dual-currency (USD/JPY) tax reporting records.
//
// The pipeline decodes per-year brokerage exports into raw entries,
// classifies each entry (dividend vs interest, reinvested or cash),
// converts the US dollar amounts into yen using a historical exchange
// rate table, and aggregates the resulting records per symbol and per
// account for the report writers.
package divtax
