package divtax

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// Transaction is one row of a brokerage export, kept in the broker's
// own textual form. Rows irrelevant to dividend reporting (buys,
// sells, transfers) pass through here too; the builder filters them.
type Transaction struct {
	Date        string `json:"Date"`
	Account     string `json:"-"`
	Symbol      string `json:"Symbol"`
	Description string `json:"Description"`
	Action      string `json:"Action"`
	Amount      string `json:"Amount"`
}

// DecodeTransactions reads a brokerage export from 'r' and returns its
// transaction rows tagged with the given account identifier (by
// convention the export's file stem, one export per account and year).
//
// The export is a single JSON object whose "BrokerageTransactions"
// property holds the rows. The rows are located with a jsonpath query
// so exports that wrap the array one level deeper keep working.
func DecodeTransactions(r io.Reader, account string) ([]Transaction, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse brokerage export for %q: %w", account, err)
	}

	path := "$.BrokerageTransactions"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("no transactions in export for %q: %q %w", account, path, err)
	}
	jrows, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("no transactions in export for %q: %q is not a list", account, path)
	}

	txs := make([]Transaction, 0, len(jrows))
	for _, jrow := range jrows {
		// round-trip each row through json to fill the typed struct.
		data, err := json.Marshal(jrow)
		if err != nil {
			return nil, fmt.Errorf("cannot re-marshal transaction row for %q: %w", account, err)
		}
		var tx Transaction
		if err := json.Unmarshal(data, &tx); err != nil {
			return nil, fmt.Errorf("cannot parse transaction row for %q: %w", account, err)
		}
		tx.Account = account
		txs = append(txs, tx)
	}
	return txs, nil
}
