package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GlebRadaev/novafunded/pkg/clients"
	"github.com/GlebRadaev/novafunded/pkg/tron"
)

const (
	triggerSmartContract = "TriggerSmartContract"
	transferSelector     = "a9059cbb"
	transferDataLen      = 136
	contractRetSuccess   = "SUCCESS"
)

type TronGrid struct {
	fetcher
	baseURL string
	apiKey  string
}

func NewTronGrid(baseURL, apiKey string, timeout time.Duration, client clients.HTTPClientI) *TronGrid {
	return &TronGrid{
		fetcher: fetcher{client: client, timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type gridTransaction struct {
	TxID string `json:"txID"`
	Ret  []struct {
		ContractRet string `json:"contractRet"`
	} `json:"ret"`
	RawData struct {
		Contract []struct {
			Type      string `json:"type"`
			Parameter struct {
				Value struct {
					Data            string `json:"data"`
					OwnerAddress    string `json:"owner_address"`
					ContractAddress string `json:"contract_address"`
				} `json:"value"`
			} `json:"parameter"`
		} `json:"contract"`
	} `json:"raw_data"`
}

type gridEnvelope struct {
	gridTransaction
	Data []gridTransaction `json:"data"`
}

func (g *TronGrid) FetchTransfer(ctx context.Context, hash string) (*Transaction, error) {
	headers := http.Header{}
	headers.Set("TRON-PRO-API-KEY", g.apiKey)
	headers.Set("Accept", "application/json")

	body, err := g.get(ctx, g.baseURL+"/v1/transactions/"+url.PathEscape(hash), headers)
	if err != nil {
		return nil, err
	}

	var envelope gridEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	tx := envelope.gridTransaction
	if envelope.Data != nil {
		if len(envelope.Data) == 0 {
			return nil, ErrTransactionNotFound
		}
		tx = envelope.Data[0]
	}
	if tx.TxID == "" && len(tx.RawData.Contract) == 0 {
		return nil, ErrTransactionNotFound
	}

	result := &Transaction{
		Hash:    tx.TxID,
		Success: len(tx.Ret) > 0 && tx.Ret[0].ContractRet == contractRetSuccess,
	}
	for _, contract := range tx.RawData.Contract {
		if contract.Type != triggerSmartContract {
			continue
		}
		value := contract.Parameter.Value
		transfer, ok, err := decodeTransfer(value.Data)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		transfer.Contract = addressOrRaw(value.ContractAddress)
		transfer.From = addressOrRaw(value.OwnerAddress)
		result.Transfers = append(result.Transfers, transfer)
	}
	return result, nil
}

// decodeTransfer reads transfer(address,uint256) call data. ok is false for
// any other contract call.
func decodeTransfer(data string) (Transfer, bool, error) {
	data = strings.ToLower(strings.TrimPrefix(data, "0x"))
	if len(data) < transferDataLen || !strings.HasPrefix(data, transferSelector) {
		return Transfer{}, false, nil
	}

	to, err := tron.HexToBase58("41" + data[32:72])
	if err != nil {
		return Transfer{}, false, fmt.Errorf("%w: recipient: %v", ErrMalformedResponse, err)
	}
	amount, ok := new(big.Int).SetString(data[72:136], 16)
	if !ok {
		return Transfer{}, false, fmt.Errorf("%w: amount %q", ErrMalformedResponse, data[72:136])
	}
	return Transfer{To: to, Amount: amount}, true, nil
}

// addressOrRaw keeps values the codec cannot read so a mismatch is still
// visible in logs.
func addressOrRaw(address string) string {
	normalized, err := tron.Normalize(address)
	if err != nil {
		return address
	}
	return normalized
}
