package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"time"

	"github.com/GlebRadaev/novafunded/pkg/clients"
)

type TronScan struct {
	fetcher
	baseURL string
}

func NewTronScan(baseURL string, timeout time.Duration, client clients.HTTPClientI) *TronScan {
	return &TronScan{
		fetcher: fetcher{client: client, timeout: timeout},
		baseURL: baseURL,
	}
}

type scanTransaction struct {
	Hash        string `json:"hash"`
	ContractRet string `json:"contractRet"`
	TriggerInfo struct {
		ContractAddress string `json:"contract_address"`
	} `json:"trigger_info"`
	TRC20TransferInfo []struct {
		ContractAddress string `json:"contract_address"`
		FromAddress     string `json:"from_address"`
		ToAddress       string `json:"to_address"`
		AmountStr       string `json:"amount_str"`
	} `json:"trc20TransferInfo"`
}

func (s *TronScan) FetchTransfer(ctx context.Context, hash string) (*Transaction, error) {
	headers := http.Header{}
	headers.Set("Accept", "application/json")

	body, err := s.get(ctx, s.baseURL+"/api/transaction-info?hash="+url.QueryEscape(hash), headers)
	if err != nil {
		return nil, err
	}

	var tx scanTransaction
	if err := json.Unmarshal(body, &tx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	// TronScan answers 200 with an empty object for hashes it does not know.
	if tx.Hash == "" && tx.ContractRet == "" {
		return nil, ErrTransactionNotFound
	}

	result := &Transaction{
		Hash:    tx.Hash,
		Success: tx.ContractRet == contractRetSuccess,
	}
	for _, info := range tx.TRC20TransferInfo {
		amount, ok := new(big.Int).SetString(info.AmountStr, 10)
		if !ok {
			return nil, fmt.Errorf("%w: amount %q", ErrMalformedResponse, info.AmountStr)
		}
		contract := info.ContractAddress
		if contract == "" {
			contract = tx.TriggerInfo.ContractAddress
		}
		result.Transfers = append(result.Transfers, Transfer{
			Contract: addressOrRaw(contract),
			From:     addressOrRaw(info.FromAddress),
			To:       addressOrRaw(info.ToAddress),
			Amount:   amount,
		})
	}
	return result, nil
}
