// Package tron converts TRON account addresses between the 21 byte hex form
// used by node APIs and the base58check form users see.
package tron

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const addressPrefix byte = 0x41

var ErrInvalidAddress = errors.New("invalid tron address")

// HexToBase58 accepts "41" + 40 hex chars, with or without 0x.
func HexToBase58(h string) (string, error) {
	h = strings.TrimPrefix(strings.ToLower(h), "0x")
	raw, err := hex.DecodeString(h)
	if err != nil || len(raw) != 21 || raw[0] != addressPrefix {
		return "", ErrInvalidAddress
	}
	return base58.CheckEncode(raw[1:], addressPrefix), nil
}

func Base58ToHex(address string) (string, error) {
	payload, version, err := base58.CheckDecode(address)
	if err != nil || version != addressPrefix || len(payload) != 20 {
		return "", ErrInvalidAddress
	}
	return hex.EncodeToString(append([]byte{addressPrefix}, payload...)), nil
}

func IsBase58Address(address string) bool {
	_, err := Base58ToHex(address)
	return err == nil
}

// Normalize returns the base58 form of either representation.
func Normalize(address string) (string, error) {
	address = strings.TrimSpace(address)
	if strings.HasPrefix(address, "T") {
		if !IsBase58Address(address) {
			return "", ErrInvalidAddress
		}
		return address, nil
	}
	return HexToBase58(address)
}
