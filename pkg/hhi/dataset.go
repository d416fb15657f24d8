// Package hhi computes the Herfindahl-Hirschman Index for the Internet
// Exchange market of a country, from a locally downloaded PeeringDB dump.
//
// The pipeline is a chain of pure stages: load the dump, resolve the
// country scope, aggregate a market metric per exchange, then compute
// shares and the index. Each stage takes plain inputs and returns plain
// outputs so it can be tested on its own.
package hhi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNotFound indicates the dump file does not exist.
	ErrNotFound = errors.New("dump file not found")

	// ErrMalformed indicates the dump file is not valid JSON of the
	// expected shape.
	ErrMalformed = errors.New("malformed dump file")
)

// Exchange is a PeeringDB ix record.
type Exchange struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"` // ISO 3166-1 alpha-2
}

// ExchangeLAN is a PeeringDB ixlan record, the join key between an
// exchange and the networks connected to it.
type ExchangeLAN struct {
	ID   int `json:"id"`
	IXID int `json:"ix_id"`
}

// NetworkLink is a PeeringDB netixlan record: one network's connection
// to an exchange LAN. Speed is in Mbps and may be absent or zero.
type NetworkLink struct {
	IXLanID int   `json:"ixlan_id"`
	NetID   int   `json:"net_id"`
	Speed   int64 `json:"speed"`
}

// Dump holds the three record collections of a PeeringDB dump file.
type Dump struct {
	IX struct {
		Data []Exchange `json:"data"`
	} `json:"ix"`
	IXLan struct {
		Data []ExchangeLAN `json:"data"`
	} `json:"ixlan"`
	NetIXLan struct {
		Data []NetworkLink `json:"data"`
	} `json:"netixlan"`
}

// LoadDump reads and parses a PeeringDB JSON dump.
// Returns ErrNotFound when the path does not exist and ErrMalformed when
// the content cannot be parsed; the collections are returned unmodified
// for downstream filtering.
func LoadDump(path string) (*Dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read dump %q: %w", path, err)
	}

	var dump Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return &dump, nil
}
