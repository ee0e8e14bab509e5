// Command spvverify runs a single SPV verification from a proof-request JSON
// file and prints the outcome as JSON. It is an operator tool around the spv
// package; the serving and attestation layers live elsewhere.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"

	"github.com/bitproof-org/libspv-go/address"
	"github.com/bitproof-org/libspv-go/config"
	"github.com/bitproof-org/libspv-go/spv"
)

type options struct {
	Request       string `short:"r" long:"request" required:"true" description:"Path to the proof-request JSON file"`
	Config        string `short:"c" long:"config" description:"Path to the configuration file (default: <datadir>/config)"`
	HeaderDB      string `long:"header-db" description:"bbolt database used to cache verified block headers"`
	Cache         bool   `long:"cache" description:"Cache verified headers under the configured data directory"`
	InclusionOnly bool   `long:"inclusion-only" description:"Only check the txid and Merkle inclusion against merkle_root"`
}

// request mirrors the proof-request wire shape: hash fields are display-order
// hex. block_header carries the 80-byte header for full verification;
// merkle_root alone suffices for --inclusion-only.
type request struct {
	TxID           string   `json:"tx_hash"`
	RawTx          string   `json:"tx"`
	MerkleSiblings []string `json:"merkle_siblings"`
	Position       uint32   `json:"position"`
	MerkleRoot     string   `json:"merkle_root,omitempty"`
	BlockHeader    string   `json:"block_header,omitempty"`
	Address        string   `json:"address,omitempty"`
}

type response struct {
	Valid         bool   `json:"valid"`
	BlockHash     string `json:"block_hash,omitempty"`
	TotalSatoshis uint64 `json:"total_satoshis,omitempty"`
	Error         string `json:"error,omitempty"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}

	resp := run(&opts)

	out, err := json.Marshal(resp)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Println(string(out))

	if !resp.Valid {
		os.Exit(1)
	}
}

// loadConfig resolves the tool configuration: an explicit --config path must
// exist; otherwise the default location is tried and defaults are used when
// no file is present.
func loadConfig(opts *options) (config.Config, error) {
	path := opts.Config
	if path == "" {
		path = config.ConfigPath(config.DefaultDataDir())
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		if opts.Config == "" && errors.Is(err, config.ErrConfigNotFound) {
			cfg = config.DefaultConfig()
		} else {
			return cfg, err
		}
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(opts *options) response {
	cfg, err := loadConfig(opts)
	if err != nil {
		return response{Error: err.Error()}
	}

	dbPath := opts.HeaderDB
	if dbPath == "" && opts.Cache {
		dbPath = filepath.Join(cfg.DataDir, "headers.db")
	}

	data, err := os.ReadFile(opts.Request)
	if err != nil {
		return response{Error: fmt.Sprintf("read request: %v", err)}
	}

	var req request
	if err := json.Unmarshal(data, &req); err != nil {
		return response{Error: fmt.Sprintf("parse request: %v", err)}
	}

	if opts.InclusionOnly {
		err := spv.VerifyInclusion(req.RawTx, req.TxID, req.MerkleSiblings, req.Position, req.MerkleRoot)
		if err != nil {
			return response{Error: err.Error()}
		}
		return response{Valid: true}
	}

	// A segwit target from the wrong network would never match an output;
	// reject it up front with a clearer message.
	if _, ok := address.ResolveTarget(req.Address); ok &&
		!strings.HasPrefix(strings.ToLower(req.Address), cfg.HRP()+"1") {
		return response{Error: fmt.Sprintf("address %q does not match configured network %q", req.Address, cfg.Network)}
	}

	verifyReq := &spv.Request{
		RawTxHex:       req.RawTx,
		TxID:           req.TxID,
		MerkleSiblings: req.MerkleSiblings,
		Position:       req.Position,
		BlockHeaderHex: req.BlockHeader,
		Address:        req.Address,
	}

	var result *spv.Result
	if dbPath != "" {
		store, err := spv.OpenBoltHeaderStore(dbPath)
		if err != nil {
			return response{Error: err.Error()}
		}
		defer store.Close()
		result, err = spv.VerifyStored(verifyReq, store)
		if err != nil {
			return response{Error: err.Error()}
		}
	} else {
		result, err = spv.Verify(verifyReq)
		if err != nil {
			return response{Error: err.Error()}
		}
	}

	return response{
		Valid:         true,
		BlockHash:     result.BlockHash,
		TotalSatoshis: result.TotalSatoshis,
	}
}
