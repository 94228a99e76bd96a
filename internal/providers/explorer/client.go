package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/feral-file/ff-staking-api/internal/adapter"
	"github.com/feral-file/ff-staking-api/internal/domain"
	"github.com/feral-file/ff-staking-api/internal/ratelimit"
)

const (
	// statusOK is the explorer's success status
	statusOK = "1"
	// noTransactionsMessage is returned with status "0" when the address has no history
	noTransactionsMessage = "No transactions found"
)

// Transaction is a normal transaction as returned by the explorer txlist action.
// All numeric fields are decimal strings on the wire.
type Transaction struct {
	BlockNumber      string `json:"blockNumber"`
	TimeStamp        string `json:"timeStamp"`
	Hash             string `json:"hash"`
	From             string `json:"from"`
	To               string `json:"to"`
	Input            string `json:"input"`
	IsError          string `json:"isError"`
	TxReceiptStatus  string `json:"txreceipt_status"`
	FunctionName     string `json:"functionName,omitempty"`
	MethodID         string `json:"methodId,omitempty"`
	ContractAddress  string `json:"contractAddress,omitempty"`
	TransactionIndex string `json:"transactionIndex,omitempty"`
}

// Failed reports whether the transaction reverted
func (t Transaction) Failed() bool {
	return t.IsError != "0"
}

// TimestampMillis returns the block timestamp in unix milliseconds
func (t Transaction) TimestampMillis() (int64, error) {
	seconds, err := strconv.ParseInt(t.TimeStamp, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", t.TimeStamp, err)
	}
	return seconds * 1000, nil
}

// response is the explorer's envelope; result is an array on success
// and a string describing the problem on failure
type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// Client defines the interface for explorer client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/explorer_client.go -package=mocks -mock_names=Client=MockExplorerClient
type Client interface {
	// ListTransactions returns all normal transactions of an address in ascending block order
	ListTransactions(ctx context.Context, address string) ([]Transaction, error)
}

// Config holds the explorer endpoint settings
type Config struct {
	APIURL string
	APIKey string
	// ChainID is sent as chainid when non-zero (Etherscan v2 multichain API)
	ChainID uint64
}

// client is the Etherscan-compatible implementation of Client
type client struct {
	cfg        Config
	httpClient adapter.HTTPClient
	json       adapter.JSON
	limiter    ratelimit.Limiter
}

// NewClient creates a new explorer client
func NewClient(cfg Config, httpClient adapter.HTTPClient, json adapter.JSON, limiter ratelimit.Limiter) Client {
	return &client{
		cfg:        cfg,
		httpClient: httpClient,
		json:       json,
		limiter:    limiter,
	}
}

// ListTransactions returns all normal transactions of an address in ascending block order
func (c *client) ListTransactions(ctx context.Context, address string) ([]Transaction, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := c.httpClient.GetBytes(ctx, c.txListURL(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for %s: %w", address, err)
	}

	var resp response
	if err := c.json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode explorer response: %w", err)
	}

	var txs []Transaction
	if err := c.json.Unmarshal(resp.Result, &txs); err != nil {
		// result is a plain string message when the request was rejected
		var message string
		if c.json.Unmarshal(resp.Result, &message) == nil {
			return nil, fmt.Errorf("%w: %s: %s", domain.ErrExplorerResponse, resp.Message, message)
		}
		return nil, fmt.Errorf("failed to decode explorer result: %w", err)
	}

	if resp.Status != statusOK && len(txs) == 0 && resp.Message != noTransactionsMessage {
		return nil, fmt.Errorf("%w: %s", domain.ErrExplorerResponse, resp.Message)
	}

	if txs == nil {
		txs = []Transaction{}
	}

	return txs, nil
}

// txListURL builds the txlist query for an address sorted ascending
func (c *client) txListURL(address string) string {
	params := url.Values{}
	if c.cfg.ChainID != 0 {
		params.Set("chainid", strconv.FormatUint(c.cfg.ChainID, 10))
	}
	params.Set("module", "account")
	params.Set("action", "txlist")
	params.Set("address", address)
	params.Set("sort", "asc")
	if c.cfg.APIKey != "" {
		params.Set("apikey", c.cfg.APIKey)
	}
	return fmt.Sprintf("%s?%s", c.cfg.APIURL, params.Encode())
}
