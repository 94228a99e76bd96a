package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ff-staking-api/internal/adapter"
	"github.com/feral-file/ff-staking-api/internal/domain"
	"github.com/feral-file/ff-staking-api/internal/logger"
)

const (
	// nftABIJSON covers the enumerable ERC721 reads plus the collection's tier getter
	nftABIJSON = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"index","type":"uint256"}],"name":"tokenOfOwnerByIndex","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"getTier","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

	// stakingABIJSON covers the staking contract's write methods
	stakingABIJSON = `[
	{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"stakePass","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"unstakePass","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"rentPass","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

	defaultReceiptPollInterval = 2 * time.Second
)

var (
	nftABI     = mustParseABI(nftABIJSON)
	stakingABI = mustParseABI(stakingABIJSON)
)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(fmt.Sprintf("failed to parse ABI: %v", err))
	}
	return parsed
}

// EthereumClient defines the on-chain operations of the NFT and staking contracts
//
//go:generate mockgen -source=client.go -destination=../../mocks/ethereum_client.go -package=mocks -mock_names=EthereumClient=MockEthereumClient
type EthereumClient interface {
	// BalanceOf returns the number of NFTs held by owner
	BalanceOf(ctx context.Context, owner string) (*big.Int, error)

	// TokenOfOwnerByIndex returns the token id at index of owner's token list
	TokenOfOwnerByIndex(ctx context.Context, owner string, index *big.Int) (*big.Int, error)

	// GetTier returns the tier code of a token
	GetTier(ctx context.Context, tokenID *big.Int) (*big.Int, error)

	// StakePass submits stakePass(tokenId) and waits for it to be mined
	StakePass(ctx context.Context, tokenID *big.Int) (*domain.TransactionResult, error)

	// UnstakePass submits unstakePass(tokenId) and waits for it to be mined
	UnstakePass(ctx context.Context, tokenID *big.Int) (*domain.TransactionResult, error)

	// RentPass submits rentPass(tokenId) and waits for it to be mined
	RentPass(ctx context.Context, tokenID *big.Int) (*domain.TransactionResult, error)
}

// Config holds the contract addresses and transaction settings of the client
type Config struct {
	NFTAddress          string
	StakingAddress      string
	ChainID             *big.Int
	ReceiptPollInterval time.Duration
}

type ethereumClient struct {
	nftAddress     common.Address
	stakingAddress common.Address
	chainID        *big.Int
	pollInterval   time.Duration
	client         adapter.EthClient
	clock          adapter.Clock
	signer         *Signer
}

// NewClient creates a contract client. signer may be nil, in which case the
// write passthroughs return domain.ErrSignerNotConfigured.
func NewClient(cfg Config, client adapter.EthClient, clock adapter.Clock, signer *Signer) EthereumClient {
	pollInterval := cfg.ReceiptPollInterval
	if pollInterval <= 0 {
		pollInterval = defaultReceiptPollInterval
	}

	return &ethereumClient{
		nftAddress:     common.HexToAddress(cfg.NFTAddress),
		stakingAddress: common.HexToAddress(cfg.StakingAddress),
		chainID:        cfg.ChainID,
		pollInterval:   pollInterval,
		client:         client,
		clock:          clock,
		signer:         signer,
	}
}

// BalanceOf returns the number of NFTs held by owner
func (c *ethereumClient) BalanceOf(ctx context.Context, owner string) (*big.Int, error) {
	return c.callUint256(ctx, "balanceOf", common.HexToAddress(owner))
}

// TokenOfOwnerByIndex returns the token id at index of owner's token list
func (c *ethereumClient) TokenOfOwnerByIndex(ctx context.Context, owner string, index *big.Int) (*big.Int, error) {
	return c.callUint256(ctx, "tokenOfOwnerByIndex", common.HexToAddress(owner), index)
}

// GetTier returns the tier code of a token
func (c *ethereumClient) GetTier(ctx context.Context, tokenID *big.Int) (*big.Int, error) {
	return c.callUint256(ctx, "getTier", tokenID)
}

// callUint256 calls a read-only NFT contract method returning a single uint256
func (c *ethereumClient) callUint256(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	data, err := nftABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &c.nftAddress,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}

	var value *big.Int
	if err := nftABI.UnpackIntoInterface(&value, method, result); err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}

	return value, nil
}

// StakePass submits stakePass(tokenId) and waits for it to be mined
func (c *ethereumClient) StakePass(ctx context.Context, tokenID *big.Int) (*domain.TransactionResult, error) {
	return c.transact(ctx, "stakePass", tokenID)
}

// UnstakePass submits unstakePass(tokenId) and waits for it to be mined
func (c *ethereumClient) UnstakePass(ctx context.Context, tokenID *big.Int) (*domain.TransactionResult, error) {
	return c.transact(ctx, "unstakePass", tokenID)
}

// RentPass submits rentPass(tokenId) and waits for it to be mined
func (c *ethereumClient) RentPass(ctx context.Context, tokenID *big.Int) (*domain.TransactionResult, error) {
	return c.transact(ctx, "rentPass", tokenID)
}

// transact signs and sends a staking contract call as a legacy transaction
func (c *ethereumClient) transact(ctx context.Context, method string, tokenID *big.Int) (*domain.TransactionResult, error) {
	if c.signer == nil {
		return nil, domain.ErrSignerNotConfigured
	}

	data, err := stakingABI.Pack(method, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	chainID, err := c.resolveChainID(ctx)
	if err != nil {
		return nil, err
	}

	from := c.signer.Address()
	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas price: %w", err)
	}

	gas, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From:     from,
		To:       &c.stakingAddress,
		GasPrice: gasPrice,
		Data:     data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas for %s: %w", method, err)
	}

	tx, err := c.signer.Sign(types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &c.stakingAddress,
		Value:    big.NewInt(0),
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	}), chainID)
	if err != nil {
		return nil, err
	}

	if err := c.client.SendTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to send %s transaction: %w", method, err)
	}

	logger.InfoCtx(ctx, "Submitted staking transaction",
		zap.String("method", method),
		zap.String("token_id", tokenID.String()),
		zap.String("tx_hash", tx.Hash().Hex()),
	)

	receipt, err := c.waitMined(ctx, tx.Hash())
	if err != nil {
		return nil, err
	}

	result := &domain.TransactionResult{
		TransactionHash: tx.Hash().Hex(),
		Status:          receipt.Status,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}

	return result, nil
}

// resolveChainID returns the configured chain id, falling back to the node's
func (c *ethereumClient) resolveChainID(ctx context.Context) (*big.Int, error) {
	if c.chainID != nil {
		return c.chainID, nil
	}

	chainID, err := c.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	return chainID, nil
}

// waitMined polls for the transaction receipt until it is available or ctx is done
func (c *ethereumClient) waitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	for {
		receipt, err := c.client.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to get receipt for %s: %w", txHash.Hex(), err)
		}

		logger.DebugCtx(ctx, "Transaction not mined yet", zap.String("tx_hash", txHash.Hex()))

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("stopped waiting for %s: %w", txHash.Hex(), ctx.Err())
		case <-c.clock.After(c.pollInterval):
		}
	}
}
