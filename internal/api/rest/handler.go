package rest

import (
	"context"
	"fmt"
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-staking-api/internal/api/shared/executor"
	"github.com/feral-file/ff-staking-api/internal/domain"
)

const rootMessage = "GET request successful!"

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetStakingStats returns ownership joined with staking history
	// GET /api/nft/stats/:address
	GetStakingStats(c *gin.Context)

	// GetNFTs returns the NFTs held by an address
	// GET /api/nft/nfts/:address
	GetNFTs(c *gin.Context)

	// GetTransactionHistory returns the replayed staking history of an address
	// GET /api/nft/history/:address
	GetTransactionHistory(c *gin.Context)

	// StakePass submits stakePass for a token (requires authentication)
	// POST /api/nft/stake/:tokenId
	StakePass(c *gin.Context)

	// UnstakePass submits unstakePass for a token (requires authentication)
	// POST /api/nft/unstake/:tokenId
	UnstakePass(c *gin.Context)

	// RentPass submits rentPass for a token (requires authentication)
	// POST /api/nft/rent/:tokenId
	RentPass(c *gin.Context)

	// Root answers the plain text liveness probe
	// GET /
	Root(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// GetStakingStats returns ownership joined with staking history
func (h *handler) GetStakingStats(c *gin.Context) {
	address := c.Param("address")

	stats, err := h.executor.GetStakingStats(c.Request.Context(), address)
	if err != nil {
		respondInternalError(c, err, zap.String("address", address))
		return
	}

	respondSuccess(c, stats)
}

// GetNFTs returns the NFTs held by an address
func (h *handler) GetNFTs(c *gin.Context) {
	address := c.Param("address")

	nfts, err := h.executor.GetNFTs(c.Request.Context(), address)
	if err != nil {
		respondInternalError(c, err, zap.String("address", address))
		return
	}

	respondSuccess(c, nfts)
}

// GetTransactionHistory returns the replayed staking history of an address
func (h *handler) GetTransactionHistory(c *gin.Context) {
	address := c.Param("address")

	records, err := h.executor.GetTransactionHistory(c.Request.Context(), address)
	if err != nil {
		respondInternalError(c, err, zap.String("address", address))
		return
	}

	respondSuccess(c, records)
}

// StakePass submits stakePass for a token
func (h *handler) StakePass(c *gin.Context) {
	h.submit(c, h.executor.StakePass)
}

// UnstakePass submits unstakePass for a token
func (h *handler) UnstakePass(c *gin.Context) {
	h.submit(c, h.executor.UnstakePass)
}

// RentPass submits rentPass for a token
func (h *handler) RentPass(c *gin.Context) {
	h.submit(c, h.executor.RentPass)
}

// submit parses the token id path parameter and runs a write passthrough
func (h *handler) submit(c *gin.Context, write func(context.Context, *big.Int) (*domain.TransactionResult, error)) {
	raw := c.Param("tokenId")
	tokenID, err := parseTokenID(raw)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := write(c.Request.Context(), tokenID)
	if err != nil {
		respondWriteError(c, err, zap.String("token_id", raw))
		return
	}

	respondSuccess(c, result)
}

// Root answers the plain text liveness probe
func (h *handler) Root(c *gin.Context) {
	c.String(http.StatusOK, rootMessage)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-staking-api",
	})
}

// parseTokenID parses a non-negative decimal token id
func parseTokenID(raw string) (*big.Int, error) {
	tokenID, ok := new(big.Int).SetString(raw, 10)
	if !ok || tokenID.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTokenID, raw)
	}
	return tokenID, nil
}
