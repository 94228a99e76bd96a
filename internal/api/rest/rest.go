package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-staking-api/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Liveness endpoints (no auth, no prefix)
	router.GET("/", handler.Root)
	router.GET("/health", handler.HealthCheck)

	nft := router.Group("/api/nft")
	{
		// Read endpoints (public)
		nft.GET("/stats/:address", handler.GetStakingStats)
		nft.GET("/nfts/:address", handler.GetNFTs)
		nft.GET("/history/:address", handler.GetTransactionHistory)

		// Write passthroughs (requires authentication)
		nft.POST("/stake/:tokenId", middleware.Auth(authCfg), handler.StakePass)
		nft.POST("/unstake/:tokenId", middleware.Auth(authCfg), handler.UnstakePass)
		nft.POST("/rent/:tokenId", middleware.Auth(authCfg), handler.RentPass)
	}
}
