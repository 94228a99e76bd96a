package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-staking-api/internal/api/middleware"
	"github.com/feral-file/ff-staking-api/internal/api/rest"
	"github.com/feral-file/ff-staking-api/internal/domain"
	"github.com/feral-file/ff-staking-api/internal/logger"
	"github.com/feral-file/ff-staking-api/internal/mocks"
)

const (
	testOwner  = "0x457ee5f723C7606c12a7264b52e285906F91eEA6"
	testAPIKey = "test-api-key"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(t *testing.T) (*gin.Engine, *mocks.MockAPIExecutor) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockExec := mocks.NewMockAPIExecutor(ctrl)
	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(mockExec), middleware.AuthConfig{
		APIKeys: []string{testAPIKey},
	})

	return router, mockExec
}

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func authHeader() map[string]string {
	return map[string]string{"Authorization": "ApiKey " + testAPIKey}
}

func TestHandler_GetStakingStats(t *testing.T) {
	router, mockExec := setupRouter(t)

	tier := "2"
	multiplier := 5
	rewards := 10.0
	stakeTime := int64(1_700_000_000_000)
	record := domain.NewTokenRecord(big.NewInt(1))
	record.Status = domain.TokenStatusStaked
	record.CurrentStakeTime = &stakeTime

	mockExec.EXPECT().
		GetStakingStats(gomock.Any(), testOwner).
		Return(&domain.StakingStats{
			TotalNFTs:  1,
			StakedNFTs: 1,
			NFTDetails: []domain.NFTDetail{{
				TokenRecord:    *record,
				Tier:           &tier,
				Multiplier:     &multiplier,
				CurrentRewards: &rewards,
			}},
		}, nil)

	w := serve(router, http.MethodGet, "/api/nft/stats/"+testOwner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	assert.True(t, body.Success)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.EqualValues(t, 1, data["totalNFTs"])
	assert.EqualValues(t, 1, data["stakedNFTs"])
	assert.EqualValues(t, 0, data["rentedNFTs"])

	details := data["nftDetails"].([]interface{})
	require.Len(t, details, 1)
	detail := details[0].(map[string]interface{})
	assert.Equal(t, "staked", detail["status"])
	assert.Equal(t, "2", detail["tier"])
	assert.EqualValues(t, 10, detail["currentRewards"])
}

func TestHandler_GetStakingStats_Error(t *testing.T) {
	router, mockExec := setupRouter(t)

	mockExec.EXPECT().
		GetStakingStats(gomock.Any(), testOwner).
		Return(nil, errors.New("failed to collect staking data: rpc down"))

	w := serve(router, http.MethodGet, "/api/nft/stats/"+testOwner, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeEnvelope(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "failed to collect staking data: rpc down", body.Error)
	assert.Empty(t, body.Data)
}

func TestHandler_GetNFTs(t *testing.T) {
	router, mockExec := setupRouter(t)

	mockExec.EXPECT().
		GetNFTs(gomock.Any(), testOwner).
		Return([]domain.NFTOwnership{{TokenID: "12", Tier: "3", Multiplier: 6}}, nil)

	w := serve(router, http.MethodGet, "/api/nft/nfts/"+testOwner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	assert.True(t, body.Success)
	assert.JSONEq(t, `[{"tokenId":"12","tier":"3","multiplier":6}]`, string(body.Data))
}

func TestHandler_GetNFTs_Empty(t *testing.T) {
	router, mockExec := setupRouter(t)

	mockExec.EXPECT().GetNFTs(gomock.Any(), testOwner).Return([]domain.NFTOwnership{}, nil)

	w := serve(router, http.MethodGet, "/api/nft/nfts/"+testOwner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, w).Data))
}

func TestHandler_GetTransactionHistory(t *testing.T) {
	router, mockExec := setupRouter(t)

	record := domain.NewTokenRecord(big.NewInt(7))
	action := domain.ActionRent
	rentTime := int64(1_000)
	record.Status = domain.TokenStatusRented
	record.CurrentRentTime = &rentTime
	record.LastAction = &action
	record.RentHistory = append(record.RentHistory, domain.RentEvent{
		Action:          domain.ActionRent,
		Timestamp:       rentTime,
		TransactionHash: "0xabc",
	})

	mockExec.EXPECT().
		GetTransactionHistory(gomock.Any(), testOwner).
		Return([]domain.TokenRecord{*record}, nil)

	w := serve(router, http.MethodGet, "/api/nft/history/"+testOwner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &records))
	require.Len(t, records, 1)
	assert.EqualValues(t, 7, records[0]["tokenId"])
	assert.Equal(t, "rented", records[0]["status"])
	assert.Equal(t, "rent", records[0]["lastAction"])
}

func TestHandler_GetTransactionHistory_Error(t *testing.T) {
	router, mockExec := setupRouter(t)

	mockExec.EXPECT().
		GetTransactionHistory(gomock.Any(), testOwner).
		Return(nil, fmt.Errorf("failed to list staking transactions: %w", domain.ErrExplorerResponse))

	w := serve(router, http.MethodGet, "/api/nft/history/"+testOwner, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, decodeEnvelope(t, w).Success)
}

func TestHandler_StakePass(t *testing.T) {
	router, mockExec := setupRouter(t)

	mockExec.EXPECT().
		StakePass(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tokenID *big.Int) (*domain.TransactionResult, error) {
			assert.Equal(t, "42", tokenID.String())
			return &domain.TransactionResult{TransactionHash: "0xfeed", BlockNumber: 10, Status: 1}, nil
		})

	w := serve(router, http.MethodPost, "/api/nft/stake/42", authHeader())
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	assert.True(t, body.Success)
	assert.JSONEq(t, `{"transactionHash":"0xfeed","blockNumber":10,"status":1}`, string(body.Data))
}

func TestHandler_WriteRoutes(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		headers    map[string]string
		setup      func(*mocks.MockAPIExecutor)
		wantStatus int
	}{
		{
			name:       "missing credentials",
			path:       "/api/nft/unstake/1",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong api key",
			path:       "/api/nft/rent/1",
			headers:    map[string]string{"Authorization": "ApiKey wrong"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non numeric token id",
			path:       "/api/nft/stake/abc",
			headers:    authHeader(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative token id",
			path:       "/api/nft/stake/-1",
			headers:    authHeader(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "signer not configured",
			path:    "/api/nft/unstake/1",
			headers: authHeader(),
			setup: func(m *mocks.MockAPIExecutor) {
				m.EXPECT().UnstakePass(gomock.Any(), gomock.Any()).Return(nil, domain.ErrSignerNotConfigured)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:    "transaction failure",
			path:    "/api/nft/rent/1",
			headers: authHeader(),
			setup: func(m *mocks.MockAPIExecutor) {
				m.EXPECT().RentPass(gomock.Any(), gomock.Any()).Return(nil, errors.New("failed to send rentPass transaction"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockExec := setupRouter(t)
			if tt.setup != nil {
				tt.setup(mockExec)
			}

			w := serve(router, http.MethodPost, tt.path, tt.headers)
			require.Equal(t, tt.wantStatus, w.Code)

			body := decodeEnvelope(t, w)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestHandler_Root(t *testing.T) {
	router, _ := setupRouter(t)

	w := serve(router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "GET request successful!", w.Body.String())
}

func TestHandler_HealthCheck(t *testing.T) {
	router, _ := setupRouter(t)

	w := serve(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"ff-staking-api"}`, w.Body.String())
}
