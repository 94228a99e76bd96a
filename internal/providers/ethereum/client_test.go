package ethereum

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-staking-api/internal/domain"
	"github.com/feral-file/ff-staking-api/internal/logger"
	"github.com/feral-file/ff-staking-api/internal/mocks"
)

const (
	testNFTAddress     = "0x1111111111111111111111111111111111111111"
	testStakingAddress = "0x2222222222222222222222222222222222222222"
	testOwner          = "0x457ee5f723C7606c12a7264b52e285906F91eEA6"
	testPollInterval   = time.Second
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestClient(t *testing.T, chainID *big.Int, signer *Signer) (EthereumClient, *mocks.MockEthClient, *mocks.MockClock) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockEth := mocks.NewMockEthClient(ctrl)
	mockClock := mocks.NewMockClock(ctrl)
	client := NewClient(Config{
		NFTAddress:          testNFTAddress,
		StakingAddress:      testStakingAddress,
		ChainID:             chainID,
		ReceiptPollInterval: testPollInterval,
	}, mockEth, mockClock, signer)

	return client, mockEth, mockClock
}

func newTestSigner(t *testing.T) *Signer {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return NewSignerFromKey(key)
}

// firedChannel returns a channel that is immediately readable
func firedChannel(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Unix(0, 0)
	return ch
}

func packUint256(t *testing.T, method string, value *big.Int) []byte {
	out, err := nftABI.Methods[method].Outputs.Pack(value)
	require.NoError(t, err)
	return out
}

func TestClient_BalanceOf(t *testing.T) {
	client, mockEth, _ := newTestClient(t, big.NewInt(97), nil)

	mockEth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			require.NotNil(t, msg.To)
			assert.Equal(t, common.HexToAddress(testNFTAddress), *msg.To)
			assert.True(t, bytes.HasPrefix(msg.Data, nftABI.Methods["balanceOf"].ID))
			return packUint256(t, "balanceOf", big.NewInt(3)), nil
		})

	balance, err := client.BalanceOf(context.Background(), testOwner)
	require.NoError(t, err)
	assert.Equal(t, "3", balance.String())
}

func TestClient_TokenOfOwnerByIndex(t *testing.T) {
	client, mockEth, _ := newTestClient(t, big.NewInt(97), nil)

	mockEth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			method, err := nftABI.MethodById(msg.Data[:4])
			require.NoError(t, err)
			assert.Equal(t, "tokenOfOwnerByIndex", method.Name)

			args, err := method.Inputs.Unpack(msg.Data[4:])
			require.NoError(t, err)
			require.Len(t, args, 2)
			assert.Equal(t, common.HexToAddress(testOwner), args[0])
			assert.Equal(t, int64(1), args[1].(*big.Int).Int64())

			return packUint256(t, "tokenOfOwnerByIndex", big.NewInt(4242)), nil
		})

	tokenID, err := client.TokenOfOwnerByIndex(context.Background(), testOwner, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "4242", tokenID.String())
}

func TestClient_GetTier(t *testing.T) {
	client, mockEth, _ := newTestClient(t, big.NewInt(97), nil)

	mockEth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(packUint256(t, "getTier", big.NewInt(2)), nil)

	tier, err := client.GetTier(context.Background(), big.NewInt(4242))
	require.NoError(t, err)
	assert.Equal(t, "2", tier.String())
}

func TestClient_GetTier_EmptyResult(t *testing.T) {
	client, mockEth, _ := newTestClient(t, big.NewInt(97), nil)

	mockEth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return([]byte{}, nil)

	_, err := client.GetTier(context.Background(), big.NewInt(4242))
	require.Error(t, err)
}

func TestClient_BalanceOf_CallError(t *testing.T) {
	client, mockEth, _ := newTestClient(t, big.NewInt(97), nil)

	rpcErr := errors.New("execution reverted")
	mockEth.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil, rpcErr)

	_, err := client.BalanceOf(context.Background(), testOwner)
	require.Error(t, err)
	assert.ErrorIs(t, err, rpcErr)
}

func TestClient_Write_SignerNotConfigured(t *testing.T) {
	client, _, _ := newTestClient(t, big.NewInt(97), nil)

	writes := map[string]func(context.Context, *big.Int) (*domain.TransactionResult, error){
		"stakePass":   client.StakePass,
		"unstakePass": client.UnstakePass,
		"rentPass":    client.RentPass,
	}

	for name, write := range writes {
		t.Run(name, func(t *testing.T) {
			result, err := write(context.Background(), big.NewInt(1))
			assert.ErrorIs(t, err, domain.ErrSignerNotConfigured)
			assert.Nil(t, result)
		})
	}
}

func TestClient_StakePass(t *testing.T) {
	chainID := big.NewInt(97)
	signer := newTestSigner(t)
	client, mockEth, mockClock := newTestClient(t, chainID, signer)

	gasPrice := big.NewInt(5_000_000_000)
	var sent *types.Transaction

	gomock.InOrder(
		mockEth.EXPECT().PendingNonceAt(gomock.Any(), signer.Address()).Return(uint64(7), nil),
		mockEth.EXPECT().SuggestGasPrice(gomock.Any()).Return(gasPrice, nil),
		mockEth.EXPECT().
			EstimateGas(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
				assert.Equal(t, signer.Address(), msg.From)
				require.NotNil(t, msg.To)
				assert.Equal(t, common.HexToAddress(testStakingAddress), *msg.To)
				return uint64(90_000), nil
			}),
		mockEth.EXPECT().
			SendTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *types.Transaction) error {
				sent = tx
				return nil
			}),
		mockEth.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(nil, ethereum.NotFound),
		mockEth.EXPECT().
			TransactionReceipt(gomock.Any(), gomock.Any()).
			Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(55)}, nil),
	)
	mockClock.EXPECT().After(testPollInterval).DoAndReturn(firedChannel)

	result, err := client.StakePass(context.Background(), big.NewInt(4242))
	require.NoError(t, err)
	require.NotNil(t, sent)

	assert.Equal(t, uint64(7), sent.Nonce())
	assert.Equal(t, uint64(90_000), sent.Gas())
	assert.Equal(t, gasPrice.String(), sent.GasPrice().String())
	require.NotNil(t, sent.To())
	assert.Equal(t, common.HexToAddress(testStakingAddress), *sent.To())

	method, err := stakingABI.MethodById(sent.Data()[:4])
	require.NoError(t, err)
	assert.Equal(t, "stakePass", method.Name)

	from, err := types.Sender(types.LatestSignerForChainID(chainID), sent)
	require.NoError(t, err)
	assert.Equal(t, signer.Address(), from)

	assert.Equal(t, sent.Hash().Hex(), result.TransactionHash)
	assert.Equal(t, uint64(55), result.BlockNumber)
	assert.Equal(t, types.ReceiptStatusSuccessful, result.Status)
}

func TestClient_RentPass_UsesNodeChainID(t *testing.T) {
	signer := newTestSigner(t)
	client, mockEth, _ := newTestClient(t, nil, signer)

	var sent *types.Transaction
	mockEth.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(56), nil)
	mockEth.EXPECT().PendingNonceAt(gomock.Any(), signer.Address()).Return(uint64(0), nil)
	mockEth.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1), nil)
	mockEth.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(21_000), nil)
	mockEth.EXPECT().
		SendTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *types.Transaction) error {
			sent = tx
			return nil
		})
	mockEth.EXPECT().
		TransactionReceipt(gomock.Any(), gomock.Any()).
		Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1)}, nil)

	_, err := client.RentPass(context.Background(), big.NewInt(1))
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, int64(56), sent.ChainId().Int64())

	method, err := stakingABI.MethodById(sent.Data()[:4])
	require.NoError(t, err)
	assert.Equal(t, "rentPass", method.Name)
}

func TestClient_UnstakePass_SendError(t *testing.T) {
	signer := newTestSigner(t)
	client, mockEth, _ := newTestClient(t, big.NewInt(97), signer)

	sendErr := errors.New("insufficient funds for gas")
	mockEth.EXPECT().PendingNonceAt(gomock.Any(), signer.Address()).Return(uint64(0), nil)
	mockEth.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1), nil)
	mockEth.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(21_000), nil)
	mockEth.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(sendErr)

	result, err := client.UnstakePass(context.Background(), big.NewInt(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
	assert.Nil(t, result)
}

func TestClient_StakePass_StopsWaitingOnCancel(t *testing.T) {
	signer := newTestSigner(t)
	client, mockEth, mockClock := newTestClient(t, big.NewInt(97), signer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockEth.EXPECT().PendingNonceAt(gomock.Any(), signer.Address()).Return(uint64(0), nil)
	mockEth.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1), nil)
	mockEth.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(21_000), nil)
	mockEth.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(nil)
	mockEth.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(nil, ethereum.NotFound)
	mockClock.EXPECT().After(testPollInterval).Return(make(<-chan time.Time))

	result, err := client.StakePass(ctx, big.NewInt(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestNewSigner(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	hexKey := common.Bytes2Hex(crypto.FromECDSA(key))

	for _, raw := range []string{hexKey, "0x" + hexKey} {
		signer, err := NewSigner(raw)
		require.NoError(t, err)
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), signer.Address())
	}

	_, err = NewSigner("not-a-key")
	assert.Error(t, err)
}
