package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	testToken = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testVault = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func NewMock(t *testing.T, withKey bool) (*Client, *MockBackend) {
	ctrl := gomock.NewController(t)
	backend := NewMockBackend(ctrl)

	key, _ := crypto.GenerateKey()
	if !withKey {
		key = nil
	}
	client, err := NewWithBackend(backend, big.NewInt(84532), testToken, testVault, key)
	require.NoError(t, err)
	defer ctrl.Finish()

	return client, backend
}

func uint256Word(v int64) []byte {
	return common.LeftPadBytes(big.NewInt(v).Bytes(), 32)
}

func TestAllowance(t *testing.T) {
	client, backend := NewMock(t, false)
	owner := common.HexToAddress("0x3333333333333333333333333333333333333333")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		expected  *big.Int
	}{
		{
			name: "Returns live allowance",
			mockSetup: func() {
				backend.EXPECT().
					CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(uint256Word(50_000_000), nil)
			},
			expected: big.NewInt(50_000_000),
		},
		{
			name: "RPC error propagates",
			mockSetup: func() {
				backend.EXPECT().
					CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(nil, errors.New("rpc error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			got, err := client.Allowance(context.Background(), owner)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 0, tt.expected.Cmp(got))
		})
	}
}

func TestGetUserProgress(t *testing.T) {
	client, backend := NewMock(t, false)
	user := common.HexToAddress("0x3333333333333333333333333333333333333333")

	out := append(uint256Word(125_000_000), uint256Word(200_000_000)...)
	backend.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(out, nil)

	contribution, target, err := client.GetUserProgress(context.Background(), 7, user)
	assert.NoError(t, err)
	assert.Equal(t, int64(125_000_000), contribution.Int64())
	assert.Equal(t, int64(200_000_000), target.Int64())
}

func TestSubmitContribution(t *testing.T) {
	tests := []struct {
		name      string
		withKey   bool
		mockSetup func(backend *MockBackend)
		expectErr error
	}{
		{
			name:    "Successful submission",
			withKey: true,
			mockSetup: func(backend *MockBackend) {
				backend.EXPECT().PendingNonceAt(gomock.Any(), gomock.Any()).Return(uint64(3), nil)
				backend.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1_000_000_000), nil)
				backend.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(120_000), nil)
				backend.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "No signing key",
			withKey:   false,
			mockSetup: func(backend *MockBackend) {},
			expectErr: ErrNoSigner,
		},
		{
			name:    "Nonce fetch failure is ChainRejected",
			withKey: true,
			mockSetup: func(backend *MockBackend) {
				backend.EXPECT().PendingNonceAt(gomock.Any(), gomock.Any()).Return(uint64(0), errors.New("node down"))
			},
			expectErr: ErrChainRejected,
		},
		{
			name:    "Send failure is ChainRejected",
			withKey: true,
			mockSetup: func(backend *MockBackend) {
				backend.EXPECT().PendingNonceAt(gomock.Any(), gomock.Any()).Return(uint64(3), nil)
				backend.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1_000_000_000), nil)
				backend.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(120_000), nil)
				backend.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(errors.New("insufficient funds"))
			},
			expectErr: ErrChainRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, backend := NewMock(t, tt.withKey)
			tt.mockSetup(backend)

			hash, err := client.SubmitContribution(context.Background(), 7, big.NewInt(25_000_000))

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Equal(t, common.Hash{}, hash)
			} else {
				assert.NoError(t, err)
				assert.NotEqual(t, common.Hash{}, hash)
			}
		})
	}
}

func TestWaitForReceipt(t *testing.T) {
	txHash := common.HexToHash("0xabc123")

	t.Run("Confirmed after pending polls", func(t *testing.T) {
		client, backend := NewMock(t, false)
		gomock.InOrder(
			backend.EXPECT().TransactionReceipt(gomock.Any(), txHash).Return(nil, ethereum.NotFound),
			backend.EXPECT().TransactionReceipt(gomock.Any(), txHash).
				Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil),
		)

		state, receipt, err := client.WaitForReceipt(context.Background(), txHash)
		assert.NoError(t, err)
		assert.Equal(t, TxConfirmed, state)
		assert.NotNil(t, receipt)
	})

	t.Run("Reverted transaction", func(t *testing.T) {
		client, backend := NewMock(t, false)
		backend.EXPECT().TransactionReceipt(gomock.Any(), txHash).
			Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil)

		state, receipt, err := client.WaitForReceipt(context.Background(), txHash)
		assert.NoError(t, err)
		assert.Equal(t, TxReverted, state)
		assert.NotNil(t, receipt)
	})

	t.Run("Times out while still pending", func(t *testing.T) {
		client, backend := NewMock(t, false)
		backend.EXPECT().TransactionReceipt(gomock.Any(), txHash).
			Return(nil, ethereum.NotFound).
			AnyTimes()

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		state, receipt, err := client.WaitForReceipt(ctx, txHash)
		assert.NoError(t, err)
		assert.Equal(t, TxTimedOut, state)
		assert.Nil(t, receipt)
	})
}
