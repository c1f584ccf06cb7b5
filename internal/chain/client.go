package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/saveup/saveup/internal/config"
)

var (
	// ErrChainRejected covers signing refusals, nonce/gas failures and
	// RPC errors during submission. The wrapped cause is surfaced verbatim.
	ErrChainRejected = errors.New("chain rejected transaction")
	// ErrNoSigner is returned from write paths when no submitter key is
	// configured.
	ErrNoSigner = errors.New("no submitter key configured")
)

// TxState is the observed lifecycle of a submitted transaction.
type TxState string

const (
	TxPending   TxState = "PENDING"
	TxConfirmed TxState = "CONFIRMED"
	TxReverted  TxState = "REVERTED"
	TxTimedOut  TxState = "TIMED_OUT"
)

const (
	receiptPollBase    = 500 * time.Millisecond
	receiptPollTimeout = 90 * time.Second
)

// Backend is the slice of ethclient.Client the submitter needs.
type Backend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type Client struct {
	backend  Backend
	chainID  *big.Int
	token    common.Address
	vault    common.Address
	erc20ABI abi.ABI
	vaultABI abi.ABI
	key      *ecdsa.PrivateKey
}

func New(cfg *config.Config) (*Client, error) {
	backend, err := ethclient.Dial(cfg.RPCAddress)
	if err != nil {
		return nil, fmt.Errorf("can't connect to RPC %s: %w", cfg.RPCAddress, err)
	}
	var key *ecdsa.PrivateKey
	if cfg.PrivateKey != "" {
		key, err = crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("can't parse submitter key: %w", err)
		}
	}
	return NewWithBackend(backend, big.NewInt(cfg.ChainID),
		common.HexToAddress(cfg.TokenAddress), common.HexToAddress(cfg.VaultAddress), key)
}

func NewWithBackend(backend Backend, chainID *big.Int, token, vault common.Address, key *ecdsa.PrivateKey) (*Client, error) {
	erc20, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		return nil, fmt.Errorf("can't parse erc20 abi: %w", err)
	}
	vaultABI, err := abi.JSON(strings.NewReader(vaultABIJSON))
	if err != nil {
		return nil, fmt.Errorf("can't parse vault abi: %w", err)
	}
	return &Client{
		backend:  backend,
		chainID:  chainID,
		token:    token,
		vault:    vault,
		erc20ABI: erc20,
		vaultABI: vaultABI,
		key:      key,
	}, nil
}

// SubmitterAddress returns the address of the configured signing key.
func (c *Client) SubmitterAddress() (common.Address, error) {
	if c.key == nil {
		return common.Address{}, ErrNoSigner
	}
	return crypto.PubkeyToAddress(c.key.PublicKey), nil
}

// Allowance reads the live token allowance granted to the vault. It is
// never cached; callers re-read after every approval or deposit.
func (c *Client) Allowance(ctx context.Context, owner common.Address) (*big.Int, error) {
	return c.readUint(ctx, c.token, c.erc20ABI, "allowance", owner, c.vault)
}

func (c *Client) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	return c.readUint(ctx, c.token, c.erc20ABI, "balanceOf", owner)
}

// GetUserProgress returns (contribution, target) for a user in a challenge,
// both in token minor units.
func (c *Client) GetUserProgress(ctx context.Context, challengeID int64, user common.Address) (*big.Int, *big.Int, error) {
	data, err := c.vaultABI.Pack("getUserProgress", big.NewInt(challengeID), user)
	if err != nil {
		return nil, nil, fmt.Errorf("can't pack getUserProgress: %w", err)
	}
	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &c.vault, Data: data}, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("getUserProgress call failed: %w", err)
	}
	vals, err := c.vaultABI.Unpack("getUserProgress", out)
	if err != nil || len(vals) != 2 {
		return nil, nil, fmt.Errorf("can't unpack getUserProgress: %w", err)
	}
	contribution, ok1 := vals[0].(*big.Int)
	target, ok2 := vals[1].(*big.Int)
	if !ok1 || !ok2 {
		return nil, nil, errors.New("unexpected getUserProgress output types")
	}
	return contribution, target, nil
}

// SubmitApproval sends approve(vault, amount) on the token contract.
// Success means the RPC node accepted the transaction, not that it mined.
func (c *Client) SubmitApproval(ctx context.Context, amount *big.Int) (common.Hash, error) {
	data, err := c.erc20ABI.Pack("approve", c.vault, amount)
	if err != nil {
		return common.Hash{}, fmt.Errorf("can't pack approve: %w", err)
	}
	return c.submit(ctx, c.token, data)
}

// SubmitContribution sends contribute(challengeId, amount) on the vault.
func (c *Client) SubmitContribution(ctx context.Context, challengeID int64, amount *big.Int) (common.Hash, error) {
	data, err := c.vaultABI.Pack("contribute", big.NewInt(challengeID), amount)
	if err != nil {
		return common.Hash{}, fmt.Errorf("can't pack contribute: %w", err)
	}
	return c.submit(ctx, c.vault, data)
}

func (c *Client) SubmitCreateChallenge(ctx context.Context, name string, target *big.Int, endDate int64) (common.Hash, error) {
	data, err := c.vaultABI.Pack("createChallenge", name, target, big.NewInt(endDate))
	if err != nil {
		return common.Hash{}, fmt.Errorf("can't pack createChallenge: %w", err)
	}
	return c.submit(ctx, c.vault, data)
}

func (c *Client) SubmitWithdrawal(ctx context.Context, challengeID int64) (common.Hash, error) {
	data, err := c.vaultABI.Pack("withdrawFromChallenge", big.NewInt(challengeID))
	if err != nil {
		return common.Hash{}, fmt.Errorf("can't pack withdrawFromChallenge: %w", err)
	}
	return c.submit(ctx, c.vault, data)
}

// WaitForReceipt polls for the transaction receipt with bounded
// exponential backoff. It replaces the old fixed settle-delay: callers get
// an explicit Confirmed/Reverted/TimedOut outcome instead of a blind sleep.
func (c *Client) WaitForReceipt(ctx context.Context, txHash common.Hash) (TxState, *types.Receipt, error) {
	var receipt *types.Receipt

	backoff := retry.WithMaxDuration(receiptPollTimeout, retry.NewExponential(receiptPollBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := c.backend.TransactionReceipt(ctx, txHash)
		if errors.Is(err, ethereum.NotFound) {
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		receipt = r
		return nil
	})
	if err != nil {
		if errors.Is(err, ethereum.NotFound) || errors.Is(err, context.DeadlineExceeded) {
			zap.L().Warn("receipt not found before deadline", zap.String("tx", txHash.Hex()))
			return TxTimedOut, nil, nil
		}
		return TxPending, nil, err
	}

	if receipt.Status == types.ReceiptStatusSuccessful {
		return TxConfirmed, receipt, nil
	}
	return TxReverted, receipt, nil
}

func (c *Client) readUint(ctx context.Context, to common.Address, contractABI abi.ABI, method string, args ...any) (*big.Int, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("can't pack %s: %w", method, err)
	}
	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}
	vals, err := contractABI.Unpack(method, out)
	if err != nil || len(vals) == 0 {
		return nil, fmt.Errorf("can't unpack %s: %w", method, err)
	}
	v, ok := vals[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected %s output type", method)
	}
	return v, nil
}

func (c *Client) submit(ctx context.Context, to common.Address, data []byte) (common.Hash, error) {
	if c.key == nil {
		return common.Hash{}, ErrNoSigner
	}
	from := crypto.PubkeyToAddress(c.key.PublicKey)

	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrChainRejected, err)
	}
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrChainRejected, err)
	}
	gasLimit, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &to, Data: data})
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrChainRejected, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrChainRejected, err)
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrChainRejected, err)
	}

	zap.L().Info("transaction submitted",
		zap.String("tx", signed.Hash().Hex()),
		zap.String("to", to.Hex()),
	)
	return signed.Hash(), nil
}
