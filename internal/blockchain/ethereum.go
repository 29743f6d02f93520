package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/ghostcoin/ghostdrop/pkg/logger"
)

const (
	// rpcCallTimeout bounds a single contract read against the RPC endpoint
	rpcCallTimeout = 10 * time.Second
)

// Ethereum reads GHOX balances from the token contract over a public
// JSON-RPC endpoint.
type Ethereum struct {
	logger       *logger.Logger
	apiURL       string
	contractAddr string

	client        *ethclient.Client
	tokenContract *bind.BoundContract
}

// NewEthereum creates a new Ethereum oracle instance.
func NewEthereum(apiURL, contractAddr string, logger *logger.Logger) *Ethereum {
	return &Ethereum{apiURL: apiURL, contractAddr: contractAddr, logger: logger}
}

func (e *Ethereum) Run() error {
	err := e.ConnectToRPC()
	if err != nil {
		return fmt.Errorf("failed to connect to the RPC endpoint: %w", err)
	}
	err = e.BuildBindings()
	if err != nil {
		return fmt.Errorf("failed to build bindings: %w", err)
	}
	return nil
}

func (e *Ethereum) ConnectToRPC() error {
	client, err := ethclient.Dial(e.apiURL)
	if err != nil {
		return fmt.Errorf("failed to connect to the RPC endpoint: %w", err)
	}
	e.client = client
	return nil
}

func (e *Ethereum) BuildBindings() error {
	parsedABI, err := abi.JSON(strings.NewReader(ERC20ABI))
	if err != nil {
		return fmt.Errorf("failed to parse token ABI: %w", err)
	}

	tokenAddress := common.HexToAddress(e.contractAddr)
	contract := bind.NewBoundContract(tokenAddress, parsedABI, e.client, e.client, e.client)
	e.tokenContract = contract

	return nil
}

func (e *Ethereum) Close() error {
	if e.client != nil {
		e.client.Close()
	}

	return nil
}

// GetBalance returns the token balance of the wallet in the smallest unit
// (18 decimals).
func (e *Ethereum) GetBalance(ctx context.Context, wallet string) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, rpcCallTimeout)
	defer cancel()

	results := []interface{}{}
	opts := &bind.CallOpts{Context: ctx}
	err := e.tokenContract.Call(opts, &results, "balanceOf", common.HexToAddress(wallet))
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	balance := results[0].(*big.Int)
	return balance, nil
}
