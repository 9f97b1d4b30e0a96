package cache

import (
	"context"

	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
)

type noopContractCache struct{}

// NewNoopContractCache returns a cache that never stores anything
func NewNoopContractCache() contracts.ContractCache {
	return noopContractCache{}
}

func (noopContractCache) Get(context.Context, string, string) (*contracts.Contract, bool) {
	return nil, false
}

func (noopContractCache) Set(context.Context, *contracts.Contract) {}

func (noopContractCache) Delete(context.Context, string, string) {}
