// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

// Key prefixes
const (
	// Token ledger
	tokenInfoPrefix byte = iota
	balancePrefix
	allowancePrefix
	noncePrefix

	// Pool engine
	factoryPrefix
	pairPrefix
	pairIndexPrefix
	pairLockPrefix

	// Reward distributor
	farmPrefix
	farmCountPrefix
	farmPoolPrefix
	farmUserPrefix
	farmTokenPrefix

	// Single-pool staking
	stakingCountPrefix
	stakingPoolPrefix
	stakingUserPrefix

	// Chain
	lastAcceptedPrefix
)

// Chunks
const (
	TokenInfoChunks    uint16 = 2
	BalanceChunks      uint16 = 1
	AllowanceChunks    uint16 = 1
	NonceChunks        uint16 = 1
	FactoryChunks      uint16 = 1
	PairChunks         uint16 = 2
	PairIndexChunks    uint16 = 1
	PairLockChunks     uint16 = 1
	FarmChunks         uint16 = 4
	FarmCountChunks    uint16 = 1
	FarmPoolChunks     uint16 = 1
	FarmUserChunks     uint16 = 1
	FarmTokenChunks    uint16 = 1
	StakingCountChunks uint16 = 1
	StakingPoolChunks  uint16 = 2
	StakingUserChunks  uint16 = 1
	LastAcceptedChunks uint16 = 1
)

// Token invariants
const (
	MaxTokenNameSize   = 64
	MaxTokenSymbolSize = 16
	MaxTokenDecimals   = 30
)

// All liquidity share tokens have the following data
const (
	LiquidityTokenName     = "DEXswap" // #nosec G101
	LiquidityTokenSymbol   = "DEXLP"
	LiquidityTokenDecimals = 18
)

// MinimumLiquidity is permanently locked to [codec.EmptyAddress] on the
// first mint of every pair.
const MinimumLiquidity = 1_000

// Bound on the farm emission schedule.
const MaxScheduleBreakpoints = 32
