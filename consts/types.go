// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

// Address type IDs. The first byte of every [codec.Address] identifies
// what created it.
const (
	ED25519ID uint8 = iota
	TokenID
	PairID
	FarmID
	StakingID
	ContractID
)

// Action type IDs
const (
	// Token
	TransferID uint8 = iota
	ApproveID
	TransferFromID
	PermitID

	// Pool engine
	CreatePairID
	SetFeeToID
	SetFeeToSetterID
	MintLiquidityID
	BurnLiquidityID
	SwapID
	SkimID
	SyncID

	// Reward distributor
	CreateFarmID
	AddPoolID
	SetPoolID
	UpdateMultiplierID
	UpdatePoolID
	MassUpdatePoolsID
	DepositID
	WithdrawID
	EnterStakingID
	LeaveStakingID
	EmergencyWithdrawID
	UpdateRewardPerBlockID
	SetScheduleID
	SweepID
	TransferOwnershipID

	// Single-pool staking
	CreateStakingPoolID
	StakingDepositID
	StakingWithdrawID
	StakingEmergencyWithdrawID
	StakingRecoverTokenID
	StakingStopRewardID
	StakingUpdateRewardPerBlockID
	StakingUpdateStartAndEndBlocksID
	StakingUpdatePoolLimitID
	StakingEmergencyRewardWithdrawID
)

// Event type IDs
const (
	TransferEventID uint8 = iota
	ApprovalEventID
	MintEventID
	BurnEventID
	SwapEventID
	SyncEventID
	DepositEventID
	WithdrawEventID
	EmergencyWithdrawEventID
	TokenRecoveryEventID
	PairCreatedEventID
	PoolAddedEventID
	PoolUpdatedEventID
	OwnershipTransferredEventID
	RewardRateUpdatedEventID
	StakingDepositEventID
	StakingWithdrawEventID
	StakingEmergencyWithdrawEventID
	StakingTokenRecoveryEventID
	StakingRewardRateUpdatedEventID
	RewardsStopEventID
	NewStartAndEndBlocksEventID
	NewPoolLimitEventID
)

// Result type IDs
const (
	MintLiquidityResultID uint8 = iota
	BurnLiquidityResultID
	CreatePairResultID
	CreateFarmResultID
	AddPoolResultID
	CreateStakingPoolResultID
)
