package services

import (
	"context"
	"fmt"

	"coinhouse/domain/entities"
	"coinhouse/domain/interfaces"
)

// ledgerService implements the fungible-asset ledger used by every other
// component to move value. Deposits and payouts are all-or-nothing.
type ledgerService struct {
	assetRepo   interfaces.AssetRepository
	accountRepo interfaces.AccountRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(assetRepo interfaces.AssetRepository, accountRepo interfaces.AccountRepository) interfaces.LedgerService {
	return &ledgerService{
		assetRepo:   assetRepo,
		accountRepo: accountRepo,
	}
}

func (s *ledgerService) Mint(ctx context.Context, asset entities.Asset, to entities.Account, amount int64) error {
	if amount <= 0 {
		return entities.ErrZeroAmount
	}
	if to.IsZero() {
		return entities.ErrZeroAddress
	}
	if _, err := s.assetRepo.GetOrCreate(ctx, asset, asset.IsNative()); err != nil {
		return fmt.Errorf("failed to ensure asset state: %w", err)
	}
	if err := s.accountRepo.AddBalance(ctx, asset, to, amount); err != nil {
		return fmt.Errorf("failed to mint %d to %s: %w", amount, to, err)
	}
	return nil
}

func (s *ledgerService) Support(ctx context.Context, asset entities.Asset) error {
	if err := s.assetRepo.SetSupported(ctx, asset, true); err != nil {
		return fmt.Errorf("failed to mark asset %s supported: %w", asset, err)
	}
	return nil
}

func (s *ledgerService) Deposit(ctx context.Context, asset entities.Asset, from entities.Account, amount int64) error {
	if amount <= 0 {
		return entities.ErrZeroAmount
	}
	balance, err := s.accountRepo.GetBalance(ctx, asset, from)
	if err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}
	if balance < amount {
		return entities.ErrInsufficientBalance
	}
	if err := s.accountRepo.AddBalance(ctx, asset, from, -amount); err != nil {
		return fmt.Errorf("failed to debit %s: %w", from, err)
	}
	if err := s.assetRepo.AddRetained(ctx, asset, amount); err != nil {
		return fmt.Errorf("failed to grow retention: %w", err)
	}
	return nil
}

func (s *ledgerService) Payout(ctx context.Context, asset entities.Asset, to entities.Account, amount int64) error {
	if amount <= 0 {
		return entities.ErrZeroAmount
	}
	state, err := s.assetRepo.Get(ctx, asset)
	if err != nil {
		return fmt.Errorf("failed to get asset state: %w", err)
	}
	if state == nil || state.Retained < amount {
		return entities.ErrTransferFailed
	}
	if err := s.assetRepo.AddRetained(ctx, asset, -amount); err != nil {
		return fmt.Errorf("failed to shrink retention: %w", err)
	}
	if err := s.accountRepo.AddBalance(ctx, asset, to, amount); err != nil {
		return fmt.Errorf("failed to credit %s: %w", to, err)
	}
	return nil
}

func (s *ledgerService) BalanceOf(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error) {
	return s.accountRepo.GetBalance(ctx, asset, account)
}

func (s *ledgerService) Retained(ctx context.Context, asset entities.Asset) (int64, error) {
	state, err := s.assetRepo.Get(ctx, asset)
	if err != nil {
		return 0, fmt.Errorf("failed to get asset state: %w", err)
	}
	if state == nil {
		return 0, nil
	}
	return state.Retained, nil
}
