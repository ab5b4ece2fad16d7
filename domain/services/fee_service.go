package services

import (
	"context"
	"fmt"

	"coinhouse/config"
	"coinhouse/domain/entities"
	"coinhouse/domain/interfaces"
	"coinhouse/domain/utils"

	log "github.com/sirupsen/logrus"
)

// feeService accrues the deterministic dev/partner/referral splits on every
// winning prize withdrawal and settles them on demand.
type feeService struct {
	feeRepo interfaces.FeeRepository
	ledger  interfaces.LedgerService
}

// NewFeeService creates a new fee service
func NewFeeService(feeRepo interfaces.FeeRepository, ledger interfaces.LedgerService) interfaces.FeeService {
	return &feeService{
		feeRepo: feeRepo,
		ledger:  ledger,
	}
}

func (s *feeService) AddFee(ctx context.Context, asset entities.Asset, gross int64, referral entities.Account) (entities.FeeSplit, error) {
	cfg := config.Get()
	split := entities.SplitFee(gross, cfg.PartnerConfigured())

	if split.Dev > 0 {
		if err := s.feeRepo.AddPending(ctx, asset, entities.FeeRoleDev, cfg.OwnerAddress, split.Dev); err != nil {
			return entities.FeeSplit{}, fmt.Errorf("failed to accrue dev fee: %w", err)
		}
	}
	if split.Partner > 0 {
		if err := s.feeRepo.AddPending(ctx, asset, entities.FeeRolePartner, cfg.PartnerAddress, split.Partner); err != nil {
			return entities.FeeSplit{}, fmt.Errorf("failed to accrue partner fee: %w", err)
		}
	}
	// An unset referral redirects the share to the owner, still recorded
	// under the referral role.
	payee := referral
	if payee.IsZero() {
		payee = cfg.OwnerAddress
	}
	if split.Referral > 0 {
		if err := s.feeRepo.AddPending(ctx, asset, entities.FeeRoleReferral, payee, split.Referral); err != nil {
			return entities.FeeSplit{}, fmt.Errorf("failed to accrue referral fee: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"asset":    asset,
		"gross":    utils.FormatAmount(asset, gross),
		"dev":      split.Dev,
		"partner":  split.Partner,
		"referral": split.Referral,
		"staking":  split.StakingCut,
		"residue":  split.RaffleResidue,
	}).Debug("fee accrued")

	return split, nil
}

func (s *feeService) WithdrawDevFee(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error) {
	cfg := config.Get()
	if caller != cfg.OwnerAddress {
		return 0, entities.ErrNotOwner
	}
	return s.withdraw(ctx, asset, entities.FeeRoleDev, cfg.OwnerAddress)
}

func (s *feeService) WithdrawPartnerFee(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error) {
	cfg := config.Get()
	if !cfg.PartnerConfigured() || caller != cfg.PartnerAddress {
		return 0, entities.ErrNotOwner
	}
	return s.withdraw(ctx, asset, entities.FeeRolePartner, cfg.PartnerAddress)
}

func (s *feeService) WithdrawReferralFee(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error) {
	return s.withdraw(ctx, asset, entities.FeeRoleReferral, caller)
}

func (s *feeService) withdraw(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (int64, error) {
	amount, err := s.feeRepo.Withdraw(ctx, asset, role, account)
	if err != nil {
		return 0, fmt.Errorf("failed to settle %s fee: %w", role, err)
	}
	if amount == 0 {
		return 0, entities.ErrNoFee
	}
	if err := s.ledger.Payout(ctx, asset, account, amount); err != nil {
		return 0, fmt.Errorf("failed to pay out %s fee: %w", role, err)
	}

	log.WithFields(log.Fields{
		"asset":   asset,
		"role":    role,
		"account": account,
		"amount":  utils.FormatAmount(asset, amount),
	}).Info("fee withdrawn")

	return amount, nil
}

func (s *feeService) Pending(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (int64, error) {
	acc, err := s.feeRepo.Get(ctx, asset, role, account)
	if err != nil {
		return 0, fmt.Errorf("failed to get fee account: %w", err)
	}
	if acc == nil {
		return 0, nil
	}
	return acc.Pending, nil
}

func (s *feeService) WithdrawnTotal(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (int64, error) {
	acc, err := s.feeRepo.Get(ctx, asset, role, account)
	if err != nil {
		return 0, fmt.Errorf("failed to get fee account: %w", err)
	}
	if acc == nil {
		return 0, nil
	}
	return acc.WithdrawnTotal, nil
}
