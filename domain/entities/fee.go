package entities

import "math/bits"

// FeeRole identifies a fee payee class.
type FeeRole string

const (
	FeeRoleDev      FeeRole = "dev"
	FeeRolePartner  FeeRole = "partner"
	FeeRoleReferral FeeRole = "referral"
)

// Protocol fee constants in basis points of a winner's gross prize. The
// residue (total minus the named cuts, plus all truncation remainders) feeds
// the raffle jackpot.
const (
	FeeTotalBps    = 500
	FeeDevBps      = 100
	FeePartnerBps  = 100
	FeeReferralBps = 100
	FeeStakingBps  = 50

	bpsDenominator = 10000
)

// CutBps returns gross*bps/10000 with integer truncation.
func CutBps(gross, bps int64) int64 {
	return mulDiv(gross, bps, bpsDenominator)
}

// mulDiv returns a*b/den with integer truncation through a 128-bit
// intermediate, since wei-scale products overflow int64. Requires
// 0 <= a and 0 <= b <= den, which keeps the quotient within int64.
func mulDiv(a, b, den int64) int64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	quo, _ := bits.Div64(hi, lo, uint64(den))
	return int64(quo)
}

// FeeAccount accumulates a payee's fee share for one asset. Created lazily on
// the first fee event.
type FeeAccount struct {
	Asset          Asset   `db:"asset"`
	Role           FeeRole `db:"role"`
	Account        Account `db:"account"`
	Pending        int64   `db:"pending"`
	WithdrawnTotal int64   `db:"withdrawn_total"`
}

// FeeSplit is the deterministic decomposition of a gross prize.
type FeeSplit struct {
	Dev        int64
	Partner    int64
	Referral   int64
	StakingCut int64
	// RaffleResidue absorbs the unallocated fee share and every truncation
	// remainder so that Net + all cuts == gross exactly.
	RaffleResidue int64
	Net           int64
}

// SplitFee decomposes gross per the protocol constants. partnerConfigured
// controls whether the partner cut is distributed at all; an undistributed
// partner cut stays retained by the ledger and is not tracked as residue.
func SplitFee(gross int64, partnerConfigured bool) FeeSplit {
	total := CutBps(gross, FeeTotalBps)
	s := FeeSplit{
		Dev:        CutBps(gross, FeeDevBps),
		Referral:   CutBps(gross, FeeReferralBps),
		StakingCut: CutBps(gross, FeeStakingBps),
		Net:        gross - total,
	}
	s.RaffleResidue = total - s.Dev - s.Referral - s.StakingCut
	partner := CutBps(gross, FeePartnerBps)
	s.RaffleResidue -= partner
	if partnerConfigured {
		s.Partner = partner
	}
	return s
}
