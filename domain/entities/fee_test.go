package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFee_NativeGross(t *testing.T) {
	// Gross claim of a 0.11 two-player creator win.
	split := SplitFee(165_000_000_000_000_000, true)

	assert.Equal(t, int64(1_650_000_000_000_000), split.Dev)
	assert.Equal(t, int64(1_650_000_000_000_000), split.Partner)
	assert.Equal(t, int64(1_650_000_000_000_000), split.Referral)
	assert.Equal(t, int64(825_000_000_000_000), split.StakingCut)
	assert.Equal(t, int64(2_475_000_000_000_000), split.RaffleResidue)
	assert.Equal(t, int64(156_750_000_000_000_000), split.Net)

	sum := split.Dev + split.Partner + split.Referral + split.StakingCut + split.RaffleResidue + split.Net
	assert.Equal(t, int64(165_000_000_000_000_000), sum)
}

func TestSplitFee_SmallTokenGross(t *testing.T) {
	split := SplitFee(150, true)

	assert.Equal(t, int64(1), split.Dev)
	assert.Equal(t, int64(1), split.Partner)
	assert.Equal(t, int64(1), split.Referral)
	assert.Equal(t, int64(0), split.StakingCut)
	assert.Equal(t, int64(4), split.RaffleResidue)
	assert.Equal(t, int64(143), split.Net)

	sum := split.Dev + split.Partner + split.Referral + split.StakingCut + split.RaffleResidue + split.Net
	assert.Equal(t, int64(150), sum)
}

func TestSplitFee_PartnerUnconfigured(t *testing.T) {
	configured := SplitFee(10_000, true)
	unconfigured := SplitFee(10_000, false)

	assert.Equal(t, int64(0), unconfigured.Partner)
	// Everything else is unchanged; the partner cut stays retained instead of
	// moving to the residue.
	assert.Equal(t, configured.Dev, unconfigured.Dev)
	assert.Equal(t, configured.Referral, unconfigured.Referral)
	assert.Equal(t, configured.StakingCut, unconfigured.StakingCut)
	assert.Equal(t, configured.RaffleResidue, unconfigured.RaffleResidue)
	assert.Equal(t, configured.Net, unconfigured.Net)
}

func TestSplitFee_TinyGrossTruncatesToZero(t *testing.T) {
	split := SplitFee(19, true)

	assert.Equal(t, int64(0), split.Dev)
	assert.Equal(t, int64(0), split.Partner)
	assert.Equal(t, int64(0), split.Referral)
	assert.Equal(t, int64(0), split.StakingCut)
	assert.Equal(t, int64(0), split.RaffleResidue)
	assert.Equal(t, int64(19), split.Net)
}

func TestCutBps(t *testing.T) {
	assert.Equal(t, int64(100), CutBps(10_000, 100))
	assert.Equal(t, int64(1), CutBps(150, 100))
	assert.Equal(t, int64(0), CutBps(99, 100))
}

func TestCutBps_WeiScaleGross(t *testing.T) {
	// gross*bps exceeds int64 here; the cut must still come out exact.
	gross := int64(165_000_000_000_000_000)
	assert.Equal(t, int64(1_650_000_000_000_000), CutBps(gross, 100))
	assert.Equal(t, int64(825_000_000_000_000), CutBps(gross, 50))
	assert.Equal(t, int64(8_250_000_000_000_000), CutBps(gross, 500))

	// Near the int64 ceiling the truncation semantics still hold.
	huge := int64(9_000_000_000_000_000_000)
	assert.Equal(t, int64(90_000_000_000_000_000), CutBps(huge, 100))
}
