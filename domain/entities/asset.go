package entities

// Asset identifies a fungible value type: the native chain currency or a
// supported token contract address.
type Asset string

// AssetNative is the sentinel for the chain's native currency.
const AssetNative Asset = "native"

// IsNative returns true if the asset is the native currency.
func (a Asset) IsNative() bool {
	return a == AssetNative
}

// Account is a participant address.
type Account string

// AccountZero is the unset address.
const AccountZero Account = ""

// IsZero returns true if the account is unset.
func (a Account) IsZero() bool {
	return a == AccountZero
}

// AssetState holds the per-asset ledger bookkeeping: whether the asset is
// accepted for games, how much value the engine currently retains, and the
// stake carried over from a timed-out game into the next one.
type AssetState struct {
	Asset      Asset `db:"asset"`
	Supported  bool  `db:"supported"`
	Retained   int64 `db:"retained"`
	StakeCarry int64 `db:"stake_carry"`
}

// AccountBalance is the amount an account holds inside the engine for one asset.
type AccountBalance struct {
	Asset   Asset   `db:"asset"`
	Account Account `db:"account"`
	Balance int64   `db:"balance"`
}
