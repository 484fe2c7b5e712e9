package helpers

const (
	// AccountKeyPool is the account key for liquidity pool accounts
	AccountKeyPool = "Pool"
	// AccountKeyPosition is the account key for position accounts
	AccountKeyPosition = "Position"
	// AccountKeyVesting is the account key for vesting accounts
	AccountKeyVesting = "Vesting"

	// DiscriminatorSize is the anchor account discriminator length.
	DiscriminatorSize = 8
)
