// Package constants defines security parameters and fixed sizes for the
// mceliece-go KEM library.
//
// Security Level: the supported Classic McEliece parameter sets range from
// NIST Category 1 (mceliece348864) to Category 5 (mceliece6688128,
// mceliece6960119, mceliece8192128).
package constants

// Library identification
const (
	// LibraryName is used for domain separation and version reporting.
	LibraryName = "mceliece-go"
)

// Shared secret and seed sizes
const (
	// SharedSecretSize is the size of the KEM shared secret in bytes.
	SharedSecretSize = 32

	// SeedSize is the size of the key-generation seed delta in bytes.
	SeedSize = 32

	// KATSeedSize is the size of the entropy input consumed by the
	// deterministic AES-CTR generator used for conformance vectors.
	KATSeedSize = 48
)

// Domain-separation prefixes for the SHAKE-256 hashes.
//
// The single-byte prefixes follow the Classic McEliece specification: 0x40
// precedes the key-generation seed when expanding the pseudorandom stream,
// 0x01 tags a session key derived from a recovered error vector, and 0x00
// tags the implicit-rejection key derived from the private mask.
const (
	// PrefixKeyGen prefixes the seed fed to the key-generation XOF stream.
	PrefixKeyGen byte = 0x40

	// PrefixSessionOK tags the shared-secret hash of a valid error vector.
	PrefixSessionOK byte = 0x01

	// PrefixSessionReject tags the implicit-rejection shared-secret hash.
	PrefixSessionReject byte = 0x00
)

// Retry budgets for the bounded generation loops.
//
// All three loops are expected to terminate after a handful of iterations for
// correct parameter sets; the budgets exist so that a defective parameter set
// or a broken entropy source fails loudly instead of spinning.
const (
	// MaxKeyGenAttempts bounds the seed-chaining retry loop in key generation.
	MaxKeyGenAttempts = 256

	// MaxFixedWeightAttempts bounds the fixed-weight sampler retry loop.
	MaxFixedWeightAttempts = 256

	// SupportDrawBudget scales the support rejection-sampling draw budget:
	// the budget is SupportDrawBudget << m draws for field degree m, enough
	// to collect a full 2^m-element ordering with overwhelming probability.
	SupportDrawBudget = 160
)

// Hybrid KEM component sizes
const (
	// X25519PublicKeySize is the size of an X25519 public key and of the
	// classical ephemeral component of a hybrid ciphertext.
	X25519PublicKeySize = 32
)

// Domain separators for the auxiliary KDF helpers in pkg/crypto.
const (
	// DomainSeparatorSelfTest is used by the power-on self-test KDF vector.
	DomainSeparatorSelfTest = "mceliece-go-POST"

	// DomainSeparatorKAT seeds the deterministic byte stream used by tests
	// that do not need the NIST AES-CTR generator.
	DomainSeparatorKAT = "mceliece-go-KAT"
)
