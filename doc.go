// Package mceliecego provides the Classic McEliece code-based key
// encapsulation mechanism.
//
// Classic McEliece is a conservative post-quantum KEM built on binary
// Goppa codes, a NIST fourth-round candidate with decades of
// cryptanalytic history behind the underlying problem. The library
// implements all five published parameter sets plus their semi-systematic
// "f" variants, with constant-time decoding and implicit rejection.
//
// # Quick Start
//
// For direct KEM operations:
//
//	import "github.com/pzverkov/mceliece-go/pkg/mceliece"
//
//	params := mceliece.MustParams("mceliece6688128")
//	publicKey, privateKey, _ := mceliece.GenerateKeyPair(params, nil)
//	ciphertext, sharedSecret, _ := mceliece.Encapsulate(publicKey, nil)
//	recoveredSecret, _ := mceliece.Decapsulate(privateKey, ciphertext)
//
// Through the generic KEM interface (github.com/cloudflare/circl/kem):
//
//	scheme := mceliece.MustScheme("mceliece6688128")
//	publicKey, privateKey, _ := scheme.GenerateKeyPair()
//	ciphertext, sharedSecret, _ := scheme.Encapsulate(publicKey)
//
// For the hybrid X25519+McEliece composition:
//
//	import "github.com/pzverkov/mceliece-go/pkg/hybrid"
//
//	keyPair, _ := hybrid.GenerateKeyPair(params)
//	ciphertext, sharedSecret, _ := hybrid.Encapsulate(keyPair.PublicKey())
//	recoveredSecret, _ := hybrid.Decapsulate(ciphertext, keyPair)
//
// # Package Structure
//
// The library is organized into several packages:
//
//   - pkg/mceliece: The KEM itself: parameter sets, key generation,
//     encapsulation, decapsulation, and the generic scheme adapter
//   - pkg/gf: GF(2^m) and GF((2^m)^t) field arithmetic
//   - pkg/hybrid: Cascaded X25519+McEliece hybrid KEM
//   - pkg/crypto: SHAKE-256 KDF, X25519, randomness, zeroization helpers
//   - pkg/metrics: Metrics collection, Prometheus export, tracing, logging
//   - internal/drbg: NIST AES-256-CTR generator for conformance vectors
//   - internal/constants: Fixed sizes and domain-separation constants
//   - internal/errors: Error types shared across the library
//
// # Security Properties
//
//   - Post-quantum security: syndrome decoding of binary Goppa codes,
//     NIST Category 1 (mceliece348864) through Category 5 (mceliece8192128)
//   - IND-CCA2: implicit rejection turns any tampered ciphertext into an
//     unrelated pseudorandom shared secret with no observable failure
//   - Constant-time decoding: branch-free Berlekamp-Massey, masked
//     Gaussian elimination, no secret-dependent memory access
//   - Small ciphertexts: 96 to 208 bytes depending on the parameter set,
//     at the cost of public keys from 255 KiB to 1.3 MiB
//
// # Testing
//
// The library includes comprehensive tests:
//
//	go test ./...                                   # All tests
//	go test -short ./...                            # Small parameter set only
//	go test -run TestKnownAnswer ./pkg/mceliece     # Known Answer Tests
//	go test -fuzz=FuzzParsePublicKey ./test/fuzz/   # Fuzz tests
//	go test -bench=. ./test/benchmark               # Benchmarks
//
// # References
//
//   - Classic McEliece: conservative code-based cryptography (NIST
//     submission, round 4)
//   - NIST FIPS 202: SHA-3 Standard (SHAKE-256)
//   - RFC 7748: Elliptic Curves for Security (X25519, hybrid mode)
//
// For more information, see: https://github.com/pzverkov/mceliece-go
package mceliecego
