// Package tokencache persists the Google Keep master token between
// invocations so that a valid cached token avoids any authentication
// round-trip.
//
// Two backends implement the Cache interface:
//
//   - FileCache encrypts the token with AES-256-GCM under a key derived
//     from the user's app password via PBKDF2-SHA256. The file holds
//     salt || nonce || ciphertext and is written with owner-only (0600)
//     permissions, which are verified before every read.
//
//   - KeyringCache delegates to the OS-native credential store via
//     zalando/go-keyring.
//
// A wrong passphrase, a truncated file, or tampered content all surface
// as ErrDecryptFailure; callers fall back to a fresh login via
// LoadOrCreate rather than failing the invocation.
package tokencache
