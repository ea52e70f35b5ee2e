// Package crypto implements the two-stage content decryption scheme used by
// OLD_AES-encrypted tracks: an AES-256-CBC key unwrap of the per-track
// content key, followed by AES-128-CTR stream decryption of the media
// bytes. Grounded on original_source/tidal-rs/src/core/decrypt.rs; Go's
// standard crypto/aes and crypto/cipher packages are the direct analogue of
// the Rust source's aes/cbc/ctr crates and are used instead of any
// third-party AES implementation (none appears anywhere in the example
// corpus).
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"

	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

// masterKey is the fixed, compiled-in 32-byte key (base64-encoded) that
// wraps every track's per-session content key.
const masterKey = "UIlTTEMmmLfGowo/UC60x2H45W6MdGgTRfo/umg4754="

const (
	keySize   = 16
	nonceSize = 8
)

// DecryptionKey holds the unwrapped per-track content key and nonce.
type DecryptionKey struct {
	Key   [keySize]byte
	Nonce [nonceSize]byte
}

// UnwrapKeyID decodes and AES-256-CBC-decrypts keyID (the BtsManifest's
// key_id field) to recover the 16-byte content key and 8-byte nonce.
//
// keyID decodes to a blob of at least 16 bytes: the first 16 are the CBC
// IV, the remainder is the ciphertext. The plaintext is exactly 24 bytes
// (key || nonce), so no padding is involved — NoPadding on the Rust side,
// a bare block-mode decrypt on this side since the input is already
// block-aligned.
func UnwrapKeyID(keyID string) (*DecryptionKey, error) {
	key, err := base64.StdEncoding.DecodeString(masterKey)
	if err != nil {
		return nil, tidalerr.DecodeWrap("decode master key", err)
	}

	blob, err := base64.StdEncoding.DecodeString(keyID)
	if err != nil {
		return nil, tidalerr.DecodeWrap("decode key_id", err)
	}
	if len(blob) < aes.BlockSize {
		return nil, tidalerr.Encryption("key_id blob shorter than one AES block")
	}

	iv := blob[:aes.BlockSize]
	ciphertext := blob[aes.BlockSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, tidalerr.Encryption("key_id ciphertext is not block-aligned")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, tidalerr.Encryption("invalid master key/iv length: " + err.Error())
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	if len(plaintext) < keySize+nonceSize {
		return nil, tidalerr.Encryption("key_id plaintext shorter than key+nonce")
	}

	dk := &DecryptionKey{}
	copy(dk.Key[:], plaintext[:keySize])
	copy(dk.Nonce[:], plaintext[keySize:keySize+nonceSize])
	return dk, nil
}

// StreamDecryptor applies AES-128-CTR keystream to media bytes in place, in
// delivery order. It is single-owner, mutable, and non-restartable: once
// constructed it must be advanced exactly once over the full, ordered
// sequence of segment bytes. Calling Decrypt out of order, or from more
// than one goroutine, silently produces wrong output — CTR mode has no
// integrity check of its own.
type StreamDecryptor struct {
	stream cipher.Stream
}

// NewStreamDecryptor builds the CTR cipher whose 16-byte IV is the 8-byte
// nonce followed by 8 zero bytes (a zero initial counter).
func NewStreamDecryptor(dk *DecryptionKey) (*StreamDecryptor, error) {
	block, err := aes.NewCipher(dk.Key[:])
	if err != nil {
		return nil, tidalerr.Encryption("invalid content key length: " + err.Error())
	}

	var iv [aes.BlockSize]byte
	copy(iv[:nonceSize], dk.Nonce[:])

	return &StreamDecryptor{stream: cipher.NewCTR(block, iv[:])}, nil
}

// Decrypt XORs the keystream into data in place, advancing the decryptor's
// internal counter by len(data) bytes. Calling Decrypt(A) then Decrypt(B)
// on the same decryptor is equivalent to a single Decrypt(A||B) call — the
// ordering invariant segment-based stream acquisition depends on.
func (d *StreamDecryptor) Decrypt(data []byte) {
	d.stream.XORKeyStream(data, data)
}
