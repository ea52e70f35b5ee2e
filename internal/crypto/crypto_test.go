package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"testing"
)

// buildKeyID encrypts key||nonce under the fixed master key with a random
// IV and prepends that IV, mirroring how the service constructs key_id.
func buildKeyID(t *testing.T, key [keySize]byte, nonce [nonceSize]byte) string {
	t.Helper()

	master, err := base64.StdEncoding.DecodeString(masterKey)
	if err != nil {
		t.Fatalf("decode master key: %v", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		t.Fatalf("generate iv: %v", err)
	}

	plaintext := append(append([]byte{}, key[:]...), nonce[:]...)
	if len(plaintext) != aes.BlockSize+nonceSize {
		t.Fatalf("unexpected plaintext length %d", len(plaintext))
	}

	block, err := aes.NewCipher(master)
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)

	blob := append(iv, ciphertext...)
	return base64.StdEncoding.EncodeToString(blob)
}

// TestKeyUnwrapRoundTrip is testable property #6.
func TestKeyUnwrapRoundTrip(t *testing.T) {
	var key [keySize]byte
	var nonce [nonceSize]byte
	copy(key[:], []byte("0123456789abcdef"))
	copy(nonce[:], []byte("01234567"))

	keyID := buildKeyID(t, key, nonce)

	dk, err := UnwrapKeyID(keyID)
	if err != nil {
		t.Fatalf("UnwrapKeyID: %v", err)
	}
	if dk.Key != key {
		t.Errorf("Key = %x, want %x", dk.Key, key)
	}
	if dk.Nonce != nonce {
		t.Errorf("Nonce = %x, want %x", dk.Nonce, nonce)
	}
}

// TestCTROrdering is testable property #8: decrypting A||B with one
// decryptor equals decrypt(A) then decrypt(B) with the same decryptor.
func TestCTROrdering(t *testing.T) {
	dk := &DecryptionKey{}
	copy(dk.Key[:], []byte("sixteen byte key"))
	copy(dk.Nonce[:], []byte("nonce8bt"))

	whole := bytes.Repeat([]byte{0xAB}, 37)

	wholeDecryptor, err := NewStreamDecryptor(dk)
	if err != nil {
		t.Fatalf("NewStreamDecryptor: %v", err)
	}
	wholeCopy := append([]byte{}, whole...)
	wholeDecryptor.Decrypt(wholeCopy)

	segmented, err := NewStreamDecryptor(dk)
	if err != nil {
		t.Fatalf("NewStreamDecryptor: %v", err)
	}
	a := append([]byte{}, whole[:16]...)
	b := append([]byte{}, whole[16:]...)
	segmented.Decrypt(a)
	segmented.Decrypt(b)
	segmentedResult := append(a, b...)

	if !bytes.Equal(wholeCopy, segmentedResult) {
		t.Fatalf("segment-by-segment decryption diverged from whole-stream decryption")
	}
}

func TestUnwrapKeyIDRejectsShortBlob(t *testing.T) {
	short := base64.StdEncoding.EncodeToString([]byte("too short"))
	if _, err := UnwrapKeyID(short); err == nil {
		t.Fatal("expected error for short key_id blob")
	}
}
