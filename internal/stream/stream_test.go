package stream

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tidal-dl/tidal-dl/internal/tidalapi"
	"github.com/tidal-dl/tidal-dl/internal/tidalerr"
)

// validWrappedKeyIDForTest builds a key_id blob the same way the service
// does: a random IV followed by key||nonce AES-256-CBC-encrypted under the
// fixed master key (see internal/crypto's own buildKeyID helper, which
// this mirrors since masterKey is unexported across package boundaries).
func validWrappedKeyIDForTest(t *testing.T) string {
	t.Helper()
	const masterKeyB64 = "UIlTTEMmmLfGowo/UC60x2H45W6MdGgTRfo/umg4754="
	master, err := base64.StdEncoding.DecodeString(masterKeyB64)
	if err != nil {
		t.Fatalf("decode master key: %v", err)
	}

	plaintext := make([]byte, 24) // 16-byte key + 8-byte nonce
	for i := range plaintext {
		plaintext[i] = byte(i + 1)
	}
	iv := make([]byte, aes.BlockSize)
	for i := range iv {
		iv[i] = byte(0x10 + i)
	}

	block, err := aes.NewCipher(master)
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)

	blob := append(append([]byte{}, iv...), ciphertext...)
	return base64.StdEncoding.EncodeToString(blob)
}

func btsPlaybackInfo(t *testing.T, encryptionType, keyID string) *tidalapi.PlaybackInfo {
	t.Helper()
	raw := `{"mimeType":"audio/flac","codecs":"flac","encryptionType":"` + encryptionType + `"`
	if keyID != "" {
		raw += `,"keyId":"` + keyID + `"`
	}
	raw += `,"urls":["https://cdn.example/seg1","https://cdn.example/seg2"]}`
	return &tidalapi.PlaybackInfo{
		TrackID:          42,
		ManifestMimeType: "application/vnd.tidal.bts",
		Manifest:         base64.StdEncoding.EncodeToString([]byte(raw)),
	}
}

func TestParseStreamInfoBtsNoEncryption(t *testing.T) {
	info, err := parseStreamInfo(btsPlaybackInfo(t, "NONE", ""))
	if err != nil {
		t.Fatalf("parseStreamInfo: %v", err)
	}
	if info.Decryptor != nil {
		t.Error("expected no decryptor for encryptionType NONE")
	}
	if len(info.URLs) != 2 {
		t.Fatalf("URLs = %v", info.URLs)
	}
	if info.FileExtension() != "flac" || !info.IsLossless() {
		t.Errorf("expected flac/lossless, got ext=%q lossless=%v", info.FileExtension(), info.IsLossless())
	}
}

func TestParseStreamInfoBtsOldAesBuildsDecryptor(t *testing.T) {
	// 32 zero bytes wrapped in AES-256-CBC-NoPadding under the fixed unwrap
	// key, base64'd, is enough to exercise the dispatch path; correctness
	// of the unwrap itself is covered by internal/crypto's own tests.
	keyID := validWrappedKeyIDForTest(t)
	info, err := parseStreamInfo(btsPlaybackInfo(t, "OLD_AES", keyID))
	if err != nil {
		t.Fatalf("parseStreamInfo: %v", err)
	}
	if info.Decryptor == nil {
		t.Fatal("expected a decryptor for encryptionType OLD_AES")
	}
}

func TestParseStreamInfoBtsUnknownEncryptionIsError(t *testing.T) {
	_, err := parseStreamInfo(btsPlaybackInfo(t, "SOMETHING_ELSE", ""))
	if err == nil {
		t.Fatal("expected an error for an unrecognized encryption type")
	}
	var te *tidalerr.Error
	if e, ok := err.(*tidalerr.Error); ok {
		te = e
	}
	if te == nil || te.Kind() != tidalerr.KindEncryption {
		t.Fatalf("expected a KindEncryption error, got %v", err)
	}
}

func TestParseStreamInfoDashNeverEncrypted(t *testing.T) {
	mpd := `<MPD><Period><AdaptationSet mimeType="audio/mp4"><Representation codecs="mp4a.40.2">
	  <SegmentTemplate initialization="init.mp4" media="seg-$Number$.mp4">
	    <SegmentTimeline><S d="1000" r="1"/></SegmentTimeline>
	  </SegmentTemplate>
	</Representation></AdaptationSet></Period></MPD>`
	info := &tidalapi.PlaybackInfo{
		TrackID:          7,
		ManifestMimeType: "application/dash+xml",
		Manifest:         base64.StdEncoding.EncodeToString([]byte(mpd)),
	}
	out, err := parseStreamInfo(info)
	if err != nil {
		t.Fatalf("parseStreamInfo: %v", err)
	}
	if out.Decryptor != nil {
		t.Error("DASH streams must never carry a decryptor")
	}
	if out.FileExtension() != "m4a" {
		t.Errorf("FileExtension = %q, want m4a", out.FileExtension())
	}
}

func TestFetchConcatenatesSegmentsInOrder(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Path {
		case "/a":
			w.Write([]byte("AAAA"))
		case "/b":
			w.Write([]byte("BBBB"))
		}
	}))
	defer server.Close()

	info := &Info{URLs: []string{server.URL + "/a", server.URL + "/b"}}
	data, err := Fetch(context.Background(), server.Client(), info)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "AAAABBBB" {
		t.Fatalf("data = %q, want AAAABBBB", data)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestFetchPropagatesNon2xxAsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("expired"))
	}))
	defer server.Close()

	info := &Info{URLs: []string{server.URL + "/seg"}}
	_, err := Fetch(context.Background(), server.Client(), info)
	if err == nil {
		t.Fatal("expected an error for a non-2xx segment response")
	}
	te, ok := err.(*tidalerr.Error)
	if !ok || te.Kind() != tidalerr.KindAPI {
		t.Fatalf("expected a KindAPI error, got %v", err)
	}
}
