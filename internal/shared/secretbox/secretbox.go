package secretbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
)

// Codec menyegel payload JSON kecil menjadi token AES-256-GCM yang aman
// dibawa di dalam cookie (base64url, nonce di depan, auth tag di belakang).
type Codec struct {
	aead cipher.AEAD
}

var ErrInvalidKey = errors.New("secretbox: key must be 64 hex characters (32 bytes)")

// New membangun Codec dari key hex 64 karakter.
// Key salah panjang adalah error konfigurasi, bukan error runtime.
func New(hexKey string) (*Codec, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != 32 {
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Codec{aead: aead}, nil
}

// Seal meng-encode v sebagai JSON lalu mengenkripsinya dengan nonce acak per panggilan.
func (c *Codec) Seal(v any) (string, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open mendekripsi token ke dst. Return false untuk SEMUA kegagalan:
// encoding rusak, token terpotong, key salah, auth tag tidak cocok.
// Caller cukup memperlakukan false sebagai "tidak ada data".
func (c *Codec) Open(token string, dst any) bool {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return false
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize+c.aead.Overhead() {
		return false
	}

	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return false
	}

	return json.Unmarshal(plaintext, dst) == nil
}
