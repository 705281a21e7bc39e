// Package sharing turns a life configuration into a compact, URL-safe token
// and back.
//
// A token is the JSON form of the configuration (without the storage
// version), compressed with zlib and encoded as unpadded base64url.
package sharing

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
)

// EncodeConfig returns the share token of cfg.
func EncodeConfig(cfg lifeconfig.LifeConfig) (string, error) {
	if err := cfg.CheckWritable(); err != nil {
		return "", err
	}

	payload, err := json.Marshal(cfg.Canonical())
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrConfigEncode, err)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrTokenCompress, err)
	}
	if _, err := zw.Write(payload); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrTokenCompress, err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrTokenCompress, err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeConfig reverses EncodeConfig. It never fails loudly: any problem with
// the token (bad alphabet, corrupt stream, oversized payload, malformed JSON
// or a shape the validator rejects) yields false.
func DecodeConfig(token string) (lifeconfig.LifeConfig, bool) {
	if token == "" || !urlSafe(token) {
		return lifeconfig.LifeConfig{}, false
	}

	compressed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return lifeconfig.LifeConfig{}, false
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return lifeconfig.LifeConfig{}, false
	}
	defer zr.Close()

	payload, err := io.ReadAll(io.LimitReader(zr, config.MaxDecodedSize+1))
	if err != nil || len(payload) > config.MaxDecodedSize {
		return lifeconfig.LifeConfig{}, false
	}

	var raw any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return lifeconfig.LifeConfig{}, false
	}
	if !lifeconfig.Validate(raw) {
		return lifeconfig.LifeConfig{}, false
	}
	return lifeconfig.Normalize(raw), true
}

// urlSafe reports whether s only holds base64url characters. The decoder
// itself silently skips CR and LF.
func urlSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
