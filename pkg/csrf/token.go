package csrf

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"strings"
)

// payload is the signed token body.
type payload struct {
	SessionID string `json:"sid"`
	Nonce     string `json:"n"`
	ExpiresAt int64  `json:"exp"`
}

// sign encodes p as base64url(json).base64url(hmac-sha256).
func sign(p payload, secret []byte) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	h := hmac.New(sha256.New, secret)
	h.Write(data)

	return base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(h.Sum(nil)), nil
}

// parse verifies the signature of tok and decodes its payload.
func parse(tok string, secret []byte) (payload, error) {
	var p payload
	body, sigPart, ok := strings.Cut(tok, ".")
	if !ok || body == "" || sigPart == "" {
		return p, ErrInvalidToken
	}

	data, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return p, ErrInvalidToken
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return p, ErrInvalidToken
	}

	h := hmac.New(sha256.New, secret)
	h.Write(data)
	if subtle.ConstantTimeCompare(sig, h.Sum(nil)) != 1 {
		return p, ErrSignatureInvalid
	}

	if err := json.Unmarshal(data, &p); err != nil {
		return p, ErrInvalidToken
	}
	return p, nil
}
