package soap

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"strings"
	"time"
)

// Well-known namespace URIs used across ONVIF messages.
const (
	// NamespaceEnvelope is the SOAP 1.2 envelope namespace.
	NamespaceEnvelope = "http://www.w3.org/2003/05/soap-envelope"

	// NamespaceSecurity is the WS-Security extension namespace.
	NamespaceSecurity = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"

	// NamespaceSecurityUtility is the WS-Security utility namespace (wsu:Created).
	NamespaceSecurityUtility = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"

	// passwordDigestType marks the Password element as a digest.
	passwordDigestType = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordDigest"

	// nonceEncodingType marks the Nonce element as Base64-encoded.
	nonceEncodingType = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-soap-message-security-1.0#Base64Binary"
)

// createdTimeFormat renders instants the way devices expect in
// wsu:Created: millisecond precision, UTC, trailing Z.
const createdTimeFormat = "2006-01-02T15:04:05.000Z"

// nonceSize is the number of random bytes in a generated nonce.
const nonceSize = 16

// NewNonce returns a fresh random nonce for one security header.
func NewNonce() []byte {
	nonce := make([]byte, nonceSize)
	// rand.Read never fails on supported platforms.
	_, _ = rand.Read(nonce)
	return nonce
}

// FormatCreated renders the skew-adjusted creation instant for the
// security header. The result is always UTC.
func FormatCreated(created time.Time, skew time.Duration) string {
	return created.Add(skew).UTC().Format(createdTimeFormat)
}

// PasswordDigest computes the WS-Security UsernameToken digest:
// Base64(SHA-1(nonce + created + password)).
func PasswordDigest(nonce []byte, created string, password string) string {
	h := sha1.New()
	h.Write(nonce)
	h.Write([]byte(created))
	h.Write([]byte(password))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// writeSecurityHeader appends the WS-Security UsernameToken block.
// The caller has already checked that credentials are present.
func writeSecurityHeader(b *strings.Builder, cfg EnvelopeConfig) {
	created := FormatCreated(cfg.Created, cfg.ClockSkew)
	digest := PasswordDigest(cfg.Nonce, created, cfg.Password)
	nonce := base64.StdEncoding.EncodeToString(cfg.Nonce)

	b.WriteString(`<Security s:mustUnderstand="1" xmlns="` + NamespaceSecurity + `">`)
	b.WriteString(`<UsernameToken>`)
	b.WriteString(`<Username>` + EscapeText(cfg.Username) + `</Username>`)
	b.WriteString(`<Password Type="` + passwordDigestType + `">` + digest + `</Password>`)
	b.WriteString(`<Nonce EncodingType="` + nonceEncodingType + `">` + nonce + `</Nonce>`)
	b.WriteString(`<Created xmlns="` + NamespaceSecurityUtility + `">` + created + `</Created>`)
	b.WriteString(`</UsernameToken>`)
	b.WriteString(`</Security>`)
}
