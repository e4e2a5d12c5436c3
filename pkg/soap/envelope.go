package soap

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common errors returned by envelope construction.
var (
	// ErrMissingSecurityMaterial indicates credentials were supplied
	// without the nonce or created instant the digest needs.
	ErrMissingSecurityMaterial = errors.New("soap: security material incomplete")
)

// Namespace is one XML namespace declaration carried on the envelope root.
type Namespace struct {
	// Prefix is the namespace prefix, without the leading "xmlns:".
	Prefix string

	// URI is the namespace URI.
	URI string
}

// EnvelopeConfig carries everything BuildEnvelope needs to produce a
// self-contained request message.
//
// Created and Nonce are inputs rather than values drawn inside the
// builder: the caller injects all entropy, which keeps BuildEnvelope
// deterministic and safe to call repeatedly for retries.
type EnvelopeConfig struct {
	// Body is the action-specific body fragment, already serialized.
	Body string

	// Namespaces are declared on the envelope element in order.
	Namespaces []Namespace

	// ClockSkew is added to Created before the timestamp is rendered,
	// compensating for a device clock that differs from the local one.
	ClockSkew time.Duration

	// Username and Password enable the WS-Security UsernameToken
	// header. Both must be set for the header to be emitted; when
	// either is empty the envelope is unauthenticated.
	Username string
	Password string

	// Created is the local instant the security header is stamped
	// with (before skew adjustment). Required when credentials are set.
	Created time.Time

	// Nonce is the raw nonce digested into the password hash.
	// Required when credentials are set.
	Nonce []byte
}

// authenticated reports whether the config carries usable credentials.
func (c *EnvelopeConfig) authenticated() bool {
	return c.Username != "" && c.Password != ""
}

// BuildEnvelope renders a complete SOAP 1.2 envelope from cfg.
//
// The output is deterministic: the same config always yields the same
// bytes. When credentials are present the header carries a UsernameToken
// with a PasswordDigest computed from the nonce, the skew-adjusted
// Created timestamp, and the password.
func BuildEnvelope(cfg EnvelopeConfig) (string, error) {
	if cfg.authenticated() && (len(cfg.Nonce) == 0 || cfg.Created.IsZero()) {
		return "", fmt.Errorf("%w: credentials set but nonce or created instant missing", ErrMissingSecurityMaterial)
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<s:Envelope xmlns:s="` + NamespaceEnvelope + `"`)
	for _, ns := range cfg.Namespaces {
		b.WriteString(` xmlns:` + ns.Prefix + `="` + ns.URI + `"`)
	}
	b.WriteString(`>`)

	b.WriteString(`<s:Header>`)
	if cfg.authenticated() {
		writeSecurityHeader(&b, cfg)
	}
	b.WriteString(`</s:Header>`)

	b.WriteString(`<s:Body>`)
	b.WriteString(cfg.Body)
	b.WriteString(`</s:Body>`)
	b.WriteString(`</s:Envelope>`)

	return b.String(), nil
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeText escapes the five XML special characters for use in
// element content or attribute values of a body fragment.
func EscapeText(s string) string {
	return xmlEscaper.Replace(s)
}
