// Package soap builds and parses ONVIF SOAP 1.2 messages.
//
// The package has two halves. The first builds request envelopes:
// BuildEnvelope combines an action body fragment with namespace
// declarations and, when credentials are configured, a WS-Security
// UsernameToken header whose Created timestamp is shifted by the
// caller's clock-skew estimate. All inputs including the nonce and
// the Created instant are explicit fields of EnvelopeConfig, so the
// function is a pure transformation: identical configs produce
// byte-identical envelopes.
//
// The second half parses responses: ParseResponse decodes arbitrary
// device XML into a Node tree that tolerates the namespace-prefix
// variation found across camera firmwares. Node methods are nil-safe,
// so a chain like
//
//	resp.Body().Get("GetSystemDateAndTimeResponse").Get("SystemDateAndTime")
//
// returns nil instead of panicking when any level is absent.
package soap
