package devicemgmt

import "github.com/onvif-protocol/onvif-go/pkg/soap"

// deviceWSDL is the Device Management WSDL namespace. Action URIs hang
// off it.
const deviceWSDL = "http://www.onvif.org/ver10/device/wsdl"

// deviceNamespaces is the fixed namespace set declared on every Device
// Management request. The WS-Security namespaces are declared inline on
// the security header itself.
var deviceNamespaces = []soap.Namespace{
	{Prefix: "tds", URI: deviceWSDL},
	{Prefix: "tt", URI: "http://www.onvif.org/ver10/schema"},
}

// buildEnvelope combines an action body fragment with the session's
// namespace set and authentication material. The security header is
// stamped with local-now plus the current skew estimate, which is what
// keeps digests acceptable to devices whose clocks drift from ours.
//
// All entropy (Created instant, nonce) is drawn here, once per call;
// soap.BuildEnvelope itself is a pure function of its config.
func (s *Session) buildEnvelope(body string) (string, error) {
	config := soap.EnvelopeConfig{
		Body:       body,
		Namespaces: deviceNamespaces,
		ClockSkew:  s.ClockSkew(),
		Username:   s.username,
		Password:   s.password,
	}
	if s.username != "" && s.password != "" {
		config.Created = s.clock()
		config.Nonce = soap.NewNonce()
	}
	return soap.BuildEnvelope(config)
}
