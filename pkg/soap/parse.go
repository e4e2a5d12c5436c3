package soap

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Node is one element of a parsed XML document. Methods on Node are
// nil-safe so lookups can be chained without presence checks at every
// level; a miss anywhere in the chain yields nil, and the text/number
// accessors on nil report absence.
//
// Lookup is by local name only. Devices disagree about namespace
// prefixes (tt:, tds:, sometimes none), so matching the qualified name
// would make parsing firmware-dependent.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []Node     `xml:",any"`
}

// Name returns the element's local name, or "" for a nil node.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	return n.XMLName.Local
}

// Get returns the first child whose local name matches, or nil.
func (n *Node) Get(local string) *Node {
	if n == nil {
		return nil
	}
	for i := range n.Children {
		if n.Children[i].XMLName.Local == local {
			return &n.Children[i]
		}
	}
	return nil
}

// All returns every child whose local name matches.
func (n *Node) All(local string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for i := range n.Children {
		if n.Children[i].XMLName.Local == local {
			out = append(out, &n.Children[i])
		}
	}
	return out
}

// Each returns all children of the node.
func (n *Node) Each() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, len(n.Children))
	for i := range n.Children {
		out[i] = &n.Children[i]
	}
	return out
}

// Text returns the node's character data with surrounding whitespace
// removed, or "" for a nil node.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Content)
}

// Int parses the node text as a decimal integer.
// The second result is false when the node is absent or not numeric.
func (n *Node) Int() (int, bool) {
	t := n.Text()
	if t == "" {
		return 0, false
	}
	v, err := strconv.Atoi(t)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Bool parses the node text as an xsd:boolean (true/false/1/0).
// The second result is false when the node is absent or malformed.
func (n *Node) Bool() (bool, bool) {
	switch n.Text() {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

// Attr returns the value of the first attribute with the given local name.
func (n *Node) Attr(local string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// Response is a parsed SOAP response document plus the raw bytes it
// was decoded from.
type Response struct {
	root Node
	raw  []byte
}

// ParseResponse decodes a SOAP document into a navigable Response.
// The raw bytes are retained for diagnostics.
func ParseResponse(data []byte) (*Response, error) {
	var root Node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse response XML: %w", err)
	}
	return &Response{root: root, raw: data}, nil
}

// Raw returns the undecoded response bytes.
func (r *Response) Raw() []byte {
	if r == nil {
		return nil
	}
	return r.raw
}

// Envelope returns the document root element.
func (r *Response) Envelope() *Node {
	if r == nil {
		return nil
	}
	return &r.root
}

// Body returns the SOAP Body element, or nil when the document is not
// an envelope.
func (r *Response) Body() *Node {
	return r.Envelope().Get("Body")
}

// Fault describes a SOAP 1.2 fault carried in a response body.
type Fault struct {
	// Code is the fault code value (e.g. "s:Sender").
	Code string

	// Subcode is the nested subcode value when present
	// (e.g. "ter:NotAuthorized").
	Subcode string

	// Reason is the human-readable fault text.
	Reason string

	// Detail is the flattened fault detail text when present.
	Detail string
}

// Error renders the fault as a one-line message.
func (f *Fault) Error() string {
	parts := make([]string, 0, 3)
	if f.Code != "" {
		code := f.Code
		if f.Subcode != "" {
			code += "/" + f.Subcode
		}
		parts = append(parts, code)
	}
	if f.Reason != "" {
		parts = append(parts, f.Reason)
	}
	if f.Detail != "" {
		parts = append(parts, f.Detail)
	}
	if len(parts) == 0 {
		return "soap fault"
	}
	return "soap fault: " + strings.Join(parts, ": ")
}

// Fault returns the fault carried in the response body, or nil when
// the response is not a fault.
func (r *Response) Fault() *Fault {
	fault := r.Body().Get("Fault")
	if fault == nil {
		return nil
	}
	f := &Fault{
		Code:    fault.Get("Code").Get("Value").Text(),
		Subcode: fault.Get("Code").Get("Subcode").Get("Value").Text(),
		Reason:  fault.Get("Reason").Get("Text").Text(),
	}
	if detail := fault.Get("Detail"); detail != nil {
		f.Detail = detail.Get("Text").Text()
		if f.Detail == "" {
			f.Detail = detail.Text()
		}
	}
	// SOAP 1.1 style faults appear on some legacy firmwares.
	if f.Code == "" {
		f.Code = fault.Get("faultcode").Text()
	}
	if f.Reason == "" {
		f.Reason = fault.Get("faultstring").Text()
	}
	return f
}
