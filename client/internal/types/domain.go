package types

import (
	"encoding/xml"
	"strings"
)

// ------------------------------
// XML documents
// ------------------------------

// XMLNode is a generic XML element as returned by the /api endpoints.
type XMLNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Nodes   []XMLNode  `xml:",any"`
}

// Name returns the local element name.
func (n *XMLNode) Name() string { return n.XMLName.Local }

// Content returns the element's text with surrounding whitespace removed.
func (n *XMLNode) Content() string { return strings.TrimSpace(n.Text) }

// Attr looks up an attribute by local name.
func (n *XMLNode) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first direct child with the given local name, or nil.
func (n *XMLNode) Child(name string) *XMLNode {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

// User is the opaque <user> element returned on successful authentication.
// The client passes it through without interpreting its fields.
type User = XMLNode

// ------------------------------
// Search
// ------------------------------

// SearchResult is one item of a /json/search response. The assets and
// thumbnails members are decoded from their JSON-string wire form.
type SearchResult map[string]any

// Assets returns the decoded assets member.
func (r SearchResult) Assets() any { return r["assets"] }

// Thumbnails returns the decoded thumbnails member.
func (r SearchResult) Thumbnails() any { return r["thumbnails"] }
