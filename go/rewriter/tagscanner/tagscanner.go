// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tagscanner classifies which attribute of an HTML element points
// at an externally fetchable resource, and what kind of resource it is.
// Rewriters use the classification to decide whether an element's URL is
// worth fetching, inlining, or rewriting.
package tagscanner

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Category is the semantic category of a URL-valued attribute.
type Category int

const (
	Undefined Category = iota
	Stylesheet
	Image
	Script
	Hyperlink
	Prefetch
	OtherResource
)

// String returns the string representation of a Category.
func (c Category) String() string {
	switch c {
	case Stylesheet:
		return "stylesheet"
	case Image:
		return "image"
	case Script:
		return "script"
	case Hyperlink:
		return "hyperlink"
	case Prefetch:
		return "prefetch"
	case OtherResource:
		return "other_resource"
	default:
		return "undefined"
	}
}

// URLValuedAttribute is a caller-supplied extension rule declaring that a
// given attribute of a given element holds a URL of a given category.
// Element and attribute names match case-insensitively.
type URLValuedAttribute struct {
	Element   string
	Attribute string
	Category  Category
}

// rel attribute values relevant to classification.
const (
	relIcon = "icon" // favicons

	// See the Safari web content guide for the apple-touch variants.
	relAppleTouchIcon            = "apple-touch-icon"
	relAppleTouchIconPrecomposed = "apple-touch-icon-precomposed"
	relAppleTouchStartupImage    = "apple-touch-startup-image"

	relPrefetch    = "prefetch"
	relDNSPrefetch = "dns-prefetch"

	attrValImage = "image" // <input type="image" src=...>
)

// ScanElement returns the attribute of n holding a resource URL, plus its
// semantic category. The returned pointer aliases n.Attr. Elements with no
// recognized URL-valued attribute yield (nil, Undefined). When the built-in
// table has no match, the extra rules are consulted in order.
func ScanElement(n *html.Node, extra []URLValuedAttribute) (*html.Attribute, Category) {
	if n.Type != html.ElementNode || len(n.Attr) == 0 {
		return nil, Undefined
	}

	var attr *html.Attribute
	category := Undefined

	switch n.DataAtom {
	case atom.Link:
		// See the WHATWG link types list. Unrecognized rel values are
		// ignored so "shortcut icon" still classifies by "icon".
		attr = findAttribute(n, "href")
		category = Hyperlink
		if rel := findAttribute(n, "rel"); rel != nil {
			if IsStylesheetOrAlternate(rel.Val) {
				category = Stylesheet
			} else {
				for _, v := range strings.Fields(rel.Val) {
					if strings.EqualFold(v, relIcon) ||
						strings.EqualFold(v, relAppleTouchIcon) ||
						strings.EqualFold(v, relAppleTouchIconPrecomposed) ||
						strings.EqualFold(v, relAppleTouchStartupImage) {
						// Image takes precedence over prefetch.
						category = Image
						break
					} else if strings.EqualFold(v, relPrefetch) ||
						strings.EqualFold(v, relDNSPrefetch) {
						category = Prefetch
					}
				}
			}
		}
	case atom.Script:
		attr = findAttribute(n, "src")
		category = Script
	case atom.Img:
		attr = findAttribute(n, "src")
		category = Image
	case atom.Body, atom.Td, atom.Th, atom.Table, atom.Tbody, atom.Tfoot, atom.Thead:
		attr = findAttribute(n, "background")
		category = Image
	case atom.Input:
		if typ := findAttribute(n, "type"); typ != nil && strings.EqualFold(typ.Val, attrValImage) {
			attr = findAttribute(n, "src")
			category = Image
		}
	case atom.Command:
		attr = findAttribute(n, "icon")
		category = Image
	case atom.A, atom.Area:
		attr = findAttribute(n, "href")
		category = Hyperlink
	case atom.Form:
		attr = findAttribute(n, "action")
		category = Hyperlink
	case atom.Audio, atom.Video, atom.Source, atom.Track, atom.Embed, atom.Frame, atom.Iframe:
		attr = findAttribute(n, "src")
		category = OtherResource
	case atom.Html:
		attr = findAttribute(n, "manifest")
		category = OtherResource
	case atom.Blockquote, atom.Q, atom.Ins, atom.Del:
		attr = findAttribute(n, "cite")
		category = Hyperlink
	case atom.Button:
		attr = findAttribute(n, "formaction")
		category = Hyperlink
	}

	if attr == nil {
		for _, rule := range extra {
			if !strings.EqualFold(elementName(n), rule.Element) {
				continue
			}
			for i := range n.Attr {
				if strings.EqualFold(n.Attr[i].Key, rule.Attribute) {
					return &n.Attr[i], rule.Category
				}
			}
		}
	}

	if attr == nil || category == Undefined {
		return nil, Undefined
	}
	return attr, category
}

// IsStylesheetOrAlternate reports whether a link rel value names a
// stylesheet, including the "alternate stylesheet" form.
func IsStylesheetOrAlternate(rel string) bool {
	for _, v := range strings.Fields(rel) {
		if strings.EqualFold(v, "stylesheet") {
			return true
		}
	}
	return false
}

// findAttribute returns the first attribute of n with the given
// (lowercase) key, or nil.
func findAttribute(n *html.Node, key string) *html.Attribute {
	for i := range n.Attr {
		if strings.EqualFold(n.Attr[i].Key, key) {
			return &n.Attr[i]
		}
	}
	return nil
}

// elementName returns the element's tag name, preferring the interned
// atom spelling for parsed documents.
func elementName(n *html.Node) string {
	if n.DataAtom != 0 {
		return n.DataAtom.String()
	}
	return n.Data
}
