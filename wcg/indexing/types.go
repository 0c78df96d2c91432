package indexing

import (
	"errors"
	"strings"
)

// Handle is a dense identifier for an interned string key within one Symbols table.
// It is intentionally small and contiguous to support roaring bitmap usage.
type Handle = uint32

// Namespace is the integer role of a page in the source export.
type Namespace int

const (
	NamespaceMain     Namespace = 0
	NamespaceCategory Namespace = 14
	// Namespaces 1-13 and 15 are talk/user/project metadata.
	namespaceLastMeta Namespace = 15
)

// Retained reports whether pages in this namespace belong in the Page Index:
// main content, categories, and anything above the metadata range.
func (ns Namespace) Retained() bool {
	return ns == NamespaceMain || ns == NamespaceCategory || ns > namespaceLastMeta
}

// MembershipType tags a category-link record.
type MembershipType uint8

const (
	// MembershipOther covers tags other than page/subcat (e.g. 'file').
	// Such links are indexed but never descended into.
	MembershipOther MembershipType = iota
	MembershipPage
	MembershipSubcat
)

// ParseMembershipType accepts the export tags with or without SQL quoting.
func ParseMembershipType(tag string) MembershipType {
	switch strings.Trim(tag, "'") {
	case "page":
		return MembershipPage
	case "subcat":
		return MembershipSubcat
	default:
		return MembershipOther
	}
}

func (m MembershipType) String() string {
	switch m {
	case MembershipPage:
		return "page"
	case MembershipSubcat:
		return "subcat"
	default:
		return "other"
	}
}

// PageRef is one entry of the Page Index. Under an identifier Key is a title
// handle; under a title Key is an identifier handle.
type PageRef struct {
	Key       Handle
	Namespace Namespace
}

// Link is one entry of the Category-Link Index. Under a label Other is a child
// identifier handle; under a child identifier Other is a parent label handle.
type Link struct {
	Other Handle
	Type  MembershipType
}

// ErrFrozen is returned when adding to an index after Freeze.
var ErrFrozen = errors.New("index is frozen and cannot be modified")
