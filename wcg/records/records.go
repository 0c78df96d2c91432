// Package records parses the tab-delimited page and category-link exports.
//
// It is the only place that knows the export file layout. Every line must carry
// exactly the expected number of fields; a mismatch is fatal for the whole load.
package records

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/wikigraph/wcg/indexing"
)

const (
	PageFields = 7
	LinkFields = 3
)

var (
	ErrMalformedRecord  = errors.New("malformed record")
	ErrInvalidNamespace = errors.New("invalid namespace")
)

// RecordError reports where ingestion stopped.
type RecordError struct {
	Source string
	Line   int
	Fields int
	Want   int
	Err    error
}

func (e *RecordError) Error() string {
	if errors.Is(e.Err, ErrMalformedRecord) {
		return fmt.Sprintf("%s:%d: %v: got %d fields, want %d", e.Source, e.Line, e.Err, e.Fields, e.Want)
	}
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// PageRecord is one line of the page export. Only ID, Namespace and Title are indexed.
type PageRecord struct {
	ID           string
	Namespace    indexing.Namespace
	Title        string
	IsRedirect   string
	Length       string
	ContentModel string
	Lang         string
}

// LinkRecord is one line of the category-link export.
type LinkRecord struct {
	ChildID string
	Label   string
	Type    indexing.MembershipType
	RawType string
}

// ParsePageRecord splits a page line. The trailing line break is not part of any field.
func ParsePageRecord(line string) (PageRecord, error) {
	fields := splitLine(line)
	if len(fields) != PageFields {
		return PageRecord{}, &RecordError{Fields: len(fields), Want: PageFields, Err: ErrMalformedRecord}
	}
	ns, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return PageRecord{}, &RecordError{Fields: len(fields), Want: PageFields,
			Err: fmt.Errorf("%w %q: %v", ErrInvalidNamespace, fields[1], err)}
	}
	return PageRecord{
		ID:           fields[0],
		Namespace:    indexing.Namespace(ns),
		Title:        fields[2],
		IsRedirect:   fields[3],
		Length:       fields[4],
		ContentModel: fields[5],
		Lang:         fields[6],
	}, nil
}

// ParseLinkRecord splits a category-link line.
func ParseLinkRecord(line string) (LinkRecord, error) {
	fields := splitLine(line)
	if len(fields) != LinkFields {
		return LinkRecord{}, &RecordError{Fields: len(fields), Want: LinkFields, Err: ErrMalformedRecord}
	}
	return LinkRecord{
		ChildID: fields[0],
		Label:   fields[1],
		Type:    indexing.ParseMembershipType(fields[2]),
		RawType: fields[2],
	}, nil
}

// splitLine tolerates a trailing line break. The loader's scanner already strips
// it; ParsePageRecord and ParseLinkRecord are also called on raw lines directly.
func splitLine(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	return strings.Split(line, "\t")
}
