package records

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/wikigraph/wcg/indexing"
)

const samplePages = "1\t0\t'Apple'\t0\t120\twikitext\ten\n" +
	"2\t14\t'Fruits'\t0\t40\twikitext\ten\n" +
	"3\t14\t'Recipes'\t0\t40\twikitext\ten\n" +
	"4\t5\t'Talk about apples'\t0\t10\twikitext\ten\n" +
	"5\t102\t'Cookbook:Pie'\t0\t900\twikitext\ten\n"

const sampleLinks = "1\t'Fruits'\t'page'\n" +
	"2\t'Recipes'\t'subcat'\n"

func TestParsePageRecord(t *testing.T) {
	rec, err := ParsePageRecord("1\t0\t'Apple'\t0\t120\twikitext\ten\n")
	require.NoError(t, err)
	assert.Equal(t, "1", rec.ID)
	assert.Equal(t, indexing.NamespaceMain, rec.Namespace)
	assert.Equal(t, "'Apple'", rec.Title)
	assert.Equal(t, "en", rec.Lang, "line break is not part of the last field")

	rec, err = ParsePageRecord("1\t0\t'Apple'\t0\t120\twikitext\ten\r\n")
	require.NoError(t, err)
	assert.Equal(t, "en", rec.Lang)

	_, err = ParsePageRecord("1\t0\t'Apple'")
	assert.ErrorIs(t, err, ErrMalformedRecord)

	_, err = ParsePageRecord("1\tmain\t'Apple'\t0\t120\twikitext\ten")
	assert.ErrorIs(t, err, ErrInvalidNamespace)
}

func TestParseLinkRecord(t *testing.T) {
	rec, err := ParseLinkRecord("2\t'Recipes'\t'subcat'\r\n")
	require.NoError(t, err)
	assert.Equal(t, "2", rec.ChildID)
	assert.Equal(t, "'Recipes'", rec.Label)
	assert.Equal(t, indexing.MembershipSubcat, rec.Type)

	_, err = ParseLinkRecord("2\t'Recipes'\t'subcat'\textra")
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestLoader(t *testing.T) {
	t.Run("pages are indexed reciprocally and filtered by namespace", func(t *testing.T) {
		l := NewLoader()
		pages, stats, err := l.LoadPages(strings.NewReader(samplePages), "pages.tsv")
		require.NoError(t, err)

		assert.Equal(t, 5, stats.Records)
		assert.Equal(t, 4, stats.Retained)
		assert.Equal(t, 1, stats.Skipped)

		assert.Equal(t, []string{"'Apple'"}, pages.TitlesOf("1"))
		assert.Equal(t, []string{"1"}, pages.IDsOf("'Apple'"))
		assert.True(t, pages.HasTitle("'Fruits'"), "namespace 14 is retained")
		assert.True(t, pages.HasTitle("'Cookbook:Pie'"), "namespaces above 15 are retained")
		assert.False(t, pages.HasTitle("'Talk about apples'"), "namespace 5 is metadata")
		assert.False(t, pages.HasID("4"))
		assert.Empty(t, pages.Validate())
	})

	t.Run("links are indexed reciprocally without filtering", func(t *testing.T) {
		l := NewLoader()
		links, stats, err := l.LoadCategoryLinks(strings.NewReader(sampleLinks+"9\t'Images'\t'file'\n"), "links.tsv")
		require.NoError(t, err)

		assert.Equal(t, 3, stats.Retained)
		assert.True(t, links.HasLabel("'Fruits'"))
		assert.True(t, links.HasChild("1"))
		assert.True(t, links.HasLabel("'Images'"))
		assert.Equal(t, indexing.MembershipOther, links.ByChild("9")[0].Type)
		assert.Empty(t, links.Validate())
	})

	t.Run("both indices share one symbol table", func(t *testing.T) {
		l := NewLoader()
		pages, _, err := l.LoadPages(strings.NewReader(samplePages), "pages")
		require.NoError(t, err)
		links, _, err := l.LoadCategoryLinks(strings.NewReader(sampleLinks), "links")
		require.NoError(t, err)
		assert.Same(t, pages.Symbols(), links.Symbols())
	})

	t.Run("malformed line aborts with its location", func(t *testing.T) {
		src := samplePages + "6\t0\t'Broken'\n"
		_, _, err := NewLoader().LoadPages(strings.NewReader(src), "pages.tsv")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedRecord)

		var re *RecordError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, "pages.tsv", re.Source)
		assert.Equal(t, 6, re.Line)
		assert.Equal(t, 3, re.Fields)
		assert.Equal(t, PageFields, re.Want)
	})

	t.Run("malformed link aborts", func(t *testing.T) {
		_, _, err := NewLoader().LoadCategoryLinks(strings.NewReader("1\t'Fruits'\n"), "links.tsv")
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("empty sources yield empty indices", func(t *testing.T) {
		pages, links, err := Load(strings.NewReader(""), strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, 0, pages.Len())
		assert.Equal(t, 0, links.Len())
	})
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	pagesPath := filepath.Join(dir, "pages.tsv.gz")
	linksPath := filepath.Join(dir, "categorylinks.tsv")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(samplePages))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(pagesPath, buf.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(linksPath, []byte(sampleLinks), 0o644))

	pages, links, err := NewLoader().LoadFiles(pagesPath, linksPath)
	require.NoError(t, err)
	assert.True(t, pages.HasTitle("'Recipes'"))
	assert.True(t, links.HasLabel("'Recipes'"))

	_, _, err = NewLoader().LoadFiles(filepath.Join(dir, "missing.tsv"), linksPath)
	assert.Error(t, err)
}
