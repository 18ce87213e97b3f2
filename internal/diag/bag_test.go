package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axoproject/internal/source"
)

func TestBag_LimitAndSeverity(t *testing.T) {
	b := NewBag(2)
	assert.True(t, b.Add(NewWarning(PrjInconsistentRepositoryKey, "w")))
	assert.False(t, b.HasErrors())
	assert.True(t, b.HasWarnings())

	assert.True(t, b.Add(NewError(PrjNamelessPackage, "e")))
	assert.False(t, b.Add(NewError(PrjNamelessPackage, "dropped")))
	assert.Equal(t, 2, b.Len())
	assert.True(t, b.HasErrors())
	assert.Equal(t, uint16(2), b.Cap())
}

func TestBag_SortAndDedup(t *testing.T) {
	a := source.NewVirtualFile("a.toml", []byte("0123456789"))
	z := source.NewVirtualFile("z.toml", []byte("0123456789"))

	b := NewBag(10)
	b.Add(NewError(PrjRepoParse, "z").WithSource(&Snippet{File: z, Span: source.Span{Start: 1, End: 2}}))
	b.Add(NewWarning(PrjRepoParse, "a-late").WithSource(&Snippet{File: a, Span: source.Span{Start: 5, End: 6}}))
	b.Add(NewError(PrjRepoParse, "a-early").WithSource(&Snippet{File: a, Span: source.Span{Start: 1, End: 2}}))
	b.Add(NewError(AggProjectMissing, "no location"))
	b.Add(NewError(AggProjectMissing, "no location"))

	b.Sort()
	b.Dedup()

	items := b.Items()
	require.Len(t, items, 4)
	msgs := make([]string, 0, len(items))
	for _, d := range items {
		msgs = append(msgs, d.Message)
	}
	assert.Equal(t, []string{"no location", "a-early", "a-late", "z"}, msgs)
}

func TestBag_Merge(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(PrjRepoParse, "one"))
	other := NewBag(2)
	other.Add(NewError(PrjRepoParse, "two"))
	other.Add(NewError(PrjRepoParse, "three"))

	a.Merge(other)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, uint16(3), a.Cap())
}

func TestBag_ItemsIsCopy(t *testing.T) {
	b := NewBag(1)
	b.Add(NewError(PrjRepoParse, "one"))
	items := b.Items()
	items[0].Message = "changed"
	assert.Equal(t, "one", b.Items()[0].Message)
}
