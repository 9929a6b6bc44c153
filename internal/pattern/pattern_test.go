package pattern

import (
	"testing"

	"renamer/internal/errors"
	"renamer/pkg/types"

	alsrt "github.com/alecthomas/assert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyPatternIsNoop(t *testing.T) {
	specs := []types.TransformSpec{
		{Replacement: "x"},
		{Replacement: "x", IsRegex: true},
		{Replacement: "x", CaseInsensitive: true},
		{Replacement: "x", IsRegex: true, CaseInsensitive: true},
	}
	for _, spec := range specs {
		m, err := Compile(spec)
		require.NoError(t, err)
		assert.Equal(t, "report.txt", m.Apply("report.txt"))
		assert.Equal(t, spec, m.Spec())
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		name string
		spec types.TransformSpec
		in   string
		want string
	}{
		{"every occurrence", types.TransformSpec{Pattern: "a", Replacement: "b"}, "banana.txt", "bbnbnb.txt"},
		{"case sensitive", types.TransformSpec{Pattern: "img", Replacement: "photo"}, "IMG_img.png", "IMG_photo.png"},
		{"case insensitive", types.TransformSpec{Pattern: "img", Replacement: "photo", CaseInsensitive: true}, "IMG_img.png", "photo_photo.png"},
		{"non overlapping", types.TransformSpec{Pattern: "aa", Replacement: "b"}, "aaa", "ba"},
		{"extension is part of the name", types.TransformSpec{Pattern: ".jpeg", Replacement: ".jpg"}, "cat.jpeg", "cat.jpg"},
		{"no dollar expansion", types.TransformSpec{Pattern: "x", Replacement: "$1"}, "x.txt", "$1.txt"},
		{"no dollar expansion ignoring case", types.TransformSpec{Pattern: "X", Replacement: "${1}", CaseInsensitive: true}, "x.txt", "${1}.txt"},
		{"metacharacters are literal", types.TransformSpec{Pattern: "(1)", Replacement: ""}, "doc (1).pdf", "doc .pdf"},
		{"metacharacters ignoring case", types.TransformSpec{Pattern: "A.B", Replacement: "-", CaseInsensitive: true}, "a.b axb", "- axb"},
		{"no match", types.TransformSpec{Pattern: "zzz", Replacement: "y"}, "file.txt", "file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.spec)
			alsrt.NoError(t, err)
			alsrt.Equal(t, tt.want, m.Apply(tt.in))
		})
	}
}

func TestRegex(t *testing.T) {
	tests := []struct {
		name string
		spec types.TransformSpec
		in   string
		want string
	}{
		{"numbered group", types.TransformSpec{Pattern: `(\d+)`, Replacement: "N$1", IsRegex: true}, "img12.png", "imgN12.png"},
		{"named group", types.TransformSpec{Pattern: `(?P<year>\d{4})-(?P<month>\d{2})`, Replacement: "${month}.${year}", IsRegex: true}, "2024-05 trip.jpg", "05.2024 trip.jpg"},
		{"global", types.TransformSpec{Pattern: `\s+`, Replacement: "_", IsRegex: true}, "my  holiday photo.jpg", "my_holiday_photo.jpg"},
		{"case flag", types.TransformSpec{Pattern: `^img`, Replacement: "photo", IsRegex: true, CaseInsensitive: true}, "IMG_001.JPG", "photo_001.JPG"},
		{"case sensitive by default", types.TransformSpec{Pattern: `^img`, Replacement: "photo", IsRegex: true}, "IMG_001.JPG", "IMG_001.JPG"},
		{"anchored extension", types.TransformSpec{Pattern: `\.jpeg$`, Replacement: ".jpg", IsRegex: true}, "a.jpeg.jpeg", "a.jpeg.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Apply(tt.in))
		})
	}
}

func TestInvalidRegex(t *testing.T) {
	spec := types.TransformSpec{Pattern: "(", Replacement: "x", IsRegex: true}

	m, err := Compile(spec)
	require.Error(t, err)
	assert.Nil(t, m)
	assert.True(t, errors.IsInvalidPattern(err))
	assert.Equal(t, errors.InvalidPattern, errors.KindOf(err))
	assert.Contains(t, err.Error(), `invalid pattern "("`)
	assert.Error(t, Validate(spec))

	assert.Panics(t, func() { MustCompile(spec) })
}

func TestInvalidRegexSyntaxIsLiteralInLiteralMode(t *testing.T) {
	m, err := Compile(types.TransformSpec{Pattern: "(", Replacement: "[", CaseInsensitive: true})
	require.NoError(t, err)
	assert.Equal(t, "a[b.txt", m.Apply("a(b.txt"))
}
