package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     []Keyword
	}{
		{
			name:     "region and venue term",
			location: "대전 DCC",
			want: []Keyword{
				{Token: "대전", Class: ClassRegion},
				{Token: "DCC", Class: ClassVenueTerm},
			},
		},
		{
			name:     "region district and venue term",
			location: "대전 유성구 컨벤션센터",
			want: []Keyword{
				{Token: "대전", Class: ClassRegion},
				{Token: "유성구", Class: ClassDistrict},
				{Token: "컨벤션", Class: ClassVenueTerm},
				{Token: "센터", Class: ClassVenueTerm},
			},
		},
		{
			name:     "special zone",
			location: "대덕특구 일원",
			want: []Keyword{
				{Token: "대덕특구", Class: ClassRegion},
			},
		},
		{
			name:     "university contains both terms",
			location: "전북대학교 중앙도서관",
			want: []Keyword{
				{Token: "전북", Class: ClassRegion},
				{Token: "대학교", Class: ClassVenueTerm},
				{Token: "대학", Class: ClassVenueTerm},
			},
		},
		{
			name:     "no vocabulary match",
			location: "어딘가 모르는 곳",
			want:     nil,
		},
		{
			name:     "empty input",
			location: "   ",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.location)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractKeywords_Deduplicates(t *testing.T) {
	got := ExtractKeywords("대전 대전 대전")
	require.Len(t, got, 1)
	assert.Equal(t, "대전", got[0].Token)
}

func TestExtractKeywords_Idempotent(t *testing.T) {
	// Re-extracting from the joined tokens of a previous extraction yields
	// the same keyword set.
	first := ExtractKeywords("대전 유성구 DCC 컨벤션")
	require.NotEmpty(t, first)

	var joined string
	for _, kw := range first {
		joined += kw.Token + " "
	}

	second := ExtractKeywords(joined)
	assert.Equal(t, first, second)
}

func TestKeywordClass_Weight(t *testing.T) {
	assert.Equal(t, 3, ClassRegion.Weight())
	assert.Equal(t, 2, ClassDistrict.Weight())
	assert.Equal(t, 1, ClassVenueTerm.Weight())
}
