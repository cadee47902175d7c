// Package recommend implements the venue recommendation engine: keyword
// extraction, location ranking, policy-constrained filtering and the smart
// query router.
package recommend

import "strings"

// KeywordClass identifies which vocabulary a keyword was drawn from.
// Broader geographic classes rank higher.
type KeywordClass int

const (
	// ClassRegion is an administrative region or special research zone.
	ClassRegion KeywordClass = iota
	// ClassDistrict is a district or sub-city area.
	ClassDistrict
	// ClassVenueTerm is a venue-type term such as a convention center.
	ClassVenueTerm
)

// Weight returns the ranking weight for venues matched via this class.
func (c KeywordClass) Weight() int {
	switch c {
	case ClassRegion:
		return 3
	case ClassDistrict:
		return 2
	default:
		return 1
	}
}

// Keyword is a vocabulary token extracted from a location string.
type Keyword struct {
	Token string
	Class KeywordClass
}

// The closed keyword vocabularies. Proximity is approximated by textual
// containment of these tokens, not coordinates; ordering matters because
// extraction tests regions before districts before venue terms.
var (
	coreRegionVocabulary = []string{
		"서울", "부산", "대구", "인천", "광주", "대전", "울산", "세종",
		"경기", "강원", "충북", "충남", "전북", "전남", "경북", "경남", "제주",
	}

	specialZoneVocabulary = []string{
		"대덕특구", "과학벨트", "부산특구", "대구특구", "광주특구", "울산특구",
	}

	regionVocabulary = append(append([]string{}, coreRegionVocabulary...), specialZoneVocabulary...)

	districtVocabulary = []string{
		"중구", "서구", "동구", "남구", "북구", "유성구", "덕진구",
		"영등포구", "은평구", "종로구", "해운대구", "수성구", "송도",
	}

	venueTermVocabulary = []string{
		"컨벤션", "센터", "홀", "대학교", "대학", "연구원",
		"아트센터", "문화센터", "DCC", "BCC", "EXCO",
	}
)

// ExtractKeywords turns a free-text location string into an ordered,
// de-duplicated sequence of vocabulary tokens. Empty or no-match input
// yields an empty sequence, which callers treat as "no actionable location
// information".
func ExtractKeywords(location string) []Keyword {
	if strings.TrimSpace(location) == "" {
		return nil
	}

	var keywords []Keyword
	seen := make(map[string]bool)

	appendMatches := func(vocabulary []string, class KeywordClass) {
		for _, token := range vocabulary {
			if seen[token] || !strings.Contains(location, token) {
				continue
			}
			seen[token] = true
			keywords = append(keywords, Keyword{Token: token, Class: class})
		}
	}

	appendMatches(regionVocabulary, ClassRegion)
	appendMatches(districtVocabulary, ClassDistrict)
	appendMatches(venueTermVocabulary, ClassVenueTerm)

	return keywords
}

// containsAnyToken reports whether s contains any of the given tokens.
func containsAnyToken(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
