package recommend

import (
	"context"
	"fmt"

	"github.com/hungrypeople/feast/internal/model"
)

// QueryType classifies a free-text query for the smart router.
type QueryType string

const (
	// QueryRegion means the query names an administrative region.
	QueryRegion QueryType = "region"
	// QueryEvent means the query uses event terminology.
	QueryEvent QueryType = "event"
	// QueryLocation means the query names a venue or landmark.
	QueryLocation QueryType = "location"
	// QueryGeneral is anything matching no vocabulary.
	QueryGeneral QueryType = "general"
)

// eventTermVocabulary classifies queries about meetings and gatherings.
var eventTermVocabulary = []string{
	"회의", "세미나", "컨퍼런스", "포럼", "워크샵", "행사", "이벤트",
	"심포지움", "설명회", "발표회", "전시회", "박람회",
}

// ClassifyQuery decides the query type by testing vocabulary membership in
// priority order: regions, then event terms, then venue terms.
func ClassifyQuery(query string) QueryType {
	if containsAnyToken(query, coreRegionVocabulary) {
		return QueryRegion
	}
	if containsAnyToken(query, eventTermVocabulary) {
		return QueryEvent
	}
	if containsAnyToken(query, venueTermVocabulary) {
		return QueryLocation
	}
	return QueryGeneral
}

// SmartResult is the smart router's answer: classified type, venues, related
// events and templated follow-up suggestions.
type SmartResult struct {
	Type        QueryType     `json:"query_type"`
	Query       string        `json:"query"`
	Venues      []model.Venue `json:"venues"`
	Events      []model.Event `json:"events,omitempty"`
	Suggestions []string      `json:"suggestions"`
}

const relatedEventLimit = 5

// Smart classifies an arbitrary query and dispatches to region listing,
// location ranking, or a plain name/address search. This is presentation
// convenience over the other engines, not a separate subsystem.
func (e *Engine) Smart(ctx context.Context, query string, limit int) (*SmartResult, error) {
	result := &SmartResult{
		Type:  ClassifyQuery(query),
		Query: query,
	}

	var err error
	switch result.Type {
	case QueryRegion:
		// The query contains a region name; list that region's venues.
		keywords := ExtractKeywords(query)
		region := query
		if len(keywords) > 0 {
			region = keywords[0].Token
		}
		if result.Venues, err = e.store.GetVenuesByRegion(ctx, region, limit); err != nil {
			return nil, err
		}
		if result.Events, err = e.store.GetEventsByRegion(ctx, region, relatedEventLimit); err != nil {
			return nil, err
		}
	case QueryLocation:
		ranked, rankErr := e.RankByLocation(ctx, query, limit)
		if rankErr != nil {
			return nil, rankErr
		}
		for _, rv := range ranked {
			result.Venues = append(result.Venues, rv.Venue)
		}
		if result.Events, err = e.store.SearchEvents(ctx, query, relatedEventLimit); err != nil {
			return nil, err
		}
	default:
		// Event terminology and unclassified queries fall back to a plain
		// name/address substring search.
		if result.Venues, err = e.store.GetVenuesByKeyword(ctx, query, limit); err != nil {
			return nil, err
		}
	}

	result.Suggestions = suggestionsFor(query, result.Type)
	return result, nil
}

// suggestionsFor returns templated follow-up suggestions for the query type.
func suggestionsFor(query string, queryType QueryType) []string {
	switch queryType {
	case QueryRegion:
		return []string{
			fmt.Sprintf("%s 지역의 인기 백년가게", query),
			fmt.Sprintf("%s 근처 행사 일정", query),
			fmt.Sprintf("%s 지역 음식점 추천", query),
		}
	case QueryEvent:
		return []string{
			fmt.Sprintf("%s 관련 행사 정보", query),
			fmt.Sprintf("%s 장소 근처 백년가게", query),
			"행사 참석자 추천 식당",
		}
	case QueryLocation:
		return []string{
			fmt.Sprintf("%s 근처 백년가게", query),
			fmt.Sprintf("%s 주변 음식점", query),
			fmt.Sprintf("%s 지역 행사 정보", query),
		}
	default:
		return []string{
			"전국 백년가게 검색",
			"지역별 음식점 추천",
			"행사 일정 확인",
		}
	}
}
