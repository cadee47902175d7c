package recommend

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/hungrypeople/feast/internal/model"
)

// NearbyVenue is a venue near an event location with a textual distance
// estimate. Distance is approximated from address containment, never from
// coordinates.
type NearbyVenue struct {
	Venue            model.Venue `json:"venue"`
	DistanceEstimate string      `json:"distance_estimate"`
}

// NearEventRequest asks for venues near an event location, with optional
// region preference and spending-category presets.
type NearEventRequest struct {
	Location string
	Region   string
	Category string
	People   int
	Limit    int
}

// NearEvent finds venues near an event location. A known region restricts
// the candidate set; extracted location keywords then narrow by address,
// and category presets apply the meeting and refreshment constraints.
// Matches are sampled randomly up to the limit.
func (e *Engine) NearEvent(ctx context.Context, req NearEventRequest) ([]NearbyVenue, error) {
	const candidatePool = 500

	var candidates []model.Venue
	var err error
	if req.Region != "" {
		candidates, err = e.store.GetVenuesByRegion(ctx, req.Region, candidatePool)
	} else {
		candidates, err = e.store.GetVenuesByKeyword(ctx, "", candidatePool)
	}
	if err != nil {
		return nil, err
	}

	keywords := ExtractKeywords(req.Location)

	var matches []model.Venue
	for _, v := range candidates {
		if len(keywords) > 0 && !addressMatchesAny(v.Address, keywords) {
			continue
		}
		if req.People > 0 && v.MaxPartySize < req.People {
			continue
		}
		switch req.Category {
		case CategoryMeeting:
			if v.NoiseLevel != model.NoiseLow && !v.HasPrivateRoom {
				continue
			}
		case CategoryRefreshments:
			if !isRefreshmentVenue(v.VenueType) {
				continue
			}
		}
		matches = append(matches, v)
	}

	rand.Shuffle(len(matches), func(i, j int) {
		matches[i], matches[j] = matches[j], matches[i]
	})
	if req.Limit > 0 && len(matches) > req.Limit {
		matches = matches[:req.Limit]
	}

	nearby := make([]NearbyVenue, 0, len(matches))
	for _, v := range matches {
		nearby = append(nearby, NearbyVenue{
			Venue:            v,
			DistanceEstimate: estimateDistance(req.Location, v.Address),
		})
	}
	return nearby, nil
}

// TailoredRecommendations groups venues by event-occasion suitability.
type TailoredRecommendations struct {
	FormalMeeting    []model.Venue `json:"formal_meeting"`
	CasualNetworking []model.Venue `json:"casual_networking"`
	QuickMeal        []model.Venue `json:"quick_meal"`
}

var (
	networkingVenueTypes = []string{"카페", "퓨전", "양식"}
	quickMealVenueTypes  = []string{"패스트푸드", "한식", "중식"}
)

// Tailor splits ranked venues into occasion buckets for a specific event.
// A venue may appear in more than one bucket.
func Tailor(venues []model.Venue) *TailoredRecommendations {
	tailored := &TailoredRecommendations{}
	for _, v := range venues {
		if v.NoiseLevel == model.NoiseLow || v.HasPrivateRoom {
			tailored.FormalMeeting = append(tailored.FormalMeeting, v)
		}
		if containsString(networkingVenueTypes, v.VenueType) {
			tailored.CasualNetworking = append(tailored.CasualNetworking, v)
		}
		if containsString(quickMealVenueTypes, v.VenueType) {
			tailored.QuickMeal = append(tailored.QuickMeal, v)
		}
	}
	return tailored
}

func addressMatchesAny(address string, keywords []Keyword) bool {
	for _, kw := range keywords {
		if strings.Contains(address, kw.Token) {
			return true
		}
	}
	return false
}

func isRefreshmentVenue(venueType string) bool {
	return containsString(refreshmentVenueTypes, venueType)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// estimateDistance gives a coarse textual estimate from address overlap.
func estimateDistance(location, address string) string {
	if location == "" || address == "" {
		return "거리 불명"
	}
	for _, part := range strings.Fields(location) {
		if strings.Contains(address, part) {
			return "도보 5분 이내"
		}
	}
	if containsAnyToken(address, coreRegionVocabulary) {
		return "차량 10-20분"
	}
	return "차량 20분 이상"
}
