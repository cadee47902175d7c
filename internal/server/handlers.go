package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hungrypeople/feast/internal/common"
	"github.com/hungrypeople/feast/internal/model"
	"github.com/hungrypeople/feast/internal/recommend"
)

const defaultLimit = 20

// queryLimit parses the limit query parameter, falling back to the default
// for missing or unparseable values.
func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", ""))
	if err != nil || limit <= 0 {
		return defaultLimit
	}
	return limit
}

// parsePositiveInt parses a strictly positive integer.
func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleRegions(c *gin.Context) {
	regions, err := s.store.GetAllRegions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if regions == nil {
		regions = make([]string, 0)
	}
	c.JSON(http.StatusOK, gin.H{"regions": regions})
}

func (s *Server) handleVenues(c *gin.Context) {
	region := c.Query("region")

	// No region means the whole catalog; the keyword query with an empty
	// keyword lists every venue.
	var venues []model.Venue
	var err error
	if region == "" {
		venues, err = s.store.GetVenuesByKeyword(c.Request.Context(), "", queryLimit(c))
	} else {
		venues, err = s.store.GetVenuesByRegion(c.Request.Context(), region, queryLimit(c))
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"region": region,
		"count":  len(venues),
		"venues": emptyIfNil(venues),
	})
}

func (s *Server) handleVenueSearch(c *gin.Context) {
	keyword := c.Query("q")
	venues, err := s.store.GetVenuesByKeyword(c.Request.Context(), keyword, queryLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query":  keyword,
		"count":  len(venues),
		"venues": emptyIfNil(venues),
	})
}

func (s *Server) handleEvents(c *gin.Context) {
	region := c.Query("region")
	events, err := s.store.GetEventsByRegion(c.Request.Context(), region, queryLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"region": region,
		"count":  len(events),
		"events": emptyIfNilEvents(events),
	})
}

func (s *Server) handleEvent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	event, err := s.store.GetEvent(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) handleEventSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		writeError(c, common.NewValidationError("q", "is required"))
		return
	}

	events, err := s.store.SearchEvents(c.Request.Context(), query, queryLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query":  query,
		"count":  len(events),
		"events": emptyIfNilEvents(events),
	})
}

// handleRecommendations ranks venues by a free-text location, or by an
// event's location when an event_id is given instead.
func (s *Server) handleRecommendations(c *gin.Context) {
	if raw := c.Query("event_id"); raw != "" {
		eventID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || eventID <= 0 {
			writeError(c, common.NewValidationError("event_id", "must be a positive integer"))
			return
		}

		event, ranked, err := s.engine.RankByEvent(c.Request.Context(), eventID, queryLimit(c))
		if err != nil {
			writeError(c, err)
			return
		}
		if ranked == nil {
			ranked = make([]model.RankedVenue, 0)
		}
		c.JSON(http.StatusOK, gin.H{
			"event":  event,
			"count":  len(ranked),
			"venues": ranked,
		})
		return
	}

	location := c.Query("location")
	if location == "" {
		writeError(c, common.NewValidationError("location", "is required"))
		return
	}

	ranked, err := s.engine.RankByLocation(c.Request.Context(), location, queryLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if ranked == nil {
		ranked = make([]model.RankedVenue, 0)
	}
	c.JSON(http.StatusOK, gin.H{
		"location": location,
		"count":    len(ranked),
		"venues":   ranked,
	})
}

// handleSmartRecommendations classifies a free-text query and dispatches to
// the matching recommendation strategy.
func (s *Server) handleSmartRecommendations(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		writeError(c, common.NewValidationError("q", "is required"))
		return
	}

	result, err := s.engine.Smart(c.Request.Context(), query, queryLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handlePolicyRecommendations samples venues compliant with a spending
// category's policy rule.
func (s *Server) handlePolicyRecommendations(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		writeError(c, common.NewValidationError("category", "is required"))
		return
	}

	people, _ := strconv.Atoi(c.Query("people"))
	budgetPerHead, _ := strconv.ParseInt(c.Query("budget_per_head"), 10, 64)

	result, err := s.engine.FilterByPolicy(c.Request.Context(), recommend.PolicyRequest{
		Category:      category,
		Location:      c.Query("location"),
		People:        people,
		BudgetPerHead: budgetPerHead,
		Limit:         queryLimit(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleEventRecommendations recommends venues near a specific event,
// bucketed by occasion.
func (s *Server) handleEventRecommendations(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	event, err := s.store.GetEvent(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	people, _ := strconv.Atoi(c.Query("people"))
	nearby, err := s.engine.NearEvent(c.Request.Context(), recommend.NearEventRequest{
		Location: event.Location,
		Region:   event.Region,
		Category: c.Query("category"),
		People:   people,
		Limit:    queryLimit(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	venues := make([]model.Venue, 0, len(nearby))
	for _, nv := range nearby {
		venues = append(venues, nv.Venue)
	}

	c.JSON(http.StatusOK, gin.H{
		"event":    event,
		"venues":   nearby,
		"tailored": recommend.Tailor(venues),
	})
}

func emptyIfNil(venues []model.Venue) []model.Venue {
	if venues == nil {
		return make([]model.Venue, 0)
	}
	return venues
}

func emptyIfNilEvents(events []model.Event) []model.Event {
	if events == nil {
		return make([]model.Event, 0)
	}
	return events
}
