package handler

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ConnerV42/spokane-public-brief/internal/model"
	"github.com/ConnerV42/spokane-public-brief/internal/search"
)

type MeetingStore interface {
	GetMeeting(meetingID string) (*model.Meeting, error)
	ListMeetings(bodyName string, limit int) ([]model.Meeting, error)
	CountMeetings() (int, error)
}

type ItemStore interface {
	GetItemsForMeeting(meetingID string) ([]model.AgendaItem, error)
	ListRecentItems(limit int) ([]model.AgendaItem, error)
	ListItemsByTopic(topic string, limit int) ([]model.AgendaItem, error)
	CountItems() (int, error)
	CountHighRelevance(min int) (int, error)
	ListTopics() ([]string, error)
}

type ItemSearcher interface {
	Search(query string, topK int, minScore float64) ([]search.ScoredItem, error)
	Stats() (search.Stats, error)
}

type BriefHandler struct {
	meetings MeetingStore
	items    ItemStore
	searcher ItemSearcher
}

func NewBriefHandler(meetings MeetingStore, items ItemStore, searcher ItemSearcher) *BriefHandler {
	return &BriefHandler{meetings: meetings, items: items, searcher: searcher}
}

func (h *BriefHandler) GetMeetings(c *gin.Context) {
	body := c.Query("body")
	limit := getQueryLimit(c, 50, 200)

	meetings, err := h.meetings.ListMeetings(body, limit)
	if err != nil {
		storageError(c, "error listing meetings", err)
		return
	}

	res := MeetingListResponse{
		Count:    len(meetings),
		Meetings: make([]MeetingResponse, 0, len(meetings)),
	}
	for _, m := range meetings {
		res.Meetings = append(res.Meetings, toMeetingResponse(m))
	}

	c.JSON(http.StatusOK, res)
}

func (h *BriefHandler) GetMeeting(c *gin.Context) {
	meetingID := c.Param("id")

	meeting, err := h.meetings.GetMeeting(meetingID)
	if err != nil {
		storageError(c, "error fetching meeting", err)
		return
	}

	if meeting == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meeting not found"})
		return
	}

	items, err := h.items.GetItemsForMeeting(meetingID)
	if err != nil {
		storageError(c, "error fetching agenda items", err)
		return
	}

	res := MeetingDetailResponse{
		Meeting: toMeetingResponse(*meeting),
		Items:   make([]AgendaItemResponse, 0, len(items)),
	}
	for _, item := range items {
		res.Items = append(res.Items, toItemResponse(item))
	}

	c.JSON(http.StatusOK, res)
}

func (h *BriefHandler) GetItems(c *gin.Context) {
	topic := c.Query("topic")
	minRelevance := getQueryInt(c, "min_relevance", 1)
	limit := getQueryLimit(c, 50, 200)

	var (
		items []model.AgendaItem
		err   error
	)
	if topic != "" {
		items, err = h.items.ListItemsByTopic(topic, 0)
	} else {
		items, err = h.items.ListRecentItems(0)
	}
	if err != nil {
		storageError(c, "error listing agenda items", err)
		return
	}

	var filtered []model.AgendaItem
	for _, item := range items {
		if item.Relevance >= minRelevance {
			filtered = append(filtered, item)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Relevance > filtered[j].Relevance
	})

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	res := ItemListResponse{
		Count: len(filtered),
		Items: make([]AgendaItemResponse, 0, len(filtered)),
	}
	for _, item := range filtered {
		res.Items = append(res.Items, toItemResponse(item))
	}

	c.JSON(http.StatusOK, res)
}

func (h *BriefHandler) GetSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Query parameter q is required"})
		return
	}

	limit := getQueryLimit(c, 10, 50)

	results, err := h.searcher.Search(query, limit, 0.1)
	if err != nil {
		storageError(c, "error searching agenda items", err)
		return
	}

	stats, err := h.searcher.Stats()
	if err != nil {
		storageError(c, "error fetching search stats", err)
		return
	}

	res := SearchResponse{
		Query:        query,
		Count:        len(results),
		TotalIndexed: stats.TotalItems,
		Results:      make([]SearchResultResponse, 0, len(results)),
	}
	for _, r := range results {
		res.Results = append(res.Results, SearchResultResponse{
			AgendaItemResponse: toItemResponse(r.AgendaItem),
			SearchScore:        r.SearchScore,
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *BriefHandler) GetStats(c *gin.Context) {
	meetings, err := h.meetings.CountMeetings()
	if err != nil {
		storageError(c, "error counting meetings", err)
		return
	}

	items, err := h.items.CountItems()
	if err != nil {
		storageError(c, "error counting agenda items", err)
		return
	}

	highRelevance, err := h.items.CountHighRelevance(4)
	if err != nil {
		storageError(c, "error counting high-relevance items", err)
		return
	}

	topics, err := h.items.ListTopics()
	if err != nil {
		storageError(c, "error listing topics", err)
		return
	}
	if topics == nil {
		topics = []string{}
	}

	c.JSON(http.StatusOK, StatsResponse{
		Meetings:      meetings,
		AgendaItems:   items,
		HighRelevance: highRelevance,
		Topics:        topics,
	})
}

func (h *BriefHandler) GetHealth(c *gin.Context) {
	if _, err := h.meetings.CountMeetings(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

// storageError hides store detail from API clients; only logs carry it.
func storageError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "error", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "Storage unavailable"})
}

func toMeetingResponse(m model.Meeting) MeetingResponse {
	return MeetingResponse{
		MeetingID:   m.MeetingID,
		BodyName:    m.BodyName,
		Title:       m.Title,
		MeetingDate: m.MeetingDate.Format(time.RFC3339),
		Location:    m.Location,
		URL:         m.URL,
		Source:      m.Source,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}

func toItemResponse(item model.AgendaItem) AgendaItemResponse {
	keyDetails := item.KeyDetails
	if keyDetails == nil {
		keyDetails = []string{}
	}

	return AgendaItemResponse{
		ItemID:       item.ItemID,
		MeetingID:    item.MeetingID,
		Title:        item.Title,
		Topic:        item.Topic,
		Relevance:    item.Relevance,
		Summary:      item.Summary,
		KeyDetails:   keyDetails,
		WhyItMatters: item.WhyItMatters,
		Status:       item.Status,
		Decision:     item.Decision,
		EconomicAxis: item.EconomicAxis,
		SocialAxis:   item.SocialAxis,
		MeetingDate:  item.MeetingDate.Format(time.RFC3339),
	}
}

func getQueryInt(c *gin.Context, name string, defaultValue int) int {
	param := c.Query(name)
	if param == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsed
}

func getQueryLimit(c *gin.Context, defaultLimit, maxLimit int) int {
	limit := getQueryInt(c, "limit", defaultLimit)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}
