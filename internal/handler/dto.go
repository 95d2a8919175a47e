package handler

type MeetingResponse struct {
	MeetingID   string `json:"meeting_id"`
	BodyName    string `json:"body_name"`
	Title       string `json:"title"`
	MeetingDate string `json:"meeting_date"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	CreatedAt   string `json:"created_at"`
}

type MeetingListResponse struct {
	Count    int               `json:"count"`
	Meetings []MeetingResponse `json:"meetings"`
}

type AgendaItemResponse struct {
	ItemID       string   `json:"item_id"`
	MeetingID    string   `json:"meeting_id"`
	Title        string   `json:"title"`
	Topic        string   `json:"topic"`
	Relevance    int      `json:"relevance"`
	Summary      string   `json:"summary"`
	KeyDetails   []string `json:"key_details"`
	WhyItMatters string   `json:"why_it_matters"`
	Status       string   `json:"status"`
	Decision     string   `json:"decision,omitempty"`
	EconomicAxis int      `json:"economic_axis"`
	SocialAxis   int      `json:"social_axis"`
	MeetingDate  string   `json:"meeting_date"`
}

type MeetingDetailResponse struct {
	Meeting MeetingResponse      `json:"meeting"`
	Items   []AgendaItemResponse `json:"items"`
}

type ItemListResponse struct {
	Count int                  `json:"count"`
	Items []AgendaItemResponse `json:"items"`
}

type SearchResultResponse struct {
	AgendaItemResponse
	SearchScore float64 `json:"search_score"`
}

type SearchResponse struct {
	Query        string                 `json:"query"`
	Count        int                    `json:"count"`
	TotalIndexed int                    `json:"total_indexed"`
	Results      []SearchResultResponse `json:"results"`
}

type StatsResponse struct {
	Meetings      int      `json:"meetings"`
	AgendaItems   int      `json:"agenda_items"`
	HighRelevance int      `json:"high_relevance"`
	Topics        []string `json:"topics"`
}
