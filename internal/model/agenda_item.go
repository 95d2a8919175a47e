package model

import "time"

const (
	DefaultTopic    = "other"
	MinRelevance    = 1
	MaxRelevance    = 5
	AxisMin         = -5
	AxisMax         = 5
	StatusFirstRead = "first_reading"
	StatusFinalRead = "final_reading"
	StatusHearing   = "hearing"
	StatusConsent   = "consent"
	StatusAction    = "action"
	StatusInfo      = "informational"
)

// Topics an agenda item can be classified under. Anything the
// analyzer returns outside this set falls back to "other".
var Topics = []string{
	"housing", "zoning", "taxes", "budget", "transportation",
	"parks", "environment", "public_safety", "infrastructure",
	"development", "permits", "other",
}

type AgendaItem struct {
	ItemID       string
	MeetingID    string
	Title        string
	Topic        string
	Relevance    int
	Summary      string
	KeyDetails   []string
	WhyItMatters string
	Status       string
	Decision     string
	EconomicAxis int
	SocialAxis   int
	MeetingDate  time.Time
	CreatedAt    time.Time
}

func ValidTopic(topic string) bool {
	for _, t := range Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// Normalize forces the analysis fields into their allowed ranges before
// the item is persisted: relevance in [1,5], axes in [-5,5], topic in
// the topic set.
func (a *AgendaItem) Normalize() {
	if !ValidTopic(a.Topic) {
		a.Topic = DefaultTopic
	}
	a.Relevance = clamp(a.Relevance, MinRelevance, MaxRelevance)
	a.EconomicAxis = clamp(a.EconomicAxis, AxisMin, AxisMax)
	a.SocialAxis = clamp(a.SocialAxis, AxisMin, AxisMax)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
