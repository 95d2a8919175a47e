package model

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   AgendaItem
		want AgendaItem
	}{
		{
			name: "valid fields unchanged",
			in:   AgendaItem{Topic: "zoning", Relevance: 4, EconomicAxis: -3, SocialAxis: 2},
			want: AgendaItem{Topic: "zoning", Relevance: 4, EconomicAxis: -3, SocialAxis: 2},
		},
		{
			name: "unknown topic falls back to other",
			in:   AgendaItem{Topic: "galactic_policy", Relevance: 2},
			want: AgendaItem{Topic: "other", Relevance: 2},
		},
		{
			name: "empty topic falls back to other",
			in:   AgendaItem{Relevance: 1},
			want: AgendaItem{Topic: "other", Relevance: 1},
		},
		{
			name: "relevance clamped to range",
			in:   AgendaItem{Topic: "budget", Relevance: 99},
			want: AgendaItem{Topic: "budget", Relevance: 5},
		},
		{
			name: "zero relevance raised to minimum",
			in:   AgendaItem{Topic: "budget"},
			want: AgendaItem{Topic: "budget", Relevance: 1},
		},
		{
			name: "axes clamped both directions",
			in:   AgendaItem{Topic: "taxes", Relevance: 3, EconomicAxis: 10, SocialAxis: -10},
			want: AgendaItem{Topic: "taxes", Relevance: 3, EconomicAxis: 5, SocialAxis: -5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.want.Topic, tt.in.Topic)
			assert.Equal(t, tt.want.Relevance, tt.in.Relevance)
			assert.Equal(t, tt.want.EconomicAxis, tt.in.EconomicAxis)
			assert.Equal(t, tt.want.SocialAxis, tt.in.SocialAxis)
		})
	}
}

func TestValidTopic(t *testing.T) {
	assert.Equal(t, true, ValidTopic("housing"))
	assert.Equal(t, true, ValidTopic("other"))
	assert.Equal(t, false, ValidTopic("Housing"))
	assert.Equal(t, false, ValidTopic(""))
}
