package analyze

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ConnerV42/spokane-public-brief/internal/model"
	"github.com/ConnerV42/spokane-public-brief/pkg/llm"
)

type ItemStore interface {
	GetItemsForMeeting(meetingID string) ([]model.AgendaItem, error)
	SaveItem(item *model.AgendaItem) error
}

// Orchestrator runs the enrichment side of the pipeline: it pulls a
// meeting's stored agenda items, sends their combined text through the
// analyzer and merges the structured results back into the store.
type Orchestrator struct {
	items    ItemStore
	analyzer llm.Analyzer
}

func NewOrchestrator(items ItemStore, analyzer llm.Analyzer) *Orchestrator {
	return &Orchestrator{items: items, analyzer: analyzer}
}

// AnalyzeMeeting enriches one meeting. A meeting with no stored items is
// a no-op. An analyzer invocation failure aborts this meeting without
// partial writes; the caller logs it and moves on to the next job.
func (o *Orchestrator) AnalyzeMeeting(meetingID string) error {
	items, err := o.items.GetItemsForMeeting(meetingID)
	if err != nil {
		return fmt.Errorf("load agenda items for %s: %w", meetingID, err)
	}

	if len(items) == 0 {
		slog.Info("no items for meeting, skipping analysis", "meeting_id", meetingID)
		return nil
	}

	slog.Info("analyzing meeting", "meeting_id", meetingID, "items", len(items))

	result, err := o.analyzer.Analyze(buildDocumentText(items), "agenda")
	if err != nil {
		return fmt.Errorf("analyze meeting %s: %w", meetingID, err)
	}

	if result.Err != "" {
		slog.Warn("analysis returned unparsable response", "meeting_id", meetingID, "detail", result.Err)
	}

	slog.Info("analysis complete", "meeting_id", meetingID, "items_returned", len(result.Items))

	// Analyzed items are matched back to stored items by title so a
	// re-run updates in place instead of duplicating.
	byTitle := make(map[string]model.AgendaItem, len(items))
	for _, item := range items {
		byTitle[normalizeTitle(item.Title)] = item
	}

	var saveErrors int
	for _, analyzed := range result.Items {
		item := mergeAnalysis(meetingID, analyzed, byTitle)
		if err := o.items.SaveItem(&item); err != nil {
			slog.Error("error saving analyzed item", "meeting_id", meetingID, "title", item.Title, "error", err)
			saveErrors++
		}
	}

	if saveErrors > 0 {
		return fmt.Errorf("analyze meeting %s: %d of %d item writes failed", meetingID, saveErrors, len(result.Items))
	}

	return nil
}

func mergeAnalysis(meetingID string, analyzed llm.ItemAnalysis, byTitle map[string]model.AgendaItem) model.AgendaItem {
	item := model.AgendaItem{
		MeetingID:    meetingID,
		Title:        analyzed.Title,
		Topic:        analyzed.Topic,
		Relevance:    analyzed.Relevance,
		Summary:      analyzed.Summary,
		KeyDetails:   analyzed.KeyDetails,
		WhyItMatters: analyzed.WhyItMatters,
		Status:       analyzed.Status,
		Decision:     analyzed.Decision,
		EconomicAxis: analyzed.EconomicAxis,
		SocialAxis:   analyzed.SocialAxis,
	}

	if existing, ok := byTitle[normalizeTitle(analyzed.Title)]; ok {
		item.ItemID = existing.ItemID
		item.MeetingDate = existing.MeetingDate
		item.CreatedAt = existing.CreatedAt
	} else {
		item.MeetingDate = firstMeetingDate(byTitle)
	}

	item.Normalize()
	return item
}

func buildDocumentText(items []model.AgendaItem) string {
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, fmt.Sprintf("Item: %s\n%s", item.Title, item.Summary))
	}
	return strings.Join(blocks, "\n\n")
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func firstMeetingDate(byTitle map[string]model.AgendaItem) time.Time {
	for _, item := range byTitle {
		return item.MeetingDate
	}
	return time.Time{}
}
