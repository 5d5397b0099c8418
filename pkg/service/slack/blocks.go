package slack

import (
	"fmt"
	"time"

	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
	"github.com/slack-go/slack"
)

// GetRefreshEmoji returns emoji based on refresh status
func GetRefreshEmoji(status types.RefreshStatus) string {
	switch status {
	case types.RefreshStatusSucceeded:
		return "✅"
	case types.RefreshStatusFailed:
		return "🚨"
	default:
		return "❓"
	}
}

// RefreshSummary is the plain text fallback of a refresh notification
func RefreshSummary(record *model.RefreshRecord) string {
	if record.Status == types.RefreshStatusFailed {
		return fmt.Sprintf("%s Dataset refresh failed (%s)", GetRefreshEmoji(record.Status), record.Trigger)
	}
	return fmt.Sprintf("%s Dataset refresh succeeded (%s)", GetRefreshEmoji(record.Status), record.Trigger)
}

// BuildRefreshBlocks creates the message blocks of a refresh notification
func BuildRefreshBlocks(record *model.RefreshRecord) []slack.Block {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, RefreshSummary(record), true, false),
	)

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Trigger:*\n%s", record.Trigger), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Duration:*\n%s", record.Duration().Round(time.Millisecond)), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Source:*\n%s", record.Source), false, false),
	}
	if record.Status == types.RefreshStatusSucceeded {
		fields = append(fields,
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Rows:*\n%d", record.Rows), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Latest date:*\n%s", record.LatestDate), false, false),
		)
	}

	blocks := []slack.Block{
		header,
		slack.NewSectionBlock(nil, fields, nil),
	}

	if record.Error != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Error:*\n```%s```", record.Error), false, false),
			nil, nil,
		))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("Refresh `%s` started at %s", record.ID, record.StartedAt.UTC().Format(time.RFC3339)),
			false, false),
	))

	return blocks
}
