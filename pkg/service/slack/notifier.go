package slack

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/interfaces"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Notifier posts refresh outcomes to a Slack channel
type Notifier struct {
	service   *Service
	channelID string
}

var _ interfaces.Notifier = (*Notifier)(nil)

// NewNotifier creates a notifier for the channel
func NewNotifier(service *Service, channelID string) *Notifier {
	return &Notifier{
		service:   service,
		channelID: channelID,
	}
}

// NotifyRefresh posts the refresh record
func (n *Notifier) NotifyRefresh(ctx context.Context, record *model.RefreshRecord) error {
	if record == nil {
		return goerr.New("refresh record is nil")
	}

	channel, ts, err := n.service.PostMessage(ctx, n.channelID,
		slack.MsgOptionText(RefreshSummary(record), false),
		slack.MsgOptionBlocks(BuildRefreshBlocks(record)...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to notify refresh",
			goerr.V("refresh_id", record.ID),
			goerr.V("channel", n.channelID))
	}

	ctxlog.From(ctx).Debug("Refresh notification posted",
		"refresh_id", record.ID,
		"channel", channel,
		"ts", ts,
	)
	return nil
}
