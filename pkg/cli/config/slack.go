package config

import (
	"log/slog"

	"github.com/secmon-lab/covidboard/pkg/domain/interfaces"
	slackSvc "github.com/secmon-lab/covidboard/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack configuration of refresh notifications
type Slack struct {
	OAuthToken string
	ChannelID  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for refresh notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("COVIDBOARD_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID receiving refresh failures and recoveries",
			Category:    "Slack",
			Sources:     cli.EnvVars("COVIDBOARD_SLACK_CHANNEL_ID"),
			Destination: &s.ChannelID,
		},
	}
}

// ConfigureOptional creates a notifier if configured, returns nil if not
func (s *Slack) ConfigureOptional(logger *slog.Logger) interfaces.Notifier {
	if !s.IsConfigured() {
		logger.Info("Slack not configured - refresh notifications are disabled")
		return nil
	}

	logger.Info("Configuring Slack notifier", "channel", s.ChannelID)
	return slackSvc.NewNotifier(slackSvc.New(s.OAuthToken), s.ChannelID)
}

// IsConfigured checks if both token and channel are set
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" && s.ChannelID != ""
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel_id", s.ChannelID),
	)
}
