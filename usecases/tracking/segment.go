package tracking

import (
	"context"
	"net"

	"github.com/segmentio/analytics-go/v3"

	"github.com/gmkhealth/verdict-backend/models"
	"github.com/gmkhealth/verdict-backend/utils"
)

// TrackEvent sends the event to segment under the actor carried by the context
// credentials. A missing segment client or missing credentials make the call a
// no-op, so usecases can track unconditionally.
func TrackEvent(ctx context.Context, event models.AnalyticsEvent, properties map[string]interface{}) {
	creds, found := utils.CredentialsFromCtx(ctx)
	if !found {
		return
	}
	TrackEventWithActor(ctx, event, creds.ActorIdentity.Actor, properties)
}

// TrackEventWithActor is for flows where credentials are not in the context
// yet, like the login handler.
func TrackEventWithActor(ctx context.Context, event models.AnalyticsEvent, actor string,
	properties map[string]interface{},
) {
	client, found := utils.SegmentClientFromContext(ctx)
	if !found {
		return
	}
	track := analytics.Track{
		UserId:     actor,
		Event:      string(event),
		Properties: properties,
	}
	if ip := net.ParseIP(utils.ClientIpFromContext(ctx)); ip != nil {
		track.Context = &analytics.Context{IP: ip}
	}
	if err := client.Enqueue(track); err != nil {
		logger := utils.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "failed to enqueue segment track event", "error", err)
	}
}

// Group associates the actor with their review cohort.
func Group(ctx context.Context, actor string, group models.Group, traits map[string]interface{}) {
	client, found := utils.SegmentClientFromContext(ctx)
	if !found {
		return
	}
	err := client.Enqueue(analytics.Group{
		UserId:  actor,
		GroupId: group.String(),
		Traits:  traits,
	})
	if err != nil {
		logger := utils.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "failed to enqueue segment group event", "error", err)
	}
}
