package orchestrate

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tidal-dl/tidal-dl/internal/auth"
	"github.com/tidal-dl/tidal-dl/internal/credstore"
	"github.com/tidal-dl/tidal-dl/internal/tidalapi"
)

// refreshWindow is how far ahead of expiry a session is refreshed
// proactively, matching the original's authenticate().
const refreshWindow = 300 * time.Second

// Bootstrap returns an authenticated, session-populated client, running
// whichever of the three original paths applies: load-and-use stored
// credentials, refresh a soon-to-expire session, or run the device-code
// flow from scratch. Credentials are persisted after any auth or refresh.
// Grounded on original_source/tidal-dl/src/main.rs's get_client/authenticate.
func Bootstrap(ctx context.Context, console *Console) (*tidalapi.Client, error) {
	stored, err := credstore.Load()
	if err != nil {
		return nil, err
	}

	session := auth.New(nil)

	if stored == nil {
		creds, err := deviceAuthFlow(ctx, console, session)
		if err != nil {
			return nil, err
		}
		return finishBootstrap(ctx, creds)
	}

	if stored.ExpiresWithin(refreshWindow, time.Now()) {
		refreshed, err := session.Refresh(ctx, stored.RefreshToken)
		if err != nil {
			log.Warn().Err(err).Msg("refresh failed, falling back to full re-authentication")
			creds, err := deviceAuthFlow(ctx, console, session)
			if err != nil {
				return nil, err
			}
			return finishBootstrap(ctx, creds)
		}
		return finishBootstrap(ctx, refreshed)
	}

	return finishBootstrap(ctx, stored)
}

func deviceAuthFlow(ctx context.Context, console *Console, session *auth.Session) (*auth.Credentials, error) {
	deviceAuth, err := session.StartDeviceAuth(ctx)
	if err != nil {
		return nil, err
	}
	console.PrintAuthPrompt(deviceAuth.VerificationURI, deviceAuth.VerificationURIComplete, deviceAuth.UserCode)
	return session.PollForToken(ctx, deviceAuth.DeviceCode, deviceAuth.Interval)
}

// finishBootstrap builds a client from creds, populates its country code
// and user id via GetSession, and persists creds — every path through
// Bootstrap converges here.
func finishBootstrap(ctx context.Context, creds *auth.Credentials) (*tidalapi.Client, error) {
	client := tidalapi.New(creds.AccessToken, creds.RefreshToken, creds.CountryCode, tidalapi.DefaultConfig())
	if _, err := client.GetSession(ctx); err != nil {
		return nil, err
	}
	creds.CountryCode = client.CountryCode
	if err := credstore.Save(creds); err != nil {
		return nil, err
	}
	return client, nil
}
