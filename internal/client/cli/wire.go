package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/gostconsole/internal/buildinfo"
	"github.com/dmitrijs2005/gostconsole/internal/client/client"
	"github.com/dmitrijs2005/gostconsole/internal/client/config"
	"github.com/dmitrijs2005/gostconsole/internal/client/notify"
	"github.com/dmitrijs2005/gostconsole/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gostconsole/internal/client/services"
	"github.com/dmitrijs2005/gostconsole/internal/client/session"
	"github.com/dmitrijs2005/gostconsole/internal/logging"
)

// Bootstrap wires the console described by cfg: local store, HTTP
// pipeline, session and services. The returned func closes the store.
func Bootstrap(ctx context.Context, cfg *config.Config, logger logging.Logger, reg prometheus.Registerer) (*App, func() error, error) {
	db, err := client.InitDatabase(ctx, cfg.StorePath)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing database: %w", err)
	}
	store := metadata.NewSQLiteRepository(db)

	router := NewRouter()
	api := client.NewHTTPClient(cfg.APIBaseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithNotifier(notify.NewTerminal(os.Stderr)),
		client.WithNavigator(router),
		client.WithLogger(logger.With("component", "http")),
		client.WithMetrics(client.NewMetrics(reg)),
		client.WithUserAgent("gostconsole/"+buildinfo.Version),
	)

	sess, err := session.New(ctx, store, api, session.WithLogger(logger.With("component", "session")))
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("error restoring session: %w", err)
	}
	api.SetSession(sess)

	sess.Subscribe(func(st session.State) {
		logger.Debug(context.Background(), "session changed", "logged_in", st.LoggedIn(), "expires_at", st.ExpiresAt)
	})

	system := services.NewSystemService(api)
	app := NewApp(Deps{
		Session:  sess,
		Auth:     services.NewAuthAPI(api),
		Nodes:    services.NewNodeService(api),
		Tunnels:  services.NewTunnelService(api),
		Logs:     services.NewLogService(api),
		Stats:    services.NewStatsService(api),
		System:   system,
		Branding: services.NewBranding(system, store, logger.With("component", "branding")),
		Router:   router,
		Logger:   logger,
	})

	return app, db.Close, nil
}
