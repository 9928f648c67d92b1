package main

import (
	"context"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/sportsx/sportsx-server/pkg/app"
	pg "github.com/sportsx/sportsx-server/pkg/database/postgres"
	"github.com/sportsx/sportsx-server/pkg/metrics"

	"github.com/sportsx/sportsx-server/pkg/sportsx/common"
	"github.com/sportsx/sportsx-server/pkg/sportsx/data"
	"github.com/sportsx/sportsx-server/pkg/sportsx/pof"
	ticketing_server "github.com/sportsx/sportsx-server/pkg/sportsx/server"
)

type appConfig struct {
	DbUser             string `mapstructure:"db_user"`
	DbPassword         string `mapstructure:"db_password"`
	DbHost             string `mapstructure:"db_host"`
	DbPort             int    `mapstructure:"db_port"`
	DbName             string `mapstructure:"db_name"`
	MaxOpenConnections int    `mapstructure:"max_open_connections"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections"`

	// Used nonces are only safe to prune once every authorization that could
	// carry them is long expired.
	NoncePruneSchedule  string `mapstructure:"nonce_prune_schedule"`
	NonceRetentionHours int    `mapstructure:"nonce_retention_hours"`
}

var defaultAppConfig = appConfig{
	DbHost: "localhost",
	DbPort: 5432,

	NoncePruneSchedule:  "0 * * * *",
	NonceRetentionHours: 24,
}

type ticketingApp struct {
	log *logrus.Entry

	data       data.Provider
	pofService *pof.Service
	server     *ticketing_server.Server

	cronJob *cron.Cron

	shutdown   sync.Once
	shutdownCh chan struct{}
}

func (a *ticketingApp) Init(config app.Config, metricsProvider *newrelic.Application) error {
	a.log = logrus.StandardLogger().WithField("type", "sportsx/app")
	a.shutdownCh = make(chan struct{})

	conf := defaultAppConfig
	if err := mapstructure.Decode(config, &conf); err != nil {
		return errors.Wrap(err, "error decoding app config")
	}

	db, err := data.NewDatabaseProvider(&pg.Config{
		User:               conf.DbUser,
		Password:           conf.DbPassword,
		Host:               conf.DbHost,
		Port:               conf.DbPort,
		DbName:             conf.DbName,
		MaxOpenConnections: conf.MaxOpenConnections,
		MaxIdleConnections: conf.MaxIdleConnections,
	})
	if err != nil {
		return errors.Wrap(err, "error creating data provider")
	}
	a.data = db

	a.pofService = pof.NewService(db, pof.WithEnvConfigs())
	a.server = ticketing_server.New(
		db,
		a.pofService.ContractClient(common.GetTicketAuthority().PublicKey().ToBase58()),
		ticketing_server.WithEnvConfigs(),
	)

	ctx := context.Background()
	if metricsProvider != nil {
		ctx = context.WithValue(ctx, metrics.NewRelicContextKey, metricsProvider)
	}

	retention := time.Duration(conf.NonceRetentionHours) * time.Hour

	a.cronJob = cron.New(cron.WithLocation(time.UTC))
	_, err = a.cronJob.AddFunc(conf.NoncePruneSchedule, func() {
		deleted, err := a.data.DeleteUsedNoncesBefore(ctx, time.Now().Add(-retention))
		if err != nil {
			a.log.WithError(err).Warn("failure pruning used nonces")
			return
		}
		a.log.WithField("deleted", deleted).Debug("pruned used nonces")
	})
	if err != nil {
		return errors.Wrap(err, "error scheduling nonce pruning")
	}
	a.cronJob.Start()

	return nil
}

func (a *ticketingApp) ShutdownChan() <-chan struct{} {
	return a.shutdownCh
}

func (a *ticketingApp) Stop() {
	a.shutdown.Do(func() {
		if a.cronJob != nil {
			<-a.cronJob.Stop().Done()
		}
		close(a.shutdownCh)
	})
}

func main() {
	if err := app.Run(&ticketingApp{}); err != nil {
		logrus.StandardLogger().WithError(err).Fatal("error running app")
	}
}
