//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/belaycheck/internal/bootstrap"
	"github.com/yanqian/belaycheck/internal/domain/belay"
	"github.com/yanqian/belaycheck/internal/domain/i18n"
	"github.com/yanqian/belaycheck/internal/domain/notice"
	"github.com/yanqian/belaycheck/internal/domain/pairs"
	"github.com/yanqian/belaycheck/internal/domain/session"
	"github.com/yanqian/belaycheck/internal/infra/config"
	httpiface "github.com/yanqian/belaycheck/internal/interface/http"
	"github.com/yanqian/belaycheck/pkg/logger"
	"github.com/yanqian/belaycheck/pkg/metrics"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.NewRecorder,
		provideStore,
		providePairsConfig,
		provideNoticeConfig,
		provideSessionConfig,
		i18n.NewLocalizer,
		belay.NewClassifier,
		belay.NewService,
		pairs.NewService,
		notice.NewService,
		session.NewService,
		wire.Bind(new(belay.Recorder), new(*metrics.Recorder)),
		wire.Bind(new(pairs.Recorder), new(*metrics.Recorder)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
