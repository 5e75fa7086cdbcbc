package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/toytopia/toystore/config"
	"github.com/toytopia/toystore/internal/adapter/catalogfile"
	"github.com/toytopia/toystore/internal/adapter/httphandler"
	"github.com/toytopia/toystore/internal/adapter/identity"
	"github.com/toytopia/toystore/internal/adapter/kafka"
	"github.com/toytopia/toystore/internal/adapter/storage"
	"github.com/toytopia/toystore/internal/core/port"
	"github.com/toytopia/toystore/internal/core/service"
	"github.com/toytopia/toystore/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	favoriteEvent schema.Serde
}

type outbound struct {
	kv       *storage.LevelKV
	sqlDB    storage.SQLDB
	producer kafka.FavoriteEventsProducer
}

type coreServices struct {
	favorites port.FavoritesReadWriter
	catalog   port.CatalogReader
	reviews   port.ReviewsService
	demos     port.DemoRequestsService
}

type streamWorkers struct {
	consumer  kafka.FavoriteEventsConsumer
	processor *kafka.FavoriteCounterProcessor
	view      *kafka.FavoriteCountsView
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	serdes     serdes
	outbound   outbound
	service    coreServices
	workers    streamWorkers
	session    *identity.Session
	httpServer httphandler.HTTPServer
	wg         sync.WaitGroup
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreServices()
	app.initStreamWorkers()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.Topics.FavoriteEvents + "-value"
	eventSerde, err := schema.NewSerdeFavoriteEventV1(
		ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.favoriteEvent = eventSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	eventsTopic := app.cfg.Broker.Topics.FavoriteEvents

	kv, err := storage.NewLevelKV(app.cfg.FavoritesDBPath)
	if err != nil {
		app.fallDown(op, err)
	}

	sqlDB, err := storage.NewSQLDB(ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewFavoriteEventsProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, eventsTopic),
		kafka.ProducerEncoderOpt(app.serdes.favoriteEvent),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.outbound.kv = kv
	app.outbound.sqlDB = sqlDB
	app.outbound.producer = producer
}

func (app *App) initCoreServices() {
	const op = "App.initCoreServices"

	catalogSrc := catalogfile.New(app.cfg.CatalogPath)
	catalog, err := service.NewCatalog(catalogSrc)
	if err != nil {
		app.fallDown(op, err)
	}

	favorites := service.NewFavoritesStore(
		app.outbound.kv,
		service.FavoritesEventsOpt(app.outbound.producer),
	)

	app.session = identity.NewSession()
	app.session.Subscribe(favorites.OnIdentityChange)

	app.service.catalog = catalog
	app.service.favorites = favorites
	app.service.reviews = service.NewReviews(
		storage.NewReviewsRepository(app.outbound.sqlDB),
	)
	app.service.demos = service.NewDemoRequests(
		storage.NewDemoRequestsRepository(app.outbound.sqlDB),
	)
}

func (app *App) initStreamWorkers() {
	const op = "App.initStreamWorkers"

	seedBrokers := app.cfg.Broker.SeedBrokers
	eventsTopic := app.cfg.Broker.Topics.FavoriteEvents
	countsGroup := app.cfg.Broker.Topics.FavoriteCountsTable
	saverGroup := app.cfg.Broker.Consumers.EventsSaverGroup

	eventsSaver := storage.NewFavoriteEventsRepository(app.outbound.sqlDB)
	consumer, err := kafka.NewFavoriteEventsConsumer(
		kafka.ConsumerClientOpt(seedBrokers, eventsTopic, saverGroup),
		kafka.ConsumerDecoderOpt(app.serdes.favoriteEvent),
		kafka.EventsConsumerSaverOpt(eventsSaver),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	processor, err := kafka.NewFavoriteCounterProc(
		seedBrokers, eventsTopic, countsGroup, app.serdes.favoriteEvent,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewFavoriteCountsView(seedBrokers, countsGroup)
	if err != nil {
		app.fallDown(op, err)
	}

	app.workers.consumer = consumer
	app.workers.processor = processor
	app.workers.view = view
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr

	verifier := identity.NewTokenVerifier(app.cfg.AuthSecret)
	auth := httphandler.NewAuthenticator(verifier, app.session)

	mux := http.NewServeMux()
	httphandler.RegisterToys(mux, app.service.catalog, app.workers.view)
	httphandler.RegisterFavorites(
		mux, auth, app.service.favorites, app.service.catalog,
	)
	httphandler.RegisterReviews(
		mux, auth, app.service.reviews, app.service.demos, app.service.catalog,
	)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.workers.consumer.Run(app.ctx)
	go app.workers.view.Run(app.ctx)

	app.wg.Add(1)
	go app.workers.processor.Run(app.ctx, stopFn, &app.wg)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.workers.consumer.Close()
	app.workers.processor.Close()
	app.wg.Wait()
	app.outbound.producer.Close()
	app.outbound.kv.Close()
	app.outbound.sqlDB.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
