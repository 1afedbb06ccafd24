// Package container wires the application together. Each *Package function
// registers one subsystem with the injector; binaries compose the packages
// they need.
package container

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucid-hq/lucid-api/internal/analytics"
	analyticsstore "github.com/lucid-hq/lucid-api/internal/analytics/store"
	"github.com/lucid-hq/lucid-api/internal/auth"
	"github.com/lucid-hq/lucid-api/internal/enhance"
	"github.com/lucid-hq/lucid-api/internal/handlers"
	"github.com/lucid-hq/lucid-api/internal/messaging"
	"github.com/lucid-hq/lucid-api/internal/middleware"
	"github.com/lucid-hq/lucid-api/internal/plans"
	"github.com/lucid-hq/lucid-api/internal/quota"
	"github.com/lucid-hq/lucid-api/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

const (
	authCacheTTL  = 5 * time.Minute
	consumerGroup = "lucid-analytics"
)

// Options holds the CLI-configurable settings shared by all binaries.
type Options struct {
	Port        int    `default:"8888"            help:"Port to listen on"                                      short:"p"`
	RedisAddr   string `default:"localhost:6379"  help:"Redis server address"                                   short:"r"`
	PostgresDSN string `default:""                help:"Postgres connection string; in-memory stores when empty"`
	LogFormat   string `default:"console"         help:"Log format: console or json"`
	DevToken    string `default:""                help:"Register a dev API token against the in-memory account store"`
}

// LoggerPackage registers the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage registers the shared Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

// PostgresPackage registers the pgx pool. The pool is nil when no DSN is
// configured; dependent packages fall back to in-memory stores.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)
		if options.PostgresDSN == "" {
			return nil, nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return pgxpool.New(ctx, options.PostgresDSN)
	})
}

// AuthPackage registers the token authenticator: Postgres-backed with a Redis
// read-through cache in production, in-memory when Postgres is absent.
func AuthPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (auth.Authenticator, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		pool := do.MustInvoke[*pgxpool.Pool](i)
		if pool == nil {
			logger.Warn("postgres not configured, using in-memory account store")

			accounts := store.NewMemoryAccounts()
			if options.DevToken != "" {
				accounts.AddToken(options.DevToken, auth.User{
					ID:    "dev-user",
					Email: "dev@lucid.local",
					Plan:  "pro",
				})
			}

			return accounts, nil
		}

		client := do.MustInvoke[*redis.Client](i)

		return store.NewCachedAuthenticator(store.NewPostgresAccounts(pool), client, authCacheTTL), nil
	})
}

// AnalyticsPackage registers the usage event store and reader.
func AnalyticsPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*analyticsStores, error) {
		pool := do.MustInvoke[*pgxpool.Pool](i)
		if pool == nil {
			mem := analyticsstore.NewMemory()

			return &analyticsStores{Store: mem, Usage: mem}, nil
		}

		pg := analyticsstore.NewPostgres(pool)

		return &analyticsStores{Store: pg, Usage: pg}, nil
	})
}

// analyticsStores bundles the write and read sides of the analytics store so
// they always resolve to the same backend.
type analyticsStores struct {
	Store analytics.Store
	Usage analytics.UsageReader
}

// QuotaPackage registers the plan catalog, the admission gate and the window
// reclaimer.
func QuotaPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*plans.Catalog, error) {
		return plans.DefaultCatalog(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*quota.Gate, error) {
		catalog := do.MustInvoke[*plans.Catalog](i)

		return quota.NewGate(
			catalog,
			quota.NewChecker(do.MustInvokeNamed[*quota.Store](i, "quota-minute"), time.Minute),
			quota.NewChecker(do.MustInvokeNamed[*quota.Store](i, "quota-day"), 24*time.Hour),
		), nil
	})

	do.ProvideNamed(injector, "quota-minute", func(_ *do.Injector) (*quota.Store, error) {
		return quota.NewStore(), nil
	})
	do.ProvideNamed(injector, "quota-day", func(_ *do.Injector) (*quota.Store, error) {
		return quota.NewStore(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*quota.Reclaimer, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		return quota.NewReclaimer(
			quota.DefaultSweepInterval,
			logger,
			do.MustInvokeNamed[*quota.Store](i, "quota-minute"),
			do.MustInvokeNamed[*quota.Store](i, "quota-day"),
		), nil
	})
}

// PublisherGroupPackage registers the Redis Streams publisher and the typed
// publish functions derived from it.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.EnhancementCompletedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[analytics.EnhancementCompletedEvent](
			group.Publisher(), analytics.TopicEnhancementCompleted), nil
	})
}

// ConsumerGroupPackage registers the Redis Streams subscriber and the
// analytics consumers.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)
		stores := do.MustInvoke[*analyticsStores](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: consumerGroup,
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber,
			analytics.TopicEnhancementCompleted,
			analytics.SaveHandler(stores.Store),
			logger,
		))

		return group, nil
	})
}

// HTTPPackage registers the router and the API with all middlewares and
// routes attached.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		authenticator := do.MustInvoke[auth.Authenticator](i)
		gate := do.MustInvoke[*quota.Gate](i)
		catalog := do.MustInvoke[*plans.Catalog](i)
		stores := do.MustInvoke[*analyticsStores](i)
		publish := do.MustInvoke[messaging.Publish[analytics.EnhancementCompletedEvent]](i)
		client := do.MustInvoke[*redis.Client](i)
		pool := do.MustInvoke[*pgxpool.Pool](i)

		api := humachi.New(router, huma.DefaultConfig("Lucid API", "1.0.0"))

		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.Authenticate(api, authenticator, logger),
			middleware.Quota(api, gate, logger),
		)

		pipeline := enhance.NewStagePipeline(enhance.NewHeuristicTranslator())
		enhanceHandler := handlers.NewEnhanceHandler(pipeline, catalog, publish, logger)
		profileHandler := handlers.NewProfileHandler(stores.Usage, catalog, logger)

		postgresCheck := handlers.Checker(handlers.CheckerFunc(func(_ context.Context) error {
			return nil
		}))
		if pool != nil {
			postgresCheck = handlers.NewPostgresChecker(pool)
		}

		healthHandler := handlers.NewHealthHandler(handlers.NewRedisChecker(client), postgresCheck)

		handlers.RegisterRoutes(api, enhanceHandler, profileHandler, healthHandler)

		return api, nil
	})
}
