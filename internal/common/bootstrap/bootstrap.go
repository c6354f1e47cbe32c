package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/AlibekovAA/notes-app/backend/internal/common/clock"
	"github.com/AlibekovAA/notes-app/backend/internal/common/config"
	"github.com/AlibekovAA/notes-app/backend/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/notes-app/backend/internal/common/crypto"
	"github.com/AlibekovAA/notes-app/backend/internal/common/db"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
	"github.com/AlibekovAA/notes-app/backend/internal/common/memstore"
	noterepo "github.com/AlibekovAA/notes-app/backend/internal/note/repository"
	"github.com/AlibekovAA/notes-app/backend/internal/observability/metrics"
	userrepo "github.com/AlibekovAA/notes-app/backend/internal/user/repository"
)

type App struct {
	Log    *logger.Logger
	Config config.NotesConfig
	Clock  clock.Clock
	Stores *Stores
}

// Stores pairs the user and note repositories of one backend together with
// whatever has to be released when the process stops.
type Stores struct {
	Backend string
	Users   userrepo.Repository
	Notes   noterepo.Repository
	closers []func(ctx context.Context) error
}

func (s *Stores) Close(ctx context.Context) error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}

func NewNotesApp(ctx context.Context) (*App, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	log, err := initializeLogger("notes")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.LoadNotesConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	stores, err := OpenStores(ctx, log, cfg)
	if err != nil {
		return nil, err
	}

	log.Infof("notes app initialized: env=%s backend=%s", cfg.Env, stores.Backend)

	return &App{
		Log:    log,
		Config: cfg,
		Clock:  clock.NewRealClock(),
		Stores: stores,
	}, nil
}

func OpenStores(ctx context.Context, log *logger.Logger, cfg config.NotesConfig) (*Stores, error) {
	var (
		stores *Stores
		err    error
	)

	switch cfg.StoreBackend {
	case config.BackendMongo:
		stores, err = openMongoStores(ctx, log, cfg)
	case config.BackendPostgres:
		stores, err = openPostgresStores(ctx, log, cfg)
	case config.BackendMemory:
		stores = NewMemoryStores()
	default:
		err = fmt.Errorf("%w: %s", config.ErrUnknownBackend, cfg.StoreBackend)
	}
	if err != nil {
		return nil, err
	}

	metrics.StoreBackend.WithLabelValues(stores.Backend).Set(1)
	return stores, nil
}

func NewMemoryStores() *Stores {
	store := memstore.New()
	idGenerator := commoncrypto.NewUUIDGenerator()

	return &Stores{
		Backend: config.BackendMemory,
		Users:   userrepo.NewMemoryRepository(store, idGenerator),
		Notes:   noterepo.NewMemoryRepository(store, idGenerator),
	}
}

func openMongoStores(ctx context.Context, log *logger.Logger, cfg config.NotesConfig) (*Stores, error) {
	client, err := db.NewMongoClient(ctx, log, cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	database := client.Database(cfg.MongoDatabase)
	users := userrepo.NewMongoRepository(database)
	notes := noterepo.NewMongoRepository(database)

	if err := users.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create user indexes: %w", err)
	}
	if err := notes.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create note indexes: %w", err)
	}

	log.Infof("using mongo database %s", cfg.MongoDatabase)

	return &Stores{
		Backend: config.BackendMongo,
		Users:   users,
		Notes:   notes,
		closers: []func(ctx context.Context) error{client.Disconnect},
	}, nil
}

func openPostgresStores(ctx context.Context, log *logger.Logger, cfg config.NotesConfig) (*Stores, error) {
	if err := db.Migrate(ctx, log, cfg.DatabaseURL); err != nil {
		return nil, err
	}

	pool, err := db.NewPool(ctx, log, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	metricsCtx, stopMetrics := context.WithCancel(context.Background())
	db.StartPoolMetrics(metricsCtx, pool, constants.DBPoolMetricsInterval)

	idGenerator := commoncrypto.NewUUIDGenerator()

	return &Stores{
		Backend: config.BackendPostgres,
		Users:   userrepo.NewPgRepository(pool, idGenerator),
		Notes:   noterepo.NewPgRepository(pool, idGenerator),
		closers: []func(ctx context.Context) error{
			func(context.Context) error {
				stopMetrics()
				pool.Close()
				return nil
			},
		},
	}, nil
}

func initializeLogger(serviceName string) (*logger.Logger, error) {
	return logger.New(os.Getenv("LOG_DIR"), serviceName, os.Getenv("LOG_LEVEL"))
}
