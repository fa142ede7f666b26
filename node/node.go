// Package node contains the main executable of a swarmsend node.
package node

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gofrs/flock"
	"github.com/jonboulle/clockwork"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/swarmsend/go-swarmsend/bootstrap"
	"github.com/swarmsend/go-swarmsend/cmd"
	"github.com/swarmsend/go-swarmsend/config"
	"github.com/swarmsend/go-swarmsend/configsync"
	"github.com/swarmsend/go-swarmsend/dispatch"
	"github.com/swarmsend/go-swarmsend/filesystem"
	"github.com/swarmsend/go-swarmsend/log"
	"github.com/swarmsend/go-swarmsend/metrics"
	"github.com/swarmsend/go-swarmsend/outbox"
	"github.com/swarmsend/go-swarmsend/signing"
	"github.com/swarmsend/go-swarmsend/snode/batch"
	"github.com/swarmsend/go-swarmsend/snode/nettime"
	"github.com/swarmsend/go-swarmsend/snode/pool"
	"github.com/swarmsend/go-swarmsend/sql"
)

const dbFile = "state.sql"

// Logger names, they match the keys of the logging config.
const (
	AppLogger        = "app"
	SeedLogger       = "seed"
	PoolLogger       = "pool"
	BatchLogger      = "batch"
	NetTimeLogger    = "nettime"
	OutboxLogger     = "outbox"
	DispatchLogger   = "dispatch"
	ConfigSyncLogger = "configsync"
	DatabaseLogger   = "database"
	MetricsLogger    = "metrics"
)

// Option to modify an App instance.
type Option func(app *App)

// WithLog enables logger for an App.
func WithLog(logger *zap.Logger) Option {
	return func(app *App) {
		app.log = logger
	}
}

// WithConfig overwrites default App config.
func WithConfig(conf *config.Config) Option {
	return func(app *App) {
		app.Config = conf
	}
}

// WithClock replaces the clock driving the periodic tasks.
func WithClock(clock clockwork.Clock) Option {
	return func(app *App) {
		app.clock = clock
	}
}

// WithTransport replaces the http transport to the storage nodes.
func WithTransport(transport batch.Transport) Option {
	return func(app *App) {
		app.transport = transport
	}
}

// WithOpenGroupSender enables delivery to open group servers.
func WithOpenGroupSender(sender dispatch.OpenGroupSender) Option {
	return func(app *App) {
		app.openGroup = sender
	}
}

// New creates an instance of the swarmsend app.
func New(opts ...Option) *App {
	defaultConfig := config.DefaultConfig()
	app := &App{
		Config:  &defaultConfig,
		log:     log.NewNop(),
		clock:   clockwork.NewRealClock(),
		loggers: make(map[string]*zap.AtomicLevel),
		started: make(chan struct{}),
		eg:      &errgroup.Group{},
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// App is the cli app singleton.
type App struct {
	Config   *config.Config
	log      *zap.Logger
	clock    clockwork.Clock
	fileLock *flock.Flock

	signer  *signing.EdSigner
	keyring *signing.Keyring

	db            *sql.Database
	seeder        *bootstrap.Seeder
	transport     batch.Transport
	nettime       *nettime.Tracker
	executor      *batch.Executor
	pool          *pool.Pool
	outbox        *outbox.Outbox
	openGroup     dispatch.OpenGroupSender
	dispatcher    *dispatch.Dispatcher
	registry      *configsync.Registry
	reconciler    *configsync.Reconciler
	metricsServer *metrics.Server

	loggers map[string]*zap.AtomicLevel
	started chan struct{} // closed once the app has finished starting
	eg      *errgroup.Group
}

// Started is closed once Start has set up every service.
func (app *App) Started() <-chan struct{} {
	return app.started
}

// Lock locks the app for exclusive use. It returns an error if the app is already locked.
func (app *App) Lock() error {
	lockDir := filepath.Dir(app.Config.FileLock)
	if _, err := os.Stat(lockDir); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(lockDir, filesystem.OwnerReadWriteExec); err != nil {
			return fmt.Errorf("creating dir %s for lock %s: %w", lockDir, app.Config.FileLock, err)
		}
	}
	fl := flock.New(app.Config.FileLock)
	locked, err := fl.TryLock()
	if err != nil {
		return fmt.Errorf("flock %s: %w", app.Config.FileLock, err)
	} else if !locked {
		return fmt.Errorf("only one swarmsend instance should be running (locking file %s)", fl.Path())
	}
	app.fileLock = fl
	return nil
}

// Unlock unlocks the app. It is a no-op if the app is not locked.
func (app *App) Unlock() {
	if app.fileLock == nil {
		return
	}
	if err := app.fileLock.Unlock(); err != nil {
		app.log.Error("failed to unlock file",
			zap.String("path", app.fileLock.Path()),
			zap.Error(err),
		)
	}
}

// Initialize creates the data directory and logs the build info.
func (app *App) Initialize() error {
	if _, err := filesystem.EnsureDir(app.Config.DataDir()); err != nil {
		return log.ErrEnsureDataDir(app.Config.DataDir(), err)
	}
	app.log.Info(app.getAppInfo())
	appVersion.WithLabelValues(cmd.Version).Set(1)
	return nil
}

func (app *App) getAppInfo() string {
	return fmt.Sprintf(
		"App version: %s. Git: %s - %s . Go Version: %s. OS: %s-%s . Data: %s",
		cmd.Version,
		cmd.Branch,
		cmd.Commit,
		runtime.Version(),
		runtime.GOOS,
		runtime.GOARCH,
		app.Config.DataDir(),
	)
}

// LoadIdentity loads the account key from the identity file.
func (app *App) LoadIdentity() error {
	signer, err := signing.NewEdSigner(signing.FromFile(app.Config.IdentityPath()))
	if err != nil {
		return err
	}
	app.signer = signer
	app.log.Info("loaded identity", zap.Stringer("session_id", signer.SessionID()))
	return nil
}

// NewIdentity creates a new account key and writes it to the identity file.
// It fails if the file exists.
func (app *App) NewIdentity() error {
	signer, err := signing.NewEdSigner(signing.ToFile(app.Config.IdentityPath()))
	if err != nil {
		return fmt.Errorf("create identity: %w", err)
	}
	app.signer = signer
	app.log.Info("created identity", zap.Stringer("session_id", signer.SessionID()))
	return nil
}

// LoadOrCreateIdentity loads the identity file, creating it on first run.
func (app *App) LoadOrCreateIdentity() error {
	err := app.LoadIdentity()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		app.log.Info("identity file not found, creating new identity")
		return app.NewIdentity()
	case err != nil:
		return log.ErrRetrieveIdentity(err)
	}
	return nil
}

// Wrap the top-level logger to set the level of a specific module.
// Calling this method creates a new logger every time.
//
// This method is not safe to be called concurrently.
func (app *App) addLogger(name string) *zap.Logger {
	lvl, err := decodeLoggerLevel(app.Config, name)
	if err != nil {
		app.log.Panic("unable to decode logging config", zap.Error(err))
	}
	app.loggers[name] = &lvl
	return app.log.Named(name).WithOptions(zap.IncreaseLevel(lvl))
}

// SetLogLevel updates the log level of an existing logger.
func (app *App) SetLogLevel(name, loglevel string) error {
	lvl, ok := app.loggers[name]
	if !ok {
		return fmt.Errorf("cannot find logger %v", name)
	}
	if err := lvl.UnmarshalText([]byte(loglevel)); err != nil {
		return fmt.Errorf("unmarshal text: %w", err)
	}
	return nil
}

// InitServices opens the state database and creates every component. It doesn't talk to the network.
func (app *App) InitServices() error {
	if app.signer == nil {
		return errors.New("identity is not loaded")
	}
	uri := "file:" + filepath.Join(app.Config.DataDir(), dbFile)
	db, err := sql.Open(uri,
		sql.WithConnections(app.Config.DatabaseConnections),
		sql.WithLogger(app.addLogger(DatabaseLogger)),
	)
	if err != nil {
		return log.ErrOpenDatabase(err)
	}
	app.db = db
	if app.Config.DatabaseVacuum {
		if err := sql.Vacuum(db); err != nil {
			return log.ErrOpenDatabase(err)
		}
		app.log.Info("state database vacuumed")
	}

	seedCfg := app.Config.Seed
	if seedCfg.DataDir == "" || seedCfg.DataDir == bootstrap.DefaultConfig().DataDir {
		seedCfg.DataDir = app.Config.DataDir()
	}
	app.seeder = bootstrap.New(
		bootstrap.WithConfig(seedCfg),
		bootstrap.WithLogger(app.addLogger(SeedLogger)),
	)

	batchLogger := app.addLogger(BatchLogger)
	if app.transport == nil {
		app.transport = batch.NewHTTPTransport(
			batch.WithTransportConfig(app.Config.Transport),
			batch.WithTransportLogger(batchLogger),
		)
	}
	app.nettime = nettime.New(
		nettime.WithClock(app.clock),
		nettime.WithLogger(app.addLogger(NetTimeLogger)),
	)
	app.executor = batch.New(app.transport,
		batch.WithConfig(app.Config.Batch),
		batch.WithLogger(batchLogger),
		batch.WithTimeSource(app.nettime),
	)
	app.pool, err = pool.New(db, app.executor, app.seeder,
		pool.WithConfig(app.Config.Pool),
		pool.WithLogger(app.addLogger(PoolLogger)),
		pool.WithClock(app.clock),
	)
	if err != nil {
		return err
	}

	app.outbox = outbox.New(db, outbox.WithLogger(app.addLogger(OutboxLogger)))
	app.keyring = signing.NewKeyring()
	dispatchLogger := app.addLogger(DispatchLogger)
	sender := dispatch.NewSwarmSender(app.signer, app.pool, app.executor,
		dispatch.WithSenderLogger(dispatchLogger),
		dispatch.WithAttempts(app.Config.Dispatch.Attempts),
		dispatch.WithGroupSigners(app.keyring),
	)
	dispatchOpts := []dispatch.Opt{
		dispatch.WithLogger(dispatchLogger),
		dispatch.WithClock(app.clock),
		dispatch.WithConfig(app.Config.Dispatch),
	}
	if app.openGroup != nil {
		dispatchOpts = append(dispatchOpts, dispatch.WithOpenGroupSender(app.openGroup))
	}
	app.dispatcher = dispatch.New(app.signer.SessionID(), app.outbox, sender, dispatchOpts...)

	app.registry = configsync.NewRegistry()
	app.reconciler = configsync.New(db, app.registry, app.signer, app.keyring, app.pool, app.executor,
		configsync.WithLogger(app.addLogger(ConfigSyncLogger)),
		configsync.WithClock(app.clock),
		configsync.WithConfig(app.Config.ConfigSync),
	)
	return nil
}

// Bootstrap fills an empty pool, syncs the clock with the network and resumes the
// messages left pending by a previous run.
func (app *App) Bootstrap(ctx context.Context) error {
	if err := app.bootstrapPool(ctx); err != nil {
		return err
	}
	if err := app.syncTime(ctx); err != nil {
		app.log.Warn("network time sync failed, signing with the local clock", zap.Error(err))
	}
	return app.dispatcher.ProcessAllPending(ctx)
}

func (app *App) bootstrapPool(ctx context.Context) error {
	if app.pool.Len() > 0 {
		return nil
	}
	err := app.pool.RefreshFromSeed(ctx)
	if err == nil {
		return nil
	}
	nodes, lerr := app.seeder.Load()
	if lerr != nil {
		return fmt.Errorf("bootstrap pool: %w", errors.Join(err, lerr))
	}
	app.log.Warn("seeds unreachable, using the persisted seed list",
		zap.Int("nodes", len(nodes)),
		zap.Error(err),
	)
	return app.pool.Restore(ctx, nodes)
}

func (app *App) syncTime(ctx context.Context) error {
	node, err := app.pool.RandomNode()
	if err != nil {
		return err
	}
	return app.nettime.Sync(ctx, app.executor, node)
}

func (app *App) refreshPool(ctx context.Context) error {
	return app.pool.Refresh(ctx)
}

// every calls fn each interval until ctx is done. Failures are logged.
func (app *App) every(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) {
	ticker := app.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := fn(ctx); err != nil && ctx.Err() == nil {
				app.log.Warn("periodic task failed", zap.String("task", name), zap.Error(err))
			}
		}
	}
}

func (app *App) startServices(ctx context.Context) {
	app.eg.Go(func() error {
		app.every(ctx, "nettime", app.Config.NetworkTimeInterval, app.syncTime)
		return nil
	})
	app.eg.Go(func() error {
		app.every(ctx, "pool", app.Config.PoolRefreshInterval, app.refreshPool)
		return nil
	})
	app.eg.Go(func() error {
		return app.reconciler.Run(ctx)
	})
	if app.Config.CollectMetrics {
		app.metricsServer = metrics.NewServer(app.Config.MetricsAddr, app.addLogger(MetricsLogger))
		app.metricsServer.Start()
	}
	if app.Config.MetricsPush.URL != "" {
		logger := app.addLogger(MetricsLogger)
		app.eg.Go(func() error {
			return metrics.Pusher(ctx, app.Config.MetricsPush, app.signer.SessionID().String(), app.clock, logger)
		})
	}
}

// Start sets up the services and blocks until ctx is done.
func (app *App) Start(ctx context.Context) error {
	if err := app.startSynchronous(ctx); err != nil {
		app.log.Error("failed to start App", zap.Error(err))
		return err
	}
	<-ctx.Done()
	return nil
}

func (app *App) startSynchronous(ctx context.Context) error {
	// notify anyone who might be listening that the app has finished starting.
	defer close(app.started)
	if app.db == nil {
		if err := app.InitServices(); err != nil {
			return err
		}
	}
	if err := app.Bootstrap(ctx); err != nil {
		return err
	}
	app.startServices(ctx)
	app.log.Info("app started",
		zap.Stringer("session_id", app.signer.SessionID()),
		zap.Int("pool", app.pool.Len()),
	)
	return nil
}

// Cleanup stops all app services. The context passed to Start must be done.
func (app *App) Cleanup(ctx context.Context) {
	app.log.Info("app cleanup starting...")
	if app.dispatcher != nil {
		if err := app.dispatcher.Close(); err != nil {
			app.log.Warn("failed to close dispatcher", zap.Error(err))
		}
	}
	if app.metricsServer != nil {
		if err := app.metricsServer.Stop(ctx); err != nil {
			app.log.Warn("failed to stop metrics server", zap.Error(err))
		}
	}
	app.eg.Wait()
	if app.registry != nil {
		app.registry.FreeAll()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.log.Warn("failed to close state database", zap.Error(err))
		}
	}
	app.log.Info("app cleanup completed")
}

// Signer returns the account identity.
func (app *App) Signer() *signing.EdSigner {
	return app.signer
}

// Keyring returns the signers of the groups the account is a member of.
func (app *App) Keyring() *signing.Keyring {
	return app.keyring
}

// Dispatcher returns the delivery engine of outgoing messages.
func (app *App) Dispatcher() *dispatch.Dispatcher {
	return app.dispatcher
}

// Registry returns the registry of config wrappers pushed by the reconciler.
func (app *App) Registry() *configsync.Registry {
	return app.registry
}

// Reconciler returns the config push engine.
func (app *App) Reconciler() *configsync.Reconciler {
	return app.reconciler
}

// Pool returns the local view of the network.
func (app *App) Pool() *pool.Pool {
	return app.pool
}

func decodeLoggerLevel(cfg *config.Config, name string) (zap.AtomicLevel, error) {
	loggers := map[string]string{}
	if err := mapstructure.Decode(cfg.LOGGING, &loggers); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("error decoding mapstructure: %w", err)
	}
	return log.ParseLevel(loggers[name])
}
