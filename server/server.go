package server

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/DrmagicE/gcolor"
	"github.com/DrmagicE/gcolor/config"
	"github.com/DrmagicE/gcolor/pkg/packedcolor"
)

var (
	statusPanic = "invalid server status"
)

// Server status
const (
	serverStatusInit = iota
	serverStatusStarted
	serverStatusStopped
)

var zaplog *zap.Logger

func init() {
	zaplog = zap.NewNop()
}

// LoggerWithField release fields to a new logger.
// Plugins can use this method to release plugin name field.
func LoggerWithField(fields ...zap.Field) *zap.Logger {
	return zaplog.With(fields...)
}

// Server interface represents a gcolor server instance.
type Server interface {
	// ColorService returns the ColorService.
	ColorService() ColorService
	// StatsManager returns StatsReader.
	StatsManager() StatsReader
	// GetConfig returns the config of the server
	GetConfig() config.Config
	// Router returns the router of the API server. Plugins can register extra HTTP handlers on it.
	Router() *mux.Router
}

// server represents a gcolor server instance.
// Create a server by using New()
type server struct {
	wg     sync.WaitGroup
	status int32 //server status

	config  config.Config
	hooks   Hooks
	plugins []Plugin

	store        *packedcolor.Store
	service      *colorService
	statsManager *statsManager

	listener   net.Listener
	router     *mux.Router
	httpServer *http.Server
	watcher    *watcher
}

func defaultServer() *server {
	return &server{
		status:       serverStatusInit,
		config:       config.DefaultConfig(),
		statsManager: newStatsManager(),
		router:       mux.NewRouter(),
	}
}

// New returns a gcolor server instance with the given options
func New(opts ...Options) *server {
	srv := defaultServer()
	for _, fn := range opts {
		fn(srv)
	}
	return srv
}

// Init initialises the options.
func (srv *server) Init(opts ...Options) {
	for _, fn := range opts {
		fn(srv)
	}
}

func (srv *server) ColorService() ColorService {
	return srv.service
}

func (srv *server) StatsManager() StatsReader {
	return srv.statsManager
}

func (srv *server) GetConfig() config.Config {
	return srv.config
}

func (srv *server) Router() *mux.Router {
	return srv.router
}

// Addr returns the address the API server listen on. It returns nil before Run.
func (srv *server) Addr() net.Addr {
	if srv.listener == nil {
		return nil
	}
	return srv.listener.Addr()
}

func (srv *server) initStore() {
	if srv.store != nil {
		return
	}
	c := srv.config.Store
	srv.store = packedcolor.New(c.NumUsers, c.NumTests, c.NumSubjects)
	if !c.Randomize {
		return
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	start := time.Now()
	srv.store.Randomize(rand.New(rand.NewSource(seed)))
	zaplog.Info("store randomized",
		zap.Int("num_users", c.NumUsers),
		zap.Int("num_tests", c.NumTests),
		zap.Int("num_subjects", c.NumSubjects),
		zap.Int64("seed", seed),
		zap.Duration("elapsed", time.Since(start)))
}

func (srv *server) loadPlugins() error {
	var (
		onColorSetWrappers   []OnColorSetWrapper
		onRandomizedWrappers []OnRandomizedWrapper
		onStopWrappers       []OnStopWrapper
	)
	for i, p := range srv.plugins {
		zaplog.Info("loading plugin", zap.String("name", p.Name()))
		err := p.Load(srv)
		if err != nil {
			unloadPlugins(srv.plugins[:i])
			return err
		}
		hooks := p.HookWrapper()
		if hooks.OnColorSetWrapper != nil {
			onColorSetWrappers = append(onColorSetWrappers, hooks.OnColorSetWrapper)
		}
		if hooks.OnRandomizedWrapper != nil {
			onRandomizedWrappers = append(onRandomizedWrappers, hooks.OnRandomizedWrapper)
		}
		if hooks.OnStopWrapper != nil {
			onStopWrappers = append(onStopWrappers, hooks.OnStopWrapper)
		}
	}
	if srv.watcher != nil {
		onColorSetWrappers = append(onColorSetWrappers, srv.watcher.onColorSetWrapper)
		onRandomizedWrappers = append(onRandomizedWrappers, srv.watcher.onRandomizedWrapper)
	}
	if onColorSetWrappers != nil {
		onColorSet := srv.hooks.OnColorSet
		if onColorSet == nil {
			onColorSet = func(ctx context.Context, cell Cell, old, new gcolor.Color) {}
		}
		for i := len(onColorSetWrappers); i > 0; i-- {
			onColorSet = onColorSetWrappers[i-1](onColorSet)
		}
		srv.hooks.OnColorSet = onColorSet
	}
	if onRandomizedWrappers != nil {
		onRandomized := srv.hooks.OnRandomized
		if onRandomized == nil {
			onRandomized = func(ctx context.Context, seed int64) {}
		}
		for i := len(onRandomizedWrappers); i > 0; i-- {
			onRandomized = onRandomizedWrappers[i-1](onRandomized)
		}
		srv.hooks.OnRandomized = onRandomized
	}
	if onStopWrappers != nil {
		onStop := srv.hooks.OnStop
		if onStop == nil {
			onStop = func(ctx context.Context) {}
		}
		for i := len(onStopWrappers); i > 0; i-- {
			onStop = onStopWrappers[i-1](onStop)
		}
		srv.hooks.OnStop = onStop
	}
	return nil
}

func unloadPlugins(plugins []Plugin) {
	for _, v := range plugins {
		err := v.Unload()
		if err != nil {
			zaplog.Warn("plugin unload error", zap.String("name", v.Name()), zap.Error(err))
		}
	}
}

func (srv *server) serveHTTP() {
	defer srv.wg.Done()
	var err error
	if tls := srv.config.API.TLS; tls != nil {
		err = srv.httpServer.ServeTLS(srv.listener, tls.CertFile, tls.KeyFile)
	} else {
		err = srv.httpServer.Serve(srv.listener)
	}
	if err != nil && err != http.ErrServerClosed {
		zaplog.Error("http server error", zap.Error(err))
	}
}

// Run starts the server. It builds the store, loads the plugins and starts the API server.
// If Run returns an error, the loaded plugins are unloaded and the server is marked as stopped.
func (srv *server) Run() (err error) {
	if !atomic.CompareAndSwapInt32(&srv.status, serverStatusInit, serverStatusStarted) {
		panic(statusPanic)
	}
	defer func() {
		if err != nil {
			atomic.StoreInt32(&srv.status, serverStatusStopped)
		}
	}()
	srv.initStore()
	srv.service = newColorService(srv.store, srv.config.Query, srv.statsManager, &srv.hooks)
	if srv.config.API.Websocket.Enable {
		srv.watcher = newWatcher()
	}
	err = srv.loadPlugins()
	if err != nil {
		return err
	}
	registerAPI(srv.router, srv.service)
	if srv.watcher != nil {
		srv.router.Handle(srv.config.API.Websocket.Path, srv.watcher).Methods(http.MethodGet)
	}
	if srv.listener == nil {
		srv.listener, err = srv.config.API.GetListener()
		if err != nil {
			unloadPlugins(srv.plugins)
			return err
		}
	}
	srv.httpServer = &http.Server{
		Handler:           wrapHandler(srv.router),
		ReadHeaderTimeout: 5 * time.Second,
	}
	zaplog.Info("starting gcolor server", zap.String("address", srv.listener.Addr().String()))
	srv.wg.Add(1)
	go srv.serveHTTP()
	return nil
}

// Stop gracefully stops the server. It blocks until the API server is shutdown or ctx is done.
func (srv *server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&srv.status, serverStatusStarted, serverStatusStopped) {
		return errors.New(statusPanic)
	}
	zaplog.Info("stopping gcolor server")
	defer func() {
		zaplog.Info("server stopped")
	}()
	err := srv.httpServer.Shutdown(ctx)
	if err != nil {
		zaplog.Warn("http server shutdown error", zap.Error(err))
	}
	if srv.watcher != nil {
		srv.watcher.close()
	}
	srv.wg.Wait()
	unloadPlugins(srv.plugins)
	if srv.hooks.OnStop != nil {
		srv.hooks.OnStop(ctx)
	}
	return nil
}
