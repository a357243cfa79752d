package server

import (
	"net"

	"go.uber.org/zap"

	"github.com/DrmagicE/gcolor/config"
	"github.com/DrmagicE/gcolor/pkg/packedcolor"
)

type Options func(srv *server)

// WithConfig set the config of the server
func WithConfig(config config.Config) Options {
	return func(srv *server) {
		srv.config = config
	}
}

// WithListener set the listener of the API server. Default listen on config.API.Address.
func WithListener(ln net.Listener) Options {
	return func(srv *server) {
		srv.listener = ln
	}
}

// WithPlugin set plugin(s) of the server.
func WithPlugin(plugin ...Plugin) Options {
	return func(srv *server) {
		srv.plugins = append(srv.plugins, plugin...)
	}
}

// WithHook set hooks of the server. Notice: WithPlugin() will overwrite hooks.
func WithHook(hooks Hooks) Options {
	return func(srv *server) {
		srv.hooks = hooks
	}
}

func WithLogger(logger *zap.Logger) Options {
	return func(srv *server) {
		zaplog = logger
	}
}

// WithStore set the packed store of the server. Its dimensions override the store config
// and it will not be randomized on start.
func WithStore(store *packedcolor.Store) Options {
	return func(srv *server) {
		srv.store = store
	}
}
