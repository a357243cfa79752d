package server

import (
	"fmt"

	"github.com/DrmagicE/gcolor/config"
)

// HookWrapper groups all hook wrappers function
type HookWrapper struct {
	OnColorSetWrapper   OnColorSetWrapper
	OnRandomizedWrapper OnRandomizedWrapper
	OnStopWrapper       OnStopWrapper
}

// NewPlugin is the constructor of a plugin.
type NewPlugin func(config config.Config) (Plugin, error)

// Plugin is the interface need to be implemented for every plugins.
type Plugin interface {
	// Load will be called in server.Run(). If return error, the server will not start.
	Load(service Server) error
	// Unload will be called when the server is shutdown, the return error is only for logging
	Unload() error
	// HookWrapper returns all hook wrappers that used by the plugin.
	// Return a empty wrapper if the plugin does not need any hooks
	HookWrapper() HookWrapper
	// Name return the plugin name
	Name() string
}

var (
	plugins     = make(map[string]NewPlugin)
	pluginOrder []string
)

// RegisterPlugin registers the plugin constructor. It panics if the name is already registered.
func RegisterPlugin(name string, fn NewPlugin) {
	if _, ok := plugins[name]; ok {
		panic(fmt.Sprintf("duplicated plugin: %s", name))
	}
	plugins[name] = fn
}

// SetPluginOrder sets the load order of the registered plugins.
func SetPluginOrder(order []string) {
	pluginOrder = order
}

// NewPlugins creates the plugins in pluginOrder.
func NewPlugins(c config.Config) ([]Plugin, error) {
	var rs []Plugin
	for _, name := range pluginOrder {
		fn, ok := plugins[name]
		if !ok {
			return nil, fmt.Errorf("plugin %s not registered", name)
		}
		p, err := fn(c)
		if err != nil {
			return nil, err
		}
		rs = append(rs, p)
	}
	return rs, nil
}
