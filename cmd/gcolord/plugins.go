package main

import (
	"github.com/DrmagicE/gcolor/plugin/prometheus"
	"github.com/DrmagicE/gcolor/server"
)

var pluginOrder = []string{
	prometheus.Name,
}

func init() {
	server.SetPluginOrder(pluginOrder)
}
