package prometheus

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/DrmagicE/gcolor"
	"github.com/DrmagicE/gcolor/config"
	"github.com/DrmagicE/gcolor/server"
)

var _ server.Plugin = (*Prometheus)(nil)

const (
	Name         = "prometheus"
	metricPrefix = "gcolor_"
)

func init() {
	server.RegisterPlugin(Name, New)
	config.RegisterDefaultPluginConfig(Name, newDefaultConfig)
}

func New(config config.Config) (server.Plugin, error) {
	cfg, ok := config.Plugins[Name].(*Config)
	if !ok {
		cfg = &DefaultConfig
	}
	httpServer := &http.Server{
		Addr: cfg.ListenAddress,
	}
	return &Prometheus{
		httpServer: httpServer,
		path:       cfg.Path,
		registerer: prometheus.DefaultRegisterer,
		gatherer:   prometheus.DefaultGatherer,
	}, nil
}

var log = zap.NewNop()

// Prometheus served as a prometheus exporter that exposes gcolor metrics.
type Prometheus struct {
	statsManager server.StatsReader
	colorService server.ColorService
	httpServer   *http.Server
	path         string
	registerer   prometheus.Registerer
	gatherer     prometheus.Gatherer
}

func (p *Prometheus) Load(service server.Server) error {
	log = server.LoggerWithField(zap.String("plugin", Name))
	p.statsManager = service.StatsManager()
	p.colorService = service.ColorService()
	err := p.registerer.Register(p)
	if err != nil {
		return err
	}
	mu := http.NewServeMux()
	mu.Handle(p.path, promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{}))
	p.httpServer.Handler = mu
	go func() {
		err := p.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error("prometheus exporter error", zap.Error(err))
		}
	}()
	return nil
}

func (p *Prometheus) Unload() error {
	p.registerer.Unregister(p)
	return p.httpServer.Shutdown(context.Background())
}

func (p *Prometheus) HookWrapper() server.HookWrapper {
	return server.HookWrapper{}
}

func (p *Prometheus) Name() string {
	return Name
}

var (
	opsDesc = prometheus.NewDesc(metricPrefix+"operations_total",
		"Total number of store operations.", []string{"type"}, nil)
	queriesDesc = prometheus.NewDesc(metricPrefix+"queries_total",
		"Total number of aggregation queries.", []string{"type"}, nil)
	invalidInputDesc = prometheus.NewDesc(metricPrefix+"invalid_input_total",
		"Total number of requests rejected as invalid input.", nil, nil)
	cellsDesc = prometheus.NewDesc(metricPrefix+"cells",
		"Number of cells holding each color.", []string{"color"}, nil)
	participantsDesc = prometheus.NewDesc(metricPrefix+"participants",
		"Number of participants in the store.", nil, nil)
)

func (p *Prometheus) Describe(desc chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(p, desc)
}

func (p *Prometheus) Collect(m chan<- prometheus.Metric) {
	log.Debug("metrics collected")
	st := p.statsManager.GetGlobalStats()
	collectOperationStats(&st, m)
	collectQueryStats(&st.QueryStats, m)
	m <- prometheus.MustNewConstMetric(invalidInputDesc, prometheus.CounterValue, float64(st.InvalidInputTotal))
	if p.colorService != nil {
		collectColorStats(p.colorService, m)
	}
}

func collectOperationStats(st *server.GlobalStats, m chan<- prometheus.Metric) {
	m <- prometheus.MustNewConstMetric(opsDesc, prometheus.CounterValue, float64(st.SetTotal), "set")
	m <- prometheus.MustNewConstMetric(opsDesc, prometheus.CounterValue, float64(st.GetTotal), "get")
	m <- prometheus.MustNewConstMetric(opsDesc, prometheus.CounterValue, float64(st.RandomizeTotal), "randomize")
}

func collectQueryStats(qs *server.QueryStats, m chan<- prometheus.Metric) {
	m <- prometheus.MustNewConstMetric(queriesDesc, prometheus.CounterValue, float64(qs.Averages), "averages")
	m <- prometheus.MustNewConstMetric(queriesDesc, prometheus.CounterValue, float64(qs.TopByColor), "top_by_color")
	m <- prometheus.MustNewConstMetric(queriesDesc, prometheus.CounterValue, float64(qs.TopInTest), "top_in_test")
	m <- prometheus.MustNewConstMetric(queriesDesc, prometheus.CounterValue, float64(qs.TopOverall), "top_overall")
}

func collectColorStats(cs server.ColorService, m chan<- prometheus.Metric) {
	counts := cs.ColorCounts()
	for c, n := range counts {
		m <- prometheus.MustNewConstMetric(cellsDesc, prometheus.GaugeValue, float64(n), gcolor.Color(c).String())
	}
	m <- prometheus.MustNewConstMetric(participantsDesc, prometheus.GaugeValue, float64(cs.Dimensions().NumUsers))
}
