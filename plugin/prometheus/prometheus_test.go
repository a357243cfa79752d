package prometheus

import (
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/DrmagicE/gcolor/config"
	"github.com/DrmagicE/gcolor/pkg/packedcolor"
	"github.com/DrmagicE/gcolor/server"
)

type fakeStats struct {
	st server.GlobalStats
}

func (f *fakeStats) GetGlobalStats() server.GlobalStats {
	return f.st
}

type fakeServer struct {
	cs    server.ColorService
	stats server.StatsReader
}

func (f *fakeServer) ColorService() server.ColorService { return f.cs }
func (f *fakeServer) StatsManager() server.StatsReader  { return f.stats }
func (f *fakeServer) GetConfig() config.Config          { return config.DefaultConfig() }
func (f *fakeServer) Router() *mux.Router               { return mux.NewRouter() }

func findMetric(mfs []*dto.MetricFamily, name string, label string) (float64, bool) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if label != "" {
				var match bool
				for _, l := range m.GetLabel() {
					if l.GetValue() == label {
						match = true
					}
				}
				if !match {
					continue
				}
			}
			if m.GetCounter() != nil {
				return m.GetCounter().GetValue(), true
			}
			return m.GetGauge().GetValue(), true
		}
	}
	return 0, false
}

func TestPrometheus_Collect(t *testing.T) {
	a := assert.New(t)
	ctrl := gomock.NewController(t)
	cs := server.NewMockColorService(ctrl)
	cs.EXPECT().ColorCounts().Return([4]uint64{10, 20, 30, 40}).AnyTimes()
	cs.EXPECT().Dimensions().Return(packedcolor.Dimensions{NumUsers: 5, NumTests: 4, NumSubjects: 5}).AnyTimes()

	stats := &fakeStats{st: server.GlobalStats{
		SetTotal:          3,
		GetTotal:          4,
		InvalidInputTotal: 2,
		QueryStats: server.QueryStats{
			TopOverall: 7,
		},
	}}
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		statsManager: stats,
		colorService: cs,
		registerer:   reg,
		gatherer:     reg,
	}
	a.Nil(reg.Register(p))
	mfs, err := reg.Gather()
	a.Nil(err)

	v, ok := findMetric(mfs, "gcolor_operations_total", "set")
	a.True(ok)
	a.EqualValues(3, v)
	v, _ = findMetric(mfs, "gcolor_operations_total", "get")
	a.EqualValues(4, v)
	v, _ = findMetric(mfs, "gcolor_queries_total", "top_overall")
	a.EqualValues(7, v)
	v, _ = findMetric(mfs, "gcolor_invalid_input_total", "")
	a.EqualValues(2, v)
	v, _ = findMetric(mfs, "gcolor_cells", "blue")
	a.EqualValues(40, v)
	v, _ = findMetric(mfs, "gcolor_cells", "red")
	a.EqualValues(10, v)
	v, _ = findMetric(mfs, "gcolor_participants", "")
	a.EqualValues(5, v)
}

func TestPrometheus_LoadUnload(t *testing.T) {
	a := assert.New(t)
	ctrl := gomock.NewController(t)
	cs := server.NewMockColorService(ctrl)
	cs.EXPECT().ColorCounts().Return([4]uint64{}).AnyTimes()
	cs.EXPECT().Dimensions().Return(packedcolor.Dimensions{}).AnyTimes()
	reg := prometheus.NewRegistry()
	c := config.DefaultConfig()
	c.Plugins[Name] = &Config{ListenAddress: "127.0.0.1:0", Path: "/metrics"}
	pl, err := New(c)
	a.Nil(err)
	p := pl.(*Prometheus)
	p.registerer, p.gatherer = reg, reg
	a.Nil(p.Load(&fakeServer{cs: cs, stats: &fakeStats{}}))
	a.Equal(Name, p.Name())
	a.Nil(p.Unload())
}

func TestConfig_Validate(t *testing.T) {
	a := assert.New(t)
	a.Nil(DefaultConfig.Validate())
	a.NotNil((&Config{ListenAddress: "8082", Path: "/metrics"}).Validate())
	a.NotNil((&Config{ListenAddress: ":8082", Path: "metrics"}).Validate())
}

func TestDefaultConfigRegistered(t *testing.T) {
	a := assert.New(t)
	c := config.DefaultConfig()
	pc, ok := c.Plugins[Name].(*Config)
	a.True(ok)
	a.Equal(DefaultConfig, *pc)
	// each DefaultConfig call returns a new instance
	pc.Path = "/changed"
	a.Equal("/metrics", config.DefaultConfig().Plugins[Name].(*Config).Path)
}
