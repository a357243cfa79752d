package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPI_Validate(t *testing.T) {
	a := assert.New(t)

	tt := []struct {
		cfg   API
		valid bool
	}{
		{
			cfg: API{
				Address: "udp://127.0.0.1",
			},
			valid: false,
		},
		{
			cfg:   API{},
			valid: false,
		},
		{
			cfg: API{
				Address: "tcp://127.0.0.1",
			},
			valid: false,
		},
		{
			cfg: API{
				Address: "tcp://127.0.0.1:1234",
			},
			valid: true,
		},
		{
			cfg: API{
				Address: ":1234",
			},
			valid: true,
		},
		{
			cfg: API{
				Address: "unix:///var/run/gcolord.sock",
			},
			valid: true,
		},
		{
			cfg: API{
				Address: ":1234",
				TLS:     &TLSOptions{CertFile: "cert.pem"},
			},
			valid: false,
		},
		{
			cfg: API{
				Address:   ":1234",
				Websocket: WebsocketOptions{Enable: true, Path: "watch"},
			},
			valid: false,
		},
		{
			cfg:   DefaultAPI,
			valid: true,
		},
	}
	for _, v := range tt {
		err := v.cfg.Validate()
		if v.valid {
			a.Nil(err)
		} else {
			a.NotNil(err)
		}
	}
}

func TestAPI_GetListener(t *testing.T) {
	a := assert.New(t)
	ln, err := API{Address: "127.0.0.1:0"}.GetListener()
	a.Nil(err)
	a.Equal("tcp", ln.Addr().Network())
	a.Nil(ln.Close())

	sock := filepath.Join(t.TempDir(), "gcolord.sock")
	ln, err = API{Address: "unix://" + sock}.GetListener()
	a.Nil(err)
	a.Equal("unix", ln.Addr().Network())
	a.Nil(ln.Close())
}
