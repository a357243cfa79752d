package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/DrmagicE/gcolor/cmd/gcolord/command"
)

var Version = "unknown"

var (
	enablePprof bool
	pprofAddr   = "127.0.0.1:6060"
)

var (
	rootCmd = &cobra.Command{
		Use:     "gcolord",
		Long:    "gcolord records four-way color ratings of participants and answers aggregate queries over them",
		Version: Version,
	}
)

func must(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	d, err := homedir.Dir()
	must(err)
	rootCmd.PersistentFlags().StringVarP(&command.ConfigFile, "config", "c", d+"/gcolor.yml", "The configration file path")

	rootCmd.AddCommand(command.NewStartCmd())
	rootCmd.AddCommand(command.NewQueryCmd())
}

func main() {
	if enablePprof {
		go func() {
			http.ListenAndServe(pprofAddr, nil)
		}()
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
