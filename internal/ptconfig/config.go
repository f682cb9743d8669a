// Package ptconfig gathers the store options that would otherwise live as
// scattered package vars into one typed Options, plus a YAML loader in the
// style of gorace's DecodeYmlFile.
package ptconfig

import (
	"flag"
	"io/ioutil"

	"github.com/april1989/ptastore/internal/ptlog"
	"gopkg.in/yaml.v2"
)

// Options configures the points-to stores. Default returns the permissive
// baseline; the zero value differs from it in having reverse tracking off
// and StatsTopN 0.
type Options struct {
	ReversePT     bool `yaml:"reversePT"`
	StrongUpdates bool `yaml:"strongUpdates"`
	PTSLimit      int  `yaml:"ptsLimit"` // 0 means unlimited
	StatsTopN     int  `yaml:"statsTopN"`
}

// Default is the permissive baseline: reverse tracking on, unlimited
// pts, top-10 reuse reporting.
func Default() Options {
	return Options{ReversePT: true, StatsTopN: 10}
}

// DecodeYAMLFile loads Options from path, the same shape as gorace's
// DecodeYmlFile: read the file, unmarshal, fatal on a decode error.
func DecodeYAMLFile(path string) Options {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		ptlog.L.WithField("path", path).Fatal("no config file found")
	}

	opts := Default()
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		ptlog.L.WithError(err).Fatal("config decode error")
	}
	return opts
}

// Package vars mirroring flags/flags.go's style: one flag per option,
// copied into the struct after ParseFlags.
var (
	reversePT     = flag.Bool("reversePT", true, "Track reverse points-to maps.")
	strongUpdates = flag.Bool("strongUpdates", false, "Apply strong updates when publishing IN to OUT.")
	ptsLimit      = flag.Int("ptsLimit", 0, "Cap the cardinality of any single points-to set (0 = unlimited).")
	statsTopN     = flag.Int("statsTopN", 10, "Number of top set-reuse counts to report.")
)

// ParseFlags parses the process flags into an Options value.
func ParseFlags() Options {
	flag.Parse()
	return Options{
		ReversePT:     *reversePT,
		StrongUpdates: *strongUpdates,
		PTSLimit:      *ptsLimit,
		StatsTopN:     *statsTopN,
	}
}
