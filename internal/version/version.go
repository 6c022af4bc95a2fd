// Package version хранит сведения о сборке. Значения подставляются при сборке:
//
//	go build -ldflags "-X github.com/vladislavdragonenkov/oms/internal/version.version=v1.2.0 \
//	  -X github.com/vladislavdragonenkov/oms/internal/version.commit=$(git rev-parse --short HEAD)"
package version

import (
	"runtime"

	log "github.com/sirupsen/logrus"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Build описывает текущий бинарник.
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Current возвращает сведения о сборке.
func Current() Build {
	return Build{Version: version, Commit: commit, Date: date, GoVersion: runtime.Version()}
}

// Fields — поля для стартовой записи в лог.
func (b Build) Fields() log.Fields {
	return log.Fields{
		"version":    b.Version,
		"commit":     b.Commit,
		"build_date": b.Date,
		"go_version": b.GoVersion,
	}
}

// Dev сообщает, что бинарник собран без -ldflags.
func (b Build) Dev() bool { return b.Version == "dev" }
