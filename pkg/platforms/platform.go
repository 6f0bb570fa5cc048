package platforms

import (
	"context"
	"net/url"
	"time"

	"github.com/freegames-hub/freegames/pkg/offers"
	"github.com/freegames-hub/freegames/pkg/whttp"
)

// DefaultTimeout bounds one vendor fetch when Config.Timeout is unset.
const DefaultTimeout = 15 * time.Second

//go:generate mockgen -destination=mock/client.go -package=mock github.com/freegames-hub/freegames/pkg/platforms Client

// Client fetches the raw listings of one vendor. FetchRaw never returns an
// error: a failed fetch is logged and yields an empty slice.
type Client interface {
	Name() offers.Source
	FetchRaw(ctx context.Context) []offers.VendorRecord
}

// Config is the per-source configuration shared by every vendor client.
type Config struct {
	Enabled bool
	URL     string
	Timeout time.Duration
	// Query is merged into URL's query string.
	Query url.Values
}

// Logger abstracts logging so callers can use logrus, stdlib log, or any
// other logger that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// NopLogger silently discards all messages.
type NopLogger struct{}

func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}
func (NopLogger) Debugf(string, ...interface{}) {}

// Fetch results reported to a Recorder.
const (
	ResultOK          = "ok"
	ResultUnavailable = "unavailable"
)

// Recorder receives the outcome of every fetch.
type Recorder interface {
	ObserveFetch(src offers.Source, result string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveFetch(offers.Source, string, time.Duration) {}

// Deps are the collaborators shared by all vendor clients. Nil fields fall
// back to no-op implementations, except HTTP which is built with defaults.
type Deps struct {
	HTTP     *whttp.Client
	Log      Logger
	Recorder Recorder
	Now      func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.HTTP == nil {
		d.HTTP, _ = whttp.NewClient(whttp.ClientOptions{})
	}
	if d.Log == nil {
		d.Log = NopLogger{}
	}
	if d.Recorder == nil {
		d.Recorder = nopRecorder{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}
