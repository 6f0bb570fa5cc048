package platforms

import (
	"context"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/freegames-hub/freegames/pkg/offers"
	"github.com/freegames-hub/freegames/pkg/whttp"
)

// Endpoint describes where a vendor's listings live and how to find the
// element array inside the response.
type Endpoint struct {
	Source offers.Source
	Config Config
	// ElementsPath is the gjson path of the element array. Empty means the
	// response body itself is the array.
	ElementsPath string
	Headers      []whttp.WHTTPHeader
}

// Fetcher performs the single outbound request of a vendor client.
type Fetcher struct {
	deps Deps
}

func NewFetcher(deps Deps) *Fetcher {
	return &Fetcher{deps: deps.withDefaults()}
}

// FetchRecords issues one GET and splits the payload into VendorRecords.
// Any failure is logged as vendor-unavailable and yields nil.
func (f *Fetcher) FetchRecords(ctx context.Context, ep Endpoint) []offers.VendorRecord {
	start := f.deps.Now()
	records, err := f.fetch(ctx, ep)
	elapsed := f.deps.Now().Sub(start)
	if err != nil {
		err = offers.VendorUnavailable(err, ep.Source)
		f.deps.Log.Warnf("%v", err)
		f.deps.Recorder.ObserveFetch(ep.Source, ResultUnavailable, elapsed)
		return nil
	}
	f.deps.Log.Debugf("Fetched %d records from %s in %s", len(records), ep.Source, elapsed)
	f.deps.Recorder.ObserveFetch(ep.Source, ResultOK, elapsed)
	return records
}

func (f *Fetcher) fetch(ctx context.Context, ep Endpoint) (records []offers.VendorRecord, err error) {
	// a panic inside a vendor payload walk must not take down the aggregation
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, errors.Newf("panic while fetching: %v", r)
		}
	}()

	target, err := BuildURL(ep.Config.URL, ep.Config.Query)
	if err != nil {
		return nil, err
	}

	timeout := ep.Config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := f.deps.HTTP.SendHTTPRequest(ctx, &whttp.WHTTPReq{
		Method:  "GET",
		URL:     target,
		Headers: ep.Headers,
	})
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, errors.Newf("unexpected status code %d", res.StatusCode)
	}
	if !gjson.Valid(res.BodyString) {
		return nil, errors.New("response is not valid JSON")
	}

	elements := gjson.Parse(res.BodyString)
	if ep.ElementsPath != "" {
		elements = elements.Get(ep.ElementsPath)
	}
	if !elements.IsArray() {
		return nil, errors.Newf("no element array at %q", ep.ElementsPath)
	}

	fetchedAt := f.deps.Now().UTC()
	for _, el := range elements.Array() {
		records = append(records, offers.VendorRecord{
			Source:    ep.Source,
			Body:      el.Raw,
			FetchedAt: fetchedAt,
		})
	}
	if records == nil {
		records = []offers.VendorRecord{}
	}
	return records, nil
}

// BuildURL merges extra query parameters into base. Parameters already
// present in base are overwritten.
func BuildURL(base string, extra url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrapf(err, "parsing vendor url %q", base)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.Newf("vendor url %q is not absolute", base)
	}
	if len(extra) == 0 {
		return u.String(), nil
	}
	q := u.Query()
	for k, vs := range extra {
		q.Del(k)
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
