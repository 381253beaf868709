package client

import (
	"airkorea/internal/airkorea"
	"airkorea/internal/config"
	"airkorea/internal/telemetry"
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("airkorea/internal/client")

const (
	report_client_search     = "client.search"
	report_client_parse      = "client.parse"
	report_client_pollutants = "client.pollutants"
	report_client_dump       = "client.dump"
)

// StatusError is returned when the site answers with a non-2xx status.
type StatusError struct {
	Url        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("airkorea: GET %s: unexpected status %d", e.Url, e.StatusCode)
}

type Options struct {
	BaseUrl          string
	Timeout          time.Duration
	UserAgent        string
	CloudflareBypass bool
	// Layout is the page layout used to extract responses, nil is the time
	// series layout.
	Layout airkorea.Layout
	// Dump, when set, receives the body and the http exchange of every
	// successful fetch.
	Dump Dump
}

type Client struct {
	baseUrl *url.URL
	http    *resty.Client
	layout  airkorea.Layout
	dump    Dump
	dumps   *uint64
	tel     telemetry.API
}

func New(opts Options, tel telemetry.API) (*Client, error) {
	tel = telemetry.NewScopedAPI("airkorea_client", tel)

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseUrl)
	}

	layout := opts.Layout
	if layout == nil {
		layout = airkorea.TimeSeriesLayout{}
	}

	httpClient := resty.New()
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	if opts.UserAgent != "" {
		httpClient.SetHeader("user-agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))

	telemetry.InstrumentResty(httpClient, tel, telemetry.Tracer("airkorea/internal/client/http"))

	return &Client{
		baseUrl: baseUrl,
		http:    httpClient,
		layout:  layout,
		dump:    opts.Dump,
		dumps:   new(uint64),
		tel:     tel,
	}, nil
}

// OptionsFromConfig maps the loaded configuration to client options.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	layout, err := airkorea.LayoutByName(cfg.Layout)
	if err != nil {
		return Options{}, err
	}
	return Options{
		BaseUrl:          cfg.BaseUrl,
		Timeout:          cfg.Timeout(),
		UserAgent:        cfg.UserAgent,
		CloudflareBypass: cfg.CloudflareBypass,
		Layout:           layout,
	}, nil
}

func NewFromConfig(cfg config.Config, tel telemetry.API) (*Client, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(opts, tel)
}

// SearchUrl returns the page url of the station nearest to the coordinate,
// the query is always "lng=<lng>&lat=<lat>" in that order.
func SearchUrl(base *url.URL, lng, lat float64) string {
	u := *base
	query := fmt.Sprintf(
		"lng=%s&lat=%s",
		strconv.FormatFloat(lng, 'f', -1, 64),
		strconv.FormatFloat(lat, 'f', -1, 64),
	)
	if u.RawQuery != "" {
		query = u.RawQuery + "&" + query
	}
	u.RawQuery = query
	return u.String()
}

// Search fetches and extracts the page of the station nearest to the given
// longitude and latitude.
func (c *Client) Search(ctx context.Context, lng, lat float64) (airkorea.AirStatus, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("lng", lng),
		attribute.Float64("lat", lat),
		attribute.String("layout", c.layout.Name()),
	)

	target := SearchUrl(c.baseUrl, lng, lat)
	span.SetAttributes(attribute.String("url", target))
	res, err := c.http.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		c.tel.ReportBroken(report_client_search, err, target)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return airkorea.AirStatus{}, fmt.Errorf("airkorea: GET %s: %w", target, err)
	}
	if !res.IsSuccess() {
		err := &StatusError{Url: target, StatusCode: res.StatusCode()}
		c.tel.ReportBroken(report_client_search, err)
		span.SetStatus(codes.Error, "unexpected status")
		return airkorea.AirStatus{}, err
	}

	if c.dump != nil {
		c.writeDump(res, lng, lat)
	}

	status, err := airkorea.ParseWith(c.layout, bytes.NewReader(res.Body()))
	if err != nil {
		c.tel.ReportBroken(report_client_parse, err, target)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract page")
		return airkorea.AirStatus{}, err
	}
	if len(status.Pollutants) == 0 {
		c.tel.ReportWarning(report_client_parse, "page had no pollutants", target)
	}
	span.SetAttributes(attribute.Int("pollutants", len(status.Pollutants)))
	c.tel.ReportCount(report_client_pollutants, int64(len(status.Pollutants)))

	return status, nil
}

// writeDump saves a fetched page as "<n>_<lng>_<lat>.html" next to the http
// exchange in "<n>_<lng>_<lat>.http". Failures only warn.
func (c *Client) writeDump(res *resty.Response, lng, lat float64) {
	n := atomic.AddUint64(c.dumps, 1)
	name := fmt.Sprintf(
		"%03d_%s_%s",
		n,
		strconv.FormatFloat(lng, 'f', -1, 64),
		strconv.FormatFloat(lat, 'f', -1, 64),
	)
	err := c.dump.Write(name+".html", res.Body())
	if err != nil {
		c.tel.ReportWarning(report_client_dump, err)
		return
	}
	err = c.dump.Write(name+".http", []byte(formatHttpMessage(res)))
	if err != nil {
		c.tel.ReportWarning(report_client_dump, err)
	}
}
