package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/StephenPCG/xrouter/src/internal/domain"
	xerrors "github.com/StephenPCG/xrouter/src/internal/errors"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

// FileMode is the permission of downloaded list files.
const FileMode os.FileMode = 0644

// Endpoints are the download locations. Templates use {{name}} placeholders.
type Endpoints struct {
	ChinaIPs   string
	GitHub     string
	Google     string
	Cloudflare string
	Fastly     string
	ChinaList  string
}

var DefaultEndpoints = Endpoints{
	ChinaIPs:   "https://raw.githubusercontent.com/gaoyifan/china-operator-ip/refs/heads/ip-lists/{{name}}.txt",
	GitHub:     "https://api.github.com/meta",
	Google:     "https://www.gstatic.com/ipranges/goog.json",
	Cloudflare: "https://api.cloudflare.com/client/v4/ips",
	Fastly:     "https://api.fastly.com/public-ip-list",
	ChinaList:  "https://raw.githubusercontent.com/felixonmars/dnsmasq-china-list/refs/heads/master/{{name}}",
}

// Fetcher downloads lists and installs them through an Installer.
type Fetcher struct {
	client      *http.Client
	installer   domain.Installer
	zonesRoot   string
	dnsmasqRoot string
	endpoints   Endpoints

	// ShowDiff logs a diff for changed dnsmasq list files.
	ShowDiff bool
}

// NewFetcher creates a fetcher writing zones to zonesRoot and dnsmasq lists to dnsmasqRoot.
func NewFetcher(client *http.Client, installer domain.Installer, zonesRoot, dnsmasqRoot string) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client:      client,
		installer:   installer,
		zonesRoot:   zonesRoot,
		dnsmasqRoot: dnsmasqRoot,
		endpoints:   DefaultEndpoints,
	}
}

// WithEndpoints replaces the download locations.
func (f *Fetcher) WithEndpoints(endpoints Endpoints) *Fetcher {
	f.endpoints = endpoints
	return f
}

// Fetch runs the named sources in order. A failing source does not stop the
// others; all failures are returned together.
func (f *Fetcher) Fetch(ctx context.Context, names ...string) error {
	sources := make([]*Source, 0, len(names))
	for _, name := range names {
		source := LookupSource(name)
		if source == nil {
			return xerrors.New(xerrors.ErrCodeConfig,
				fmt.Sprintf("unknown fetch source %q (available: %s)", name, strings.Join(SourceNames(), ", ")))
		}
		sources = append(sources, source)
	}

	var errs []error
	for _, source := range sources {
		log.Infof("[fetch %s]", source.Name)
		if err := source.run(ctx, f); err != nil {
			log.Errorf("Failed to fetch %s: %v", source.Name, err)
			errs = append(errs, fmt.Errorf("%s: %w", source.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	log.Infof("Downloading %s ...", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, xerrors.NewFetchError(fmt.Sprintf("invalid URL %s", url), err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, xerrors.NewFetchError(fmt.Sprintf("failed to download %s", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, xerrors.New(xerrors.ErrCodeFetch, fmt.Sprintf("failed to download %s: %s", url, resp.Status))
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, xerrors.NewFetchError(fmt.Sprintf("failed to read response of %s", url), err)
	}
	return content, nil
}

func (f *Fetcher) install(path string, content []byte, showDiff bool) error {
	log.Infof("Saving to %s ...", path)
	_, err := f.installer.Install(path, content, FileMode, showDiff)
	return err
}

func (f *Fetcher) zonePath(name string) string {
	return filepath.Join(f.zonesRoot, name+".txt")
}

func expand(template, name string) string {
	return fasttemplate.ExecuteString(template, "{{", "}}", map[string]interface{}{"name": name})
}
