package fetch

import (
	"context"
	"path/filepath"
	"strings"
)

// Source is a named list that can be fetched.
type Source struct {
	Name        string
	Description string
	run         func(ctx context.Context, f *Fetcher) error
}

// ChinaOperatorLists are the per-operator files of china-operator-ip.
var ChinaOperatorLists = []string{
	"china", "china6",
	"chinanet", "chinanet6",
	"cmcc", "cmcc6",
	"cstnet", "cstnet6",
	"drpeng", "drpeng6",
	"googlecn", "googlecn6",
	"cernet", "cernet6",
	"unicom", "unicom6",
}

const (
	resolver114 = "114.114.114.114"
	resolver223 = "223.5.5.5"
)

// chinaListFile maps an upstream dnsmasq-china-list file to the installed name.
// Files with perResolver set are installed as "<stem>-114.conf" and
// "<stem>-223.conf", the latter pointing at 223.5.5.5.
type chinaListFile struct {
	upstream    string
	stem        string
	perResolver bool
}

var chinaListFiles = []chinaListFile{
	{upstream: "accelerated-domains.china.conf", stem: "china", perResolver: true},
	{upstream: "apple.china.conf", stem: "apple", perResolver: true},
	{upstream: "bogus-nxdomain.china.conf", stem: "bogus-nxdomain-china"},
}

var sources = []*Source{
	{Name: "china-ips", Description: "china-operator-ip zones", run: fetchChinaIPs},
	{Name: "github-ips", Description: "GitHub meta ranges", run: providerSource("github", func(e Endpoints) string { return e.GitHub }, parseGitHub)},
	{Name: "google-ips", Description: "Google ranges", run: providerSource("google", func(e Endpoints) string { return e.Google }, parseGoogle)},
	{Name: "cloudflare-ips", Description: "Cloudflare ranges", run: providerSource("cloudflare", func(e Endpoints) string { return e.Cloudflare }, parseCloudflare)},
	{Name: "fastly-ips", Description: "Fastly ranges", run: providerSource("fastly", func(e Endpoints) string { return e.Fastly }, parseFastly)},
	{Name: "china-names", Description: "dnsmasq-china-list domains", run: fetchChinaNames},
}

// Sources returns all fetchable sources.
func Sources() []*Source {
	return sources
}

// SourceNames returns the names of all sources in display order.
func SourceNames() []string {
	names := make([]string, 0, len(sources))
	for _, source := range sources {
		names = append(names, source.Name)
	}
	return names
}

// LookupSource returns the source called name, or nil.
func LookupSource(name string) *Source {
	for _, source := range sources {
		if source.Name == name {
			return source
		}
	}
	return nil
}

func fetchChinaIPs(ctx context.Context, f *Fetcher) error {
	for _, name := range ChinaOperatorLists {
		content, err := f.download(ctx, expand(f.endpoints.ChinaIPs, name))
		if err != nil {
			return err
		}
		if err := f.install(f.zonePath(name), content, false); err != nil {
			return err
		}
	}
	return nil
}

func fetchChinaNames(ctx context.Context, f *Fetcher) error {
	for _, file := range chinaListFiles {
		content, err := f.download(ctx, expand(f.endpoints.ChinaList, file.upstream))
		if err != nil {
			return err
		}

		if !file.perResolver {
			if err := f.install(filepath.Join(f.dnsmasqRoot, file.stem+".conf"), content, f.ShowDiff); err != nil {
				return err
			}
			continue
		}

		if err := f.install(filepath.Join(f.dnsmasqRoot, file.stem+"-114.conf"), content, f.ShowDiff); err != nil {
			return err
		}
		rewritten := strings.ReplaceAll(string(content), resolver114, resolver223)
		if err := f.install(filepath.Join(f.dnsmasqRoot, file.stem+"-223.conf"), []byte(rewritten), f.ShowDiff); err != nil {
			return err
		}
	}
	return nil
}
