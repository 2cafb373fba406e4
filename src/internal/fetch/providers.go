package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/StephenPCG/xrouter/src/internal/cidr"
	xerrors "github.com/StephenPCG/xrouter/src/internal/errors"
	"github.com/StephenPCG/xrouter/src/internal/log"
)

// parser extracts candidate networks from a provider feed. Candidates that are
// not networks are dropped later by the aggregator.
type parser func(content []byte) ([]string, error)

func providerSource(provider string, url func(Endpoints) string, parse parser) func(context.Context, *Fetcher) error {
	return func(ctx context.Context, f *Fetcher) error {
		content, err := f.download(ctx, url(f.endpoints))
		if err != nil {
			return err
		}

		networks, err := parse(content)
		if err != nil {
			return xerrors.NewFetchError(fmt.Sprintf("failed to parse %s ranges", provider), err)
		}

		v4, v6 := cidr.Aggregate(networks)

		path := f.zonePath(provider + "-ipv4")
		log.Infof("Saving %d IPv4 networks to %s ...", len(v4), path)
		if _, err := f.installer.Install(path, zoneContent(v4), FileMode, false); err != nil {
			return err
		}

		path = f.zonePath(provider + "-ipv6")
		log.Infof("Saving %d IPv6 networks to %s ...", len(v6), path)
		if _, err := f.installer.Install(path, zoneContent(v6), FileMode, false); err != nil {
			return err
		}
		return nil
	}
}

// zoneContent renders one network per line with a trailing newline.
func zoneContent(networks []string) []byte {
	return []byte(strings.Join(networks, "\n") + "\n")
}

// parseGitHub collects every string of every list-valued field of the meta
// document. Fields like "ssh_keys" hold non-networks and are filtered out.
func parseGitHub(content []byte) ([]string, error) {
	var meta map[string]json.RawMessage
	if err := json.Unmarshal(content, &meta); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var networks []string
	for _, key := range keys {
		var values []interface{}
		if err := json.Unmarshal(meta[key], &values); err != nil {
			continue
		}
		for _, value := range values {
			if s, ok := value.(string); ok {
				networks = append(networks, s)
			}
		}
	}
	return networks, nil
}

func parseGoogle(content []byte) ([]string, error) {
	var doc struct {
		Prefixes []struct {
			IPv4Prefix string `json:"ipv4Prefix"`
			IPv6Prefix string `json:"ipv6Prefix"`
		} `json:"prefixes"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, err
	}

	var networks []string
	for _, prefix := range doc.Prefixes {
		if prefix.IPv4Prefix != "" {
			networks = append(networks, prefix.IPv4Prefix)
		} else if prefix.IPv6Prefix != "" {
			networks = append(networks, prefix.IPv6Prefix)
		}
	}
	return networks, nil
}

func parseCloudflare(content []byte) ([]string, error) {
	var doc struct {
		Result struct {
			IPv4CIDRs []string `json:"ipv4_cidrs"`
			IPv6CIDRs []string `json:"ipv6_cidrs"`
		} `json:"result"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	return append(doc.Result.IPv4CIDRs, doc.Result.IPv6CIDRs...), nil
}

func parseFastly(content []byte) ([]string, error) {
	var doc struct {
		Addresses     []string `json:"addresses"`
		IPv6Addresses []string `json:"ipv6_addresses"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	return append(doc.Addresses, doc.IPv6Addresses...), nil
}
