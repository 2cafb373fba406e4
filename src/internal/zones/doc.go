// Package zones implements the zone store: named, file-backed lists of CIDR
// blocks that routing tables can use as targets.
//
// A zone "china" is looked up under the zones root as "manual-china.txt" first
// and "china.txt" second, so operators can override fetched lists without the
// fetcher ever touching their files.
//
// Zone files are noisy external data. Each line is cut at the first "#" and at
// the first whitespace, and whatever is left is kept only if it is a network:
//
//	# China Telecom
//	1.0.1.0/24
//	1.0.2.0/23   AS4134
//	garbage                <- dropped
package zones
