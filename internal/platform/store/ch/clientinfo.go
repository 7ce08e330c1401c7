package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// product is the name this process reports in system.query_log
const product = "pbl"

// BuildClientInfo describes this process to the server.
// role is the binary ("api", "ctl"), tag is free form
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()

	type kv = struct{ Name, Version string }
	products := []kv{{Name: product, Version: orDash(tag)}}
	for _, p := range []kv{
		{Name: "role", Version: role},
		{Name: "go", Version: runtime.Version()},
		{Name: "commit", Version: shortRevision()},
		{Name: "host", Version: host},
	} {
		if v := strings.TrimSpace(p.Version); v != "" {
			products = append(products, kv{Name: p.Name, Version: v})
		}
	}
	return clickhouse.ClientInfo{Products: products}
}

func shortRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}
