// Command mkkea extracts Kea DHCP reservation data from TXT records in a
// DNS zone file and emits it as JSON, walking the zone with
// zonefile.Session instead of the teacher's string-typed parser.
//
// It looks at every character-string of every TXT record and uses those
// that start with "kea:" followed by key-value pairs; supported keys are hw-address and
// client-classes.
package main

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/Saeed-Rezaee/zonefile/zonefile"
)

const keaPrefix = "kea:"

var supportedKeys = map[string]bool{
	"hw-address":     true,
	"client-classes": true,
}

type reservation struct {
	Hostname  string
	IPAddress string
	KeaData   map[string]string
}

func unescapeTXT(s string) string {
	s = strings.ReplaceAll(s, `\\`, `\`)
	s = strings.ReplaceAll(s, `\"`, `"`)
	return s
}

func splitOutsideBrackets(s string) []string {
	var result []string
	level := 0
	start := 0
	for i, r := range s {
		switch r {
		case '[':
			level++
		case ']':
			if level > 0 {
				level--
			} else {
				return nil
			}
		case ',':
			if level == 0 {
				if part := strings.TrimSpace(s[start:i]); part != "" {
					result = append(result, part)
				}
				start = i + 1
			}
		}
	}
	if start < len(s) {
		result = append(result, strings.TrimSpace(s[start:]))
	}
	if level > 0 {
		return nil
	}
	return result
}

func quoteCSVList(bracketed string) string {
	trimmed := strings.TrimSpace(bracketed)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return bracketed
	}
	trimmed = trimmed[1 : len(trimmed)-1]
	parts := strings.Split(trimmed, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if !strings.HasPrefix(parts[i], "\"") {
			parts[i] = `"` + parts[i]
		}
		if !strings.HasSuffix(parts[i], "\"") {
			parts[i] = parts[i] + `"`
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func parseKeaRecords(txt string) (map[string]string, bool, error) {
	if !strings.HasPrefix(txt, keaPrefix) {
		return nil, false, nil
	}
	txt = strings.TrimSpace(strings.TrimPrefix(txt, keaPrefix))

	ok := false
	result := make(map[string]string)
	for _, pair := range splitOutsideBrackets(txt) {
		kv := strings.SplitN(pair, " ", 2)
		if len(kv) != 2 {
			return nil, false, nil
		}
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])
		if !supportedKeys[key] {
			return nil, false, fmt.Errorf("unknown kea directive %q", key)
		}
		if key == "client-classes" {
			if !strings.HasPrefix(value, "[") || !strings.HasSuffix(value, "]") {
				return nil, false, fmt.Errorf("client-classes value %q is not bracketed", value)
			}
			value = quoteCSVList(value)
		}
		result[key] = value
		ok = true
	}
	return result, ok, nil
}

// decodeCharacterString decodes one TXT Field. The parser stores each
// <character-string> as its own Field, so this strips the single
// length-prefix byte Field.Bytes carries.
func decodeCharacterString(f zonefile.Field) string {
	if len(f.Bytes) == 0 {
		return ""
	}
	n := int(f.Bytes[0])
	if n+1 > len(f.Bytes) {
		return ""
	}
	return string(f.Bytes[1 : 1+n])
}

func walkZone(path string, network *net.IPNet, logger logrus.FieldLogger) ([]reservation, error) {
	sess, err := zonefile.Open(path, 3600, zonefile.ClassIN, "")
	if err != nil {
		return nil, err
	}
	sess.SetLogger(logger)
	defer sess.Close()

	type hostInfo struct {
		ip string
	}
	hosts := make(map[string]hostInfo)
	var txtByHost = make(map[string][]string)
	var order []string

	for {
		rec, err := sess.NextRecord()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			break
		}
		owner, _, derr := zonefile.DecodeName(rec.Owner, 0)
		if derr != nil {
			continue
		}

		switch rec.Type {
		case zonefile.TypeA:
			if len(rec.Fields) != 1 || len(rec.Fields[0].Bytes) != 4 {
				continue
			}
			ip := net.IP(rec.Fields[0].Bytes)
			if network != nil && !network.Contains(ip) {
				continue
			}
			if _, seen := hosts[owner]; !seen {
				order = append(order, owner)
			}
			hosts[owner] = hostInfo{ip: ip.String()}
		case zonefile.TypeTXT:
			for _, f := range rec.Fields {
				txtByHost[owner] = append(txtByHost[owner], unescapeTXT(decodeCharacterString(f)))
			}
		}
	}

	var reservations []reservation
	for _, host := range order {
		info, ok := hosts[host]
		if !ok || info.ip == "" {
			continue
		}
		for _, txt := range txtByHost[host] {
			data, ok, err := parseKeaRecords(txt)
			if err != nil {
				return nil, fmt.Errorf("host %s: %w", host, err)
			}
			if !ok {
				continue
			}
			reservations = append(reservations, reservation{Hostname: host, IPAddress: info.ip, KeaData: data})
		}
	}
	return reservations, nil
}

func writeKea(out *os.File, all []reservation, files []string, network string) {
	if len(all) == 0 {
		return
	}
	fmt.Fprintf(out, "// Generated on %s\n", time.Now().Format(time.RFC1123))
	fmt.Fprintf(out, "// Input files: %s\n", strings.Join(files, ", "))
	if network != "" {
		fmt.Fprintf(out, "// Network: %s\n", network)
	}
	fmt.Fprintln(out)

	for i, r := range all {
		if i > 0 {
			fmt.Fprintln(out, ",")
		}
		fmt.Fprintln(out, "{")
		fmt.Fprintf(out, "    \"hostname\": %q,\n", r.Hostname)
		fmt.Fprintf(out, "    \"ip-address\": %q,\n", r.IPAddress)

		keys := make([]string, 0, len(r.KeaData))
		for k := range r.KeaData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			v := r.KeaData[k]
			fmt.Fprintf(out, "    %q: ", k)
			if strings.HasPrefix(v, "[") {
				fmt.Fprint(out, v)
			} else {
				fmt.Fprintf(out, "%q", v)
			}
			if i != len(keys)-1 {
				fmt.Fprint(out, ",")
			}
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, "}")
	}
	fmt.Fprintln(out)
}

func compareByHostname(i, j reservation) bool { return i.Hostname < j.Hostname }
func compareByIP(i, j reservation) bool {
	return bytes.Compare(net.ParseIP(i.IPAddress), net.ParseIP(j.IPAddress)) < 0
}
func normalizeMAC(mac string) string {
	mac = strings.ToLower(mac)
	for _, sep := range []string{":", "-", "."} {
		mac = strings.ReplaceAll(mac, sep, "")
	}
	return mac
}
func compareByMAC(i, j reservation) bool {
	return normalizeMAC(i.KeaData["hw-address"]) < normalizeMAC(j.KeaData["hw-address"])
}

// CLI is the mkkea command line.
type CLI struct {
	Inputs     []string `arg:"" name:"input" help:"Zone files to scan for kea: TXT records."`
	Output     string   `name:"o" help:"Write to this file instead of stdout."`
	Stop       bool     `name:"s" help:"Exit non-zero if no Kea records are found."`
	SortHost   bool     `name:"H" xor:"sort" help:"Sort output by hostname."`
	SortIP     bool     `name:"I" xor:"sort" help:"Sort output by IP address."`
	SortMAC    bool     `name:"M" xor:"sort" help:"Sort output by MAC address."`
	Network    string   `name:"n" help:"Limit output to this CIDR network."`
}

func main() {
	var cli CLI
	kong.Parse(&cli, kong.Description("Extract Kea DHCP reservations from TXT records in zone files."))

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	var network *net.IPNet
	if cli.Network != "" {
		_, n, err := net.ParseCIDR(cli.Network)
		if err != nil {
			logger.Fatalf("parsing --n: %v", err)
		}
		network = n
	}

	var all []reservation
	for _, input := range cli.Inputs {
		reservations, err := walkZone(input, network, logger)
		if err != nil {
			logger.Fatalf("processing %s: %v", input, err)
		}
		all = append(all, reservations...)
	}

	switch {
	case cli.SortHost:
		sort.Slice(all, func(i, j int) bool { return compareByHostname(all[i], all[j]) })
	case cli.SortIP:
		sort.Slice(all, func(i, j int) bool { return compareByIP(all[i], all[j]) })
	case cli.SortMAC:
		sort.Slice(all, func(i, j int) bool { return compareByMAC(all[i], all[j]) })
	}

	if len(all) == 0 {
		logger.Warn("no kea records found in input files")
		if cli.Stop {
			os.Exit(1)
		}
	}

	out := os.Stdout
	if cli.Output != "" {
		f, err := os.Create(cli.Output)
		if err != nil {
			logger.Fatalf("creating output file: %v", err)
		}
		defer f.Close()
		out = f
	}
	writeKea(out, all, cli.Inputs, cli.Network)
}
