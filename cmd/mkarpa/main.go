// Command mkarpa builds a reverse (in-addr.arpa) zone file from one or
// more forward zone files, walking each with zonefile.Session and
// decoding A-record RDATA back to dotted-decimal text.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/Saeed-Rezaee/zonefile/zonefile"
)

type ptrRecord struct {
	lastOctet string
	target    string
}

func walkZone(path string, logger logrus.FieldLogger) ([]ptrRecord, error) {
	sess, err := zonefile.Open(path, 3600, zonefile.ClassIN, "")
	if err != nil {
		return nil, err
	}
	sess.SetLogger(logger)
	defer sess.Close()

	var out []ptrRecord
	for {
		rec, err := sess.NextRecord()
		if err != nil {
			return out, err
		}
		if rec == nil {
			return out, nil
		}
		if rec.Type != zonefile.TypeA || len(rec.Fields) != 1 {
			continue
		}

		owner, _, err := zonefile.DecodeName(rec.Owner, 0)
		if err != nil {
			continue
		}

		ip := rec.Fields[0].Bytes
		if len(ip) != 4 {
			continue
		}
		out = append(out, ptrRecord{lastOctet: fmt.Sprint(ip[3]), target: owner})
	}
}

func writeReverseZone(w *os.File, domain string, inputFiles []string, records []ptrRecord) {
	host, err := os.Hostname()
	if err != nil {
		host = "<unknown>"
	}

	fmt.Fprintln(w, strings.Repeat(";", 77))
	fmt.Fprintf(w, "; Reverse zone file for domain %q\n", domain)
	fmt.Fprintln(w, ";")
	fmt.Fprintln(w, "; Generated, do not edit by hand")
	fmt.Fprintf(w, "; Generated %s from:\n", time.Now().Format(time.UnixDate))
	for _, f := range inputFiles {
		abs, _ := filepath.Abs(f)
		fmt.Fprintf(w, ";  %s:%s\n", host, abs)
	}
	fmt.Fprintln(w, strings.Repeat(";", 77))
	fmt.Fprintf(w, "\n$ORIGIN %s\n\n", domain)

	sort.Slice(records, func(i, j int) bool { return records[i].lastOctet < records[j].lastOctet })
	for _, r := range records {
		fmt.Fprintf(w, "%s\t\tIN\tPTR\t\t%s\n", r.lastOctet, r.target)
	}
}

// CLI is the mkarpa command line.
type CLI struct {
	ReverseDomain string   `arg:"" name:"reverse-domain" help:"Origin for the generated reverse zone, e.g. 1.168.192.in-addr.arpa."`
	Inputs        []string `arg:"" name:"input" help:"Forward zone files to scan for A records."`
	Output        string   `name:"o" help:"Write to this file instead of stdout."`
}

func main() {
	var cli CLI
	kong.Parse(&cli, kong.Description("Generate a reverse zone file from one or more forward zone files."))

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	var all []ptrRecord
	for _, input := range cli.Inputs {
		records, err := walkZone(input, logger)
		if err != nil {
			logger.Fatalf("processing %s: %v", input, err)
		}
		all = append(all, records...)
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

	writeReverseZone(out, cli.ReverseDomain, cli.Inputs, all)
}
