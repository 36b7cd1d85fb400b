// Command dhcpgen emits $GENERATE directives for a contiguous DHCP host
// range, splitting the range across Class C network boundaries and
// skipping the reserved .0/.255 addresses in each one.
package main

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/Saeed-Rezaee/zonefile/zonefile"
)

const (
	classCNetworkMask = 0xFFFFFF00
	lastOctetMask     = 0xFF
)

var dnsDomainRE = regexp.MustCompile(`^(?i:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?)(\.[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?)*(\.)?$`)

func ipToUint32(ip net.IP) uint32 {
	ip = ip.To4()
	return uint32(ip[0])<<24 + uint32(ip[1])<<16 + uint32(ip[2])<<8 + uint32(ip[3])
}

func uint32ToIP(ip uint32) net.IP {
	return net.IPv4(byte(ip>>24), byte(ip>>16), byte(ip>>8), byte(ip))
}

func isValidDNSDomain(domain string) bool {
	if len(domain) > 253 {
		return false
	}
	return dnsDomainRE.MatchString(domain)
}

func getFieldWidth(maxValue int) int {
	if maxValue == 0 {
		return 1
	}
	return len(strconv.Itoa(maxValue))
}

func fqdn(host, domain string) string {
	if strings.HasSuffix(host, ".") {
		return host
	}
	if domain == "" {
		return host
	}
	out := strings.Join([]string{host, domain}, ".")
	if !strings.HasSuffix(out, ".") {
		out += "."
	}
	return out
}

func countValidHosts(startIP, endIP uint32) int {
	if startIP > endIP {
		return 0
	}
	count := 0
	for ip := startIP; ip <= endIP; ip++ {
		octet := int(ip & lastOctetMask)
		if octet != 0 && octet != 255 {
			count++
		}
	}
	return count
}

func makeHostPattern(host, domain string, offset, width int) string {
	return fqdn(fmt.Sprintf("%s-${%d,%d,d}", host, offset, width), domain)
}

func makeHostName(host string, width, offset int) string {
	return fmt.Sprintf("%s-%0*d", host, width, offset)
}

// network is one Class C slice of the requested range.
type network struct {
	baseIP     uint32
	startOctet int
	endOctet   int
	hostStart  int
}

func generateForNetwork(n network, hostName, origin string, width int, comments bool, mx string, mxPri uint) []string {
	var statements []string

	baseIP := uint32ToIP(n.baseIP)
	parts := strings.Split(baseIP.String(), ".")
	ipPattern := fmt.Sprintf("%s.%s.%s.$", parts[0], parts[1], parts[2])

	validHosts := 0
	for octet := n.startOctet; octet <= n.endOctet; octet++ {
		if octet != 0 && octet != 255 {
			validHosts++
		}
	}

	if comments && validHosts > 0 {
		startIP := fmt.Sprintf("%s.%s.%s.%d", parts[0], parts[1], parts[2], n.startOctet)
		endIP := fmt.Sprintf("%s.%s.%s.%d", parts[0], parts[1], parts[2], n.endOctet)
		startHost := makeHostName(hostName, width, n.hostStart)
		endHost := makeHostName(hostName, width, n.hostStart+validHosts-1)
		statements = append(statements, fmt.Sprintf("\n; %s-%s => %s to %s, %d hosts",
			startIP, endIP, startHost, endHost, validHosts))
	}

	hostOffset := n.hostStart
	for octet := n.startOctet; octet <= n.endOctet; octet++ {
		if octet == 0 || octet == 255 {
			continue
		}
		rangeStart := octet
		for octet <= n.endOctet && octet != 0 && octet != 255 {
			octet++
		}
		rangeEnd := octet - 1

		statements = append(statements, fmt.Sprintf("$GENERATE %d-%d %s IN %s %s",
			rangeStart, rangeEnd, makeHostPattern(hostName, origin, hostOffset, width),
			zonefile.TypeName(zonefile.TypeA), ipPattern))

		if mx != "" {
			statements = append(statements, fmt.Sprintf("$GENERATE %d-%d %s IN %s \"%d %s\"",
				rangeStart, rangeEnd, makeHostPattern(hostName, origin, hostOffset, width),
				zonefile.TypeName(zonefile.TypeMX), mxPri, fqdn(mx, origin)))
		}

		hostOffset += rangeEnd - rangeStart + 1
		octet--
	}

	return statements
}

func getNetworksInRange(startIP, endIP uint32, hostStart int) []network {
	var networks []network
	current := startIP
	hostOffset := hostStart

	for current <= endIP {
		networkBase := current & classCNetworkMask
		startOctet := int(current & lastOctetMask)
		networkEnd := min(networkBase|255, endIP)
		endOctet := int(networkEnd & lastOctetMask)

		validHosts := 0
		for octet := startOctet; octet <= endOctet; octet++ {
			if octet != 0 && octet != 255 {
				validHosts++
			}
		}

		if validHosts > 0 {
			networks = append(networks, network{
				baseIP:     networkBase,
				startOctet: startOctet,
				endOctet:   endOctet,
				hostStart:  hostOffset,
			})
			hostOffset += validHosts
		}

		current = ((networkBase >> 8) + 1) << 8
	}

	return networks
}

func validateIPRange(startIP, endIP string) (uint32, uint32, error) {
	start := net.ParseIP(startIP)
	if start == nil || start.To4() == nil {
		return 0, 0, fmt.Errorf("invalid start IPv4 address: %s", startIP)
	}
	end := net.ParseIP(endIP)
	if end == nil || end.To4() == nil {
		return 0, 0, fmt.Errorf("invalid end IPv4 address: %s", endIP)
	}
	if bytes.Compare(start, end) > 0 {
		return 0, 0, fmt.Errorf("start IP must be less than or equal to end IP")
	}
	return ipToUint32(start), ipToUint32(end), nil
}

func generateStatements(cli *CLI) ([]string, error) {
	startUint, endUint, err := validateIPRange(cli.StartIP, cli.EndIP)
	if err != nil {
		return nil, err
	}
	if cli.HostStart < 0 {
		return nil, fmt.Errorf("hoststart cannot be negative: %d", cli.HostStart)
	}
	if cli.HostName == "" {
		return nil, fmt.Errorf("hostname cannot be empty")
	}
	if cli.Origin != "" && !isValidDNSDomain(cli.Origin) {
		return nil, fmt.Errorf("origin %q is not a valid DNS domain", cli.Origin)
	}

	totalHosts := countValidHosts(startUint, endUint)
	if totalHosts == 0 {
		return nil, fmt.Errorf("no valid host addresses in range %s to %s", cli.StartIP, cli.EndIP)
	}
	width := getFieldWidth(cli.HostStart + totalHosts - 1)

	var statements []string
	if cli.Comments {
		statements = append(statements, fmt.Sprintf("; Creating $GENERATE directives for addresses %s through %s\n; %d hosts total, starting from host %d",
			cli.StartIP, cli.EndIP, totalHosts, cli.HostStart))
	}

	for _, n := range getNetworksInRange(startUint, endUint, cli.HostStart) {
		statements = append(statements, generateForNetwork(n, cli.HostName, cli.Origin, width, cli.Comments, cli.MX, cli.MXPriority)...)
	}

	return statements, nil
}

// CLI is the kong command line for dhcpgen, generalized from the
// teacher's flag-package driver the same way cmd/zparser's is.
type CLI struct {
	StartIP    string `arg:"" name:"start-ip" help:"First IPv4 address in the range."`
	EndIP      string `arg:"" name:"end-ip" help:"Last IPv4 address in the range."`
	HostStart  int    `name:"hoststart" default:"0" help:"Where to start host numbering."`
	HostName   string `name:"hostname" default:"dhcp" help:"Hostname prefix."`
	Origin     string `name:"origin" help:"DNS domain to append to generated names."`
	Comments   bool   `name:"comments" help:"Add a comment block for each $GENERATE directive."`
	MX         string `name:"mx" help:"Also generate an MX record pointing at this host."`
	MXPriority uint   `name:"mx-priority" default:"0" help:"Priority for the generated MX record."`
	Output     string `name:"o" help:"Write to this file instead of stdout."`
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	var cli CLI
	kong.Parse(&cli, kong.Description("Generate $GENERATE directives for a DHCP host range."))

	statements, err := generateStatements(&cli)
	if err != nil {
		logger.Fatal(err)
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

	for _, stmt := range statements {
		fmt.Fprintln(out, stmt)
	}
}
