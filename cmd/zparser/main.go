// Command zparser streams a DNS master zone file through the zonefile
// package, printing a progress line every 100,000 input lines and the
// total error count at end of file, per spec.md's CLI surface.
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/Saeed-Rezaee/zonefile/zonefile"
)

const progressInterval = 100000

// CLI is the zparser command line, declared the way vooon-zoneomatic
// declares its own zone-tooling flags: one struct, kong struct tags.
type CLI struct {
	ZoneFile string `arg:"" name:"zone-file" help:"Path to the master zone file to parse."`
	Origin   string `arg:"" name:"origin" optional:"" help:"Zone origin, e.g. example.com. Defaults to the root."`

	TTL          string `name:"ttl" default:"3600" help:"Default TTL (RFC 1035 §5.1 duration syntax) for records that omit one."`
	Class        string `name:"class" default:"IN" help:"Default record class."`
	MaxIncludeDepth int `name:"max-include-depth" default:"64" help:"Maximum $INCLUDE nesting depth. Not applied: zonefile.Open always uses zonefile.DefaultMaxIncludeDepth."`
	LogLevel     string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Minimum severity to log."`
}

func main() {
	var cli CLI
	kong.Parse(&cli, kong.Description("Parse an RFC 1035 master zone file and report errors."))

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if level, err := logrus.ParseLevel(cli.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ttlSeconds, end := zonefile.ParseTTL(cli.TTL)
	if end != len(cli.TTL) || ttlSeconds < 0 {
		logger.Errorf("invalid --ttl %q", cli.TTL)
		os.Exit(1)
	}

	class := zonefile.ClassByName(cli.Class)
	if class == 0 {
		logger.Errorf("invalid --class %q", cli.Class)
		os.Exit(1)
	}

	sess, err := zonefile.Open(cli.ZoneFile, uint32(ttlSeconds), class, cli.Origin)
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
	sess.SetLogger(logger)
	defer sess.Close()

	lastReported := 0
	for {
		rec, err := sess.NextRecord()
		if err != nil {
			// The error is already logged by the session; a fatal
			// lexical/resource-limit error ends the stream here.
			break
		}
		if rec == nil {
			break
		}

		if sess.Lines()-lastReported >= progressInterval {
			lastReported = sess.Lines()
			logger.Infof("%d lines processed", sess.Lines())
		}
	}

	logger.Infof("%d errors", sess.Errors())
	os.Exit(0)
}
