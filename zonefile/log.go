package zonefile

import "github.com/sirupsen/logrus"

// defaultLogger is used by every Session that doesn't set its own via
// Session.SetLogger. The teacher gated a bare fmt.Printf behind a DEBUG
// bool (zoneparser/utils.go's Log); this module replaces that with a
// structured logrus logger so a consuming program can redirect,
// level-filter, or format (JSON, text) the parser's diagnostics without
// patching the library.
var defaultLogger logrus.FieldLogger = logrus.StandardLogger()

func (s *Session) log() logrus.FieldLogger {
	if s.logger != nil {
		return s.logger
	}
	return defaultLogger
}

func (s *Session) logError(pe *ParseError) {
	s.log().WithFields(logrus.Fields{
		"file":  pe.File,
		"line":  pe.Line,
		"class": pe.Class.String(),
	}).Warn(pe.Err)
}
