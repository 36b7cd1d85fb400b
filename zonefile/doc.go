// Package zonefile is a streaming parser for RFC 1035 §5 DNS master zone
// files. It reads records in file order and hands each one back with its
// RDATA already converted to wire-format, length-prefixed byte fields,
// ready for loading into an authoritative name server's in-memory zone.
//
// The parser does no zone-semantic validation (no SOA-at-apex check, no
// glue resolution, no DNSSEC verification), performs no network I/O, and
// never emits text back out. $INCLUDE is resolved recursively but the
// active include chain is always a single linear stack: only the
// innermost open file produces records at any moment.
package zonefile
