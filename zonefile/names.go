package zonefile

import (
	"strconv"
	"strings"
)

// RR classes, RFC 1035 §3.2.4.
const (
	ClassIN  uint16 = 1
	ClassCS  uint16 = 2
	ClassCH  uint16 = 3
	ClassHS  uint16 = 4
	ClassANY uint16 = 255
)

// RR types this parser knows how to assemble RDATA for, plus the ones it
// recognizes by name but refuses to assemble (KEY, NXT, DS, WKS — see
// SPEC_FULL.md §6.1 and §9).
const (
	TypeA     uint16 = 1
	TypeNS    uint16 = 2
	TypeMD    uint16 = 3
	TypeMF    uint16 = 4
	TypeCNAME uint16 = 5
	TypeSOA   uint16 = 6
	TypeMB    uint16 = 7
	TypeMG    uint16 = 8
	TypeMR    uint16 = 9
	TypeNULL  uint16 = 10
	TypeWKS   uint16 = 11
	TypePTR   uint16 = 12
	TypeHINFO uint16 = 13
	TypeMINFO uint16 = 14
	TypeMX    uint16 = 15
	TypeTXT   uint16 = 16
	TypeRP    uint16 = 17
	TypeAFSDB uint16 = 18
	TypeSIG   uint16 = 24
	TypeKEY   uint16 = 25
	TypeAAAA  uint16 = 28
	TypeLOC   uint16 = 29
	TypeNXT   uint16 = 30
	TypeSRV   uint16 = 33
	TypeNAPTR uint16 = 35
	TypeDS    uint16 = 43
)

var classByName = map[string]uint16{
	"IN":  ClassIN,
	"CS":  ClassCS,
	"CH":  ClassCH,
	"HS":  ClassHS,
	"ANY": ClassANY,
}

var typeByName = map[string]uint16{
	"A":     TypeA,
	"NS":    TypeNS,
	"MD":    TypeMD,
	"MF":    TypeMF,
	"CNAME": TypeCNAME,
	"SOA":   TypeSOA,
	"MB":    TypeMB,
	"MG":    TypeMG,
	"MR":    TypeMR,
	"NULL":  TypeNULL,
	"WKS":   TypeWKS,
	"PTR":   TypePTR,
	"HINFO": TypeHINFO,
	"MINFO": TypeMINFO,
	"MX":    TypeMX,
	"TXT":   TypeTXT,
	"RP":    TypeRP,
	"AFSDB": TypeAFSDB,
	"SIG":   TypeSIG,
	"KEY":   TypeKEY,
	"AAAA":  TypeAAAA,
	"LOC":   TypeLOC,
	"NXT":   TypeNXT,
	"SRV":   TypeSRV,
	"NAPTR": TypeNAPTR,
	"DS":    TypeDS,
}

var nameByType = func() map[uint16]string {
	m := make(map[uint16]string, len(typeByName))
	for name, code := range typeByName {
		m[code] = name
	}
	return m
}()

// ClassByName is a case-insensitive lookup of a master-file class token
// (IN, CS, CH, HS, ANY) to its 16-bit code. A miss returns 0.
func ClassByName(s string) uint16 {
	return classByName[strings.ToUpper(s)]
}

// TypeByName is a case-insensitive lookup of a master-file type token to
// its 16-bit code. It also accepts the RFC 3597 TYPExxx escape, where xxx
// is a decimal code, bypassing the table entirely. A miss returns 0.
func TypeByName(s string) uint16 {
	if code, ok := typeByName[strings.ToUpper(s)]; ok {
		return code
	}
	if code, ok := parseGenericType(s); ok {
		return code
	}
	return 0
}

// TypeName returns the canonical name for a known type code, or the
// RFC 3597 TYPExxx form if the code isn't in the static table.
func TypeName(code uint16) string {
	if name, ok := nameByType[code]; ok {
		return name
	}
	return "TYPE" + strconv.FormatUint(uint64(code), 10)
}

// parseGenericType parses the RFC 3597 "TYPExxx" unknown-type escape,
// case-insensitively, where xxx is a decimal (not hex or octal) code.
func parseGenericType(s string) (uint16, bool) {
	if len(s) <= 4 {
		return 0, false
	}
	if !strings.EqualFold(s[:4], "TYPE") {
		return 0, false
	}
	n, err := strconv.ParseUint(s[4:], 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}

// hasRDATAAssembler reports whether C7 implements a wire-format
// assembler for the given type. KEY, NXT, DS, and WKS are recognized by
// name (so diagnostics can print their name) but have no assembler.
func hasRDATAAssembler(t uint16) bool {
	switch t {
	case TypeA, TypeNS, TypeMD, TypeMF, TypeCNAME, TypeMB, TypeMG, TypeMR, TypePTR,
		TypeMINFO, TypeRP, TypeMX, TypeAFSDB, TypeSOA, TypeTXT, TypeHINFO, TypeAAAA,
		TypeSRV, TypeNAPTR, TypeSIG, TypeLOC, TypeNULL:
		return true
	default:
		return false
	}
}
