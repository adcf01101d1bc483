package validation

import (
	"regexp"
	"strings"

	"github.com/LYYYYL/AddressValidator/internal/debug"
	"github.com/LYYYYL/AddressValidator/internal/normalize"
)

// AddressParser extracts Singapore address components with ordered pattern heuristics
type AddressParser struct {
	tracer debug.Tracer

	// Unit number forms, tried in order
	unitDashPattern  *regexp.Regexp
	unitSpacePattern *regexp.Regexp
	unitSlashPattern *regexp.Regexp

	// Postal code forms, tried in order
	postcodePatterns []*regexp.Regexp

	houseOnlyPattern     *regexp.Regexp
	blkSegmentPattern    *regexp.Regexp
	blkPrefixPattern     *regexp.Regexp
	inlineBlkPattern     *regexp.Regexp
	aptPrefixPattern     *regexp.Regexp
	numericPrefixPattern *regexp.Regexp
	digitPattern         *regexp.Regexp
}

// NewAddressParser creates a parser with its patterns compiled
func NewAddressParser() *AddressParser {
	return &AddressParser{
		unitDashPattern:  regexp.MustCompile(`#?\s*\b(\d{1,3})\s*-\s*(\d{1,4}[A-Za-z]?)`),
		unitSpacePattern: regexp.MustCompile(`#?\s*\b(\d{1,3})\s+(\d{1,4}[A-Za-z]?)\b`),
		unitSlashPattern: regexp.MustCompile(`(\d{1,3}/\d{1,4}[A-Za-z]?)`),
		postcodePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Singapore\s+(\d{6})`),
			regexp.MustCompile(`(?i)S(\d{6})`),
			regexp.MustCompile(`\b(\d{6})\b`),
		},
		houseOnlyPattern:     regexp.MustCompile(`^\d+[A-Za-z]?$`),
		blkSegmentPattern:    regexp.MustCompile(`(?i)^(?:Blk|Block)\s*(\d+[A-Za-z]?)[,\s]+(.+)$`),
		blkPrefixPattern:     regexp.MustCompile(`(?i)^\b(?:Blk|Block)\s*(\d+[A-Za-z]?)\b`),
		inlineBlkPattern:     regexp.MustCompile(`(?i)^(.+?)\s+\b(?:Blk|Block)\s*(\d+[A-Za-z]?)\b`),
		aptPrefixPattern:     regexp.MustCompile(`(?i)^\b(?:Apt|Apartment)\s*(\d+[A-Za-z]?)(?:\s+(.*))?`),
		numericPrefixPattern: regexp.MustCompile(`^(\d+[A-Za-z]?)(?:\s+(.*))?$`),
		digitPattern:         regexp.MustCompile(`\d`),
	}
}

// SetTracer enables stage tracing of Parse
func (p *AddressParser) SetTracer(t debug.Tracer) {
	p.tracer = t
}

// Parse extracts unit, postal code, block/road and building from a raw address.
// Each stage works on the normalized remainder of the previous one.
func (p *AddressParser) Parse(raw string) ParsedAddress {
	p.tracer.Header("parse")
	defer p.tracer.Footer("parse")
	defer p.tracer.Timing("parse")()

	unit, rem1 := p.ExtractUnit(raw)
	rem1 = normalize.Normalize(rem1)
	p.tracer.Output("Raw address: %s", raw)
	p.tracer.Output("Extracted unit: %s, remaining: %s", unit, rem1)

	postcode, rem2 := p.ExtractPostcode(rem1)
	rem2 = normalize.Normalize(rem2)
	p.tracer.Output("Extracted postcode: %s, remaining: %s", postcode, rem2)

	house, road := p.ExtractHouseAndRoad(rem2)
	p.tracer.Output("Extracted house number: %s, road: %s", house, road)

	building := p.ExtractBuilding(rem2, house, road)
	// A unit or postcode fragment is never a building name
	if u, _ := p.ExtractUnit(building); u != "" {
		building = ""
	} else if pc, _ := p.ExtractPostcode(building); pc != "" {
		building = ""
	}
	p.tracer.Output("Extracted building: %s", building)

	return NewParsedAddress(house, road, unit, postcode, building)
}

// ExtractUnit finds a unit number such as "16-52", "03 16" or "3/14D".
// Dashed and spaced forms are returned as "floor-unit". The remainder has every
// occurrence of the matched text, with an optional leading '#', removed.
// When nothing matches the input is returned unchanged.
func (p *AddressParser) ExtractUnit(text string) (string, string) {
	var unit, literal string

	if m := p.unitDashPattern.FindStringSubmatchIndex(text); m != nil {
		unit = text[m[2]:m[3]] + "-" + text[m[4]:m[5]]
		literal = text[m[2]:m[1]]
	} else if m := p.unitSpacePattern.FindStringSubmatchIndex(text); m != nil {
		unit = text[m[2]:m[3]] + "-" + text[m[4]:m[5]]
		literal = text[m[2]:m[1]]
	} else if m := p.unitSlashPattern.FindStringSubmatchIndex(text); m != nil {
		unit = text[m[2]:m[3]]
		literal = unit
	}

	if unit == "" {
		return "", text
	}

	strip := regexp.MustCompile(`(?i)#?\s*` + regexp.QuoteMeta(literal))
	return unit, strip.ReplaceAllString(text, "")
}

// ExtractPostcode finds a six digit postal code written as "Singapore 123456",
// "S123456" or a bare "123456", in that order of preference. The first match is
// removed once from the remainder; when nothing matches the input is returned unchanged.
func (p *AddressParser) ExtractPostcode(text string) (string, string) {
	for _, re := range p.postcodePatterns {
		if m := re.FindStringSubmatchIndex(text); m != nil {
			return text[m[2]:m[3]], text[:m[0]] + text[m[1]:]
		}
	}
	return "", text
}

// ExtractHouseAndRoad splits a unit- and postcode-free address into block/house number
// and road. The rules run from most to least specific and the first match wins.
func (p *AddressParser) ExtractHouseAndRoad(text string) (string, string) {
	txt := normalize.Normalize(text)
	parts := normalize.Segments(txt)

	rules := []func() (string, string, bool){
		func() (string, string, bool) { return p.matchTwoPartNumeric(parts) },
		func() (string, string, bool) { return p.matchBlkSegment(parts) },
		func() (string, string, bool) { return p.matchBlkPrefix(parts) },
		func() (string, string, bool) { return p.matchInlineBlk(txt) },
		func() (string, string, bool) { return p.matchBuildingFirst(parts) },
		func() (string, string, bool) { return p.matchAptPrefix(txt) },
		func() (string, string, bool) { return p.matchNumericPrefix(parts) },
		func() (string, string, bool) { return p.matchStreetLike(parts) },
		func() (string, string, bool) { return p.matchAnyDigit(parts) },
	}

	for _, rule := range rules {
		if house, road, ok := rule(); ok {
			return house, road
		}
	}
	return "", ""
}

// "Geylang Serai, 4"
func (p *AddressParser) matchTwoPartNumeric(parts []string) (string, string, bool) {
	if len(parts) == 2 && p.houseOnlyPattern.MatchString(parts[1]) {
		return parts[1], parts[0], true
	}
	return "", "", false
}

// "Blk 230 Bedok Reservoir Road"
func (p *AddressParser) matchBlkSegment(parts []string) (string, string, bool) {
	for _, part := range parts {
		if m := p.blkSegmentPattern.FindStringSubmatch(part); m != nil {
			return m[1], m[2], true
		}
	}
	return "", "", false
}

// "Tiong Bahru, Blk 230, Ang Mo Kio"
func (p *AddressParser) matchBlkPrefix(parts []string) (string, string, bool) {
	for i, part := range parts {
		if m := p.blkPrefixPattern.FindStringSubmatch(part); m != nil {
			rest := make([]string, 0, len(parts)-1)
			rest = append(rest, parts[:i]...)
			rest = append(rest, parts[i+1:]...)
			return m[1], strings.Join(rest, ", "), true
		}
	}
	return "", "", false
}

// "Serangoon Gardens Blk 345 Tampines"
func (p *AddressParser) matchInlineBlk(txt string) (string, string, bool) {
	if m := p.inlineBlkPattern.FindStringSubmatch(txt); m != nil {
		return m[2], strings.TrimSpace(m[1]), true
	}
	return "", "", false
}

// "Pinevale, 123, Tampines Street 73"
func (p *AddressParser) matchBuildingFirst(parts []string) (string, string, bool) {
	if len(parts) >= 3 && !startsWithDigit(parts[0]) && startsWithDigit(parts[1]) && normalize.LooksLikeStreet(parts[2]) {
		return parts[1], parts[2], true
	}
	return "", "", false
}

// "Apt 5B East Coast Road"
func (p *AddressParser) matchAptPrefix(txt string) (string, string, bool) {
	if m := p.aptPrefixPattern.FindStringSubmatch(txt); m != nil {
		return m[1], m[2], true
	}
	return "", "", false
}

// "42B Bukit Batok West Avenue"
func (p *AddressParser) matchNumericPrefix(parts []string) (string, string, bool) {
	if len(parts) == 0 {
		return "", "", false
	}
	m := p.numericPrefixPattern.FindStringSubmatch(parts[0])
	if m == nil {
		return "", "", false
	}
	road := m[2]
	if road == "" && len(parts) > 1 {
		road = parts[1]
	}
	return m[1], road, true
}

// "Woodlands Avenue"
func (p *AddressParser) matchStreetLike(parts []string) (string, string, bool) {
	for _, part := range parts {
		if !normalize.LooksLikeStreet(part) {
			continue
		}
		if m := p.numericPrefixPattern.FindStringSubmatch(part); m != nil && m[2] != "" {
			return m[1], m[2], true
		}
		return "", part, true
	}
	return "", "", false
}

func (p *AddressParser) matchAnyDigit(parts []string) (string, string, bool) {
	for _, part := range parts {
		if p.digitPattern.MatchString(part) {
			return "", part, true
		}
	}
	return "", "", false
}

// ExtractBuilding returns the first segment of remainder that is not the house
// number, the road, a street name or "Singapore".
func (p *AddressParser) ExtractBuilding(remainder, house, road string) string {
	lowerRoad := strings.ToLower(road)

	for _, part := range normalize.Segments(remainder) {
		if house != "" && containsWord(part, house) {
			continue
		}
		if road != "" && strings.Contains(strings.ToLower(part), lowerRoad) {
			continue
		}
		if normalize.LooksLikeStreet(part) {
			continue
		}
		if strings.EqualFold(part, "Singapore") {
			continue
		}
		return part
	}
	return ""
}

// containsWord reports whether word occurs in s with a word boundary on each side,
// using the same ASCII word characters as regexp's \b.
func containsWord(s, word string) bool {
	for i := 0; i+len(word) <= len(s); {
		j := strings.Index(s[i:], word)
		if j < 0 {
			return false
		}
		start, end := i+j, i+j+len(word)
		if boundary(s, start) && boundary(s, end) {
			return true
		}
		i = start + 1
	}
	return false
}

func boundary(s string, at int) bool {
	before := at > 0 && isWordByte(s[at-1])
	after := at < len(s) && isWordByte(s[at])
	return before != after
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
