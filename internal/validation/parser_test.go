package validation

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/LYYYYL/AddressValidator/internal/debug"
	"github.com/LYYYYL/AddressValidator/internal/normalize"
)

func TestExtractUnit(t *testing.T) {
	parser := NewAddressParser()

	tests := []struct {
		name         string
		input        string
		expectedUnit string
		expectedRem  string
	}{
		{"hash dash", "#16-52 Marine Parade Singapore 440016", "16-52", "Marine Parade Singapore 440016"},
		{"dash with letter", "03-1D,Bukit Batok", "03-1D", "Bukit Batok"},
		{"spaced dash", "#07 - 12 Clementi Ave 3", "07-12", "Clementi Ave 3"},
		{"space separated", "03 16 Orchard Road", "03-16", "Orchard Road"},
		{"space separated with letter", "   7 05C, Clementi", "7-05C", "Clementi"},
		{"slash", "3/14D Jalan Besar", "3/14D", "Jalan Besar"},
		{"hash slash", "#9/99X,Dover", "9/99X", "Dover"},
		{"no unit", "No unit here", "", "No unit here"},
		{"digits split by comma", "Bedok 123, 123", "", "Bedok 123, 123"},
		{"dash after postcode", "Jurong West 605288 - 21", "", "Jurong West 605288 - 21"},
		{"space after postcode", "Jurong West 605288 21", "", "Jurong West 605288 21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, rem := parser.ExtractUnit(tt.input)
			if unit != tt.expectedUnit {
				t.Errorf("unit = %q, want %q", unit, tt.expectedUnit)
			}
			if got := normalize.Normalize(rem); got != tt.expectedRem {
				t.Errorf("remainder = %q, want %q", got, tt.expectedRem)
			}
		})
	}
}

func TestExtractPostcode(t *testing.T) {
	parser := NewAddressParser()

	tests := []struct {
		name        string
		input       string
		expectedPC  string
		expectedRem string
	}{
		{"singapore prefix", "Singapore 123456 Tanjong Pagar", "123456", "Tanjong Pagar"},
		{"s prefix", "S654321 Geylang East", "654321", "Geylang East"},
		{"lowercase prefix", "Bedok North singapore 460123", "460123", "Bedok North"},
		{"bare digits", "Exactly 987654 in Bedok", "987654", "Exactly in Bedok"},
		{"no postcode", "No postcode here", "", "No postcode here"},
		{"five digits is not a postcode", "Blk 5 Street 12345", "", "Blk 5 Street 12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, rem := parser.ExtractPostcode(tt.input)
			if pc != tt.expectedPC {
				t.Errorf("postcode = %q, want %q", pc, tt.expectedPC)
			}
			if got := normalize.Normalize(rem); got != tt.expectedRem {
				t.Errorf("remainder = %q, want %q", got, tt.expectedRem)
			}
		})
	}
}

func TestExtractorsLeaveUnmatchedInputUnchanged(t *testing.T) {
	parser := NewAddressParser()

	inputs := []string{
		"No unit here",
		"  Orchard   Road ,, ",
		"Bedok 123, 123",
		"Tanjong Pagar; #",
		"",
	}

	for _, in := range inputs {
		if unit, rem := parser.ExtractUnit(in); unit == "" && rem != in {
			t.Errorf("ExtractUnit(%q) changed remainder to %q", in, rem)
		}
		if pc, rem := parser.ExtractPostcode(in); pc == "" && rem != in {
			t.Errorf("ExtractPostcode(%q) changed remainder to %q", in, rem)
		}
	}
}

func TestExtractHouseAndRoad(t *testing.T) {
	parser := NewAddressParser()

	tests := []struct {
		name          string
		input         string
		expectedHouse string
		expectedRoad  string
	}{
		// two segments, second is a bare number
		{"two part numeric", "Geylang Serai, 4", "4", "Geylang Serai"},
		{"two part numeric with letter", "Nallur Road, 15A", "15A", "Nallur Road"},
		// Blk prefix consuming a whole segment
		{"blk segment", "Blk 230 Bedok Reservoir Road", "230", "Bedok Reservoir Road"},
		{"block segment", "Block 15A Orchard Road", "15A", "Orchard Road"},
		// Blk prefix alone in a segment
		{"blk prefix between segments", "Tiong Bahru,Blk 230,Ang Mo Kio", "230", "Tiong Bahru, Ang Mo Kio"},
		// Blk after the road
		{"inline blk", "Serangoon Gardens Blk 345 Tampines", "345", "Serangoon Gardens"},
		{"inline blk with letter", "Some Road Blk 12A Jurong", "12A", "Some Road"},
		// building, number, road
		{"building first", "Mall@313, 15A, Orchard Road", "15A", "Orchard Road"},
		// Apt prefix
		{"apt prefix", "Apt 5B East Coast Road", "5B", "East Coast Road"},
		{"apartment prefix", "Apartment 102D Serangoon North Avenue, X", "102D", "Serangoon North Avenue, X"},
		// numeric prefix
		{"numeric prefix", "10 Tampines Street 92, More Info", "10", "Tampines Street 92"},
		{"numeric prefix with letter", "42B Bukit Batok West Avenue", "42B", "Bukit Batok West Avenue"},
		{"bare number takes next segment", "88, Marine Parade", "88", "Marine Parade"},
		// street-like segment
		{"street without number", "Woodlands Avenue", "", "Woodlands Avenue"},
		{"street with unnumbered words", "NoNumber Here Road", "", "NoNumber Here Road"},
		// digit fallback
		{"digit fallback", "Segment1, Marine Parade", "", "Segment1"},
		{"digit fallback middle", "JustX, 123XYZ, More", "", "123XYZ"},
		// nothing recognisable
		{"no match", "Hello, Dover", "", ""},
		{"no match single word", "UpperMountRoadNoDigits", "", ""},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			house, road := parser.ExtractHouseAndRoad(tt.input)
			if house != tt.expectedHouse || road != tt.expectedRoad {
				t.Errorf("ExtractHouseAndRoad(%q) = (%q, %q), want (%q, %q)",
					tt.input, house, road, tt.expectedHouse, tt.expectedRoad)
			}
		})
	}
}

func TestExtractBuilding(t *testing.T) {
	parser := NewAddressParser()

	tests := []struct {
		name      string
		remainder string
		house     string
		road      string
		expected  string
	}{
		{"building before number", "SomeBuilding, 230, GreenLane", "230", "GreenLane", "SomeBuilding"},
		{"street-like segment skipped", "TowerX, Tampines Central, 77, KingRoad", "77", "KingRoad", "TowerX"},
		{"house segment skipped", "42, FooThrift, Bar", "42", "Woodlands Avenue", "FooThrift"},
		{"road segment skipped", "BlockA, Bukit Batok Link, TowerBldg", "", "Bukit Batok Link", "BlockA"},
		{"only road", "JustStreet Road", "123", "JustStreet Road", ""},
		{"empty remainder", "", "1", "Main Road", ""},
		{"singapore skipped", "Singapore, The Pinnacle", "", "", "The Pinnacle"},
		{"road matched case-insensitively", "ORCHARD boulevard mall, Ion", "", "orchard BOULEVARD", "Ion"},
		{"house inside a longer number", "1234 Tower, Main", "12", "", "1234 Tower"},
		{"house with invalid utf-8", "R\xe9sidence, 12 Caf\xe9, Orchard Road", "12 Caf\xe9", "Orchard Road", "R\xe9sidence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parser.ExtractBuilding(tt.remainder, tt.house, tt.road); got != tt.expected {
				t.Errorf("ExtractBuilding(%q, %q, %q) = %q, want %q",
					tt.remainder, tt.house, tt.road, got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	parser := NewAddressParser()

	tests := []struct {
		name     string
		input    string
		expected ParsedAddress
	}{
		{
			name:  "hdb block with unit",
			input: "288E Jurong East Street 21, #12-34, Singapore 605288",
			expected: ParsedAddress{
				BlockNumber: "288E",
				StreetName:  "Jurong East Street 21",
				UnitNumber:  "12-34",
				PostalCode:  "605288",
			},
		},
		{
			name:  "unit before building fragment",
			input: "70 Grange Road, 10-02 Grange 70, Singapore 249574",
			expected: ParsedAddress{
				BlockNumber: "70",
				StreetName:  "Grange Road",
				UnitNumber:  "10-02",
				PostalCode:  "249574",
			},
		},
		{
			name:  "blk prefix no unit",
			input: "Blk 230 Goldhill View Singapore 308826",
			expected: ParsedAddress{
				BlockNumber: "230",
				StreetName:  "Goldhill View",
				PostalCode:  "308826",
			},
		},
		{
			name:  "number after road",
			input: "Nallur Road, 15A, Singapore 456622",
			expected: ParsedAddress{
				BlockNumber: "15A",
				StreetName:  "Nallur Road",
				PostalCode:  "456622",
			},
		},
		{
			name:  "apt prefix with unit",
			input: "Apt 05-47 83 Flora Drive, Singapore 506887",
			expected: ParsedAddress{
				BlockNumber: "83",
				StreetName:  "Flora Drive",
				UnitNumber:  "05-47",
				PostalCode:  "506887",
			},
		},
		{
			name:  "building name first",
			input: "MyTower, 42, Orchard Road, Singapore 238829",
			expected: ParsedAddress{
				BlockNumber:  "42",
				StreetName:   "Orchard Road",
				PostalCode:   "238829",
				BuildingName: "MyTower",
			},
		},
		{
			name:     "empty address",
			input:    "",
			expected: ParsedAddress{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Parse(tt.input)
			if got != tt.expected {
				t.Errorf("Parse(%q)\n got: %+v\nwant: %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	parser := NewAddressParser()

	got := parser.Parse("R\xe9sidence, 12 Caf\xe9, Orchard Road, 238858")
	if got.PostalCode != "238858" {
		t.Errorf("postcode = %q, want %q", got.PostalCode, "238858")
	}
}

func TestParseKeepsPostcodeBeforeDash(t *testing.T) {
	parser := NewAddressParser()

	got := parser.Parse("Jurong West Street 91, 605288 - 21")
	if got.PostalCode != "605288" {
		t.Errorf("postcode = %q, want %q", got.PostalCode, "605288")
	}
	if got.UnitNumber != "" {
		t.Errorf("unit = %q, want none", got.UnitNumber)
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		s, word string
		want    bool
	}{
		{"42, Foo", "42", true},
		{"142 Foo", "42", false},
		{"Foo 42A", "42", false},
		{"Foo 12 42", "42", true},
		{"R\xe9sidence 12 Caf\xe9", "12 Caf\xe9", true},
		{"Blk #5", "#5", false},
		{"Blk a#5", "#5", true},
		{"", "5", false},
	}

	for _, tt := range tests {
		if got := containsWord(tt.s, tt.word); got != tt.want {
			t.Errorf("containsWord(%q, %q) = %v, want %v", tt.s, tt.word, got, tt.want)
		}
	}
}

func TestParseTracesTiming(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	parser := NewAddressParser()
	parser.SetTracer(debug.NewTracer(true, zap.New(core)))

	parser.Parse("288E Jurong East Street 21, #12-34, Singapore 605288")

	if n := logs.FilterMessage("Completed").FilterField(zap.String("operation", "parse")).Len(); n != 1 {
		t.Errorf("expected one parse timing entry, got %d", n)
	}
}

func TestParseFieldsAreTrimmedOrAbsent(t *testing.T) {
	parser := NewAddressParser()

	inputs := []string{
		"288E Jurong East Street 21, #12-34, Singapore 605288",
		"  ,, ; Blk   12  ,  Bedok North   ",
		"#01-01, , S123456",
		"Apt 3, , , ",
		"Tower One; 9 Raffles Place ;; 048619",
		";;;",
		"Singapore",
		"12 34 56 78",
	}

	for _, in := range inputs {
		got := parser.Parse(in)
		for field, value := range map[string]string{
			"block":    got.BlockNumber,
			"street":   got.StreetName,
			"unit":     got.UnitNumber,
			"postcode": got.PostalCode,
			"building": got.BuildingName,
		} {
			if value != strings.TrimSpace(value) {
				t.Errorf("Parse(%q) %s = %q is not trimmed", in, field, value)
			}
		}
	}
}
