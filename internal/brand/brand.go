package brand

import (
	"hash/fnv"
	"strings"
)

// Brand is the visual identity resolved for a store name: a two-stop
// gradient plus a primary accent color.
type Brand struct {
	Gradient [2]string `json:"gradient"`
	Primary  string    `json:"primary"`
}

type entry struct {
	key    string
	domain string
	brand  Brand
}

// knownBrands is the curated retailer table. Iteration order is the
// tie-break for substring matches, so entries must not be reordered
// casually.
var knownBrands = []entry{
	{"ikea", "ikea.com", Brand{Gradient: [2]string{"#0058A3", "#FFDB00"}, Primary: "#0058A3"}},
	{"lidl", "lidl.com", Brand{Gradient: [2]string{"#0050AA", "#FFF000"}, Primary: "#0050AA"}},
	{"aldi", "aldi.com", Brand{Gradient: [2]string{"#00005F", "#26C4F4"}, Primary: "#00005F"}},
	{"rewe", "rewe.de", Brand{Gradient: [2]string{"#CC071E", "#8B0000"}, Primary: "#CC071E"}},
	{"edeka", "edeka.de", Brand{Gradient: [2]string{"#FFD500", "#005CA9"}, Primary: "#005CA9"}},
	{"dm", "dm.de", Brand{Gradient: [2]string{"#FFCC00", "#0C2F6E"}, Primary: "#0C2F6E"}},
	{"rossmann", "rossmann.de", Brand{Gradient: [2]string{"#C3002D", "#7A001C"}, Primary: "#C3002D"}},
	{"tesco", "tesco.com", Brand{Gradient: [2]string{"#00539F", "#EE1C2E"}, Primary: "#00539F"}},
	{"carrefour", "carrefour.com", Brand{Gradient: [2]string{"#004E9F", "#ED1C24"}, Primary: "#004E9F"}},
	{"walmart", "walmart.com", Brand{Gradient: [2]string{"#0071CE", "#FFC220"}, Primary: "#0071CE"}},
	{"target", "target.com", Brand{Gradient: [2]string{"#CC0000", "#8B0000"}, Primary: "#CC0000"}},
	{"costco", "costco.com", Brand{Gradient: [2]string{"#005DAA", "#E31837"}, Primary: "#005DAA"}},
	{"starbucks", "starbucks.com", Brand{Gradient: [2]string{"#00704A", "#004D33"}, Primary: "#00704A"}},
	{"mcdonald's", "mcdonalds.com", Brand{Gradient: [2]string{"#FFC72C", "#DA291C"}, Primary: "#DA291C"}},
	{"subway", "subway.com", Brand{Gradient: [2]string{"#008C15", "#FFC600"}, Primary: "#008C15"}},
	{"h&m", "hm.com", Brand{Gradient: [2]string{"#E50010", "#9C000B"}, Primary: "#E50010"}},
	{"zara", "zara.com", Brand{Gradient: [2]string{"#1A1A1A", "#4D4D4D"}, Primary: "#1A1A1A"}},
	{"decathlon", "decathlon.com", Brand{Gradient: [2]string{"#0082C3", "#00537D"}, Primary: "#0082C3"}},
	{"sephora", "sephora.com", Brand{Gradient: [2]string{"#000000", "#666666"}, Primary: "#000000"}},
	{"nike", "nike.com", Brand{Gradient: [2]string{"#111111", "#757575"}, Primary: "#111111"}},
	{"adidas", "adidas.com", Brand{Gradient: [2]string{"#000000", "#767677"}, Primary: "#000000"}},
	{"douglas", "douglas.de", Brand{Gradient: [2]string{"#99D6D0", "#3E8E88"}, Primary: "#3E8E88"}},
	{"payback", "payback.de", Brand{Gradient: [2]string{"#003EB0", "#66CCFF"}, Primary: "#003EB0"}},
}

// fallbackPalette is the fixed set of default identities used when a store
// name matches no known brand. Indexed by a stable hash of the name, so a
// given name always lands on the same entry without any persistence.
var fallbackPalette = []Brand{
	{Gradient: [2]string{"#667EEA", "#764BA2"}, Primary: "#667EEA"},
	{Gradient: [2]string{"#F093FB", "#F5576C"}, Primary: "#F5576C"},
	{Gradient: [2]string{"#4FACFE", "#00F2FE"}, Primary: "#4FACFE"},
	{Gradient: [2]string{"#43E97B", "#38F9D7"}, Primary: "#43E97B"},
	{Gradient: [2]string{"#FA709A", "#FEE140"}, Primary: "#FA709A"},
	{Gradient: [2]string{"#30CFD0", "#330867"}, Primary: "#30CFD0"},
	{Gradient: [2]string{"#A8EDEA", "#FED6E3"}, Primary: "#5BBFBA"},
	{Gradient: [2]string{"#FF9A9E", "#FAD0C4"}, Primary: "#FF9A9E"},
}

// Resolve derives a stable visual identity for a store name. An exact hit
// in the known-brand table wins, then a substring match in either
// direction (table order breaks ties), then the deterministic palette
// fallback. Pure and idempotent.
func Resolve(storeName string) Brand {
	if e, ok := lookup(storeName); ok {
		return e.brand
	}
	return fallbackPalette[paletteIndex(normalize(storeName))]
}

// Domain returns the known web domain for a store name, or "" when the
// name matches no table entry. Used as the first logo-probe candidate.
func Domain(storeName string) string {
	if e, ok := lookup(storeName); ok {
		return e.domain
	}
	return ""
}

func lookup(storeName string) (entry, bool) {
	name := normalize(storeName)
	if name == "" {
		return entry{}, false
	}
	for _, e := range knownBrands {
		if e.key == name {
			return e, true
		}
	}
	for _, e := range knownBrands {
		if strings.Contains(name, e.key) || strings.Contains(e.key, name) {
			return e, true
		}
	}
	return entry{}, false
}

func normalize(storeName string) string {
	return strings.ToLower(strings.TrimSpace(storeName))
}

func paletteIndex(name string) int {
	h := fnv.New32a()
	h.Write([]byte(name))
	return int(h.Sum32() % uint32(len(fallbackPalette)))
}
