package bionet

import "strings"

// =============================================================================
// Category - Ordered Rule Classification
// =============================================================================

// Category is a biological node category. Classification evaluates a fixed
// priority list of string predicates over the node ID; the first match wins
// and Other is the catch-all, never evaluated before the rest.
type Category int

// Categories in declared priority order. Other must stay last.
const (
	Signaling Category = iota
	TranscriptionFactors
	Receptors
	Immune
	Cancer
	Ribosomal
	CellCycle
	Other
)

// HighlightAll is the sentinel highlight value meaning "no dimming".
const HighlightAll Category = -1

// categoryNames maps categories to their display names.
var categoryNames = [...]string{
	Signaling:            "signaling",
	TranscriptionFactors: "transcription-factors",
	Receptors:            "receptors",
	Immune:               "immune",
	Cancer:               "cancer",
	Ribosomal:            "ribosomal",
	CellCycle:            "cell-cycle",
	Other:                "other",
}

// String returns the category's display name.
func (c Category) String() string {
	if c == HighlightAll {
		return "all"
	}
	if c < 0 || int(c) >= len(categoryNames) {
		return "other"
	}
	return categoryNames[c]
}

// ParseCategory resolves a display name back to a Category.
// "all" yields HighlightAll; unknown names yield Other.
func ParseCategory(s string) Category {
	if s == "all" {
		return HighlightAll
	}
	for i, name := range categoryNames {
		if name == s {
			return Category(i)
		}
	}
	return Other
}

// Categories returns all concrete categories in priority order, Other last.
func Categories() []Category {
	return []Category{Signaling, TranscriptionFactors, Receptors, Immune, Cancer, Ribosomal, CellCycle, Other}
}

// =============================================================================
// Predicates
// =============================================================================

// cancerGenes is the explicit membership set for the Cancer category.
// Note that several members (EGFR, ERBB2) carry a trailing R and are caught
// by the Receptors predicate first; the declared priority order is preserved
// deliberately, matching the upstream classification.
var cancerGenes = map[string]bool{
	"TP53": true, "EGFR": true, "MYC": true, "KRAS": true, "NRAS": true,
	"HRAS": true, "BRAF": true, "BRCA1": true, "BRCA2": true, "PTEN": true,
	"RB1": true, "APC": true, "VHL": true, "ALK": true, "ERBB2": true,
	"MDM2": true, "CDKN2A": true, "SMAD4": true, "ATM": true, "NF1": true,
}

var (
	signalingPrefixes = []string{"MAPK", "MAP2K", "MAP3K", "AKT", "PIK3", "MTOR", "RAF", "JAK", "SRC", "WNT", "SMAD", "GSK3", "PLC", "PKC", "STAT", "CAMK"}
	tfPrefixes        = []string{"FOX", "SOX", "GATA", "HOX", "PAX", "NFKB", "TBX", "MYB", "E2F", "ETS", "KLF", "ZNF"}
	receptorPrefixes  = []string{"TLR", "GPR", "FZD", "NOTCH"}
	immunePrefixes    = []string{"IL", "CD", "TNF", "IFN", "HLA", "CXCL", "CCL", "TGFB"}
	ribosomalPrefixes = []string{"RPL", "RPS", "MRPL", "MRPS"}
	cellCyclePrefixes = []string{"CDK", "CCN", "CDC", "MCM", "PLK", "AURK", "BUB", "ORC"}
)

// rule pairs a category with its membership predicate.
type rule struct {
	cat   Category
	match func(id string) bool
}

// rules is the fixed classification order. First match wins; Other is the
// implicit fallthrough and never appears here.
var rules = []rule{
	{Signaling, hasAnyPrefix(signalingPrefixes)},
	{TranscriptionFactors, hasAnyPrefix(tfPrefixes)},
	{Receptors, func(id string) bool {
		return strings.HasSuffix(id, "R") || hasAnyPrefix(receptorPrefixes)(id)
	}},
	{Immune, hasAnyPrefix(immunePrefixes)},
	{Cancer, func(id string) bool { return cancerGenes[id] }},
	{Ribosomal, hasAnyPrefix(ribosomalPrefixes)},
	{CellCycle, hasAnyPrefix(cellCyclePrefixes)},
}

func hasAnyPrefix(prefixes []string) func(string) bool {
	return func(id string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(id, p) {
				return true
			}
		}
		return false
	}
}

// Classify assigns a node ID to exactly one category by evaluating the
// predicate list in declared priority order. It is total and deterministic:
// IDs matching nothing land on Other. Matching is case-insensitive on the ID
// (gene symbols are conventionally upper-case).
func Classify(nodeID string) Category {
	id := strings.ToUpper(nodeID)
	for _, r := range rules {
		if r.match(id) {
			return r.cat
		}
	}
	return Other
}

// =============================================================================
// Colors
// =============================================================================

// categoryColors is the fixed display color lookup.
var categoryColors = [...]string{
	Signaling:            "#1f77b4",
	TranscriptionFactors: "#ff7f0e",
	Receptors:            "#2ca02c",
	Immune:               "#d62728",
	Cancer:               "#9467bd",
	Ribosomal:            "#8c564b",
	CellCycle:            "#e377c2",
	Other:                "#7f7f7f",
}

// DimmedColor is the neutral color for nodes outside the highlighted category.
const DimmedColor = "#c8c8c8"

// ColorOf returns the fixed display color for a category.
func ColorOf(c Category) string {
	if c < 0 || int(c) >= len(categoryColors) {
		return categoryColors[Other]
	}
	return categoryColors[c]
}

// DisplayColor returns the rendered color for a node of category c under the
// given highlight. When highlight is HighlightAll, every category keeps its
// own color; otherwise non-highlighted categories render dimmed. Highlighting
// affects presentation only, never classification.
func DisplayColor(c, highlight Category) string {
	if highlight == HighlightAll || c == highlight {
		return ColorOf(c)
	}
	return DimmedColor
}
