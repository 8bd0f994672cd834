package report

// RegionID names a view region produced by projection. Regions are always
// emitted in display order and fully replaced on every projection, never
// appended to.
type RegionID string

const (
	RegionExtractedText RegionID = "extracted_text"
	RegionBadge         RegionID = "badge"
	RegionGauge         RegionID = "gauge"
	RegionConfidence    RegionID = "confidence"
	RegionLanguage      RegionID = "language"
	RegionStats         RegionID = "stats"
	RegionExplanation   RegionID = "explanation"
	RegionIndicators    RegionID = "indicators"
	RegionURLScans      RegionID = "url_scans"
	RegionKeywords      RegionID = "keywords"
	RegionURLs          RegionID = "urls"
	RegionPhones        RegionID = "phones"
)

// Region is one named block of the rendered report.
type Region struct {
	ID      RegionID
	Title   string
	Visible bool
	Content string
}
