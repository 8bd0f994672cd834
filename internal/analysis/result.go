package analysis

import "strings"

// Prediction values reported by the PRISM service, upper-cased on ingest.
const (
	PredictionSafe       = "SAFE"
	PredictionSuspicious = "SUSPICIOUS"
	PredictionScam       = "SCAM"
)

// Submission sources echoed back by the service.
const (
	SourceText  = "text"
	SourceImage = "image"
)

// LanguageUnknown is the sentinel code the service uses when detection failed.
const LanguageUnknown = "unknown"

// Confidence carries the per-class probabilities as percentages. The two
// values are reported independently and are not guaranteed to sum to 100.
type Confidence struct {
	Safe float64 `json:"safe"`
	Scam float64 `json:"scam"`
}

// Stats summarizes the analyzed message.
type Stats struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
	URLs       int `json:"urls"`
	Phones     int `json:"phones"`
}

// Indicators are the named boolean signals contributing to the verdict.
type Indicators struct {
	Urgency             bool `json:"has_urgency"`
	FinancialTerms      bool `json:"has_financial_terms"`
	ActionRequired      bool `json:"has_action_required"`
	Threats             bool `json:"has_threats"`
	PersonalInfoRequest bool `json:"requests_personal_info"`
	ContainsURLs        bool `json:"contains_urls"`
}

// URLScan is a per-URL reputation sub-result.
type URLScan struct {
	URL       string   `json:"url"`
	RiskLevel string   `json:"risk_level"`
	RiskScore int      `json:"risk_score"`
	Warnings  []string `json:"warnings"`
}

// Risk levels used by URL scans and history entries.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// OCRMetadata describes the OCR pass that preceded an image analysis.
type OCRMetadata struct {
	WordsDetected     int      `json:"words_detected"`
	AverageConfidence float64  `json:"average_confidence"`
	LanguagesChecked  []string `json:"languages_checked"`
}

// Result is the normalized analysis response for one submission. Optional
// fields default to empty rather than nil so downstream projection never has
// to branch on missing slices.
type Result struct {
	Prediction         string       `json:"prediction"`
	RiskScore          int          `json:"risk_score"`
	Confidence         Confidence   `json:"confidence"`
	Language           string       `json:"language"`
	LanguageCode       string       `json:"language_code"`
	Source             string       `json:"source"`
	Stats              Stats        `json:"stats"`
	Explanation        string       `json:"explanation"`
	Indicators         Indicators   `json:"indicators"`
	SuspiciousKeywords []string     `json:"suspicious_keywords"`
	URLsFound          []string     `json:"urls_found"`
	PhoneNumbersFound  []string     `json:"phone_numbers_found"`
	URLScans           []URLScan    `json:"url_scans"`
	ExtractedText      string       `json:"extracted_text"`
	OCRMetadata        *OCRMetadata `json:"ocr_metadata"`
}

// HistoryEntry is one row of the recent-scans feed, newest first on the wire.
type HistoryEntry struct {
	Language     string `json:"language"`
	LanguageCode string `json:"language_code"`
	RiskLevel    string `json:"risk_level"`
	Source       string `json:"source"`
	Timestamp    string `json:"timestamp"`
}

func (r *Result) normalize() {
	r.Prediction = strings.ToUpper(strings.TrimSpace(r.Prediction))
	r.RiskScore = ClampScore(r.RiskScore)
	if strings.TrimSpace(r.LanguageCode) == "" {
		r.LanguageCode = LanguageUnknown
	}
	if r.SuspiciousKeywords == nil {
		r.SuspiciousKeywords = []string{}
	}
	if r.URLsFound == nil {
		r.URLsFound = []string{}
	}
	if r.PhoneNumbersFound == nil {
		r.PhoneNumbersFound = []string{}
	}
	for i := range r.URLScans {
		r.URLScans[i].RiskLevel = strings.ToUpper(strings.TrimSpace(r.URLScans[i].RiskLevel))
		r.URLScans[i].RiskScore = ClampScore(r.URLScans[i].RiskScore)
		if r.URLScans[i].Warnings == nil {
			r.URLScans[i].Warnings = []string{}
		}
	}
	if r.OCRMetadata != nil && r.OCRMetadata.LanguagesChecked == nil {
		r.OCRMetadata.LanguagesChecked = []string{}
	}
}

// ClampScore forces a wire risk score into the displayable [0,100] range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
