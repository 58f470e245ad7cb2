package models

// DetectionMethod is the sum-typed classification method a verdict was
// reached by (spec §3, §4.4).
type DetectionMethod string

const (
	DetectionNone                    DetectionMethod = "no_vendor_detected"
	DetectionDefinitiveOIDMatch      DetectionMethod = "definitive_oid_match"
	DetectionDefinitivePatternMatch  DetectionMethod = "definitive_pattern_match"
	DetectionPatternMatch            DetectionMethod = "pattern_match"
)

// FingerprintOID describes one vendor-specific OID used for detection or
// smart field extraction.
type FingerprintOID struct {
	OID            string
	Name           string
	Priority       int
	Definitive     bool
	ExpectedValues []string // case-insensitive match against the returned value
}

// ExtractionRule is a regex applied to fact values to pull out model,
// serial, or firmware strings.
type ExtractionRule struct {
	Regex        string
	CaptureGroup int
	DeviceTypes  []string // empty means "applies to any device type"
}

// DeviceTypeRule scores a candidate device type against the fact haystack.
type DeviceTypeRule struct {
	DefinitivePatterns []string
	MandatoryPatterns  []string
	OptionalPatterns   []string
	Priority           int
}

// VendorRule is one vendor's complete detection configuration.
type VendorRule struct {
	EnterpriseOID      string
	DeviceTypes        []string
	FingerprintOIDs    []FingerprintOID
	DefinitivePatterns []string
	ExclusionPatterns  []string
	DeviceTypeRules    map[string]DeviceTypeRule
	ExtractionRules    map[string][]ExtractionRule // field -> rules, field in {model, serial, firmware}
}

// FingerprintRules is the full bundle loaded from YAML (spec §3).
type FingerprintRules struct {
	Vendors       map[string]VendorRule
	CommonOIDs    map[string]string
	PriorityOrder []string // detection-rules.priority-order
}

// Verdict is the classification result for one device (spec §3).
type Verdict struct {
	Vendor         string
	DeviceType     string
	Model          string
	SerialNumber   string
	OSVersion      string
	Confidence     int
	Method         DetectionMethod
	MatchedOIDs    []string
	MatchedPatterns []string
}

// EmptyVerdict is the canonical "nothing identified" result (spec §3:
// vendor="", confidence in 0..30).
func EmptyVerdict() Verdict {
	return Verdict{
		Method:     DetectionNone,
		Confidence: 30,
	}
}
