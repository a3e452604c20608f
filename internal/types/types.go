package types

// Algorithm identifies a detected cryptographic primitive family.
type Algorithm string

const (
	AlgoRSA  Algorithm = "RSA"
	AlgoECC  Algorithm = "ECC"
	AlgoDH   Algorithm = "DH"
	AlgoDSA  Algorithm = "DSA"
	AlgoAES  Algorithm = "AES"
	AlgoDES  Algorithm = "DES"
	AlgoSHA1 Algorithm = "SHA1"
	AlgoMD5  Algorithm = "MD5"
)

// RiskLabel is the ML-assigned risk class for a table record.
type RiskLabel string

const (
	LabelCritical RiskLabel = "Critical"
	LabelHigh     RiskLabel = "High"
	LabelMedium   RiskLabel = "Medium"
	LabelLow      RiskLabel = "Low"
	LabelInfo     RiskLabel = "Info"
)

// BucketUnmatched is the risk-distribution bucket for findings with no
// table match. It is a bucket name, not a RiskLabel.
const BucketUnmatched = "Unmatched"

// SystemType is the heuristically inferred deployment context of a finding.
type SystemType string

const (
	SystemWeb            SystemType = "web_service"
	SystemAPI            SystemType = "api_gateway"
	SystemDatabase       SystemType = "database"
	SystemEmbedded       SystemType = "embedded"
	SystemInfrastructure SystemType = "infrastructure"
	SystemUnspecified    SystemType = "unspecified"
)

// Finding describes a detected use of a cryptographic primitive at a source
// location. KeySize is 0 when no size was captured and the algorithm has no
// conventional default.
type Finding struct {
	Path      string    `json:"file_path"`
	Line      int       `json:"line_number"`
	Algorithm Algorithm `json:"algorithm"`
	KeySize   int       `json:"key_size,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	Module    string    `json:"module,omitempty"`
	Snippet   string    `json:"raw_snippet"`
}

// MatchConfidence ranks how a finding was matched against the risk table.
type MatchConfidence int

const (
	// MatchExact: algorithm and key size matched a record exactly.
	MatchExact MatchConfidence = 0
	// MatchKeySizeRelaxed: nearest-key-size fallback was used.
	MatchKeySizeRelaxed MatchConfidence = 1
	// MatchAlgorithmOnly: no key size was captured; matched on algorithm alone.
	MatchAlgorithmOnly MatchConfidence = 2
	// MatchNone: no record for the algorithm.
	MatchNone MatchConfidence = 3
)

// EnrichedFinding pairs a Finding with its best-matching RiskRecord.
// Record is nil exactly when Confidence is MatchNone.
type EnrichedFinding struct {
	Finding
	Record     *RiskRecord     `json:"risk_record,omitempty"`
	Confidence MatchConfidence `json:"match_confidence"`
}

// CryptoConfig is the configuration a risk record was scored for.
type CryptoConfig struct {
	Algorithm  Algorithm  `json:"algorithm"`
	KeySize    int        `json:"key_size"`
	SystemType SystemType `json:"system_type,omitempty"`
}

// RiskAssessment holds the ML model outputs for one record.
type RiskAssessment struct {
	RiskScore         float64   `json:"risk_score"`
	MLRiskLabel       RiskLabel `json:"ml_risk_label"`
	MLConfidence      float64   `json:"ml_confidence,omitempty"`
	QuantumVulnerable bool      `json:"quantum_vulnerable"`
}

// Recommendation names the post-quantum replacement for a record.
type Recommendation struct {
	RecommendedPQC string `json:"recommended_pqc"`
}

// Migration describes the planning metadata attached to a record.
type Migration struct {
	Timeline            string `json:"timeline"`
	Complexity          string `json:"complexity,omitempty"`
	EstimatedEffortDays int    `json:"estimated_effort_days,omitempty"`
}

// RiskRecord is one precomputed entry of the ML risk table. Records are
// loaded once at startup and never mutated afterward.
type RiskRecord struct {
	ID             string             `json:"id"`
	PriorityRank   int                `json:"priority_rank"`
	PriorityScore  float64            `json:"priority_score,omitempty"`
	Config         CryptoConfig       `json:"current_config"`
	Assessment     RiskAssessment     `json:"risk_assessment"`
	Recommendation Recommendation     `json:"recommendation"`
	Migration      Migration          `json:"migration"`
	Explainability map[string]float64 `json:"explainability,omitempty"`
}

// Aggregate is the derived summary over a scan's enriched findings. It is
// recomputable from the finding list at any time.
type Aggregate struct {
	TotalFindings         int               `json:"total_findings"`
	RiskDistribution      map[string]int    `json:"risk_distribution"`
	AlgorithmDistribution map[string]int    `json:"algorithm_distribution"`
	TopPriorities         []EnrichedFinding `json:"top_priorities"`
	PQCRecommendations    map[string]int    `json:"pqc_recommendations"`
	MigrationTimelines    map[string]int    `json:"migration_timelines"`
	AverageRiskScore      float64           `json:"average_risk_score"`
}

// FileSkip records a file the walker or extractor passed over without
// aborting the scan.
type FileSkip struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ErrorKind classifies fatal and informational scan errors.
type ErrorKind string

const (
	ErrInvalidInput      ErrorKind = "invalid_input"
	ErrTimeout           ErrorKind = "timeout"
	ErrCancelled         ErrorKind = "cancelled"
	ErrPartialExtraction ErrorKind = "partial_extraction"
	ErrResourceExhausted ErrorKind = "resource_exhausted"
	ErrInternal          ErrorKind = "internal"
)
