package types

// ExtractionBackend identifies the PDF-to-text tool.
type ExtractionBackend string

const (
	BackendNative    ExtractionBackend = "native"
	BackendPdftotext ExtractionBackend = "pdftotext"
	BackendAuto      ExtractionBackend = "auto"
)

// SegmentConfig holds the rules used to clean page text and detect headings.
type SegmentConfig struct {
	// HeaderPrefixes are line prefixes treated as running page headers
	// (e.g. "STI College"). Matching lines are dropped during cleaning.
	HeaderPrefixes []string `json:"header_prefixes" yaml:"header_prefixes"`

	// Headings is the ordered list of heading patterns. Each is a regular
	// expression matched against the start of a page; the first capture
	// group (or the whole match) names the section. Earlier patterns win.
	Headings []string `json:"headings" yaml:"headings"`

	// DefaultSection names the section that collects pages seen before any
	// heading (default "Introduction").
	DefaultSection string `json:"default_section" yaml:"default_section"`
}

// SummaryConfig holds the fixed lists printed in the project summary.
type SummaryConfig struct {
	// Title is the project title used in banners (e.g. "TINDA-GO").
	Title string `json:"title" yaml:"title"`

	// TechStack lists the technologies reported under TECHNICAL STACK IDENTIFIED.
	TechStack []string `json:"tech_stack" yaml:"tech_stack"`

	// KeyFeatures lists the features reported under KEY FEATURES.
	KeyFeatures []string `json:"key_features" yaml:"key_features"`
}

// OutputConfig holds settings for the files written after extraction.
type OutputConfig struct {
	// OutputDir is the directory that receives all extracted files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Prefix starts every output filename (e.g. "tindago").
	Prefix string `json:"prefix" yaml:"prefix"`

	// Title is the document title used in file banners.
	Title string `json:"title" yaml:"title"`

	// Subtitle follows the title on the full-text banner
	// (e.g. "SARI-SARI STORE MOBILE APPLICATION").
	Subtitle string `json:"subtitle" yaml:"subtitle"`
}

// ExtractionConfig groups every setting used by the extract command.
type ExtractionConfig struct {
	// InputPath is the PDF to extract.
	InputPath string `json:"input_path" yaml:"input_path"`

	// Backend selects the extraction tool: native, pdftotext, or auto.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// PdftotextFallback lets the auto backend retry with pdftotext when the
	// native extractor fails.
	PdftotextFallback bool `json:"pdftotext_fallback" yaml:"pdftotext_fallback"`

	Segment SegmentConfig `json:"segment" yaml:"segment"`
	Summary SummaryConfig `json:"summary" yaml:"summary"`
	Output  OutputConfig  `json:"output" yaml:"output"`
}

// IndexConfig holds settings for the section index.
type IndexConfig struct {
	// OutputDir is the extraction output directory. Manifests are read from
	// it and the database lives under its index/ subdirectory.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
