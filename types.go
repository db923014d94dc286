package schemaful

// NumberMode dictates how numbers are represented in the output.
type NumberMode int

const (
	NumberJSONNumber NumberMode = iota // Preserve the literal as json.Number.
	NumberFloat64                      // float64 (with potential precision loss).
	NumberAuto                         // int64 for integral literals that fit, float64 otherwise.
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// ProjectOpt bundles parsing and projection options. Functions taking
// ...ProjectOpt use the last one supplied.
type ProjectOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	Numbers    NumberMode
	// Driver overrides the process-wide JSON driver for this parser.
	Driver JSONDriver
	// Logger receives traces of frame expansion and duplicate-key warnings.
	Logger Logger
}

func lastOpt(opts []ProjectOpt) ProjectOpt {
	if len(opts) == 0 {
		return ProjectOpt{}
	}
	return opts[len(opts)-1]
}
