package build

// Outcome of one variant iteration.
type VariantStatus string

const (
	StatusSucceeded VariantStatus = "succeeded"
	StatusFailed    VariantStatus = "failed"
	StatusSkipped   VariantStatus = "skipped" // Not attempted: excluded by config or after a fail-fast abort.
)

// Per-variant result, reported after the loop completes or aborts.
type VariantResult struct {
	Tag    string        // Variant ABI tag.
	Status VariantStatus // Final status.
	Wheel  string        // Collected wheel filename, when succeeded.
	Err    error         // Failure cause, when failed.
}
