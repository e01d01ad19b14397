package repository

// SampleType identifies a built-in sample dataset profile.
type SampleType string

const (
	SampleFinance    SampleType = "finance"
	SampleSales      SampleType = "sales"
	SampleStartup    SampleType = "startup"
	SampleOperations SampleType = "operations"
)

// SampleTypes lists the supported sample profiles in display order.
func SampleTypes() []SampleType {
	return []SampleType{SampleFinance, SampleSales, SampleStartup, SampleOperations}
}

// IsValidSampleType returns true if st is a supported sample profile.
func IsValidSampleType(st SampleType) bool {
	switch st {
	case SampleFinance, SampleSales, SampleStartup, SampleOperations:
		return true
	default:
		return false
	}
}

// DefaultSampleType returns the default sample profile.
func DefaultSampleType() SampleType { return SampleFinance }

// NormalizeSampleType converts raw string to a valid sample type (or default).
func NormalizeSampleType(s string) SampleType {
	if s == "" {
		return DefaultSampleType()
	}
	st := SampleType(s)
	if IsValidSampleType(st) {
		return st
	}
	return DefaultSampleType()
}
