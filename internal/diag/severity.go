package diag

// Severity ranks how serious a diagnostic is. Only SevError makes an
// expansion unit fail.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	// SevError marks a diagnostic that fails its whole expansion unit.
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
