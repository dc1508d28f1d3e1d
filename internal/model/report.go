package model

import "time"

// Flow identifies which reporting flow a version pair belongs to. The flow
// only gates which sections the review renders; it never changes what the
// diff engine computes.
type Flow string

const (
	FlowSFO Flow = "SFO" // single facility operation
	FlowLFO Flow = "LFO" // linear facilities operation
	FlowEIO Flow = "EIO" // electricity import operation
)

// RegistrationPurpose mirrors the operation's registration purpose in the
// upstream registration system.
type RegistrationPurpose string

const (
	PurposeOBPSRegulated     RegistrationPurpose = "OBPS Regulated Operation"
	PurposeReporting         RegistrationPurpose = "Reporting Operation"
	PurposeNewEntrant        RegistrationPurpose = "New Entrant Operation"
	PurposeElectricityImport RegistrationPurpose = "Electricity Import Operation"
)

// ReportVersion is the metadata envelope around one stored version of a
// report document, as returned by the upstream reporting backend.
type ReportVersion struct {
	ReportID  string         `json:"report_id"`
	VersionID string         `json:"version_id"`
	Document  map[string]any `json:"document"`
	CreatedAt time.Time      `json:"created_at"`
}
