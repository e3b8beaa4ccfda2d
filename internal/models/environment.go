package models

import "time"

// EnvState - result of inspecting the virtual environment directory.
type EnvState int

const (
	EnvAbsent EnvState = iota
	EnvValid
	EnvCorrupt
)

func (s EnvState) String() string {
	switch s {
	case EnvAbsent:
		return "absent"
	case EnvValid:
		return "valid"
	case EnvCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// Inspection - what the inspector found and why.
type Inspection struct {
	State  EnvState
	Dir    string
	Python string // Python is the venv interpreter path, present or not.
	Reason string // Reason explains a corrupt state.
}

// ProvisionStatus - progress marker stored in the ledger.
type ProvisionStatus string

const (
	ProvisionStarted  ProvisionStatus = "started"
	ProvisionComplete ProvisionStatus = "complete"
)

// ProvisionRecord - the last provisioning run stored in the database.
type ProvisionRecord struct {
	EnvDir           string
	RequirementsHash string
	Status           ProvisionStatus
	UpdatedAt        time.Time
}
