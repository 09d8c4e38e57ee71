// internal/workers/triage/check-van-compatibility/models.go
package checkvancompatibility

import "salesops-workers/internal/triage"

type Input struct {
	Van      string `json:"van,omitempty"`
	Terminal string `json:"terminal,omitempty"`
}

// Output feeds the VAN and terminal pickers on the compatibility step.
type Output struct {
	CompatibleVans     []string             `json:"compatibleVans"`
	IncompatibleVans   []string             `json:"incompatibleVans"`
	VanCompatible      bool                 `json:"vanCompatible"`
	TerminalCompatible bool                 `json:"terminalCompatible"`
	Compatibility      triage.Compatibility `json:"compatibility"`
}
