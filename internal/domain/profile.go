package domain

// Profile is the application-level identity layered on the identity
// provider's account. Authorization reads it but never mutates it.
type Profile struct {
	UserID  string `json:"id"`
	Nome    string `json:"nome"`
	SetorID int    `json:"setor_id"`
	IsAdmin bool   `json:"is_admin"`
}

// Scope describes the row visibility granted to a caller for reads.
type Scope struct {
	// All grants visibility over every ticket (administrators).
	All bool
	// SetorID restricts visibility to one sector when All is false.
	SetorID int
}

// ScopeAll returns the global administrator scope.
func ScopeAll() Scope { return Scope{All: true} }

// ScopeSector returns a sector-restricted scope.
func ScopeSector(setorID int) Scope { return Scope{SetorID: setorID} }
