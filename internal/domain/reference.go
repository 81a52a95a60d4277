package domain

// Sector is an organizational unit used to scope ticket visibility.
type Sector struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

// Status is a lifecycle label for tickets. States are opaque references;
// the gateway enforces no ordering between them.
type Status struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}
