package transfer

// AuditEntry is the recorder's input. UserID of zero means the action
// was taken without a resolved identity.
type AuditEntry struct {
	UserID    int64
	Action    string
	Resource  string
	Details   map[string]any
	IPAddress string
}
