package secondary

import "context"

// LedgerFileStore defines the secondary port for whole-ledger files.
type LedgerFileStore interface {
	// Read parses the ledger file at path.
	Read(ctx context.Context, path string) (*LedgerSnapshot, error)

	// Write serializes the snapshot to path, replacing any existing file.
	Write(ctx context.Context, path string, snapshot *LedgerSnapshot) error
}
