package report

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// ComputeRunID derives a stable short identifier for a run from its
// inputs and start time. Fields are joined with a null byte so that no
// concatenation of different inputs can collide.
func ComputeRunID(repo, targetPath, cmdline string, started time.Time) string {
	data := strings.Join([]string{
		repo,
		targetPath,
		cmdline,
		started.UTC().Format(time.RFC3339Nano),
	}, "\x00")

	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])[:12]
}
