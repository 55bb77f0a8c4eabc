package tracelog

import "github.com/scylladb/go-set/strset"

// systemNoise is the fixed set of short-lived shell and coreutils helpers
// whose events rarely carry signal in a job report. The filter is enforced
// in Parse and nowhere else.
var systemNoise = strset.New(
	"sh", "bash", "dash", "zsh",
	"awk", "basename", "cat", "chmod", "chown", "cp", "cut", "date",
	"dirname", "env", "expr", "find", "grep", "egrep", "gzip", "head",
	"hostname", "id", "ln", "ls", "mkdir", "mktemp", "mv", "ps",
	"readlink", "rm", "rmdir", "sed", "seq", "sleep", "sort", "stat",
	"tail", "tar", "tee", "touch", "tr", "true", "uname", "uniq", "wc",
	"which", "whoami", "xargs",
)

// IsSystemNoise reports whether name belongs to the suppressed helper set.
func IsSystemNoise(name string) bool {
	return systemNoise.Has(name)
}
