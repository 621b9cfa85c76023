package observability

// PidStatus is the scheduler state of the serving process as reported by /healthz.
type PidStatus string

const (
	RUNNING PidStatus = "RUNNING"
	SLEEP   PidStatus = "SLEEP"
	STOP    PidStatus = "STOP"
	IDLE    PidStatus = "IDLE"
	ZOMBIE  PidStatus = "ZOMBIE"
	WAIT    PidStatus = "WAIT"
	LOCK    PidStatus = "LOCK"
	UNKNOWN PidStatus = "UNKNOWN"
)

// procStates covers the state letters found in /proc/<pid>/stat and ps(1).
var procStates = map[string]PidStatus{
	"R": RUNNING,
	"S": SLEEP,
	"D": WAIT,
	"W": WAIT,
	"T": STOP,
	"t": STOP,
	"I": IDLE,
	"Z": ZOMBIE,
	"L": LOCK,
}

// ToStatus converts a process state letter into a PidStatus.
// Letters it does not know, including "X" for a dead task, give UNKNOWN.
func ToStatus(letter string) PidStatus {
	if s, ok := procStates[letter]; ok {
		return s
	}
	return UNKNOWN
}
