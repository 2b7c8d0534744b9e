package packageassembly

// State of a single packaging run.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateTreeBuilt
	StateFilterBuilt
	StateMetadataBuilt
	StateWritten
	StateSourceRemoved
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:          "Idle",
	StateValidating:    "Validating",
	StateTreeBuilt:     "TreeBuilt",
	StateFilterBuilt:   "FilterBuilt",
	StateMetadataBuilt: "MetadataBuilt",
	StateWritten:       "Written",
	StateSourceRemoved: "SourceRemoved",
	StateDone:          "Done",
	StateFailed:        "Failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}
