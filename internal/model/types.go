package model

// State classifies current life load.
type State string

const (
	StateNormal     State = "NORMAL"
	StateStressed   State = "STRESSED"
	StateOverloaded State = "OVERLOADED"
)

// StateRank maps states to a comparable integer for monotonic risk ordering.
var StateRank = map[State]int{
	StateNormal:     0,
	StateStressed:   1,
	StateOverloaded: 2,
}

// Permission is a downstream capability grant.
type Permission string

const (
	Allowed Permission = "ALLOWED"
	Denied  Permission = "DENIED"
)

// Mode is the authority operating mode.
type Mode string

const (
	ModeNormal      Mode = "NORMAL"
	ModeContainment Mode = "CONTAINMENT"
	ModeRecovery    Mode = "RECOVERY"
)

// ValidState reports whether s is one of the three known states.
func ValidState(s State) bool {
	switch s {
	case StateNormal, StateStressed, StateOverloaded:
		return true
	default:
		return false
	}
}

// ValidPermission reports whether p is a known permission value.
func ValidPermission(p Permission) bool {
	return p == Allowed || p == Denied
}

// ValidMode reports whether m is a known mode value.
func ValidMode(m Mode) bool {
	switch m {
	case ModeNormal, ModeContainment, ModeRecovery:
		return true
	default:
		return false
	}
}

// StateInputs are the three raw load signals for one evaluation.
// Constructed fresh per call and never mutated.
type StateInputs struct {
	FixedDeadlines14d     int   `json:"fixed_deadlines_14d" yaml:"fixed_deadlines_14d"`
	ActiveHighLoadDomains int   `json:"active_high_load_domains" yaml:"active_high_load_domains"`
	EnergyScoresLast3Days []int `json:"energy_scores_last_3_days" yaml:"energy_scores_last_3_days"`
}

// StateResult is the output of state evaluation.
type StateResult struct {
	State         State    `json:"state"`
	Explanation   string   `json:"explanation"`
	ConditionsMet []string `json:"conditions_met"`
}

// RuleResult carries the downgrade rules active for a state.
type RuleResult struct {
	State       State    `json:"state"`
	ActiveRules []string `json:"active_rules"`
}

// GlobalAuthority is the single source of truth for downstream permission.
// Execution is DENIED unconditionally in this system phase — it is a
// standing policy, never a configuration lookup.
type GlobalAuthority struct {
	Planning    Permission `json:"planning"`
	Execution   Permission `json:"execution"`
	Mode        Mode       `json:"mode"`
	State       State      `json:"state"`
	ActiveRules []string   `json:"active_rules"`
}

// RecoveryResult is the output of the independent recovery check.
type RecoveryResult struct {
	CanRecover         bool     `json:"can_recover"`
	Explanation        string   `json:"explanation"`
	BlockingConditions []string `json:"blocking_conditions"`
}
