package core

import "github.com/huangsam/cybercompass/schema"

// ReflexHeader is the banner shown above the drill.
const ReflexHeader = "REACTION_TIME_VALIDATION // NIST_800-53_SYNC"

// reflexWeight is credited to a threat's category on a correct action.
const reflexWeight = 0.1

// reflexCompletionBonus is credited once when the drill is completed.
var reflexCompletionBonus = map[string]float64{
	string(schema.ProtectAndDefend):  0.15,
	string(schema.CollectAndOperate): 0.15,
}

// Threat is one item of the reflex drill.
type Threat struct {
	Text     string              `json:"text"`
	Action   schema.ReflexAction `json:"-"`
	Category schema.Category     `json:"category"`
}

// ReflexThreats is the fixed drill sequence.
var ReflexThreats = []Threat{
	{"DETECTED: MFA_BYPASS req=0x7f", schema.NeutralizeAction, schema.ProtectAndDefend},
	{"DETECTED: DORMANT_USER_LOGIN uid=admin", schema.NeutralizeAction, schema.CollectAndOperate},
	{"DETECTED: Unauthorized SMB/445 Egress", schema.DropAction, schema.ProtectAndDefend},
	{"DETECTED: Unauthorized Telnet/23 Egress", schema.DropAction, schema.OperateAndMaintain},
	{"DETECTED: SHA256 MISMATCH /usr/bin/sudo", schema.FreezeAction, schema.SecurelyProvision},
	{"DETECTED: Unauthorized registry shift HKLM\\System", schema.FreezeAction, schema.Investigate},
	{"DETECTED: PHISH_C2 beacon outbound 443", schema.DropAction, schema.Analyze},
	{"DETECTED: Suspicious lateral movement SMB", schema.NeutralizeAction, schema.ProtectAndDefend},
	{"DETECTED: Policy violation: unsigned script execution", schema.FreezeAction, schema.OverseeAndGovern},
	{"DETECTED: Data exfil over DNS tunnel", schema.DropAction, schema.CollectAndOperate},
}

// ReflexDrill walks the threat sequence. A wrong action neither scores nor
// advances; the player retries the same threat.
type ReflexDrill struct {
	index    int
	misses   int
	complete bool
}

// Current returns the threat awaiting an action, if any.
func (d *ReflexDrill) Current() (Threat, bool) {
	if d.index >= len(ReflexThreats) {
		return Threat{}, false
	}
	return ReflexThreats[d.index], true
}

// Act applies an action to the current threat and reports whether it was correct.
func (d *ReflexDrill) Act(s *ScoreState, action schema.ReflexAction) bool {
	return d.ActScaled(s, action, 1)
}

// ActScaled is Act with the threat weight multiplied by factor.
func (d *ReflexDrill) ActScaled(s *ScoreState, action schema.ReflexAction, factor float64) bool {
	threat, ok := d.Current()
	if !ok {
		return false
	}
	if threat.Action != action {
		d.misses++
		return false
	}
	s.AddScaledContribution(map[string]float64{string(threat.Category): reflexWeight}, factor)
	d.index++
	return true
}

// Cleared reports whether every threat has been handled.
func (d *ReflexDrill) Cleared() bool {
	return d.index >= len(ReflexThreats)
}

// Complete applies the completion bonus once all threats are cleared.
// It returns false when the drill is not cleared yet or was already completed.
func (d *ReflexDrill) Complete(s *ScoreState) bool {
	if !d.Cleared() || d.complete {
		return false
	}
	s.AddContribution(reflexCompletionBonus)
	d.complete = true
	return true
}

// Completed reports whether the completion bonus has been applied.
func (d *ReflexDrill) Completed() bool {
	return d.complete
}

// Progress returns the number of cleared threats, the total, and wrong actions so far.
func (d *ReflexDrill) Progress() (cleared, total, misses int) {
	return d.index, len(ReflexThreats), d.misses
}
