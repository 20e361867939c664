package combat

// Event is a single notification payload delivered to an actor's sink. The
// top-level key names the event kind, matching the client wire protocol:
// joined_combat, combat_info, left_combat, skill_result, combat_finish,
// status.
type Event map[string]interface{}

// ActorInfo is one combatant's entry in an appearance snapshot.
type ActorInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Team      string `json:"team"`
	MaxHealth int    `json:"max_hp"`
	Health    int    `json:"hp"`
	Icon      string `json:"icon,omitempty"`
}

// Appearance is the read-only snapshot of a combat session, sent on join
// and served to re-sync requests.
type Appearance struct {
	Desc       string      `json:"desc"`
	Timeout    int         `json:"timeout"`
	Characters []ActorInfo `json:"characters"`
}

func eventJoined() Event { return Event{"joined_combat": true} }

func eventLeft() Event { return Event{"left_combat": true} }

func eventInfo(a Appearance) Event { return Event{"combat_info": a} }

func eventSkillResult(result interface{}) Event {
	return Event{"skill_result": result}
}

func eventFinish(outcome string) Event {
	return Event{"combat_finish": map[string]bool{outcome: true}}
}
