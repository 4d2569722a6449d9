package core

import "time"

// KickCooldown is how long a kicked name is blocked from rejoining.
const KickCooldown = 20 * time.Second

// roster maps connection identity to display name. Names are not enforced
// unique; two students sharing a name collide on the same answer slot and
// kick hits the first of them in join order.
type roster struct {
	names map[string]string // client ID -> student name
	order []string          // client IDs in join order
}

func newRoster() *roster {
	return &roster{names: make(map[string]string)}
}

func (r *roster) add(clientID, name string) {
	if _, ok := r.names[clientID]; !ok {
		r.order = append(r.order, clientID)
	}
	r.names[clientID] = name
}

// remove deletes the entry for clientID. Removing an absent entry is a no-op.
func (r *roster) remove(clientID string) bool {
	if _, ok := r.names[clientID]; !ok {
		return false
	}
	delete(r.names, clientID)
	for i, id := range r.order {
		if id == clientID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// list snapshots the current student names in join order.
func (r *roster) list() []string {
	out := make([]string, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.names[id])
	}
	return out
}

// findByName returns the client ID of the first student with the given name
// in join order.
func (r *roster) findByName(name string) (string, bool) {
	for _, id := range r.order {
		if r.names[id] == name {
			return id, true
		}
	}
	return "", false
}

func (r *roster) name(clientID string) (string, bool) {
	name, ok := r.names[clientID]
	return name, ok
}

// cooldowns tracks kicked names. An entry blocks rejoin under the same name
// until KickCooldown has elapsed; entries are removed lazily when a join is
// accepted, not on every check.
type cooldowns map[string]time.Time

func (c cooldowns) active(name string, now time.Time) bool {
	kickedAt, ok := c[name]
	return ok && now.Sub(kickedAt) < KickCooldown
}
