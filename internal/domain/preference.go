package domain

import "strings"

// NotificationChannel is a delivery medium a user can opt into.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelChat  NotificationChannel = "chat"
)

func (c NotificationChannel) IsValid() bool {
	return c == ChannelEmail || c == ChannelChat
}

// channelOrder fixes the serialization order of known channels.
var channelOrder = []NotificationChannel{ChannelEmail, ChannelChat}

// NotificationPreference is the set of channels a user has opted into,
// stored as a comma-joined string (e.g. "email,chat"). The empty value
// means no channels enabled: absence fails safe, it never means "all".
type NotificationPreference string

// Channels returns the enabled channels in canonical order, deduplicated.
// Unknown tags are dropped.
func (p NotificationPreference) Channels() []NotificationChannel {
	if p == "" {
		return nil
	}
	present := make(map[NotificationChannel]bool)
	for _, part := range strings.Split(string(p), ",") {
		ch := NotificationChannel(strings.TrimSpace(part))
		if ch.IsValid() {
			present[ch] = true
		}
	}
	var out []NotificationChannel
	for _, ch := range channelOrder {
		if present[ch] {
			out = append(out, ch)
		}
	}
	return out
}

// Wants reports whether the channel is enabled. An empty preference
// returns false for every channel.
func (p NotificationPreference) Wants(ch NotificationChannel) bool {
	for _, c := range p.Channels() {
		if c == ch {
			return true
		}
	}
	return false
}

// With returns the preference with the channel added. Adding an
// already-present channel is a no-op.
func (p NotificationPreference) With(ch NotificationChannel) NotificationPreference {
	if !ch.IsValid() || p.Wants(ch) {
		return join(p.Channels())
	}
	return join(append(p.Channels(), ch))
}

// Without returns the preference with the channel removed. Removing an
// absent channel is a no-op.
func (p NotificationPreference) Without(ch NotificationChannel) NotificationPreference {
	var kept []NotificationChannel
	for _, c := range p.Channels() {
		if c != ch {
			kept = append(kept, c)
		}
	}
	return join(kept)
}

// Label renders the preference for profile replies, e.g. "Email, Chat".
func (p NotificationPreference) Label() string {
	channels := p.Channels()
	if len(channels) == 0 {
		return "Sin notificaciones"
	}
	names := make([]string, len(channels))
	for i, ch := range channels {
		switch ch {
		case ChannelEmail:
			names[i] = "Email"
		case ChannelChat:
			names[i] = "Chat"
		}
	}
	return strings.Join(names, ", ")
}

func join(channels []NotificationChannel) NotificationPreference {
	// Re-sort into canonical order so the stored value is deterministic.
	present := make(map[NotificationChannel]bool, len(channels))
	for _, ch := range channels {
		present[ch] = true
	}
	var parts []string
	for _, ch := range channelOrder {
		if present[ch] {
			parts = append(parts, string(ch))
		}
	}
	return NotificationPreference(strings.Join(parts, ","))
}
