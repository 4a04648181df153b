package domain

import "testing"

func TestPreferenceWith(t *testing.T) {
	tests := []struct {
		name string
		pref NotificationPreference
		ch   NotificationChannel
		want NotificationPreference
	}{
		{"add to empty", "", ChannelChat, "chat"},
		{"add second channel", "email", ChannelChat, "email,chat"},
		{"add already present", "email,chat", ChannelChat, "email,chat"},
		{"canonical order regardless of input order", "chat", ChannelEmail, "email,chat"},
		{"unknown channel dropped", "email", NotificationChannel("fax"), "email"},
		{"dedups stored duplicates", "chat,chat", ChannelEmail, "email,chat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pref.With(tt.ch); got != tt.want {
				t.Errorf("With(%q, %q) = %q, want %q", tt.pref, tt.ch, got, tt.want)
			}
		})
	}
}

func TestPreferenceWithIdempotent(t *testing.T) {
	for _, ch := range []NotificationChannel{ChannelEmail, ChannelChat} {
		for _, p := range []NotificationPreference{"", "email", "chat", "email,chat"} {
			once := p.With(ch)
			twice := once.With(ch)
			if once != twice {
				t.Errorf("With not idempotent: %q + %q: %q != %q", p, ch, once, twice)
			}
			if !once.Wants(ch) {
				t.Errorf("Wants(%q) false after With(%q, %q)", ch, p, ch)
			}
		}
	}
}

func TestPreferenceWithout(t *testing.T) {
	tests := []struct {
		name string
		pref NotificationPreference
		ch   NotificationChannel
		want NotificationPreference
	}{
		{"remove present", "email,chat", ChannelChat, "email"},
		{"remove absent is no-op", "email", ChannelChat, "email"},
		{"remove from empty", "", ChannelChat, ""},
		{"remove last channel", "chat", ChannelChat, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pref.Without(tt.ch)
			if got != tt.want {
				t.Errorf("Without(%q, %q) = %q, want %q", tt.pref, tt.ch, got, tt.want)
			}
			if again := got.Without(tt.ch); again != got {
				t.Errorf("Without not idempotent: %q != %q", again, got)
			}
		})
	}
}

func TestPreferenceWantsFailSafe(t *testing.T) {
	// An empty or absent preference enables nothing.
	var empty NotificationPreference
	if empty.Wants(ChannelEmail) || empty.Wants(ChannelChat) {
		t.Error("empty preference must not want any channel")
	}
	if garbage := NotificationPreference("   ,,"); garbage.Wants(ChannelChat) {
		t.Error("garbage preference must not want any channel")
	}
}

func TestPreferenceRoundTrip(t *testing.T) {
	// The example from the linking flow: email user links chat, later unlinks.
	p := NotificationPreference("email")
	linked := p.With(ChannelChat)
	if linked != "email,chat" {
		t.Fatalf("linked = %q, want %q", linked, "email,chat")
	}
	unlinked := linked.Without(ChannelChat)
	if unlinked != "email" {
		t.Fatalf("unlinked = %q, want %q", unlinked, "email")
	}
}

func TestPreferenceLabel(t *testing.T) {
	tests := []struct {
		pref NotificationPreference
		want string
	}{
		{"", "Sin notificaciones"},
		{"email", "Email"},
		{"email,chat", "Email, Chat"},
		{"chat", "Chat"},
	}

	for _, tt := range tests {
		if got := tt.pref.Label(); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.pref, got, tt.want)
		}
	}
}
