package bot

import "strings"

// CommandKind identifies one of the fixed command variants an inbound
// update can map to.
type CommandKind string

const (
	CmdStart         CommandKind = "start"
	CmdHelp          CommandKind = "help"
	CmdLink          CommandKind = "link"
	CmdProfile       CommandKind = "profile"
	CmdListNews      CommandKind = "news"
	CmdListNotices   CommandKind = "notices"
	CmdUnlink        CommandKind = "unlink"
	CmdUnlinkConfirm CommandKind = "unlink_confirm"
	CmdCancel        CommandKind = "cancel"
	CmdUnrecognized  CommandKind = "unrecognized"
)

// Command is one parsed inbound update. Arg carries the first
// whitespace-delimited argument for commands that take one (/vincular).
type Command struct {
	Kind CommandKind
	Arg  string
	Raw  string
}

// commandTokens maps the case-sensitive message vocabulary to command
// kinds. Tokens must match at the start of the message text.
var commandTokens = map[string]CommandKind{
	"/start":       CmdStart,
	"/ayuda":       CmdHelp,
	"/vincular":    CmdLink,
	"/perfil":      CmdProfile,
	"/noticias":    CmdListNews,
	"/avisos":      CmdListNotices,
	"/desvincular": CmdUnlink,
}

// callbackActions maps inline-button payloads to command kinds.
var callbackActions = map[string]CommandKind{
	"link_info":      CmdHelp,
	"show_news":      CmdListNews,
	"show_notices":   CmdListNotices,
	"unlink_confirm": CmdUnlinkConfirm,
	"cancel":         CmdCancel,
}

// parseText classifies free message text. Unknown tokens and plain chat
// degrade to CmdUnrecognized; they are answered with a help hint, never
// an error.
func parseText(text string) Command {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Command{Kind: CmdUnrecognized, Raw: text}
	}

	fields := strings.Fields(trimmed)
	token := fields[0]

	// Telegram clients may append the bot name: /vincular@vecindario_bot.
	if at := strings.IndexByte(token, '@'); at > 0 {
		token = token[:at]
	}

	kind, ok := commandTokens[token]
	if !ok {
		return Command{Kind: CmdUnrecognized, Raw: text}
	}

	cmd := Command{Kind: kind, Raw: text}
	if len(fields) > 1 {
		cmd.Arg = fields[1]
	}
	return cmd
}

// parseCallback classifies an inline-button payload.
func parseCallback(data string) Command {
	if kind, ok := callbackActions[data]; ok {
		return Command{Kind: kind, Raw: data}
	}
	return Command{Kind: CmdUnrecognized, Raw: data}
}
