package bot

// User-facing reply texts. HTML parse mode; keep tags to <b> and <i> so
// older clients render them consistently.
const (
	msgWelcome = "👋 ¡Hola! Soy el asistente de tu comunidad.\n\n" +
		"Para recibir avisos y noticias, vincula tu cuenta con:\n" +
		"<b>/vincular TU_DNI</b>\n\n" +
		"Escribe /ayuda para ver todos los comandos."

	msgHelp = "<b>Comandos disponibles</b>\n\n" +
		"/vincular &lt;DNI&gt; — vincular tu cuenta de residente\n" +
		"/perfil — ver tu perfil y preferencias\n" +
		"/noticias — últimas noticias de la comunidad\n" +
		"/avisos — avisos activos\n" +
		"/desvincular — dejar de recibir notificaciones\n" +
		"/ayuda — esta ayuda"

	msgLinkUsage = "Indica tu DNI después del comando, por ejemplo:\n<b>/vincular 12345678X</b>"

	// Covers no-match and ineligible alike so the reply cannot be used
	// to probe which identifiers exist.
	msgLinkNotFound = "No se encontró ninguna cuenta activa con ese identificador.\n" +
		"Comprueba el DNI o contacta con administración."

	msgNotLinked = "Tu chat no está vinculado a ninguna cuenta.\n" +
		"Usa <b>/vincular TU_DNI</b> para vincularlo."

	msgUnlinkPrompt = "¿Seguro que quieres desvincular tu cuenta?\n" +
		"Dejarás de recibir avisos y noticias por este chat."

	msgUnlinkDone = "✅ Cuenta desvinculada. Ya no recibirás notificaciones por este chat."

	msgCancelled = "Operación cancelada."

	msgUnrecognized = "No reconozco ese comando. Escribe /ayuda para ver los disponibles."

	msgGenericFailure = "⚠️ Algo ha fallado, inténtalo de nuevo más tarde."

	msgNoNews = "No hay noticias publicadas por ahora."

	msgNoNotices = "No hay avisos activos por ahora."
)
