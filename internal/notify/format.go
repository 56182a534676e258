package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/golazo-bot/golazo/internal/match"
)

// FormatEvent renders a detected event as a Telegram-HTML message. The
// texts follow the bot's original Spanish notification style.
func FormatEvent(ev match.Event) string {
	switch ev.Kind {
	case match.KindPreMatch:
		return formatPreMatch(ev)
	case match.KindKickOff:
		return formatKickOff(ev)
	case match.KindGoal:
		return formatGoal(ev)
	case match.KindYellowCard:
		return formatCard(ev, "🟨", "TARJETA AMARILLA")
	case match.KindRedCard:
		return formatCard(ev, "🟥", "TARJETA ROJA")
	case match.KindSubstitution:
		return formatSubstitution(ev)
	case match.KindHalfTime:
		return formatHalfTime(ev)
	case match.KindFullTime:
		return formatFullTime(ev)
	case match.KindScoreCorrection:
		return formatScoreCorrection(ev)
	case match.KindStatusChange:
		return formatStatusChange(ev)
	}
	// Unknown kinds still get a minimal notification rather than silence.
	return fmt.Sprintf("ℹ️ %s vs %s", esc(ev.Snapshot.Home.Name), esc(ev.Snapshot.Away.Name))
}

func esc(s string) string {
	return html.EscapeString(s)
}

// htmlTagReplacer removes the small set of tags the formatter emits.
var htmlTagReplacer = strings.NewReplacer("<b>", "", "</b>", "", "<i>", "", "</i>", "")

// StripHTML converts a formatted message back to plain text for channels
// without HTML support (tweets).
func StripHTML(s string) string {
	return html.UnescapeString(htmlTagReplacer.Replace(s))
}

func versus(snap match.Snapshot) string {
	return fmt.Sprintf("%s vs %s", esc(snap.Home.Name), esc(snap.Away.Name))
}

func scoreline(snap match.Snapshot) string {
	return fmt.Sprintf("%s %s %s", esc(snap.Home.Name), snap.Score(), esc(snap.Away.Name))
}

func formatPreMatch(ev match.Event) string {
	var msg strings.Builder
	msg.WriteString("🚨 <b>PARTIDO EN 1 HORA</b> 🚨\n\n")
	msg.WriteString(fmt.Sprintf("⚽️ %s\n", versus(ev.Snapshot)))
	if !ev.Snapshot.Kickoff.IsZero() {
		msg.WriteString(fmt.Sprintf("🕒 %s\n", ev.Snapshot.Kickoff.Format("15:04")))
	}
	if ev.Snapshot.Venue != "" {
		msg.WriteString(fmt.Sprintf("🏟️ %s\n", esc(ev.Snapshot.Venue)))
	}
	return msg.String()
}

func formatKickOff(ev match.Event) string {
	var msg strings.Builder
	msg.WriteString("🏆 <b>INICIA EL PARTIDO</b> 🏆\n\n")
	if ev.Snapshot.Competition != "" {
		line := esc(ev.Snapshot.Competition)
		if ev.Snapshot.Round != "" {
			line += " - " + esc(ev.Snapshot.Round)
		}
		msg.WriteString(fmt.Sprintf("🏆 %s\n", line))
	}
	msg.WriteString(fmt.Sprintf("⚽️ %s\n", versus(ev.Snapshot)))
	if ev.Snapshot.Venue != "" {
		msg.WriteString(fmt.Sprintf("🏟️ %s\n", esc(ev.Snapshot.Venue)))
	}
	return msg.String()
}

func formatGoal(ev match.Event) string {
	var msg strings.Builder
	msg.WriteString("⚽️ <b>¡GOOOOL!</b> ⚽️\n\n")
	if ev.Minute != "" {
		msg.WriteString(fmt.Sprintf("⏱️ Minuto: %s\n", esc(ev.Minute)))
	}
	team := esc(ev.Snapshot.TeamName(ev.Side))
	if ev.Player != "" {
		msg.WriteString(fmt.Sprintf("👤 %s (%s)\n", esc(ev.Player), team))
	} else {
		// The feed reported the score change without incident detail.
		msg.WriteString(fmt.Sprintf("⚽️ %s anota\n", team))
	}
	msg.WriteString(fmt.Sprintf("🏆 %s\n", scoreline(ev.Snapshot)))
	return msg.String()
}

func formatCard(ev match.Event, emoji, label string) string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("%s <b>%s</b> %s\n\n", emoji, label, emoji))
	if ev.Minute != "" {
		msg.WriteString(fmt.Sprintf("⏱️ Minuto: %s\n", esc(ev.Minute)))
	}
	player := ev.Player
	if player == "" {
		player = "Jugador desconocido"
	}
	msg.WriteString(fmt.Sprintf("👤 %s (%s)\n", esc(player), esc(ev.Snapshot.TeamName(ev.Side))))
	msg.WriteString(fmt.Sprintf("🏆 %s\n", versus(ev.Snapshot)))
	return msg.String()
}

func formatSubstitution(ev match.Event) string {
	var msg strings.Builder
	msg.WriteString("🔄 <b>CAMBIO</b> 🔄\n\n")
	if ev.Minute != "" {
		msg.WriteString(fmt.Sprintf("⏱️ Minuto: %s\n", esc(ev.Minute)))
	}
	msg.WriteString(fmt.Sprintf("👤 Sale: %s\n", esc(ev.Player)))
	msg.WriteString(fmt.Sprintf("👤 Entra: %s\n", esc(ev.PlayerIn)))
	msg.WriteString(fmt.Sprintf("🏆 Equipo: %s\n", esc(ev.Snapshot.TeamName(ev.Side))))
	return msg.String()
}

func formatHalfTime(ev match.Event) string {
	var msg strings.Builder
	msg.WriteString("⏱️ <b>MEDIO TIEMPO</b> ⏱️\n\n")
	msg.WriteString(fmt.Sprintf("⚽️ %s\n", scoreline(ev.Snapshot)))
	msg.WriteString(formatStats(ev.Snapshot))
	return msg.String()
}

func formatFullTime(ev match.Event) string {
	var msg strings.Builder
	msg.WriteString("🏁 <b>FINAL DEL PARTIDO</b> 🏁\n\n")
	msg.WriteString(fmt.Sprintf("⚽️ %s\n", scoreline(ev.Snapshot)))
	msg.WriteString(formatStats(ev.Snapshot))
	return msg.String()
}

// formatStats renders the statistics block used by half-time and full-time
// summaries. Empty when the feed provided no statistics.
func formatStats(snap match.Snapshot) string {
	if snap.Stats == nil {
		return ""
	}
	home := esc(snap.Home.Name)
	away := esc(snap.Away.Name)
	var msg strings.Builder
	msg.WriteString("\n📊 <b>Estadísticas:</b>\n")
	if snap.Stats.Possession != (match.StatPair{}) {
		msg.WriteString(fmt.Sprintf("Posesión: %s %s%% - %s%% %s\n",
			home, snap.Stats.Possession.Home, snap.Stats.Possession.Away, away))
	}
	if snap.Stats.ShotsOnTarget != (match.StatPair{}) {
		msg.WriteString(fmt.Sprintf("Tiros a puerta: %s %s - %s %s\n",
			home, snap.Stats.ShotsOnTarget.Home, snap.Stats.ShotsOnTarget.Away, away))
	}
	if snap.Stats.Corners != (match.StatPair{}) {
		msg.WriteString(fmt.Sprintf("Corners: %s %s - %s %s\n",
			home, snap.Stats.Corners.Home, snap.Stats.Corners.Away, away))
	}
	return msg.String()
}

func formatScoreCorrection(ev match.Event) string {
	var msg strings.Builder
	msg.WriteString("✏️ <b>CORRECCIÓN DE MARCADOR</b> ✏️\n\n")
	msg.WriteString(fmt.Sprintf("🏆 %s\n", scoreline(ev.Snapshot)))
	return msg.String()
}

func formatStatusChange(ev match.Event) string {
	label := "ACTUALIZACIÓN"
	emoji := "ℹ️"
	switch ev.NewStatus {
	case match.StatusPostponed:
		label = "PARTIDO APLAZADO"
		emoji = "📅"
	case match.StatusCancelled:
		label = "PARTIDO CANCELADO"
		emoji = "❌"
	}
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("%s <b>%s</b> %s\n\n", emoji, label, emoji))
	msg.WriteString(fmt.Sprintf("⚽️ %s\n", versus(ev.Snapshot)))
	return msg.String()
}
