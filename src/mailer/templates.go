package main

import (
	"fmt"
	"strings"

	"github.com/defi-mexico/platform-backend/src/api/notify"
)

var contentTypeLabels = map[string]string{
	"startup":   "startup",
	"event":     "evento",
	"community": "comunidad",
	"referent":  "referente",
	"course":    "curso",
	"blog":      "artículo",
	"job":       "vacante",
}

func label(contentType string) string {
	if l, ok := contentTypeLabels[contentType]; ok {
		return l
	}
	return "contenido"
}

func renderSubject(ev notify.Event) string {
	switch ev.Type {
	case notify.EventApproved:
		return fmt.Sprintf("Tu %s %q fue aprobado", label(ev.ContentType), ev.ContentTitle)
	case notify.EventRejected:
		return fmt.Sprintf("Tu %s %q fue rechazado", label(ev.ContentType), ev.ContentTitle)
	default:
		return fmt.Sprintf("Recibimos tu propuesta de %s %q", label(ev.ContentType), ev.ContentTitle)
	}
}

func renderBody(ev notify.Event) string {
	var b strings.Builder
	switch ev.Type {
	case notify.EventApproved:
		fmt.Fprintf(&b, "¡Buenas noticias! Tu %s %q fue aprobado y ya está publicado en DeFi México.\n",
			label(ev.ContentType), ev.ContentTitle)
	case notify.EventRejected:
		fmt.Fprintf(&b, "Tu %s %q fue revisado y no fue aprobado.\n",
			label(ev.ContentType), ev.ContentTitle)
		if ev.ReviewNotes != "" {
			fmt.Fprintf(&b, "\nComentarios del equipo:\n%s\n", ev.ReviewNotes)
		}
		b.WriteString("\nPuedes enviar una nueva propuesta cuando quieras.\n")
	default:
		fmt.Fprintf(&b, "Recibimos tu propuesta de %s %q. Te avisaremos cuando el equipo la revise.\n",
			label(ev.ContentType), ev.ContentTitle)
	}
	b.WriteString("\n— El equipo de DeFi México\n")
	return b.String()
}
