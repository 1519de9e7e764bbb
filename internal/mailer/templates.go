package mailer

import (
	"fmt"
	"strings"
	"text/template"
)

// Kind identifies a template pair (subject + body).
type Kind string

const (
	KindTicketSubmitted     Kind = "ticket_submitted"
	KindTicketStatusChanged Kind = "ticket_status_changed"
	KindTicketAssigned      Kind = "ticket_assigned"
	KindTicketCommented     Kind = "ticket_commented"
	KindLoginCode           Kind = "login_code"
)

type templatePair struct {
	subject string
	body    string
}

// Templates are plain text. Arabic bodies mirror the English ones so
// recipients get the same variables either way.
var templates = map[Kind]map[string]templatePair{
	KindTicketSubmitted: {
		"en": {
			subject: "[{{.Organization}}] Ticket received: {{.Title}}",
			body: "Hello {{.Name}},\n\n" +
				"We received your request \"{{.Title}}\".\n" +
				"{{if .Token}}You can follow its progress with this tracking code: {{.Token}}\n{{end}}\n" +
				"{{.Organization}} support",
		},
		"ar": {
			subject: "[{{.Organization}}] تم استلام التذكرة: {{.Title}}",
			body: "مرحباً {{.Name}}،\n\n" +
				"لقد استلمنا طلبك \"{{.Title}}\".\n" +
				"{{if .Token}}يمكنك متابعة حالته باستخدام رمز التتبع: {{.Token}}\n{{end}}\n" +
				"فريق دعم {{.Organization}}",
		},
	},
	KindTicketStatusChanged: {
		"en": {
			subject: "[{{.Organization}}] Ticket update: {{.Title}}",
			body: "Hello {{.Name}},\n\n" +
				"The status of your ticket \"{{.Title}}\" changed from {{.OldStatus}} to {{.NewStatus}}.\n\n" +
				"{{.Organization}} support",
		},
		"ar": {
			subject: "[{{.Organization}}] تحديث التذكرة: {{.Title}}",
			body: "مرحباً {{.Name}}،\n\n" +
				"تغيرت حالة تذكرتك \"{{.Title}}\" من {{.OldStatus}} إلى {{.NewStatus}}.\n\n" +
				"فريق دعم {{.Organization}}",
		},
	},
	KindTicketAssigned: {
		"en": {
			subject: "[{{.Organization}}] Ticket assigned to you: {{.Title}}",
			body: "Hello {{.Name}},\n\n" +
				"The ticket \"{{.Title}}\" has been assigned to you.\n\n" +
				"{{.Organization}} support",
		},
		"ar": {
			subject: "[{{.Organization}}] تم إسناد تذكرة إليك: {{.Title}}",
			body: "مرحباً {{.Name}}،\n\n" +
				"تم إسناد التذكرة \"{{.Title}}\" إليك.\n\n" +
				"فريق دعم {{.Organization}}",
		},
	},
	KindTicketCommented: {
		"en": {
			subject: "[{{.Organization}}] New reply on: {{.Title}}",
			body: "Hello {{.Name}},\n\n" +
				"{{.Author}} replied on ticket \"{{.Title}}\":\n\n" +
				"{{.Preview}}\n\n" +
				"{{.Organization}} support",
		},
		"ar": {
			subject: "[{{.Organization}}] رد جديد على: {{.Title}}",
			body: "مرحباً {{.Name}}،\n\n" +
				"أضاف {{.Author}} رداً على التذكرة \"{{.Title}}\":\n\n" +
				"{{.Preview}}\n\n" +
				"فريق دعم {{.Organization}}",
		},
	},
	KindLoginCode: {
		"en": {
			subject: "Your login code",
			body: "Hello {{.Name}},\n\n" +
				"Your one-time login code is {{.Code}}.\n" +
				"It expires in {{.Minutes}} minutes. If you did not request it, ignore this email.",
		},
		"ar": {
			subject: "رمز الدخول الخاص بك",
			body: "مرحباً {{.Name}}،\n\n" +
				"رمز الدخول لمرة واحدة هو {{.Code}}.\n" +
				"تنتهي صلاحيته خلال {{.Minutes}} دقيقة. إذا لم تطلبه، تجاهل هذه الرسالة.",
		},
	},
}

var parsed = func() map[Kind]map[string]struct{ subject, body *template.Template } {
	out := make(map[Kind]map[string]struct{ subject, body *template.Template }, len(templates))
	for kind, langs := range templates {
		out[kind] = make(map[string]struct{ subject, body *template.Template }, len(langs))
		for lang, pair := range langs {
			out[kind][lang] = struct{ subject, body *template.Template }{
				subject: template.Must(template.New(string(kind) + "." + lang + ".subject").Parse(pair.subject)),
				body:    template.Must(template.New(string(kind) + "." + lang + ".body").Parse(pair.body)),
			}
		}
	}
	return out
}()

// Render produces the subject and body for a message. Unknown languages
// fall back to English.
func Render(kind Kind, lang string, vars map[string]any) (string, string, error) {
	langs, ok := parsed[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", kind)
	}
	pair, ok := langs[strings.ToLower(lang)]
	if !ok {
		pair = langs["en"]
	}

	var subject, body strings.Builder
	if err := pair.subject.Execute(&subject, vars); err != nil {
		return "", "", fmt.Errorf("render subject for %q: %w", kind, err)
	}
	if err := pair.body.Execute(&body, vars); err != nil {
		return "", "", fmt.Errorf("render body for %q: %w", kind, err)
	}
	return subject.String(), body.String(), nil
}
