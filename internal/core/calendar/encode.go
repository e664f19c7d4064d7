package calendar

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ogurasousui/poolcalendar/internal/core/shift"
)

const (
	dateTimeLayout = "20060102T150405Z"
	maxLineOctets  = 75
	crlf           = "\r\n"

	defaultProductID    = "-//PoolCalendar//Turni Piscina//IT"
	defaultCalendarName = "Turni Piscina"
	defaultTimezone     = "Europe/Rome"
)

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

// EscapeText は TEXT 型プロパティの値を RFC 5545 §3.3.11 に従ってエスケープします。
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// EncoderConfig は VCALENDAR ヘッダーの値です。空のフィールドは既定値になります。
type EncoderConfig struct {
	ProductID    string
	CalendarName string
	Timezone     string
	Domain       string
}

// Encoder はイベントを iCalendar テキストへ変換します。
// 日時は常に UTC の YYYYMMDDTHHMMSSZ 形式で出力します。
type Encoder struct {
	cfg   EncoderConfig
	clock Clock
}

// NewEncoder は Encoder を生成します。
func NewEncoder(cfg EncoderConfig, clock Clock) *Encoder {
	if cfg.ProductID == "" {
		cfg.ProductID = defaultProductID
	}
	if cfg.CalendarName == "" {
		cfg.CalendarName = defaultCalendarName
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}
	if cfg.Domain == "" {
		cfg.Domain = DefaultDomain
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Encoder{cfg: cfg, clock: clock}
}

// Export はシフトをイベントへ変換してエンコードします。
func (e *Encoder) Export(shifts []shift.Shift, names CompanyNamer) (string, error) {
	return e.Encode(FromShifts(shifts, names, e.cfg.Domain))
}

// Encode はイベント列を 1 つの VCALENDAR にまとめます。
// 1 件でも不正なイベントがあれば何も出力せずにエラーを返します。
func (e *Encoder) Encode(events []Event) (string, error) {
	for _, ev := range events {
		if err := ev.Validate(); err != nil {
			return "", err
		}
	}

	stamp := formatDateTime(e.clock.Now())

	w := &lineWriter{}
	w.line("BEGIN:VCALENDAR")
	w.line("VERSION:2.0")
	w.line("PRODID:" + EscapeText(e.cfg.ProductID))
	w.line("CALSCALE:GREGORIAN")
	w.line("METHOD:PUBLISH")
	w.line("X-WR-CALNAME:" + EscapeText(e.cfg.CalendarName))
	w.line("X-WR-TIMEZONE:" + EscapeText(e.cfg.Timezone))

	for _, ev := range events {
		w.line("BEGIN:VEVENT")
		w.line("UID:" + ev.UID)
		w.line("DTSTAMP:" + stamp)
		w.line("DTSTART:" + formatDateTime(ev.Start))
		w.line("DTEND:" + formatDateTime(ev.End))
		w.line("SUMMARY:" + EscapeText(ev.Title))
		if ev.Location != "" {
			w.line("LOCATION:" + EscapeText(ev.Location))
		}
		if ev.Description != "" {
			w.line("DESCRIPTION:" + EscapeText(ev.Description))
		}
		if ev.Status != "" {
			w.line("STATUS:" + ev.Status)
		}
		if ev.BusyStatus != "" {
			w.line("TRANSP:" + ev.BusyStatus)
		}
		if ev.Alarm != nil {
			w.line("BEGIN:VALARM")
			w.line("ACTION:DISPLAY")
			w.line("TRIGGER:" + formatTrigger(ev.Alarm.Before))
			if ev.Alarm.Description != "" {
				w.line("DESCRIPTION:" + EscapeText(ev.Alarm.Description))
			}
			w.line("END:VALARM")
		}
		w.line("END:VEVENT")
	}

	w.line("END:VCALENDAR")
	return w.String(), nil
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format(dateTimeLayout)
}

// formatTrigger は開始前のオフセットを "-PT1H" のような DURATION 値にします。
func formatTrigger(before time.Duration) string {
	if before <= 0 {
		return "PT0S"
	}

	before = before.Truncate(time.Second)
	hours := int(before / time.Hour)
	minutes := int(before % time.Hour / time.Minute)
	seconds := int(before % time.Minute / time.Second)

	var b strings.Builder
	b.WriteString("-PT")
	if hours > 0 {
		fmt.Fprintf(&b, "%dH", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dM", minutes)
	}
	if seconds > 0 || (hours == 0 && minutes == 0) {
		fmt.Fprintf(&b, "%dS", seconds)
	}
	return b.String()
}

// lineWriter は 75 オクテットで折り返しながら CRLF 区切りの content line を書き出します。
type lineWriter struct {
	b strings.Builder
}

func (w *lineWriter) line(content string) {
	limit := maxLineOctets
	for len(content) > limit {
		cut := limit
		// UTF-8 の途中で切らない
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		w.b.WriteString(content[:cut])
		w.b.WriteString(crlf)
		w.b.WriteByte(' ')
		content = content[cut:]
		limit = maxLineOctets - 1
	}
	w.b.WriteString(content)
	w.b.WriteString(crlf)
}

func (w *lineWriter) String() string {
	return w.b.String()
}
