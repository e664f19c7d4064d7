package calendar

import (
	"fmt"
	"time"

	"github.com/ogurasousui/poolcalendar/internal/core/company"
	"github.com/ogurasousui/poolcalendar/internal/core/shift"
)

const (
	// DefaultDomain は UID の接尾辞に使うアプリケーションドメインです。
	DefaultDomain = "poolcalendar.app"
	// DefaultFilename はダウンロード時の既定ファイル名です。
	DefaultFilename = "turni-piscina.ics"
	// FeedFilename は購読フィードのファイル名です。
	FeedFilename = "turni.ics"
	// ContentType は iCalendar の MIME タイプです。
	ContentType = "text/calendar; charset=utf-8"

	StatusConfirmed = "CONFIRMED"
	BusyOpaque      = "OPAQUE"

	alarmDescription = "Turno tra 1 ora"
)

// CompanyNamer は会社 ID から表示名を解決します。company.Directory が実装します。
type CompanyNamer interface {
	NameFor(companyID string) string
}

// Alarm はイベント開始前に表示するリマインダーです。
type Alarm struct {
	Before      time.Duration
	Description string
}

// Event はシフト 1 件に対応する VEVENT です。テキストは未エスケープの値を保持します。
type Event struct {
	UID         string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Status      string
	BusyStatus  string
	Alarm       *Alarm
}

// FromShift はシフトからイベントを組み立てます。domain が空なら DefaultDomain を使います。
func FromShift(s shift.Shift, names CompanyNamer, domain string) Event {
	if domain == "" {
		domain = DefaultDomain
	}

	companyName := companyNameFor(names, s.CompanyID)

	return Event{
		UID:   fmt.Sprintf("%s@%s", s.ID, domain),
		Title: fmt.Sprintf("%s - %s", s.Role, s.Facility),
		Description: fmt.Sprintf("Società: %s\nRuolo: %s\nPausa: %d min",
			companyName, s.Role, s.BreakMinutes),
		Location:   s.Facility,
		Start:      s.StartAt,
		End:        s.EndAt,
		Status:     StatusConfirmed,
		BusyStatus: BusyOpaque,
		Alarm:      &Alarm{Before: time.Hour, Description: alarmDescription},
	}
}

// FromShifts はシフトを入力順にイベントへ変換します。
func FromShifts(shifts []shift.Shift, names CompanyNamer, domain string) []Event {
	events := make([]Event, 0, len(shifts))
	for _, s := range shifts {
		events = append(events, FromShift(s, names, domain))
	}
	return events
}

func companyNameFor(names CompanyNamer, companyID string) string {
	if names == nil || companyID == "" {
		return company.UnknownCompanyName
	}
	return names.NameFor(companyID)
}

// Validate はイベントが出力可能かを検証します。
func (e Event) Validate() error {
	switch {
	case e.UID == "":
		return fmt.Errorf("%w: missing uid", ErrInvalidEvent)
	case e.Title == "":
		return fmt.Errorf("%w: %s: missing title", ErrInvalidEvent, e.UID)
	case e.Start.IsZero() || e.End.IsZero():
		return fmt.Errorf("%w: %s: missing start or end", ErrInvalidEvent, e.UID)
	case !e.End.After(e.Start):
		return fmt.Errorf("%w: %s: end must be after start", ErrInvalidEvent, e.UID)
	case e.Alarm != nil && e.Alarm.Before < 0:
		return fmt.Errorf("%w: %s: negative alarm offset", ErrInvalidEvent, e.UID)
	}
	return nil
}
