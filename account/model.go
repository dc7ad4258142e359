package account

import (
	"time"
)

type Status string

const (
	StatusOnline  Status = "ONLINE"
	StatusOffline Status = "OFFLINE"
)

type Model struct {
	id           uint32
	username     string
	password     string
	token        string
	status       Status
	creationDate time.Time
	birthday     *time.Time
}

func (a Model) Id() uint32 {
	return a.id
}

func (a Model) Username() string {
	return a.username
}

func (a Model) Password() string {
	return a.password
}

func (a Model) Token() string {
	return a.token
}

func (a Model) Status() Status {
	return a.status
}

func (a Model) CreationDate() time.Time {
	return a.creationDate
}

// Birthday returns nil when the account holder never supplied one.
func (a Model) Birthday() *time.Time {
	if a.birthday == nil {
		return nil
	}
	b := *a.birthday
	return &b
}

type Builder struct {
	id           uint32
	username     string
	password     string
	token        string
	status       Status
	creationDate time.Time
	birthday     *time.Time
}

func NewBuilder() *Builder {
	return &Builder{status: StatusOffline}
}

func Clone(m Model) *Builder {
	return &Builder{
		id:           m.id,
		username:     m.username,
		password:     m.password,
		token:        m.token,
		status:       m.status,
		creationDate: m.creationDate,
		birthday:     m.Birthday(),
	}
}

func (b *Builder) SetId(id uint32) *Builder {
	b.id = id
	return b
}

func (b *Builder) SetUsername(username string) *Builder {
	b.username = username
	return b
}

func (b *Builder) SetPassword(password string) *Builder {
	b.password = password
	return b
}

func (b *Builder) SetToken(token string) *Builder {
	b.token = token
	return b
}

func (b *Builder) SetStatus(status Status) *Builder {
	b.status = status
	return b
}

func (b *Builder) SetCreationDate(creationDate time.Time) *Builder {
	b.creationDate = normalizeTimestamp(creationDate)
	return b
}

func (b *Builder) SetBirthday(birthday *time.Time) *Builder {
	if birthday == nil {
		b.birthday = nil
		return b
	}
	d := normalizeDate(*birthday)
	b.birthday = &d
	return b
}

func (b *Builder) Build() Model {
	return Model{
		id:           b.id,
		username:     b.username,
		password:     b.password,
		token:        b.token,
		status:       b.status,
		creationDate: b.creationDate,
		birthday:     b.birthday,
	}
}

// Timestamps are held in UTC at microsecond precision so a record survives a database round trip unchanged.
// Sub-microsecond remainders round up so the stored value is never earlier than t.
func normalizeTimestamp(t time.Time) time.Time {
	u := t.UTC()
	r := u.Truncate(time.Microsecond)
	if r.Before(u) {
		r = r.Add(time.Microsecond)
	}
	return r
}

func normalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
