package account

import (
	"encoding/json"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date serialized as YYYY-MM-DD. RFC 3339 timestamps are accepted on input.
type Date time.Time

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	*d = Date(t)
	return nil
}

func datePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := Date(*t)
	return &d
}

func timePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

// RestModel is the listing and creation representation. Token and creation date are never exposed here.
type RestModel struct {
	Id       uint32 `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Status   Status `json:"status"`
	Birthday *Date  `json:"birthday"`
}

// DetailRestModel is the complete account record returned by a lookup by id.
type DetailRestModel struct {
	Id           uint32    `json:"id"`
	Username     string    `json:"username"`
	Password     string    `json:"password"`
	Token        string    `json:"token"`
	Status       Status    `json:"status"`
	CreationDate time.Time `json:"creationDate"`
	Birthday     *Date     `json:"birthday"`
}

type CreateRestModel struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateRestModel struct {
	Username *string `json:"username"`
	Birthday *Date   `json:"birthday"`
}

func Transform(m Model) (RestModel, error) {
	return RestModel{
		Id:       m.Id(),
		Username: m.Username(),
		Password: m.Password(),
		Status:   m.Status(),
		Birthday: datePtr(m.Birthday()),
	}, nil
}

func TransformDetail(m Model) (DetailRestModel, error) {
	return DetailRestModel{
		Id:           m.Id(),
		Username:     m.Username(),
		Password:     m.Password(),
		Token:        m.Token(),
		Status:       m.Status(),
		CreationDate: m.CreationDate(),
		Birthday:     datePtr(m.Birthday()),
	}, nil
}

func TransformAll(ms []Model) ([]RestModel, error) {
	rms := make([]RestModel, 0, len(ms))
	for _, m := range ms {
		rm, err := Transform(m)
		if err != nil {
			return nil, err
		}
		rms = append(rms, rm)
	}
	return rms, nil
}

// Extract reads the credentials of a creation request. Nothing else in the request reaches the model.
func (r CreateRestModel) Extract() (username string, password string) {
	return r.Username, r.Password
}

// Extract reads the update fields. An absent username becomes empty, which the processor rejects.
func (r UpdateRestModel) Extract() UpdatePatch {
	var username string
	if r.Username != nil {
		username = *r.Username
	}
	return UpdatePatch{
		Username: username,
		Birthday: timePtr(r.Birthday),
	}
}
