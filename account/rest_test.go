package account

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateMarshal(t *testing.T) {
	d := Date(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Unable to marshal date: %v", err)
	}
	if string(b) != `"2000-01-01"` {
		t.Fatalf("Date mismatch. Expected %s, got %s", `"2000-01-01"`, string(b))
	}
}

func TestDateUnmarshal(t *testing.T) {
	for _, in := range []string{`"2000-01-01"`, `"2000-01-01T00:00:00Z"`} {
		var d Date
		if err := json.Unmarshal([]byte(in), &d); err != nil {
			t.Fatalf("Unable to unmarshal %s: %v", in, err)
		}
		if time.Time(d).Format(dateLayout) != "2000-01-01" {
			t.Fatalf("Date mismatch for %s. Got %v", in, time.Time(d))
		}
	}

	var d Date
	if err := json.Unmarshal([]byte(`"01/01/2000"`), &d); err == nil {
		t.Fatalf("Expected error for unsupported format")
	}
}

func TestTransformOmitsSessionFields(t *testing.T) {
	birthday := time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)
	m := Clone(sampleModel("alice")).SetId(3).SetBirthday(&birthday).Build()

	rm, err := Transform(m)
	if err != nil {
		t.Fatalf("Unable to transform: %v", err)
	}
	b, err := json.Marshal(rm)
	if err != nil {
		t.Fatalf("Unable to marshal: %v", err)
	}

	var fields map[string]interface{}
	if err = json.Unmarshal(b, &fields); err != nil {
		t.Fatalf("Unable to unmarshal: %v", err)
	}
	for _, k := range []string{"id", "username", "password", "status", "birthday"} {
		if _, ok := fields[k]; !ok {
			t.Fatalf("Expected field %s", k)
		}
	}
	for _, k := range []string{"token", "creationDate"} {
		if _, ok := fields[k]; ok {
			t.Fatalf("Field %s must not be exposed", k)
		}
	}
	if fields["birthday"] != "1999-12-31" {
		t.Fatalf("Birthday mismatch. Got %v", fields["birthday"])
	}
}

func TestExtractCreateIgnoresOtherFields(t *testing.T) {
	var in CreateRestModel
	if err := json.Unmarshal([]byte(`{"username":"alice","password":"pw1","token":"t","status":"ONLINE","id":5}`), &in); err != nil {
		t.Fatalf("Unable to unmarshal: %v", err)
	}
	u, p := in.Extract()
	if u != "alice" || p != "pw1" {
		t.Fatalf("Credentials mismatch. Got %s/%s", u, p)
	}
}

func TestExtractUpdate(t *testing.T) {
	var in UpdateRestModel
	if err := json.Unmarshal([]byte(`{"username":"alice2","birthday":"2000-01-01","password":"x"}`), &in); err != nil {
		t.Fatalf("Unable to unmarshal: %v", err)
	}
	patch := in.Extract()
	if patch.Username != "alice2" {
		t.Fatalf("Username mismatch. Got %s", patch.Username)
	}
	if patch.Birthday == nil || patch.Birthday.Format(dateLayout) != "2000-01-01" {
		t.Fatalf("Birthday mismatch. Got %v", patch.Birthday)
	}

	in = UpdateRestModel{}
	if err := json.Unmarshal([]byte(`{"username":"alice2"}`), &in); err != nil {
		t.Fatalf("Unable to unmarshal: %v", err)
	}
	if in.Extract().Birthday != nil {
		t.Fatalf("Birthday should be nil when omitted")
	}

	in = UpdateRestModel{}
	if err := json.Unmarshal([]byte(`{"birthday":"2000-01-01"}`), &in); err != nil {
		t.Fatalf("Unable to unmarshal: %v", err)
	}
	if in.Username != nil {
		t.Fatalf("Username should be nil when omitted")
	}
	if in.Extract().Username != "" {
		t.Fatalf("Username should be empty when omitted, got %s", in.Extract().Username)
	}
}
