package result

import (
	"encoding/json"
	"errors"
	"testing"
)

type payload struct {
	Score float64  `json:"score"`
	Notes []string `json:"notes"`
}

func TestSuccess(t *testing.T) {
	r := Success(payload{Score: 42})

	if !r.Succeeded() {
		t.Fatal("Succeeded() = false, want true")
	}
	v, ok := r.Value()
	if !ok || v.Score != 42 {
		t.Errorf("Value() = %+v, %v", v, ok)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
	if r.Message() != "" {
		t.Errorf("Message() = %q, want empty", r.Message())
	}
}

func TestFailure(t *testing.T) {
	r := Failure[payload](errors.New("boom"))

	if r.Succeeded() {
		t.Fatal("Succeeded() = true, want false")
	}
	if _, ok := r.Value(); ok {
		t.Error("Value() reported a payload on failure")
	}
	if r.Err() == nil || r.Err().Error() != "boom" {
		t.Errorf("Err() = %v, want boom", r.Err())
	}

	if got := Failure[payload](nil).Message(); got != "unknown error" {
		t.Errorf("Failure(nil).Message() = %q", got)
	}
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		r    any
		want string
	}{
		{
			name: "success splices payload",
			r:    Success(payload{Score: 85, Notes: []string{"a"}}),
			want: `{"success":true,"score":85,"notes":["a"]}`,
		},
		{
			name: "success with empty object",
			r:    Success(struct{}{}),
			want: `{"success":true}`,
		},
		{
			name: "failure",
			r:    Failure[payload](errors.New("invalid rule table")),
			want: `{"success":false,"error":"invalid rule table"}`,
		},
		{
			name: "pointer payload",
			r:    Success(&payload{Score: 1, Notes: []string{}}),
			want: `{"success":true,"score":1,"notes":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.r)
			if err != nil {
				t.Fatalf("Marshal() failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMarshalJSON_RejectsNonObjectPayload(t *testing.T) {
	if _, err := json.Marshal(Success(42)); err == nil {
		t.Error("expected error for scalar payload")
	}
}
