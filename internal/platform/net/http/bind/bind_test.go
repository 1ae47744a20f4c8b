package bind

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode"

	perr "feedbackd/internal/platform/errors"
)

type submission struct {
	Feedback string `json:"feedback" validate:"required,notblank"`
}

func init() {
	_ = RegisterValidation("notblank", NotBlank(func(s string) bool {
		return strings.TrimFunc(s, unicode.IsSpace) == ""
	}))
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON_Success(t *testing.T) {
	got, err := ParseJSON[submission](post(" {\"feedback\":\"Great app!\"}\n"))
	if err != nil || got.Feedback != "Great app!" {
		t.Fatalf("got %+v %v", got, err)
	}
}

func TestParseJSON_Failures(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		opts  []JSONOptions
		want  perr.ErrorCode
		field string
	}{
		{"empty body", "", nil, perr.ErrorCodeJSON, ""},
		{"whitespace body", " \n ", nil, perr.ErrorCodeJSON, ""},
		{"malformed", `{"feedback":`, nil, perr.ErrorCodeJSON, ""},
		{"wrong type", `{"feedback":42}`, nil, perr.ErrorCodeJSON, ""},
		{"array", `["feedback"]`, nil, perr.ErrorCodeJSON, ""},
		{"trailing", `{"feedback":"x"} {"feedback":"y"}`, nil, perr.ErrorCodeJSON, ""},
		{"unknown strict", `{"feedback":"x","rating":5}`, nil, perr.ErrorCodeJSON, ""},
		{"too large", `{"feedback":"this will not fit"}`, []JSONOptions{{MaxBytes: 8}}, perr.ErrorCodeJSON, ""},
		{"null", `{"feedback":null}`, nil, perr.ErrorCodeValidation, "feedback"},
		{"missing", `{}`, nil, perr.ErrorCodeValidation, "feedback"},
		{"blank", `{"feedback":"  \n\t "}`, nil, perr.ErrorCodeValidation, "feedback"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseJSON[submission](post(c.body), c.opts...)
			if perr.CodeOf(err) != c.want {
				t.Fatalf("code = %v (%v), want %v", perr.CodeOf(err), err, c.want)
			}
			if pe, ok := perr.As(err); ok && pe.Field() != c.field {
				t.Fatalf("field = %q, want %q", pe.Field(), c.field)
			}
		})
	}
}

func TestParseJSON_ExactLimitFits(t *testing.T) {
	body := `{"feedback":"ok"}`
	if _, err := ParseJSON[submission](post(body), JSONOptions{MaxBytes: int64(len(body))}); err != nil {
		t.Fatalf("body of exactly MaxBytes rejected: %v", err)
	}
}

func TestParseJSON_UnknownFieldsTolerated(t *testing.T) {
	got, err := ParseJSON[submission](post(`{"feedback":"ok","rating":5,"tags":["a"]}`), JSONOptions{MaxBytes: 1 << 10})
	if err != nil || got.Feedback != "ok" {
		t.Fatalf("got %+v %v", got, err)
	}
}

func TestParseJSON_EmptyBody(t *testing.T) {
	got, err := ParseJSON[submission](httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if err != nil || got != (submission{}) {
		t.Fatalf("GET: %+v %v", got, err)
	}

	type note struct {
		Note string `json:"note"`
	}
	n, err := ParseJSON[note](post(""), JSONOptions{AllowEmptyBody: true})
	if err != nil || n != (note{}) {
		t.Fatalf("allow empty: %+v %v", n, err)
	}
}

func TestParseJSON_NonObjectTarget(t *testing.T) {
	if _, err := ParseJSON[int](post(`5`)); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("got %v", err)
	}
}

func TestMessagesUseJSONNames(t *testing.T) {
	type sized struct {
		Name  string `json:"name,omitempty" validate:"min=2"`
		Count int    `json:"count" validate:"max=5"`
		Plain int    `validate:"min=1"`
	}
	cases := []struct {
		in        sized
		field     string
		wantMsg   string
		wantField string
	}{
		{sized{Name: "A", Plain: 1}, "name", "name must be at least 2", "name"},
		{sized{Name: "Ab", Count: 6, Plain: 1}, "count", "count must be at most 5", "count"},
		{sized{Name: "Ab", Plain: 0}, "Plain", "Plain must be at least 1", "Plain"},
	}
	for _, c := range cases {
		field, msg := violation(checks().v.Struct(c.in))
		if field != c.wantField || msg != c.wantMsg {
			t.Fatalf("got %q %q, want %q %q", field, msg, c.wantField, c.wantMsg)
		}
	}
	if _, msg := violation(checks().v.Struct(submission{Feedback: " "})); msg != "feedback must not be blank" {
		t.Fatalf("notblank message = %q", msg)
	}
	if f, m := violation(errors.New("boom")); f != "" || m != "boom" {
		t.Fatalf("passthrough = %q %q", f, m)
	}
}

func TestNotBlank_NonStringFails(t *testing.T) {
	if err := RegisterValidation("notblank_never", NotBlank(func(string) bool { return false })); err != nil {
		t.Fatal(err)
	}
	type s struct {
		N int `validate:"notblank_never"`
	}
	if err := checks().v.Struct(s{N: 1}); err == nil {
		t.Fatalf("non string field should fail")
	}
}
