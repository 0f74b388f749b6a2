package jwt

import (
	gojwt "github.com/golang-jwt/jwt/v5"
	"strings"
	"testing"
	"time"
)

func newTestJWT(t *testing.T) *JWT {
	t.Helper()
	j, err := New("test-session-secret")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return j
}

func TestNew_EmptyKey(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("New() with empty key should fail")
	}
}

func TestSignAndParseSession(t *testing.T) {
	j := newTestJWT(t)
	expires := time.Now().Add(time.Hour).Unix()

	token, err := j.SignSession(&Session{
		ExternalID: "user_2abc",
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		ImageURL:   "https://img.example.com/ada.png",
		Expires:    expires,
	})
	if err != nil {
		t.Fatalf("SignSession() error = %v", err)
	}

	session, err := j.ParseSession(token)
	if err != nil {
		t.Fatalf("ParseSession() error = %v", err)
	}

	if session.ExternalID != "user_2abc" {
		t.Errorf("ExternalID = %q, want user_2abc", session.ExternalID)
	}
	if session.Name != "Ada Lovelace" || session.Email != "ada@example.com" || session.ImageURL != "https://img.example.com/ada.png" {
		t.Errorf("profile = %+v", session)
	}
	if session.Expires != expires {
		t.Errorf("Expires = %d, want %d", session.Expires, expires)
	}
}

func TestParseSession_Rejects(t *testing.T) {
	j := newTestJWT(t)
	other, _ := New("another-secret")

	expired, _ := j.SignSession(&Session{ExternalID: "u", Expires: time.Now().Add(-time.Hour).Unix()})
	foreign, _ := other.SignSession(&Session{ExternalID: "u", Expires: time.Now().Add(time.Hour).Unix()})
	valid, _ := j.SignSession(&Session{ExternalID: "u", Expires: time.Now().Add(time.Hour).Unix()})
	noSubject, _ := j.SignSession(&Session{Expires: time.Now().Add(time.Hour).Unix()})

	noExpiry, _ := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{"sub": "u"}).SignedString(j.key)
	hs512, _ := gojwt.NewWithClaims(gojwt.SigningMethodHS512, gojwt.MapClaims{
		"sub": "u",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(j.key)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"expired", expired},
		{"wrong key", foreign},
		{"missing subject", noSubject},
		{"missing expiry", noExpiry},
		{"unexpected algorithm", hs512},
		{"tampered", strings.TrimSuffix(valid, valid[len(valid)-2:]) + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := j.ParseSession(tt.token); err == nil {
				t.Errorf("ParseSession(%s) should fail", tt.name)
			}
		})
	}
}

func TestParseSession_ClockSkew(t *testing.T) {
	j := newTestJWT(t)

	// 刚过期一秒，仍在允许的时钟偏差内
	token, err := j.SignSession(&Session{ExternalID: "u", Expires: time.Now().Add(-time.Second).Unix()})
	if err != nil {
		t.Fatalf("SignSession() error = %v", err)
	}
	if _, err := j.ParseSession(token); err != nil {
		t.Errorf("ParseSession() error = %v, want token within leeway accepted", err)
	}
}
