package receipt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueVerify(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)
	tok, err := iss.Issue(Claims{ResultID: "r1", AssessmentID: "big-five", Algorithm: "big_five", Overall: 56, Digest: "abc"})
	if err != nil {
		t.Fatal(err)
	}
	c, err := iss.Verify(tok)
	if err != nil {
		t.Fatal(err)
	}
	if c.ResultID != "r1" || c.Overall != 56 || c.Digest != "abc" || c.Subject != "r1" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestVerifyRejects(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)
	tok, _ := iss.Issue(Claims{ResultID: "r1", Overall: 56})

	parts := strings.Split(tok, ".")
	forged, _ := NewIssuer("other", time.Hour).Issue(Claims{ResultID: "r1", Overall: 99})
	tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

	past := NewIssuer("s3cret", time.Minute)
	past.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _ := past.Issue(Claims{ResultID: "r1"})

	for name, tok := range map[string]string{
		"tampered":     tampered,
		"wrong secret": forged,
		"expired":      expired,
		"garbage":      "not-a-token",
	} {
		if _, err := iss.Verify(tok); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: err = %v, want ErrInvalid", name, err)
		}
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	iss := NewIssuer("s3cret", 0)
	tok, _ := iss.Issue(Claims{ResultID: "r1"})
	iss.now = func() time.Time { return time.Now().Add(24 * 365 * time.Hour) }
	if _, err := iss.Verify(tok); err != nil {
		t.Fatal(err)
	}
}
