package errcode

import "testing"

func TestUserMessageKnownCodes(t *testing.T) {
	if msg := UserMessage("en", NotFound); msg == "" || msg == fallback["en"] {
		t.Errorf("expected specific message for NotFound, got %q", msg)
	}
	if msg := UserMessage("tr", RateLimit); msg == "" || msg == fallback["tr"] {
		t.Errorf("expected specific Turkish message for RateLimit, got %q", msg)
	}
}

func TestUserMessageFallbacks(t *testing.T) {
	if msg := UserMessage("en", 1234); msg != fallback["en"] {
		t.Errorf("unknown code must fall back, got %q", msg)
	}
	if msg := UserMessage("de", NotFound); msg != messages["en"][NotFound] {
		t.Errorf("unknown locale must fall back to English, got %q", msg)
	}
}
